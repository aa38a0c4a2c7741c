package main

import (
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	apporder "github.com/xiebiao/schoolshop/internal/application/order"
	appuser "github.com/xiebiao/schoolshop/internal/application/user"
	"github.com/xiebiao/schoolshop/internal/domain/book"
	"github.com/xiebiao/schoolshop/internal/domain/category"
	"github.com/xiebiao/schoolshop/internal/domain/customer"
	"github.com/xiebiao/schoolshop/internal/domain/order"
	"github.com/xiebiao/schoolshop/internal/domain/user"
	"github.com/xiebiao/schoolshop/internal/infrastructure/config"
	"github.com/xiebiao/schoolshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/schoolshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/schoolshop/internal/interface/http/handler"
	"github.com/xiebiao/schoolshop/internal/interface/http/middleware"
	"github.com/xiebiao/schoolshop/pkg/jwt"
	"github.com/xiebiao/schoolshop/pkg/metrics"
	"github.com/xiebiao/schoolshop/pkg/response"
)

// ========================================
// 自定义Provider
// ========================================
// 构造函数参数无法由Wire直接推导的依赖在这里手动提取、绑定

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建Session存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideOrderRepository 绑定订单仓储接口
func provideOrderRepository(repo *mysql.OrderRepository) order.Repository {
	return repo
}

// provideTxManager 绑定事务管理器接口
func provideTxManager(tm *mysql.TxManager) apporder.TxManager {
	return tm
}

// provideBookService 图书领域服务
// 分类存在性检查由分类仓储提供
func provideBookService(repo book.Repository, categoryRepo category.Repository) book.Service {
	return book.NewService(repo, categoryRepo)
}

// provideCategoryService 分类领域服务
// 删除前的图书计数由图书仓储提供
func provideCategoryService(repo category.Repository, bookRepo book.Repository) category.Service {
	return category.NewService(repo, bookRepo)
}

// provideCustomerService 客户领域服务
// 订单汇总统计由订单仓储提供
func provideCustomerService(repo customer.Repository, orderRepo *mysql.OrderRepository) customer.Service {
	return customer.NewService(repo, orderRepo)
}

// provideLoginUseCase 登录用例
// 会话有效期与Refresh Token对齐,令牌过期后会话一并失效
func provideLoginUseCase(
	cfg *config.Config,
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
) *appuser.LoginUseCase {
	return appuser.NewLoginUseCase(userService, jwtManager, sessionStore, cfg.JWT.RefreshTokenExpire)
}

// provideLogoutUseCase 登出用例
// 黑名单TTL取Access Token有效期,令牌自然过期后黑名单条目随之清理
func provideLogoutUseCase(cfg *config.Config, sessionStore *redis.SessionStore) *appuser.LogoutUseCase {
	return appuser.NewLogoutUseCase(sessionStore, cfg.JWT.AccessTokenExpire)
}

// provideChangePasswordUseCase 修改密码用例
func provideChangePasswordUseCase(userService user.Service, sessionStore *redis.SessionStore) *appuser.ChangePasswordUseCase {
	return appuser.NewChangePasswordUseCase(userService, sessionStore)
}

// provideGinEngine 创建并配置Gin引擎
// 路由规则:
// - 查询接口公开,写操作与员工管理需要登录
// - 登录/邮箱检查公开,否则无法完成首次登录
func provideGinEngine(
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	categoryHandler *handler.CategoryHandler,
	customerHandler *handler.CustomerHandler,
	userHandler *handler.UserHandler,
	orderHandler *handler.OrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.Server.AllowOrigins))
	r.Use(metrics.Middleware())

	// 健康检查与运维端点
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "healthy"}, "pong")
	})
	r.GET("/metrics", metrics.Handler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireAuth := authMiddleware.RequireAuth()

	api := r.Group("/api")
	{
		books := api.Group("/books")
		{
			books.GET("", bookHandler.ListBooks)
			books.GET("/search", bookHandler.SearchBooks)
			books.GET("/low-stock", bookHandler.ListLowStock)
			books.GET("/bestsellers", bookHandler.ListBestSellers)
			books.GET("/grade/:grade", bookHandler.ListByGrade)
			books.GET("/subject/:subject", bookHandler.ListBySubject)
			books.GET("/board/:board", bookHandler.ListByBoard)
			books.GET("/category/:id", bookHandler.ListByCategory)
			books.GET("/isbn/:isbn", bookHandler.GetBookByISBN)
			books.GET("/:id", bookHandler.GetBook)

			books.POST("", requireAuth, bookHandler.CreateBook)
			books.PUT("/:id", requireAuth, bookHandler.UpdateBook)
			books.PUT("/:id/stock", requireAuth, bookHandler.UpdateStock)
			books.DELETE("/:id", requireAuth, bookHandler.DeleteBook)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.GET("/with-books", categoryHandler.ListWithBooks)
			categories.GET("/check-name", categoryHandler.CheckName)
			categories.GET("/type/:type", categoryHandler.ListByType)
			categories.GET("/name/:name", categoryHandler.GetCategoryByName)
			categories.GET("/:id", categoryHandler.GetCategory)

			categories.POST("", requireAuth, categoryHandler.CreateCategory)
			categories.PUT("/:id", requireAuth, categoryHandler.UpdateCategory)
			categories.DELETE("/:id", requireAuth, categoryHandler.DeleteCategory)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", customerHandler.ListCustomers)
			customers.GET("/search", customerHandler.SearchCustomers)
			customers.GET("/check-email", customerHandler.CheckEmail)
			customers.GET("/check-phone", customerHandler.CheckPhone)
			customers.GET("/with-orders", customerHandler.ListWithOrders)
			customers.GET("/top-customers", requireAuth, customerHandler.TopCustomers)
			customers.GET("/type/:type", customerHandler.ListByType)
			customers.GET("/city/:city", customerHandler.ListByCity)
			customers.GET("/email/:email", customerHandler.GetCustomerByEmail)
			customers.GET("/phone/:phone", customerHandler.GetCustomerByPhone)
			customers.GET("/:id", customerHandler.GetCustomer)

			customers.POST("", requireAuth, customerHandler.CreateCustomer)
			customers.PUT("/:id", requireAuth, customerHandler.UpdateCustomer)
			customers.DELETE("/:id", requireAuth, customerHandler.DeleteCustomer)
		}

		users := api.Group("/users")
		{
			users.POST("/login", userHandler.Login)
			users.GET("/check-email", userHandler.CheckEmail)

			users.POST("", requireAuth, userHandler.CreateUser)
			users.POST("/logout", requireAuth, userHandler.Logout)
			users.GET("", requireAuth, userHandler.ListUsers)
			users.GET("/admins", requireAuth, userHandler.ListAdmins)
			users.GET("/search", requireAuth, userHandler.SearchUsers)
			users.GET("/email/:email", requireAuth, userHandler.GetUserByEmail)
			users.GET("/role/:role", requireAuth, userHandler.ListByRole)
			users.GET("/:id", requireAuth, userHandler.GetUser)
			users.PUT("/:id", requireAuth, userHandler.UpdateUser)
			users.PUT("/:id/change-password", requireAuth, userHandler.ChangePassword)
			users.DELETE("/:id", requireAuth, userHandler.DeleteUser)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/search", orderHandler.SearchOrders)
			orders.GET("/recent", orderHandler.ListRecent)
			orders.GET("/number/:orderNumber", orderHandler.GetOrderByNumber)
			orders.GET("/customer/:customerId", orderHandler.ListByCustomer)
			orders.GET("/status/:status", orderHandler.ListByStatus)
			orders.GET("/analytics/total-sales", requireAuth, orderHandler.TotalSales)
			orders.GET("/analytics/sales-by-date-range", requireAuth, orderHandler.SalesByDateRange)
			orders.GET("/:id", orderHandler.GetOrder)

			orders.POST("", requireAuth, orderHandler.CreateOrder)
			orders.PUT("/:id/status", requireAuth, orderHandler.UpdateStatus)
			orders.PUT("/:id/payment-status", requireAuth, orderHandler.UpdatePaymentStatus)
			orders.DELETE("/:id", requireAuth, orderHandler.CancelOrder)
		}
	}

	return r
}

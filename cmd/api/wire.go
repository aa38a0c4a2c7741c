//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 说明：
// 1. Wire在编译期生成依赖组装代码,零运行时开销
// 2. 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
// 3. 依赖链:Repository ← Service ← UseCase ← Handler ← Engine

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	apporder "github.com/xiebiao/schoolshop/internal/application/order"
	"github.com/xiebiao/schoolshop/internal/domain/user"
	"github.com/xiebiao/schoolshop/internal/infrastructure/config"
	"github.com/xiebiao/schoolshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/schoolshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/schoolshop/internal/interface/http/handler"
	"github.com/xiebiao/schoolshop/internal/interface/http/middleware"
)

// infrastructureSet 基础设施层:数据库与Redis连接
var infrastructureSet = wire.NewSet(
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	mysql.NewBookRepository,
	mysql.NewCategoryRepository,
	mysql.NewCustomerRepository,
	mysql.NewUserRepository,
	mysql.NewOrderRepository,
	mysql.NewTxManager,
	provideOrderRepository,
	provideTxManager,
)

// domainSet 领域层
var domainSet = wire.NewSet(
	provideBookService,
	provideCategoryService,
	provideCustomerService,
	user.NewService,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	apporder.NewCreateOrderUseCase,
	apporder.NewCancelOrderUseCase,
	apporder.NewUpdateStatusUseCase,
	apporder.NewQueryOrdersUseCase,
	apporder.NewSalesAnalyticsUseCase,
	provideLoginUseCase,
	provideLogoutUseCase,
	provideChangePasswordUseCase,
)

// middlewareSet 认证相关
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewCategoryHandler,
	handler.NewCustomerHandler,
	handler.NewUserHandler,
	handler.NewOrderHandler,
)

// InitializeApp 组装整个应用
// 配置在main中加载后传入,便于main直接使用端口等配置项
func InitializeApp(cfg *config.Config) (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}

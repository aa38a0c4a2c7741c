package mysql

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/schoolshop/internal/infrastructure/config"
	"github.com/xiebiao/schoolshop/pkg/logger"
)

// NewDB 创建数据库连接
// 设计说明:
// 1. 使用GORM v2作为ORM框架
// 2. 连接池参数来自配置(MaxOpenConns、MaxIdleConns、ConnMaxLifetime)
// 3. debug模式打印SQL,其他模式静默
// 4. 启动时自动迁移表结构
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := gormlogger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.L().Info("database connected")

	// 生产环境应改用版本化迁移脚本,AutoMigrate只增不删
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&CategoryModel{},
		&BookModel{},
		&CustomerModel{},
		&UserModel{},
		&OrderModel{},
		&OrderItemModel{},
	)
}

// CategoryModel GORM分类模型
// 软删除使用is_active布尔标记而非DeletedAt:
// 停用记录仍需按ID可查,仅从有效列表与自然键查询中排除
type CategoryModel struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"index;size:100;not null;comment:分类名称"`
	Description  string    `gorm:"size:500;comment:描述"`
	Type         string    `gorm:"index;size:20;not null;comment:分类维度"`
	DisplayOrder int       `gorm:"default:0;comment:展示顺序"`
	IsActive     bool      `gorm:"index;default:true;comment:是否启用"`
	CreatedAt    time.Time `gorm:"comment:创建时间"`
	UpdatedAt    time.Time `gorm:"comment:更新时间"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

// BookModel GORM图书模型
// 金额字段以派萨(百分之一卢比)整数存储,避免浮点精度问题
type BookModel struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author      string    `gorm:"index:idx_search;size:100;not null;comment:作者"`
	Description string    `gorm:"type:text;comment:描述"`
	Image       string    `gorm:"size:500;comment:封面URL"`
	Price       int64     `gorm:"not null;comment:售价(派萨)"`
	MRP         int64     `gorm:"column:mrp;not null;comment:标价(派萨)"`
	Discount    int64     `gorm:"default:0;comment:折扣金额(派萨)"`
	Quantity    int       `gorm:"default:0;comment:库存数量"`
	Grade       int       `gorm:"index;not null;comment:年级"`
	Subject     string    `gorm:"index;size:50;not null;comment:学科"`
	Board       string    `gorm:"index;size:20;not null;comment:课程标准"`
	ISBN        string    `gorm:"index;size:20;comment:ISBN号"`
	Publisher   string    `gorm:"size:100;comment:出版社"`
	Edition     string    `gorm:"size:50;comment:版次"`
	Language    string    `gorm:"size:30;comment:语言"`
	CategoryID  uint      `gorm:"index;default:0;comment:分类ID"`
	IsActive    bool      `gorm:"index;default:true;comment:是否在售"`
	CreatedAt   time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

func (BookModel) TableName() string {
	return "books"
}

// CustomerModel GORM客户模型
type CustomerModel struct {
	ID              uint      `gorm:"primaryKey"`
	Name            string    `gorm:"index;size:100;not null;comment:姓名"`
	Email           string    `gorm:"index;size:100;not null;comment:邮箱"`
	Phone           string    `gorm:"index;size:20;not null;comment:手机号"`
	Address         string    `gorm:"size:500;comment:地址"`
	City            string    `gorm:"index;size:50;comment:城市"`
	State           string    `gorm:"size:50;comment:邦"`
	Pincode         string    `gorm:"size:10;comment:邮编"`
	Country         string    `gorm:"size:50;comment:国家"`
	InstitutionName string    `gorm:"size:200;comment:学校或机构名称"`
	ContactPerson   string    `gorm:"size:100;comment:联系人"`
	GSTNumber       string    `gorm:"column:gst_number;size:20;comment:GST税号"`
	CustomerType    string    `gorm:"index;size:20;not null;comment:客户类型"`
	IsActive        bool      `gorm:"index;default:true;comment:是否有效"`
	CreatedAt       time.Time `gorm:"comment:创建时间"`
	UpdatedAt       time.Time `gorm:"comment:更新时间"`
}

func (CustomerModel) TableName() string {
	return "customers"
}

// UserModel GORM员工账号模型
// Password只存bcrypt哈希
type UserModel struct {
	ID        uint       `gorm:"primaryKey"`
	Name      string     `gorm:"size:100;not null;comment:姓名"`
	Email     string     `gorm:"index;size:100;not null;comment:邮箱"`
	Password  string     `gorm:"size:255;not null;comment:密码哈希"`
	Role      string     `gorm:"index;size:30;not null;comment:角色"`
	Phone     string     `gorm:"size:20;comment:手机号"`
	Address   string     `gorm:"size:500;comment:地址"`
	City      string     `gorm:"size:50;comment:城市"`
	State     string     `gorm:"size:50;comment:邦"`
	Zip       string     `gorm:"size:10;comment:邮编"`
	Country   string     `gorm:"size:50;comment:国家"`
	IsActive  bool       `gorm:"index;default:true;comment:是否有效"`
	LastLogin *time.Time `gorm:"comment:最近登录时间"`
	CreatedAt time.Time  `gorm:"comment:创建时间"`
	UpdatedAt time.Time  `gorm:"comment:更新时间"`
}

func (UserModel) TableName() string {
	return "users"
}

// OrderModel GORM订单模型
// OrderNumber唯一索引是订单号防重的最终保证,
// 应用层的存在性检查加重试只是降低冲突概率
type OrderModel struct {
	ID              uint             `gorm:"primaryKey"`
	OrderNumber     string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	CustomerID      uint             `gorm:"index;not null;comment:客户ID"`
	Status          string           `gorm:"index;size:20;not null;comment:订单状态"`
	TotalAmount     int64            `gorm:"not null;comment:订单总额(派萨)"`
	DiscountAmount  int64            `gorm:"default:0;comment:折扣金额(派萨)"`
	FinalAmount     int64            `gorm:"not null;comment:应付金额(派萨)"`
	OrderDate       time.Time        `gorm:"index;not null;comment:下单时间"`
	DeliveryDate    *time.Time       `gorm:"comment:送达时间"`
	DeliveryAddress string           `gorm:"size:500;comment:收货地址"`
	DeliveryCity    string           `gorm:"size:50;comment:收货城市"`
	DeliveryState   string           `gorm:"size:50;comment:收货邦"`
	DeliveryPincode string           `gorm:"size:10;comment:收货邮编"`
	ContactPhone    string           `gorm:"size:20;comment:收货联系电话"`
	PaymentMethod   string           `gorm:"size:30;comment:支付方式"`
	PaymentStatus   string           `gorm:"index;size:20;not null;comment:支付状态"`
	Notes           string           `gorm:"size:500;comment:备注"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time        `gorm:"comment:创建时间"`
	UpdatedAt       time.Time        `gorm:"comment:更新时间"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// 快照下单时的图书元数据,图书改价或下架不影响历史订单展示
type OrderItemModel struct {
	ID             uint   `gorm:"primaryKey"`
	OrderID        uint   `gorm:"index;not null;comment:订单ID"`
	BookID         uint   `gorm:"index;not null;comment:图书ID"`
	Quantity       int    `gorm:"not null;comment:数量"`
	UnitPrice      int64  `gorm:"not null;comment:下单时单价(派萨)"`
	DiscountAmount int64  `gorm:"default:0;comment:明细折扣(派萨)"`
	TotalPrice     int64  `gorm:"not null;comment:明细总额(派萨)"`
	BookTitle      string `gorm:"size:200;not null;comment:书名快照"`
	BookAuthor     string `gorm:"size:100;comment:作者快照"`
	BookISBN       string `gorm:"size:20;comment:ISBN快照"`
	BookGrade      int    `gorm:"comment:年级快照"`
	BookSubject    string `gorm:"size:50;comment:学科快照"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

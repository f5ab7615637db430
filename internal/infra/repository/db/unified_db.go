package db

import (
	"context"

	"github.com/RoyceAzure/lab/store_seeder/internal/domain/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IStatusRepository 狀態參考表查詢介面
type IStatusRepository interface {
	GetOrderStatusIDs(ctx context.Context, keys []string) (map[string]uint, error)
	GetPaymentStatusIDs(ctx context.Context, keys []string) (map[string]uint, error)
	GetDeliveryStatusIDs(ctx context.Context, keys []string) (map[string]uint, error)
}

// IProductRepository Product 相關操作介面
type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	CreateProductsBatch(ctx context.Context, products []model.Product) error
	GetProductByID(ctx context.Context, productID uint) (*model.Product, error)
	GetProductsByIDs(ctx context.Context, ids []uint) ([]model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	GetActiveProductSnapshots(ctx context.Context) ([]model.ProductSnapshot, error)
	DeductStock(ctx context.Context, productID uint, quantity int) error
}

// IOrderRepository Order 相關操作介面
type IOrderRepository interface {
	CreateOrderWithItems(ctx context.Context, order *model.Order, items []model.OrderItem, amount decimal.Decimal) error
	GetOrderByID(ctx context.Context, id uint) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, statusID uint) error
	UpdateOrderAmount(ctx context.Context, id uint, amount decimal.Decimal) error
	UpdateOrderDelivery(ctx context.Context, id uint, upd DeliveryUpdate) error
}

// IPaymentRepository Payment 相關操作介面
type IPaymentRepository interface {
	CreatePayment(ctx context.Context, payment *model.Payment) error
	GetPaymentsByOrderID(ctx context.Context, orderID uint) ([]model.Payment, error)
}

// IActivityRepository 評論與願望清單操作介面
type IActivityRepository interface {
	GetReviewedProductIDs(ctx context.Context, userID uint, productIDs []uint) (map[uint]struct{}, error)
	GetWishlistedProductIDs(ctx context.Context, userID uint, productIDs []uint) (map[uint]struct{}, error)
	CreateUserActivity(ctx context.Context, reviews []model.Review, wishlist []model.WishlistItem) error
}

// IUserRepository User 相關操作介面
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
	GetAllUserIDs(ctx context.Context) ([]uint, error)
}

// IPromotionRepository Promotion 相關操作介面
type IPromotionRepository interface {
	CreatePromotion(ctx context.Context, promo *model.Promotion) error
	GetActivePromotionByCode(ctx context.Context, code string) (*model.Promotion, error)
	GetApplications(ctx context.Context, promoID uint) ([]model.PromotionApplication, error)
	ApplyPromotion(ctx context.Context, orderID, promoID uint, newAmount, savings decimal.Decimal) error
}

// UnifiedDB 統一的資料庫介面
type UnifiedDB interface {
	GetDB() *gorm.DB
	InitMigrate() error
	SeedStatusTypes() error

	// WithinTransaction fn內拿到的store綁定同一個DB交易
	WithinTransaction(ctx context.Context, fn func(UnifiedDB) error) error

	IStatusRepository
	IProductRepository
	IOrderRepository
	IPaymentRepository
	IActivityRepository
	IUserRepository
	IPromotionRepository
}

// UnifiedDBImpl 統一資料庫實現
type UnifiedDBImpl struct {
	db    *gorm.DB
	dbDao *DbDao
	*StatusRepo
	*ProductDBRepo
	*OrderRepo
	*PaymentRepo
	*ActivityRepo
	*UserRepo
	*PromotionRepo
}

// NewUnifiedDB 創建新的統一資料庫實例
func NewUnifiedDB(db *gorm.DB) *UnifiedDBImpl {
	dbDao := NewDbDao(db)
	return &UnifiedDBImpl{
		db:            db,
		dbDao:         dbDao,
		StatusRepo:    NewStatusRepo(dbDao),
		ProductDBRepo: NewProductDBRepo(dbDao),
		OrderRepo:     NewOrderRepo(dbDao),
		PaymentRepo:   NewPaymentRepo(dbDao),
		ActivityRepo:  NewActivityRepo(dbDao),
		UserRepo:      NewUserRepo(dbDao),
		PromotionRepo: NewPromotionRepo(dbDao),
	}
}

// GetDB 獲取資料庫連接
func (u *UnifiedDBImpl) GetDB() *gorm.DB {
	return u.db
}

func (u *UnifiedDBImpl) InitMigrate() error {
	return u.dbDao.InitMigrate()
}

func (u *UnifiedDBImpl) SeedStatusTypes() error {
	return u.dbDao.SeedStatusTypes()
}

// WithinTransaction 以單一交易執行fn，fn回傳error時全部rollback
func (u *UnifiedDBImpl) WithinTransaction(ctx context.Context, fn func(UnifiedDB) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUnifiedDB(tx))
	})
}

var (
	_ UnifiedDB            = (*UnifiedDBImpl)(nil)
	_ IStatusRepository    = (*UnifiedDBImpl)(nil)
	_ IProductRepository   = (*UnifiedDBImpl)(nil)
	_ IOrderRepository     = (*UnifiedDBImpl)(nil)
	_ IPaymentRepository   = (*UnifiedDBImpl)(nil)
	_ IActivityRepository  = (*UnifiedDBImpl)(nil)
	_ IUserRepository      = (*UnifiedDBImpl)(nil)
	_ IPromotionRepository = (*UnifiedDBImpl)(nil)
)

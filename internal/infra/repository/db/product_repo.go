package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/store_seeder/internal/domain/model"
	"gorm.io/gorm"
)

var (
	// ErrProductStockNotEnough 商品庫存不足
	ErrProductStockNotEnough = errors.New("product stock not enough")
)

type ProductDBRepo struct {
	db *DbDao
}

func NewProductDBRepo(db *DbDao) *ProductDBRepo {
	return &ProductDBRepo{db: db}
}

func (s *ProductDBRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *ProductDBRepo) CreateProductsBatch(ctx context.Context, products []model.Product) error {
	return s.db.WithContext(ctx).Create(&products).Error
}

func (s *ProductDBRepo) GetProductByID(ctx context.Context, productID uint) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, productID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductDBRepo) GetProductsByIDs(ctx context.Context, ids []uint) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Where("product_id IN ?", ids).Find(&products).Error
	return products, err
}

func (s *ProductDBRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Find(&products).Error
	return products, err
}

// GetActiveProductSnapshots 撈出模擬用的庫存快照 (product_id, price, stock)
// 停售商品不列入
func (s *ProductDBRepo) GetActiveProductSnapshots(ctx context.Context) ([]model.ProductSnapshot, error) {
	var snapshots []model.ProductSnapshot
	err := s.db.WithContext(ctx).Model(&model.Product{}).
		Select("product_id, price, stock").
		Where("is_active = ?", true).
		Find(&snapshots).Error
	return snapshots, err
}

// DeductStock 條件式扣庫存，條件為扣減當下 stock >= quantity
// 條件不成立回傳 ErrProductStockNotEnough，庫存永遠不會變負數
func (s *ProductDBRepo) DeductStock(ctx context.Context, productID uint, quantity int) error {
	return deductStock(s.db.WithContext(ctx), productID, quantity)
}

func deductStock(tx *gorm.DB, productID uint, quantity int) error {
	result := tx.Model(&model.Product{}).
		Where("product_id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductStockNotEnough
	}
	return nil
}

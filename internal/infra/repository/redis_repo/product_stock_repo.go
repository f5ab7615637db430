package redis_repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// IProductStockRepository 定義 Redis 商品庫存操作的介面
type IProductStockRepository interface {
	// SetProductStock 寫入商品庫存
	SetProductStock(ctx context.Context, productID uint, stock uint) error

	// GetProductStock 取得商品庫存數量
	GetProductStock(ctx context.Context, productID uint) (int, error)

	// DeleteProductStock 刪除商品庫存
	DeleteProductStock(ctx context.Context, productID uint) error
}

var (
	ErrProductNotFound = errors.New("product not found")
)

/*	redis 專注商品庫存，seed run結束後把最終庫存灌進快取
	讓storefront啟動時不需要冷啟動查DB
	結構:
	product:{id}:stock -> { stock: 100 }*/

type ProductStockRepo struct {
	productCache *redis.Client
}

func NewProductStockRepo(productCache *redis.Client) *ProductStockRepo {
	return &ProductStockRepo{productCache: productCache}
}

func generateProductStockKey(productID uint) string {
	return fmt.Sprintf("product:%d:stock", productID)
}

func (s *ProductStockRepo) SetProductStock(ctx context.Context, productID uint, stock uint) error {
	redisKey := generateProductStockKey(productID)
	return s.productCache.HSet(ctx, redisKey, "stock", stock).Err()
}

// 取得庫存商品數量
// 錯誤:
//   - ErrProductNotFound: 商品不存在
//   - err: 其他錯誤
func (s *ProductStockRepo) GetProductStock(ctx context.Context, productID uint) (int, error) {
	redisKey := generateProductStockKey(productID)
	stock, err := s.productCache.HGet(ctx, redisKey, "stock").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrProductNotFound
		}
		return 0, err
	}

	stockInt, err := strconv.ParseInt(stock, 10, 64)
	if err != nil {
		return 0, err
	}

	return int(stockInt), nil
}

func (s *ProductStockRepo) DeleteProductStock(ctx context.Context, productID uint) error {
	redisKey := generateProductStockKey(productID)
	return s.productCache.Del(ctx, redisKey).Err()
}

var _ IProductStockRepository = (*ProductStockRepo)(nil)

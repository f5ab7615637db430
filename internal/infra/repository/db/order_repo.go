package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/store_seeder/internal/domain/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// CreateOrderWithItems 單一交易完成: 建立訂單 -> 建立明細 -> 扣庫存 -> 回寫金額
// 任一步失敗全部rollback，不會留下半張訂單
// 扣庫存輸掉race (stock < qty) 視為整張訂單失敗
func (s *OrderRepo) CreateOrderWithItems(ctx context.Context, order *model.Order, items []model.OrderItem, amount decimal.Decimal) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先以金額0建單，明細寫完才回寫總額
		order.Amount = decimal.Zero
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.OrderID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		for _, item := range items {
			if err := deductStock(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if err := tx.Model(&model.Order{}).
			Where("order_id = ?", order.OrderID).
			Update("amount", amount).Error; err != nil {
			return err
		}
		order.Amount = amount
		return nil
	})
}

// Read - 根據ID查詢訂單
func (s *OrderRepo) GetOrderByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").First(&order, "order_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Read - 根據用戶ID查詢訂單
func (s *OrderRepo) GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").Where("user_id = ?", userID).Find(&orders).Error
	return orders, err
}

// Update - 更新訂單狀態
func (s *OrderRepo) UpdateOrderStatus(ctx context.Context, id uint, statusID uint) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", id).
		Update("order_status_id", statusID).Error
}

// Update - 更新訂單金額
func (s *OrderRepo) UpdateOrderAmount(ctx context.Context, id uint, amount decimal.Decimal) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", id).
		Update("amount", amount).Error
}

// DeliveryUpdate 出貨相關欄位一次更新，避免只更新到一半的狀態
type DeliveryUpdate struct {
	DeliveryStatusID uint
	DeliveryAddress  string
	ShippingCarrier  string
	TrackingNumber   string
	ShippedDate      time.Time
	EstimatedDate    time.Time
	DeliveredDate    time.Time
}

func (s *OrderRepo) UpdateOrderDelivery(ctx context.Context, id uint, upd DeliveryUpdate) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", id).
		Updates(map[string]interface{}{
			"delivery_status_id": upd.DeliveryStatusID,
			"delivery_address":   upd.DeliveryAddress,
			"shipping_carrier":   upd.ShippingCarrier,
			"tracking_number":    upd.TrackingNumber,
			"shipped_date":       upd.ShippedDate,
			"estimated_date":     upd.EstimatedDate,
			"delivered_date":     upd.DeliveredDate,
		}).Error
}

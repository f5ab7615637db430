package db

import (
	"context"

	"github.com/RoyceAzure/lab/store_seeder/internal/domain/model"
)

type PaymentRepo struct {
	db *DbDao
}

func NewPaymentRepo(db *DbDao) *PaymentRepo {
	return &PaymentRepo{db: db}
}

// Create - 新增付款紀錄，transaction_id 唯一性由DB unique index保證
func (s *PaymentRepo) CreatePayment(ctx context.Context, payment *model.Payment) error {
	return s.db.WithContext(ctx).Create(payment).Error
}

// Read - 根據訂單ID查詢付款紀錄
func (s *PaymentRepo) GetPaymentsByOrderID(ctx context.Context, orderID uint) ([]model.Payment, error) {
	var payments []model.Payment
	err := s.db.WithContext(ctx).Where("order_id = ?", orderID).Order("payment_date").Find(&payments).Error
	return payments, err
}

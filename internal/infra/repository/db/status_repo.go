package db

import (
	"context"

	"github.com/RoyceAzure/lab/store_seeder/internal/domain/model"
)

type StatusRepo struct {
	db *DbDao
}

func NewStatusRepo(db *DbDao) *StatusRepo {
	return &StatusRepo{db: db}
}

type statusRow struct {
	StatusKey string
	StatusID  uint
}

// 查詢結果只包含實際存在的key，缺漏由registry判斷
func (s *StatusRepo) GetOrderStatusIDs(ctx context.Context, keys []string) (map[string]uint, error) {
	var rows []statusRow
	err := s.db.WithContext(ctx).Model(&model.OrderStatusType{}).
		Where("status_key IN ?", keys).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rowsToMap(rows), nil
}

func (s *StatusRepo) GetPaymentStatusIDs(ctx context.Context, keys []string) (map[string]uint, error) {
	var rows []statusRow
	err := s.db.WithContext(ctx).Model(&model.PaymentStatusType{}).
		Where("status_key IN ?", keys).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rowsToMap(rows), nil
}

func (s *StatusRepo) GetDeliveryStatusIDs(ctx context.Context, keys []string) (map[string]uint, error) {
	var rows []statusRow
	err := s.db.WithContext(ctx).Model(&model.DeliveryStatusType{}).
		Where("status_key IN ?", keys).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rowsToMap(rows), nil
}

func rowsToMap(rows []statusRow) map[string]uint {
	m := make(map[string]uint, len(rows))
	for _, r := range rows {
		m[r.StatusKey] = r.StatusID
	}
	return m
}

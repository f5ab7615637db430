package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/store_seeder/internal/domain/model"
	"github.com/RoyceAzure/lab/store_seeder/internal/infra/repository/db"
)

var (
	// ErrStatusNotDefined 狀態參考表缺key，屬於設定錯誤，整個run直接中止
	ErrStatusNotDefined = errors.New("status key not defined in reference table")
)

// StatusRegistry 啟動時解析一次的狀態對照表，模擬過程中不再查DB
type StatusRegistry struct {
	order    map[model.OrderStatus]uint
	payment  map[model.PaymentStatus]uint
	delivery map[model.DeliveryStatus]uint
}

// BuildStatusRegistry 解析所有需要的狀態key，任何缺漏都是fatal
func BuildStatusRegistry(ctx context.Context, repo db.IStatusRepository) (*StatusRegistry, error) {
	reg := &StatusRegistry{
		order:    make(map[model.OrderStatus]uint),
		payment:  make(map[model.PaymentStatus]uint),
		delivery: make(map[model.DeliveryStatus]uint),
	}

	orderKeys := make([]string, 0)
	for _, s := range model.AllOrderStatuses() {
		orderKeys = append(orderKeys, string(s))
	}
	resolved, err := repo.GetOrderStatusIDs(ctx, orderKeys)
	if err != nil {
		return nil, fmt.Errorf("resolve order statuses failed: %w", err)
	}
	for _, s := range model.AllOrderStatuses() {
		id, ok := resolved[string(s)]
		if !ok {
			return nil, fmt.Errorf("%w: order/%s", ErrStatusNotDefined, s)
		}
		reg.order[s] = id
	}

	paymentKeys := make([]string, 0)
	for _, s := range model.AllPaymentStatuses() {
		paymentKeys = append(paymentKeys, string(s))
	}
	resolved, err = repo.GetPaymentStatusIDs(ctx, paymentKeys)
	if err != nil {
		return nil, fmt.Errorf("resolve payment statuses failed: %w", err)
	}
	for _, s := range model.AllPaymentStatuses() {
		id, ok := resolved[string(s)]
		if !ok {
			return nil, fmt.Errorf("%w: payment/%s", ErrStatusNotDefined, s)
		}
		reg.payment[s] = id
	}

	deliveryKeys := make([]string, 0)
	for _, s := range model.AllDeliveryStatuses() {
		deliveryKeys = append(deliveryKeys, string(s))
	}
	resolved, err = repo.GetDeliveryStatusIDs(ctx, deliveryKeys)
	if err != nil {
		return nil, fmt.Errorf("resolve delivery statuses failed: %w", err)
	}
	for _, s := range model.AllDeliveryStatuses() {
		id, ok := resolved[string(s)]
		if !ok {
			return nil, fmt.Errorf("%w: delivery/%s", ErrStatusNotDefined, s)
		}
		reg.delivery[s] = id
	}

	return reg, nil
}

func (r *StatusRegistry) OrderID(s model.OrderStatus) uint {
	return r.order[s]
}

func (r *StatusRegistry) PaymentID(s model.PaymentStatus) uint {
	return r.payment[s]
}

func (r *StatusRegistry) DeliveryID(s model.DeliveryStatus) uint {
	return r.delivery[s]
}

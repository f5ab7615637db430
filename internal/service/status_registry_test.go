package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/store_seeder/internal/domain/model"
	"github.com/stretchr/testify/require"
)

func TestBuildStatusRegistry(t *testing.T) {
	store := newMemStore()

	registry, err := BuildStatusRegistry(context.Background(), store)

	require.NoError(t, err)
	for _, s := range model.AllOrderStatuses() {
		require.NotZero(t, registry.OrderID(s), "order status %s unresolved", s)
	}
	for _, s := range model.AllPaymentStatuses() {
		require.NotZero(t, registry.PaymentID(s), "payment status %s unresolved", s)
	}
	for _, s := range model.AllDeliveryStatuses() {
		require.NotZero(t, registry.DeliveryID(s), "delivery status %s unresolved", s)
	}
}

// 參考表少一個key就要fail fast，不能帶著0值的status id往下跑
func TestBuildStatusRegistry_MissingKey(t *testing.T) {
	store := newMemStore()
	delete(store.orderStatus, string(model.OrderStatusRefunded))

	registry, err := BuildStatusRegistry(context.Background(), store)

	require.ErrorIs(t, err, ErrStatusNotDefined)
	require.Nil(t, registry)
}

func TestBuildStatusRegistry_MissingDeliveryKey(t *testing.T) {
	store := newMemStore()
	delete(store.deliveryStatus, string(model.DeliveryStatusDelivered))

	registry, err := BuildStatusRegistry(context.Background(), store)

	require.ErrorIs(t, err, ErrStatusNotDefined)
	require.Nil(t, registry)
}

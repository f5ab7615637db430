package service

import (
	"context"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/store_seeder/internal/domain/model"
	"github.com/RoyceAzure/lab/store_seeder/internal/infra/repository/db"
	"github.com/shopspring/decimal"
)

// 單一品項最多買3個，與庫存取小
const maxQtyPerLine = 3

var (
	paymentMethods = []string{"Card", "PayPal", "ApplePay", "GooglePay"}
	carriers       = []string{"DHL", "FedEx", "UPS", "USPS"}
)

// Params 模擬參數，載入後不變動
type Params struct {
	OrdersPerUserMin     int
	OrdersPerUserMax     int
	MaxItemsPerOrder     int
	PaymentFailRate      float64
	OrderCancelRate      float64
	OrderReturnRate      float64
	OrderRefundRate      float64
	ReviewRate           float64
	WishlistItemsPerUser int
	Currency             string
}

// SelectedItem 下單當下選定的品項，price為選定時的快照
type SelectedItem struct {
	ProductID uint
	Price     decimal.Decimal
	Quantity  int
}

// OrderSummary 一張訂單跑完整個生命週期的結果
type OrderSummary struct {
	OrderID     uint
	Items       []SelectedItem
	Amount      decimal.Decimal
	FinalStatus model.OrderStatus
	Returned    bool
	Refunded    bool
}

// OrderStore 單一訂單生命週期需要的寫入操作
// runner會傳入綁定同一個DB交易的實例
type OrderStore interface {
	CreateOrderWithItems(ctx context.Context, order *model.Order, items []model.OrderItem, amount decimal.Decimal) error
	CreatePayment(ctx context.Context, payment *model.Payment) error
	UpdateOrderStatus(ctx context.Context, id uint, statusID uint) error
	UpdateOrderDelivery(ctx context.Context, id uint, upd db.DeliveryUpdate) error
}

// OrderSimService 訂單生命週期模擬引擎
// 狀態機: Cart -> {Pending, Cancelled} (付款失敗)
//
//	Cart -> Processing -> Delivered -> {Completed, Returned -> {done, Refunded}} (付款成功)
type OrderSimService struct {
	registry *StatusRegistry
	params   Params
	rand     Rand
	now      func() time.Time
}

func NewOrderSimService(registry *StatusRegistry, params Params, rand Rand) *OrderSimService {
	if registry == nil {
		panic("order sim service dependency registry is nil")
	}
	if rand == nil {
		panic("order sim service dependency rand is nil")
	}
	return &OrderSimService{
		registry: registry,
		params:   params,
		rand:     rand,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SimulateOrderLifecycle 跑完一張訂單的完整生命週期
// 選不到任何品項時回傳 (nil, nil)，不建立訂單，屬於正常結果
// 呼叫端負責把store綁在單一交易上，任何error整張訂單rollback
func (s *OrderSimService) SimulateOrderLifecycle(ctx context.Context, store OrderStore, userID uint, products []model.ProductSnapshot) (*OrderSummary, error) {
	items := s.chooseItems(products)
	if len(items) == 0 {
		return nil, nil
	}

	order, err := s.createOrderAndItems(ctx, store, userID, items)
	if err != nil {
		return nil, fmt.Errorf("create order failed: %w", err)
	}

	summary := &OrderSummary{
		OrderID: order.OrderID,
		Items:   items,
		Amount:  order.Amount,
	}

	paid, err := s.processPayment(ctx, store, order)
	if err != nil {
		return nil, fmt.Errorf("process payment failed: %w", err)
	}

	if !paid {
		// 付款失敗: 少數會直接取消，其餘留在Pending (棄單)
		final := model.OrderStatusPending
		if s.rand.Float64() < s.params.OrderCancelRate {
			final = model.OrderStatusCancelled
		}
		if err := store.UpdateOrderStatus(ctx, order.OrderID, s.registry.OrderID(final)); err != nil {
			return nil, fmt.Errorf("update order status failed: %w", err)
		}
		summary.FinalStatus = final
		return summary, nil
	}

	if err := store.UpdateOrderStatus(ctx, order.OrderID, s.registry.OrderID(model.OrderStatusProcessing)); err != nil {
		return nil, fmt.Errorf("update order status failed: %w", err)
	}

	deliveredAt, err := s.simulateDelivery(ctx, store, order)
	if err != nil {
		return nil, fmt.Errorf("simulate delivery failed: %w", err)
	}

	final, refunded, err := s.resolvePostDelivery(ctx, store, order, deliveredAt)
	if err != nil {
		return nil, fmt.Errorf("resolve post delivery failed: %w", err)
	}

	summary.FinalStatus = final
	summary.Returned = final == model.OrderStatusReturned || final == model.OrderStatusRefunded
	summary.Refunded = refunded
	return summary, nil
}

// chooseItems 從庫存快照挑出這張訂單的品項
// 零庫存商品直接略過，挑不到任何品項回傳空表示不建單
func (s *OrderSimService) chooseItems(products []model.ProductSnapshot) []SelectedItem {
	if len(products) == 0 {
		return nil
	}

	maxCount := s.params.MaxItemsPerOrder
	if maxCount > len(products) {
		maxCount = len(products)
	}
	count := randBetween(s.rand, 1, maxCount)

	items := make([]SelectedItem, 0, count)
	for _, i := range sampleIndexes(s.rand, len(products), count) {
		p := products[i]
		if p.Stock <= 0 {
			continue
		}
		maxQty := maxQtyPerLine
		if p.Stock < maxQty {
			maxQty = p.Stock
		}
		items = append(items, SelectedItem{
			ProductID: p.ProductID,
			Price:     p.Price,
			Quantity:  randBetween(s.rand, 1, maxQty),
		})
	}
	return items
}

// createOrderAndItems 建單，日期往回倒0~60天模擬歷史訂單
func (s *OrderSimService) createOrderAndItems(ctx context.Context, store OrderStore, userID uint, items []SelectedItem) (*model.Order, error) {
	orderDate := s.now().AddDate(0, 0, -s.rand.Intn(61))

	order := &model.Order{
		UserID:        userID,
		OrderDate:     orderDate,
		OrderStatusID: s.registry.OrderID(model.OrderStatusCart),
	}

	orderItems := make([]model.OrderItem, 0, len(items))
	amount := decimal.Zero
	for _, item := range items {
		orderItems = append(orderItems, model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
		amount = amount.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	amount = amount.Round(2)

	if err := store.CreateOrderWithItems(ctx, order, orderItems, amount); err != nil {
		return nil, err
	}
	return order, nil
}

// processPayment 單次抽樣決定付款成敗，不重試
// 失敗會留一筆amount=0的Failed紀錄
func (s *OrderSimService) processPayment(ctx context.Context, store OrderStore, order *model.Order) (bool, error) {
	failed := s.rand.Float64() < s.params.PaymentFailRate

	statusID := s.registry.PaymentID(model.PaymentStatusCompleted)
	amount := order.Amount
	if failed {
		statusID = s.registry.PaymentID(model.PaymentStatusFailed)
		amount = decimal.Zero
	}

	payment := &model.Payment{
		OrderID:         order.OrderID,
		PaymentDate:     order.OrderDate.Add(time.Duration(randBetween(s.rand, 1, 60)) * time.Minute),
		Method:          choice(s.rand, paymentMethods),
		PaymentStatusID: statusID,
		Amount:          amount,
		Currency:        s.params.Currency,
		TransactionID:   fmt.Sprintf("TX%d%09d", 1+s.rand.Intn(9), s.rand.Intn(1000000000)),
	}
	if err := store.CreatePayment(ctx, payment); err != nil {
		return false, err
	}
	return !failed, nil
}

// simulateDelivery 出貨到送達一次更新完，不走中間狀態
// 日期只往前推: shipped < delivered, shipped < estimated
func (s *OrderSimService) simulateDelivery(ctx context.Context, store OrderStore, order *model.Order) (time.Time, error) {
	shippedDate := order.OrderDate.AddDate(0, 0, randBetween(s.rand, 1, 3))
	deliveredDate := shippedDate.AddDate(0, 0, randBetween(s.rand, 2, 7))
	estimatedDate := shippedDate.AddDate(0, 0, randBetween(s.rand, 3, 8))

	upd := db.DeliveryUpdate{
		DeliveryStatusID: s.registry.DeliveryID(model.DeliveryStatusDelivered),
		DeliveryAddress:  fmt.Sprintf("%d, City-%d, Street-%d", randBetween(s.rand, 10000, 99999), randBetween(s.rand, 1, 999), randBetween(s.rand, 1, 200)),
		ShippingCarrier:  choice(s.rand, carriers),
		TrackingNumber:   fmt.Sprintf("TRK%d", 10000000+s.rand.Intn(90000000)),
		ShippedDate:      shippedDate,
		EstimatedDate:    estimatedDate,
		DeliveredDate:    deliveredDate,
	}
	if err := store.UpdateOrderDelivery(ctx, order.OrderID, upd); err != nil {
		return time.Time{}, err
	}
	return deliveredDate, nil
}

// resolvePostDelivery 送達後的退貨/退款分支，只寫一次最終狀態
// 退款是新增一筆Payment，不修改原付款紀錄
func (s *OrderSimService) resolvePostDelivery(ctx context.Context, store OrderStore, order *model.Order, deliveredAt time.Time) (model.OrderStatus, bool, error) {
	final := model.OrderStatusCompleted
	refunded := false

	if s.rand.Float64() < s.params.OrderReturnRate {
		final = model.OrderStatusReturned

		if s.rand.Float64() < s.params.OrderRefundRate {
			refund := &model.Payment{
				OrderID:         order.OrderID,
				PaymentDate:     deliveredAt.AddDate(0, 0, 2),
				Method:          "Refund",
				PaymentStatusID: s.registry.PaymentID(model.PaymentStatusRefunded),
				Amount:          order.Amount,
				Currency:        s.params.Currency,
				TransactionID:   fmt.Sprintf("RF%d%08d", 1+s.rand.Intn(9), s.rand.Intn(100000000)),
			}
			if err := store.CreatePayment(ctx, refund); err != nil {
				return "", false, err
			}
			final = model.OrderStatusRefunded
			refunded = true
		}
	}

	if err := store.UpdateOrderStatus(ctx, order.OrderID, s.registry.OrderID(final)); err != nil {
		return "", false, err
	}
	return final, refunded, nil
}

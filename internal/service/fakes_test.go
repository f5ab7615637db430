package service

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/store_seeder/internal/domain/model"
	"github.com/RoyceAzure/lab/store_seeder/internal/infra/repository/db"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// fixedRand 固定回傳值的隨機來源
// Intn固定回傳0 (randBetween因此回傳min)，分支走向用機率參數0/1控制
type fixedRand struct {
	float float64
}

func (r *fixedRand) Float64() float64 { return r.float }
func (r *fixedRand) Intn(n int) int   { return 0 }

// memStore 全部存在記憶體的SeedStore，模擬條件式扣庫存與rollback語意
type memStore struct {
	stock          map[uint]int
	prices         map[uint]decimal.Decimal
	categories     map[uint]string
	users          []uint
	orders         map[uint]*model.Order
	orderItems     map[uint][]model.OrderItem
	payments       []model.Payment
	reviews        []model.Review
	wishlist       []model.WishlistItem
	orderStatus    map[string]uint
	paymentStatus  map[string]uint
	deliveryStatus map[string]uint
	nextOrderID    uint
}

func newMemStore() *memStore {
	s := &memStore{
		stock:          make(map[uint]int),
		prices:         make(map[uint]decimal.Decimal),
		categories:     make(map[uint]string),
		orders:         make(map[uint]*model.Order),
		orderItems:     make(map[uint][]model.OrderItem),
		orderStatus:    make(map[string]uint),
		paymentStatus:  make(map[string]uint),
		deliveryStatus: make(map[string]uint),
	}
	for i, key := range model.AllOrderStatuses() {
		s.orderStatus[string(key)] = uint(i + 1)
	}
	for i, key := range model.AllPaymentStatuses() {
		s.paymentStatus[string(key)] = uint(i + 1)
	}
	for i, key := range model.AllDeliveryStatuses() {
		s.deliveryStatus[string(key)] = uint(i + 1)
	}
	return s
}

func (s *memStore) addProduct(id uint, price string, stock int) {
	s.prices[id] = decimal.RequireFromString(price)
	s.stock[id] = stock
}

func (s *memStore) snapshots() []model.ProductSnapshot {
	out := make([]model.ProductSnapshot, 0, len(s.stock))
	for id, stock := range s.stock {
		out = append(out, model.ProductSnapshot{ProductID: id, Price: s.prices[id], Stock: stock})
	}
	return out
}

// --- IStatusRepository ---

func filterKeys(m map[string]uint, keys []string) map[string]uint {
	out := make(map[string]uint)
	for _, k := range keys {
		if id, ok := m[k]; ok {
			out[k] = id
		}
	}
	return out
}

func (s *memStore) GetOrderStatusIDs(ctx context.Context, keys []string) (map[string]uint, error) {
	return filterKeys(s.orderStatus, keys), nil
}

func (s *memStore) GetPaymentStatusIDs(ctx context.Context, keys []string) (map[string]uint, error) {
	return filterKeys(s.paymentStatus, keys), nil
}

func (s *memStore) GetDeliveryStatusIDs(ctx context.Context, keys []string) (map[string]uint, error) {
	return filterKeys(s.deliveryStatus, keys), nil
}

// --- IOrderRepository ---

// CreateOrderWithItems 比照DB行為: 任一品項庫存不足整筆失敗且不留任何變更
func (s *memStore) CreateOrderWithItems(ctx context.Context, order *model.Order, items []model.OrderItem, amount decimal.Decimal) error {
	for _, item := range items {
		if s.stock[item.ProductID] < item.Quantity {
			return db.ErrProductStockNotEnough
		}
	}

	s.nextOrderID++
	order.OrderID = s.nextOrderID
	order.Amount = amount
	for i := range items {
		items[i].OrderID = order.OrderID
		s.stock[items[i].ProductID] -= items[i].Quantity
	}
	s.orders[order.OrderID] = order
	s.orderItems[order.OrderID] = items
	return nil
}

func (s *memStore) GetOrderByID(ctx context.Context, id uint) (*model.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	copied.OrderItems = s.orderItems[id]
	return &copied, nil
}

func (s *memStore) GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error) {
	var out []model.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (s *memStore) UpdateOrderStatus(ctx context.Context, id uint, statusID uint) error {
	order, ok := s.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.OrderStatusID = statusID
	return nil
}

func (s *memStore) UpdateOrderAmount(ctx context.Context, id uint, amount decimal.Decimal) error {
	order, ok := s.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Amount = amount
	return nil
}

func (s *memStore) UpdateOrderDelivery(ctx context.Context, id uint, upd db.DeliveryUpdate) error {
	order, ok := s.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.DeliveryStatusID = &upd.DeliveryStatusID
	order.DeliveryAddress = upd.DeliveryAddress
	order.ShippingCarrier = upd.ShippingCarrier
	order.TrackingNumber = upd.TrackingNumber
	shipped, estimated, delivered := upd.ShippedDate, upd.EstimatedDate, upd.DeliveredDate
	order.ShippedDate = &shipped
	order.EstimatedDate = &estimated
	order.DeliveredDate = &delivered
	return nil
}

// --- IPaymentRepository ---

func (s *memStore) CreatePayment(ctx context.Context, payment *model.Payment) error {
	for _, existing := range s.payments {
		if existing.TransactionID == payment.TransactionID {
			return fmt.Errorf("duplicate transaction id %s", payment.TransactionID)
		}
	}
	payment.PaymentID = uint(len(s.payments) + 1)
	s.payments = append(s.payments, *payment)
	return nil
}

func (s *memStore) GetPaymentsByOrderID(ctx context.Context, orderID uint) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range s.payments {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out, nil
}

// --- IActivityRepository ---

func (s *memStore) GetReviewedProductIDs(ctx context.Context, userID uint, productIDs []uint) (map[uint]struct{}, error) {
	out := make(map[uint]struct{})
	for _, r := range s.reviews {
		if r.UserID != userID {
			continue
		}
		for _, pid := range productIDs {
			if r.ProductID == pid {
				out[pid] = struct{}{}
			}
		}
	}
	return out, nil
}

func (s *memStore) GetWishlistedProductIDs(ctx context.Context, userID uint, productIDs []uint) (map[uint]struct{}, error) {
	out := make(map[uint]struct{})
	for _, w := range s.wishlist {
		if w.UserID != userID {
			continue
		}
		for _, pid := range productIDs {
			if w.ProductID == pid {
				out[pid] = struct{}{}
			}
		}
	}
	return out, nil
}

func (s *memStore) CreateUserActivity(ctx context.Context, reviews []model.Review, wishlist []model.WishlistItem) error {
	s.reviews = append(s.reviews, reviews...)
	s.wishlist = append(s.wishlist, wishlist...)
	return nil
}

// --- IUserRepository ---

func (s *memStore) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	user.UserID = uint(len(s.users) + 1)
	s.users = append(s.users, user.UserID)
	return user, nil
}

func (s *memStore) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	return &model.User{UserID: id}, nil
}

func (s *memStore) GetAllUserIDs(ctx context.Context) ([]uint, error) {
	return s.users, nil
}

// --- IProductRepository ---

func (s *memStore) CreateProduct(ctx context.Context, product *model.Product) error {
	s.prices[product.ProductID] = product.Price
	s.stock[product.ProductID] = int(product.Stock)
	s.categories[product.ProductID] = product.Category
	return nil
}

func (s *memStore) CreateProductsBatch(ctx context.Context, products []model.Product) error {
	for i := range products {
		if err := s.CreateProduct(ctx, &products[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *memStore) GetProductByID(ctx context.Context, productID uint) (*model.Product, error) {
	price, ok := s.prices[productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.Product{ProductID: productID, Category: s.categories[productID], Price: price, Stock: uint(s.stock[productID])}, nil
}

func (s *memStore) GetProductsByIDs(ctx context.Context, ids []uint) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, err := s.GetProductByID(ctx, id); err == nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *memStore) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	for id := range s.prices {
		p, _ := s.GetProductByID(ctx, id)
		out = append(out, *p)
	}
	return out, nil
}

func (s *memStore) GetActiveProductSnapshots(ctx context.Context) ([]model.ProductSnapshot, error) {
	return s.snapshots(), nil
}

func (s *memStore) DeductStock(ctx context.Context, productID uint, quantity int) error {
	if s.stock[productID] < quantity {
		return db.ErrProductStockNotEnough
	}
	s.stock[productID] -= quantity
	return nil
}

// --- IPromotionRepository ---

func (s *memStore) CreatePromotion(ctx context.Context, promo *model.Promotion) error {
	return nil
}

func (s *memStore) GetActivePromotionByCode(ctx context.Context, code string) (*model.Promotion, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore) GetApplications(ctx context.Context, promoID uint) ([]model.PromotionApplication, error) {
	return nil, nil
}

func (s *memStore) ApplyPromotion(ctx context.Context, orderID, promoID uint, newAmount, savings decimal.Decimal) error {
	return nil
}

// --- UnifiedDB ---

func (s *memStore) GetDB() *gorm.DB        { return nil }
func (s *memStore) InitMigrate() error     { return nil }
func (s *memStore) SeedStatusTypes() error { return nil }

// WithinTransaction 記憶體版沒有rollback，靠CreateOrderWithItems自身的all-or-nothing語意
func (s *memStore) WithinTransaction(ctx context.Context, fn func(db.UnifiedDB) error) error {
	return fn(s)
}

var _ db.UnifiedDB = (*memStore)(nil)

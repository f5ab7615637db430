package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/store_seeder/internal/domain/model"
	"github.com/RoyceAzure/lab/store_seeder/internal/infra/repository/db"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidPromoCode       = errors.New("invalid promotion code")
	ErrPromotionExpired       = errors.New("promotion code has expired or is not yet active")
	ErrPromotionUsageExceeded = errors.New("promotion code has reached its usage limit")
	ErrPromoOrderNotFound     = errors.New("order not found")
	ErrMinPurchaseNotMet      = errors.New("order total does not meet the promotion minimum purchase")
	ErrPromotionNotApplicable = errors.New("promotion cannot be applied to the items in this order")
)

// PromotionResult 成功套用促銷的結果
type PromotionResult struct {
	OrderID     uint
	PromotionID uint
	Savings     decimal.Decimal
	NewAmount   decimal.Decimal
}

// PromotionService 促銷碼驗證與套用
type PromotionService struct {
	promoRepo   db.IPromotionRepository
	orderRepo   db.IOrderRepository
	productRepo db.IProductRepository
	now         func() time.Time
}

func NewPromotionService(promoRepo db.IPromotionRepository, orderRepo db.IOrderRepository, productRepo db.IProductRepository) *PromotionService {
	return &PromotionService{
		promoRepo:   promoRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ValidateAndApply 驗證促銷碼並套用到訂單
// 驗證順序: 促銷存在 -> 效期 -> 使用次數 -> 訂單存在 -> 低消 -> 適用範圍
// 套用本身是單一交易，使用次數上限在交易內再檢查一次防併發超刷
func (p *PromotionService) ValidateAndApply(ctx context.Context, orderID uint, promoCode string) (*PromotionResult, error) {
	promo, err := p.promoRepo.GetActivePromotionByCode(ctx, promoCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidPromoCode
		}
		return nil, fmt.Errorf("get promotion failed: %w", err)
	}

	now := p.now()
	if now.Before(promo.ValidFrom) || now.After(promo.ValidTo) {
		return nil, ErrPromotionExpired
	}

	if promo.MaxUses != nil && promo.CurrentUses >= *promo.MaxUses {
		return nil, ErrPromotionUsageExceeded
	}

	order, err := p.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromoOrderNotFound
		}
		return nil, fmt.Errorf("get order failed: %w", err)
	}

	if order.Amount.LessThan(promo.MinPurchase) {
		return nil, ErrMinPurchaseNotMet
	}

	applicable, err := p.isApplicable(ctx, promo, order)
	if err != nil {
		return nil, err
	}
	if !applicable {
		return nil, ErrPromotionNotApplicable
	}

	savings := p.calculateDiscount(promo, order)
	newAmount := order.Amount.Sub(savings).Round(2)

	if err := p.promoRepo.ApplyPromotion(ctx, order.OrderID, promo.PromotionID, newAmount, savings); err != nil {
		if errors.Is(err, db.ErrPromotionUsedUp) {
			return nil, ErrPromotionUsageExceeded
		}
		return nil, fmt.Errorf("apply promotion failed: %w", err)
	}

	return &PromotionResult{
		OrderID:     order.OrderID,
		PromotionID: promo.PromotionID,
		Savings:     savings,
		NewAmount:   newAmount,
	}, nil
}

// calculateDiscount 依促銷類型計算折扣金額
func (p *PromotionService) calculateDiscount(promo *model.Promotion, order *model.Order) decimal.Decimal {
	switch promo.DiscountType {
	case model.DiscountTypePercentage:
		return order.Amount.Mul(promo.DiscountValue.Div(decimal.NewFromInt(100))).Round(2)
	case model.DiscountTypeFixed:
		// 固定折扣不超過訂單總額
		if promo.DiscountValue.GreaterThan(order.Amount) {
			return order.Amount
		}
		return promo.DiscountValue
	case model.DiscountTypeShipping:
		return promo.DiscountValue
	}
	return decimal.Zero
}

// isApplicable 檢查促銷適用範圍
// 沒有任何application紀錄或存在all target時對全訂單適用
func (p *PromotionService) isApplicable(ctx context.Context, promo *model.Promotion, order *model.Order) (bool, error) {
	apps, err := p.promoRepo.GetApplications(ctx, promo.PromotionID)
	if err != nil {
		return false, fmt.Errorf("get promotion applications failed: %w", err)
	}
	if len(apps) == 0 {
		return true, nil
	}

	productTargets := make(map[uint]struct{})
	categoryTargets := make(map[string]struct{})
	for _, app := range apps {
		switch app.TargetType {
		case model.PromoTargetAll:
			return true, nil
		case model.PromoTargetProduct:
			if app.TargetID != nil {
				productTargets[*app.TargetID] = struct{}{}
			}
		case model.PromoTargetCategory:
			if app.TargetCategory != nil {
				categoryTargets[*app.TargetCategory] = struct{}{}
			}
		}
	}

	productIDs := make([]uint, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		if _, ok := productTargets[item.ProductID]; ok {
			return true, nil
		}
		productIDs = append(productIDs, item.ProductID)
	}

	if len(categoryTargets) == 0 || len(productIDs) == 0 {
		return false, nil
	}

	products, err := p.productRepo.GetProductsByIDs(ctx, productIDs)
	if err != nil {
		return false, fmt.Errorf("get order products failed: %w", err)
	}
	for _, product := range products {
		if _, ok := categoryTargets[product.Category]; ok {
			return true, nil
		}
	}
	return false, nil
}

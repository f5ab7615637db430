package db

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/store_seeder/internal/domain/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrPromotionUsedUp 促銷已達使用上限
	ErrPromotionUsedUp = errors.New("promotion has reached its usage limit")
)

type PromotionRepo struct {
	db *DbDao
}

func NewPromotionRepo(db *DbDao) *PromotionRepo {
	return &PromotionRepo{db: db}
}

func (s *PromotionRepo) CreatePromotion(ctx context.Context, promo *model.Promotion) error {
	return s.db.WithContext(ctx).Create(promo).Error
}

func (s *PromotionRepo) GetActivePromotionByCode(ctx context.Context, code string) (*model.Promotion, error) {
	var promo model.Promotion
	err := s.db.WithContext(ctx).
		Where("promo_code = ? AND is_active = ?", code, true).
		First(&promo).Error
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (s *PromotionRepo) GetApplications(ctx context.Context, promoID uint) ([]model.PromotionApplication, error) {
	var apps []model.PromotionApplication
	err := s.db.WithContext(ctx).Where("promo_id = ?", promoID).Find(&apps).Error
	return apps, err
}

// ApplyPromotion 套用促銷: 扣訂單金額 -> 加使用次數 -> 寫使用紀錄，單一交易
// 使用次數的上限檢查放在UPDATE條件內，併發下不會超刷
func (s *PromotionRepo) ApplyPromotion(ctx context.Context, orderID, promoID uint, newAmount, savings decimal.Decimal) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Order{}).
			Where("order_id = ?", orderID).
			Update("amount", newAmount).Error; err != nil {
			return err
		}

		result := tx.Model(&model.Promotion{}).
			Where("promotion_id = ? AND (max_uses IS NULL OR current_uses < max_uses)", promoID).
			Update("current_uses", gorm.Expr("current_uses + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPromotionUsedUp
		}

		usage := model.PromotionUsage{
			PromoID:   promoID,
			OrderID:   orderID,
			Savings:   savings,
			AppliedAt: time.Now().UTC(),
		}
		return tx.Create(&usage).Error
	})
}

package db

import (
	"context"

	"github.com/RoyceAzure/lab/store_seeder/internal/domain/model"
	"gorm.io/gorm"
)

type ActivityRepo struct {
	db *DbDao
}

func NewActivityRepo(db *DbDao) *ActivityRepo {
	return &ActivityRepo{db: db}
}

// GetReviewedProductIDs 查詢該用戶已評論過的商品，寫入前的去重檢查
func (s *ActivityRepo) GetReviewedProductIDs(ctx context.Context, userID uint, productIDs []uint) (map[uint]struct{}, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&model.Review{}).
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return toSet(ids), nil
}

func (s *ActivityRepo) GetWishlistedProductIDs(ctx context.Context, userID uint, productIDs []uint) (map[uint]struct{}, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&model.WishlistItem{}).
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return toSet(ids), nil
}

// CreateUserActivity 同一個用戶的評論與願望清單在同一個交易寫入
// 與訂單交易互相獨立，失敗不影響已commit的訂單
func (s *ActivityRepo) CreateUserActivity(ctx context.Context, reviews []model.Review, wishlist []model.WishlistItem) error {
	if len(reviews) == 0 && len(wishlist) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(reviews) > 0 {
			if err := tx.Create(&reviews).Error; err != nil {
				return err
			}
		}
		if len(wishlist) > 0 {
			if err := tx.Create(&wishlist).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func toSet(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

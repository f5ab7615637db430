package service

import (
	"context"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/store_seeder/internal/domain/model"
)

var reviewComments = []string{
	"Great quality.",
	"Fast delivery.",
	"Would recommend.",
	"Works as expected.",
	"Good value for the price.",
}

// ActivityStore 評論與願望清單需要的存取操作
type ActivityStore interface {
	GetReviewedProductIDs(ctx context.Context, userID uint, productIDs []uint) (map[uint]struct{}, error)
	GetWishlistedProductIDs(ctx context.Context, userID uint, productIDs []uint) (map[uint]struct{}, error)
	CreateUserActivity(ctx context.Context, reviews []model.Review, wishlist []model.WishlistItem) error
}

// ActivityService 根據購買紀錄事後補評論跟願望清單
// 寫入前都先查既有 (user, product) 去重，重跑不會產生重複資料
type ActivityService struct {
	params Params
	rand   Rand
	now    func() time.Time
}

func NewActivityService(params Params, rand Rand) *ActivityService {
	if rand == nil {
		panic("activity service dependency rand is nil")
	}
	return &ActivityService{
		params: params,
		rand:   rand,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// GenerateForUser 為單一用戶產生評論與願望清單，單一交易寫入
// purchased為該用戶所有訂單去重後的商品，catalog為全商品
func (a *ActivityService) GenerateForUser(ctx context.Context, store ActivityStore, userID uint, purchased []uint, catalog []uint) error {
	reviews, err := a.buildReviews(ctx, store, userID, purchased)
	if err != nil {
		return fmt.Errorf("build reviews failed: %w", err)
	}

	wishlist, err := a.buildWishlist(ctx, store, userID, purchased, catalog)
	if err != nil {
		return fmt.Errorf("build wishlist failed: %w", err)
	}

	return store.CreateUserActivity(ctx, reviews, wishlist)
}

func (a *ActivityService) buildReviews(ctx context.Context, store ActivityStore, userID uint, purchased []uint) ([]model.Review, error) {
	toReview := make([]uint, 0)
	for _, pid := range purchased {
		if a.rand.Float64() < a.params.ReviewRate {
			toReview = append(toReview, pid)
		}
	}
	if len(toReview) == 0 {
		return nil, nil
	}

	existing, err := store.GetReviewedProductIDs(ctx, userID, toReview)
	if err != nil {
		return nil, err
	}

	reviews := make([]model.Review, 0, len(toReview))
	for _, pid := range toReview {
		if _, ok := existing[pid]; ok {
			continue
		}
		reviews = append(reviews, model.Review{
			UserID:     userID,
			ProductID:  pid,
			Rating:     randBetween(a.rand, 3, 5),
			Comment:    choice(a.rand, reviewComments),
			ReviewDate: a.now(),
		})
	}
	return reviews, nil
}

func (a *ActivityService) buildWishlist(ctx context.Context, store ActivityStore, userID uint, purchased []uint, catalog []uint) ([]model.WishlistItem, error) {
	purchasedSet := make(map[uint]struct{}, len(purchased))
	for _, pid := range purchased {
		purchasedSet[pid] = struct{}{}
	}

	// 願望清單只從沒買過的商品挑
	candidates := make([]uint, 0, len(catalog))
	for _, pid := range catalog {
		if _, ok := purchasedSet[pid]; !ok {
			candidates = append(candidates, pid)
		}
	}
	if len(candidates) == 0 || a.params.WishlistItemsPerUser == 0 {
		return nil, nil
	}

	picks := make([]uint, 0, a.params.WishlistItemsPerUser)
	for _, i := range sampleIndexes(a.rand, len(candidates), a.params.WishlistItemsPerUser) {
		picks = append(picks, candidates[i])
	}

	existing, err := store.GetWishlistedProductIDs(ctx, userID, picks)
	if err != nil {
		return nil, err
	}

	items := make([]model.WishlistItem, 0, len(picks))
	for _, pid := range picks {
		if _, ok := existing[pid]; ok {
			continue
		}
		items = append(items, model.WishlistItem{
			UserID:    userID,
			ProductID: pid,
			AddedAt:   a.now(),
		})
	}
	return items, nil
}

package service

import (
	"context"
	"errors"
	"strconv"

	evt_model "github.com/RoyceAzure/lab/store_seeder/internal/domain/model/event"
	"github.com/RoyceAzure/lab/store_seeder/internal/infra/producer"
	"github.com/RoyceAzure/lab/store_seeder/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/store_seeder/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/store_seeder/internal/pkg/util"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNoUsers 沒有任何用戶，屬於前置資料缺漏，整個run中止
	ErrNoUsers = errors.New("no users found, seed base entities first")
	// ErrNoProducts 沒有任何可售商品，整個run中止
	ErrNoProducts = errors.New("no active products available")
)

// RunReport seed run結束後的統計
type RunReport struct {
	UsersProcessed  int
	OrdersAttempted int
	OrdersCreated   int
	OrderErrors     int
	ActivityErrors  int
}

// SeedRunner 依序處理每個用戶: 先跑完全部訂單，再補評論與願望清單
// 單筆訂單失敗只rollback該筆，不中斷整個run
type SeedRunner struct {
	store         db.UnifiedDB
	engine        *OrderSimService
	activity      *ActivityService
	params        Params
	rand          Rand
	eventProducer producer.ISeedEventProducer        // 可為nil，未設定brokers時不發事件
	stockCache    redis_repo.IProductStockRepository // 可為nil，未設定redis時不暖快取
}

func NewSeedRunner(store db.UnifiedDB, engine *OrderSimService, activity *ActivityService, params Params, rand Rand) *SeedRunner {
	if util.IsNil(store) {
		panic("seed runner dependency store is nil")
	}
	if engine == nil {
		panic("seed runner dependency engine is nil")
	}
	if activity == nil {
		panic("seed runner dependency activity is nil")
	}
	return &SeedRunner{
		store:    store,
		engine:   engine,
		activity: activity,
		params:   params,
		rand:     rand,
	}
}

func (r *SeedRunner) WithEventProducer(p producer.ISeedEventProducer) *SeedRunner {
	r.eventProducer = p
	return r
}

func (r *SeedRunner) WithStockCache(c redis_repo.IProductStockRepository) *SeedRunner {
	r.stockCache = c
	return r
}

// Run 執行整個seed run，回傳統計
// 設定類錯誤 (缺用戶、缺商品) 直接回傳error中止
func (r *SeedRunner) Run(ctx context.Context) (*RunReport, error) {
	users, err := r.store.GetAllUserIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}

	// 庫存快照只撈一次，之後的庫存保護交給扣庫存時的條件更新
	products, err := r.store.GetActiveProductSnapshots(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrNoProducts
	}

	catalog := make([]uint, 0, len(products))
	for _, p := range products {
		catalog = append(catalog, p.ProductID)
	}

	report := &RunReport{}
	purchasedByUser := make(map[uint][]uint, len(users))

	for _, userID := range users {
		nOrders := randBetween(r.rand, r.params.OrdersPerUserMin, r.params.OrdersPerUserMax)
		for i := 0; i < nOrders; i++ {
			report.OrdersAttempted++

			var summary *OrderSummary
			err := r.store.WithinTransaction(ctx, func(tx db.UnifiedDB) error {
				var simErr error
				summary, simErr = r.engine.SimulateOrderLifecycle(ctx, tx, userID, products)
				return simErr
			})
			if err != nil {
				report.OrderErrors++
				log.Error().Err(err).Uint("user_id", userID).Msg("order simulation rolled back")
				continue
			}
			if summary == nil {
				continue
			}

			report.OrdersCreated++
			for _, item := range summary.Items {
				purchasedByUser[userID] = append(purchasedByUser[userID], item.ProductID)
			}
			r.produceOrderSeeded(ctx, userID, summary)
		}
		report.UsersProcessed++
	}

	// 第二階段: 評論與願望清單，每個用戶獨立交易
	// 兩階段之間crash的話訂單已durable，活動資料缺漏可重跑補齊
	for _, userID := range users {
		purchased := dedupe(purchasedByUser[userID])
		if err := r.activity.GenerateForUser(ctx, r.store, userID, purchased, catalog); err != nil {
			report.ActivityErrors++
			log.Error().Err(err).Uint("user_id", userID).Msg("activity generation rolled back")
		}
	}

	r.warmStockCache(ctx)
	r.produceRunFinished(ctx, report)

	log.Info().
		Int("users", report.UsersProcessed).
		Int("attempted", report.OrdersAttempted).
		Int("created", report.OrdersCreated).
		Int("order_errors", report.OrderErrors).
		Int("activity_errors", report.ActivityErrors).
		Msg("seed run finished")
	return report, nil
}

func (r *SeedRunner) produceOrderSeeded(ctx context.Context, userID uint, summary *OrderSummary) {
	if util.IsNil(r.eventProducer) {
		return
	}

	items := make([]evt_model.SeededItem, 0, len(summary.Items))
	for _, item := range summary.Items {
		items = append(items, evt_model.SeededItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	event := &evt_model.OrderSeededEvent{
		BaseEvent:   evt_model.NewBaseEvent(orderAggregateID(summary.OrderID), evt_model.OrderSeededEventName),
		UserID:      userID,
		OrderID:     summary.OrderID,
		Items:       items,
		Amount:      summary.Amount,
		FinalStatus: string(summary.FinalStatus),
		Returned:    summary.Returned,
		Refunded:    summary.Refunded,
	}
	// 事件只是下游暖機用，發送失敗不影響已commit的訂單
	if err := r.eventProducer.ProduceOrderSeededEvent(ctx, event); err != nil {
		log.Warn().Err(err).Uint("order_id", summary.OrderID).Msg("produce order seeded event failed")
	}
}

func (r *SeedRunner) produceRunFinished(ctx context.Context, report *RunReport) {
	if util.IsNil(r.eventProducer) {
		return
	}
	event := &evt_model.SeedRunFinishedEvent{
		BaseEvent:       evt_model.NewBaseEvent("seed-run", evt_model.SeedRunFinishedEventName),
		UsersProcessed:  report.UsersProcessed,
		OrdersAttempted: report.OrdersAttempted,
		OrdersCreated:   report.OrdersCreated,
	}
	if err := r.eventProducer.ProduceSeedRunFinishedEvent(ctx, event); err != nil {
		log.Warn().Err(err).Msg("produce seed run finished event failed")
	}
}

// warmStockCache 把seed後的最終庫存灌進redis，storefront啟動時直接讀快取
func (r *SeedRunner) warmStockCache(ctx context.Context) {
	if util.IsNil(r.stockCache) {
		return
	}

	products, err := r.store.GetAllProducts(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("load products for stock cache warm failed")
		return
	}
	for _, p := range products {
		if err := r.stockCache.SetProductStock(ctx, p.ProductID, p.Stock); err != nil {
			log.Warn().Err(err).Uint("product_id", p.ProductID).Msg("warm product stock cache failed")
			return
		}
	}
	log.Info().Int("products", len(products)).Msg("product stock cache warmed")
}

func orderAggregateID(orderID uint) string {
	return "order-" + strconv.FormatUint(uint64(orderID), 10)
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

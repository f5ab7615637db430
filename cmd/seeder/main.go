package main

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/RoyceAzure/lab/store_seeder/internal/config"
	"github.com/RoyceAzure/lab/store_seeder/internal/infra/producer"
	"github.com/RoyceAzure/lab/store_seeder/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/store_seeder/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/store_seeder/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const kafkaNumPartitions = 6

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config failed")
	}

	conn, err := db.GetDbConn(cfg.DbName, cfg.DbHost, cfg.DbPort, cfg.DbUser, cfg.DbPas)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database failed")
	}

	store := db.NewUnifiedDB(conn)
	if err := store.InitMigrate(); err != nil {
		log.Fatal().Err(err).Msg("migrate schema failed")
	}
	if err := store.SeedStatusTypes(); err != nil {
		log.Fatal().Err(err).Msg("seed status reference tables failed")
	}

	ctx := context.Background()

	// 狀態對照表啟動時解析一次，缺key直接中止
	registry, err := service.BuildStatusRegistry(ctx, store)
	if err != nil {
		log.Fatal().Err(err).Msg("build status registry failed")
	}

	seed := cfg.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	params := service.Params{
		OrdersPerUserMin:     cfg.OrdersPerUserMin,
		OrdersPerUserMax:     cfg.OrdersPerUserMax,
		MaxItemsPerOrder:     cfg.MaxItemsPerOrder,
		PaymentFailRate:      cfg.PaymentFailRate,
		OrderCancelRate:      cfg.OrderCancelRate,
		OrderReturnRate:      cfg.OrderReturnRate,
		OrderRefundRate:      cfg.OrderRefundRate,
		ReviewRate:           cfg.ReviewRate,
		WishlistItemsPerUser: cfg.WishlistItemsPerUser,
		Currency:             cfg.Currency,
	}

	engine := service.NewOrderSimService(registry, params, rng)
	activity := service.NewActivityService(params, rng)
	runner := service.NewSeedRunner(store, engine, activity, params, rng)

	if len(cfg.KafkaBrokers) > 0 {
		eventProducer := producer.NewSeedEventProducer(cfg.KafkaBrokers, cfg.KafkaTopic, kafkaNumPartitions)
		defer eventProducer.Close()
		runner.WithEventProducer(eventProducer)
	}

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()
		runner.WithStockCache(redis_repo.NewProductStockRepo(redisClient))
	}

	report, err := runner.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("seed run aborted")
	}

	log.Info().
		Int("orders_created", report.OrdersCreated).
		Int("orders_attempted", report.OrdersAttempted).
		Msg("done")
}

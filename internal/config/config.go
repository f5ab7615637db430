package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config 整個seed run的設定，載入後不再變動
// 所有欄位都有預設值，可由環境變數覆寫
type Config struct {
	DbName        string   `mapstructure:"POSTGRES_DB"`
	DbHost        string   `mapstructure:"POSTGRES_HOST"`
	DbPort        string   `mapstructure:"POSTGRES_PORT"`
	DbUser        string   `mapstructure:"POSTGRES_USER"`
	DbPas         string   `mapstructure:"POSTGRES_PASSWORD"`
	RedisAddr     string   `mapstructure:"REDIS_ADDR"`
	RedisPassword string   `mapstructure:"REDIS_PASSWORD"`
	KafkaBrokers  []string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic    string   `mapstructure:"KAFKA_TOPIC"`

	OrdersPerUserMin     int     `mapstructure:"ORDERS_PER_USER_MIN"`
	OrdersPerUserMax     int     `mapstructure:"ORDERS_PER_USER_MAX"`
	MaxItemsPerOrder     int     `mapstructure:"MAX_ITEMS_PER_ORDER"`
	PaymentFailRate      float64 `mapstructure:"PAYMENT_FAIL_RATE"`
	OrderCancelRate      float64 `mapstructure:"ORDER_CANCEL_RATE"`
	OrderReturnRate      float64 `mapstructure:"ORDER_RETURN_RATE"`
	OrderRefundRate      float64 `mapstructure:"ORDER_REFUND_RATE"`
	ReviewRate           float64 `mapstructure:"REVIEW_RATE"`
	WishlistItemsPerUser int     `mapstructure:"WISHLIST_ITEMS_PER_USER"`
	Currency             string  `mapstructure:"CURRENCY"`
	RandSeed             int64   `mapstructure:"RAND_SEED"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("POSTGRES_DB", "lab_store")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_USER", "royce")
	v.SetDefault("POSTGRES_PASSWORD", "password")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "store.seed.orders")

	v.SetDefault("ORDERS_PER_USER_MIN", 1)
	v.SetDefault("ORDERS_PER_USER_MAX", 5)
	v.SetDefault("MAX_ITEMS_PER_ORDER", 5)
	v.SetDefault("PAYMENT_FAIL_RATE", 0.06)
	v.SetDefault("ORDER_CANCEL_RATE", 0.05)
	v.SetDefault("ORDER_RETURN_RATE", 0.03)
	v.SetDefault("ORDER_REFUND_RATE", 0.02)
	v.SetDefault("REVIEW_RATE", 0.35)
	v.SetDefault("WISHLIST_ITEMS_PER_USER", 5)
	v.SetDefault("CURRENCY", "USD")
	v.SetDefault("RAND_SEED", 0)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	// KAFKA_BROKERS 使用逗號分隔，空字串表示不發送事件
	if brokers := v.GetString("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	} else {
		cfg.KafkaBrokers = nil
	}

	// 幣別固定三碼大寫
	cfg.Currency = strings.ToUpper(cfg.Currency)
	if len(cfg.Currency) > 3 {
		cfg.Currency = cfg.Currency[:3]
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.OrdersPerUserMin < 0 || c.OrdersPerUserMax < c.OrdersPerUserMin {
		return fmt.Errorf("invalid orders per user range [%d, %d]", c.OrdersPerUserMin, c.OrdersPerUserMax)
	}
	if c.MaxItemsPerOrder < 1 {
		return fmt.Errorf("invalid max items per order %d", c.MaxItemsPerOrder)
	}
	for name, rate := range map[string]float64{
		"PAYMENT_FAIL_RATE": c.PaymentFailRate,
		"ORDER_CANCEL_RATE": c.OrderCancelRate,
		"ORDER_RETURN_RATE": c.OrderReturnRate,
		"ORDER_REFUND_RATE": c.OrderRefundRate,
		"REVIEW_RATE":       c.ReviewRate,
	} {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("%s must be in [0,1], got %f", name, rate)
		}
	}
	if c.WishlistItemsPerUser < 0 {
		return fmt.Errorf("invalid wishlist items per user %d", c.WishlistItemsPerUser)
	}
	if len(c.Currency) != 3 {
		return fmt.Errorf("currency must be a 3-letter code, got %q", c.Currency)
	}
	return nil
}

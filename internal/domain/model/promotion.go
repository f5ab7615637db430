package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
	DiscountTypeShipping   DiscountType = "shipping"
)

type PromoTargetType string

const (
	PromoTargetAll      PromoTargetType = "all"
	PromoTargetProduct  PromoTargetType = "product"
	PromoTargetCategory PromoTargetType = "category"
)

type Promotion struct {
	PromotionID   uint            `gorm:"primaryKey"`
	PromoCode     string          `gorm:"not null;type:varchar(50);unique"`
	IsActive      bool            `gorm:"not null;default:true"`
	ValidFrom     time.Time       `gorm:"not null"`
	ValidTo       time.Time       `gorm:"not null"`
	MaxUses       *int            `gorm:"null"` // nil表示不限次數
	CurrentUses   int             `gorm:"not null;default:0"`
	MinPurchase   decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	DiscountType  DiscountType    `gorm:"not null;type:varchar(20)"`
	DiscountValue decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	BaseModel
}

// PromotionApplication 定義促銷適用範圍，沒有任何紀錄表示全品項適用
type PromotionApplication struct {
	ApplicationID  uint            `gorm:"primaryKey"`
	PromoID        uint            `gorm:"not null;index"` // 外鍵，關聯到 Promotion
	TargetType     PromoTargetType `gorm:"not null;type:varchar(20)"`
	TargetID       *uint           `gorm:"null"` // target_type=product 時使用
	TargetCategory *string         `gorm:"null;type:varchar(50)"` // target_type=category 時使用
	BaseModel
}

// PromotionUsage 每次成功套用促銷的紀錄
type PromotionUsage struct {
	UsageID   uint            `gorm:"primaryKey"`
	PromoID   uint            `gorm:"not null;index"`
	OrderID   uint            `gorm:"not null;index"`
	Savings   decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	AppliedAt time.Time       `gorm:"not null"`
	BaseModel
}

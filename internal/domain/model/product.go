package model

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ProductID   uint            `gorm:"primaryKey"`
	Code        string          `gorm:"not null;type:varchar(100);unique"`
	Name        string          `gorm:"not null;type:varchar(100)"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	Stock       uint            `gorm:"not null;type:int"`
	Category    string          `gorm:"not null;type:varchar(50)"`
	Description string          `gorm:"not null;type:text"`
	IsActive    bool            `gorm:"not null;default:true"`
	OrderItems  []OrderItem     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	BaseModel
}

// ProductSnapshot 模擬開始時撈出的庫存快照，挑選商品時使用
type ProductSnapshot struct {
	ProductID uint
	Price     decimal.Decimal
	Stock     int
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	OrderID          uint            `gorm:"primaryKey"`
	UserID           uint            `gorm:"not null;index"` // 外鍵，關聯到 User
	OrderItems       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Amount           decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	OrderDate        time.Time       `gorm:"not null"`
	OrderStatusID    uint            `gorm:"not null"`
	DeliveryStatusID *uint           `gorm:"null"` // 出貨前為空
	DeliveryAddress  string          `gorm:"type:varchar(255)"`
	ShippingCarrier  string          `gorm:"type:varchar(50)"`
	TrackingNumber   string          `gorm:"type:varchar(50)"`
	ShippedDate      *time.Time      `gorm:"null"`
	EstimatedDate    *time.Time      `gorm:"null"`
	DeliveredDate    *time.Time      `gorm:"null"`
	BaseModel
}

// OrderItem 成立後不再變動，price為下單當下的快照
type OrderItem struct {
	OrderID   uint            `gorm:"primaryKey"` // 外鍵，關聯到 Order
	ProductID uint            `gorm:"primaryKey"` // 外鍵，關聯到 Product
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	BaseModel
}

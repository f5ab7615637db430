package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 退款另外新增一筆Payment，不修改原本的付款紀錄
type Payment struct {
	PaymentID       uint            `gorm:"primaryKey"`
	OrderID         uint            `gorm:"not null;index"` // 外鍵，關聯到 Order
	PaymentDate     time.Time       `gorm:"not null"`
	Method          string          `gorm:"not null;type:varchar(50)"`
	PaymentStatusID uint            `gorm:"not null"`
	Amount          decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	Currency        string          `gorm:"not null;type:varchar(3)"`
	TransactionID   string          `gorm:"not null;type:varchar(50);unique"`
	BaseModel
}

package model

import (
	"github.com/shopspring/decimal"
)

type SeededItem struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderSeededEvent 每筆寫入完成的模擬訂單發出一筆，給下游projection暖機用
type OrderSeededEvent struct {
	BaseEvent
	UserID      uint            `json:"user_id"`
	OrderID     uint            `json:"order_id"`
	Items       []SeededItem    `json:"items"`
	Amount      decimal.Decimal `json:"amount"`
	FinalStatus string          `json:"final_status"`
	Returned    bool            `json:"returned"`
	Refunded    bool            `json:"refunded"`
}

func (e *OrderSeededEvent) Type() EventType {
	return OrderSeededEventName
}

type SeedRunFinishedEvent struct {
	BaseEvent
	UsersProcessed  int `json:"users_processed"`
	OrdersAttempted int `json:"orders_attempted"`
	OrdersCreated   int `json:"orders_created"`
}

func (e *SeedRunFinishedEvent) Type() EventType {
	return SeedRunFinishedEventName
}

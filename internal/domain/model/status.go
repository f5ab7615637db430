package model

// 狀態代碼為參考資料，模擬開始前必須全部解析成DB id
// 缺少任何一個key都視為設定錯誤，直接中止

type OrderStatus string

const (
	OrderStatusCart       OrderStatus = "Cart"
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusCancelled  OrderStatus = "Cancelled"
	OrderStatusReturned   OrderStatus = "Returned"
	OrderStatusRefunded   OrderStatus = "Refunded"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
	PaymentStatusRefunded  PaymentStatus = "Refunded"
)

type DeliveryStatus string

const (
	DeliveryStatusPreparing      DeliveryStatus = "Preparing"
	DeliveryStatusShipped        DeliveryStatus = "Shipped"
	DeliveryStatusInTransit      DeliveryStatus = "InTransit"
	DeliveryStatusOutForDelivery DeliveryStatus = "OutForDelivery"
	DeliveryStatusDelivered      DeliveryStatus = "Delivered"
	DeliveryStatusFailedAttempt  DeliveryStatus = "FailedAttempt"
	DeliveryStatusReturned       DeliveryStatus = "Returned"
)

func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusCart,
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusCompleted,
		OrderStatusCancelled,
		OrderStatusReturned,
		OrderStatusRefunded,
	}
}

func AllPaymentStatuses() []PaymentStatus {
	return []PaymentStatus{
		PaymentStatusPending,
		PaymentStatusCompleted,
		PaymentStatusFailed,
		PaymentStatusRefunded,
	}
}

func AllDeliveryStatuses() []DeliveryStatus {
	return []DeliveryStatus{
		DeliveryStatusPreparing,
		DeliveryStatusShipped,
		DeliveryStatusInTransit,
		DeliveryStatusOutForDelivery,
		DeliveryStatusDelivered,
		DeliveryStatusFailedAttempt,
		DeliveryStatusReturned,
	}
}

type OrderStatusType struct {
	StatusID  uint   `gorm:"primaryKey"`
	StatusKey string `gorm:"not null;type:varchar(50);unique"`
	BaseModel
}

type PaymentStatusType struct {
	StatusID  uint   `gorm:"primaryKey"`
	StatusKey string `gorm:"not null;type:varchar(50);unique"`
	BaseModel
}

type DeliveryStatusType struct {
	StatusID  uint   `gorm:"primaryKey"`
	StatusKey string `gorm:"not null;type:varchar(50);unique"`
	BaseModel
}

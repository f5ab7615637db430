package model

import (
	"time"

	"github.com/google/uuid"
)

type BaseEvent struct {
	EventID     string    `json:"eventId"`
	AggregateID string    `json:"aggregateId"`
	CreatedAt   time.Time `json:"createdAt"`
	EventType   EventType `json:"eventType"`
}

func NewBaseEvent(aggregateID string, eventType EventType) BaseEvent {
	return BaseEvent{
		EventID:     uuid.NewString(),
		AggregateID: aggregateID,
		CreatedAt:   time.Now().UTC(),
		EventType:   eventType,
	}
}

func (e *BaseEvent) GetID() string {
	return e.EventID
}

type EventType string

const (
	OrderSeededEventName     EventType = "OrderSeeded"
	StockWarmedEventName     EventType = "StockWarmed"
	ActivitySeededEventName  EventType = "ActivitySeeded"
	SeedRunFinishedEventName EventType = "SeedRunFinished"
)

type Event interface {
	Type() EventType
	GetID() string
}

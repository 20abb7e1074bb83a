package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version  string                 `json:"version"`
	Type     Type                   `json:"type"`
	Payload  interface{}            `json:"payload"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Game event types
const (
	WinRecorded      Type = Type(domain.EventTypeWinRecorded)
	DropletsRedeemed Type = Type(domain.EventTypeDropletsRedeemed)
	ClaimAttached    Type = Type(domain.EventTypeClaimAttached)
	CatalogUpdated   Type = Type(domain.EventTypeCatalogUpdated)
	ConfigUpdated    Type = Type(domain.EventTypeConfigUpdated)
	SessionEvicted   Type = Type(domain.EventTypeSessionEvicted)
)

// NewWinRecordedEvent creates a win recorded event
func NewWinRecordedEvent(mobile string, rec domain.WinRecord, droplets, attempts int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WinRecorded,
		Payload: domain.WinRecordedPayload{
			Mobile:    mobile,
			RecordID:  rec.ID,
			PrizeID:   rec.Prize.ID,
			Category:  rec.Prize.Category,
			Droplets:  droplets,
			Attempts:  attempts,
			Timestamp: rec.WonAt.Unix(),
		},
	}
}

// NewDropletsRedeemedEvent creates a redemption event
func NewDropletsRedeemedEvent(mobile string, rec domain.WinRecord, cost, balance int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DropletsRedeemed,
		Payload: domain.DropletsRedeemedPayload{
			Mobile:      mobile,
			RecordID:    rec.ID,
			RewardLabel: rec.Prize.Label,
			Cost:        cost,
			Balance:     balance,
			Timestamp:   rec.WonAt.Unix(),
		},
	}
}

// NewClaimAttachedEvent creates a claim attached event
func NewClaimAttachedEvent(mobile string, rec domain.WinRecord) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ClaimAttached,
		Payload: domain.ClaimAttachedPayload{
			Mobile:    mobile,
			RecordID:  rec.ID,
			Category:  rec.Prize.Category,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewCatalogEvent creates a catalog or config update event
func NewCatalogEvent(t Type, prizeCount int, odds domain.Odds) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: domain.CatalogUpdatedPayload{
			PrizeCount: prizeCount,
			Odds:       odds,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewSessionEvictedEvent creates a session evicted event
func NewSessionEvictedEvent(sessionID, mobile string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SessionEvicted,
		Payload: domain.SessionEvictedPayload{
			SessionID: sessionID,
			Mobile:    mobile,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is the publish side of a bus
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

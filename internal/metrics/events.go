package metrics

import (
	"context"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
	"github.com/kylasweb/IOC-Spinwheel/internal/event"
	"github.com/kylasweb/IOC-Spinwheel/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every game event type
func (e *EventMetricsCollector) Register(bus event.Bus) {
	eventTypes := []event.Type{
		event.WinRecorded,
		event.DropletsRedeemed,
		event.ClaimAttached,
		event.CatalogUpdated,
		event.ConfigUpdated,
		event.SessionEvicted,
	}
	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.WinRecorded:
		var p domain.WinRecordedPayload
		if p, err = event.DecodePayload[domain.WinRecordedPayload](evt.Payload); err == nil {
			GamesPlayed.WithLabelValues(string(p.Category)).Inc()
			DropletsAwarded.Add(float64(p.Droplets))
		}

	case event.DropletsRedeemed:
		var p domain.DropletsRedeemedPayload
		if p, err = event.DecodePayload[domain.DropletsRedeemedPayload](evt.Payload); err == nil {
			DropletsRedeemed.Add(float64(p.Cost))
			Redemptions.WithLabelValues(p.RewardLabel).Inc()
		}

	case event.ClaimAttached:
		var p domain.ClaimAttachedPayload
		if p, err = event.DecodePayload[domain.ClaimAttachedPayload](evt.Payload); err == nil {
			ClaimsAttached.WithLabelValues(string(p.Category)).Inc()
		}

	case event.CatalogUpdated, event.ConfigUpdated:
		var p domain.CatalogUpdatedPayload
		if p, err = event.DecodePayload[domain.CatalogUpdatedPayload](evt.Payload); err == nil {
			CatalogPrizeCount.Set(float64(p.PrizeCount))
		}

	case event.SessionEvicted:
		SessionsEvicted.Inc()
	}

	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgEventPayloadDecode, "type", evt.Type, "error", err)
		return err
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// SessionGaugeJob samples the live session count on the worker pool
type SessionGaugeJob struct {
	Count func() int
}

func (j *SessionGaugeJob) Name() string { return SessionGaugeJobName }

func (j *SessionGaugeJob) Process(ctx context.Context) error {
	SessionsActive.Set(float64(j.Count()))
	return nil
}

package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "ctchen222/Block-Battle/relay"

// Metrics holds the relay's counters. The zero value is not usable; call NewMetrics.
type Metrics struct {
	relayed   metric.Int64Counter
	rejected  metric.Int64Counter
	forwarded metric.Int64Counter
}

// NewMetrics creates the relay counters on the global meter provider.
func NewMetrics() (*Metrics, error) {
	return NewMetricsWithProvider(otel.GetMeterProvider())
}

// NewMetricsWithProvider creates the relay counters on mp.
func NewMetricsWithProvider(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter(meterName)

	relayed, err := meter.Int64Counter("relay.events.relayed",
		metric.WithDescription("Server events delivered to local players"))
	if err != nil {
		return nil, err
	}
	rejected, err := meter.Int64Counter("relay.events.rejected",
		metric.WithDescription("Documents that failed to decode or were not allowed"))
	if err != nil {
		return nil, err
	}
	forwarded, err := meter.Int64Counter("relay.actions.forwarded",
		metric.WithDescription("Action events published for the game engine"))
	if err != nil {
		return nil, err
	}

	return &Metrics{relayed: relayed, rejected: rejected, forwarded: forwarded}, nil
}

// EventRelayed counts an event of the given type sent to players of a room.
func (m *Metrics) EventRelayed(ctx context.Context, eventType string) {
	m.relayed.Add(ctx, 1, metric.WithAttributes(attribute.String("event.type", eventType)))
}

// EventRejected counts a rejected inbound or outbound document.
func (m *Metrics) EventRejected(ctx context.Context, reason string) {
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// ActionForwarded counts an action event published for the engine.
func (m *Metrics) ActionForwarded(ctx context.Context) {
	m.forwarded.Add(ctx, 1)
}

// Package events publishes claim and score changes.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Type names an event
type Type string

const (
	ClaimCreated       Type = "claim.created"
	ClaimStatusChanged Type = "claim.status_changed"
	ScoresUpdated      Type = "journalist.scores_updated"
)

// Event is one published change
type Event struct {
	Type         Type             `json:"type"`
	ClaimID      int64            `json:"claim_id,omitempty"`
	JournalistID int64            `json:"journalist_id,omitempty"`
	Journalist   string           `json:"journalist,omitempty"`
	PlayerName   string           `json:"player_name,omitempty"`
	FromStatus   string           `json:"from_status,omitempty"`
	ToStatus     string           `json:"to_status,omitempty"`
	Truthfulness *decimal.Decimal `json:"truthfulness,omitempty"`
	Speed        *decimal.Decimal `json:"speed,omitempty"`
	Timestamp    time.Time        `json:"timestamp"`
}

// Publisher delivers events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// LogPublisher writes events to the logger. It is used when no broker is
// configured.
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher creates a LogPublisher
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPublisher{logger: logger}
}

// Publish logs the event at debug level
func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	fields := []zap.Field{zap.String("type", string(event.Type))}
	if event.ClaimID != 0 {
		fields = append(fields, zap.Int64("claim_id", event.ClaimID))
	}
	if event.JournalistID != 0 {
		fields = append(fields, zap.Int64("journalist_id", event.JournalistID))
	}
	if event.ToStatus != "" {
		fields = append(fields, zap.String("from_status", event.FromStatus), zap.String("to_status", event.ToStatus))
	}
	if event.Truthfulness != nil && event.Speed != nil {
		fields = append(fields,
			zap.String("truthfulness", event.Truthfulness.String()),
			zap.String("speed", event.Speed.StringFixed(2)),
		)
	}
	p.logger.Debug("event", fields...)
	return nil
}

// Close is a no-op
func (p *LogPublisher) Close() error { return nil }

// Recorder keeps published events in memory
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Publish appends the event
func (r *Recorder) Publish(ctx context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of everything published so far
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Close is a no-op
func (r *Recorder) Close() error { return nil }

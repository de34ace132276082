package events

import (
	"context"

	uuid "github.com/satori/go.uuid"
)

// Type is the type of an audit event.
type Type int

const (
	// All is used by subscribers wanting every event, it has no
	// corresponding payload.
	All Type = iota
	PositionUpdatedEvent
	DeltaUpdatedEvent
	P2PAmountsUpdatedEvent
	IndexesUpdatedEvent
	MatchedEvent
)

var eventStrings = map[Type]string{
	All:                    "ALL",
	PositionUpdatedEvent:   "PositionUpdated",
	DeltaUpdatedEvent:      "DeltaUpdated",
	P2PAmountsUpdatedEvent: "P2PAmountsUpdated",
	IndexesUpdatedEvent:    "IndexesUpdated",
	MatchedEvent:           "Matched",
}

// String gets the string representation of an event type.
func (t Type) String() string {
	s, ok := eventStrings[t]
	if !ok {
		return "UNKNOWN EVENT"
	}
	return s
}

// Event is the common denominator all audit events share. The core emits
// these on every mutation; nothing in the core ever consumes them.
type Event interface {
	Type() Type
	Context() context.Context
	TraceID() string
	MarketID() string
}

// Base common denominator all audit events share.
type Base struct {
	ctx     context.Context
	traceID string
	et      Type
}

type traceIDKey struct{}

// WithTraceID returns a context carrying the given trace id, so all
// events emitted within one external operation share it.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

func traceIDFromContext(ctx context.Context) (context.Context, string) {
	if tID, ok := ctx.Value(traceIDKey{}).(string); ok {
		return ctx, tID
	}
	tID := uuid.NewV4().String()
	return context.WithValue(ctx, traceIDKey{}, tID), tID
}

func newBase(ctx context.Context, t Type) Base {
	ctx, tID := traceIDFromContext(ctx)
	return Base{
		ctx:     ctx,
		traceID: tID,
		et:      t,
	}
}

// TraceID returns the trace id shared by all events of one operation.
func (b Base) TraceID() string {
	return b.traceID
}

// Context returns the event context.
func (b Base) Context() context.Context {
	return b.ctx
}

// Type returns the event type.
func (b Base) Type() Type {
	return b.et
}

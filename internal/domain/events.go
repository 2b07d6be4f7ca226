package domain

import "time"

// EventType identifies a router lifecycle notification.
type EventType string

const (
	EventAdapterRegistered    EventType = "adapterRegistered"
	EventQuoteReceived        EventType = "quoteReceived"
	EventQuoteError           EventType = "quoteError"
	EventAggregationCompleted EventType = "aggregationCompleted"
	EventTradeCompleted       EventType = "tradeCompleted"
	EventTradeFailed          EventType = "tradeFailed"
)

// Event is a side-channel notification emitted by the router at each stage.
// It is not part of any return contract; consumers (logging, metrics)
// subscribe explicitly.
type Event struct {
	Type         EventType     `json:"type"`
	Venue        string        `json:"venue,omitempty"`
	Error        string        `json:"error,omitempty"`
	FallbackUsed bool          `json:"fallbackUsed,omitempty"`
	QuoteCount   int           `json:"quoteCount,omitempty"`
	Attempts     int           `json:"attempts,omitempty"`
	Elapsed      time.Duration `json:"elapsedNs,omitempty"`
	At           time.Time     `json:"at"`
}

// EventSink receives router events. Publish must not block: slow consumers
// should buffer or drop on their side.
type EventSink interface {
	Publish(Event)
}

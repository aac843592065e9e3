package game

import (
	"reflect"
	"time"
)

// EventType identifies a table event
type EventType string

const (
	EventTypeSessionStart   EventType = "session_start"
	EventTypeSettlement     EventType = "settlement"
	EventTypeDealerRetained EventType = "dealer_retained"
	EventTypeDealerRotated  EventType = "dealer_rotated"
	EventTypeStreakAdded    EventType = "streak_added"
	EventTypeGameOver       EventType = "game_over"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent is anything published by a Session
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// SessionStartEvent is published when a session is created or reset
type SessionStartEvent struct {
	SessionID string
	Settings  Settings
	State     State
	timestamp time.Time
}

func (e SessionStartEvent) EventType() EventType { return EventTypeSessionStart }
func (e SessionStartEvent) Timestamp() time.Time { return e.timestamp }

// SettlementEvent is published when a transaction has been applied
type SettlementEvent struct {
	SessionID   string
	HandNumber  int
	Transaction Transaction
	// Before is the state the hand was priced against
	Before    State
	After     State
	timestamp time.Time
}

func (e SettlementEvent) EventType() EventType { return EventTypeSettlement }
func (e SettlementEvent) Timestamp() time.Time { return e.timestamp }

// DealerRetainedEvent is published when a winning dealer keeps the seat
type DealerRetainedEvent struct {
	Dealer    Seat
	Streak    int
	timestamp time.Time
}

func (e DealerRetainedEvent) EventType() EventType { return EventTypeDealerRetained }
func (e DealerRetainedEvent) Timestamp() time.Time { return e.timestamp }

// DealerRotatedEvent is published when the deal passes to the next seat
type DealerRotatedEvent struct {
	From      Seat
	To        Seat
	Round     int
	NewRound  bool
	Manual    bool
	timestamp time.Time
}

func (e DealerRotatedEvent) EventType() EventType { return EventTypeDealerRotated }
func (e DealerRotatedEvent) Timestamp() time.Time { return e.timestamp }

// StreakAddedEvent is published for a manual streak increment
type StreakAddedEvent struct {
	Dealer    Seat
	Streak    int
	timestamp time.Time
}

func (e StreakAddedEvent) EventType() EventType { return EventTypeStreakAdded }
func (e StreakAddedEvent) Timestamp() time.Time { return e.timestamp }

// GameOverEvent is published once when the game ends
type GameOverEvent struct {
	Standings []Standing
	// Forced is set when the operator ended the game before the last round
	Forced    bool
	timestamp time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously in subscription order
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber. Subscribers whose dynamic type cannot be
// compared, such as EventSubscriberFunc, are never matched and must be removed
// by dropping the bus.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if !isComparable(subscriber) {
		return
	}
	for i, sub := range bus.subscribers {
		if !isComparable(sub) {
			continue
		}
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

func isComparable(subscriber EventSubscriber) bool {
	return subscriber != nil && reflect.TypeOf(subscriber).Comparable()
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

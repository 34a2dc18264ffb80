package rules

import (
	"sync"
	"time"
)

// EventType indicates what happened during an action.
type EventType string

const (
	EventGameStarted       EventType = "GAME_STARTED"
	EventDiceRolled        EventType = "DICE_ROLLED"
	EventPlayerMoved       EventType = "PLAYER_MOVED"
	EventPassedGo          EventType = "PASSED_GO"
	EventPropertyPurchased EventType = "PROPERTY_PURCHASED"
	EventPropertyPassed    EventType = "PROPERTY_PASSED"
	EventRentPaid          EventType = "RENT_PAID"
	EventTaxPaid           EventType = "TAX_PAID"
	EventHouseBuilt        EventType = "HOUSE_BUILT"
	EventHotelBuilt        EventType = "HOTEL_BUILT"
	EventCardDrawn         EventType = "CARD_DRAWN"
	EventPaymentMade       EventType = "PAYMENT_MADE"
	EventSentToJail        EventType = "SENT_TO_JAIL"
	EventLeftJail          EventType = "LEFT_JAIL"
	EventJailFinePaid      EventType = "JAIL_FINE_PAID"
	EventJailCardUsed      EventType = "JAIL_CARD_USED"
	EventPlayerBankrupt    EventType = "PLAYER_BANKRUPT"
	EventTurnEnded         EventType = "TURN_ENDED"
	EventGameEnded         EventType = "GAME_ENDED"
)

// Event is one entry of the game's audit log. PlayerID is the acting
// player; TargetID is a property id, card id or counterparty as fitting.
type Event struct {
	Type       EventType
	GameID     string
	PlayerID   string
	TargetID   string
	Amount     int
	Data       string
	TurnNumber int
	Timestamp  time.Time
}

// NewEvent creates an event with the common fields populated.
func NewEvent(eventType EventType, playerID, targetID string) Event {
	return Event{
		Type:      eventType,
		PlayerID:  playerID,
		TargetID:  targetID,
		Timestamp: time.Now(),
	}
}

// NewEventWithAmount creates an event carrying a cash amount or count.
func NewEventWithAmount(eventType EventType, playerID, targetID string, amount int) Event {
	evt := NewEvent(eventType, playerID, targetID)
	evt.Amount = amount
	return evt
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type filtering.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by handle, typed or not.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, listener := range bus.listeners {
		listener(event)
	}
	for _, listener := range bus.typedListeners[event.Type] {
		listener.Callback(event)
	}
}

// PublishBatch publishes events in order.
func (bus *EventBus) PublishBatch(events []Event) {
	for _, event := range events {
		bus.Publish(event)
	}
}

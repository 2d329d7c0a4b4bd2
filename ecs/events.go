package ecs

import "github.com/milk9111/overworld/ecs/component"

// EventType names an event kind carried by the queue.
type EventType string

const EventInteraction EventType = "interaction"

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// InteractionEvent is emitted when the player activates an interactable.
type InteractionEvent struct {
	Entity Entity
	Kind   component.InteractionKind
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

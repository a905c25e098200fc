package service

import (
	"sync"

	"github.com/bnema/audiobatch/internal/domain"
)

// AllBatches subscribes to events from every batch.
const AllBatches = "*"

type EventType string

const (
	EventJobStarted    EventType = "job_started"
	EventJobFinished   EventType = "job_finished"
	EventBatchFinished EventType = "batch_finished"
)

// Event is a progress notification. Done counts finished jobs at the time
// the event was published.
type Event struct {
	Type      EventType
	BatchID   string
	Index     int
	InputPath string
	Status    domain.JobStatus
	Message   string
	Done      int
	Total     int
}

type EventPublisher interface {
	Publish(batchID string, event Event)
}

type EventBus struct {
	subscribers map[string][]chan Event
	mu          sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]chan Event),
	}
}

// defaultSubscriberBuffer bounds how far a subscriber may fall behind
// before Publish starts dropping its events.
const defaultSubscriberBuffer = 64

// EventsPerBatch is the number of events a Run over jobs files publishes.
// A subscriber buffered to this size never loses an event of that batch.
func EventsPerBatch(jobs int) int {
	return 2*jobs + 1
}

func (eb *EventBus) Subscribe(batchID string) chan Event {
	return eb.SubscribeBuffered(batchID, defaultSubscriberBuffer)
}

// SubscribeBuffered is Subscribe with a caller-chosen buffer size.
func (eb *EventBus) SubscribeBuffered(batchID string, size int) chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	ch := make(chan Event, max(size, 1))
	eb.subscribers[batchID] = append(eb.subscribers[batchID], ch)
	return ch
}

func (eb *EventBus) Unsubscribe(batchID string, ch chan Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subs := eb.subscribers[batchID]
	for i, sub := range subs {
		if sub == ch {
			eb.subscribers[batchID] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}

	if len(eb.subscribers[batchID]) == 0 {
		delete(eb.subscribers, batchID)
	}
}

func (eb *EventBus) Publish(batchID string, event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	event.BatchID = batchID
	for _, key := range []string{batchID, AllBatches} {
		for _, ch := range eb.subscribers[key] {
			select {
			case ch <- event:
			default:
				// Drop event if subscriber is slow
			}
		}
	}
}

// bus.go - Asynchronous fan-out of task change events
//
// Requests publish into a buffered channel and return immediately; one background
// goroutine drains the channel in FIFO order and hands every event to each sink
// (MQTT broker, WebSocket hub). A full queue drops the event instead of blocking
// the request.

package events

import (
	"context"
	"sync"
	"time"

	"go-task-backend/models"

	"github.com/sirupsen/logrus"
)

// Event types.
const (
	TaskCreated = "task.created"
	TaskUpdated = "task.updated"
	TaskDeleted = "task.deleted"
)

type Event struct {
	Type    string       `json:"type"`
	TaskID  string       `json:"taskId"`
	Task    *models.Task `json:"task,omitempty"` // Snapshot after the change (before it, for deletes)
	ActorID string       `json:"actorId"`
	At      time.Time    `json:"at"`
}

// Sink receives events from the bus worker.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, ev Event) error
}

type Bus struct {
	queue chan Event
	log   *logrus.Entry

	mu    sync.RWMutex
	sinks []Sink
}

func NewBus(capacity int, log *logrus.Entry) *Bus {
	return &Bus{
		queue: make(chan Event, capacity),
		log:   log.WithField("component", "events.Bus"),
	}
}

// Subscribe adds a sink. Safe to call while Run is active.
func (b *Bus) Subscribe(s Sink) {
	b.mu.Lock()
	b.sinks = append(b.sinks, s)
	b.mu.Unlock()
}

// Publish enqueues ev without blocking. It reports false when the queue was full.
func (b *Bus) Publish(ev Event) bool {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	select {
	case b.queue <- ev:
		return true
	default:
		b.log.WithFields(logrus.Fields{"type": ev.Type, "task_id": ev.TaskID}).Warn("event queue full, dropping event")
		return false
	}
}

// Len is the number of events waiting in the queue.
func (b *Bus) Len() int {
	return len(b.queue)
}

// Run drains the queue until ctx is cancelled.
func (b *Bus) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-b.queue:
			b.dispatch(ctx, ev)
		}
	}
}

func (b *Bus) dispatch(ctx context.Context, ev Event) {
	b.mu.RLock()
	sinks := make([]Sink, len(b.sinks))
	copy(sinks, b.sinks)
	b.mu.RUnlock()

	for _, s := range sinks {
		if err := s.Deliver(ctx, ev); err != nil {
			b.log.WithError(err).WithFields(logrus.Fields{
				"sink": s.Name(),
				"type": ev.Type,
			}).Error("event delivery failed")
		}
	}
}

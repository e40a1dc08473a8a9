package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"trovacasa/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// PropertyEventQueue decouples property creation from the notification
// pipeline: the HTTP handler pushes a committed listing and returns, and
// subscribed handlers process it on a background goroutine. A full queue
// drops the event rather than blocking the creation response.
type PropertyEventQueue struct {
	items    chan *models.Property
	done     chan struct{}
	maxSize  int
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func(*models.Property) error
}

// NewPropertyEventQueue creates a new event queue with the specified buffer size
func NewPropertyEventQueue(bufferSize int, logger *logrus.Logger) *PropertyEventQueue {
	return &PropertyEventQueue{
		items:    make(chan *models.Property, bufferSize),
		done:     make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]func(*models.Property) error, 0),
	}
}

// Push adds a newly created property to the queue
func (q *PropertyEventQueue) Push(property *models.Property) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	q.mu.RUnlock()

	// Non-blocking send to prevent deadlocks
	select {
	case q.items <- property:
		q.logger.WithField("property_id", property.ID).Debug("Pushed property event to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler function that will be called for each event
func (q *PropertyEventQueue) Subscribe(handler func(*models.Property) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing items in the queue
func (q *PropertyEventQueue) Start() {
	go q.process()
}

// process handles the queue processing loop
func (q *PropertyEventQueue) process() {
	for {
		select {
		case <-q.done:
			return
		case property := <-q.items:
			q.processEvent(property)
		}
	}
}

// processEvent sends the property to all subscribed handlers
func (q *PropertyEventQueue) processEvent(property *models.Property) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(property); err != nil {
			q.logger.WithError(err).Error("Handler failed to process property event")
		}
	}
}

// Close stops the queue and prevents new items from being added
func (q *PropertyEventQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.done)
	close(q.items)
	return nil
}

// Len returns the current number of events in the queue
func (q *PropertyEventQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed
func (q *PropertyEventQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

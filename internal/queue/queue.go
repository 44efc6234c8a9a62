package queue

import (
	"fmt"
	"log"
	"sync"
	"time"
)

const (
	// TopicPostStatusChanged carries aggregate status transitions computed by
	// the publishing engine.
	TopicPostStatusChanged = "post_status_events"
	// TopicDeliveryRetries carries retry-reset jobs on the RabbitMQ side; the
	// constant lives here so controller and worker agree on the queue name.
	TopicDeliveryRetries = "delivery_retries"
)

// PostStatusEvent is published whenever a reconcile changes a post's
// aggregate status.
type PostStatusEvent struct {
	PostID int    `json:"post_id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// RetryJob asks the worker to reset one failed delivery back to pending.
type RetryJob struct {
	DeliveryID int `json:"delivery_id"`
}

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is a production-ready in-memory queue with retry
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts: %+v\n", job.MaxRetries, job.Payload)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartPostStatusSubscriber logs aggregate status transitions. The
// diagnostics/reporting surface consumes these events in the full system.
func StartPostStatusSubscriber(q Queue) {
	go func() {
		err := q.Subscribe(TopicPostStatusChanged, func(payload any) error {
			evt, ok := payload.(PostStatusEvent)
			if !ok {
				log.Println("⚠️ Invalid payload type, expected PostStatusEvent")
				return nil
			}

			if evt.Error != "" {
				log.Printf("📣 Post %d is now %s: %s\n", evt.PostID, evt.Status, evt.Error)
			} else {
				log.Printf("📣 Post %d is now %s\n", evt.PostID, evt.Status)
			}
			return nil
		})

		if err != nil {
			log.Println("⚠️ Failed to start subscriber for", TopicPostStatusChanged, ":", err)
		}
	}()
}

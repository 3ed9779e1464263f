package notification

import (
	"context"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"hotel-ops-backend/internal/model"
	"hotel-ops-backend/internal/store"
)

// Sender delivers a single web push message.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender sends through the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool pushes urgent notifications to the devices of the owning tenant.
type WorkerPool struct {
	size    int
	jobs    chan int64
	store   store.Store
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a pool of size workers. Jobs are notification ids.
func NewWorkerPool(size int, s store.Store, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan int64, size*16),
		store:   s,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case notificationID := <-wp.jobs:
			wp.deliver(ctx, notificationID)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a notification for delivery. It drops the job when the
// queue is full so request handlers never block on push delivery.
func (wp *WorkerPool) Dispatch(notificationID int64) {
	select {
	case wp.jobs <- notificationID:
	default:
		log.Printf("Push queue full, dropping notification %d", notificationID)
	}
}

// deliver sends one notification to every subscription of its tenant.
func (wp *WorkerPool) deliver(ctx context.Context, notificationID int64) {
	n, err := wp.store.GetNotification(ctx, notificationID)
	if err != nil {
		log.Printf("Error loading notification %d: %v", notificationID, err)
		return
	}

	subscriptions, err := wp.store.TenantSubscriptions(ctx, n.TenantID)
	if err != nil {
		log.Printf("Error fetching subscriptions for tenant %d: %v", n.TenantID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	log.Printf("Sending notification %d to %d devices of tenant %d", n.ID, len(subscriptions), n.TenantID)
	payload := []byte(n.Priority + ": " + n.Message)
	for _, sub := range subscriptions {
		wp.send(ctx, sub, payload)
	}
}

func (wp *WorkerPool) send(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.store.DeleteSubscription(ctx, sub.TenantID, sub.Endpoint); err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}

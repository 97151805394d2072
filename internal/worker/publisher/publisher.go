package publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"time"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"

	"github.com/corray333/finance-dashboard/internal/changefeed"
	"github.com/corray333/finance-dashboard/internal/dal/rabbitmq"
)

// queuedEvent is a change event waiting to be published, with retry
// bookkeeping for failed publishes.
type queuedEvent struct {
	event       changefeed.Event
	retryCount  int
	nextRetryAt time.Time
}

// Worker fans committed order changes out to RabbitMQ so other systems
// (kitchen displays, audit) can react without polling the dashboard.
// Events are buffered in memory; publish failures retry with exponential
// backoff until maxRetries, then the event is dropped with a log line.
// The retry applies to this notification fanout only, never to the
// upstream mutation itself.
type Worker struct {
	rabbitClient *rabbitmq.Client
	feed         *changefeed.Feed
	pollInterval time.Duration
	batchSize    int
	maxRetries   int
	exchangeName string
	routingKey   string
	stopCh       chan struct{}

	queue []queuedEvent
}

// NewWorker creates a new change publisher.
func NewWorker(rabbitClient *rabbitmq.Client, feed *changefeed.Feed) *Worker {
	pollIntervalSeconds := viper.GetInt("rabbitmq.publisher.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 5
	}

	batchSize := viper.GetInt("rabbitmq.publisher.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	maxRetries := viper.GetInt("rabbitmq.publisher.max_retries")
	if maxRetries == 0 {
		maxRetries = 5
	}

	return &Worker{
		rabbitClient: rabbitClient,
		feed:         feed,
		pollInterval: time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:    batchSize,
		maxRetries:   maxRetries,
		exchangeName: viper.GetString("rabbitmq.publisher.exchange"),
		routingKey:   viper.GetString("rabbitmq.publisher.routing_key"),
		stopCh:       make(chan struct{}),
	}
}

// Start begins publishing change events.
func (w *Worker) Start(ctx context.Context) {
	events, cancel := w.feed.Subscribe(64)
	defer cancel()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Change publisher started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Change publisher shutting down")

			return
		case <-w.stopCh:
			slog.Info("Change publisher stopped")

			return
		case event, ok := <-events:
			if !ok {
				return
			}
			w.queue = append(w.queue, queuedEvent{event: event})
		case <-ticker.C:
			w.publishDue()
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// publishDue publishes queued events whose retry time has come.
func (w *Worker) publishDue() {
	if len(w.queue) == 0 {
		return
	}

	now := time.Now()
	remaining := w.queue[:0]
	published := 0

	for _, queued := range w.queue {
		if published >= w.batchSize || queued.nextRetryAt.After(now) {
			remaining = append(remaining, queued)
			continue
		}

		if err := w.publish(queued.event); err != nil {
			queued.retryCount++
			if queued.retryCount >= w.maxRetries {
				slog.Warn("Max retries reached for change event, dropping",
					"order_id", queued.event.OrderID,
					"retry_count", queued.retryCount,
					"error", err,
				)

				continue
			}

			// 10s, 20s, 40s, 80s, etc.
			backoffSeconds := math.Pow(2, float64(queued.retryCount)) * 5
			queued.nextRetryAt = now.Add(time.Duration(backoffSeconds) * time.Second)

			slog.Warn("Failed to publish change event, will retry",
				"order_id", queued.event.OrderID,
				"retry_count", queued.retryCount,
				"next_retry", queued.nextRetryAt,
				"error", err,
			)

			remaining = append(remaining, queued)

			continue
		}

		published++
	}

	w.queue = remaining

	if published > 0 {
		slog.Info("Published change events", "count", published)
	}
}

func (w *Worker) publish(event changefeed.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return w.rabbitClient.Channel().Publish(
		w.exchangeName,
		w.routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload,
		},
	)
}

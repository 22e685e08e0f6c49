// Package queue implements the batching message bus consumer feeding the
// projection services. One Reader owns one queue: it maintains the broker
// session, buffers decoded messages, and flushes them to its processor in
// batches that are acknowledged or requeued as a whole.
package queue

import (
	"context"
	"fmt"
	"time"

	"trade-history-service/internal/metrics"
	"trade-history-service/internal/service"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const (
	reconnectInterval = 30 * time.Second
	stopGrace         = 10 * time.Second
	fullBatchDelay    = 1 * time.Millisecond
	idleDelay         = 1 * time.Second

	defaultPrefetch  = 1000
	defaultBatchSize = 100
)

// Config describes one consumed queue.
type Config struct {
	URI         string
	Exchange    string
	Queue       string
	RoutingKeys []string
	Prefetch    int // max unacknowledged messages in flight
	BatchSize   int // max items handed to the processor at once
}

// Decoder parses one message body. A decode error marks the message as
// poison: it is dropped without redelivery.
type Decoder[T any] func(body []byte) (T, error)

// ProcessFunc projects one batch. Its Result decides the fate of every
// message in the batch.
type ProcessFunc[T any] func(ctx context.Context, batch []T) service.Result

// Reader consumes one queue in batches.
type Reader[T any] struct {
	cfg     Config
	decode  Decoder[T]
	process ProcessFunc[T]
	log     zerolog.Logger

	buffer *fifo[T]
	cancel context.CancelFunc
	done   chan struct{}
}

// NewReader creates a Reader. Zero Prefetch and BatchSize fall back to
// defaults.
func NewReader[T any](cfg Config, decode Decoder[T], process ProcessFunc[T], log zerolog.Logger) *Reader[T] {
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = defaultPrefetch
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	return &Reader[T]{
		cfg:     cfg,
		decode:  decode,
		process: process,
		log:     log.With().Str("queue", cfg.Queue).Logger(),
		buffer:  &fifo[T]{},
		done:    make(chan struct{}),
	}
}

// Start launches the consume loop. It returns immediately; connection
// failures are retried until Stop.
func (r *Reader[T]) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	go r.run(ctx)
	r.log.Info().
		Str("exchange", r.cfg.Exchange).
		Int("prefetch", r.cfg.Prefetch).
		Int("batch_size", r.cfg.BatchSize).
		Msg("Queue reader started")
}

// Stop drains the buffer and shuts the reader down, waiting at most the
// stop grace period. Anything still buffered afterwards is dropped locally;
// the broker redelivers it on the next start since it was never acknowledged.
func (r *Reader[T]) Stop() {
	r.cancel()

	timer := time.NewTimer(stopGrace)
	defer timer.Stop()
	select {
	case <-r.done:
	case <-timer.C:
		r.log.Warn().Msg("Queue reader did not stop within grace period")
	}

	if leftover := r.buffer.clear(); leftover > 0 {
		r.log.Warn().Int("count", leftover).Msg("Unprocessed messages dropped on shutdown, broker will redeliver")
	}
	metrics.IngestBufferDepth.WithLabelValues(r.cfg.Queue).Set(0)
	r.log.Info().Msg("Queue reader stopped")
}

func (r *Reader[T]) run(ctx context.Context) {
	defer close(r.done)

	for ctx.Err() == nil {
		if err := r.session(ctx); err != nil {
			r.log.Error().Err(err).Dur("retry_in", reconnectInterval).Msg("Queue session failed")
			metrics.QueueReconnectsTotal.WithLabelValues(r.cfg.Queue).Inc()
			wait(ctx, reconnectInterval)
		}
	}
}

// session holds one broker connection from dial to close. It returns nil
// only on a clean context-driven shutdown.
func (r *Reader[T]) session(ctx context.Context) error {
	conn, err := amqp.Dial(r.cfg.URI)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	if err := ch.Qos(r.cfg.Prefetch, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}
	if err := ch.ExchangeDeclare(r.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", r.cfg.Exchange, err)
	}
	q, err := ch.QueueDeclare(r.cfg.Queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", r.cfg.Queue, err)
	}
	for _, key := range r.cfg.RoutingKeys {
		if err := ch.QueueBind(q.Name, key, r.cfg.Exchange, false, nil); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, r.cfg.Exchange, err)
		}
	}
	deliveries, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	r.log.Info().Msg("Queue session established")

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	intakeDone := make(chan struct{})
	go r.intake(deliveries, intakeDone)

	err = r.flushLoop(ctx, closed)
	conn.Close()
	<-intakeDone
	return err
}

// intake decodes deliveries into the buffer until the consume channel
// closes. Poison messages are rejected without requeue so they cannot wedge
// the queue.
func (r *Reader[T]) intake(deliveries <-chan amqp.Delivery, done chan<- struct{}) {
	defer close(done)

	for d := range deliveries {
		value, err := r.decode(d.Body)
		if err != nil {
			r.log.Warn().Err(err).Uint64("delivery_tag", d.DeliveryTag).Msg("Dropping malformed message")
			metrics.IngestItemsTotal.WithLabelValues(r.cfg.Queue, metrics.OutcomePoison).Inc()
			if err := d.Reject(false); err != nil {
				r.log.Warn().Err(err).Msg("Reject failed")
			}
			continue
		}
		r.buffer.push(newItem(value, d.Acknowledger, d.DeliveryTag))
		metrics.IngestBufferDepth.WithLabelValues(r.cfg.Queue).Set(float64(r.buffer.len()))
	}
}

// flushLoop hands buffered items to the processor. On shutdown it keeps
// flushing until the buffer is empty so nothing decoded is thrown away
// needlessly.
func (r *Reader[T]) flushLoop(ctx context.Context, closed <-chan *amqp.Error) error {
	for {
		select {
		case amqpErr := <-closed:
			if amqpErr != nil {
				return fmt.Errorf("connection closed: %w", amqpErr)
			}
			return fmt.Errorf("connection closed")
		default:
		}

		batch := r.buffer.popN(r.cfg.BatchSize)
		metrics.IngestBufferDepth.WithLabelValues(r.cfg.Queue).Set(float64(r.buffer.len()))

		if len(batch) == 0 {
			if ctx.Err() != nil {
				return nil
			}
			wait(ctx, idleDelay)
			continue
		}

		r.flush(ctx, batch)

		if len(batch) == r.cfg.BatchSize {
			// Full batch: more is probably waiting, yield only briefly.
			time.Sleep(fullBatchDelay)
		}
	}
}

// flush settles one batch: every message is acknowledged on success or
// requeued on failure. No partial outcomes.
func (r *Reader[T]) flush(ctx context.Context, batch []*Item[T]) {
	values := make([]T, len(batch))
	for i, item := range batch {
		values[i] = item.Value
	}

	start := time.Now()
	res := r.process(ctx, values)
	metrics.IngestBatchDuration.WithLabelValues(r.cfg.Queue).Observe(time.Since(start).Seconds())

	if res.Retry {
		r.log.Warn().
			Int("size", len(batch)).
			Dur("backoff", res.Backoff).
			Msg("Batch projection failed, requeueing")
		wait(ctx, res.Backoff)
		for _, item := range batch {
			if err := item.Reject(true); err != nil {
				r.log.Warn().Err(err).Msg("Requeue failed")
			}
		}
		metrics.IngestBatchesTotal.WithLabelValues(r.cfg.Queue, metrics.OutcomeRequeued).Inc()
		metrics.IngestItemsTotal.WithLabelValues(r.cfg.Queue, metrics.OutcomeRequeued).Add(float64(len(batch)))
		return
	}

	for _, item := range batch {
		if err := item.Accept(); err != nil {
			r.log.Warn().Err(err).Msg("Ack failed")
		}
	}
	metrics.IngestBatchesTotal.WithLabelValues(r.cfg.Queue, metrics.OutcomeAccepted).Inc()
	metrics.IngestItemsTotal.WithLabelValues(r.cfg.Queue, metrics.OutcomeAccepted).Add(float64(len(batch)))
}

// wait sleeps for d or until ctx is cancelled, whichever comes first.
func wait(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

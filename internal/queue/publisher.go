package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// DefaultPublishTimeout bounds one Publish, dial and AMQP handshake
// included.
const DefaultPublishTimeout = 2 * time.Second

// Publisher sends ReservationEvents to a durable RabbitMQ queue.  Each
// Publish dials the broker, so a broker outage only affects the events
// published while it lasts.  A Publish never takes longer than the
// publisher timeout or the caller's deadline, whichever comes first.
// Errors are logged and returned so the caller can choose to ignore them.
type Publisher struct {
	url     string
	queue   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewPublisher returns a Publisher for the broker at url.  An empty queue
// name selects DefaultQueue.
func NewPublisher(url, queue string, logger *zap.Logger) *Publisher {
	if queue == "" {
		queue = DefaultQueue
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{url: url, queue: queue, timeout: DefaultPublishTimeout, logger: logger.Named("publisher")}
}

// WithTimeout returns p with a different per-publish bound.
func (p *Publisher) WithTimeout(d time.Duration) *Publisher {
	cp := *p
	if d > 0 {
		cp.timeout = d
	}
	return &cp
}

// dial connects with a deadline covering TCP connect and the AMQP
// handshake, so a broker that accepts but never answers cannot stall the
// caller.
func (p *Publisher) dial(ctx context.Context) (*amqp.Connection, error) {
	deadline, _ := ctx.Deadline()
	budget := time.Until(deadline)
	if budget <= 0 {
		return nil, context.DeadlineExceeded
	}
	type result struct {
		conn *amqp.Connection
		err  error
	}
	done := make(chan result, 1)
	go func() {
		conn, err := amqp.DialConfig(p.url, amqp.Config{
			Dial:      amqp.DefaultDial(budget),
			Heartbeat: 10 * time.Second,
			Locale:    "en_US",
		})
		done <- result{conn, err}
	}()
	select {
	case r := <-done:
		return r.conn, r.err
	case <-ctx.Done():
		// the dial deadline is the same, so the goroutine finishes shortly
		go func() {
			if r := <-done; r.conn != nil {
				_ = r.conn.Close()
			}
		}()
		return nil, ctx.Err()
	}
}

func (p *Publisher) Publish(ctx context.Context, event ReservationEvent) error {
	log := p.logger.With(zap.String("type", string(event.Type)), zap.Int64("reservation_id", event.ReservationID))

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := p.dial(ctx)
	if err != nil {
		log.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		log.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Warn("rabbitmq: marshal event failed", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Type:         string(event.Type),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		log.Warn("rabbitmq: publish failed", zap.Error(err))
		return err
	}
	log.Debug("rabbitmq: event published")
	return nil
}

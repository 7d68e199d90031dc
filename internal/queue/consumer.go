package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AuditConsumer drains the lifecycle queue and appends one line per event
// to an audit log file.
type AuditConsumer struct {
	url     string
	queue   string
	logPath string
	logger  *zap.Logger
}

func NewAuditConsumer(url, queue, logPath string, logger *zap.Logger) *AuditConsumer {
	if queue == "" {
		queue = DefaultQueue
	}
	if logPath == "" {
		logPath = filepath.Join("logs", "reservations.log")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditConsumer{url: url, queue: queue, logPath: logPath, logger: logger.Named("audit-consumer")}
}

// Run connects to the broker, declares the queue (durable) and consumes
// until ctx is cancelled.  Lost connections are retried with exponential
// backoff capped at 30s; malformed messages are rejected without requeue
// so the consumer keeps going.
func (c *AuditConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.logger.Warn("failed to dial broker", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("consume loop ended; reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *AuditConsumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.logger.Warn("set QoS failed", zap.Error(err))
	}

	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := c.HandleMessage(d.Body); err != nil {
			c.logger.Warn("handle message failed", zap.Error(err))
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// HandleMessage decodes one event and appends its audit line.
func (c *AuditConsumer) HandleMessage(body []byte) error {
	var ev ReservationEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Type == "" {
		return errors.New("event without type")
	}
	if err := os.MkdirAll(filepath.Dir(c.logPath), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(c.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatAuditLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatAuditLine renders ev as a single human friendly line.
func FormatAuditLine(ev ReservationEvent) string {
	if ev.Type == EventCancelled {
		return fmt.Sprintf("[%s] %s | reservation_id=%d\n", ev.OccurredAt, ev.Type, ev.ReservationID)
	}
	return fmt.Sprintf("[%s] %s | reservation_id=%d | name=%q | email=%q | datetime=%q | size=%d\n",
		ev.OccurredAt, ev.Type, ev.ReservationID, ev.Name, ev.Email, ev.DateTime, ev.Size)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

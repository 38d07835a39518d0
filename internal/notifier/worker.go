// Package notifier consumes password-reset events from the message broker
// and delivers them through a pluggable Notifier. The default delivery
// writes to the log, which is enough for local setups; an SMTP sender
// plugs in behind the same interface.
package notifier

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/furari-app/furari/internal/logging"
	"github.com/furari-app/furari/internal/mq"
)

// Notifier delivers one message to an account holder.
type Notifier interface {
	Notify(subject, message string) error
}

// Worker pulls deliveries off the queue and hands them to the notifier.
// Failed deliveries are requeued once by the broker via Nack.
type Worker struct {
	consumer *mq.Consumer
	notifier Notifier
	logger   logging.Logger
}

func NewWorker(consumer *mq.Consumer, n Notifier, logger logging.Logger) *Worker {
	return &Worker{consumer: consumer, notifier: n, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	deliveries, err := w.consumer.Deliveries(ctx)
	if err != nil {
		return fmt.Errorf("consume failed: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			if err := w.handleDelivery(d); err != nil {
				w.logger.Error(ctx, "handle delivery failed", "key", d.RoutingKey, "error", err)
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (w *Worker) handleDelivery(d amqp.Delivery) error {
	switch d.RoutingKey {
	case mq.RKPasswordResetRequested:
		ev, err := mq.Unmarshal[mq.PasswordResetRequested](d.Body)
		if err != nil {
			return err
		}
		expires := time.Unix(ev.ExpiresAt, 0).UTC()
		return w.notifier.Notify("Password reset",
			fmt.Sprintf("To: %s. Your reset code is %s. It expires at %s.",
				ev.Email, ev.Code, expires.Format(time.RFC3339)))
	default:
		w.logger.Warn(context.Background(), "skip unknown routing key", "key", d.RoutingKey)
	}
	return nil
}

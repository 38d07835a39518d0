package notifier

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/furari-app/furari/internal/logging"
	"github.com/furari-app/furari/internal/mq"
)

type fakeNotifier struct {
	subjects []string
	messages []string
	err      error
}

func (f *fakeNotifier) Notify(subject, message string) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.messages = append(f.messages, message)
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleDelivery_PasswordReset(t *testing.T) {
	n := &fakeNotifier{}
	w := NewWorker(nil, n, testLogger())

	body, err := json.Marshal(mq.PasswordResetRequested{
		Email:     "a@b.example",
		Code:      "c0de",
		ExpiresAt: 1700000000,
	})
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}

	if err := w.handleDelivery(amqp.Delivery{RoutingKey: mq.RKPasswordResetRequested, Body: body}); err != nil {
		t.Fatalf("handleDelivery error: %v", err)
	}

	if len(n.messages) != 1 {
		t.Fatalf("want one notification, got %d", len(n.messages))
	}
	if !strings.Contains(n.messages[0], "a@b.example") || !strings.Contains(n.messages[0], "c0de") {
		t.Fatalf("message missing fields: %q", n.messages[0])
	}
}

func TestHandleDelivery_BadPayload(t *testing.T) {
	w := NewWorker(nil, &fakeNotifier{}, testLogger())

	err := w.handleDelivery(amqp.Delivery{RoutingKey: mq.RKPasswordResetRequested, Body: []byte("{")})
	if err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestHandleDelivery_UnknownKeyIsAcked(t *testing.T) {
	w := NewWorker(nil, &fakeNotifier{}, testLogger())

	if err := w.handleDelivery(amqp.Delivery{RoutingKey: "other.key"}); err != nil {
		t.Fatalf("unknown keys must not error: %v", err)
	}
}

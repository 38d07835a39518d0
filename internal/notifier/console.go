package notifier

import (
	"context"

	"github.com/furari-app/furari/internal/logging"
)

// ConsoleNotifier writes notifications to the structured log.
type ConsoleNotifier struct {
	logger logging.Logger
}

func NewConsole(logger logging.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{logger: logger}
}

func (c *ConsoleNotifier) Notify(subject, message string) error {
	c.logger.Info(context.Background(), "notify", "subject", subject, "message", message)
	return nil
}

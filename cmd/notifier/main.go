package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/furari-app/furari/internal/logging"
	"github.com/furari-app/furari/internal/mq"
	"github.com/furari-app/furari/internal/notifier"
	"github.com/furari-app/furari/internal/server/config"
)

// mailQueue is the durable queue the notifier drains. Its name is fixed so
// restarts pick up events published while the worker was down.
const mailQueue = "furari.notifier.mail"

func main() {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	consumer, err := mq.NewConsumer(cfg.AMQPUrl, cfg.AMQPExchange, mailQueue,
		[]string{mq.RKPasswordResetRequested})
	if err != nil {
		log.Printf("%v", err)
		return
	}
	defer consumer.Close()

	worker := notifier.NewWorker(consumer, notifier.NewConsole(logger), logger)

	logger.Info(ctx, "notifier started", "queue", mailQueue)
	if err := worker.Run(ctx); err != nil {
		logger.Error(ctx, "worker stopped", "error", err)
	}
}

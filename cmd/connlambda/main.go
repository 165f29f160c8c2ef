// Command connlambda runs one of the connstore Lambda handlers, selected by
// the HANDLER environment variable: "connections" (default) for the websocket
// $connect/$disconnect routes, or "queue" to acknowledge SQS deliveries.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/suparena/connstore/config"
	"github.com/suparena/connstore/datastore/ddb"
	"github.com/suparena/connstore/datastore/sqs"
	"github.com/suparena/connstore/handler"
	"github.com/suparena/connstore/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "connlambda: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	awsCfg, err := cfg.AWSConfig(ctx)
	if err != nil {
		return err
	}

	switch kind := os.Getenv("HANDLER"); kind {
	case "", "connections":
		table := ddb.NewFromConfig(awsCfg, ddb.WithLogger(logger.Named("ddb")))
		h := handler.NewConnectionHandler(table, cfg.ConnectionsTable, logger)
		logger.Info("starting connection handler", zap.String("table", cfg.ConnectionsTable))
		lambda.Start(h.Handle)
	case "queue":
		queue := sqs.NewFromConfig(awsCfg, sqs.WithLogger(logger.Named("sqs")))
		h := handler.NewQueueHandler(queue, logBody(logger),
			handler.WithQueueURL(cfg.QueueURL),
			handler.WithLogger(logger),
		)
		logger.Info("starting queue handler", zap.String("queue", cfg.QueueURL))
		lambda.Start(h.Handle)
	default:
		return fmt.Errorf("unknown HANDLER %q", kind)
	}
	return nil
}

// logBody is the default message processor: it records the delivery and lets
// the handler acknowledge it.
func logBody(logger *zap.Logger) handler.ProcessFunc {
	return func(ctx context.Context, msg events.SQSMessage) error {
		logger.Info("message received",
			zap.String("message_id", msg.MessageId),
			zap.Int("bytes", len(msg.Body)),
		)
		return nil
	}
}

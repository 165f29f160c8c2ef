/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/suparena/connstore/datastore"
	"github.com/suparena/connstore/logging"
	"github.com/suparena/connstore/storagemodels"
)

// ProcessFunc handles the body of one queue message.
type ProcessFunc func(ctx context.Context, msg events.SQSMessage) error

// QueueHandler processes SQS batches and acknowledges each message it handled.
type QueueHandler struct {
	acker    datastore.MessageAcknowledger
	process  ProcessFunc
	queueURL string
	logger   *zap.Logger
}

// QueueOption configures a QueueHandler.
type QueueOption func(*QueueHandler)

// WithQueueURL fixes the queue URL instead of deriving it from each message's source ARN.
func WithQueueURL(url string) QueueOption {
	return func(h *QueueHandler) {
		h.queueURL = url
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) QueueOption {
	return func(h *QueueHandler) {
		h.logger = logging.OrNop(logger)
	}
}

// NewQueueHandler creates a handler running process on every message.
func NewQueueHandler(acker datastore.MessageAcknowledger, process ProcessFunc, opts ...QueueOption) *QueueHandler {
	h := &QueueHandler{
		acker:   acker,
		process: process,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle is the Lambda entry point for an SQS event source mapping.
// Messages that fail processing or acknowledgment are reported as batch item
// failures so only they are redelivered.
func (h *QueueHandler) Handle(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse
	for _, msg := range event.Records {
		if err := h.handleMessage(ctx, msg); err != nil {
			h.logger.Error("failed to handle message",
				zap.String("message_id", msg.MessageId),
				zap.Error(err),
			)
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{
				ItemIdentifier: msg.MessageId,
			})
		}
	}

	h.logger.Info("batch handled",
		zap.Int("messages", len(event.Records)),
		zap.Int("failures", len(resp.BatchItemFailures)),
	)
	return resp, nil
}

func (h *QueueHandler) handleMessage(ctx context.Context, msg events.SQSMessage) error {
	if h.process != nil {
		if err := h.process(ctx, msg); err != nil {
			return fmt.Errorf("process: %w", err)
		}
	}

	queueURL := h.queueURL
	if queueURL == "" {
		url, err := QueueURLFromARN(msg.EventSourceARN)
		if err != nil {
			return err
		}
		queueURL = url
	}

	if _, err := h.acker.AcknowledgeMessage(ctx, storagemodels.MessageHandle{
		QueueURL:      queueURL,
		ReceiptHandle: msg.ReceiptHandle,
	}); err != nil {
		return fmt.Errorf("acknowledge: %w", err)
	}
	return nil
}

// QueueURLFromARN converts an SQS queue ARN (arn:partition:sqs:region:account:name)
// into the queue URL.
func QueueURLFromARN(arn string) (string, error) {
	parts := strings.Split(arn, ":")
	if len(parts) != 6 || parts[0] != "arn" || parts[2] != "sqs" || parts[3] == "" || parts[4] == "" || parts[5] == "" {
		return "", fmt.Errorf("not an SQS queue ARN: %q", arn)
	}

	domain := "amazonaws.com"
	if parts[1] == "aws-cn" {
		domain = "amazonaws.com.cn"
	}
	return fmt.Sprintf("https://sqs.%s.%s/%s/%s", parts[3], domain, parts[4], parts[5]), nil
}

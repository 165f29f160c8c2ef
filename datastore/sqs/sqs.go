/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqs

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	sdk "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	connerrors "github.com/suparena/connstore/errors"
	"github.com/suparena/connstore/metrics"
	"github.com/suparena/connstore/storagemodels"
)

// SQSAPI is the subset of *sqs.Client used by Queue.
type SQSAPI interface {
	DeleteMessage(ctx context.Context, params *sdk.DeleteMessageInput, optFns ...func(*sdk.Options)) (*sdk.DeleteMessageOutput, error)
}

// Queue implements datastore.MessageAcknowledger on SQS.
type Queue struct {
	client SQSAPI
	logger *zap.Logger
}

// Option configures a Queue.
type Option func(*Queue)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(q *Queue) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// New constructs a Queue over an existing client.
func New(client SQSAPI, opts ...Option) *Queue {
	q := &Queue{
		client: client,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// NewFromConfig creates the SQS client from an AWS configuration.
func NewFromConfig(cfg aws.Config, opts ...Option) *Queue {
	return New(sdk.NewFromConfig(cfg), opts...)
}

// invalidReceiptCodes are the API error codes SQS uses for unusable receipt handles.
var invalidReceiptCodes = map[string]bool{
	"ReceiptHandleIsInvalid": true,
	"InvalidIdFormat":        true,
	"InvalidParameterValue":  true,
}

// AcknowledgeMessage deletes the delivery identified by handle, marking it processed.
// An expired, malformed or already used receipt handle yields an error matching
// errors.ErrInvalidReceipt.
func (q *Queue) AcknowledgeMessage(ctx context.Context, handle storagemodels.MessageHandle) (ack *storagemodels.Ack, err error) {
	if handle.QueueURL == "" {
		return nil, connerrors.NewValidationError("queueUrl", "must not be empty")
	}
	if handle.ReceiptHandle == "" {
		return nil, connerrors.NewValidationError("receiptHandle", "must not be empty")
	}

	defer func() {
		if r := recover(); r != nil {
			ack, err = nil, connerrors.FromRecovered("DeleteMessage", handle.QueueURL, r)
		}
		metrics.ObserveOperation("DeleteMessage", err)
	}()

	out, err := q.client.DeleteMessage(ctx, &sdk.DeleteMessageInput{
		QueueUrl:      aws.String(handle.QueueURL),
		ReceiptHandle: aws.String(handle.ReceiptHandle),
	})
	if err != nil {
		q.logger.Error("delete message failed", zap.String("queue_url", handle.QueueURL), zap.Error(err))
		if isInvalidReceipt(err) {
			return nil, connerrors.NewInvalidReceiptError("DeleteMessage", handle.QueueURL, err)
		}
		return nil, connerrors.NewStoreCallError("DeleteMessage", handle.QueueURL, err)
	}

	q.logger.Info("message deleted", zap.String("queue_url", handle.QueueURL))

	ack = &storagemodels.Ack{
		Operation: "DeleteMessage",
		Target:    handle.QueueURL,
	}
	if id, ok := awsmiddleware.GetRequestIDMetadata(out.ResultMetadata); ok {
		ack.RequestID = id
	}
	return ack, nil
}

func isInvalidReceipt(err error) bool {
	var rhi *types.ReceiptHandleIsInvalid
	if errors.As(err, &rhi) {
		return true
	}
	var iif *types.InvalidIdFormat
	if errors.As(err, &iif) {
		return true
	}
	var ae smithy.APIError
	if errors.As(err, &ae) {
		return invalidReceiptCodes[ae.ErrorCode()]
	}
	return false
}

// Package sqs provides the SQS implementation of datastore.MessageAcknowledger.
//
// Acknowledging a message deletes it from the queue by its receipt handle.
// Receipt handles are single-use; SQS rejects a reused or expired handle and
// the resulting error matches errors.ErrInvalidReceipt.
package sqs

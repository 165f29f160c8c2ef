/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DefaultPageSize is the page size limit used when a scan does not set one.
const DefaultPageSize int32 = 25

// Cursor is the continuation key of a paginated scan (DynamoDB's LastEvaluatedKey).
// A nil or empty cursor means there is no continuation.
type Cursor map[string]types.AttributeValue

// Empty reports whether the cursor carries no continuation.
func (c Cursor) Empty() bool {
	return len(c) == 0
}

// Record is a store-agnostic item decoded from a raw DynamoDB item.
type Record map[string]any

// PageRequest describes one bounded scan call.
type PageRequest struct {
	// TableName is the table being scanned.
	TableName string
	// Limit is the maximum number of items evaluated by this call.
	Limit int32
	// StartKey resumes the scan after the given key. Omitted from the request when empty.
	StartKey Cursor
}

// RawPage is one page exactly as the store returned it.
type RawPage struct {
	Items        []map[string]types.AttributeValue
	Count        int32
	ScannedCount int32
	// LastKey is set only when the store reports more items beyond this page.
	LastKey Cursor
}

// PageResult is one decoded page yielded by a paginated scan.
type PageResult struct {
	Records []Record
	// Count is the number of records in this page.
	Count int
	// Cursor continues the scan after this page; empty on the final page.
	Cursor Cursor
	// PageNumber is 1-based within a single scan run.
	PageNumber int
}

// Connection is a websocket connection record keyed by its connection ID.
type Connection struct {
	ConnectionID string `dynamodbav:"connectionId" json:"connectionId"`
}

// MessageHandle identifies one delivery of a queue message.
// A receipt handle is single-use: once acknowledged it cannot delete the delivery again.
type MessageHandle struct {
	QueueURL      string
	ReceiptHandle string
}

// TableInfo is the descriptive metadata returned by table introspection.
type TableInfo struct {
	Name          string
	Status        string
	ItemCount     int64
	SizeBytes     int64
	KeyAttributes []string
	CreatedAt     time.Time
}

// Ack is the store's acknowledgment of a successful point operation.
type Ack struct {
	// Operation is the store operation, e.g. "PutItem" or "DeleteMessage".
	Operation string
	// Target is the table name or queue URL.
	Target string
	// RequestID is the AWS request ID, when the response carried one.
	RequestID string
	// ConsumedCapacity is reported for table operations only.
	ConsumedCapacity *float64
}

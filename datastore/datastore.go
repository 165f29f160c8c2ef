/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/connstore/storagemodels"
)

// PageFetcher issues one bounded scan call and returns the raw page.
type PageFetcher interface {
	FetchPage(ctx context.Context, req *storagemodels.PageRequest) (*storagemodels.RawPage, error)
}

// TableDescriber checks that a table exists and returns its metadata.
type TableDescriber interface {
	DescribeTable(ctx context.Context, tableName string) (*storagemodels.TableInfo, error)
}

// TableScanner is everything a full-table scan needs.
type TableScanner interface {
	PageFetcher
	TableDescriber
}

// ConnectionStore writes and deletes connection records keyed by connection ID.
type ConnectionStore interface {
	PutConnection(ctx context.Context, tableName, connectionID string) (*storagemodels.Ack, error)

	DeleteConnection(ctx context.Context, tableName, connectionID string) (*storagemodels.Ack, error)
}

// MessageAcknowledger deletes a delivered queue message by its receipt handle.
type MessageAcknowledger interface {
	AcknowledgeMessage(ctx context.Context, handle storagemodels.MessageHandle) (*storagemodels.Ack, error)
}

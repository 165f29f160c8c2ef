/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides in-memory implementations of the datastore interfaces for testing
package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/suparena/connstore/errors"
	"github.com/suparena/connstore/storagemodels"
)

type table struct {
	keyAttr string
	items   map[string]map[string]types.AttributeValue
}

// sortedKeys returns the table's keys in scan order.
func (t *table) sortedKeys() []string {
	keys := make([]string, 0, len(t.items))
	for k := range t.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Store is an in-memory stand-in for DynamoDB and SQS.
// It implements datastore.TableScanner, datastore.ConnectionStore and
// datastore.MessageAcknowledger. Items are scanned in key order.
type Store struct {
	mu       sync.RWMutex
	tables   map[string]*table
	receipts map[string]map[string]bool

	cursorOnFullPage  bool
	cursorOnEmptyPage bool
	fetchError        error
	fetchErrorAt      int
	describeError     error
	putError          error
	deleteError       error
	ackError          error

	requests []storagemodels.PageRequest
}

// New creates a new mock Store
func New() *Store {
	return &Store{
		tables:   make(map[string]*table),
		receipts: make(map[string]map[string]bool),
	}
}

// WithCursorOnFullPage makes every full page carry a cursor, even the last one.
// This is how DynamoDB behaves: a table of exactly N*limit items needs one
// more, empty, page before the scan learns it is done.
func (m *Store) WithCursorOnFullPage() *Store {
	m.cursorOnFullPage = true
	return m
}

// WithCursorOnEmptyPage makes empty pages carry a cursor.
func (m *Store) WithCursorOnEmptyPage() *Store {
	m.cursorOnEmptyPage = true
	return m
}

// WithFetchError makes the n-th FetchPage call (1-based) return err.
func (m *Store) WithFetchError(n int, err error) *Store {
	m.fetchErrorAt = n
	m.fetchError = err
	return m
}

// WithDescribeError makes DescribeTable return err
func (m *Store) WithDescribeError(err error) *Store {
	m.describeError = err
	return m
}

// WithPutError makes PutConnection return err
func (m *Store) WithPutError(err error) *Store {
	m.putError = err
	return m
}

// WithDeleteError makes DeleteConnection return err
func (m *Store) WithDeleteError(err error) *Store {
	m.deleteError = err
	return m
}

// WithAckError makes AcknowledgeMessage return err
func (m *Store) WithAckError(err error) *Store {
	m.ackError = err
	return m
}

// CreateTable creates an empty table keyed by keyAttr. Existing tables are kept.
func (m *Store) CreateTable(tableName, keyAttr string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.tables[tableName]; !exists {
		m.tables[tableName] = &table{
			keyAttr: keyAttr,
			items:   make(map[string]map[string]types.AttributeValue),
		}
	}
	return m
}

// PutItem stores a raw item. The item must carry the table's key attribute.
func (m *Store) PutItem(tableName string, item map[string]types.AttributeValue) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tables[tableName]
	if !ok {
		return errors.NewTableNotFoundError("PutItem", tableName, fmt.Errorf("table %q does not exist", tableName))
	}
	key, err := keyString(item[t.keyAttr])
	if err != nil {
		return errors.NewValidationError(t.keyAttr, err.Error())
	}
	t.items[key] = item
	return nil
}

// FetchPage returns up to req.Limit items after req.StartKey, in key order.
func (m *Store) FetchPage(ctx context.Context, req *storagemodels.PageRequest) (*storagemodels.RawPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, *req)
	if m.fetchError != nil && len(m.requests) == m.fetchErrorAt {
		return nil, errors.NewStoreCallError("Scan", req.TableName, m.fetchError)
	}
	if req.Limit < 1 {
		return nil, errors.NewValidationError("limit", "must be a positive integer")
	}

	t, ok := m.tables[req.TableName]
	if !ok {
		return nil, errors.NewTableNotFoundError("Scan", req.TableName, fmt.Errorf("table %q does not exist", req.TableName))
	}

	keys := t.sortedKeys()
	start := 0
	if !req.StartKey.Empty() {
		after, err := keyString(req.StartKey[t.keyAttr])
		if err != nil {
			return nil, errors.NewStoreCallError("Scan", req.TableName, err)
		}
		start = sort.SearchStrings(keys, after)
		if start < len(keys) && keys[start] == after {
			start++
		}
	}

	end := start + int(req.Limit)
	if end > len(keys) {
		end = len(keys)
	}

	page := &storagemodels.RawPage{}
	for _, k := range keys[start:end] {
		page.Items = append(page.Items, copyItem(t.items[k]))
	}
	page.Count = int32(len(page.Items))
	page.ScannedCount = page.Count

	switch {
	case page.Count == 0:
		if m.cursorOnEmptyPage {
			page.LastKey = storagemodels.Cursor{t.keyAttr: &types.AttributeValueMemberS{Value: "~end"}}
		}
	case end < len(keys), m.cursorOnFullPage && page.Count == req.Limit:
		last := page.Items[len(page.Items)-1]
		page.LastKey = storagemodels.Cursor{t.keyAttr: last[t.keyAttr]}
	}
	return page, nil
}

// DescribeTable returns metadata for an existing table.
func (m *Store) DescribeTable(ctx context.Context, tableName string) (*storagemodels.TableInfo, error) {
	if m.describeError != nil {
		return nil, m.describeError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tables[tableName]
	if !ok {
		return nil, errors.NewTableNotFoundError("DescribeTable", tableName, fmt.Errorf("table %q does not exist", tableName))
	}
	return &storagemodels.TableInfo{
		Name:          tableName,
		Status:        "ACTIVE",
		ItemCount:     int64(len(t.items)),
		KeyAttributes: []string{t.keyAttr},
	}, nil
}

// PutConnection stores {keyAttr: connectionID} in tableName.
func (m *Store) PutConnection(ctx context.Context, tableName, connectionID string) (*storagemodels.Ack, error) {
	if m.putError != nil {
		return nil, m.putError
	}
	if connectionID == "" {
		return nil, errors.NewValidationError("connectionId", "must not be empty")
	}

	m.mu.RLock()
	t, ok := m.tables[tableName]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.NewTableNotFoundError("PutItem", tableName, fmt.Errorf("table %q does not exist", tableName))
	}

	item := map[string]types.AttributeValue{t.keyAttr: &types.AttributeValueMemberS{Value: connectionID}}
	if err := m.PutItem(tableName, item); err != nil {
		return nil, err
	}
	return &storagemodels.Ack{Operation: "PutItem", Target: tableName, RequestID: uuid.NewString()}, nil
}

// DeleteConnection removes the record keyed by connectionID. Absent records are not an error.
func (m *Store) DeleteConnection(ctx context.Context, tableName, connectionID string) (*storagemodels.Ack, error) {
	if m.deleteError != nil {
		return nil, m.deleteError
	}
	if connectionID == "" {
		return nil, errors.NewValidationError("connectionId", "must not be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tables[tableName]
	if !ok {
		return nil, errors.NewTableNotFoundError("DeleteItem", tableName, fmt.Errorf("table %q does not exist", tableName))
	}
	delete(t.items, connectionID)
	return &storagemodels.Ack{Operation: "DeleteItem", Target: tableName, RequestID: uuid.NewString()}, nil
}

// Deliver enqueues a delivery on queueURL and returns its receipt handle.
func (m *Store) Deliver(queueURL string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	handle := uuid.NewString()
	if m.receipts[queueURL] == nil {
		m.receipts[queueURL] = make(map[string]bool)
	}
	m.receipts[queueURL][handle] = true
	return handle
}

// AcknowledgeMessage deletes a delivery. Each receipt handle can be used once.
func (m *Store) AcknowledgeMessage(ctx context.Context, handle storagemodels.MessageHandle) (*storagemodels.Ack, error) {
	if m.ackError != nil {
		return nil, m.ackError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.receipts[handle.QueueURL][handle.ReceiptHandle] {
		return nil, errors.NewInvalidReceiptError("DeleteMessage", handle.QueueURL,
			fmt.Errorf("ReceiptHandleIsInvalid: %q", handle.ReceiptHandle))
	}
	delete(m.receipts[handle.QueueURL], handle.ReceiptHandle)
	return &storagemodels.Ack{Operation: "DeleteMessage", Target: handle.QueueURL, RequestID: uuid.NewString()}, nil
}

// Helper methods for testing

// Requests returns a copy of every page request received so far
func (m *Store) Requests() []storagemodels.PageRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]storagemodels.PageRequest, len(m.requests))
	copy(result, m.requests)
	return result
}

// Fetches returns the number of FetchPage calls
func (m *Store) Fetches() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.requests)
}

// Count returns the number of items in a table
func (m *Store) Count(tableName string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if t, ok := m.tables[tableName]; ok {
		return len(t.items)
	}
	return 0
}

// Pending returns the number of unacknowledged deliveries on a queue
func (m *Store) Pending(queueURL string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.receipts[queueURL])
}

// Clear removes all tables, deliveries and recorded requests
func (m *Store) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables = make(map[string]*table)
	m.receipts = make(map[string]map[string]bool)
	m.requests = nil
}

// keyString extracts the sortable string form of a key attribute.
func keyString(av types.AttributeValue) (string, error) {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return v.Value, nil
	case *types.AttributeValueMemberN:
		return v.Value, nil
	case nil:
		return "", fmt.Errorf("missing key attribute")
	default:
		return "", fmt.Errorf("unsupported key attribute type %T", av)
	}
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	result := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		result[k] = v
	}
	return result
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/connstore/storagemodels"
)

// DecodeFunc turns a raw DynamoDB item into a Record.
type DecodeFunc func(item map[string]types.AttributeValue) (storagemodels.Record, error)

// Decoders maps table names to the function used to decode their items.
// Tables without a registered function use DefaultDecode.
type Decoders struct {
	mu      sync.RWMutex
	byTable map[string]DecodeFunc
}

// NewDecoders creates an empty decoder registry.
func NewDecoders() *Decoders {
	return &Decoders{
		byTable: make(map[string]DecodeFunc),
	}
}

// Register associates a decode function with a table.
func (d *Decoders) Register(tableName string, fn DecodeFunc) error {
	if fn == nil {
		return fmt.Errorf("decoder registry: nil decode function for table %q", tableName)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byTable[tableName]; exists {
		return fmt.Errorf("decoder registry: table %q already registered", tableName)
	}
	d.byTable[tableName] = fn
	return nil
}

// MustRegister is like Register but panics on error. Intended for init().
func (d *Decoders) MustRegister(tableName string, fn DecodeFunc) {
	if err := d.Register(tableName, fn); err != nil {
		panic(err)
	}
}

// Lookup returns the decode function registered for a table.
func (d *Decoders) Lookup(tableName string) (DecodeFunc, bool) {
	if d == nil {
		return nil, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	fn, ok := d.byTable[tableName]
	return fn, ok
}

// Decode decodes an item of the given table, falling back to DefaultDecode.
func (d *Decoders) Decode(tableName string, item map[string]types.AttributeValue) (storagemodels.Record, error) {
	if fn, ok := d.Lookup(tableName); ok {
		return fn(item)
	}
	return DefaultDecode(item)
}

// DefaultDecode unmarshals an item into a generic map.
func DefaultDecode(item map[string]types.AttributeValue) (storagemodels.Record, error) {
	var generic map[string]any
	if err := attributevalue.UnmarshalMap(item, &generic); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return storagemodels.Record(generic), nil
}

// Typed returns a DecodeFunc that first unmarshals the item into T, then
// converts it with project. Useful to validate the shape of a table's items.
func Typed[T any](project func(T) storagemodels.Record) DecodeFunc {
	return func(item map[string]types.AttributeValue) (storagemodels.Record, error) {
		var v T
		if err := attributevalue.UnmarshalMap(item, &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item to %T: %w", v, err)
		}
		return project(v), nil
	}
}

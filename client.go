/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package connstore

import (
	"context"
	"iter"

	"go.uber.org/zap"

	"github.com/suparena/connstore/config"
	"github.com/suparena/connstore/datastore"
	"github.com/suparena/connstore/datastore/ddb"
	"github.com/suparena/connstore/datastore/sqs"
	"github.com/suparena/connstore/errors"
	"github.com/suparena/connstore/logging"
	"github.com/suparena/connstore/registry"
	"github.com/suparena/connstore/storagemodels"
)

// Client bundles the scanner, the connection store and the queue acknowledger
// behind the table and queue named in a Config.
type Client struct {
	cfg         config.Config
	scanner     *Scanner
	connections datastore.ConnectionStore
	queue       datastore.MessageAcknowledger
	logger      *zap.Logger
}

// Stores are the backends a Client delegates to.
type Stores struct {
	Tables      datastore.TableScanner
	Connections datastore.ConnectionStore
	Queue       datastore.MessageAcknowledger
	Decoders    *registry.Decoders
}

// New creates a Client talking to DynamoDB and SQS as described by cfg.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	awsCfg, err := cfg.AWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	logger = logging.OrNop(logger)
	table := ddb.NewFromConfig(awsCfg, ddb.WithLogger(logger.Named("ddb")))
	queue := sqs.NewFromConfig(awsCfg, sqs.WithLogger(logger.Named("sqs")))

	return NewWithStores(cfg, Stores{
		Tables:      table,
		Connections: table,
		Queue:       queue,
	}, logger), nil
}

// NewWithStores creates a Client over existing backends.
// Unset config fields take their defaults.
func NewWithStores(cfg config.Config, stores Stores, logger *zap.Logger) *Client {
	defaults := config.DefaultConfig()
	if cfg.ConnectionsTable == "" {
		cfg.ConnectionsTable = defaults.ConnectionsTable
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = defaults.PageSize
	}

	logger = logging.OrNop(logger)
	return &Client{
		cfg:         cfg,
		scanner:     NewScanner(stores.Tables, WithDecoders(stores.Decoders), WithLogger(logger)),
		connections: stores.Connections,
		queue:       stores.Queue,
		logger:      logger,
	}
}

// Config returns the configuration the client was built with.
func (c *Client) Config() config.Config {
	return c.cfg
}

// Scanner returns the client's scanner, for tables other than the connections table.
func (c *Client) Scanner() *Scanner {
	return c.scanner
}

// DescribeConnections returns the metadata of the connections table.
func (c *Client) DescribeConnections(ctx context.Context) (*storagemodels.TableInfo, error) {
	return c.scanner.Describe(ctx, c.cfg.ConnectionsTable)
}

// ConnectionPages lazily pages through the connections table.
// Options given here override the configured page size.
func (c *Client) ConnectionPages(ctx context.Context, opts ...storagemodels.ScanOption) iter.Seq2[*storagemodels.PageResult, error] {
	return c.scanner.Pages(ctx, c.cfg.ConnectionsTable, c.scanOptions(opts)...)
}

// ScanConnections returns every record of the connections table.
func (c *Client) ScanConnections(ctx context.Context, opts ...storagemodels.ScanOption) ([]storagemodels.Record, error) {
	return c.scanner.All(ctx, c.cfg.ConnectionsTable, c.scanOptions(opts)...)
}

// AddConnection records a live connection.
func (c *Client) AddConnection(ctx context.Context, connectionID string) (*storagemodels.Ack, error) {
	if c.connections == nil {
		return nil, errors.NewValidationError("connections", "no connection store configured")
	}
	return c.connections.PutConnection(ctx, c.cfg.ConnectionsTable, connectionID)
}

// RemoveConnection deletes a connection record. Removing an unknown connection succeeds.
func (c *Client) RemoveConnection(ctx context.Context, connectionID string) (*storagemodels.Ack, error) {
	if c.connections == nil {
		return nil, errors.NewValidationError("connections", "no connection store configured")
	}
	return c.connections.DeleteConnection(ctx, c.cfg.ConnectionsTable, connectionID)
}

// Acknowledge deletes a delivery from the configured queue.
func (c *Client) Acknowledge(ctx context.Context, receiptHandle string) (*storagemodels.Ack, error) {
	return c.AcknowledgeOn(ctx, c.cfg.QueueURL, receiptHandle)
}

// AcknowledgeOn deletes a delivery from an explicit queue.
func (c *Client) AcknowledgeOn(ctx context.Context, queueURL, receiptHandle string) (*storagemodels.Ack, error) {
	if c.queue == nil {
		return nil, errors.NewValidationError("queue", "no queue configured")
	}
	return c.queue.AcknowledgeMessage(ctx, storagemodels.MessageHandle{
		QueueURL:      queueURL,
		ReceiptHandle: receiptHandle,
	})
}

func (c *Client) scanOptions(opts []storagemodels.ScanOption) []storagemodels.ScanOption {
	return append([]storagemodels.ScanOption{storagemodels.WithPageSize(c.cfg.PageSize)}, opts...)
}

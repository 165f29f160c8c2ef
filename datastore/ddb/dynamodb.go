/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/aws/smithy-go/middleware"
	"go.uber.org/zap"

	connerrors "github.com/suparena/connstore/errors"
	"github.com/suparena/connstore/metrics"
	"github.com/suparena/connstore/storagemodels"
)

// DynamoDBAPI is the subset of *dynamodb.Client used by Table.
// It mirrors the SDK method signatures so tests can substitute a fake.
type DynamoDBAPI interface {
	DescribeTable(ctx context.Context, params *sdk.DescribeTableInput, optFns ...func(*sdk.Options)) (*sdk.DescribeTableOutput, error)
	Scan(ctx context.Context, params *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
}

// Table implements datastore.TableScanner and datastore.ConnectionStore on DynamoDB.
// The table name is passed per call so one Table serves every table of an account/region.
type Table struct {
	client DynamoDBAPI
	logger *zap.Logger
}

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Table) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New constructs a Table over an existing client.
func New(client DynamoDBAPI, opts ...Option) *Table {
	t := &Table{
		client: client,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewFromConfig creates the DynamoDB client from an AWS configuration.
func NewFromConfig(cfg aws.Config, opts ...Option) *Table {
	return New(sdk.NewFromConfig(cfg), opts...)
}

// DescribeTable checks the table exists and returns its metadata.
// A missing table yields an error matching errors.ErrTableNotFound.
func (t *Table) DescribeTable(ctx context.Context, tableName string) (*storagemodels.TableInfo, error) {
	if tableName == "" {
		return nil, connerrors.NewValidationError("tableName", "must not be empty")
	}

	var out *sdk.DescribeTableOutput
	err := guard("DescribeTable", tableName, func() (err error) {
		out, err = t.client.DescribeTable(ctx, &sdk.DescribeTableInput{
			TableName: aws.String(tableName),
		})
		return err
	})
	metrics.ObserveOperation("DescribeTable", err)
	if err != nil {
		t.logError("describe table failed", tableName, err)
		var rnfe *types.ResourceNotFoundException
		if errors.As(err, &rnfe) {
			return nil, connerrors.NewTableNotFoundError("DescribeTable", tableName, err)
		}
		return nil, asStoreCallError("DescribeTable", tableName, err)
	}

	info := tableInfo(tableName, out.Table)
	t.logger.Debug("table retrieved",
		zap.String("table", info.Name),
		zap.String("status", info.Status),
		zap.Int64("item_count", info.ItemCount),
	)
	return info, nil
}

func tableInfo(tableName string, desc *types.TableDescription) *storagemodels.TableInfo {
	info := &storagemodels.TableInfo{Name: tableName}
	if desc == nil {
		return info
	}
	if desc.TableName != nil {
		info.Name = *desc.TableName
	}
	info.Status = string(desc.TableStatus)
	info.ItemCount = aws.ToInt64(desc.ItemCount)
	info.SizeBytes = aws.ToInt64(desc.TableSizeBytes)
	info.CreatedAt = aws.ToTime(desc.CreationDateTime)
	for _, ks := range desc.KeySchema {
		info.KeyAttributes = append(info.KeyAttributes, aws.ToString(ks.AttributeName))
	}
	return info
}

// guard runs a store call, normalizing panics into typed errors.
func guard(op, target string, call func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = connerrors.FromRecovered(op, target, r)
		}
	}()
	return call()
}

// asStoreCallError wraps err unless guard already produced a typed error.
func asStoreCallError(op, target string, err error) error {
	if connerrors.IsStoreCall(err) || connerrors.IsUnknownCause(err) {
		return err
	}
	return connerrors.NewStoreCallError(op, target, err)
}

func newAck(op, target string, md middleware.Metadata, cc *types.ConsumedCapacity) *storagemodels.Ack {
	ack := &storagemodels.Ack{
		Operation: op,
		Target:    target,
	}
	if id, ok := awsmiddleware.GetRequestIDMetadata(md); ok {
		ack.RequestID = id
	}
	if cc != nil {
		ack.ConsumedCapacity = cc.CapacityUnits
	}
	return ack
}

// logError logs a failed call with whatever AWS detail the error carries.
func (t *Table) logError(msg, tableName string, err error) {
	fields := []zap.Field{zap.String("table", tableName), zap.Error(err)}

	var oe *smithy.OperationError
	if errors.As(err, &oe) {
		fields = append(fields, zap.String("service", oe.Service()), zap.String("operation", oe.Operation()))
	}
	var ae smithy.APIError
	if errors.As(err, &ae) {
		fields = append(fields,
			zap.String("error_code", ae.ErrorCode()),
			zap.String("error_fault", ae.ErrorFault().String()),
		)
	}
	t.logger.Error(msg, fields...)
}

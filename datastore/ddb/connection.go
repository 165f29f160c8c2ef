/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	connerrors "github.com/suparena/connstore/errors"
	"github.com/suparena/connstore/metrics"
	"github.com/suparena/connstore/storagemodels"
)

// ConnectionKeyAttr is the partition key attribute of connection tables.
const ConnectionKeyAttr = "connectionId"

// PutConnection stores the connection record {connectionId} in tableName.
// An existing record with the same ID is overwritten.
func (t *Table) PutConnection(ctx context.Context, tableName, connectionID string) (*storagemodels.Ack, error) {
	if err := validateConnection(tableName, connectionID); err != nil {
		return nil, err
	}

	item, err := attributevalue.MarshalMap(storagemodels.Connection{ConnectionID: connectionID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal connection: %w", err)
	}

	var out *sdk.PutItemOutput
	err = guard("PutItem", tableName, func() (err error) {
		out, err = t.client.PutItem(ctx, &sdk.PutItemInput{
			TableName:              aws.String(tableName),
			Item:                   item,
			ReturnConsumedCapacity: types.ReturnConsumedCapacityTotal,
		})
		return err
	})
	metrics.ObserveOperation("PutItem", err)
	if err != nil {
		t.logError("put connection failed", tableName, err)
		return nil, asStoreCallError("PutItem", tableName, err)
	}

	t.logger.Debug("connection stored", zap.String("table", tableName), zap.String("connection_id", connectionID))
	return newAck("PutItem", tableName, out.ResultMetadata, out.ConsumedCapacity), nil
}

// DeleteConnection removes the connection record keyed by connectionID.
// Deleting an absent record succeeds, as DynamoDB's DeleteItem does.
func (t *Table) DeleteConnection(ctx context.Context, tableName, connectionID string) (*storagemodels.Ack, error) {
	if err := validateConnection(tableName, connectionID); err != nil {
		return nil, err
	}

	key := map[string]types.AttributeValue{
		ConnectionKeyAttr: &types.AttributeValueMemberS{Value: connectionID},
	}

	var out *sdk.DeleteItemOutput
	err := guard("DeleteItem", tableName, func() (err error) {
		out, err = t.client.DeleteItem(ctx, &sdk.DeleteItemInput{
			TableName:              aws.String(tableName),
			Key:                    key,
			ReturnConsumedCapacity: types.ReturnConsumedCapacityTotal,
		})
		return err
	})
	metrics.ObserveOperation("DeleteItem", err)
	if err != nil {
		t.logError("delete connection failed", tableName, err)
		return nil, asStoreCallError("DeleteItem", tableName, err)
	}

	t.logger.Debug("connection removed", zap.String("table", tableName), zap.String("connection_id", connectionID))
	return newAck("DeleteItem", tableName, out.ResultMetadata, out.ConsumedCapacity), nil
}

func validateConnection(tableName, connectionID string) error {
	if tableName == "" {
		return connerrors.NewValidationError("tableName", "must not be empty")
	}
	if connectionID == "" {
		return connerrors.NewValidationError(ConnectionKeyAttr, "must not be empty")
	}
	return nil
}

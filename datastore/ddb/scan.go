/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	connerrors "github.com/suparena/connstore/errors"
	"github.com/suparena/connstore/metrics"
	"github.com/suparena/connstore/storagemodels"
)

// FetchPage issues one Scan call bounded by req.Limit, resuming after req.StartKey.
// The returned page carries LastKey only when DynamoDB reported more items.
func (t *Table) FetchPage(ctx context.Context, req *storagemodels.PageRequest) (*storagemodels.RawPage, error) {
	if req == nil || req.TableName == "" {
		return nil, connerrors.NewValidationError("tableName", "must not be empty")
	}
	if req.Limit < 1 {
		return nil, connerrors.NewValidationError("limit", "must be a positive integer")
	}

	input := &sdk.ScanInput{
		TableName: aws.String(req.TableName),
		Limit:     aws.Int32(req.Limit),
	}
	if !req.StartKey.Empty() {
		input.ExclusiveStartKey = req.StartKey
	}

	var out *sdk.ScanOutput
	err := guard("Scan", req.TableName, func() (err error) {
		out, err = t.client.Scan(ctx, input)
		return err
	})
	metrics.ObserveOperation("Scan", err)
	if err != nil {
		t.logError("scan page failed", req.TableName, err)
		return nil, asStoreCallError("Scan", req.TableName, err)
	}

	page := &storagemodels.RawPage{
		Items:        out.Items,
		Count:        out.Count,
		ScannedCount: out.ScannedCount,
	}
	if len(out.LastEvaluatedKey) > 0 {
		page.LastKey = storagemodels.Cursor(out.LastEvaluatedKey)
	}

	t.logger.Debug("scan page fetched",
		zap.String("table", req.TableName),
		zap.Int32("count", page.Count),
		zap.Bool("more", !page.LastKey.Empty()),
	)
	return page, nil
}

/*
Package ddb provides the DynamoDB implementation of the datastore interfaces.

A Table wraps a DynamoDB client and serves:
  - FetchPage: one bounded Scan call, resuming after an ExclusiveStartKey
  - DescribeTable: existence and shape check before a full scan
  - PutConnection / DeleteConnection: point writes keyed by "connectionId"

Failed calls are returned as *errors.StoreCallError wrapping the SDK error;
a missing table additionally matches errors.ErrTableNotFound. A panic raised
while calling the client is recovered and returned as an error as well.

	cfg, _ := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-1"))
	table := ddb.NewFromConfig(cfg, ddb.WithLogger(logger))

	ack, err := table.PutConnection(ctx, "websocket-connections", "abc123=")

The client is accepted through the narrow DynamoDBAPI interface, so any
value with the SDK's method signatures can be substituted in tests.
*/
package ddb

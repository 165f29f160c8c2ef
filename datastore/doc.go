/*
Package datastore defines the interfaces connstore uses to talk to its stores.

	type PageFetcher interface {
	    FetchPage(ctx context.Context, req *storagemodels.PageRequest) (*storagemodels.RawPage, error)
	}
	type TableDescriber interface {
	    DescribeTable(ctx context.Context, tableName string) (*storagemodels.TableInfo, error)
	}
	type ConnectionStore interface {
	    PutConnection(ctx context.Context, tableName, connectionID string) (*storagemodels.Ack, error)
	    DeleteConnection(ctx context.Context, tableName, connectionID string) (*storagemodels.Ack, error)
	}
	type MessageAcknowledger interface {
	    AcknowledgeMessage(ctx context.Context, handle storagemodels.MessageHandle) (*storagemodels.Ack, error)
	}

Implementations:
  - ddb: DynamoDB implementation of PageFetcher, TableDescriber and ConnectionStore
  - sqs: SQS implementation of MessageAcknowledger
  - mock: In-memory implementation of all of them for testing

The scanner in the root package only depends on TableScanner, so it can be
driven by a fake page source without any network dependency.
*/
package datastore

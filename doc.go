/*
Package connstore is the data-access layer for a websocket connection table
kept in DynamoDB and the SQS queue that feeds it.

It offers three things:
  - Paginated scans: a lazy, resumable page sequence and an aggregator that
    collects a whole table after checking it exists
  - Connection records: put and delete of {connectionId} items
  - Message acknowledgment: deleting a delivered SQS message by receipt handle

Every operation returns (value, error). Failures are the semantic types of the
errors subpackage and can be matched with errors.Is and errors.As.

Basic Usage:

	cfg, _ := config.Load()
	client, err := connstore.New(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// Lazy paging, stopping whenever the caller likes
	for page, err := range client.ConnectionPages(ctx, storagemodels.WithPageSize(100)) {
		if err != nil {
			return err
		}
		token, _ := storagemodels.EncodeCursor(page.Cursor)
		fmt.Println(page.PageNumber, page.Count, token)
	}

	// Everything at once
	records, err := client.ScanConnections(ctx)

	// Point operations
	_, err = client.AddConnection(ctx, "abc123=")
	_, err = client.RemoveConnection(ctx, "abc123=")
	_, err = client.Acknowledge(ctx, receiptHandle)

Any backend satisfying the datastore interfaces can be scanned directly:

	records, err := connstore.ScanAll(ctx, ddb.New(dynamoClient), "websocket-connections")
*/
package connstore

/*
Package storagemodels defines the data structures used throughout connstore.

Key Types:

PageRequest / RawPage / PageResult:
One bounded scan call and its result. RawPage is what the store returned;
PageResult is the decoded page handed to scan consumers:

	type PageResult struct {
	    Records    []Record // decoded items, in store order
	    Count      int      // number of records in this page
	    Cursor     Cursor   // continuation key, empty on the final page
	    PageNumber int      // 1-based within one scan run
	}

Cursor:
DynamoDB's LastEvaluatedKey. EncodeCursor and DecodeCursor turn it into an
opaque token so a scan can be resumed later:

	token, _ := storagemodels.EncodeCursor(page.Cursor)
	start, _ := storagemodels.DecodeCursor(token)
	pages := scanner.Pages(ctx, "conn", storagemodels.WithStartKey(start))

ScanOptions:
Configuration for scans:

	opts := []ScanOption{
	    WithPageSize(100),
	    WithStartKey(cursor),
	    WithProgressHandler(progressFunc),
	}

Connection, MessageHandle, TableInfo and Ack model the point operations and
table introspection.
*/
package storagemodels

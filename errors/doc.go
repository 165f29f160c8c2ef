/*
Package errors provides semantic error types for the connstore library.

Every operation in connstore returns its failure as an ordinary error value.
The concrete types below can be inspected with errors.As, and each of them
matches one of the sentinels through errors.Is:

	var (
	    ErrNotFound        = errors.New("resource not found")
	    ErrInvalidInput    = errors.New("invalid input")
	    ErrStoreCall       = errors.New("store call failed")
	    ErrTableNotFound   = errors.New("table not found")
	    ErrInvalidReceipt  = errors.New("invalid receipt handle")
	    ErrUnknownCause    = errors.New("unknown failure cause")
	    ErrScanAggregation = errors.New("scan aggregation failed")
	)

Usage:

	records, err := connstore.ScanAll(ctx, table, "websocket-connections")
	if err != nil {
	    if errors.IsTableNotFound(err) {
	        // the introspection precheck failed
	    }
	    return err
	}

	ack, err := queue.AcknowledgeMessage(ctx, handle)
	if errors.IsInvalidReceipt(err) {
	    // the handle expired or was already used
	}

StoreCallError and ScanAggregationError wrap their cause, so the underlying
SDK error stays reachable via errors.As.
*/
package errors

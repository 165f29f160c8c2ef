/*
Package registry manages the per-table decoders used by connstore scans.

Scanned items arrive as raw DynamoDB attribute maps. Unless a table has a
registered decoder they are unmarshaled into a generic map[string]any:

	decoders := registry.NewDecoders()
	decoders.MustRegister("websocket-connections", registry.Typed(
	    func(c storagemodels.Connection) storagemodels.Record {
	        return storagemodels.Record{"connectionId": c.ConnectionID}
	    },
	))

	scanner := connstore.NewScanner(table, connstore.WithDecoders(decoders))

The registry is safe for concurrent use. Registering the same table twice is
an error.
*/
package registry

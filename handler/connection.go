/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package handler provides AWS Lambda handlers that keep the connection table
// in sync with an API Gateway websocket API and drain its SQS queue.
package handler

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/suparena/connstore/datastore"
	"github.com/suparena/connstore/logging"
)

// Websocket route keys handled by ConnectionHandler.
const (
	RouteConnect    = "$connect"
	RouteDisconnect = "$disconnect"
)

// ConnectionHandler records websocket connects and disconnects in a table.
type ConnectionHandler struct {
	store     datastore.ConnectionStore
	tableName string
	logger    *zap.Logger
}

// NewConnectionHandler creates a handler writing to tableName.
func NewConnectionHandler(store datastore.ConnectionStore, tableName string, logger *zap.Logger) *ConnectionHandler {
	return &ConnectionHandler{
		store:     store,
		tableName: tableName,
		logger:    logging.OrNop(logger),
	}
}

// Handle is the Lambda entry point for the websocket API's $connect and
// $disconnect routes. Other routes are acknowledged without touching the table.
func (h *ConnectionHandler) Handle(ctx context.Context, req events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	rc := req.RequestContext
	log := h.logger.With(
		zap.String("route", rc.RouteKey),
		zap.String("connection_id", rc.ConnectionID),
		zap.String("request_id", rc.RequestID),
	)

	var err error
	switch rc.RouteKey {
	case RouteConnect:
		_, err = h.store.PutConnection(ctx, h.tableName, rc.ConnectionID)
	case RouteDisconnect:
		_, err = h.store.DeleteConnection(ctx, h.tableName, rc.ConnectionID)
	default:
		log.Debug("route ignored")
		return response(http.StatusOK), nil
	}

	if err != nil {
		log.Error("failed to update connection", zap.Error(err))
		return response(http.StatusInternalServerError), nil
	}
	log.Info("connection updated")
	return response(http.StatusOK), nil
}

func response(status int) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Body:       http.StatusText(status),
	}
}

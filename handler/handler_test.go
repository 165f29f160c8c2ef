package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/suparena/connstore/datastore/mock"
	"github.com/suparena/connstore/handler"
)

const table = "websocket-connections"

func wsRequest(route, connectionID string) events.APIGatewayWebsocketProxyRequest {
	return events.APIGatewayWebsocketProxyRequest{
		RequestContext: events.APIGatewayWebsocketProxyRequestContext{
			RouteKey:     route,
			ConnectionID: connectionID,
			RequestID:    "req-1",
		},
	}
}

func TestConnectionHandler(t *testing.T) {
	ctx := context.Background()
	store := mock.New()
	store.CreateTable(table, "connectionId")
	h := handler.NewConnectionHandler(store, table, nil)

	resp, err := h.Handle(ctx, wsRequest(handler.RouteConnect, "abc="))
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if store.Count(table) != 1 {
		t.Errorf("expected 1 connection, got %d", store.Count(table))
	}

	if _, err := h.Handle(ctx, wsRequest("sendmessage", "abc=")); err != nil {
		t.Fatalf("default route failed: %v", err)
	}
	if store.Count(table) != 1 {
		t.Error("other routes must not change the table")
	}

	resp, err = h.Handle(ctx, wsRequest(handler.RouteDisconnect, "abc="))
	if err != nil {
		t.Fatalf("disconnect failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if store.Count(table) != 0 {
		t.Errorf("expected no connections, got %d", store.Count(table))
	}
}

func TestConnectionHandler_StoreFailure(t *testing.T) {
	store := mock.New().WithPutError(fmt.Errorf("throttled"))
	store.CreateTable(table, "connectionId")
	h := handler.NewConnectionHandler(store, table, nil)

	resp, err := h.Handle(context.Background(), wsRequest(handler.RouteConnect, "abc="))
	if err != nil {
		t.Fatalf("store failures should be reported through the status code, got %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", resp.StatusCode)
	}
}

func TestQueueHandler(t *testing.T) {
	const arn = "arn:aws:sqs:us-east-1:123456789012:vendor-queue"
	const url = "https://sqs.us-east-1.amazonaws.com/123456789012/vendor-queue"

	ctx := context.Background()
	store := mock.New()

	event := events.SQSEvent{}
	for i := 0; i < 3; i++ {
		event.Records = append(event.Records, events.SQSMessage{
			MessageId:      fmt.Sprintf("m-%d", i),
			ReceiptHandle:  store.Deliver(url),
			Body:           fmt.Sprintf("body-%d", i),
			EventSourceARN: arn,
		})
	}
	// Already acknowledged elsewhere.
	event.Records = append(event.Records, events.SQSMessage{
		MessageId:      "m-stale",
		ReceiptHandle:  "stale",
		EventSourceARN: arn,
	})

	var seen []string
	h := handler.NewQueueHandler(store, func(ctx context.Context, msg events.SQSMessage) error {
		seen = append(seen, msg.Body)
		if msg.MessageId == "m-1" {
			return fmt.Errorf("cannot process")
		}
		return nil
	})

	resp, err := h.Handle(ctx, event)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 messages processed, got %d", len(seen))
	}

	failed := map[string]bool{}
	for _, f := range resp.BatchItemFailures {
		failed[f.ItemIdentifier] = true
	}
	if len(failed) != 2 || !failed["m-1"] || !failed["m-stale"] {
		t.Errorf("expected m-1 and m-stale to fail, got %v", resp.BatchItemFailures)
	}
	if store.Pending(url) != 1 {
		t.Errorf("only the failed message should stay on the queue, %d pending", store.Pending(url))
	}
}

func TestQueueHandler_FixedURL(t *testing.T) {
	const url = "http://localhost:4566/000000000000/local"
	store := mock.New()

	event := events.SQSEvent{Records: []events.SQSMessage{
		{MessageId: "m", ReceiptHandle: store.Deliver(url)},
	}}

	h := handler.NewQueueHandler(store, nil, handler.WithQueueURL(url))
	resp, err := h.Handle(context.Background(), event)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if len(resp.BatchItemFailures) != 0 {
		t.Errorf("expected no failures, got %v", resp.BatchItemFailures)
	}
	if store.Pending(url) != 0 {
		t.Error("message should be acknowledged")
	}
}

func TestQueueURLFromARN(t *testing.T) {
	tests := []struct {
		name    string
		arn     string
		want    string
		wantErr bool
	}{
		{
			name: "standard",
			arn:  "arn:aws:sqs:us-east-1:134152526579:vendor-twitter-queue",
			want: "https://sqs.us-east-1.amazonaws.com/134152526579/vendor-twitter-queue",
		},
		{
			name: "fifo",
			arn:  "arn:aws:sqs:eu-west-1:123456789012:jobs.fifo",
			want: "https://sqs.eu-west-1.amazonaws.com/123456789012/jobs.fifo",
		},
		{
			name: "china",
			arn:  "arn:aws-cn:sqs:cn-north-1:123456789012:q",
			want: "https://sqs.cn-north-1.amazonaws.com.cn/123456789012/q",
		},
		{name: "empty", arn: "", wantErr: true},
		{name: "other service", arn: "arn:aws:sns:us-east-1:123456789012:topic", wantErr: true},
		{name: "missing name", arn: "arn:aws:sqs:us-east-1:123456789012:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := handler.QueueURLFromARN(tt.arn)
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

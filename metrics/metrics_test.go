package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	Register(reg)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected registering twice to panic")
		}
	}()
	Register(reg)
}

func TestObserveOperation(t *testing.T) {
	ok := testutil.ToFloat64(Operations.WithLabelValues("MetricsTestOp", "ok"))
	failed := testutil.ToFloat64(Operations.WithLabelValues("MetricsTestOp", "error"))

	ObserveOperation("MetricsTestOp", nil)
	ObserveOperation("MetricsTestOp", fmt.Errorf("boom"))
	ObserveOperation("MetricsTestOp", fmt.Errorf("boom"))

	if got := testutil.ToFloat64(Operations.WithLabelValues("MetricsTestOp", "ok")); got != ok+1 {
		t.Errorf("expected %v ok operations, got %v", ok+1, got)
	}
	if got := testutil.ToFloat64(Operations.WithLabelValues("MetricsTestOp", "error")); got != failed+2 {
		t.Errorf("expected %v failed operations, got %v", failed+2, got)
	}
}

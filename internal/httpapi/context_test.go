package httpapi

import (
	"context"
	"net/http"
	"testing"
)

func TestRejectWhenDraining(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	SetBaseContext(ctx)
	// nolint:staticcheck // SA1012: nil restores the background context
	defer SetBaseContext(nil)

	svc := &mockService{}
	mux := NewMux(svc)
	if w := doJSON(t, mux, http.MethodPost, "/instances", `{"kind":"plot"}`); w.Code != http.StatusCreated {
		t.Fatalf("before shutdown status=%d", w.Code)
	}
	cancel()
	if w := doJSON(t, mux, http.MethodPost, "/instances", `{"kind":"plot"}`); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("after shutdown status=%d", w.Code)
	}
	if w := doJSON(t, mux, http.MethodPut, "/instances/p/channels/c/contents", `{"contents":[]}`); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("replace after shutdown status=%d", w.Code)
	}
	// reads and teardown keep working while draining
	if w := doJSON(t, mux, http.MethodGet, "/instances", ""); w.Code != http.StatusOK {
		t.Fatalf("list after shutdown status=%d", w.Code)
	}
	if w := doJSON(t, mux, http.MethodDelete, "/instances/p", ""); w.Code != http.StatusNoContent {
		t.Fatalf("delete after shutdown status=%d", w.Code)
	}
}

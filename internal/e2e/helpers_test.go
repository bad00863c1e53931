package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"channelhub/internal/broker"
	"channelhub/internal/hub"
	"channelhub/internal/httpapi"
	"channelhub/pkg/types"
)

// testDefinitions describes a table publishing two channels and a plot
// consuming through a multi-content and a single-content receiver.
func testDefinitions() []types.ModuleDefinition {
	return []types.ModuleDefinition{
		{
			Kind: "table",
			Channels: []types.ChannelDefinition{
				{ID: "values", DisplayName: "Values", KeyKind: "realization"},
				{ID: "series", KeyKind: "timestamp_ms"},
			},
		},
		{
			Kind: "plot",
			Receivers: []types.ReceiverDefinition{
				{ID: "x", SupportedKeyKinds: []string{"realization"}, SupportsMultiContent: true},
				{ID: "color", SupportedKeyKinds: []string{"realization", "timestamp_ms"}},
			},
		},
	}
}

func newServer(t *testing.T) (*httptest.Server, *hub.Hub, *broker.MemoryPublisher) {
	t.Helper()
	events := broker.NewMemoryPublisher()
	h := hub.New(hub.HubConfig{Definitions: testDefinitions(), Publisher: events})
	srv := httptest.NewServer(httpapi.NewMux(h))
	t.Cleanup(func() {
		srv.Close()
		h.Close()
	})
	return srv, h, events
}

func httpDo(t *testing.T, method, url string, payload any) (*http.Response, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, body)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	out, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, out
}

func expectStatus(t *testing.T, resp *http.Response, body []byte, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want %d body=%s", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, want, body)
	}
}

func createInstance(t *testing.T, srv *httptest.Server, kind string) string {
	t.Helper()
	resp, body := httpDo(t, http.MethodPost, srv.URL+"/instances", types.CreateInstanceRequest{Kind: kind})
	expectStatus(t, resp, body, http.StatusCreated)
	var sum types.InstanceSummary
	if err := json.Unmarshal(body, &sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	return sum.ID
}

func snapshot(t *testing.T, srv *httptest.Server, instanceID, receiverID string) (int, types.ReceiverSnapshot) {
	t.Helper()
	resp, body := httpDo(t, http.MethodGet, srv.URL+"/instances/"+instanceID+"/receivers/"+receiverID, nil)
	var s types.ReceiverSnapshot
	if err := json.Unmarshal(body, &s); err != nil {
		t.Fatalf("decode snapshot: %v (%s)", err, body)
	}
	return resp.StatusCode, s
}

func points(vals ...float64) []types.Point {
	out := make([]types.Point, len(vals))
	for i, v := range vals {
		out[i] = types.Point{Key: []float64{float64(i)}, Value: v}
	}
	return out
}

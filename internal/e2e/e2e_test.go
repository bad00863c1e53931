package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"channelhub/internal/broker"
	"channelhub/pkg/types"
)

// TestE2E_PublishSubscribeLifecycle walks a receiver through subscribe,
// republish, content replacement and publisher teardown over HTTP.
func TestE2E_PublishSubscribeLifecycle(t *testing.T) {
	srv, _, events := newServer(t)
	table := createInstance(t, srv, "table")
	plot := createInstance(t, srv, "plot")

	contentsURL := srv.URL + "/instances/" + table + "/channels/values/contents"
	resp, body := httpDo(t, http.MethodPut, contentsURL, types.ReplaceContentsRequest{Contents: []types.ContentPayload{
		{ID: "PORO", Points: points(0.1, 0.2)},
		{ID: "PERM", Points: points(10, 20)},
	}})
	expectStatus(t, resp, body, http.StatusNoContent)

	subURL := srv.URL + "/instances/" + plot + "/receivers/x/subscription"
	resp, body = httpDo(t, http.MethodPost, subURL, types.SubscribeRequest{PublisherID: table, ChannelID: "values", All: true})
	expectStatus(t, resp, body, http.StatusNoContent)

	code, s := snapshot(t, srv, plot, "x")
	if code != http.StatusOK || !s.Subscribed || s.KeyKind != "realization" || s.ChannelName != "Values" {
		t.Fatalf("snapshot after subscribe: %d %+v", code, s)
	}
	if len(s.Contents) != 2 || s.Contents[0].ID != "PORO" || s.Contents[1].Points[1].Value != 20 {
		t.Fatalf("contents: %+v", s.Contents)
	}
	rev := s.Revision

	resp, body = httpDo(t, http.MethodPut, contentsURL+"/PORO", types.ContentPayload{Points: points(0.3)})
	expectStatus(t, resp, body, http.StatusNoContent)
	_, s = snapshot(t, srv, plot, "x")
	if s.Revision <= rev || len(s.Contents[0].Points) != 1 || s.Contents[0].Points[0].Value != 0.3 {
		t.Fatalf("republish not observed: %+v", s)
	}

	// all-mode tracks the replaced content list
	resp, body = httpDo(t, http.MethodPut, contentsURL, types.ReplaceContentsRequest{Contents: []types.ContentPayload{
		{ID: "NTG", Points: points(1)},
	}})
	expectStatus(t, resp, body, http.StatusNoContent)
	_, s = snapshot(t, srv, plot, "x")
	if len(s.ContentIDs) != 1 || s.ContentIDs[0] != "NTG" {
		t.Fatalf("auto-track failed: %+v", s.ContentIDs)
	}

	resp, body = httpDo(t, http.MethodDelete, srv.URL+"/instances/"+table, nil)
	expectStatus(t, resp, body, http.StatusNoContent)
	_, s = snapshot(t, srv, plot, "x")
	if s.Subscribed || len(s.Contents) != 0 {
		t.Fatalf("receiver still attached after publisher removal: %+v", s)
	}

	names := events.Names()
	for _, want := range []string{broker.EventReceiverSubscribed, broker.EventContentPublished, broker.EventChannelRemoved, broker.EventReceiverUnsubscribed} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("event %q not published; got %v", want, names)
		}
	}
}

func TestE2E_ExplicitSelectionAndUnsubscribe(t *testing.T) {
	srv, _, _ := newServer(t)
	table := createInstance(t, srv, "table")
	plot := createInstance(t, srv, "plot")
	resp, body := httpDo(t, http.MethodPut, srv.URL+"/instances/"+table+"/channels/values/contents", types.ReplaceContentsRequest{Contents: []types.ContentPayload{
		{ID: "A", Points: points(1)},
		{ID: "B", Points: points(2)},
	}})
	expectStatus(t, resp, body, http.StatusNoContent)

	subURL := srv.URL + "/instances/" + plot + "/receivers/x/subscription"
	resp, body = httpDo(t, http.MethodPost, subURL, types.SubscribeRequest{PublisherID: table, ChannelID: "values", ContentIDs: []string{"B", "missing"}})
	expectStatus(t, resp, body, http.StatusNoContent)
	_, s := snapshot(t, srv, plot, "x")
	if len(s.Contents) != 1 || s.Contents[0].ID != "B" {
		t.Fatalf("explicit selection: %+v", s.Contents)
	}

	resp, body = httpDo(t, http.MethodDelete, subURL, nil)
	expectStatus(t, resp, body, http.StatusNoContent)
	_, s = snapshot(t, srv, plot, "x")
	if s.Subscribed {
		t.Fatalf("still subscribed: %+v", s)
	}
	// unsubscribing again is a no-op
	resp, body = httpDo(t, http.MethodDelete, subURL, nil)
	expectStatus(t, resp, body, http.StatusNoContent)
}

func TestE2E_SingleContentReceiverTakesFirst(t *testing.T) {
	srv, _, _ := newServer(t)
	table := createInstance(t, srv, "table")
	plot := createInstance(t, srv, "plot")
	resp, body := httpDo(t, http.MethodPut, srv.URL+"/instances/"+table+"/channels/series/contents", types.ReplaceContentsRequest{Contents: []types.ContentPayload{
		{ID: "first", Points: points(1)},
		{ID: "second", Points: points(2)},
	}})
	expectStatus(t, resp, body, http.StatusNoContent)
	resp, body = httpDo(t, http.MethodPost, srv.URL+"/instances/"+plot+"/receivers/color/subscription", types.SubscribeRequest{PublisherID: table, ChannelID: "series", All: true})
	expectStatus(t, resp, body, http.StatusNoContent)
	_, s := snapshot(t, srv, plot, "color")
	if len(s.ContentIDs) != 1 || s.ContentIDs[0] != "first" {
		t.Fatalf("single-content receiver ids: %v", s.ContentIDs)
	}
}

func TestE2E_KeyKindMismatchReported(t *testing.T) {
	srv, _, _ := newServer(t)
	table := createInstance(t, srv, "table")
	plot := createInstance(t, srv, "plot")
	resp, body := httpDo(t, http.MethodPut, srv.URL+"/instances/"+table+"/channels/series/contents", types.ReplaceContentsRequest{Contents: []types.ContentPayload{
		{ID: "ts", Points: points(1)},
	}})
	expectStatus(t, resp, body, http.StatusNoContent)
	// x only understands realization keys
	resp, body = httpDo(t, http.MethodPost, srv.URL+"/instances/"+plot+"/receivers/x/subscription", types.SubscribeRequest{PublisherID: table, ChannelID: "series", All: true})
	expectStatus(t, resp, body, http.StatusNoContent)
	code, s := snapshot(t, srv, plot, "x")
	if code != http.StatusUnprocessableEntity || s.Error == "" || !s.Subscribed {
		t.Fatalf("expected 422 with error, got %d %+v", code, s)
	}
}

func TestE2E_NotFoundAndValidation(t *testing.T) {
	srv, _, _ := newServer(t)
	plot := createInstance(t, srv, "plot")

	resp, body := httpDo(t, http.MethodPost, srv.URL+"/instances", types.CreateInstanceRequest{Kind: "nope"})
	expectStatus(t, resp, body, http.StatusBadRequest)

	resp, body = httpDo(t, http.MethodGet, srv.URL+"/instances/missing", nil)
	expectStatus(t, resp, body, http.StatusNotFound)
	var e types.ErrorResponse
	if err := json.Unmarshal(body, &e); err != nil || e.Code != http.StatusNotFound {
		t.Fatalf("error body: %s", body)
	}

	resp, body = httpDo(t, http.MethodPost, srv.URL+"/instances/"+plot+"/receivers/x/subscription", types.SubscribeRequest{PublisherID: "missing", ChannelID: "values"})
	expectStatus(t, resp, body, http.StatusNotFound)

	resp, body = httpDo(t, http.MethodGet, srv.URL+"/instances/"+plot+"/receivers/nope", nil)
	expectStatus(t, resp, body, http.StatusNotFound)
}

func TestE2E_InstanceDetailAndStatus(t *testing.T) {
	srv, _, _ := newServer(t)
	table := createInstance(t, srv, "table")
	plot := createInstance(t, srv, "plot")
	resp, body := httpDo(t, http.MethodPost, srv.URL+"/instances/"+plot+"/receivers/x/subscription", types.SubscribeRequest{PublisherID: table, ChannelID: "values", All: true})
	expectStatus(t, resp, body, http.StatusNoContent)

	resp, body = httpDo(t, http.MethodGet, srv.URL+"/instances/"+table, nil)
	expectStatus(t, resp, body, http.StatusOK)
	var d types.InstanceDetail
	if err := json.Unmarshal(body, &d); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if d.Kind != "table" || len(d.ChannelList) != 2 || d.ChannelList[0].Subscribers != 1 {
		t.Fatalf("detail: %+v", d)
	}

	resp, body = httpDo(t, http.MethodGet, srv.URL+"/status", nil)
	expectStatus(t, resp, body, http.StatusOK)
	var st types.StatusResponse
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if st.Instances != 2 || st.ActiveSubscriptions != 1 || st.EventsTotal == 0 {
		t.Fatalf("status: %+v", st)
	}
}

func TestE2E_ConcurrentClients(t *testing.T) {
	srv, h, _ := newServer(t)
	table := createInstance(t, srv, "table")
	const n = 8
	plots := make([]string, n)
	for i := range plots {
		plots[i] = createInstance(t, srv, "plot")
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			httpDo(t, http.MethodPut, srv.URL+"/instances/"+table+"/channels/values/contents", types.ReplaceContentsRequest{Contents: []types.ContentPayload{
				{ID: fmt.Sprintf("c%d", i), Points: points(float64(i))},
			}})
		}(i)
		go func(id string) {
			defer wg.Done()
			httpDo(t, http.MethodPost, srv.URL+"/instances/"+id+"/receivers/x/subscription", types.SubscribeRequest{PublisherID: table, ChannelID: "values", All: true})
		}(plots[i])
	}
	wg.Wait()

	if got := h.Status().ActiveSubscriptions; got != n {
		t.Fatalf("active subscriptions=%d want %d", got, n)
	}
	for _, id := range plots {
		_, s := snapshot(t, srv, id, "x")
		if len(s.ContentIDs) != 1 {
			t.Fatalf("receiver %s sees %v", id, s.ContentIDs)
		}
	}
}

package hub

import (
	"testing"

	"channelhub/pkg/types"
)

// testDefinitions: a "table" kind that publishes and a "plot" kind that consumes.
func testDefinitions() []types.ModuleDefinition {
	return []types.ModuleDefinition{
		{
			Kind: "table",
			Channels: []types.ChannelDefinition{
				{ID: "values", DisplayName: "Values", KeyKind: "realization"},
				{ID: "series", DisplayName: "Series", KeyKind: "timestamp_ms"},
			},
		},
		{
			Kind: "plot",
			Receivers: []types.ReceiverDefinition{
				{ID: "x", DisplayName: "X", SupportedKeyKinds: []string{"realization"}, SupportsMultiContent: true},
				{ID: "single", SupportedKeyKinds: []string{"realization"}},
			},
		},
	}
}

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	h := New(HubConfig{Definitions: testDefinitions()})
	t.Cleanup(h.Close)
	return h
}

func mustCreate(t *testing.T, h *Hub, kind string) string {
	t.Helper()
	s, err := h.CreateInstance(kind, kind+" instance")
	if err != nil {
		t.Fatalf("create %s: %v", kind, err)
	}
	return s.ID
}

func payload(id string, values ...float64) types.ContentPayload {
	pts := make([]types.Point, len(values))
	for i, v := range values {
		pts[i] = types.Point{Key: []float64{float64(i)}, Value: v}
	}
	return types.ContentPayload{ID: id, DisplayName: id, Points: pts, Metadata: map[string]any{"unit": "m3"}}
}

package broker

import (
	"reflect"
	"testing"
)

// countingGen returns a generator that yields n single-key points and counts its calls.
func countingGen(n int, calls *int) Generator {
	return func() (GeneratedData, error) {
		*calls++
		pts := make([]DataPoint, n)
		for i := range pts {
			pts[i] = DataPoint{Key: []float64{float64(i)}, Value: float64(*calls)}
		}
		return GeneratedData{Data: pts, Metadata: Metadata{"call": *calls}}, nil
	}
}

func staticGen(points ...DataPoint) Generator {
	return func() (GeneratedData, error) {
		return GeneratedData{Data: points, Metadata: Metadata{}}, nil
	}
}

func defs(ids ...string) []ContentDefinition {
	out := make([]ContentDefinition, len(ids))
	for i, id := range ids {
		out[i] = ContentDefinition{ID: id, DisplayName: "Content " + id, Generator: staticGen(DataPoint{Key: []float64{1}, Value: 1})}
	}
	return out
}

// newTestChannel registers a single channel on a fresh manager.
func newTestChannel(t *testing.T, owner, id string, kind KeyKind) (*Manager, *Channel) {
	t.Helper()
	m := NewManager(owner)
	if err := m.RegisterChannels(ChannelDefinition{ID: id, DisplayName: id, KeyKind: kind}); err != nil {
		t.Fatalf("register channel: %v", err)
	}
	return m, m.Channel(id)
}

func newTestReceiver(t *testing.T, m *Manager, id string, multi bool, kinds ...KeyKind) *Receiver {
	t.Helper()
	if err := m.RegisterReceivers(ReceiverDefinition{ID: id, DisplayName: id, SupportedKeyKinds: kinds, SupportsMultiContent: multi}); err != nil {
		t.Fatalf("register receiver: %v", err)
	}
	return m.Receiver(id)
}

// recorder appends a label for every notification it is wired to.
type recorder struct{ got []string }

func (r *recorder) hook(label string) func() {
	return func() { r.got = append(r.got, label) }
}

func (r *recorder) count(label string) int {
	n := 0
	for _, g := range r.got {
		if g == label {
			n++
		}
	}
	return n
}

func assertIDs(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ids=%v want %v", got, want)
	}
}

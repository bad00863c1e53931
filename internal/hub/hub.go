package hub

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"channelhub/internal/broker"
	"channelhub/pkg/types"
)

type Hub struct {
	mu          sync.Mutex
	definitions []types.ModuleDefinition
	strictIDs   bool
	log         zerolog.Logger

	instances map[string]*instance
	order     []string // instance ids in creation order
	closed    bool

	publisher   broker.EventPublisher
	eventsTotal atomic.Uint64
	startTime   time.Time
}

// New constructs a Hub from HubConfig.
func New(cfg HubConfig) *Hub {
	h := &Hub{
		definitions: append([]types.ModuleDefinition(nil), cfg.Definitions...),
		strictIDs:   cfg.StrictIDs,
		instances:   make(map[string]*instance),
		startTime:   time.Now(),
	}
	if cfg.Logger != nil {
		h.log = cfg.Logger.With().Str("component", "hub").Logger()
	} else {
		h.log = zerolog.Nop()
	}
	next := cfg.Publisher
	if next == nil {
		next = MultiPublisher{}
	}
	h.publisher = countingPublisher{total: &h.eventsTotal, next: next}
	return h
}

// Ready reports whether the hub accepts calls.
func (h *Hub) Ready() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.closed
}

// Definitions returns a copy of the known module definitions.
func (h *Hub) Definitions() []types.ModuleDefinition {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]types.ModuleDefinition, len(h.definitions))
	copy(out, h.definitions)
	return out
}

// ListInstances returns instance summaries in creation order.
func (h *Hub) ListInstances() []types.InstanceSummary {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]types.InstanceSummary, 0, len(h.order))
	for _, id := range h.order {
		out = append(out, h.instances[id].summary())
	}
	return out
}

// Helper: find definition by kind.
func (h *Hub) getDefinition(kind string) (types.ModuleDefinition, bool) {
	for _, d := range h.definitions {
		if d.Kind == kind {
			return d, true
		}
	}
	return types.ModuleDefinition{}, false
}

// Helper: instance lookup; caller holds h.mu.
func (h *Hub) getInstance(id string) (*instance, error) {
	in := h.instances[id]
	if in == nil {
		return nil, instanceNotFoundError{id: id}
	}
	return in, nil
}

// countingPublisher counts every event before forwarding it.
type countingPublisher struct {
	total *atomic.Uint64
	next  broker.EventPublisher
}

func (p countingPublisher) Publish(e broker.Event) {
	p.total.Add(1)
	p.next.Publish(e)
}

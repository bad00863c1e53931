package hub

import (
	"time"

	"github.com/google/uuid"

	"channelhub/internal/broker"
	"channelhub/pkg/types"
)

// CreateInstance instantiates a module kind under a fresh id.
func (h *Hub) CreateInstance(kind, name string) (types.InstanceSummary, error) {
	return h.CreateInstanceWithID("", kind, name)
}

// CreateInstanceWithID instantiates a module kind under id, or a fresh id
// when empty. The kind's channels and receivers are registered on a new
// broker manager owned by the instance.
func (h *Hub) CreateInstanceWithID(id, kind, name string) (types.InstanceSummary, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return types.InstanceSummary{}, errClosed
	}
	def, ok := h.getDefinition(kind)
	if !ok {
		return types.InstanceSummary{}, moduleKindNotFoundError{kind: kind}
	}
	if id == "" {
		id = uuid.NewString()
	}
	if _, exists := h.instances[id]; exists {
		return types.InstanceSummary{}, instanceExistsError{id: id}
	}

	channels, receivers, err := brokerDefinitions(def)
	if err != nil {
		return types.InstanceSummary{}, definitionError{kind: kind, err: err}
	}
	m := broker.NewManagerWithConfig(broker.ManagerConfig{
		OwnerID:   id,
		StrictIDs: h.strictIDs,
		Publisher: h.publisher,
	})
	if err := m.RegisterChannels(channels...); err != nil {
		return types.InstanceSummary{}, definitionError{kind: kind, err: err}
	}
	if err := m.RegisterReceivers(receivers...); err != nil {
		m.UnregisterAllChannels()
		return types.InstanceSummary{}, definitionError{kind: kind, err: err}
	}

	in := &instance{
		id:       id,
		kind:     kind,
		name:     name,
		created:  time.Now(),
		manager:  m,
		trackers: make(map[string]*broker.Tracker),
	}
	for _, r := range m.Receivers() {
		if _, dup := in.trackers[r.ID()]; dup {
			continue
		}
		in.trackers[r.ID()] = broker.NewTracker(r)
	}
	h.instances[id] = in
	h.order = append(h.order, id)

	h.publisher.Publish(broker.Event{Name: EventInstanceCreated, OwnerID: id, Fields: map[string]any{"kind": kind}})
	h.log.Info().Str("instance", id).Str("kind", kind).Str("name", name).Msg("instance created")
	return in.summary(), nil
}

// RemoveInstance tears an instance down: its receivers release their
// subscriptions, then its channels announce removal to every receiver still
// attached (in this or any other instance).
func (h *Hub) RemoveInstance(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	in, err := h.getInstance(id)
	if err != nil {
		return err
	}
	h.teardown(in)
	return nil
}

// Close removes every instance, newest first, and rejects later mutations.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for i := len(h.order) - 1; i >= 0; i-- {
		h.teardown(h.instances[h.order[i]])
	}
	h.closed = true
}

// teardown removes in; caller holds h.mu.
func (h *Hub) teardown(in *instance) {
	in.manager.UnregisterAllReceivers()
	in.manager.UnregisterAllChannels()
	for _, t := range in.trackers {
		t.Close()
	}
	delete(h.instances, in.id)
	for i, id := range h.order {
		if id == in.id {
			h.order = append(h.order[:i:i], h.order[i+1:]...)
			break
		}
	}
	h.publisher.Publish(broker.Event{Name: EventInstanceRemoved, OwnerID: in.id, Fields: map[string]any{"kind": in.kind}})
	h.log.Info().Str("instance", in.id).Str("kind", in.kind).Msg("instance removed")
}

// brokerDefinitions converts wire definitions, parsing key kinds.
func brokerDefinitions(def types.ModuleDefinition) ([]broker.ChannelDefinition, []broker.ReceiverDefinition, error) {
	channels := make([]broker.ChannelDefinition, 0, len(def.Channels))
	for _, c := range def.Channels {
		kind, err := broker.ParseKeyKind(c.KeyKind)
		if err != nil {
			return nil, nil, err
		}
		channels = append(channels, broker.ChannelDefinition{ID: c.ID, DisplayName: c.DisplayName, KeyKind: kind})
	}
	receivers := make([]broker.ReceiverDefinition, 0, len(def.Receivers))
	for _, r := range def.Receivers {
		kinds := make([]broker.KeyKind, 0, len(r.SupportedKeyKinds))
		for _, s := range r.SupportedKeyKinds {
			kind, err := broker.ParseKeyKind(s)
			if err != nil {
				return nil, nil, err
			}
			kinds = append(kinds, kind)
		}
		receivers = append(receivers, broker.ReceiverDefinition{
			ID:                   r.ID,
			DisplayName:          r.DisplayName,
			SupportedKeyKinds:    kinds,
			SupportsMultiContent: r.SupportsMultiContent,
		})
	}
	return channels, receivers, nil
}

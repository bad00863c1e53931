package broker

// ManagerTopic enumerates the notifications a Manager emits.
type ManagerTopic int

const (
	ChannelsChanged ManagerTopic = iota
	ReceiversChanged
)

// ManagerConfig encapsulates the options of a Manager.
type ManagerConfig struct {
	// OwnerID identifies the module instance the manager belongs to.
	OwnerID string
	// StrictIDs rejects registrations whose id is already taken. By default
	// duplicates are kept and lookups resolve to the first match.
	StrictIDs bool
	// Publisher receives lifecycle events; nil drops them.
	Publisher EventPublisher
}

// Manager is the per-owner registry of Channels and Receivers and the only
// way to create or destroy either.
type Manager struct {
	ownerID   string
	strictIDs bool
	publisher EventPublisher

	channels  []*Channel
	receivers []*Receiver

	obs observers[ManagerTopic]
}

// NewManager constructs a Manager with default options.
func NewManager(ownerID string) *Manager {
	return NewManagerWithConfig(ManagerConfig{OwnerID: ownerID})
}

// NewManagerWithConfig constructs a Manager from ManagerConfig.
func NewManagerWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		ownerID:   cfg.OwnerID,
		strictIDs: cfg.StrictIDs,
	}
	m.SetEventPublisher(cfg.Publisher)
	return m
}

// SetEventPublisher installs p; nil restores the no-op publisher.
func (m *Manager) SetEventPublisher(p EventPublisher) {
	if p == nil {
		p = noopPublisher{}
	}
	m.publisher = p
}

// OwnerID returns the module instance id; empty for a nil manager.
func (m *Manager) OwnerID() string {
	if m == nil {
		return ""
	}
	return m.ownerID
}

func (m *Manager) publish(name string, fields map[string]any) {
	if m == nil {
		return
	}
	m.publisher.Publish(Event{Name: name, OwnerID: m.ownerID, Fields: fields})
}

// RegisterChannels appends one Channel per definition and notifies
// ChannelsChanged once. With StrictIDs a batch containing an id that is
// already registered (or repeated within the batch) is rejected whole.
func (m *Manager) RegisterChannels(defs ...ChannelDefinition) error {
	if m.strictIDs {
		seen := make(map[string]bool, len(m.channels)+len(defs))
		for _, ch := range m.channels {
			seen[ch.id] = true
		}
		for _, d := range defs {
			if seen[d.ID] {
				return duplicateIDError{entity: "channel", id: d.ID}
			}
			seen[d.ID] = true
		}
	}
	for _, d := range defs {
		m.channels = append(m.channels, newChannel(m, d))
	}
	m.publish(EventChannelsRegistered, map[string]any{"count": len(defs)})
	m.obs.notify(ChannelsChanged)
	return nil
}

// RegisterReceivers appends one Receiver per definition and notifies
// ReceiversChanged once. Duplicate handling follows RegisterChannels.
func (m *Manager) RegisterReceivers(defs ...ReceiverDefinition) error {
	if m.strictIDs {
		seen := make(map[string]bool, len(m.receivers)+len(defs))
		for _, r := range m.receivers {
			seen[r.id] = true
		}
		for _, d := range defs {
			if seen[d.ID] {
				return duplicateIDError{entity: "receiver", id: d.ID}
			}
			seen[d.ID] = true
		}
	}
	for _, d := range defs {
		m.receivers = append(m.receivers, newReceiver(m, d))
	}
	m.publish(EventReceiversRegistered, map[string]any{"count": len(defs)})
	m.obs.notify(ReceiversChanged)
	return nil
}

// UnregisterAllChannels announces removal on every channel, in order, before
// dropping them, so attached receivers never keep a dead reference.
func (m *Manager) UnregisterAllChannels() {
	channels := m.channels
	for _, ch := range channels {
		ch.BeforeRemove()
	}
	m.channels = nil
	m.publish(EventChannelsUnregistered, map[string]any{"count": len(channels)})
	m.obs.notify(ChannelsChanged)
}

// UnregisterAllReceivers releases every receiver's subscription before
// dropping them.
func (m *Manager) UnregisterAllReceivers() {
	receivers := m.receivers
	for _, r := range receivers {
		r.UnsubscribeFromCurrentChannel()
	}
	m.receivers = nil
	m.publish(EventReceiversUnregistered, map[string]any{"count": len(receivers)})
	m.obs.notify(ReceiversChanged)
}

// Channel returns the first channel registered under id, or nil.
func (m *Manager) Channel(id string) *Channel {
	for _, ch := range m.channels {
		if ch.id == id {
			return ch
		}
	}
	return nil
}

// Receiver returns the first receiver registered under id, or nil.
func (m *Manager) Receiver(id string) *Receiver {
	for _, r := range m.receivers {
		if r.id == id {
			return r
		}
	}
	return nil
}

// Channels returns the registered channels in registration order.
func (m *Manager) Channels() []*Channel {
	out := make([]*Channel, len(m.channels))
	copy(out, m.channels)
	return out
}

// Receivers returns the registered receivers in registration order.
func (m *Manager) Receivers() []*Receiver {
	out := make([]*Receiver, len(m.receivers))
	copy(out, m.receivers)
	return out
}

// Subscribe registers fn for topic. The returned func removes it and must
// be retained by the caller; calling it more than once is harmless.
func (m *Manager) Subscribe(topic ManagerTopic, fn func()) (unsubscribe func()) {
	id := m.obs.add(topic, fn)
	return func() { m.obs.remove(topic, id) }
}

package broker

// ChannelTopic enumerates the notifications a Channel emits.
type ChannelTopic int

const (
	// ContentsArrayChanged fires after the content list was replaced.
	ContentsArrayChanged ChannelTopic = iota
	// ContentsDataChanged fires after the content list was replaced or any
	// contained Content published new data.
	ContentsDataChanged
	// ChannelAboutToBeRemoved fires once, right before the owning Manager
	// drops the Channel.
	ChannelAboutToBeRemoved
)

// ChannelDefinition describes a Channel to be registered on a Manager.
type ChannelDefinition struct {
	ID          string
	DisplayName string
	KeyKind     KeyKind
}

// Channel is a named collection of Contents sharing one key kind. Its
// content list is replaced wholesale, never edited element by element.
type Channel struct {
	id          string
	displayName string
	keyKind     KeyKind
	manager     *Manager

	contents []*Content
	// forwards[i] is the DataChanged subscription on contents[i].
	forwards []SubscriptionID
	removed  bool

	obs observers[ChannelTopic]
}

func newChannel(m *Manager, def ChannelDefinition) *Channel {
	return &Channel{
		id:          def.ID,
		displayName: def.DisplayName,
		keyKind:     def.KeyKind,
		manager:     m,
	}
}

func (c *Channel) ID() string          { return c.id }
func (c *Channel) DisplayName() string { return c.displayName }
func (c *Channel) KeyKind() KeyKind    { return c.keyKind }

// Manager returns the Manager that registered this channel.
func (c *Channel) Manager() *Manager { return c.manager }

// Removed reports whether BeforeRemove has been called.
func (c *Channel) Removed() bool { return c.removed }

// ReplaceContents discards the current contents and creates one Content per
// definition, in order. Subscribers see ContentsArrayChanged first, then
// ContentsDataChanged.
func (c *Channel) ReplaceContents(defs []ContentDefinition) {
	for i, old := range c.contents {
		old.Unsubscribe(DataChanged, c.forwards[i])
		old.channel = nil
	}

	contents := make([]*Content, 0, len(defs))
	forwards := make([]SubscriptionID, 0, len(defs))
	for _, def := range defs {
		ct := newContent(c, def)
		forwards = append(forwards, ct.Subscribe(DataChanged, c.onContentDataChanged))
		contents = append(contents, ct)
	}
	c.contents = contents
	c.forwards = forwards

	c.manager.publish(EventContentsReplaced, map[string]any{
		"channel_id": c.id,
		"contents":   len(contents),
	})
	c.obs.notify(ContentsArrayChanged)
	c.obs.notify(ContentsDataChanged)
}

func (c *Channel) onContentDataChanged() { c.obs.notify(ContentsDataChanged) }

// Content returns the first content with the given id, or nil.
func (c *Channel) Content(id string) *Content {
	for _, ct := range c.contents {
		if ct.id == id {
			return ct
		}
	}
	return nil
}

// Contents returns the current contents in declaration order.
func (c *Channel) Contents() []*Content {
	out := make([]*Content, len(c.contents))
	copy(out, c.contents)
	return out
}

// ContentIDs returns the ids of the current contents in declaration order.
func (c *Channel) ContentIDs() []string {
	out := make([]string, len(c.contents))
	for i, ct := range c.contents {
		out[i] = ct.id
	}
	return out
}

// BeforeRemove announces that the channel is going away. It is the only way
// attached receivers learn about removal; the first call notifies
// ChannelAboutToBeRemoved subscribers, later calls do nothing.
func (c *Channel) BeforeRemove() {
	if c.removed {
		return
	}
	c.removed = true
	c.manager.publish(EventChannelRemoved, map[string]any{"channel_id": c.id})
	c.obs.notify(ChannelAboutToBeRemoved)
}

// Subscribe registers fn for topic and returns a handle for Unsubscribe.
func (c *Channel) Subscribe(topic ChannelTopic, fn func()) SubscriptionID {
	return c.obs.add(topic, fn)
}

// Unsubscribe removes a callback. Unknown handles are ignored.
func (c *Channel) Unsubscribe(topic ChannelTopic, id SubscriptionID) {
	c.obs.remove(topic, id)
}

// SubscriberCount returns the number of callbacks registered on topic.
func (c *Channel) SubscriberCount(topic ChannelTopic) int { return c.obs.count(topic) }

package broker

import "fmt"

// ReceiverTopic enumerates the notifications a Receiver emits.
type ReceiverTopic int

const (
	// ChannelChanged fires when the subscribed channel is replaced or
	// voluntarily released.
	ChannelChanged ReceiverTopic = iota
	// ReceiverContentsDataChanged fires when the selected data, or the
	// selection itself, changed.
	ReceiverContentsDataChanged
)

// ReceiverDefinition describes a Receiver to be registered on a Manager.
type ReceiverDefinition struct {
	ID                   string
	DisplayName          string
	SupportedKeyKinds    []KeyKind
	SupportsMultiContent bool
}

// Selection chooses which contents of a channel a receiver follows.
type Selection struct {
	all bool
	ids []string
}

// SelectAll follows the channel's content list as it changes: every content
// for multi-content receivers, the first one otherwise.
func SelectAll() Selection { return Selection{all: true} }

// SelectContents follows exactly the given content ids.
func SelectContents(ids ...string) Selection {
	return Selection{ids: append([]string(nil), ids...)}
}

func (s Selection) All() bool { return s.all }

func (s Selection) IDs() []string { return append([]string(nil), s.ids...) }

// ContentData is one selected content as read through a Receiver.
type ContentData struct {
	ID          string
	DisplayName string
	Data        []DataPoint
	Metadata    Metadata
}

// Receiver is a typed consumer attached to at most one Channel at a time.
type Receiver struct {
	id                   string
	displayName          string
	supportedKeyKinds    []KeyKind
	supportsMultiContent bool
	manager              *Manager

	channel         *Channel
	contentIDs      []string
	subscribedToAll bool

	// Listener handles on channel; zero when not attached.
	autoTrackSub SubscriptionID
	removedSub   SubscriptionID
	dataSub      SubscriptionID
	arraySub     SubscriptionID

	obs observers[ReceiverTopic]
}

func newReceiver(m *Manager, def ReceiverDefinition) *Receiver {
	return &Receiver{
		id:                   def.ID,
		displayName:          def.DisplayName,
		supportedKeyKinds:    append([]KeyKind(nil), def.SupportedKeyKinds...),
		supportsMultiContent: def.SupportsMultiContent,
		manager:              m,
	}
}

func (r *Receiver) ID() string                 { return r.id }
func (r *Receiver) DisplayName() string        { return r.displayName }
func (r *Receiver) SupportsMultiContent() bool { return r.supportsMultiContent }

// Manager returns the Manager that registered this receiver.
func (r *Receiver) Manager() *Manager { return r.manager }

func (r *Receiver) SupportedKeyKinds() []KeyKind {
	return append([]KeyKind(nil), r.supportedKeyKinds...)
}

// SupportsKeyKind reports whether the receiver declared kind.
func (r *Receiver) SupportsKeyKind(kind KeyKind) bool {
	for _, k := range r.supportedKeyKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Channel returns the subscribed channel, or nil.
func (r *Receiver) Channel() *Channel { return r.channel }

func (r *Receiver) HasActiveSubscription() bool { return r.channel != nil }

func (r *Receiver) SubscribedToAll() bool { return r.subscribedToAll }

// ContentIDs returns the current selection. In "all" mode it always reflects
// the channel's latest content list.
func (r *Receiver) ContentIDs() []string { return append([]string(nil), r.contentIDs...) }

// SubscribeToChannel attaches the receiver to ch, leaving any previous
// channel first. Subscribers see ChannelChanged, then ContentsDataChanged.
// A nil or already removed channel is a voluntary unsubscribe.
func (r *Receiver) SubscribeToChannel(ch *Channel, sel Selection) {
	if ch == nil || ch.removed {
		r.UnsubscribeFromCurrentChannel()
		return
	}
	r.detach()
	r.channel = ch

	if sel.all {
		r.subscribedToAll = true
		r.contentIDs = r.selectAll(ch)
		// Registered before the forwarders so the selection is current
		// when ContentsDataChanged is forwarded.
		r.autoTrackSub = ch.Subscribe(ContentsArrayChanged, func() { r.onContentsArrayChanged(ch) })
	} else {
		r.subscribedToAll = false
		r.contentIDs = sel.IDs()
	}

	r.removedSub = ch.Subscribe(ChannelAboutToBeRemoved, func() { r.handleChannelRemoved(ch) })
	r.dataSub = ch.Subscribe(ContentsDataChanged, func() { r.forwardDataChanged(ch) })
	r.arraySub = ch.Subscribe(ContentsArrayChanged, func() { r.forwardDataChanged(ch) })

	r.manager.publish(EventReceiverSubscribed, map[string]any{
		"receiver_id":  r.id,
		"channel_id":   ch.id,
		"publisher_id": ch.manager.OwnerID(),
		"all":          sel.all,
	})
	r.obs.notify(ChannelChanged)
	r.obs.notify(ReceiverContentsDataChanged)
}

// UnsubscribeFromCurrentChannel releases the current subscription and
// notifies ChannelChanged. Without a subscription it does nothing.
func (r *Receiver) UnsubscribeFromCurrentChannel() {
	if r.channel == nil {
		return
	}
	chID := r.channel.id
	r.detach()
	r.manager.publish(EventReceiverUnsubscribed, map[string]any{
		"receiver_id": r.id,
		"channel_id":  chID,
	})
	r.obs.notify(ChannelChanged)
}

// handleChannelRemoved is the channel-initiated teardown. It clears the
// subscription without announcing ChannelChanged.
func (r *Receiver) handleChannelRemoved(ch *Channel) {
	if r.channel != ch {
		return
	}
	r.detach()
	r.manager.publish(EventReceiverUnsubscribed, map[string]any{
		"receiver_id": r.id,
		"channel_id":  ch.id,
		"forced":      true,
	})
}

// detach drops every listener on the current channel and clears the
// selection. It emits nothing.
func (r *Receiver) detach() {
	if ch := r.channel; ch != nil {
		ch.Unsubscribe(ContentsArrayChanged, r.autoTrackSub)
		ch.Unsubscribe(ChannelAboutToBeRemoved, r.removedSub)
		ch.Unsubscribe(ContentsDataChanged, r.dataSub)
		ch.Unsubscribe(ContentsArrayChanged, r.arraySub)
	}
	r.autoTrackSub, r.removedSub, r.dataSub, r.arraySub = 0, 0, 0, 0
	r.channel = nil
	r.contentIDs = nil
	r.subscribedToAll = false
}

func (r *Receiver) selectAll(ch *Channel) []string {
	ids := ch.ContentIDs()
	if r.supportsMultiContent || len(ids) == 0 {
		return ids
	}
	return ids[:1]
}

func (r *Receiver) onContentsArrayChanged(ch *Channel) {
	if r.channel != ch || !r.subscribedToAll {
		return
	}
	r.contentIDs = r.selectAll(ch)
}

func (r *Receiver) forwardDataChanged(ch *Channel) {
	if r.channel != ch {
		return
	}
	r.obs.notify(ReceiverContentsDataChanged)
}

// ReadContents returns the selected contents' data and metadata. It fails
// when the channel's key kind is not supported by this receiver, when a data
// point's key does not match that kind, or when a generator fails. Selected
// ids missing from the channel are skipped. Without a subscription it
// returns nil.
func (r *Receiver) ReadContents() ([]ContentData, error) {
	ch := r.channel
	if ch == nil {
		return nil, nil
	}
	if !r.SupportsKeyKind(ch.keyKind) {
		return nil, unsupportedKeyKindError{
			receiverID: r.id,
			channelID:  ch.id,
			kind:       ch.keyKind,
			supported:  r.SupportedKeyKinds(),
		}
	}
	out := make([]ContentData, 0, len(r.contentIDs))
	for _, id := range r.contentIDs {
		ct := ch.Content(id)
		if ct == nil {
			continue
		}
		g, err := ct.generated()
		if err != nil {
			return nil, err
		}
		data, meta := g.Data, g.Metadata
		if err := checkKeyShape(ch.keyKind, data); err != nil {
			return nil, fmt.Errorf("content %s: %w", id, err)
		}
		out = append(out, ContentData{
			ID:          ct.id,
			DisplayName: ct.displayName,
			Data:        data,
			Metadata:    meta,
		})
	}
	return out, nil
}

// Subscribe registers fn for topic and returns a handle for Unsubscribe.
func (r *Receiver) Subscribe(topic ReceiverTopic, fn func()) SubscriptionID {
	return r.obs.add(topic, fn)
}

// Unsubscribe removes a callback. Unknown handles are ignored.
func (r *Receiver) Unsubscribe(topic ReceiverTopic, id SubscriptionID) {
	r.obs.remove(topic, id)
}

package broker

// Snapshot is a read-only projection of a receiver's current view.
type Snapshot struct {
	// Revision increases with every change the receiver announced.
	Revision uint64
	// Subscribed is false when the receiver has no channel.
	Subscribed  bool
	ChannelID   string
	ChannelName string
	// PublisherID is the owner id of the manager that registered the channel.
	PublisherID string
	KeyKind     KeyKind
	ContentIDs  []string
	Contents    []ContentData
	// Pending is true while subscribed without any selected content, i.e.
	// the publisher has not provided data yet.
	Pending bool
	// Err is the read failure, if any. Contents is empty when set.
	Err error
}

// Tracker keeps a lazily recomputed Snapshot of a Receiver. Notifications
// only mark the snapshot stale; data is read on the next Snapshot call.
type Tracker struct {
	r *Receiver

	revision    uint64
	stale       bool
	lastChannel *Channel
	snap        Snapshot

	channelSub SubscriptionID
	dataSub    SubscriptionID
}

// NewTracker starts observing r. Call Close to detach.
func NewTracker(r *Receiver) *Tracker {
	t := &Tracker{r: r, stale: true}
	t.channelSub = r.Subscribe(ChannelChanged, t.invalidate)
	t.dataSub = r.Subscribe(ReceiverContentsDataChanged, t.invalidate)
	return t
}

func (t *Tracker) invalidate() {
	t.revision++
	t.stale = true
}

// Receiver returns the observed receiver.
func (t *Tracker) Receiver() *Receiver { return t.r }

// Revision returns the number of changes observed so far.
func (t *Tracker) Revision() uint64 { return t.revision }

// Snapshot returns the receiver's current view, reading data only when
// something changed since the previous call. A channel removal, which the
// receiver does not announce, is detected by comparing channel references.
func (t *Tracker) Snapshot() Snapshot {
	ch := t.r.Channel()
	if ch != t.lastChannel {
		t.invalidate()
	}
	if !t.stale {
		return t.snap
	}
	t.lastChannel = ch
	t.stale = false

	s := Snapshot{Revision: t.revision}
	if ch != nil {
		s.Subscribed = true
		s.ChannelID = ch.ID()
		s.ChannelName = ch.DisplayName()
		s.PublisherID = ch.Manager().OwnerID()
		s.KeyKind = ch.KeyKind()
		s.ContentIDs = t.r.ContentIDs()
		s.Pending = len(s.ContentIDs) == 0
		s.Contents, s.Err = t.r.ReadContents()
	}
	t.snap = s
	return s
}

// Close stops observing the receiver. It is safe to call more than once.
func (t *Tracker) Close() {
	t.r.Unsubscribe(ChannelChanged, t.channelSub)
	t.r.Unsubscribe(ReceiverContentsDataChanged, t.dataSub)
	t.channelSub, t.dataSub = 0, 0
}

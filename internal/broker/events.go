package broker

// Lifecycle event names published by a Manager.
const (
	EventChannelsRegistered    = "channels_registered"
	EventChannelsUnregistered  = "channels_unregistered"
	EventReceiversRegistered   = "receivers_registered"
	EventReceiversUnregistered = "receivers_unregistered"
	EventContentsReplaced      = "contents_replaced"
	EventContentPublished      = "content_published"
	EventReceiverSubscribed    = "receiver_subscribed"
	EventReceiverUnsubscribed  = "receiver_unsubscribed"
	EventChannelRemoved        = "channel_removed"
)

// Event represents a broker lifecycle event.
// Minimal and stable: name + owning module instance and optional fields.
type Event struct {
	Name    string
	OwnerID string
	Fields  map[string]any
}

// EventPublisher receives events from a Manager and the entities it owns.
// Publish is called synchronously from inside broker operations, so
// implementations should be lightweight and must not call back into the broker.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}

package hub

import (
	"channelhub/internal/broker"
	"channelhub/pkg/types"
)

// Subscribe attaches a receiver of instanceID to a channel published by
// req.PublisherID (the same instance when empty).
func (h *Hub) Subscribe(instanceID, receiverID string, req types.SubscribeRequest) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, err := h.getReceiver(instanceID, receiverID)
	if err != nil {
		return err
	}
	publisherID := req.PublisherID
	if publisherID == "" {
		publisherID = instanceID
	}
	ch, err := h.getChannel(publisherID, req.ChannelID)
	if err != nil {
		return err
	}
	sel := broker.SelectContents(req.ContentIDs...)
	if req.All {
		sel = broker.SelectAll()
	}
	r.SubscribeToChannel(ch, sel)
	h.log.Debug().
		Str("instance", instanceID).
		Str("receiver", receiverID).
		Str("publisher", publisherID).
		Str("channel", req.ChannelID).
		Bool("all", req.All).
		Msg("receiver subscribed")
	return nil
}

// Unsubscribe releases a receiver's subscription; a no-op when it has none.
func (h *Hub) Unsubscribe(instanceID, receiverID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, err := h.getReceiver(instanceID, receiverID)
	if err != nil {
		return err
	}
	r.UnsubscribeFromCurrentChannel()
	return nil
}

// ReceiverSnapshot returns the receiver's current view. On a read failure
// the snapshot (with Error set) is returned together with the error.
func (h *Hub) ReceiverSnapshot(instanceID, receiverID string) (types.ReceiverSnapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	in, err := h.getInstance(instanceID)
	if err != nil {
		return types.ReceiverSnapshot{}, err
	}
	t := in.trackers[receiverID]
	if t == nil {
		return types.ReceiverSnapshot{}, receiverNotFoundError{instanceID: instanceID, id: receiverID}
	}
	s := t.Snapshot()
	out := types.ReceiverSnapshot{
		ReceiverID:  receiverID,
		Revision:    s.Revision,
		Subscribed:  s.Subscribed,
		PublisherID: s.PublisherID,
		ChannelID:   s.ChannelID,
		ChannelName: s.ChannelName,
		KeyKind:     string(s.KeyKind),
		ContentIDs:  s.ContentIDs,
		Pending:     s.Pending,
	}
	for _, c := range s.Contents {
		out.Contents = append(out.Contents, contentPayload(c))
	}
	if s.Err != nil {
		out.Error = s.Err.Error()
		return out, readError{err: s.Err}
	}
	return out, nil
}

// Helper: receiver lookup; caller holds h.mu.
func (h *Hub) getReceiver(instanceID, receiverID string) (*broker.Receiver, error) {
	if h.closed {
		return nil, errClosed
	}
	in, err := h.getInstance(instanceID)
	if err != nil {
		return nil, err
	}
	r := in.manager.Receiver(receiverID)
	if r == nil {
		return nil, receiverNotFoundError{instanceID: instanceID, id: receiverID}
	}
	return r, nil
}

func contentPayload(c broker.ContentData) types.ContentPayload {
	points := make([]types.Point, len(c.Data))
	for i, p := range c.Data {
		points[i] = types.Point{Key: append([]float64(nil), p.Key...), Value: p.Value}
	}
	var meta map[string]any
	if len(c.Metadata) > 0 {
		meta = make(map[string]any, len(c.Metadata))
		for k, v := range c.Metadata {
			meta[k] = v
		}
	}
	return types.ContentPayload{ID: c.ID, DisplayName: c.DisplayName, Points: points, Metadata: meta}
}

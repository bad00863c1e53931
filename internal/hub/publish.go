package hub

import (
	"channelhub/internal/broker"
	"channelhub/pkg/types"
)

// ReplaceContents swaps the whole content list of a channel owned by
// instanceID. Payloads are copied; data is materialized on first read.
func (h *Hub) ReplaceContents(instanceID, channelID string, contents []types.ContentPayload) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch, err := h.getChannel(instanceID, channelID)
	if err != nil {
		return err
	}
	defs := make([]broker.ContentDefinition, 0, len(contents))
	for _, p := range contents {
		defs = append(defs, broker.ContentDefinition{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			Generator:   payloadGenerator(p),
		})
	}
	ch.ReplaceContents(defs)
	h.log.Debug().Str("instance", instanceID).Str("channel", channelID).Int("contents", len(defs)).Msg("contents replaced")
	return nil
}

// PublishContent republishes a single existing content of a channel.
func (h *Hub) PublishContent(instanceID, channelID, contentID string, payload types.ContentPayload) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch, err := h.getChannel(instanceID, channelID)
	if err != nil {
		return err
	}
	ct := ch.Content(contentID)
	if ct == nil {
		return contentNotFoundError{channelID: channelID, id: contentID}
	}
	ct.Publish(payloadGenerator(payload))
	h.log.Debug().Str("instance", instanceID).Str("channel", channelID).Str("content", contentID).Msg("content published")
	return nil
}

// Helper: channel lookup; caller holds h.mu.
func (h *Hub) getChannel(instanceID, channelID string) (*broker.Channel, error) {
	if h.closed {
		return nil, errClosed
	}
	in, err := h.getInstance(instanceID)
	if err != nil {
		return nil, err
	}
	ch := in.manager.Channel(channelID)
	if ch == nil {
		return nil, channelNotFoundError{instanceID: instanceID, id: channelID}
	}
	return ch, nil
}

// payloadGenerator snapshots p so later caller mutations cannot leak into
// published data.
func payloadGenerator(p types.ContentPayload) broker.Generator {
	points := make([]broker.DataPoint, len(p.Points))
	for i, pt := range p.Points {
		points[i] = broker.DataPoint{Key: append([]float64(nil), pt.Key...), Value: pt.Value}
	}
	meta := make(broker.Metadata, len(p.Metadata))
	for k, v := range p.Metadata {
		meta[k] = v
	}
	return func() (broker.GeneratedData, error) {
		return broker.GeneratedData{Data: points, Metadata: meta}, nil
	}
}

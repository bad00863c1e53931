package hub

import (
	"time"

	"channelhub/internal/broker"
	"channelhub/pkg/types"
)

// Status builds a summary response for /status.
func (h *Hub) Status() types.StatusResponse {
	h.mu.Lock()
	defer h.mu.Unlock()
	resp := types.StatusResponse{
		Instances:      len(h.instances),
		EventsTotal:    h.eventsTotal.Load(),
		UptimeSeconds:  int64(time.Since(h.startTime).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
	}
	for _, in := range h.instances {
		resp.Channels += len(in.manager.Channels())
		for _, r := range in.manager.Receivers() {
			resp.Receivers++
			if r.HasActiveSubscription() {
				resp.ActiveSubscriptions++
			}
		}
	}
	return resp
}

// InstanceDetail describes one instance's channels and receivers.
func (h *Hub) InstanceDetail(id string) (types.InstanceDetail, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	in, err := h.getInstance(id)
	if err != nil {
		return types.InstanceDetail{}, err
	}
	out := types.InstanceDetail{InstanceSummary: in.summary()}
	for _, ch := range in.manager.Channels() {
		out.ChannelList = append(out.ChannelList, types.ChannelStatus{
			ID:          ch.ID(),
			DisplayName: ch.DisplayName(),
			KeyKind:     string(ch.KeyKind()),
			ContentIDs:  ch.ContentIDs(),
			Subscribers: ch.SubscriberCount(broker.ChannelAboutToBeRemoved),
		})
	}
	for _, r := range in.manager.Receivers() {
		st := types.ReceiverStatus{
			ID:                   r.ID(),
			DisplayName:          r.DisplayName(),
			SupportsMultiContent: r.SupportsMultiContent(),
			Subscribed:           r.HasActiveSubscription(),
			All:                  r.SubscribedToAll(),
			ContentIDs:           r.ContentIDs(),
		}
		for _, k := range r.SupportedKeyKinds() {
			st.SupportedKeyKinds = append(st.SupportedKeyKinds, string(k))
		}
		if ch := r.Channel(); ch != nil {
			st.ChannelID = ch.ID()
			st.PublisherID = ch.Manager().OwnerID()
		}
		out.ReceiverList = append(out.ReceiverList, st)
	}
	return out, nil
}

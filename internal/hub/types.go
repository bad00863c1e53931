package hub

import (
	"time"

	"channelhub/internal/broker"
	"channelhub/pkg/types"
)

// Hub-level lifecycle event names, published next to broker events.
const (
	EventInstanceCreated = "instance_created"
	EventInstanceRemoved = "instance_removed"
)

// instance is one live module instance.
type instance struct {
	id      string
	kind    string
	name    string
	created time.Time
	manager *broker.Manager
	// trackers by receiver id; only the first receiver of a duplicated id is tracked.
	trackers map[string]*broker.Tracker
}

func (in *instance) summary() types.InstanceSummary {
	return types.InstanceSummary{
		ID:          in.id,
		Kind:        in.kind,
		Name:        in.name,
		Channels:    len(in.manager.Channels()),
		Receivers:   len(in.manager.Receivers()),
		CreatedUnix: in.created.Unix(),
	}
}

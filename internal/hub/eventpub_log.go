package hub

import (
	"github.com/rs/zerolog"

	"channelhub/internal/broker"
)

// LogPublisher writes every event as a debug line.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(l zerolog.Logger) LogPublisher {
	return LogPublisher{log: l.With().Str("component", "broker").Logger()}
}

func (p LogPublisher) Publish(e broker.Event) {
	ev := p.log.Debug()
	if !ev.Enabled() {
		return
	}
	ev.Str("event", e.Name).Str("owner", e.OwnerID).Fields(e.Fields).Msg("broker event")
}

// MultiPublisher forwards each event to every publisher, in order.
type MultiPublisher []broker.EventPublisher

func (m MultiPublisher) Publish(e broker.Event) {
	for _, p := range m {
		if p != nil {
			p.Publish(e)
		}
	}
}

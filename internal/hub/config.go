package hub

import (
	"github.com/rs/zerolog"

	"channelhub/internal/broker"
	"channelhub/pkg/types"
)

// HubConfig encapsulates all tunables for Hub construction.
type HubConfig struct {
	// Definitions lists the module kinds instances can be created from.
	Definitions []types.ModuleDefinition
	// StrictIDs makes every instance's broker reject duplicate channel and
	// receiver ids instead of resolving them by first match.
	StrictIDs bool
	// Publisher receives broker and hub lifecycle events; nil drops them.
	Publisher broker.EventPublisher
	// Logger for instance lifecycle; nil disables logging.
	Logger *zerolog.Logger
}

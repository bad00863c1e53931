package types

// ModuleDefinition declares what a module kind publishes and consumes. One
// module instance is created per (kind, name) at runtime.
type ModuleDefinition struct {
	// Unique module kind.
	// example: distribution-plot
	Kind string `json:"kind" yaml:"kind" toml:"kind" validate:"required" example:"distribution-plot"`
	// Human-friendly name.
	// example: Parameter distribution plot
	DisplayName string `json:"display_name,omitempty" yaml:"display_name" toml:"display_name" example:"Parameter distribution plot"`
	// Channels the module publishes.
	Channels []ChannelDefinition `json:"channels,omitempty" yaml:"channels" toml:"channels" validate:"dive"`
	// Receivers the module consumes through.
	Receivers []ReceiverDefinition `json:"receivers,omitempty" yaml:"receivers" toml:"receivers" validate:"dive"`
}

// ChannelDefinition declares one published channel.
type ChannelDefinition struct {
	// example: realization-values
	ID string `json:"id" yaml:"id" toml:"id" validate:"required" example:"realization-values"`
	// example: Values per realization
	DisplayName string `json:"display_name,omitempty" yaml:"display_name" toml:"display_name" example:"Values per realization"`
	// One of timestamp_ms, realization, grid_index, grid_ijk.
	// example: realization
	KeyKind string `json:"key_kind" yaml:"key_kind" toml:"key_kind" validate:"required,keykind" example:"realization"`
}

// ReceiverDefinition declares one consuming receiver.
type ReceiverDefinition struct {
	// example: channel-x
	ID string `json:"id" yaml:"id" toml:"id" validate:"required" example:"channel-x"`
	// example: X axis
	DisplayName string `json:"display_name,omitempty" yaml:"display_name" toml:"display_name" example:"X axis"`
	// Key kinds the receiver can interpret.
	// example: ["realization"]
	SupportedKeyKinds []string `json:"supported_key_kinds" yaml:"supported_key_kinds" toml:"supported_key_kinds" validate:"required,min=1,dive,keykind"`
	// Whether the receiver can follow several contents at once.
	// example: true
	SupportsMultiContent bool `json:"supports_multi_content" yaml:"supports_multi_content" toml:"supports_multi_content" example:"true"`
}

package types

// CreateInstanceRequest is the body of POST /instances.
type CreateInstanceRequest struct {
	// Module kind to instantiate.
	// example: distribution-plot
	Kind string `json:"kind" validate:"required,notblank" example:"distribution-plot"`
	// Optional instance label.
	// example: Left plot
	Name string `json:"name,omitempty" example:"Left plot"`
}

// InstanceSummary is one entry of GET /instances.
type InstanceSummary struct {
	// example: 6f1c1a3e-2f4b-4c55-9d8e-5a2b7c1d0e9f
	ID string `json:"id" example:"6f1c1a3e-2f4b-4c55-9d8e-5a2b7c1d0e9f"`
	// example: distribution-plot
	Kind string `json:"kind" example:"distribution-plot"`
	// example: Left plot
	Name string `json:"name,omitempty" example:"Left plot"`
	// example: 2
	Channels int `json:"channels" example:"2"`
	// example: 1
	Receivers int `json:"receivers" example:"1"`
	// Creation time (unix seconds).
	// example: 1700000000
	CreatedUnix int64 `json:"created_unix" example:"1700000000"`
}

// InstancesResponse wraps GET /instances.
type InstancesResponse struct {
	Instances []InstanceSummary `json:"instances"`
}

// DefinitionsResponse wraps GET /definitions.
type DefinitionsResponse struct {
	Definitions []ModuleDefinition `json:"definitions"`
}

// ChannelStatus describes a published channel.
type ChannelStatus struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
	KeyKind     string `json:"key_kind"`
	// Ids of the current contents in declaration order.
	ContentIDs []string `json:"content_ids"`
	// Number of receivers currently attached.
	// example: 1
	Subscribers int `json:"subscribers" example:"1"`
}

// ReceiverStatus describes a receiver and its subscription.
type ReceiverStatus struct {
	ID                   string   `json:"id"`
	DisplayName          string   `json:"display_name,omitempty"`
	SupportedKeyKinds    []string `json:"supported_key_kinds"`
	SupportsMultiContent bool     `json:"supports_multi_content"`
	Subscribed           bool     `json:"subscribed"`
	PublisherID          string   `json:"publisher_id,omitempty"`
	ChannelID            string   `json:"channel_id,omitempty"`
	All                  bool     `json:"all,omitempty"`
	ContentIDs           []string `json:"content_ids,omitempty"`
}

// InstanceDetail is returned by GET /instances/{id}.
type InstanceDetail struct {
	InstanceSummary
	ChannelList  []ChannelStatus  `json:"channel_list"`
	ReceiverList []ReceiverStatus `json:"receiver_list"`
}

// Point is one (key, value) pair on the wire.
type Point struct {
	// example: [3]
	Key []float64 `json:"key" example:"3"`
	// example: 0.25
	Value float64 `json:"value" example:"0.25"`
}

// ContentPayload carries one content's data and metadata.
type ContentPayload struct {
	// example: PORO
	ID string `json:"id" validate:"required,notblank" example:"PORO"`
	// example: Porosity
	DisplayName string         `json:"display_name,omitempty" example:"Porosity"`
	Points      []Point        `json:"points"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// ReplaceContentsRequest is the body of PUT .../channels/{channelID}/contents.
type ReplaceContentsRequest struct {
	Contents []ContentPayload `json:"contents" validate:"dive"`
}

// SubscribeRequest is the body of POST .../receivers/{receiverID}/subscription.
type SubscribeRequest struct {
	// Instance that publishes the channel.
	PublisherID string `json:"publisher_id"`
	// example: realization-values
	ChannelID string `json:"channel_id" validate:"required,notblank" example:"realization-values"`
	// Follow every content (or the first, for single-content receivers).
	// example: true
	All bool `json:"all,omitempty" example:"true"`
	// Explicit selection; ignored when All is set.
	ContentIDs []string `json:"content_ids,omitempty"`
}

// ReceiverSnapshot is returned by GET .../receivers/{receiverID}.
type ReceiverSnapshot struct {
	ReceiverID  string           `json:"receiver_id"`
	Revision    uint64           `json:"revision"`
	Subscribed  bool             `json:"subscribed"`
	PublisherID string           `json:"publisher_id,omitempty"`
	ChannelID   string           `json:"channel_id,omitempty"`
	ChannelName string           `json:"channel_name,omitempty"`
	KeyKind     string           `json:"key_kind,omitempty"`
	ContentIDs  []string         `json:"content_ids,omitempty"`
	Contents    []ContentPayload `json:"contents,omitempty"`
	// True while subscribed but no content is selected yet.
	Pending bool `json:"pending"`
	// Read failure, e.g. a key kind the receiver does not support.
	Error string `json:"error,omitempty"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: instance not found: 1234
	Error string `json:"error" example:"instance not found: 1234"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// example: 3
	Instances int `json:"instances" example:"3"`
	// example: 4
	Channels int `json:"channels" example:"4"`
	// example: 5
	Receivers int `json:"receivers" example:"5"`
	// Receivers currently attached to a channel.
	// example: 2
	ActiveSubscriptions int `json:"active_subscriptions" example:"2"`
	// Total broker lifecycle events observed.
	// example: 42
	EventsTotal uint64 `json:"events_total" example:"42"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}

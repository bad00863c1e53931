// Package hub hosts module instances, each owning one broker.Manager, and is
// the serialization point between concurrent callers (the HTTP layer) and the
// single-threaded broker. It is structured into small files by concern:
//
//   - hub.go: core Hub type, constructor, simple getters.
//   - config.go: HubConfig and package defaults.
//   - types.go: internal state types (instance).
//   - errors.go: error types and helpers (IsInstanceNotFound, ...), each with an HTTP status.
//   - instance.go: CreateInstance/RemoveInstance/Close lifecycle.
//   - publish.go: ReplaceContents/PublishContent from wire payloads.
//   - subscribe.go: Subscribe/Unsubscribe/ReceiverSnapshot.
//   - status_report.go: Status and instance detail reporting.
//   - eventpub_*.go: broker.EventPublisher implementations (metrics, log, fan-out).
//
// External packages should use public methods only; every one of them takes
// the hub lock for its whole duration, including broker notifications.
package hub

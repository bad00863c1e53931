// Package broker implements the per-module-instance data-channel broker: a
// publisher exposes named, lazily computed data series under a Channel, and
// consumers attach a Receiver to a Channel (and a subset of its contents) to
// be told whenever that data changes. It is structured into small files by
// concern:
//
//   - keykind.go: KeyKind enum and DataPoint shape.
//   - observers.go: per-entity topic table used by every entity below.
//   - content.go: Content, a lazily evaluated (data, metadata) pair.
//   - channel.go: Channel, an ordered, replace-only list of Contents.
//   - receiver.go: Receiver, the single-channel subscriber and its selection.
//   - manager.go: Manager, the owner-scoped registry of Channels and Receivers.
//   - tracker.go: Tracker, a lazily recomputed read-only receiver snapshot.
//   - events.go: lifecycle Event hook (no-op by default).
//   - errors.go: error types and helpers (IsUnsupportedKeyKind, IsGeneratorError).
//
// Concurrency: nothing in this package is safe for concurrent use. All
// mutation and notification happen synchronously inside the call that
// triggered them, and callbacks may re-enter the broker (subscribe,
// unsubscribe, republish) while a notification is being delivered. Callers
// that share a Manager between goroutines must serialize access themselves;
// see internal/hub.
//
// The package never logs. Failures are returned to the caller, and lifecycle
// transitions can be observed through an EventPublisher.
package broker

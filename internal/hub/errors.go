package hub

import (
	"errors"
	"net/http"

	"channelhub/internal/broker"
)

// instanceNotFoundError signals an unknown module instance id (404).
type instanceNotFoundError struct{ id string }

func (e instanceNotFoundError) Error() string   { return "instance not found: " + e.id }
func (e instanceNotFoundError) StatusCode() int { return http.StatusNotFound }

// IsInstanceNotFound reports whether err indicates a missing instance id.
func IsInstanceNotFound(err error) bool {
	var target instanceNotFoundError
	return errors.As(err, &target)
}

type channelNotFoundError struct{ instanceID, id string }

func (e channelNotFoundError) Error() string {
	return "channel not found: " + e.id + " (instance " + e.instanceID + ")"
}
func (e channelNotFoundError) StatusCode() int { return http.StatusNotFound }

// IsChannelNotFound reports whether err indicates a missing channel id.
func IsChannelNotFound(err error) bool {
	var target channelNotFoundError
	return errors.As(err, &target)
}

type contentNotFoundError struct{ channelID, id string }

func (e contentNotFoundError) Error() string {
	return "content not found: " + e.id + " (channel " + e.channelID + ")"
}
func (e contentNotFoundError) StatusCode() int { return http.StatusNotFound }

// IsContentNotFound reports whether err indicates a missing content id.
func IsContentNotFound(err error) bool {
	var target contentNotFoundError
	return errors.As(err, &target)
}

type receiverNotFoundError struct{ instanceID, id string }

func (e receiverNotFoundError) Error() string {
	return "receiver not found: " + e.id + " (instance " + e.instanceID + ")"
}
func (e receiverNotFoundError) StatusCode() int { return http.StatusNotFound }

// IsReceiverNotFound reports whether err indicates a missing receiver id.
func IsReceiverNotFound(err error) bool {
	var target receiverNotFoundError
	return errors.As(err, &target)
}

// moduleKindNotFoundError is returned when no definition matches a kind (400).
type moduleKindNotFoundError struct{ kind string }

func (e moduleKindNotFoundError) Error() string   { return "module kind not found: " + e.kind }
func (e moduleKindNotFoundError) StatusCode() int { return http.StatusBadRequest }

// IsModuleKindNotFound reports whether err indicates an unknown module kind.
func IsModuleKindNotFound(err error) bool {
	var target moduleKindNotFoundError
	return errors.As(err, &target)
}

// instanceExistsError is returned when an explicit instance id is taken (409).
type instanceExistsError struct{ id string }

func (e instanceExistsError) Error() string   { return "instance already exists: " + e.id }
func (e instanceExistsError) StatusCode() int { return http.StatusConflict }

// IsInstanceExists reports whether err indicates an instance id collision.
func IsInstanceExists(err error) bool {
	var target instanceExistsError
	return errors.As(err, &target)
}

// definitionError wraps a module definition that cannot be turned into
// broker registrations, e.g. an unknown key kind or a strict-mode duplicate.
type definitionError struct {
	kind string
	err  error
}

func (e definitionError) Error() string   { return "module " + e.kind + ": " + e.err.Error() }
func (e definitionError) Unwrap() error   { return e.err }
func (e definitionError) StatusCode() int { return http.StatusUnprocessableEntity }

// readError wraps a failure to read a receiver's selected contents.
type readError struct{ err error }

func (e readError) Error() string { return e.err.Error() }
func (e readError) Unwrap() error { return e.err }

// StatusCode maps contract violations to 422 and generator failures to 500.
func (e readError) StatusCode() int {
	if broker.IsUnsupportedKeyKind(e.err) || broker.IsKeyShape(e.err) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// errClosed is returned by mutating calls after Close.
var errClosed = closedError{}

type closedError struct{}

func (closedError) Error() string   { return "hub is closed" }
func (closedError) StatusCode() int { return http.StatusServiceUnavailable }

// IsClosed reports whether err indicates a closed hub.
func IsClosed(err error) bool {
	var target closedError
	return errors.As(err, &target)
}

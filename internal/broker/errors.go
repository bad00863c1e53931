package broker

import (
	"errors"
	"fmt"
	"strings"
)

// unsupportedKeyKindError signals a receiver reading a channel whose key kind
// it did not declare. Downstream numeric code cannot interpret such keys.
type unsupportedKeyKindError struct {
	receiverID string
	channelID  string
	kind       KeyKind
	supported  []KeyKind
}

func (e unsupportedKeyKindError) Error() string {
	names := make([]string, len(e.supported))
	for i, k := range e.supported {
		names[i] = string(k)
	}
	return fmt.Sprintf("receiver %s: channel %s has key kind %s, supported: [%s]",
		e.receiverID, e.channelID, e.kind, strings.Join(names, ", "))
}

// IsUnsupportedKeyKind reports whether err is a key kind contract violation.
func IsUnsupportedKeyKind(err error) bool {
	var target unsupportedKeyKindError
	return errors.As(err, &target)
}

// keyShapeError signals a data point whose key does not match its kind's arity.
type keyShapeError struct {
	kind  KeyKind
	index int
	got   int
	want  int
}

func (e keyShapeError) Error() string {
	return fmt.Sprintf("data point %d: key kind %s expects %d key components, got %d", e.index, e.kind, e.want, e.got)
}

// IsKeyShape reports whether err indicates a malformed data point key.
func IsKeyShape(err error) bool {
	var target keyShapeError
	return errors.As(err, &target)
}

type unknownKeyKindError struct{ value string }

func (e unknownKeyKindError) Error() string { return "unknown key kind: " + e.value }

// IsUnknownKeyKind reports whether err came from parsing an unknown key kind.
func IsUnknownKeyKind(err error) bool {
	var target unknownKeyKindError
	return errors.As(err, &target)
}

// duplicateIDError is returned by strict managers on id collisions.
type duplicateIDError struct {
	entity string
	id     string
}

func (e duplicateIDError) Error() string { return "duplicate " + e.entity + " id: " + e.id }

// IsDuplicateID reports whether err indicates a rejected duplicate registration.
func IsDuplicateID(err error) bool {
	var target duplicateIDError
	return errors.As(err, &target)
}

// GeneratorError wraps a failure returned by a content's data generator.
type GeneratorError struct {
	ContentID string
	Err       error
}

func (e *GeneratorError) Error() string {
	return "content " + e.ContentID + ": generator failed: " + e.Err.Error()
}

func (e *GeneratorError) Unwrap() error { return e.Err }

// IsGeneratorError reports whether err originated in a data generator.
func IsGeneratorError(err error) bool {
	var target *GeneratorError
	return errors.As(err, &target)
}

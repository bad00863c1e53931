package broker

import "strings"

// KeyKind describes the semantic type of the key shared by every data point
// of a Channel's contents.
type KeyKind string

const (
	KeyKindTimestampMs KeyKind = "timestamp_ms"
	KeyKindRealization KeyKind = "realization"
	KeyKindGridIndex   KeyKind = "grid_index"
	KeyKindGridIJK     KeyKind = "grid_ijk"
)

// KeyKinds lists every known key kind in declaration order.
func KeyKinds() []KeyKind {
	return []KeyKind{KeyKindTimestampMs, KeyKindRealization, KeyKindGridIndex, KeyKindGridIJK}
}

// Arity returns the number of scalar components a key of this kind carries,
// or 0 for an unknown kind.
func (k KeyKind) Arity() int {
	switch k {
	case KeyKindTimestampMs, KeyKindRealization, KeyKindGridIndex:
		return 1
	case KeyKindGridIJK:
		return 3
	default:
		return 0
	}
}

// Valid reports whether k is one of the known key kinds.
func (k KeyKind) Valid() bool { return k.Arity() > 0 }

func (k KeyKind) String() string { return string(k) }

// ParseKeyKind converts a textual key kind. Matching is case-insensitive.
func ParseKeyKind(s string) (KeyKind, error) {
	k := KeyKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", unknownKeyKindError{value: s}
	}
	return k, nil
}

// DataPoint is one (key, value) pair of a content's data series. Key holds
// exactly KeyKind.Arity() components: a single number for timestamps,
// realizations and grid indices, an (i, j, k) triplet for grid cells.
type DataPoint struct {
	Key   []float64
	Value float64
}

// checkKeyShape verifies that every point's key matches the kind's arity.
func checkKeyShape(kind KeyKind, data []DataPoint) error {
	want := kind.Arity()
	for i, p := range data {
		if len(p.Key) != want {
			return keyShapeError{kind: kind, index: i, got: len(p.Key), want: want}
		}
	}
	return nil
}

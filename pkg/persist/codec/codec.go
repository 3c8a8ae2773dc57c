// Package codec provides the serialization layer for battle snapshots,
// setups, journals, and logs. MessagePack is the default; JSON is kept for
// debugging and external tooling.
package codec

import (
	"errors"
)

// Common errors.
var (
	ErrNilValue    = errors.New("cannot encode nil value")
	ErrInvalidData = errors.New("invalid data format")
)

// Codec handles serialization and deserialization of values.
type Codec interface {
	// Encode serializes a value to bytes.
	Encode(v any) ([]byte, error)

	// Decode deserializes bytes into a value.
	// The target must be a pointer.
	Decode(data []byte, target any) error

	// Name returns the codec name (e.g., "msgpack", "json").
	Name() string
}

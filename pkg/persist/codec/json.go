package codec

import (
	"encoding/json"
)

// JSON implements Codec using JSON serialization. Slower and larger than
// MessagePack, but human-readable; used by debugging tools.
type JSON struct{}

// NewJSON creates a new JSON codec.
func NewJSON() *JSON {
	return &JSON{}
}

// Encode serializes a value to JSON bytes.
func (c *JSON) Encode(v any) ([]byte, error) {
	if v == nil {
		return nil, ErrNilValue
	}
	return json.Marshal(v)
}

// Decode deserializes JSON bytes into a value.
func (c *JSON) Decode(data []byte, target any) error {
	if len(data) == 0 {
		return ErrInvalidData
	}
	return json.Unmarshal(data, target)
}

// Name returns "json".
func (c *JSON) Name() string {
	return "json"
}

package codec

import (
	"github.com/vmihailenco/msgpack/v5"
)

// MsgPack implements Codec using MessagePack serialization, a compact
// binary format well suited to battle records.
type MsgPack struct{}

// NewMsgPack creates a new MessagePack codec.
func NewMsgPack() *MsgPack {
	return &MsgPack{}
}

// Encode serializes a value to MessagePack bytes.
func (c *MsgPack) Encode(v any) ([]byte, error) {
	if v == nil {
		return nil, ErrNilValue
	}
	return msgpack.Marshal(v)
}

// Decode deserializes MessagePack bytes into a value.
func (c *MsgPack) Decode(data []byte, target any) error {
	if len(data) == 0 {
		return ErrInvalidData
	}
	return msgpack.Unmarshal(data, target)
}

// Name returns "msgpack".
func (c *MsgPack) Name() string {
	return "msgpack"
}

// Default is the codec battle records are written with.
var Default Codec = NewMsgPack()

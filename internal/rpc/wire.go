package rpc

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Message is implemented by every request/response type. Encoding is plain
// protobuf wire format written by hand with protowire; there is no
// generated code.
type Message interface {
	MarshalWire() ([]byte, error)
	UnmarshalWire(data []byte) error
}

// Codec lets grpc carry the hand-rolled messages. Named "proto" so
// standard gRPC and gRPC-Web clients interoperate without a content-subtype
// override.
type Codec struct{}

func (Codec) Name() string { return "proto" }

func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("codec: %T is not a wire message", v)
	}
	return m.MarshalWire()
}

func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("codec: %T is not a wire message", v)
	}
	return m.UnmarshalWire(data)
}

// field is one decoded top-level field: either a length-delimited payload
// or a varint.
type field struct {
	Num   protowire.Number
	bytes []byte
	num   uint64
}

func (f field) String() string { return string(f.bytes) }
func (f field) Bytes() []byte  { return f.bytes }
func (f field) Int() int       { return int(f.num) }
func (f field) Int64() int64   { return int64(f.num) }

// walkFields consumes every top-level field of data, handing bytes and
// varint fields to fn and skipping anything else.
func walkFields(data []byte, fn func(f field) error) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		switch typ {
		case protowire.BytesType:
			v, m := protowire.ConsumeBytes(data)
			if m < 0 {
				return protowire.ParseError(m)
			}
			if err := fn(field{Num: num, bytes: v}); err != nil {
				return err
			}
			data = data[m:]
		case protowire.VarintType:
			v, m := protowire.ConsumeVarint(data)
			if m < 0 {
				return protowire.ParseError(m)
			}
			if err := fn(field{Num: num, num: v}); err != nil {
				return err
			}
			data = data[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, data)
			if m < 0 {
				return protowire.ParseError(m)
			}
			data = data[m:]
		}
	}
	return nil
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendInt(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendMessage(b []byte, num protowire.Number, m Message) ([]byte, error) {
	inner, err := m.MarshalWire()
	if err != nil {
		return nil, err
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner), nil
}

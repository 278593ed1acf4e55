package server

import (
	"encoding/json"
)

// jsonCodec serves plain Go structs over connect. Registering it as "json"
// takes the place of connect's protobuf JSON codec.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

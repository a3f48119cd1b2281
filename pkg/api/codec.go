package api

import (
	"encoding/json"
	"fmt"
)

// JSONCodec marshals the plain Go messages of this package as JSON.
// It takes the "json" codec name, so Connect clients sending
// application/json and application/connect+json are served by it.
type JSONCodec struct{}

// Name implements connect.Codec.
func (JSONCodec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

// Unmarshal implements connect.Codec. An empty body leaves msg at its zero value.
func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}

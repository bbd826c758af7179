package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MetadataAggregateID scopes versions inside a single stream table
	MetadataAggregateID = "_aggregate_id"

	// MetadataAggregateType ...
	MetadataAggregateType = "_aggregate_type"

	// MetadataAggregateVersion ...
	MetadataAggregateVersion = "_aggregate_version"
)

// Metadata maps string keys to scalar values
type Metadata map[string]interface{}

// NullMetadata ...
type NullMetadata struct {
	Valid    bool
	Metadata Metadata
}

// IsReservedMetadataKey reports keys owned by the event store
func IsReservedMetadataKey(key string) bool {
	return strings.HasPrefix(key, "_")
}

// With returns a copy with the key set
func (m Metadata) With(key string, value interface{}) Metadata {
	result := make(Metadata, len(m)+1)
	for k, v := range m {
		result[k] = v
	}
	result[key] = value
	return result
}

// String returns the value of key formatted as string
func (m Metadata) String(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", false
	}
	switch value := v.(type) {
	case string:
		return value, value != ""
	case json.Number:
		return value.String(), true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	default:
		return fmt.Sprint(value), true
	}
}

// Marshal encodes metadata as a JSON object, nil metadata becomes {}
func (m Metadata) Marshal() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	for k, v := range m {
		if !isScalar(v) {
			return nil, fmt.Errorf("metadata %q: value of type %T is not a scalar", k, v)
		}
	}
	return json.Marshal(map[string]interface{}(m))
}

// UnmarshalMetadata decodes a JSON object into metadata
func UnmarshalMetadata(data []byte) (Metadata, error) {
	result := Metadata{}
	if len(data) == 0 {
		return result, nil
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}
	return result, nil
}

func isScalar(v interface{}) bool {
	switch v.(type) {
	case nil, string, bool, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

package extractor

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"k8s.io/utils/ptr"
)

// InputSchema is the object schema describing a tool's arguments. Property
// order follows the source document.
type InputSchema struct {
	Properties *orderedmap.OrderedMap[string, *jsonschema.Schema] `json:"properties,omitempty"`
	Required   []string                                           `json:"required,omitempty"`
}

// NewInputSchema returns an input schema without properties.
func NewInputSchema() *InputSchema {
	return &InputSchema{Properties: orderedmap.New[string, *jsonschema.Schema]()}
}

// ParseInputSchema decodes a JSON object schema.
func ParseInputSchema(data []byte) (*InputSchema, error) {
	var schema InputSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse input schema: %w", err)
	}
	return &schema, nil
}

// SchemaFrom converts any JSON-serializable schema value (a map, a
// jsonschema.Schema, a host-specific struct) into an InputSchema.
func SchemaFrom(v any) (*InputSchema, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input schema: %w", err)
	}
	return ParseInputSchema(data)
}

// Len returns the number of declared properties.
func (s *InputSchema) Len() int {
	if s == nil || s.Properties == nil {
		return 0
	}
	return s.Properties.Len()
}

// Parameters normalizes the schema into parameter records. A parameter is
// required iff its name appears in Required.
func (s *InputSchema) Parameters() *Parameters {
	params := NewParameters()
	if s.Len() == 0 {
		return params
	}

	required := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		required[name] = true
	}

	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		record := ParameterRecord{
			Type:     ParamTypeAny,
			Required: required[pair.Key],
		}
		if prop := pair.Value; prop != nil {
			record.Type = schemaType(prop)
			record.Description = prop.Description
			record.Default = stringifyDefault(prop.Default)
		}
		params.Set(pair.Key, record)
	}
	return params
}

func schemaType(prop *jsonschema.Schema) ParamType {
	t := prop.Type
	if t == "" {
		for _, candidate := range prop.Types {
			if candidate != "null" {
				t = candidate
				break
			}
		}
	}
	if t == "" {
		return ParamTypeAny
	}
	if pt := ParamType(t); pt.Valid() {
		return pt
	}
	return ParamTypeAny
}

// stringifyDefault renders a JSON default for display. Strings are unquoted,
// other values keep their JSON text, null and missing stay absent.
func stringifyDefault(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ptr.To(s)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return ptr.To(string(raw))
	}
	return ptr.To(buf.String())
}

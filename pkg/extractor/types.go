package extractor

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultDescription is used for tools that carry no description.
const DefaultDescription = "No description available"

// ParamType is the normalized schema type of a tool parameter
type ParamType string

const (
	ParamTypeString  ParamType = "string"
	ParamTypeInteger ParamType = "integer"
	ParamTypeNumber  ParamType = "number"
	ParamTypeBoolean ParamType = "boolean"
	ParamTypeArray   ParamType = "array"
	ParamTypeObject  ParamType = "object"
	ParamTypeAny     ParamType = "any"
)

// Valid reports whether t is one of the normalized parameter types.
func (t ParamType) Valid() bool {
	switch t {
	case ParamTypeString, ParamTypeInteger, ParamTypeNumber, ParamTypeBoolean,
		ParamTypeArray, ParamTypeObject, ParamTypeAny:
		return true
	}
	return false
}

// ToolRecord is the documentation record of a single tool.
type ToolRecord struct {
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Parameters  *Parameters `json:"parameters"`
	Tags        []string    `json:"tags"`
}

// ParameterRecord describes one tool parameter.
type ParameterRecord struct {
	Type        ParamType `json:"type"`
	Description string    `json:"description"`
	// Default is the stringified default value, nil when the source declares none.
	Default  *string `json:"default"`
	Required bool    `json:"required"`
}

// Parameters maps parameter names to their records, keeping declaration order.
type Parameters = orderedmap.OrderedMap[string, ParameterRecord]

// NewParameters returns an empty parameter mapping.
func NewParameters() *Parameters {
	return orderedmap.New[string, ParameterRecord]()
}

// ParameterNames returns the parameter names of r in declaration order.
func (r ToolRecord) ParameterNames() []string {
	if r.Parameters == nil {
		return nil
	}
	names := make([]string, 0, r.Parameters.Len())
	for pair := r.Parameters.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Parameter returns the record of the named parameter.
func (r ToolRecord) Parameter(name string) (ParameterRecord, bool) {
	if r.Parameters == nil {
		return ParameterRecord{}, false
	}
	return r.Parameters.Get(name)
}

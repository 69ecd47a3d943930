package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"k8s.io/utils/ptr"
)

var contextType = reflect.TypeFor[context.Context]()

// keyValueTag matches jsonschema tags written as key=value pairs
// (`jsonschema:"description=...,default=..."`) rather than plain text.
var keyValueTag = regexp.MustCompile(`^\w+=`)

// SchemaFromCallable synthesizes an input schema from a function signature or
// from an argument struct.
//
// For a function, the last input whose type is a struct (or pointer to one)
// describes the arguments, matching typed handlers of the form
// func(ctx, request, args T). Without such an input every non-context input
// becomes a positional parameter named argN. A parameter is required iff it
// declares no default.
func SchemaFromCallable(fn any) (*InputSchema, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() {
		return nil, fmt.Errorf("callable is nil")
	}

	t := v.Type()
	if t.Kind() == reflect.Func {
		return schemaFromFunc(t), nil
	}
	if st := indirect(t); st.Kind() == reflect.Struct {
		return schemaFromStruct(st), nil
	}
	return nil, fmt.Errorf("unsupported callable type %s", t)
}

func schemaFromFunc(t reflect.Type) *InputSchema {
	for i := t.NumIn() - 1; i >= 0; i-- {
		in := t.In(i)
		if in.Implements(contextType) {
			continue
		}
		if st := indirect(in); st.Kind() == reflect.Struct {
			return schemaFromStruct(st)
		}
	}

	schema := NewInputSchema()
	n := 0
	for i := range t.NumIn() {
		in := t.In(i)
		if in.Implements(contextType) {
			continue
		}
		addProperty(schema, fmt.Sprintf("arg%d", n), in, "", nil)
		n++
	}
	return schema
}

func schemaFromStruct(t reflect.Type) *InputSchema {
	schema := NewInputSchema()
	addFields(schema, t, map[reflect.Type]bool{t: true})
	return schema
}

// addFields adds the fields of t to schema. visiting holds the struct types
// on the current embedding path; an embedded type already on it is skipped.
func addFields(schema *InputSchema, t reflect.Type, visiting map[reflect.Type]bool) {
	for i := range t.NumField() {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name, _, _ := strings.Cut(jsonTag, ",")

		// embedded structs are flattened like encoding/json does
		if field.Anonymous && name == "" {
			if st := indirect(field.Type); st.Kind() == reflect.Struct {
				if !visiting[st] {
					visiting[st] = true
					addFields(schema, st, visiting)
					delete(visiting, st)
				}
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		if name == "" {
			name = field.Name
		}

		description, def := parseSchemaTag(field.Tag.Get("jsonschema"))
		if description == "" {
			description = field.Tag.Get("description")
		}
		if d, ok := field.Tag.Lookup("default"); ok {
			def = ptr.To(d)
		}
		addProperty(schema, name, field.Type, description, def)
	}
}

func addProperty(schema *InputSchema, name string, t reflect.Type, description string, def *string) {
	prop := &jsonschema.Schema{
		Type:        string(typeOf(t)),
		Description: description,
	}
	if def != nil {
		// marshaling a string cannot fail
		prop.Default, _ = json.Marshal(*def)
	} else {
		schema.Required = append(schema.Required, name)
	}
	schema.Properties.Set(name, prop)
}

// parseSchemaTag reads a jsonschema struct tag. Key=value tags yield their
// description and default keys; any other tag is the description itself.
func parseSchemaTag(tag string) (string, *string) {
	if !keyValueTag.MatchString(tag) {
		return tag, nil
	}

	var description string
	var def *string
	for _, part := range strings.Split(tag, ",") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "description":
			description = value
		case "default":
			def = ptr.To(value)
		}
	}
	return description, def
}

// typeOf maps a Go type onto a normalized parameter type. Bool is matched
// before the numeric kinds.
func typeOf(t reflect.Type) ParamType {
	t = indirect(t)
	switch t.Kind() {
	case reflect.Bool:
		return ParamTypeBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return ParamTypeInteger
	case reflect.Float32, reflect.Float64:
		return ParamTypeNumber
	case reflect.String:
		return ParamTypeString
	case reflect.Slice, reflect.Array:
		return ParamTypeArray
	case reflect.Map, reflect.Struct:
		return ParamTypeObject
	case reflect.Interface:
		return ParamTypeAny
	default:
		return ParamTypeString
	}
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

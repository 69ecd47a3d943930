package tools

import (
	"encoding/json"
	"strconv"

	"github.com/containers/kubernetes-mcp-server/pkg/api"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"
	"k8s.io/utils/ptr"

	"github.com/rhobs/mcp-docs/pkg/registry"
)

// ParamDef defines a tool parameter
type ParamDef struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	Pattern     string

	// Default is the textual default value, parsed according to Type
	Default string
}

// ParamType represents the type of a parameter
type ParamType string

const (
	ParamTypeString  ParamType = "string"
	ParamTypeNumber  ParamType = "number"
	ParamTypeBoolean ParamType = "boolean"
)

// ToolDef defines a tool that can be converted to different formats (MCP, Toolset, etc.)
type ToolDef struct {
	Name        string
	Description string
	Title       string
	Tags        []string
	Params      []ParamDef
	ReadOnly    bool
	Destructive bool
	Idempotent  bool
	OpenWorld   bool

	// Func is the typed handler, documented from its signature when Params is empty
	Func any
}

// ToMCPTool converts a ToolDef to an mcp.Tool
func (d ToolDef) ToMCPTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(d.Description),
		mcp.WithReadOnlyHintAnnotation(d.ReadOnly),
		mcp.WithDestructiveHintAnnotation(d.Destructive),
		mcp.WithIdempotentHintAnnotation(d.Idempotent),
		mcp.WithOpenWorldHintAnnotation(d.OpenWorld),
	}
	if d.Title != "" {
		opts = append(opts, mcp.WithTitleAnnotation(d.Title))
	}

	for _, param := range d.Params {
		propOpts := []mcp.PropertyOption{mcp.Description(param.Description)}
		if param.Required {
			propOpts = append(propOpts, mcp.Required())
		}

		switch param.Type {
		case ParamTypeString:
			if param.Pattern != "" {
				propOpts = append(propOpts, mcp.Pattern(param.Pattern))
			}
			if param.Default != "" {
				propOpts = append(propOpts, mcp.DefaultString(param.Default))
			}
			opts = append(opts, mcp.WithString(param.Name, propOpts...))

		case ParamTypeNumber:
			if v, err := strconv.ParseFloat(param.Default, 64); err == nil {
				propOpts = append(propOpts, mcp.DefaultNumber(v))
			}
			opts = append(opts, mcp.WithNumber(param.Name, propOpts...))

		case ParamTypeBoolean:
			if v, err := strconv.ParseBool(param.Default); err == nil {
				propOpts = append(propOpts, mcp.DefaultBool(v))
			}
			opts = append(opts, mcp.WithBoolean(param.Name, propOpts...))
		}
	}

	tool := mcp.NewTool(d.Name, opts...)

	// Workaround for tools with no parameters
	// See https://github.com/containers/kubernetes-mcp-server/pull/341/files
	if len(d.Params) == 0 {
		tool.InputSchema = mcp.ToolInputSchema{}
		tool.RawInputSchema = []byte(`{"type":"object","properties":{}}`)
	}

	return tool
}

// ToServerTool converts a ToolDef to an api.ServerTool
func (d ToolDef) ToServerTool(handler func(api.ToolHandlerParams) (*api.ToolCallResult, error)) api.ServerTool {
	properties := make(map[string]*jsonschema.Schema)
	var required []string

	for _, param := range d.Params {
		schema := &jsonschema.Schema{
			Type:        string(param.Type),
			Description: param.Description,
			Pattern:     param.Pattern,
		}
		if param.Default != "" {
			schema.Default = param.defaultJSON()
		}

		properties[param.Name] = schema

		if param.Required {
			required = append(required, param.Name)
		}
	}

	inputSchema := &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
	}

	if len(required) > 0 {
		inputSchema.Required = required
	}

	return api.ServerTool{
		Tool: api.Tool{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: inputSchema,
			Annotations: api.ToolAnnotations{
				Title:           d.Title,
				ReadOnlyHint:    ptr.To(d.ReadOnly),
				DestructiveHint: ptr.To(d.Destructive),
				IdempotentHint:  ptr.To(d.Idempotent),
				OpenWorldHint:   ptr.To(d.OpenWorld),
			},
		},
		Handler: handler,
	}
}

// RegistryOptions returns the documentation hints that mcp.Tool cannot
// carry itself: the tags and the typed handler.
func (d ToolDef) RegistryOptions() []registry.Option {
	var opts []registry.Option
	if len(d.Tags) > 0 {
		opts = append(opts, registry.WithTags(d.Name, d.Tags...))
	}
	if d.Func != nil {
		opts = append(opts, registry.WithFunc(d.Name, d.Func))
	}
	return opts
}

func (p ParamDef) defaultJSON() json.RawMessage {
	if p.Type != ParamTypeString {
		if raw := json.RawMessage(p.Default); json.Valid(raw) {
			return raw
		}
	}
	raw, _ := json.Marshal(p.Default)
	return raw
}

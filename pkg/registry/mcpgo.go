package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rhobs/mcp-docs/pkg/extractor"
)

// ServerRegistry exposes the tools of an in-process mcp-go server.
type ServerRegistry struct {
	server *server.MCPServer
	hints  hints
}

var _ extractor.Registry = (*ServerRegistry)(nil)

// NewServerRegistry wraps s.
func NewServerRegistry(s *server.MCPServer, opts ...Option) *ServerRegistry {
	return &ServerRegistry{
		server: s,
		hints:  newHints(opts),
	}
}

// ListToolNames returns the registered tool names sorted alphabetically,
// since mcp-go keeps its tools in a map.
func (r *ServerRegistry) ListToolNames(_ context.Context) ([]string, error) {
	if r.server == nil {
		return nil, fmt.Errorf("no MCP server configured")
	}
	return slices.Sorted(maps.Keys(r.server.ListTools())), nil
}

// GetTool returns the descriptor of the named tool.
func (r *ServerRegistry) GetTool(_ context.Context, name string) (extractor.Descriptor, error) {
	if r.server == nil {
		return nil, fmt.Errorf("no MCP server configured")
	}
	st, ok := r.server.ListTools()[name]
	if !ok || st == nil {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return &serverTool{
		tool: st.Tool,
		tags: r.hints.tags[name],
		fn:   r.hints.funcs[name],
	}, nil
}

type serverTool struct {
	tool mcp.Tool
	tags []string
	fn   any
}

var (
	_ extractor.Describer               = (*serverTool)(nil)
	_ extractor.Tagger                  = (*serverTool)(nil)
	_ extractor.Annotated               = (*serverTool)(nil)
	_ extractor.InputSchemaProvider     = (*serverTool)(nil)
	_ extractor.ParameterSchemaProvider = (*serverTool)(nil)
	_ extractor.FnProvider              = (*serverTool)(nil)
)

func (t *serverTool) Description() string {
	return t.tool.Description
}

func (t *serverTool) Tags() []string {
	if len(t.tags) > 0 {
		return t.tags
	}

	data, err := json.Marshal(t.tool)
	if err != nil {
		return nil
	}
	var wire struct {
		Meta map[string]json.RawMessage `json:"_meta"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil
	}
	return metaTags(wire.Meta)
}

func (t *serverTool) Annotations() *extractor.Annotations {
	if t.tool.Annotations.Title == "" {
		return nil
	}
	return &extractor.Annotations{Title: t.tool.Annotations.Title}
}

// InputSchema returns the schema built with mcp.WithString and friends.
func (t *serverTool) InputSchema() (*extractor.InputSchema, error) {
	if len(t.tool.InputSchema.Properties) == 0 {
		return nil, nil
	}
	return extractor.SchemaFrom(t.tool.InputSchema)
}

// ParameterSchema returns the raw schema set through RawInputSchema. The
// empty object schema used for tools without parameters counts as none.
func (t *serverTool) ParameterSchema() (*extractor.InputSchema, error) {
	if len(t.tool.RawInputSchema) == 0 {
		return nil, nil
	}
	schema, err := extractor.ParseInputSchema(t.tool.RawInputSchema)
	if err != nil {
		return nil, err
	}
	if schema.Len() == 0 {
		return nil, nil
	}
	return schema, nil
}

func (t *serverTool) Fn() any {
	return t.fn
}

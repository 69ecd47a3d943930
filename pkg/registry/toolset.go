package registry

import (
	"context"
	"fmt"

	"github.com/containers/kubernetes-mcp-server/pkg/api"

	"github.com/rhobs/mcp-docs/pkg/extractor"
)

// ToolsetRegistry exposes the tools of kubernetes-mcp-server toolsets. Each
// tool is tagged with the name of the toolset providing it. When two
// toolsets provide the same tool name, the first one wins.
type ToolsetRegistry struct {
	names []string
	tools map[string]toolsetTool
	hints hints
}

var _ extractor.Registry = (*ToolsetRegistry)(nil)

// NewToolsetRegistry collects the tools of toolsets in order.
func NewToolsetRegistry(toolsets []api.Toolset, opts ...Option) *ToolsetRegistry {
	r := &ToolsetRegistry{
		tools: make(map[string]toolsetTool),
		hints: newHints(opts),
	}
	for _, ts := range toolsets {
		if ts == nil {
			continue
		}
		for _, st := range ts.GetTools(nil) {
			name := st.Tool.Name
			if _, seen := r.tools[name]; seen {
				continue
			}
			r.names = append(r.names, name)
			r.tools[name] = toolsetTool{tool: st.Tool, toolset: ts.GetName()}
		}
	}
	return r
}

func (r *ToolsetRegistry) ListToolNames(_ context.Context) ([]string, error) {
	return append([]string{}, r.names...), nil
}

func (r *ToolsetRegistry) GetTool(_ context.Context, name string) (extractor.Descriptor, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	tool.tags = []string{tool.toolset}
	if tags := r.hints.tags[name]; len(tags) > 0 {
		tool.tags = tags
	}
	tool.fn = r.hints.funcs[name]
	return &tool, nil
}

type toolsetTool struct {
	tool    api.Tool
	toolset string
	tags    []string
	fn      any
}

var (
	_ extractor.Describer           = (*toolsetTool)(nil)
	_ extractor.Tagger              = (*toolsetTool)(nil)
	_ extractor.Annotated           = (*toolsetTool)(nil)
	_ extractor.InputSchemaProvider = (*toolsetTool)(nil)
	_ extractor.FnProvider          = (*toolsetTool)(nil)
)

func (t *toolsetTool) Description() string {
	return t.tool.Description
}

func (t *toolsetTool) Tags() []string {
	return t.tags
}

func (t *toolsetTool) Annotations() *extractor.Annotations {
	if t.tool.Annotations.Title == "" {
		return nil
	}
	return &extractor.Annotations{Title: t.tool.Annotations.Title}
}

func (t *toolsetTool) InputSchema() (*extractor.InputSchema, error) {
	if t.tool.InputSchema == nil || len(t.tool.InputSchema.Properties) == 0 {
		return nil, nil
	}
	return extractor.SchemaFrom(t.tool.InputSchema)
}

func (t *toolsetTool) Fn() any {
	return t.fn
}

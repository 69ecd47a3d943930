package toolset

import (
	"slices"

	"github.com/containers/kubernetes-mcp-server/pkg/api"
	"github.com/containers/kubernetes-mcp-server/pkg/toolsets"

	"github.com/rhobs/mcp-docs/pkg/extractor"
	"github.com/rhobs/mcp-docs/pkg/registry"
	alltools "github.com/rhobs/mcp-docs/pkg/tools"
	toolsetconfig "github.com/rhobs/mcp-docs/pkg/toolset/config"
	"github.com/rhobs/mcp-docs/pkg/toolset/tools"
)

// Toolset exposes the example tools to kubernetes-mcp-server.
type Toolset struct{}

var _ api.Toolset = (*Toolset)(nil)

// GetName returns the name of the toolset.
func (t *Toolset) GetName() string {
	return toolsetconfig.Name
}

// GetDescription returns a human-readable description of the toolset.
func (t *Toolset) GetDescription() string {
	return `Example tools whose documentation is served over HTTP: a greeting, two arithmetic tools, a mock weather lookup and the OpenAPI document of the toolset.`
}

// GetTools returns all tools provided by this toolset.
func (t *Toolset) GetTools(_ api.Openshift) []api.ServerTool {
	return slices.Concat(
		tools.InitHelloWorld(),
		tools.InitAddNumbers(),
		tools.InitMultiplyNumbers(),
		tools.InitGetWeather(),
		tools.InitGetToolsOpenAPI(func() extractor.Registry { return NewRegistry(t) }),
	)
}

// GetPrompts returns prompts provided by this toolset.
func (t *Toolset) GetPrompts() []api.ServerPrompt {
	return nil
}

// NewRegistry returns a documentation registry over the given toolsets. The
// example tools keep their own tags rather than the toolset name.
func NewRegistry(sets ...api.Toolset) *registry.ToolsetRegistry {
	var opts []registry.Option
	for _, def := range append(alltools.AllTools(), tools.ToolsOpenAPI) {
		opts = append(opts, def.RegistryOptions()...)
	}
	return registry.NewToolsetRegistry(sets, opts...)
}

func init() {
	toolsets.Register(&Toolset{})
}

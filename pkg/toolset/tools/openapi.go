package tools

import (
	"context"
	"log/slog"

	"github.com/containers/kubernetes-mcp-server/pkg/api"

	"github.com/rhobs/mcp-docs/pkg/docs"
	"github.com/rhobs/mcp-docs/pkg/extractor"
	"github.com/rhobs/mcp-docs/pkg/resultutil"
	toolsetconfig "github.com/rhobs/mcp-docs/pkg/toolset/config"
	"github.com/rhobs/mcp-docs/pkg/tools"
)

// ToolsOpenAPI documents the toolset itself. It is served by the toolset only.
var ToolsOpenAPI = tools.ToolDef{
	Name: "get_tools_openapi",
	Description: `Get the OpenAPI document describing every tool of this toolset.

The document title, version, servers and routes come from the mcp-docs toolset configuration.`,
	Title:      "Get Tools OpenAPI",
	Tags:       []string{"docs"},
	ReadOnly:   true,
	Idempotent: true,
}

// configProvider is implemented by api.ToolHandlerParams.
type configProvider interface {
	GetToolsetConfig(name string) (api.ExtendedConfig, bool)
}

// getConfig retrieves the mcp-docs toolset configuration, falling back to
// the documentation defaults when the section is absent.
func getConfig(params configProvider) *toolsetconfig.Config {
	if cfg, ok := params.GetToolsetConfig(toolsetconfig.Name); ok {
		if docsCfg, ok := cfg.(*toolsetconfig.Config); ok {
			return docsCfg
		}
	}
	return &toolsetconfig.Config{Config: docs.DefaultConfig()}
}

// InitGetToolsOpenAPI creates the get_tools_openapi tool. newRegistry is
// called on every invocation, so it may refer to the toolset being built.
func InitGetToolsOpenAPI(newRegistry func() extractor.Registry) []api.ServerTool {
	return []api.ServerTool{
		ToolsOpenAPI.ToServerTool(func(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
			return toolsOpenAPI(params.Context, getConfig(params), newRegistry()).ToToolsetResult()
		}),
	}
}

func toolsOpenAPI(ctx context.Context, cfg *toolsetconfig.Config, reg extractor.Registry) *resultutil.Result {
	logger := slog.New(slog.DiscardHandler)
	if cfg.Verbose {
		logger = slog.Default()
	}
	records := extractor.New(logger).Extract(ctx, reg)
	return resultutil.NewSuccessResult(docs.BuildOpenAPI(cfg.Config, records))
}

package config

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/containers/kubernetes-mcp-server/pkg/api"
	serverconfig "github.com/containers/kubernetes-mcp-server/pkg/config"

	"github.com/rhobs/mcp-docs/pkg/docs"
)

// Name is the toolset configuration section read by the mcp-docs toolset.
const Name = "mcp-docs"

// Config holds the mcp-docs toolset configuration: how the documentation of
// the toolset tools is presented. Every key of docs.Config is accepted at the
// top level of the toolset table.
type Config struct {
	docs.Config
}

var _ api.ExtendedConfig = (*Config)(nil)

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	if err := c.Config.Validate(); err != nil {
		return fmt.Errorf("invalid mcp-docs toolset configuration: %w", err)
	}
	return nil
}

func docsToolsetParser(_ context.Context, primitive toml.Primitive, md toml.MetaData) (api.ExtendedConfig, error) {
	cfg := Config{Config: docs.DefaultConfig()}
	defaultServers := cfg.OpenAPIServers
	cfg.OpenAPIServers = nil

	if err := md.PrimitiveDecode(primitive, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.OpenAPIServers) == 0 {
		cfg.OpenAPIServers = defaultServers
	}
	return &cfg, nil
}

func init() {
	serverconfig.RegisterToolsetConfig(Name, docsToolsetParser)
}

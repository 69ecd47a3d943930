// Package docs serves documentation for the tools of an MCP server: a JSON
// listing, per-tool details, an OpenAPI document and an HTML page.
package docs

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rhobs/mcp-docs/pkg/extractor"
)

// Docs documents the tools of one registry.
type Docs struct {
	serverName string
	registry   extractor.Registry
	cfg        Config
	logger     *slog.Logger

	extractor *extractor.Extractor
	metrics   *Metrics
	tools     map[string]extractor.ToolRecord
}

// Option configures Docs.
type Option func(*docsOptions)

type docsOptions struct {
	registerer prometheus.Registerer
}

// WithRegisterer registers extraction and request metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *docsOptions) {
		o.registerer = reg
	}
}

// New validates cfg and prepares documentation for registry. Nothing is
// extracted until Setup is called.
func New(serverName string, registry extractor.Registry, cfg Config, logger *slog.Logger, opts ...Option) (*Docs, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid docs configuration: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	var o docsOptions
	for _, opt := range opts {
		opt(&o)
	}

	extractorLogger := logger
	if !cfg.Verbose {
		extractorLogger = slog.New(slog.DiscardHandler)
	}
	var extractorOpts []extractor.Option
	var metrics *Metrics
	if o.registerer != nil {
		extractorOpts = append(extractorOpts, extractor.WithMetrics(extractor.NewMetrics(o.registerer)))
		metrics = NewMetrics(o.registerer)
	}

	return &Docs{
		serverName: serverName,
		registry:   registry,
		cfg:        cfg,
		logger:     logger,
		extractor:  extractor.New(extractorLogger, extractorOpts...),
		metrics:    metrics,
		tools:      map[string]extractor.ToolRecord{},
	}, nil
}

// Setup extracts the tools and mounts the documentation routes on mux. Call
// it once, after every tool has been registered with the host.
func (d *Docs) Setup(ctx context.Context, mux *http.ServeMux) error {
	d.tools = d.extractor.Extract(ctx, d.registry)

	r, err := newRoutes(d.serverName, d.cfg, d.tools, d.metrics, d.logger)
	if err != nil {
		return err
	}
	r.register(mux)

	d.logger.Info("Documentation setup complete",
		"tools", len(d.tools),
		"docs_ui", d.cfg.BaseURL+d.cfg.DocsUIRoute,
		"openapi", d.cfg.BaseURL+d.cfg.OpenAPIRoute,
		"api", d.cfg.BaseURL+d.cfg.APIToolsRoute,
	)
	return nil
}

// Tools returns a copy of the records built by Setup.
func (d *Docs) Tools() map[string]extractor.ToolRecord {
	return maps.Clone(d.tools)
}

// OpenAPI returns the OpenAPI document for the records built by Setup.
func (d *Docs) OpenAPI() *Document {
	return BuildOpenAPI(d.cfg, d.tools)
}

// Config returns the documentation configuration.
func (d *Docs) Config() Config {
	return d.cfg
}

// Package extractor builds documentation records from the tools registered
// with an MCP host.
//
// Hosts describe their tools through a Registry. Each descriptor is probed for
// optional capabilities (description, tags, annotations, a declared input
// schema, or an underlying callable whose signature is reflected), and the
// result is normalized into ToolRecords. Extraction never fails as a whole: a
// tool that cannot be read is logged and left out.
package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Extractor reads tool metadata from a Registry.
type Extractor struct {
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMetrics records extraction outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(e *Extractor) {
		e.metrics = m
	}
}

// New returns an Extractor that reports progress to logger.
func New(logger *slog.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Extractor{logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract documents every tool in registry, in the order the registry lists
// them. The result is rebuilt from scratch on every call and is never nil.
func (e *Extractor) Extract(ctx context.Context, registry Registry) map[string]ToolRecord {
	tools := make(map[string]ToolRecord)

	names, err := listToolNames(ctx, registry)
	if err != nil {
		e.logger.Warn("Failed to list tools", "err", err)
		e.metrics.failed(stageList)
		e.metrics.setDocumented(0)
		return tools
	}

	e.logger.Info("Found tools to document", "count", len(names))
	if len(names) == 0 {
		e.logger.Warn("No tools found in MCP server")
		e.metrics.setDocumented(0)
		return tools
	}

	for _, name := range names {
		record, err := e.extractTool(ctx, registry, name)
		if err != nil {
			e.logger.Warn("Could not document tool", "tool", name, "err", err)
			e.metrics.failed(stageTool)
			continue
		}
		tools[name] = record
		e.logger.Debug("Documented tool", "tool", name)
	}

	e.metrics.setDocumented(len(tools))
	return tools
}

func listToolNames(ctx context.Context, registry Registry) (names []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while listing tools: %v", r)
		}
	}()
	return registry.ListToolNames(ctx)
}

func (e *Extractor) extractTool(ctx context.Context, registry Registry, name string) (record ToolRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while extracting tool: %v", r)
		}
	}()

	tool, err := registry.GetTool(ctx, name)
	if err != nil {
		return ToolRecord{}, fmt.Errorf("failed to get tool: %w", err)
	}
	if tool == nil {
		return ToolRecord{}, fmt.Errorf("registry returned no descriptor")
	}
	return e.describe(name, tool)
}

// describe probes the descriptor's capabilities in priority order.
func (e *Extractor) describe(name string, tool Descriptor) (ToolRecord, error) {
	logger := e.logger.With("tool", name)
	logger.Debug("Processing tool")

	record := ToolRecord{
		Name:  name,
		Title: name,
		Tags:  []string{},
	}

	if d, ok := tool.(Describer); ok {
		record.Description = d.Description()
		logger.Debug("Found description", "description", preview(record.Description))
	}

	// missing and empty tag lists are treated alike
	if t, ok := tool.(Tagger); ok {
		if tags := t.Tags(); len(tags) > 0 {
			record.Tags = slices.Clone(tags)
			logger.Debug("Found tags", "tags", record.Tags)
		}
	}

	if a, ok := tool.(Annotated); ok {
		if annotations := a.Annotations(); annotations != nil && annotations.Title != "" {
			record.Title = annotations.Title
			logger.Debug("Found title", "title", record.Title)
		}
	}

	schema, err := e.inputSchema(logger, tool)
	if err != nil {
		return ToolRecord{}, err
	}
	record.Parameters = schema.Parameters()

	if record.Description == "" {
		record.Description = DefaultDescription
	}
	return record, nil
}

// inputSchema returns the declared schema, or one synthesized from the
// underlying callable. A nil schema means the tool takes no parameters.
func (e *Extractor) inputSchema(logger *slog.Logger, tool Descriptor) (*InputSchema, error) {
	if p, ok := tool.(InputSchemaProvider); ok {
		schema, err := p.InputSchema()
		if err != nil {
			return nil, fmt.Errorf("failed to read input schema: %w", err)
		}
		if schema != nil {
			logger.Debug("Found input schema", "properties", schema.Len())
			return schema, nil
		}
	}

	if p, ok := tool.(ParameterSchemaProvider); ok {
		schema, err := p.ParameterSchema()
		if err != nil {
			return nil, fmt.Errorf("failed to read parameter schema: %w", err)
		}
		if schema != nil {
			logger.Debug("Found parameters schema", "properties", schema.Len())
			return schema, nil
		}
	}

	accessor, fn := underlyingCallable(tool)
	if fn == nil {
		return nil, nil
	}
	logger.Debug("Found underlying callable", "accessor", accessor)

	schema, err := SchemaFromCallable(fn)
	if err != nil {
		logger.Debug("Underlying callable has no usable signature", "err", err)
		return nil, nil
	}
	logger.Debug("Built schema from signature", "properties", schema.Len())
	return schema, nil
}

func underlyingCallable(tool Descriptor) (string, any) {
	if p, ok := tool.(FnProvider); ok {
		if fn := p.Fn(); fn != nil {
			return "Fn", fn
		}
	}
	if p, ok := tool.(FuncProvider); ok {
		if fn := p.Func(); fn != nil {
			return "Func", fn
		}
	}
	if p, ok := tool.(TypedHandlerProvider); ok {
		if fn := p.TypedHandler(); fn != nil {
			return "TypedHandler", fn
		}
	}
	return "", nil
}

// preview shortens a description to its first line for log output.
func preview(description string) string {
	first, _, multiline := strings.Cut(description, "\n")
	if multiline {
		return first + "..."
	}
	return description
}

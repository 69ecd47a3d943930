package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// MockedRegistry is a mock implementation of Registry for testing
type MockedRegistry struct {
	ListToolNamesFunc func(ctx context.Context) ([]string, error)
	GetToolFunc       func(ctx context.Context, name string) (Descriptor, error)
}

func (m *MockedRegistry) ListToolNames(ctx context.Context) ([]string, error) {
	if m.ListToolNamesFunc != nil {
		return m.ListToolNamesFunc(ctx)
	}
	return []string{}, nil
}

func (m *MockedRegistry) GetTool(ctx context.Context, name string) (Descriptor, error) {
	if m.GetToolFunc != nil {
		return m.GetToolFunc(ctx, name)
	}
	return nil, fmt.Errorf("tool %q not found", name)
}

// Ensure MockedRegistry implements Registry at compile time
var _ Registry = (*MockedRegistry)(nil)

// registryOf serves the given descriptors in the order of names.
func registryOf(names []string, tools map[string]Descriptor) *MockedRegistry {
	return &MockedRegistry{
		ListToolNamesFunc: func(context.Context) ([]string, error) {
			return names, nil
		},
		GetToolFunc: func(_ context.Context, name string) (Descriptor, error) {
			tool, ok := tools[name]
			if !ok {
				return nil, fmt.Errorf("tool %q not found", name)
			}
			return tool, nil
		},
	}
}

type describedTool struct {
	description string
	tags        []string
	title       string
}

func (t describedTool) Description() string { return t.description }
func (t describedTool) Tags() []string      { return t.tags }
func (t describedTool) Annotations() *Annotations {
	if t.title == "" {
		return nil
	}
	return &Annotations{Title: t.title}
}

type schemaTool struct {
	describedTool
	schema *InputSchema
	err    error
}

func (t schemaTool) InputSchema() (*InputSchema, error) { return t.schema, t.err }

type parametersTool struct {
	schemaTool
	parameters *InputSchema
}

func (t parametersTool) ParameterSchema() (*InputSchema, error) { return t.parameters, nil }

type fnTool struct {
	describedTool
	fn any
}

func (t fnTool) Fn() any { return t.fn }

type handlerTool struct {
	handler any
}

func (t handlerTool) TypedHandler() any { return t.handler }

type panickingTool struct{}

func (panickingTool) Description() string { panic("descriptor exploded") }

type mathArgs struct {
	A float64 `json:"a" jsonschema:"First number"`
	B float64 `json:"b" jsonschema:"Second number"`
}

func newTestExtractor(opts ...Option) *Extractor {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), opts...)
}

func mustParse(t *testing.T, data string) *InputSchema {
	t.Helper()
	schema, err := ParseInputSchema([]byte(data))
	if err != nil {
		t.Fatalf("failed to parse schema: %v", err)
	}
	return schema
}

func TestExtract_EveryToolExactlyOnce(t *testing.T) {
	names := []string{"alpha", "beta", "gamma"}
	tools := map[string]Descriptor{
		"alpha": describedTool{description: "first"},
		"beta":  describedTool{description: "second"},
		"gamma": describedTool{description: "third"},
	}

	result := newTestExtractor().Extract(context.Background(), registryOf(names, tools))

	if len(result) != len(names) {
		t.Fatalf("expected %d tools, got %d", len(names), len(result))
	}
	for _, name := range names {
		record, ok := result[name]
		if !ok {
			t.Errorf("expected tool %q in result", name)
			continue
		}
		if record.Name != name {
			t.Errorf("expected record name %q, got %q", name, record.Name)
		}
	}
}

func TestExtract_ListingFailures(t *testing.T) {
	tests := []struct {
		name     string
		registry *MockedRegistry
	}{
		{
			name: "listing returns an error",
			registry: &MockedRegistry{
				ListToolNamesFunc: func(context.Context) ([]string, error) {
					return nil, errors.New("connection refused")
				},
			},
		},
		{
			name: "listing panics",
			registry: &MockedRegistry{
				ListToolNamesFunc: func(context.Context) ([]string, error) {
					panic("host not ready")
				},
			},
		},
		{
			name: "listing returns no names",
			registry: &MockedRegistry{
				ListToolNamesFunc: func(context.Context) ([]string, error) {
					return nil, nil
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newTestExtractor().Extract(context.Background(), tt.registry)
			if result == nil {
				t.Fatal("expected a non-nil mapping")
			}
			if len(result) != 0 {
				t.Errorf("expected an empty mapping, got %d tools", len(result))
			}
		})
	}
}

func TestExtract_PartialFailureIsolation(t *testing.T) {
	tests := []struct {
		name   string
		broken Descriptor
		getErr error
	}{
		{name: "fetch error", getErr: errors.New("tool vanished")},
		{name: "nil descriptor"},
		{name: "descriptor panics", broken: panickingTool{}},
		{name: "schema error", broken: schemaTool{err: errors.New("bad schema")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names := []string{"one", "broken", "three", "four"}
			registry := &MockedRegistry{
				ListToolNamesFunc: func(context.Context) ([]string, error) {
					return names, nil
				},
				GetToolFunc: func(_ context.Context, name string) (Descriptor, error) {
					if name == "broken" {
						return tt.broken, tt.getErr
					}
					return describedTool{description: name}, nil
				},
			}

			result := newTestExtractor().Extract(context.Background(), registry)

			if len(result) != len(names)-1 {
				t.Fatalf("expected %d tools, got %d", len(names)-1, len(result))
			}
			if _, ok := result["broken"]; ok {
				t.Error("expected the failing tool to be omitted")
			}
		})
	}
}

func TestExtract_Title(t *testing.T) {
	tools := map[string]Descriptor{
		"add_numbers": describedTool{title: "Add Two Numbers"},
		"plain":       describedTool{},
		"bare":        struct{}{},
	}
	result := newTestExtractor().Extract(context.Background(), registryOf([]string{"add_numbers", "plain", "bare"}, tools))

	expected := map[string]string{
		"add_numbers": "Add Two Numbers",
		"plain":       "plain",
		"bare":        "bare",
	}
	for name, title := range expected {
		if got := result[name].Title; got != title {
			t.Errorf("tool %q: expected title %q, got %q", name, title, got)
		}
	}
}

func TestExtract_Description(t *testing.T) {
	full := "Add two numbers\n\nDetailed text"
	tools := map[string]Descriptor{
		"described": describedTool{description: full},
		"empty":     describedTool{},
		"bare":      struct{}{},
	}
	result := newTestExtractor().Extract(context.Background(), registryOf([]string{"described", "empty", "bare"}, tools))

	if got := result["described"].Description; got != full {
		t.Errorf("expected full description %q, got %q", full, got)
	}
	if got := result["empty"].Description; got != DefaultDescription {
		t.Errorf("expected placeholder description, got %q", got)
	}
	if got := result["bare"].Description; got != DefaultDescription {
		t.Errorf("expected placeholder description, got %q", got)
	}
}

func TestExtract_Tags(t *testing.T) {
	tests := []struct {
		name     string
		tool     Descriptor
		expected []string
	}{
		{name: "tags kept in order", tool: describedTool{tags: []string{"math", "demo"}}, expected: []string{"math", "demo"}},
		{name: "duplicates kept", tool: describedTool{tags: []string{"math", "math"}}, expected: []string{"math", "math"}},
		{name: "nil tags", tool: describedTool{}, expected: []string{}},
		{name: "empty tags", tool: describedTool{tags: []string{}}, expected: []string{}},
		{name: "no tag capability", tool: struct{}{}, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newTestExtractor().Extract(context.Background(), registryOf([]string{"tool"}, map[string]Descriptor{"tool": tt.tool}))
			got := result["tool"].Tags
			if got == nil {
				t.Fatal("expected non-nil tags")
			}
			if !slices.Equal(got, tt.expected) {
				t.Errorf("expected tags %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestExtract_SchemaPriority(t *testing.T) {
	declared := mustParse(t, `{"type":"object","properties":{"query":{"type":"string"}},"required":["query"]}`)
	alternative := mustParse(t, `{"properties":{"filter":{"type":"string"}}}`)

	tests := []struct {
		name     string
		tool     Descriptor
		expected []string
	}{
		{
			name:     "input schema wins over parameter schema",
			tool:     parametersTool{schemaTool: schemaTool{schema: declared}, parameters: alternative},
			expected: []string{"query"},
		},
		{
			name:     "nil input schema falls back to parameter schema",
			tool:     parametersTool{parameters: alternative},
			expected: []string{"filter"},
		},
		{
			name:     "declared schema wins over callable",
			tool:     struct{ schemaTool; fnTool }{schemaTool{schema: declared}, fnTool{fn: func(mathArgs) {}}},
			expected: []string{"query"},
		},
		{
			name:     "callable used without declared schema",
			tool:     fnTool{fn: func(mathArgs) {}},
			expected: []string{"a", "b"},
		},
		{
			name:     "typed handler accessor",
			tool:     handlerTool{handler: func(context.Context, mathArgs) (string, error) { return "", nil }},
			expected: []string{"a", "b"},
		},
		{
			name:     "non callable yields no parameters",
			tool:     fnTool{fn: 42},
			expected: []string{},
		},
		{
			name:     "nothing to inspect",
			tool:     describedTool{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newTestExtractor().Extract(context.Background(), registryOf([]string{"tool"}, map[string]Descriptor{"tool": tt.tool}))
			record, ok := result["tool"]
			if !ok {
				t.Fatal("expected tool in result")
			}
			if record.Parameters == nil {
				t.Fatal("expected non-nil parameters")
			}
			if got := record.ParameterNames(); !slices.Equal(got, tt.expected) {
				t.Errorf("expected parameters %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestExtract_SynthesizedFromSignature(t *testing.T) {
	tool := fnTool{
		describedTool: describedTool{description: "Add two numbers", tags: []string{"math"}},
		fn: func(_ context.Context, args mathArgs) (string, error) {
			return fmt.Sprint(args.A + args.B), nil
		},
	}
	result := newTestExtractor().Extract(context.Background(), registryOf([]string{"add"}, map[string]Descriptor{"add": tool}))

	record := result["add"]
	for _, name := range []string{"a", "b"} {
		param, ok := record.Parameter(name)
		if !ok {
			t.Fatalf("expected parameter %q", name)
		}
		if !param.Required {
			t.Errorf("expected %q to be required", name)
		}
		if param.Type != ParamTypeNumber {
			t.Errorf("expected %q to be a number, got %q", name, param.Type)
		}
		if param.Default != nil {
			t.Errorf("expected %q to carry no default, got %q", name, *param.Default)
		}
	}
	if param, _ := record.Parameter("a"); param.Description != "First number" {
		t.Errorf("expected description %q, got %q", "First number", param.Description)
	}
}

func TestExtract_BooleanIsNotInteger(t *testing.T) {
	type flagArgs struct {
		Verbose bool `json:"verbose"`
		Count   int  `json:"count"`
	}
	tool := fnTool{fn: func(flagArgs) {}}
	result := newTestExtractor().Extract(context.Background(), registryOf([]string{"flags"}, map[string]Descriptor{"flags": tool}))

	verbose, _ := result["flags"].Parameter("verbose")
	if verbose.Type != ParamTypeBoolean {
		t.Errorf("expected boolean, got %q", verbose.Type)
	}
	if !verbose.Required {
		t.Error("expected verbose to be required")
	}
	count, _ := result["flags"].Parameter("count")
	if count.Type != ParamTypeInteger {
		t.Errorf("expected integer, got %q", count.Type)
	}
}

func TestExtract_RecursiveArgsStruct(t *testing.T) {
	tools := map[string]Descriptor{
		"tree": fnTool{fn: func(_ context.Context, n treeNode) {}},
		"add":  fnTool{fn: func(mathArgs) {}},
	}
	result := newTestExtractor().Extract(context.Background(), registryOf([]string{"tree", "add"}, tools))

	if len(result) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(result))
	}
	if names := result["tree"].ParameterNames(); !slices.Equal(names, []string{"value"}) {
		t.Errorf("expected parameters [value], got %v", names)
	}
}

func TestExtract_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	e := newTestExtractor(WithMetrics(metrics))

	registry := &MockedRegistry{
		ListToolNamesFunc: func(context.Context) ([]string, error) {
			return []string{"ok", "missing"}, nil
		},
		GetToolFunc: func(_ context.Context, name string) (Descriptor, error) {
			if name == "ok" {
				return describedTool{}, nil
			}
			return nil, errors.New("not found")
		},
	}
	e.Extract(context.Background(), registry)

	if got := testutil.ToFloat64(metrics.documented); got != 1 {
		t.Errorf("expected 1 documented tool, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.failures.WithLabelValues(stageTool)); got != 1 {
		t.Errorf("expected 1 tool failure, got %v", got)
	}

	e.Extract(context.Background(), &MockedRegistry{
		ListToolNamesFunc: func(context.Context) ([]string, error) {
			return nil, errors.New("down")
		},
	})
	if got := testutil.ToFloat64(metrics.failures.WithLabelValues(stageList)); got != 1 {
		t.Errorf("expected 1 listing failure, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.documented); got != 0 {
		t.Errorf("expected documented gauge reset to 0, got %v", got)
	}
}

func TestToolRecord_JSONRoundTrip(t *testing.T) {
	tool := schemaTool{
		describedTool: describedTool{
			description: "Get weather for a city\n\nReturns mock data.",
			tags:        []string{"weather"},
			title:       "Get Weather",
		},
		schema: mustParse(t, `{
			"properties": {
				"city": {"type": "string", "description": "City name"},
				"units": {"type": "string", "description": "Temperature units", "default": "celsius"},
				"days": {"type": "integer", "default": 3}
			},
			"required": ["city"]
		}`),
	}
	record := newTestExtractor().Extract(context.Background(), registryOf([]string{"get_weather"}, map[string]Descriptor{"get_weather": tool}))["get_weather"]

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded ToolRecord
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded.Name != record.Name || decoded.Title != record.Title || decoded.Description != record.Description {
		t.Errorf("scalar fields differ: got %+v, want %+v", decoded, record)
	}
	if !slices.Equal(decoded.Tags, record.Tags) {
		t.Errorf("expected tags %v, got %v", record.Tags, decoded.Tags)
	}
	if !slices.Equal(decoded.ParameterNames(), record.ParameterNames()) {
		t.Fatalf("expected parameter order %v, got %v", record.ParameterNames(), decoded.ParameterNames())
	}
	for _, name := range record.ParameterNames() {
		want, _ := record.Parameter(name)
		got, _ := decoded.Parameter(name)
		if got.Type != want.Type || got.Description != want.Description || got.Required != want.Required {
			t.Errorf("parameter %q: expected %+v, got %+v", name, want, got)
		}
		if (got.Default == nil) != (want.Default == nil) || (got.Default != nil && *got.Default != *want.Default) {
			t.Errorf("parameter %q: default mismatch", name)
		}
	}
}

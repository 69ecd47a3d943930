package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rhobs/mcp-docs/pkg/docs"
	"github.com/rhobs/mcp-docs/pkg/extractor"
)

func newTestHandler(t *testing.T) (http.Handler, *docs.Docs) {
	t.Helper()
	mcpServer, registryOpts := NewMCPServer()
	handler, d, err := NewHandler(context.Background(), mcpServer, Options{
		Docs:            docs.DefaultConfig(),
		RegistryOptions: registryOpts,
		Registry:        prometheus.NewRegistry(),
	})
	if err != nil {
		t.Fatalf("failed to create handler: %v", err)
	}
	return handler, d
}

func TestNewMCPServer(t *testing.T) {
	mcpServer, opts := NewMCPServer()

	tools := mcpServer.ListTools()
	if len(tools) != 4 {
		t.Fatalf("expected 4 tools, got %d", len(tools))
	}
	for _, name := range []string{"hello_world", "add_numbers", "multiply_numbers", "get_weather"} {
		if _, ok := tools[name]; !ok {
			t.Errorf("missing tool %s", name)
		}
	}
	// one tag option per tool plus the hello_world handler
	if len(opts) != 5 {
		t.Errorf("expected 5 registry options, got %d", len(opts))
	}
}

func TestNewHandler_Docs(t *testing.T) {
	_, d := newTestHandler(t)
	records := d.Tools()

	tests := []struct {
		name   string
		title  string
		tags   []string
		params []string
	}{
		{name: "hello_world", title: "hello_world", tags: []string{"greetings"}, params: []string{"name"}},
		{name: "add_numbers", title: "Add Two Numbers", tags: []string{"math"}, params: []string{"a", "b"}},
		{name: "multiply_numbers", title: "Multiply Two Numbers", tags: []string{"math"}, params: []string{"a", "b"}},
		{name: "get_weather", title: "Get Weather", tags: []string{"weather"}, params: []string{"city", "units"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, ok := records[tt.name]
			if !ok {
				t.Fatalf("tool %s was not documented", tt.name)
			}
			if record.Title != tt.title {
				t.Errorf("expected title %q, got %q", tt.title, record.Title)
			}
			if !slices.Equal(record.Tags, tt.tags) {
				t.Errorf("expected tags %v, got %v", tt.tags, record.Tags)
			}
			if got := record.ParameterNames(); !slices.Equal(got, tt.params) {
				t.Errorf("expected parameters %v, got %v", tt.params, got)
			}
		})
	}

	t.Run("signature fallback", func(t *testing.T) {
		name, _ := records["hello_world"].Parameter("name")
		if name.Required || name.Default == nil || *name.Default != "World" || name.Type != extractor.ParamTypeString {
			t.Errorf("unexpected parameter name: %+v", name)
		}
	})

	t.Run("numbers", func(t *testing.T) {
		for _, p := range []string{"a", "b"} {
			param, _ := records["add_numbers"].Parameter(p)
			if param.Type != extractor.ParamTypeNumber || !param.Required {
				t.Errorf("unexpected parameter %s: %+v", p, param)
			}
		}
	})

	t.Run("declared default", func(t *testing.T) {
		units, _ := records["get_weather"].Parameter("units")
		if units.Required || units.Default == nil || *units.Default != "celsius" {
			t.Errorf("unexpected parameter units: %+v", units)
		}
	})
}

func TestNewHandler_Endpoints(t *testing.T) {
	handler, _ := newTestHandler(t)

	tests := []struct {
		name       string
		path       string
		statusCode int
		contains   string
	}{
		{name: "health", path: "/health", statusCode: http.StatusOK, contains: "OK"},
		{name: "tools", path: "/api/tools", statusCode: http.StatusOK, contains: `"total_tools":4`},
		{name: "tool", path: "/api/tools/get_weather", statusCode: http.StatusOK, contains: `"title":"Get Weather"`},
		{name: "openapi", path: "/openapi.json", statusCode: http.StatusOK, contains: `"operationId":"get_tool_add_numbers"`},
		{name: "docs", path: "/docs", statusCode: http.StatusOK, contains: "MCP Tools Documentation"},
		{name: "metrics", path: "/metrics", statusCode: http.StatusOK, contains: "mcp_docs_tools_documented 4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.statusCode {
				t.Fatalf("expected status %d, got %d", tt.statusCode, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("expected body to contain %q, got %s", tt.contains, rec.Body.String())
			}
		})
	}
}

func TestNewHandler_InvalidDocsConfig(t *testing.T) {
	mcpServer, _ := NewMCPServer()
	cfg := docs.DefaultConfig()
	cfg.DocsUIRoute = "docs"
	if _, _, err := NewHandler(context.Background(), mcpServer, Options{Docs: cfg, Registry: prometheus.NewRegistry()}); err == nil {
		t.Error("expected error for invalid docs configuration")
	}
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	handler := loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{name: "request id", headers: map[string]string{"X-Request-ID": "abc"}, expected: "abc"},
		{name: "correlation id", headers: map[string]string{"X-Correlation-ID": "def"}, expected: "def"},
		{name: "generated", headers: map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			got := rec.Header().Get("X-Request-ID")
			if tt.expected != "" && got != tt.expected {
				t.Errorf("expected request id %q, got %q", tt.expected, got)
			}
			if got == "" {
				t.Error("expected a request id")
			}
		})
	}
}

func TestOpenAPI_ComponentsFromServer(t *testing.T) {
	_, d := newTestHandler(t)

	data, err := json.Marshal(d.OpenAPI())
	if err != nil {
		t.Fatalf("failed to marshal document: %v", err)
	}
	for _, want := range []string{`"hello_world_parameters"`, `"Greetings related tools"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected document to contain %s", want)
		}
	}
}

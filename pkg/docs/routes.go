package docs

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rhobs/mcp-docs/pkg/extractor"
)

const (
	faviconRoute = "/favicon.svg"
	toolNameKey  = "tool_name"
)

// ToolsResponse is the body of the tool listing route.
type ToolsResponse struct {
	Server     string                          `json:"server"`
	TotalTools int                             `json:"total_tools"`
	Tools      map[string]extractor.ToolRecord `json:"tools"`
}

// ErrorResponse is the body of failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

type routes struct {
	serverName string
	cfg        Config
	tools      map[string]extractor.ToolRecord
	openapi    *Document
	page       []byte
	metrics    *Metrics
	logger     *slog.Logger
}

func newRoutes(serverName string, cfg Config, tools map[string]extractor.ToolRecord, metrics *Metrics, logger *slog.Logger) (*routes, error) {
	page, err := renderPage(cfg)
	if err != nil {
		return nil, err
	}
	return &routes{
		serverName: serverName,
		cfg:        cfg,
		tools:      tools,
		openapi:    BuildOpenAPI(cfg, tools),
		page:       page,
		metrics:    metrics,
		logger:     logger,
	}, nil
}

// register mounts the documentation routes on mux. Registering twice on the
// same mux panics, as with any duplicate ServeMux pattern.
func (r *routes) register(mux *http.ServeMux) {
	r.handle(mux, "list_tools", http.MethodGet, r.cfg.APIToolsRoute, r.listTools)
	r.handle(mux, "get_tool", http.MethodGet, r.cfg.APIToolDetailRoute, r.getTool)
	r.handle(mux, "openapi", http.MethodGet, r.cfg.OpenAPIRoute, r.openAPI)
	r.handle(mux, "openapi", http.MethodOptions, r.cfg.OpenAPIRoute, r.openAPIPreflight)
	r.handle(mux, "docs_ui", http.MethodGet, r.cfg.DocsUIRoute, r.docsUI)
	if r.cfg.FaviconURL == "" {
		r.handle(mux, "favicon", http.MethodGet, faviconRoute, r.favicon)
	}
}

func (r *routes) handle(mux *http.ServeMux, name, method, path string, h http.HandlerFunc) {
	mux.Handle(fmt.Sprintf("%s %s", method, path), r.metrics.instrument(name, h))
}

func (r *routes) listTools(w http.ResponseWriter, _ *http.Request) {
	r.writeJSON(w, http.StatusOK, ToolsResponse{
		Server:     r.serverName,
		TotalTools: len(r.tools),
		Tools:      r.tools,
	})
}

func (r *routes) getTool(w http.ResponseWriter, req *http.Request) {
	name := req.PathValue(toolNameKey)
	tool, ok := r.tools[name]
	if !ok {
		r.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("Tool '%s' not found", name)})
		return
	}
	r.writeJSON(w, http.StatusOK, tool)
}

func (r *routes) openAPI(w http.ResponseWriter, _ *http.Request) {
	r.setCORSHeaders(w)
	r.writeJSON(w, http.StatusOK, r.openapi)
}

func (r *routes) openAPIPreflight(w http.ResponseWriter, _ *http.Request) {
	r.setCORSHeaders(w)
	r.writeJSON(w, http.StatusOK, struct{}{})
}

func (r *routes) docsUI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(r.page); err != nil {
		r.logger.Debug("Failed to write docs page", "err", err)
	}
}

func (r *routes) favicon(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(faviconSVG); err != nil {
		r.logger.Debug("Failed to write favicon", "err", err)
	}
}

func (r *routes) setCORSHeaders(w http.ResponseWriter) {
	if !r.cfg.EnableCORS {
		return
	}
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "*")
}

func (r *routes) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		r.logger.Error("Failed to encode response", "err", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		r.logger.Debug("Failed to write response", "err", err)
	}
}

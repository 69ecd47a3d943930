package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhobs/mcp-docs/pkg/docs"
	"github.com/rhobs/mcp-docs/pkg/registry"
	"github.com/rhobs/mcp-docs/pkg/tools"
)

// Options contains configuration options for the HTTP endpoint of the example server
type Options struct {
	ListenAddr string
	Docs       docs.Config

	// RegistryOptions carries the tags and typed handlers returned by NewMCPServer
	RegistryOptions []registry.Option

	// Registry collects the server metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

const (
	mcpEndpoint            = "/mcp"
	healthEndpoint         = "/health"
	metricsEndpoint        = "/metrics"
	serverName             = "Example MCP Server"
	serverVersion          = "1.0.0"
	defaultShutdownTimeout = 10 * time.Second

	requestIDHeader     = "X-Request-ID"
	correlationIDHeader = "X-Correlation-ID"

	serverInstructions = `Example MCP server whose tools are documented over HTTP.

Call hello_world to greet someone, add_numbers or multiply_numbers for arithmetic,
and get_weather for mock weather data.`
)

// NewMCPServer creates the example server with every tool from tools.AllTools
// registered. The returned options describe what mcp.Tool cannot carry and
// are meant for registry.NewServerRegistry.
func NewMCPServer() (*server.MCPServer, []registry.Option) {
	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithLogging(),
		server.WithToolCapabilities(true),
		server.WithInstructions(serverInstructions),
	)

	return mcpServer, SetupTools(mcpServer)
}

func SetupTools(mcpServer *server.MCPServer) []registry.Option {
	var opts []registry.Option
	for _, def := range tools.AllTools() {
		mcpServer.AddTool(def.ToMCPTool(), handlers[def.Name])
		opts = append(opts, def.RegistryOptions()...)
	}
	return opts
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = r.Header.Get(correlationIDHeader)
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		slog.Info("Incoming request", "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr, "request_id", requestID)
		slog.Debug("Request headers", "headers", r.Header)
		if r.ContentLength > 0 {
			slog.Info("Request content length", "content_length", r.ContentLength)
		}
		next.ServeHTTP(w, r)
	})
}

// NewHandler mounts the MCP endpoint, health and metrics endpoints and the
// tool documentation on a single handler. The documentation is extracted
// from mcpServer here, so every tool must already be registered.
func NewHandler(ctx context.Context, mcpServer *server.MCPServer, opts Options) (http.Handler, *docs.Docs, error) {
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	mux := http.NewServeMux()

	streamableHTTPServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithStateLess(true),
	)
	mux.Handle(mcpEndpoint, streamableHTTPServer)

	mux.HandleFunc(healthEndpoint, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.Handle(metricsEndpoint, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	d, err := docs.New(serverName, registry.NewServerRegistry(mcpServer, opts.RegistryOptions...), opts.Docs, slog.Default(),
		docs.WithRegisterer(reg),
	)
	if err != nil {
		return nil, nil, err
	}
	if err := d.Setup(ctx, mux); err != nil {
		return nil, nil, fmt.Errorf("failed to set up documentation: %w", err)
	}

	return loggingMiddleware(mux), d, nil
}

func Serve(ctx context.Context, mcpServer *server.MCPServer, opts Options) error {
	handler, _, err := NewHandler(ctx, mcpServer, opts)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              opts.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGHUP, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "listen_addr", opts.ListenAddr, "mcp_endpoint", mcpEndpoint, "docs_endpoint", opts.Docs.DocsUIRoute)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-sigChan:
		slog.Warn("Received signal, initiating graceful shutdown", "signal", sig)
		cancel()
	case <-ctx.Done():
		slog.Warn("Context cancelled, initiating graceful shutdown")
	case err := <-serverErr:
		slog.Error("HTTP server error", "error", err)
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer shutdownCancel()

	slog.Info("Shutting down HTTP server gracefully")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
		return err
	}

	slog.Info("HTTP server shutdown complete")
	return nil
}

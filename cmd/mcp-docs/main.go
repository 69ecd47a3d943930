package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/common/promslog"

	"github.com/rhobs/mcp-docs/pkg/docs"
	"github.com/rhobs/mcp-docs/pkg/mcp"
)

func main() {
	// Parse command line flags
	var listen = flag.String("listen", "", "Listen address for HTTP mode (e.g., :8000, 127.0.0.1:8080). Documentation is only served in HTTP mode.")
	var configPath = flag.String("config", "", "Path to a TOML file with the documentation settings")
	var logLevel = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	var title = flag.String("title", "", "Documentation title, overrides the config file")
	var version = flag.String("version", "", "Documented API version, overrides the config file")
	var baseURL = flag.String("base-url", "", "Base URL used in logged links, overrides the config file")
	flag.Parse()

	// Configure slog with specified log level
	configureLogging(*logLevel)

	cfg, err := docs.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Invalid docs configuration: %v", err)
	}
	if *title != "" {
		cfg.Title = *title
	}
	if *version != "" {
		cfg.Version = *version
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}

	mcpServer, registryOpts := mcp.NewMCPServer()

	// Choose server mode based on flags
	if *listen != "" {
		// HTTP mode
		slog.Info("Starting server", "listen", *listen, "config", *configPath)
		opts := mcp.Options{
			ListenAddr:      *listen,
			Docs:            cfg,
			RegistryOptions: registryOpts,
		}
		if err := mcp.Serve(context.Background(), mcpServer, opts); err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	} else {
		// Start server on stdio (default mode)
		stdioServer := server.NewStdioServer(mcpServer)
		if err := stdioServer.Listen(context.Background(), os.Stdin, os.Stdout); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}
}

// configureLogging sets up the slog logger with the specified log level
func configureLogging(levelStr string) {
	level := promslog.NewLevel()
	if err := level.Set(levelStr); err != nil {
		log.Fatal(err.Error())
	}

	format := promslog.NewFormat()
	if err := format.Set("logfmt"); err != nil {
		log.Fatal(err.Error())
	}

	logger := promslog.New(&promslog.Config{
		Level:  level,
		Format: format,
		Style:  promslog.GoKitStyle,
	})
	slog.SetDefault(logger)
}

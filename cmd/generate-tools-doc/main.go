package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/prometheus/common/promslog"

	"github.com/rhobs/mcp-docs/pkg/docs"
	"github.com/rhobs/mcp-docs/pkg/extractor"
	"github.com/rhobs/mcp-docs/pkg/mcp"
	"github.com/rhobs/mcp-docs/pkg/registry"
	"github.com/rhobs/mcp-docs/pkg/toolset"
)

func main() {
	var source = flag.String("source", "server", "Tools to document when neither -endpoint nor -command is set: server (example mcp-go server) or toolset")
	var endpoint = flag.String("endpoint", "", "Streamable HTTP endpoint of a running MCP server (e.g., http://localhost:8000/mcp)")
	var command = flag.String("command", "", "Command starting an MCP server on stdio (e.g., 'mcp-docs')")
	var configPath = flag.String("config", "", "Path to a TOML file with the documentation settings")
	var markdownPath = flag.String("markdown", "TOOLS.md", "Output path of the Markdown reference (empty to skip)")
	var openapiPath = flag.String("openapi", "openapi.json", "Output path of the OpenAPI document (empty to skip)")
	var timeout = flag.Duration("timeout", 30*time.Second, "Timeout for connecting to and listing a remote server")
	var logLevel = flag.String("log-level", "warn", "Log level: debug, info, warn, error")
	flag.Parse()

	configureLogging(*logLevel)

	cfg, err := docs.LoadConfig(*configPath)
	if err != nil {
		fatalf("Error loading docs configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	reg, closeFn, err := openRegistry(ctx, *source, *endpoint, *command)
	if err != nil {
		cancel()
		fatalf("Error opening tool registry: %v", err)
	}

	names, err := generate(ctx, reg, cfg, *markdownPath, *openapiPath)
	// release the client session before any exit
	closeFn()
	cancel()
	if err != nil {
		fatalf("%v", err)
	}

	fmt.Printf("  Documented %d tools:\n", len(names))
	for _, name := range names {
		fmt.Printf("    - %s\n", name)
	}
}

// generate extracts the tools of reg and writes the requested outputs. It
// returns the sorted names of the documented tools.
func generate(ctx context.Context, reg extractor.Registry, cfg docs.Config, markdownPath, openapiPath string) ([]string, error) {
	records := extractor.New(slog.Default()).Extract(ctx, reg)
	if len(records) == 0 {
		return nil, errors.New("no tools found to document")
	}

	if markdownPath != "" {
		if err := os.WriteFile(markdownPath, []byte(generateMarkdown(records)), 0o644); err != nil {
			return nil, fmt.Errorf("error generating %s: %w", markdownPath, err)
		}
		fmt.Printf("✓ %s generated successfully\n", markdownPath)
	}

	if openapiPath != "" {
		data, err := json.MarshalIndent(docs.BuildOpenAPI(cfg, records), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("error encoding OpenAPI document: %w", err)
		}
		if err := os.WriteFile(openapiPath, append(data, '\n'), 0o644); err != nil {
			return nil, fmt.Errorf("error generating %s: %w", openapiPath, err)
		}
		fmt.Printf("✓ %s generated successfully\n", openapiPath)
	}

	return sortedNames(records), nil
}

// openRegistry selects the registry to document. The returned function
// releases any client session.
func openRegistry(ctx context.Context, source, endpoint, command string) (extractor.Registry, func(), error) {
	noop := func() {}

	switch {
	case endpoint != "":
		session, err := registry.ConnectEndpoint(ctx, endpoint)
		if err != nil {
			return nil, noop, err
		}
		return registry.NewSessionRegistry(session), func() { _ = session.Close() }, nil

	case command != "":
		args := strings.Fields(command)
		if len(args) == 0 {
			return nil, noop, fmt.Errorf("empty command")
		}
		session, err := registry.ConnectCommand(ctx, args[0], args[1:]...)
		if err != nil {
			return nil, noop, err
		}
		return registry.NewSessionRegistry(session), func() { _ = session.Close() }, nil
	}

	switch source {
	case "server":
		mcpServer, opts := mcp.NewMCPServer()
		return registry.NewServerRegistry(mcpServer, opts...), noop, nil
	case "toolset":
		return toolset.NewRegistry(&toolset.Toolset{}), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown source %q, expected server or toolset", source)
	}
}

func sortedNames(records map[string]extractor.ToolRecord) []string {
	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// configureLogging sets up the slog logger with the specified log level
func configureLogging(levelStr string) {
	level := promslog.NewLevel()
	if err := level.Set(levelStr); err != nil {
		fatalf("Invalid log level: %v", err)
	}

	format := promslog.NewFormat()
	if err := format.Set("logfmt"); err != nil {
		fatalf("Invalid log format: %v", err)
	}

	slog.SetDefault(promslog.New(&promslog.Config{
		Level:  level,
		Format: format,
		Style:  promslog.GoKitStyle,
	}))
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

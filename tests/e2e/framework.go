//go:build e2e

package e2e

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"
)

const (
	defaultListenAddr = "127.0.0.1:8000"
	defaultTimeout    = 30 * time.Second
)

// TestConfig holds configuration and runtime state for e2e tests
type TestConfig struct {
	// Configuration
	BaseURL string
	Binary  string
	Timeout time.Duration

	// Runtime state
	server    *exec.Cmd
	cleanedUp bool
}

// NewTestConfig creates a new TestConfig with defaults or env overrides.
// MCP_DOCS_URL points the tests at a running server; otherwise MCP_DOCS_BINARY
// is started locally.
func NewTestConfig() *TestConfig {
	config := &TestConfig{
		BaseURL: os.Getenv("MCP_DOCS_URL"),
		Binary:  os.Getenv("MCP_DOCS_BINARY"),
		Timeout: defaultTimeout,
	}
	if config.BaseURL == "" && config.Binary == "" {
		config.Binary = "mcp-docs"
	}
	fmt.Printf("Test config: url=%q, binary=%q, timeout=%v\n", config.BaseURL, config.Binary, config.Timeout)
	return config
}

// Setup starts the server when needed and waits for it to become healthy
func (c *TestConfig) Setup(ctx context.Context) error {
	if c.BaseURL == "" {
		c.server = exec.CommandContext(ctx, c.Binary, "-listen", defaultListenAddr, "-log-level", "debug")
		c.server.Stdout = os.Stdout
		c.server.Stderr = os.Stderr
		if err := c.server.Start(); err != nil {
			return fmt.Errorf("failed to start %s: %w", c.Binary, err)
		}
		c.BaseURL = "http://" + defaultListenAddr
	}

	if err := c.waitForReady(ctx, c.BaseURL+"/health"); err != nil {
		c.Cleanup()
		return fmt.Errorf("failed waiting for mcp-docs: %w", err)
	}

	fmt.Printf("mcp-docs is ready at %s\n", c.BaseURL)
	return nil
}

// Cleanup stops the server if it was started. Safe to call multiple times.
func (c *TestConfig) Cleanup() {
	if c.cleanedUp {
		return
	}
	c.cleanedUp = true
	if c.server != nil && c.server.Process != nil {
		_ = c.server.Process.Signal(os.Interrupt)
		_ = c.server.Wait()
	}
}

// waitForReady polls the target URL until it returns HTTP 200, timeout occurs, or context is cancelled
func (c *TestConfig) waitForReady(ctx context.Context, targetURL string) error {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	fmt.Printf("Waiting for %s to be ready (timeout: %v)\n", targetURL, c.Timeout)
	attempt := 0
	var lastErr error
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return fmt.Errorf("cancelled waiting for %s", targetURL)
			}
			return fmt.Errorf("timeout waiting for %s to be ready (last error: %v)", targetURL, lastErr)
		case <-ticker.C:
			attempt++
			resp, err := http.Get(targetURL)
			if err != nil {
				lastErr = err
				fmt.Printf("Health check attempt %d failed: %v\n", attempt, err)
				continue
			}
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				fmt.Printf("Health check succeeded after %d attempts\n", attempt)
				return nil
			}
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			fmt.Printf("Health check attempt %d: status=%d\n", attempt, resp.StatusCode)
		}
	}
}

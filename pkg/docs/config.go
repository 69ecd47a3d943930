package docs

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/blang/semver/v4"
)

// ToolNameWildcard is the placeholder the detail route must contain.
const ToolNameWildcard = "{tool_name}"

// Link is an external documentation link shown on the docs page.
type Link struct {
	Text string `toml:"text" json:"text"`
	URL  string `toml:"url" json:"url"`
}

// Server is an entry of the OpenAPI servers list.
type Server struct {
	URL         string `toml:"url" json:"url"`
	Description string `toml:"description,omitempty" json:"description,omitempty"`
}

// Config holds the documentation settings. None of it affects extraction
// except Verbose, which silences the extractor's diagnostics.
type Config struct {
	// Title is the page heading and the OpenAPI info title.
	Title string `toml:"title,omitempty"`

	// Version is the documented API version. It must be a semantic version.
	Version string `toml:"version,omitempty"`

	Description string `toml:"description,omitempty"`

	// BaseURL is where the server is reachable. It is displayed on the docs
	// page and used in the setup summary; the page itself fetches routes
	// relative to the host serving it.
	BaseURL string `toml:"base_url,omitempty"`

	DocsLinks []Link `toml:"docs_links,omitempty"`

	// Routes. APIToolDetailRoute must contain {tool_name}.
	APIToolsRoute      string `toml:"api_tools_route,omitempty"`
	APIToolDetailRoute string `toml:"api_tool_detail_route,omitempty"`
	OpenAPIRoute       string `toml:"openapi_route,omitempty"`
	DocsUIRoute        string `toml:"docs_ui_route,omitempty"`

	OpenAPIVersion string   `toml:"openapi_version,omitempty"`
	OpenAPIServers []Server `toml:"openapi_servers,omitempty"`

	// PageTitleEmoji is shown before the title in the page heading.
	PageTitleEmoji string `toml:"page_title_emoji,omitempty"`

	// FaviconURL replaces the built-in favicon. When set, /favicon.svg is not
	// served.
	FaviconURL string `toml:"favicon_url,omitempty"`

	// EnableCORS adds permissive CORS headers to the OpenAPI route.
	EnableCORS bool `toml:"enable_cors"`

	// Verbose enables extraction diagnostics.
	Verbose bool `toml:"verbose"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Title:              "MCP Tools Documentation",
		Version:            "1.0.0",
		Description:        "Auto-generated API documentation for MCP Server tools",
		BaseURL:            "http://localhost:8000",
		APIToolsRoute:      "/api/tools",
		APIToolDetailRoute: "/api/tools/" + ToolNameWildcard,
		OpenAPIRoute:       "/openapi.json",
		DocsUIRoute:        "/docs",
		OpenAPIVersion:     "3.1.0",
		OpenAPIServers: []Server{
			{URL: "http://localhost:8000", Description: "MCP Server"},
		},
		EnableCORS: true,
		Verbose:    true,
	}
}

// LoadConfig reads a TOML file over the defaults. An empty path returns the
// defaults. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	// toml decodes arrays of tables into existing elements, so list defaults
	// are only restored when the file leaves them out.
	defaultServers := cfg.OpenAPIServers
	cfg.OpenAPIServers = nil

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if !md.IsDefined("openapi_servers") {
		cfg.OpenAPIServers = defaultServers
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Config{}, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	if _, err := semver.ParseTolerant(c.Version); err != nil {
		return fmt.Errorf("invalid version %q: %w", c.Version, err)
	}

	routes := []struct {
		name  string
		value string
	}{
		{"api_tools_route", c.APIToolsRoute},
		{"api_tool_detail_route", c.APIToolDetailRoute},
		{"openapi_route", c.OpenAPIRoute},
		{"docs_ui_route", c.DocsUIRoute},
	}
	seen := make(map[string]string, len(routes))
	for _, route := range routes {
		if !strings.HasPrefix(route.value, "/") {
			return fmt.Errorf("%s must start with '/', got %q", route.name, route.value)
		}
		if other, ok := seen[route.value]; ok {
			return fmt.Errorf("%s and %s both use %q", other, route.name, route.value)
		}
		seen[route.value] = route.name
	}
	if strings.Count(c.APIToolDetailRoute, ToolNameWildcard) != 1 {
		return fmt.Errorf("api_tool_detail_route must contain %s exactly once, got %q", ToolNameWildcard, c.APIToolDetailRoute)
	}
	// the wildcard has to fill a whole path segment
	before, after, _ := strings.Cut(c.APIToolDetailRoute, ToolNameWildcard)
	if !strings.HasSuffix(before, "/") || (after != "" && !strings.HasPrefix(after, "/")) {
		return fmt.Errorf("%s must be a complete path segment in api_tool_detail_route, got %q", ToolNameWildcard, c.APIToolDetailRoute)
	}

	if c.BaseURL != "" {
		if _, err := url.Parse(c.BaseURL); err != nil {
			return fmt.Errorf("invalid base_url: %w", err)
		}
	}
	for i, server := range c.OpenAPIServers {
		if server.URL == "" {
			return fmt.Errorf("openapi_servers[%d] has no url", i)
		}
	}
	for i, link := range c.DocsLinks {
		if link.Text == "" || link.URL == "" {
			return fmt.Errorf("docs_links[%d] needs both text and url", i)
		}
	}

	return nil
}

// detailPath returns the detail route with the wildcard replaced by name.
func (c *Config) detailPath(name string) string {
	return strings.Replace(c.APIToolDetailRoute, ToolNameWildcard, name, 1)
}

func (c *Config) pageTitle() string {
	if c.PageTitleEmoji == "" {
		return c.Title
	}
	return c.PageTitleEmoji + " " + c.Title
}

func (c *Config) faviconHref() string {
	if c.FaviconURL != "" {
		return c.FaviconURL
	}
	return faviconRoute
}

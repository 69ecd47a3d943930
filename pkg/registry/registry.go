// Package registry adapts MCP host implementations to extractor.Registry.
//
// Three hosts are supported: an in-process mark3labs/mcp-go server, a remote
// server reached through a modelcontextprotocol/go-sdk client session, and
// kubernetes-mcp-server toolsets. Hosts that cannot express tags or an
// underlying handler signature natively can be given them through Options.
package registry

import (
	"encoding/json"
	"errors"
	"slices"
)

// ErrToolNotFound is returned by GetTool for names the host does not know.
var ErrToolNotFound = errors.New("tool not found")

// hints carries metadata supplied next to the host rather than by it.
type hints struct {
	tags  map[string][]string
	funcs map[string]any
}

func newHints(opts []Option) hints {
	h := hints{
		tags:  make(map[string][]string),
		funcs: make(map[string]any),
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// Option attaches extra metadata to the tools of a registry.
type Option func(*hints)

// WithTags sets the tags reported for the named tool, replacing any tags
// the host declares.
func WithTags(name string, tags ...string) Option {
	return func(h *hints) {
		h.tags[name] = slices.Clone(tags)
	}
}

// WithFunc sets the underlying callable of the named tool. It is only used
// when the host declares no input schema for the tool.
func WithFunc(name string, fn any) Option {
	return func(h *hints) {
		if fn != nil {
			h.funcs[name] = fn
		}
	}
}

// metaTags reads tags from a tool's _meta object. Both the flat form
// {"tags": [...]} and the FastMCP form {"_fastmcp": {"tags": [...]}} are
// understood.
func metaTags(meta map[string]json.RawMessage) []string {
	if len(meta) == 0 {
		return nil
	}

	var tags []string
	if raw, ok := meta["tags"]; ok && json.Unmarshal(raw, &tags) == nil && len(tags) > 0 {
		return tags
	}

	var fastmcp struct {
		Tags []string `json:"tags"`
	}
	if raw, ok := meta["_fastmcp"]; ok && json.Unmarshal(raw, &fastmcp) == nil {
		return fastmcp.Tags
	}
	return nil
}

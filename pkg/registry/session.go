package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rhobs/mcp-docs/pkg/extractor"
)

const (
	clientName    = "mcp-docs"
	clientVersion = "1.0.0"
)

// SessionRegistry exposes the tools of a remote MCP server reached through a
// go-sdk client session. The tool list is fetched once, on the first call
// that needs it, and reused for later lookups.
type SessionRegistry struct {
	session *mcp.ClientSession
	hints   hints

	mu   sync.Mutex
	list *toolList
}

var _ extractor.Registry = (*SessionRegistry)(nil)

// NewSessionRegistry wraps an established client session.
func NewSessionRegistry(session *mcp.ClientSession, opts ...Option) *SessionRegistry {
	return &SessionRegistry{
		session: session,
		hints:   newHints(opts),
	}
}

// Connect opens a client session over transport.
func Connect(ctx context.Context, transport mcp.Transport) (*mcp.ClientSession, error) {
	client := mcp.NewClient(&mcp.Implementation{Name: clientName, Version: clientVersion}, nil)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MCP server: %w", err)
	}
	return session, nil
}

// ConnectEndpoint opens a session to a streamable HTTP endpoint.
func ConnectEndpoint(ctx context.Context, endpoint string) (*mcp.ClientSession, error) {
	return Connect(ctx, &mcp.StreamableClientTransport{Endpoint: endpoint})
}

// ConnectCommand starts name with args and opens a session over its stdio.
func ConnectCommand(ctx context.Context, name string, args ...string) (*mcp.ClientSession, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return Connect(ctx, &mcp.CommandTransport{Command: cmd})
}

// ListToolNames returns the tool names in the order the server lists them.
func (r *SessionRegistry) ListToolNames(ctx context.Context) ([]string, error) {
	if err := r.load(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.list.names...), nil
}

// GetTool returns the descriptor of the named tool.
func (r *SessionRegistry) GetTool(ctx context.Context, name string) (extractor.Descriptor, error) {
	if err := r.load(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.list.failed[name]; err != nil {
		return nil, err
	}
	tool, ok := r.list.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	descriptor := *tool
	if tags := r.hints.tags[name]; len(tags) > 0 {
		descriptor.tags = tags
	}
	descriptor.fn = r.hints.funcs[name]
	return &descriptor, nil
}

func (r *SessionRegistry) load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.list != nil {
		return nil
	}
	if r.session == nil {
		return fmt.Errorf("no MCP client session configured")
	}

	list := newToolList()
	params := &mcp.ListToolsParams{}
	for {
		res, err := r.session.ListTools(ctx, params)
		if err != nil {
			return fmt.Errorf("failed to list tools: %w", err)
		}
		for _, t := range res.Tools {
			list.add(t)
		}
		if res.NextCursor == "" {
			break
		}
		params = &mcp.ListToolsParams{Cursor: res.NextCursor}
	}

	r.list = list
	return nil
}

// toolList holds one tools/list result. A tool that cannot be decoded keeps
// its place in names and reports its error on lookup.
type toolList struct {
	names  []string
	tools  map[string]*wireTool
	failed map[string]error
}

func newToolList() *toolList {
	return &toolList{
		names:  []string{},
		tools:  make(map[string]*wireTool),
		failed: make(map[string]error),
	}
}

func (l *toolList) add(t *mcp.Tool) {
	if _, seen := l.tools[t.Name]; seen {
		return
	}
	if _, seen := l.failed[t.Name]; seen {
		return
	}
	l.names = append(l.names, t.Name)

	tool, err := decodeTool(t)
	if err != nil {
		slog.Warn("Failed to decode listed tool", "tool", t.Name, "error", err)
		l.failed[t.Name] = fmt.Errorf("tool %s: %w", t.Name, err)
		return
	}
	l.tools[t.Name] = tool
}

// wireTool is a tool as it appears in a tools/list response.
type wireTool struct {
	Name        string          `json:"name"`
	Title       string          `json:"title,omitempty"`
	Summary     string          `json:"description,omitempty"`
	Schema      json.RawMessage `json:"inputSchema,omitempty"`
	Annotated   *struct {
		Title string `json:"title,omitempty"`
	} `json:"annotations,omitempty"`
	Meta map[string]json.RawMessage `json:"_meta,omitempty"`

	tags []string
	fn   any
}

var (
	_ extractor.Describer           = (*wireTool)(nil)
	_ extractor.Tagger              = (*wireTool)(nil)
	_ extractor.Annotated           = (*wireTool)(nil)
	_ extractor.InputSchemaProvider = (*wireTool)(nil)
	_ extractor.FnProvider          = (*wireTool)(nil)
)

func decodeTool(t *mcp.Tool) (*wireTool, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool: %w", err)
	}
	var tool wireTool
	if err := json.Unmarshal(data, &tool); err != nil {
		return nil, fmt.Errorf("failed to decode tool: %w", err)
	}
	tool.tags = metaTags(tool.Meta)
	return &tool, nil
}

func (t *wireTool) Description() string {
	return t.Summary
}

func (t *wireTool) Tags() []string {
	return t.tags
}

// Annotations prefers the annotation title and falls back to the tool's
// top-level title.
func (t *wireTool) Annotations() *extractor.Annotations {
	if t.Annotated != nil && t.Annotated.Title != "" {
		return &extractor.Annotations{Title: t.Annotated.Title}
	}
	if t.Title != "" {
		return &extractor.Annotations{Title: t.Title}
	}
	return nil
}

func (t *wireTool) InputSchema() (*extractor.InputSchema, error) {
	if len(t.Schema) == 0 {
		return nil, nil
	}
	schema, err := extractor.ParseInputSchema(t.Schema)
	if err != nil {
		return nil, err
	}
	if schema.Len() == 0 {
		return nil, nil
	}
	return schema, nil
}

func (t *wireTool) Fn() any {
	return t.fn
}

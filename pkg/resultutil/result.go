package resultutil

import (
	"encoding/json"
	"fmt"

	"github.com/containers/kubernetes-mcp-server/pkg/api"
	"github.com/mark3labs/mcp-go/mcp"
)

// Result is the outcome of a tool call, convertible to the result types of
// both the MCP server and the toolset host.
type Result struct {
	// Data holds structured output, nil for plain text results
	Data any
	// Text is the text content: the JSON encoding of Data or a plain message
	Text  string
	Error error
}

// NewTextResult creates a successful result carrying a plain message.
func NewTextResult(text string) *Result {
	return &Result{Text: text}
}

// NewSuccessResult creates a successful result with structured data. If the
// data cannot be marshaled an error result is returned instead.
func NewSuccessResult(data any) *Result {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return &Result{
			Error: fmt.Errorf("failed to marshal result: %w", err),
		}
	}

	return &Result{
		Data: data,
		Text: string(jsonBytes),
	}
}

// NewErrorResult creates an error result with the given error.
func NewErrorResult(err error) *Result {
	return &Result{
		Error: err,
	}
}

// ToMCPResult converts the Result to an MCP CallToolResult. Errors are
// encoded in the result, never in the returned error.
func (r *Result) ToMCPResult() (*mcp.CallToolResult, error) {
	switch {
	case r.Error != nil:
		//nolint:nilerr // MCP pattern encodes errors in result, not error return
		return mcp.NewToolResultError(r.Error.Error()), nil
	case r.Data == nil:
		return mcp.NewToolResultText(r.Text), nil
	default:
		return mcp.NewToolResultStructured(r.Data, r.Text), nil
	}
}

// ToToolsetResult converts the Result to a toolset ToolCallResult.
func (r *Result) ToToolsetResult() (*api.ToolCallResult, error) {
	if r.Error != nil {
		//nolint:nilerr // Toolset pattern encodes errors in result, not error return
		return api.NewToolCallResult("", r.Error), nil
	}
	return api.NewToolCallResult(r.Text, nil), nil
}

// IsError returns true if the result represents an error.
func (r *Result) IsError() bool {
	return r.Error != nil
}

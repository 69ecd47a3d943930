package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rhobs/mcp-docs/pkg/tools"
)

// HelloWorldHandler handles the hello_world tool.
func HelloWorldHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return tools.HelloWorldHandler(ctx, tools.BuildHelloWorldInput(req.GetArguments())).ToMCPResult()
}

// AddNumbersHandler handles the add_numbers tool.
func AddNumbersHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := tools.BuildMathInput(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return tools.AddNumbersHandler(ctx, input).ToMCPResult()
}

// MultiplyNumbersHandler handles the multiply_numbers tool.
func MultiplyNumbersHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := tools.BuildMathInput(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return tools.MultiplyNumbersHandler(ctx, input).ToMCPResult()
}

// GetWeatherHandler handles the get_weather tool.
func GetWeatherHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return tools.GetWeatherHandler(ctx, tools.BuildWeatherInput(req.GetArguments())).ToMCPResult()
}

// handlers maps each tool name to its mcp-go handler.
var handlers = map[string]server.ToolHandlerFunc{
	tools.HelloWorld.Name:      HelloWorldHandler,
	tools.AddNumbers.Name:      AddNumbersHandler,
	tools.MultiplyNumbers.Name: MultiplyNumbersHandler,
	tools.GetWeather.Name:      GetWeatherHandler,
}

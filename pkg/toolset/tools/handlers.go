package tools

import (
	"github.com/containers/kubernetes-mcp-server/pkg/api"

	"github.com/rhobs/mcp-docs/pkg/tools"
)

// HelloWorldHandler handles the hello_world tool.
func HelloWorldHandler(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	return tools.HelloWorldHandler(params.Context, tools.BuildHelloWorldInput(params.GetArguments())).ToToolsetResult()
}

// AddNumbersHandler handles the add_numbers tool.
func AddNumbersHandler(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	input, err := tools.BuildMathInput(params.GetArguments())
	if err != nil {
		return api.NewToolCallResult("", err), nil
	}
	return tools.AddNumbersHandler(params.Context, input).ToToolsetResult()
}

// MultiplyNumbersHandler handles the multiply_numbers tool.
func MultiplyNumbersHandler(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	input, err := tools.BuildMathInput(params.GetArguments())
	if err != nil {
		return api.NewToolCallResult("", err), nil
	}
	return tools.MultiplyNumbersHandler(params.Context, input).ToToolsetResult()
}

// GetWeatherHandler handles the get_weather tool.
func GetWeatherHandler(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	return tools.GetWeatherHandler(params.Context, tools.BuildWeatherInput(params.GetArguments())).ToToolsetResult()
}

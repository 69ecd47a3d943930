package tools

import (
	"github.com/containers/kubernetes-mcp-server/pkg/api"

	"github.com/rhobs/mcp-docs/pkg/tools"
)

// InitHelloWorld creates the hello_world tool.
func InitHelloWorld() []api.ServerTool {
	return []api.ServerTool{
		tools.HelloWorld.ToServerTool(HelloWorldHandler),
	}
}

// InitAddNumbers creates the add_numbers tool.
func InitAddNumbers() []api.ServerTool {
	return []api.ServerTool{
		tools.AddNumbers.ToServerTool(AddNumbersHandler),
	}
}

// InitMultiplyNumbers creates the multiply_numbers tool.
func InitMultiplyNumbers() []api.ServerTool {
	return []api.ServerTool{
		tools.MultiplyNumbers.ToServerTool(MultiplyNumbersHandler),
	}
}

// InitGetWeather creates the get_weather tool.
func InitGetWeather() []api.ServerTool {
	return []api.ServerTool{
		tools.GetWeather.ToServerTool(GetWeatherHandler),
	}
}

package tools

// All tool definitions as a single source of truth
var (
	// HelloWorld declares no parameters; its documentation comes from the
	// signature of HelloWorldHandler.
	HelloWorld = ToolDef{
		Name:        "hello_world",
		Description: "Say hello to someone\n\nArgs:\n    name: Name of the person to greet",
		Tags:        []string{"greetings"},
		Func:        HelloWorldHandler,
		ReadOnly:    true,
		Idempotent:  true,
	}

	AddNumbers = ToolDef{
		Name:        "add_numbers",
		Description: "Add two numbers together\n\nThis tool takes two numbers and returns their sum.",
		Title:       "Add Two Numbers",
		Tags:        []string{"math"},
		Params:      mathParams,
		ReadOnly:    true,
		Idempotent:  true,
	}

	MultiplyNumbers = ToolDef{
		Name:        "multiply_numbers",
		Description: "Multiply two numbers together\n\nThis tool takes two numbers and returns their product.",
		Title:       "Multiply Two Numbers",
		Tags:        []string{"math"},
		Params:      mathParams,
		ReadOnly:    true,
		Idempotent:  true,
	}

	GetWeather = ToolDef{
		Name:        "get_weather",
		Description: "Get weather for a city\n\nThis is a demo tool that returns mock weather data.",
		Title:       "Get Weather",
		Tags:        []string{"weather"},
		ReadOnly:    true,
		Idempotent:  true,
		OpenWorld:   true,
		Params: []ParamDef{
			{
				Name:        "city",
				Type:        ParamTypeString,
				Description: "City name",
				Required:    true,
			},
			{
				Name:        "units",
				Type:        ParamTypeString,
				Description: "Temperature units (celsius or fahrenheit)",
				Pattern:     "^(celsius|fahrenheit)$",
				Default:     "celsius",
			},
		},
	}

	mathParams = []ParamDef{
		{
			Name:        "a",
			Type:        ParamTypeNumber,
			Description: "First number",
			Required:    true,
		},
		{
			Name:        "b",
			Type:        ParamTypeNumber,
			Description: "Second number",
			Required:    true,
		},
	}
)

// AllTools returns all tool definitions
func AllTools() []ToolDef {
	return []ToolDef{
		HelloWorld,
		AddNumbers,
		MultiplyNumbers,
		GetWeather,
	}
}

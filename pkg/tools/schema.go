package tools

// HelloWorldInput defines the input of the hello_world tool.
type HelloWorldInput struct {
	Name string `json:"name,omitempty" jsonschema:"description=Name of the person to greet,default=World"`
}

// MathInput defines the input shared by the arithmetic tools.
type MathInput struct {
	A float64 `json:"a" jsonschema:"description=First number"`
	B float64 `json:"b" jsonschema:"description=Second number"`
}

// WeatherInput defines the input of the get_weather tool.
type WeatherInput struct {
	City  string `json:"city" jsonschema:"description=City name"`
	Units string `json:"units,omitempty" jsonschema:"description=Temperature units (celsius or fahrenheit),default=celsius"`
}

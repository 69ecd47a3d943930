package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rhobs/mcp-docs/pkg/resultutil"
)

// GetString is a helper to extract a string parameter with a default value
func GetString(params map[string]any, key, defaultValue string) string {
	if val, ok := params[key]; ok {
		if str, ok := val.(string); ok && str != "" {
			return str
		}
	}
	return defaultValue
}

// GetFloat is a helper to extract a numeric parameter. JSON numbers decode
// as float64; numeric strings are accepted too.
func GetFloat(params map[string]any, key string) (float64, error) {
	val, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s parameter is required", key)
	}
	switch v := val.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%s parameter must be a number: %w", key, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%s parameter must be a number, got %T", key, val)
	}
}

func BuildHelloWorldInput(args map[string]any) HelloWorldInput {
	return HelloWorldInput{
		Name: GetString(args, "name", ""),
	}
}

func BuildMathInput(args map[string]any) (MathInput, error) {
	a, err := GetFloat(args, "a")
	if err != nil {
		return MathInput{}, err
	}
	b, err := GetFloat(args, "b")
	if err != nil {
		return MathInput{}, err
	}
	return MathInput{A: a, B: b}, nil
}

func BuildWeatherInput(args map[string]any) WeatherInput {
	return WeatherInput{
		City:  GetString(args, "city", ""),
		Units: GetString(args, "units", ""),
	}
}

// HelloWorldHandler greets the named person.
func HelloWorldHandler(_ context.Context, input HelloWorldInput) *resultutil.Result {
	name := input.Name
	if name == "" {
		name = "World"
	}
	slog.Debug("HelloWorldHandler called", "name", name)
	return resultutil.NewTextResult(fmt.Sprintf("Hello, %s!", name))
}

// AddNumbersHandler returns the sum of both numbers.
func AddNumbersHandler(_ context.Context, input MathInput) *resultutil.Result {
	slog.Debug("AddNumbersHandler called", "input", input)
	return resultutil.NewTextResult(fmt.Sprintf("%s + %s = %s",
		formatNumber(input.A), formatNumber(input.B), formatNumber(input.A+input.B)))
}

// MultiplyNumbersHandler returns the product of both numbers.
func MultiplyNumbersHandler(_ context.Context, input MathInput) *resultutil.Result {
	slog.Debug("MultiplyNumbersHandler called", "input", input)
	return resultutil.NewTextResult(fmt.Sprintf("%s × %s = %s",
		formatNumber(input.A), formatNumber(input.B), formatNumber(input.A*input.B)))
}

// GetWeatherHandler returns mock weather data for a city.
func GetWeatherHandler(_ context.Context, input WeatherInput) *resultutil.Result {
	slog.Debug("GetWeatherHandler called", "input", input)

	if input.City == "" {
		return resultutil.NewErrorResult(fmt.Errorf("city parameter is required and must be a string"))
	}

	var unit string
	switch strings.ToLower(input.Units) {
	case "", "celsius":
		unit = "C"
	case "fahrenheit":
		unit = "F"
	default:
		return resultutil.NewErrorResult(fmt.Errorf("unsupported units %q, expected celsius or fahrenheit", input.Units))
	}

	return resultutil.NewTextResult(fmt.Sprintf("Weather in %s: 72°%s, Sunny", input.City, unit))
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

package tools

import (
	"context"
	"fmt"
	"strings"
)

// WeatherTool returns hard-coded weather for a few cities
type WeatherTool struct{}

func (w *WeatherTool) Name() string {
	return "get_current_weather"
}

func (w *WeatherTool) Description() string {
	return "Get the current weather in a given location. Note: any US cities have temperatures in Fahrenheit"
}

func (w *WeatherTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"location": map[string]interface{}{
			"type":        "string",
			"description": "The city and state, e.g. San Francisco, CA",
		},
		"unit": map[string]interface{}{
			"type":        "string",
			"description": "Unit of Measurement (Celsius or Fahrenheit) for the temperature based on the location",
			"enum":        []string{"celsius", "fahrenheit"},
		},
	}
}

func (w *WeatherTool) RequiredParameters() []string {
	return []string{"location"}
}

func (w *WeatherTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	location, ok := args["location"].(string)
	if !ok {
		return "", fmt.Errorf("location parameter must be a string")
	}

	unit := "fahrenheit"
	if u, exists := args["unit"]; exists {
		if unitStr, ok := u.(string); ok && unitStr != "" {
			unit = unitStr
		}
	}

	return CurrentWeather(location, unit), nil
}

// CurrentWeather is the lookup behind get_current_weather.
func CurrentWeather(location, unit string) string {
	lower := strings.ToLower(location)
	switch {
	case strings.Contains(lower, "tokyo"):
		return dumps("location", "Tokyo", "temperature", "10", "unit", unit)
	case strings.Contains(lower, "san francisco"):
		return dumps("location", "San Francisco", "temperature", "72", "unit", unit)
	case strings.Contains(lower, "paris"):
		return dumps("location", "Paris", "temperature", "22", "unit", unit)
	}
	return dumps("location", location, "temperature", "unknown")
}

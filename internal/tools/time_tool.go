package tools

import (
	"context"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

const unknownTimezone = "Sorry, I couldn't find the timezone for that location."

// CurrentTimeTool returns the wall-clock time in an IANA timezone
type CurrentTimeTool struct {
	now func() time.Time
}

func NewCurrentTimeTool(now func() time.Time) *CurrentTimeTool {
	if now == nil {
		now = time.Now
	}
	return &CurrentTimeTool{now: now}
}

func (c *CurrentTimeTool) Name() string {
	return "get_current_time"
}

func (c *CurrentTimeTool) Description() string {
	return "Get the current time in a given location"
}

func (c *CurrentTimeTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"location": map[string]interface{}{
			"type":        "string",
			"description": "The location name as an IANA timezone. Location names should be in a format like America/New_York, Asia/Bangkok, Europe/London",
		},
	}
}

func (c *CurrentTimeTool) RequiredParameters() []string {
	return []string{"location"}
}

func (c *CurrentTimeTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	location, ok := args["location"].(string)
	if !ok {
		return "", fmt.Errorf("location parameter must be a string")
	}

	// LoadLocation accepts "" and "Local" as aliases for the host zone.
	location = strings.TrimSpace(location)
	if location == "" || location == "Local" {
		return unknownTimezone, nil
	}
	zone, err := time.LoadLocation(location)
	if err != nil {
		return unknownTimezone, nil
	}

	return c.now().In(zone).Format("03:04:05 PM"), nil
}

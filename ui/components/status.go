package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriFunc/internal/models"
	"github.com/Rorical/RoriFunc/ui/styles"
)

// StatusBar is the content of the bottom line: the chat state on the left,
// the active profile and the tool calls made so far on the right.
type StatusBar struct {
	Status      string
	Label       string
	Loading     bool
	LoadingDots int
	ToolCalls   int
}

func RenderStatus(bar StatusBar, width int) string {
	left := bar.Status
	if bar.Loading {
		left += strings.Repeat(".", bar.LoadingDots)
	}

	var right []string
	if bar.Label != "" {
		right = append(right, bar.Label)
	}
	switch {
	case bar.ToolCalls == 1:
		right = append(right, "1 tool call")
	case bar.ToolCalls > 1:
		right = append(right, fmt.Sprintf("%d tool calls", bar.ToolCalls))
	}

	content := left
	if len(right) > 0 {
		info := strings.Join(right, " · ")
		// Padding takes one column on each side. The right side is dropped
		// when it does not fit.
		if gap := width - 2 - lipgloss.Width(left) - lipgloss.Width(info); gap > 0 {
			content = left + strings.Repeat(" ", gap) + info
		}
	}

	return styles.StatusStyle(width).Render(content)
}

// CountToolCalls counts the tool call rows in messages.
func CountToolCalls(messages []models.Message) int {
	n := 0
	for _, m := range messages {
		if m.Type == models.ToolCall {
			n++
		}
	}
	return n
}

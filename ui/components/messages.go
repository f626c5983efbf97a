package components

import (
	"strings"

	"github.com/Rorical/RoriFunc/internal/models"
	"github.com/Rorical/RoriFunc/ui/styles"
)

func RenderMessages(messages []models.Message, width int) string {
	var b strings.Builder

	systemStyle := styles.SystemStyle()
	userStyle := styles.UserStyle().MaxWidth(width)
	assistantStyle := styles.AssistantStyle().MaxWidth(width)
	programStyle := styles.ProgramStyle().Width(width)
	toolCallStyle := styles.ToolCallStyle()
	toolResultStyle := styles.ToolResultStyle()

	for _, msg := range messages {
		switch msg.Type {
		case models.System:
			b.WriteString(systemStyle.Render(msg.Content) + "\n\n")
		case models.User:
			b.WriteString(userStyle.Render("You: "+msg.Content) + "\n\n")
		case models.Assistant:
			b.WriteString(assistantStyle.Render("Assistant: "+RenderMarkdown(msg.Content)) + "\n\n")
		case models.Program:
			b.WriteString(programStyle.Render(msg.Content) + "\n\n")
		case models.ToolCall:
			b.WriteString(toolCallStyle.Render("→ "+msg.ToolName+"("+msg.Content+")") + "\n")
		case models.ToolResult:
			b.WriteString(toolResultStyle.Render("← "+msg.ToolName+": "+msg.Content) + "\n\n")
		}
	}

	return b.String()
}

// RenderStreaming shows the assistant text of the round still running.
func RenderStreaming(text string, width int) string {
	return styles.AssistantStyle().MaxWidth(width).Render("Assistant: "+text) + "\n\n"
}

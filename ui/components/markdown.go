package components

import (
	"strings"

	"github.com/Rorical/RoriFunc/ui/styles"
)

// RenderMarkdown styles the small markdown subset models tend to answer
// with: headings, bullets, fenced code, **bold** and `code` spans.
func RenderMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	inFence := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			out = append(out, styles.CodeStyle().Render(line))
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "#"):
			heading := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			out = append(out, styles.HeadingStyle().Render(heading))
		case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
			indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
			out = append(out, indent+"• "+renderInline(trimmed[2:]))
		default:
			out = append(out, renderInline(line))
		}
	}
	return strings.Join(out, "\n")
}

// renderInline styles **bold** and `code` spans. Unclosed markers are kept.
func renderInline(line string) string {
	line = renderSpans(line, "**", styles.BoldStyle().Render)
	return renderSpans(line, "`", styles.CodeStyle().Render)
}

func renderSpans(line, marker string, render func(...string) string) string {
	var b strings.Builder
	for {
		start := strings.Index(line, marker)
		if start < 0 {
			break
		}
		end := strings.Index(line[start+len(marker):], marker)
		if end < 0 {
			break
		}
		end += start + len(marker)
		b.WriteString(line[:start])
		b.WriteString(render(line[start+len(marker) : end]))
		line = line[end+len(marker):]
	}
	b.WriteString(line)
	return b.String()
}

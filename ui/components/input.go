package components

import (
	"github.com/Rorical/RoriFunc/ui/styles"
)

func RenderInput(input string, loading bool, width int) string {
	if loading {
		return styles.BusyInputStyle(width).Render(input)
	}
	return styles.InputStyle(width).Render(input + "█")
}

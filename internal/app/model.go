package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriFunc/internal/eventbus"
	"github.com/Rorical/RoriFunc/internal/models"
	"github.com/Rorical/RoriFunc/ui/components"
)

type AppModel struct {
	appModel models.AppModel
	bus      *eventbus.EventBus
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		TickCmd(),
		ListenForCoreEvents(m.bus),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Core events re-arm the listener
	if coreEvent, ok := msg.(CoreEventMsg); ok {
		cmd := HandleCoreEvent(&m.appModel, coreEvent)
		return m, tea.Batch(cmd, ListenForCoreEvents(m.bus))
	}

	cmd := HandleUpdate(&m.appModel, msg, m.bus)
	return m, cmd
}

func (m *AppModel) View() string {
	var b strings.Builder

	b.WriteString(components.RenderMessages(m.appModel.Messages, m.appModel.Width))
	if m.appModel.Streaming != "" {
		b.WriteString(components.RenderStreaming(m.appModel.Streaming, m.appModel.Width))
	}
	b.WriteString(components.RenderInput(m.appModel.Input, m.appModel.Loading, m.appModel.Width))
	b.WriteString("\n")
	b.WriteString(components.RenderStatus(components.StatusBar{
		Status:      m.appModel.Status,
		Label:       m.appModel.Label,
		Loading:     m.appModel.Loading,
		LoadingDots: m.appModel.LoadingDots,
		ToolCalls:   components.CountToolCalls(m.appModel.Messages),
	}, m.appModel.Width))

	return b.String()
}

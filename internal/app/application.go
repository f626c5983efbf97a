package app

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriFunc/internal/core"
	"github.com/Rorical/RoriFunc/internal/eventbus"
	"github.com/Rorical/RoriFunc/internal/models"
)

// Application manages the complete application lifecycle
type Application struct {
	eventBus *eventbus.EventBus
	session  *Session
	model    *AppModel
}

// NewApplication wires a TUI chat over conv. label names the profile in the
// status bar; intro rows are shown above the conversation.
func NewApplication(svc *core.Service, conv *core.Conversation, ready bool, label string, intro ...models.Message) *Application {
	appModel := createInitialAppModel(ready)
	appModel.Label = label

	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		log.Printf("event bus: %v", e)
	})

	return &Application{
		eventBus: eb,
		session:  NewSession(svc, conv, eb, intro),
		model: &AppModel{
			appModel: appModel,
			bus:      eb,
		},
	}
}

func (app *Application) Start() error {
	app.session.Start()

	p := tea.NewProgram(app.model)
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.session.Stop()
	app.eventBus.Close()
}

func createInitialAppModel(ready bool) models.AppModel {
	status := "Ready"
	if !ready {
		status = "No model configured"
	}
	return models.AppModel{
		Messages:         make([]models.Message, 0),
		Status:           status,
		ChatServiceReady: ready,
		Width:            80,
	}
}

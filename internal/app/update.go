package app

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriFunc/internal/eventbus"
	"github.com/Rorical/RoriFunc/internal/models"
)

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// ListenForCoreEvents waits for the next event from the session.
func ListenForCoreEvents(eb *eventbus.EventBus) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-eb.CoreToUI()
		if !ok {
			return nil
		}
		return CoreEventMsg{Event: event}
	}
}

func HandleUpdate(appModel *models.AppModel, msg tea.Msg, eb *eventbus.EventBus) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsg(appModel, msg, eb)
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(appModel, msg)
		return nil
	case TickMsg:
		return HandleTickMsg(appModel)
	case CoreEventMsg:
		return HandleCoreEvent(appModel, msg)
	}
	return nil
}

// HandleKeyMsg edits the input line and submits it on enter.
func HandleKeyMsg(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return tea.Quit
	case tea.KeyEnter:
		input := strings.TrimSpace(appModel.Input)
		switch {
		case input == "":
			return nil
		case input == "exit":
			return tea.Quit
		case appModel.Loading:
			appModel.Status = "Still answering, please wait"
			return nil
		case !appModel.ChatServiceReady:
			appModel.Input = ""
			appModel.Status = "Chat service not available: configure a profile or API_HOST"
			return nil
		}
		if err := eb.SendToCore(eventbus.SendMessageEvent{Message: input}); err != nil {
			appModel.Status = "Error sending message: " + err.Error()
			return nil
		}
		appModel.Input = ""
	case tea.KeyBackspace:
		if runes := []rune(appModel.Input); len(runes) > 0 {
			appModel.Input = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		appModel.Input += " "
	case tea.KeyRunes:
		appModel.Input += string(keyMsg.Runes)
	}
	return nil
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		appModel.Messages = event.Messages
		appModel.Streaming = event.Streaming
		appModel.Loading = event.IsProcessing

		switch {
		case event.Error != nil:
			appModel.Status = "Error: " + event.Error.Error()
		case event.IsProcessing:
			appModel.Status = "Processing"
		default:
			appModel.Status = "Ready"
		}
	}
	return nil
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}

func HandleTickMsg(appModel *models.AppModel) tea.Cmd {
	// Only handle UI animations - loading dots
	if appModel.Loading {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	}
	return TickCmd()
}

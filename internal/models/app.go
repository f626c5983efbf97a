package models

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Messages         []Message // Current messages to display
	Streaming        string    // Assistant text still arriving
	Input            string    // User input field
	Status           string    // Status bar text
	Label            string    // Profile and model, right side of the status bar
	Loading          bool      // A turn is running
	LoadingDots      int       // Animation counter for loading dots
	Width            int       // Terminal width
	Height           int       // Terminal height
	ChatServiceReady bool      // Whether a model client is configured
}

package tools

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed data/conversation_history.json
var sampleHistory []byte

// HistorySource loads a stored conversation history document.
type HistorySource func() ([]byte, error)

// FileHistory reads the history from path, or the bundled sample when path is empty.
func FileHistory(path string) HistorySource {
	return func() ([]byte, error) {
		if path == "" {
			return sampleHistory, nil
		}
		return os.ReadFile(path)
	}
}

func loadHistory(source HistorySource) (string, error) {
	if source == nil {
		source = FileHistory("")
	}
	data, err := source()
	if err != nil {
		return "", fmt.Errorf("loading conversation history: %w", err)
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return "", fmt.Errorf("conversation history is not valid JSON: %w", err)
	}
	return compact.String(), nil
}

// SummarizeHistoryTool hands the stored history to the model for summarizing
type SummarizeHistoryTool struct {
	Source HistorySource
}

func (s *SummarizeHistoryTool) Name() string {
	return "summarize_conversation_history"
}

func (s *SummarizeHistoryTool) Description() string {
	return "Summarizes the conversation history."
}

func (s *SummarizeHistoryTool) Parameters() map[string]interface{} {
	return map[string]interface{}{}
}

func (s *SummarizeHistoryTool) RequiredParameters() []string {
	return nil
}

func (s *SummarizeHistoryTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	return loadHistory(s.Source)
}

// PromptSuggestionsTool hands the stored history to the model for suggestions
type PromptSuggestionsTool struct {
	Source HistorySource
}

func (p *PromptSuggestionsTool) Name() string {
	return "generate_prompt_suggestions"
}

func (p *PromptSuggestionsTool) Description() string {
	return "Provides prompt suggestions based on the conversation history."
}

func (p *PromptSuggestionsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{}
}

func (p *PromptSuggestionsTool) RequiredParameters() []string {
	return nil
}

func (p *PromptSuggestionsTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	return loadHistory(p.Source)
}

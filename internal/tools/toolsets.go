package tools

import "time"

// WeatherTools is the registry used by the weather chat examples.
func WeatherTools() (*Registry, error) {
	return NewRegistry(&WeatherTool{})
}

// CounterTools binds increment_question_counter to counter.
func CounterTools(counter *QuestionCounter) (*Registry, error) {
	return NewRegistry(NewCounterTool(counter))
}

// SequentialTools offers tools the model may chain across rounds.
func SequentialTools(now func() time.Time) (*Registry, error) {
	return NewRegistry(
		NewCurrentTimeTool(now),
		&StockMarketTool{},
		&CalculatorTool{},
	)
}

// HistoryTools serves the stored conversation history from source.
func HistoryTools(source HistorySource) (*Registry, error) {
	return NewRegistry(
		&SummarizeHistoryTool{Source: source},
		&PromptSuggestionsTool{Source: source},
	)
}

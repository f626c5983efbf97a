package tools

import (
	"context"
	"strconv"
	"sync"
)

// QuestionCounter counts the questions asked in one conversation.
type QuestionCounter struct {
	mu    sync.Mutex
	count int
}

func (q *QuestionCounter) Increment() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.count++
	return q.count
}

func (q *QuestionCounter) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// CounterTool exposes a QuestionCounter to the model
type CounterTool struct {
	counter *QuestionCounter
}

func NewCounterTool(counter *QuestionCounter) *CounterTool {
	return &CounterTool{counter: counter}
}

func (c *CounterTool) Name() string {
	return "increment_question_counter"
}

func (c *CounterTool) Description() string {
	return "This function increments the number of times a user has asked a question. It returns the current count for the question_counter."
}

func (c *CounterTool) Parameters() map[string]interface{} {
	return map[string]interface{}{}
}

func (c *CounterTool) RequiredParameters() []string {
	return nil
}

func (c *CounterTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	return strconv.Itoa(c.counter.Increment()), nil
}

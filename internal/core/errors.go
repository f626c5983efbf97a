package core

import (
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

var (
	ErrUnknownFunction    = errors.New("unknown function")
	ErrMalformedArguments = errors.New("malformed arguments")
	ErrInvalidArguments   = errors.New("invalid arguments")
	ErrContentFiltered    = errors.New("response stopped by content filter")
	ErrNoChoices          = errors.New("response has no choices")
	ErrNoClient           = errors.New("model client not configured")
)

// ToolCallError is a terminal failure of a turn caused by a tool call the
// model produced. It is reported, never retried.
type ToolCallError struct {
	Kind error
	Call openai.ToolCall
	Err  error
}

func (e *ToolCallError) Error() string {
	name := e.Call.Function.Name
	switch e.Kind {
	case ErrUnknownFunction:
		return "Function " + name + " does not exist"
	case ErrMalformedArguments:
		return fmt.Sprintf("Malformed arguments for function %s: %v", name, e.Err)
	case ErrInvalidArguments:
		return fmt.Sprintf("Invalid number of arguments for function: %s (%v)", name, e.Err)
	}
	return fmt.Sprintf("tool call %s failed: %v", name, e.Err)
}

func (e *ToolCallError) Is(target error) bool {
	return target == e.Kind
}

func (e *ToolCallError) Unwrap() error {
	return e.Err
}

// IsTurnFailure reports whether err ends only the current turn, as opposed to
// a transport or tool failure the caller should stop on.
func IsTurnFailure(err error) bool {
	var callErr *ToolCallError
	return errors.As(err, &callErr)
}

// Package structured decodes model output against a declared JSON schema.
package structured

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

// Result holds either a decoded value or the reason decoding failed.
type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}

func (r Result[T]) Unwrap() (T, error) {
	return r.Value, r.Err
}

func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// ValidationError lists the schema violations of a model reply.
type ValidationError struct {
	Format   string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("output does not match %s: %s", e.Format, strings.Join(e.Problems, "; "))
}

// DecodeError wraps a reply that is not JSON or does not fit the Go type.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Format describes the shape a reply must take and how to decode it into T.
type Format[T any] struct {
	name        string
	description string
	definition  *jsonschema.Definition
	raw         []byte
	schema      *gojsonschema.Schema
}

// NewFormat derives the JSON schema of T from its struct tags.
func NewFormat[T any](name, description string) (*Format[T], error) {
	var zero T
	definition, err := jsonschema.GenerateSchemaForType(zero)
	if err != nil {
		return nil, fmt.Errorf("generating schema for %s: %w", name, err)
	}
	raw, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("encoding schema for %s: %w", name, err)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compiling schema for %s: %w", name, err)
	}
	return &Format[T]{
		name:        name,
		description: description,
		definition:  definition,
		raw:         raw,
		schema:      schema,
	}, nil
}

func (f *Format[T]) Name() string {
	return f.name
}

// Schema returns the JSON schema document.
func (f *Format[T]) Schema() []byte {
	return f.raw
}

// ResponseFormat asks the model for output matching the schema.
func (f *Format[T]) ResponseFormat() *openai.ChatCompletionResponseFormat {
	return &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:        f.name,
			Description: f.description,
			Schema:      f.definition,
		},
	}
}

// Decode validates content against the schema and decodes it into T.
func (f *Format[T]) Decode(content string) Result[T] {
	result, err := f.schema.Validate(gojsonschema.NewStringLoader(content))
	if err != nil {
		return Fail[T](&DecodeError{Format: f.name, Err: err})
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return Fail[T](&ValidationError{Format: f.name, Problems: problems})
	}

	var value T
	if err := json.Unmarshal([]byte(content), &value); err != nil {
		return Fail[T](&DecodeError{Format: f.name, Err: err})
	}
	return Result[T]{Value: value}
}

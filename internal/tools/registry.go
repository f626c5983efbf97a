package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"
	"github.com/xeipuuv/gojsonschema"
)

// Tool represents a local function that can be called by the model
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]interface{} // JSON schema properties
	RequiredParameters() []string
	// Execute returns a JSON-encoded (or plain) string handed back to the model.
	Execute(ctx context.Context, args map[string]interface{}) (string, error)
}

type entry struct {
	tool   Tool
	spec   map[string]interface{}
	schema *gojsonschema.Schema
}

// Registry manages available tools
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*entry
	order []string
}

// NewRegistry registers tools in order and fails on the first bad declaration.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{tools: make(map[string]*entry)}
	for _, tool := range tools {
		if err := r.Register(tool); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a tool after compiling its declared parameter schema.
func (r *Registry) Register(tool Tool) error {
	name := tool.Name()
	if name == "" {
		return fmt.Errorf("tool name must not be empty")
	}

	spec := parameterSchema(tool)
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(spec))
	if err != nil {
		return fmt.Errorf("invalid parameter schema for tool '%s': %w", name, err)
	}
	for _, req := range tool.RequiredParameters() {
		if _, declared := tool.Parameters()[req]; !declared {
			return fmt.Errorf("tool '%s' requires undeclared parameter '%s'", name, req)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool '%s' already registered", name)
	}
	r.tools[name] = &entry{tool: tool, spec: spec, schema: schema}
	r.order = append(r.order, name)
	return nil
}

// Get retrieves a tool by exact name
func (r *Registry) Get(name string) (Tool, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, exists := r.tools[name]
	if !exists {
		return nil, false
	}
	return e.tool, true
}

// List returns all registered tools in registration order
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name].tool)
	}
	return tools
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// OpenAITools returns the declarations offered to the model.
func (r *Registry) OpenAITools() []openai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]openai.Tool, 0, len(r.order))
	for _, name := range r.order {
		e := r.tools[name]
		specs = append(specs, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        name,
				Description: e.tool.Description(),
				Parameters:  e.spec,
			},
		})
	}
	return specs
}

// CheckArgs reports an extra argument or a missing required one.
func CheckArgs(tool Tool, args map[string]interface{}) error {
	params := tool.Parameters()
	for name := range args {
		if _, ok := params[name]; !ok {
			return fmt.Errorf("unexpected argument '%s'", name)
		}
	}
	for _, name := range tool.RequiredParameters() {
		if _, ok := args[name]; !ok {
			return fmt.Errorf("missing required argument '%s'", name)
		}
	}
	return nil
}

// Validate checks args against the schema compiled for name.
func (r *Registry) Validate(name string, args map[string]interface{}) error {
	r.mu.RLock()
	e, exists := r.tools[name]
	r.mu.RUnlock()
	if !exists {
		return fmt.Errorf("tool '%s' not found", name)
	}

	result, err := e.schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return fmt.Errorf("validating arguments for '%s': %w", name, err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	sort.Strings(problems)
	return fmt.Errorf("%s", strings.Join(problems, "; "))
}

func parameterSchema(tool Tool) map[string]interface{} {
	properties := tool.Parameters()
	if properties == nil {
		properties = map[string]interface{}{}
	}
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if required := tool.RequiredParameters(); len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// dumps encodes string pairs as a JSON object, keeping key order and
// the ", " / ": " separators tool results are expected to carry.
func dumps(pairs ...string) string {
	var b strings.Builder
	b.WriteByte('{')
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(pairs[i]))
		b.WriteString(": ")
		b.WriteString(quote(pairs[i+1]))
	}
	b.WriteByte('}')
	return b.String()
}

func quote(s string) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(b.String(), "\n")
}

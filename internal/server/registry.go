package server

import (
	"errors"
	"fmt"

	"github.com/ironsheep/math-analysis-mcp/internal/jsonvalue"
)

// ToolHandler executes a tool. args is the "arguments" member of the
// tools/call params, or null when absent. A returned error is reported to
// the client as a tool-level failure, not a JSON-RPC error.
type ToolHandler func(args jsonvalue.Value) (jsonvalue.Value, error)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string
	Description string
	InputSchema jsonvalue.Value
	Handler     ToolHandler
}

// Definition returns the tools/list entry for t.
func (t Tool) Definition() jsonvalue.Value {
	output := jsonvalue.Object()
	output.Set("type", jsonvalue.String("object"))
	output.Set("additionalProperties", jsonvalue.Bool(true))

	def := jsonvalue.Object()
	def.Set("name", jsonvalue.String(t.Name))
	def.Set("description", jsonvalue.String(t.Description))
	def.Set("inputSchema", t.InputSchema)
	def.Set("outputSchema", output)
	return def
}

// ErrDuplicateTool is returned when a name is registered twice.
var ErrDuplicateTool = errors.New("duplicate tool")

// Registry holds tools in registration order.
type Registry struct {
	tools []Tool
	index map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds t. Names must be unique and non-empty, and a handler is
// required.
func (r *Registry) Register(t Tool) error {
	if t.Name == "" {
		return errors.New("tool name must not be empty")
	}
	if t.Handler == nil {
		return fmt.Errorf("tool %s has no handler", t.Name)
	}
	if _, exists := r.index[t.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, t.Name)
	}
	r.index[t.Name] = len(r.tools)
	r.tools = append(r.tools, t)
	return nil
}

// Lookup finds a tool by exact name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	i, ok := r.index[name]
	if !ok {
		return Tool{}, false
	}
	return r.tools[i], true
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.tools) }

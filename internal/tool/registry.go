// Package tool implements the capability registry offered to the model and
// the built-in tools that ship with it.
package tool

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/wardenci/warden/internal/llm"
)

// InvokeFunc executes a tool call. The returned string is what the model
// sees; an error is converted by the caller into an error tool result, so
// implementations are free to return either.
type InvokeFunc func(ctx context.Context, args json.RawMessage) (string, error)

// Tool pairs a definition with its executor.
type Tool struct {
	Def    llm.ToolDefinition
	Invoke InvokeFunc
}

// Registry maps tool names to tools. Each review task gets its own registry
// because some tools (report, diff) close over task-local state.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*Tool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// Register adds or replaces a tool.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Def.Name] = &t
}

// Get returns a registered tool by name, or nil if not found.
func (r *Registry) Get(name string) *Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// Definitions returns all tool definitions sorted by name, ready to send as
// the tool catalog.
func (r *Registry) Definitions() []llm.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]llm.ToolDefinition, 0, len(r.tools))
	for _, t := range r.tools {
		defs = append(defs, t.Def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Names returns the sorted names of all registered tools.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Def builds a tool definition.
func Def(name, description string, parameters map[string]any) llm.ToolDefinition {
	return llm.ToolDefinition{Name: name, Description: description, Parameters: parameters}
}

// objectSchema builds a JSON-Schema object definition.
func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func intProp(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}

func boolProp(description string) map[string]any {
	return map[string]any{"type": "boolean", "description": description}
}

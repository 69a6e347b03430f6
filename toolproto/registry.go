package toolproto

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jonwraymond/toolguard/errtax"
	"github.com/jonwraymond/toolguard/toolshell"
)

// Descriptor is the host-facing description of one registered tool,
// everything a host needs to present the tool and validate calls to
// it client-side before ever reaching this process.
type Descriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Schema      json.RawMessage `json:"schema"`
}

type registeredTool struct {
	descriptor Descriptor
	handler    toolshell.Handler
}

// Registry is the C6/C5 boundary: tools are registered once at
// startup (normally from cmd/toolserver's wiring), each wrapped
// through toolshell.Wrap so every dispatch gets schema validation,
// caching, and C2/C3 routing for free.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*registeredTool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*registeredTool)}
}

// Register wraps handler via toolshell.Wrap and adds it under name.
// Registering the same name twice replaces the previous registration,
// matching a host that redeploys a tool's implementation without
// restarting the process.
func (r *Registry) Register(name, description string, schema []byte, handler toolshell.Handler, deps *toolshell.Dependencies) error {
	wrapped, err := toolshell.Wrap(name, schema, handler, deps)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[name] = &registeredTool{
		descriptor: Descriptor{Name: name, Description: description, Schema: json.RawMessage(schema)},
		handler:    wrapped,
	}
	return nil
}

// Unregister removes a tool, if present.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tools, name)
}

// List returns every registered tool's Descriptor, for a host's
// startup capability negotiation.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t.descriptor)
	}
	return out
}

// Dispatch invokes the named tool's handler with rawParams. An
// unregistered name produces a Tool-Not-Found error without ever
// calling a handler.
func (r *Registry) Dispatch(ctx context.Context, name string, rawParams []byte) (any, error) {
	r.mu.RLock()
	tool, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return nil, errtax.New(errtax.ToolNotFound, "unknown tool", map[string]any{
			"tool": name,
		}).WithTool(name)
	}

	return tool.handler(ctx, rawParams)
}

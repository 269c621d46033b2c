// Package events implements top-level event delegation. Handlers are
// never installed on individual nodes; a single registry maps
// (node id, event type) pairs to handler functions, and dispatch walks
// from the reported target toward the root until a handler claims the
// event.
package events

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/faxui/fax/pkg/fdom"
)

// Registry is the delegation table for one mounted tree.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]map[string]fdom.Handler
	logger   *slog.Logger
}

// NewRegistry creates an empty delegation registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		handlers: make(map[string]map[string]fdom.Handler),
		logger:   logger,
	}
}

// Register installs (or replaces) the handler for a node and event
// type.
func (r *Registry) Register(nodeID, eventType string, h fdom.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.handlers[nodeID]
	if m == nil {
		m = make(map[string]fdom.Handler)
		r.handlers[nodeID] = m
	}
	m[eventType] = h
}

// Unregister removes the handler for a node and event type. Removing
// an absent entry is a no-op.
func (r *Registry) Unregister(nodeID, eventType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.handlers[nodeID]
	if m == nil {
		return
	}
	delete(m, eventType)
	if len(m) == 0 {
		delete(r.handlers, nodeID)
	}
}

// PurgeSubtree removes every registration for nodeID and all of its
// descendants. Path-style ids make the subtree test a prefix check.
// Returns the number of registrations removed.
func (r *Registry) PurgeSubtree(nodeID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	prefix := nodeID + "."
	removed := 0
	for id, m := range r.handlers {
		if id == nodeID || strings.HasPrefix(id, prefix) {
			removed += len(m)
			delete(r.handlers, id)
		}
	}
	return removed
}

// Handler returns the handler registered for a node and event type.
func (r *Registry) Handler(nodeID, eventType string) (fdom.Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[nodeID][eventType]
	return h, ok && h != nil
}

// Count returns the total number of live registrations.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, m := range r.handlers {
		n += len(m)
	}
	return n
}

// Dispatch routes an event to the nearest registered handler at or
// above the target node, walking the path-style id toward the root.
// It returns the id of the node whose handler ran, or "" when nothing
// claimed the event.
func (r *Registry) Dispatch(ev fdom.Event) string {
	id := ev.NodeID
	for id != "" {
		if h, ok := r.Handler(id, ev.Type); ok {
			h(ev)
			return id
		}
		dot := strings.LastIndex(id, ".")
		if dot <= 0 {
			break
		}
		id = id[:dot]
	}
	r.logger.Debug("event had no handler", "node", ev.NodeID, "type", ev.Type)
	return ""
}

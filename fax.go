// Package fax renders control trees to markup and keeps a live
// document in sync with them through minimal mutation passes.
//
// A control tree is built from the constructors in pkg/fdom, mounted
// once to produce first-paint markup, and then updated by handing the
// root control a new properties record. The reconciler computes and
// applies the smallest mutation set that brings the document to the
// new state, preserving node identity wherever the keyed child
// sequences allow it.
package fax

import (
	"log/slog"
	"sync"

	"github.com/faxui/fax/pkg/document"
	"github.com/faxui/fax/pkg/events"
	"github.com/faxui/fax/pkg/fdom"
)

// DefaultRootID is the node id assigned to the mounted root control.
const DefaultRootID = ".r"

// Option configures a Mount.
type Option func(*options)

type options struct {
	logger *slog.Logger
	strict bool
	rootID string
}

// WithLogger sets the logger used by the generator, reconciler, and
// event registry.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithStrict makes unknown properties and conflicting child
// specifications hard errors instead of logged warnings.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithRootID overrides the id assigned to the root control.
func WithRootID(id string) Option {
	return func(o *options) { o.rootID = id }
}

// Root is a mounted control tree bound to a live document and a
// delegation registry.
//
// Update, Flush, and OnUpdate delivery are serialized through the root
// mutex, so updates may arrive from any goroutine, including timer
// callbacks racing a dispatched event.
type Root struct {
	control *fdom.Control
	doc     *document.Document
	events  *events.Registry
	rec     *fdom.Reconciler
	logger  *slog.Logger

	mu       sync.Mutex
	onUpdate func([]fdom.Mutation)
}

// Mount generates first-paint markup for the control, parses it into a
// fresh live document, and wires the reconciler and event registry.
func Mount(c *fdom.Control, opts ...Option) (*Root, error) {
	o := options{logger: slog.Default(), rootID: DefaultRootID}
	for _, opt := range opts {
		opt(&o)
	}

	g := fdom.NewGenerator(fdom.WithGenLogger(o.logger), fdom.WithGenStrict(o.strict))
	markup, err := g.Markup(c, o.rootID)
	if err != nil {
		return nil, err
	}

	doc, err := document.Parse(markup)
	if err != nil {
		return nil, err
	}

	reg := events.NewRegistry(o.logger)
	for _, hb := range g.Handlers() {
		reg.Register(hb.NodeID, hb.Event, hb.Handler)
	}
	for _, pb := range g.DirectProps() {
		if err := doc.SetProperty(pb.NodeID, pb.Name, pb.Value); err != nil {
			return nil, err
		}
	}

	rec := fdom.NewReconciler(doc, reg, fdom.WithLogger(o.logger), fdom.WithStrict(o.strict))
	rec.Bind(c)

	return &Root{
		control: c,
		doc:     doc,
		events:  reg,
		rec:     rec,
		logger:  o.logger,
	}, nil
}

// Control returns the mounted root control.
func (r *Root) Control() *fdom.Control { return r.control }

// Document returns the live document backing this root.
func (r *Root) Document() *document.Document { return r.doc }

// Events returns the delegation registry for this root.
func (r *Root) Events() *events.Registry { return r.events }

// Markup serializes the current document state.
func (r *Root) Markup() string { return r.doc.Serialize() }

// Update reconciles the root control against a new properties record.
// Without an OnUpdate hook, mutations accumulate until Flush is
// called; with one, each pass is drained and handed to the hook before
// Update returns.
func (r *Root) Update(newProps fdom.Props) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.rec.UpdateAllProps(r.control, newProps); err != nil {
		return err
	}
	if r.onUpdate != nil {
		if muts := r.rec.Flush(); len(muts) > 0 {
			r.onUpdate(muts)
		}
	}
	return nil
}

// OnUpdate installs a hook receiving the mutations of each update
// pass. The hook runs under the root mutex, so passes are delivered
// whole and in order; it must not call back into Update or Flush.
func (r *Root) OnUpdate(fn func([]fdom.Mutation)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onUpdate = fn
}

// Flush returns the mutations applied since the last Flush and clears
// the buffer.
func (r *Root) Flush() []fdom.Mutation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rec.Flush()
}

// Dispatch routes an event through the delegation registry. It returns
// the id of the node whose handler ran, or "" when no handler claimed
// the event.
func (r *Root) Dispatch(ev fdom.Event) string {
	return r.events.Dispatch(ev)
}

package fdom

import (
	"log/slog"

	"github.com/faxui/fax/internal/errors"
)

// Reconciler applies the minimal mutation set that moves a mounted
// control tree from its old property state to a new one. Mutations are
// applied directly through the Host as they are computed, and recorded
// so callers can observe or stream what a pass did.
//
// A reconciliation pass is synchronous and run-to-completion; there is
// exactly one logical owner of the tree at any instant. Concurrent
// updates of the same root must be serialized by the caller.
type Reconciler struct {
	host   Host
	events EventRegistry
	logger *slog.Logger
	strict bool

	muts []Mutation
}

// ReconcilerOption configures a Reconciler.
type ReconcilerOption func(*Reconciler)

// WithLogger sets the logger used for lenient-path warnings.
func WithLogger(l *slog.Logger) ReconcilerOption {
	return func(r *Reconciler) { r.logger = l }
}

// WithStrict makes unknown properties and conflicting child shapes
// errors instead of warnings.
func WithStrict(strict bool) ReconcilerOption {
	return func(r *Reconciler) { r.strict = strict }
}

// NewReconciler creates a Reconciler over a live-document host and a
// delegation registry.
func NewReconciler(host Host, events EventRegistry, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{host: host, events: events, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Bind attaches a mounted control tree to this reconciler so
// Control.UpdateAllProps routes here.
func (r *Reconciler) Bind(c *Control) {
	c.bind(r)
}

// Mutations returns the mutations recorded since the last Flush.
func (r *Reconciler) Mutations() []Mutation { return r.muts }

// Flush returns and clears the recorded mutations.
func (r *Reconciler) Flush() []Mutation {
	m := r.muts
	r.muts = nil
	return m
}

// UpdateAllProps reconciles a mounted control against a new properties
// record: node attributes first, then children, always in that order.
func (r *Reconciler) UpdateAllProps(c *Control, newProps Props) error {
	if c.id == "" {
		return errors.New(errors.CodeControlWithoutBackingNode).
			WithDetail("update on <%s> control before first markup generation", c.class.tag)
	}
	if !r.host.HasNode(c.id) {
		return errors.New(errors.CodeControlWithoutBackingNode).
			WithDetail("no backing node %q in live document", c.id)
	}
	if newProps == nil {
		newProps = Props{}
	}
	if c.rec == nil {
		c.rec = r
	}

	oldProps := c.props
	skipChildren, err := r.reconcileNode(c, oldProps, newProps)
	if err != nil {
		return err
	}
	c.props = newProps
	if skipChildren {
		return nil
	}
	return r.reconcileChildren(c, newProps)
}

// apply performs a mutation through the host and records it.
func (r *Reconciler) apply(m Mutation) error {
	var err error
	switch m.Op {
	case MutationSetText:
		err = r.host.SetText(m.NodeID, m.Value)
	case MutationSetAttr:
		err = r.host.SetAttribute(m.NodeID, m.Name, m.Value)
	case MutationRemoveAttr:
		err = r.host.RemoveAttribute(m.NodeID, m.Name)
	case MutationInsertMarkup:
		err = r.host.InsertMarkupAt(m.ParentID, m.Index, m.Value)
	case MutationRemoveNode:
		err = r.host.RemoveNode(m.NodeID)
	case MutationMoveNode:
		err = r.host.MoveChild(m.ParentID, m.NodeID, m.Index)
	case MutationSetRawInner:
		err = r.host.SetRawInner(m.NodeID, m.Value)
	case MutationSetProp:
		err = r.host.SetProperty(m.NodeID, m.Name, m.Value)
	}
	if err != nil {
		return err
	}
	r.muts = append(r.muts, m)
	return nil
}

// reconcileNode diffs the node-level properties. Omission resets: a
// property present in old and absent in new is removed from the host,
// never skipped. Returns skipChildren=true when raw inner content is
// present in the new properties, which replaces inner content
// wholesale and bypasses child reconciliation entirely.
func (r *Reconciler) reconcileNode(c *Control, old, new Props) (skipChildren bool, err error) {
	newRaw, hasNewRaw := new[PropNameRawInner].(string)
	oldRaw, hadOldRaw := old[PropNameRawInner].(string)

	if hasNewRaw {
		if !hadOldRaw || newRaw != oldRaw {
			// Structured children the node had are replaced wholesale.
			for _, key := range c.order {
				if child := c.children[key]; child != nil {
					r.events.PurgeSubtree(child.id)
					child.unmount()
				}
			}
			c.children, c.order, c.shape = nil, nil, ShapeNone
			if err := r.apply(Mutation{Op: MutationSetRawInner, NodeID: c.id, Value: newRaw}); err != nil {
				return false, err
			}
		}
	} else if hadOldRaw {
		// Raw content removed; clear it so children can mount fresh.
		if err := r.apply(Mutation{Op: MutationSetRawInner, NodeID: c.id, Value: ""}); err != nil {
			return false, err
		}
	}

	for _, name := range sortedNames(old, new) {
		if name == PropNameRawInner {
			continue
		}
		spec := Classify(name)
		oldV, oldOk := old[name]
		newV, newOk := new[name]

		switch spec.Kind {
		case PropTagAttr, PropStyle:
			attr := spec.Attr
			switch {
			case newOk && (!oldOk || !propsEqual(oldV, newV)):
				if spec.Bool {
					if on, _ := newV.(bool); on {
						err = r.apply(Mutation{Op: MutationSetAttr, NodeID: c.id, Name: attr, Value: ""})
					} else if oldOk {
						err = r.apply(Mutation{Op: MutationRemoveAttr, NodeID: c.id, Name: attr})
					}
					break
				}
				if s := propToString(newV); s != "" {
					err = r.apply(Mutation{Op: MutationSetAttr, NodeID: c.id, Name: attr, Value: s})
				} else if oldOk {
					err = r.apply(Mutation{Op: MutationRemoveAttr, NodeID: c.id, Name: attr})
				}
			case oldOk && !newOk:
				err = r.apply(Mutation{Op: MutationRemoveAttr, NodeID: c.id, Name: attr})
			}

		case PropDirect:
			switch {
			case newOk && (!oldOk || !propsEqual(oldV, newV)):
				err = r.apply(Mutation{Op: MutationSetProp, NodeID: c.id, Name: spec.Attr, Value: propToString(newV)})
			case oldOk && !newOk:
				err = r.apply(Mutation{Op: MutationSetProp, NodeID: c.id, Name: spec.Attr, Value: ""})
			}

		case PropText:
			switch {
			case newOk && (!oldOk || !propsEqual(oldV, newV)):
				err = r.apply(Mutation{Op: MutationSetText, NodeID: c.id, Value: propToString(newV)})
			case oldOk && !newOk:
				err = r.apply(Mutation{Op: MutationSetText, NodeID: c.id, Value: ""})
			}

		case PropEvent:
			// Handler identity changes repoint the registry entry; the
			// document node is never touched.
			switch {
			case newOk && (!oldOk || !handlerEqual(oldV, newV)):
				h, ok := toHandler(newV)
				if !ok {
					r.logger.Warn("event property is not a handler", "prop", name, "node", c.id)
					break
				}
				if h == nil {
					r.events.Unregister(c.id, spec.Event)
					break
				}
				r.events.Register(c.id, spec.Event, h)
			case oldOk && !newOk:
				r.events.Unregister(c.id, spec.Event)
			}

		case PropChildSpec:
			// Handled by reconcileChildren.

		case PropUnknown:
			if !newOk {
				break
			}
			if _, isChild := newV.(*Control); isChild {
				// Implicit named child, handled by reconcileChildren.
				break
			}
			if r.strict {
				return false, errors.New(errors.CodeUnknownProperty).
					WithDetail("property %q on <%s> (node %s)", name, c.class.tag, c.id)
			}
			r.logger.Debug("skipping unknown property", "prop", name, "node", c.id)
		}
		if err != nil {
			return false, err
		}
	}

	return hasNewRaw, nil
}

// reconcileChildren matches the old child sequence against the new one
// in a single left-to-right cursor scan. Matched identities update in
// place and move (reinsert-before) only when their live position
// differs from the cursor; new identities mount fresh markup at the
// cursor; stale identities are removed and their delegation entries
// purged. Switching the child specification shape between renders
// preserves no identity: every old child is removed and every new
// child inserted fresh.
//
// The scan is a bounded heuristic, not a minimum-edit-distance
// algorithm; the move count it produces is part of the observable
// contract.
func (r *Reconciler) reconcileChildren(c *Control, newProps Props) error {
	seq, conflict := ExtractChildren(newProps)
	if conflict {
		if r.strict {
			return errors.New(errors.CodeConflictingChildSpecs).
				WithDetail("control <%s> (node %s)", c.class.tag, c.id)
		}
		r.logger.Warn("conflicting child specifications", "node", c.id, "shape", seq.Shape.String())
	}

	shapeChanged := seq.Shape != c.shape

	newKeys := make(map[string]*Control, len(seq.Entries))
	for _, entry := range seq.Entries {
		newKeys[entry.Key] = entry.Child
	}

	// Remove stale children first so the cursor scan only sees
	// surviving nodes and never moves a node that is about to go away.
	survivors := make(map[string]*Control, len(c.children))
	for _, key := range c.order {
		old := c.children[key]
		if old == nil {
			continue
		}
		fresh, keep := newKeys[key]
		if shapeChanged || !keep || fresh.class != old.class {
			if err := r.removeChild(old); err != nil {
				return err
			}
			continue
		}
		survivors[key] = old
	}

	children := make(map[string]*Control, len(seq.Entries))
	order := make([]string, 0, len(seq.Entries))

	for pos, entry := range seq.Entries {
		if old, ok := survivors[entry.Key]; ok {
			if err := r.UpdateAllProps(old, entry.Child.props); err != nil {
				return err
			}
			if cur := r.host.ChildIndex(c.id, old.id); cur != pos {
				if err := r.apply(Mutation{Op: MutationMoveNode, ParentID: c.id, NodeID: old.id, Index: pos}); err != nil {
					return err
				}
			}
			children[entry.Key] = old
		} else {
			if err := r.mountChild(c, entry.Key, entry.Child, pos); err != nil {
				return err
			}
			children[entry.Key] = entry.Child
		}
		order = append(order, entry.Key)
	}

	c.children, c.order, c.shape = children, order, seq.Shape
	return nil
}

// mountChild generates fresh markup for a new child identity and
// inserts it at the cursor position, installing the handlers and
// direct properties its subtree collected.
func (r *Reconciler) mountChild(parent *Control, key string, child *Control, pos int) error {
	g := NewGenerator(WithGenLogger(r.logger), WithGenStrict(r.strict))
	markup, err := g.Markup(child, parent.id+"."+key)
	if err != nil {
		return err
	}
	if err := r.apply(Mutation{Op: MutationInsertMarkup, ParentID: parent.id, Index: pos, Value: markup}); err != nil {
		return err
	}
	for _, hb := range g.Handlers() {
		r.events.Register(hb.NodeID, hb.Event, hb.Handler)
	}
	for _, pb := range g.DirectProps() {
		if err := r.apply(Mutation{Op: MutationSetProp, NodeID: pb.NodeID, Name: pb.Name, Value: pb.Value}); err != nil {
			return err
		}
	}
	child.bind(r)
	return nil
}

// removeChild tears down a child whose identity is absent from the new
// sequence: its backing node is removed and every delegation entry for
// its subtree is purged.
func (r *Reconciler) removeChild(child *Control) error {
	if err := r.apply(Mutation{Op: MutationRemoveNode, NodeID: child.id}); err != nil {
		return err
	}
	r.events.PurgeSubtree(child.id)
	child.unmount()
	return nil
}

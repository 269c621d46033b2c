package fdom

import (
	"github.com/faxui/fax/internal/errors"
)

// Control is a node in the logical component tree.
//
// A control is created unmounted, holding only its class and
// properties. Its stable identifier is assigned the first time markup
// is generated for its subtree; the identifier is embedded in the
// markup and is the lookup key for the backing document node the
// control exclusively owns while mounted.
type Control struct {
	class *ComponentClass
	props Props

	// id is the stable identifier, empty until first markup generation.
	id string

	// rec is set when the control is bound to a mounted root.
	rec *Reconciler

	// Mounted child controls from the last render, by identity key.
	children map[string]*Control
	order    []string
	shape    ChildShape
}

// Tag returns the host tag name of the control's class.
func (c *Control) Tag() string { return c.class.tag }

// ID returns the stable identifier, or "" if markup has never been
// generated for this control.
func (c *Control) ID() string { return c.id }

// Props returns the control's current properties record.
func (c *Control) Props() Props { return c.props }

// Mounted reports whether the control has an assigned backing node.
func (c *Control) Mounted() bool { return c.id != "" && c.rec != nil }

// ChildOrder returns the identity keys of the mounted children in
// canonical order.
func (c *Control) ChildOrder() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Child returns the mounted child control for an identity key.
func (c *Control) Child(key string) *Control {
	return c.children[key]
}

// GenMarkup generates the serialized markup for this control's subtree,
// assigning stable identifiers derived from idPrefix on first use.
// Regenerating an unchanged tree yields byte-identical output and
// identical identifiers. This convenience form discards collected
// handler and direct-property bindings; mounting callers use a
// Generator directly.
func (c *Control) GenMarkup(idPrefix string) (string, error) {
	g := NewGenerator()
	return g.Markup(c, idPrefix)
}

// UpdateAllProps reconciles the mounted control against a new
// properties record: node attributes first, then children, always in
// that order. It is the sole externally triggered mutation path after
// mount.
func (c *Control) UpdateAllProps(newProps Props) error {
	if c.id == "" || c.rec == nil {
		return errors.New(errors.CodeControlWithoutBackingNode).
			WithDetail("update on unmounted <%s> control", c.class.tag).
			WithSuggestion("generate markup and mount the control before calling UpdateAllProps")
	}
	return c.rec.UpdateAllProps(c, newProps)
}

// bind attaches the control (and nothing else; children bind as they
// mount) to a reconciler context.
func (c *Control) bind(rec *Reconciler) {
	c.rec = rec
	for _, child := range c.children {
		child.bind(rec)
	}
}

// unmount releases the control's backing references after its identity
// was dropped by a parent reconciliation.
func (c *Control) unmount() {
	c.rec = nil
	for _, child := range c.children {
		child.unmount()
	}
}

package fdom

import (
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/faxui/fax/internal/errors"
)

// HandlerBinding is an event handler collected during markup
// generation, to be installed into a delegation registry at mount.
type HandlerBinding struct {
	NodeID  string
	Event   string
	Handler Handler
}

// PropBinding is a live-node property collected during markup
// generation. Direct properties are never serialized into markup; the
// mounting caller applies them imperatively once the backing nodes
// exist.
type PropBinding struct {
	NodeID string
	Name   string
	Value  string
}

// Generator serializes a control tree to markup, assigning stable
// identifiers and collecting handler and direct-property bindings on
// the way down.
//
// Generation is deterministic: attributes are emitted in sorted name
// order, style records serialize sorted, and keyed child sets follow
// sorted key order. Regenerating an unchanged tree is byte-identical.
type Generator struct {
	logger   *slog.Logger
	strict   bool
	handlers []HandlerBinding
	directs  []PropBinding
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithGenLogger sets the logger used for lenient-path warnings.
func WithGenLogger(l *slog.Logger) GeneratorOption {
	return func(g *Generator) { g.logger = l }
}

// WithGenStrict makes unknown properties and conflicting child shapes
// errors instead of warnings.
func WithGenStrict(strict bool) GeneratorOption {
	return func(g *Generator) { g.strict = strict }
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Handlers returns the handler bindings collected since the last Reset.
func (g *Generator) Handlers() []HandlerBinding { return g.handlers }

// DirectProps returns the direct-property bindings collected since the
// last Reset.
func (g *Generator) DirectProps() []PropBinding { return g.directs }

// Reset clears collected bindings so the Generator can be reused.
func (g *Generator) Reset() {
	g.handlers = nil
	g.directs = nil
}

// Markup generates the subtree markup for a control, assigning its
// stable identifier from idPrefix on first generation.
func (g *Generator) Markup(c *Control, idPrefix string) (string, error) {
	var b strings.Builder
	if err := g.writeControl(&b, c, idPrefix); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteMarkup generates the subtree markup and streams it to w.
func (g *Generator) WriteMarkup(w io.Writer, c *Control, idPrefix string) error {
	s, err := g.Markup(c, idPrefix)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

func (g *Generator) writeControl(b *strings.Builder, c *Control, id string) error {
	// The identifier is assigned exactly once; regeneration keeps it.
	if c.id == "" {
		c.id = id
	}

	b.WriteString(c.class.openTag)

	names := make([]string, 0, len(c.props))
	for name := range c.props {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := c.props[name]
		spec := Classify(name)

		switch spec.Kind {
		case PropTagAttr:
			if spec.Bool {
				if on, ok := value.(bool); ok && on {
					b.WriteByte(' ')
					b.WriteString(spec.Attr)
				}
				continue
			}
			if s := propToString(value); s != "" {
				writeAttr(b, spec.Attr, s)
			}

		case PropStyle:
			if s := propToString(value); s != "" {
				writeAttr(b, "style", s)
			}

		case PropDirect:
			g.directs = append(g.directs, PropBinding{NodeID: c.id, Name: spec.Attr, Value: propToString(value)})

		case PropEvent:
			h, ok := toHandler(value)
			if !ok {
				g.logger.Warn("event property is not a handler", "prop", name, "node", c.id)
				continue
			}
			if h != nil {
				g.handlers = append(g.handlers, HandlerBinding{NodeID: c.id, Event: spec.Event, Handler: h})
			}

		case PropText, PropRawInner, PropChildSpec:
			// Inner content, handled below.

		case PropUnknown:
			if _, isChild := value.(*Control); isChild {
				// Implicit named child, handled below.
				continue
			}
			if g.strict {
				return errors.New(errors.CodeUnknownProperty).
					WithDetail("property %q on <%s> (node %s)", name, c.class.tag, c.id)
			}
			g.logger.Debug("skipping unknown property", "prop", name, "node", c.id)
		}
	}

	writeAttr(b, "id", c.id)

	if c.class.void {
		b.WriteByte('>')
		c.children, c.order, c.shape = nil, nil, ShapeNone
		return nil
	}

	b.WriteByte('>')

	if raw, ok := c.props[PropNameRawInner].(string); ok {
		// Raw inner markup replaces all structured content and bypasses
		// children entirely.
		b.WriteString(raw)
		c.children, c.order, c.shape = nil, nil, ShapeNone
		b.WriteString(c.class.closeTag)
		return nil
	}

	if text, ok := c.props[PropNameContent]; ok {
		b.WriteString(escapeText(propToString(text)))
	}

	seq, conflict := ExtractChildren(c.props)
	if conflict {
		if g.strict {
			return errors.New(errors.CodeConflictingChildSpecs).
				WithDetail("control <%s> (node %s)", c.class.tag, c.id)
		}
		g.logger.Warn("conflicting child specifications", "node", c.id, "shape", seq.Shape.String())
	}

	children := make(map[string]*Control, len(seq.Entries))
	order := make([]string, 0, len(seq.Entries))
	for _, entry := range seq.Entries {
		if err := g.writeControl(b, entry.Child, c.id+"."+entry.Key); err != nil {
			return err
		}
		children[entry.Key] = entry.Child
		order = append(order, entry.Key)
	}
	c.children, c.order, c.shape = children, order, seq.Shape

	b.WriteString(c.class.closeTag)
	return nil
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(escapeAttr(value))
	b.WriteByte('"')
}

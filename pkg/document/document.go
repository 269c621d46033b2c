// Package document provides an in-memory live document backed by
// parsed HTML nodes. It is the structural side of the system: it knows
// nothing about controls or properties, only about nodes addressed by
// their id attribute, and it implements the mutation surface the
// reconciler drives.
package document

import (
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/faxui/fax/internal/errors"
)

// Document is a mutable tree of HTML nodes indexed by id attribute.
// The empty parent id addresses the document root, so top-level markup
// is inserted with InsertMarkupAt("", 0, markup).
//
// All methods are safe for concurrent use; mutation passes themselves
// are expected to be serialized by the caller.
type Document struct {
	mu    sync.RWMutex
	root  *html.Node
	byID  map[string]*html.Node
	props map[string]map[string]string
}

// New creates an empty document.
func New() *Document {
	return &Document{
		root: &html.Node{
			Type:     html.ElementNode,
			Data:     "div",
			DataAtom: atom.Div,
		},
		byID:  make(map[string]*html.Node),
		props: make(map[string]map[string]string),
	}
}

// Parse creates a document from an initial markup string, typically a
// first-paint render.
func Parse(markup string) (*Document, error) {
	d := New()
	if err := d.InsertMarkupAt("", 0, markup); err != nil {
		return nil, err
	}
	return d, nil
}

// parseFragment parses markup in the context of the node it will be
// placed under and returns the resulting sibling nodes. The context
// matters: a tr fragment parsed in a div context is discarded by the
// HTML parser, while in a table context it survives.
func parseFragment(ctx *html.Node, markup string) ([]*html.Node, error) {
	c := &html.Node{Type: html.ElementNode, Data: ctx.Data, DataAtom: ctx.DataAtom}
	if c.DataAtom == 0 {
		c.DataAtom = atom.Lookup([]byte(c.Data))
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), c)
	if err != nil {
		return nil, errors.New(errors.CodeMarkupParse).Wrap(err)
	}
	return nodes, nil
}

// isBareSection reports whether n is a table section the parser
// synthesized around row content. Reconciled markup carries an id on
// every element, so a section without one was never in the source.
func isBareSection(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Tbody, atom.Thead, atom.Tfoot, atom.Colgroup:
		return attrValue(n, "id") == ""
	}
	return false
}

// spliceSections strips synthesized table sections from a parsed
// fragment so the live tree keeps the parent-child shape the markup
// declared. Without this, table rows end up grandchildren of their
// table behind an implied tbody and can no longer be addressed as its
// children.
func spliceSections(nodes []*html.Node) []*html.Node {
	out := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		if isBareSection(n) {
			var kids []*html.Node
			for n.FirstChild != nil {
				c := n.FirstChild
				n.RemoveChild(c)
				kids = append(kids, c)
			}
			out = append(out, spliceSections(kids)...)
			continue
		}
		if n.Type == html.ElementNode {
			spliceInner(n)
		}
		out = append(out, n)
	}
	return out
}

// spliceInner removes synthesized sections below n, hoisting their
// children into place.
func spliceInner(n *html.Node) {
	c := n.FirstChild
	for c != nil {
		if isBareSection(c) {
			first := c.FirstChild
			for c.FirstChild != nil {
				gc := c.FirstChild
				c.RemoveChild(gc)
				n.InsertBefore(gc, c)
			}
			next := c.NextSibling
			n.RemoveChild(c)
			if first != nil {
				c = first
			} else {
				c = next
			}
			continue
		}
		if c.Type == html.ElementNode {
			spliceInner(c)
		}
		c = c.NextSibling
	}
}

// index adds n and every descendant carrying an id attribute to the
// lookup table.
func (d *Document) index(n *html.Node) {
	for c := n; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			if id := attrValue(c, "id"); id != "" {
				d.byID[id] = c
			}
			d.index(c.FirstChild)
		}
	}
}

// unindex removes n's subtree from the lookup table and drops any
// direct properties recorded for those nodes.
func (d *Document) unindex(n *html.Node) {
	if n.Type == html.ElementNode {
		if id := attrValue(n, "id"); id != "" {
			delete(d.byID, id)
			delete(d.props, id)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.unindex(c)
	}
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// node resolves an id, where "" means the root container.
func (d *Document) node(id string) (*html.Node, error) {
	if id == "" {
		return d.root, nil
	}
	n, ok := d.byID[id]
	if !ok {
		return nil, errors.New(errors.CodeNodeNotFound).WithDetail("node %q", id)
	}
	return n, nil
}

// HasNode reports whether a node with the given id exists.
func (d *Document) HasNode(id string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if id == "" {
		return true
	}
	_, ok := d.byID[id]
	return ok
}

// SetAttribute sets an attribute on a node. An empty value produces a
// bare boolean attribute on serialization.
func (d *Document) SetAttribute(id, name, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, err := d.node(id)
	if err != nil {
		return err
	}
	for i := range n.Attr {
		if n.Attr[i].Key == name {
			n.Attr[i].Val = value
			return nil
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
	return nil
}

// RemoveAttribute removes an attribute from a node. Removing an absent
// attribute is a no-op.
func (d *Document) RemoveAttribute(id, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, err := d.node(id)
	if err != nil {
		return err
	}
	for i := range n.Attr {
		if n.Attr[i].Key == name {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return nil
		}
	}
	return nil
}

// Attribute returns an attribute's value and whether it is present.
func (d *Document) Attribute(id, name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n, err := d.node(id)
	if err != nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetProperty records a direct node property such as a form control's
// live value. Direct properties are node state, not markup: they never
// appear in Serialize output.
func (d *Document) SetProperty(id, name, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.node(id); err != nil {
		return err
	}
	p := d.props[id]
	if p == nil {
		p = make(map[string]string)
		d.props[id] = p
	}
	p[name] = value
	return nil
}

// Property returns a direct property previously set on a node.
func (d *Document) Property(id, name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.props[id][name]
	return v, ok
}

// SetText replaces the node's text content while leaving element
// children in place. Text precedes element children, matching
// generated markup.
func (d *Document) SetText(id, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, err := d.node(id)
	if err != nil {
		return err
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.TextNode {
			n.RemoveChild(c)
		}
		c = next
	}
	if text != "" {
		t := &html.Node{Type: html.TextNode, Data: text}
		if n.FirstChild != nil {
			n.InsertBefore(t, n.FirstChild)
		} else {
			n.AppendChild(t)
		}
	}
	return nil
}

// SetRawInner replaces the node's entire inner content with parsed
// markup, discarding whatever was there.
func (d *Document) SetRawInner(id, markup string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, err := d.node(id)
	if err != nil {
		return err
	}
	for n.FirstChild != nil {
		c := n.FirstChild
		d.unindex(c)
		n.RemoveChild(c)
	}
	if markup == "" {
		return nil
	}
	// Raw content is parsed in the node's own context and kept exactly
	// as the parser produced it, matching innerHTML semantics.
	nodes, err := parseFragment(n, markup)
	if err != nil {
		return err
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
	d.index(n.FirstChild)
	return nil
}

// InsertMarkupAt parses markup and inserts the resulting nodes so the
// first of them lands at the given element-child index of the parent.
// An index at or past the current element count appends.
func (d *Document) InsertMarkupAt(parentID string, index int, markup string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	parent, err := d.node(parentID)
	if err != nil {
		return err
	}
	nodes, err := parseFragment(parent, markup)
	if err != nil {
		return err
	}
	nodes = spliceSections(nodes)
	before := elementAt(parent, index)
	for _, c := range nodes {
		if before != nil {
			parent.InsertBefore(c, before)
		} else {
			parent.AppendChild(c)
		}
	}
	for _, c := range nodes {
		d.index(c)
	}
	return nil
}

// MoveChild reinserts an existing child of parent at a new
// element-child index.
func (d *Document) MoveChild(parentID, childID string, index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	parent, err := d.node(parentID)
	if err != nil {
		return err
	}
	child, err := d.node(childID)
	if err != nil {
		return err
	}
	if child.Parent != parent {
		return errors.New(errors.CodeNodeNotFound).
			WithDetail("node %q is not a child of %q", childID, parentID)
	}
	parent.RemoveChild(child)
	if before := elementAt(parent, index); before != nil {
		parent.InsertBefore(child, before)
	} else {
		parent.AppendChild(child)
	}
	return nil
}

// RemoveNode detaches a node from its parent and forgets its subtree.
func (d *Document) RemoveNode(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, err := d.node(id)
	if err != nil {
		return err
	}
	if n == d.root || n.Parent == nil {
		return errors.New(errors.CodeNodeNotFound).WithDetail("cannot remove root")
	}
	d.unindex(n)
	n.Parent.RemoveChild(n)
	return nil
}

// ChildIndex returns the element-child index of childID under
// parentID, or -1 if it is not a direct element child.
func (d *Document) ChildIndex(parentID, childID string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	parent, err := d.node(parentID)
	if err != nil {
		return -1
	}
	child, ok := d.byID[childID]
	if !ok || child.Parent != parent {
		return -1
	}
	i := 0
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c == child {
			return i
		}
		i++
	}
	return -1
}

// elementAt returns the element child of parent at the given index, or
// nil when index is at or past the end.
func elementAt(parent *html.Node, index int) *html.Node {
	i := 0
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if i == index {
			return c
		}
		i++
	}
	return nil
}

// Serialize renders the document's content back to markup. Direct
// properties set through SetProperty are not part of the output.
func (d *Document) Serialize() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var b strings.Builder
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		html.Render(&b, c)
	}
	return b.String()
}

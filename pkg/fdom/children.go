package fdom

import (
	"sort"
	"strconv"
)

// ChildShape identifies which of the historical child specification
// shapes a properties record used.
type ChildShape uint8

const (
	// ShapeNone means the node declared no children.
	ShapeNone ChildShape = iota

	// ShapeList is the explicit ordered list; identity is the
	// positional index.
	ShapeList

	// ShapeKeyed is keyed-set semantics: identity is the mapping key.
	// The preferred form is the canonical ordered []ChildEntry; the
	// legacy map form is adapted via KeyedSet.
	ShapeKeyed

	// ShapeImplicit is the legacy implicit form: any unrecognized
	// property whose value is a *Control becomes a singularly named
	// child. Deprecated; kept for backward compatibility only.
	ShapeImplicit
)

// String returns the string representation of the ChildShape.
func (s ChildShape) String() string {
	switch s {
	case ShapeList:
		return "List"
	case ShapeKeyed:
		return "Keyed"
	case ShapeImplicit:
		return "Implicit"
	default:
		return "None"
	}
}

// ChildEntry is one (identity key, child) pair of the canonical
// ordered, keyed child sequence.
type ChildEntry struct {
	Key   string
	Child *Control
}

// ChildSeq is the canonical child form every shape normalizes to: an
// ordered sequence of keyed entries. Identity keys decide whether a
// child survives a re-render in place or is torn down and recreated.
type ChildSeq struct {
	Shape   ChildShape
	Entries []ChildEntry
}

// KeyOfIndex returns the identity key used for position i under list
// semantics.
func KeyOfIndex(i int) string {
	return strconv.Itoa(i)
}

// List builds a "children" property value from an ordered list of
// controls. Identity is positional.
func List(children ...*Control) []*Control {
	return children
}

// Entry pairs an identity key with a child control.
func Entry(key string, child *Control) ChildEntry {
	return ChildEntry{Key: key, Child: child}
}

// Keyed builds a "children" property value carrying the canonical
// ordered, keyed sequence. This is the preferred way to specify keyed
// children: order is the sequence order, identity is the key.
func Keyed(entries ...ChildEntry) []ChildEntry {
	return entries
}

// KeyedSet adapts the legacy unordered keyed-set shape to the canonical
// sequence. Order falls back to sorted key order, which is the only
// deterministic choice an unordered set allows.
//
// Deprecated: build a Keyed sequence directly when order matters.
func KeyedSet(set map[string]*Control) []ChildEntry {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	entries := make([]ChildEntry, 0, len(keys))
	for _, key := range keys {
		if set[key] != nil {
			entries = append(entries, ChildEntry{Key: key, Child: set[key]})
		}
	}
	return entries
}

// ExtractChildren normalizes the three historical child specification
// shapes into the canonical ordered, keyed sequence.
//
// The "children" property accepts either an ordered []*Control
// (positional identity) or the canonical []ChildEntry (keyed
// identity). The "childSet" property accepts the legacy
// map[string]*Control. Precedence when multiple shapes are present:
// "children" > "childSet" > implicit named properties. conflict
// reports whether more than one shape was supplied, so callers can
// warn (or fail, in strict mode).
func ExtractChildren(props Props) (seq ChildSeq, conflict bool) {
	var list []*Control
	var entries []ChildEntry
	hasChildren := false
	switch v := props[PropNameChildren].(type) {
	case []*Control:
		list, hasChildren = v, true
	case []ChildEntry:
		entries, hasChildren = v, true
	}

	set, hasSet := props[PropNameChildSet].(map[string]*Control)

	var implicit []ChildEntry
	for name, value := range props {
		if name == PropNameChildren || name == PropNameChildSet {
			continue
		}
		if Classify(name).Kind != PropUnknown {
			continue
		}
		if child, ok := value.(*Control); ok && child != nil {
			implicit = append(implicit, ChildEntry{Key: name, Child: child})
		}
	}

	shapes := 0
	if hasChildren {
		shapes++
	}
	if hasSet {
		shapes++
	}
	if len(implicit) > 0 {
		shapes++
	}
	conflict = shapes > 1

	switch {
	case hasChildren && entries != nil:
		seq.Shape = ShapeKeyed
		seq.Entries = make([]ChildEntry, 0, len(entries))
		for _, entry := range entries {
			if entry.Child != nil {
				seq.Entries = append(seq.Entries, entry)
			}
		}
	case hasChildren:
		seq.Shape = ShapeList
		seq.Entries = make([]ChildEntry, 0, len(list))
		for i, child := range list {
			if child == nil {
				continue
			}
			seq.Entries = append(seq.Entries, ChildEntry{Key: KeyOfIndex(i), Child: child})
		}
	case hasSet:
		seq.Shape = ShapeKeyed
		seq.Entries = KeyedSet(set)
	case len(implicit) > 0:
		seq.Shape = ShapeImplicit
		sort.Slice(implicit, func(i, j int) bool { return implicit[i].Key < implicit[j].Key })
		seq.Entries = implicit
	default:
		seq.Shape = ShapeNone
	}

	return seq, conflict
}

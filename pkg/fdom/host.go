package fdom

// Host is the live-document boundary. The reconciler computes minimal
// mutations and applies them through this interface; package document
// provides the in-memory implementation.
//
// Reconciliation is single-owner and synchronous, so implementations
// need no internal locking for these methods; concurrent updates of the
// same tree must be serialized by the caller.
type Host interface {
	// HasNode reports whether a backing node exists for the identifier.
	HasNode(id string) bool

	// SetAttribute sets a serialized attribute on the node.
	SetAttribute(id, name, value string) error

	// RemoveAttribute resets an attribute to its removed/default state.
	RemoveAttribute(id, name string) error

	// SetProperty sets a live-node property (input value, checked).
	SetProperty(id, name, value string) error

	// SetText replaces the node's text content.
	SetText(id, text string) error

	// SetRawInner replaces the node's inner content wholesale with
	// unparsed markup.
	SetRawInner(id, markup string) error

	// InsertMarkupAt parses a markup fragment and inserts the resulting
	// nodes under parentID at the given child index.
	InsertMarkupAt(parentID string, index int, markup string) error

	// MoveChild reinserts an existing child of parentID at the given
	// index, preserving the node instance.
	MoveChild(parentID, childID string, index int) error

	// RemoveNode detaches the node (and its subtree) from the tree.
	RemoveNode(id string) error

	// ChildIndex returns the current index of childID under parentID,
	// or -1 if it is not a child of parentID.
	ChildIndex(parentID, childID string) int
}

// EventRegistry is the delegation registry boundary: one shared
// top-level listener fans host events out to per-node, per-event-type
// handlers looked up by stable node identifier. Entries are added and
// updated during node reconciliation and purged when a subtree
// unmounts.
type EventRegistry interface {
	Register(nodeID, eventType string, h Handler)
	Unregister(nodeID, eventType string)

	// PurgeSubtree removes every entry for nodeID and its descendants
	// (identifiers prefixed with nodeID + "."). Returns the number of
	// entries removed.
	PurgeSubtree(nodeID string) int
}

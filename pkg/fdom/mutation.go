package fdom

// MutationOp is the type of applied document operation.
type MutationOp uint8

const (
	MutationSetText      MutationOp = 0x01 // Update text content
	MutationSetAttr      MutationOp = 0x02 // Set/update attribute
	MutationRemoveAttr   MutationOp = 0x03 // Remove attribute
	MutationInsertMarkup MutationOp = 0x04 // Insert freshly generated markup
	MutationRemoveNode   MutationOp = 0x05 // Remove node
	MutationMoveNode     MutationOp = 0x06 // Move node to new position
	MutationSetRawInner  MutationOp = 0x07 // Replace inner content wholesale
	MutationSetProp      MutationOp = 0x08 // Set live-node property
)

// String returns the string representation of the MutationOp.
func (op MutationOp) String() string {
	switch op {
	case MutationSetText:
		return "SetText"
	case MutationSetAttr:
		return "SetAttr"
	case MutationRemoveAttr:
		return "RemoveAttr"
	case MutationInsertMarkup:
		return "InsertMarkup"
	case MutationRemoveNode:
		return "RemoveNode"
	case MutationMoveNode:
		return "MoveNode"
	case MutationSetRawInner:
		return "SetRawInner"
	case MutationSetProp:
		return "SetProp"
	default:
		return "Unknown"
	}
}

// Mutation records a single applied document operation. The reconciler
// applies mutations directly through the Host and records them so
// callers can observe, count, or stream what a pass did.
type Mutation struct {
	Op       MutationOp
	NodeID   string // Target node identifier
	ParentID string // Parent for InsertMarkup/MoveNode
	Name     string // Attribute/property name
	Value    string // Attribute value, text, or generated markup
	Index    int    // Position for InsertMarkup/MoveNode
}

package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// Well-known error codes.
const (
	// CodeControlWithoutBackingNode is raised when an update is attempted
	// on a control that has never generated markup (no backing node).
	CodeControlWithoutBackingNode = "E101"

	// CodeConflictingChildSpecs is raised in strict mode when a control
	// supplies more than one child specification shape.
	CodeConflictingChildSpecs = "E102"

	// CodeUnknownProperty is raised in strict mode when a property is not
	// present in the attribute table.
	CodeUnknownProperty = "E103"

	// CodeUnknownTag is raised when a component is requested for a tag
	// that is not in the catalog.
	CodeUnknownTag = "E104"

	// CodeMarkupParse is raised when a markup fragment cannot be parsed
	// into backing document nodes.
	CodeMarkupParse = "E201"

	// CodeNodeNotFound is raised when a document operation targets an
	// identifier with no backing node.
	CodeNodeNotFound = "E202"

	// CodeFrameDecode is raised when a wire frame cannot be decoded.
	CodeFrameDecode = "E301"

	// CodeFrameTooLarge is raised when a wire frame exceeds the size limit.
	CodeFrameTooLarge = "E302"

	// CodeSnapshotNotFound is raised when a snapshot id has no stored markup.
	CodeSnapshotNotFound = "E401"
)

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime / reconcile errors (E100-E199)
	// ============================================

	CodeControlWithoutBackingNode: {
		Category: CategoryReconcile,
		Message:  "Control has no backing document node",
		Detail:   "UpdateAllProps was called before the control was ever rendered. A control acquires its backing node when its markup is first generated and mounted.",
		DocURL:   "https://faxui.dev/docs/errors/E101",
	},
	CodeConflictingChildSpecs: {
		Category: CategoryValidation,
		Message:  "Conflicting child specifications",
		Detail:   "A control supplied more than one of: ordered child list, keyed child set, implicit named children. Outside strict mode the list takes precedence over the set, which takes precedence over implicit children.",
		DocURL:   "https://faxui.dev/docs/errors/E102",
	},
	CodeUnknownProperty: {
		Category: CategoryValidation,
		Message:  "Unknown property",
		Detail:   "The property name is not in the attribute table. Outside strict mode unknown properties are silently skipped during serialization.",
		DocURL:   "https://faxui.dev/docs/errors/E103",
	},
	CodeUnknownTag: {
		Category: CategoryRuntime,
		Message:  "Unknown tag component",
		Detail:   "The requested tag is not in the component catalog.",
		DocURL:   "https://faxui.dev/docs/errors/E104",
	},

	// ============================================
	// Markup / document errors (E200-E299)
	// ============================================

	CodeMarkupParse: {
		Category: CategoryMarkup,
		Message:  "Markup parse failure",
		Detail:   "The markup fragment could not be parsed into backing document nodes.",
		DocURL:   "https://faxui.dev/docs/errors/E201",
	},
	CodeNodeNotFound: {
		Category: CategoryMarkup,
		Message:  "No backing node for identifier",
		Detail:   "A document mutation targeted a node identifier that is not present in the live tree.",
		DocURL:   "https://faxui.dev/docs/errors/E202",
	},

	// ============================================
	// Protocol errors (E300-E399)
	// ============================================

	CodeFrameDecode: {
		Category: CategoryProtocol,
		Message:  "Invalid wire frame",
		Detail:   "The frame could not be decoded. The payload may be truncated or corrupt.",
		DocURL:   "https://faxui.dev/docs/errors/E301",
	},
	CodeFrameTooLarge: {
		Category: CategoryProtocol,
		Message:  "Wire frame too large",
		Detail:   "The frame exceeds the configured size limit.",
		DocURL:   "https://faxui.dev/docs/errors/E302",
	},

	// ============================================
	// Snapshot errors (E400-E499)
	// ============================================

	CodeSnapshotNotFound: {
		Category: CategorySnapshot,
		Message:  "Snapshot not found",
		Detail:   "No stored markup exists for the given snapshot id.",
		DocURL:   "https://faxui.dev/docs/errors/E401",
	},
}

// Lookup returns the registered template for a code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns all registered error codes.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

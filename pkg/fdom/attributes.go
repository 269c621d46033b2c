package fdom

// PropKind classifies a logical property name.
type PropKind uint8

const (
	// PropUnknown is a name not present in the attribute table. Unknown
	// properties are skipped during serialization unless strict mode is
	// enabled, in which case they are an error. An unknown property
	// whose value is a *Control is an implicit named child (deprecated).
	PropUnknown PropKind = iota

	// PropTagAttr is rendered into the opening tag at generation time
	// and applied with SetAttribute on update.
	PropTagAttr

	// PropDirect is a live-node property (input value, checked state)
	// that must be set imperatively at mount/update time; serializing it
	// into markup would be lossy once the node carries user state.
	PropDirect

	// PropEvent is an event handler. Never serialized; registered with
	// the shared delegation registry keyed by (node id, event type).
	PropEvent

	// PropText is the escaped text content of the node.
	PropText

	// PropRawInner is unescaped inner markup. It replaces inner content
	// wholesale and bypasses child reconciliation entirely.
	PropRawInner

	// PropStyle is the inline style record.
	PropStyle

	// PropChildSpec is one of the child specification shapes.
	PropChildSpec
)

// String returns the string representation of the PropKind.
func (k PropKind) String() string {
	switch k {
	case PropTagAttr:
		return "TagAttr"
	case PropDirect:
		return "Direct"
	case PropEvent:
		return "Event"
	case PropText:
		return "Text"
	case PropRawInner:
		return "RawInner"
	case PropStyle:
		return "Style"
	case PropChildSpec:
		return "ChildSpec"
	default:
		return "Unknown"
	}
}

// PropSpec describes how a logical property maps onto the host tree.
type PropSpec struct {
	Kind PropKind

	// Attr is the host attribute or property name (for PropTagAttr and
	// PropDirect).
	Attr string

	// Event is the host event type (for PropEvent), e.g. "click".
	Event string

	// Bool marks a boolean attribute: rendered bare when true, absent
	// when false.
	Bool bool
}

// Reserved property names.
const (
	PropNameContent  = "content"
	PropNameRawInner = "dangerouslySetInnerHTML"
	PropNameStyle    = "style"
	PropNameChildren = "children"
	PropNameChildSet = "childSet"
)

// tagAttrs maps logical names to host attributes rendered in markup.
var tagAttrs = map[string]PropSpec{
	"accept":       {Kind: PropTagAttr, Attr: "accept"},
	"action":       {Kind: PropTagAttr, Attr: "action"},
	"alt":          {Kind: PropTagAttr, Attr: "alt"},
	"autocomplete": {Kind: PropTagAttr, Attr: "autocomplete"},
	"autofocus":    {Kind: PropTagAttr, Attr: "autofocus", Bool: true},
	"charset":      {Kind: PropTagAttr, Attr: "charset"},
	"class":        {Kind: PropTagAttr, Attr: "class"},
	"className":    {Kind: PropTagAttr, Attr: "class"},
	"cols":         {Kind: PropTagAttr, Attr: "cols"},
	"colspan":      {Kind: PropTagAttr, Attr: "colspan"},
	"controls":     {Kind: PropTagAttr, Attr: "controls", Bool: true},
	"dir":          {Kind: PropTagAttr, Attr: "dir"},
	"disabled":     {Kind: PropTagAttr, Attr: "disabled", Bool: true},
	"download":     {Kind: PropTagAttr, Attr: "download"},
	"enctype":      {Kind: PropTagAttr, Attr: "enctype"},
	"height":       {Kind: PropTagAttr, Attr: "height"},
	"hidden":       {Kind: PropTagAttr, Attr: "hidden", Bool: true},
	"href":         {Kind: PropTagAttr, Attr: "href"},
	"htmlFor":      {Kind: PropTagAttr, Attr: "for"},
	"lang":         {Kind: PropTagAttr, Attr: "lang"},
	"loading":      {Kind: PropTagAttr, Attr: "loading"},
	"loop":         {Kind: PropTagAttr, Attr: "loop", Bool: true},
	"max":          {Kind: PropTagAttr, Attr: "max"},
	"maxlength":    {Kind: PropTagAttr, Attr: "maxlength"},
	"method":       {Kind: PropTagAttr, Attr: "method"},
	"min":          {Kind: PropTagAttr, Attr: "min"},
	"multiple":     {Kind: PropTagAttr, Attr: "multiple", Bool: true},
	"muted":        {Kind: PropTagAttr, Attr: "muted", Bool: true},
	"name":         {Kind: PropTagAttr, Attr: "name"},
	"open":         {Kind: PropTagAttr, Attr: "open", Bool: true},
	"pattern":      {Kind: PropTagAttr, Attr: "pattern"},
	"placeholder":  {Kind: PropTagAttr, Attr: "placeholder"},
	"readonly":     {Kind: PropTagAttr, Attr: "readonly", Bool: true},
	"rel":          {Kind: PropTagAttr, Attr: "rel"},
	"required":     {Kind: PropTagAttr, Attr: "required", Bool: true},
	"role":         {Kind: PropTagAttr, Attr: "role"},
	"rows":         {Kind: PropTagAttr, Attr: "rows"},
	"rowspan":      {Kind: PropTagAttr, Attr: "rowspan"},
	"scope":        {Kind: PropTagAttr, Attr: "scope"},
	"src":          {Kind: PropTagAttr, Attr: "src"},
	"step":         {Kind: PropTagAttr, Attr: "step"},
	"tabindex":     {Kind: PropTagAttr, Attr: "tabindex"},
	"target":       {Kind: PropTagAttr, Attr: "target"},
	"title":        {Kind: PropTagAttr, Attr: "title"},
	"type":         {Kind: PropTagAttr, Attr: "type"},
	"width":        {Kind: PropTagAttr, Attr: "width"},
	"wrap":         {Kind: PropTagAttr, Attr: "wrap"},
}

// directProps are live-node properties set imperatively, never
// serialized on update (the markup form would be stale or lossy).
var directProps = map[string]PropSpec{
	"value":    {Kind: PropDirect, Attr: "value"},
	"checked":  {Kind: PropDirect, Attr: "checked"},
	"selected": {Kind: PropDirect, Attr: "selected"},
}

// eventProps maps logical handler names to host event types.
var eventProps = map[string]PropSpec{
	"onBlur":        {Kind: PropEvent, Event: "blur"},
	"onChange":      {Kind: PropEvent, Event: "change"},
	"onClick":       {Kind: PropEvent, Event: "click"},
	"onDblClick":    {Kind: PropEvent, Event: "dblclick"},
	"onDragEnd":     {Kind: PropEvent, Event: "dragend"},
	"onDragStart":   {Kind: PropEvent, Event: "dragstart"},
	"onDrop":        {Kind: PropEvent, Event: "drop"},
	"onFocus":       {Kind: PropEvent, Event: "focus"},
	"onInput":       {Kind: PropEvent, Event: "input"},
	"onKeyDown":     {Kind: PropEvent, Event: "keydown"},
	"onKeyPress":    {Kind: PropEvent, Event: "keypress"},
	"onKeyUp":       {Kind: PropEvent, Event: "keyup"},
	"onMouseDown":   {Kind: PropEvent, Event: "mousedown"},
	"onMouseMove":   {Kind: PropEvent, Event: "mousemove"},
	"onMouseOut":    {Kind: PropEvent, Event: "mouseout"},
	"onMouseOver":   {Kind: PropEvent, Event: "mouseover"},
	"onMouseUp":     {Kind: PropEvent, Event: "mouseup"},
	"onPaste":       {Kind: PropEvent, Event: "paste"},
	"onScroll":      {Kind: PropEvent, Event: "scroll"},
	"onSubmit":      {Kind: PropEvent, Event: "submit"},
	"onTouchEnd":    {Kind: PropEvent, Event: "touchend"},
	"onTouchStart":  {Kind: PropEvent, Event: "touchstart"},
	"onToggle":      {Kind: PropEvent, Event: "toggle"},
	"onContextMenu": {Kind: PropEvent, Event: "contextmenu"},
}

// Classify maps a logical property name to its host-tree behavior.
// Pure lookup; the tables above are sealed at init and read-only.
func Classify(name string) PropSpec {
	switch name {
	case PropNameContent:
		return PropSpec{Kind: PropText}
	case PropNameRawInner:
		return PropSpec{Kind: PropRawInner}
	case PropNameStyle:
		return PropSpec{Kind: PropStyle, Attr: "style"}
	case PropNameChildren, PropNameChildSet:
		return PropSpec{Kind: PropChildSpec}
	}
	if spec, ok := tagAttrs[name]; ok {
		return spec
	}
	if spec, ok := directProps[name]; ok {
		return spec
	}
	if spec, ok := eventProps[name]; ok {
		return spec
	}
	return PropSpec{Kind: PropUnknown}
}

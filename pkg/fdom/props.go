package fdom

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Props holds a control's properties: tag attributes, event handlers,
// text or raw content, and child specifications. A Props value is
// treated as immutable for the duration of a render.
type Props map[string]any

// Style is an inline style record. It serializes deterministically
// (sorted by property name) so regeneration is byte-identical.
type Style map[string]string

// Event is the payload delivered to a delegated handler.
type Event struct {
	NodeID  string
	Type    string
	Value   string
	Checked bool
	Key     string
}

// Handler is a delegated event handler.
type Handler func(Event)

// serializeStyle renders a style record as an inline style attribute value.
func serializeStyle(s Style) string {
	if len(s) == 0 {
		return ""
	}
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(s[name])
	}
	return b.String()
}

// propToString converts a property value to its attribute string form.
func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case Style:
		return serializeStyle(val)
	}
	// Remaining numeric kinds, e.g. uint or int32.
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	}
	return ""
}

// propsEqual compares two property values by value, not identity.
func propsEqual(a, b any) bool {
	// Fast path for common types
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return av == bv
		}
		return false
	case int:
		if bv, ok := b.(int); ok {
			return av == bv
		}
		return false
	case int64:
		if bv, ok := b.(int64); ok {
			return av == bv
		}
		return false
	case float64:
		if bv, ok := b.(float64); ok {
			return av == bv
		}
		return false
	case bool:
		if bv, ok := b.(bool); ok {
			return av == bv
		}
		return false
	case nil:
		return b == nil
	}
	// Fallback to reflect for style records and other composites
	return reflect.DeepEqual(a, b)
}

// handlerEqual compares two handler values by function reference.
// A changed reference means the delegation registry entry must be
// repointed; the document node itself is never touched.
func handlerEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != reflect.Func || vb.Kind() != reflect.Func {
		return false
	}
	return va.Pointer() == vb.Pointer()
}

// toHandler normalizes the accepted handler shapes to Handler.
func toHandler(v any) (Handler, bool) {
	switch h := v.(type) {
	case Handler:
		return h, true
	case func(Event):
		return Handler(h), true
	case func():
		return func(Event) { h() }, true
	case nil:
		return nil, true
	default:
		return nil, false
	}
}

// sortedNames returns the union of property names of old and new, sorted.
// Reconciliation walks this union so omission is observable, and sorted
// order keeps the applied mutation sequence deterministic.
func sortedNames(old, new Props) []string {
	names := make([]string, 0, len(old)+len(new))
	seen := make(map[string]struct{}, len(old)+len(new))
	for name := range old {
		names = append(names, name)
		seen[name] = struct{}{}
	}
	for name := range new {
		if _, ok := seen[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

package fdom

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		prop string
		kind PropKind
		attr string
	}{
		{name: "class_name", prop: "className", kind: PropTagAttr, attr: "class"},
		{name: "html_for", prop: "htmlFor", kind: PropTagAttr, attr: "for"},
		{name: "href", prop: "href", kind: PropTagAttr, attr: "href"},
		{name: "placeholder", prop: "placeholder", kind: PropTagAttr, attr: "placeholder"},
		{name: "style", prop: "style", kind: PropStyle, attr: "style"},
		{name: "value_is_direct", prop: "value", kind: PropDirect, attr: "value"},
		{name: "checked_is_direct", prop: "checked", kind: PropDirect, attr: "checked"},
		{name: "content", prop: "content", kind: PropText},
		{name: "raw_inner", prop: "dangerouslySetInnerHTML", kind: PropRawInner},
		{name: "children", prop: "children", kind: PropChildSpec},
		{name: "child_set", prop: "childSet", kind: PropChildSpec},
		{name: "on_click", prop: "onClick", kind: PropEvent},
		{name: "on_key_up", prop: "onKeyUp", kind: PropEvent},
		{name: "unknown", prop: "totallyMadeUp", kind: PropUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := Classify(tc.prop)
			if spec.Kind != tc.kind {
				t.Fatalf("Classify(%q).Kind = %v, want %v", tc.prop, spec.Kind, tc.kind)
			}
			if tc.attr != "" && spec.Attr != tc.attr {
				t.Errorf("Classify(%q).Attr = %q, want %q", tc.prop, spec.Attr, tc.attr)
			}
		})
	}
}

func TestClassifyBooleanAttrs(t *testing.T) {
	for _, prop := range []string{"disabled", "readonly", "required", "autofocus"} {
		spec := Classify(prop)
		if spec.Kind != PropTagAttr {
			t.Errorf("Classify(%q).Kind = %v, want PropTagAttr", prop, spec.Kind)
		}
		if !spec.Bool {
			t.Errorf("Classify(%q).Bool = false, want true", prop)
		}
	}
}

func TestClassifyEventTypes(t *testing.T) {
	tests := []struct {
		prop  string
		event string
	}{
		{"onClick", "click"},
		{"onChange", "change"},
		{"onKeyUp", "keyup"},
		{"onMouseDown", "mousedown"},
	}
	for _, tc := range tests {
		spec := Classify(tc.prop)
		if spec.Kind != PropEvent {
			t.Fatalf("Classify(%q).Kind = %v, want PropEvent", tc.prop, spec.Kind)
		}
		if spec.Event != tc.event {
			t.Errorf("Classify(%q).Event = %q, want %q", tc.prop, spec.Event, tc.event)
		}
	}
}

func TestSerializeStyle(t *testing.T) {
	s := Style{"width": "100px", "color": "red", "display": "block"}
	got := serializeStyle(s)
	want := "color:red;display:block;width:100px"
	if got != want {
		t.Errorf("serializeStyle() = %q, want %q", got, want)
	}

	if serializeStyle(Style{}) != "" {
		t.Errorf("serializeStyle(empty) = %q, want empty", serializeStyle(Style{}))
	}
}

func TestPropToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "hi", "hi"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"float", 1.5, "1.5"},
		{"bool_true", true, "true"},
		{"bool_false", false, "false"},
		{"style", Style{"color": "red"}, "color:red"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := propToString(tc.in); got != tc.want {
				t.Errorf("propToString(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

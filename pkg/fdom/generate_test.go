package fdom

import (
	"strings"
	"testing"

	"github.com/faxui/fax/internal/errors"
)

func mustMarkup(t *testing.T, c *Control, prefix string) string {
	t.Helper()
	g := NewGenerator()
	markup, err := g.Markup(c, prefix)
	if err != nil {
		t.Fatalf("Markup() error = %v", err)
	}
	return markup
}

func TestGenerateBasic(t *testing.T) {
	c := Div(Props{"className": "box", "content": "hi"})
	got := mustMarkup(t, c, ".r")
	want := `<div class="box" id=".r">hi</div>`
	if got != want {
		t.Errorf("markup = %q, want %q", got, want)
	}
	if c.ID() != ".r" {
		t.Errorf("ID() = %q, want %q", c.ID(), ".r")
	}
}

func TestGenerateListChildrenIDs(t *testing.T) {
	c := Div(Props{
		"children": List(
			Span(Props{"content": "a"}),
			Span(Props{"content": "b"}),
		),
	})
	got := mustMarkup(t, c, ".r")
	want := `<div id=".r"><span id=".r.0">a</span><span id=".r.1">b</span></div>`
	if got != want {
		t.Errorf("markup = %q, want %q", got, want)
	}
}

func TestGenerateKeyedChildrenIDs(t *testing.T) {
	c := Ul(Props{
		"children": Keyed(
			Entry("first", Li(Props{"content": "1"})),
			Entry("second", Li(Props{"content": "2"})),
		),
	})
	got := mustMarkup(t, c, ".r")
	want := `<ul id=".r"><li id=".r.first">1</li><li id=".r.second">2</li></ul>`
	if got != want {
		t.Errorf("markup = %q, want %q", got, want)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	build := func() *Control {
		return Div(Props{
			"className": "c",
			"style":     Style{"width": "10px", "color": "red"},
			"children": List(
				Span(Props{"content": "x"}),
				Span(Props{"content": "y"}),
			),
		})
	}
	a := mustMarkup(t, build(), ".r")
	b := mustMarkup(t, build(), ".r")
	if a != b {
		t.Errorf("regeneration differs:\n%s\n%s", a, b)
	}
	if !strings.Contains(a, `style="color:red;width:10px"`) {
		t.Errorf("style not sorted: %s", a)
	}
}

func TestGenerateIDAssignedOnce(t *testing.T) {
	c := Div(Props{"content": "x"})
	mustMarkup(t, c, ".r")
	// Regenerating with a different prefix must not reassign the id.
	got := mustMarkup(t, c, ".other")
	if !strings.Contains(got, `id=".r"`) {
		t.Errorf("id reassigned: %s", got)
	}
}

func TestGenerateVoidElement(t *testing.T) {
	c := Img(Props{"src": "/x.png", "alt": "pic"})
	got := mustMarkup(t, c, ".r")
	want := `<img alt="pic" src="/x.png" id=".r">`
	if got != want {
		t.Errorf("markup = %q, want %q", got, want)
	}
}

func TestGenerateBooleanAttrs(t *testing.T) {
	on := Input(Props{"disabled": true, "type": "text"})
	got := mustMarkup(t, on, ".r")
	want := `<input disabled type="text" id=".r">`
	if got != want {
		t.Errorf("markup = %q, want %q", got, want)
	}

	off := Input(Props{"disabled": false, "type": "text"})
	got = mustMarkup(t, off, ".r2")
	if strings.Contains(got, "disabled") {
		t.Errorf("false boolean attr serialized: %s", got)
	}
}

func TestGenerateEscaping(t *testing.T) {
	c := Span(Props{"content": `a<b&"c"`})
	got := mustMarkup(t, c, ".r")
	want := `<span id=".r">a&lt;b&amp;&quot;c&quot;</span>`
	if got != want {
		t.Errorf("markup = %q, want %q", got, want)
	}

	c2 := Div(Props{"title": `say "hi"`})
	got = mustMarkup(t, c2, ".r2")
	if !strings.Contains(got, `title="say &quot;hi&quot;"`) {
		t.Errorf("attribute not escaped: %s", got)
	}
}

func TestGenerateRawInnerBypassesChildren(t *testing.T) {
	c := Div(Props{
		"dangerouslySetInnerHTML": "<b>raw & unescaped</b>",
		"children":                List(Span(Props{"content": "dropped"})),
	})
	got := mustMarkup(t, c, ".r")
	want := `<div id=".r"><b>raw & unescaped</b></div>`
	if got != want {
		t.Errorf("markup = %q, want %q", got, want)
	}
	if len(c.ChildOrder()) != 0 {
		t.Errorf("children tracked under raw inner: %v", c.ChildOrder())
	}
}

func TestGenerateCollectsHandlers(t *testing.T) {
	clicked := false
	c := Div(Props{
		"children": List(
			Button(Props{"content": "go", "onClick": Handler(func(Event) { clicked = true })}),
		),
	})
	g := NewGenerator()
	if _, err := g.Markup(c, ".r"); err != nil {
		t.Fatalf("Markup() error = %v", err)
	}
	hs := g.Handlers()
	if len(hs) != 1 {
		t.Fatalf("Handlers() = %d bindings, want 1", len(hs))
	}
	if hs[0].NodeID != ".r.0" || hs[0].Event != "click" {
		t.Errorf("binding = %+v, want node .r.0 event click", hs[0])
	}
	hs[0].Handler(Event{})
	if !clicked {
		t.Error("collected handler did not run")
	}
}

func TestGenerateCollectsDirectProps(t *testing.T) {
	c := Input(Props{"type": "text", "value": "seed"})
	g := NewGenerator()
	markup, err := g.Markup(c, ".r")
	if err != nil {
		t.Fatalf("Markup() error = %v", err)
	}
	if strings.Contains(markup, "seed") {
		t.Errorf("direct prop serialized into markup: %s", markup)
	}
	ds := g.DirectProps()
	if len(ds) != 1 {
		t.Fatalf("DirectProps() = %d bindings, want 1", len(ds))
	}
	if ds[0].NodeID != ".r" || ds[0].Name != "value" || ds[0].Value != "seed" {
		t.Errorf("binding = %+v", ds[0])
	}
}

func TestGenerateImplicitChildren(t *testing.T) {
	c := Div(Props{
		"sidebar": Div(Props{"content": "s"}),
		"main":    Div(Props{"content": "m"}),
	})
	got := mustMarkup(t, c, ".r")
	// Implicit children follow sorted name order.
	want := `<div id=".r"><div id=".r.main">m</div><div id=".r.sidebar">s</div></div>`
	if got != want {
		t.Errorf("markup = %q, want %q", got, want)
	}
}

func TestGenerateStrictUnknownProp(t *testing.T) {
	c := Div(Props{"bogus": 12})
	g := NewGenerator(WithGenStrict(true))
	_, err := g.Markup(c, ".r")
	if !errors.IsCode(err, errors.CodeUnknownProperty) {
		t.Fatalf("error = %v, want %s", err, errors.CodeUnknownProperty)
	}

	// Lenient mode skips it.
	if got := mustMarkup(t, Div(Props{"bogus": 12}), ".r"); got != `<div id=".r"></div>` {
		t.Errorf("lenient markup = %q", got)
	}
}

func TestGenerateStrictConflictingChildren(t *testing.T) {
	c := Div(Props{
		"children": List(Span(nil)),
		"childSet": map[string]*Control{"x": Span(nil)},
	})
	g := NewGenerator(WithGenStrict(true))
	_, err := g.Markup(c, ".r")
	if !errors.IsCode(err, errors.CodeConflictingChildSpecs) {
		t.Fatalf("error = %v, want %s", err, errors.CodeConflictingChildSpecs)
	}
}

func TestTagComponentUnknown(t *testing.T) {
	if _, err := TagComponent("blink"); !errors.IsCode(err, errors.CodeUnknownTag) {
		t.Fatalf("error = %v, want %s", err, errors.CodeUnknownTag)
	}
	cc, err := TagComponent("div")
	if err != nil {
		t.Fatalf("TagComponent(div) error = %v", err)
	}
	if cc.Tag() != "div" {
		t.Errorf("Tag() = %q, want div", cc.Tag())
	}
}

func TestUpdateBeforeMountFails(t *testing.T) {
	c := Div(Props{"content": "x"})
	err := c.UpdateAllProps(Props{"content": "y"})
	if !errors.IsCode(err, errors.CodeControlWithoutBackingNode) {
		t.Fatalf("error = %v, want %s", err, errors.CodeControlWithoutBackingNode)
	}
}

package fdom

import (
	"github.com/faxui/fax/internal/errors"
)

// voidElements are tags that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement reports whether the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// ComponentClass is a reusable native tag component: a constructor plus
// markup generation and update behavior shared by every instance. The
// tag name and its open/close strings are sealed at catalog build time.
type ComponentClass struct {
	tag      string
	openTag  string
	closeTag string
	void     bool
}

// Tag returns the host tag name this class renders.
func (cc *ComponentClass) Tag() string { return cc.tag }

// Construct creates an unmounted control with the given properties.
func (cc *ComponentClass) Construct(props Props) *Control {
	if props == nil {
		props = Props{}
	}
	return &Control{class: cc, props: props}
}

// makeTagComponent builds the component class for a tag name. The
// closure over the tag and its sealed open/close strings is shared by
// every instance of the class.
func makeTagComponent(tag string) *ComponentClass {
	return &ComponentClass{
		tag:      tag,
		openTag:  "<" + tag,
		closeTag: "</" + tag + ">",
		void:     voidElements[tag],
	}
}

// catalogTags is the fixed set of native tag components.
var catalogTags = []string{
	"a", "article", "aside", "blockquote", "br", "button", "caption",
	"code", "col", "colgroup", "details", "div", "em", "fieldset",
	"footer", "form", "h1", "h2", "h3", "h4", "h5", "h6", "header",
	"hr", "iframe", "img", "input", "label", "legend", "li", "main",
	"nav", "ol", "optgroup", "option", "p", "pre", "progress",
	"section", "select", "small", "span", "strong", "summary", "table",
	"tbody", "td", "textarea", "tfoot", "th", "thead", "tr", "ul",
}

// catalog holds the component class of each native tag. Built once at
// init and read-only thereafter; it holds no live-document references,
// so no teardown is needed.
var catalog = func() map[string]*ComponentClass {
	m := make(map[string]*ComponentClass, len(catalogTags))
	for _, tag := range catalogTags {
		m[tag] = makeTagComponent(tag)
	}
	return m
}()

// TagComponent returns the catalog class for a native tag.
func TagComponent(tag string) (*ComponentClass, error) {
	cc, ok := catalog[tag]
	if !ok {
		return nil, errors.New(errors.CodeUnknownTag).WithDetail("no catalog component for tag %q", tag)
	}
	return cc, nil
}

// Convenience constructors for the most common catalog components.

func A(props Props) *Control        { return catalog["a"].Construct(props) }
func Button(props Props) *Control   { return catalog["button"].Construct(props) }
func Div(props Props) *Control      { return catalog["div"].Construct(props) }
func Form(props Props) *Control     { return catalog["form"].Construct(props) }
func H1(props Props) *Control       { return catalog["h1"].Construct(props) }
func H2(props Props) *Control       { return catalog["h2"].Construct(props) }
func H3(props Props) *Control       { return catalog["h3"].Construct(props) }
func Img(props Props) *Control      { return catalog["img"].Construct(props) }
func Input(props Props) *Control    { return catalog["input"].Construct(props) }
func Label(props Props) *Control    { return catalog["label"].Construct(props) }
func Li(props Props) *Control       { return catalog["li"].Construct(props) }
func Ol(props Props) *Control       { return catalog["ol"].Construct(props) }
func Option(props Props) *Control   { return catalog["option"].Construct(props) }
func P(props Props) *Control        { return catalog["p"].Construct(props) }
func Section(props Props) *Control  { return catalog["section"].Construct(props) }
func Select(props Props) *Control   { return catalog["select"].Construct(props) }
func Span(props Props) *Control     { return catalog["span"].Construct(props) }
func Table(props Props) *Control    { return catalog["table"].Construct(props) }
func Tbody(props Props) *Control    { return catalog["tbody"].Construct(props) }
func Td(props Props) *Control       { return catalog["td"].Construct(props) }
func Textarea(props Props) *Control { return catalog["textarea"].Construct(props) }
func Th(props Props) *Control       { return catalog["th"].Construct(props) }
func Thead(props Props) *Control    { return catalog["thead"].Construct(props) }
func Tr(props Props) *Control       { return catalog["tr"].Construct(props) }
func Ul(props Props) *Control       { return catalog["ul"].Construct(props) }

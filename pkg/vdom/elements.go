package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, string (text child).
// Later attributes override earlier ones with the same key, keeping the
// position of the first.
func El(tag string, args ...any) *VNode {
	return createElement(tag, args)
}

// createElement creates a new VNode with the given tag and arguments.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind: KindElement,
		Tag:  tag,
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue

		case Attr:
			node.setAttr(v)

		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case string:
			// Shorthand for text node
			node.Children = append(node.Children, Text(v))
		}
	}

	return node
}

// Content sectioning elements

func Header(args ...any) *VNode  { return createElement("header", args) }
func Footer(args ...any) *VNode  { return createElement("footer", args) }
func Main(args ...any) *VNode    { return createElement("main", args) }
func Nav(args ...any) *VNode     { return createElement("nav", args) }
func Section(args ...any) *VNode { return createElement("section", args) }
func H1(args ...any) *VNode      { return createElement("h1", args) }
func H2(args ...any) *VNode      { return createElement("h2", args) }
func H3(args ...any) *VNode      { return createElement("h3", args) }

// Text content elements

func Div(args ...any) *VNode  { return createElement("div", args) }
func P(args ...any) *VNode    { return createElement("p", args) }
func Span(args ...any) *VNode { return createElement("span", args) }
func Ul(args ...any) *VNode   { return createElement("ul", args) }
func Ol(args ...any) *VNode   { return createElement("ol", args) }
func Li(args ...any) *VNode   { return createElement("li", args) }
func Hr(args ...any) *VNode   { return createElement("hr", args) }

// Inline and form elements

func A(args ...any) *VNode        { return createElement("a", args) }
func Strong(args ...any) *VNode   { return createElement("strong", args) }
func Em(args ...any) *VNode       { return createElement("em", args) }
func Code(args ...any) *VNode     { return createElement("code", args) }
func Img(args ...any) *VNode      { return createElement("img", args) }
func Button(args ...any) *VNode   { return createElement("button", args) }
func Input(args ...any) *VNode    { return createElement("input", args) }
func Label(args ...any) *VNode    { return createElement("label", args) }
func Form(args ...any) *VNode     { return createElement("form", args) }
func Textarea(args ...any) *VNode { return createElement("textarea", args) }

// Table elements

func Table(args ...any) *VNode { return createElement("table", args) }
func Tr(args ...any) *VNode    { return createElement("tr", args) }
func Td(args ...any) *VNode    { return createElement("td", args) }
func Th(args ...any) *VNode    { return createElement("th", args) }

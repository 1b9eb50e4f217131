// Package treedoc reads and writes trees and patch lists as YAML or JSON
// documents.
//
// A tree document is a node:
//
//	tag: ul
//	attrs:
//	  class: list
//	children:
//	  - tag: li
//	    children: [one]
//	  - text: two
//
// An element has "tag" and optional "attrs" and "children"; a text node has
// only "text". A bare scalar in a children list is shorthand for a text node.
// Attribute order is preserved.
package treedoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vcore/internal/errors"
	"github.com/vango-dev/vcore/pkg/vdom"
)

// Node is the document form of a vdom.VNode.
type Node struct {
	Tag      string  `json:"tag,omitempty" yaml:"tag,omitempty"`
	Attrs    Attrs   `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`

	// Text is set for text nodes, including empty ones.
	Text *string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Attrs is an ordered attribute list encoded as a mapping.
type Attrs []vdom.Attr

// MarshalJSON encodes the attributes as an object in list order.
func (a Attrs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(attr.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(attr.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the attributes as a mapping in list order.
func (a Attrs) MarshalYAML() (any, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, attr := range a {
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: attr.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: attr.Value},
		)
	}
	return m, nil
}

// UnmarshalYAML decodes a node, reporting malformed input with its position.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	decoded, err := decodeNode(value, "")
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}

// FromVNode converts a tree to its document form. A nil tree yields nil.
func FromVNode(v *vdom.VNode) *Node {
	if v == nil {
		return nil
	}
	if v.Kind == vdom.KindText {
		text := v.Text
		return &Node{Text: &text}
	}
	n := &Node{Tag: v.Tag}
	if len(v.Attrs) > 0 {
		n.Attrs = append(Attrs(nil), v.Attrs...)
	}
	for _, c := range v.Children {
		n.Children = append(n.Children, FromVNode(c))
	}
	return n
}

// VNode converts the document form back to a tree.
func (n *Node) VNode() *vdom.VNode {
	if n == nil {
		return nil
	}
	if n.Text != nil {
		return vdom.Text(*n.Text)
	}
	children := make([]*vdom.VNode, 0, len(n.Children))
	for _, c := range n.Children {
		children = append(children, c.VNode())
	}
	return vdom.Element(n.Tag, n.Attrs, children...)
}

// Decode parses a YAML or JSON tree document. filename is used in error
// locations and may be empty.
func Decode(data []byte, filename string) (*vdom.VNode, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		e := errors.New("E120").Wrap(err)
		if filename != "" {
			e.Location = &errors.Location{File: filename}
		}
		return nil, e
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		e := errors.New("E120").WithDetail("The document is empty.")
		if filename != "" {
			e.Location = &errors.Location{File: filename}
		}
		return nil, e
	}

	n, err := decodeNode(doc.Content[0], filename)
	if err != nil {
		return nil, err
	}
	return n.VNode(), nil
}

// ReadFile reads and decodes the tree document at path.
func ReadFile(path string) (*vdom.VNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E140").WithDetail("Cannot read " + path).Wrap(err)
	}
	return Decode(data, path)
}

// decodeNode walks one YAML node.
func decodeNode(y *yaml.Node, filename string) (*Node, error) {
	fail := func(at *yaml.Node, code string) *errors.Error {
		e := errors.New(code)
		if filename != "" {
			return e.WithLocation(filename, at.Line, at.Column)
		}
		e.Location = &errors.Location{File: "<input>", Line: at.Line, Column: at.Column}
		return e
	}

	if y.Kind == yaml.AliasNode && y.Alias != nil {
		y = y.Alias
	}

	switch y.Kind {
	case yaml.ScalarNode:
		text := y.Value
		return &Node{Text: &text}, nil
	case yaml.MappingNode:
	default:
		return nil, fail(y, "E121")
	}

	var (
		n          Node
		hasTag     bool
		attrsNode  *yaml.Node
		childNodes *yaml.Node
	)
	for i := 0; i+1 < len(y.Content); i += 2 {
		key, val := y.Content[i], y.Content[i+1]
		switch key.Value {
		case "tag":
			if val.Kind != yaml.ScalarNode || val.Value == "" {
				return nil, fail(val, "E121")
			}
			n.Tag = val.Value
			hasTag = true
		case "text":
			if val.Kind != yaml.ScalarNode {
				return nil, fail(val, "E121")
			}
			text := val.Value
			if val.Tag == "!!null" {
				text = ""
			}
			n.Text = &text
		case "attrs":
			attrsNode = val
		case "children":
			childNodes = val
		default:
			return nil, fail(key, "E126").WithSuggestionf("Unexpected field %q", key.Value)
		}
	}

	switch {
	case hasTag && n.Text != nil:
		return nil, fail(y, "E122")
	case !hasTag && n.Text == nil:
		return nil, fail(y, "E121")
	case n.Text != nil && (attrsNode != nil || childNodes != nil):
		return nil, fail(y, "E127")
	}

	if attrsNode != nil && attrsNode.Tag != "!!null" {
		if attrsNode.Kind != yaml.MappingNode {
			return nil, fail(attrsNode, "E123")
		}
		seen := make(map[string]struct{}, len(attrsNode.Content)/2)
		for i := 0; i+1 < len(attrsNode.Content); i += 2 {
			key, val := attrsNode.Content[i], attrsNode.Content[i+1]
			if key.Kind != yaml.ScalarNode || val.Kind != yaml.ScalarNode {
				return nil, fail(val, "E123")
			}
			if _, dup := seen[key.Value]; dup {
				return nil, fail(key, "E125").WithSuggestionf("Attribute %q", key.Value)
			}
			seen[key.Value] = struct{}{}
			value := val.Value
			if val.Tag == "!!null" {
				value = ""
			}
			n.Attrs = append(n.Attrs, vdom.Attr{Key: key.Value, Value: value})
		}
	}

	if childNodes != nil && childNodes.Tag != "!!null" {
		if childNodes.Kind != yaml.SequenceNode {
			return nil, fail(childNodes, "E124")
		}
		for _, c := range childNodes.Content {
			child, err := decodeNode(c, filename)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		}
	}

	return &n, nil
}

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", errors.New("E141").WithSuggestionf("Got %q", s)
}

// marshal encodes v as JSON or YAML.
func marshal(v any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("treedoc: cannot marshal %s", format)
}

// EncodeTree encodes a tree as a JSON or YAML document.
func EncodeTree(v *vdom.VNode, format Format) ([]byte, error) {
	return marshal(FromVNode(v), format)
}

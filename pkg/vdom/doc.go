// Package vdom provides the virtual tree model and diff algorithm for vcore.
//
// A VNode is an immutable description of a UI tree: element nodes with a tag,
// an ordered attribute list and ordered children, or text leaves. A new tree
// is built on every render pass; node identity is purely positional.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	)
//
// # Diffing
//
// Diff compares two trees and returns an ordered list of Patch operations,
// each addressed by a Path of child indices from the root (the root itself is
// Path{0}). Children are reconciled by index only: inserting into the middle
// of a list rewrites every following sibling rather than producing a single
// insert.
//
// Patches must be applied in order. There is no attribute removal operation:
// a SetAttribute patch with an empty value means "remove this attribute".
package vdom

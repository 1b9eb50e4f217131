// Package livetree is an in-memory live tree that consumes vdom patches.
//
// It is the reference implementation of the patch consumer contract: a patch
// path is resolved by walking child-at-index from the root (the root is
// path [0]) and the mutation is applied in place. A SetAttribute patch with
// an empty value removes the attribute.
//
// Platform renderers (DOM, native toolkits) follow the same contract; tests
// use livetree to check that applying Diff(a, b) to a tree built from a
// reproduces b.
//
//	tree := livetree.Build(prev)
//	if err := tree.Apply(vdom.Diff(prev, next)); err != nil {
//	    return err
//	}
//	vdom.Equal(tree.Snapshot(), next) // true, up to attribute order
package livetree

package vdom

// Diff compares two VNode trees and returns the patches needed to transform
// prev into next, rooted at Path{0}.
//
// Patches are emitted in pre-order, attributes before children, and must be
// applied in that order.
func Diff(prev, next *VNode) []Patch {
	var patches []Patch
	diff(prev, next, Path{0}, &patches)
	return patches
}

// diff recursively compares nodes and appends patches.
func diff(prev, next *VNode, path Path, patches *[]Patch) {
	// Both nil - nothing to do
	if prev == nil && next == nil {
		return
	}

	// Nothing rendered before - replace the placeholder
	if prev == nil {
		*patches = append(*patches, Patch{
			Op:   PatchReplace,
			Path: path,
			Node: next,
		})
		return
	}

	// Node removed
	if next == nil {
		*patches = append(*patches, Patch{
			Op:   PatchRemove,
			Path: path,
		})
		return
	}

	switch {
	case prev.Kind == KindText && next.Kind == KindText:
		diffText(prev, next, path, patches)
	case prev.Kind == KindElement && next.Kind == KindElement && prev.Tag == next.Tag:
		diffAttrs(prev, next, path, patches)
		diffChildren(prev, next, path, patches)
	default:
		// Different tag or element/text mismatch - replace entire subtree
		*patches = append(*patches, Patch{
			Op:   PatchReplace,
			Path: path,
			Node: next,
		})
	}
}

// diffText compares text nodes.
func diffText(prev, next *VNode, path Path, patches *[]Patch) {
	if prev.Text != next.Text {
		*patches = append(*patches, Patch{
			Op:    PatchUpdateText,
			Path:  path,
			Value: next.Text,
		})
	}
}

// diffAttrs emits SetAttribute for every attribute of next that is new or
// changed, in next's order, then SetAttribute with an empty value for every
// attribute that next dropped.
func diffAttrs(prev, next *VNode, path Path, patches *[]Patch) {
	for _, a := range next.Attrs {
		if old, ok := prev.Attr(a.Key); ok && old == a.Value {
			continue
		}
		*patches = append(*patches, Patch{
			Op:    PatchSetAttribute,
			Path:  path,
			Key:   a.Key,
			Value: a.Value,
		})
	}

	for _, a := range prev.Attrs {
		if a.Value == "" {
			continue // already cleared
		}
		if _, ok := next.Attr(a.Key); ok {
			continue
		}
		*patches = append(*patches, Patch{
			Op:   PatchSetAttribute,
			Path: path,
			Key:  a.Key,
		})
	}
}

// diffChildren compares child lists by position. Shared indices recurse,
// surplus new children are appended to the parent, and surplus old children
// are removed from the highest index down so each removal path is still
// valid when it is applied.
func diffChildren(prev, next *VNode, path Path, patches *[]Patch) {
	prevChildren := prev.Children
	nextChildren := next.Children

	shared := len(prevChildren)
	if len(nextChildren) < shared {
		shared = len(nextChildren)
	}

	for i := 0; i < shared; i++ {
		diff(prevChildren[i], nextChildren[i], path.Child(i), patches)
	}

	for i := shared; i < len(nextChildren); i++ {
		if nextChildren[i] == nil {
			continue
		}
		*patches = append(*patches, Patch{
			Op:   PatchAppend,
			Path: path,
			Node: nextChildren[i],
		})
	}

	for i := len(prevChildren) - 1; i >= shared; i-- {
		*patches = append(*patches, Patch{
			Op:   PatchRemove,
			Path: path.Child(i),
		})
	}
}

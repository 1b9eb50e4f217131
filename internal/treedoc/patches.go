package treedoc

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vcore/internal/errors"
	"github.com/vango-dev/vcore/pkg/vdom"
)

// Patch is the document form of a vdom.Patch.
type Patch struct {
	Op    string `json:"op" yaml:"op"`
	Path  []int  `json:"path" yaml:"path,flow"`
	Key   string `json:"key,omitempty" yaml:"key,omitempty"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
	Node  *Node  `json:"node,omitempty" yaml:"node,omitempty"`
}

// FromPatches converts patches to their document form.
func FromPatches(patches []vdom.Patch) []Patch {
	out := make([]Patch, 0, len(patches))
	for _, p := range patches {
		out = append(out, Patch{
			Op:    p.Op.String(),
			Path:  append([]int(nil), p.Path...),
			Key:   p.Key,
			Value: p.Value,
			Node:  FromVNode(p.Node),
		})
	}
	return out
}

// ToPatches converts documents back to patches.
func ToPatches(docs []Patch) ([]vdom.Patch, error) {
	out := make([]vdom.Patch, 0, len(docs))
	for i, d := range docs {
		op, err := vdom.ParsePatchOp(d.Op)
		if err != nil {
			return nil, errors.New("E120").
				WithDetail("Patch " + strconv.Itoa(i) + " has an unknown operation.").
				Wrap(err)
		}
		out = append(out, vdom.Patch{
			Op:    op,
			Path:  vdom.Path(d.Path),
			Key:   d.Key,
			Value: d.Value,
			Node:  d.Node.VNode(),
		})
	}
	return out, nil
}

// EncodePatches renders patches as text (one per line), JSON or YAML.
func EncodePatches(patches []vdom.Patch, format Format) ([]byte, error) {
	if format == FormatText {
		var sb strings.Builder
		for _, p := range patches {
			sb.WriteString(p.String())
			sb.WriteByte('\n')
		}
		return []byte(sb.String()), nil
	}
	return marshal(FromPatches(patches), format)
}

// DecodePatches parses a JSON or YAML patch list.
func DecodePatches(data []byte, filename string) ([]vdom.Patch, error) {
	var docs []Patch
	if err := yaml.Unmarshal(data, &docs); err != nil {
		e := errors.FromError(err, "E120")
		if e.Location == nil && filename != "" {
			e.Location = &errors.Location{File: filename}
		} else if e.Location != nil && filename != "" {
			e.Location.File = filename
		}
		return nil, e
	}
	return ToPatches(docs)
}

// ReadPatchesFile reads and decodes the patch list at path.
func ReadPatchesFile(path string) ([]vdom.Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E140").WithDetail("Cannot read " + path).Wrap(err)
	}
	return DecodePatches(data, path)
}

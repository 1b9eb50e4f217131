package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vcore/internal/errors"
	"github.com/vango-dev/vcore/internal/treedoc"
	"github.com/vango-dev/vcore/pkg/livetree"
	"github.com/vango-dev/vcore/pkg/vdom"
)

func diffCmd(a *app) *cobra.Command {
	var (
		format string
		verify bool
	)

	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Print the patches that turn one tree document into another",
		Long: `Diff reads two tree documents (YAML or JSON) and prints the patch list
that transforms OLD into NEW.

With --verify the patches are applied to OLD and the result is checked
against NEW before anything is printed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := treedoc.ParseFormat(format)
			if err != nil {
				return err
			}

			prev, err := treedoc.ReadFile(args[0])
			if err != nil {
				return err
			}
			next, err := treedoc.ReadFile(args[1])
			if err != nil {
				return err
			}

			patches := vdom.Diff(prev, next)
			a.logger.Debug("diff computed",
				"old_nodes", vdom.CountNodes(prev),
				"new_nodes", vdom.CountNodes(next),
				"patches", len(patches),
			)

			if verify {
				if err := verifyPatches(prev, next, patches); err != nil {
					return err
				}
			}

			data, err := treedoc.EncodePatches(patches, f)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&verify, "verify", false, "Check that the patches reproduce NEW")

	return cmd
}

// verifyPatches applies patches to a live copy of prev and compares the
// result with next.
func verifyPatches(prev, next *vdom.VNode, patches []vdom.Patch) error {
	tree := livetree.Build(prev)
	if err := tree.Apply(patches); err != nil {
		return errors.New("E142").Wrap(err)
	}
	if !livetree.EqualIgnoringAttrOrder(tree.Snapshot(), next) {
		return errors.New("E142").Wrap(fmt.Errorf("patched tree:\n%s", tree))
	}
	return nil
}

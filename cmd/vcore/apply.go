package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vcore/internal/treedoc"
	"github.com/vango-dev/vcore/pkg/livetree"
)

func applyCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "apply TREE PATCHES",
		Short: "Apply a patch list to a tree document",
		Long: `Apply builds a live tree from TREE, applies the patches in PATCHES in
order, and prints the resulting tree. Patches use the JSON or YAML form
printed by "vcore diff --format json|yaml".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := treedoc.ParseFormat(format)
			if err != nil {
				return err
			}

			root, err := treedoc.ReadFile(args[0])
			if err != nil {
				return err
			}
			patches, err := treedoc.ReadPatchesFile(args[1])
			if err != nil {
				return err
			}

			tree := livetree.Build(root)
			if err := tree.Apply(patches); err != nil {
				return fmt.Errorf("apply %s: %w", args[1], err)
			}
			a.logger.Debug("patches applied", "count", tree.Applied())

			out := cmd.OutOrStdout()
			if f == treedoc.FormatText {
				_, err := fmt.Fprint(out, tree.String())
				return err
			}
			data, err := treedoc.EncodeTree(tree.Snapshot(), f)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or yaml")

	return cmd
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/eflow-hydraulics/hdf-inspector/pkg/inspector"
)

var (
	structureMaxDepth   int
	structureAttributes bool
)

var structureCmd = &cobra.Command{
	Use:   "structure <file>",
	Short: "Print the group/dataset tree of an HDF5 file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ins, err := newInspector()
		if err != nil {
			return err
		}
		st, err := ins.Structure(cmd.Context(), args[0], inspector.StructureOptions{
			MaxDepth:          structureMaxDepth,
			IncludeAttributes: structureAttributes,
		})
		return emit(st, err)
	},
}

func init() {
	rootCmd.AddCommand(structureCmd)
	structureCmd.Flags().IntVar(&structureMaxDepth, "max-depth", 3, "Maximum tree depth below the root (-1 for unbounded)")
	structureCmd.Flags().BoolVar(&structureAttributes, "include-attributes", false, "Include entry attributes in the tree")
}

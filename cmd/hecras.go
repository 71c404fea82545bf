package cmd

import (
	"github.com/spf13/cobra"
)

var hecrasCmd = &cobra.Command{
	Use:   "hecras <file>",
	Short: "Extract known HEC-RAS geometry and results datasets",
	Long: `Scan the file's dataset paths against the built-in HEC-RAS pattern
table and report a bounded sample of every match, split into geometry
and results buckets, plus a found/not-found checklist per category.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ins, err := newInspector()
		if err != nil {
			return err
		}
		data, err := ins.Extract(cmd.Context(), args[0])
		return emit(data, err)
	},
}

func init() {
	rootCmd.AddCommand(hecrasCmd)
}

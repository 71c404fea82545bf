package cmd

import (
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <folder>",
	Short: "Recursively list HDF5 files under a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ins, err := newInspector()
		if err != nil {
			return err
		}
		files, err := ins.Find(cmd.Context(), args[0])
		return emit(files, err)
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
}

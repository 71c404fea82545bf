package cmd

import (
	"github.com/spf13/cobra"
)

var datasetsLimit int

var datasetsCmd = &cobra.Command{
	Use:   "datasets <file>",
	Short: "List all dataset paths in an HDF5 file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ins, err := newInspector()
		if err != nil {
			return err
		}
		paths, err := ins.Datasets(cmd.Context(), args[0])
		if err == nil && datasetsLimit > 0 && len(paths) > datasetsLimit {
			paths = paths[:datasetsLimit]
		}
		return emit(paths, err)
	},
}

func init() {
	rootCmd.AddCommand(datasetsCmd)
	datasetsCmd.Flags().IntVar(&datasetsLimit, "limit", 50, "Maximum number of paths to print (0 for all)")
}

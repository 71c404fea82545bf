package cmd

import (
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show basic information about an HDF5 file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ins, err := newInspector()
		if err != nil {
			return err
		}
		return emit(ins.Info(cmd.Context(), args[0]), nil)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

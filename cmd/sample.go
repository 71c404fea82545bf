package cmd

import (
	"github.com/spf13/cobra"
)

var sampleMaxElements int

var sampleCmd = &cobra.Command{
	Use:   "sample <file> <dataset-path>",
	Short: "Read the first elements of one dataset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ins, err := newInspector()
		if err != nil {
			return err
		}
		vals, err := ins.Sample(cmd.Context(), args[0], args[1], sampleMaxElements)
		return emit(vals, err)
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().IntVarP(&sampleMaxElements, "max-elements", "n", 10, "Maximum number of elements to read")
}

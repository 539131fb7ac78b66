package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thruflo/stepviz/internal/scan"
)

var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List the scans 'stepviz scan' can run",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listAlgorithms(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(algorithmsCmd)
}

func listAlgorithms(w io.Writer) error {
	for _, name := range scan.Names() {
		if _, err := fmt.Fprintf(w, "%-8s %s\n", name, scan.Describe(name)); err != nil {
			return err
		}
	}
	return nil
}

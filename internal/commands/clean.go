package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cofrinho-app/cofrinho/internal/descriptor"
)

func newCleanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean <descriptor>",
		Short: "Print a bank statement descriptor with boilerplate removed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), descriptor.Clean(strings.Join(args, " ")))
			return nil
		},
	}
}

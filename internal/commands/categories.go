package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cofrinho-app/cofrinho/internal/categories"
	"github.com/cofrinho-app/cofrinho/internal/logger"
)

func newCategoriesCommand() *cobra.Command {
	var repo string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories and their keywords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCategories(cmd.Context(), cmd.OutOrStdout(), repo)
		},
	}

	addRepoFlag(cmd, &repo)
	return cmd
}

// runCategories lists the project table, or the built-in one outside a project.
func runCategories(ctx context.Context, out io.Writer, repo string) error {
	table := categories.Default()
	p, err := openProject(repo, logger.FromContext(ctx))
	switch {
	case err == nil:
		table = p.table
	case !errors.Is(err, errNotProject):
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tICON\tKEYWORDS")
	for _, c := range table.All() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Icon, strings.Join(c.Keywords, ", "))
	}
	return w.Flush()
}

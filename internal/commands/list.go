package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cofrinho-app/cofrinho/internal/amount"
	"github.com/cofrinho-app/cofrinho/internal/ledger"
	"github.com/cofrinho-app/cofrinho/internal/logger"
)

const listDateFormat = "02/01/2006"

func newListCommand() *cobra.Command {
	var repo string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the most recent transactions and the balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.Context(), cmd.OutOrStdout(), repo, limit)
		},
	}

	addRepoFlag(cmd, &repo)
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of transactions to show")

	return cmd
}

func runList(ctx context.Context, out io.Writer, repo string, limit int) error {
	p, err := openProject(repo, logger.FromContext(ctx))
	if err != nil {
		return err
	}

	all, err := p.ledger.All()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, txn := range ledger.Recent(all, limit) {
		name := txn.CategoryID
		if cat, ok := p.table.Get(txn.CategoryID); ok {
			name = cat.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", txn.Date.Format(listDateFormat), amount.FormatBRL(txn.Signed()), name, txn.Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Saldo: %s\n", amount.FormatBRL(ledger.Balance(all)))
	return nil
}

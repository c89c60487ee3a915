package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cofrinho-app/cofrinho/internal/amount"
	"github.com/cofrinho-app/cofrinho/internal/id"
	"github.com/cofrinho-app/cofrinho/internal/logger"
	"github.com/cofrinho-app/cofrinho/internal/model"
	"github.com/cofrinho-app/cofrinho/internal/smartinput"
)

const dateFlagFormat = "2006-01-02"

var errNoAmount = errors.New("informe um valor")

func newAddCommand() *cobra.Command {
	var repo, date string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Record a transaction from free text, e.g. \"almoço 35,90\"",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := entryDate(date, time.Now())
			if err != nil {
				return err
			}
			return runAdd(cmd.Context(), cmd.OutOrStdout(), repo, strings.Join(args, " "), day)
		},
	}

	addRepoFlag(cmd, &repo)
	cmd.Flags().StringVar(&date, "date", "", "transaction date as YYYY-MM-DD (default today)")

	return cmd
}

// entryDate returns noon UTC of the flag date, or of today's local date.
func entryDate(flag string, now time.Time) (time.Time, error) {
	if flag == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(dateFlagFormat, flag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: want YYYY-MM-DD", flag)
	}
	return d.Add(12 * time.Hour), nil
}

func runAdd(ctx context.Context, out io.Writer, repo, text string, date time.Time) error {
	p, err := openProject(repo, logger.FromContext(ctx))
	if err != nil {
		return err
	}

	parsed := smartinput.NewParser(p.table).Parse(text)
	txn, ok := smartinput.ToTransaction(parsed, id.New(), date)
	if !ok {
		return errNoAmount
	}

	if _, err := p.ledger.Append([]model.Transaction{txn}); err != nil {
		return err
	}

	if _, err := p.commit("add: "+txn.Description, "ledger"); err != nil {
		return err
	}

	fmt.Fprintf(out, "added %s %s [%s] %s\n", txn.Type, amount.FormatBRL(txn.Amount), parsed.GuessedCategory.Name, txn.Description)
	return nil
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cofrinho-app/cofrinho/internal/amount"
	"github.com/cofrinho-app/cofrinho/internal/config"
	"github.com/cofrinho-app/cofrinho/internal/insight"
	"github.com/cofrinho-app/cofrinho/internal/ledger"
	"github.com/cofrinho-app/cofrinho/internal/logger"
)

func newInsightCommand() *cobra.Command {
	var repo string

	cmd := &cobra.Command{
		Use:   "insight",
		Short: "Print a short tip based on recent transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInsight(cmd.Context(), cmd.OutOrStdout(), repo)
		},
	}

	addRepoFlag(cmd, &repo)
	return cmd
}

func runInsight(ctx context.Context, out io.Writer, repo string) error {
	log := logger.FromContext(ctx)
	p, err := openProject(repo, log)
	if err != nil {
		return err
	}
	if !p.cfg.Insight.Enabled {
		return errors.New("insight is disabled in " + config.FileName)
	}

	if err := config.LoadEnv(p.root); err != nil {
		return err
	}

	all, err := p.ledger.All()
	if err != nil {
		return err
	}
	recent := ledger.Recent(all, insight.MaxRecent)
	balance := ledger.Balance(all)

	var gen insight.Generator
	if key := config.APIKey(); key == "" {
		log.Warn().Msg("GEMINI_API_KEY not set, using a static tip")
	} else if len(recent) > 0 {
		g, err := insight.NewGemini(ctx, key, p.cfg.Insight.Model)
		if err != nil {
			gen = insight.Unavailable(err)
		} else {
			gen = g
		}
	}

	fmt.Fprintf(out, "Saldo: %s\n", amount.FormatBRL(balance))
	fmt.Fprintln(out, insight.NewService(gen, log).Tip(ctx, recent, balance))
	return nil
}

package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cofrinho-app/cofrinho/internal/importer"
	"github.com/cofrinho-app/cofrinho/internal/importlog"
	"github.com/cofrinho-app/cofrinho/internal/logger"
)

// maxParallelParse bounds how many statement files are parsed at once.
const maxParallelParse = 4

func addRepoFlag(cmd *cobra.Command, repo *string) {
	cmd.Flags().StringVar(repo, "repo", ".", "cofrinho project directory")
}

func newImportCommand() *cobra.Command {
	var repo, format string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import bank statement CSV files into the ledger",
		Long: "Import bank statement CSV files into the ledger.\n\n" +
			"With no files, every CSV in import/ is imported and then moved to import/processed/.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), cmd.OutOrStdout(), repo, args, format, dryRun)
		},
	}

	addRepoFlag(cmd, &repo)
	cmd.Flags().StringVar(&format, "format", "", "statement format (default from cofrinho.yaml)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be imported without writing")

	return cmd
}

// importFile is one statement queued for import.
type importFile struct {
	name  string
	path  string
	inbox bool // lives in import/ and is moved once imported
}

type parseResult struct {
	report importer.Report
	err    error
}

func runImport(ctx context.Context, out io.Writer, repo string, args []string, format string, dryRun bool) error {
	log := logger.FromContext(ctx)
	p, err := openProject(repo, log)
	if err != nil {
		return err
	}

	if format == "" {
		format = p.cfg.Import.Format
	}
	registry := importer.DefaultRegistry(p.table, log)
	parser := registry.Get(format)
	if parser == nil {
		return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(registry.Formats(), ", "))
	}

	files, err := collectFiles(p.root, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "nothing to import")
		return nil
	}

	// Parse concurrently; a failing file never cancels the others.
	results := make([]parseResult, len(files))
	var g errgroup.Group
	g.SetLimit(maxParallelParse)
	for i, f := range files {
		g.Go(func() error {
			rep, err := importer.ParseFile(parser, f.path)
			results[i] = parseResult{report: rep, err: err}
			return nil
		})
	}
	// Per-file errors are kept in results; the closures never return one.
	_ = g.Wait()

	var failed, imported int
	var entries []importlog.Entry
	for i, f := range files {
		res := results[i]
		if res.err != nil {
			failed++
			fmt.Fprintf(out, "%s: error: %v\n", f.name, res.err)
			continue
		}

		txns := res.report.Transactions
		skipped := len(res.report.Skipped)
		if dryRun {
			preview, err := p.ledger.Preview(txns)
			if err != nil {
				failed++
				fmt.Fprintf(out, "%s: error: %v\n", f.name, err)
				continue
			}
			fmt.Fprintf(out, "%s: would import %d, duplicates %d, skipped %d\n", f.name, preview.Added, preview.Duplicates, skipped)
			continue
		}

		added, err := p.ledger.Append(txns)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s: error: %v\n", f.name, err)
			continue
		}
		imported += added.Added
		fmt.Fprintf(out, "%s: imported %d, duplicates %d, skipped %d\n", f.name, added.Added, added.Duplicates, skipped)
		log.Info().Str("file", f.name).Int("imported", added.Added).Int("duplicates", added.Duplicates).
			Int("skipped", skipped).Msg("statement imported")

		// The ledger already holds these rows, so a failed move is reported
		// and the run still commits and logs them.
		if f.inbox {
			if err := importer.MarkProcessed(p.root, f.name); err != nil {
				failed++
				fmt.Fprintf(out, "%s: error: %v\n", f.name, err)
				log.Warn().Err(err).Str("file", f.name).Msg("statement left in import/")
			}
		}
		entries = append(entries, importlog.Entry{
			Timestamp:  time.Now().UTC(),
			File:       f.name,
			Format:     parser.Format(),
			Imported:   added.Added,
			Duplicates: added.Duplicates,
			Skipped:    skipped,
		})
	}

	if len(entries) > 0 {
		// The log row carries the hash of the commit holding its ledger
		// change, so the log itself lands in the following commit.
		hash, err := p.commit(fmt.Sprintf("import: %d transactions from %d files", imported, len(entries)), "ledger", "import", "logs")
		if err != nil {
			return err
		}
		for i := range entries {
			entries[i].CommitHash = hash
		}
		if err := importlog.Append(p.root, entries); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to import", failed, len(files))
	}
	return nil
}

// collectFiles resolves the files named on the command line, or scans the
// import directory when none are given.
func collectFiles(root string, args []string) ([]importFile, error) {
	inboxDir := filepath.Join(root, "import")
	if len(args) == 0 {
		scanned, err := importer.Scan(root)
		if err != nil {
			return nil, err
		}
		files := make([]importFile, len(scanned))
		for i, f := range scanned {
			files[i] = importFile{name: f.Name, path: f.Path, inbox: true}
		}
		return files, nil
	}

	files := make([]importFile, len(args))
	for i, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", arg, err)
		}
		files[i] = importFile{
			name:  filepath.Base(abs),
			path:  abs,
			inbox: filepath.Dir(abs) == inboxDir,
		}
	}
	return files, nil
}

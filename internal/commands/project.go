package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/cofrinho-app/cofrinho/internal/categories"
	"github.com/cofrinho-app/cofrinho/internal/config"
	"github.com/cofrinho-app/cofrinho/internal/gitops"
	"github.com/cofrinho-app/cofrinho/internal/ledger"
)

var errNotProject = errors.New("not a cofrinho project")

// project is an initialized cofrinho directory.
type project struct {
	root   string
	cfg    *config.Config
	table  *categories.Table
	ledger *ledger.Store
	log    zerolog.Logger
}

func openProject(dir string, log zerolog.Logger) (*project, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w (run \"cofrinho init\" first)", root, errNotProject)
	}
	if err != nil {
		return nil, err
	}

	table, err := categories.Load(root, categories.Defaults{
		ExpenseID: cfg.Categories.OtherID,
		IncomeID:  cfg.Categories.IncomeID,
	})
	if err != nil {
		return nil, err
	}

	return &project{
		root:   root,
		cfg:    cfg,
		table:  table,
		ledger: ledger.NewStore(root, table),
		log:    log,
	}, nil
}

// commit records paths in git when auto-commit is on. It returns "" when
// nothing was committed.
func (p *project) commit(message string, paths ...string) (string, error) {
	if !p.cfg.Git.AutoCommit || !gitops.IsRepo(p.root) {
		return "", nil
	}
	hash, err := gitops.Commit(p.root, message, gitops.Author{
		Name:  p.cfg.Git.AuthorName,
		Email: p.cfg.Git.AuthorEmail,
	}, paths...)
	if err != nil {
		return "", err
	}
	if hash != "" {
		p.log.Info().Str("commit", hash).Msg(message)
	}
	return hash, nil
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/kiala-nvumbi/DINK1/internal/config"
	"github.com/kiala-nvumbi/DINK1/internal/format"
	"github.com/kiala-nvumbi/DINK1/internal/gitops"
	"github.com/kiala-nvumbi/DINK1/internal/ledger"
	"github.com/kiala-nvumbi/DINK1/internal/logging"
	"github.com/kiala-nvumbi/DINK1/internal/model"
	"github.com/kiala-nvumbi/DINK1/internal/storage"
	"github.com/kiala-nvumbi/DINK1/internal/tenants"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	repo    string
	company string
	profile string
	year    int
}

// workspace is an opened DINK directory: its config, tenant registry,
// ledger storage and git repository.
type workspace struct {
	dir      string
	cfg      *config.Config
	registry *tenants.Registry
	repo     storage.Repository
	svc      *ledger.Service
	git      *gitops.Repo
	logger   *zap.Logger
	flags    *globalFlags
}

func openWorkspace(ctx context.Context, flags *globalFlags) (*workspace, error) {
	dir, err := filepath.Abs(flags.repo)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s is not a DINK workspace (run `dink init`)", dir)
	}
	if err != nil {
		return nil, err
	}

	registry, err := tenants.Load(filepath.Join(dir, tenants.FileName))
	if err != nil {
		return nil, err
	}

	repo, err := storage.Open(ctx, cfg.Storage.Backend, filepath.Join(dir, cfg.Storage.Path))
	if err != nil {
		return nil, err
	}

	// Built last so no error path leaves an unsynced logger behind.
	logger, err := logging.New(cfg.Log.Level, os.Stderr)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	return &workspace{
		dir:      dir,
		cfg:      cfg,
		registry: registry,
		repo:     repo,
		svc:      ledger.NewService(repo, logger),
		git:      gitops.New(dir, cfg.Git.AuthorName, cfg.Git.AuthorEmail),
		logger:   logger,
		flags:    flags,
	}, nil
}

func (w *workspace) Close() error {
	_ = w.logger.Sync()
	return w.repo.Close()
}

func (w *workspace) profileID() string {
	if w.flags.profile != "" {
		return w.flags.profile
	}
	return w.cfg.Ledger.ActiveProfile
}

func (w *workspace) companyID() string {
	if w.flags.company != "" {
		return w.flags.company
	}
	return w.cfg.Ledger.ActiveCompany
}

func (w *workspace) year() int {
	if w.flags.year != 0 {
		return w.flags.year
	}
	return time.Now().Year()
}

func (w *workspace) formatter() (*format.Formatter, error) {
	return format.New(w.cfg.Ledger.Currency)
}

// company resolves the active company, checking the active profile may see
// it before anything is loaded.
func (w *workspace) company() (model.Company, error) {
	profileID, companyID := w.profileID(), w.companyID()
	if _, ok := w.registry.Profile(profileID); !ok {
		return model.Company{}, fmt.Errorf("%w: profile %s", model.ErrNotFound, profileID)
	}
	c, ok := w.registry.Company(companyID)
	if !ok {
		return model.Company{}, fmt.Errorf("%w: company %s", model.ErrNotFound, companyID)
	}
	if !w.registry.CanAccess(profileID, companyID) {
		return model.Company{}, fmt.Errorf("profile %s cannot access company %s", profileID, companyID)
	}
	return c, nil
}

// openBook opens the active company's book.
func (w *workspace) openBook(ctx context.Context) (*ledger.Book, model.Company, error) {
	c, err := w.company()
	if err != nil {
		return nil, model.Company{}, err
	}
	book, err := w.svc.Open(ctx, c.ID)
	if err != nil {
		return nil, model.Company{}, err
	}
	return book, c, nil
}

// saveBook persists a book and records the change.
func (w *workspace) saveBook(ctx context.Context, book *ledger.Book, message string) error {
	if err := w.svc.Save(ctx, book); err != nil {
		return err
	}
	return w.commit(message)
}

func (w *workspace) saveTenants(message string) error {
	if err := tenants.Save(filepath.Join(w.dir, tenants.FileName), w.registry); err != nil {
		return err
	}
	return w.commit(message)
}

func (w *workspace) saveConfig(message string) error {
	if err := config.Save(filepath.Join(w.dir, config.FileName), w.cfg); err != nil {
		return err
	}
	return w.commit(message)
}

// commit records the workspace in git when auto-commit is on.
func (w *workspace) commit(message string) error {
	if !w.cfg.Git.AutoCommit || !w.git.IsRepo() {
		return nil
	}
	hash, err := w.git.CommitAll(message)
	if err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	if hash != "" {
		w.logger.Debug("committed", zap.String("commit", hash), zap.String("message", message))
	}
	return nil
}

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kiala-nvumbi/DINK1/internal/accounts"
	"github.com/kiala-nvumbi/DINK1/internal/config"
	"github.com/kiala-nvumbi/DINK1/internal/gitops"
	"github.com/kiala-nvumbi/DINK1/internal/model"
	"github.com/kiala-nvumbi/DINK1/internal/storage"
	"github.com/kiala-nvumbi/DINK1/internal/tenants"
)

func newInitCommand(flags *globalFlags) *cobra.Command {
	var name string
	var backend string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new DINK workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := flags.repo
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.Context(), cmd.OutOrStdout(), absDir, name, backend)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "workspace name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&backend, "backend", config.BackendCSV, "storage backend: csv or sqlite")

	return cmd
}

func runInit(ctx context.Context, out io.Writer, dir, name, backend string) error {
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return fmt.Errorf("%s is already a DINK workspace", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	cfg := config.Default(name)
	cfg.Storage.Backend = backend
	if backend == config.BackendSQLite {
		cfg.Storage.Path = "dink.db"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	registry := tenants.Default()
	if err := tenants.Save(filepath.Join(dir, tenants.FileName), registry); err != nil {
		return err
	}

	// Seed the example company's chart of accounts.
	repo, err := storage.Open(ctx, cfg.Storage.Backend, filepath.Join(dir, cfg.Storage.Path))
	if err != nil {
		return err
	}
	defer repo.Close()
	seed := model.Ledger{Accounts: accounts.DefaultChart()}
	if err := repo.Save(ctx, tenants.DefaultCompanyID, seed); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	gitignore := "exports/\nattachments/\n*.db-journal\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	// Initialize git and create initial commit.
	git := gitops.New(dir, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err := git.Init(); err != nil {
		return err
	}
	hash, err := git.CommitAll("init: Initialize " + name)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(out, "Initialized DINK workspace at %s (%s)\n", dir, hash)
	return nil
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jrsteele09/go-lab-site/fixtures"
	"github.com/jrsteele09/go-lab-site/internal/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var (
		fixturesDir string
		outPath     string
		dbPath      string
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Convert legacy fixtures into content rows",
		Long: "Reads <kind>.json/.yaml files from --fixtures, derives stable IDs and " +
			"writes idempotent SQL to --out and/or applies it to --db. With neither, SQL goes to stdout.",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := fixtures.LoadDir(fixturesDir)
			if err != nil {
				return fmt.Errorf("load fixtures: %w", err)
			}
			records, err := fixtures.Convert(set, time.Now())
			if err != nil {
				return fmt.Errorf("convert fixtures: %w", err)
			}
			statements := fixtures.Statements(records)
			log.Info().Int("kinds", len(set)).Int("rows", len(records)).Msg("fixtures converted")

			if outPath == "" && dbPath == "" {
				return fixtures.WriteScript(cmd.OutOrStdout(), statements)
			}

			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				if err := fixtures.WriteScript(f, statements); err != nil {
					f.Close()
					return fmt.Errorf("write %s: %w", outPath, err)
				}
				if err := f.Close(); err != nil {
					return err
				}
				log.Info().Str("path", outPath).Msg("sql written")
			}

			if dbPath != "" {
				if err := applyToDB(cmd, dbPath, statements); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fixturesDir, "fixtures", "", "Directory holding legacy fixture files (required)")
	cmd.Flags().StringVar(&outPath, "out", "", "Write the SQL script to this file")
	cmd.Flags().StringVar(&dbPath, "db", "", "Apply the statements to this SQLite database")
	_ = cmd.MarkFlagRequired("fixtures")

	return cmd
}

func applyToDB(cmd *cobra.Command, dbPath string, statements []string) error {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}
	st, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if err := st.Migrate(ctx); err != nil {
		return err
	}
	if err := st.ExecStatements(ctx, statements); err != nil {
		return fmt.Errorf("apply fixtures: %w", err)
	}
	log.Info().Str("db", dbPath).Int("statements", len(statements)).Msg("fixtures applied")
	return nil
}

package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/nutridash/internal/menu"
	"github.com/roach88/nutridash/internal/store"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Database string
}

// ImportResult is the output of the import command.
type ImportResult struct {
	Source      string `json:"source"`
	Database    string `json:"database"`
	Items       int    `json:"items"`
	Restaurants int    `json:"restaurants"`
}

func (r ImportResult) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Imported %d items (%d restaurants) from %s into %s\n",
		r.Items, r.Restaurants, r.Source, r.Database)
	return err
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <csv>",
		Short: "Validate a CSV dataset and store it in SQLite",
		Long: `Parse and validate a menu CSV, then replace the dataset stored in the
SQLite database with it. Validation is fail-fast: one bad row aborts the
import and the database keeps its previous contents.

Example:
  nutridash import ./menu.csv --db ./menu.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runImport(opts *ImportOptions, cmd *cobra.Command, csvPath string) error {
	f := newFormatter(opts.RootOptions, cmd)

	ds, err := menu.LoadCSVFile(csvPath)
	if err != nil {
		return f.Fail(ExitCommandError, "failed to load dataset", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = f.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	if err := st.Import(cmd.Context(), csvPath, ds); err != nil {
		_ = f.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to import dataset", err)
	}
	slog.Info("dataset imported", "source", csvPath, "db", opts.Database, "items", ds.Len())

	return f.Success(ImportResult{
		Source:      csvPath,
		Database:    opts.Database,
		Items:       ds.Len(),
		Restaurants: len(ds.Restaurants()),
	})
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/nutridash/internal/config"
	"github.com/roach88/nutridash/internal/dispatch"
	"github.com/roach88/nutridash/internal/menu"
	"github.com/roach88/nutridash/internal/store"
)

// session is everything a command needs to dispatch: the loaded
// configuration, the dataset and the bindings built from both.
type session struct {
	Config   *config.Config
	Dataset  *menu.Dataset
	Bindings []dispatch.Binding
}

// openSession loads configuration and dataset. arg overrides the
// configured dataset path. Failures are returned as ExitCommandError after
// being reported through f.
func openSession(ctx context.Context, opts *RootOptions, f *OutputFormatter, arg string) (*session, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, f.Fail(ExitCommandError, "failed to load config", err)
	}

	path := arg
	if path == "" {
		path = cfg.Dataset
	}
	if path == "" {
		return nil, f.Fail(ExitCommandError, "no dataset", errNoDataset)
	}

	ds, err := loadDataset(ctx, path)
	if err != nil {
		return nil, f.Fail(ExitCommandError, "failed to load dataset", err)
	}
	f.VerboseLog("loaded %d items from %s", ds.Len(), path)

	bindings, err := cfg.Bindings()
	if err != nil {
		return nil, f.Fail(ExitCommandError, "invalid config", err)
	}

	return &session{Config: cfg, Dataset: ds, Bindings: bindings}, nil
}

var errNoDataset = errors.New("pass a dataset argument or set dataset in the config file")

// isDatabasePath reports whether path names a SQLite dataset.
func isDatabasePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// loadDataset reads path as SQLite or CSV depending on its extension.
func loadDataset(ctx context.Context, path string) (*menu.Dataset, error) {
	if !isDatabasePath(path) {
		slog.Debug("loading dataset", "path", path, "source", "csv")
		return menu.LoadCSVFile(path)
	}

	slog.Debug("loading dataset", "path", path, "source", "sqlite")
	if _, err := os.Stat(path); err != nil {
		// store.Open would create an empty database.
		return nil, &menu.IngestError{Code: menu.ErrCodeReadFailed, Message: fmt.Sprintf("open %s", path), Err: err}
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	return st.LoadDataset(ctx)
}

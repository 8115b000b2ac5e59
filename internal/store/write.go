package store

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/nutridash/internal/menu"
)

// Import replaces the stored dataset with ds in a single transaction and
// records the import. source is a free-form label (usually the CSV path).
func (s *Store) Import(ctx context.Context, source string, ds *menu.Dataset) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("import: begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM menu_items"); err != nil {
		return fmt.Errorf("import: clear: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO menu_items
		(position, restaurant, item_name, protein, carbohydrates, total_fat, calories)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("import: prepare: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < ds.Len(); i++ {
		it := ds.Item(i)
		if _, err = stmt.ExecContext(ctx, i, it.Restaurant, it.ItemName, it.Protein, it.Carbohydrates, it.TotalFat, it.Calories); err != nil {
			return fmt.Errorf("import: row %d: %w", i+1, err)
		}
	}

	if _, err = tx.ExecContext(ctx,
		"INSERT INTO imports (source, row_count, imported_at) VALUES (?, ?, ?)",
		source, ds.Len(), time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("import: record: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("import: commit: %w", err)
	}
	return nil
}

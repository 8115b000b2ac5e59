package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/nutridash/internal/menu"
)

// ImportRecord describes one past import.
type ImportRecord struct {
	ID         int64
	Source     string
	RowCount   int
	ImportedAt string
}

// ReadItems returns every stored item in load order.
//
// A cell that cannot be scanned as its column type yields a
// menu.IngestError naming the row and column.
func (s *Store) ReadItems(ctx context.Context) ([]menu.MenuItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT restaurant, item_name, protein, carbohydrates, total_fat, calories
		FROM menu_items
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("read menu items: %w", err)
	}
	defer rows.Close()

	var items []menu.MenuItem
	for row := 1; rows.Next(); row++ {
		var it menu.MenuItem
		var nums [4]sql.NullFloat64
		if err := rows.Scan(&it.Restaurant, &it.ItemName, &nums[0], &nums[1], &nums[2], &nums[3]); err != nil {
			return nil, &menu.IngestError{Code: menu.ErrCodeNotNumeric, Row: row, Message: "scan row", Err: err}
		}
		for i, n := range nums {
			if !n.Valid {
				return nil, &menu.IngestError{Code: menu.ErrCodeNotNumeric, Row: row, Column: string(menu.Attributes[i]), Message: "value is NULL"}
			}
		}
		it.Protein = nums[0].Float64
		it.Carbohydrates = nums[1].Float64
		it.TotalFat = nums[2].Float64
		it.Calories = nums[3].Float64
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read menu items: %w", err)
	}
	return items, nil
}

// LoadDataset reads and validates the stored dataset.
func (s *Store) LoadDataset(ctx context.Context) (*menu.Dataset, error) {
	items, err := s.ReadItems(ctx)
	if err != nil {
		return nil, err
	}
	return menu.New(items)
}

// Imports lists past imports, oldest first.
func (s *Store) Imports(ctx context.Context) ([]ImportRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, row_count, imported_at
		FROM imports
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("read imports: %w", err)
	}
	defer rows.Close()

	var out []ImportRecord
	for rows.Next() {
		var r ImportRecord
		if err := rows.Scan(&r.ID, &r.Source, &r.RowCount, &r.ImportedAt); err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

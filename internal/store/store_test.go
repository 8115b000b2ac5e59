package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/nutridash/internal/menu"
	"github.com/roach88/nutridash/internal/testutil"
)

func sampleDataset(t *testing.T) *menu.Dataset {
	t.Helper()
	return testutil.Dataset(t,
		menu.MenuItem{Restaurant: "A", ItemName: "Burger", Protein: 10, Carbohydrates: 30, TotalFat: 12, Calories: 300},
		menu.MenuItem{Restaurant: "A", ItemName: "Salad", Protein: 5, Carbohydrates: 10, TotalFat: 3, Calories: 120},
		menu.MenuItem{Restaurant: "B", ItemName: "Wrap", Protein: 20, Carbohydrates: 40, TotalFat: 10, Calories: 350},
		menu.MenuItem{Restaurant: "B", ItemName: "Fries", Protein: 3, Carbohydrates: 50, TotalFat: 17, Calories: 470},
	)
}

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "menu.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	s := openTemp(t)

	if err := s.verifyPragma("journal_mode", "wal"); err != nil {
		t.Errorf("journal_mode: %v", err)
	}
	if err := s.verifyPragma("synchronous", "1"); err != nil {
		t.Errorf("synchronous: %v", err)
	}
	if err := s.verifyPragma("busy_timeout", "5000"); err != nil {
		t.Errorf("busy_timeout: %v", err)
	}
	if err := s.verifyPragma("user_version", "1"); err != nil {
		t.Errorf("user_version: %v", err)
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() #%d error = %v", i+1, err)
		}
		s.Close()
	}
}

func TestImportAndLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	ds := sampleDataset(t)

	if err := s.Import(ctx, "sample.csv", ds); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	got, err := s.LoadDataset(ctx)
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if got.Len() != ds.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), ds.Len())
	}
	for i := 0; i < ds.Len(); i++ {
		if got.Item(i) != ds.Item(i) {
			t.Errorf("Item(%d) = %+v, want %+v", i, got.Item(i), ds.Item(i))
		}
	}

	gotR, wantR := got.Restaurants(), ds.Restaurants()
	if len(gotR) != len(wantR) || gotR[0] != wantR[0] || gotR[1] != wantR[1] {
		t.Errorf("Restaurants() = %v, want %v", gotR, wantR)
	}
}

func TestImport_ReplacesPreviousDataset(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	if err := s.Import(ctx, "first.csv", sampleDataset(t)); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	small, err := menu.New([]menu.MenuItem{
		{Restaurant: "C", ItemName: "Soup", Protein: 4, Carbohydrates: 12, TotalFat: 2, Calories: 90},
	})
	if err != nil {
		t.Fatalf("menu.New() error = %v", err)
	}
	if err := s.Import(ctx, "second.csv", small); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}

	imports, err := s.Imports(ctx)
	if err != nil {
		t.Fatalf("Imports() error = %v", err)
	}
	if len(imports) != 2 {
		t.Fatalf("len(Imports()) = %d, want 2", len(imports))
	}
	if imports[1].Source != "second.csv" || imports[1].RowCount != 1 {
		t.Errorf("Imports()[1] = %+v", imports[1])
	}
}

func TestLoadDataset_EmptyStore(t *testing.T) {
	s := openTemp(t)

	_, err := s.LoadDataset(context.Background())
	if !menu.IsIngestError(err) {
		t.Fatalf("LoadDataset() error = %v, want IngestError", err)
	}
}

func TestImport_CancelledContextKeepsPreviousData(t *testing.T) {
	s := openTemp(t)
	if err := s.Import(context.Background(), "first.csv", sampleDataset(t)); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Import(ctx, "cancelled.csv", sampleDataset(t)); err == nil {
		t.Fatal("Import() with cancelled context succeeded")
	}

	n, err := s.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 4 {
		t.Errorf("Count() = %d, want 4", n)
	}
}

package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/tallum/internal/config"
	"github.com/example/tallum/internal/database"
	"github.com/xuri/excelize/v2"
)

func setupTestStore(t *testing.T) *database.Store {
	t.Helper()
	store, err := database.Open(context.Background(), config.DatabaseConfig{Driver: config.DriverSQLite, DSN: ":memory:"})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const dutchJSON = `[
	{"word": "hallo", "translation": "hello", "example_sentence": "Hallo, hoe gaat het?"},
	{"word": "dank je", "translation": "thank you", "example_sentence": "Dank je wel voor je hulp."},
	{"word": "", "translation": "nothing", "example_sentence": ""},
	{"word": "hallo", "translation": "hi", "example_sentence": "Duplicate term."}
]`

func TestImport_JSON(t *testing.T) {
	store := setupTestStore(t)
	im := New(store.Words)
	cfg := DefaultImportConfig()
	cfg.FilePath = writeFile(t, "dutch_words.json", dutchJSON)

	res, err := im.Import(context.Background(), cfg)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.TotalProcessed != 4 || res.Added != 2 || res.Skipped != 1 || len(res.Errors) != 1 || res.Total != 2 {
		t.Fatalf("unexpected result %+v", res)
	}

	// a second run adds nothing
	res, err = im.Import(context.Background(), cfg)
	if err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if res.Added != 0 || res.Skipped != 3 || res.Total != 2 {
		t.Fatalf("unexpected second result %+v", res)
	}
}

func TestImport_Clear(t *testing.T) {
	store := setupTestStore(t)
	im := New(store.Words)
	ctx := context.Background()
	if _, err := im.SeedDefaults(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg := DefaultImportConfig()
	cfg.FilePath = writeFile(t, "words.json", dutchJSON)
	cfg.Clear = true
	res, err := im.Import(ctx, cfg)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Deleted != int64(len(SampleWords())) || res.Total != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestImport_CSV(t *testing.T) {
	store := setupTestStore(t)
	im := New(store.Words)
	cfg := DefaultImportConfig()
	cfg.FilePath = writeFile(t, "words.csv", "word,translation,example\n"+
		"fiets,bicycle,Ik fiets naar mijn werk.\n"+
		"\"huis\",house,\"Het huis is groot.\"\n"+
		"boom,,Missing translation.\n")

	res, err := im.Import(context.Background(), cfg)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Added != 2 || len(res.Errors) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	ok, err := store.Words.ExistsByTerm(context.Background(), "huis")
	if err != nil || !ok {
		t.Fatalf("expected huis to be imported: %v %v", ok, err)
	}
}

func TestImport_Excel(t *testing.T) {
	store := setupTestStore(t)
	im := New(store.Words)

	f := excelize.NewFile()
	rows := [][]string{
		{"word", "translation", "example"},
		{"kat", "cat", "De kat slaapt."},
		{"", "", ""},
		{"hond", "dog", "De hond blaft."},
	}
	for i, row := range rows {
		for j, v := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue("Sheet1", name, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "words.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}
	f.Close()

	cfg := DefaultImportConfig()
	cfg.FilePath = path
	res, err := im.Import(context.Background(), cfg)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Added != 2 || len(res.Errors) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestImport_UnsupportedFormat(t *testing.T) {
	im := New(setupTestStore(t).Words)
	cfg := DefaultImportConfig()
	cfg.FilePath = writeFile(t, "words.txt", "hallo hello")
	if _, err := im.Import(context.Background(), cfg); err == nil {
		t.Fatal("expected an error for .txt datasets")
	}
}

func TestSeedDefaults_OnlyWhenEmpty(t *testing.T) {
	store := setupTestStore(t)
	im := New(store.Words)
	ctx := context.Background()

	n, err := im.SeedDefaults(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != len(SampleWords()) {
		t.Fatalf("expected %d sample words, got %d", len(SampleWords()), n)
	}
	n, err = im.SeedDefaults(ctx)
	if err != nil {
		t.Fatalf("seed again: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no words on a non-empty table, got %d", n)
	}
}

func TestColumnToIndex(t *testing.T) {
	tests := map[string]int{"A": 0, "b": 1, "Z": 25, "AA": 26, "AB": 27}
	for col, want := range tests {
		if got := columnToIndex(col); got != want {
			t.Errorf("columnToIndex(%q) = %d, want %d", col, got, want)
		}
	}
}

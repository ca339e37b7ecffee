package importer

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/tallum/pkg/models"
	"github.com/xuri/excelize/v2"
)

// WordStore is the part of the word repository the importer writes to
type WordStore interface {
	ExistsByTerm(ctx context.Context, term string) (bool, error)
	Create(ctx context.Context, word *models.Word) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath          string // Path to the JSON, CSV or Excel file
	WordColumn        string // Column with the word
	TranslationColumn string // Column with the translation
	ExampleColumn     string // Column with the example sentence
	SheetName         string // Name of the sheet to import
	StartRow          int    // The row to start importing from (1-based index)
	Clear             bool   // Delete all words before importing
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:        "A",
		TranslationColumn: "B",
		ExampleColumn:     "C",
		SheetName:         "Sheet1",
		StartRow:          2, // skip header
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Deleted        int64
	Added          int
	Skipped        int
	Total          int
	Errors         []string
}

// Importer loads vocabulary datasets into the words table
type Importer struct {
	words WordStore
}

// New creates an importer writing to the given store
func New(words WordStore) *Importer {
	return &Importer{words: words}
}

// Import reads the dataset named by config.FilePath, choosing the format by extension.
// Words whose term is already stored are skipped.
func (im *Importer) Import(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	var (
		entries []models.Word
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(config.FilePath)); ext {
	case ".json":
		entries, err = readJSON(config.FilePath)
	case ".csv":
		entries, err = readCSV(config)
	case ".xlsx", ".xlsm":
		entries, err = readExcel(config)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", ext)
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	if config.Clear {
		n, err := im.words.DeleteAll(ctx)
		if err != nil {
			return nil, err
		}
		result.Deleted = n
	}

	if err := im.addWords(ctx, entries, result); err != nil {
		return nil, err
	}
	return result, nil
}

// SeedDefaults inserts the built-in sample words when the words table is empty
func (im *Importer) SeedDefaults(ctx context.Context) (int, error) {
	n, err := im.words.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	result := &ImportResult{Errors: make([]string, 0)}
	if err := im.addWords(ctx, SampleWords(), result); err != nil {
		return 0, err
	}
	log.Printf("Database initialized with %d sample words", result.Added)
	return result.Added, nil
}

func (im *Importer) addWords(ctx context.Context, entries []models.Word, result *ImportResult) error {
	for i := range entries {
		result.TotalProcessed++
		added, err := im.processWord(ctx, &entries[i])
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			result.Errors = append(result.Errors, fmt.Sprintf("Entry %d: %v", i+1, err))
			continue
		}
		if added {
			result.Added++
		} else {
			result.Skipped++
		}
	}

	total, err := im.words.Count(ctx)
	if err != nil {
		return err
	}
	result.Total = total
	return nil
}

// processWord validates one entry and inserts it unless the term already exists
func (im *Importer) processWord(ctx context.Context, w *models.Word) (bool, error) {
	w.Word = strings.TrimSpace(w.Word)
	w.Translation = strings.TrimSpace(w.Translation)
	w.ExampleSentence = strings.TrimSpace(w.ExampleSentence)

	if w.Word == "" {
		return false, fmt.Errorf("word cannot be empty")
	}
	if w.Translation == "" {
		return false, fmt.Errorf("translation cannot be empty")
	}

	exists, err := im.words.ExistsByTerm(ctx, w.Word)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := im.words.Create(ctx, w); err != nil {
		return false, err
	}
	return true, nil
}

// readJSON reads an array of {word, translation, example_sentence} objects
func readJSON(path string) ([]models.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON file: %w", err)
	}
	defer f.Close()

	var entries []models.Word
	if err := json.NewDecoder(f).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode JSON dataset: %w", err)
	}
	return entries, nil
}

// readCSV reads word, translation, example rows; a header row is detected and skipped
func readCSV(config ImportConfig) ([]models.Word, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var entries []models.Word
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rowNum++
		if rowNum == 1 && isHeader(row) {
			continue
		}
		entries = append(entries, rowToWord(row, config))
	}
	return entries, nil
}

// readExcel reads rows from config.SheetName starting at config.StartRow
func readExcel(config ImportConfig) ([]models.Word, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	var entries []models.Word
	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		if isBlank(row) {
			continue
		}
		entries = append(entries, rowToWord(row, config))
	}
	return entries, nil
}

func rowToWord(row []string, config ImportConfig) models.Word {
	return models.Word{
		Word:            cell(row, config.WordColumn),
		Translation:     cell(row, config.TranslationColumn),
		ExampleSentence: cell(row, config.ExampleColumn),
	}
}

func cell(row []string, column string) string {
	if column == "" {
		return ""
	}
	if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
		return row[idx]
	}
	return ""
}

func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "word")
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// columnToIndex converts an Excel column letter to a zero-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}

package wordpack

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"github.com/vocabflow/vocabflow/internal/words"
)

// ImportConfig describes where word data lives in a spreadsheet or CSV file.
type ImportConfig struct {
	Title            string // Pack title; defaults to the file name
	SheetName        string // Sheet to read from .xlsx files
	WordColumn       int    // Zero-based column holding the word
	DefinitionColumn int    // Zero-based column holding the definition
	SkipHeader       bool   // Skip the first row
}

// DefaultImportConfig returns the configuration for a two-column file with
// a header row.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		SheetName:        "Sheet1",
		WordColumn:       0,
		DefinitionColumn: 1,
		SkipHeader:       true,
	}
}

// RowError describes a row that could not be imported.
type RowError struct {
	Row     int // One-based row number in the source file
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ImportResult is the outcome of reading a pack file. Rows with errors are
// reported and skipped; the remaining rows form the pack.
type ImportResult struct {
	Pack    Pack
	Skipped []RowError
}

// ImportFile reads a pack from an .xlsx or .csv file.
func ImportFile(path string, cfg ImportConfig) (*ImportResult, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = readCSVFile(path)
	case ".xlsx":
		rows, err = readExcel(path, cfg.SheetName)
	default:
		return nil, fmt.Errorf("import %s: unsupported file type %q", path, ext)
	}
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(cfg.Title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return parseRows(title, rows, cfg), nil
}

// ImportCSV reads a pack from CSV data.
func ImportCSV(title string, r io.Reader, cfg ImportConfig) (*ImportResult, error) {
	rows, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	return parseRows(title, rows, cfg), nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSVFile(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()
	return readCSV(file)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func parseRows(title string, rows [][]string, cfg ImportConfig) *ImportResult {
	res := &ImportResult{Pack: Pack{Title: title}}
	seen := make(map[string]bool)

	for i, row := range rows {
		if i == 0 && cfg.SkipHeader {
			continue
		}
		rowNum := i + 1
		if lo.EveryBy(row, func(c string) bool { return strings.TrimSpace(c) == "" }) {
			continue
		}

		text := strings.TrimSpace(cell(row, cfg.WordColumn))
		switch {
		case text == "":
			res.Skipped = append(res.Skipped, RowError{Row: rowNum, Message: "word is empty"})
			continue
		case strings.ContainsAny(text, " \t"):
			res.Skipped = append(res.Skipped, RowError{Row: rowNum, Message: fmt.Sprintf("%q is not a single word", text)})
			continue
		case seen[strings.ToLower(text)]:
			res.Skipped = append(res.Skipped, RowError{Row: rowNum, Message: fmt.Sprintf("duplicate word %q", text)})
			continue
		}
		seen[strings.ToLower(text)] = true

		res.Pack.Words = append(res.Pack.Words, words.PackWord{
			Text:       text,
			Definition: strings.TrimSpace(cell(row, cfg.DefinitionColumn)),
		})
	}
	return res
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/genderbot/internal/database"
	"github.com/example/genderbot/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath   string // Path to the Excel or CSV file
	SheetName  string // Name of the sheet to import
	StartRow   int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration.
// Expected columns: A english, B spanish, C gender.
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:  path,
		SheetName: "Sheet1",
		StartRow:  2, // Start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// ImportNouns imports nouns from an Excel or CSV file. Gender labels
// are normalized here, at load time, so the game only ever sees clean
// gender values.
func ImportNouns(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config)
	}
	return importFromExcel(config)
}

// importFromExcel imports nouns from an Excel file
func importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	nounRepo := database.NewNounRepository()
	result := &ImportResult{Errors: make([]string, 0)}

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++
		if err := processRow(row, nounRepo, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

// importFromCSV imports nouns from a CSV file
func importFromCSV(config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	nounRepo := database.NewNounRepository()
	result := &ImportResult{Errors: make([]string, 0)}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %v", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		result.TotalProcessed++
		if err := processRow(row, nounRepo, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return result, nil
}

// nounCreator is the repository surface the row processor needs
type nounCreator interface {
	GetBySpanish(spanish string) (*models.Noun, error)
	Create(noun *models.Noun) error
}

// processRow parses one english/spanish/gender row and stores the noun
func processRow(row []string, repo nounCreator, result *ImportResult) error {
	if len(row) < 3 {
		return fmt.Errorf("expected english, spanish and gender columns, got %d values", len(row))
	}

	english := strings.TrimSpace(row[0])
	spanish := strings.TrimSpace(row[1])
	if english == "" || spanish == "" {
		return fmt.Errorf("empty english or spanish text")
	}

	gender, err := models.ParseGender(row[2])
	if err != nil {
		return err
	}

	existing, err := repo.GetBySpanish(spanish)
	if err != nil {
		return err
	}
	if existing != nil {
		result.Skipped++
		return nil
	}

	noun := &models.Noun{
		English: english,
		Spanish: spanish,
		Gender:  gender,
	}
	if err := repo.Create(noun); err != nil {
		return err
	}
	result.Created++
	return nil
}

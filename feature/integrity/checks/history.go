package checks

import (
	"fmt"
	"sort"

	"asset-verifier/feature/assets/models"

	"gorm.io/gorm"
)

// HistoryReport strictly types the result of a history schema check.
type HistoryReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	Errors         []string `json:"errors"`
}

// CheckHistorySchema verifies the history table against the Report model,
// using the model's parsed schema as the source of truth.
func CheckHistorySchema(db *gorm.DB) (*HistoryReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(&models.Report{}); err != nil {
		return nil, fmt.Errorf("failed to parse report model: %w", err)
	}

	report := &HistoryReport{
		Table:          stmt.Schema.Table,
		Matched:        true,
		MissingColumns: []string{},
		Errors:         []string{},
	}

	migrator := db.Migrator()
	if !migrator.HasTable(&models.Report{}) {
		report.Matched = false
		report.Errors = append(report.Errors, fmt.Sprintf("table %s does not exist", report.Table))
		return report, nil
	}

	columns, err := migrator.ColumnTypes(&models.Report{})
	if err != nil {
		report.Matched = false
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", report.Table, err))
		return report, nil // Partial fail
	}

	actual := make(map[string]bool, len(columns))
	for _, col := range columns {
		actual[col.Name()] = true
	}

	for _, name := range stmt.Schema.DBNames {
		if !actual[name] {
			report.MissingColumns = append(report.MissingColumns, name)
			report.Matched = false
		}
	}
	sort.Strings(report.MissingColumns)

	return report, nil
}

package models

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

/*
Column Mismatch Report Usage:

Set GENERATE_COLUMN_REPORT=true to print, after migration, every database
column that no field of the corresponding Go model maps to.

Example output:

	table=blog_posts mismatches=[legacy_body]
	table=comments   mismatches=[]
	total mismatched columns: 1
*/

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&Category{},
		&Tag{},
		&BlogPost{},
		&Comment{},
	}
}

// Migrate creates or updates every table, including the
// blog_post_categories and blog_post_tags join tables.
func Migrate(db *gorm.DB) error {
	log.Info().Msg("Migrating models...")
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Info().Msg("Database migration completed successfully")
	return nil
}

// ColumnMismatch lists the columns of one table that no model field covers.
type ColumnMismatch struct {
	Table   string
	Columns []string
}

// ColumnMismatchReport compares the live schema with the model definitions.
// Tables that do not exist yet are skipped.
func ColumnMismatchReport(db *gorm.DB) ([]ColumnMismatch, error) {
	var report []ColumnMismatch
	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		if !db.Migrator().HasTable(model) {
			log.Debug().Str("table", table).Msg("Table does not exist yet")
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("error querying columns for table %s: %w", table, err)
		}

		dbColumns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			dbColumns = append(dbColumns, ct.Name())
		}

		report = append(report, ColumnMismatch{
			Table:   table,
			Columns: findColumnMismatches(dbColumns, modelColumns(stmt.Schema)),
		})
	}
	return report, nil
}

// LogColumnMismatchReport runs ColumnMismatchReport and logs the result.
func LogColumnMismatchReport(db *gorm.DB) error {
	report, err := ColumnMismatchReport(db)
	if err != nil {
		return err
	}

	total := 0
	for _, entry := range report {
		if len(entry.Columns) == 0 {
			log.Info().Str("table", entry.Table).Msg("All columns are accounted for in the model")
			continue
		}
		total += len(entry.Columns)
		log.Warn().Str("table", entry.Table).Strs("columns", entry.Columns).Msg("Columns not accounted for in model")
	}
	log.Info().Int("total", total).Msg("Column mismatch report complete")
	return nil
}

func modelColumns(s *schema.Schema) []string {
	columns := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		if field.DBName != "" {
			columns = append(columns, field.DBName)
		}
	}
	return columns
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	mismatches := []string{}
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}
	sort.Strings(mismatches)
	return mismatches
}

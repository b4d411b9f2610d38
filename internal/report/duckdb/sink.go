// Package duckdb provides a diagnostic sink that persists VCF validation
// results to a queryable DuckDB table, so a pipeline can inspect validation
// history across many files instead of only grepping stdout.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/vcfval/vcf-validator/internal/vcf"
)

// Sink persists diagnostics to a DuckDB table.
type Sink struct {
	db   *sql.DB
	path string
	file string
}

// Open opens or creates a DuckDB database at path (empty string for
// in-memory) and ensures the diagnostics table exists. file identifies the
// VCF file being validated, recorded alongside each diagnostic so multiple
// files can share one database.
func Open(path, file string) (*Sink, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create report directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Sink{db: db, path: path, file: file}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Sink) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct querying.
func (s *Sink) DB() *sql.DB {
	return s.db
}

func (s *Sink) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS diagnostics (
		file VARCHAR,
		line BIGINT,
		kind VARCHAR,
		severity VARCHAR,
		message VARCHAR,
		column_name VARCHAR,
		column_value VARCHAR
	)`)
	return err
}

func (s *Sink) insert(d vcf.Diagnostic) {
	columnName, columnValue := "", ""
	if fd, ok := d.(vcf.FieldDiagnostic); ok {
		f := fd.FieldInfo()
		columnName, columnValue = f.ColumnName, f.Value
	}

	_, err := s.db.Exec(
		`INSERT INTO diagnostics (file, line, kind, severity, message, column_name, column_value)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.file, d.Line(), d.Kind(), d.Severity().String(), d.Message(), columnName, columnValue,
	)
	if err != nil {
		// A persistence failure must not crash validation; the diagnostic is
		// still visible to any other sink wired into the same run.
		fmt.Fprintf(os.Stderr, "duckdb sink: insert failed: %v\n", err)
	}
}

func (s *Sink) WriteError(d vcf.Diagnostic)   { s.insert(d) }
func (s *Sink) WriteWarning(d vcf.Diagnostic) { s.insert(d) }

var _ vcf.Sink = (*Sink)(nil)

package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/nakshatra-tomar/civic-contact-extract/internal/models"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Tables records are inserted into.
const (
	TablePeople        = "people"
	TableOrganizations = "organizations"
)

// SQLSink inserts each batch into a table with one TEXT column per header
// field plus run_id. Absent values are stored as NULL.
type SQLSink struct {
	db     *sql.DB
	driver string
}

// OpenSQLSink opens dsn with driver, which must be DriverSQLite or
// DriverPostgres, and checks the connection.
func OpenSQLSink(ctx context.Context, driver, dsn string) (*SQLSink, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return NewSQLSink(db, driver), nil
}

// NewSQLSink wraps an open database.
func NewSQLSink(db *sql.DB, driver string) *SQLSink {
	return &SQLSink{db: db, driver: driver}
}

// Name returns "sql".
func (s *SQLSink) Name() string { return "sql" }

// Close closes the database.
func (s *SQLSink) Close() error { return s.db.Close() }

// TableFor returns the table that stores records of kind.
func TableFor(kind models.Kind) (string, error) {
	switch kind {
	case models.KindPerson:
		return TablePeople, nil
	case models.KindOrganization:
		return TableOrganizations, nil
	}
	return "", fmt.Errorf("unknown record kind %q", kind)
}

// Write creates the kind's table if needed and inserts records in one
// transaction.
func (s *SQLSink) Write(ctx context.Context, kind models.Kind, records []*models.ContactRecord) (err error) {
	header, err := Header(records)
	if err != nil {
		return err
	}
	table, err := TableFor(kind)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, createTableSQL(table, header)); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, s.insertSQL(table, header))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	runID := RunFrom(ctx).ID
	for i, rec := range records {
		args := make([]any, 0, len(header)+1)
		args = append(args, runID)
		for _, v := range rec.Nullable(header) {
			if v == nil {
				args = append(args, nil)
				continue
			}
			args = append(args, *v)
		}
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert %s row %d: %w", table, i+1, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func createTableSQL(table string, header []models.Field) string {
	cols := make([]string, 0, len(header)+1)
	cols = append(cols, `"run_id" TEXT NOT NULL`)
	for _, f := range header {
		cols = append(cols, quoteIdent(string(f))+" TEXT")
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quoteIdent(table), strings.Join(cols, ", "))
}

func (s *SQLSink) insertSQL(table string, header []models.Field) string {
	cols := make([]string, 0, len(header)+1)
	cols = append(cols, quoteIdent("run_id"))
	for _, f := range header {
		cols = append(cols, quoteIdent(string(f)))
	}
	marks := make([]string, len(cols))
	for i := range marks {
		marks[i] = s.placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(cols, ", "), strings.Join(marks, ", "))
}

// placeholder returns the n-th (1-based) bind parameter for the dialect.
func (s *SQLSink) placeholder(n int) string {
	if s.driver == DriverPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

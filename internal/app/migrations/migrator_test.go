package migrations

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"

	"github.com/yigit/university/internal/pkg/apperrors"
)

var existsQuery = regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`)

func TestEmbeddedSchema(t *testing.T) {
	m := NewMigrator(nil, zerolog.Nop())
	versions, err := m.Versions()
	if err != nil {
		t.Fatalf("Versions: %v", err)
	}
	if len(versions) == 0 || versions[0] != "001" {
		t.Fatalf("versions = %v, want 001 first", versions)
	}
}

func TestMigrate_AppliesPendingInOrder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	files := fstest.MapFS{
		"002_more.sql":  {Data: []byte("CREATE TABLE two (id INT);")},
		"001_first.sql": {Data: []byte("CREATE TABLE one (id INT);")},
		"README.md":     {Data: []byte("ignored")},
	}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	mock.ExpectQuery(existsQuery).WithArgs("001").WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE one").WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs("001").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	mock.ExpectQuery(existsQuery).WithArgs("002").WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))

	m := NewMigratorFS(mock, files, zerolog.Nop())
	if err := m.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestMigrate_FailedFileRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	files := fstest.MapFS{"001_bad.sql": {Data: []byte("CREATE TABLE broken (")}}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectQuery(existsQuery).WithArgs("001").WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE broken").WillReturnError(&pgconn.PgError{Code: "42601", Message: "syntax error"})
	mock.ExpectRollback()

	err = NewMigratorFS(mock, files, zerolog.Nop()).Migrate(context.Background())
	if !errors.Is(err, apperrors.ErrQuery) {
		t.Fatalf("expected ErrQuery, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

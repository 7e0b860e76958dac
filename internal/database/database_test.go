// internal/database/database_test.go
//
// Unit-tests for the pool helpers using sqlmock.
//
// Run: go test ./internal/database -v

package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

func TestIsDuplicateKey(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'pages' for key 'uq_collection_identifier'"}

	if !IsDuplicateKey(dup) {
		t.Fatal("1062 not recognised")
	}
	if !IsDuplicateKey(fmt.Errorf("insert: %w", dup)) {
		t.Fatal("wrapped 1062 not recognised")
	}
	if IsDuplicateKey(&mysql.MySQLError{Number: 1146}) {
		t.Fatal("1146 is not a duplicate")
	}
	if IsDuplicateKey(errors.New("Duplicate entry")) {
		t.Fatal("plain error text must not match")
	}
}

func TestDSN(t *testing.T) {
	got, err := DSN("cms@tcp(db:3306)/cms", "s3cret")
	if err != nil {
		t.Fatalf("DSN: %v", err)
	}
	for _, want := range []string{"cms:s3cret@tcp(db:3306)/cms", "parseTime=true"} {
		if !strings.Contains(got, want) {
			t.Fatalf("DSN %q missing %q", got, want)
		}
	}

	if _, err := DSN("not a dsn", ""); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestMigrate(t *testing.T) {
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer raw.Close()
	db := sqlx.NewDb(raw, "sqlmock")

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS collection`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS content`)).
		WillReturnError(errors.New("disk full"))

	err = Migrate(context.Background(), db)
	if err == nil || !strings.Contains(err.Error(), "step 2") {
		t.Fatalf("want step 2 failure, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWithTxRollsBack(t *testing.T) {
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer raw.Close()
	db := sqlx.NewDb(raw, "sqlmock")

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()

	err = WithTx(context.Background(), db, func(*sqlx.Tx) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectCommit()
	if err := WithTx(context.Background(), db, func(*sqlx.Tx) error { return nil }); err != nil {
		t.Fatalf("commit path: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

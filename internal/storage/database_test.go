package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"codevimarsh/pkg/config"
)

func TestOpen_SQLiteDiagnose(t *testing.T) {
	db, err := Open(config.DBConfig{
		Driver:       "sqlite",
		Name:         filepath.Join(t.TempDir(), "app.db"),
		MaxOpenConns: 10,
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if err := db.Diagnose(context.Background()); err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if db.Pool().Max() != 10 {
		t.Fatalf("expected pool max 10, got %d", db.Pool().Max())
	}
}

func TestOpen_UnreachableServerIsNotFatal(t *testing.T) {
	// Open 不會連線，錯誤只在 Diagnose 時出現
	db, err := Open(config.DBConfig{
		Driver:       "postgres",
		Host:         "127.0.0.1",
		Port:         1,
		User:         "nobody",
		Name:         "codevimarsh",
		MaxOpenConns: 10,
	})
	if err != nil {
		t.Fatalf("Open must not contact the server: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Diagnose(ctx); err == nil {
		t.Fatalf("expected diagnose error against an unreachable server")
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(config.DBConfig{Driver: "oracle", MaxOpenConns: 1}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestMySQLDSN(t *testing.T) {
	dsn := mysqlDSN(config.DBConfig{Host: "db", User: "root", Password: "secret", Name: "codevimarsh"})

	for _, want := range []string{"root:secret@tcp(db:3306)/codevimarsh", "parseTime=true"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("dsn %q missing %q", dsn, want)
		}
	}
}

func TestPostgresDSN_DefaultPort(t *testing.T) {
	dsn := postgresDSN(config.DBConfig{Host: "db", User: "u", Name: "n"})
	if !strings.HasPrefix(dsn, "postgres://u:@db:5432/n?") {
		t.Fatalf("expected default port in %q", dsn)
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&gomysql.MySQLError{Number: 1045, Message: "Access denied"}, "1045"},
		{fmt.Errorf("connect: %w", &pgconn.PgError{Code: "28P01"}), "28P01"},
		{fmt.Errorf("dial: %w", syscall.ECONNREFUSED), "ECONNREFUSED"},
		{&net.DNSError{Err: "no such host", Name: "db"}, "ENOTFOUND"},
		{context.DeadlineExceeded, "ETIMEDOUT"},
		{fmt.Errorf("boom"), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := ErrorCode(tt.err); got != tt.want {
			t.Fatalf("ErrorCode(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestIsUniqueViolation(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "unique.db"))
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE users (email TEXT UNIQUE)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO users (email) VALUES ('a@example.com')`); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err = db.Exec(`INSERT INTO users (email) VALUES ('a@example.com')`)
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation from sqlite, got %v", err)
	}

	tests := []struct {
		err  error
		want bool
	}{
		{&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, true},
		{&gomysql.MySQLError{Number: 1045}, false},
		{fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{&pgconn.PgError{Code: "23503"}, false},
		{gorm.ErrDuplicatedKey, true},
		{fmt.Errorf("boom"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsUniqueViolation(tt.err); got != tt.want {
			t.Fatalf("IsUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

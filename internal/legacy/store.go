// Package legacy reads the local SQLite database written by the desktop
// application. Every method is read-only; the store is opened fresh for each
// operation and closed by the caller.
package legacy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/osse101/inventory-migrator/internal/domain"
	"github.com/osse101/inventory-migrator/internal/legacy/schema"
)

// driverName is the database/sql name registered by modernc.org/sqlite
const driverName = "sqlite"

// Store is a handle on the legacy database
type Store struct {
	db   *sql.DB
	path string
	psql sq.StatementBuilderType

	// columns of requests present in this file, filled on first read
	requestPresent map[string]bool
}

// Exists reports whether the legacy database file is present
func Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return !info.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Open opens the legacy database read-only. A missing file yields
// domain.ErrLegacyStoreNotFound.
func Open(ctx context.Context, path string) (*Store, error) {
	exists, err := Exists(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToStatDatabase, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrLegacyStoreNotFound, path)
	}

	dsn, err := buildDSN(path, url.Values{
		"mode":    []string{"ro"},
		"_pragma": []string{"busy_timeout(5000)"},
	})
	if err != nil {
		return nil, err
	}
	return open(ctx, path, dsn)
}

// OpenWritable opens or creates the legacy database with foreign keys
// enforced and the legacy schema applied. Used by fixtures and the seed
// command only.
func OpenWritable(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn, err := buildDSN(path, url.Values{
		"_pragma": []string{"foreign_keys(1)", "busy_timeout(5000)"},
	})
	if err != nil {
		return nil, err
	}

	s, err := open(ctx, path, dsn)
	if err != nil {
		return nil, err
	}

	if err := schema.Apply(ctx, s.db); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func open(ctx context.Context, path, dsn string) (*Store, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpenDatabase, err)
	}
	// one connection keeps pragmas and read transactions consistent
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpenDatabase, err)
	}

	return &Store{
		db:   db,
		path: path,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}, nil
}

// buildDSN turns a filesystem path into an SQLite URI filename.
func buildDSN(path string, params url.Values) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve database path: %w", err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p, RawQuery: params.Encode()}
	return u.String(), nil
}

// Path returns the file the store was opened from
func (s *Store) Path() string {
	return s.path
}

// DB exposes the underlying handle for the seed command
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close releases the connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Counts returns row counts of the four top-level tables
func (s *Store) Counts(ctx context.Context) (domain.TableCounts, error) {
	var counts domain.TableCounts

	targets := []struct {
		table string
		dest  *int
	}{
		{domain.TableRequests, &counts.Requests},
		{domain.TableEmployeeExits, &counts.EmployeeExits},
		{domain.TableTemplates, &counts.Templates},
		{domain.TableInstructions, &counts.Instructions},
	}

	for _, target := range targets {
		query, args, err := s.psql.Select("COUNT(*)").From(target.table).ToSql()
		if err != nil {
			return counts, err
		}
		if err := s.db.QueryRowContext(ctx, query, args...).Scan(target.dest); err != nil {
			return counts, fmt.Errorf("%s %s: %w", ErrMsgFailedToCountRows, target.table, err)
		}
	}

	return counts, nil
}

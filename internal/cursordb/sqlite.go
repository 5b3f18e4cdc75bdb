package cursordb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/cairnlog/cairnlog/internal/errkind"
)

// openReadOnly opens a fresh, single-use read-only connection to a Cursor
// SQLite database with a 5-second busy timeout, mirroring the no-pool,
// one-connection-per-query policy the IDE's own writers expect. Callers must
// close the returned *sql.DB on every path.
func openReadOnly(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errkind.New(errkind.NotFound, path, "verify the Cursor state database path exists", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func queryValue(ctx context.Context, db *sql.DB, table, key string) (string, error) {
	var value string
	query := fmt.Sprintf("SELECT value FROM %s WHERE key = ?", table)
	row := db.QueryRowContext(ctx, query, key)
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", errkind.New(errkind.NotFound, key, "key not present in "+table, err)
		}
		return "", classifyQueryError(table, err)
	}
	return value, nil
}

func classifyQueryError(table string, err error) error {
	msg := strings.ToLower(err.Error())
	if containsAny(msg, "no such table", "no such column") {
		return errkind.New(errkind.Schema, table, "the Cursor database schema may have changed", err)
	}
	if containsAny(msg, "locked", "permission", "readonly", "access") {
		return errkind.New(errkind.Access, table, "the database may be locked by the IDE", err)
	}
	return errkind.New(errkind.Query, table, "query against "+table+" failed", err)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

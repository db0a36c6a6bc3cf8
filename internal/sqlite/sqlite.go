// Package sqlite opens the local SQLite database backing the scs session
// store. All complaint data stays in the backend; the only local state is
// the session table.
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "embed"

	_ "github.com/mattn/go-sqlite3" // Enable sqlite3 driver.
)

//go:embed schema.sql
var schemaDefinition string

// NewDB opens the session database and ensures the schema exists.
//
// It establishes two connections, one for read/write operations and one for
// read-only operations, which is a best practice mentioned in
// https://github.com/mattn/go-sqlite3/issues/1179#issuecomment-1638083995.
// The url parameter is a file path or ":memory:" for an in-memory database.
func NewDB(ctx context.Context, url string) (readWriteDB, readDB *sqlx.DB, err error) {
	// In-memory databases need shared cache mode so that both connections
	// see the same data.
	cacheConfig := "&cache=private"
	if url == ":memory:" {
		cacheConfig = "&cache=shared"
	}
	readConfig := fmt.Sprintf(
		"file:%s?mode=ro&_txlock=deferred&_journal_mode=wal&_busy_timeout=5000&_synchronous=normal%s",
		url, cacheConfig)
	readWriteConfig := fmt.Sprintf(
		"file:%s?mode=rwc&_txlock=immediate&_journal_mode=wal&_busy_timeout=5000&_synchronous=normal%s",
		url, cacheConfig)

	if readWriteDB, err = sqlx.ConnectContext(ctx, "sqlite3", readWriteConfig); err != nil {
		return nil, nil, err
	}

	readWriteDB.SetMaxOpenConns(1)
	readWriteDB.SetMaxIdleConns(1)
	readWriteDB.SetConnMaxLifetime(time.Hour)
	readWriteDB.SetConnMaxIdleTime(time.Hour)

	readWriteDB.MustExec(schemaDefinition)

	if readDB, err = sqlx.ConnectContext(ctx, "sqlite3", readConfig); err != nil {
		return nil, nil, err
	}

	readDB.SetMaxOpenConns(10)
	readDB.SetMaxIdleConns(10)
	readDB.SetConnMaxLifetime(time.Hour)
	readDB.SetConnMaxIdleTime(time.Hour)

	return readWriteDB, readDB, nil
}

package database

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// localParams are applied to every local sqlite connection. Foreign keys are off by
// default in SQLite and the pragma is per connection, so it has to ride on the DSN.
// _txlock=immediate makes BEGIN take the write lock up front so concurrent roster
// writers serialize instead of failing on lock upgrade.
const localParams = "_foreign_keys=on&_txlock=immediate&_busy_timeout=5000"

// InitDB opens the database and applies all pending migrations from migrationsDir.
// When primaryURL is empty a local sqlite file (or ":memory:") named dbPath is used,
// otherwise the remote libsql database at primaryURL.
// The returned teardown closes the connection.
func InitDB(dbPath, primaryURL, authToken, migrationsDir string) (*sql.DB, func(), error) {
	var (
		db      *sql.DB
		err     error
		dialect = "sqlite3"
	)
	if primaryURL == "" {
		log.Info("Initializing local SQLite database", "path", dbPath)
		db, err = sql.Open("sqlite3", dbPath+"?"+localParams)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open local database: %w", err)
		}
		if dbPath == ":memory:" {
			// Every connection to :memory: is a separate database.
			db.SetMaxOpenConns(1)
		}
	} else {
		log.Info("Initializing Turso database", "url", primaryURL)
		db, err = sql.Open("libsql", primaryURL+"?authToken="+authToken)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db %s: %w", primaryURL, err)
		}
		dialect = "turso"
	}
	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}

	if err := db.Ping(); err != nil {
		teardown()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := migrate(db, dialect, migrationsDir); err != nil {
		teardown()
		return nil, nil, err
	}
	log.Info("Database initialized successfully")
	return db, teardown, nil
}

func migrate(db *sql.DB, dialect, dir string) error {
	goose.SetLogger(log.Default())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("failed to apply migrations from %s: %w", dir, err)
	}
	return nil
}

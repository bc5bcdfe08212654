package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"  // Driver do Postgres
	_ "modernc.org/sqlite" // SQLite puro Go, para dev e testes
)

type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

func (d Dialect) String() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

// Rebind troca os "?" pelos placeholders do dialeto ($1, $2... no Postgres).
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// NewDBConnection abre Postgres quando databaseURL vem preenchida, senão SQLite em sqlitePath.
func NewDBConnection(databaseURL, sqlitePath string) (*sql.DB, Dialect, error) {
	if strings.TrimSpace(databaseURL) != "" {
		db, err := open("postgres", databaseURL, 10, 5)
		return db, Postgres, err
	}

	if sqlitePath == "" {
		sqlitePath = "leads.db"
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_time_format=sqlite", sqlitePath)
	// SQLite quer um único writer
	db, err := open("sqlite", dsn, 1, 1)
	return db, SQLite, err
}

// NewInMemorySQLite devolve um banco isolado por nome, já migrado. Usado nos testes.
func NewInMemorySQLite(name string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_time_format=sqlite", name)
	db, err := open("sqlite", dsn, 1, 1)
	if err != nil {
		return nil, err
	}
	if err := Migrate(context.Background(), db, SQLite); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func open(driver, dsn string, maxOpen, maxIdle int) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

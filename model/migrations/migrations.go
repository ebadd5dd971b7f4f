// Package migrations holds the versioned MySQL schema of the storefront
// tables and runs it with golang-migrate.
package migrations

import (
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed mysql/*.sql
var FS embed.FS

// New opens a migrator for the MySQL database at dsn (go-sql-driver format,
// without the mysql:// scheme).
func New(dsn string) (*migrate.Migrate, error) {
	src, err := iofs.New(FS, "mysql")
	if err != nil {
		return nil, fmt.Errorf("migrations source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "mysql://"+dsn)
	if err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	m.Log = logger{}
	return m, nil
}

// Up applies every pending migration. An up-to-date schema is not an error.
func Up(m *migrate.Migrate) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Down rolls back n migrations.
func Down(m *migrate.Migrate, n int) error {
	if n <= 0 {
		n = 1
	}
	if err := m.Steps(-n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

type logger struct{}

func (logger) Printf(format string, v ...interface{}) { log.Printf("[migrate] "+format, v...) }

func (logger) Verbose() bool { return false }

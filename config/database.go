package config

import (
	"fmt"

	"github.com/QuangTung97/eventstore/pkg/sqldialect"
	"github.com/jmoiron/sqlx"

	// database/sql drivers of every supported dialect
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// DatabaseConfig selects one of the supported databases by driver name
type DatabaseConfig struct {
	Driver   string         `mapstructure:"driver"`
	MySQL    MySQLConfig    `mapstructure:"mysql"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
}

// Dialect ...
func (c DatabaseConfig) Dialect() (sqldialect.Dialect, error) {
	d, err := sqldialect.FromDriverName(c.Driver)
	if err != nil {
		return 0, fmt.Errorf("database.driver: %w", err)
	}
	return d, nil
}

// MigrateURL returns the database url used by golang-migrate
func (c DatabaseConfig) MigrateURL() string {
	d, _ := c.Dialect()
	switch d {
	case sqldialect.Postgres:
		return c.Postgres.URL()
	case sqldialect.SQLite:
		return c.SQLite.MigrateURL()
	default:
		return c.MySQL.MigrateURL()
	}
}

// Connect opens the configured database
func (c DatabaseConfig) Connect() (*sqlx.DB, sqldialect.Dialect, error) {
	d, err := c.Dialect()
	if err != nil {
		return nil, 0, err
	}

	var db *sqlx.DB
	switch d {
	case sqldialect.Postgres:
		db, err = c.Postgres.Connect()
	case sqldialect.SQLite:
		db, err = c.SQLite.Connect()
	default:
		db, err = c.MySQL.Connect()
	}
	if err != nil {
		return nil, 0, err
	}
	return db, d, nil
}

// MustConnect same as Connect, panics on error
func (c DatabaseConfig) MustConnect() (*sqlx.DB, sqldialect.Dialect) {
	db, d, err := c.Connect()
	if err != nil {
		panic(err)
	}
	return db, d
}

package config

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLiteConfig for configuring a file backed SQLite database
type SQLiteConfig struct {
	Path        string        `mapstructure:"path"`
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
}

// DSN ...
func (c SQLiteConfig) DSN() string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)",
		c.Path, c.BusyTimeout.Milliseconds())
}

// MigrateURL returns the database url used by golang-migrate
func (c SQLiteConfig) MigrateURL() string {
	return "sqlite://" + c.Path
}

// Connect connects to database using sqlx
func (c SQLiteConfig) Connect() (*sqlx.DB, error) {
	return sqlx.Connect("sqlite", c.DSN())
}

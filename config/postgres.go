package config

import (
	"fmt"
	"net/url"

	"github.com/jmoiron/sqlx"
)

// PostgresConfig for configuring Postgres
type PostgresConfig struct {
	Host         string `mapstructure:"host"`
	Port         uint16 `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	SSLMode      string `mapstructure:"ssl_mode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// URL returns the connection url, accepted by both lib/pq and golang-migrate
func (c PostgresConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// Connect connects to database using sqlx
func (c PostgresConfig) Connect() (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", c.URL())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(c.MaxOpenConns)
	db.SetMaxIdleConns(c.MaxIdleConns)
	return db, nil
}

package integration

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/QuangTung97/eventstore/config"
	"github.com/QuangTung97/eventstore/pkg/migration"
	"github.com/QuangTung97/eventstore/pkg/sqldialect"
)

// NewSQLiteTestCase creates a migrated SQLite database in a temporary directory of t
func NewSQLiteTestCase(t testing.TB) *TestCase {
	t.Helper()

	conf := config.SQLiteConfig{
		Path:        filepath.Join(t.TempDir(), "eventstore.db"),
		BusyTimeout: 5 * time.Second,
	}

	if err := migration.Up(sqldialect.SQLite, conf.MigrateURL()); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	db, err := conf.Connect()
	if err != nil {
		t.Fatalf("connect sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return &TestCase{
		DB:      db,
		Dialect: sqldialect.SQLite,
		Conf: config.Config{
			Database: config.DatabaseConfig{Driver: "sqlite", SQLite: conf},
		},
	}
}

package migration

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/QuangTung97/eventstore/pkg/sqldialect"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	_ "modernc.org/sqlite"
)

func countTables(t *testing.T, path string) int {
	db := sqlx.MustOpen("sqlite", path)
	defer func() { _ = db.Close() }()

	var count int
	err := db.Get(&count, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'event_streams'`)
	assert.Equal(t, nil, err)
	return count
}

func TestUp_Down_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migrate.db")
	url := "sqlite://" + path

	err := Up(sqldialect.SQLite, url)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, countTables(t, path))

	// idempotent
	err = Up(sqldialect.SQLite, url)
	assert.Equal(t, nil, err)

	version, dirty, err := Version(sqldialect.SQLite, url)
	assert.Equal(t, nil, err)
	assert.Equal(t, uint(1), version)
	assert.Equal(t, false, dirty)

	err = Down(sqldialect.SQLite, url)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, countTables(t, path))
}

func TestMigrateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migrate.db")
	url := "sqlite://" + path

	cmd := MigrateCommand(sqldialect.SQLite, url)

	var out bytes.Buffer
	cmd.SetOut(&out)

	cmd.SetArgs([]string{"up"})
	assert.Equal(t, nil, cmd.Execute())

	cmd.SetArgs([]string{"version"})
	assert.Equal(t, nil, cmd.Execute())
	assert.Equal(t, "version: 1, dirty: false\n", out.String())
}

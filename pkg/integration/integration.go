package integration

import (
	"context"
	"fmt"
	"os"
	"path"
	"sync"

	"github.com/QuangTung97/eventstore/config"
	"github.com/QuangTung97/eventstore/pkg/migration"
	"github.com/QuangTung97/eventstore/pkg/sqldialect"
	"github.com/jmoiron/sqlx"
)

// TestCase ...
type TestCase struct {
	DB      *sqlx.DB
	Dialect sqldialect.Dialect
	Conf    config.Config
}

var initOnce sync.Once

var globalConf config.Config
var globalDB *sqlx.DB

// NewTestCase connects to the MySQL database of config.test.yml, migrations applied once
func NewTestCase() *TestCase {
	initOnce.Do(func() {
		rootDir := findRootDir()

		conf := config.LoadTestConfig(rootDir)
		migration.MigrateUpForTesting(sqldialect.MySQL, conf.Database.MySQL.MigrateURL())

		db, err := conf.Database.MySQL.Connect()
		if err != nil {
			panic(err)
		}

		globalConf = conf
		globalDB = db
	})

	return &TestCase{
		Conf:    globalConf,
		DB:      globalDB,
		Dialect: sqldialect.MySQL,
	}
}

// Truncate ...
func (tc *TestCase) Truncate(table string) {
	if tc.Dialect == sqldialect.SQLite {
		tc.DB.MustExec(fmt.Sprintf("DELETE FROM %s", tc.Dialect.Quote(table)))
		return
	}
	tc.DB.MustExec(fmt.Sprintf("TRUNCATE %s", tc.Dialect.Quote(table)))
}

// Reset drops the tables of every registered stream and empties the registry
func (tc *TestCase) Reset() {
	var tables []string
	err := tc.DB.SelectContext(context.Background(), &tables, `SELECT stream_name FROM event_streams`)
	if err != nil {
		panic(err)
	}
	for _, table := range tables {
		tc.DB.MustExec(fmt.Sprintf("DROP TABLE IF EXISTS %s", tc.Dialect.Quote(table)))
	}
	tc.Truncate("event_streams")
}

func findRootDir() string {
	workdir, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	directory := workdir
	for {
		files, err := os.ReadDir(directory)
		if err != nil {
			panic(err)
		}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			if file.Name() == "go.mod" {
				return directory
			}
		}

		directory = path.Dir(directory)
	}
}

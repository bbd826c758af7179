package migration

import (
	"embed"
	"errors"
	"fmt"

	"github.com/QuangTung97/eventstore/pkg/sqldialect"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/spf13/cobra"

	// database drivers for every supported dialect
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
)

//go:embed sql
var migrationFS embed.FS

func newMigrate(d sqldialect.Dialect, databaseURL string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFS, "sql/"+d.DriverName())
	if err != nil {
		return nil, err
	}
	return migrate.NewWithSourceInstance("iofs", src, databaseURL)
}

func closeMigrate(m *migrate.Migrate, err error) error {
	srcErr, dbErr := m.Close()
	if err != nil {
		return err
	}
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}

// Up applies all migrations of the registry table
func Up(d sqldialect.Dialect, databaseURL string) error {
	m, err := newMigrate(d, databaseURL)
	if err != nil {
		return err
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		err = nil
	}
	return closeMigrate(m, err)
}

// Down reverts all migrations
func Down(d sqldialect.Dialect, databaseURL string) error {
	m, err := newMigrate(d, databaseURL)
	if err != nil {
		return err
	}

	err = m.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		err = nil
	}
	return closeMigrate(m, err)
}

// Version returns the current migration version, zero when nothing is applied
func Version(d sqldialect.Dialect, databaseURL string) (uint, bool, error) {
	m, err := newMigrate(d, databaseURL)
	if err != nil {
		return 0, false, err
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		err = nil
	}
	return version, dirty, closeMigrate(m, err)
}

// MigrateUpForTesting panics on error
func MigrateUpForTesting(d sqldialect.Dialect, databaseURL string) {
	if err := Up(d, databaseURL); err != nil {
		panic(err)
	}
}

// MigrateCommand returns the migrate command with up, down and version sub commands
func MigrateCommand(d sqldialect.Dialect, databaseURL string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "manage migrations of the event streams registry",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "apply all migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return Up(d, databaseURL)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "revert all migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return Down(d, databaseURL)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "print the current migration version",
			RunE: func(cmd *cobra.Command, args []string) error {
				version, dirty, err := Version(d, databaseURL)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version: %d, dirty: %t\n", version, dirty)
				return nil
			},
		},
	)
	return cmd
}

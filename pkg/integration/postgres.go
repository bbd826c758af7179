package integration

import (
	"context"
	"testing"
	"time"

	"github.com/QuangTung97/eventstore/config"
	"github.com/QuangTung97/eventstore/pkg/migration"
	"github.com/QuangTung97/eventstore/pkg/sqldialect"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// NewPostgresTestCase starts a postgres container, skips the test when docker is not available
func NewPostgresTestCase(t *testing.T) *TestCase {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "eventstore",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}

	conf := config.PostgresConfig{
		Host:         host,
		Port:         uint16(port.Int()),
		Database:     "eventstore",
		Username:     "postgres",
		Password:     "postgres",
		SSLMode:      "disable",
		MaxOpenConns: 20,
		MaxIdleConns: 10,
	}

	if err := migration.Up(sqldialect.Postgres, conf.URL()); err != nil {
		t.Fatalf("migrate postgres: %v", err)
	}

	db, err := conf.Connect()
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return &TestCase{
		DB:      db,
		Dialect: sqldialect.Postgres,
		Conf: config.Config{
			Database: config.DatabaseConfig{Driver: "postgres", Postgres: conf},
		},
	}
}

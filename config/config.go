package config

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/QuangTung97/eventstore/pkg/strategy"
	"github.com/spf13/viper"
)

// Config for the whole application
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	EventStore EventStoreConfig `mapstructure:"event_store"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Jaeger     JaegerConfig     `mapstructure:"jaeger"`
}

// EventStoreConfig for configuring event store instances
type EventStoreConfig struct {
	Strategy            string        `mapstructure:"strategy"`
	EventStreamsTable   string        `mapstructure:"event_streams_table"`
	TransactionHandling bool          `mapstructure:"transaction_handling"`
	AutoCreateStream    bool          `mapstructure:"auto_create_stream"`
	InsertBatchSize     int           `mapstructure:"insert_batch_size"`
	LoadBatchSize       int           `mapstructure:"load_batch_size"`
	WriteLock           string        `mapstructure:"write_lock"`
	LockTimeout         time.Duration `mapstructure:"lock_timeout"`
}

// Write lock kinds
const (
	WriteLockAdvisory = "advisory"
	WriteLockLocal    = "local"
	WriteLockNone     = "none"
)

// ListenConfig ...
type ListenConfig struct {
	Host string `mapstructure:"host"`
	Port uint16 `mapstructure:"port"`
}

// ServerConfig for configuring the HTTP server
type ServerConfig struct {
	HTTP            ListenConfig  `mapstructure:"http"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// JaegerConfig ...
type JaegerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    uint16 `mapstructure:"port"`
}

// URL of the jaeger collector
func (c JaegerConfig) URL() string {
	return fmt.Sprintf("http://%s:%d/api/traces", c.Host, c.Port)
}

// String ...
func (c ListenConfig) String() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ListenString ...
func (c ListenConfig) ListenString() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load config from config.yml in the working directory, panics on error
func Load() Config {
	conf, err := LoadFile("config.yml")
	if err != nil {
		panic(err)
	}
	return conf
}

// LoadTestConfig loads config.test.yml at the root of the repository
func LoadTestConfig(rootDir string) Config {
	conf, err := LoadFile(path.Join(rootDir, "config.test.yml"))
	if err != nil {
		panic(err)
	}
	return conf
}

// LoadFile reads the config file, values can be overridden by EVENTSTORE_* environment variables
func LoadFile(file string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(file)
	v.SetEnvPrefix("eventstore")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, err
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.mysql.host", "localhost")
	v.SetDefault("database.mysql.port", 3306)
	v.SetDefault("database.mysql.max_open_conns", 20)
	v.SetDefault("database.mysql.max_idle_conns", 10)
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.ssl_mode", "disable")
	v.SetDefault("database.postgres.max_open_conns", 20)
	v.SetDefault("database.postgres.max_idle_conns", 10)
	v.SetDefault("database.sqlite.path", "eventstore.db")
	v.SetDefault("database.sqlite.busy_timeout", 5*time.Second)

	v.SetDefault("event_store.strategy", strategy.NameAggregateStream)
	v.SetDefault("event_store.event_streams_table", "event_streams")
	v.SetDefault("event_store.transaction_handling", true)
	v.SetDefault("event_store.insert_batch_size", 100)
	v.SetDefault("event_store.load_batch_size", 1000)
	v.SetDefault("event_store.write_lock", WriteLockAdvisory)
	v.SetDefault("event_store.lock_timeout", 5*time.Second)

	v.SetDefault("server.http.port", 8080)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("log.level", "info")

	v.SetDefault("jaeger.host", "localhost")
	v.SetDefault("jaeger.port", 14268)
}

// Validate ...
func (c Config) Validate() error {
	if _, err := c.Database.Dialect(); err != nil {
		return err
	}

	switch c.EventStore.Strategy {
	case strategy.NameAggregateStream, strategy.NameSingleStream:
	default:
		return fmt.Errorf("event_store.strategy must be %s or %s, got %q",
			strategy.NameAggregateStream, strategy.NameSingleStream, c.EventStore.Strategy)
	}

	switch c.EventStore.WriteLock {
	case WriteLockAdvisory, WriteLockLocal, WriteLockNone:
	default:
		return fmt.Errorf("event_store.write_lock must be advisory, local or none, got %q", c.EventStore.WriteLock)
	}

	if c.EventStore.EventStreamsTable == "" {
		return fmt.Errorf("event_store.event_streams_table is required")
	}
	if c.EventStore.InsertBatchSize <= 0 {
		return fmt.Errorf("event_store.insert_batch_size must be positive")
	}
	if c.EventStore.LoadBatchSize <= 0 {
		return fmt.Errorf("event_store.load_batch_size must be positive")
	}
	return nil
}

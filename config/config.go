package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	Ledger    LedgerConfigs
	Log       LogConfigs
	Publisher PublisherConfigs
	Kafka     KafkaConfigs
	Redis     RedisConfigs
	Metrics   MetricsConfigs
	Cron      CronConfigs
}

type DatabaseConfigs struct {
	// Driver is one of mysql, postgres or sqlite.
	Driver       string
	DSN          string
	MaxOpenConns int
	LogLevel     string
}

type LedgerConfigs struct {
	// NodeID seeds the snowflake ids of point transactions and must differ
	// between processes writing to the same database.
	NodeID             int64
	DefaultDailyBudget int64
	PointExpiration    Duration
	ExpiringSoonWindow Duration
	MaxOrderQuantity   int
}

type LogConfigs struct {
	Level  string
	Format string
}

type PublisherConfigs struct {
	// Backend is one of kafka, redis or none.
	Backend string
	Topic   string
}

type KafkaConfigs struct {
	Addrs    []string
	ClientID string
	GroupID  string
}

type RedisConfigs struct {
	Addr string
}

type MetricsConfigs struct {
	Addr string
}

type CronConfigs struct {
	BudgetProvisionHour int
	PointExpiryInterval Duration
}

// Duration decodes TOML strings such as "720h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func Default() Configs {
	return Configs{
		Env: "local",
		Database: DatabaseConfigs{
			Driver:       "sqlite",
			DSN:          "file:pointroulette.db?cache=shared",
			MaxOpenConns: 1,
			LogLevel:     "silent",
		},
		Ledger: LedgerConfigs{
			NodeID:             1,
			DefaultDailyBudget: 100000,
			PointExpiration:    Duration{30 * 24 * time.Hour},
			ExpiringSoonWindow: Duration{7 * 24 * time.Hour},
			MaxOrderQuantity:   20,
		},
		Log: LogConfigs{
			Level:  "info",
			Format: "text",
		},
		Publisher: PublisherConfigs{
			Backend: "none",
			Topic:   "ledger-events",
		},
		Kafka: KafkaConfigs{
			ClientID: "pointroulette",
			GroupID:  "pointroulette-events",
		},
		Metrics: MetricsConfigs{
			Addr: ":9090",
		},
		Cron: CronConfigs{
			PointExpiryInterval: Duration{time.Hour},
		},
	}
}

// Load loads the .env files (if any) into the environment, then decodes the
// TOML file at path on top of Default(). An empty path returns the defaults.
func Load(path string, envFiles ...string) (Configs, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Configs{}, fmt.Errorf("cannot load env files: %w", err)
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Configs{}, fmt.Errorf("cannot decode config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Configs{}, err
	}

	return cfg, nil
}

func (c Configs) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	switch c.Publisher.Backend {
	case "kafka", "redis", "none":
	default:
		return fmt.Errorf("unsupported publisher backend %q", c.Publisher.Backend)
	}

	if c.Ledger.DefaultDailyBudget < 0 {
		return errors.New("default daily budget must not be negative")
	}

	if c.Ledger.MaxOrderQuantity <= 0 {
		return errors.New("max order quantity must be positive")
	}

	if c.Ledger.PointExpiration.Duration <= 0 {
		return errors.New("point expiration must be positive")
	}

	return nil
}

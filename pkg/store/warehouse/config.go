package warehouse

import (
	"database/sql"
	"fmt"

	_ "github.com/databricks/databricks-sql-go"
	_ "github.com/lib/pq"
	sf "github.com/snowflakedb/gosnowflake"
	"github.com/spf13/viper"
)

// SnowflakeConfig mirrors the gosnowflake DSN inputs.
type SnowflakeConfig struct {
	Account   string `mapstructure:"account"`
	User      string `mapstructure:"user"`
	Password  string `mapstructure:"password"`
	Database  string `mapstructure:"database"`
	Schema    string `mapstructure:"schema"`
	Warehouse string `mapstructure:"warehouse"`
	Role      string `mapstructure:"role"`
}

// Config selects the warehouse driver the metric tables live behind.
// Postgres is the default; Databricks SQL and Snowflake are supported
// for clients whose exports land in a lakehouse.
type Config struct {
	Driver    string          `mapstructure:"driver"`
	DSN       string          `mapstructure:"dsn"`
	Snowflake SnowflakeConfig `mapstructure:"snowflake"`
}

// LoadConfig reads the warehouse profile from the given file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("driver", "postgres")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read warehouse config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse warehouse config: %w", err)
	}
	return &cfg, nil
}

// Open connects to the configured warehouse.
func Open(cfg *Config) (*sql.DB, error) {
	switch cfg.Driver {
	case "postgres":
		return sql.Open("postgres", cfg.DSN)
	case "databricks":
		return sql.Open("databricks", cfg.DSN)
	case "snowflake":
		dsn, err := sf.DSN(&sf.Config{
			Account:   cfg.Snowflake.Account,
			User:      cfg.Snowflake.User,
			Password:  cfg.Snowflake.Password,
			Database:  cfg.Snowflake.Database,
			Schema:    cfg.Snowflake.Schema,
			Warehouse: cfg.Snowflake.Warehouse,
			Role:      cfg.Snowflake.Role,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create snowflake DSN: %w", err)
		}
		return sql.Open("snowflake", dsn)
	default:
		return nil, fmt.Errorf("unsupported warehouse driver %q", cfg.Driver)
	}
}

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

const DefaultCartKey = "@RocketShoes:cart"

type HTTPConfig struct {
	Env          string        `mapstructure:"env" validate:"required,oneof=local dev prod"`
	Port         int           `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=memory file redis postgres"`
	Key    string `mapstructure:"key" validate:"required"`
	Dir    string `mapstructure:"dir"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type PsqlConfig struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	Sslmode  string `mapstructure:"sslmode"`
}

type Config struct {
	HTTP    HTTPConfig    `mapstructure:"http"`
	API     APIConfig     `mapstructure:"api"`
	Storage StorageConfig `mapstructure:"storage"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Psql    PsqlConfig    `mapstructure:"psql_conn"`
}

// Load reads config.yaml from the working directory (or the file named by
// CONFIG_PATH), overlaying environment variables such as HTTP_PORT or
// API_BASE_URL. A .env file, when present, is loaded into the environment first.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Error loading .env file, %s\n", err)
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("Error reading config file, %s\n", err)
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Unable to decode into struct, %v\n", err)
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.env", EnvLocal)
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("api.base_url", "http://localhost:3333")
	v.SetDefault("api.timeout", 5*time.Second)
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.key", DefaultCartKey)
	v.SetDefault("storage.dir", ".localstorage")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("psql_conn.user", "")
	v.SetDefault("psql_conn.password", "")
	v.SetDefault("psql_conn.host", "")
	v.SetDefault("psql_conn.port", 5432)
	v.SetDefault("psql_conn.database", "")
	v.SetDefault("psql_conn.sslmode", "disable")
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	switch c.Storage.Driver {
	case DriverFile:
		if c.Storage.Dir == "" {
			return errors.New("config: storage.dir is required for file driver")
		}
	case DriverRedis:
		if c.Redis.Addr == "" {
			return errors.New("config: redis.addr is required for redis driver")
		}
	case DriverPostgres:
		if c.Psql.Host == "" || c.Psql.Database == "" {
			return errors.New("config: psql_conn.host and psql_conn.database are required for postgres driver")
		}
	}

	return nil
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Psql.User, c.Psql.Password, c.Psql.Host, c.Psql.Port, c.Psql.Database, c.Psql.Sslmode)
}

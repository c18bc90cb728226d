package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every application setting. Values come from defaults, then the
// YAML file, then FOOD_<SECTION>_<KEY> environment variables.
type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Database   DatabaseConfig
	RabbitMQ   RabbitMQConfig
	Catalog    CatalogConfig
	Auth       AuthConfig
	Simulation SimulationConfig
}

type ServerConfig struct {
	Port          int
	MaxConcurrent int
	LogLevel      string
}

type StorageConfig struct {
	Driver string // memory | postgres
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
}

type RabbitMQConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
	Exchange string
}

type CatalogConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AuthConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
}

// SimulationConfig holds the artificial delays that imitate payment round-trips.
type SimulationConfig struct {
	PaymentDelay  time.Duration
	DepositDelay  time.Duration
	TransferDelay time.Duration
}

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: 3000, MaxConcurrent: 50, LogLevel: "info"},
		Storage:  StorageConfig{Driver: DriverMemory},
		Database: DatabaseConfig{Port: 5432, SSLMode: "disable", MaxConns: 10},
		RabbitMQ: RabbitMQConfig{Port: 5672, VHost: "/", Exchange: "food_events"},
		Catalog: CatalogConfig{
			BaseURL: "https://www.themealdb.com/api/json/v1/1",
			Timeout: 5 * time.Second,
		},
		Auth: AuthConfig{JWTSecret: "dev-secret-change-me", SessionTTL: 7 * 24 * time.Hour},
		Simulation: SimulationConfig{
			PaymentDelay:  2 * time.Second,
			DepositDelay:  time.Second,
			TransferDelay: time.Second,
		},
	}
}

// sections lists every recognised key; it drives both env overrides and unknown-key checks.
var sections = map[string][]string{
	"server":     {"port", "max_concurrent", "log_level"},
	"storage":    {"driver"},
	"database":   {"host", "port", "user", "password", "database", "sslmode", "max_conns"},
	"rabbitmq":   {"enabled", "host", "port", "user", "password", "vhost", "exchange"},
	"catalog":    {"base_url", "timeout"},
	"auth":       {"jwt_secret", "session_ttl"},
	"simulation": {"payment_delay", "deposit_delay", "transfer_delay"},
}

// Load reads path (when non-empty), applies env overrides and validates the result.
func Load(path string) (*Config, error) {
	// .env is optional, the way local development usually has it
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var section string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			section = strings.TrimSuffix(line, ":")
			if _, ok := sections[section]; !ok {
				return fmt.Errorf("config line %d: unknown section %q", lineNo, section)
			}
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		if section == "" {
			return fmt.Errorf("config line %d: key %q outside of a section", lineNo, key)
		}
		if err := c.assign(section, key, value); err != nil {
			return fmt.Errorf("config line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	for section, keys := range sections {
		for _, key := range keys {
			name := "FOOD_" + strings.ToUpper(section) + "_" + strings.ToUpper(key)
			if v, ok := os.LookupEnv(name); ok {
				if err := c.assign(section, key, v); err != nil {
					return fmt.Errorf("env %s: %w", name, err)
				}
			}
		}
	}
	return nil
}

func (c *Config) assign(section, key, v string) error {
	var err error
	switch section {
	case "server":
		switch key {
		case "port":
			c.Server.Port, err = strconv.Atoi(v)
		case "max_concurrent":
			c.Server.MaxConcurrent, err = strconv.Atoi(v)
		case "log_level":
			c.Server.LogLevel = v
		default:
			return unknownKey(section, key)
		}
	case "storage":
		switch key {
		case "driver":
			c.Storage.Driver = strings.ToLower(v)
		default:
			return unknownKey(section, key)
		}
	case "database":
		switch key {
		case "host":
			c.Database.Host = v
		case "port":
			c.Database.Port, err = strconv.Atoi(v)
		case "user":
			c.Database.User = v
		case "password":
			c.Database.Password = v
		case "database":
			c.Database.Database = v
		case "sslmode":
			if v != "" {
				c.Database.SSLMode = v
			}
		case "max_conns":
			c.Database.MaxConns, err = strconv.Atoi(v)
		default:
			return unknownKey(section, key)
		}
	case "rabbitmq":
		switch key {
		case "enabled":
			c.RabbitMQ.Enabled, err = strconv.ParseBool(v)
		case "host":
			c.RabbitMQ.Host = v
		case "port":
			c.RabbitMQ.Port, err = strconv.Atoi(v)
		case "user":
			c.RabbitMQ.User = v
		case "password":
			c.RabbitMQ.Password = v
		case "vhost":
			if v != "" {
				c.RabbitMQ.VHost = v
			}
		case "exchange":
			c.RabbitMQ.Exchange = v
		default:
			return unknownKey(section, key)
		}
	case "catalog":
		switch key {
		case "base_url":
			c.Catalog.BaseURL = strings.TrimSuffix(v, "/")
		case "timeout":
			c.Catalog.Timeout, err = time.ParseDuration(v)
		default:
			return unknownKey(section, key)
		}
	case "auth":
		switch key {
		case "jwt_secret":
			c.Auth.JWTSecret = v
		case "session_ttl":
			c.Auth.SessionTTL, err = time.ParseDuration(v)
		default:
			return unknownKey(section, key)
		}
	case "simulation":
		switch key {
		case "payment_delay":
			c.Simulation.PaymentDelay, err = time.ParseDuration(v)
		case "deposit_delay":
			c.Simulation.DepositDelay, err = time.ParseDuration(v)
		case "transfer_delay":
			c.Simulation.TransferDelay, err = time.ParseDuration(v)
		default:
			return unknownKey(section, key)
		}
	default:
		return fmt.Errorf("unknown section %q", section)
	}
	if err != nil {
		return fmt.Errorf("%s.%s: %w", section, key, err)
	}
	return nil
}

func unknownKey(section, key string) error {
	return fmt.Errorf("unknown key %s.%s", section, key)
}

func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.User == "" || c.Database.Database == "" {
			errs = append(errs, errors.New("database config incomplete: host, user and database are required"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver must be memory or postgres, got %q", c.Storage.Driver))
	}
	if c.RabbitMQ.Enabled && (c.RabbitMQ.Host == "" || c.RabbitMQ.User == "") {
		errs = append(errs, errors.New("rabbitmq config incomplete: host and user are required"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}
	if c.Auth.SessionTTL <= 0 {
		errs = append(errs, errors.New("auth.session_ttl must be positive"))
	}
	return errors.Join(errs...)
}

// FindConfig returns the first config file present in the usual places.
func FindConfig() (string, error) {
	candidates := []string{"config.yaml", "deploy/config.example.yaml"}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}

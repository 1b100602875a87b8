package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	cronlib "github.com/robfig/cron/v3"
	"gopkg.in/yaml.v2"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Server struct {
		Host        string `yaml:"host"`
		Port        int    `yaml:"port"`
		Env         string `yaml:"env"`
		FrontendURL string `yaml:"frontend_url"`
	} `yaml:"server"`

	Database struct {
		Driver            string `yaml:"driver"` // postgres, mysql, mongo, memory
		DSN               string `yaml:"url"`
		MongoURI          string `yaml:"mongo_uri"`
		MongoDatabase     string `yaml:"mongo_database"`
		MongoTransactions bool   `yaml:"mongo_transactions"` // требует replica set
		AutoMigrate       bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    string `yaml:"ttl"` // например "168h"
	} `yaml:"jwt"`

	Admin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"admin"`

	Email struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Sweep struct {
		Schedule   string `yaml:"schedule"`
		RunOnStart bool   `yaml:"run_on_start"`
	} `yaml:"sweep"`
}

// Default возвращает конфигурацию, с которой сервис поднимается без файла
func Default() *Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 5000
	cfg.Server.Env = "development"
	cfg.Server.FrontendURL = "http://localhost:3000"
	cfg.Database.Driver = DriverMemory
	cfg.Database.MongoDatabase = "smarthire"
	cfg.Database.AutoMigrate = true
	cfg.JWT.TTL = "168h"
	cfg.Admin.Name = "Administrator"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromName = "SmartHire Hub"
	cfg.Sweep.Schedule = "0 0 * * *"
	return &cfg
}

// Load собирает конфигурацию: .env -> YAML (CONFIG_PATH) -> переменные окружения
func Load() (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()

	cfg := Default()

	configPath := os.Getenv("CONFIG_PATH")
	explicit := configPath != ""
	if !explicit {
		configPath = "config/config.yaml"
	}

	if err := loadFile(cfg, configPath); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Env, "SERVER_ENV")
	setString(&cfg.Server.FrontendURL, "FRONTEND_URL")
	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.DSN, "DATABASE_URL")
	setString(&cfg.Database.MongoURI, "MONGODB_URI")
	setString(&cfg.Database.MongoDatabase, "MONGODB_DATABASE")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.JWT.TTL, "JWT_TTL")
	setString(&cfg.Admin.Email, "FIRST_ADMIN_EMAIL")
	setString(&cfg.Admin.Password, "FIRST_ADMIN_PASSWORD")
	setString(&cfg.Email.SMTPHost, "SMTP_HOST")
	setString(&cfg.Email.SMTPUsername, "SMTP_USER")
	setString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&cfg.Email.FromEmail, "SMTP_FROM")
	setString(&cfg.Sweep.Schedule, "SWEEP_SCHEDULE")

	if err := setInt(&cfg.Server.Port, "PORT"); err != nil {
		return err
	}
	if err := setInt(&cfg.Email.SMTPPort, "SMTP_PORT"); err != nil {
		return err
	}
	if err := setBool(&cfg.Sweep.RunOnStart, "SWEEP_RUN_ON_START"); err != nil {
		return err
	}
	if err := setBool(&cfg.Database.AutoMigrate, "DATABASE_AUTO_MIGRATE"); err != nil {
		return err
	}
	if err := setBool(&cfg.Database.MongoTransactions, "MONGODB_TRANSACTIONS"); err != nil {
		return err
	}
	if err := setBool(&cfg.Email.Enabled, "SMTP_ENABLED"); err != nil {
		return err
	}
	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMySQL:
		if c.Database.DSN == "" {
			return fmt.Errorf("database url is required for driver %s", c.Database.Driver)
		}
	case DriverMongo:
		if c.Database.MongoURI == "" {
			return errors.New("mongo_uri is required for driver mongo")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	if c.JWT.Secret == "" && !c.IsDevelopment() {
		return errors.New("jwt secret is required outside development")
	}
	if _, err := c.TokenTTL(); err != nil {
		return err
	}

	if _, err := cronlib.ParseStandard(c.Sweep.Schedule); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", c.Sweep.Schedule, err)
	}
	return nil
}

// TokenTTL - время жизни access-токена
func (c *Config) TokenTTL() (time.Duration, error) {
	ttl, err := time.ParseDuration(c.JWT.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid jwt ttl %q: %w", c.JWT.TTL, err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("jwt ttl must be positive, got %s", ttl)
	}
	return ttl, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "" || c.Server.Env == "development" || c.Server.Env == "test"
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = b
	return nil
}

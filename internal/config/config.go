package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cwrk-planet/aichat/pkg/logger"
)

type HTTP struct {
	Addr         string        `yaml:"addr"`         // ":8501"
	ReadTimeout  time.Duration `yaml:"readTimeout"`  // "15s"
	WriteTimeout time.Duration `yaml:"writeTimeout"` // "30s"
	IdleTimeout  time.Duration `yaml:"idleTimeout"`  // "60s"
}

type Upstream struct {
	BaseURL       string        `yaml:"baseURL"`       // "http://localhost:8000"
	Timeout       time.Duration `yaml:"timeout"`       // "10s"
	HealthTimeout time.Duration `yaml:"healthTimeout"` // "5s"
}

func (u Upstream) Validate() error {
	p, err := url.Parse(u.BaseURL)
	if err != nil {
		return fmt.Errorf("upstream.baseURL: %w", err)
	}
	if p.Scheme != "http" && p.Scheme != "https" {
		return errors.New("upstream.baseURL must be http(s)")
	}
	if p.Host == "" {
		return errors.New("upstream.baseURL host is required")
	}
	return nil
}

type Session struct {
	TTL          time.Duration `yaml:"ttl"`          // "24h"
	SweepEvery   time.Duration `yaml:"sweepEvery"`   // "1h"
	MaxSessions  int           `yaml:"maxSessions"`  // сверх лимита вытесняется самая давняя
	SecureCookie bool          `yaml:"secureCookie"` // true за HTTPS
}

type UI struct {
	Title         string `yaml:"title"`
	Debug         bool   `yaml:"debug"`         // боковая панель с состоянием сессии
	CheckUpstream bool   `yaml:"checkUpstream"` // проверять /health на главной
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type Logging struct {
	Env       string `yaml:"env"`       // dev|stage|prod
	Service   string `yaml:"service"`   // "aichat-web"
	Version   string `yaml:"version"`   // "0.1.0"
	Level     string `yaml:"level"`     // debug|info|warn|error
	AddSource bool   `yaml:"addSource"` // true/false
	Backend   string `yaml:"backend"`   // "std"|"zap"
	Debug     bool   `yaml:"debug"`
}

func (l Logging) ToLoggerConfig() (logger.Config, error) {
	lvl, err := logger.ParseLevel(l.Level)
	if err != nil {
		return logger.Config{}, fmt.Errorf("logging.level: %w", err)
	}
	return logger.Config{
		Service:   l.Service,
		Version:   l.Version,
		Env:       logger.ParseEnv(l.Env),
		Level:     lvl,
		Backend:   logger.Backend(l.Backend),
		AddSource: l.AddSource,
		Debug:     l.Debug,
	}, nil
}

type Config struct {
	HTTP     HTTP     `yaml:"http"`
	Logging  Logging  `yaml:"logging"`
	Upstream Upstream `yaml:"upstream"`
	Session  Session  `yaml:"session"`
	UI       UI       `yaml:"ui"`
	CORS     CORS     `yaml:"cors"`
}

const DefaultPath = "config/config.yaml"

// Load читает YAML: явный путь, затем CONFIG_PATH, затем config/config.yaml.
// Отсутствие файла по пути по умолчанию не ошибка — берутся дефолты.
func Load(path string) (*Config, error) {
	explicit := true
	if strings.TrimSpace(path) == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if strings.TrimSpace(path) == "" {
		path = filepath.FromSlash(DefaultPath)
		explicit = false
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal yaml: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8501"
	}
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = 15 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 30 * time.Second
	}
	if c.HTTP.IdleTimeout == 0 {
		c.HTTP.IdleTimeout = 60 * time.Second
	}
	if c.Upstream.BaseURL == "" {
		c.Upstream.BaseURL = "http://localhost:8000"
	}
	if c.Upstream.Timeout == 0 {
		c.Upstream.Timeout = 10 * time.Second
	}
	if c.Upstream.HealthTimeout == 0 {
		c.Upstream.HealthTimeout = 5 * time.Second
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = 24 * time.Hour
	}
	if c.Session.SweepEvery == 0 {
		c.Session.SweepEvery = time.Hour
	}
	if c.Session.MaxSessions == 0 {
		c.Session.MaxSessions = 10000
	}
	if c.UI.Title == "" {
		c.UI.Title = "AI Chat Assistant"
	}
	if c.Logging.Service == "" {
		c.Logging.Service = "aichat-web"
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "v0.1.0"
	}
}

func (c *Config) Validate() error {
	if err := c.Upstream.Validate(); err != nil {
		return err
	}
	if c.Upstream.Timeout < 0 || c.Upstream.HealthTimeout < 0 {
		return errors.New("upstream timeouts must be >= 0")
	}
	if c.Session.TTL < time.Minute {
		return errors.New("session.ttl must be >= 1m")
	}
	if c.Session.MaxSessions < 0 {
		return errors.New("session.maxSessions must be >= 0")
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

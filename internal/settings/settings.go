package settings

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"

	"github.com/cwrk-planet/aichat/internal/pg"
)

const DefaultEnvFile = ".env"

var ErrMissing = errors.New("required setting is missing")

// Settings — конфигурация backend-сервиса. Веб-клиент её не читает.
type Settings struct {
	DatabaseURL              string
	SecretKey                string
	Algorithm                string
	AccessTokenExpireMinutes int
	OpenAIAPIKey             string
	OpenWeatherAPIKey        string
}

// Load подтягивает .env (если есть) и читает переменные окружения.
// Уже выставленные переменные окружения имеют приоритет над файлом.
func Load(envFile string) (*Settings, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (*Settings, error) {
	var missing []string
	get := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	s := &Settings{
		DatabaseURL:       get("DATABASE_URL"),
		SecretKey:         get("SECRET_KEY"),
		Algorithm:         get("ALGORITHM"),
		OpenAIAPIKey:      get("OPENAI_API_KEY"),
		OpenWeatherAPIKey: get("OPENWEATHER_API_KEY"),
	}
	rawTTL := get("ACCESS_TOKEN_EXPIRE_MINUTES")

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissing, strings.Join(missing, ", "))
	}

	minutes, err := strconv.Atoi(rawTTL)
	if err != nil {
		return nil, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES: %w", err)
	}
	s.AccessTokenExpireMinutes = minutes

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) Validate() error {
	if s.AccessTokenExpireMinutes <= 0 {
		return errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be > 0")
	}
	if jwt.GetSigningMethod(s.Algorithm) == nil {
		return fmt.Errorf("ALGORITHM %q is not a known JWT signing method", s.Algorithm)
	}
	return nil
}

func (s *Settings) AccessTokenTTL() time.Duration {
	return time.Duration(s.AccessTokenExpireMinutes) * time.Minute
}

func (s *Settings) ToPGConfig() pg.Config {
	return pg.Config{
		DSN:             s.DatabaseURL,
		ApplicationName: "aichat-backend",
	}
}

// String не печатает секреты.
func (s *Settings) String() string {
	return fmt.Sprintf("Settings{Algorithm:%s AccessTokenExpireMinutes:%d SecretKey:%s OpenAIAPIKey:%s OpenWeatherAPIKey:%s}",
		s.Algorithm, s.AccessTokenExpireMinutes, mask(s.SecretKey), mask(s.OpenAIAPIKey), mask(s.OpenWeatherAPIKey))
}

func mask(v string) string {
	if v == "" {
		return ""
	}
	return "***"
}

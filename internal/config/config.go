package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "local_development_jwt_secret_key_change_in_production"

type Config struct {
	Env      string
	HTTPPort string
	LogLevel string

	JWTSecret  string
	JWTIssuer  string
	JWTExpiry  time.Duration
	BcryptCost int

	// password hashing concurrency
	HashWorkers int

	TMDBAPIKey  string
	TMDBBaseURL string
	TMDBTimeout time.Duration

	CORSAllowedOrigins []string
	StaticDir          string
}

// Load reads .env (if present) and then the process environment. Values
// already set in the environment win over .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the environment only.
func FromEnv() (Config, error) {
	var errs []error

	expiry, err := ParseExpiry(get("JWT_EXPIRY", "7d"))
	if err != nil {
		errs = append(errs, fmt.Errorf("JWT_EXPIRY: %w", err))
	}

	cfg := Config{
		Env:                get("APP_ENV", "dev"),
		HTTPPort:           get("HTTP_PORT", get("PORT", "5000")),
		LogLevel:           get("LOG_LEVEL", ""),
		JWTSecret:          get("JWT_SECRET", ""),
		JWTIssuer:          get("JWT_ISSUER", "moviefav-backend"),
		JWTExpiry:          expiry,
		BcryptCost:         getInt("BCRYPT_COST", 10, &errs),
		HashWorkers:        getInt("HASH_WORKERS", 4, &errs),
		TMDBAPIKey:         get("TMDB_API_KEY", ""),
		TMDBBaseURL:        strings.TrimRight(get("TMDB_BASE_URL", "https://api.themoviedb.org/3"), "/"),
		TMDBTimeout:        getDuration("TMDB_TIMEOUT", 10*time.Second, &errs),
		CORSAllowedOrigins: splitList(get("CORS_ALLOWED_ORIGINS", "*")),
		StaticDir:          get("STATIC_DIR", ""),
	}
	if cfg.JWTSecret == "" && cfg.Env != "prod" {
		cfg.JWTSecret = devJWTSecret
	}

	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required in prod"))
	}
	if c.Env == "prod" && c.JWTSecret == devJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET must not be the development default in prod"))
	}
	if c.JWTExpiry <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRY must be positive"))
	}
	// bcrypt.MinCost .. bcrypt.MaxCost
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST %d out of range 4..31", c.BcryptCost))
	}
	if c.HashWorkers < 1 {
		errs = append(errs, errors.New("HASH_WORKERS must be at least 1"))
	}
	if _, err := strconv.Atoi(c.HTTPPort); err != nil {
		errs = append(errs, fmt.Errorf("invalid port %q", c.HTTPPort))
	}
	return errors.Join(errs...)
}

// ParseExpiry accepts Go durations ("15m", "168h") and whole days ("7d").
func ParseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	return d, nil
}

func get(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getInt(key string, def int, errs *[]error) int {
	v := get(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func getDuration(key string, def time.Duration, errs *[]error) time.Duration {
	v := get(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const insecureJWTSecret = "supersecretkey"

type Config struct {
	Addr              string        `yaml:"addr"`
	JWTSecret         string        `yaml:"jwt_secret"`
	APITimeout        time.Duration `yaml:"timeout"`
	DatabasePath      string        `yaml:"database_path"`
	TokenDuration     time.Duration `yaml:"token_duration"`
	AdminEmail        string        `yaml:"admin_email"`
	RedisAddr         string        `yaml:"redis_addr"`
	AggregateCacheTTL time.Duration `yaml:"aggregate_cache_ttl"`
}

// LoadConfig builds the config from defaults, a .env file when present,
// OLANEST_* environment variables, and finally the yaml file at path. The
// yaml file wins where it sets a value.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:              getEnv("OLANEST_ADDR", ":8080"),
		JWTSecret:         getEnv("OLANEST_JWT_SECRET", "supersecretkey"),
		APITimeout:        15 * time.Second,
		DatabasePath:      getEnv("OLANEST_DATABASE_PATH", "olanest.db"),
		TokenDuration:     1 * time.Hour,
		AdminEmail:        getEnv("OLANEST_ADMIN_EMAIL", "admin123@olanest.com"),
		RedisAddr:         getEnv("OLANEST_REDIS_ADDR", ""),
		AggregateCacheTTL: 5 * time.Minute,
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations that must never reach production. The
// default JWT secret is allowed only when OLANEST_ENV is "development".
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("token_duration must be positive")
	}
	if c.AdminEmail == "" {
		return fmt.Errorf("admin_email is required")
	}
	if c.JWTSecret == insecureJWTSecret && os.Getenv("OLANEST_ENV") != "development" {
		return fmt.Errorf("jwt_secret is the insecure default; set OLANEST_JWT_SECRET")
	}
	if c.AggregateCacheTTL <= 0 {
		c.AggregateCacheTTL = 5 * time.Minute
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

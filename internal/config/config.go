package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port            string        `mapstructure:"PORT"`
	MongoURI        string        `mapstructure:"MONGO_URI"`
	MongoDatabase   string        `mapstructure:"MONGO_DATABASE"`
	JWTSecret       string        `mapstructure:"JWT_SECRET"`
	JWTTTL          time.Duration `mapstructure:"JWT_TTL"`
	StripeSecretKey string        `mapstructure:"STRIPE_SECRET_KEY"`
	PaymentCurrency string        `mapstructure:"PAYMENT_CURRENCY"`
	CORSOrigins     []string      `mapstructure:"CORS_ORIGINS"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	DBTimeout       time.Duration `mapstructure:"DB_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

// Load reads an optional .env file and then the process environment.
// Environment variables win over .env values because godotenv never
// overrides variables that are already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "5000")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "meditrackDB")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("PAYMENT_CURRENCY", "usd")
	v.SetDefault("CORS_ORIGINS", []string{"http://localhost:5173"})
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_TIMEOUT", "10s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")

	v.BindEnv("JWT_SECRET")
	v.BindEnv("STRIPE_SECRET_KEY")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not configured")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.MongoDatabase == "" {
		return errors.New("MONGO_DATABASE is empty")
	}
	if c.DBTimeout <= 0 {
		return errors.New("DB_TIMEOUT must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Package configs loads application settings with Viper from an optional
// config.yaml and NODEBOARD_* environment variables.
package configs

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Viper *viper.Viper
}

// Load builds a Config. When path is empty config.yaml is searched in the
// working directory and ./configs; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading %s: %w", v.ConfigFileUsed(), err)
		}
	}

	v.SetEnvPrefix("NODEBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	c := &Config{Viper: v}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("http.addr", ":8000")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "nodeboard")
	v.SetDefault("database.ssl", "disable")
	v.SetDefault("database.timezone", "UTC")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration_time", 86400)

	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.external_endpoint", "localhost:9000")
	v.SetDefault("minio.access_key_id", "minioadmin")
	v.SetDefault("minio.secret_access_key", "minioadmin")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "nodeboard-assets")

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.text_model", "gpt-4o-mini")
	v.SetDefault("openai.image_model", "dall-e-3")
	v.SetDefault("openai.speech_model", "tts-1")
	v.SetDefault("openai.voice", "alloy")
	v.SetDefault("openai.timeout", "120s")

	v.SetDefault("stripe.secret_key", "")
	v.SetDefault("stripe.backend_url", "")

	v.SetDefault("plans.free.price_id", "")
	v.SetDefault("plans.pro.price_id", "")
	v.SetDefault("plans.pro.credits.text", 500)
	v.SetDefault("plans.pro.credits.image", 100)
	v.SetDefault("plans.pro.credits.speech", 100)
	v.SetDefault("plans.pro.credits.website", 20)

	v.SetDefault("credits.signup.text", 20)
	v.SetDefault("credits.signup.image", 5)
	v.SetDefault("credits.signup.speech", 5)
	v.SetDefault("credits.signup.website", 1)
	v.SetDefault("credits.cost.text", 1)
	v.SetDefault("credits.cost.image", 1)
	v.SetDefault("credits.cost.speech", 1)
	v.SetDefault("credits.cost.website", 1)

	v.SetDefault("ratelimit.execute_per_minute", 20)

	v.SetDefault("execution.max_steps", 100)
	v.SetDefault("execution.timeout", "5m")

	v.SetDefault("telemetry.otlp_endpoint", "")
	v.SetDefault("telemetry.service_name", "nodeboard")

	v.SetDefault("subscriptions.sync_interval", "1h")
}

func (c *Config) Validate() error {
	if c.Viper.GetString("jwt.secret") == "" && !c.IsDevelopment() {
		return errors.New("config: jwt.secret must be set outside development")
	}
	if c.Viper.GetInt("jwt.expiration_time") <= 0 {
		return errors.New("config: jwt.expiration_time must be positive")
	}
	if c.Viper.GetInt("execution.max_steps") <= 0 {
		return errors.New("config: execution.max_steps must be positive")
	}
	for _, creditType := range []string{"text", "image", "speech", "website"} {
		if c.Viper.GetInt64("credits.cost."+creditType) < 0 {
			return fmt.Errorf("config: credits.cost.%s must not be negative", creditType)
		}
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Viper.GetString("app.env") == "development"
}

// JwtKey falls back to a fixed development key so local runs work without setup.
func (c *Config) JwtKey() []byte {
	if secret := c.Viper.GetString("jwt.secret"); secret != "" {
		return []byte(secret)
	}
	return []byte("nodeboard-development-secret")
}

func (c *Config) JwtExpiration() time.Duration {
	return time.Duration(c.Viper.GetInt("jwt.expiration_time")) * time.Second
}

// Duration parses key as a time.Duration, returning fallback when unset or invalid.
func (c *Config) Duration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(c.Viper.GetString(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// CreditAmounts reads a map of credit type to amount under prefix, e.g.
// "credits.signup" or "plans.pro.credits". Zero and negative entries are dropped.
func (c *Config) CreditAmounts(prefix string) map[string]int64 {
	out := map[string]int64{}
	for _, key := range c.childKeys(prefix) {
		if amount := c.Viper.GetInt64(prefix + "." + key); amount > 0 {
			out[key] = amount
		}
	}
	return out
}

// PlanForPrice maps a payment provider price id to the configured plan name.
func (c *Config) PlanForPrice(priceID string) string {
	if priceID == "" {
		return "free"
	}
	for _, plan := range c.childKeys("plans") {
		if c.Viper.GetString("plans."+plan+".price_id") == priceID {
			return plan
		}
	}
	return "free"
}

// childKeys lists the distinct direct children of prefix across the file,
// defaults and environment. GetStringMap would hide defaults once the file
// defines the same section.
func (c *Config) childKeys(prefix string) []string {
	seen := map[string]bool{}
	var out []string
	for _, key := range c.Viper.AllKeys() {
		rest, ok := strings.CutPrefix(key, prefix+".")
		if !ok {
			continue
		}
		child, _, _ := strings.Cut(rest, ".")
		if !seen[child] {
			seen[child] = true
			out = append(out, child)
		}
	}
	return out
}

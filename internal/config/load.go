package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for environment variable overrides, e.g.
// LEARNTRACK_SERVER_PORT or LEARNTRACK_DATABASE_URL.
const envPrefix = "LEARNTRACK"

// Load reads configuration from an optional config.yaml in the working
// directory and from environment variables, with the environment taking
// precedence. Returns a validated Config or an error describing what is
// missing or malformed.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; the environment can supply everything.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so bind
	// every key that has a default or appeared in the config file.
	for _, key := range v.AllKeys() {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers defaults for everything that has a sensible one.
// Secrets (database URL, JWT secret) deliberately have none.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.url", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.access_token_ttl_minutes", 60)
	v.SetDefault("auth.refresh_token_ttl_minutes", 10080)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("gamification.streak.history_limit", 30)
	v.SetDefault("gamification.streak.recent_window", 7)
	v.SetDefault("gamification.streak.timezone", "UTC")

	v.SetDefault("gamification.progression.xp_per_level", 100)
	v.SetDefault("gamification.progression.game_xp_easy", 10)
	v.SetDefault("gamification.progression.game_xp_medium", 20)
	v.SetDefault("gamification.progression.game_xp_hard", 35)
	v.SetDefault("gamification.progression.fast_min_accuracy", 0.85)
	v.SetDefault("gamification.progression.fast_max_duration_easy", 60)
	v.SetDefault("gamification.progression.fast_max_duration_medium", 120)
	v.SetDefault("gamification.progression.fast_max_duration_hard", 240)
	v.SetDefault("gamification.progression.fast_min_completed_level", 5)
	v.SetDefault("gamification.progression.slow_max_accuracy", 0.40)
	v.SetDefault("gamification.progression.slow_min_duration", 600)
	v.SetDefault("gamification.progression.slow_streak_grace", 7)
}

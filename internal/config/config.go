// Package config loads and validates application configuration.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"       validate:"required"`
	Database     DatabaseConfig     `mapstructure:"database"     validate:"required"`
	Auth         AuthConfig         `mapstructure:"auth"         validate:"required"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Gamification GamificationConfig `mapstructure:"gamification"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret              string `mapstructure:"jwt_secret"                validate:"required,min=32"`
	AccessTokenTTLMinutes  int    `mapstructure:"access_token_ttl_minutes"  validate:"gt=0"`
	RefreshTokenTTLMinutes int    `mapstructure:"refresh_token_ttl_minutes" validate:"gt=0"`
}

// RedisConfig contains the leaderboard cache settings. An empty Addr
// disables the leaderboard.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GamificationConfig groups the tunable parameters of the streak and
// progression engines. Zero values fall back to the engines' defaults;
// the thresholds encode pedagogy, not algorithmic necessity, which is why
// they live here rather than as constants.
type GamificationConfig struct {
	Streak      StreakConfig      `mapstructure:"streak"`
	Progression ProgressionConfig `mapstructure:"progression"`
}

// StreakConfig contains the streak engine parameters.
type StreakConfig struct {
	HistoryLimit int    `mapstructure:"history_limit" validate:"gte=0"`
	RecentWindow int    `mapstructure:"recent_window" validate:"gte=0"`
	Timezone     string `mapstructure:"timezone"`
}

// ProgressionConfig contains the XP and classifier parameters.
type ProgressionConfig struct {
	XPPerLevel int `mapstructure:"xp_per_level" validate:"gte=0"`

	GameXPEasy   int `mapstructure:"game_xp_easy"   validate:"gte=0"`
	GameXPMedium int `mapstructure:"game_xp_medium" validate:"gte=0"`
	GameXPHard   int `mapstructure:"game_xp_hard"   validate:"gte=0"`

	FastMinAccuracy       float64 `mapstructure:"fast_min_accuracy"        validate:"gte=0,lte=1"`
	FastMaxDurationEasy   int     `mapstructure:"fast_max_duration_easy"   validate:"gte=0"`
	FastMaxDurationMedium int     `mapstructure:"fast_max_duration_medium" validate:"gte=0"`
	FastMaxDurationHard   int     `mapstructure:"fast_max_duration_hard"   validate:"gte=0"`
	FastMinCompletedLevel int     `mapstructure:"fast_min_completed_level" validate:"gte=0"`

	SlowMaxAccuracy float64 `mapstructure:"slow_max_accuracy" validate:"gte=0,lte=1"`
	SlowMinDuration int     `mapstructure:"slow_min_duration" validate:"gte=0"`
	SlowStreakGrace int     `mapstructure:"slow_streak_grace" validate:"gte=0"`
}

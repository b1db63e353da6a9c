package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Push     PushConfig     `mapstructure:"push"`
	Notify   NotifyConfig   `mapstructure:"notify"   validate:"required"`
}

// ServerConfig contains all HTTP server related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
}

// SMTPConfig contains the settings for the email reminder channel.
// An empty Host disables email delivery entirely.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"     validate:"omitempty,gt=0,lt=65536"`
	From     string `mapstructure:"from"     validate:"omitempty,email"`
	Password string `mapstructure:"password"`
}

// PushConfig contains the settings for the push reminder channel.
// An empty AppToken disables push delivery entirely.
type PushConfig struct {
	APIURL   string `mapstructure:"api_url" validate:"omitempty,url"`
	AppToken string `mapstructure:"app_token"`
}

// NotifyConfig controls the due-task reminder sweep.
type NotifyConfig struct {
	// TimeoutSeconds bounds each delivery attempt; an attempt that exceeds
	// it is treated as failed and the sweep moves on.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gt=0"`

	// SweepTime is the local HH:MM at which the daily sweep runs.
	SweepTime string `mapstructure:"sweep_time" validate:"required"`
}

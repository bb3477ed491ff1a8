package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	API      APIConfig      `mapstructure:"api"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// RateLimit uses the limiter formatted notation, e.g. "100-M" for 100 requests per minute.
	// An empty value disables rate limiting.
	RateLimit              string `mapstructure:"rate_limit"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL            string `mapstructure:"url"             validate:"required,url"`
	MaxConns       int32  `mapstructure:"max_conns"       validate:"gte=1"`
	ConnectRetries uint64 `mapstructure:"connect_retries" validate:"lte=20"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lt=44640"` // Max 31 days
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"gte=4,lte=31"`
}

// APIConfig controls list endpoint paging.
type APIConfig struct {
	DefaultPerPage int `mapstructure:"default_per_page" validate:"gte=1,ltefield=MaxPerPage"`
	MaxPerPage     int `mapstructure:"max_per_page"     validate:"gte=1"`
	// OnEachSide is the number of page links shown either side of the current page.
	OnEachSide int `mapstructure:"on_each_side" validate:"gte=0,lte=10"`
}

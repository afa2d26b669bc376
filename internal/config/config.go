package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Store  StoreConfig  `mapstructure:"store"  validate:"required"`
	Auth   AuthConfig   `mapstructure:"auth"   validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StoreConfig contains all document-store-related configuration settings.
type StoreConfig struct {
	// Driver selects the storage backend.
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres mongodb"`

	// URL is the connection string for the selected backend.
	URL string `mapstructure:"url" validate:"required"`

	// Database is the database name; used by the mongodb backend only.
	Database string `mapstructure:"database"`
}

// AuthConfig contains all authentication settings. Identity is delegated
// to an external provider; this service only validates the tokens it
// issues, using a shared HMAC secret.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes bounds tokens minted locally (dev tooling,
	// tests). Validation accepts any unexpired provider token.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// LLMConfig contains all card-generation-related settings.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName         string `mapstructure:"model_name"     validate:"required"`
	MaxRetries        int    `mapstructure:"max_retries"        validate:"gte=0"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=0"`
}

package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Provider names accepted for the AI collaborators
const (
	TranscriberWhisper    = "whisper"
	TranscriberAssemblyAI = "assemblyai"

	SummarizerStatic = "static"
	SummarizerGroq   = "groq"
)

// Config holds application configuration
type Config struct {
	Server      ServerConfig      `envconfig:"SERVER"`
	Database    DatabaseConfig    `envconfig:"DB"`
	Redis       RedisConfig       `envconfig:"REDIS"`
	Storage     StorageConfig     `envconfig:"STORAGE"`
	Transcriber TranscriberConfig `envconfig:"TRANSCRIBER"`
	Summarizer  SummarizerConfig  `envconfig:"SUMMARIZER"`
	Whisper     WhisperConfig     `envconfig:"WHISPER"`
	Assembly    AssemblyAIConfig  `envconfig:"ASSEMBLYAI"`
	Groq        GroqConfig        `envconfig:"GROQ"`
	Actions     ActionsConfig     `envconfig:"ACTIONS"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"5m"`
	MaxUploadBytes  int64         `envconfig:"MAX_UPLOAD_BYTES" default:"104857600"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Enabled     bool   `envconfig:"ENABLED" default:"false"`
	Host        string `envconfig:"HOST" default:"localhost"`
	Port        string `envconfig:"PORT" default:"5432"`
	User        string `envconfig:"USER" default:"postgres"`
	Password    string `envconfig:"PASSWORD" default:"postgres"`
	Name        string `envconfig:"NAME" default:"polyglot_minutes"`
	SSLMode     string `envconfig:"SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"AUTO_MIGRATE" default:"false"`
	Migrations  string `envconfig:"MIGRATIONS_DIR" default:"migrations"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `envconfig:"ENABLED" default:"false"`
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     string `envconfig:"PORT" default:"6379"`
	Password string `envconfig:"PASSWORD" default:""`
	DB       int    `envconfig:"DB" default:"0"`
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Enabled         bool   `envconfig:"ENABLED" default:"false"`
	Endpoint        string `envconfig:"ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"BUCKET" default:"polyglot-minutes"`
	UseSSL          bool   `envconfig:"USE_SSL" default:"false"`
	PublicURL       string `envconfig:"PUBLIC_URL" default:""`
}

// TranscriberConfig selects the speech-to-text provider
type TranscriberConfig struct {
	Provider string `envconfig:"PROVIDER" default:"whisper"`
}

// SummarizerConfig selects the summary provider
type SummarizerConfig struct {
	Provider string `envconfig:"PROVIDER" default:"static"`
}

// WhisperConfig holds configuration for an OpenAI-compatible Whisper endpoint
type WhisperConfig struct {
	APIKey  string `envconfig:"API_KEY" default:""`
	BaseURL string `envconfig:"BASE_URL" default:""`
	Model   string `envconfig:"MODEL" default:"whisper-1"`
}

// AssemblyAIConfig holds AssemblyAI configuration
type AssemblyAIConfig struct {
	APIKey       string `envconfig:"API_KEY" default:""`
	LanguageCode string `envconfig:"LANGUAGE_CODE" default:""`
}

// GroqConfig holds Groq configuration
type GroqConfig struct {
	APIKey  string `envconfig:"API_KEY" default:""`
	BaseURL string `envconfig:"API_URL" default:"https://api.groq.com"`
	Model   string `envconfig:"MODEL" default:"llama-3.1-70b-versatile"`
}

// ActionsConfig tunes the action item endpoint
type ActionsConfig struct {
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"1h"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabase loads configuration for tools that only talk to the database.
// Provider settings are not validated.
func LoadDatabase() (*Config, error) {
	return read()
}

func read() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	c.Transcriber.Provider = strings.ToLower(strings.TrimSpace(c.Transcriber.Provider))
	c.Summarizer.Provider = strings.ToLower(strings.TrimSpace(c.Summarizer.Provider))

	switch c.Transcriber.Provider {
	case TranscriberWhisper:
		if c.Whisper.APIKey == "" && c.Whisper.BaseURL == "" {
			return fmt.Errorf("WHISPER_API_KEY or WHISPER_BASE_URL is required for the whisper transcriber")
		}
	case TranscriberAssemblyAI:
		if c.Assembly.APIKey == "" {
			return fmt.Errorf("ASSEMBLYAI_API_KEY is required for the assemblyai transcriber")
		}
	default:
		return fmt.Errorf("unsupported transcriber provider: %q", c.Transcriber.Provider)
	}

	switch c.Summarizer.Provider {
	case SummarizerStatic:
	case SummarizerGroq:
		if c.Groq.APIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required for the groq summarizer")
		}
	default:
		return fmt.Errorf("unsupported summarizer provider: %q", c.Summarizer.Provider)
	}

	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("SERVER_MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return c.Redis.Addr()
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// GetServerAddr returns the listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

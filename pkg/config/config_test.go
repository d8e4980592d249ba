package config

import (
	"testing"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:      ServerConfig{Host: "0.0.0.0", Port: "8000", MaxUploadBytes: 1024},
		Transcriber: TranscriberConfig{Provider: TranscriberWhisper},
		Summarizer:  SummarizerConfig{Provider: SummarizerStatic},
		Whisper:     WhisperConfig{BaseURL: "http://localhost:9000/v1"},
	}
}

func TestProcess_Defaults(t *testing.T) {
	var cfg Config
	require.NoError(t, envconfig.Process("", &cfg))

	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, int64(104857600), cfg.Server.MaxUploadBytes)
	assert.Equal(t, TranscriberWhisper, cfg.Transcriber.Provider)
	assert.Equal(t, SummarizerStatic, cfg.Summarizer.Provider)
	assert.Equal(t, "whisper-1", cfg.Whisper.Model)
	assert.Equal(t, time.Hour, cfg.Actions.CacheTTL)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestProcess_NestedPrefixes(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("TRANSCRIBER_PROVIDER", "assemblyai")
	t.Setenv("ASSEMBLYAI_API_KEY", "aai-key")
	t.Setenv("ACTIONS_CACHE_TTL", "15m")

	var cfg Config
	require.NoError(t, envconfig.Process("", &cfg))

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, TranscriberAssemblyAI, cfg.Transcriber.Provider)
	assert.Equal(t, "aai-key", cfg.Assembly.APIKey)
	assert.Equal(t, 15*time.Minute, cfg.Actions.CacheTTL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "whisper with base url", mutate: func(c *Config) {}},
		{name: "whisper with api key", mutate: func(c *Config) {
			c.Whisper = WhisperConfig{APIKey: "sk-test"}
		}},
		{name: "whisper without credentials", mutate: func(c *Config) {
			c.Whisper = WhisperConfig{}
		}, wantErr: true},
		{name: "assemblyai without key", mutate: func(c *Config) {
			c.Transcriber.Provider = TranscriberAssemblyAI
		}, wantErr: true},
		{name: "assemblyai with key", mutate: func(c *Config) {
			c.Transcriber.Provider = TranscriberAssemblyAI
			c.Assembly.APIKey = "k"
		}},
		{name: "unknown transcriber", mutate: func(c *Config) {
			c.Transcriber.Provider = "deepgram"
		}, wantErr: true},
		{name: "groq without key", mutate: func(c *Config) {
			c.Summarizer.Provider = SummarizerGroq
		}, wantErr: true},
		{name: "groq with key", mutate: func(c *Config) {
			c.Summarizer.Provider = SummarizerGroq
			c.Groq.APIKey = "gsk"
		}},
		{name: "unknown summarizer", mutate: func(c *Config) {
			c.Summarizer.Provider = "gpt"
		}, wantErr: true},
		{name: "zero upload limit", mutate: func(c *Config) {
			c.Server.MaxUploadBytes = 0
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_NormalizesProviderNames(t *testing.T) {
	cfg := validConfig()
	cfg.Transcriber.Provider = "  Whisper "
	cfg.Summarizer.Provider = "STATIC"

	require.NoError(t, cfg.Validate())
	assert.Equal(t, TranscriberWhisper, cfg.Transcriber.Provider)
	assert.Equal(t, SummarizerStatic, cfg.Summarizer.Provider)
}

func TestAddresses(t *testing.T) {
	cfg := validConfig()
	cfg.Redis = RedisConfig{Host: "cache", Port: "6380"}
	cfg.Database = DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}

	assert.Equal(t, "0.0.0.0:8000", cfg.GetServerAddr())
	assert.Equal(t, "cache:6380", cfg.GetRedisAddr())
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.GetDatabaseDSN())
	assert.False(t, cfg.IsProduction())
}

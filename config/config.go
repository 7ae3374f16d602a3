package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	STORAGE_MONGO  = "mongo"
	STORAGE_MEMORY = "memory"
)

type Config struct {
	Port              string        `mapstructure:"port"`
	UploadDir         string        `mapstructure:"upload_dir"`
	Storage           string        `mapstructure:"storage"`
	Database          string        `mapstructure:"database"`
	MongoDBURI        string        `mapstructure:"MONGODB_URI"`
	RedisAddr         string        `mapstructure:"REDIS_ADDR"`
	KnowledgeCacheTTL time.Duration `mapstructure:"knowledge_cache_ttl"`
	CorsOrigin        string        `mapstructure:"cors_origin"`
	LogLevel          string        `mapstructure:"log_level"`
	GeminiAPIKey      string        `mapstructure:"GEMINI_API_KEY"`
	OpenAIAPIKey      string        `mapstructure:"OPENAI_API_KEY"`
	AI                AIConfig      `mapstructure:"ai"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Model    string        `mapstructure:"model"`
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// APIKey returns the credential for the configured provider.
func (c *Config) APIKey() string {
	if c.AI.Provider == "openai" {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("storage", STORAGE_MONGO)
	v.SetDefault("database", "mindmap")
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("knowledge_cache_ttl", 5*time.Minute)
	v.SetDefault("cors_origin", "*")
	v.SetDefault("log_level", "info")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.endpoint", "")
	v.SetDefault("ai.timeout", 30*time.Second)
}

// LoadConfig reads configPath when it is set, then applies the environment on
// top of it.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.AutomaticEnv()
	for _, key := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "MONGODB_URI", "REDIS_ADDR"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", key, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	switch c.Storage {
	case STORAGE_MONGO, STORAGE_MEMORY:
	default:
		return fmt.Errorf("invalid storage %q: want %s or %s", c.Storage, STORAGE_MONGO, STORAGE_MEMORY)
	}
	switch c.AI.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("invalid ai provider %q", c.AI.Provider)
	}
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Engine providers.
const (
	ProviderLambda = "lambda"
	ProviderHTTP   = "http"
	ProviderOpenAI = "openai"
)

type Config struct {
	Cache    CacheConfig    `mapstructure:"cache"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Dispatch DispatchConfig `mapstructure:"dispatch"`
	Log      LogConfig      `mapstructure:"log"`
}

type CacheConfig struct {
	TTLSeconds           int         `mapstructure:"ttl_seconds" validate:"gt=0"`
	MaxEntries           int         `mapstructure:"max_entries" validate:"gt=0"`
	SweepIntervalSeconds int         `mapstructure:"sweep_interval_seconds" validate:"gt=0"`
	Store                StoreConfig `mapstructure:"store"`
}

// StoreConfig selects the persistent cache tier. An empty driver keeps the
// cache in memory only.
type StoreConfig struct {
	Driver    string `mapstructure:"driver" validate:"omitempty,oneof=sqlite3 mysql postgres"`
	DSN       string `mapstructure:"dsn" validate:"required_with=Driver"`
	TimeoutMS int    `mapstructure:"timeout_ms" validate:"gt=0"`
}

type BatchConfig struct {
	MaxSize   int `mapstructure:"max_size" validate:"gt=0"`
	MaxWaitMS int `mapstructure:"max_wait_ms" validate:"gt=0"`
}

type EngineConfig struct {
	Provider          string       `mapstructure:"provider" validate:"oneof=lambda http openai"`
	CallTimeoutMS     int          `mapstructure:"call_timeout_ms" validate:"gt=0"`
	MaxTokensPerChunk int          `mapstructure:"max_tokens_per_chunk" validate:"gt=0"`
	MaxRetries        uint         `mapstructure:"max_retries" validate:"lte=10"`
	Lambda            LambdaConfig `mapstructure:"lambda"`
	HTTP              HTTPConfig   `mapstructure:"http"`
	OpenAI            OpenAIConfig `mapstructure:"openai"`
}

type LambdaConfig struct {
	FunctionName       string `mapstructure:"function_name"`
	DetectFunctionName string `mapstructure:"detect_function_name"`
}

type HTTPConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey  string `mapstructure:"api_key"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

type DispatchConfig struct {
	MaxConcurrency int `mapstructure:"max_concurrency" validate:"gt=0"`
}

type LogConfig struct {
	Level       string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Development bool   `mapstructure:"development"`
}

func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

func (c CacheConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}

func (c StoreConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func (c BatchConfig) MaxWait() time.Duration {
	return time.Duration(c.MaxWaitMS) * time.Millisecond
}

func (c EngineConfig) CallTimeout() time.Duration {
	return time.Duration(c.CallTimeoutMS) * time.Millisecond
}

// Load reads the configuration from configFile, or from translation.yaml in
// the working directory or $HOME/.config/translation-service when configFile
// is empty. Environment variables prefixed with TRANSLATION_ override file
// values, e.g. TRANSLATION_ENGINE_PROVIDER.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("translation")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/translation-service")
	}

	v.SetDefault("cache.ttl_seconds", 3600)
	v.SetDefault("cache.max_entries", 10000)
	v.SetDefault("cache.sweep_interval_seconds", 60)
	v.SetDefault("cache.store.driver", "")
	v.SetDefault("cache.store.dsn", "")
	v.SetDefault("cache.store.timeout_ms", 50)
	v.SetDefault("batch.max_size", 32)
	v.SetDefault("batch.max_wait_ms", 10)
	v.SetDefault("engine.provider", ProviderLambda)
	v.SetDefault("engine.call_timeout_ms", 30000)
	v.SetDefault("engine.max_tokens_per_chunk", 3000)
	v.SetDefault("engine.max_retries", 2)
	v.SetDefault("engine.lambda.function_name", "")
	v.SetDefault("engine.lambda.detect_function_name", "")
	v.SetDefault("engine.http.base_url", "")
	v.SetDefault("engine.http.api_key", "")
	v.SetDefault("engine.openai.model", "gpt-4o-mini")
	v.SetDefault("engine.openai.base_url", "")
	v.SetDefault("dispatch.max_concurrency", 8)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetEnvPrefix("TRANSLATION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// OPENAI_API_KEY is honoured next to the prefixed name; the file value
	// is used when neither is set.
	if err := v.BindEnv("engine.openai.api_key", "TRANSLATION_ENGINE_OPENAI_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks option ranges and provider requirements.
func (c *Config) Validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("failed to validate configuration: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fe.Translate(trans))
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}
	return nil
}

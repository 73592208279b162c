package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "translation.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		env               map[string]string
		wantErr           bool
		want              *Config
		wantErrorContains []string
	}{
		{
			name: "defaults with lambda provider",
			configContent: `engine:
  lambda:
    function_name: opus-mt
`,
			want: &Config{
				Cache: CacheConfig{
					TTLSeconds:           3600,
					MaxEntries:           10000,
					SweepIntervalSeconds: 60,
					Store:                StoreConfig{TimeoutMS: 50},
				},
				Batch: BatchConfig{MaxSize: 32, MaxWaitMS: 10},
				Engine: EngineConfig{
					Provider:          ProviderLambda,
					CallTimeoutMS:     30000,
					MaxTokensPerChunk: 3000,
					MaxRetries:        2,
					Lambda:            LambdaConfig{FunctionName: "opus-mt"},
					OpenAI:            OpenAIConfig{Model: "gpt-4o-mini"},
				},
				Dispatch: DispatchConfig{MaxConcurrency: 8},
				Log:      LogConfig{Level: "info"},
			},
		},
		{
			name: "custom values",
			configContent: `cache:
  ttl_seconds: 60
  max_entries: 5
  store:
    driver: sqlite3
    dsn: file:cache.db
    timeout_ms: 20
batch:
  max_size: 4
  max_wait_ms: 25
engine:
  provider: http
  http:
    base_url: http://localhost:8080
dispatch:
  max_concurrency: 2
log:
  level: debug
  development: true
`,
			want: &Config{
				Cache: CacheConfig{
					TTLSeconds:           60,
					MaxEntries:           5,
					SweepIntervalSeconds: 60,
					Store:                StoreConfig{Driver: "sqlite3", DSN: "file:cache.db", TimeoutMS: 20},
				},
				Batch: BatchConfig{MaxSize: 4, MaxWaitMS: 25},
				Engine: EngineConfig{
					Provider:          ProviderHTTP,
					CallTimeoutMS:     30000,
					MaxTokensPerChunk: 3000,
					MaxRetries:        2,
					HTTP:              HTTPConfig{BaseURL: "http://localhost:8080"},
					OpenAI:            OpenAIConfig{Model: "gpt-4o-mini"},
				},
				Dispatch: DispatchConfig{MaxConcurrency: 2},
				Log:      LogConfig{Level: "debug", Development: true},
			},
		},
		{
			name: "environment overrides file",
			configContent: `engine:
  provider: lambda
  lambda:
    function_name: from-file
`,
			env: map[string]string{
				"TRANSLATION_ENGINE_PROVIDER": "openai",
				"OPENAI_API_KEY":              "sk-test",
				"TRANSLATION_BATCH_MAX_SIZE":  "8",
			},
			want: &Config{
				Cache: CacheConfig{
					TTLSeconds:           3600,
					MaxEntries:           10000,
					SweepIntervalSeconds: 60,
					Store:                StoreConfig{TimeoutMS: 50},
				},
				Batch: BatchConfig{MaxSize: 8, MaxWaitMS: 10},
				Engine: EngineConfig{
					Provider:          ProviderOpenAI,
					CallTimeoutMS:     30000,
					MaxTokensPerChunk: 3000,
					MaxRetries:        2,
					Lambda:            LambdaConfig{FunctionName: "from-file"},
					OpenAI:            OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini"},
				},
				Dispatch: DispatchConfig{MaxConcurrency: 8},
				Log:      LogConfig{Level: "info"},
			},
		},
		{
			name: "openai api key from file",
			configContent: `engine:
  provider: openai
  openai:
    api_key: sk-file
`,
			want: &Config{
				Cache: CacheConfig{
					TTLSeconds:           3600,
					MaxEntries:           10000,
					SweepIntervalSeconds: 60,
					Store:                StoreConfig{TimeoutMS: 50},
				},
				Batch: BatchConfig{MaxSize: 32, MaxWaitMS: 10},
				Engine: EngineConfig{
					Provider:          ProviderOpenAI,
					CallTimeoutMS:     30000,
					MaxTokensPerChunk: 3000,
					MaxRetries:        2,
					OpenAI:            OpenAIConfig{APIKey: "sk-file", Model: "gpt-4o-mini"},
				},
				Dispatch: DispatchConfig{MaxConcurrency: 8},
				Log:      LogConfig{Level: "info"},
			},
		},
		{
			name: "invalid YAML format",
			configContent: `engine:
  provider: lambda
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
			},
		},
		{
			name: "missing lambda function name",
			configContent: `engine:
  provider: lambda
`,
			wantErr: true,
			wantErrorContains: []string{
				"engine.lambda.function_name is required when engine.provider is lambda",
			},
		},
		{
			name: "unknown provider and bad ranges",
			configContent: `cache:
  max_entries: 0
engine:
  provider: grpc
log:
  level: trace
`,
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"provider",
				"max_entries",
				"level",
			},
		},
		{
			name: "unknown store driver",
			configContent: `cache:
  store:
    driver: redis
    dsn: localhost:6379
engine:
  lambda:
    function_name: opus-mt
`,
			wantErr: true,
			wantErrorContains: []string{
				"driver",
			},
		},
		{
			name: "store driver without dsn",
			configContent: `cache:
  store:
    driver: mysql
engine:
  lambda:
    function_name: opus-mt
`,
			wantErr: true,
			wantErrorContains: []string{
				"dsn",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := Load(writeConfig(t, tt.configContent))
			if tt.wantErr {
				require.Error(t, err)
				for _, s := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), s)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDurations(t *testing.T) {
	cfg := Config{
		Cache: CacheConfig{
			TTLSeconds:           90,
			SweepIntervalSeconds: 5,
			Store:                StoreConfig{TimeoutMS: 50},
		},
		Batch:  BatchConfig{MaxWaitMS: 10},
		Engine: EngineConfig{CallTimeoutMS: 1500},
	}

	assert.Equal(t, 90*time.Second, cfg.Cache.TTL())
	assert.Equal(t, 5*time.Second, cfg.Cache.SweepInterval())
	assert.Equal(t, 50*time.Millisecond, cfg.Cache.Store.Timeout())
	assert.Equal(t, 10*time.Millisecond, cfg.Batch.MaxWait())
	assert.Equal(t, 1500*time.Millisecond, cfg.Engine.CallTimeout())
}

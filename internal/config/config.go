package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ProviderKind identifies which upstream inference service the proxy
// forwards to. The set is closed; anything else is a startup error.
type ProviderKind string

const (
	ProviderHFTGI  ProviderKind = "HF_TGI"
	ProviderRunpod ProviderKind = "RUNPOD_OPENAI"
)

// Config holds configuration for the proxy. It is built once at startup by
// Load and never mutated afterwards.
type Config struct {
	HTTPPort      string
	Provider      ProviderConfig
	CORS          CORSConfig
	Static        StaticConfig
	RequestLogger RequestLoggerConfig
}

// ProviderConfig holds upstream provider settings. BaseURL is the raw
// configured value; the kind-specific resolution (trailing-slash trim, /v1
// suffix) happens in the provider constructors.
type ProviderConfig struct {
	Kind           ProviderKind
	BaseURL        string
	APIKey         string
	ModelName      string
	RequestTimeout time.Duration
}

// CORSConfig holds the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string
}

// StaticConfig holds settings for the bundled chat page.
type StaticConfig struct {
	Dir string
}

// RequestLoggerConfig holds settings for the JSONL request log.
type RequestLoggerConfig struct {
	FilePathTemplate string
	MaxSize          int64
	MaxFiles         int
	BufferSize       int
	FlushInterval    time.Duration
}

func getEnvString(key string, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	return val
}

func getEnvInt(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getEnvInt64(key string, defaultValue int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	intVal, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return defaultValue
	}
	return intVal
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(val)
	if err != nil {
		return defaultValue
	}

	return duration
}

// Load reads configuration from environment variables. It fails fast on an
// unrecognized provider kind or on missing credentials for the selected
// kind, so a process that starts serving has a usable provider.
func Load() (*Config, error) {
	provider := ProviderConfig{
		Kind:           ProviderKind(getEnvString("PROVIDER", string(ProviderHFTGI))),
		ModelName:      getEnvString("MODEL_NAME", "Intelligent-Internet/II-Search-4B"),
		RequestTimeout: getEnvDuration("PROVIDER_REQUEST_TIMEOUT", 120*time.Second),
	}

	switch provider.Kind {
	case ProviderHFTGI:
		provider.BaseURL = os.Getenv("HF_API_BASE")
		provider.APIKey = os.Getenv("HF_API_KEY")
		if provider.BaseURL == "" {
			return nil, fmt.Errorf("HF_API_BASE is required when PROVIDER=%s", provider.Kind)
		}
		if provider.APIKey == "" {
			return nil, fmt.Errorf("HF_API_KEY is required when PROVIDER=%s", provider.Kind)
		}
	case ProviderRunpod:
		provider.BaseURL = os.Getenv("RUNPOD_API_BASE")
		provider.APIKey = os.Getenv("RUNPOD_API_KEY")
		if provider.BaseURL == "" {
			return nil, fmt.Errorf("RUNPOD_API_BASE is required when PROVIDER=%s", provider.Kind)
		}
		if provider.APIKey == "" {
			return nil, fmt.Errorf("RUNPOD_API_KEY is required when PROVIDER=%s", provider.Kind)
		}
	default:
		return nil, fmt.Errorf("unsupported PROVIDER %q", provider.Kind)
	}

	cfg := &Config{
		HTTPPort: getEnvString("HTTP_PORT", "8080"),
		Provider: provider,
		CORS: CORSConfig{
			AllowedOrigins: splitOrigins(getEnvString("ALLOWED_ORIGINS", "*")),
		},
		Static: StaticConfig{
			Dir: getEnvString("STATIC_DIR", "./static"),
		},
		RequestLogger: RequestLoggerConfig{
			FilePathTemplate: getEnvString("REQUEST_LOGGER_FILE_PATH_TEMPLATE", "/var/log/chat-proxy/requests-%s.jsonl"),
			MaxSize:          getEnvInt64("REQUEST_LOGGER_MAX_SIZE", 10_485_760),              // default 10 MB
			MaxFiles:         getEnvInt("REQUEST_LOGGER_MAX_FILES", 5),                        // default 5
			BufferSize:       getEnvInt("REQUEST_LOGGER_BUFFER_SIZE", 100),                    // default 100
			FlushInterval:    getEnvDuration("REQUEST_LOGGER_FLUSH_INTERVAL", 60*time.Second), // default 60 seconds
		},
	}

	return cfg, nil
}

// splitOrigins parses a comma-separated origin list, trimming whitespace and
// dropping empty entries.
func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}

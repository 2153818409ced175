package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	StoreS3    = "s3"
	StoreLocal = "local"

	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultBucket      = "project-images"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	LLMProvider  string
	LLMModel     string
	GeminiAPIKey string
	OpenAIAPIKey string

	ObjectStoreType      string
	LocalStoreDir        string
	StorageEndpoint      string
	StorageRegion        string
	StorageAccessKey     string
	StorageSecretKey     string
	StorageBucket        string
	StoragePrefix        string
	StoragePublicBaseURL string

	DatabaseURL   string
	DBAutoMigrate bool

	SessionTTL       time.Duration
	SubmitRatePerMin float64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	provider := normalizeProvider(getEnv("LLM_PROVIDER", ProviderGemini))
	model := getEnv("LLM_MODEL", "")
	if model == "" {
		model = defaultModel(provider)
	}

	return Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:      splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		LLMProvider:          provider,
		LLMModel:             model,
		GeminiAPIKey:         firstEnv("GEMINI_API_KEY", "API_KEY"),
		OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
		ObjectStoreType:      normalizeStoreType(getEnv("OBJECT_STORE", StoreLocal)),
		LocalStoreDir:        getEnv("LOCAL_STORE_DIR", "./data"),
		StorageEndpoint:      getEnv("STORAGE_ENDPOINT", ""),
		StorageRegion:        getEnv("STORAGE_REGION", "us-east-1"),
		StorageAccessKey:     getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey:     getEnv("STORAGE_SECRET_KEY", ""),
		StorageBucket:        getEnv("STORAGE_BUCKET", DefaultBucket),
		StoragePrefix:        getEnv("STORAGE_PREFIX", ""),
		StoragePublicBaseURL: strings.TrimRight(getEnv("STORAGE_PUBLIC_BASE_URL", ""), "/"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		DBAutoMigrate:        getBool("DB_AUTO_MIGRATE", false),
		SessionTTL:           getDuration("SESSION_TTL", 2*time.Hour),
		SubmitRatePerMin:     getFloat("SUBMIT_RATE_PER_MIN", 6),
	}
}

// Validate reports every missing or inconsistent setting at once so that the
// process can refuse to start instead of failing on the first submission.
func (c Config) Validate() error {
	var errs []error

	switch c.LLMProvider {
	case ProviderGemini:
		if strings.TrimSpace(c.GeminiAPIKey) == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required when LLM_PROVIDER=gemini"))
		}
	case ProviderOpenAI:
		if strings.TrimSpace(c.OpenAIAPIKey) == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required when LLM_PROVIDER=openai"))
		}
	default:
		errs = append(errs, fmt.Errorf("LLM_PROVIDER %q is not supported", c.LLMProvider))
	}

	if strings.TrimSpace(c.StorageBucket) == "" {
		errs = append(errs, errors.New("STORAGE_BUCKET is required"))
	}
	if c.ObjectStoreType == StoreS3 {
		if strings.TrimSpace(c.StorageAccessKey) == "" || strings.TrimSpace(c.StorageSecretKey) == "" {
			errs = append(errs, errors.New("STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY are required when OBJECT_STORE=s3"))
		}
		if c.StoragePublicBaseURL == "" {
			errs = append(errs, errors.New("STORAGE_PUBLIC_BASE_URL is required when OBJECT_STORE=s3"))
		}
	}

	if !c.IsDevLike() {
		if strings.TrimSpace(c.DatabaseURL) == "" {
			errs = append(errs, fmt.Errorf("DATABASE_URL is required in %s", c.Env))
		}
		if c.ObjectStoreType != StoreS3 {
			errs = append(errs, fmt.Errorf("OBJECT_STORE=s3 is required in %s", c.Env))
		}
	}

	return errors.Join(errs...)
}

// IsDevLike reports whether in-memory and local fallbacks are allowed.
func (c Config) IsDevLike() bool {
	switch c.Env {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if val := getEnv(key, ""); val != "" {
			return val
		}
	}
	return ""
}

func getBool(key string, def bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return val
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		return def
	}
	return val
}

func getFloat(key string, def float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val < 0 {
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3", "supabase":
		return StoreS3
	default:
		return StoreLocal
	}
}

func normalizeProvider(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func defaultModel(provider string) string {
	if provider == ProviderOpenAI {
		return DefaultOpenAIModel
	}
	return DefaultGeminiModel
}

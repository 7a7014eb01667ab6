package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"wellbeing/domain/survey"
	"wellbeing/internal/errors"
)

// Provider names accepted by AI_PROVIDER
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// Config represents the complete application configuration
type Config struct {
	AI         AIConfig          `yaml:"ai"`
	Server     ServerConfig      `yaml:"server"`
	Session    SessionConfig     `yaml:"session"`
	Profiling  ProfilingConfig   `yaml:"profiling"`
	Benchmarks survey.Benchmarks `yaml:"benchmarks"`
}

// AIConfig holds narrative generator settings
type AIConfig struct {
	Provider    string        `yaml:"provider"`
	GeminiKey   string        `yaml:"gemini_key"`
	OpenAIKey   string        `yaml:"openai_key"`
	Model       string        `yaml:"model"`
	BaseURL     string        `yaml:"base_url"`
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout"`
	PromptsDir  string        `yaml:"prompts_dir"`
	Concurrency int           `yaml:"concurrency"`
}

// APIKey returns the key for the selected provider
func (c AIConfig) APIKey() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIKey
	}
	return c.GeminiKey
}

// Enabled reports whether narratives can be generated at all
func (c AIConfig) Enabled() bool {
	return c.Provider != ProviderNone && c.APIKey() != ""
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port           string `yaml:"port"`
	GinMode        string `yaml:"gin_mode"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// SessionConfig bounds the in-memory upload store
type SessionConfig struct {
	TTL        time.Duration `yaml:"ttl"`
	MaxUploads int           `yaml:"max_uploads"`
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string `yaml:"port"`
	Enabled bool   `yaml:"enabled"`
}

// Load reads configuration from environment variables, applies the optional YAML overlay named by
// WELLBEING_CONFIG and validates the result
func Load() (*Config, error) {
	config := &Config{
		AI:         *loadAIConfig(),
		Server:     *loadServerConfig(),
		Session:    *loadSessionConfig(),
		Profiling:  *loadProfilingConfig(),
		Benchmarks: survey.NationalBenchmarks,
	}

	if path := os.Getenv("WELLBEING_CONFIG"); path != "" {
		if err := applyFile(config, path); err != nil {
			return nil, errors.Wrap(err, "failed to load configuration file")
		}
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadAIConfig() *AIConfig {
	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		geminiKey = os.Getenv("VITE_GEMINI_API_KEY")
	}

	provider := strings.ToLower(getEnvOrDefault("AI_PROVIDER", ProviderGemini))
	defaultModel := "gemini-2.5-flash"
	if provider == ProviderOpenAI {
		defaultModel = "gpt-4o-mini"
	}

	return &AIConfig{
		Provider:    provider,
		GeminiKey:   geminiKey,
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		Model:       getEnvOrDefault("LLM_MODEL", defaultModel),
		BaseURL:     getEnvOrDefault("LLM_BASE_URL", ""),
		Temperature: getEnvFloatOrDefault("LLM_TEMPERATURE", 0.7),
		MaxTokens:   getEnvIntOrDefault("LLM_MAX_TOKENS", 1024),
		Timeout:     getEnvDurationOrDefault("LLM_TIMEOUT", 60*time.Second),
		PromptsDir:  getEnvOrDefault("PROMPTS_DIR", ""),
		Concurrency: getEnvIntOrDefault("AI_CONCURRENCY", 3),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:           getEnvOrDefault("PORT", "8080"),
		GinMode:        getEnvOrDefault("GIN_MODE", "debug"),
		MaxUploadBytes: int64(getEnvIntOrDefault("MAX_UPLOAD_MB", 50)) * 1024 * 1024,
	}
}

func loadSessionConfig() *SessionConfig {
	return &SessionConfig{
		TTL:        getEnvDurationOrDefault("SESSION_TTL", time.Hour),
		MaxUploads: getEnvIntOrDefault("SESSION_MAX_UPLOADS", 32),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

// applyFile overlays non-zero values from a YAML file
func applyFile(config *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.ConfigInvalid("cannot read " + path + ": " + err.Error())
	}
	return applyYAML(config, raw)
}

func applyYAML(config *Config, raw []byte) error {
	// decoding onto the populated struct keeps every field the file leaves out
	if err := yaml.Unmarshal(raw, config); err != nil {
		return errors.ConfigInvalid("invalid YAML: " + err.Error())
	}
	config.AI.Provider = strings.ToLower(config.AI.Provider)
	return nil
}

func validateConfig(config *Config) error {
	switch config.AI.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderNone:
	default:
		return errors.ConfigInvalid("unknown AI provider: " + config.AI.Provider)
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Server.MaxUploadBytes <= 0 {
		return errors.ConfigInvalid("upload limit must be positive")
	}
	if config.AI.Concurrency < 1 {
		return errors.ConfigInvalid("AI concurrency must be at least 1")
	}
	if config.Session.MaxUploads < 1 {
		return errors.ConfigInvalid("session store must hold at least one upload")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

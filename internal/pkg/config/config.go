// Package config provides layered configuration resolution for gitaimsg.
package config

import (
	"os"
	"strings"
)

// Provider name constants for supported backends.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// DisableEnvVar is the per-invocation kill switch. Any truthy value skips
// generation entirely; it outranks every config file layer.
const DisableEnvVar = "GITAIMSG_DISABLE"

// Config is the fully resolved configuration for one invocation. All layers
// (defaults, user file, repo file, environment) have already been merged and
// API keys have been read from their configured environment variables, so
// nothing downstream performs further lookups.
type Config struct {
	General   GeneralConfig   `mapstructure:"gitaimsg"`
	Providers ProvidersConfig `mapstructure:"provider"`
}

// GeneralConfig contains the top-level generation options.
type GeneralConfig struct {
	Provider     string  `mapstructure:"provider"`
	Model        string  `mapstructure:"model"`
	MaxDiffChars int     `mapstructure:"max_diff_chars"`
	TimeoutS     int     `mapstructure:"timeout_s"`
	Temperature  float32 `mapstructure:"temperature"`
	TopP         float32 `mapstructure:"top_p"`
	SystemPrompt string  `mapstructure:"system_prompt"`
	Enabled      bool    `mapstructure:"enabled"`
}

// ProvidersConfig contains the per-provider subsections.
type ProvidersConfig struct {
	Ollama ProviderSettings `mapstructure:"ollama"`
	OpenAI ProviderSettings `mapstructure:"openai"`
	Gemini ProviderSettings `mapstructure:"gemini"`
}

// ProviderSettings contains the connection settings for one backend.
// APIKey is populated during resolution from the variable named by APIKeyEnv;
// it never appears in a config file.
type ProviderSettings struct {
	BaseURL   string `mapstructure:"base_url"`
	APIKeyEnv string `mapstructure:"api_key_env"`
	APIKey    string `mapstructure:"-"`
}

// ActiveProvider returns the settings for the configured provider name.
// The second return value is false for unknown names, which fail closed.
func (c *Config) ActiveProvider() (ProviderSettings, bool) {
	switch c.General.Provider {
	case ProviderOllama:
		return c.Providers.Ollama, true
	case ProviderOpenAI:
		return c.Providers.OpenAI, true
	case ProviderGemini:
		return c.Providers.Gemini, true
	default:
		return ProviderSettings{}, false
	}
}

// DisabledByEnv reports whether the GITAIMSG_DISABLE switch is set to a
// truthy value for this invocation.
func DisabledByEnv() bool {
	return isTruthy(os.Getenv(DisableEnvVar))
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

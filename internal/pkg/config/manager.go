package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	apperrors "github.com/gitaimsg/gitaimsg/internal/pkg/errors"
)

const (
	// UserConfigDirName is the directory under the user config root.
	UserConfigDirName = "gitaimsg"
	// UserConfigFileName is the user-level config file name.
	UserConfigFileName = "config.toml"
	// RepoConfigFileName is the repository-level config file name.
	RepoConfigFileName = ".gitaimsg.toml"
)

// Manager resolves configuration from layered sources using Viper.
// Precedence, lowest first: built-in defaults, user config file, repository
// config file, environment variables. Missing or malformed files count as
// empty layers rather than errors.
type Manager struct {
	v        *viper.Viper
	userPath string
	repoPath string
}

// NewManager creates a configuration manager. Empty paths select the
// defaults: ~/.config/gitaimsg/config.toml and ./.gitaimsg.toml.
func NewManager(userPath, repoPath string) *Manager {
	if userPath == "" {
		userPath = DefaultUserConfigPath()
	}
	if repoPath == "" {
		repoPath = RepoConfigFileName
	}

	v := viper.New()
	v.SetConfigType("toml")
	setDefaults(v)
	bindEnvVars(v)

	return &Manager{v: v, userPath: userPath, repoPath: repoPath}
}

// DefaultUserConfigPath returns the user-level config file location.
func DefaultUserConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, UserConfigDirName, UserConfigFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", UserConfigDirName, UserConfigFileName)
}

// setDefaults installs the built-in bottom layer. Values follow the stock
// hook behavior: local Ollama, conservative sampling, 30s budget.
func setDefaults(v *viper.Viper) {
	v.SetDefault("gitaimsg.provider", ProviderOllama)
	v.SetDefault("gitaimsg.model", "qwen2.5-coder:7b")
	v.SetDefault("gitaimsg.max_diff_chars", 15000)
	v.SetDefault("gitaimsg.timeout_s", 30)
	v.SetDefault("gitaimsg.temperature", 0.2)
	v.SetDefault("gitaimsg.top_p", 1.0)
	v.SetDefault("gitaimsg.system_prompt", "")
	v.SetDefault("gitaimsg.enabled", true)

	v.SetDefault("provider.ollama.base_url", "http://127.0.0.1:11434")
	v.SetDefault("provider.ollama.api_key_env", "")
	v.SetDefault("provider.openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("provider.openai.api_key_env", "OPENAI_API_KEY")
	v.SetDefault("provider.gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("provider.gemini.api_key_env", "GEMINI_API_KEY")
}

// bindEnvVars binds environment variables explicitly for each key. Viper's
// AutomaticEnv does not handle nested keys reliably, so every mapping is
// spelled out.
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("gitaimsg.provider", "GITAIMSG_PROVIDER")
	_ = v.BindEnv("gitaimsg.model", "GITAIMSG_MODEL")
	_ = v.BindEnv("gitaimsg.max_diff_chars", "GITAIMSG_MAX_DIFF")
	_ = v.BindEnv("gitaimsg.timeout_s", "GITAIMSG_TIMEOUT_S")
	_ = v.BindEnv("gitaimsg.temperature", "GITAIMSG_TEMPERATURE")
	_ = v.BindEnv("gitaimsg.top_p", "GITAIMSG_TOP_P")
	_ = v.BindEnv("gitaimsg.system_prompt", "GITAIMSG_SYSTEM_PROMPT")
	_ = v.BindEnv("gitaimsg.enabled", "GITAIMSG_ENABLED")

	// OLLAMA_URL is accepted for compatibility with existing setups.
	_ = v.BindEnv("provider.ollama.base_url", "GITAIMSG_OLLAMA_URL", "OLLAMA_URL")
	_ = v.BindEnv("provider.openai.base_url", "GITAIMSG_OPENAI_BASE_URL")
	_ = v.BindEnv("provider.gemini.base_url", "GITAIMSG_GEMINI_BASE_URL")
}

// SetOverride applies a non-persistent override for a single key. Used by
// command-line flags, which outrank every other layer.
func (m *Manager) SetOverride(key string, value interface{}) {
	m.v.Set(key, value)
}

// Load resolves the effective configuration. File layers that are missing or
// unparseable are skipped; the merge continues with the remaining layers.
func (m *Manager) Load() (*Config, error) {
	if m.userPath != "" {
		m.v.SetConfigFile(m.userPath)
		if err := m.v.ReadInConfig(); err != nil {
			apperrors.Debug("user config %s not loaded: %v", m.userPath, err)
		}
	}

	if m.repoPath != "" {
		if _, err := os.Stat(m.repoPath); err == nil {
			m.v.SetConfigFile(m.repoPath)
			if err := m.v.MergeInConfig(); err != nil {
				apperrors.Debug("repo config %s not merged: %v", m.repoPath, err)
			}
		}
	}

	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to unmarshal config")
	}

	resolveAPIKeys(&cfg)
	return &cfg, nil
}

// resolveAPIKeys reads key material from the variables named by api_key_env
// so that downstream stages never touch the environment.
func resolveAPIKeys(cfg *Config) {
	for _, ps := range []*ProviderSettings{
		&cfg.Providers.Ollama,
		&cfg.Providers.OpenAI,
		&cfg.Providers.Gemini,
	} {
		if ps.APIKeyEnv != "" {
			ps.APIKey = os.Getenv(ps.APIKeyEnv)
		}
	}
}

// UserPath returns the user-level config file path.
func (m *Manager) UserPath() string {
	return m.userPath
}

// RepoPath returns the repository-level config file path.
func (m *Manager) RepoPath() string {
	return m.repoPath
}

// List returns all resolved settings as a flat map for display.
func (m *Manager) List() map[string]interface{} {
	return m.v.AllSettings()
}

// exampleConfig is written by Init as a starting point.
const exampleConfig = `# gitaimsg configuration
# Repository-level overrides go in <repo>/.gitaimsg.toml with the same layout.

[gitaimsg]
provider = "ollama"          # ollama | openai | gemini
model = "qwen2.5-coder:7b"
max_diff_chars = 15000       # diff budget sent to the model
timeout_s = 30               # request deadline; generation is skipped on expiry
temperature = 0.2
top_p = 1.0
# system_prompt = "You are a senior developer writing concise commit messages."
enabled = true

[provider.ollama]
base_url = "http://127.0.0.1:11434"

[provider.openai]
base_url = "https://api.openai.com/v1"
api_key_env = "OPENAI_API_KEY"

[provider.gemini]
base_url = "https://generativelanguage.googleapis.com/v1beta"
api_key_env = "GEMINI_API_KEY"
`

// Init writes an example user-level config file. It refuses to overwrite an
// existing file.
func (m *Manager) Init() error {
	if m.userPath == "" {
		return apperrors.New(apperrors.ErrInvalidConfig, "cannot determine user config path")
	}
	if _, err := os.Stat(m.userPath); err == nil {
		return fmt.Errorf("config file already exists at %s", m.userPath)
	}

	if err := os.MkdirAll(filepath.Dir(m.userPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(m.userPath, []byte(exampleConfig), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Get retrieves a single resolved value by dotted key for display.
func (m *Manager) Get(key string) (string, error) {
	value := m.v.Get(key)
	if value == nil {
		return "", fmt.Errorf("key not found: %s", key)
	}
	return fmt.Sprintf("%v", value), nil
}

// Set persists a single value into the user-level config file.
func (m *Manager) Set(key, value string) error {
	m.v.Set(key, value)

	if err := os.MkdirAll(filepath.Dir(m.userPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := m.v.WriteConfigAs(m.userPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// MaskAPIKey masks key material, showing only the last 4 characters.
func MaskAPIKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

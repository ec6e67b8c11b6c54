package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	mgr := NewManager(filepath.Join(dir, "nonexistent.toml"), filepath.Join(dir, "norepo.toml"))

	cfg, err := mgr.Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderOllama, cfg.General.Provider)
	assert.Equal(t, "qwen2.5-coder:7b", cfg.General.Model)
	assert.Equal(t, 15000, cfg.General.MaxDiffChars)
	assert.Equal(t, 30, cfg.General.TimeoutS)
	assert.InDelta(t, 0.2, cfg.General.Temperature, 0.001)
	assert.InDelta(t, 1.0, cfg.General.TopP, 0.001)
	assert.True(t, cfg.General.Enabled)
	assert.Equal(t, "http://127.0.0.1:11434", cfg.Providers.Ollama.BaseURL)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Providers.OpenAI.APIKeyEnv)
	assert.Equal(t, "GEMINI_API_KEY", cfg.Providers.Gemini.APIKeyEnv)
}

func TestLoad_UserFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	userPath := writeFile(t, dir, "config.toml", `
[gitaimsg]
provider = "openai"
model = "gpt-4o-mini"
timeout_s = 10
`)

	mgr := NewManager(userPath, filepath.Join(dir, "norepo.toml"))
	cfg, err := mgr.Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.General.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.General.Model)
	assert.Equal(t, 10, cfg.General.TimeoutS)
	// Keys the file does not define fall through to defaults.
	assert.Equal(t, 15000, cfg.General.MaxDiffChars)
}

func TestLoad_RepoFileOverridesUserFile(t *testing.T) {
	dir := t.TempDir()
	userPath := writeFile(t, dir, "user.toml", `
[gitaimsg]
provider = "openai"
model = "gpt-4o-mini"
`)
	repoPath := writeFile(t, dir, ".gitaimsg.toml", `
[gitaimsg]
provider = "ollama"
`)

	mgr := NewManager(userPath, repoPath)
	cfg, err := mgr.Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderOllama, cfg.General.Provider)
	// Repo file does not define model; the user layer still applies.
	assert.Equal(t, "gpt-4o-mini", cfg.General.Model)
}

func TestLoad_EnvOverridesFiles(t *testing.T) {
	dir := t.TempDir()
	userPath := writeFile(t, dir, "user.toml", `
[gitaimsg]
provider = "openai"
model = "gpt-4o-mini"
`)

	t.Setenv("GITAIMSG_PROVIDER", "gemini")
	t.Setenv("GITAIMSG_MODEL", "gemini-2.0-flash")
	t.Setenv("GITAIMSG_MAX_DIFF", "5000")

	mgr := NewManager(userPath, filepath.Join(dir, "norepo.toml"))
	cfg, err := mgr.Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderGemini, cfg.General.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.General.Model)
	assert.Equal(t, 5000, cfg.General.MaxDiffChars)
}

func TestLoad_MalformedFileTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	userPath := writeFile(t, dir, "broken.toml", "this is [not valid toml")

	mgr := NewManager(userPath, filepath.Join(dir, "norepo.toml"))
	cfg, err := mgr.Load()
	require.NoError(t, err)

	// The malformed layer contributes nothing; defaults survive.
	assert.Equal(t, ProviderOllama, cfg.General.Provider)
}

func TestLoad_ResolvesAPIKeysFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OPENAI_API_KEY", "sk-resolved-key")
	t.Setenv("MY_CUSTOM_GEMINI_KEY", "gk-custom")

	userPath := writeFile(t, dir, "config.toml", `
[provider.gemini]
api_key_env = "MY_CUSTOM_GEMINI_KEY"
`)

	mgr := NewManager(userPath, filepath.Join(dir, "norepo.toml"))
	cfg, err := mgr.Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-resolved-key", cfg.Providers.OpenAI.APIKey)
	assert.Equal(t, "gk-custom", cfg.Providers.Gemini.APIKey)
}

func TestLoad_OllamaURLCompatibilityVar(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OLLAMA_URL", "http://10.0.0.5:11434")

	mgr := NewManager(filepath.Join(dir, "none.toml"), filepath.Join(dir, "norepo.toml"))
	cfg, err := mgr.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:11434", cfg.Providers.Ollama.BaseURL)
}

func TestActiveProvider(t *testing.T) {
	cfg := &Config{
		General: GeneralConfig{Provider: ProviderGemini},
		Providers: ProvidersConfig{
			Gemini: ProviderSettings{BaseURL: "https://example.test"},
		},
	}

	settings, ok := cfg.ActiveProvider()
	require.True(t, ok)
	assert.Equal(t, "https://example.test", settings.BaseURL)

	cfg.General.Provider = "nonsense"
	_, ok = cfg.ActiveProvider()
	assert.False(t, ok)
}

func TestDisabledByEnv(t *testing.T) {
	for value, want := range map[string]bool{
		"1": true, "true": true, "YES": true, "on": true,
		"": false, "0": false, "false": false, "off": false,
	} {
		t.Setenv(DisableEnvVar, value)
		assert.Equal(t, want, DisabledByEnv(), "value %q", value)
	}
}

func TestSetOverride_OutranksEverything(t *testing.T) {
	dir := t.TempDir()
	userPath := writeFile(t, dir, "config.toml", `
[gitaimsg]
provider = "openai"
`)
	t.Setenv("GITAIMSG_PROVIDER", "gemini")

	mgr := NewManager(userPath, filepath.Join(dir, "norepo.toml"))
	mgr.SetOverride("gitaimsg.provider", "ollama")

	cfg, err := mgr.Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderOllama, cfg.General.Provider)
}

func TestInit_WritesExampleAndRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	userPath := filepath.Join(dir, "sub", "config.toml")

	mgr := NewManager(userPath, filepath.Join(dir, "norepo.toml"))
	require.NoError(t, mgr.Init())

	content, err := os.ReadFile(userPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[gitaimsg]")
	assert.Contains(t, string(content), "[provider.ollama]")

	assert.Error(t, mgr.Init())
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", MaskAPIKey("abc"))
	assert.Equal(t, "****efgh", MaskAPIKey("abcdefgh"))
}

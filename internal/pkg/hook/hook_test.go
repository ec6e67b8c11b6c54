package hook

import (
	"testing"

	"github.com/gitaimsg/gitaimsg/internal/pkg/config"
)

func enabledConfig() *config.Config {
	return &config.Config{
		General: config.GeneralConfig{
			Provider: config.ProviderOllama,
			Enabled:  true,
		},
	}
}

func TestParseSource_KnownTags(t *testing.T) {
	tests := []struct {
		tag  string
		want Source
	}{
		{"", SourceNone},
		{"message", SourceMessage},
		{"template", SourceTemplate},
		{"merge", SourceMerge},
		{"squash", SourceSquash},
		{"commit", SourceCommit},
	}

	for _, tt := range tests {
		got, ok := ParseSource(tt.tag)
		if !ok {
			t.Errorf("ParseSource(%q) ok = false, want true", tt.tag)
		}
		if got != tt.want {
			t.Errorf("ParseSource(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestParseSource_UnknownTagFailsClosed(t *testing.T) {
	for _, tag := range []string{"amend", "Message", "MERGE", "garbage"} {
		if _, ok := ParseSource(tag); ok {
			t.Errorf("ParseSource(%q) ok = true, want false", tag)
		}
	}
}

func TestShouldGenerate_EligibleInvocation(t *testing.T) {
	inv := InvocationContext{
		MessageFile:      ".git/COMMIT_EDITMSG",
		Source:           SourceNone,
		HasStagedChanges: true,
	}

	d := ShouldGenerate(inv, enabledConfig())
	if !d.Generate {
		t.Errorf("ShouldGenerate() = false (%s), want true", d.Reason)
	}
}

func TestShouldGenerate_SkipsForeignMessageSources(t *testing.T) {
	sources := []Source{SourceMessage, SourceTemplate, SourceMerge, SourceSquash, SourceCommit}

	for _, src := range sources {
		inv := InvocationContext{Source: src, HasStagedChanges: true}
		d := ShouldGenerate(inv, enabledConfig())
		if d.Generate {
			t.Errorf("ShouldGenerate(source=%q) = true, want false", src)
		}
		if d.Reason == "" {
			t.Errorf("ShouldGenerate(source=%q) returned empty reason", src)
		}
	}
}

func TestShouldGenerate_SkipsWhenDisabledInConfig(t *testing.T) {
	cfg := enabledConfig()
	cfg.General.Enabled = false

	inv := InvocationContext{Source: SourceNone, HasStagedChanges: true}
	if d := ShouldGenerate(inv, cfg); d.Generate {
		t.Error("ShouldGenerate() = true with enabled=false, want false")
	}
}

func TestShouldGenerate_SkipsWhenDisabledByEnv(t *testing.T) {
	for _, value := range []string{"1", "true", "yes", "on", "TRUE"} {
		t.Setenv(config.DisableEnvVar, value)

		inv := InvocationContext{Source: SourceNone, HasStagedChanges: true}
		if d := ShouldGenerate(inv, enabledConfig()); d.Generate {
			t.Errorf("ShouldGenerate() = true with %s=%q, want false", config.DisableEnvVar, value)
		}
	}
}

func TestShouldGenerate_EnvSwitchFalseValuesIgnored(t *testing.T) {
	for _, value := range []string{"", "0", "false", "no", "off"} {
		t.Setenv(config.DisableEnvVar, value)

		inv := InvocationContext{Source: SourceNone, HasStagedChanges: true}
		if d := ShouldGenerate(inv, enabledConfig()); !d.Generate {
			t.Errorf("ShouldGenerate() = false with %s=%q (%s), want true",
				config.DisableEnvVar, value, d.Reason)
		}
	}
}

func TestShouldGenerate_SkipsWithoutStagedChanges(t *testing.T) {
	inv := InvocationContext{Source: SourceNone, HasStagedChanges: false}
	if d := ShouldGenerate(inv, enabledConfig()); d.Generate {
		t.Error("ShouldGenerate() = true without staged changes, want false")
	}
}

func TestShouldGenerate_NilConfigFailsClosed(t *testing.T) {
	inv := InvocationContext{Source: SourceNone, HasStagedChanges: true}
	if d := ShouldGenerate(inv, nil); d.Generate {
		t.Error("ShouldGenerate(nil config) = true, want false")
	}
}

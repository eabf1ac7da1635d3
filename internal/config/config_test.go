package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFindConfigPath(t *testing.T) {
	homeDir := t.TempDir()

	tests := []struct {
		name     string
		setup    func() string
		wantPath string
		wantErr  bool
	}{
		{
			name: "explicit path missing and nothing else",
			setup: func() string {
				return filepath.Join(homeDir, "missing.toml")
			},
			wantErr: true,
		},
		{
			name: "find in config dir",
			setup: func() string {
				configDir := filepath.Join(homeDir, ".config", "ezorg")
				os.MkdirAll(configDir, 0755)
				configPath := filepath.Join(configDir, "config.toml")
				os.WriteFile(configPath, []byte("[organizations]\norgs = []"), 0644)
				return ""
			},
			wantPath: filepath.Join(homeDir, ".config", "ezorg", "config.toml"),
		},
		{
			name: "explicit path wins",
			setup: func() string {
				p := filepath.Join(homeDir, "explicit.toml")
				os.WriteFile(p, []byte(""), 0644)
				return p
			},
			wantPath: filepath.Join(homeDir, "explicit.toml"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", homeDir)

			explicitPath := tt.setup()

			path, err := FindConfigPath(explicitPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("FindConfigPath() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && path != tt.wantPath {
				t.Errorf("FindConfigPath() = %v, want %v", path, tt.wantPath)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.toml")

	configContent := `[organizations]
orgs = ["facebook", "google"]

[github]
base_url = "https://ghe.example.com/api/v3"
timeout = "5s"

[filter]
license = " apache-2.0 "

[cache]
dir = "~/.cache/ezorg-test"
ttl = "1h30m"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv("EZORG_API_URL", "")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	orgs := cfg.GetOrganizations()
	if len(orgs) != 2 || orgs[0] != "facebook" || orgs[1] != "google" {
		t.Errorf("GetOrganizations() = %v, want [facebook google]", orgs)
	}

	if got := cfg.GetBaseURL(); got != "https://ghe.example.com/api/v3" {
		t.Errorf("GetBaseURL() = %v", got)
	}

	if got := cfg.GetTimeout(); got != 5*time.Second {
		t.Errorf("GetTimeout() = %v, want 5s", got)
	}

	if got := cfg.GetLicense(); got != "apache-2.0" {
		t.Errorf("GetLicense() = %q, want apache-2.0", got)
	}

	if got := cfg.GetCacheTTL(); got != 90*time.Minute {
		t.Errorf("GetCacheTTL() = %v, want 1h30m", got)
	}

	homeDir, _ := os.UserHomeDir()
	if got, want := cfg.GetCacheDir(), filepath.Join(homeDir, ".cache/ezorg-test"); got != want {
		t.Errorf("GetCacheDir() = %v, want %v", got, want)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[cache]\nttl = \"soon\"\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFile(configPath); err == nil {
		t.Fatal("LoadFile() should reject an invalid ttl")
	}
}

func TestDefaults(t *testing.T) {
	t.Setenv("EZORG_API_URL", "")
	cfg := &Config{}

	if got := cfg.GetTimeout(); got != defaultTimeout {
		t.Errorf("GetTimeout() = %v, want %v", got, defaultTimeout)
	}
	if got := cfg.GetCacheTTL(); got != 0 {
		t.Errorf("GetCacheTTL() = %v, want 0", got)
	}
	if got := cfg.GetBaseURL(); got != "" {
		t.Errorf("GetBaseURL() = %q, want empty", got)
	}
}

func TestBaseURLFromEnv(t *testing.T) {
	t.Setenv("EZORG_API_URL", "http://localhost:9999")
	cfg := &Config{GitHub: GitHubConfig{BaseURL: "https://ignored.example.com"}}

	if got := cfg.GetBaseURL(); got != "http://localhost:9999" {
		t.Errorf("GetBaseURL() = %q, want env override", got)
	}
}

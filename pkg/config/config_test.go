package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SPOTIFY_CLIENT_ID", "id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "secret")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Market != "US" || cfg.ListenAddr != ":4000" || cfg.DatabasePath != "catalog.db" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ClientID != "id" || cfg.ClientSecret != "secret" {
		t.Fatalf("credentials not read from env: %+v", cfg)
	}
}

// TestEnvOverridesFile verifies that environment variables win over
// config.yaml.
func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "spotify_access_token: file-token\nspotify_market: GB\nlisten_addr: \":8080\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SPOTIFY_MARKET", "DE")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AccessToken != "file-token" || cfg.ListenAddr != ":8080" {
		t.Fatalf("file values not loaded: %+v", cfg)
	}
	if cfg.Market != "DE" {
		t.Fatalf("expected env market DE, got %s", cfg.Market)
	}
}

func TestMissingCredentials(t *testing.T) {
	for _, k := range []string{"SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_SECRET", "SPOTIFY_ACCESS_TOKEN"} {
		t.Setenv(k, "")
	}
	t.Setenv("SPOTIFY_CLIENT_ID", "only-id")
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected validation error")
	}
}

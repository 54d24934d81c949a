package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `jwt:
  secret: "test-secret"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port should be 8080, got %d", cfg.Server.Port)
	}
	if cfg.Game.GrowthRate != 1 || cfg.Game.StartingGold != 500 {
		t.Errorf("game defaults not applied: %+v", cfg.Game)
	}
	if cfg.Game.StartingRows != 5 || cfg.Game.StartingCols != 5 {
		t.Errorf("garden defaults not applied: %+v", cfg.Game)
	}
	if cfg.JWT.ExpiryHours != 24 || cfg.JWT.RevokedPrefix != "revoked:" {
		t.Errorf("jwt defaults not applied: %+v", cfg.JWT)
	}
	if cfg.Redis.Address != "localhost:6379" || cfg.Redis.KeyPrefix != "gardensim" {
		t.Errorf("redis defaults not applied: %+v", cfg.Redis)
	}
}

func TestLoadReadsValues(t *testing.T) {
	path := writeConfig(t, `server:
  host: "127.0.0.1"
  port: 9000
jwt:
  issuer: "test"
  secret: "s"
game:
  growth_rate: 2.5
  instant_harvest_key: "skip"
data:
  items: "./data/items.yaml"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("server block not read: %+v", cfg.Server)
	}
	if cfg.Game.GrowthRate != 2.5 || cfg.Game.InstantHarvestKey != "skip" {
		t.Errorf("game block not read: %+v", cfg.Game)
	}
	if cfg.Data.Items != "./data/items.yaml" {
		t.Errorf("data block not read: %+v", cfg.Data)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	path := writeConfig(t, `server:
  port: 9000
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("a config without jwt.secret must be rejected")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Fatalf("missing file must error")
	}
}

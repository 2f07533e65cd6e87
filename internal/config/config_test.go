package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "farwind.toml")
	body := `
[engine]
tick_rate = "20ms"
seed = 42

[spawn]
raid_draws = 3

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.TickRate.Std() != 20*time.Millisecond {
		t.Fatalf("tick rate = %v, want 20ms", cfg.Engine.TickRate.Std())
	}
	if cfg.Engine.Seed != 42 {
		t.Fatalf("seed = %d, want 42", cfg.Engine.Seed)
	}
	if cfg.Spawn.RaidDraws != 3 {
		t.Fatalf("raid draws = %d, want 3", cfg.Spawn.RaidDraws)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched sections keep their defaults.
	if cfg.Spawn.PersonPeriod != 36000 || cfg.Diplomacy.HailPeriod != 600 {
		t.Fatalf("defaults lost for sections the file does not set")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "farwind.toml")
	if err := os.WriteFile(path, []byte("[engine]\ntick_rate = \"soon\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("nonsense duration accepted")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file error = %v, want not-exist", err)
	}
}

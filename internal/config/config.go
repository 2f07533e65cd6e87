package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Engine    EngineConfig    `toml:"engine"`
	Spawn     SpawnConfig     `toml:"spawn"`
	Diplomacy DiplomacyConfig `toml:"diplomacy"`
	Logging   LoggingConfig   `toml:"logging"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Data      DataConfig      `toml:"data"`
}

// Duration decodes TOML strings like "16ms" via time.ParseDuration.
type Duration time.Duration

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type EngineConfig struct {
	TickRate Duration `toml:"tick_rate"` // foreground frame period
	Seed     int64    `toml:"seed"`      // 0 = seed from wall clock
}

// SpawnConfig tunes the stochastic population processes. Periods are in
// steps: a period of N means an expected one arrival every N steps.
type SpawnConfig struct {
	PersonPeriod   int `toml:"person_period"`
	PersonBaseline int `toml:"person_baseline"` // weight padding so adding persons keeps the overall rate
	RaidPeriod     int `toml:"raid_period"`
	RaidDraws      int `toml:"raid_draws"`
}

type DiplomacyConfig struct {
	HailPeriod     int `toml:"hail_period"`
	GrudgeCooldown int `toml:"grudge_cooldown"` // steps of silence after an assistance request
	AlarmCooldown  int `toml:"alarm_cooldown"`  // steps before the hostile siren may retrigger
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

type DataConfig struct {
	Dir         string `toml:"dir"`
	ScriptsDir  string `toml:"scripts_dir"`
	StartSystem string `toml:"start_system"`
	StartShip   string `toml:"start_ship"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration. The spawn and diplomacy
// periods match the tuning the balance was tested at; change them in the
// config file, not here.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			TickRate: Duration(time.Second / 60),
		},
		Spawn: SpawnConfig{
			PersonPeriod:   36000,
			PersonBaseline: 1000,
			RaidPeriod:     36000,
			RaidDraws:      10,
		},
		Diplomacy: DiplomacyConfig{
			HailPeriod:     600,
			GrudgeCooldown: 120,
			AlarmCooldown:  180,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Addr:    "127.0.0.1:9310",
		},
		Data: DataConfig{
			Dir:         "data",
			ScriptsDir:  "scripts",
			StartSystem: "Meridian",
			StartShip:   "Skylark",
		},
	}
}

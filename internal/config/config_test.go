package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eugenenazirov/great-dispatch/internal/fleet"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TRUCKS", "LOG_LEVEL", "LOG_ENCODING", "LOAD_CHART", "STRATEGY", "TURN_BUDGET"} {
		t.Setenv(key, "")
	}
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Trucks != fleet.DefaultTrucks {
		t.Fatalf("expected %d trucks, got %d", fleet.DefaultTrucks, cfg.Trucks)
	}
	if cfg.LogLevel != defaultLogLevel || cfg.LogEncoding != defaultLogEncoding {
		t.Fatalf("unexpected logging defaults: %s/%s", cfg.LogLevel, cfg.LogEncoding)
	}
	if cfg.Strategy != "closest" || cfg.TurnBudget != 0 || cfg.LoadChart {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRUCKS", "12")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOAD_CHART", "true")
	t.Setenv("STRATEGY", "farthest")
	t.Setenv("TURN_BUDGET", "40ms")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Trucks != 12 || cfg.LogLevel != "debug" || !cfg.LoadChart {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.Strategy != "farthest" || cfg.TurnBudget != 40*time.Millisecond {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRUCKS", "12")
	t.Setenv("LOG_LEVEL", "debug")

	path := writeYAML(t, `
trucks: 20
load_chart: true
logging:
  level: warn
  encoding: console
onboarding:
  strategy: farthest
  turn_budget: 40ms
`)

	trucks := 7
	chart := false
	cfg, err := Load(&CLIOverrides{ConfigFile: path, Trucks: &trucks, LoadChart: &chart})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Trucks != 7 {
		t.Fatalf("CLI should win over YAML and env, got %d trucks", cfg.Trucks)
	}
	if cfg.LoadChart {
		t.Fatalf("CLI should disable the load chart")
	}
	if cfg.LogLevel != "warn" || cfg.LogEncoding != "console" {
		t.Fatalf("YAML should win over env, got %s/%s", cfg.LogLevel, cfg.LogEncoding)
	}
	if cfg.Strategy != "farthest" || cfg.TurnBudget != 40*time.Millisecond {
		t.Fatalf("YAML onboarding section not applied: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("invalid env", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TRUCKS", "many")
		if _, err := Load(nil); err == nil {
			t.Fatalf("expected error for invalid TRUCKS")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		if _, err := Load(&CLIOverrides{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
			t.Fatalf("expected error for missing config file")
		}
	})

	t.Run("bad budget in YAML", func(t *testing.T) {
		clearEnv(t)
		path := writeYAML(t, "onboarding:\n  turn_budget: soon\n")
		if _, err := Load(&CLIOverrides{ConfigFile: path}); err == nil {
			t.Fatalf("expected error for invalid turn_budget")
		}
	})

	t.Run("validation", func(t *testing.T) {
		clearEnv(t)
		zero := 0
		unknown := "random"
		verbose := "chatty"
		negative := -time.Second
		cases := []*CLIOverrides{
			{Trucks: &zero},
			{Strategy: &unknown},
			{LogLevel: &verbose},
			{LogEncoding: &unknown},
			{TurnBudget: &negative},
		}
		for i, overrides := range cases {
			if _, err := Load(overrides); err == nil {
				t.Fatalf("case %d: expected validation error", i)
			}
		}
	})
}

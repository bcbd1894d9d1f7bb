package riskcfg

import (
	"os"
	"testing"
)

func TestLoadAppliesDefaultsWithNoConfigFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Alpha != 0.99 || cfg.Paths != 200000 || cfg.Seed != 123456789 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadReadsEnvironmentOverride(t *testing.T) {
	os.Setenv("RISK_ALPHA", "0.95")
	defer os.Unsetenv("RISK_ALPHA")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Alpha != 0.95 {
		t.Errorf("alpha = %v, want 0.95 from RISK_ALPHA", cfg.Alpha)
	}
}

func TestLoadReadsDatabaseURLFromEnv(t *testing.T) {
	os.Setenv("RISK_DATABASE_URL", "postgres://localhost/risk")
	defer os.Unsetenv("RISK_DATABASE_URL")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DatabaseURL != "postgres://localhost/risk" {
		t.Errorf("database url = %q, want postgres://localhost/risk", cfg.DatabaseURL)
	}
}

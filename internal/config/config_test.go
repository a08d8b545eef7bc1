package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.Defaults.PageSize != "a4" {
		t.Errorf("default page size = %q, want a4", cfg.Defaults.PageSize)
	}
	if cfg.Defaults.Orientation != "auto" {
		t.Errorf("default orientation = %q, want auto", cfg.Defaults.Orientation)
	}
	if cfg.Defaults.Quality != "high" {
		t.Errorf("default quality = %q, want high", cfg.Defaults.Quality)
	}
	if cfg.Proof.DPI != 150 {
		t.Errorf("default proof dpi = %d, want 150", cfg.Proof.DPI)
	}
	if cfg.Proof.Workers != 4 {
		t.Errorf("default workers = %d, want 4", cfg.Proof.Workers)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PLATEN_PAGE_SIZE", "letter")
	t.Setenv("PLATEN_PROOF_DPI", "300")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := FromEnv()
	if cfg.Defaults.PageSize != "letter" {
		t.Errorf("page size = %q, want letter", cfg.Defaults.PageSize)
	}
	if cfg.Proof.DPI != 300 {
		t.Errorf("proof dpi = %d, want 300", cfg.Proof.DPI)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
}

func TestFromEnvBadIntFallsBack(t *testing.T) {
	t.Setenv("PLATEN_PROOF_DPI", "not-a-number")

	cfg := FromEnv()
	if cfg.Proof.DPI != 150 {
		t.Errorf("proof dpi = %d, want fallback 150", cfg.Proof.DPI)
	}
}

func TestParseBool(t *testing.T) {
	truthy := []string{"1", "true", "YES", " on "}
	for _, s := range truthy {
		if !parseBool(s) {
			t.Errorf("parseBool(%q) = false, want true", s)
		}
	}
	falsy := []string{"", "0", "false", "off", "banana"}
	for _, s := range falsy {
		if parseBool(s) {
			t.Errorf("parseBool(%q) = true, want false", s)
		}
	}
}

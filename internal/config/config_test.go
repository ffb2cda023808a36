package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archivist.yaml")
	data := "dataset: ./data/galleries.parquet\noutput: /srv/komga\nconcurrency: 8\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Dataset != "./data/galleries.parquet" {
		t.Errorf("Expected dataset from file, got %s", cfg.Dataset)
	}
	if cfg.Output != "/srv/komga" {
		t.Errorf("Expected output from file, got %s", cfg.Output)
	}
	if cfg.Concurrency != 8 {
		t.Errorf("Expected concurrency 8, got %d", cfg.Concurrency)
	}
	if cfg.Report != DefaultReport {
		t.Errorf("Expected default report, got %s", cfg.Report)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ARCHIVIST_OUTPUT", "/tmp/out")
	t.Setenv("ARCHIVIST_CONCURRENCY", "2")
	t.Setenv("ARCHIVIST_ADDR", ":9000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output != "/tmp/out" || cfg.Concurrency != 2 || cfg.Addr != ":9000" {
		t.Errorf("Env overrides not applied: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for explicit missing file, got nil")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("concurrency: [1"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Expected error for invalid YAML, got nil")
	}

	zero := filepath.Join(dir, "zero.yaml")
	if err := os.WriteFile(zero, []byte("concurrency: 0\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if _, err := Load(zero); err == nil {
		t.Error("Expected validation error for zero concurrency, got nil")
	}
}

package projectconfig

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingReturnsDefault(t *testing.T) {
	cfg, err := Load(t.TempDir(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("expected Default(), got %+v", cfg)
	}
}

func TestWriteThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path, err := Write(dir, TemplateMono, false)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != "tokmd.yml" {
		t.Fatalf("unexpected path %s", path)
	}

	cfg, err := Load(dir, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Preset != "architecture" {
		t.Fatalf("expected mono template preset architecture, got %q", cfg.Preset)
	}
	if len(cfg.ModuleRoots) == 0 {
		t.Fatal("expected module roots from mono template")
	}
}

func TestWriteRefusesToOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	if _, err := Write(dir, TemplateRust, false); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if _, err := Write(dir, TemplateRust, false); err == nil {
		t.Fatal("expected error on second Write without force")
	}
	if _, err := Write(dir, TemplateRust, true); err != nil {
		t.Fatalf("Write with force: %v", err)
	}
}

func TestValidateRejectsBadRedactMode(t *testing.T) {
	cfg := Default()
	cfg.Redact = "everything"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error")
	}
}

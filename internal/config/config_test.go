package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default("me")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default invalid: %v", err)
	}
	if cfg.Dashboard.RecruiterTopN != 5 || cfg.Dashboard.UpcomingWindowDays != 7 {
		t.Fatalf("unexpected dashboard defaults %+v", cfg.Dashboard)
	}
	if cfg.Server.BasePath != "/v1" {
		t.Fatalf("base path %q", cfg.Server.BasePath)
	}
}

func TestFromYAMLKeepsDefaultsForMissingSections(t *testing.T) {
	cfg, err := FromYAML([]byte("owner:\n  id: alice\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Owner.ID != "alice" || cfg.Dashboard.RecruiterTopN != 5 {
		t.Fatalf("unexpected cfg %+v", cfg)
	}
}

func TestValidateErrors(t *testing.T) {
	cases := map[string]string{
		"owner":    "dashboard:\n  recruiter_top_n: 5\n",
		"window":   "owner:\n  id: a\ndashboard:\n  upcoming_window_days: 0\n",
		"topn":     "owner:\n  id: a\ndashboard:\n  recruiter_top_n: -1\n",
		"level":    "owner:\n  id: a\nlog:\n  level: loud\n",
		"webhook":  "owner:\n  id: a\nwebhooks:\n  - url: ftp://example.com\n",
		"basepath": "owner:\n  id: a\nserver:\n  base_path: v1\n",
	}
	for name, doc := range cases {
		if _, err := FromYAML([]byte(doc)); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestLoadOptionalAndGenerate(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOptional(dir)
	if err != nil || cfg != nil {
		t.Fatalf("expected nil config, got %v %v", cfg, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "jobtrail.yml"), []byte(GenerateDefault("bob")), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Owner.ID != "bob" {
		t.Fatalf("owner %q", cfg.Owner.ID)
	}
	if _, err := Load(t.TempDir()); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

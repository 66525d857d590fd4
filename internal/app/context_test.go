package app

import (
	"context"
	"os"
	"testing"

	"jobtrail/internal/config"
	"jobtrail/internal/db"
	"jobtrail/internal/migrate"
	"jobtrail/internal/repo"
)

func newRepo(t *testing.T, workspace string) repo.Repo {
	t.Helper()
	conn, err := db.Open(db.Config{Workspace: workspace})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := migrate.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repo.Repo{DB: conn}
}

func TestResolveWithoutConfig(t *testing.T) {
	ws := t.TempDir()
	r := newRepo(t, ws)
	owner, cfg, err := ResolveOwnerAndConfig(context.Background(), ws, "", r)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if owner != DefaultOwner || cfg.Owner.ID != DefaultOwner {
		t.Fatalf("owner %q", owner)
	}
	if cfg.Dashboard.RecruiterTopN != 5 {
		t.Fatalf("defaults not applied: %+v", cfg.Dashboard)
	}
	if _, err := r.GetUser(context.Background(), owner); err != nil {
		t.Fatalf("owner not registered: %v", err)
	}
}

func TestResolvePrefersOverride(t *testing.T) {
	ws := t.TempDir()
	r := newRepo(t, ws)
	if err := os.WriteFile(config.Path(ws), []byte(config.GenerateDefault("from-file")), 0o644); err != nil {
		t.Fatal(err)
	}
	owner, _, err := ResolveOwnerAndConfig(context.Background(), ws, "", r)
	if err != nil || owner != "from-file" {
		t.Fatalf("config owner: %q %v", owner, err)
	}
	owner, cfg, err := ResolveOwnerAndConfig(context.Background(), ws, "flag-owner", r)
	if err != nil || owner != "flag-owner" || cfg.Owner.ID != "flag-owner" {
		t.Fatalf("override: %q %v", owner, err)
	}
}

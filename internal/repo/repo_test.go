package repo_test

import (
	"context"
	"errors"
	"testing"

	"jobtrail/internal/db"
	"jobtrail/internal/domain"
	"jobtrail/internal/migrate"
	"jobtrail/internal/repo"
)

const ts = "2024-01-01T00:00:00Z"

func newRepo(t *testing.T) (repo.Repo, context.Context) {
	t.Helper()
	conn, err := db.Open(db.Config{Workspace: t.TempDir()})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := migrate.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	r := repo.Repo{DB: conn}
	ctx := context.Background()
	for _, id := range []string{"alice", "bob"} {
		if err := r.EnsureUser(ctx, id, ts); err != nil {
			t.Fatalf("ensure user: %v", err)
		}
	}
	return r, ctx
}

func TestEnumsStoredCanonical(t *testing.T) {
	r, ctx := newRepo(t)
	c := domain.Company{ID: "c1", OwnerID: "alice", Name: "Citadel", Type: "Hedge Fund", CreatedAt: ts, UpdatedAt: ts}
	if err := r.InsertCompany(ctx, c); err != nil {
		t.Fatalf("insert: %v", err)
	}
	var raw string
	if err := r.DB.QueryRow(`SELECT type FROM companies WHERE id='c1'`).Scan(&raw); err != nil {
		t.Fatal(err)
	}
	if raw != "HedgeFund" {
		t.Fatalf("stored %q, want HedgeFund", raw)
	}
	got, err := r.GetCompany(ctx, "alice", "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Type != "Hedge Fund" {
		t.Fatalf("read back %q", got.Type)
	}
}

func TestUnknownStoredValuePassesThrough(t *testing.T) {
	r, ctx := newRepo(t)
	if _, err := r.DB.Exec(`INSERT INTO companies(id,owner_id,name,type,created_at,updated_at) VALUES ('c9','alice','Legacy','FamilyOffice',?,?)`, ts, ts); err != nil {
		t.Fatal(err)
	}
	got, err := r.GetCompany(ctx, "alice", "c9")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Type != "FamilyOffice" {
		t.Fatalf("expected pass-through, got %q", got.Type)
	}
}

func TestOwnerScoping(t *testing.T) {
	r, ctx := newRepo(t)
	if err := r.InsertCompany(ctx, domain.Company{ID: "c1", OwnerID: "alice", Name: "A", Type: "Bank", CreatedAt: ts, UpdatedAt: ts}); err != nil {
		t.Fatal(err)
	}
	if _, err := r.GetCompany(ctx, "bob", "c1"); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("expected not found for other owner, got %v", err)
	}
	if err := r.DeleteCompany(ctx, "bob", "c1"); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("expected not found on foreign delete, got %v", err)
	}
	list, err := r.ListCompanies(ctx, repo.CompanyFilters{OwnerID: "bob"})
	if err != nil || len(list) != 0 {
		t.Fatalf("bob should see nothing: %v %v", list, err)
	}
}

func TestInteractionOrderingAndJoins(t *testing.T) {
	r, ctx := newRepo(t)
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(r.InsertCompany(ctx, domain.Company{ID: "co", OwnerID: "alice", Name: "Acme", Type: "Bank", CreatedAt: ts, UpdatedAt: ts}))
	must(r.InsertContact(ctx, domain.Contact{ID: "ct", OwnerID: "alice", CompanyID: "co", FirstName: "Jane", LastName: "Doe", CreatedAt: ts, UpdatedAt: ts}))
	d1, d2 := "2024-01-05", "2024-02-01"
	for _, i := range []domain.Interaction{
		{ID: "old", DateSent: &d1},
		{ID: "undated"},
		{ID: "new", DateSent: &d2, Type: "LinkedIn Message", Stage: "Phone Interview"},
	} {
		i.OwnerID, i.CompanyID, i.ContactID = "alice", "co", "ct"
		i.Status, i.SourceType = "Follow-up", "Direct"
		i.CreatedAt, i.UpdatedAt = ts, ts
		must(r.InsertInteraction(ctx, i))
	}
	list, err := r.ListInteractions(ctx, repo.InteractionFilters{OwnerID: "alice"})
	must(err)
	if len(list) != 3 || list[0].ID != "new" || list[1].ID != "old" || list[2].ID != "undated" {
		t.Fatalf("unexpected order %+v", list)
	}
	if list[0].CompanyName != "Acme" || list[0].ContactName != "Jane Doe" {
		t.Fatalf("joins missing: %+v", list[0])
	}
	if list[0].Status != "Follow-up" || list[0].Type != "LinkedIn Message" || list[0].Stage != "Phone Interview" {
		t.Fatalf("labels not translated: %+v", list[0])
	}
	filtered, err := r.ListInteractions(ctx, repo.InteractionFilters{OwnerID: "alice", Status: "Follow-up"})
	must(err)
	if len(filtered) != 3 {
		t.Fatalf("status filter should translate label, got %d", len(filtered))
	}
}

func TestAPIKeys(t *testing.T) {
	r, ctx := newRepo(t)
	hash := repo.HashAPIKey("secret ")
	if hash != repo.HashAPIKey("secret") {
		t.Fatalf("hash should ignore surrounding space")
	}
	if err := r.InsertAPIKey(ctx, domain.APIKey{ID: "k1", OwnerID: "alice", Name: "cli", KeyHash: hash}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	key, err := r.GetAPIKeyByHash(ctx, hash)
	if err != nil || key.OwnerID != "alice" || key.Name != "cli" {
		t.Fatalf("lookup: %+v %v", key, err)
	}
	if err := r.DeleteAPIKey(ctx, "bob", "k1"); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("foreign delete: %v", err)
	}
	if err := r.DeleteAPIKey(ctx, "alice", "k1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

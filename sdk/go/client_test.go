package jobtrailsdk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"jobtrail/internal/config"
	"jobtrail/internal/db"
	"jobtrail/internal/engine"
	"jobtrail/internal/engine/auth"
	"jobtrail/internal/migrate"
	"jobtrail/internal/server"
)

const testSecret = "sdk-secret"

func newClient(t *testing.T, owner string) *Client {
	t.Helper()
	workspace := t.TempDir()
	conn, err := db.Open(db.Config{Workspace: workspace})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := migrate.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	e := engine.New(conn, config.Default(owner))
	e.Now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	handler, err := server.New(server.Config{Engine: e, Auth: server.AuthConfig{JWTSecret: testSecret}})
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(func() {
		srv.Close()
		conn.Close()
	})
	tok, err := auth.IssueToken(testSecret, owner, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	c := New(srv.URL)
	c.BearerToken = tok
	return c
}

func TestClientFlow(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, "sdk-owner")

	owner, err := c.Me(ctx)
	if err != nil || owner != "sdk-owner" {
		t.Fatalf("me: %q %v", owner, err)
	}
	firm, err := c.CreateCompany(ctx, "Meridian Capital", "Hedge Fund")
	if err != nil {
		t.Fatalf("create company: %v", err)
	}
	agency, err := c.CreateCompany(ctx, "Northgate Search", "Recruiter")
	if err != nil {
		t.Fatalf("create recruiter: %v", err)
	}
	recruiters, err := c.ListCompanies(ctx, "Recruiter")
	if err != nil || len(recruiters) != 1 || recruiters[0].ID != agency.ID {
		t.Fatalf("list recruiters: %+v %v", recruiters, err)
	}
	pm, err := c.CreateContact(ctx, firm.ID, "Dana", "Reyes")
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}

	_, err = c.CreateInteraction(ctx, map[string]any{
		"company_id":  firm.ID,
		"contact_id":  pm.ID,
		"source_type": "Via Recruiter",
	})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest || apiErr.Code != "validation_failed" {
		t.Fatalf("expected validation error, got %v", err)
	}

	first, err := c.CreateInteraction(ctx, map[string]any{
		"company_id":   firm.ID,
		"contact_id":   pm.ID,
		"source_type":  "Via Recruiter",
		"recruiter_id": agency.ID,
		"status":       "Interview",
		"date_sent":    "2024-01-20",
	})
	if err != nil {
		t.Fatalf("create interaction: %v", err)
	}
	if first.RecruiterName != "Northgate Search" {
		t.Fatalf("recruiter name not joined: %+v", first)
	}
	reply, err := c.CreateInteraction(ctx, map[string]any{
		"company_id":            firm.ID,
		"contact_id":            pm.ID,
		"parent_interaction_id": first.ID,
		"date_sent":             "2024-02-28",
	})
	if err != nil {
		t.Fatalf("create follow-up: %v", err)
	}

	rows, err := c.Threads(ctx, url.Values{"company_id": {firm.ID}})
	if err != nil {
		t.Fatalf("threads: %v", err)
	}
	if len(rows) != 2 || rows[0].Interaction.ID != first.ID || rows[1].Interaction.ID != reply.ID || rows[1].Depth != 1 {
		t.Fatalf("unexpected threads: %+v", rows)
	}

	ranking, err := c.RecruiterRanking(ctx, 0)
	if err != nil {
		t.Fatalf("ranking: %v", err)
	}
	if len(ranking) != 1 || ranking[0].Interviews != 1 || ranking[0].Mandates != 1 {
		t.Fatalf("unexpected ranking: %+v", ranking)
	}
	dash, err := c.Dashboard(ctx)
	if err != nil || dash.Today != "2024-03-01" {
		t.Fatalf("dashboard: %+v %v", dash, err)
	}

	if err := c.DeleteInteraction(ctx, reply.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	page, err := c.EventsPage(ctx, 2, "")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(page.Items) != 2 || page.Items[0].Type != "interaction.deleted" || page.NextCursor == "" {
		t.Fatalf("unexpected events page: %+v", page)
	}
}

func TestClientRejectsBadToken(t *testing.T) {
	c := newClient(t, "sdk-owner")
	c.BearerToken = "not-a-token"
	_, err := c.Me(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

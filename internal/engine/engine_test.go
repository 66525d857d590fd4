package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobtrail/internal/config"
	"jobtrail/internal/db"
	"jobtrail/internal/domain"
	"jobtrail/internal/engine"
	"jobtrail/internal/followup"
	"jobtrail/internal/migrate"
	"jobtrail/internal/repo"
)

const owner = "owner-1"

type testEnv struct {
	Engine engine.Engine
	Ctx    context.Context
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	conn, err := db.Open(db.Config{Workspace: dir})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := migrate.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	cfg := config.Default(owner)
	eng := engine.New(conn, cfg)
	eng.Now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	ctx := context.Background()
	if err := eng.EnsureOwner(ctx, owner); err != nil {
		t.Fatalf("ensure owner: %v", err)
	}
	return testEnv{Engine: eng, Ctx: ctx}
}

func (env testEnv) company(t *testing.T, name, typ string) domain.Company {
	t.Helper()
	c, err := env.Engine.CreateCompany(env.Ctx, owner, engine.CompanyInput{Name: name, Type: typ})
	if err != nil {
		t.Fatalf("create company %s: %v", name, err)
	}
	return c
}

func (env testEnv) contact(t *testing.T, companyID, first, seniority string) domain.Contact {
	t.Helper()
	c, err := env.Engine.CreateContact(env.Ctx, owner, engine.ContactInput{CompanyID: companyID, FirstName: first, LastName: "Test", Seniority: seniority})
	if err != nil {
		t.Fatalf("create contact %s: %v", first, err)
	}
	return c
}

func expectValidation(t *testing.T, err error, msg string) {
	t.Helper()
	var v engine.ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if msg != "" && v.Message != msg {
		t.Fatalf("message %q, want %q", v.Message, msg)
	}
}

func TestCompanyTypeNormalized(t *testing.T) {
	env := newTestEnv(t)
	c := env.company(t, "Citadel", "HedgeFund")
	if c.Type != "Hedge Fund" {
		t.Fatalf("type %q", c.Type)
	}
	def := env.company(t, "Someone", "")
	if def.Type != "Other" {
		t.Fatalf("default type %q", def.Type)
	}
	_, err := env.Engine.CreateCompany(env.Ctx, owner, engine.CompanyInput{Name: "X", Type: "Family Office"})
	expectValidation(t, err, "")
	_, err = env.Engine.CreateCompany(env.Ctx, owner, engine.CompanyInput{Name: "  "})
	expectValidation(t, err, "name is required")
}

func TestInteractionDefaults(t *testing.T) {
	env := newTestEnv(t)
	co := env.company(t, "Acme", "Bank")
	ct := env.contact(t, co.ID, "Jane", "VP")
	i, err := env.Engine.CreateInteraction(env.Ctx, owner, engine.InteractionInput{CompanyID: co.ID, ContactID: ct.ID, DateSent: "2024-02-20"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if i.Status != "Sent" || i.SourceType != "Direct" {
		t.Fatalf("defaults not applied: %+v", i)
	}
	if i.CompanyName != "Acme" || i.ContactName != "Jane Test" {
		t.Fatalf("joins not filled: %+v", i)
	}
	_, err = env.Engine.CreateInteraction(env.Ctx, owner, engine.InteractionInput{CompanyID: co.ID})
	expectValidation(t, err, "contact_id is required")
	_, err = env.Engine.CreateInteraction(env.Ctx, owner, engine.InteractionInput{CompanyID: co.ID, ContactID: ct.ID, DateSent: "20/02/2024"})
	expectValidation(t, err, "")
}

func TestInteractionContactMustBelongToCompany(t *testing.T) {
	env := newTestEnv(t)
	a := env.company(t, "A", "Bank")
	b := env.company(t, "B", "Bank")
	ct := env.contact(t, b.ID, "Bob", "")
	_, err := env.Engine.CreateInteraction(env.Ctx, owner, engine.InteractionInput{CompanyID: a.ID, ContactID: ct.ID})
	expectValidation(t, err, "")
	_, err = env.Engine.CreateInteraction(env.Ctx, owner, engine.InteractionInput{CompanyID: "missing", ContactID: ct.ID})
	expectValidation(t, err, "company_id missing not found")
}

func TestRecruiterRules(t *testing.T) {
	env := newTestEnv(t)
	co := env.company(t, "Acme", "Bank")
	ct := env.contact(t, co.ID, "Jane", "")
	agency := env.company(t, "Selby Jennings", "Recruiter")

	base := engine.InteractionInput{CompanyID: co.ID, ContactID: ct.ID, SourceType: "Via Recruiter"}
	_, err := env.Engine.CreateInteraction(env.Ctx, owner, base)
	expectValidation(t, err, "Recruiter is required when source is Via Recruiter")

	wrong := base
	wrong.RecruiterID = co.ID
	_, err = env.Engine.CreateInteraction(env.Ctx, owner, wrong)
	expectValidation(t, err, "Invalid recruiter: must be a company with type Recruiter")

	direct := engine.InteractionInput{CompanyID: co.ID, ContactID: ct.ID, RecruiterID: agency.ID}
	_, err = env.Engine.CreateInteraction(env.Ctx, owner, direct)
	expectValidation(t, err, "")

	ok := base
	ok.RecruiterID = agency.ID
	i, err := env.Engine.CreateInteraction(env.Ctx, owner, ok)
	if err != nil {
		t.Fatalf("create via recruiter: %v", err)
	}
	if i.RecruiterName != "Selby Jennings" {
		t.Fatalf("recruiter name %q", i.RecruiterName)
	}

	source := "Direct"
	i, err = env.Engine.UpdateInteraction(env.Ctx, owner, i.ID, engine.InteractionPatch{SourceType: &source})
	if err != nil {
		t.Fatalf("switch to direct: %v", err)
	}
	if i.RecruiterID != nil {
		t.Fatalf("recruiter should be cleared on direct source")
	}
}

func TestRecruiterCompanyLifecycle(t *testing.T) {
	env := newTestEnv(t)
	co := env.company(t, "Acme", "Bank")
	ct := env.contact(t, co.ID, "Jane", "")
	agency := env.company(t, "Agency", "Recruiter")
	i, err := env.Engine.CreateInteraction(env.Ctx, owner, engine.InteractionInput{
		CompanyID: co.ID, ContactID: ct.ID, SourceType: "Via Recruiter", RecruiterID: agency.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	bank := "Bank"
	_, err = env.Engine.UpdateCompany(env.Ctx, owner, agency.ID, engine.CompanyPatch{Type: &bank})
	expectValidation(t, err, "")

	if err := env.Engine.DeleteCompany(env.Ctx, owner, agency.ID); err != nil {
		t.Fatalf("delete agency: %v", err)
	}
	got, err := env.Engine.Repo.GetInteraction(env.Ctx, owner, i.ID)
	if err != nil {
		t.Fatalf("interaction should survive: %v", err)
	}
	if got.RecruiterID != nil || got.SourceType != "Direct" {
		t.Fatalf("interaction not detached: %+v", got)
	}

	if err := env.Engine.DeleteCompany(env.Ctx, owner, co.ID); err != nil {
		t.Fatalf("delete company: %v", err)
	}
	if _, err := env.Engine.Repo.GetInteraction(env.Ctx, owner, i.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("interaction should cascade, got %v", err)
	}
	if _, err := env.Engine.Repo.GetContact(env.Ctx, owner, ct.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("contact should cascade, got %v", err)
	}
}

func TestProcessLineage(t *testing.T) {
	env := newTestEnv(t)
	co := env.company(t, "Acme", "Bank")
	ct := env.contact(t, co.ID, "Jane", "")
	_, err := env.Engine.CreateProcess(env.Ctx, owner, engine.ProcessInput{CompanyID: co.ID})
	expectValidation(t, err, "role_title is required")

	first, err := env.Engine.CreateProcess(env.Ctx, owner, engine.ProcessInput{CompanyID: co.ID, RoleTitle: "Analyst"})
	if err != nil {
		t.Fatal(err)
	}
	if first.Status != "Active" {
		t.Fatalf("default status %q", first.Status)
	}
	second, err := env.Engine.CreateProcess(env.Ctx, owner, engine.ProcessInput{CompanyID: co.ID, RoleTitle: "Associate", SourceProcessID: first.ID})
	if err != nil {
		t.Fatal(err)
	}
	self := first.ID
	_, err = env.Engine.UpdateProcess(env.Ctx, owner, first.ID, engine.ProcessPatch{SourceProcessID: &self})
	expectValidation(t, err, "a process cannot be its own source")
	loop := second.ID
	_, err = env.Engine.UpdateProcess(env.Ctx, owner, first.ID, engine.ProcessPatch{SourceProcessID: &loop})
	expectValidation(t, err, "")

	lineage, err := env.Engine.ProcessLineage(env.Ctx, repo.ProcessFilters{OwnerID: owner})
	if err != nil {
		t.Fatal(err)
	}
	if len(lineage) != 2 || lineage[0].Item.ID != first.ID || lineage[1].Depth != 1 {
		t.Fatalf("unexpected lineage %+v", lineage)
	}

	i, err := env.Engine.CreateInteraction(env.Ctx, owner, engine.InteractionInput{CompanyID: co.ID, ContactID: ct.ID, ProcessID: first.ID})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.Engine.AddProcessNote(env.Ctx, owner, first.ID, "  "); err == nil {
		t.Fatalf("expected empty note rejected")
	}
	note, err := env.Engine.AddProcessNote(env.Ctx, owner, first.ID, "HR screen booked")
	if err != nil {
		t.Fatal(err)
	}
	detail, err := env.Engine.ProcessDetail(env.Ctx, owner, first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Notes) != 1 || len(detail.Children) != 1 || len(detail.Interactions) != 1 {
		t.Fatalf("unexpected detail %+v", detail)
	}
	if detail.Process.InteractionCount != 1 {
		t.Fatalf("interaction count %d", detail.Process.InteractionCount)
	}
	if err := env.Engine.DeleteProcessNote(env.Ctx, owner, second.ID, note.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("note of another process: %v", err)
	}

	if err := env.Engine.DeleteProcess(env.Ctx, owner, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := env.Engine.Repo.GetInteraction(env.Ctx, owner, i.ID)
	if err != nil || got.ProcessID != nil {
		t.Fatalf("interaction should be unlinked: %+v %v", got, err)
	}
	child, err := env.Engine.Repo.GetProcess(env.Ctx, owner, second.ID)
	if err != nil || child.SourceProcessID != nil {
		t.Fatalf("child should be unlinked: %+v %v", child, err)
	}
}

func TestOrgChart(t *testing.T) {
	env := newTestEnv(t)
	co := env.company(t, "Acme", "Bank")
	analyst := env.contact(t, co.ID, "Ann", "Analyst")
	md := env.contact(t, co.ID, "Mike", "MD")
	vp := env.contact(t, co.ID, "Vera", "VP")
	other := env.company(t, "Other", "Bank")
	outsider := env.contact(t, other.ID, "Olga", "Partner")

	mgr := md.ID
	if _, err := env.Engine.UpdateContact(env.Ctx, owner, vp.ID, engine.ContactPatch{ManagerID: &mgr}); err != nil {
		t.Fatal(err)
	}
	mgr = vp.ID
	if _, err := env.Engine.UpdateContact(env.Ctx, owner, analyst.ID, engine.ContactPatch{ManagerID: &mgr}); err != nil {
		t.Fatal(err)
	}
	loop := analyst.ID
	_, err := env.Engine.UpdateContact(env.Ctx, owner, md.ID, engine.ContactPatch{ManagerID: &loop})
	expectValidation(t, err, "manager chain would form a cycle")
	foreign := outsider.ID
	_, err = env.Engine.UpdateContact(env.Ctx, owner, md.ID, engine.ContactPatch{ManagerID: &foreign})
	expectValidation(t, err, "manager must work at the same company")

	chart, err := env.Engine.OrgChart(env.Ctx, owner, co.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		id    string
		depth int
	}{{md.ID, 0}, {vp.ID, 1}, {analyst.ID, 2}}
	if len(chart) != len(want) {
		t.Fatalf("chart size %d", len(chart))
	}
	for i, w := range want {
		if chart[i].Item.ID != w.id || chart[i].Depth != w.depth {
			t.Fatalf("row %d: got %s/%d", i, chart[i].Item.FirstName, chart[i].Depth)
		}
	}
}

func TestInteractionTree(t *testing.T) {
	env := newTestEnv(t)
	co := env.company(t, "Acme", "Bank")
	ct := env.contact(t, co.ID, "Jane", "")
	root, err := env.Engine.CreateInteraction(env.Ctx, owner, engine.InteractionInput{
		CompanyID: co.ID, ContactID: ct.ID, Status: "Waiting", DateSent: "2024-01-20",
	})
	if err != nil {
		t.Fatal(err)
	}
	reply, err := env.Engine.CreateInteraction(env.Ctx, owner, engine.InteractionInput{
		CompanyID: co.ID, ContactID: ct.ID, DateSent: "2024-02-25", ParentInteractionID: root.ID, NextFollowUpDate: "2024-03-01",
	})
	if err != nil {
		t.Fatal(err)
	}
	loop := reply.ID
	_, err = env.Engine.UpdateInteraction(env.Ctx, owner, root.ID, engine.InteractionPatch{ParentInteractionID: &loop})
	expectValidation(t, err, "follow-up chain would form a cycle")

	rows, err := env.Engine.InteractionTree(env.Ctx, repo.InteractionFilters{OwnerID: owner})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0].Interaction.ID != root.ID || rows[1].Depth != 1 {
		t.Fatalf("unexpected tree %+v", rows)
	}
	// 2024-01-20 to 2024-03-01 is 41 days.
	if rows[0].Severity != followup.Red || rows[0].DaysSinceSent == nil || *rows[0].DaysSinceSent != 41 {
		t.Fatalf("root severity %s", rows[0].Severity)
	}
	if !rows[1].Overdue || rows[1].Severity != followup.Red {
		t.Fatalf("follow-up due today should be overdue and red: %+v", rows[1])
	}

	if err := env.Engine.DeleteInteraction(env.Ctx, owner, root.ID); err != nil {
		t.Fatal(err)
	}
	got, err := env.Engine.Repo.GetInteraction(env.Ctx, owner, reply.ID)
	if err != nil || got.ParentInteractionID != nil {
		t.Fatalf("reply should be promoted: %+v %v", got, err)
	}
}

func TestDashboardAndRanking(t *testing.T) {
	env := newTestEnv(t)
	co := env.company(t, "Acme", "Bank")
	ct := env.contact(t, co.ID, "Jane", "")
	a := env.company(t, "Agency A", "Recruiter")
	b := env.company(t, "Agency B", "Recruiter")
	mk := func(in engine.InteractionInput) {
		t.Helper()
		in.CompanyID, in.ContactID = co.ID, ct.ID
		if _, err := env.Engine.CreateInteraction(env.Ctx, owner, in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	mk(engine.InteractionInput{SourceType: "Via Recruiter", RecruiterID: a.ID, Status: "Waiting", DateSent: "2024-02-10"})
	mk(engine.InteractionInput{SourceType: "Via Recruiter", RecruiterID: a.ID, Status: "Sent"})
	mk(engine.InteractionInput{SourceType: "Via Recruiter", RecruiterID: b.ID, Outcome: "Interview"})
	mk(engine.InteractionInput{Type: "Call", DateSent: "2024-03-05"})
	mk(engine.InteractionInput{Status: "Waiting", DateSent: "2024-01-01"})

	view, err := env.Engine.Dashboard(env.Ctx, owner)
	if err != nil {
		t.Fatal(err)
	}
	if view.Today != "2024-03-01" {
		t.Fatalf("today %s", view.Today)
	}
	if len(view.Overdue) != 1 || len(view.Approaching) != 1 {
		t.Fatalf("follow-up panels: %d red, %d orange", len(view.Overdue), len(view.Approaching))
	}
	if len(view.Scheduled) != 1 || len(view.ThisWeek) != 1 {
		t.Fatalf("date panels: %d scheduled, %d this week", len(view.Scheduled), len(view.ThisWeek))
	}
	if view.RecruiterCount != 2 || view.Recruiters[0].RecruiterID != b.ID {
		t.Fatalf("recruiter panel %+v", view.Recruiters)
	}

	ranking, err := env.Engine.RecruiterRanking(env.Ctx, owner, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranking) != 1 || ranking[0].Name != "Agency B" || ranking[0].Interviews != 1 {
		t.Fatalf("ranking %+v", ranking)
	}

	report, err := env.Engine.RecruiterStats(env.Ctx, owner, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if report.Stats.Total != 2 || report.Stats.ConversionRate != 0 {
		t.Fatalf("stats %+v", report.Stats)
	}
	_, err = env.Engine.RecruiterStats(env.Ctx, owner, co.ID)
	expectValidation(t, err, "")
	if _, err := env.Engine.RecruiterStats(env.Ctx, owner, "nope"); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOwnerIsolation(t *testing.T) {
	env := newTestEnv(t)
	co := env.company(t, "Acme", "Bank")
	if err := env.Engine.EnsureOwner(env.Ctx, "intruder"); err != nil {
		t.Fatal(err)
	}
	_, err := env.Engine.CreateContact(env.Ctx, "intruder", engine.ContactInput{CompanyID: co.ID, FirstName: "X"})
	expectValidation(t, err, "")
	if err := env.Engine.DeleteCompany(env.Ctx, "intruder", co.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	view, err := env.Engine.Dashboard(env.Ctx, "intruder")
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Recruiters) != 0 || len(view.Overdue) != 0 {
		t.Fatalf("intruder sees data: %+v", view)
	}
}

func TestEventsAndAPIKeys(t *testing.T) {
	env := newTestEnv(t)
	env.company(t, "Acme", "Bank")
	key, plain, err := env.Engine.CreateAPIKey(env.Ctx, owner, "laptop")
	if err != nil {
		t.Fatal(err)
	}
	if key.KeyHash != repo.HashAPIKey(plain) || key.KeyHash == plain {
		t.Fatalf("key hash mismatch")
	}
	evts, err := env.Engine.Repo.LatestEvents(env.Ctx, owner, 10, "", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(evts) != 2 || evts[0].Type != "apikey.created" || evts[1].Type != "company.created" {
		t.Fatalf("unexpected events %+v", evts)
	}
	if err := env.Engine.DeleteAPIKey(env.Ctx, owner, key.ID); err != nil {
		t.Fatal(err)
	}
	if err := env.Engine.DeleteAPIKey(env.Ctx, owner, key.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

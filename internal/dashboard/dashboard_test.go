package dashboard_test

import (
	"testing"
	"time"

	"jobtrail/internal/dashboard"
	"jobtrail/internal/domain"
)

var now = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func ptr(s string) *string { return &s }

func TestBuckets(t *testing.T) {
	items := []domain.Interaction{
		{ID: "red-override", Status: "Sent", NextFollowUpDate: ptr("2024-05-10")},
		{ID: "orange", Status: "Waiting", DateSent: ptr("2024-04-20")},
		{ID: "red-aged", Status: "Waiting", DateSent: ptr("2024-04-01")},
		{ID: "call-late", Status: "Sent", Type: "Call", DateSent: ptr("2024-05-16")},
		{ID: "interview-soon", Status: "Interview", DateSent: ptr("2024-05-11")},
		{ID: "far-call", Status: "Sent", Type: "Call", DateSent: ptr("2024-06-30")},
		{ID: "email-today", Status: "Sent", Type: "Cold Email", DateSent: ptr("2024-05-10")},
		{ID: "past-call", Status: "Sent", Type: "Call", DateSent: ptr("2024-05-09")},
		{ID: "undated", Status: "Interview"},
	}
	v := dashboard.Build(items, now, dashboard.Options{})
	if v.Today != "2024-05-10" {
		t.Fatalf("today %s", v.Today)
	}
	check := func(name string, got []domain.Interaction, want ...string) {
		t.Helper()
		if len(got) != len(want) {
			t.Fatalf("%s: got %d items want %v", name, len(got), want)
		}
		for i := range want {
			if got[i].ID != want[i] {
				t.Fatalf("%s[%d] = %s want %s", name, i, got[i].ID, want[i])
			}
		}
	}
	check("overdue", v.Overdue, "red-override", "red-aged")
	check("approaching", v.Approaching, "orange")
	check("scheduled", v.Scheduled, "interview-soon", "call-late", "far-call")
	check("this week", v.ThisWeek, "email-today", "interview-soon", "call-late")
}

func TestRecruiterPanel(t *testing.T) {
	var items []domain.Interaction
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		rid := id
		items = append(items, domain.Interaction{SourceType: "Via Recruiter", RecruiterID: &rid, Status: "Sent"})
	}
	v := dashboard.Build(items, now, dashboard.Options{TopN: 3})
	if v.RecruiterCount != 6 || len(v.Recruiters) != 3 {
		t.Fatalf("count=%d shown=%d", v.RecruiterCount, len(v.Recruiters))
	}
	v = dashboard.Build(items, now, dashboard.Options{})
	if len(v.Recruiters) != 5 {
		t.Fatalf("default top n: %d", len(v.Recruiters))
	}
}

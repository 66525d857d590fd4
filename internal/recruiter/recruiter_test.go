package recruiter_test

import (
	"testing"

	"jobtrail/internal/domain"
	"jobtrail/internal/recruiter"
)

func via(recruiterID, status, outcome string) domain.Interaction {
	id := recruiterID
	return domain.Interaction{
		RecruiterID: &id,
		SourceType:  "Via Recruiter",
		Status:      status,
		Outcome:     outcome,
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := recruiter.Summarize(nil)
	if s.Total != 0 || s.ConversionRate != 0 {
		t.Fatalf("unexpected stats %+v", s)
	}
}

func TestSummarizeCounts(t *testing.T) {
	items := []domain.Interaction{
		via("r", "Interview", "Offer"),
		via("r", "Interview", "Interview"),
		via("r", "Rejected", ""),
		via("r", "Waiting", "Rejected"),
		via("r", "Closed", ""),
		via("r", "Sent", ""),
	}
	s := recruiter.Summarize(items)
	want := recruiter.Stats{Total: 6, Interviews: 2, Offers: 1, Rejections: 2, Active: 3, ConversionRate: 33}
	if s != want {
		t.Fatalf("got %+v want %+v", s, want)
	}
}

func TestConversionRate(t *testing.T) {
	cases := []struct{ interviews, total, want int }{
		{0, 0, 0},
		{5, 10, 50},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
	}
	for _, tc := range cases {
		if got := recruiter.ConversionRate(tc.interviews, tc.total); got != tc.want {
			t.Fatalf("ConversionRate(%d,%d)=%d want %d", tc.interviews, tc.total, got, tc.want)
		}
	}
}

func TestRankOrdering(t *testing.T) {
	items := []domain.Interaction{
		via("a", "Sent", ""),
		via("b", "Interview", ""),
		via("a", "Sent", ""),
		via("c", "Sent", ""),
		via("c", "Sent", ""),
		via("d", "Interview", ""),
		via("d", "Sent", ""),
		{SourceType: "Direct", Status: "Interview"},
	}
	got := recruiter.Rank(items, 0)
	order := []string{}
	for _, s := range got {
		order = append(order, s.RecruiterID)
	}
	want := []string{"d", "b", "a", "c"}
	if len(order) != len(want) {
		t.Fatalf("order %v want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order %v want %v", order, want)
		}
	}
	if got[0].Mandates != 2 || got[0].Interviews != 1 {
		t.Fatalf("unexpected summary %+v", got[0])
	}
}

func TestRankTieKeepsFirstAppearance(t *testing.T) {
	items := []domain.Interaction{via("x", "Sent", ""), via("y", "Sent", ""), via("z", "Sent", "")}
	for run := 0; run < 5; run++ {
		got := recruiter.Rank(items, 0)
		if got[0].RecruiterID != "x" || got[1].RecruiterID != "y" || got[2].RecruiterID != "z" {
			t.Fatalf("run %d: unstable order %+v", run, got)
		}
	}
}

func TestRankTruncatesAndSkipsMissingRecruiter(t *testing.T) {
	var items []domain.Interaction
	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		items = append(items, via(id, "Sent", ""))
	}
	items = append(items, domain.Interaction{SourceType: "Via Recruiter", Status: "Interview"})
	got := recruiter.Rank(items, recruiter.DefaultTopN)
	if len(got) != 5 {
		t.Fatalf("expected 5 recruiters, got %d", len(got))
	}
	if got[0].RecruiterID != "1" || got[4].RecruiterID != "5" {
		t.Fatalf("unexpected truncation %+v", got)
	}
	if empty := recruiter.Rank(nil, 5); empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty ranking")
	}
}

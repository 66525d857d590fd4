package followup_test

import (
	"testing"
	"time"

	"jobtrail/internal/followup"
)

var now = time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

func daysAgo(n int) string {
	return followup.FormatDate(followup.Today(now).AddDate(0, 0, -n))
}

func TestWaitingThresholds(t *testing.T) {
	cases := []struct {
		days int
		want followup.Severity
	}{
		{0, followup.Normal},
		{13, followup.Normal},
		{14, followup.Orange},
		{27, followup.Orange},
		{28, followup.Red},
		{90, followup.Red},
	}
	for _, tc := range cases {
		got := followup.Classify(followup.Input{Status: "Waiting", DateSent: daysAgo(tc.days)}, now)
		if got != tc.want {
			t.Fatalf("%d days: got %s want %s", tc.days, got, tc.want)
		}
	}
}

func TestOverrideFiresOnTheDay(t *testing.T) {
	got := followup.Classify(followup.Input{Status: "Sent", NextFollowUpDate: daysAgo(0)}, now)
	if got != followup.Red {
		t.Fatalf("expected red when follow-up is today, got %s", got)
	}
	got = followup.Classify(followup.Input{Status: "Sent", NextFollowUpDate: daysAgo(3)}, now)
	if got != followup.Red {
		t.Fatalf("expected red when follow-up is past, got %s", got)
	}
}

func TestOverrideDoesNotFireEarly(t *testing.T) {
	tomorrow := daysAgo(-1)
	got := followup.Classify(followup.Input{Status: "Sent", DateSent: daysAgo(40), NextFollowUpDate: tomorrow}, now)
	if got != followup.Normal {
		t.Fatalf("non-waiting with future follow-up: got %s", got)
	}
	got = followup.Classify(followup.Input{Status: "Waiting", DateSent: daysAgo(20), NextFollowUpDate: tomorrow}, now)
	if got != followup.Orange {
		t.Fatalf("waiting with future follow-up should age normally: got %s", got)
	}
}

func TestMissingAndMalformedDates(t *testing.T) {
	if got := followup.Classify(followup.Input{Status: "Waiting"}, now); got != followup.Normal {
		t.Fatalf("no dates: got %s", got)
	}
	if got := followup.Classify(followup.Input{Status: "Waiting", DateSent: "15/01/2024"}, now); got != followup.Normal {
		t.Fatalf("malformed date_sent: got %s", got)
	}
	if followup.IsOverdue("not-a-date", now) {
		t.Fatalf("malformed follow-up date must not be overdue")
	}
}

func TestTodayIgnoresClockTime(t *testing.T) {
	late := time.Date(2024, 3, 15, 23, 59, 0, 0, time.FixedZone("UTC+5", 5*3600))
	if got := followup.FormatDate(followup.Today(late)); got != "2024-03-15" {
		t.Fatalf("today = %s", got)
	}
	if days, ok := followup.DaysSince("2024-03-16", now); !ok || days != -1 {
		t.Fatalf("future date: days=%d ok=%v", days, ok)
	}
}

// Package dashboard groups a user's interactions into the home screen panels.
package dashboard

import (
	"sort"
	"time"

	"jobtrail/internal/domain"
	"jobtrail/internal/followup"
	"jobtrail/internal/recruiter"
	"jobtrail/internal/taxonomy"
)

const DefaultWindowDays = 7

type Options struct {
	// TopN caps the recruiter panel. Zero falls back to recruiter.DefaultTopN.
	TopN int
	// WindowDays is the span of the "this week" panel. Zero falls back to
	// DefaultWindowDays.
	WindowDays int
}

type View struct {
	Today          string               `json:"today" format:"date"`
	Overdue        []domain.Interaction `json:"overdue"`
	Approaching    []domain.Interaction `json:"approaching"`
	Scheduled      []domain.Interaction `json:"scheduled"`
	ThisWeek       []domain.Interaction `json:"this_week"`
	Recruiters     []recruiter.Summary  `json:"recruiters"`
	RecruiterCount int                  `json:"recruiter_count"`
}

// Build buckets items relative to now. Input order is kept inside the
// follow-up panels; the date panels are sorted by date sent.
func Build(items []domain.Interaction, now time.Time, opts Options) View {
	if opts.TopN == 0 {
		opts.TopN = recruiter.DefaultTopN
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = DefaultWindowDays
	}
	today := followup.Today(now)
	windowEnd := today.AddDate(0, 0, opts.WindowDays)
	v := View{
		Today:       followup.FormatDate(today),
		Overdue:     []domain.Interaction{},
		Approaching: []domain.Interaction{},
		Scheduled:   []domain.Interaction{},
		ThisWeek:    []domain.Interaction{},
	}
	for _, i := range items {
		switch followup.Classify(InputFor(i), now) {
		case followup.Red:
			v.Overdue = append(v.Overdue, i)
		case followup.Orange:
			v.Approaching = append(v.Approaching, i)
		}
		sent, ok := followup.ParseDate(i.DateSentValue())
		if !ok || sent.Before(today) {
			continue
		}
		if i.Type == taxonomy.TypeCall || i.Status == taxonomy.StatusInterview {
			v.Scheduled = append(v.Scheduled, i)
		}
		if !sent.After(windowEnd) {
			v.ThisWeek = append(v.ThisWeek, i)
		}
	}
	byDateSent := func(list []domain.Interaction) {
		sort.SliceStable(list, func(a, b int) bool {
			return list[a].DateSentValue() < list[b].DateSentValue()
		})
	}
	byDateSent(v.Scheduled)
	byDateSent(v.ThisWeek)

	all := recruiter.Rank(items, 0)
	v.RecruiterCount = len(all)
	if opts.TopN > 0 && len(all) > opts.TopN {
		all = all[:opts.TopN]
	}
	v.Recruiters = all
	return v
}

// InputFor extracts the classifier fields of an interaction.
func InputFor(i domain.Interaction) followup.Input {
	return followup.Input{
		Status:           i.Status,
		DateSent:         i.DateSentValue(),
		NextFollowUpDate: i.NextFollowUpValue(),
	}
}

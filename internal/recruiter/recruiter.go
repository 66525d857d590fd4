// Package recruiter aggregates outcomes of interactions placed through
// recruiting agencies.
package recruiter

import (
	"math"
	"sort"

	"jobtrail/internal/domain"
	"jobtrail/internal/taxonomy"
)

// DefaultTopN is how many recruiters a ranking keeps when no limit is configured.
const DefaultTopN = 5

type Stats struct {
	Total          int `json:"total"`
	Interviews     int `json:"interviews"`
	Offers         int `json:"offers"`
	Rejections     int `json:"rejections"`
	Active         int `json:"active"`
	ConversionRate int `json:"conversion_rate"`
}

// Summarize computes stats over interactions already scoped to one recruiter.
// Each interaction counts at most once per bucket even when both status and
// outcome carry the signal.
func Summarize(items []domain.Interaction) Stats {
	var s Stats
	s.Total = len(items)
	for _, i := range items {
		if isInterview(i) {
			s.Interviews++
		}
		if isOffer(i) {
			s.Offers++
		}
		if i.Status == taxonomy.StatusRejected || i.Outcome == taxonomy.OutcomeRejected {
			s.Rejections++
		}
		if i.Status != taxonomy.StatusRejected && i.Status != taxonomy.StatusClosed && i.Outcome != taxonomy.OutcomeRejected {
			s.Active++
		}
	}
	s.ConversionRate = ConversionRate(s.Interviews, s.Total)
	return s
}

// ConversionRate returns interviews as a rounded whole percentage of total,
// or 0 when total is 0.
func ConversionRate(interviews, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(interviews) / float64(total) * 100))
}

type Summary struct {
	RecruiterID string `json:"recruiter_id"`
	Name        string `json:"name,omitempty"`
	Mandates    int    `json:"mandates"`
	Interviews  int    `json:"interviews"`
	Offers      int    `json:"offers"`
}

// Rank groups recruiter-sourced interactions by recruiter and orders them by
// interviews then mandates, both descending. Ties keep first-appearance
// order. topN <= 0 keeps every recruiter.
func Rank(items []domain.Interaction, topN int) []Summary {
	index := map[string]int{}
	var out []Summary
	for _, i := range items {
		id := i.RecruiterKey()
		if i.SourceType != taxonomy.SourceViaRecruiter || id == "" {
			continue
		}
		pos, ok := index[id]
		if !ok {
			pos = len(out)
			index[id] = pos
			out = append(out, Summary{RecruiterID: id})
		}
		s := &out[pos]
		if s.Name == "" {
			s.Name = i.RecruiterName
		}
		s.Mandates++
		if isInterview(i) {
			s.Interviews++
		}
		if isOffer(i) {
			s.Offers++
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Interviews != out[b].Interviews {
			return out[a].Interviews > out[b].Interviews
		}
		return out[a].Mandates > out[b].Mandates
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	if out == nil {
		out = []Summary{}
	}
	return out
}

func isInterview(i domain.Interaction) bool {
	return i.Status == taxonomy.StatusInterview || i.Outcome == taxonomy.OutcomeInterview
}

func isOffer(i domain.Interaction) bool {
	return i.Status == taxonomy.StatusOffer || i.Outcome == taxonomy.OutcomeOffer
}

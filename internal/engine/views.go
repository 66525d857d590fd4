package engine

import (
	"context"
	"errors"
	"sort"

	"jobtrail/internal/dashboard"
	"jobtrail/internal/domain"
	"jobtrail/internal/followup"
	"jobtrail/internal/hierarchy"
	"jobtrail/internal/recruiter"
	"jobtrail/internal/repo"
	"jobtrail/internal/taxonomy"
)

// TreeRow is an interaction placed in its follow-up thread, annotated with
// its follow-up urgency.
type TreeRow struct {
	Interaction   domain.Interaction `json:"interaction"`
	Depth         int                `json:"depth"`
	CycleBroken   bool               `json:"cycle_broken,omitempty"`
	Severity      followup.Severity  `json:"severity"`
	Overdue       bool               `json:"overdue"`
	DaysSinceSent *int               `json:"days_since_sent,omitempty"`
}

// InteractionTree lists the owner's interactions threaded by parent link.
func (e Engine) InteractionTree(ctx context.Context, f repo.InteractionFilters) ([]TreeRow, error) {
	items, err := e.Repo.ListInteractions(ctx, f)
	if err != nil {
		return nil, err
	}
	return e.treeRows(items), nil
}

func (e Engine) treeRows(items []domain.Interaction) []TreeRow {
	now := e.now()
	entries := hierarchy.Build(items)
	rows := make([]TreeRow, 0, len(entries))
	for _, en := range entries {
		row := TreeRow{
			Interaction: en.Item,
			Depth:       en.Depth,
			CycleBroken: en.CycleBroken,
			Severity:    followup.Classify(dashboard.InputFor(en.Item), now),
		}
		if next := en.Item.NextFollowUpValue(); next != "" {
			row.Overdue = followup.IsOverdue(next, now)
		}
		if days, ok := followup.DaysSince(en.Item.DateSentValue(), now); ok {
			row.DaysSinceSent = &days
		}
		rows = append(rows, row)
	}
	return rows
}

type ProcessDetail struct {
	Process      domain.Process       `json:"process"`
	Source       *domain.Process      `json:"source,omitempty"`
	Notes        []domain.ProcessNote `json:"notes"`
	Children     []domain.Process     `json:"children"`
	Interactions []TreeRow            `json:"interactions"`
}

func (e Engine) ProcessDetail(ctx context.Context, ownerID, id string) (ProcessDetail, error) {
	p, err := e.Repo.GetProcess(ctx, ownerID, id)
	if err != nil {
		return ProcessDetail{}, err
	}
	d := ProcessDetail{Process: p}
	if p.SourceProcessID != nil {
		src, err := e.Repo.GetProcess(ctx, ownerID, *p.SourceProcessID)
		if err == nil {
			d.Source = &src
		} else if !errors.Is(err, repo.ErrNotFound) {
			return ProcessDetail{}, err
		}
	}
	if d.Notes, err = e.Repo.ListNotes(ctx, ownerID, id); err != nil {
		return ProcessDetail{}, err
	}
	if d.Children, err = e.Repo.ListChildProcesses(ctx, ownerID, id); err != nil {
		return ProcessDetail{}, err
	}
	items, err := e.Repo.ListInteractions(ctx, repo.InteractionFilters{OwnerID: ownerID, ProcessID: id})
	if err != nil {
		return ProcessDetail{}, err
	}
	d.Interactions = e.treeRows(items)
	return d, nil
}

// ProcessLineage threads the owner's processes by the process each one was
// sourced from.
func (e Engine) ProcessLineage(ctx context.Context, f repo.ProcessFilters) ([]hierarchy.Entry[domain.Process], error) {
	items, err := e.Repo.ListProcesses(ctx, f)
	if err != nil {
		return nil, err
	}
	return hierarchy.Build(items), nil
}

// OrgChart returns a company's contacts as a reporting tree. Siblings are
// ordered most senior first.
func (e Engine) OrgChart(ctx context.Context, ownerID, companyID string) ([]hierarchy.Entry[domain.Contact], error) {
	if _, err := e.Repo.GetCompany(ctx, ownerID, companyID); err != nil {
		return nil, err
	}
	contacts, err := e.Repo.ListContacts(ctx, repo.ContactFilters{OwnerID: ownerID, CompanyID: companyID})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(contacts, func(a, b int) bool {
		return taxonomy.Seniority.Rank(contacts[a].Seniority) < taxonomy.Seniority.Rank(contacts[b].Seniority)
	})
	return hierarchy.Build(contacts), nil
}

type RecruiterReport struct {
	Recruiter domain.Company  `json:"recruiter"`
	Stats     recruiter.Stats `json:"stats"`
}

func (e Engine) RecruiterStats(ctx context.Context, ownerID, recruiterID string) (RecruiterReport, error) {
	c, err := e.Repo.GetCompany(ctx, ownerID, recruiterID)
	if err != nil {
		return RecruiterReport{}, err
	}
	if c.Type != taxonomy.CompanyRecruiter {
		return RecruiterReport{}, invalid("recruiter_id", "company %s is not a recruiter", c.Name)
	}
	items, err := e.Repo.ListInteractions(ctx, repo.InteractionFilters{OwnerID: ownerID, RecruiterID: recruiterID})
	if err != nil {
		return RecruiterReport{}, err
	}
	return RecruiterReport{Recruiter: c, Stats: recruiter.Summarize(items)}, nil
}

// RecruiterRanking ranks recruiters by results. topN <= 0 uses the
// configured limit.
func (e Engine) RecruiterRanking(ctx context.Context, ownerID string, topN int) ([]recruiter.Summary, error) {
	if topN <= 0 {
		topN = e.recruiterLimit()
	}
	items, err := e.Repo.ListInteractions(ctx, repo.InteractionFilters{OwnerID: ownerID, SourceType: taxonomy.SourceViaRecruiter})
	if err != nil {
		return nil, err
	}
	return recruiter.Rank(items, topN), nil
}

func (e Engine) Dashboard(ctx context.Context, ownerID string) (dashboard.View, error) {
	items, err := e.Repo.ListInteractions(ctx, repo.InteractionFilters{OwnerID: ownerID})
	if err != nil {
		return dashboard.View{}, err
	}
	return dashboard.Build(items, e.now(), dashboard.Options{
		TopN:       e.recruiterLimit(),
		WindowDays: e.windowDays(),
	}), nil
}

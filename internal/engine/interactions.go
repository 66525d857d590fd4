package engine

import (
	"context"
	"errors"
	"strings"

	"jobtrail/internal/domain"
	"jobtrail/internal/events"
	"jobtrail/internal/hierarchy"
	"jobtrail/internal/repo"
	"jobtrail/internal/taxonomy"
)

type InteractionInput struct {
	CompanyID           string
	ContactID           string
	RecruiterID         string
	ProcessID           string
	ParentInteractionID string
	DateSent            string
	NextFollowUpDate    string
	LastUpdate          string
	Status              string
	Priority            string
	GlobalCategory      string
	Type                string
	Stage               string
	Outcome             string
	SourceType          string
	Completed           bool
	RoleTitle           string
	Comment             string
}

// InteractionPatch changes only the non-nil fields. Empty strings clear
// optional links and dates.
type InteractionPatch struct {
	ContactID           *string
	RecruiterID         *string
	ProcessID           *string
	ParentInteractionID *string
	DateSent            *string
	NextFollowUpDate    *string
	LastUpdate          *string
	Status              *string
	Priority            *string
	GlobalCategory      *string
	Type                *string
	Stage               *string
	Outcome             *string
	SourceType          *string
	Completed           *bool
	RoleTitle           *string
	Comment             *string
}

const (
	msgRecruiterRequired = "Recruiter is required when source is Via Recruiter"
	msgRecruiterInvalid  = "Invalid recruiter: must be a company with type Recruiter"
	msgRecruiterDirect   = "Recruiter can only be set when source is Via Recruiter"
)

func (e Engine) CreateInteraction(ctx context.Context, ownerID string, in InteractionInput) (domain.Interaction, error) {
	if strings.TrimSpace(in.CompanyID) == "" {
		return domain.Interaction{}, invalid("company_id", "company_id is required")
	}
	if strings.TrimSpace(in.ContactID) == "" {
		return domain.Interaction{}, invalid("contact_id", "contact_id is required")
	}
	now := e.stamp()
	i := domain.Interaction{
		ID:          newID(),
		OwnerID:     ownerID,
		CompanyID:   strings.TrimSpace(in.CompanyID),
		ContactID:   strings.TrimSpace(in.ContactID),
		RecruiterID: optionalString(in.RecruiterID),
		ProcessID:   optionalString(in.ProcessID),
		Completed:   in.Completed,
		RoleTitle:   strings.TrimSpace(in.RoleTitle),
		Comment:     in.Comment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	i.ParentInteractionID = optionalString(in.ParentInteractionID)
	if err := applyLabels(&i, labelFields{
		Status:         &in.Status,
		Priority:       &in.Priority,
		GlobalCategory: &in.GlobalCategory,
		Type:           &in.Type,
		Stage:          &in.Stage,
		Outcome:        &in.Outcome,
		SourceType:     &in.SourceType,
	}); err != nil {
		return domain.Interaction{}, err
	}
	if err := applyDates(&i, &in.DateSent, &in.NextFollowUpDate, &in.LastUpdate); err != nil {
		return domain.Interaction{}, err
	}
	if i.SourceType != taxonomy.SourceViaRecruiter && i.RecruiterID != nil {
		return domain.Interaction{}, invalid("recruiter_id", msgRecruiterDirect)
	}

	tx, r, err := e.begin(ctx, ownerID)
	if err != nil {
		return domain.Interaction{}, err
	}
	defer tx.Rollback()
	if err := e.checkInteractionRefs(ctx, r, &i); err != nil {
		return domain.Interaction{}, err
	}
	if err := r.InsertInteraction(ctx, i); err != nil {
		return domain.Interaction{}, err
	}
	if i.ProcessID != nil {
		if err := r.TouchProcess(ctx, ownerID, *i.ProcessID, now); err != nil {
			return domain.Interaction{}, err
		}
	}
	if err := e.Events.Append(ctx, tx, events.InteractionCreated, ownerID, "interaction", i.ID, events.EventPayload{
		"company_id":  i.CompanyID,
		"status":      i.Status,
		"source_type": i.SourceType,
	}); err != nil {
		return domain.Interaction{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Interaction{}, err
	}
	return i, nil
}

func (e Engine) UpdateInteraction(ctx context.Context, ownerID, id string, p InteractionPatch) (domain.Interaction, error) {
	tx, r, err := e.begin(ctx, ownerID)
	if err != nil {
		return domain.Interaction{}, err
	}
	defer tx.Rollback()
	i, err := r.GetInteraction(ctx, ownerID, id)
	if err != nil {
		return i, err
	}
	fromStatus := i.Status
	if p.ContactID != nil {
		cid := strings.TrimSpace(*p.ContactID)
		if cid == "" {
			return i, invalid("contact_id", "contact_id is required")
		}
		i.ContactID = cid
	}
	if p.RecruiterID != nil {
		i.RecruiterID = optionalString(*p.RecruiterID)
	}
	if p.ProcessID != nil {
		i.ProcessID = optionalString(*p.ProcessID)
	}
	if p.ParentInteractionID != nil {
		i.ParentInteractionID = optionalString(*p.ParentInteractionID)
	}
	if p.Completed != nil {
		i.Completed = *p.Completed
	}
	if p.RoleTitle != nil {
		i.RoleTitle = strings.TrimSpace(*p.RoleTitle)
	}
	if p.Comment != nil {
		i.Comment = *p.Comment
	}
	if err := applyLabels(&i, labelFields{
		Status:         p.Status,
		Priority:       p.Priority,
		GlobalCategory: p.GlobalCategory,
		Type:           p.Type,
		Stage:          p.Stage,
		Outcome:        p.Outcome,
		SourceType:     p.SourceType,
	}); err != nil {
		return i, err
	}
	if err := applyDates(&i, p.DateSent, p.NextFollowUpDate, p.LastUpdate); err != nil {
		return i, err
	}
	if i.SourceType != taxonomy.SourceViaRecruiter && i.RecruiterID != nil {
		if p.RecruiterID != nil {
			return i, invalid("recruiter_id", msgRecruiterDirect)
		}
		// Switching to a direct source drops the old recruiter.
		i.RecruiterID = nil
	}
	if err := e.checkInteractionRefs(ctx, r, &i); err != nil {
		return i, err
	}
	i.UpdatedAt = e.stamp()
	if err := r.UpdateInteraction(ctx, i); err != nil {
		return i, err
	}
	if i.ProcessID != nil {
		if err := r.TouchProcess(ctx, ownerID, *i.ProcessID, i.UpdatedAt); err != nil {
			return i, err
		}
	}
	if err := e.Events.Append(ctx, tx, events.InteractionUpdated, ownerID, "interaction", i.ID, events.EventPayload{
		"from_status": fromStatus,
		"to_status":   i.Status,
	}); err != nil {
		return i, err
	}
	if err := tx.Commit(); err != nil {
		return i, err
	}
	return i, nil
}

// DeleteInteraction removes an interaction. Its follow-ups become top-level.
func (e Engine) DeleteInteraction(ctx context.Context, ownerID, id string) error {
	tx, r, err := e.begin(ctx, ownerID)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := r.GetInteraction(ctx, ownerID, id); err != nil {
		return err
	}
	if err := r.DeleteInteraction(ctx, ownerID, id); err != nil {
		return err
	}
	if err := e.Events.Append(ctx, tx, events.InteractionDeleted, ownerID, "interaction", id, nil); err != nil {
		return err
	}
	return tx.Commit()
}

// checkInteractionRefs validates every referenced row and fills the joined
// display names.
func (e Engine) checkInteractionRefs(ctx context.Context, r repo.Repo, i *domain.Interaction) error {
	company, err := r.GetCompany(ctx, i.OwnerID, i.CompanyID)
	if err != nil {
		return refNotFound(err, "company_id", i.CompanyID)
	}
	i.CompanyName = company.Name
	contact, err := r.GetContact(ctx, i.OwnerID, i.ContactID)
	if err != nil {
		return refNotFound(err, "contact_id", i.ContactID)
	}
	if contact.CompanyID != i.CompanyID {
		return invalid("contact_id", "contact does not work at company %s", company.Name)
	}
	i.ContactName = contact.FullName()

	i.RecruiterName = ""
	if i.SourceType == taxonomy.SourceViaRecruiter {
		if i.RecruiterID == nil {
			return invalid("recruiter_id", msgRecruiterRequired)
		}
		rc, err := r.GetCompany(ctx, i.OwnerID, *i.RecruiterID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return err
		}
		if err != nil || rc.Type != taxonomy.CompanyRecruiter {
			return invalid("recruiter_id", msgRecruiterInvalid)
		}
		i.RecruiterName = rc.Name
	}
	if i.ProcessID != nil {
		if _, err := r.GetProcess(ctx, i.OwnerID, *i.ProcessID); err != nil {
			return refNotFound(err, "process_id", *i.ProcessID)
		}
	}
	if i.ParentInteractionID != nil {
		parent := *i.ParentInteractionID
		if parent == i.ID {
			return invalid("parent_interaction_id", "an interaction cannot follow up on itself")
		}
		if _, err := r.GetInteraction(ctx, i.OwnerID, parent); err != nil {
			return refNotFound(err, "parent_interaction_id", parent)
		}
		lookup := func(id string) (string, bool) {
			p, err := r.InteractionParent(ctx, i.OwnerID, id)
			if err != nil {
				return "", false
			}
			return p, true
		}
		if hierarchy.Reaches(parent, i.ID, lookup) {
			return invalid("parent_interaction_id", "follow-up chain would form a cycle")
		}
	}
	return nil
}

type labelFields struct {
	Status         *string
	Priority       *string
	GlobalCategory *string
	Type           *string
	Stage          *string
	Outcome        *string
	SourceType     *string
}

// applyLabels normalizes the non-nil enum fields onto i and fills the
// defaults for status and source.
func applyLabels(i *domain.Interaction, in labelFields) error {
	fields := []struct {
		family *taxonomy.Family
		name   string
		src    *string
		dst    *string
	}{
		{taxonomy.InteractionStatus, "status", in.Status, &i.Status},
		{taxonomy.Priority, "priority", in.Priority, &i.Priority},
		{taxonomy.GlobalCategory, "global_category", in.GlobalCategory, &i.GlobalCategory},
		{taxonomy.InteractionType, "type", in.Type, &i.Type},
		{taxonomy.Stage, "stage", in.Stage, &i.Stage},
		{taxonomy.Outcome, "outcome", in.Outcome, &i.Outcome},
		{taxonomy.SourceType, "source_type", in.SourceType, &i.SourceType},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		v, err := normalizeEnum(f.family, f.name, *f.src)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	if i.Status == "" {
		i.Status = taxonomy.StatusSent
	}
	if i.SourceType == "" {
		i.SourceType = taxonomy.SourceDirect
	}
	return nil
}

func applyDates(i *domain.Interaction, sent, next, last *string) error {
	fields := []struct {
		name string
		src  *string
		dst  **string
	}{
		{"date_sent", sent, &i.DateSent},
		{"next_follow_up_date", next, &i.NextFollowUpDate},
		{"last_update", last, &i.LastUpdate},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		v, err := normalizeDate(f.name, *f.src)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

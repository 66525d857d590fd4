package engine

import (
	"context"
	"strings"

	"jobtrail/internal/domain"
	"jobtrail/internal/events"
	"jobtrail/internal/hierarchy"
	"jobtrail/internal/repo"
	"jobtrail/internal/taxonomy"
)

type ContactInput struct {
	CompanyID   string
	FirstName   string
	LastName    string
	ExactTitle  string
	Category    string
	Seniority   string
	Location    string
	Email       string
	Phone       string
	LinkedInURL string
	ManagerID   string
	Notes       string
}

// ContactPatch changes only the non-nil fields. An empty ManagerID clears
// the manager.
type ContactPatch struct {
	FirstName   *string
	LastName    *string
	ExactTitle  *string
	Category    *string
	Seniority   *string
	Location    *string
	Email       *string
	Phone       *string
	LinkedInURL *string
	ManagerID   *string
	Notes       *string
}

func (e Engine) CreateContact(ctx context.Context, ownerID string, in ContactInput) (domain.Contact, error) {
	if strings.TrimSpace(in.CompanyID) == "" {
		return domain.Contact{}, invalid("company_id", "company_id is required")
	}
	category, err := normalizeEnum(taxonomy.ContactCategory, "category", in.Category)
	if err != nil {
		return domain.Contact{}, err
	}
	seniority, err := normalizeEnum(taxonomy.Seniority, "seniority", in.Seniority)
	if err != nil {
		return domain.Contact{}, err
	}
	tx, r, err := e.begin(ctx, ownerID)
	if err != nil {
		return domain.Contact{}, err
	}
	defer tx.Rollback()
	company, err := r.GetCompany(ctx, ownerID, in.CompanyID)
	if err != nil {
		return domain.Contact{}, refNotFound(err, "company_id", in.CompanyID)
	}
	now := e.stamp()
	c := domain.Contact{
		ID:          newID(),
		OwnerID:     ownerID,
		CompanyID:   company.ID,
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		ExactTitle:  strings.TrimSpace(in.ExactTitle),
		Category:    category,
		Seniority:   seniority,
		Location:    strings.TrimSpace(in.Location),
		Email:       strings.TrimSpace(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		LinkedInURL: strings.TrimSpace(in.LinkedInURL),
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
		CompanyName: company.Name,
	}
	if mid := strings.TrimSpace(in.ManagerID); mid != "" {
		if err := e.checkManager(ctx, r, ownerID, c, mid); err != nil {
			return domain.Contact{}, err
		}
		c.ManagerID = &mid
	}
	if err := r.InsertContact(ctx, c); err != nil {
		return domain.Contact{}, err
	}
	if err := e.Events.Append(ctx, tx, events.ContactCreated, ownerID, "contact", c.ID, events.EventPayload{"company_id": c.CompanyID}); err != nil {
		return domain.Contact{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Contact{}, err
	}
	return c, nil
}

func (e Engine) UpdateContact(ctx context.Context, ownerID, id string, p ContactPatch) (domain.Contact, error) {
	tx, r, err := e.begin(ctx, ownerID)
	if err != nil {
		return domain.Contact{}, err
	}
	defer tx.Rollback()
	c, err := r.GetContact(ctx, ownerID, id)
	if err != nil {
		return c, err
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&c.FirstName, p.FirstName)
	set(&c.LastName, p.LastName)
	set(&c.ExactTitle, p.ExactTitle)
	set(&c.Location, p.Location)
	set(&c.Email, p.Email)
	set(&c.Phone, p.Phone)
	set(&c.LinkedInURL, p.LinkedInURL)
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.Category != nil {
		if c.Category, err = normalizeEnum(taxonomy.ContactCategory, "category", *p.Category); err != nil {
			return c, err
		}
	}
	if p.Seniority != nil {
		if c.Seniority, err = normalizeEnum(taxonomy.Seniority, "seniority", *p.Seniority); err != nil {
			return c, err
		}
	}
	if p.ManagerID != nil {
		mid := strings.TrimSpace(*p.ManagerID)
		if mid == "" {
			c.ManagerID = nil
		} else {
			if err := e.checkManager(ctx, r, ownerID, c, mid); err != nil {
				return c, err
			}
			c.ManagerID = &mid
		}
	}
	c.UpdatedAt = e.stamp()
	if err := r.UpdateContact(ctx, c); err != nil {
		return c, err
	}
	if err := e.Events.Append(ctx, tx, events.ContactUpdated, ownerID, "contact", c.ID, nil); err != nil {
		return c, err
	}
	if err := tx.Commit(); err != nil {
		return c, err
	}
	return c, nil
}

// checkManager validates that managerID can manage c: same company, not c
// itself, and not one of c's reports.
func (e Engine) checkManager(ctx context.Context, r repo.Repo, ownerID string, c domain.Contact, managerID string) error {
	if managerID == c.ID {
		return invalid("manager_id", "a contact cannot be their own manager")
	}
	m, err := r.GetContact(ctx, ownerID, managerID)
	if err != nil {
		return refNotFound(err, "manager_id", managerID)
	}
	if m.CompanyID != c.CompanyID {
		return invalid("manager_id", "manager must work at the same company")
	}
	lookup := func(id string) (string, bool) {
		ct, err := r.GetContact(ctx, ownerID, id)
		if err != nil {
			return "", false
		}
		return deref(ct.ManagerID), true
	}
	if hierarchy.Reaches(managerID, c.ID, lookup) {
		return invalid("manager_id", "manager chain would form a cycle")
	}
	return nil
}

func (e Engine) DeleteContact(ctx context.Context, ownerID, id string) error {
	tx, r, err := e.begin(ctx, ownerID)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	c, err := r.GetContact(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := r.DeleteContact(ctx, ownerID, id); err != nil {
		return err
	}
	if err := e.Events.Append(ctx, tx, events.ContactDeleted, ownerID, "contact", id, events.EventPayload{"company_id": c.CompanyID}); err != nil {
		return err
	}
	return tx.Commit()
}

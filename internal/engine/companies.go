package engine

import (
	"context"
	"strings"

	"jobtrail/internal/domain"
	"jobtrail/internal/events"
	"jobtrail/internal/repo"
	"jobtrail/internal/taxonomy"
)

type CompanyInput struct {
	Name         string
	Type         string
	MainLocation string
	Website      string
	Notes        string
}

// CompanyPatch changes only the non-nil fields.
type CompanyPatch struct {
	Name         *string
	Type         *string
	MainLocation *string
	Website      *string
	Notes        *string
}

func (e Engine) CreateCompany(ctx context.Context, ownerID string, in CompanyInput) (domain.Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Company{}, invalid("name", "name is required")
	}
	typ, err := normalizeEnum(taxonomy.CompanyType, "type", in.Type)
	if err != nil {
		return domain.Company{}, err
	}
	if typ == "" {
		typ = taxonomy.CompanyOther
	}
	now := e.stamp()
	c := domain.Company{
		ID:           newID(),
		OwnerID:      ownerID,
		Name:         name,
		Type:         typ,
		MainLocation: strings.TrimSpace(in.MainLocation),
		Website:      strings.TrimSpace(in.Website),
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	tx, r, err := e.begin(ctx, ownerID)
	if err != nil {
		return domain.Company{}, err
	}
	defer tx.Rollback()
	if err := r.InsertCompany(ctx, c); err != nil {
		return domain.Company{}, err
	}
	if err := e.Events.Append(ctx, tx, events.CompanyCreated, ownerID, "company", c.ID, events.EventPayload{"name": c.Name, "type": c.Type}); err != nil {
		return domain.Company{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Company{}, err
	}
	return c, nil
}

func (e Engine) UpdateCompany(ctx context.Context, ownerID, id string, p CompanyPatch) (domain.Company, error) {
	tx, r, err := e.begin(ctx, ownerID)
	if err != nil {
		return domain.Company{}, err
	}
	defer tx.Rollback()
	c, err := r.GetCompany(ctx, ownerID, id)
	if err != nil {
		return c, err
	}
	original := c
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return c, invalid("name", "name is required")
		}
		c.Name = name
	}
	if p.Type != nil {
		typ, err := normalizeEnum(taxonomy.CompanyType, "type", *p.Type)
		if err != nil {
			return c, err
		}
		if typ == "" {
			typ = taxonomy.CompanyOther
		}
		if original.Type == taxonomy.CompanyRecruiter && typ != taxonomy.CompanyRecruiter {
			placed, err := r.ListInteractions(ctx, repo.InteractionFilters{OwnerID: ownerID, RecruiterID: id})
			if err != nil {
				return c, err
			}
			if len(placed) > 0 {
				return c, invalid("type", "company is the recruiter on %d interactions and must stay type Recruiter", len(placed))
			}
		}
		c.Type = typ
	}
	if p.MainLocation != nil {
		c.MainLocation = strings.TrimSpace(*p.MainLocation)
	}
	if p.Website != nil {
		c.Website = strings.TrimSpace(*p.Website)
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	c.UpdatedAt = e.stamp()
	if err := r.UpdateCompany(ctx, c); err != nil {
		return c, err
	}
	if err := e.Events.Append(ctx, tx, events.CompanyUpdated, ownerID, "company", c.ID, events.EventPayload{
		"from_type": original.Type,
		"to_type":   c.Type,
	}); err != nil {
		return c, err
	}
	if err := tx.Commit(); err != nil {
		return c, err
	}
	return c, nil
}

// DeleteCompany removes a company with its contacts, processes and
// interactions. Interactions it placed as recruiter become direct.
func (e Engine) DeleteCompany(ctx context.Context, ownerID, id string) error {
	tx, r, err := e.begin(ctx, ownerID)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	c, err := r.GetCompany(ctx, ownerID, id)
	if err != nil {
		return err
	}
	detached, err := r.DetachRecruiter(ctx, ownerID, id, e.stamp())
	if err != nil {
		return err
	}
	if err := r.DeleteCompany(ctx, ownerID, id); err != nil {
		return err
	}
	if err := e.Events.Append(ctx, tx, events.CompanyDeleted, ownerID, "company", id, events.EventPayload{
		"name":                  c.Name,
		"detached_interactions": detached,
	}); err != nil {
		return err
	}
	return tx.Commit()
}

// ListRecruiters returns the companies eligible as an interaction's recruiter.
func (e Engine) ListRecruiters(ctx context.Context, ownerID string) ([]domain.Company, error) {
	return e.Repo.ListCompanies(ctx, repo.CompanyFilters{OwnerID: ownerID, Type: taxonomy.CompanyRecruiter})
}

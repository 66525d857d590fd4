package repo

import (
	"context"
	"database/sql"
	"strings"

	"jobtrail/internal/domain"
	"jobtrail/internal/taxonomy"
)

type ContactFilters struct {
	OwnerID   string
	CompanyID string
}

const contactSelect = `SELECT c.id,c.owner_id,c.company_id,c.first_name,c.last_name,c.exact_title,c.category,c.seniority,
c.location,c.email,c.phone,c.linkedin_url,c.manager_id,c.notes,c.created_at,c.updated_at,COALESCE(co.name,'')
FROM contacts c LEFT JOIN companies co ON co.id=c.company_id`

func scanContact(s scanner) (domain.Contact, error) {
	var c domain.Contact
	var first, last, title, cat, sen, loc, email, phone, li, manager, notes sql.NullString
	err := s.Scan(&c.ID, &c.OwnerID, &c.CompanyID, &first, &last, &title, &cat, &sen,
		&loc, &email, &phone, &li, &manager, &notes, &c.CreatedAt, &c.UpdatedAt, &c.CompanyName)
	if err != nil {
		if err == sql.ErrNoRows {
			return c, ErrNotFound
		}
		return c, err
	}
	c.FirstName = first.String
	c.LastName = last.String
	c.ExactTitle = title.String
	c.Category = enumOut(taxonomy.ContactCategory, cat)
	c.Seniority = enumOut(taxonomy.Seniority, sen)
	c.Location = loc.String
	c.Email = email.String
	c.Phone = phone.String
	c.LinkedInURL = li.String
	c.ManagerID = stringPtr(manager)
	c.Notes = notes.String
	return c, nil
}

func (r Repo) InsertContact(ctx context.Context, c domain.Contact) error {
	_, err := r.q().ExecContext(ctx, `INSERT INTO contacts(id,owner_id,company_id,first_name,last_name,exact_title,category,seniority,location,email,phone,linkedin_url,manager_id,notes,created_at,updated_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		c.ID, c.OwnerID, c.CompanyID, nullable(c.FirstName), nullable(c.LastName), nullable(c.ExactTitle),
		enumIn(taxonomy.ContactCategory, c.Category), enumIn(taxonomy.Seniority, c.Seniority),
		nullable(c.Location), nullable(c.Email), nullable(c.Phone), nullable(c.LinkedInURL),
		nullableStringPtr(c.ManagerID), nullable(c.Notes), c.CreatedAt, c.UpdatedAt)
	return err
}

func (r Repo) GetContact(ctx context.Context, ownerID, id string) (domain.Contact, error) {
	return scanContact(r.q().QueryRowContext(ctx, contactSelect+` WHERE c.owner_id=? AND c.id=?`, ownerID, id))
}

// ListContacts orders by last then first name.
func (r Repo) ListContacts(ctx context.Context, f ContactFilters) ([]domain.Contact, error) {
	clauses := []string{"c.owner_id=?"}
	args := []any{f.OwnerID}
	if f.CompanyID != "" {
		clauses = append(clauses, "c.company_id=?")
		args = append(args, f.CompanyID)
	}
	rows, err := r.q().QueryContext(ctx, contactSelect+` WHERE `+strings.Join(clauses, " AND ")+
		` ORDER BY COALESCE(c.last_name,'') COLLATE NOCASE, COALESCE(c.first_name,'') COLLATE NOCASE, c.id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []domain.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r Repo) UpdateContact(ctx context.Context, c domain.Contact) error {
	res, err := r.q().ExecContext(ctx, `UPDATE contacts SET first_name=?,last_name=?,exact_title=?,category=?,seniority=?,location=?,email=?,phone=?,linkedin_url=?,manager_id=?,notes=?,updated_at=?
WHERE owner_id=? AND id=?`,
		nullable(c.FirstName), nullable(c.LastName), nullable(c.ExactTitle),
		enumIn(taxonomy.ContactCategory, c.Category), enumIn(taxonomy.Seniority, c.Seniority),
		nullable(c.Location), nullable(c.Email), nullable(c.Phone), nullable(c.LinkedInURL),
		nullableStringPtr(c.ManagerID), nullable(c.Notes), c.UpdatedAt, c.OwnerID, c.ID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r Repo) DeleteContact(ctx context.Context, ownerID, id string) error {
	res, err := r.q().ExecContext(ctx, `DELETE FROM contacts WHERE owner_id=? AND id=?`, ownerID, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

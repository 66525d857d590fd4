package repo

import (
	"context"
	"database/sql"
	"strings"

	"jobtrail/internal/domain"
	"jobtrail/internal/taxonomy"
)

type CompanyFilters struct {
	OwnerID string
	Type    string
}

const companyColumns = `id,owner_id,name,type,main_location,website,notes,created_at,updated_at`

func scanCompany(s scanner) (domain.Company, error) {
	var c domain.Company
	var typ, loc, site, notes sql.NullString
	if err := s.Scan(&c.ID, &c.OwnerID, &c.Name, &typ, &loc, &site, &notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return c, ErrNotFound
		}
		return c, err
	}
	c.Type = enumOut(taxonomy.CompanyType, typ)
	c.MainLocation = loc.String
	c.Website = site.String
	c.Notes = notes.String
	return c, nil
}

func (r Repo) InsertCompany(ctx context.Context, c domain.Company) error {
	_, err := r.q().ExecContext(ctx, `INSERT INTO companies(`+companyColumns+`) VALUES (?,?,?,?,?,?,?,?,?)`,
		c.ID, c.OwnerID, c.Name, taxonomy.CompanyType.ToInternal(c.Type), nullable(c.MainLocation), nullable(c.Website), nullable(c.Notes), c.CreatedAt, c.UpdatedAt)
	return err
}

func (r Repo) GetCompany(ctx context.Context, ownerID, id string) (domain.Company, error) {
	return scanCompany(r.q().QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE owner_id=? AND id=?`, ownerID, id))
}

// ListCompanies orders by name.
func (r Repo) ListCompanies(ctx context.Context, f CompanyFilters) ([]domain.Company, error) {
	clauses := []string{"owner_id=?"}
	args := []any{f.OwnerID}
	if f.Type != "" {
		clauses = append(clauses, "type=?")
		args = append(args, taxonomy.CompanyType.ToInternal(f.Type))
	}
	rows, err := r.q().QueryContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE `+strings.Join(clauses, " AND ")+` ORDER BY name COLLATE NOCASE ASC, id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []domain.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r Repo) UpdateCompany(ctx context.Context, c domain.Company) error {
	res, err := r.q().ExecContext(ctx, `UPDATE companies SET name=?,type=?,main_location=?,website=?,notes=?,updated_at=? WHERE owner_id=? AND id=?`,
		c.Name, taxonomy.CompanyType.ToInternal(c.Type), nullable(c.MainLocation), nullable(c.Website), nullable(c.Notes), c.UpdatedAt, c.OwnerID, c.ID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// DeleteCompany removes the company; contacts, processes and interactions
// cascade.
func (r Repo) DeleteCompany(ctx context.Context, ownerID, id string) error {
	res, err := r.q().ExecContext(ctx, `DELETE FROM companies WHERE owner_id=? AND id=?`, ownerID, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// DetachRecruiter turns interactions placed through recruiterID into direct
// ones and returns how many changed.
func (r Repo) DetachRecruiter(ctx context.Context, ownerID, recruiterID, updatedAt string) (int64, error) {
	res, err := r.q().ExecContext(ctx, `UPDATE interactions SET recruiter_id=NULL, source_type=?, updated_at=? WHERE owner_id=? AND recruiter_id=?`,
		taxonomy.SourceType.ToInternal(taxonomy.SourceDirect), updatedAt, ownerID, recruiterID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

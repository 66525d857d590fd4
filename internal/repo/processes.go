package repo

import (
	"context"
	"database/sql"
	"strings"

	"jobtrail/internal/domain"
	"jobtrail/internal/taxonomy"
)

type ProcessFilters struct {
	OwnerID   string
	CompanyID string
	Status    string
}

const processSelect = `SELECT p.id,p.owner_id,p.company_id,p.role_title,p.location,p.status,p.source_process_id,p.created_at,p.updated_at,
COALESCE(co.name,''),(SELECT COUNT(*) FROM interactions i WHERE i.process_id=p.id)
FROM processes p LEFT JOIN companies co ON co.id=p.company_id`

func scanProcess(s scanner) (domain.Process, error) {
	var p domain.Process
	var loc, status, source sql.NullString
	err := s.Scan(&p.ID, &p.OwnerID, &p.CompanyID, &p.RoleTitle, &loc, &status, &source, &p.CreatedAt, &p.UpdatedAt,
		&p.CompanyName, &p.InteractionCount)
	if err != nil {
		if err == sql.ErrNoRows {
			return p, ErrNotFound
		}
		return p, err
	}
	p.Location = loc.String
	p.Status = enumOut(taxonomy.ProcessStatus, status)
	p.SourceProcessID = stringPtr(source)
	return p, nil
}

func (r Repo) InsertProcess(ctx context.Context, p domain.Process) error {
	_, err := r.q().ExecContext(ctx, `INSERT INTO processes(id,owner_id,company_id,role_title,location,status,source_process_id,created_at,updated_at) VALUES (?,?,?,?,?,?,?,?,?)`,
		p.ID, p.OwnerID, p.CompanyID, p.RoleTitle, nullable(p.Location), taxonomy.ProcessStatus.ToInternal(p.Status),
		nullableStringPtr(p.SourceProcessID), p.CreatedAt, p.UpdatedAt)
	return err
}

func (r Repo) GetProcess(ctx context.Context, ownerID, id string) (domain.Process, error) {
	return scanProcess(r.q().QueryRowContext(ctx, processSelect+` WHERE p.owner_id=? AND p.id=?`, ownerID, id))
}

// ListProcesses orders by most recently updated.
func (r Repo) ListProcesses(ctx context.Context, f ProcessFilters) ([]domain.Process, error) {
	clauses := []string{"p.owner_id=?"}
	args := []any{f.OwnerID}
	if f.CompanyID != "" {
		clauses = append(clauses, "p.company_id=?")
		args = append(args, f.CompanyID)
	}
	if f.Status != "" {
		clauses = append(clauses, "p.status=?")
		args = append(args, taxonomy.ProcessStatus.ToInternal(f.Status))
	}
	return r.queryProcesses(ctx, processSelect+` WHERE `+strings.Join(clauses, " AND ")+` ORDER BY p.updated_at DESC, p.id DESC`, args...)
}

// ListChildProcesses returns processes whose source is parentID.
func (r Repo) ListChildProcesses(ctx context.Context, ownerID, parentID string) ([]domain.Process, error) {
	return r.queryProcesses(ctx, processSelect+` WHERE p.owner_id=? AND p.source_process_id=? ORDER BY p.created_at ASC, p.id ASC`, ownerID, parentID)
}

func (r Repo) queryProcesses(ctx context.Context, query string, args ...any) ([]domain.Process, error) {
	rows, err := r.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []domain.Process{}
	for rows.Next() {
		p, err := scanProcess(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (r Repo) UpdateProcess(ctx context.Context, p domain.Process) error {
	res, err := r.q().ExecContext(ctx, `UPDATE processes SET role_title=?,location=?,status=?,source_process_id=?,updated_at=? WHERE owner_id=? AND id=?`,
		p.RoleTitle, nullable(p.Location), taxonomy.ProcessStatus.ToInternal(p.Status), nullableStringPtr(p.SourceProcessID), p.UpdatedAt, p.OwnerID, p.ID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// UnlinkProcess clears references to a process from interactions and from
// processes it sourced.
func (r Repo) UnlinkProcess(ctx context.Context, ownerID, id, updatedAt string) error {
	if _, err := r.q().ExecContext(ctx, `UPDATE interactions SET process_id=NULL, updated_at=? WHERE owner_id=? AND process_id=?`, updatedAt, ownerID, id); err != nil {
		return err
	}
	_, err := r.q().ExecContext(ctx, `UPDATE processes SET source_process_id=NULL, updated_at=? WHERE owner_id=? AND source_process_id=?`, updatedAt, ownerID, id)
	return err
}

func (r Repo) DeleteProcess(ctx context.Context, ownerID, id string) error {
	res, err := r.q().ExecContext(ctx, `DELETE FROM processes WHERE owner_id=? AND id=?`, ownerID, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// TouchProcess bumps updated_at so the process sorts to the top.
func (r Repo) TouchProcess(ctx context.Context, ownerID, id, updatedAt string) error {
	_, err := r.q().ExecContext(ctx, `UPDATE processes SET updated_at=? WHERE owner_id=? AND id=?`, updatedAt, ownerID, id)
	return err
}

func (r Repo) InsertNote(ctx context.Context, n domain.ProcessNote) error {
	_, err := r.q().ExecContext(ctx, `INSERT INTO process_notes(id,owner_id,process_id,content,created_at) VALUES (?,?,?,?,?)`,
		n.ID, n.OwnerID, n.ProcessID, n.Content, n.CreatedAt)
	return err
}

func (r Repo) GetNote(ctx context.Context, ownerID, id string) (domain.ProcessNote, error) {
	var n domain.ProcessNote
	err := r.q().QueryRowContext(ctx, `SELECT id,owner_id,process_id,content,created_at FROM process_notes WHERE owner_id=? AND id=?`, ownerID, id).
		Scan(&n.ID, &n.OwnerID, &n.ProcessID, &n.Content, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return n, ErrNotFound
	}
	return n, err
}

// ListNotes returns a process's notes oldest first.
func (r Repo) ListNotes(ctx context.Context, ownerID, processID string) ([]domain.ProcessNote, error) {
	rows, err := r.q().QueryContext(ctx, `SELECT id,owner_id,process_id,content,created_at FROM process_notes WHERE owner_id=? AND process_id=? ORDER BY created_at ASC, rowid ASC`, ownerID, processID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []domain.ProcessNote{}
	for rows.Next() {
		var n domain.ProcessNote
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.ProcessID, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, rows.Err()
}

func (r Repo) DeleteNote(ctx context.Context, ownerID, id string) error {
	res, err := r.q().ExecContext(ctx, `DELETE FROM process_notes WHERE owner_id=? AND id=?`, ownerID, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

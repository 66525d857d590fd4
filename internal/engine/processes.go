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

type ProcessInput struct {
	CompanyID       string
	RoleTitle       string
	Location        string
	Status          string
	SourceProcessID string
}

// ProcessPatch changes only the non-nil fields. An empty SourceProcessID
// clears the link.
type ProcessPatch struct {
	RoleTitle       *string
	Location        *string
	Status          *string
	SourceProcessID *string
}

func (e Engine) CreateProcess(ctx context.Context, ownerID string, in ProcessInput) (domain.Process, error) {
	if strings.TrimSpace(in.CompanyID) == "" {
		return domain.Process{}, invalid("company_id", "company_id is required")
	}
	role := strings.TrimSpace(in.RoleTitle)
	if role == "" {
		return domain.Process{}, invalid("role_title", "role_title is required")
	}
	status, err := normalizeEnum(taxonomy.ProcessStatus, "status", in.Status)
	if err != nil {
		return domain.Process{}, err
	}
	if status == "" {
		status = taxonomy.ProcessActive
	}
	tx, r, err := e.begin(ctx, ownerID)
	if err != nil {
		return domain.Process{}, err
	}
	defer tx.Rollback()
	company, err := r.GetCompany(ctx, ownerID, in.CompanyID)
	if err != nil {
		return domain.Process{}, refNotFound(err, "company_id", in.CompanyID)
	}
	now := e.stamp()
	p := domain.Process{
		ID:          newID(),
		OwnerID:     ownerID,
		CompanyID:   company.ID,
		RoleTitle:   role,
		Location:    strings.TrimSpace(in.Location),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
		CompanyName: company.Name,
	}
	if src := strings.TrimSpace(in.SourceProcessID); src != "" {
		if _, err := r.GetProcess(ctx, ownerID, src); err != nil {
			return domain.Process{}, refNotFound(err, "source_process_id", src)
		}
		p.SourceProcessID = &src
	}
	if err := r.InsertProcess(ctx, p); err != nil {
		return domain.Process{}, err
	}
	if err := e.Events.Append(ctx, tx, events.ProcessCreated, ownerID, "process", p.ID, events.EventPayload{
		"company_id": p.CompanyID,
		"status":     p.Status,
	}); err != nil {
		return domain.Process{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Process{}, err
	}
	return p, nil
}

func (e Engine) UpdateProcess(ctx context.Context, ownerID, id string, patch ProcessPatch) (domain.Process, error) {
	tx, r, err := e.begin(ctx, ownerID)
	if err != nil {
		return domain.Process{}, err
	}
	defer tx.Rollback()
	p, err := r.GetProcess(ctx, ownerID, id)
	if err != nil {
		return p, err
	}
	fromStatus := p.Status
	if patch.RoleTitle != nil {
		role := strings.TrimSpace(*patch.RoleTitle)
		if role == "" {
			return p, invalid("role_title", "role_title is required")
		}
		p.RoleTitle = role
	}
	if patch.Location != nil {
		p.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.Status != nil {
		status, err := normalizeEnum(taxonomy.ProcessStatus, "status", *patch.Status)
		if err != nil {
			return p, err
		}
		if status == "" {
			status = taxonomy.ProcessActive
		}
		p.Status = status
	}
	if patch.SourceProcessID != nil {
		src := strings.TrimSpace(*patch.SourceProcessID)
		switch {
		case src == "":
			p.SourceProcessID = nil
		case src == p.ID:
			return p, invalid("source_process_id", "a process cannot be its own source")
		default:
			if _, err := r.GetProcess(ctx, ownerID, src); err != nil {
				return p, refNotFound(err, "source_process_id", src)
			}
			lookup := func(pid string) (string, bool) {
				sp, err := r.GetProcess(ctx, ownerID, pid)
				if err != nil {
					return "", false
				}
				return deref(sp.SourceProcessID), true
			}
			if hierarchy.Reaches(src, p.ID, lookup) {
				return p, invalid("source_process_id", "source link would form a cycle")
			}
			p.SourceProcessID = &src
		}
	}
	p.UpdatedAt = e.stamp()
	if err := r.UpdateProcess(ctx, p); err != nil {
		return p, err
	}
	if err := e.Events.Append(ctx, tx, events.ProcessUpdated, ownerID, "process", p.ID, events.EventPayload{
		"from_status": fromStatus,
		"to_status":   p.Status,
	}); err != nil {
		return p, err
	}
	if err := tx.Commit(); err != nil {
		return p, err
	}
	return p, nil
}

// DeleteProcess removes a process and its notes. Interactions and processes
// that pointed at it keep existing without the link.
func (e Engine) DeleteProcess(ctx context.Context, ownerID, id string) error {
	tx, r, err := e.begin(ctx, ownerID)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := r.GetProcess(ctx, ownerID, id); err != nil {
		return err
	}
	if err := r.UnlinkProcess(ctx, ownerID, id, e.stamp()); err != nil {
		return err
	}
	if err := r.DeleteProcess(ctx, ownerID, id); err != nil {
		return err
	}
	if err := e.Events.Append(ctx, tx, events.ProcessDeleted, ownerID, "process", id, nil); err != nil {
		return err
	}
	return tx.Commit()
}

func (e Engine) AddProcessNote(ctx context.Context, ownerID, processID, content string) (domain.ProcessNote, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.ProcessNote{}, invalid("content", "note content is required")
	}
	tx, r, err := e.begin(ctx, ownerID)
	if err != nil {
		return domain.ProcessNote{}, err
	}
	defer tx.Rollback()
	if _, err := r.GetProcess(ctx, ownerID, processID); err != nil {
		return domain.ProcessNote{}, err
	}
	now := e.stamp()
	n := domain.ProcessNote{
		ID:        newID(),
		OwnerID:   ownerID,
		ProcessID: processID,
		Content:   content,
		CreatedAt: now,
	}
	if err := r.InsertNote(ctx, n); err != nil {
		return domain.ProcessNote{}, err
	}
	if err := r.TouchProcess(ctx, ownerID, processID, now); err != nil {
		return domain.ProcessNote{}, err
	}
	if err := e.Events.Append(ctx, tx, events.NoteAdded, ownerID, "process", processID, events.EventPayload{"note_id": n.ID}); err != nil {
		return domain.ProcessNote{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.ProcessNote{}, err
	}
	return n, nil
}

func (e Engine) DeleteProcessNote(ctx context.Context, ownerID, processID, noteID string) error {
	tx, r, err := e.begin(ctx, ownerID)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	n, err := r.GetNote(ctx, ownerID, noteID)
	if err != nil {
		return err
	}
	if n.ProcessID != processID {
		return repo.ErrNotFound
	}
	if err := r.DeleteNote(ctx, ownerID, noteID); err != nil {
		return err
	}
	if err := e.Events.Append(ctx, tx, events.NoteDeleted, ownerID, "process", processID, events.EventPayload{"note_id": noteID}); err != nil {
		return err
	}
	return tx.Commit()
}

package repo

import (
	"context"
	"database/sql"
	"strings"

	"jobtrail/internal/domain"
	"jobtrail/internal/taxonomy"
)

type InteractionFilters struct {
	OwnerID     string
	CompanyID   string
	ContactID   string
	ProcessID   string
	RecruiterID string
	Status      string
	SourceType  string
}

const interactionSelect = `SELECT i.id,i.owner_id,i.company_id,i.contact_id,i.recruiter_id,i.process_id,i.parent_interaction_id,
i.date_sent,i.next_follow_up_date,i.last_update,i.status,i.priority,i.global_category,i.type,i.stage,i.outcome,
i.source_type,i.completed,i.role_title,i.comment,i.created_at,i.updated_at,
COALESCE(co.name,''),TRIM(COALESCE(ct.first_name,'')||' '||COALESCE(ct.last_name,'')),COALESCE(rc.name,'')
FROM interactions i
LEFT JOIN companies co ON co.id=i.company_id
LEFT JOIN contacts ct ON ct.id=i.contact_id
LEFT JOIN companies rc ON rc.id=i.recruiter_id`

func scanInteraction(s scanner) (domain.Interaction, error) {
	var i domain.Interaction
	var recruiter, process, parent, sent, next, last sql.NullString
	var status, priority, category, typ, stage, outcome, source, role, comment sql.NullString
	var completed int
	err := s.Scan(&i.ID, &i.OwnerID, &i.CompanyID, &i.ContactID, &recruiter, &process, &parent,
		&sent, &next, &last, &status, &priority, &category, &typ, &stage, &outcome,
		&source, &completed, &role, &comment, &i.CreatedAt, &i.UpdatedAt,
		&i.CompanyName, &i.ContactName, &i.RecruiterName)
	if err != nil {
		if err == sql.ErrNoRows {
			return i, ErrNotFound
		}
		return i, err
	}
	i.RecruiterID = stringPtr(recruiter)
	i.ProcessID = stringPtr(process)
	i.ParentInteractionID = stringPtr(parent)
	i.DateSent = stringPtr(sent)
	i.NextFollowUpDate = stringPtr(next)
	i.LastUpdate = stringPtr(last)
	i.Status = enumOut(taxonomy.InteractionStatus, status)
	i.Priority = enumOut(taxonomy.Priority, priority)
	i.GlobalCategory = enumOut(taxonomy.GlobalCategory, category)
	i.Type = enumOut(taxonomy.InteractionType, typ)
	i.Stage = enumOut(taxonomy.Stage, stage)
	i.Outcome = enumOut(taxonomy.Outcome, outcome)
	i.SourceType = enumOut(taxonomy.SourceType, source)
	i.Completed = completed != 0
	i.RoleTitle = role.String
	i.Comment = comment.String
	return i, nil
}

func interactionArgs(i domain.Interaction) []any {
	completed := 0
	if i.Completed {
		completed = 1
	}
	return []any{
		nullableStringPtr(i.RecruiterID), nullableStringPtr(i.ProcessID), nullableStringPtr(i.ParentInteractionID),
		nullableStringPtr(i.DateSent), nullableStringPtr(i.NextFollowUpDate), nullableStringPtr(i.LastUpdate),
		taxonomy.InteractionStatus.ToInternal(i.Status),
		enumIn(taxonomy.Priority, i.Priority),
		enumIn(taxonomy.GlobalCategory, i.GlobalCategory),
		enumIn(taxonomy.InteractionType, i.Type),
		enumIn(taxonomy.Stage, i.Stage),
		enumIn(taxonomy.Outcome, i.Outcome),
		taxonomy.SourceType.ToInternal(i.SourceType),
		completed, nullable(i.RoleTitle), nullable(i.Comment),
	}
}

func (r Repo) InsertInteraction(ctx context.Context, i domain.Interaction) error {
	args := append([]any{i.ID, i.OwnerID, i.CompanyID, i.ContactID}, interactionArgs(i)...)
	args = append(args, i.CreatedAt, i.UpdatedAt)
	_, err := r.q().ExecContext(ctx, `INSERT INTO interactions(id,owner_id,company_id,contact_id,recruiter_id,process_id,parent_interaction_id,
date_sent,next_follow_up_date,last_update,status,priority,global_category,type,stage,outcome,source_type,completed,role_title,comment,created_at,updated_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`, args...)
	return err
}

func (r Repo) GetInteraction(ctx context.Context, ownerID, id string) (domain.Interaction, error) {
	return scanInteraction(r.q().QueryRowContext(ctx, interactionSelect+` WHERE i.owner_id=? AND i.id=?`, ownerID, id))
}

// ListInteractions orders by date sent, newest first; undated rows last.
func (r Repo) ListInteractions(ctx context.Context, f InteractionFilters) ([]domain.Interaction, error) {
	clauses := []string{"i.owner_id=?"}
	args := []any{f.OwnerID}
	add := func(clause string, v any) {
		clauses = append(clauses, clause)
		args = append(args, v)
	}
	if f.CompanyID != "" {
		add("i.company_id=?", f.CompanyID)
	}
	if f.ContactID != "" {
		add("i.contact_id=?", f.ContactID)
	}
	if f.ProcessID != "" {
		add("i.process_id=?", f.ProcessID)
	}
	if f.RecruiterID != "" {
		add("i.recruiter_id=?", f.RecruiterID)
	}
	if f.Status != "" {
		add("i.status=?", taxonomy.InteractionStatus.ToInternal(f.Status))
	}
	if f.SourceType != "" {
		add("i.source_type=?", taxonomy.SourceType.ToInternal(f.SourceType))
	}
	query := interactionSelect + ` WHERE ` + strings.Join(clauses, " AND ") +
		` ORDER BY i.date_sent IS NULL, i.date_sent DESC, i.created_at DESC, i.id DESC`
	rows, err := r.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []domain.Interaction{}
	for rows.Next() {
		i, err := scanInteraction(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, i)
	}
	return res, rows.Err()
}

func (r Repo) UpdateInteraction(ctx context.Context, i domain.Interaction) error {
	args := append([]any{i.CompanyID, i.ContactID}, interactionArgs(i)...)
	args = append(args, i.UpdatedAt, i.OwnerID, i.ID)
	res, err := r.q().ExecContext(ctx, `UPDATE interactions SET company_id=?,contact_id=?,recruiter_id=?,process_id=?,parent_interaction_id=?,
date_sent=?,next_follow_up_date=?,last_update=?,status=?,priority=?,global_category=?,type=?,stage=?,outcome=?,source_type=?,completed=?,role_title=?,comment=?,updated_at=?
WHERE owner_id=? AND id=?`, args...)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// DeleteInteraction removes the row and promotes its direct follow-ups to
// top-level interactions.
func (r Repo) DeleteInteraction(ctx context.Context, ownerID, id string) error {
	if _, err := r.q().ExecContext(ctx, `UPDATE interactions SET parent_interaction_id=NULL WHERE owner_id=? AND parent_interaction_id=?`, ownerID, id); err != nil {
		return err
	}
	res, err := r.q().ExecContext(ctx, `DELETE FROM interactions WHERE owner_id=? AND id=?`, ownerID, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// InteractionParent returns the parent id of an interaction, "" for roots.
func (r Repo) InteractionParent(ctx context.Context, ownerID, id string) (string, error) {
	var parent sql.NullString
	err := r.q().QueryRowContext(ctx, `SELECT parent_interaction_id FROM interactions WHERE owner_id=? AND id=?`, ownerID, id).Scan(&parent)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return parent.String, err
}

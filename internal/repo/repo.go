package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"jobtrail/internal/domain"
	"jobtrail/internal/taxonomy"
)

// Repo reads and writes owner-scoped rows. Enum columns hold canonical
// values; every method takes and returns display labels.
type Repo struct {
	DB *sql.DB
	tx *sql.Tx
}

var ErrNotFound = errors.New("not found")

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// WithTx returns a Repo whose statements run inside tx.
func (r Repo) WithTx(tx *sql.Tx) Repo {
	r.tx = tx
	return r
}

func (r Repo) q() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.DB
}

// EnsureUser creates the owner row on first use.
func (r Repo) EnsureUser(ctx context.Context, id, createdAt string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("owner id required")
	}
	_, err := r.q().ExecContext(ctx, `INSERT INTO users(id,created_at) VALUES (?,?) ON CONFLICT(id) DO NOTHING`, id, createdAt)
	return err
}

func (r Repo) GetUser(ctx context.Context, id string) (domain.User, error) {
	var u domain.User
	err := r.q().QueryRowContext(ctx, `SELECT id,created_at FROM users WHERE id=?`, id).Scan(&u.ID, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// LatestEvents returns the newest events first.
func (r Repo) LatestEvents(ctx context.Context, ownerID string, limit int, evtType, entityKind, entityID string) ([]domain.Event, error) {
	return r.LatestEventsFrom(ctx, ownerID, limit, 0, evtType, entityKind, entityID)
}

// LatestEventsFrom pages backwards from cursorID (exclusive) when set.
func (r Repo) LatestEventsFrom(ctx context.Context, ownerID string, limit int, cursorID int64, evtType, entityKind, entityID string) ([]domain.Event, error) {
	clauses := []string{"owner_id=?"}
	args := []any{ownerID}
	if cursorID > 0 {
		clauses = append(clauses, "id < ?")
		args = append(args, cursorID)
	}
	if evtType != "" {
		clauses = append(clauses, "type=?")
		args = append(args, evtType)
	}
	if entityKind != "" {
		clauses = append(clauses, "entity_kind=?")
		args = append(args, entityKind)
	}
	if entityID != "" {
		clauses = append(clauses, "entity_id=?")
		args = append(args, entityID)
	}
	query := `SELECT id,ts,type,owner_id,entity_kind,COALESCE(entity_id,''),payload_json FROM events WHERE ` +
		strings.Join(clauses, " AND ") + ` ORDER BY id DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return r.queryEvents(ctx, query, args...)
}

// EventsAfter returns events with id greater than afterID, oldest first.
func (r Repo) EventsAfter(ctx context.Context, ownerID string, limit int, afterID int64) ([]domain.Event, error) {
	query := `SELECT id,ts,type,owner_id,entity_kind,COALESCE(entity_id,''),payload_json FROM events WHERE owner_id=? AND id > ? ORDER BY id ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return r.queryEvents(ctx, query, ownerID, afterID)
}

// LatestEventID returns 0 when the owner has no events.
func (r Repo) LatestEventID(ctx context.Context, ownerID string) (int64, error) {
	var id sql.NullInt64
	if err := r.q().QueryRowContext(ctx, `SELECT MAX(id) FROM events WHERE owner_id=?`, ownerID).Scan(&id); err != nil {
		return 0, err
	}
	return id.Int64, nil
}

func (r Repo) queryEvents(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := r.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []domain.Event{}
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.TS, &e.Type, &e.OwnerID, &e.EntityKind, &e.EntityID, &e.Payload); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func nullableStringPtr(v *string) any {
	if v == nil || *v == "" {
		return nil
	}
	return *v
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	s := ns.String
	return &s
}

// enumIn converts a label to its stored form; empty stays NULL.
func enumIn(f *taxonomy.Family, label string) any {
	if label == "" {
		return nil
	}
	return f.ToInternal(label)
}

func enumOut(f *taxonomy.Family, ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return f.ToExternal(ns.String)
}

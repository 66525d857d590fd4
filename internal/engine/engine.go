package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobtrail/internal/config"
	"jobtrail/internal/events"
	"jobtrail/internal/followup"
	"jobtrail/internal/recruiter"
	"jobtrail/internal/repo"
	"jobtrail/internal/taxonomy"
)

type Engine struct {
	DB     *sql.DB
	Repo   repo.Repo
	Events events.Writer
	Config *config.Config
	Now    func() time.Time
}

func New(db *sql.DB, cfg *config.Config) Engine {
	return Engine{
		DB:     db,
		Repo:   repo.Repo{DB: db},
		Events: events.Writer{DB: db},
		Config: cfg,
		Now:    time.Now,
	}
}

func (e Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e Engine) stamp() string {
	return e.now().UTC().Format(time.RFC3339)
}

// ValidationError reports input that breaks a write rule.
type ValidationError struct {
	Field   string
	Message string
}

func (v ValidationError) Error() string { return v.Message }

func invalid(field, format string, args ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

// EnsureOwner registers an owner id.
func (e Engine) EnsureOwner(ctx context.Context, ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return invalid("owner_id", "owner id is required")
	}
	return e.Repo.EnsureUser(ctx, ownerID, e.stamp())
}

// begin opens a transaction and registers the owner inside it.
func (e Engine) begin(ctx context.Context, ownerID string) (*sql.Tx, repo.Repo, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, repo.Repo{}, invalid("owner_id", "owner id is required")
	}
	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, repo.Repo{}, err
	}
	r := e.Repo.WithTx(tx)
	if err := r.EnsureUser(ctx, ownerID, e.stamp()); err != nil {
		tx.Rollback()
		return nil, repo.Repo{}, fmt.Errorf("ensure owner: %w", err)
	}
	return tx, r, nil
}

// recruiterLimit is the configured ranking size. Negative means no limit.
func (e Engine) recruiterLimit() int {
	if e.Config == nil {
		return recruiter.DefaultTopN
	}
	if e.Config.Dashboard.RecruiterTopN == 0 {
		return -1
	}
	return e.Config.Dashboard.RecruiterTopN
}

func (e Engine) windowDays() int {
	if e.Config == nil {
		return 0
	}
	return e.Config.Dashboard.UpcomingWindowDays
}

func newID() string {
	return uuid.NewString()
}

// normalizeEnum accepts a display label or its stored form and returns the
// label. Empty input stays empty.
func normalizeEnum(f *taxonomy.Family, field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	label := f.ToExternal(f.ToInternal(v))
	if !f.IsExternal(label) {
		return "", invalid(field, "invalid %s %q (expected one of: %s)", field, v, strings.Join(f.Externals(), ", "))
	}
	return label, nil
}

// normalizeDate validates a YYYY-MM-DD date. Empty input yields nil.
func normalizeDate(field, v string) (*string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, ok := followup.ParseDate(v)
	if !ok {
		return nil, invalid(field, "invalid %s %q (expected YYYY-MM-DD)", field, v)
	}
	s := followup.FormatDate(t)
	return &s, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// refNotFound turns a missing referenced row into a validation error.
func refNotFound(err error, field, id string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return invalid(field, "%s %s not found", field, id)
	}
	return err
}

package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Event types appended by the engine.
const (
	CompanyCreated     = "company.created"
	CompanyUpdated     = "company.updated"
	CompanyDeleted     = "company.deleted"
	ContactCreated     = "contact.created"
	ContactUpdated     = "contact.updated"
	ContactDeleted     = "contact.deleted"
	ProcessCreated     = "process.created"
	ProcessUpdated     = "process.updated"
	ProcessDeleted     = "process.deleted"
	NoteAdded          = "process.note.added"
	NoteDeleted        = "process.note.deleted"
	InteractionCreated = "interaction.created"
	InteractionUpdated = "interaction.updated"
	InteractionDeleted = "interaction.deleted"
	APIKeyCreated      = "apikey.created"
	APIKeyDeleted      = "apikey.deleted"
)

type Writer struct {
	DB  *sql.DB
	Now func() time.Time
}

type EventPayload map[string]any

func (w Writer) Append(ctx context.Context, tx *sql.Tx, evtType, ownerID, entityKind, entityID string, payload EventPayload) error {
	if w.Now == nil {
		w.Now = time.Now
	}
	ts := w.Now().UTC().Format(time.RFC3339)
	if payload == nil {
		payload = EventPayload{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO events(ts,type,owner_id,entity_kind,entity_id,payload_json) VALUES (?,?,?,?,?,?)`,
		ts, evtType, ownerID, entityKind, nullable(entityID), string(data))
	return err
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}

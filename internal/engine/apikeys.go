package engine

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"jobtrail/internal/domain"
	"jobtrail/internal/events"
	"jobtrail/internal/repo"
)

const apiKeyPrefix = "jt_"

// CreateAPIKey stores a new key for ownerID and returns the plaintext. The
// plaintext is not recoverable afterwards.
func (e Engine) CreateAPIKey(ctx context.Context, ownerID, name string) (domain.APIKey, string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return domain.APIKey{}, "", err
	}
	plain := apiKeyPrefix + hex.EncodeToString(buf)
	key := domain.APIKey{
		ID:        newID(),
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(name),
		KeyHash:   repo.HashAPIKey(plain),
		CreatedAt: e.stamp(),
	}
	tx, r, err := e.begin(ctx, ownerID)
	if err != nil {
		return domain.APIKey{}, "", err
	}
	defer tx.Rollback()
	if err := r.InsertAPIKey(ctx, key); err != nil {
		return domain.APIKey{}, "", err
	}
	if err := e.Events.Append(ctx, tx, events.APIKeyCreated, ownerID, "apikey", key.ID, events.EventPayload{"name": key.Name}); err != nil {
		return domain.APIKey{}, "", err
	}
	if err := tx.Commit(); err != nil {
		return domain.APIKey{}, "", err
	}
	return key, plain, nil
}

func (e Engine) DeleteAPIKey(ctx context.Context, ownerID, id string) error {
	tx, r, err := e.begin(ctx, ownerID)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := r.DeleteAPIKey(ctx, ownerID, id); err != nil {
		return err
	}
	if err := e.Events.Append(ctx, tx, events.APIKeyDeleted, ownerID, "apikey", id, nil); err != nil {
		return err
	}
	return tx.Commit()
}

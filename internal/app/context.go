package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobtrail/internal/config"
	"jobtrail/internal/repo"
)

// DefaultOwner is used when neither a flag nor jobtrail.yml names an owner.
const DefaultOwner = "local-user"

// ResolveOwnerAndConfig loads jobtrail.yml when present, falling back to
// defaults, and picks the active owner: override first, then config, then
// DefaultOwner. The owner is registered in the database.
func ResolveOwnerAndConfig(ctx context.Context, workspace, ownerOverride string, r repo.Repo) (string, *config.Config, error) {
	cfg, err := config.LoadOptional(workspace)
	if err != nil {
		return "", nil, fmt.Errorf("load config: %w", err)
	}
	ownerID := strings.TrimSpace(ownerOverride)
	if cfg != nil && ownerID == "" {
		ownerID = cfg.Owner.ID
	}
	if ownerID == "" {
		ownerID = DefaultOwner
	}
	if cfg == nil {
		cfg = config.Default(ownerID)
	}
	cfg.Owner.ID = ownerID
	if err := r.EnsureUser(ctx, ownerID, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return "", nil, fmt.Errorf("ensure owner: %w", err)
	}
	return ownerID, cfg, nil
}

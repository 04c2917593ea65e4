package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository stores audit events in Postgres
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Persist(ctx context.Context, event Event) error {
	query := `
		INSERT INTO audit_events (
			event_type, service, environment, level,
			actor_id, actor_role, entity_type, entity_id,
			request_id, details, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	detailsJSON := []byte("null")
	if len(event.Details) > 0 {
		detailsJSON, _ = json.Marshal(event.Details)
	}

	var entityID any
	if event.EntityID != 0 {
		entityID = event.EntityID
	}

	_, err := r.db.Exec(ctx, query,
		string(event.Event),
		event.Service,
		event.Environment,
		event.Level,
		event.ActorID,
		event.ActorRole,
		event.EntityType,
		entityID,
		event.RequestID,
		detailsJSON,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to persist audit event: %w", err)
	}
	return nil
}

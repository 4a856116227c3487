package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Create(ctx context.Context, ev *Event) error {
	obs, err := json.Marshal(ev.Obs)
	if err != nil {
		return fmt.Errorf("marshal obs: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO plan_event (form_submission_id, base_entity_id, event_type, provider_id, version, obs)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		ev.FormSubmissionID, ev.BaseEntityID, ev.EventType, ev.ProviderID, ev.Version, obs)
	return err
}

func (r *repoPG) GetByFormSubmissionID(ctx context.Context, id string) (*Event, error) {
	var ev Event
	var obs []byte
	err := r.pool.QueryRow(ctx, `
		SELECT form_submission_id, base_entity_id, event_type, provider_id, version, obs
		FROM plan_event WHERE form_submission_id = $1`, id).
		Scan(&ev.FormSubmissionID, &ev.BaseEntityID, &ev.EventType, &ev.ProviderID, &ev.Version, &obs)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(obs, &ev.Obs); err != nil {
		return nil, fmt.Errorf("unmarshal obs: %w", err)
	}
	ev.Type = "Event"
	return &ev, nil
}

func (r *repoPG) ListByBaseEntity(ctx context.Context, baseEntityID string) ([]*Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT form_submission_id, base_entity_id, event_type, provider_id, version, obs
		FROM plan_event WHERE base_entity_id = $1 ORDER BY version DESC`, baseEntityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Event
	for rows.Next() {
		var ev Event
		var obs []byte
		if err := rows.Scan(&ev.FormSubmissionID, &ev.BaseEntityID, &ev.EventType, &ev.ProviderID, &ev.Version, &obs); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(obs, &ev.Obs); err != nil {
			return nil, fmt.Errorf("unmarshal obs: %w", err)
		}
		ev.Type = "Event"
		items = append(items, &ev)
	}
	return items, nil
}

package plan

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

// The full wire payload is stored as JSONB; identifier, intervention type
// and status are lifted into columns for filtering.
func (r *repoPG) Create(ctx context.Context, p *PlanDefinition) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO plan_definition (identifier, intervention_type, status, plan_date, payload)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (identifier) DO UPDATE
		SET intervention_type = EXCLUDED.intervention_type,
			status = EXCLUDED.status,
			plan_date = EXCLUDED.plan_date,
			payload = EXCLUDED.payload,
			updated_at = NOW()`,
		p.Identifier, string(p.InterventionType()), string(p.Status), p.Date, payload)
	return err
}

func (r *repoPG) Update(ctx context.Context, p *PlanDefinition) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE plan_definition
		SET intervention_type=$2, status=$3, plan_date=$4, payload=$5, updated_at=NOW()
		WHERE identifier = $1`,
		p.Identifier, string(p.InterventionType()), string(p.Status), p.Date, payload)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("plan %s not found", p.Identifier)
	}
	return err
}

func (r *repoPG) GetByIdentifier(ctx context.Context, identifier string) (*PlanDefinition, error) {
	var payload []byte
	err := r.pool.QueryRow(ctx,
		`SELECT payload FROM plan_definition WHERE identifier = $1`, identifier).Scan(&payload)
	if err != nil {
		return nil, err
	}
	return unmarshalPlan(payload)
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*PlanDefinition, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM plan_definition`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT payload FROM plan_definition ORDER BY plan_date DESC, identifier LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := scanPlans(rows)
	return items, total, err
}

func (r *repoPG) ListByInterventionType(ctx context.Context, it InterventionType, limit, offset int) ([]*PlanDefinition, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM plan_definition WHERE intervention_type = $1`, string(it)).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT payload FROM plan_definition WHERE intervention_type = $1
		ORDER BY plan_date DESC, identifier LIMIT $2 OFFSET $3`,
		string(it), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := scanPlans(rows)
	return items, total, err
}

func (r *repoPG) ReplaceAll(ctx context.Context, plans []*PlanDefinition) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE plan_definition`); err != nil {
		return err
	}
	for _, p := range plans {
		payload, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal plan %s: %w", p.Identifier, err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO plan_definition (identifier, intervention_type, status, plan_date, payload)
			VALUES ($1,$2,$3,$4,$5)`,
			p.Identifier, string(p.InterventionType()), string(p.Status), p.Date, payload); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func unmarshalPlan(payload []byte) (*PlanDefinition, error) {
	var p PlanDefinition
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	return &p, nil
}

func scanPlans(rows pgx.Rows) ([]*PlanDefinition, error) {
	var items []*PlanDefinition
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		p, err := unmarshalPlan(payload)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

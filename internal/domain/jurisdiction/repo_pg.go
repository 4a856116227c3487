package jurisdiction

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Upsert(ctx context.Context, j *Jurisdiction) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO jurisdiction (id, name, parent_id)
		VALUES ($1,$2,$3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, parent_id = EXCLUDED.parent_id`,
		j.ID, j.Name, j.ParentID)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id string) (*Jurisdiction, error) {
	var j Jurisdiction
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, parent_id FROM jurisdiction WHERE id = $1`, id).
		Scan(&j.ID, &j.Name, &j.ParentID)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *repoPG) ListAll(ctx context.Context) ([]Jurisdiction, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, parent_id FROM jurisdiction ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Jurisdiction
	for rows.Next() {
		var j Jurisdiction
		if err := rows.Scan(&j.ID, &j.Name, &j.ParentID); err != nil {
			return nil, err
		}
		items = append(items, j)
	}
	return items, rows.Err()
}

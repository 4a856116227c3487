package jurisdiction

import "context"

type Repository interface {
	Upsert(ctx context.Context, j *Jurisdiction) error
	GetByID(ctx context.Context, id string) (*Jurisdiction, error)
	ListAll(ctx context.Context) ([]Jurisdiction, error)
}

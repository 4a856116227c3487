package event

import "context"

type Repository interface {
	Create(ctx context.Context, ev *Event) error
	GetByFormSubmissionID(ctx context.Context, id string) (*Event, error)
	ListByBaseEntity(ctx context.Context, baseEntityID string) ([]*Event, error)
}

package plan

import "context"

// Repository is the keyed-by-identifier store of wire-format plans. It
// supports upsert of one record, wholesale replacement, and lookup by
// identifier or intervention type.
type Repository interface {
	Create(ctx context.Context, p *PlanDefinition) error
	Update(ctx context.Context, p *PlanDefinition) error
	GetByIdentifier(ctx context.Context, identifier string) (*PlanDefinition, error)
	List(ctx context.Context, limit, offset int) ([]*PlanDefinition, int, error)
	ListByInterventionType(ctx context.Context, it InterventionType, limit, offset int) ([]*PlanDefinition, int, error)
	ReplaceAll(ctx context.Context, plans []*PlanDefinition) error
}

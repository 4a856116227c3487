package plan

import (
	"context"
	"fmt"

	"github.com/opensrp/plan-service/internal/domain/event"
)

type Service struct {
	plans  Repository
	events *event.Service
}

func NewService(plans Repository, events *event.Service) *Service {
	return &Service{plans: plans, events: events}
}

func (s *Service) validate(p *PlanDefinition) error {
	if p.Identifier == "" {
		return fmt.Errorf("identifier is required")
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if !ValidStatus(p.Status) {
		return fmt.Errorf("invalid status: %s", p.Status)
	}
	if it := p.InterventionType(); !ValidInterventionType(it) {
		return fmt.Errorf("invalid intervention type: %s", it)
	}
	// Every action must point at a goal carried by the same plan.
	for _, a := range p.Action {
		if a.GoalID == "" {
			continue
		}
		if p.GoalByID(a.GoalID) == nil {
			return fmt.Errorf("action %s references unknown goal %s", a.Identifier, a.GoalID)
		}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, p *PlanDefinition) error {
	if err := s.validate(p); err != nil {
		return err
	}
	return s.plans.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, p *PlanDefinition) error {
	if err := s.validate(p); err != nil {
		return err
	}
	return s.plans.Update(ctx, p)
}

func (s *Service) GetByIdentifier(ctx context.Context, identifier string) (*PlanDefinition, error) {
	return s.plans.GetByIdentifier(ctx, identifier)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*PlanDefinition, int, error) {
	return s.plans.List(ctx, limit, offset)
}

func (s *Service) ListByInterventionType(ctx context.Context, it InterventionType, limit, offset int) ([]*PlanDefinition, int, error) {
	if !ValidInterventionType(it) {
		return nil, 0, fmt.Errorf("invalid intervention type: %s", it)
	}
	return s.plans.ListByInterventionType(ctx, it, limit, offset)
}

func (s *Service) ReplaceAll(ctx context.Context, plans []*PlanDefinition) error {
	for _, p := range plans {
		if err := s.validate(p); err != nil {
			return err
		}
	}
	return s.plans.ReplaceAll(ctx, plans)
}

// Retire records a reason-coded retire event against the plan, then flips its
// status. The plan payload itself is otherwise untouched.
func (s *Service) Retire(ctx context.Context, identifier string, reason event.RetireReason, providerID string) (*event.Event, error) {
	p, err := s.plans.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	ev, err := s.events.RecordRetire(ctx, p.Identifier, reason, providerID)
	if err != nil {
		return nil, err
	}
	p.Status = StatusRetired
	if err := s.plans.Update(ctx, p); err != nil {
		return nil, err
	}
	return ev, nil
}

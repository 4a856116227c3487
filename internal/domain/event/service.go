package event

import (
	"context"
	"fmt"

	"github.com/opensrp/plan-service/internal/platform/clock"
)

type Service struct {
	events Repository
	clk    clock.Clock
}

func NewService(events Repository, clk clock.Clock) *Service {
	return &Service{events: events, clk: clk}
}

// Submit validates and stores an externally supplied event.
func (s *Service) Submit(ctx context.Context, ev *Event) error {
	if ev.BaseEntityID == "" {
		return fmt.Errorf("baseEntityId is required")
	}
	if ev.EventType == "" {
		return fmt.Errorf("eventType is required")
	}
	if ev.FormSubmissionID == "" {
		return fmt.Errorf("formSubmissionId is required")
	}
	if ev.Type == "" {
		ev.Type = "Event"
	}
	if ev.Version == 0 {
		ev.Version = s.clk.Now().UnixMilli()
	}
	return s.events.Create(ctx, ev)
}

// RecordRetire builds and stores the retire event for a plan, returning the
// stored payload.
func (s *Service) RecordRetire(ctx context.Context, planIdentifier string, reason RetireReason, providerID string) (*Event, error) {
	ev, err := BuildRetireEvent(planIdentifier, reason, providerID, s.clk)
	if err != nil {
		return nil, err
	}
	if err := s.events.Create(ctx, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// ListByPlan returns all events recorded against a plan identifier.
func (s *Service) ListByPlan(ctx context.Context, planIdentifier string) ([]*Event, error) {
	return s.events.ListByBaseEntity(ctx, planIdentifier)
}

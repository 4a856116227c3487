package event

import (
	"fmt"

	"github.com/opensrp/plan-service/internal/platform/clock"
	"github.com/opensrp/plan-service/internal/platform/ids"
)

// Event is the FHIR-like payload submitted to the events endpoint when a
// plan undergoes a reason-coded state transition. Retiring a plan is such
// an event, not a payload mutation.
type Event struct {
	BaseEntityID     string `json:"baseEntityId"`
	EventType        string `json:"eventType"`
	FormSubmissionID string `json:"formSubmissionId"`
	Obs              []Obs  `json:"obs"`
	ProviderID       string `json:"providerId"`
	Type             string `json:"type"`
	Version          int64  `json:"version"`
}

// Obs is one observed field on an event.
type Obs struct {
	FieldCode string   `json:"fieldCode"`
	Values    []string `json:"values"`
}

const (
	// EventTypeRetirePlan marks a plan retirement event.
	EventTypeRetirePlan = "Retire_Plan"

	// FieldCodeRetireReason is the obs field carrying the retire reason.
	FieldCodeRetireReason = "retire_reason"
)

// RetireReason is the closed set of reason codes a plan can be retired
// with.
type RetireReason string

const (
	ReasonDuplicate      RetireReason = "DUPLICATE"
	ReasonEnteredInError RetireReason = "ENTERED_IN_ERROR"
	ReasonCompleted      RetireReason = "COMPLETED_ELSEWHERE"
	ReasonOther          RetireReason = "OTHER"
)

var retireReasonText = map[RetireReason]string{
	ReasonDuplicate:      "Plan is duplicated",
	ReasonEnteredInError: "Plan was entered in error",
	ReasonCompleted:      "Operation already completed under another plan",
	ReasonOther:          "Other",
}

// ReasonText returns the display text submitted for a reason code.
func ReasonText(r RetireReason) (string, bool) {
	t, ok := retireReasonText[r]
	return t, ok
}

// BuildRetireEvent assembles the retire payload for a plan. The form
// submission id is derived from the timestamp, plan identifier and reason
// text, so identical submissions at the same instant are idempotent.
func BuildRetireEvent(planIdentifier string, reason RetireReason, providerID string, clk clock.Clock) (Event, error) {
	text, ok := ReasonText(reason)
	if !ok {
		return Event{}, fmt.Errorf("unknown retire reason %q", reason)
	}
	ms := clk.Now().UnixMilli()
	return Event{
		BaseEntityID:     planIdentifier,
		EventType:        EventTypeRetirePlan,
		FormSubmissionID: ids.Derive(fmt.Sprintf("%d-%s-%s", ms, planIdentifier, text)),
		Obs: []Obs{{
			FieldCode: FieldCodeRetireReason,
			Values:    []string{text},
		}},
		ProviderID: providerID,
		Type:       "Event",
		Version:    ms,
	}, nil
}

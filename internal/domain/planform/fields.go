// Package planform implements the bidirectional mapping between the nested
// wire-format PlanDefinition and the flat, form-editable representation the
// admin UI binds to. All transforms are pure and take an explicit clock, so
// repeated calls with identical inputs produce identical payloads.
package planform

import (
	"time"

	"github.com/opensrp/plan-service/internal/domain/plan"
)

const (
	// DateFormat is the wire date-string format (no time component).
	DateFormat = "2006-01-02"

	// DefaultTime is appended to date-only wire strings before parsing so
	// both date-only and full-timestamp values parse deterministically.
	DefaultTime = "T00:00:00+00:00"

	// DefaultActivityDurationDays pads missing activity end/due dates.
	DefaultActivityDurationDays = 7

	// DefaultPlanDurationDays pads a missing plan effective-period end.
	DefaultPlanDurationDays = 20

	// DefaultPlanVersion is the version assigned to new plans and the
	// fallback base when an existing version fails to parse.
	DefaultPlanVersion = 1
)

// Task generation status sentinels stored in the taskGenerationStatus
// useContext.
const (
	TaskGenerationTrue     = "True"
	TaskGenerationFalse    = "False"
	TaskGenerationDisabled = "Disabled"
)

// FieldsKind is the explicit static/dynamic discriminant carried on every
// activity form record from the moment it is created. Composition reads it
// instead of sniffing for condition/trigger keys.
type FieldsKind int

const (
	Static FieldsKind = iota
	Dynamic
)

// ActivityFormFields is one activity row of the editable plan form.
type ActivityFormFields struct {
	ActionCode        string
	ActionTitle       string
	ActionDescription string
	ActionIdentifier  string
	ActionReason      string
	GoalDescription   string
	GoalValue         float64
	GoalPriority      string
	TimingPeriodStart time.Time
	TimingPeriodEnd   time.Time
	GoalDue           time.Time
	Kind              FieldsKind
	Condition         []plan.Condition
	Trigger           []plan.Trigger
}

// JurisdictionField is a selected jurisdiction with its display name.
type JurisdictionField struct {
	ID   string
	Name string
}

// PlanFormFields is the whole-form aggregate the UI edits.
type PlanFormFields struct {
	Activities           []ActivityFormFields
	Jurisdictions        []JurisdictionField
	InterventionType     plan.InterventionType
	FIStatus             string
	FIReason             string
	CaseNum              string
	OpensrpEventID       string
	Date                 time.Time
	Start                time.Time
	End                  time.Time
	Status               plan.Status
	Name                 string
	Title                string
	Identifier           string
	Version              string
	TaskGenerationStatus string
}

// PlanActivity pairs one wire action with the goal its GoalID resolves to.
type PlanActivity struct {
	Action plan.PlanAction
	Goal   plan.PlanGoal
}

// ActivitiesFromPlan reduces a plan's action and goal arrays into
// action/goal pairs. Actions whose goalId does not resolve get a zero goal.
func ActivitiesFromPlan(p *plan.PlanDefinition) []PlanActivity {
	out := make([]PlanActivity, 0, len(p.Action))
	for _, a := range p.Action {
		pa := PlanActivity{Action: a}
		if g := p.GoalByID(a.GoalID); g != nil {
			pa.Goal = *g
		}
		out = append(out, pa)
	}
	return out
}

// parseWireDate parses a wire date value. Date-only strings get DefaultTime
// appended first; anything else must be a full timestamp.
func parseWireDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if len(s) == len(DateFormat) {
		t, err := time.Parse(time.RFC3339, s+DefaultTime)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// formatWireDate renders a wire date string (no time component).
func formatWireDate(t time.Time) string {
	return t.Format(DateFormat)
}

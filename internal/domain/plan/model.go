package plan

// PlanDefinition is the wire-format record describing a field operation.
// Field order and the useContext ordering are load-bearing: the payload is
// compared byte-for-byte by downstream consumers, so marshalling must be
// stable.
type PlanDefinition struct {
	Identifier      string         `json:"identifier"`
	Version         string         `json:"version"`
	Name            string         `json:"name"`
	Title           string         `json:"title"`
	Status          Status         `json:"status"`
	Date            string         `json:"date"`
	EffectivePeriod Period         `json:"effectivePeriod"`
	UseContext      []UseContext   `json:"useContext"`
	Jurisdiction    []Jurisdiction `json:"jurisdiction"`
	Goal            []PlanGoal     `json:"goal"`
	Action          []PlanAction   `json:"action"`
}

// Status is a plan lifecycle state.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusComplete Status = "complete"
	StatusRetired  Status = "retired"
)

// InterventionType identifies the kind of field operation a plan drives.
type InterventionType string

const (
	InterventionFI         InterventionType = "FI"
	InterventionIRS        InterventionType = "IRS"
	InterventionMDA        InterventionType = "MDA"
	InterventionMDAPoint   InterventionType = "MDA-Point"
	InterventionDynamicFI  InterventionType = "Dynamic-FI"
	InterventionDynamicIRS InterventionType = "Dynamic-IRS"
	InterventionDynamicMDA InterventionType = "Dynamic-MDA"
)

// UseContext codes recognised on a plan. Every code is unique within the
// useContext array by convention.
const (
	UseContextInterventionType     = "interventionType"
	UseContextFIStatus             = "fiStatus"
	UseContextFIReason             = "fiReason"
	UseContextCaseNum              = "caseNum"
	UseContextOpensrpEventID       = "opensrpEventId"
	UseContextTaskGenerationStatus = "taskGenerationStatus"
)

// Period is an inclusive start/end pair of wire date strings (no time
// component).
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// UseContext tags a plan with intervention-specific metadata.
type UseContext struct {
	Code                string `json:"code"`
	ValueCodableConcept string `json:"valueCodableConcept"`
}

// Jurisdiction references an area the plan applies to by code.
type Jurisdiction struct {
	Code string `json:"code"`
}

// PlanGoal is the measurable target an action works toward.
type PlanGoal struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	Priority    string       `json:"priority"`
	Target      []GoalTarget `json:"target"`
}

// GoalTarget holds the quantity, unit and due date of a goal.
type GoalTarget struct {
	Measure string     `json:"measure"`
	Detail  GoalDetail `json:"detail"`
	Due     string     `json:"due"`
}

// GoalDetail is the measured quantity of a goal target.
type GoalDetail struct {
	Comparator string  `json:"comparator"`
	Unit       string  `json:"unit"`
	Value      float64 `json:"value"`
}

// PlanAction is one task-generating unit within a plan. GoalID links to a
// PlanGoal.ID in the same plan; every GoalID must resolve to exactly one
// goal.
type PlanAction struct {
	Identifier            string         `json:"identifier"`
	Prefix                int            `json:"prefix"`
	Title                 string         `json:"title"`
	Description           string         `json:"description"`
	Code                  string         `json:"code"`
	TimingPeriod          Period         `json:"timingPeriod"`
	Reason                string         `json:"reason"`
	GoalID                string         `json:"goalId"`
	SubjectCodableConcept SubjectConcept `json:"subjectCodableConcept"`
	TaskTemplate          string         `json:"taskTemplate,omitempty"`
	Condition             []Condition    `json:"condition,omitempty"`
	Trigger               []Trigger      `json:"trigger,omitempty"`
}

// SubjectConcept names the kind of entity an action targets.
type SubjectConcept struct {
	Text string `json:"text"`
}

// Condition gates a dynamic action on a runtime expression.
type Condition struct {
	Description string `json:"description,omitempty"`
	Expression  string `json:"expression"`
}

// Trigger names an event that starts a dynamic action.
type Trigger struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Expression  string `json:"expression,omitempty"`
}

// IsDynamic reports whether any action carries a condition or trigger.
func (p *PlanDefinition) IsDynamic() bool {
	for i := range p.Action {
		if len(p.Action[i].Condition) > 0 || len(p.Action[i].Trigger) > 0 {
			return true
		}
	}
	return false
}

// UseContextValue returns the value stored for a useContext code.
func (p *PlanDefinition) UseContextValue(code string) (string, bool) {
	for _, uc := range p.UseContext {
		if uc.Code == code {
			return uc.ValueCodableConcept, true
		}
	}
	return "", false
}

// InterventionType reads the plan's intervention type from useContext,
// defaulting to FI when the tag is absent.
func (p *PlanDefinition) InterventionType() InterventionType {
	if v, ok := p.UseContextValue(UseContextInterventionType); ok && v != "" {
		return InterventionType(v)
	}
	return InterventionFI
}

// GoalByID returns the goal an action's GoalID resolves to, or nil.
func (p *PlanDefinition) GoalByID(id string) *PlanGoal {
	for i := range p.Goal {
		if p.Goal[i].ID == id {
			return &p.Goal[i]
		}
	}
	return nil
}

// ValidStatus reports membership in the closed status set.
func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusActive, StatusComplete, StatusRetired:
		return true
	}
	return false
}

// ValidInterventionType reports membership in the closed intervention set.
func ValidInterventionType(it InterventionType) bool {
	switch it {
	case InterventionFI, InterventionIRS, InterventionMDA, InterventionMDAPoint,
		InterventionDynamicFI, InterventionDynamicIRS, InterventionDynamicMDA:
		return true
	}
	return false
}

// IsDynamicIntervention reports whether the intervention type is one of the
// Dynamic-* variants.
func IsDynamicIntervention(it InterventionType) bool {
	switch it {
	case InterventionDynamicFI, InterventionDynamicIRS, InterventionDynamicMDA:
		return true
	}
	return false
}

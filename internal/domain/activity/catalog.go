package activity

import (
	"github.com/opensrp/plan-service/internal/domain/plan"
)

// Kind is the closed set of plan activity templates. Activities arrive on
// the wire as string codes; KindFromCode is the only string entry point, so
// an unrecognised code is caught at the boundary instead of silently
// producing a half-built template deeper in.
type Kind int

const (
	KindUnknown Kind = iota
	KindBCC
	KindIRS
	KindBednetDistribution
	KindBloodScreening
	KindCaseConfirmation
	KindRACDRegisterFamily
	KindLarvalDipping
	KindMosquitoCollection
	KindMDADispense
	KindMDAAdherence
	KindDynamicBCC
	KindDynamicIRS
	KindDynamicBednetDistribution
	KindDynamicBloodScreening
	KindDynamicCaseConfirmation
	KindDynamicRACDRegisterFamily
	KindDynamicLarvalDipping
	KindDynamicMosquitoCollection
	KindDynamicMDADispense
	KindDynamicMDAAdherence
)

// Wire action codes. Static and dynamic variants of the same activity share
// a code; the presence of conditions/triggers distinguishes them on the
// wire.
const (
	CodeBCC                = "BCC"
	CodeIRS                = "IRS"
	CodeBednetDistribution = "Bednet Distribution"
	CodeBloodScreening     = "Blood Screening"
	CodeCaseConfirmation   = "Case Confirmation"
	CodeRACDRegisterFamily = "RACD Register Family"
	CodeLarvalDipping      = "Larval Dipping"
	CodeMosquitoCollection = "Mosquito Collection"
	CodeMDADispense        = "MDA Dispense"
	CodeMDAAdherence       = "MDA Adherence"
)

// UnitUnknown is returned for kinds with no fixed goal unit. Dynamic MDA
// activities deliberately resolve to this sentinel.
const UnitUnknown = "unknown"

// GoalPriorityMedium is the default priority assigned to template goals.
const GoalPriorityMedium = "medium-priority"

// Template bundles the default action and goal of one activity kind.
type Template struct {
	Kind   Kind
	Action plan.PlanAction
	Goal   plan.PlanGoal
}

// KindFromCode resolves a wire action code to a Kind. A code shared between
// a static and a dynamic variant resolves according to the dynamic flag.
func KindFromCode(code string, dynamic bool) (Kind, bool) {
	var k Kind
	switch code {
	case CodeBCC:
		k = KindBCC
	case CodeIRS:
		k = KindIRS
	case CodeBednetDistribution:
		k = KindBednetDistribution
	case CodeBloodScreening:
		k = KindBloodScreening
	case CodeCaseConfirmation:
		k = KindCaseConfirmation
	case CodeRACDRegisterFamily:
		k = KindRACDRegisterFamily
	case CodeLarvalDipping:
		k = KindLarvalDipping
	case CodeMosquitoCollection:
		k = KindMosquitoCollection
	case CodeMDADispense:
		k = KindMDADispense
	case CodeMDAAdherence:
		k = KindMDAAdherence
	default:
		return KindUnknown, false
	}
	if dynamic {
		return k.dynamicVariant(), true
	}
	return k, true
}

func (k Kind) dynamicVariant() Kind {
	switch k {
	case KindBCC:
		return KindDynamicBCC
	case KindIRS:
		return KindDynamicIRS
	case KindBednetDistribution:
		return KindDynamicBednetDistribution
	case KindBloodScreening:
		return KindDynamicBloodScreening
	case KindCaseConfirmation:
		return KindDynamicCaseConfirmation
	case KindRACDRegisterFamily:
		return KindDynamicRACDRegisterFamily
	case KindLarvalDipping:
		return KindDynamicLarvalDipping
	case KindMosquitoCollection:
		return KindDynamicMosquitoCollection
	case KindMDADispense:
		return KindDynamicMDADispense
	case KindMDAAdherence:
		return KindDynamicMDAAdherence
	}
	return k
}

// IsDynamic reports whether the kind carries default conditions/triggers.
func (k Kind) IsDynamic() bool {
	switch k {
	case KindDynamicBCC, KindDynamicIRS, KindDynamicBednetDistribution,
		KindDynamicBloodScreening, KindDynamicCaseConfirmation,
		KindDynamicRACDRegisterFamily, KindDynamicLarvalDipping,
		KindDynamicMosquitoCollection, KindDynamicMDADispense,
		KindDynamicMDAAdherence:
		return true
	}
	return false
}

// Code returns the wire action code for the kind.
func (k Kind) Code() string {
	switch k {
	case KindBCC, KindDynamicBCC:
		return CodeBCC
	case KindIRS, KindDynamicIRS:
		return CodeIRS
	case KindBednetDistribution, KindDynamicBednetDistribution:
		return CodeBednetDistribution
	case KindBloodScreening, KindDynamicBloodScreening:
		return CodeBloodScreening
	case KindCaseConfirmation, KindDynamicCaseConfirmation:
		return CodeCaseConfirmation
	case KindRACDRegisterFamily, KindDynamicRACDRegisterFamily:
		return CodeRACDRegisterFamily
	case KindLarvalDipping, KindDynamicLarvalDipping:
		return CodeLarvalDipping
	case KindMosquitoCollection, KindDynamicMosquitoCollection:
		return CodeMosquitoCollection
	case KindMDADispense, KindDynamicMDADispense:
		return CodeMDADispense
	case KindMDAAdherence, KindDynamicMDAAdherence:
		return CodeMDAAdherence
	}
	return ""
}

// GoalUnit returns the measurement unit for the kind's goal. Dynamic MDA
// kinds resolve to the UnitUnknown sentinel.
func GoalUnit(k Kind) string {
	switch k {
	case KindIRS, KindDynamicIRS,
		KindBednetDistribution, KindDynamicBednetDistribution,
		KindRACDRegisterFamily, KindDynamicRACDRegisterFamily:
		return "Percent"
	case KindMDADispense, KindMDAAdherence:
		return "Percent"
	case KindBloodScreening, KindDynamicBloodScreening:
		return "Person(s)"
	case KindCaseConfirmation, KindDynamicCaseConfirmation:
		return "case(s)"
	case KindBCC, KindDynamicBCC,
		KindLarvalDipping, KindDynamicLarvalDipping,
		KindMosquitoCollection, KindDynamicMosquitoCollection:
		return "activit(y|ies)"
	case KindDynamicMDADispense, KindDynamicMDAAdherence:
		return UnitUnknown
	}
	return UnitUnknown
}

// Template returns a deep copy of the kind's default action/goal pair. The
// catalog itself is immutable reference data shared across sessions; callers
// always get fresh values to mutate.
func (k Kind) Template() (Template, bool) {
	base, ok := templates[k.staticVariant()]
	if !ok {
		return Template{}, false
	}
	t := Template{
		Kind:   k,
		Action: base.Action,
		Goal:   base.Goal,
	}
	t.Goal.Target = append([]plan.GoalTarget(nil), base.Goal.Target...)
	if k.IsDynamic() {
		t.Action.Condition = append([]plan.Condition(nil), defaultConditions[k]...)
		t.Action.Trigger = append([]plan.Trigger(nil), defaultTriggers[k]...)
	}
	return t, true
}

func (k Kind) staticVariant() Kind {
	switch k {
	case KindDynamicBCC:
		return KindBCC
	case KindDynamicIRS:
		return KindIRS
	case KindDynamicBednetDistribution:
		return KindBednetDistribution
	case KindDynamicBloodScreening:
		return KindBloodScreening
	case KindDynamicCaseConfirmation:
		return KindCaseConfirmation
	case KindDynamicRACDRegisterFamily:
		return KindRACDRegisterFamily
	case KindDynamicLarvalDipping:
		return KindLarvalDipping
	case KindDynamicMosquitoCollection:
		return KindMosquitoCollection
	case KindDynamicMDADispense:
		return KindMDADispense
	case KindDynamicMDAAdherence:
		return KindMDAAdherence
	}
	return k
}

// KindsForIntervention returns the default activity set used when a plan is
// created from scratch for the given intervention type.
func KindsForIntervention(it plan.InterventionType) []Kind {
	switch it {
	case plan.InterventionIRS:
		return []Kind{KindIRS}
	case plan.InterventionDynamicIRS:
		return []Kind{KindDynamicIRS}
	case plan.InterventionMDA, plan.InterventionMDAPoint:
		return []Kind{KindMDADispense, KindMDAAdherence}
	case plan.InterventionDynamicMDA:
		return []Kind{KindDynamicMDADispense, KindDynamicMDAAdherence}
	case plan.InterventionDynamicFI:
		return []Kind{
			KindDynamicCaseConfirmation, KindDynamicRACDRegisterFamily,
			KindDynamicBloodScreening, KindDynamicBednetDistribution,
			KindDynamicLarvalDipping, KindDynamicMosquitoCollection,
			KindDynamicBCC,
		}
	default: // FI
		return []Kind{
			KindCaseConfirmation, KindRACDRegisterFamily, KindBloodScreening,
			KindBednetDistribution, KindLarvalDipping, KindMosquitoCollection,
			KindBCC,
		}
	}
}

// templates holds the static defaults. Dynamic variants reuse the static
// entry plus the per-kind condition/trigger defaults below.
var templates = map[Kind]Template{
	KindBCC: {
		Kind: KindBCC,
		Action: plan.PlanAction{
			Title:                 "Behaviour Change Communication",
			Description:           "Conduct BCC activity",
			Code:                  CodeBCC,
			Reason:                "Investigation",
			GoalID:                "BCC_Focus",
			SubjectCodableConcept: plan.SubjectConcept{Text: "Operational_Area"},
			TaskTemplate:          "Action1_BCC_Focus",
		},
		Goal: plan.PlanGoal{
			ID:          "BCC_Focus",
			Description: "Complete at least 1 BCC activity for the operational area",
			Priority:    GoalPriorityMedium,
			Target: []plan.GoalTarget{{
				Measure: "Number of BCC Activities Completed",
				Detail:  plan.GoalDetail{Comparator: ">=", Unit: "activit(y|ies)", Value: 1},
			}},
		},
	},
	KindIRS: {
		Kind: KindIRS,
		Action: plan.PlanAction{
			Title:                 "Spray Structures",
			Description:           "Visit each structure in the operational area and attempt to spray",
			Code:                  CodeIRS,
			Reason:                "Routine",
			GoalID:                "IRS",
			SubjectCodableConcept: plan.SubjectConcept{Text: "Residential_Structure"},
			TaskTemplate:          "Action1_IRS_Visit",
		},
		Goal: plan.PlanGoal{
			ID:          "IRS",
			Description: "Spray structures in the operational area",
			Priority:    GoalPriorityMedium,
			Target: []plan.GoalTarget{{
				Measure: "Percent of structures sprayed",
				Detail:  plan.GoalDetail{Comparator: ">=", Unit: "Percent", Value: 90},
			}},
		},
	},
	KindBednetDistribution: {
		Kind: KindBednetDistribution,
		Action: plan.PlanAction{
			Title:                 "Bednet Distribution",
			Description:           "Visit 100% of residential structures in the operational area and provide nets",
			Code:                  CodeBednetDistribution,
			Reason:                "Routine",
			GoalID:                "RACD_bednet_distribution",
			SubjectCodableConcept: plan.SubjectConcept{Text: "Residential_Structure"},
			TaskTemplate:          "ITN_Visit_Structures",
		},
		Goal: plan.PlanGoal{
			ID:          "RACD_bednet_distribution",
			Description: "Visit 100% of residential structures in the operational area and provide nets",
			Priority:    GoalPriorityMedium,
			Target: []plan.GoalTarget{{
				Measure: "Percent of residential structures received nets",
				Detail:  plan.GoalDetail{Comparator: ">=", Unit: "Percent", Value: 100},
			}},
		},
	},
	KindBloodScreening: {
		Kind: KindBloodScreening,
		Action: plan.PlanAction{
			Title:                 "RACD Blood screening",
			Description:           "Visit all residential structures (100%) within a 1 km radius of a confirmed index case and test each registered person",
			Code:                  CodeBloodScreening,
			Reason:                "Investigation",
			GoalID:                "RACD_blood_screening",
			SubjectCodableConcept: plan.SubjectConcept{Text: "Person"},
			TaskTemplate:          "RACD_Blood_Screening",
		},
		Goal: plan.PlanGoal{
			ID:          "RACD_blood_screening",
			Description: "Visit all residential structures (100%) within a 1 km radius of a confirmed index case and test each registered person",
			Priority:    GoalPriorityMedium,
			Target: []plan.GoalTarget{{
				Measure: "Number of registered people tested",
				Detail:  plan.GoalDetail{Comparator: ">=", Unit: "Person(s)", Value: 100},
			}},
		},
	},
	KindCaseConfirmation: {
		Kind: KindCaseConfirmation,
		Action: plan.PlanAction{
			Title:                 "Case Confirmation",
			Description:           "Confirm the index case",
			Code:                  CodeCaseConfirmation,
			Reason:                "Investigation",
			GoalID:                "Case_Confirmation",
			SubjectCodableConcept: plan.SubjectConcept{Text: "Operational_Area"},
			TaskTemplate:          "Case_Confirmation",
		},
		Goal: plan.PlanGoal{
			ID:          "Case_Confirmation",
			Description: "Confirm the index case",
			Priority:    GoalPriorityMedium,
			Target: []plan.GoalTarget{{
				Measure: "Number of cases confirmed",
				Detail:  plan.GoalDetail{Comparator: ">=", Unit: "case(s)", Value: 1},
			}},
		},
	},
	KindRACDRegisterFamily: {
		Kind: KindRACDRegisterFamily,
		Action: plan.PlanAction{
			Title:                 "Family Registration",
			Description:           "Register all families and family members in all residential structures enumerated (100%) within the operational area",
			Code:                  CodeRACDRegisterFamily,
			Reason:                "Investigation",
			GoalID:                "RACD_register_families",
			SubjectCodableConcept: plan.SubjectConcept{Text: "Residential_Structure"},
			TaskTemplate:          "RACD_register_families",
		},
		Goal: plan.PlanGoal{
			ID:          "RACD_register_families",
			Description: "Register all families and family members in all residential structures enumerated (100%) within the operational area",
			Priority:    GoalPriorityMedium,
			Target: []plan.GoalTarget{{
				Measure: "Percent of residential structures with full family registration",
				Detail:  plan.GoalDetail{Comparator: ">=", Unit: "Percent", Value: 100},
			}},
		},
	},
	KindLarvalDipping: {
		Kind: KindLarvalDipping,
		Action: plan.PlanAction{
			Title:                 "Larval Dipping",
			Description:           "Perform a minimum of three larval dipping activities in the operational area",
			Code:                  CodeLarvalDipping,
			Reason:                "Investigation",
			GoalID:                "Larval_Dipping",
			SubjectCodableConcept: plan.SubjectConcept{Text: "Breeding_Site"},
			TaskTemplate:          "Larval_Dipping",
		},
		Goal: plan.PlanGoal{
			ID:          "Larval_Dipping",
			Description: "Perform a minimum of three larval dipping activities in the operational area",
			Priority:    GoalPriorityMedium,
			Target: []plan.GoalTarget{{
				Measure: "Number of larval dipping activities completed",
				Detail:  plan.GoalDetail{Comparator: ">=", Unit: "activit(y|ies)", Value: 3},
			}},
		},
	},
	KindMosquitoCollection: {
		Kind: KindMosquitoCollection,
		Action: plan.PlanAction{
			Title:                 "Mosquito Collection",
			Description:           "Set a minimum of three mosquito collection traps and complete the mosquito collection process",
			Code:                  CodeMosquitoCollection,
			Reason:                "Investigation",
			GoalID:                "Mosquito_Collection",
			SubjectCodableConcept: plan.SubjectConcept{Text: "Mosquito_Collection_Point"},
			TaskTemplate:          "Mosquito_Collection_Point",
		},
		Goal: plan.PlanGoal{
			ID:          "Mosquito_Collection",
			Description: "Set a minimum of three mosquito collection traps and complete the mosquito collection process",
			Priority:    GoalPriorityMedium,
			Target: []plan.GoalTarget{{
				Measure: "Number of mosquito collection activities completed",
				Detail:  plan.GoalDetail{Comparator: ">=", Unit: "activit(y|ies)", Value: 3},
			}},
		},
	},
	KindMDADispense: {
		Kind: KindMDADispense,
		Action: plan.PlanAction{
			Title:                 "MDA Round 1 Dispense",
			Description:           "Dispense medication to each eligible person",
			Code:                  CodeMDADispense,
			Reason:                "Routine",
			GoalID:                "MDA_Dispense",
			SubjectCodableConcept: plan.SubjectConcept{Text: "Person"},
			TaskTemplate:          "MDA_Dispense",
		},
		Goal: plan.PlanGoal{
			ID:          "MDA_Dispense",
			Description: "Dispense medication to each eligible person",
			Priority:    GoalPriorityMedium,
			Target: []plan.GoalTarget{{
				Measure: "Percent of eligible people who received medication",
				Detail:  plan.GoalDetail{Comparator: ">=", Unit: "Percent", Value: 100},
			}},
		},
	},
	KindMDAAdherence: {
		Kind: KindMDAAdherence,
		Action: plan.PlanAction{
			Title:                 "MDA Adherence Visit",
			Description:           "Visit each person who received medication and record adherence",
			Code:                  CodeMDAAdherence,
			Reason:                "Routine",
			GoalID:                "MDA_Adherence",
			SubjectCodableConcept: plan.SubjectConcept{Text: "Person"},
			TaskTemplate:          "MDA_Adherence",
		},
		Goal: plan.PlanGoal{
			ID:          "MDA_Adherence",
			Description: "Visit each person who received medication and record adherence",
			Priority:    GoalPriorityMedium,
			Target: []plan.GoalTarget{{
				Measure: "Percent of dispense recipients visited for adherence",
				Detail:  plan.GoalDetail{Comparator: ">=", Unit: "Percent", Value: 100},
			}},
		},
	},
}

var defaultTriggers = map[Kind][]plan.Trigger{
	KindDynamicBCC:                {{Name: "plan-activation"}},
	KindDynamicIRS:                {{Name: "plan-activation"}},
	KindDynamicBednetDistribution: {{Name: "plan-activation"}, {Name: "event-submission", Description: "Trigger when a Family Registration event is submitted", Expression: "questionnaire = 'Family_Registration'"}},
	KindDynamicBloodScreening:     {{Name: "plan-activation"}, {Name: "event-submission", Description: "Trigger when a Family Registration or Family Member Registration event is submitted", Expression: "questionnaire = 'Family_Registration' or questionnaire = 'Family_Member_Registration'"}},
	KindDynamicCaseConfirmation:   {{Name: "plan-activation"}},
	KindDynamicRACDRegisterFamily: {{Name: "plan-activation"}, {Name: "event-submission", Description: "Trigger when a Register Structure event is submitted", Expression: "questionnaire = 'Register_Structure'"}},
	KindDynamicLarvalDipping:      {{Name: "plan-activation"}, {Name: "event-submission", Description: "Trigger when a Register Structure event is submitted", Expression: "questionnaire = 'Register_Structure'"}},
	KindDynamicMosquitoCollection: {{Name: "plan-activation"}, {Name: "event-submission", Description: "Trigger when a Register Structure event is submitted", Expression: "questionnaire = 'Register_Structure'"}},
	KindDynamicMDADispense:        {{Name: "plan-activation"}},
	KindDynamicMDAAdherence:       {{Name: "plan-activation"}, {Name: "event-submission", Description: "Trigger when an MDA Dispense event is submitted", Expression: "questionnaire = 'MDA_Dispense'"}},
}

var defaultConditions = map[Kind][]plan.Condition{
	KindDynamicBCC:                {{Description: "Operational area is in the plan's jurisdiction list", Expression: "$this.is(FHIR.Location)"}},
	KindDynamicIRS:                {{Description: "Structure is residential or a new registration", Expression: "$this.is(FHIR.Location) or (questionnaire = 'Register_Structure' and $this.type.where(id='locationType').text = 'Residential Structure')"}},
	KindDynamicBednetDistribution: {{Description: "Family exists for structure", Expression: "$this.is(FHIR.QuestionnaireResponse) or $this.contained.exists()"}},
	KindDynamicBloodScreening:     {{Description: "Person is older than 5 years or a newly registered family member", Expression: "($this.is(FHIR.Patient) and $this.birthDate <= today() - 5 'years') or $this.is(FHIR.QuestionnaireResponse)"}},
	KindDynamicCaseConfirmation:   {{Description: "Index case has not been confirmed", Expression: "$this.is(FHIR.QuestionnaireResponse)"}},
	KindDynamicRACDRegisterFamily: {{Description: "Structure is residential and has no registered family", Expression: "$this.is(FHIR.Location) and $this.type.where(id='locationType').text = 'Residential Structure'"}},
	KindDynamicLarvalDipping:      {{Description: "Structure is a larval breeding site", Expression: "$this.is(FHIR.Location) and $this.type.where(id='locationType').text = 'Larval Breeding Site'"}},
	KindDynamicMosquitoCollection: {{Description: "Structure is a mosquito collection point", Expression: "$this.is(FHIR.Location) and $this.type.where(id='locationType').text = 'Mosquito Collection Point'"}},
	KindDynamicMDADispense:        {{Description: "Person is eligible for dispense", Expression: "$this.is(FHIR.Patient)"}},
	KindDynamicMDAAdherence:       {{Description: "Person received medication", Expression: "questionnaire = 'MDA_Dispense'"}},
}

package planform

import (
	"testing"

	"github.com/opensrp/plan-service/internal/domain/activity"
	"github.com/opensrp/plan-service/internal/domain/plan"
)

func formActivity(t *testing.T, kind activity.Kind) ActivityFormFields {
	t.Helper()
	f, ok := NewActivityFormFields(kind, fixedClock())
	if !ok {
		t.Fatalf("no template for kind %v", kind)
	}
	return f
}

func TestComposeDropsUnrecognisedCodes(t *testing.T) {
	activities := []ActivityFormFields{
		formActivity(t, activity.KindIRS),
		{ActionCode: "Legacy Garbage Row"},
		formActivity(t, activity.KindBCC),
	}

	actions, goals := ExtractActivitiesFromPlanForm(activities, "plan-1", nil, fixedClock())

	if len(actions) != 2 || len(goals) != 2 {
		t.Fatalf("actions=%d goals=%d, want 2/2", len(actions), len(goals))
	}
	// Prefixes stay densely numbered after the drop.
	if actions[0].Prefix != 1 || actions[1].Prefix != 2 {
		t.Errorf("prefixes = %d,%d", actions[0].Prefix, actions[1].Prefix)
	}
	if actions[0].Code != activity.CodeIRS || actions[1].Code != activity.CodeBCC {
		t.Errorf("codes = %q,%q", actions[0].Code, actions[1].Code)
	}
}

func TestComposeIdentifierDeterminism(t *testing.T) {
	activities := []ActivityFormFields{formActivity(t, activity.KindIRS)}

	a1, _ := ExtractActivitiesFromPlanForm(activities, "plan-1", nil, fixedClock())
	a2, _ := ExtractActivitiesFromPlanForm(activities, "plan-1", nil, fixedClock())
	if a1[0].Identifier != a2[0].Identifier {
		t.Errorf("same inputs, different identifiers: %s vs %s", a1[0].Identifier, a2[0].Identifier)
	}

	a3, _ := ExtractActivitiesFromPlanForm(activities, "plan-2", nil, fixedClock())
	if a3[0].Identifier == a1[0].Identifier {
		t.Error("different plan identifier produced the same action identifier")
	}
}

func TestComposeReorderChangesPrefixNotIdentifier(t *testing.T) {
	irs := formActivity(t, activity.KindIRS)
	bcc := formActivity(t, activity.KindBCC)
	irs.ActionIdentifier = "irs-id"
	bcc.ActionIdentifier = "bcc-id"

	forward, _ := ExtractActivitiesFromPlanForm([]ActivityFormFields{irs, bcc}, "plan-1", nil, fixedClock())
	reversed, _ := ExtractActivitiesFromPlanForm([]ActivityFormFields{bcc, irs}, "plan-1", nil, fixedClock())

	if forward[0].Identifier != "irs-id" || reversed[1].Identifier != "irs-id" {
		t.Error("reordering changed an existing identifier")
	}
	if forward[0].Prefix != 1 || reversed[1].Prefix != 2 {
		t.Errorf("prefixes did not follow array position: %d, %d", forward[0].Prefix, reversed[1].Prefix)
	}
}

func TestComposeMergesExistingPlan(t *testing.T) {
	existing := &plan.PlanDefinition{
		Action: []plan.PlanAction{{
			Identifier:            "server-assigned",
			Code:                  activity.CodeIRS,
			GoalID:                "IRS",
			TaskTemplate:          "Custom_IRS_Template",
			SubjectCodableConcept: plan.SubjectConcept{Text: "Custom_Subject"},
		}},
		Goal: []plan.PlanGoal{{
			ID: "IRS",
			Target: []plan.GoalTarget{{
				Measure: "Custom measure text",
				Detail:  plan.GoalDetail{Comparator: ">=", Unit: "Percent", Value: 90},
			}},
		}},
	}

	f := formActivity(t, activity.KindIRS)
	f.ActionTitle = "Spray selected structures"
	f.GoalValue = 80

	actions, goals := ExtractActivitiesFromPlanForm([]ActivityFormFields{f}, "plan-1", existing, fixedClock())

	a, g := actions[0], goals[0]
	// Server-known fields carried over.
	if a.Identifier != "server-assigned" {
		t.Errorf("identifier = %q", a.Identifier)
	}
	if a.TaskTemplate != "Custom_IRS_Template" {
		t.Errorf("task template = %q", a.TaskTemplate)
	}
	if a.SubjectCodableConcept.Text != "Custom_Subject" {
		t.Errorf("subject = %q", a.SubjectCodableConcept.Text)
	}
	if g.Target[0].Measure != "Custom measure text" {
		t.Errorf("measure = %q", g.Target[0].Measure)
	}
	// User edits win.
	if a.Title != "Spray selected structures" {
		t.Errorf("title = %q", a.Title)
	}
	if g.Target[0].Detail.Value != 80 {
		t.Errorf("goal value = %v", g.Target[0].Detail.Value)
	}
}

func TestComposeDynamicUsesFormConditions(t *testing.T) {
	f := formActivity(t, activity.KindDynamicIRS)
	f.Condition = []plan.Condition{{Description: "edited", Expression: "edited-expr"}}
	f.Trigger = []plan.Trigger{{Name: "plan-activation"}}

	actions, _ := ExtractActivitiesFromPlanForm([]ActivityFormFields{f}, "plan-1", nil, fixedClock())

	if len(actions[0].Condition) != 1 || actions[0].Condition[0].Expression != "edited-expr" {
		t.Errorf("condition = %+v, want the form's edit", actions[0].Condition)
	}
}

func TestComposeGoalUnitSentinelForDynamicMDA(t *testing.T) {
	f := formActivity(t, activity.KindDynamicMDADispense)
	_, goals := ExtractActivitiesFromPlanForm([]ActivityFormFields{f}, "plan-1", nil, fixedClock())

	if got := goals[0].Target[0].Detail.Unit; got != activity.UnitUnknown {
		t.Errorf("dynamic MDA goal unit = %q, want %q", got, activity.UnitUnknown)
	}
}

func TestComposeDeduplicatesGoals(t *testing.T) {
	f1 := formActivity(t, activity.KindIRS)
	f2 := formActivity(t, activity.KindIRS)

	actions, goals := ExtractActivitiesFromPlanForm([]ActivityFormFields{f1, f2}, "plan-1", nil, fixedClock())

	if len(actions) != 2 {
		t.Fatalf("actions = %d, want 2", len(actions))
	}
	if len(goals) != 1 {
		t.Fatalf("goals sharing an id were not deduplicated: %d", len(goals))
	}
}

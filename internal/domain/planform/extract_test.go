package planform

import (
	"reflect"
	"testing"
	"time"

	"github.com/opensrp/plan-service/internal/domain/activity"
	"github.com/opensrp/plan-service/internal/domain/plan"
	"github.com/opensrp/plan-service/internal/platform/clock"
)

var testNow = time.Date(2000, 1, 30, 0, 0, 0, 0, time.UTC)

func fixedClock() clock.Clock { return clock.FixedAt(testNow) }

func TestExtractActivityDefaultsMissingDates(t *testing.T) {
	act := PlanActivity{
		Action: plan.PlanAction{Code: activity.CodeIRS, Title: "Spray Structures"},
	}

	f := ExtractActivityForForm(act, fixedClock())

	if !f.TimingPeriodStart.Equal(testNow) {
		t.Errorf("start = %v, want now", f.TimingPeriodStart)
	}
	wantEnd := testNow.AddDate(0, 0, DefaultActivityDurationDays)
	if !f.TimingPeriodEnd.Equal(wantEnd) {
		t.Errorf("end = %v, want now+%dd", f.TimingPeriodEnd, DefaultActivityDurationDays)
	}
	if !f.GoalDue.Equal(wantEnd) {
		t.Errorf("goal due = %v, want now+%dd", f.GoalDue, DefaultActivityDurationDays)
	}
}

func TestExtractActivityParsesDateOnlyAndTimestamp(t *testing.T) {
	act := PlanActivity{
		Action: plan.PlanAction{
			Code:         activity.CodeIRS,
			TimingPeriod: plan.Period{Start: "2000-01-01", End: "2000-02-01T12:30:00+00:00"},
		},
	}

	f := ExtractActivityForForm(act, fixedClock())

	if got := f.TimingPeriodStart; !got.Equal(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date-only start = %v", got)
	}
	if got := f.TimingPeriodEnd; !got.Equal(time.Date(2000, 2, 1, 12, 30, 0, 0, time.UTC)) {
		t.Errorf("timestamp end = %v", got)
	}
}

func TestExtractActivityGoalValueFallback(t *testing.T) {
	// A target on the wire wins outright.
	act := PlanActivity{
		Action: plan.PlanAction{Code: activity.CodeIRS},
		Goal: plan.PlanGoal{Target: []plan.GoalTarget{{
			Detail: plan.GoalDetail{Value: 75},
		}}},
	}
	if f := ExtractActivityForForm(act, fixedClock()); f.GoalValue != 75 {
		t.Errorf("goal value = %v, want 75", f.GoalValue)
	}

	// No target: recovered from the catalog template for the code.
	act.Goal = plan.PlanGoal{}
	if f := ExtractActivityForForm(act, fixedClock()); f.GoalValue != 90 {
		t.Errorf("catalog fallback goal value = %v, want 90", f.GoalValue)
	}

	// Unrecognised code: zero, no error.
	act.Action.Code = "Not A Real Activity"
	if f := ExtractActivityForForm(act, fixedClock()); f.GoalValue != 0 {
		t.Errorf("unknown-code goal value = %v, want 0", f.GoalValue)
	}
}

func TestExtractActivityDynamicDiscriminant(t *testing.T) {
	static := PlanActivity{Action: plan.PlanAction{Code: activity.CodeIRS}}
	if f := ExtractActivityForForm(static, fixedClock()); f.Kind != Static {
		t.Error("conditionless activity classified Dynamic")
	}

	dynamic := PlanActivity{Action: plan.PlanAction{
		Code:      activity.CodeIRS,
		Condition: []plan.Condition{{Expression: "$this.is(FHIR.Location)"}},
	}}
	if f := ExtractActivityForForm(dynamic, fixedClock()); f.Kind != Dynamic {
		t.Error("condition-bearing activity classified Static")
	}
}

func TestExtractActivityCopiesConditionsAndTriggers(t *testing.T) {
	src := PlanActivity{Action: plan.PlanAction{
		Code:      activity.CodeBednetDistribution,
		Condition: []plan.Condition{{Description: "Family exists", Expression: "$this.contained.exists()"}},
		Trigger: []plan.Trigger{
			{Name: "plan-activation"},
			{Description: "unnamed trigger", Expression: "questionnaire = 'Family_Registration'"},
		},
	}}

	f := ExtractActivityForForm(src, fixedClock())

	if !reflect.DeepEqual(f.Condition, src.Action.Condition) {
		t.Errorf("conditions not copied verbatim: %+v", f.Condition)
	}
	if f.Trigger[0].Name != "plan-activation" {
		t.Errorf("trigger[0] = %+v", f.Trigger[0])
	}
	// A trigger without a name is normalized to the activation default.
	if f.Trigger[1].Name != "plan-activation" || f.Trigger[1].Expression != "questionnaire = 'Family_Registration'" {
		t.Errorf("trigger[1] = %+v", f.Trigger[1])
	}

	// Fresh storage: mutating the form record must not reach the source.
	f.Condition[0].Expression = "mutated"
	if src.Action.Condition[0].Expression == "mutated" {
		t.Error("condition copy aliases the source slice")
	}
}

func TestNewActivityFormFieldsDynamicDefaults(t *testing.T) {
	f, ok := NewActivityFormFields(activity.KindDynamicBednetDistribution, fixedClock())
	if !ok {
		t.Fatal("no template for dynamic bednet distribution")
	}
	if f.Kind != Dynamic {
		t.Error("dynamic template produced a Static record")
	}
	if len(f.Condition) == 0 || len(f.Trigger) != 2 {
		t.Fatalf("template defaults missing: cond=%d trig=%d", len(f.Condition), len(f.Trigger))
	}
	if f.GoalValue != 100 {
		t.Errorf("goal value = %v, want 100", f.GoalValue)
	}
}

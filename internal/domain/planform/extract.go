package planform

import (
	"github.com/opensrp/plan-service/internal/domain/activity"
	"github.com/opensrp/plan-service/internal/domain/plan"
	"github.com/opensrp/plan-service/internal/platform/clock"
)

// ExtractActivityForForm converts one action/goal pair into the flat record
// the form engine binds to. Missing dates are substituted with "now" and
// "now + default duration" from the supplied clock; a missing goal target
// falls back to the catalog default for the action code, or zero when the
// code is unrecognised.
func ExtractActivityForForm(act PlanActivity, clk clock.Clock) ActivityFormFields {
	now := clk.Now()

	dynamic := len(act.Action.Condition) > 0 || len(act.Action.Trigger) > 0

	f := ActivityFormFields{
		ActionCode:        act.Action.Code,
		ActionTitle:       act.Action.Title,
		ActionDescription: act.Action.Description,
		ActionIdentifier:  act.Action.Identifier,
		ActionReason:      act.Action.Reason,
		GoalDescription:   act.Goal.Description,
		GoalPriority:      act.Goal.Priority,
		Kind:              Static,
	}
	if dynamic {
		f.Kind = Dynamic
	}

	if len(act.Goal.Target) > 0 {
		f.GoalValue = act.Goal.Target[0].Detail.Value
	} else if kind, ok := activity.KindFromCode(act.Action.Code, dynamic); ok {
		if tpl, ok := kind.Template(); ok && len(tpl.Goal.Target) > 0 {
			f.GoalValue = tpl.Goal.Target[0].Detail.Value
		}
	}

	if t, ok := parseWireDate(act.Action.TimingPeriod.Start); ok {
		f.TimingPeriodStart = t
	} else {
		f.TimingPeriodStart = now
	}
	if t, ok := parseWireDate(act.Action.TimingPeriod.End); ok {
		f.TimingPeriodEnd = t
	} else {
		f.TimingPeriodEnd = now.AddDate(0, 0, DefaultActivityDurationDays)
	}
	if len(act.Goal.Target) > 0 {
		if t, ok := parseWireDate(act.Goal.Target[0].Due); ok {
			f.GoalDue = t
		}
	}
	if f.GoalDue.IsZero() {
		f.GoalDue = now.AddDate(0, 0, DefaultActivityDurationDays)
	}

	if dynamic {
		f.Condition = normalizeConditions(act.Action.Condition)
		f.Trigger = normalizeTriggers(act.Action.Trigger)
	}

	return f
}

// normalizeConditions copies conditions into fresh storage. Absent optional
// fields stay absent (omitempty) rather than being written as empty keys.
func normalizeConditions(in []plan.Condition) []plan.Condition {
	if len(in) == 0 {
		return nil
	}
	out := make([]plan.Condition, len(in))
	copy(out, in)
	return out
}

// normalizeTriggers copies triggers, guaranteeing every element has a name.
func normalizeTriggers(in []plan.Trigger) []plan.Trigger {
	if len(in) == 0 {
		return nil
	}
	out := make([]plan.Trigger, len(in))
	for i, tr := range in {
		if tr.Name == "" {
			tr.Name = "plan-activation"
		}
		out[i] = tr
	}
	return out
}

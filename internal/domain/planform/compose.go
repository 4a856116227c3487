package planform

import (
	"fmt"

	"github.com/opensrp/plan-service/internal/domain/activity"
	"github.com/opensrp/plan-service/internal/domain/plan"
	"github.com/opensrp/plan-service/internal/platform/clock"
	"github.com/opensrp/plan-service/internal/platform/ids"
)

// ExtractActivitiesFromPlanForm rebuilds the wire action and goal arrays
// from edited form activities.
//
// Merge policy when editing an existing plan: server-assigned fields
// (action identifier, task template, subject concept, goal measure) are
// carried over from the existing action/goal pair matched by action code;
// user-edited fields (title, description, reason, dates, goal value,
// priority) always come from the form.
//
// Activities with an unrecognised action code are dropped silently; the
// form UI is expected to only ever produce recognised codes.
func ExtractActivitiesFromPlanForm(activities []ActivityFormFields, planIdentifier string, existing *plan.PlanDefinition, clk clock.Clock) ([]plan.PlanAction, []plan.PlanGoal) {
	actions := make([]plan.PlanAction, 0, len(activities))
	goals := make([]plan.PlanGoal, 0, len(activities))
	seenGoals := make(map[string]bool)

	for _, af := range activities {
		kind, ok := activity.KindFromCode(af.ActionCode, af.Kind == Dynamic)
		if !ok {
			continue
		}
		tpl, ok := kind.Template()
		if !ok {
			continue
		}

		action := tpl.Action
		goal := tpl.Goal

		var prevAction *plan.PlanAction
		var prevGoal *plan.PlanGoal
		if existing != nil {
			for i := range existing.Action {
				if existing.Action[i].Code == af.ActionCode {
					prevAction = &existing.Action[i]
					prevGoal = existing.GoalByID(prevAction.GoalID)
					break
				}
			}
		}

		// Server-known fields win over freshly generated template values.
		if prevAction != nil {
			action.Identifier = prevAction.Identifier
			if prevAction.TaskTemplate != "" {
				action.TaskTemplate = prevAction.TaskTemplate
			}
			if prevAction.SubjectCodableConcept.Text != "" {
				action.SubjectCodableConcept = prevAction.SubjectCodableConcept
			}
			if prevAction.GoalID != "" {
				action.GoalID = prevAction.GoalID
				goal.ID = prevAction.GoalID
			}
		}
		if prevGoal != nil && len(prevGoal.Target) > 0 && prevGoal.Target[0].Measure != "" {
			goal.Target[0].Measure = prevGoal.Target[0].Measure
		}

		// User edits always override.
		if af.ActionTitle != "" {
			action.Title = af.ActionTitle
		}
		if af.ActionDescription != "" {
			action.Description = af.ActionDescription
		}
		if af.ActionReason != "" {
			action.Reason = af.ActionReason
		}
		action.Code = af.ActionCode
		action.TimingPeriod = plan.Period{
			Start: formatWireDate(af.TimingPeriodStart),
			End:   formatWireDate(af.TimingPeriodEnd),
		}

		if af.ActionIdentifier != "" {
			action.Identifier = af.ActionIdentifier
		}
		if action.Identifier == "" {
			action.Identifier = deriveActionIdentifier(clk, planIdentifier, action.GoalID)
		}

		// The form record is the source of truth for dynamic conditions and
		// triggers; template defaults were copied into it when the activity
		// was added, so they are never re-injected here.
		if af.Kind == Dynamic {
			action.Condition = normalizeConditions(af.Condition)
			action.Trigger = normalizeTriggers(af.Trigger)
		} else {
			action.Condition = nil
			action.Trigger = nil
		}

		if af.GoalDescription != "" {
			goal.Description = af.GoalDescription
		}
		if af.GoalPriority != "" {
			goal.Priority = af.GoalPriority
		}
		goal.Target[0].Detail.Value = af.GoalValue
		goal.Target[0].Detail.Unit = activity.GoalUnit(kind)
		goal.Target[0].Due = formatWireDate(af.GoalDue)

		actions = append(actions, action)
		if !seenGoals[goal.ID] {
			seenGoals[goal.ID] = true
			goals = append(goals, goal)
		}
	}

	// Prefix is 1-based array position, assigned after the drop pass so
	// surviving activities stay densely numbered.
	for i := range actions {
		actions[i].Prefix = i + 1
	}

	return actions, goals
}

// deriveActionIdentifier produces the namespaced identifier for an action
// that the server has not assigned one to. Identical inputs at the same
// instant yield identical identifiers.
func deriveActionIdentifier(clk clock.Clock, planIdentifier, goalID string) string {
	return ids.Derive(fmt.Sprintf("%d-%s-%s", clk.Now().UnixMilli(), planIdentifier, goalID))
}

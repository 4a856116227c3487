package planform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/opensrp/plan-service/internal/domain/activity"
	"github.com/opensrp/plan-service/internal/domain/plan"
	"github.com/opensrp/plan-service/internal/platform/clock"
	"github.com/opensrp/plan-service/internal/platform/ids"
)

// GeneratePlanDefinition assembles the complete wire payload from the
// whole-form values. When existing is non-nil (edit mode) the existing
// version is incremented; otherwise the form's version is passed through.
//
// The useContext assembly order is fixed — interventionType first, then
// fiStatus, fiReason, caseNum, opensrpEventId, taskGenerationStatus, each
// appended only when set — because consumers compare payloads byte for
// byte.
func GeneratePlanDefinition(form PlanFormFields, existing *plan.PlanDefinition, clk clock.Clock) plan.PlanDefinition {
	identifier := form.Identifier
	if identifier == "" {
		identifier = ids.Derive(fmt.Sprintf("%d", clk.Now().UnixMilli()))
	}

	version := form.Version
	if version == "" {
		version = strconv.Itoa(DefaultPlanVersion)
	}
	if existing != nil {
		if v, err := strconv.Atoi(existing.Version); err == nil {
			version = strconv.Itoa(v + 1)
		} else {
			version = strconv.Itoa(DefaultPlanVersion + 1)
		}
	}

	name, title := form.Name, form.Title
	if name == "" || title == "" {
		dn, dt := GetNameTitle(form)
		if name == "" {
			name = dn
		}
		if title == "" {
			title = dt
		}
	}

	end := form.End
	if end.IsZero() {
		end = form.Start.AddDate(0, 0, DefaultPlanDurationDays)
	}

	p := plan.PlanDefinition{
		Identifier: identifier,
		Version:    version,
		Name:       name,
		Title:      title,
		Status:     form.Status,
		Date:       formatWireDate(form.Date),
		EffectivePeriod: plan.Period{
			Start: formatWireDate(form.Start),
			End:   formatWireDate(end),
		},
		UseContext:   buildUseContext(form),
		Jurisdiction: make([]plan.Jurisdiction, 0, len(form.Jurisdictions)),
	}
	for _, j := range form.Jurisdictions {
		p.Jurisdiction = append(p.Jurisdiction, plan.Jurisdiction{Code: j.ID})
	}

	p.Action, p.Goal = ExtractActivitiesFromPlanForm(form.Activities, identifier, existing, clk)

	return p
}

func buildUseContext(form PlanFormFields) []plan.UseContext {
	uc := []plan.UseContext{
		{Code: plan.UseContextInterventionType, ValueCodableConcept: string(form.InterventionType)},
	}
	if form.FIStatus != "" {
		uc = append(uc, plan.UseContext{Code: plan.UseContextFIStatus, ValueCodableConcept: form.FIStatus})
	}
	if form.FIReason != "" {
		uc = append(uc, plan.UseContext{Code: plan.UseContextFIReason, ValueCodableConcept: form.FIReason})
	}
	if form.CaseNum != "" {
		uc = append(uc, plan.UseContext{Code: plan.UseContextCaseNum, ValueCodableConcept: form.CaseNum})
	}
	if form.OpensrpEventID != "" {
		uc = append(uc, plan.UseContext{Code: plan.UseContextOpensrpEventID, ValueCodableConcept: form.OpensrpEventID})
	}
	if form.TaskGenerationStatus != "" {
		uc = append(uc, plan.UseContext{Code: plan.UseContextTaskGenerationStatus, ValueCodableConcept: form.TaskGenerationStatus})
	}
	return uc
}

// GetNameTitle derives the plan name and title from the selected
// intervention type, FI status, first jurisdiction and plan date. The name
// is the title with spaces collapsed to hyphens.
func GetNameTitle(form PlanFormFields) (name, title string) {
	date := formatWireDate(form.Date)

	var parts []string
	switch form.InterventionType {
	case plan.InterventionFI, plan.InterventionDynamicFI:
		parts = append(parts, string(plan.InterventionFI))
		if form.FIStatus != "" {
			parts = append(parts, form.FIStatus)
		}
		if len(form.Jurisdictions) > 0 && form.Jurisdictions[0].Name != "" {
			parts = append(parts, form.Jurisdictions[0].Name)
		}
		parts = append(parts, date)
	default:
		parts = append(parts, string(form.InterventionType), date)
	}

	title = strings.Join(parts, " ")
	name = strings.ReplaceAll(title, " ", "-")
	return name, title
}

// GetPlanFormValues is the left inverse of GeneratePlanDefinition for every
// field the form can edit. Catalog-default activities are substituted only
// when the plan has zero actions (a create-from-template scenario).
func GetPlanFormValues(p *plan.PlanDefinition, clk clock.Clock) PlanFormFields {
	form := PlanFormFields{
		Identifier:       p.Identifier,
		Version:          p.Version,
		Name:             p.Name,
		Title:            p.Title,
		Status:           p.Status,
		InterventionType: p.InterventionType(),
	}

	if v, ok := p.UseContextValue(plan.UseContextFIStatus); ok {
		form.FIStatus = v
	}
	if v, ok := p.UseContextValue(plan.UseContextFIReason); ok {
		form.FIReason = v
	}
	if v, ok := p.UseContextValue(plan.UseContextCaseNum); ok {
		form.CaseNum = v
	}
	if v, ok := p.UseContextValue(plan.UseContextOpensrpEventID); ok {
		form.OpensrpEventID = v
	}

	// Three-case derivation: a dynamic plan always reads back Disabled,
	// whatever the stored useContext says; otherwise the stored value; else
	// the enabled sentinel.
	switch {
	case p.IsDynamic():
		form.TaskGenerationStatus = TaskGenerationDisabled
	default:
		if v, ok := p.UseContextValue(plan.UseContextTaskGenerationStatus); ok {
			form.TaskGenerationStatus = v
		} else {
			form.TaskGenerationStatus = TaskGenerationTrue
		}
	}

	now := clk.Now()
	if t, ok := parseWireDate(p.Date); ok {
		form.Date = t
	} else {
		form.Date = now
	}
	if t, ok := parseWireDate(p.EffectivePeriod.Start); ok {
		form.Start = t
	} else {
		form.Start = now
	}
	if t, ok := parseWireDate(p.EffectivePeriod.End); ok {
		form.End = t
	} else {
		form.End = now.AddDate(0, 0, DefaultPlanDurationDays)
	}

	form.Jurisdictions = make([]JurisdictionField, 0, len(p.Jurisdiction))
	for _, j := range p.Jurisdiction {
		form.Jurisdictions = append(form.Jurisdictions, JurisdictionField{ID: j.Code})
	}

	if len(p.Action) > 0 {
		for _, act := range ActivitiesFromPlan(p) {
			form.Activities = append(form.Activities, ExtractActivityForForm(act, clk))
		}
	} else {
		for _, kind := range activity.KindsForIntervention(form.InterventionType) {
			if f, ok := NewActivityFormFields(kind, clk); ok {
				form.Activities = append(form.Activities, f)
			}
		}
	}

	return form
}

// NewActivityFormFields builds a fresh form record from the catalog
// template for the given kind, as happens when an activity is added via the
// UI. Dynamic kinds arrive with the template's default conditions and
// triggers already copied in.
func NewActivityFormFields(kind activity.Kind, clk clock.Clock) (ActivityFormFields, bool) {
	tpl, ok := kind.Template()
	if !ok {
		return ActivityFormFields{}, false
	}
	return ExtractActivityForForm(PlanActivity{Action: tpl.Action, Goal: tpl.Goal}, clk), true
}

package compliance

import (
	"fmt"
	"time"

	"contract-compliance/internal/model"
)

// assessment carries everything a rule looks at.
type assessment struct {
	status    model.ContractRenewalStatus
	proposed  *time.Time
	projected float64
	limits    Limits
}

// rule is one step of the renewal waterfall. Check returns the alert and true
// when the rule fires.
type rule interface {
	Check(a *assessment) (model.LegalAlert, bool)
}

// waterfall is evaluated in order; the first rule that fires wins.
var waterfall = []rule{
	indefiniteRequiredRule{},
	ceilingExceededRule{},
	minimumTermRule{},
	approachingCeilingRule{},
}

type indefiniteRequiredRule struct{}

func (indefiniteRequiredRule) Check(a *assessment) (model.LegalAlert, bool) {
	if !a.status.MustBeIndefinite {
		return model.LegalAlert{}, false
	}
	return model.LegalAlert{
		Level: model.AlertDanger,
		Title: "Contrato debe ser a término indefinido",
		Message: fmt.Sprintf(
			"El trabajador acumula %s años bajo contrato a término fijo y supera el límite legal de %s años. "+
				"No se permite otra renovación a término fijo.",
			FormatYears(a.status.TotalYearsWorked), FormatYears(a.limits.CeilingYears)),
	}, true
}

type ceilingExceededRule struct{}

func (ceilingExceededRule) Check(a *assessment) (model.LegalAlert, bool) {
	if a.projected <= a.limits.CeilingYears {
		return model.LegalAlert{}, false
	}
	return model.LegalAlert{
		Level: model.AlertDanger,
		Title: "La renovación supera el límite legal",
		Message: fmt.Sprintf(
			"Con esta renovación el trabajador acumularía %s años, por encima del límite de %s años. "+
				"Se recomienda convertir el contrato a término indefinido en lugar de renovarlo.",
			FormatYears(a.projected), FormatYears(a.limits.CeilingYears)),
		PredictionText: fmt.Sprintf("Proyección con esta renovación: ≈%s años totales", FormatYears(a.projected)),
	}, true
}

type minimumTermRule struct{}

func (minimumTermRule) Check(a *assessment) (model.LegalAlert, bool) {
	if a.status.NextPeriod != a.limits.MinimumTermRenewal {
		return model.LegalAlert{}, false
	}
	duration := minimumDuration(a.limits.MinimumTermDays)
	alert := model.LegalAlert{
		Level: model.AlertWarning,
		Title: fmt.Sprintf("Renovación número %d: duración mínima obligatoria", a.limits.MinimumTermRenewal),
	}
	if a.proposed != nil {
		alert.Message = fmt.Sprintf(
			"La renovación número %d debe tener una duración mínima de %s. "+
				"Verifique que la fecha de finalización propuesta cumpla al menos %d días.",
			a.limits.MinimumTermRenewal, duration, a.limits.MinimumTermDays)
		alert.PredictionText = fmt.Sprintf("Proyección con esta renovación: ≈%s años totales", FormatYears(a.projected))
	} else {
		alert.Message = fmt.Sprintf(
			"A partir de la renovación número %d el contrato debe tener una duración mínima de %s.",
			a.limits.MinimumTermRenewal, duration)
	}
	return alert, true
}

type approachingCeilingRule struct{}

func (approachingCeilingRule) Check(a *assessment) (model.LegalAlert, bool) {
	if a.projected <= a.limits.ApproachingYears {
		return model.LegalAlert{}, false
	}
	alert := model.LegalAlert{
		Level: model.AlertWarning,
		Title: "Cerca del límite legal",
		Message: fmt.Sprintf(
			"El tiempo acumulado proyectado es de %s años, cerca del límite de %s años. "+
				"Una renovación posterior podría superarlo.",
			FormatYears(a.projected), FormatYears(a.limits.CeilingYears)),
	}
	if a.proposed != nil {
		alert.PredictionText = fmt.Sprintf("Proyección con esta renovación: ≈%s años totales", FormatYears(a.projected))
	}
	return alert, true
}

func unrestricted(a *assessment) model.LegalAlert {
	alert := model.LegalAlert{
		Level: model.AlertSuccess,
		Title: "Renovación permitida",
		Message: fmt.Sprintf(
			"El trabajador acumula %s años bajo contrato a término fijo. La renovación no tiene restricciones especiales.",
			FormatYears(a.status.TotalYearsWorked)),
	}
	if a.proposed != nil {
		alert.PredictionText = fmt.Sprintf("Proyección con esta renovación: ≈%s años totales", FormatYears(a.projected))
	} else {
		alert.PredictionText = "Sin restricciones especiales para la próxima renovación."
	}
	return alert
}

// minimumDuration renders a day count, spelling out whole years: "1 año (365 días)".
func minimumDuration(days int) string {
	if days%daysPerYear != 0 {
		return fmt.Sprintf("%d días", days)
	}
	if years := days / daysPerYear; years != 1 {
		return fmt.Sprintf("%d años (%d días)", years, days)
	}
	return fmt.Sprintf("1 año (%d días)", days)
}

package compliance

import (
	"time"

	"contract-compliance/internal/dates"
	"contract-compliance/internal/model"
)

// Clock supplies the current instant.
type Clock func() time.Time

// Evaluator binds the renewal rules to a jurisdiction and a clock. It holds no
// mutable state and is safe for concurrent use.
type Evaluator struct {
	limits Limits
	now    Clock
}

// New returns an Evaluator. A nil clock reads the wall clock.
func New(limits Limits, now Clock) *Evaluator {
	if now == nil {
		now = time.Now
	}
	return &Evaluator{limits: limits, now: now}
}

// Evaluate classifies the renewal risk of a contract, optionally projecting a
// renewal that ends on proposed.
func (e *Evaluator) Evaluate(status model.ContractRenewalStatus, proposed *time.Time) model.LegalAlert {
	return Evaluate(status, proposed, e.now(), e.limits)
}

// Summary returns the display facts for status, projected through proposed.
func (e *Evaluator) Summary(status model.ContractRenewalStatus, proposed *time.Time) model.StatusSummary {
	return Summarize(status, proposed, e.now(), e.limits)
}

// Evaluate runs the renewal waterfall for status as of today.
func Evaluate(status model.ContractRenewalStatus, proposed *time.Time, today time.Time, limits Limits) model.LegalAlert {
	a := &assessment{
		status:    status,
		proposed:  proposed,
		projected: ProjectedYears(status, proposed, today),
		limits:    limits,
	}
	for _, r := range waterfall {
		if alert, fired := r.Check(a); fired {
			return alert
		}
	}
	return unrestricted(a)
}

// Summarize returns the display facts for status. The projection is
// highlighted when it exceeds the ceiling.
func Summarize(status model.ContractRenewalStatus, proposed *time.Time, today time.Time, limits Limits) model.StatusSummary {
	projected := ProjectedYears(status, proposed, today)
	return model.StatusSummary{
		CurrentPeriod:        status.CurrentPeriod,
		NextPeriod:           status.NextPeriod,
		TotalYearsWorked:     RoundYears(status.TotalYearsWorked),
		ProjectedTotalYears:  RoundYears(projected),
		ProjectedHighlighted: projected > limits.CeilingYears,
	}
}

// ProjectedYears is the tenure the contract would reach if renewed until
// proposed. Without a proposed date it is the current tenure. Only the
// calendar dates of today and proposed count, in their own locations.
func ProjectedYears(status model.ContractRenewalStatus, proposed *time.Time, today time.Time) float64 {
	if proposed == nil {
		return status.TotalYearsWorked
	}
	extensionDays := dates.CalendarDays(today, *proposed)
	return status.TotalYearsWorked + float64(extensionDays)/daysPerYear
}

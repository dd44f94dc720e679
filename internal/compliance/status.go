package compliance

import (
	"time"

	"contract-compliance/internal/dates"
	"contract-compliance/internal/model"
)

// NewStatus derives the renewal status of a stored contract. Periods are
// numbered by executed renewals: the original term is period 0.
func NewStatus(history model.RenewalHistory, today time.Time, limits Limits) model.ContractRenewalStatus {
	years := float64(dates.CalendarDays(history.StartDate.Time, today)) / daysPerYear
	return model.ContractRenewalStatus{
		TotalPeriods:     history.Renewals,
		CurrentPeriod:    history.Renewals,
		TotalYearsWorked: years,
		NextPeriod:       history.Renewals + 1,
		MustBeIndefinite: years >= limits.CeilingYears,
	}
}

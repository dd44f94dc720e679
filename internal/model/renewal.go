package model

// ContractRenewalStatus is the renewal history of a fixed-term contract as seen today.
// NextPeriod is trusted as supplied; callers may number periods their own way.
type ContractRenewalStatus struct {
	TotalPeriods     int     `json:"total_periods"`
	CurrentPeriod    int     `json:"current_period"`
	TotalYearsWorked float64 `json:"total_years_worked"`
	NextPeriod       int     `json:"next_period"`
	MustBeIndefinite bool    `json:"must_be_indefinite"`
}

// AlertLevel tags a LegalAlert. Styling is derived from it by the caller.
type AlertLevel string

const (
	AlertSuccess AlertLevel = "success"
	AlertInfo    AlertLevel = "info"
	AlertWarning AlertLevel = "warning"
	AlertDanger  AlertLevel = "danger"
)

type LegalAlert struct {
	Level          AlertLevel `json:"level"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	PredictionText string     `json:"prediction_text,omitempty"`
}

// StatusSummary holds the display facts for a contract's renewal state.
type StatusSummary struct {
	CurrentPeriod        int     `json:"current_period"`
	NextPeriod           int     `json:"next_period"`
	TotalYearsWorked     float64 `json:"total_years_worked"`
	ProjectedTotalYears  float64 `json:"projected_total_years"`
	ProjectedHighlighted bool    `json:"projected_highlighted"`
}

package model

type EvaluationResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CalculationResult   CalculationResult   `json:"calculation_result"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	TenantID               string `json:"tenant_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type CalculationResult struct {
	Messages    []CalculationMessage `json:"messages"`
	Evaluations []EvaluatedItem      `json:"evaluations"`
}

// EvaluatedItem is the outcome for one request item. Alert and Summary are nil
// when the item was rejected; the rejection is in CalculationMessageIndexes.
type EvaluatedItem struct {
	Index                     int            `json:"index"`
	Reference                 string         `json:"reference,omitempty"`
	Alert                     *LegalAlert    `json:"alert"`
	Summary                   *StatusSummary `json:"summary"`
	CalculationMessageIndexes []int          `json:"calculation_message_indexes,omitempty"`
}

type SingleEvaluationResponse struct {
	Alert   LegalAlert    `json:"alert"`
	Summary StatusSummary `json:"summary"`
}

// BandedEntry is an expiring entry with its display band.
type BandedEntry struct {
	ExpiringContractEntry
	Band string `json:"band"`
}

type ScanResponse struct {
	Today   string        `json:"today"`
	Entries []BandedEntry `json:"entries"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)

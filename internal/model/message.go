package model

type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

const (
	CodeInvalidStatus       = "INVALID_STATUS"
	CodeInvalidProposedDate = "INVALID_PROPOSED_END_DATE"
	CodeContractNotFound    = "CONTRACT_NOT_FOUND"
	CodeNextPeriodMismatch  = "NEXT_PERIOD_MISMATCH"
)

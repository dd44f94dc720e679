package model

// EvaluationRequest asks for one legal alert per item.
type EvaluationRequest struct {
	TenantID string           `json:"tenant_id"`
	Items    []EvaluationItem `json:"items" validate:"required,min=1,dive"`
}

type EvaluationItem struct {
	Reference       string                `json:"reference"`
	Status          ContractRenewalStatus `json:"status"`
	ProposedEndDate string                `json:"proposed_end_date,omitempty"`
}

// ContractTarget names a stored contract to evaluate.
type ContractTarget struct {
	ContractID      string `json:"contract_id" validate:"required"`
	ProposedEndDate string `json:"proposed_end_date,omitempty"`
}

type ScanRequest struct {
	Contracts            []ContractRecord `json:"contracts" validate:"dive"`
	DaysBeforeExpiration []int            `json:"days_before_expiration" validate:"dive,min=0"`
	Today                string           `json:"today,omitempty"`
}

type SingleEvaluationRequest struct {
	Status          ContractRenewalStatus `json:"status"`
	ProposedEndDate string                `json:"proposed_end_date,omitempty"`
}

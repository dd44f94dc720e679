package model

import "contract-compliance/internal/dates"

// ContractRecord is an approved, unarchived contract with an end date.
type ContractRecord struct {
	ID                   string     `json:"id" validate:"required"`
	FullName             string     `json:"full_name"`
	IdentificationNumber string     `json:"identification_number"`
	CompanyName          string     `json:"company_name,omitempty"`
	EndDate              dates.Date `json:"end_date" validate:"required"`
}

type ExpiringContractEntry struct {
	ID                   string     `json:"id"`
	FullName             string     `json:"full_name"`
	IdentificationNumber string     `json:"identification_number"`
	CompanyName          string     `json:"company_name"`
	EndDate              dates.Date `json:"end_date"`
	DaysRemaining        int        `json:"days_remaining"`
}

// ExpirationNotificationConfig lists the exact lead times, in days, at which a
// contract surfaces as expiring.
type ExpirationNotificationConfig struct {
	DaysBeforeExpiration []int `json:"days_before_expiration"`
}

// RenewalHistory is the stored history a ContractRenewalStatus is derived from.
type RenewalHistory struct {
	ContractID string     `json:"contract_id"`
	StartDate  dates.Date `json:"start_date"`
	Renewals   int        `json:"renewals"`
}

package expiration

import "contract-compliance/internal/model"

// Display bands for days remaining.
const (
	BandUrgent  = "urgent"
	BandWarning = "warning"
	BandInfo    = "info"
)

const (
	urgentDays  = 7
	warningDays = 14
)

// Band classifies days remaining: up to 7 is urgent, 8 to 14 a warning, the rest informational.
func Band(daysRemaining int) string {
	switch {
	case daysRemaining <= urgentDays:
		return BandUrgent
	case daysRemaining <= warningDays:
		return BandWarning
	default:
		return BandInfo
	}
}

// WithBands attaches the display band to each entry.
func WithBands(entries []model.ExpiringContractEntry) []model.BandedEntry {
	banded := make([]model.BandedEntry, len(entries))
	for i, e := range entries {
		banded[i] = model.BandedEntry{ExpiringContractEntry: e, Band: Band(e.DaysRemaining)}
	}
	return banded
}

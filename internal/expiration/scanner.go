// Package expiration finds contracts whose remaining days hit a configured
// notification lead time.
package expiration

import (
	"slices"
	"strings"
	"time"

	"contract-compliance/internal/dates"
	"contract-compliance/internal/model"
)

// MaxEntries caps a scan result. Callers needing more paginate their own query.
const MaxEntries = 10

// NewConfig builds a notification config from lead times, dropping negatives
// and duplicates. The result is sorted ascending.
func NewConfig(days ...int) model.ExpirationNotificationConfig {
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d >= 0 {
			out = append(out, d)
		}
	}
	slices.Sort(out)
	return model.ExpirationNotificationConfig{DaysBeforeExpiration: slices.Compact(out)}
}

// MaxLead is the largest configured lead time, or -1 when none is configured.
func MaxLead(cfg model.ExpirationNotificationConfig) int {
	if len(cfg.DaysBeforeExpiration) == 0 {
		return -1
	}
	return slices.Max(cfg.DaysBeforeExpiration)
}

// Window is the [today, today+maxLead] end-date range worth fetching for cfg.
// ok is false when nothing is configured.
func Window(cfg model.ExpirationNotificationConfig, today time.Time) (from, to time.Time, ok bool) {
	lead := MaxLead(cfg)
	if lead < 0 {
		return time.Time{}, time.Time{}, false
	}
	from = dates.Midnight(today)
	return from, from.AddDate(0, 0, lead), true
}

// Scan returns the contracts whose remaining calendar days exactly match one
// of the configured lead times, ordered by end date then id, capped at
// MaxEntries. The result is never nil.
func Scan(contracts []model.ContractRecord, cfg model.ExpirationNotificationConfig, today time.Time) []model.ExpiringContractEntry {
	entries := []model.ExpiringContractEntry{}
	lead := MaxLead(cfg)
	if lead < 0 {
		return entries
	}

	thresholds := make(map[int]struct{}, len(cfg.DaysBeforeExpiration))
	for _, d := range cfg.DaysBeforeExpiration {
		thresholds[d] = struct{}{}
	}

	for _, c := range contracts {
		remaining := dates.CalendarDays(today, c.EndDate.Time)
		if remaining < 0 || remaining > lead {
			continue
		}
		if _, ok := thresholds[remaining]; !ok {
			continue
		}
		entries = append(entries, model.ExpiringContractEntry{
			ID:                   c.ID,
			FullName:             c.FullName,
			IdentificationNumber: c.IdentificationNumber,
			CompanyName:          c.CompanyName,
			EndDate:              dates.On(c.EndDate.Time),
			DaysRemaining:        remaining,
		})
	}

	slices.SortFunc(entries, func(a, b model.ExpiringContractEntry) int {
		if c := a.EndDate.Compare(b.EndDate.Time); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}

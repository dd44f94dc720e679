package expiration

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-compliance/internal/dates"
	"contract-compliance/internal/model"
)

var today = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

func contractEnding(id string, days int) model.ContractRecord {
	return model.ContractRecord{
		ID:                   id,
		FullName:             "Empleado " + id,
		IdentificationNumber: "CC-" + id,
		CompanyName:          "Acme S.A.S.",
		EndDate:              dates.On(today.AddDate(0, 0, days)),
	}
}

func TestScan_ExactThresholdMatch(t *testing.T) {
	contracts := []model.ContractRecord{
		contractEnding("a", 13),
		contractEnding("b", 14),
		contractEnding("c", 15),
	}

	got := Scan(contracts, NewConfig(14), today)

	want := []model.ExpiringContractEntry{{
		ID:                   "b",
		FullName:             "Empleado b",
		IdentificationNumber: "CC-b",
		CompanyName:          "Acme S.A.S.",
		EndDate:              dates.On(today.AddDate(0, 0, 14)),
		DaysRemaining:        14,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Scan() mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_EmptyConfig(t *testing.T) {
	contracts := []model.ContractRecord{contractEnding("a", 0), contractEnding("b", 7)}

	got := Scan(contracts, NewConfig(), today)

	require.NotNil(t, got)
	assert.Empty(t, got)

	got = Scan(contracts, model.ExpirationNotificationConfig{}, today)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestScan_MultipleThresholds(t *testing.T) {
	contracts := []model.ContractRecord{
		contractEnding("late", 30),
		contractEnding("soon", 7),
		contractEnding("between", 20),
		contractEnding("today", 0),
		contractEnding("past", -1),
	}

	got := Scan(contracts, NewConfig(30, 7, 0), today)

	ids := make([]string, len(got))
	days := make([]int, len(got))
	for i, e := range got {
		ids[i], days[i] = e.ID, e.DaysRemaining
	}
	assert.Equal(t, []string{"today", "soon", "late"}, ids)
	assert.Equal(t, []int{0, 7, 30}, days)
}

func TestScan_TiesBrokenByID(t *testing.T) {
	contracts := []model.ContractRecord{
		contractEnding("z", 7),
		contractEnding("m", 7),
		contractEnding("a", 7),
		contractEnding("b", 3),
	}

	got := Scan(contracts, NewConfig(3, 7), today)

	require.Len(t, got, 4)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "m", got[2].ID)
	assert.Equal(t, "z", got[3].ID)
}

func TestScan_CappedAtMaxEntries(t *testing.T) {
	var contracts []model.ContractRecord
	for i := 14; i >= 0; i-- {
		contracts = append(contracts, contractEnding(fmt.Sprintf("c%02d", i), 5))
	}

	got := Scan(contracts, NewConfig(5), today)

	require.Len(t, got, MaxEntries)
	assert.Equal(t, "c00", got[0].ID)
	assert.Equal(t, "c09", got[MaxEntries-1].ID)
}

func TestScan_DuplicateThresholdsMatchOnce(t *testing.T) {
	cfg := model.ExpirationNotificationConfig{DaysBeforeExpiration: []int{14, 14, 14}}

	got := Scan([]model.ContractRecord{contractEnding("a", 14)}, cfg, today)

	assert.Len(t, got, 1)
}

func TestScan_NormalizesToCalendarDays(t *testing.T) {
	bogota := time.FixedZone("COT", -5*60*60)
	eveningToday := time.Date(2026, time.March, 10, 22, 45, 0, 0, bogota)
	contract := model.ContractRecord{ID: "a", EndDate: dates.On(time.Date(2026, time.March, 24, 0, 0, 0, 0, time.UTC))}

	got := Scan([]model.ContractRecord{contract}, NewConfig(14), eveningToday)

	require.Len(t, got, 1)
	assert.Equal(t, 14, got[0].DaysRemaining)
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(30, 7, 14, 7, -1, 0)
	assert.Equal(t, []int{0, 7, 14, 30}, cfg.DaysBeforeExpiration)

	assert.Empty(t, NewConfig().DaysBeforeExpiration)
	assert.Empty(t, NewConfig(-3).DaysBeforeExpiration)
}

func TestWindow(t *testing.T) {
	from, to, ok := Window(NewConfig(7, 30), today.Add(9*time.Hour))
	require.True(t, ok)
	assert.Equal(t, today, from)
	assert.Equal(t, today.AddDate(0, 0, 30), to)

	_, _, ok = Window(NewConfig(), today)
	assert.False(t, ok)
}

func TestBand(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, BandUrgent},
		{7, BandUrgent},
		{8, BandWarning},
		{14, BandWarning},
		{15, BandInfo},
		{60, BandInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Band(tt.days), "Band(%d)", tt.days)
	}
}

func TestWithBands(t *testing.T) {
	entries := Scan([]model.ContractRecord{contractEnding("a", 7), contractEnding("b", 30)}, NewConfig(7, 30), today)

	banded := WithBands(entries)

	require.Len(t, banded, 2)
	assert.Equal(t, BandUrgent, banded[0].Band)
	assert.Equal(t, BandInfo, banded[1].Band)
	assert.Equal(t, "b", banded[1].ID)
}

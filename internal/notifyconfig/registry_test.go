package notifyconfig

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	calls int
	days  []int
	err   error
}

func (l *countingLoader) load(context.Context) ([]int, error) {
	l.calls++
	return l.days, l.err
}

func TestConfig_StaticWins(t *testing.T) {
	loader := &countingLoader{days: []int{1}}
	r := New(WithStatic([]int{30, 7, 7}), WithLoader(loader.load))

	cfg := r.Config(context.Background())

	assert.Equal(t, []int{7, 30}, cfg.DaysBeforeExpiration)
	assert.Zero(t, loader.calls)
}

func TestConfig_EmptyStaticDisablesNotifications(t *testing.T) {
	r := New(WithStatic([]int{}), WithLoader(func(context.Context) ([]int, error) {
		t.Fatal("loader must not be called")
		return nil, nil
	}))

	assert.Empty(t, r.Config(context.Background()).DaysBeforeExpiration)
}

func TestConfig_NoLoader(t *testing.T) {
	assert.Empty(t, New().Config(context.Background()).DaysBeforeExpiration)
}

func TestConfig_CachesUntilTTL(t *testing.T) {
	now := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	loader := &countingLoader{days: []int{14, 7}}
	r := New(WithLoader(loader.load), WithTTL(time.Minute), WithClock(func() time.Time { return now }))

	first := r.Config(context.Background())
	second := r.Config(context.Background())
	require.Equal(t, 1, loader.calls)
	assert.Equal(t, []int{7, 14}, first.DaysBeforeExpiration)
	assert.Equal(t, first, second)

	now = now.Add(2 * time.Minute)
	loader.days = []int{30}
	assert.Equal(t, []int{30}, r.Config(context.Background()).DaysBeforeExpiration)
	assert.Equal(t, 2, loader.calls)
}

func TestConfig_FallsBackToEmptyOnError(t *testing.T) {
	loader := &countingLoader{err: errors.New("relation \"notification_settings\" does not exist")}
	r := New(WithLoader(loader.load))

	cfg := r.Config(context.Background())
	assert.NotNil(t, cfg.DaysBeforeExpiration)
	assert.Empty(t, cfg.DaysBeforeExpiration)

	// Failures are not cached
	loader.err = nil
	loader.days = []int{5}
	assert.Equal(t, []int{5}, r.Config(context.Background()).DaysBeforeExpiration)
	assert.Equal(t, 2, loader.calls)
}

func TestInvalidate(t *testing.T) {
	loader := &countingLoader{days: []int{3}}
	r := New(WithLoader(loader.load))

	r.Config(context.Background())
	r.Invalidate()
	r.Config(context.Background())

	assert.Equal(t, 2, loader.calls)
}

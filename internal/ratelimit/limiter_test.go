package ratelimit_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/ratelimit"
)

// fakeClock hands out a mutable instant so tests can cross period
// boundaries without sleeping.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func melbourne(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Melbourne")
	require.NoError(t, err)
	return loc
}

func TestLimiter_AllowWithinCaps(t *testing.T) {
	l, err := ratelimit.NewLimiter(3, 10, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Allow())
	}

	u := l.Usage()
	assert.Equal(t, 3, u.RequestsToday)
	assert.Equal(t, 0, u.DailyRemaining)
	assert.Equal(t, 3, u.RequestsMonth)
	assert.Equal(t, 7, u.MonthlyRemaining)
}

func TestLimiter_DailyCap(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 10, 9, 0, 0, 0, melbourne(t))}
	l, err := ratelimit.NewLimiter(2, 100, clock.now)
	require.NoError(t, err)

	require.NoError(t, l.Allow())
	require.NoError(t, l.Allow())

	err = l.Allow()
	var le *ratelimit.LimitError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ratelimit.TypeDaily, le.Type)
	assert.Equal(t, "Daily limit of 2 requests reached.", le.Message)
	assert.Contains(t, le.ResetsAt, "Wednesday 11 March 2026")
	assert.Contains(t, le.ResetsAt, "12:00 AM")
}

func TestLimiter_DailyCapResetsNextDay(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 10, 9, 0, 0, 0, melbourne(t))}
	l, err := ratelimit.NewLimiter(1, 100, clock.now)
	require.NoError(t, err)

	require.NoError(t, l.Allow())
	require.Error(t, l.Allow())

	clock.t = clock.t.AddDate(0, 0, 1)
	require.NoError(t, l.Allow())

	u := l.Usage()
	assert.Equal(t, 1, u.RequestsToday)
	assert.Equal(t, 2, u.RequestsMonth, "monthly counter survives the daily rollover")
}

func TestLimiter_MonthlyCap(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 10, 9, 0, 0, 0, melbourne(t))}
	l, err := ratelimit.NewLimiter(100, 2, clock.now)
	require.NoError(t, err)

	require.NoError(t, l.Allow())
	require.NoError(t, l.Allow())

	err = l.Allow()
	var le *ratelimit.LimitError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ratelimit.TypeMonthly, le.Type)
	assert.Equal(t, "Monthly limit of 2 requests reached.", le.Message)
	assert.Contains(t, le.ResetsAt, "1 April 2026")
}

func TestLimiter_MonthlyCapResetsNextMonth(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 31, 23, 0, 0, 0, melbourne(t))}
	l, err := ratelimit.NewLimiter(100, 1, clock.now)
	require.NoError(t, err)

	require.NoError(t, l.Allow())
	require.Error(t, l.Allow())

	clock.t = time.Date(2026, 4, 1, 0, 30, 0, 0, melbourne(t))
	require.NoError(t, l.Allow())

	u := l.Usage()
	assert.Equal(t, "2026-04-01", u.Month)
	assert.Equal(t, 1, u.RequestsMonth)
}

func TestLimiter_MonthlyCheckedBeforeDaily(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 10, 9, 0, 0, 0, melbourne(t))}
	l, err := ratelimit.NewLimiter(1, 1, clock.now)
	require.NoError(t, err)

	require.NoError(t, l.Allow())

	var le *ratelimit.LimitError
	require.True(t, errors.As(l.Allow(), &le))
	assert.Equal(t, ratelimit.TypeMonthly, le.Type)
}

func TestLimiter_UsageSnapshot(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 8, 31, 12, 0, 0, 0, melbourne(t))}
	l, err := ratelimit.NewLimiter(50, 500, clock.now)
	require.NoError(t, err)

	u := l.Usage()
	assert.Equal(t, "2026-08-31", u.Date)
	assert.Equal(t, "2026-08-01", u.Month)
	assert.Equal(t, 50, u.DailyLimit)
	assert.Equal(t, 500, u.MonthlyLimit)
	assert.Equal(t, 0, u.RequestsToday)
}

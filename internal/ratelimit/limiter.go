// Package ratelimit enforces global daily and monthly request caps. Periods
// roll over at midnight Melbourne time, matching where the service's spend
// is accounted.
package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

const (
	TypeDaily   = "daily_limit"
	TypeMonthly = "monthly_limit"

	resetLayout = "Monday 2 January 2006 at 3:04 PM MST"
)

// LimitError reports an exhausted cap. It serializes directly into the 429
// response body.
type LimitError struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	ResetsAt string `json:"resets_at"`
}

func (e *LimitError) Error() string {
	return e.Message
}

// Usage is a point-in-time snapshot of both counters.
type Usage struct {
	Date             string `json:"date"`
	RequestsToday    int    `json:"requests_today"`
	DailyLimit       int    `json:"daily_limit"`
	DailyRemaining   int    `json:"daily_remaining"`
	Month            string `json:"month"`
	RequestsMonth    int    `json:"requests_month"`
	MonthlyLimit     int    `json:"monthly_limit"`
	MonthlyRemaining int    `json:"monthly_remaining"`
}

// Limiter counts requests against a daily and a monthly cap. Both counters
// are in-process; a restart resets them.
type Limiter struct {
	mu         sync.Mutex
	now        func() time.Time
	loc        *time.Location
	maxDaily   int
	maxMonthly int
	day        time.Time
	dayCount   int
	month      time.Time
	monthCount int
}

// NewLimiter builds a Limiter with the given caps. now overrides the clock
// for tests; nil means time.Now.
func NewLimiter(maxDaily, maxMonthly int, now func() time.Time) (*Limiter, error) {
	loc, err := time.LoadLocation("Australia/Melbourne")
	if err != nil {
		return nil, fmt.Errorf("loading melbourne timezone: %w", err)
	}
	if now == nil {
		now = time.Now
	}

	l := &Limiter{now: now, loc: loc, maxDaily: maxDaily, maxMonthly: maxMonthly}
	t := now().In(loc)
	l.day = dayStart(t)
	l.month = monthStart(t)
	return l, nil
}

// Allow consumes one request slot, or returns a *LimitError naming the
// exhausted cap and when it resets. The monthly cap is checked first.
func (l *Limiter) Allow() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := l.now().In(l.loc)
	l.rollover(t)

	if l.monthCount >= l.maxMonthly {
		return &LimitError{
			Type:     TypeMonthly,
			Message:  fmt.Sprintf("Monthly limit of %d requests reached.", l.maxMonthly),
			ResetsAt: monthStart(t).AddDate(0, 1, 0).Format(resetLayout),
		}
	}
	if l.dayCount >= l.maxDaily {
		return &LimitError{
			Type:     TypeDaily,
			Message:  fmt.Sprintf("Daily limit of %d requests reached.", l.maxDaily),
			ResetsAt: dayStart(t).AddDate(0, 0, 1).Format(resetLayout),
		}
	}

	l.dayCount++
	l.monthCount++
	return nil
}

// Usage reports both counters after applying any pending rollover.
func (l *Limiter) Usage() Usage {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rollover(l.now().In(l.loc))

	return Usage{
		Date:             l.day.Format("2006-01-02"),
		RequestsToday:    l.dayCount,
		DailyLimit:       l.maxDaily,
		DailyRemaining:   remaining(l.maxDaily, l.dayCount),
		Month:            l.month.Format("2006-01-02"),
		RequestsMonth:    l.monthCount,
		MonthlyLimit:     l.maxMonthly,
		MonthlyRemaining: remaining(l.maxMonthly, l.monthCount),
	}
}

// rollover resets whichever counters belong to an elapsed period. Callers
// hold the mutex.
func (l *Limiter) rollover(t time.Time) {
	if day := dayStart(t); !day.Equal(l.day) {
		l.day = day
		l.dayCount = 0
	}
	if month := monthStart(t); !month.Equal(l.month) {
		l.month = month
		l.monthCount = 0
	}
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func remaining(max, used int) int {
	if used >= max {
		return 0
	}
	return max - used
}

package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/bao-console/internal/pkg/apperrors"
)

// Period selects the revenue window.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

var Periods = []Period{PeriodToday, PeriodWeek, PeriodMonth, PeriodYear, PeriodAll}

func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PeriodAll, nil
	}
	for _, p := range Periods {
		if string(p) == s {
			return p, nil
		}
	}
	return "", apperrors.NewValidationError(fmt.Sprintf("Unknown period %q (today, week, month, year, all)", s))
}

// Since returns the inclusive lower bound of the window ending at now. ok is false for
// PeriodAll, which has no bound.
func (p Period) Since(now time.Time) (since time.Time, ok bool) {
	switch p {
	case PeriodToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case PeriodWeek:
		return now.AddDate(0, 0, -7), true
	case PeriodMonth:
		return now.AddDate(0, -1, 0), true
	case PeriodYear:
		return now.AddDate(-1, 0, 0), true
	}
	return time.Time{}, false
}

// Contains reports whether t falls in the window. Orders without a creation time only
// count toward PeriodAll.
func (p Period) Contains(t *time.Time, now time.Time) bool {
	since, bounded := p.Since(now)
	if !bounded {
		return true
	}
	if t == nil {
		return false
	}
	return !t.Before(since) && !t.After(now)
}

package model

import (
	"bytes"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// WireTimeLayout is what the backend's datetime.fromisoformat accepts.
const WireTimeLayout = "2006-01-02T15:04:05"

func init() {
	// the backend models price/amount as floats
	decimal.MarshalJSONWithoutQuotes = true
}

// Timestamp decodes the backend's naive ISO datetimes (and any other common layout).
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp accepts user or wire input such as "2025-06-01", "06/01/2025 14:00"
// or RFC3339, interpreted in local time when no zone is given.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, errors.New("empty date")
	}
	t, err := dateparse.ParseLocal(s)
	if err != nil {
		return Timestamp{}, errors.Wrapf(err, "invalid date %q", s)
	}
	return Timestamp{Time: t}, nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + ts.Local().Format(WireTimeLayout) + `"`), nil
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		ts.Time = time.Time{}
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		ts.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// TimePtr returns nil for a nil or zero timestamp.
func (ts *Timestamp) TimePtr() *time.Time {
	if ts == nil || ts.IsZero() {
		return nil
	}
	t := ts.Time
	return &t
}

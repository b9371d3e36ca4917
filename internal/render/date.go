package render

import (
	"time"

	"github.com/nleeper/goment"
)

// DateFormatter formats a timestamp with a pattern in moment.js token vocabulary
// (YYYY, MM, DD, HH, mm, MMMM, Do, ...).
type DateFormatter interface {
	Format(t time.Time, pattern string) string
}

// MomentFormatter is the default DateFormatter
type MomentFormatter struct{}

func (MomentFormatter) Format(t time.Time, pattern string) string {
	g, err := goment.New(t)
	if err != nil {
		return t.Format(time.RFC3339)
	}
	if pattern == "" {
		return g.Format()
	}
	return g.Format(pattern)
}

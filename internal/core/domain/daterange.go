package domain

import (
	"errors"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidRange = errors.New("date range must cover at least one night")

// Day strips the time-of-day component. All calendar math in this package
// works on UTC midnights.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected %s", s, DateLayout)
	}
	return t, nil
}

// DateRange is a half-open interval [Start, End): the check-out day itself is
// free for a new check-in (same-day turnover).
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: Day(start), End: Day(end)}
	if !r.End.After(r.Start) {
		return DateRange{}, ErrInvalidRange
	}
	return r, nil
}

func (r DateRange) Nights() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// Overlaps reports whether the two ranges share at least one night.
// Touching boundaries (one range ending the day the other starts) do not
// overlap.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// ContainsDay reports whether day falls within [Start, End).
func (r DateRange) ContainsDay(day time.Time) bool {
	d := Day(day)
	return !d.Before(r.Start) && d.Before(r.End)
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.Format(DateLayout), r.End.Format(DateLayout))
}

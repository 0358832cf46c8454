package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/casamar/booking-api/internal/core/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewDateRange_RejectsZeroAndNegativeNights(t *testing.T) {
	_, err := domain.NewDateRange(date(2030, 7, 10), date(2030, 7, 10))
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = domain.NewDateRange(date(2030, 7, 10), date(2030, 7, 8))
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestNewDateRange_StripsTimeOfDay(t *testing.T) {
	r, err := domain.NewDateRange(
		time.Date(2030, 7, 10, 18, 30, 0, 0, time.UTC),
		time.Date(2030, 7, 12, 9, 0, 0, 0, time.UTC),
	)

	assert.NoError(t, err)
	assert.Equal(t, date(2030, 7, 10), r.Start)
	assert.Equal(t, date(2030, 7, 12), r.End)
	assert.Equal(t, 2, r.Nights())
}

func TestOverlaps(t *testing.T) {
	base, _ := domain.NewDateRange(date(2030, 7, 10), date(2030, 7, 15))

	cases := []struct {
		name     string
		start    time.Time
		end      time.Time
		overlaps bool
	}{
		{"identical", date(2030, 7, 10), date(2030, 7, 15), true},
		{"contained", date(2030, 7, 11), date(2030, 7, 13), true},
		{"straddles start", date(2030, 7, 8), date(2030, 7, 11), true},
		{"straddles end", date(2030, 7, 14), date(2030, 7, 18), true},
		{"covers", date(2030, 7, 8), date(2030, 7, 18), true},
		{"ends on check-in (turnover)", date(2030, 7, 5), date(2030, 7, 10), false},
		{"starts on check-out (turnover)", date(2030, 7, 15), date(2030, 7, 20), false},
		{"entirely before", date(2030, 7, 1), date(2030, 7, 5), false},
		{"entirely after", date(2030, 7, 20), date(2030, 7, 25), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			other, err := domain.NewDateRange(tc.start, tc.end)
			assert.NoError(t, err)
			assert.Equal(t, tc.overlaps, base.Overlaps(other))
			assert.Equal(t, tc.overlaps, other.Overlaps(base))
		})
	}
}

func TestContainsDay_HalfOpen(t *testing.T) {
	r, _ := domain.NewDateRange(date(2030, 7, 10), date(2030, 7, 15))

	assert.True(t, r.ContainsDay(date(2030, 7, 10)))
	assert.True(t, r.ContainsDay(date(2030, 7, 14)))
	assert.False(t, r.ContainsDay(date(2030, 7, 15)), "check-out day is a turnover day, not occupied")
	assert.False(t, r.ContainsDay(date(2030, 7, 9)))
}

func TestParseDate(t *testing.T) {
	parsed, err := domain.ParseDate("2030-07-10")
	assert.NoError(t, err)
	assert.Equal(t, date(2030, 7, 10), parsed)

	_, err = domain.ParseDate("10/07/2030")
	assert.Error(t, err)
}

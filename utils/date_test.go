package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsWeekStart(t *testing.T) {
	assert.True(t, IsWeekStart(MustParseDate("2026-08-31")))
	assert.False(t, IsWeekStart(MustParseDate("2026-09-01")), "tuesday")
	assert.False(t, IsWeekStart(time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)), "monday but not midnight")
}

func TestWeekEnd(t *testing.T) {
	assert.Equal(t, "2026-09-06", FormatDate(WeekEnd(MustParseDate("2026-08-31"))))
}

func TestMustParseDate(t *testing.T) {
	d := MustParseDate("2026-08-31")
	assert.True(t, d.Equal(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)))

	assert.Panics(t, func() { MustParseDate("31/08/2026") })
}

package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(layout string) time.Time {
	t, err := time.ParseInLocation(time.DateTime, layout, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func assertSameTime(t *testing.T, want, got time.Time) {
	t.Helper()
	assert.True(t, want.Equal(got), "want %s, got %s", want.Format(time.DateTime), got.Format(time.DateTime))
}

func TestDayBoundaries(t *testing.T) {
	now := at("2024-06-02 10:10:00")
	assertSameTime(t, at("2024-06-02 00:00:00"), GetMidnight(now))
	assertSameTime(t, at("2024-06-02 23:59:59"), EndOfDay(now))
	assertSameTime(t, at("2024-06-01 00:00:00"), Yesterday(now))
}

func TestWeekBoundaries(t *testing.T) {
	// 2024-06-02 是周日
	sunday := at("2024-06-02 10:10:00")
	assertSameTime(t, at("2024-05-27 00:00:00"), StartOfWeek(sunday))
	assertSameTime(t, at("2024-06-02 23:59:59"), EndOfWeek(sunday))

	monday := at("2024-06-03 00:00:00")
	assertSameTime(t, at("2024-06-03 00:00:00"), StartOfWeek(monday))
	assertSameTime(t, at("2024-06-09 23:59:59"), EndOfWeek(monday))
}

func TestMonthBoundaries(t *testing.T) {
	leap := at("2024-02-15 08:00:00")
	assertSameTime(t, at("2024-02-01 00:00:00"), StartOfMonth(leap))
	assertSameTime(t, at("2024-02-29 23:59:59"), EndOfMonth(leap))

	december := at("2023-12-31 23:00:00")
	assertSameTime(t, at("2023-12-31 23:59:59"), EndOfMonth(december))
}

package util

import "time"

// GetMidnight 当天零点
func GetMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay 当天 23:59:59
func EndOfDay(t time.Time) time.Time {
	return GetMidnight(t).AddDate(0, 0, 1).Add(-time.Second)
}

// StartOfWeek 本周一零点
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return GetMidnight(t).AddDate(0, 0, -offset)
}

// EndOfWeek 本周日 23:59:59
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 7).Add(-time.Second)
}

// StartOfMonth 本月一号零点
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth 本月最后一天 23:59:59
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Second)
}

// Yesterday 昨天零点
func Yesterday(t time.Time) time.Time {
	return GetMidnight(t).AddDate(0, 0, -1)
}

package utils

import (
	"fmt"
	"strings"
	"time"
)

const clockLayout = "15:04"

// ParseClock parses an "HH:MM" clock string. "HH:MM:SS" is tolerated since
// some upstream records carry seconds.
func ParseClock(s string) (time.Time, error) {
	if t, err := time.Parse(clockLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q", s)
	}
	return t, nil
}

// ShiftHours returns the duration between two clock strings in hours.
// Malformed input yields 0 so scoring degrades instead of failing.
func ShiftHours(start, end string) float64 {
	startTime, err := ParseClock(start)
	if err != nil {
		return 0
	}
	endTime, err := ParseClock(end)
	if err != nil {
		return 0
	}
	hours := endTime.Sub(startTime).Hours()
	if hours < 0 {
		return 0
	}
	return hours
}

// CombineDateClock anchors a clock string onto a calendar date.
func CombineDateClock(date time.Time, clock string) time.Time {
	t, err := ParseClock(clock)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

// OverlapFraction returns how much of the [shiftStart, shiftEnd) interval
// is covered by [winStart, winEnd), as a fraction of the shift's length.
func OverlapFraction(shiftStart, shiftEnd, winStart, winEnd string) float64 {
	ss, err1 := ParseClock(shiftStart)
	se, err2 := ParseClock(shiftEnd)
	ws, err3 := ParseClock(winStart)
	we, err4 := ParseClock(winEnd)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return 0
	}

	shiftLen := se.Sub(ss)
	if shiftLen <= 0 {
		return 0
	}

	start := ss
	if ws.After(start) {
		start = ws
	}
	end := se
	if we.Before(end) {
		end = we
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start).Seconds() / shiftLen.Seconds()
}

// ISOWeekKey returns a stable key ("2026-W36") for the ISO week containing t.
func ISOWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// WeekdayName returns the lowercase English weekday name for t, matching
// the keys used in staff availability maps.
func WeekdayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

package domain

import "time"

type PreferenceType string

const (
	PreferenceMaxHours     PreferenceType = "max_hours"
	PreferenceMinHours     PreferenceType = "min_hours"
	PreferenceAvailability PreferenceType = "availability"
	PreferenceTimeOff      PreferenceType = "time_off"
	PreferenceDayOff       PreferenceType = "day_off"
)

// PreferenceValue is the structured payload of a preference. Which fields
// are meaningful depends on the preference type: Hours for max_hours and
// min_hours, Days (weekday names) for day_off, Dates ("2006-01-02") for
// time_off, Windows for preferred availability.
type PreferenceValue struct {
	Hours   float64                 `json:"hours,omitempty"`
	Days    []string                `json:"days,omitempty"`
	Dates   []string                `json:"dates,omitempty"`
	Windows map[string][]TimeWindow `json:"windows,omitempty"`
}

type StaffPreference struct {
	ID            int64           `json:"id"`
	StaffID       int64           `json:"staffID"`
	Type          PreferenceType  `json:"type"`
	Value         PreferenceValue `json:"value"`
	Priority      Priority        `json:"priority"`
	EffectiveDate *time.Time      `json:"effectiveDate"`
	ExpiryDate    *time.Time      `json:"expiryDate"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	Version       int32           `json:"-"`
}

// EffectiveOn reports whether the preference applies on the given date.
// Missing boundary dates leave that side of the window open. Boundaries
// compare calendar days in each value's own location, so a date built in a
// non-UTC zone does not shift into the adjacent day.
func (p *StaffPreference) EffectiveOn(date time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.EffectiveDate != nil && calendarDayBefore(date, *p.EffectiveDate) {
		return false
	}
	if p.ExpiryDate != nil && calendarDayBefore(*p.ExpiryDate, date) {
		return false
	}
	return true
}

func calendarDayBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}

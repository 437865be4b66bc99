package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPreferenceEffectiveOn(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	effective := date(2026, 1, 1)
	expiry := date(2026, 1, 31)

	open := &StaffPreference{IsActive: true}
	assert.True(t, open.EffectiveOn(date(2026, 6, 15)), "missing boundaries leave the window open")

	inactive := &StaffPreference{IsActive: false}
	assert.False(t, inactive.EffectiveOn(date(2026, 1, 15)))

	bounded := &StaffPreference{IsActive: true, EffectiveDate: &effective, ExpiryDate: &expiry}
	assert.False(t, bounded.EffectiveOn(date(2025, 12, 31)))
	assert.True(t, bounded.EffectiveOn(date(2026, 1, 1)), "boundary days are inclusive")
	assert.True(t, bounded.EffectiveOn(date(2026, 1, 31)))
	assert.False(t, bounded.EffectiveOn(date(2026, 2, 1)))
}

func TestPreferenceEffectiveOnNonUTCBoundaries(t *testing.T) {
	effective := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	bounded := &StaffPreference{IsActive: true, EffectiveDate: &effective, ExpiryDate: &expiry}

	// Feb 1 in UTC+13 is still Jan 31 in absolute time; the calendar day
	// is what counts, so the window is over
	east := time.FixedZone("UTC+13", 13*60*60)
	assert.False(t, bounded.EffectiveOn(time.Date(2026, 2, 1, 0, 0, 0, 0, east)))
	assert.True(t, bounded.EffectiveOn(time.Date(2026, 1, 31, 0, 0, 0, 0, east)))

	// Dec 31 in UTC-5 sits after the effective instant in absolute time
	// but its calendar day precedes the window
	west := time.FixedZone("UTC-5", -5*60*60)
	assert.False(t, bounded.EffectiveOn(time.Date(2025, 12, 31, 20, 0, 0, 0, west)))
	assert.True(t, bounded.EffectiveOn(time.Date(2026, 1, 1, 0, 0, 0, 0, west)))
}

func TestStaffHasSkill(t *testing.T) {
	s := &Staff{Skills: []string{"kitchen", "server"}}
	assert.True(t, s.HasSkill("kitchen"))
	assert.False(t, s.HasSkill("bartender"))
	assert.False(t, (&Staff{}).HasSkill("kitchen"))
}

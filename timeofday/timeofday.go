// Package timeofday defines the four medication scheduling slots shared by
// the profile and tracking slices.
package timeofday

import (
	mapset "github.com/deckarep/golang-set/v2"
)

type TimeOfDay string

const (
	AM      TimeOfDay = "AM"
	Midday  TimeOfDay = "Midday"
	PM      TimeOfDay = "PM"
	Evening TimeOfDay = "Evening"
)

// Values returns the four slots in display order.
func Values() []TimeOfDay {
	return []TimeOfDay{AM, Midday, PM, Evening}
}

// SetOf builds a membership set from a medication protocol.
func SetOf(times ...TimeOfDay) mapset.Set[TimeOfDay] {
	return mapset.NewThreadUnsafeSet(times...)
}

// IsValid reports whether t is one of the four known slots.
func IsValid(t TimeOfDay) bool {
	switch t {
	case AM, Midday, PM, Evening:
		return true
	}
	return false
}

package test

import (
	"github.com/chronic-org/chronic/test"
	"github.com/chronic-org/chronic/timeofday"
	"github.com/chronic-org/chronic/tracking"
)

var Timespans = []string{"12-4 AM", "4-8 AM", "8 AM-12 PM", "12-4 PM", "4-8 PM", "8 PM-12 AM"}

func intp(i int) *int {
	return &i
}

func RandomSymptomGrid(symptoms ...string) tracking.SymptomGrid {
	grid := tracking.SymptomGrid{}
	for _, symptom := range symptoms {
		grid[symptom] = map[string]int{
			Timespans[test.Rand.Intn(len(Timespans))]: test.Rand.Intn(10) + 1,
		}
	}
	return grid
}

func RandomMedicationGrid(meds ...string) tracking.MedicationGrid {
	grid := tracking.MedicationGrid{}
	for _, slot := range timeofday.Values() {
		grid[slot] = map[string]*int{}
	}
	for _, med := range meds {
		slot := timeofday.Values()[test.Rand.Intn(4)]
		grid[slot][med] = intp(test.Rand.Intn(3) + 1)
	}
	return grid
}

// HydratedSlice returns a slice with both day-views populated with the
// given tracked items, the way two fetches leave it.
func HydratedSlice(symptoms, meds []string) *tracking.Slice {
	slice := tracking.NewSlice()
	for _, view := range []tracking.View{tracking.Primary, tracking.Secondary} {
		slice.FetchDaysTrackingRequest()
		slice.FetchDaysTrackingSuccess(tracking.FetchPayload{
			View:        view,
			Symptoms:    RandomSymptomGrid(symptoms...),
			Medications: RandomMedicationGrid(meds...),
		})
	}
	return slice
}

package tracking

import (
	"github.com/chronic-org/chronic/store"
	"github.com/chronic-org/chronic/timeofday"
)

// SymptomGrid maps symptom name to timespan label to severity. Absence of a
// timespan key means "not tracked", not zero severity.
type SymptomGrid map[string]map[string]int

// MedicationGrid maps time-of-day slot to medication name to taken count.
// A nil count means the medication is scheduled for the slot but not yet
// taken; an absent key means it is not scheduled there at all.
type MedicationGrid map[timeofday.TimeOfDay]map[string]*int

// DayView is one tracked day. The primary view is today; the secondary view
// is the reference day, usually yesterday. Both views expose the same set of
// connected symptoms and medications.
type DayView struct {
	Symptoms    SymptomGrid
	Medications MedicationGrid
}

// View selects one of the two day-views in payloads.
type View string

const (
	Primary   View = "primaryTracking"
	Secondary View = "secondaryTracking"
)

type State struct {
	PrimaryTracking   DayView
	SecondaryTracking DayView
	Loading           bool
	Error             *string
}

// history is the snapshot bag. Record-level operations capture a single
// day-view grid; connection-level operations capture both views so the
// dual-view invariant survives a rollback.
type history struct {
	symptoms             store.Snapshot[SymptomGrid]
	medications          store.Snapshot[MedicationGrid]
	primarySymptoms      store.Snapshot[SymptomGrid]
	secondarySymptoms    store.Snapshot[SymptomGrid]
	primaryMedications   store.Snapshot[MedicationGrid]
	secondaryMedications store.Snapshot[MedicationGrid]
}

func (h *history) clear() {
	*h = history{}
}

func (h *history) empty() bool {
	return !h.symptoms.Captured() &&
		!h.medications.Captured() &&
		!h.primarySymptoms.Captured() &&
		!h.secondarySymptoms.Captured() &&
		!h.primaryMedications.Captured() &&
		!h.secondaryMedications.Captured()
}

func emptyDayView() DayView {
	return DayView{
		Symptoms:    SymptomGrid{},
		Medications: MedicationGrid{},
	}
}

func initialState() State {
	return State{
		PrimaryTracking:   emptyDayView(),
		SecondaryTracking: emptyDayView(),
		Loading:           false,
		Error:             nil,
	}
}

// Package tracking owns the two time-bucketed day-views of symptom severity
// and medication intake. Record-level edits touch a single day-view;
// connection changes (adding, renaming or removing a tracked symptom or
// medication) are applied to both views so they always expose the same set
// of tracked items.
package tracking

import (
	"github.com/chronic-org/chronic/pointer"
	"github.com/chronic-org/chronic/store"
	"github.com/chronic-org/chronic/timeofday"
)

const SliceName = "tracking"

type Slice struct {
	state State
	hist  history
}

var _ store.Slice = &Slice{}

func NewSlice() *Slice {
	return &Slice{state: initialState()}
}

func (s *Slice) Name() string {
	return SliceName
}

func (s *Slice) Reset() {
	s.state = initialState()
	s.hist.clear()
}

// State returns the current subtree. The returned value shares map storage
// with the live state; callers must treat it as read-only.
func (s *Slice) State() State {
	return s.state
}

func (s *Slice) HistoryEmpty() bool {
	return s.hist.empty()
}

func (s *Slice) view(v View) *DayView {
	if v == Secondary {
		return &s.state.SecondaryTracking
	}
	return &s.state.PrimaryTracking
}

func (s *Slice) begin() {
	s.state.Loading = true
	s.state.Error = nil
}

func (s *Slice) fail(message string) {
	s.state.Loading = false
	s.state.Error = &message
}

// Fetching a day

// FetchPayload replaces one day-view wholesale; there is nothing
// speculative about a fetch, so no snapshot is taken.
type FetchPayload struct {
	View        View
	Symptoms    SymptomGrid
	Medications MedicationGrid
}

func (s *Slice) FetchDaysTrackingRequest() {
	s.begin()
}

// FetchDaysTrackingSuccess establishes the invariant that all four
// time-of-day keys exist in the medications map, even when empty. Later
// edits preserve it.
func (s *Slice) FetchDaysTrackingSuccess(payload FetchPayload) {
	s.state.Loading = false
	view := s.view(payload.View)
	view.Symptoms = payload.Symptoms
	if view.Symptoms == nil {
		view.Symptoms = SymptomGrid{}
	}
	view.Medications = payload.Medications
	if view.Medications == nil {
		view.Medications = MedicationGrid{}
	}
	for _, slot := range timeofday.Values() {
		if _, ok := view.Medications[slot]; !ok {
			view.Medications[slot] = map[string]*int{}
		}
	}
}

func (s *Slice) FetchDaysTrackingFailure(message string) {
	s.fail(message)
}

// Symptom tracking records

type SymptomRecordPayload struct {
	View     View
	Symptom  string
	Timespan string
	Severity int
}

type SymptomRecordRef struct {
	View     View
	Symptom  string
	Timespan string
}

func (s *Slice) setSeverity(payload SymptomRecordPayload) {
	s.begin()
	view := s.view(payload.View)
	s.hist.symptoms = store.Capture(view.Symptoms)
	if view.Symptoms[payload.Symptom] == nil {
		view.Symptoms[payload.Symptom] = map[string]int{}
	}
	view.Symptoms[payload.Symptom][payload.Timespan] = payload.Severity
}

func (s *Slice) restoreSymptoms(view View, message string) {
	s.fail(message)
	s.view(view).Symptoms = s.hist.symptoms.Restore()
	s.hist.clear()
}

// Create and edit share one code path: setting a severity creates the
// timespan key when it is absent.

func (s *Slice) CreateSymptomTrackingRecordRequest(payload SymptomRecordPayload) {
	s.setSeverity(payload)
}

func (s *Slice) CreateSymptomTrackingRecordSuccess() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) CreateSymptomTrackingRecordFailure(view View, message string) {
	s.restoreSymptoms(view, message)
}

func (s *Slice) EditSymptomTrackingRecordRequest(payload SymptomRecordPayload) {
	s.setSeverity(payload)
}

func (s *Slice) EditSymptomTrackingRecordSuccess() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) EditSymptomTrackingRecordFailure(view View, message string) {
	s.restoreSymptoms(view, message)
}

func (s *Slice) DeleteSymptomTrackingRecordRequest(ref SymptomRecordRef) {
	s.begin()
	view := s.view(ref.View)
	s.hist.symptoms = store.Capture(view.Symptoms)
	delete(view.Symptoms[ref.Symptom], ref.Timespan)
}

func (s *Slice) DeleteSymptomTrackingRecordSuccess() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) DeleteSymptomTrackingRecordFailure(view View, message string) {
	s.restoreSymptoms(view, message)
}

// Medication tracking records

type MedRecordPayload struct {
	View      View
	TimeOfDay timeofday.TimeOfDay
	Med       string
	Number    int
}

type MedRecordRef struct {
	View      View
	TimeOfDay timeofday.TimeOfDay
	Med       string
}

func (s *Slice) setNumber(payload MedRecordPayload) {
	s.begin()
	view := s.view(payload.View)
	s.hist.medications = store.Capture(view.Medications)
	if view.Medications[payload.TimeOfDay] == nil {
		view.Medications[payload.TimeOfDay] = map[string]*int{}
	}
	view.Medications[payload.TimeOfDay][payload.Med] = pointer.FromAny(payload.Number)
}

func (s *Slice) restoreMedications(view View, message string) {
	s.fail(message)
	s.view(view).Medications = s.hist.medications.Restore()
	s.hist.clear()
}

func (s *Slice) CreateMedTrackingRecordRequest(payload MedRecordPayload) {
	s.setNumber(payload)
}

func (s *Slice) CreateMedTrackingRecordSuccess() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) CreateMedTrackingRecordFailure(view View, message string) {
	s.restoreMedications(view, message)
}

func (s *Slice) EditMedTrackingRecordRequest(payload MedRecordPayload) {
	s.setNumber(payload)
}

func (s *Slice) EditMedTrackingRecordSuccess() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) EditMedTrackingRecordFailure(view View, message string) {
	s.restoreMedications(view, message)
}

func (s *Slice) DeleteMedTrackingRecordRequest(ref MedRecordRef) {
	s.begin()
	view := s.view(ref.View)
	s.hist.medications = store.Capture(view.Medications)
	delete(view.Medications[ref.TimeOfDay], ref.Med)
}

func (s *Slice) DeleteMedTrackingRecordSuccess() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) DeleteMedTrackingRecordFailure(view View, message string) {
	s.restoreMedications(view, message)
}

// Symptom connection changes, mirrored in both day-views.

func (s *Slice) captureDualSymptoms() {
	s.hist.primarySymptoms = store.Capture(s.state.PrimaryTracking.Symptoms)
	s.hist.secondarySymptoms = store.Capture(s.state.SecondaryTracking.Symptoms)
}

func (s *Slice) restoreDualSymptoms(message string) {
	s.fail(message)
	s.state.PrimaryTracking.Symptoms = s.hist.primarySymptoms.Restore()
	s.state.SecondaryTracking.Symptoms = s.hist.secondarySymptoms.Restore()
	s.hist.clear()
}

func (s *Slice) ConnectSymptomRequestTracking(symptom string) {
	s.state.Loading = true
	s.captureDualSymptoms()
	s.state.PrimaryTracking.Symptoms[symptom] = map[string]int{}
	s.state.SecondaryTracking.Symptoms[symptom] = map[string]int{}
}

func (s *Slice) ConnectSymptomSuccessTracking() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) ConnectSymptomFailureTracking(message string) {
	s.restoreDualSymptoms(message)
}

type SymptomChange struct {
	OldSymptom string
	NewSymptom string
}

// ChangeSymptomRequestTracking renames the tracked symptom in both views,
// carrying its existing records over to the new name.
func (s *Slice) ChangeSymptomRequestTracking(payload SymptomChange) {
	s.state.Loading = true
	s.captureDualSymptoms()
	renameSymptom(s.state.PrimaryTracking.Symptoms, payload.OldSymptom, payload.NewSymptom)
	renameSymptom(s.state.SecondaryTracking.Symptoms, payload.OldSymptom, payload.NewSymptom)
}

func (s *Slice) ChangeSymptomSuccessTracking() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) ChangeSymptomFailureTracking(message string) {
	s.restoreDualSymptoms(message)
}

func (s *Slice) DisconnectFromSymptomRequestTracking(symptom string) {
	s.state.Loading = true
	s.captureDualSymptoms()
	delete(s.state.PrimaryTracking.Symptoms, symptom)
	delete(s.state.SecondaryTracking.Symptoms, symptom)
}

func (s *Slice) DisconnectFromSymptomSuccessTracking() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) DisconnectFromSymptomFailureTracking(message string) {
	s.restoreDualSymptoms(message)
}

// Medication connection changes, mirrored in both day-views across the four
// time-of-day buckets.

func (s *Slice) captureDualMedications() {
	s.hist.primaryMedications = store.Capture(s.state.PrimaryTracking.Medications)
	s.hist.secondaryMedications = store.Capture(s.state.SecondaryTracking.Medications)
}

func (s *Slice) restoreDualMedications(message string) {
	s.fail(message)
	s.state.PrimaryTracking.Medications = s.hist.primaryMedications.Restore()
	s.state.SecondaryTracking.Medications = s.hist.secondaryMedications.Restore()
	s.hist.clear()
}

type MedConnection struct {
	Medication string
	TimeOfDay  []timeofday.TimeOfDay
}

// ConnectMedRequestTracking schedules the medication into each protocol slot
// of both views with a nil count: scheduled, not yet taken.
func (s *Slice) ConnectMedRequestTracking(payload MedConnection) {
	s.state.Loading = true
	s.captureDualMedications()
	for _, slot := range payload.TimeOfDay {
		bucket(s.state.PrimaryTracking.Medications, slot)[payload.Medication] = nil
		bucket(s.state.SecondaryTracking.Medications, slot)[payload.Medication] = nil
	}
}

func (s *Slice) ConnectMedSuccessTracking() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) ConnectMedFailureTracking(message string) {
	s.restoreDualMedications(message)
}

type MedChange struct {
	OldMedication string
	NewMedication string
	TimeOfDay     []timeofday.TimeOfDay
}

// ChangeMedRequestTracking reconciles each of the four buckets against the
// new protocol: a rename within a scheduled slot preserves the recorded
// count, a slot dropped from the protocol loses its entry, and a newly
// scheduled slot starts with a nil count. Presence is decided on the
// primary view; the invariant keeps both views structurally identical.
func (s *Slice) ChangeMedRequestTracking(payload MedChange) {
	s.state.Loading = true
	s.captureDualMedications()
	scheduled := timeofday.SetOf(payload.TimeOfDay...)
	for _, slot := range timeofday.Values() {
		primary := bucket(s.state.PrimaryTracking.Medications, slot)
		secondary := bucket(s.state.SecondaryTracking.Medications, slot)
		if _, ok := primary[payload.OldMedication]; ok {
			if scheduled.Contains(slot) {
				primary[payload.NewMedication] = primary[payload.OldMedication]
				secondary[payload.NewMedication] = secondary[payload.OldMedication]
			}
			delete(primary, payload.OldMedication)
			delete(secondary, payload.OldMedication)
		} else if scheduled.Contains(slot) {
			primary[payload.NewMedication] = nil
			secondary[payload.NewMedication] = nil
		}
	}
}

func (s *Slice) ChangeMedSuccessTracking() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) ChangeMedFailureTracking(message string) {
	s.restoreDualMedications(message)
}

func (s *Slice) DisconnectFromMedRequestTracking(medication string) {
	s.state.Loading = true
	s.captureDualMedications()
	for _, slot := range timeofday.Values() {
		delete(bucket(s.state.PrimaryTracking.Medications, slot), medication)
		delete(bucket(s.state.SecondaryTracking.Medications, slot), medication)
	}
}

func (s *Slice) DisconnectFromMedSuccessTracking() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) DisconnectFromMedFailureTracking(message string) {
	s.restoreDualMedications(message)
}

func renameSymptom(grid SymptomGrid, oldName, newName string) {
	records := grid[oldName]
	delete(grid, oldName)
	grid[newName] = records
}

// bucket returns the slot's map, creating it when a view has not been
// fetched yet so connection changes before first fetch do not drop entries.
func bucket(grid MedicationGrid, slot timeofday.TimeOfDay) map[string]*int {
	if grid[slot] == nil {
		grid[slot] = map[string]*int{}
	}
	return grid[slot]
}

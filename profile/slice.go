// Package profile owns the profile subtree of session state: the user's
// identity plus their connected diagnoses, symptoms and medications. Every
// mutable operation follows the request/success/failure contract: the
// request transition applies the speculative mutation (capturing a snapshot
// when it needs later reversal), success commits and discards the snapshot,
// failure restores it and records the error.
package profile

import (
	"github.com/chronic-org/chronic/store"
	"github.com/mitchellh/mapstructure"
)

const SliceName = "profile"

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

// State returns the current subtree. The returned value shares slice and
// map storage with the live state; callers must treat it as read-only.
func (s *Slice) State() State {
	return s.state
}

// HistoryEmpty reports whether any snapshot is outstanding.
func (s *Slice) HistoryEmpty() bool {
	return s.hist.empty()
}

func (s *Slice) begin() {
	s.state.Loading = true
	s.state.Error = nil
}

func (s *Slice) fail(message string) {
	s.state.Loading = false
	s.state.Error = &message
}

// Fetch profile

func (s *Slice) FetchProfileRequest() {
	s.begin()
}

func (s *Slice) FetchProfileSuccess(user User) {
	s.state.Loading = false
	s.state.UserId = user.UserId
	s.state.Email = user.Email
	s.state.Name = user.Name
	s.state.IsAdmin = user.IsAdmin
	s.state.Since = user.Since
	s.state.LastLogin = user.LastLogin
	s.state.Diagnoses = user.Diagnoses
	s.state.Symptoms = user.Symptoms
	s.state.Medications = user.Medications
}

func (s *Slice) FetchProfileFailure(message string) {
	s.fail(message)
}

// Update profile

// UpdateProfileRequest merges arbitrary fields from the update payload into
// the state. Only email and name are snapshotted; nothing else on the
// profile can change through this operation. A transient password field is
// stripped and never persisted.
func (s *Slice) UpdateProfileRequest(update map[string]interface{}) {
	s.begin()
	s.hist.contact = store.Capture(contact{Email: s.state.Email, Name: s.state.Name})
	delete(update, "password")
	_ = mapstructure.Decode(update, &s.state)
}

func (s *Slice) UpdateProfileSuccess() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) UpdateProfileFailure(message string) {
	s.fail(message)
	restored := s.hist.contact.Restore()
	s.state.Email = restored.Email
	s.state.Name = restored.Name
	s.hist.clear()
}

// Delete profile

func (s *Slice) DeleteProfileRequest() {
	s.begin()
}

func (s *Slice) DeleteProfileSuccess() {
	s.state = initialState()
	s.hist.clear()
}

func (s *Slice) DeleteProfileFailure(message string) {
	s.fail(message)
}

// Diagnoses

type DiagnosisPayload struct {
	Diagnosis string
	Keywords  []string
}

// ConnectDiagnosisRequest appends the speculative link without an id. No
// snapshot is needed: the failure transition pops the appended entry.
func (s *Slice) ConnectDiagnosisRequest(payload DiagnosisPayload) {
	s.begin()
	s.state.Diagnoses = append(s.state.Diagnoses, Diagnosis{
		Diagnosis: payload.Diagnosis,
		Keywords:  payload.Keywords,
	})
}

// ConnectDiagnosisSuccess merges the server-assigned id onto the most
// recently appended entry. Append-only ordering guarantees the speculative
// entry is last in the sequence.
func (s *Slice) ConnectDiagnosisSuccess(diagnosisId int) {
	s.state.Loading = false
	if n := len(s.state.Diagnoses); n > 0 {
		s.state.Diagnoses[n-1].DiagnosisId = &diagnosisId
	}
	s.hist.clear()
}

func (s *Slice) ConnectDiagnosisFailure(message string) {
	s.fail(message)
	if n := len(s.state.Diagnoses); n > 0 {
		s.state.Diagnoses = s.state.Diagnoses[:n-1]
	}
}

func (s *Slice) UpdateUserDiagnosisRequest(payload DiagnosisPayload) {
	s.begin()
	s.hist.diagnoses = store.Capture(s.state.Diagnoses)
	for i := range s.state.Diagnoses {
		if s.state.Diagnoses[i].Diagnosis != payload.Diagnosis {
			continue
		}
		if s.state.Diagnoses[i].Keywords == nil {
			s.state.Diagnoses[i].Keywords = []string{}
		}
		s.state.Diagnoses[i].Keywords = append(s.state.Diagnoses[i].Keywords, payload.Keywords...)
		break
	}
}

func (s *Slice) UpdateUserDiagnosisSuccess() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) UpdateUserDiagnosisFailure(message string) {
	s.fail(message)
	s.state.Diagnoses = s.hist.diagnoses.Restore()
	s.hist.clear()
}

func (s *Slice) DisconnectFromDiagnosisRequest(diagnosisId int) {
	s.begin()
	s.hist.diagnoses = store.Capture(s.state.Diagnoses)
	kept := s.state.Diagnoses[:0:0]
	for _, d := range s.state.Diagnoses {
		if d.DiagnosisId != nil && *d.DiagnosisId == diagnosisId {
			continue
		}
		kept = append(kept, d)
	}
	s.state.Diagnoses = kept
}

func (s *Slice) DisconnectFromDiagnosisSuccess() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) DisconnectFromDiagnosisFailure(message string) {
	s.fail(message)
	s.state.Diagnoses = s.hist.diagnoses.Restore()
	s.hist.clear()
}

// Symptoms. Identity is the symptom string itself.

func (s *Slice) ConnectSymptomRequest(symptom string) {
	s.begin()
	s.state.Symptoms = append(s.state.Symptoms, symptom)
}

func (s *Slice) ConnectSymptomSuccess() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) ConnectSymptomFailure(message string) {
	s.fail(message)
	if n := len(s.state.Symptoms); n > 0 {
		s.state.Symptoms = s.state.Symptoms[:n-1]
	}
}

type SymptomChange struct {
	OldSymptom string
	NewSymptom string
}

// ChangeSymptomRequest removes the old value and appends the new one.
// Ordering is not preserved; the changed symptom always moves to the end.
func (s *Slice) ChangeSymptomRequest(payload SymptomChange) {
	s.begin()
	s.hist.symptoms = store.Capture(s.state.Symptoms)
	s.state.Symptoms = append(removeString(s.state.Symptoms, payload.OldSymptom), payload.NewSymptom)
}

func (s *Slice) ChangeSymptomSuccess() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) ChangeSymptomFailure(message string) {
	s.fail(message)
	s.state.Symptoms = s.hist.symptoms.Restore()
	s.hist.clear()
}

func (s *Slice) DisconnectFromSymptomRequest(symptom string) {
	s.begin()
	s.hist.symptoms = store.Capture(s.state.Symptoms)
	s.state.Symptoms = removeString(s.state.Symptoms, symptom)
}

func (s *Slice) DisconnectFromSymptomSuccess() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) DisconnectFromSymptomFailure(message string) {
	s.fail(message)
	s.state.Symptoms = s.hist.symptoms.Restore()
	s.hist.clear()
}

// Medications. Identity is the medication name.

func (s *Slice) ConnectMedRequest(med Medication) {
	s.begin()
	s.state.Medications = append(s.state.Medications, med)
}

func (s *Slice) ConnectMedSuccess() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) ConnectMedFailure(message string) {
	s.fail(message)
	if n := len(s.state.Medications); n > 0 {
		s.state.Medications = s.state.Medications[:n-1]
	}
}

type MedicationChange struct {
	OldMed string
	NewMed Medication
}

func (s *Slice) ChangeMedRequest(payload MedicationChange) {
	s.begin()
	s.hist.medications = store.Capture(s.state.Medications)
	s.state.Medications = append(removeMedication(s.state.Medications, payload.OldMed), payload.NewMed)
}

func (s *Slice) ChangeMedSuccess() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) ChangeMedFailure(message string) {
	s.fail(message)
	s.state.Medications = s.hist.medications.Restore()
	s.hist.clear()
}

func (s *Slice) DisconnectFromMedRequest(medication string) {
	s.begin()
	s.hist.medications = store.Capture(s.state.Medications)
	s.state.Medications = removeMedication(s.state.Medications, medication)
}

func (s *Slice) DisconnectFromMedSuccess() {
	s.state.Loading = false
	s.hist.clear()
}

func (s *Slice) DisconnectFromMedFailure(message string) {
	s.fail(message)
	s.state.Medications = s.hist.medications.Restore()
	s.hist.clear()
}

func removeString(values []string, value string) []string {
	kept := values[:0:0]
	for _, v := range values {
		if v != value {
			kept = append(kept, v)
		}
	}
	return kept
}

func removeMedication(meds []Medication, name string) []Medication {
	kept := meds[:0:0]
	for _, m := range meds {
		if m.Medication != name {
			kept = append(kept, m)
		}
	}
	return kept
}

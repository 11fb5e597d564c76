package profile

import (
	"github.com/chronic-org/chronic/store"
	"github.com/chronic-org/chronic/timeofday"
)

// Diagnosis is a user-diagnosis link. DiagnosisId is nil until the gateway
// confirms the link; before commit the newest entry is identified
// positionally as the last element of the sequence.
type Diagnosis struct {
	DiagnosisId *int     `json:"diagnosisId,omitempty"`
	Diagnosis   string   `json:"diagnosis"`
	Keywords    []string `json:"keywords"`
}

// Medication is a user-medication link with its protocol. Identity is the
// medication name: a user cannot be connected to two medications with the
// same name.
type Medication struct {
	Medication string                `json:"medication"`
	DosageNum  float64               `json:"dosageNum"`
	DosageUnit string                `json:"dosageUnit"`
	TimeOfDay  []timeofday.TimeOfDay `json:"timeOfDay"`
}

// State is the profile subtree. UserId nil means anonymous. Symptom
// identity is the string itself; no numeric id is surfaced to this slice.
type State struct {
	UserId      *int
	Email       string
	Name        string
	IsAdmin     bool
	Since       string
	LastLogin   string
	Diagnoses   []Diagnosis
	Symptoms    []string
	Medications []Medication
	Loading     bool
	Error       *string
}

// User carries a full profile payload from the gateway into the slice.
type User struct {
	UserId      *int
	Email       string
	Name        string
	IsAdmin     bool
	Since       string
	LastLogin   string
	Diagnoses   []Diagnosis
	Symptoms    []string
	Medications []Medication
}

type contact struct {
	Email string
	Name  string
}

// history is the snapshot bag for in-flight mutations. It is empty except
// during the window between a request transition and its terminal
// transition; every success and failure clears it.
type history struct {
	contact     store.Snapshot[contact]
	diagnoses   store.Snapshot[[]Diagnosis]
	symptoms    store.Snapshot[[]string]
	medications store.Snapshot[[]Medication]
}

func (h *history) clear() {
	*h = history{}
}

func (h *history) empty() bool {
	return !h.contact.Captured() &&
		!h.diagnoses.Captured() &&
		!h.symptoms.Captured() &&
		!h.medications.Captured()
}

func initialState() State {
	return State{
		UserId:      nil,
		Email:       "",
		Name:        "",
		IsAdmin:     false,
		Since:       "",
		LastLogin:   "",
		Diagnoses:   []Diagnosis{},
		Symptoms:    []string{},
		Medications: []Medication{},
		Loading:     false,
		Error:       nil,
	}
}

// Package chartdata owns the aggregated time-range projection used for
// charting. It is a pure fetch-and-replace slice: there is no optimistic
// mutation and therefore no snapshot history.
package chartdata

import (
	"github.com/chronic-org/chronic/store"
)

const SliceName = "data"

type SeverityPoint struct {
	Datetime string `json:"datetime"`
	Severity int    `json:"severity"`
}

type CountPoint struct {
	Datetime string `json:"datetime"`
	Number   int    `json:"number"`
}

type State struct {
	Symptoms    map[string][]SeverityPoint
	Medications map[string][]CountPoint
	Loading     bool
	Error       *string
}

type Payload struct {
	Symptoms    map[string][]SeverityPoint
	Medications map[string][]CountPoint
}

type Slice struct {
	state State
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
}

// State returns the current subtree; callers must treat it as read-only.
func (s *Slice) State() State {
	return s.state
}

func (s *Slice) PullDataRequest() {
	s.state.Loading = true
	s.state.Error = nil
}

func (s *Slice) PullDataSuccess(payload Payload) {
	s.state.Loading = false
	s.state.Symptoms = payload.Symptoms
	s.state.Medications = payload.Medications
}

func (s *Slice) PullDataFailure(message string) {
	s.state.Loading = false
	s.state.Error = &message
}

func initialState() State {
	return State{
		Symptoms:    map[string][]SeverityPoint{},
		Medications: map[string][]CountPoint{},
		Loading:     false,
		Error:       nil,
	}
}

// Package latest owns the awareness-feed slice: the ordered ids of recent
// articles matching the user's keywords. Article details are a component
// concern looked up outside the store; only the id list lives here.
package latest

import (
	"github.com/chronic-org/chronic/store"
)

const SliceName = "latest"

// State starts with Loading true: the feed begins fetching as soon as the
// page loads, and falls back to the same state after logout.
type State struct {
	ArticleIds []int
	Loading    bool
	Error      *string
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

func (s *Slice) FetchLatestRequest() {
	s.state.Loading = true
	s.state.Error = nil
}

func (s *Slice) FetchLatestSuccess(articleIds []int) {
	s.state.Loading = false
	s.state.ArticleIds = articleIds
}

func (s *Slice) FetchLatestFailure(message string) {
	s.state.Loading = false
	s.state.Error = &message
}

func initialState() State {
	return State{
		ArticleIds: []int{},
		Loading:    true,
		Error:      nil,
	}
}

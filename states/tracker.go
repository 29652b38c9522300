package states

import (
	"sync"
)

// State is one user's in-progress conversation: which flow is active,
// which step is next, and the flow's partially filled form.
type State struct {
	FlowID    string
	StepIndex int
	Form      any
}

// Tracker keeps per-user conversation state in memory. Nothing here
// survives a restart; an abandoned flow is simply overwritten by the
// next Begin or dropped on Clear.
type Tracker struct {
	mu     sync.RWMutex
	states map[int64]*State

	locksMu sync.Mutex
	locks   map[int64]*sync.Mutex
}

func NewTracker() *Tracker {
	return &Tracker{
		states: make(map[int64]*State),
		locks:  make(map[int64]*sync.Mutex),
	}
}

// Begin replaces any existing state for the user. Starting a new flow
// abandons an unfinished one together with its partial form.
func (t *Tracker) Begin(userID int64, flowID string, form any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.states[userID] = &State{FlowID: flowID, Form: form}
}

func (t *Tracker) Current(userID int64) (*State, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	st, ok := t.states[userID]
	return st, ok
}

// Advance moves the user to the next step of the active flow.
func (t *Tracker) Advance(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.states[userID]; ok {
		st.StepIndex++
	}
}

func (t *Tracker) Clear(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.states, userID)
}

// Lock serializes event handling for one user. The router holds it for
// the whole read-validate-mutate-commit span, so two events for the
// same user can never interleave; different users do not contend.
func (t *Tracker) Lock(userID int64) {
	t.userLock(userID).Lock()
}

func (t *Tracker) Unlock(userID int64) {
	t.userLock(userID).Unlock()
}

func (t *Tracker) userLock(userID int64) *sync.Mutex {
	t.locksMu.Lock()
	defer t.locksMu.Unlock()
	l, ok := t.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		t.locks[userID] = l
	}
	return l
}

package flows

import (
	"context"
	"errors"
	"log"

	"ordersbot/database"
	"ordersbot/models"
	"ordersbot/states"
)

// ErrInvalidInput is returned by a step's Bind when the event does not
// satisfy the step's validator. The flow re-issues the prompt and the
// form stays untouched.
var ErrInvalidInput = errors.New("invalid input for step")

// Step is one prompt-validate-store unit of a flow.
type Step struct {
	Prompt   string
	Keyboard models.Keyboard
	Hint     string
	Bind     func(form any, ev models.Event) error
}

// Flow is an ordered sequence of steps ending in a single commit.
type Flow struct {
	ID           string
	NewForm      func() any
	Steps        []Step
	Commit       func(ctx context.Context, store *database.Store, userID int64, form any) (string, error)
	DoneKeyboard models.Keyboard
}

// Engine advances user conversations through registered flows.
type Engine struct {
	store   *database.Store
	tracker *states.Tracker
	flows   map[string]*Flow
}

func NewEngine(store *database.Store, tracker *states.Tracker, flows ...*Flow) *Engine {
	m := make(map[string]*Flow, len(flows))
	for _, f := range flows {
		m[f.ID] = f
	}
	return &Engine{store: store, tracker: tracker, flows: m}
}

// Start begins a flow for the user, discarding any unfinished one, and
// returns the first step's prompt.
func (e *Engine) Start(userID int64, flowID string) models.Reply {
	fl, ok := e.flows[flowID]
	if !ok {
		log.Printf("start of unknown flow %q for user %d", flowID, userID)
		return models.Reply{UserID: userID, Text: msgInternalError}
	}
	e.tracker.Begin(userID, flowID, fl.NewForm())
	first := fl.Steps[0]
	return models.Reply{UserID: userID, Text: first.Prompt, Keyboard: first.Keyboard}
}

// Handle feeds an inbound event into the user's active flow. The second
// return value is false when no flow is active and the event should fall
// through to menu matching.
func (e *Engine) Handle(ctx context.Context, userID int64, ev models.Event) (models.Reply, bool) {
	st, ok := e.tracker.Current(userID)
	if !ok {
		return models.Reply{}, false
	}
	fl, ok := e.flows[st.FlowID]
	if !ok || st.StepIndex >= len(fl.Steps) {
		// Stale state from a flow that no longer exists; drop it.
		e.tracker.Clear(userID)
		return models.Reply{}, false
	}

	step := fl.Steps[st.StepIndex]
	if err := step.Bind(st.Form, ev); err != nil {
		text := step.Prompt
		if step.Hint != "" {
			text = step.Hint + "\n" + step.Prompt
		}
		return models.Reply{UserID: userID, Text: text, Keyboard: step.Keyboard}, true
	}

	if st.StepIndex == len(fl.Steps)-1 {
		confirmation, err := fl.Commit(ctx, e.store, userID, st.Form)
		if err != nil {
			// State stays at the final step so the user can resend
			// the same input and retry the commit.
			log.Printf("flow %s commit failed for user %d: %v", fl.ID, userID, err)
			return models.Reply{UserID: userID, Text: msgStorageFailure}, true
		}
		e.tracker.Clear(userID)
		return models.Reply{UserID: userID, Text: confirmation, Keyboard: fl.DoneKeyboard}, true
	}

	// Capture the next step before advancing: st aliases the tracker's
	// state, so Advance mutates st.StepIndex too.
	next := fl.Steps[st.StepIndex+1]
	e.tracker.Advance(userID)
	return models.Reply{UserID: userID, Text: next.Prompt, Keyboard: next.Keyboard}, true
}

package orderspackage

import (
	"fmt"
	"strings"

	"donations/internal/pkg/errs"
)

// State is the lifecycle state of a ledger entry.
//
//	requested ──designate──> designated ──dispatch──> dispatched
//	    │  ^                     │   ^                     │
//	 reject └──undesignate───────┘   └─────undispatch──────┘
//	    v
//	cancelled ──designate──> designated
//
// Any state may be cancelled through quantity reconciliation.
type State int

const (
	Unknown State = iota
	Requested
	Cancelled
	Designated
	Received
	Dispatched
)

var stateNames = map[State]string{
	Requested:  "requested",
	Cancelled:  "cancelled",
	Designated: "designated",
	Received:   "received",
	Dispatched: "dispatched",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s State) Validate() error {
	if _, ok := stateNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// IsActive reports whether entries in this state count against the package's receivable quantity.
func (s State) IsActive() bool {
	return s != Cancelled && s != Unknown
}

// ParseState maps the persisted name back to a State.
func ParseState(name string) (State, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range stateNames {
		if n == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a valid state", name))
}

// Event drives a transition of the entry state machine.
type Event int

const (
	EventDesignate Event = iota + 1
	EventReject
	EventCancel
	EventDispatch
	EventUndispatch
	EventUndesignate
)

var eventNames = map[Event]string{
	EventDesignate:   "designate",
	EventReject:      "reject",
	EventCancel:      "cancel",
	EventDispatch:    "dispatch",
	EventUndispatch:  "undispatch",
	EventUndesignate: "undesignate",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return "unknown"
}

type transition struct {
	from  State
	event Event
}

// transitions is the complete table of legal moves. Pairs that are absent are no-ops.
var transitions = map[transition]State{
	{Requested, EventDesignate}:    Designated,
	{Cancelled, EventDesignate}:    Designated,
	{Designated, EventDesignate}:   Designated,
	{Requested, EventReject}:       Cancelled,
	{Designated, EventDispatch}:    Dispatched,
	{Dispatched, EventUndispatch}:  Designated,
	{Designated, EventUndesignate}: Requested,
	{Requested, EventCancel}:       Cancelled,
	{Cancelled, EventCancel}:       Cancelled,
	{Designated, EventCancel}:      Cancelled,
	{Received, EventCancel}:        Cancelled,
	{Dispatched, EventCancel}:      Cancelled,
}

// Next returns the target state for event, or false when the move is not allowed.
func (s State) Next(event Event) (State, bool) {
	next, ok := transitions[transition{from: s, event: event}]
	return next, ok
}

// Can reports whether event is legal from s.
func (s State) Can(event Event) bool {
	_, ok := s.Next(event)
	return ok
}

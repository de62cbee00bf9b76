package order

import (
	"fmt"
	"slices"
	"strings"

	"donations/internal/pkg/errs"
)

// State is the lifecycle state of an order.
//
//	draft ─submit─> submitted ─receive─> received
//	                    │                    │
//	                    └──start_processing──┴─> processing ─finish_processing─> awaiting_dispatch
//	                                                                                   │
//	          closed <─close─ dispatching <─start_dispatching──────────────────────────┘
//
// Active orders may be cancelled; closed orders may be reopened and cancelled ones resubmitted.
type State int

const (
	Unknown State = iota
	Draft
	Submitted
	Received
	Processing
	AwaitingDispatch
	Dispatching
	Closed
	Cancelled
)

var stateNames = map[State]string{
	Draft:            "draft",
	Submitted:        "submitted",
	Received:         "received",
	Processing:       "processing",
	AwaitingDispatch: "awaiting_dispatch",
	Dispatching:      "dispatching",
	Closed:           "closed",
	Cancelled:        "cancelled",
}

// ActiveStates lists the states shown on the operations dashboard.
func ActiveStates() []State {
	return []State{Submitted, Received, Processing, AwaitingDispatch, Dispatching}
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

func (s State) IsActive() bool {
	return slices.Contains(ActiveStates(), s)
}

func ParseState(name string) (State, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range stateNames {
		if n == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a valid state", name))
}

// Event is a named lifecycle transition.
type Event int

const (
	EventSubmit Event = iota + 1
	EventReceive
	EventStartProcessing
	EventFinishProcessing
	EventStartDispatching
	EventClose
	EventCancel
	EventReopen
	EventResubmit
	EventRestartProcess
)

var eventNames = map[Event]string{
	EventSubmit:           "submit",
	EventReceive:          "receive",
	EventStartProcessing:  "start_processing",
	EventFinishProcessing: "finish_processing",
	EventStartDispatching: "start_dispatching",
	EventClose:            "close",
	EventCancel:           "cancel",
	EventReopen:           "reopen",
	EventResubmit:         "resubmit",
	EventRestartProcess:   "restart_process",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return "unknown"
}

// ParseEvent maps a transition name from a client to an Event.
func ParseEvent(name string) (Event, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for e, n := range eventNames {
		if n == name {
			return e, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("transition", fmt.Errorf("%q is not a known event", name))
}

type guardFunc func(DesignationSummary) bool

type transition struct {
	from  State
	event Event
}

type target struct {
	to    State
	guard guardFunc
}

var transitions = map[transition]target{
	{Draft, EventSubmit}:                      {to: Submitted},
	{Submitted, EventReceive}:                 {to: Received},
	{Submitted, EventStartProcessing}:         {to: Processing},
	{Received, EventStartProcessing}:          {to: Processing},
	{Processing, EventFinishProcessing}:       {to: AwaitingDispatch, guard: DesignationSummary.IsFullyDesignated},
	{AwaitingDispatch, EventStartDispatching}: {to: Dispatching},
	{Dispatching, EventClose}:                 {to: Closed, guard: DesignationSummary.IsFullyDispatched},
	{Processing, EventRestartProcess}:         {to: Submitted},
	{AwaitingDispatch, EventRestartProcess}:   {to: Submitted},
	{Closed, EventReopen}:                     {to: Dispatching},
	{Cancelled, EventResubmit}:                {to: Submitted},
	{Submitted, EventCancel}:                  {to: Cancelled},
	{Received, EventCancel}:                   {to: Cancelled},
	{Processing, EventCancel}:                 {to: Cancelled},
	{AwaitingDispatch, EventCancel}:           {to: Cancelled},
	{Dispatching, EventCancel}:                {to: Cancelled},
}

// Next resolves event from s given the order's designation summary.
func (s State) Next(event Event, summary DesignationSummary) (State, bool) {
	t, ok := transitions[transition{from: s, event: event}]
	if !ok {
		return s, false
	}
	if t.guard != nil && !t.guard(summary) {
		return s, false
	}
	return t.to, true
}

// Events lists the events currently available from s, in declaration order.
func (s State) Events(summary DesignationSummary) []Event {
	var out []Event
	for e := EventSubmit; e <= EventRestartProcess; e++ {
		if _, ok := s.Next(e, summary); ok {
			out = append(out, e)
		}
	}
	return out
}

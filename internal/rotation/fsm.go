// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package rotation implements the credential rotation protocols: password
// change, recovery-phrase regeneration and PIN-gated password adoption.
//
// Every flow is an explicit finite state machine with named states and a
// transition table. All three share one precondition: the content key must
// be obtainable client-side — from the session cache or by unwrapping an
// existing credential with a just-supplied secret — before any new
// credential is produced. Rotation replaces credentials, never the content
// key, so items encrypted before a rotation stay valid after it.
package rotation

import (
	"errors"
	"fmt"
)

// State names one step of a rotation flow.
type State string

const (
	StateIdle             State = "IDLE"
	StateVerifyingCurrent State = "VERIFYING_CURRENT"
	StateDerivingNew      State = "DERIVING_NEW"
	StateSubmitting       State = "SUBMITTING"
	StateDone             State = "DONE"

	StatePINInput      State = "PIN_INPUT"
	StatePasswordInput State = "PASSWORD_INPUT"
)

// ErrInvalidTransition reports a flow driven out of order, e.g. submitting
// a password before the PIN phase recovered the content key.
var ErrInvalidTransition = errors.New("invalid rotation state transition")

// transitions is the shared transition table. Failure edges lead back to
// the flow's initial state; the machine rejects everything else.
var transitions = map[State][]State{
	StateIdle:             {StateVerifyingCurrent},
	StateVerifyingCurrent: {StateDerivingNew, StateIdle},
	StateDerivingNew:      {StateSubmitting, StateIdle},
	StateSubmitting:       {StateDone, StateIdle},
	StateDone:             {},

	StatePINInput:      {StatePasswordInput, StatePINInput},
	StatePasswordInput: {StateDone, StatePINInput, StatePasswordInput},
}

// fsm tracks the current state of one flow instance. Flows are
// single-session objects driven cooperatively; they are not safe for
// concurrent use and do not need to be.
type fsm struct {
	state   State
	initial State
}

func newFSM(initial State) *fsm {
	return &fsm{state: initial, initial: initial}
}

func (f *fsm) current() State {
	return f.state
}

// to advances the machine, or fails with ErrInvalidTransition when the
// table does not allow the edge.
func (f *fsm) to(next State) error {
	for _, allowed := range transitions[f.state] {
		if allowed == next {
			f.state = next
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, f.state, next)
}

// reset returns the machine to its initial state after a failure.
func (f *fsm) reset() {
	f.state = f.initial
}

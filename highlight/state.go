package highlight

import "fmt"

// State is the state of the highlight machine: either Idle, or Filtered by a
// non-empty value.
type State struct {
	value    string
	filtered bool
}

// Idle is the state without a selected value. The highlight set is empty.
func Idle() State {
	return State{}
}

// Filtered is the state after value v has been selected. Filtered("") is Idle.
func Filtered(v string) State {
	if v == "" {
		return Idle()
	}
	return State{value: v, filtered: true}
}

// IsIdle is true for the Idle state.
func (s State) IsIdle() bool {
	return !s.filtered
}

// Value is the selected value, or "" when idle.
func (s State) Value() string {
	return s.value
}

func (s State) String() string {
	if s.filtered {
		return fmt.Sprintf("Filtered(%q)", s.value)
	}
	return "Idle"
}

// --- Matching --------------------------------------------------------------

// Match returns a matcher for a state, to be used in switch statements:
//
//	var v string
//	switch m := state.Match(); m {
//	case m.Idle():
//	    ...
//	case m.Filtered(&v):
//	    ...
//	}
func (s State) Match() Matcher {
	return matcher{s: s}
}

// Matcher decomposes a State.
type Matcher interface {
	Idle() Matcher
	Filtered(*string) Matcher
}

type matcher struct {
	s State
}

func (mm matcher) Idle() Matcher {
	if !mm.s.filtered {
		return mm
	}
	return nil
}

func (mm matcher) Filtered(v *string) Matcher {
	if mm.s.filtered {
		*v = mm.s.value
		return mm
	}
	return nil
}

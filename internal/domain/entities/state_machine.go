package entities

// StateMachine is a closed transition table over a string-backed status type.
//
// Every known state must appear as a key; terminal states map to an empty slice.
type StateMachine[S ~string] struct {
	name        string
	transitions map[S][]S
}

func NewStateMachine[S ~string](name string, transitions map[S][]S) StateMachine[S] {
	return StateMachine[S]{name: name, transitions: transitions}
}

// IsValid reports whether s is one of the machine's states.
func (m StateMachine[S]) IsValid(s S) bool {
	_, ok := m.transitions[s]
	return ok
}

func (m StateMachine[S]) IsTerminal(s S) bool {
	next, ok := m.transitions[s]
	return ok && len(next) == 0
}

func (m StateMachine[S]) CanTransition(from, to S) bool {
	for _, s := range m.transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidTransitions lists the states reachable from `from` in table order.
func (m StateMachine[S]) ValidTransitions(from S) []string {
	next := m.transitions[from]
	out := make([]string, 0, len(next))
	for _, s := range next {
		out = append(out, string(s))
	}
	return out
}

// Transition returns `to` when the move is allowed, or an INVALID_STATE DomainError
// listing the states reachable from `from`.
func (m StateMachine[S]) Transition(from, to S) (S, error) {
	if !m.IsValid(to) {
		return from, NewDomainError(KindInvalidState, "unknown %s status %q", m.name, to).
			WithTransitions(m.ValidTransitions(from))
	}
	if !m.CanTransition(from, to) {
		return from, NewDomainError(KindInvalidState, "%s cannot move from %s to %s", m.name, from, to).
			WithTransitions(m.ValidTransitions(from))
	}
	return to, nil
}

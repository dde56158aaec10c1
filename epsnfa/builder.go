package epsnfa

import "sort"

// Builder constructs an EpsNFA incrementally, generalizing nfa/builder.go's
// AddX/Validate/Build discipline. Unlike the teacher's builder, targets
// never need forward-patching: NewState reserves an ID up front, so loop
// edges (e.g. a quantifier's body exit back to its own entry) are wired
// once both ends exist.
type Builder struct {
	states  []State
	initial StateID
	maxSize int
}

// NewBuilder creates a builder with the given state-count cap (spec.md
// §4.2's maxNfaSize). A cap of 0 means unbounded.
func NewBuilder(maxSize int) *Builder {
	return &Builder{initial: InvalidState, maxSize: maxSize}
}

// NewState allocates a fresh, transition-less state and returns its ID.
// Returns ErrNFATooLarge if this would exceed the configured cap.
func (b *Builder) NewState() (StateID, error) {
	if b.maxSize > 0 && len(b.states) >= b.maxSize {
		return InvalidState, ErrNFATooLarge
	}
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id})
	return id, nil
}

// AddTransition appends a transition from an existing state.
func (b *Builder) AddTransition(from StateID, tr Transition) error {
	if int(from) >= len(b.states) {
		return &BuildError{Message: "source state out of bounds", StateID: from}
	}
	b.states[from].transitions = append(b.states[from].transitions, tr)
	return nil
}

// SetAccepting marks id as a match state.
func (b *Builder) SetAccepting(id StateID) error {
	if int(id) >= len(b.states) {
		return &BuildError{Message: "state out of bounds", StateID: id}
	}
	b.states[id].accepting = true
	return nil
}

// SetInitial sets the NFA's single initial state.
func (b *Builder) SetInitial(id StateID) {
	b.initial = id
}

// NumStates returns the current number of allocated states.
func (b *Builder) NumStates() int { return len(b.states) }

// Validate checks that the initial state and every transition target are
// in range.
func (b *Builder) Validate() error {
	if b.initial == InvalidState {
		return &BuildError{Message: "initial state not set"}
	}
	if int(b.initial) >= len(b.states) {
		return &BuildError{Message: "initial state out of bounds", StateID: b.initial}
	}
	for i, s := range b.states {
		for _, tr := range s.transitions {
			if int(tr.Target) >= len(b.states) {
				return &BuildError{Message: "transition target out of bounds", StateID: StateID(i)}
			}
		}
	}
	return nil
}

// Build finalizes the NFA: validates, then sorts each state's transitions
// by ascending Priority so downstream consumers can rely on priority order
// without re-sorting.
func (b *Builder) Build() (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	for i := range b.states {
		trs := b.states[i].transitions
		sort.SliceStable(trs, func(x, y int) bool { return trs[x].Priority < trs[y].Priority })
	}
	return &NFA{states: b.states, initial: b.initial}, nil
}

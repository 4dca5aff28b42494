package parse

// State walks an argument list one token at a time. A new state sits before the first
// argument, so the first Advance moves onto argv[0].
type State struct {
	pos  int
	args []string
}

// NewState creates a State over args
func NewState(args []string) *State {
	return &State{pos: -1, args: args}
}

// Advance moves to the next argument and reports whether there was one
func (s *State) Advance() bool {
	if !s.HasNext() {
		return false
	}
	s.pos++

	return true
}

// CurrentArg returns the argument under the cursor, or "" before the first Advance
func (s *State) CurrentArg() string {
	if s.pos < 0 || s.pos >= len(s.args) {
		return ""
	}

	return s.args[s.pos]
}

func (s *State) HasNext() bool {
	return s.pos+1 < len(s.args)
}

// Peek returns the next argument without moving
func (s *State) Peek() string {
	if !s.HasNext() {
		return ""
	}

	return s.args[s.pos+1]
}

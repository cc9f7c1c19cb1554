package parser

// State is reusable scratch area for a sequence of Parse calls, amortizing
// allocation of the scratch buffer used to build owned (escaped) strings.
// A *State must not be shared across concurrent Parse calls.
type State struct {
	scratch []byte
	// Copies counts the number of string tokens that required allocation
	// because they contained at least one escape sequence. Used to verify
	// the borrow/owned invariant in tests.
	Copies int
	// cartridge is the backing-buffer handle of the most recent Parse call
	// using this State, exposed via Cartridge for a caller that wants to
	// track when every string borrowed during that parse has been released.
	cartridge *Cartridge
}

// Cartridge returns the backing-buffer handle for the most recent Parse
// call that used this State, or nil if none has run yet.
func (st *State) Cartridge() *Cartridge {
	return st.cartridge
}

// NewState creates an empty, reusable parser scratch state.
func NewState() *State {
	return &State{}
}

func (st *State) resetScratch() []byte {
	st.scratch = st.scratch[:0]
	return st.scratch
}

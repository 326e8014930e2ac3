package selector

// singleState is the whole state of a radio list: the cursor is the
// selection.
type singleState struct {
	cursor int
	n      int
}

func newSingleState(n int) singleState {
	return singleState{n: n}
}

// apply moves the cursor with wrap-around at both ends. Events other than
// up and down leave the state untouched.
func (s singleState) apply(e event) singleState {
	switch e {
	case eventUp:
		s.cursor = (s.cursor - 1 + s.n) % s.n
	case eventDown:
		s.cursor = (s.cursor + 1) % s.n
	}
	return s
}

// multiState tracks the cursor and one chosen flag per option.
type multiState struct {
	cursor int
	chosen []bool
}

func newMultiState(n int) multiState {
	return multiState{chosen: make([]bool, n)}
}

// apply clamps the cursor at both ends (no wrap) and flips the flag under
// the cursor on toggle. The chosen slice is copied before a toggle so that
// earlier states stay valid.
func (s multiState) apply(e event) multiState {
	last := len(s.chosen) - 1
	switch e {
	case eventUp:
		s.cursor = max(0, s.cursor-1)
	case eventDown:
		s.cursor = min(last, s.cursor+1)
	case eventToggle:
		chosen := make([]bool, len(s.chosen))
		copy(chosen, s.chosen)
		chosen[s.cursor] = !chosen[s.cursor]
		s.chosen = chosen
	}
	return s
}

func (s multiState) equal(o multiState) bool {
	if s.cursor != o.cursor || len(s.chosen) != len(o.chosen) {
		return false
	}
	for i := range s.chosen {
		if s.chosen[i] != o.chosen[i] {
			return false
		}
	}
	return true
}

// selected returns the chosen options in declaration order. The result is
// never nil so that "nothing chosen" is distinguishable from "no answer".
func (s multiState) selected(options []Option) []Option {
	out := make([]Option, 0, len(options))
	for i, ok := range s.chosen {
		if ok {
			out = append(out, options[i])
		}
	}
	return out
}

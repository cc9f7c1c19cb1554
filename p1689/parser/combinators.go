package parser

// expectByte consumes ws, then requires the next byte equals want.
func expectByte(s *Stream, want byte, context string) *Error {
	s.SkipSpace()
	if !s.MatchByte(want) {
		return newError(s, KindUnexpectedByte, "expected `%c` in %s", want, context)
	}
	return nil
}

// parseQuotedString consumes ws, requires an opening quote, and returns the
// decoded string contents (see State.jsonString for borrow/owned rules).
func (st *State) parseQuotedString(s *Stream) (string, *Error) {
	s.SkipSpace()
	if !s.MatchByte('"') {
		return "", newError(s, KindUnexpectedByte, "expected a string")
	}
	return st.jsonString(s)
}

// parseBool consumes ws and a JSON literal `true` or `false`.
func parseBool(s *Stream) (bool, *Error) {
	s.SkipSpace()
	if s.MatchSlice([]byte("true")) {
		return true, nil
	}
	if s.MatchSlice([]byte("false")) {
		return false, nil
	}
	return false, newError(s, KindUnexpectedByte, "expected `true` or `false`")
}

// parseStringArray parses a JSON array of strings: `[ "a", "b" ]`. Trailing
// commas are rejected (strict JSON); see DESIGN.md for the rationale.
func (st *State) parseStringArray(s *Stream, context string) ([]string, *Error) {
	if err := expectByte(s, '[', context); err != nil {
		return nil, err
	}
	var out []string
	s.SkipSpace()
	if s.MatchByte(']') {
		return out, nil
	}
	for {
		str, err := st.parseQuotedString(s)
		if err != nil {
			return nil, err
		}
		out = append(out, str)
		s.SkipSpace()
		if s.MatchByte(',') {
			s.SkipSpace()
			continue
		}
		if s.MatchByte(']') {
			return out, nil
		}
		return nil, newError(s, KindUnexpectedByte, "expected `,` or `]` in %s", context)
	}
}

// parseArray repeatedly invokes elem to parse each array element, handling
// the surrounding brackets and comma separators. Trailing commas are
// rejected.
func parseArray(s *Stream, context string, elem func() *Error) *Error {
	if err := expectByte(s, '[', context); err != nil {
		return err
	}
	s.SkipSpace()
	if s.MatchByte(']') {
		return nil
	}
	for {
		if err := elem(); err != nil {
			return err
		}
		s.SkipSpace()
		if s.MatchByte(',') {
			s.SkipSpace()
			continue
		}
		if s.MatchByte(']') {
			return nil
		}
		return newError(s, KindUnexpectedByte, "expected `,` or `]` in %s", context)
	}
}

package parser

// Stream is a forward-only cursor over a dep-file's bytes, tracking row/col
// for diagnostics as it advances. It never copies the input; string tokens
// without escapes are borrowed directly from buf via its Cartridge.
type Stream struct {
	path string
	buf  []byte
	cart *Cartridge
	pos  int
	row  int // 0-based line
	col  int // 0-based column within line
}

// NewStream creates a Stream over buf, labeled path for diagnostics, backed
// by a fresh Cartridge with a reference count of one.
func NewStream(path string, buf []byte) *Stream {
	return &Stream{path: path, buf: buf, cart: NewCartridge(buf)}
}

// Cartridge returns the Stream's backing buffer handle, for a caller that
// wants to track the lifetime of strings borrowed during this parse.
func (s *Stream) Cartridge() *Cartridge {
	return s.cart
}

// Done reports whether the stream is exhausted.
func (s *Stream) Done() bool {
	return s.pos >= len(s.buf)
}

// Remaining returns the unconsumed suffix of the input.
func (s *Stream) Remaining() []byte {
	return s.buf[s.pos:]
}

// Peek returns the next byte without consuming it.
func (s *Stream) Peek() (byte, bool) {
	if s.Done() {
		return 0, false
	}
	return s.buf[s.pos], true
}

// PeekAt returns the byte n positions ahead of the cursor without consuming.
func (s *Stream) PeekAt(n int) (byte, bool) {
	i := s.pos + n
	if i >= len(s.buf) {
		return 0, false
	}
	return s.buf[i], true
}

// Advance consumes and returns the next byte, tracking row/col.
func (s *Stream) Advance() (byte, bool) {
	b, ok := s.Peek()
	if !ok {
		return 0, false
	}
	s.pos++
	if b == '\n' {
		s.row++
		s.col = 0
	} else {
		s.col++
	}
	return b, true
}

// AdvanceN consumes n bytes, tracking row/col.
func (s *Stream) AdvanceN(n int) {
	for i := 0; i < n; i++ {
		s.Advance()
	}
}

// MatchByte consumes the next byte if it equals want, reporting success.
func (s *Stream) MatchByte(want byte) bool {
	b, ok := s.Peek()
	if !ok || b != want {
		return false
	}
	s.Advance()
	return true
}

// MatchSlice consumes len(want) bytes if they equal want exactly.
func (s *Stream) MatchSlice(want []byte) bool {
	if len(s.Remaining()) < len(want) {
		return false
	}
	for i, b := range want {
		if s.buf[s.pos+i] != b {
			return false
		}
	}
	s.AdvanceN(len(want))
	return true
}

// SkipSpace consumes ASCII whitespace (space, tab, CR, LF).
func (s *Stream) SkipSpace() {
	for {
		b, ok := s.Peek()
		if !ok {
			return
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			s.Advance()
		default:
			return
		}
	}
}

// Pos returns the current 1-based row and column, for error reporting.
func (s *Stream) Pos() (row, col int) {
	return s.row + 1, s.col + 1
}

// Path returns the diagnostic label for this stream's source.
func (s *Stream) Path() string {
	return s.path
}

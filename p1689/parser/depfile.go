package parser

import "github.com/silvanshade/cppdeps/p1689"

// Parse parses a complete P1689r5 dependency information file from data,
// using path only as a diagnostic label. state is reusable scratch memory;
// it must not be shared across concurrent calls to Parse.
func Parse(path string, data []byte, state *State) (p1689.DepFile, error) {
	s := NewStream(path, data)
	state.cartridge = s.Cartridge()
	df, err := state.parseDepFile(s)
	if err != nil {
		return p1689.DepFile{}, err
	}
	s.SkipSpace()
	if !s.Done() {
		return p1689.DepFile{}, newError(s, KindUnexpectedByte, "unexpected trailing data after dep-file")
	}
	return df, nil
}

var depFileFieldNames = []string{"revision", "rules", "version"}

// parseDepFile parses the top-level object: {"version", "revision"?, "rules"}.
// Field keys are dispatched by scanning the (zero-copy) key string and
// switching on it, which the Go compiler lowers to the same kind of
// byte-prefix comparison tree the original byte-dispatch parser performs by
// hand.
func (st *State) parseDepFile(s *Stream) (p1689.DepFile, *Error) {
	if err := expectByte(s, '{', "DepFile"); err != nil {
		return p1689.DepFile{}, err
	}

	var (
		df         p1689.DepFile
		haveVer    bool
		haveRules  bool
	)

	s.SkipSpace()
	if s.MatchByte('}') {
		return p1689.DepFile{}, errMissingField(s, "version")
	}

	for {
		key, err := st.parseObjectKey(s)
		if err != nil {
			return p1689.DepFile{}, err
		}
		switch key {
		case "version":
			if haveVer {
				return p1689.DepFile{}, errDuplicateField(s, "version")
			}
			s.SkipSpace()
			v, err := decUint(s)
			if err != nil {
				return p1689.DepFile{}, err
			}
			df.Version = v
			haveVer = true
		case "revision":
			if df.HasRevision {
				return p1689.DepFile{}, errDuplicateField(s, "revision")
			}
			s.SkipSpace()
			v, err := decUint(s)
			if err != nil {
				return p1689.DepFile{}, err
			}
			df.Revision = v
			df.HasRevision = true
		case "rules":
			if haveRules {
				return p1689.DepFile{}, errDuplicateField(s, "rules")
			}
			rules, err := st.parseRules(s)
			if err != nil {
				return p1689.DepFile{}, err
			}
			df.Rules = rules
			haveRules = true
		default:
			return p1689.DepFile{}, errUnrecognizedFields(s, "DepFile", depFileFieldNames)
		}

		s.SkipSpace()
		if s.MatchByte(',') {
			s.SkipSpace()
			continue
		}
		if s.MatchByte('}') {
			break
		}
		return p1689.DepFile{}, newError(s, KindUnexpectedByte, "expected `,` or `}` in DepFile")
	}

	if !haveVer {
		return p1689.DepFile{}, errMissingField(s, "version")
	}
	if !haveRules {
		return p1689.DepFile{}, errMissingField(s, "rules")
	}
	return df, nil
}

func (st *State) parseRules(s *Stream) ([]p1689.DepInfo, *Error) {
	var rules []p1689.DepInfo
	err := parseArray(s, "rules", func() *Error {
		info, err := st.parseDepInfo(s)
		if err != nil {
			return err
		}
		rules = append(rules, info)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// parseObjectKey expects ws, an opening quote, the key contents, and the
// trailing `:` (with surrounding whitespace), returning the key string.
func (st *State) parseObjectKey(s *Stream) (string, *Error) {
	key, err := st.parseQuotedString(s)
	if err != nil {
		return "", err
	}
	s.SkipSpace()
	if !s.MatchByte(':') {
		return "", newError(s, KindUnexpectedByte, "expected `:` after object key")
	}
	s.SkipSpace()
	return key, nil
}

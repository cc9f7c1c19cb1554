package parser

import "github.com/silvanshade/cppdeps/p1689"

var depInfoFieldNames = []string{"outputs", "primary-output", "provides", "requires", "work-directory"}

// parseDepInfo parses a single rule object within the "rules" array.
func (st *State) parseDepInfo(s *Stream) (p1689.DepInfo, *Error) {
	if err := expectByte(s, '{', "DepInfo"); err != nil {
		return p1689.DepInfo{}, err
	}

	var info p1689.DepInfo
	var haveOutputs, haveProvides, haveRequires bool

	s.SkipSpace()
	if s.MatchByte('}') {
		return info, nil
	}

	for {
		key, err := st.parseObjectKey(s)
		if err != nil {
			return p1689.DepInfo{}, err
		}
		switch key {
		case "work-directory":
			if info.HasWorkDirectory {
				return p1689.DepInfo{}, errDuplicateField(s, "work-directory")
			}
			v, err := st.parseQuotedString(s)
			if err != nil {
				return p1689.DepInfo{}, err
			}
			info.WorkDirectory = v
			info.HasWorkDirectory = true
		case "primary-output":
			if info.HasPrimaryOutput {
				return p1689.DepInfo{}, errDuplicateField(s, "primary-output")
			}
			v, err := st.parseQuotedString(s)
			if err != nil {
				return p1689.DepInfo{}, err
			}
			info.PrimaryOutput = v
			info.HasPrimaryOutput = true
		case "outputs":
			if haveOutputs {
				return p1689.DepInfo{}, errDuplicateField(s, "outputs")
			}
			v, err := st.parseStringArray(s, "outputs")
			if err != nil {
				return p1689.DepInfo{}, err
			}
			info.Outputs = v
			haveOutputs = true
		case "provides":
			if haveProvides {
				return p1689.DepInfo{}, errDuplicateField(s, "provides")
			}
			var provides []p1689.ProvidedModuleDesc
			err := parseArray(s, "provides", func() *Error {
				p, err := st.parseProvidedModuleDesc(s)
				if err != nil {
					return err
				}
				provides = append(provides, p)
				return nil
			})
			if err != nil {
				return p1689.DepInfo{}, err
			}
			info.Provides = provides
			haveProvides = true
		case "requires":
			if haveRequires {
				return p1689.DepInfo{}, errDuplicateField(s, "requires")
			}
			var requires []p1689.RequiredModuleDesc
			err := parseArray(s, "requires", func() *Error {
				r, err := st.parseRequiredModuleDesc(s)
				if err != nil {
					return err
				}
				requires = append(requires, r)
				return nil
			})
			if err != nil {
				return p1689.DepInfo{}, err
			}
			info.Requires = requires
			haveRequires = true
		default:
			return p1689.DepInfo{}, errUnrecognizedFields(s, "DepInfo", depInfoFieldNames)
		}

		s.SkipSpace()
		if s.MatchByte(',') {
			s.SkipSpace()
			continue
		}
		if s.MatchByte('}') {
			break
		}
		return p1689.DepInfo{}, newError(s, KindUnexpectedByte, "expected `,` or `}` in DepInfo")
	}

	return info, nil
}

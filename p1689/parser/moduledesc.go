package parser

import "github.com/silvanshade/cppdeps/p1689"

var providedModuleDescFieldNames = []string{
	"compiled-module-path", "is-interface", "logical-name", "source-path", "unique-on-source-path",
}

var requiredModuleDescFieldNames = []string{
	"compiled-module-path", "logical-name", "lookup-method", "source-path", "unique-on-source-path",
}

// moduleDescFields holds the fields common to provided and required module
// descriptors while they are being accumulated from the object.
type moduleDescFields struct {
	logicalName        string
	haveLogicalName    bool
	sourcePath         string
	haveSourcePath     bool
	compiledModulePath string
	haveCompiledPath   bool
	uniqueOnSourcePath bool
	haveUnique         bool
}

func (f moduleDescFields) toModuleDesc() p1689.ModuleDesc {
	return p1689.ModuleDesc{
		LogicalName:        f.logicalName,
		SourcePath:         f.sourcePath,
		HasSourcePath:      f.haveSourcePath,
		CompiledModulePath: f.compiledModulePath,
		HasCompiledPath:    f.haveCompiledPath,
		UniqueOnSourcePath: f.uniqueOnSourcePath,
	}
}

func (st *State) parseProvidedModuleDesc(s *Stream) (p1689.ProvidedModuleDesc, *Error) {
	if err := expectByte(s, '{', "ProvidedModuleDesc"); err != nil {
		return p1689.ProvidedModuleDesc{}, err
	}

	var f moduleDescFields
	isInterface := true
	haveIsInterface := false

	s.SkipSpace()
	if !s.MatchByte('}') {
		for {
			key, err := st.parseObjectKey(s)
			if err != nil {
				return p1689.ProvidedModuleDesc{}, err
			}
			switch key {
			case "logical-name":
				if f.haveLogicalName {
					return p1689.ProvidedModuleDesc{}, errDuplicateField(s, "logical-name")
				}
				v, err := st.parseQuotedString(s)
				if err != nil {
					return p1689.ProvidedModuleDesc{}, err
				}
				f.logicalName, f.haveLogicalName = v, true
			case "source-path":
				if f.haveSourcePath {
					return p1689.ProvidedModuleDesc{}, errDuplicateField(s, "source-path")
				}
				v, err := st.parseQuotedString(s)
				if err != nil {
					return p1689.ProvidedModuleDesc{}, err
				}
				f.sourcePath, f.haveSourcePath = v, true
			case "compiled-module-path":
				if f.haveCompiledPath {
					return p1689.ProvidedModuleDesc{}, errDuplicateField(s, "compiled-module-path")
				}
				v, err := st.parseQuotedString(s)
				if err != nil {
					return p1689.ProvidedModuleDesc{}, err
				}
				f.compiledModulePath, f.haveCompiledPath = v, true
			case "unique-on-source-path":
				if f.haveUnique {
					return p1689.ProvidedModuleDesc{}, errDuplicateField(s, "unique-on-source-path")
				}
				s.SkipSpace()
				v, err := parseBool(s)
				if err != nil {
					return p1689.ProvidedModuleDesc{}, err
				}
				f.uniqueOnSourcePath, f.haveUnique = v, true
			case "is-interface":
				if haveIsInterface {
					return p1689.ProvidedModuleDesc{}, errDuplicateField(s, "is-interface")
				}
				s.SkipSpace()
				v, err := parseBool(s)
				if err != nil {
					return p1689.ProvidedModuleDesc{}, err
				}
				isInterface, haveIsInterface = v, true
			default:
				return p1689.ProvidedModuleDesc{}, errUnrecognizedFields(s, "ProvidedModuleDesc", providedModuleDescFieldNames)
			}

			s.SkipSpace()
			if s.MatchByte(',') {
				s.SkipSpace()
				continue
			}
			if s.MatchByte('}') {
				break
			}
			return p1689.ProvidedModuleDesc{}, newError(s, KindUnexpectedByte, "expected `,` or `}` in ProvidedModuleDesc")
		}
	}

	if !f.haveLogicalName {
		return p1689.ProvidedModuleDesc{}, errMissingField(s, "logical-name")
	}
	if f.uniqueOnSourcePath && !f.haveSourcePath {
		return p1689.ProvidedModuleDesc{}, errMissingField(s, "source-path")
	}

	return p1689.ProvidedModuleDesc{
		ModuleDesc:  f.toModuleDesc(),
		IsInterface: isInterface,
	}, nil
}

func (st *State) parseRequiredModuleDesc(s *Stream) (p1689.RequiredModuleDesc, *Error) {
	if err := expectByte(s, '{', "RequiredModuleDesc"); err != nil {
		return p1689.RequiredModuleDesc{}, err
	}

	var f moduleDescFields
	lookup := p1689.ByName
	haveLookup := false

	s.SkipSpace()
	if !s.MatchByte('}') {
		for {
			key, err := st.parseObjectKey(s)
			if err != nil {
				return p1689.RequiredModuleDesc{}, err
			}
			switch key {
			case "logical-name":
				if f.haveLogicalName {
					return p1689.RequiredModuleDesc{}, errDuplicateField(s, "logical-name")
				}
				v, err := st.parseQuotedString(s)
				if err != nil {
					return p1689.RequiredModuleDesc{}, err
				}
				f.logicalName, f.haveLogicalName = v, true
			case "source-path":
				if f.haveSourcePath {
					return p1689.RequiredModuleDesc{}, errDuplicateField(s, "source-path")
				}
				v, err := st.parseQuotedString(s)
				if err != nil {
					return p1689.RequiredModuleDesc{}, err
				}
				f.sourcePath, f.haveSourcePath = v, true
			case "compiled-module-path":
				if f.haveCompiledPath {
					return p1689.RequiredModuleDesc{}, errDuplicateField(s, "compiled-module-path")
				}
				v, err := st.parseQuotedString(s)
				if err != nil {
					return p1689.RequiredModuleDesc{}, err
				}
				f.compiledModulePath, f.haveCompiledPath = v, true
			case "unique-on-source-path":
				if f.haveUnique {
					return p1689.RequiredModuleDesc{}, errDuplicateField(s, "unique-on-source-path")
				}
				s.SkipSpace()
				v, err := parseBool(s)
				if err != nil {
					return p1689.RequiredModuleDesc{}, err
				}
				f.uniqueOnSourcePath, f.haveUnique = v, true
			case "lookup-method":
				if haveLookup {
					return p1689.RequiredModuleDesc{}, errDuplicateField(s, "lookup-method")
				}
				v, err := st.parseLookupMethod(s)
				if err != nil {
					return p1689.RequiredModuleDesc{}, err
				}
				lookup, haveLookup = v, true
			default:
				return p1689.RequiredModuleDesc{}, errUnrecognizedFields(s, "RequiredModuleDesc", requiredModuleDescFieldNames)
			}

			s.SkipSpace()
			if s.MatchByte(',') {
				s.SkipSpace()
				continue
			}
			if s.MatchByte('}') {
				break
			}
			return p1689.RequiredModuleDesc{}, newError(s, KindUnexpectedByte, "expected `,` or `}` in RequiredModuleDesc")
		}
	}

	if !f.haveLogicalName {
		return p1689.RequiredModuleDesc{}, errMissingField(s, "logical-name")
	}
	if f.uniqueOnSourcePath && !f.haveSourcePath {
		return p1689.RequiredModuleDesc{}, errMissingField(s, "source-path")
	}

	return p1689.RequiredModuleDesc{
		ModuleDesc:   f.toModuleDesc(),
		LookupMethod: lookup,
	}, nil
}

var lookupMethodNames = []string{"by-name", "include-angle", "include-quote"}

// parseLookupMethod parses one of the three lookup-method string literals.
func (st *State) parseLookupMethod(s *Stream) (p1689.LookupMethod, *Error) {
	v, err := st.parseQuotedString(s)
	if err != nil {
		return 0, err
	}
	switch v {
	case "by-name":
		return p1689.ByName, nil
	case "include-angle":
		return p1689.IncludeAngle, nil
	case "include-quote":
		return p1689.IncludeQuote, nil
	default:
		return 0, newError(s, KindInvalidLookupMethod, "Failed parsing RequiredModuleDescLookupMethod:\nexpected one of: %s", formatExpectedSet(lookupMethodNames))
	}
}

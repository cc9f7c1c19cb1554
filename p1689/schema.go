// Package p1689 defines the data model for ISO/IEC P1689r5 dependency
// information files: the JSON format C++ compilers emit to describe which
// modules a translation unit provides and requires.
package p1689

// LookupMethod describes how a required module name was spelled in source.
type LookupMethod int

const (
	// ByName is the default: the module was named in a module-name context
	// (e.g. `import foo;`).
	ByName LookupMethod = iota
	// IncludeAngle means the name came from an angle-bracket include that the
	// compiler resolved to a module (`#include <foo>`).
	IncludeAngle
	// IncludeQuote means the name came from a quoted include resolved to a
	// module (`#include "foo"`).
	IncludeQuote
)

func (m LookupMethod) String() string {
	switch m {
	case ByName:
		return "by-name"
	case IncludeAngle:
		return "include-angle"
	case IncludeQuote:
		return "include-quote"
	default:
		return "unknown"
	}
}

// UniqueBy identifies which field is the identity key for a ModuleDesc.
type UniqueBy int

const (
	// UniqueByLogicalName means LogicalName is the identity key.
	UniqueByLogicalName UniqueBy = iota
	// UniqueBySourcePath means SourcePath is the identity key.
	UniqueBySourcePath
)

// ModuleDesc describes a named module, either identified by its logical name
// or, when unique-on-source-path is set, by its source path.
type ModuleDesc struct {
	LogicalName        string
	SourcePath         string
	HasSourcePath      bool
	CompiledModulePath string
	HasCompiledPath    bool
	UniqueOnSourcePath bool
}

// ModuleDescView is a uniform projection over the two ModuleDesc shapes.
type ModuleDescView struct {
	Key                string
	UniqueBy           UniqueBy
	LogicalName        string
	SourcePath         string
	HasSourcePath      bool
	CompiledModulePath string
	HasCompiledPath    bool
}

// View projects a ModuleDesc into its identity-uniform representation.
func (d ModuleDesc) View() ModuleDescView {
	v := ModuleDescView{
		LogicalName:        d.LogicalName,
		SourcePath:         d.SourcePath,
		HasSourcePath:      d.HasSourcePath,
		CompiledModulePath: d.CompiledModulePath,
		HasCompiledPath:    d.HasCompiledPath,
	}
	if d.UniqueOnSourcePath {
		v.UniqueBy = UniqueBySourcePath
		v.Key = d.SourcePath
	} else {
		v.UniqueBy = UniqueByLogicalName
		v.Key = d.LogicalName
	}
	return v
}

// Equal reports whether two ModuleDesc values describe the same module,
// including identity discriminator and all fields.
func (d ModuleDesc) Equal(other ModuleDesc) bool {
	return d == other
}

// ProvidedModuleDesc describes a module provided by a compilation rule.
type ProvidedModuleDesc struct {
	ModuleDesc
	// IsInterface reports whether this is a module interface unit. Defaults
	// to true when absent from the source JSON.
	IsInterface bool
}

// RequiredModuleDesc describes a module required by a compilation rule.
type RequiredModuleDesc struct {
	ModuleDesc
	LookupMethod LookupMethod
}

// DepInfo is the dependency information for a single compilation rule.
type DepInfo struct {
	WorkDirectory    string
	HasWorkDirectory bool
	PrimaryOutput    string
	HasPrimaryOutput bool
	Outputs          []string
	Provides         []ProvidedModuleDesc
	Requires         []RequiredModuleDesc
}

// DepFile is a parsed P1689r5 dependency information file.
type DepFile struct {
	Version     uint32
	Revision    uint32
	HasRevision bool
	Rules       []DepInfo
}

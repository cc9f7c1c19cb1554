package p1689

// DepFileBuilder assembles a DepFile with the JSON schema's defaults.
type DepFileBuilder struct {
	f DepFile
}

// NewDepFile starts a DepFileBuilder with version defaulted to 1. This is a
// builder default only: the parser requires an explicit "version" field.
func NewDepFile() *DepFileBuilder {
	return &DepFileBuilder{f: DepFile{Version: 1}}
}

func (b *DepFileBuilder) Version(v uint32) *DepFileBuilder {
	b.f.Version = v
	return b
}

func (b *DepFileBuilder) Revision(v uint32) *DepFileBuilder {
	b.f.Revision = v
	b.f.HasRevision = true
	return b
}

func (b *DepFileBuilder) Rule(info DepInfo) *DepFileBuilder {
	b.f.Rules = append(b.f.Rules, info)
	return b
}

func (b *DepFileBuilder) Build() DepFile {
	return b.f
}

// DepInfoBuilder assembles a single DepInfo.
type DepInfoBuilder struct {
	i DepInfo
}

func NewDepInfo() *DepInfoBuilder {
	return &DepInfoBuilder{}
}

func (b *DepInfoBuilder) WorkDirectory(path string) *DepInfoBuilder {
	b.i.WorkDirectory = path
	b.i.HasWorkDirectory = true
	return b
}

func (b *DepInfoBuilder) PrimaryOutput(path string) *DepInfoBuilder {
	b.i.PrimaryOutput = path
	b.i.HasPrimaryOutput = true
	return b
}

func (b *DepInfoBuilder) Output(path string) *DepInfoBuilder {
	b.i.Outputs = append(b.i.Outputs, path)
	return b
}

func (b *DepInfoBuilder) Provides(p ProvidedModuleDesc) *DepInfoBuilder {
	b.i.Provides = append(b.i.Provides, p)
	return b
}

func (b *DepInfoBuilder) Requires(r RequiredModuleDesc) *DepInfoBuilder {
	b.i.Requires = append(b.i.Requires, r)
	return b
}

func (b *DepInfoBuilder) Build() DepInfo {
	return b.i
}

// ModuleDescBuilder assembles a ModuleDesc, keyed by which identity the
// caller selects.
type ModuleDescBuilder struct {
	d ModuleDesc
}

// ByLogicalName starts a ModuleDesc identified by its logical name.
func ByLogicalName(name string) *ModuleDescBuilder {
	return &ModuleDescBuilder{d: ModuleDesc{LogicalName: name}}
}

// BySourcePath starts a ModuleDesc identified by its source path.
func BySourcePath(logicalName, sourcePath string) *ModuleDescBuilder {
	return &ModuleDescBuilder{d: ModuleDesc{
		LogicalName:        logicalName,
		SourcePath:         sourcePath,
		HasSourcePath:      true,
		UniqueOnSourcePath: true,
	}}
}

func (b *ModuleDescBuilder) SourcePath(path string) *ModuleDescBuilder {
	b.d.SourcePath = path
	b.d.HasSourcePath = true
	return b
}

func (b *ModuleDescBuilder) CompiledModulePath(path string) *ModuleDescBuilder {
	b.d.CompiledModulePath = path
	b.d.HasCompiledPath = true
	return b
}

// Provided finishes the descriptor as a ProvidedModuleDesc, defaulting
// IsInterface to true per the JSON schema.
func (b *ModuleDescBuilder) Provided() *ProvidedModuleDescBuilder {
	return &ProvidedModuleDescBuilder{p: ProvidedModuleDesc{ModuleDesc: b.d, IsInterface: true}}
}

// Required finishes the descriptor as a RequiredModuleDesc, defaulting
// LookupMethod to ByName per the JSON schema.
func (b *ModuleDescBuilder) Required() *RequiredModuleDescBuilder {
	return &RequiredModuleDescBuilder{r: RequiredModuleDesc{ModuleDesc: b.d, LookupMethod: ByName}}
}

type ProvidedModuleDescBuilder struct {
	p ProvidedModuleDesc
}

func (b *ProvidedModuleDescBuilder) IsInterface(v bool) *ProvidedModuleDescBuilder {
	b.p.IsInterface = v
	return b
}

func (b *ProvidedModuleDescBuilder) Build() ProvidedModuleDesc {
	return b.p
}

type RequiredModuleDescBuilder struct {
	r RequiredModuleDesc
}

func (b *RequiredModuleDescBuilder) LookupMethod(m LookupMethod) *RequiredModuleDescBuilder {
	b.r.LookupMethod = m
	return b
}

func (b *RequiredModuleDescBuilder) Build() RequiredModuleDesc {
	return b.r
}

package toolchain

// Library is the hook set a driver calls back into. Each hook runs at most
// once per run, in declaration order.
type Library interface {
	OnSetup(d *Driver) error
	OnConfigurePasses(d *Driver) error
	OnPreprocess(d *Driver, ast *ASTContext) error
	OnPostprocess(d *Driver, ast *ASTContext) error
}

// NopHooks implements the three extension hooks as no-ops. Embed it and
// provide OnSetup to satisfy Library.
type NopHooks struct{}

func (NopHooks) OnConfigurePasses(*Driver) error {
	return nil
}

func (NopHooks) OnPreprocess(*Driver, *ASTContext) error {
	return nil
}

func (NopHooks) OnPostprocess(*Driver, *ASTContext) error {
	return nil
}

// ASTContext is the parse result owned by the driver. Hooks may read it
// during the call but must not keep it.
type ASTContext struct {
	units []TranslationUnit
}

// TranslationUnit is one header the backend resolved.
type TranslationUnit struct {
	Module string
	Header string
	Path   string
}

func NewASTContext(units []TranslationUnit) *ASTContext {
	return &ASTContext{units: append([]TranslationUnit(nil), units...)}
}

func (c *ASTContext) Units() []TranslationUnit {
	return append([]TranslationUnit(nil), c.units...)
}

package toolchain

import (
	"fmt"
	"slices"

	"github.com/CubbyFlow/cubbyflow-bindgen/internal/bindgen"
)

// GeneratorKind selects the code emitter of the toolchain.
type GeneratorKind int

const (
	GeneratorCSharp GeneratorKind = iota
	GeneratorEmbedded
)

func (k GeneratorKind) String() string {
	switch k {
	case GeneratorCSharp:
		return "csharp"
	case GeneratorEmbedded:
		return "embedded"
	default:
		return fmt.Sprintf("generator(%d)", int(k))
	}
}

// GeneratorFor maps an output flavor onto the emitter that produces it.
func GeneratorFor(f bindgen.Flavor) GeneratorKind {
	if f == bindgen.FlavorEmbedded {
		return GeneratorEmbedded
	}
	return GeneratorCSharp
}

// Options is the driver option set hooks write to during setup.
type Options struct {
	GeneratorKind GeneratorKind
	OutputDir     string
	modules       []*bindgen.ModuleDescriptor
}

// AddModule attaches a descriptor. Module names are unique per run.
func (o *Options) AddModule(m *bindgen.ModuleDescriptor) error {
	if m == nil {
		return fmt.Errorf("nil module descriptor")
	}
	for _, existing := range o.modules {
		if existing.Name() == m.Name() {
			return fmt.Errorf("module %q already added", m.Name())
		}
	}
	o.modules = append(o.modules, m)
	return nil
}

// Modules returns the attached descriptors in insertion order.
func (o *Options) Modules() []*bindgen.ModuleDescriptor {
	return slices.Clone(o.modules)
}

// ParserOptions toggles parser features.
type ParserOptions struct {
	EnableRTTI bool
}

package bindgen

import (
	"fmt"
	"strings"
)

// Flavor selects the output variant of a generation run together with the
// header set and include layout it needs.
type Flavor int

const (
	// FlavorManaged emits managed-library bindings over the animation headers only.
	FlavorManaged Flavor = iota
	// FlavorEmbedded emits embeddable-runtime bindings over the extended
	// header set and additionally needs the boost include root and RTTI.
	FlavorEmbedded
)

func (f Flavor) String() string {
	switch f {
	case FlavorManaged:
		return "managed"
	case FlavorEmbedded:
		return "embedded"
	default:
		return fmt.Sprintf("flavor(%d)", int(f))
	}
}

// ParseFlavor maps a config/flag value onto a Flavor.
func ParseFlavor(s string) (Flavor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "managed", "csharp", "":
		return FlavorManaged, nil
	case "embedded", "embeddable":
		return FlavorEmbedded, nil
	default:
		return 0, fmt.Errorf("unknown flavor %q (supported: managed, embedded)", s)
	}
}

func (f Flavor) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Flavor) UnmarshalText(b []byte) error {
	v, err := ParseFlavor(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// header groups, in native declaration order
var (
	animationHeaders = []string{
		"Core/Animation/Animation.h",
		"Core/Animation/Frame.h",
		"Core/Animation/PhysicsAnimation.h",
	}
	arrayHeaders = []string{
		"Core/Array/ArrayAccessor.h",
		"Core/Array/ArrayAccessor1.h",
		"Core/Array/ArrayAccessor1-Impl.h",
		"Core/Array/ArrayAccessor2.h",
		"Core/Array/ArrayAccessor2-Impl.h",
		"Core/Array/ArrayAccessor3.h",
		"Core/Array/ArrayAccessor3-Impl.h",
	}
	pointHeaders = []string{
		"Core/Point/Point.h",
		"Core/Point/Point-Impl.h",
		"Core/Point/Point2.h",
		"Core/Point/Point2-Impl.h",
		"Core/Point/Point3.h",
		"Core/Point/Point3-Impl.h",
	}
	utilsHeaders = []string{
		"Core/Utils/Constants.h",
	}
)

// Headers returns the fixed header identifiers of the flavor. Order matters:
// the toolchain consumes them in declaration dependency order.
func (f Flavor) Headers() []string {
	var out []string
	out = append(out, animationHeaders...)
	if f == FlavorEmbedded {
		out = append(out, arrayHeaders...)
		out = append(out, pointHeaders...)
		out = append(out, utilsHeaders...)
	}
	return out
}

// NeedsThirdPartyIncludes reports whether the flavor pulls in boost headers.
func (f Flavor) NeedsThirdPartyIncludes() bool {
	return f == FlavorEmbedded
}

// EnableRTTI reports whether the parser must run with RTTI support.
func (f Flavor) EnableRTTI() bool {
	return f == FlavorEmbedded
}

package bindgen

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml"
	"golang.org/x/crypto/blake2b"
	yaml "gopkg.in/yaml.v3"
)

// Manifest is the serializable view of a descriptor and its options.
type Manifest struct {
	Version     string   `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Module      string   `json:"module" yaml:"module" toml:"module"`
	Flavor      string   `json:"flavor" yaml:"flavor" toml:"flavor"`
	RTTI        bool     `json:"rtti" yaml:"rtti" toml:"rtti"`
	IncludeDirs []string `json:"includeDirs" yaml:"includeDirs" toml:"includeDirs"`
	Headers     []string `json:"headers" yaml:"headers" toml:"headers"`
	LibraryDirs []string `json:"libraryDirs" yaml:"libraryDirs" toml:"libraryDirs"`
	Libraries   []string `json:"libraries" yaml:"libraries" toml:"libraries"`
	Fingerprint string   `json:"fingerprint" yaml:"fingerprint" toml:"fingerprint"`
}

// NewManifest snapshots d and opts.
func NewManifest(d *ModuleDescriptor, opts GenerationOptions) Manifest {
	return Manifest{
		Module:      d.Name(),
		Flavor:      opts.Flavor.String(),
		RTTI:        opts.EnableRTTI,
		IncludeDirs: d.IncludeDirs(),
		Headers:     d.Headers(),
		LibraryDirs: d.LibraryDirs(),
		Libraries:   d.Libraries(),
		Fingerprint: d.Fingerprint(),
	}
}

// Fingerprint is a hex BLAKE2b-256 digest over the descriptor contents.
// Descriptors built from identical inputs share a fingerprint.
func (d *ModuleDescriptor) Fingerprint() string {
	h, _ := blake2b.New256(nil)
	write := func(tag string, vals ...string) {
		h.Write([]byte(tag))
		for _, v := range vals {
			h.Write([]byte{0})
			h.Write([]byte(v))
		}
		h.Write([]byte{'\n'})
	}
	write("name", d.name)
	write("include", d.includeDirs...)
	write("header", d.headers...)
	write("libdir", d.libraryDirs...)
	write("lib", d.libraries...)
	return hex.EncodeToString(h.Sum(nil))
}

// Encode renders the manifest as json, yaml or toml.
func (m Manifest) Encode(format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json", "":
		b, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case "yaml", "yml":
		return yaml.Marshal(m)
	case "toml":
		return toml.Marshal(m)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/CubbyFlow/cubbyflow-bindgen/internal/bindgen"
)

// Describe prints the descriptor a generate run would install.
type Describe struct {
	Selection `embed:""`

	Format string `help:"Output format" enum:"json,yaml,toml" default:"json"`

	out io.Writer
}

// Run is called by Kong when the describe command is executed.
func (c *Describe) Run(logger *slog.Logger) error {
	cfg, err := c.RunConfig()
	if err != nil {
		return err
	}
	d, err := bindgen.BuildConfig(bindgen.Config{
		WorkingDirectory: cfg.WorkingDirectory,
		Flavor:           cfg.Flavor,
		Layout:           cfg.Layout,
		Headers:          cfg.Headers,
	})
	if err != nil {
		return err
	}
	logger.Debug("Built descriptor", "module", d.Name(), "fingerprint", d.Fingerprint())

	data, err := bindgen.NewManifest(d, bindgen.OptionsFor(cfg.Flavor)).Encode(c.Format)
	if err != nil {
		return err
	}
	w := c.out
	if w == nil {
		w = os.Stdout
	}
	_, err = w.Write(data)
	return err
}

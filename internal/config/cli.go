package config

import "github.com/CubbyFlow/cubbyflow-bindgen/internal/cmd"

// CLI is the root kong command tree.
type CLI struct {
	Config string `help:"Path to a JSON, YAML or TOML config file" env:"CUBBYFLOW_BINDGEN_CONFIG" placeholder:"PATH"`

	Log struct {
		Level          string `help:"Log level: trace, debug, info, warn, error" default:"info" enum:"trace,debug,info,warn,error" env:"CUBBYFLOW_BINDGEN_LOG_LEVEL"`
		File           string `help:"Also write logs to this file" env:"CUBBYFLOW_BINDGEN_LOG_FILE"`
		Format         string `help:"Console log format: auto, text, json" default:"auto" enum:"auto,text,json" env:"CUBBYFLOW_BINDGEN_LOG_FORMAT"`
		TranscriptFile string `help:"Write raw generator output to this file" env:"CUBBYFLOW_BINDGEN_TRANSCRIPT"`
	} `embed:"" prefix:"log-"`

	Generate cmd.Generate      `cmd:"" default:"withargs" help:"Configure and run the binding generator"`
	Describe cmd.Describe      `cmd:"" help:"Print the module descriptor a generate run would use"`
	Cfg      cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}

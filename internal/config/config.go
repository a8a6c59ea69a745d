// Package config loads the optional YAML file that configures REPL
// ergonomics (prompt text, color, history file). It never affects
// interpreter semantics.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file glox looks for in the current
// working directory when --config isn't given.
const DefaultFileName = ".glox.yaml"

// Config holds REPL presentation settings. The built-in defaults applied
// when no config file is found come from Default, not the zero value.
type Config struct {
	// Prompt is printed before each REPL line. Defaults to "> ".
	Prompt string `yaml:"prompt"`
	// Color forces ANSI color on ("always"), off ("never"), or leaves
	// it to terminal auto-detection ("auto", the default).
	Color string `yaml:"color"`
	// HistoryFile is where REPL line history is persisted. Defaults to
	// "~/.glox_history".
	HistoryFile string `yaml:"history_file"`
}

// Default returns the built-in configuration used when no file is
// loaded.
func Default() Config {
	return Config{Prompt: "> ", Color: "auto", HistoryFile: "~/.glox_history"}
}

// Load reads and parses the YAML config file at path, filling in any
// field the file leaves zero-valued with Default's value. A missing
// file is not an error: Load returns Default() unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return cfg, err
	}
	if parsed.Prompt != "" {
		cfg.Prompt = parsed.Prompt
	}
	if parsed.Color != "" {
		cfg.Color = parsed.Color
	}
	if parsed.HistoryFile != "" {
		cfg.HistoryFile = parsed.HistoryFile
	}
	return cfg, nil
}

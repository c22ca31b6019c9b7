// Package config loads an optional YAML override file for settings
// that config.def.h would otherwise compile in statically: the
// colorrules[] table and a few of the numeric defaults. It follows the
// teacher's own config-file idiom (internal/config/config.go's
// yaml-tagged struct + gopkg.in/yaml.v3.Unmarshal) rather than
// reaching for flag-only configuration, since the corpus already shows
// the "small YAML file, loaded once at startup" shape for exactly this
// kind of optional override.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ColorRule is the YAML form of a screen.ColorRule: a title substring
// pattern and the ANSI color numbers to use when it matches.
type ColorRule struct {
	Pattern string `yaml:"pattern"`
	FG      int    `yaml:"fg"`
	BG      int    `yaml:"bg"`
}

// File is the top-level shape of a dvtm config file; every field is
// optional. cmd/dvtm applies ScrollHistory and ColorRules when present;
// Modifier and EscDelayMS are parsed but not applied.
type File struct {
	Modifier      string      `yaml:"modifier,omitempty"`
	ScrollHistory int         `yaml:"scroll_history,omitempty"`
	EscDelayMS    int         `yaml:"escdelay_ms,omitempty"`
	ColorRules    []ColorRule `yaml:"color_rules,omitempty"`
}

// Load reads and parses path. A missing file is not an error the
// caller need distinguish specially; callers that want --config to be
// optional should stat first.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &f, nil
}

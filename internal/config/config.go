// Package config resolves formatter settings: built-in defaults, caller
// overrides merged leaf by leaf, and the on-disk .raccfmt.toml file.
package config

import (
	"bytes"
	"crypto/sha256"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultPath is the config file looked up by the CLI.
const DefaultPath = ".raccfmt.toml"

// RuleName identifies a rewrite rule and is the lookup key of its section.
type RuleName string

const (
	RuleIndent       RuleName = "indent"
	RuleBraceNewline RuleName = "brace_newline"
	RuleSpacing      RuleName = "spacing"
	RuleAlignment    RuleName = "alignment"
	RuleEmptyLine    RuleName = "empty_line"
)

// RuleNames lists every known rule in pipeline order.
var RuleNames = []RuleName{RuleIndent, RuleBraceNewline, RuleSpacing, RuleAlignment, RuleEmptyLine}

// IndentStyle selects the indentation character.
type IndentStyle string

const (
	IndentSpaces IndentStyle = "spaces"
	IndentTabs   IndentStyle = "tabs"
)

// BraceStyle selects where the opening brace of an action goes.
type BraceStyle string

const (
	BraceSameLine BraceStyle = "same_line"
	BraceNewLine  BraceStyle = "new_line"
)

type Indent struct {
	Enabled bool        `toml:"enabled"`
	Size    int         `toml:"size"`
	Style   IndentStyle `toml:"style"`
}

// Unit returns one indentation level.
func (i Indent) Unit() string {
	ch := " "
	if i.Style == IndentTabs {
		ch = "\t"
	}
	size := i.Size
	if size <= 0 {
		size = 2
	}
	return strings.Repeat(ch, size)
}

type BraceNewline struct {
	Enabled     bool       `toml:"enabled"`
	Style       BraceStyle `toml:"style"`
	SpaceBefore bool       `toml:"space_before"`
}

type Spacing struct {
	Enabled      bool `toml:"enabled"`
	AroundColon  bool `toml:"around_colon"`
	AroundPipe   bool `toml:"around_pipe"`
	AroundEquals bool `toml:"around_equals"`
}

type Alignment struct {
	Enabled      bool `toml:"enabled"`
	AlignActions bool `toml:"align_actions"`
	AlignRules   bool `toml:"align_rules"`
}

type EmptyLine struct {
	Enabled      bool `toml:"enabled"`
	BetweenRules bool `toml:"between_rules"`
	AfterHeader  bool `toml:"after_header"`
	BeforeFooter bool `toml:"before_footer"`
}

// Rules groups the per-rule sections.
type Rules struct {
	Indent       Indent       `toml:"indent"`
	BraceNewline BraceNewline `toml:"brace_newline"`
	Spacing      Spacing      `toml:"spacing"`
	Alignment    Alignment    `toml:"alignment"`
	EmptyLine    EmptyLine    `toml:"empty_line"`
}

// Config is the resolved, read-only configuration of one format call.
type Config struct {
	Rules Rules `toml:"rules"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{Rules: Rules{
		Indent:       Indent{Enabled: true, Size: 2, Style: IndentSpaces},
		BraceNewline: BraceNewline{Enabled: true, Style: BraceSameLine, SpaceBefore: true},
		Spacing:      Spacing{Enabled: true, AroundColon: true, AroundPipe: true, AroundEquals: true},
		Alignment:    Alignment{Enabled: true, AlignActions: true, AlignRules: true},
		EmptyLine:    EmptyLine{Enabled: true, BetweenRules: true, AfterHeader: true, BeforeFooter: true},
	}}
}

// Enabled reports whether the named rule runs. Unknown names are disabled.
func (c Config) Enabled(name RuleName) bool {
	switch name {
	case RuleIndent:
		return c.Rules.Indent.Enabled
	case RuleBraceNewline:
		return c.Rules.BraceNewline.Enabled
	case RuleSpacing:
		return c.Rules.Spacing.Enabled
	case RuleAlignment:
		return c.Rules.Alignment.Enabled
	case RuleEmptyLine:
		return c.Rules.EmptyLine.Enabled
	}
	return false
}

// Map returns the nested map form of c, the shape config files use.
func (c Config) Map() map[string]any {
	r := c.Rules
	return map[string]any{
		"rules": map[string]any{
			string(RuleIndent): map[string]any{
				"enabled": r.Indent.Enabled,
				"size":    r.Indent.Size,
				"style":   string(r.Indent.Style),
			},
			string(RuleBraceNewline): map[string]any{
				"enabled":      r.BraceNewline.Enabled,
				"style":        string(r.BraceNewline.Style),
				"space_before": r.BraceNewline.SpaceBefore,
			},
			string(RuleSpacing): map[string]any{
				"enabled":       r.Spacing.Enabled,
				"around_colon":  r.Spacing.AroundColon,
				"around_pipe":   r.Spacing.AroundPipe,
				"around_equals": r.Spacing.AroundEquals,
			},
			string(RuleAlignment): map[string]any{
				"enabled":       r.Alignment.Enabled,
				"align_actions": r.Alignment.AlignActions,
				"align_rules":   r.Alignment.AlignRules,
			},
			string(RuleEmptyLine): map[string]any{
				"enabled":       r.EmptyLine.Enabled,
				"between_rules": r.EmptyLine.BetweenRules,
				"after_header":  r.EmptyLine.AfterHeader,
				"before_footer": r.EmptyLine.BeforeFooter,
			},
		},
	}
}

// Encode renders c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Fingerprint identifies the effective settings; equal configs share it.
func (c Config) Fingerprint() [32]byte {
	data, err := c.Encode()
	if err != nil {
		// encoding a plain struct of scalars does not fail
		panic(err)
	}
	return sha256.Sum256(data)
}

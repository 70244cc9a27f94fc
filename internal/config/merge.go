package config

import (
	"fortio.org/safecast"

	"raccfmt/internal/diag"
)

// FromMap merges raw over the defaults field by field and validates the
// result. Only the "rules" table is consulted; a sub-table in raw never
// replaces a default sub-table wholesale.
func FromMap(raw map[string]any) (Config, error) {
	merged := deepMerge(Default().Map(), raw)
	rules, ok := merged["rules"].(map[string]any)
	if !ok {
		return Config{}, diag.NewConfig(diag.ConfigInvalidType, nil, "[rules] must be a table")
	}

	d := decoder{rules: rules}
	cfg := Config{Rules: Rules{
		Indent: Indent{
			Enabled: d.boolean(RuleIndent, "enabled"),
			Size:    d.integer(RuleIndent, "size"),
			Style:   IndentStyle(d.str(RuleIndent, "style")),
		},
		BraceNewline: BraceNewline{
			Enabled:     d.boolean(RuleBraceNewline, "enabled"),
			Style:       BraceStyle(d.str(RuleBraceNewline, "style")),
			SpaceBefore: d.boolean(RuleBraceNewline, "space_before"),
		},
		Spacing: Spacing{
			Enabled:      d.boolean(RuleSpacing, "enabled"),
			AroundColon:  d.boolean(RuleSpacing, "around_colon"),
			AroundPipe:   d.boolean(RuleSpacing, "around_pipe"),
			AroundEquals: d.boolean(RuleSpacing, "around_equals"),
		},
		Alignment: Alignment{
			Enabled:      d.boolean(RuleAlignment, "enabled"),
			AlignActions: d.boolean(RuleAlignment, "align_actions"),
			AlignRules:   d.boolean(RuleAlignment, "align_rules"),
		},
		EmptyLine: EmptyLine{
			Enabled:      d.boolean(RuleEmptyLine, "enabled"),
			BetweenRules: d.boolean(RuleEmptyLine, "between_rules"),
			AfterHeader:  d.boolean(RuleEmptyLine, "after_header"),
			BeforeFooter: d.boolean(RuleEmptyLine, "before_footer"),
		},
	}}
	if d.err != nil {
		return Config{}, d.err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Merge applies overrides on top of c.
func (c Config) Merge(overrides map[string]any) (Config, error) {
	base := c.Map()
	return FromMap(deepMerge(base, overrides))
}

func (c Config) validate() error {
	r := c.Rules
	if r.Indent.Size < 1 {
		return diag.NewConfig(diag.ConfigInvalidValue, nil, "[rules.indent].size must be positive, got %d", r.Indent.Size)
	}
	switch r.Indent.Style {
	case IndentSpaces, IndentTabs:
	default:
		return diag.NewConfig(diag.ConfigInvalidValue, nil, "[rules.indent].style must be spaces or tabs, got %q", r.Indent.Style)
	}
	switch r.BraceNewline.Style {
	case BraceSameLine, BraceNewLine:
	default:
		return diag.NewConfig(diag.ConfigInvalidValue, nil, "[rules.brace_newline].style must be same_line or new_line, got %q", r.BraceNewline.Style)
	}
	return nil
}

func deepMerge(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		baseTable, baseOK := out[k].(map[string]any)
		overTable, overOK := v.(map[string]any)
		if baseOK && overOK {
			out[k] = deepMerge(baseTable, overTable)
			continue
		}
		out[k] = v
	}
	return out
}

// decoder reads typed values out of the merged rules table and keeps the
// first error.
type decoder struct {
	rules map[string]any
	err   error
}

func (d *decoder) value(rule RuleName, key string) (any, bool) {
	if d.err != nil {
		return nil, false
	}
	section, ok := d.rules[string(rule)].(map[string]any)
	if !ok {
		d.err = diag.NewConfig(diag.ConfigInvalidType, nil, "[rules.%s] must be a table", rule)
		return nil, false
	}
	v, ok := section[key]
	return v, ok
}

func (d *decoder) fail(rule RuleName, key, want string, got any) {
	d.err = diag.NewConfig(diag.ConfigInvalidType, nil, "[rules.%s].%s must be %s, got %T", rule, key, want, got)
}

func (d *decoder) boolean(rule RuleName, key string) bool {
	v, ok := d.value(rule, key)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		d.fail(rule, key, "a boolean", v)
	}
	return b
}

func (d *decoder) str(rule RuleName, key string) string {
	v, ok := d.value(rule, key)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.fail(rule, key, "a string", v)
	}
	return s
}

func (d *decoder) integer(rule RuleName, key string) int {
	v, ok := d.value(rule, key)
	if !ok {
		return 0
	}
	var (
		n   int
		err error
	)
	switch x := v.(type) {
	case int:
		n = x
	case int64:
		n, err = safecast.Conv[int](x)
	case int32:
		n, err = safecast.Conv[int](x)
	case uint64:
		n, err = safecast.Conv[int](x)
	case float64:
		n, err = safecast.Convert[int](x)
	default:
		d.fail(rule, key, "an integer", v)
		return 0
	}
	if err != nil {
		d.err = diag.NewConfig(diag.ConfigInvalidValue, err, "[rules.%s].%s", rule, key)
	}
	return n
}

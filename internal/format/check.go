package format

import (
	"bytes"
	"context"
	"slices"

	"raccfmt/internal/config"
	"raccfmt/internal/parser"
)

// CheckRoundTrip formats src, re-parses the result and formats it again,
// ensuring the rule names survive in order and that the second pass changes
// nothing.
func CheckRoundTrip(src []byte, cfg config.Config) (ok bool, msg string) {
	orig, err := parser.Parse(string(src))
	if err != nil {
		return false, "fmt-check: initial parse failed: " + err.Error()
	}

	f := New(cfg)
	ctx := context.Background()
	once, err := f.Format(ctx, src)
	if err != nil {
		return false, "fmt-check: formatter failed: " + err.Error()
	}

	rebuilt, err := parser.Parse(string(once))
	if err != nil {
		return false, "fmt-check: reparse failed: " + err.Error()
	}
	if !slices.Equal(ruleNames(orig.Rules()), ruleNames(rebuilt.Rules())) {
		return false, "fmt-check: rule names differ after round-trip"
	}

	twice, err := f.Format(ctx, once)
	if err != nil {
		return false, "fmt-check: second pass failed: " + err.Error()
	}
	if !bytes.Equal(once, twice) {
		return false, "fmt-check: output not stable on second pass"
	}
	return true, "fmt-check: OK"
}

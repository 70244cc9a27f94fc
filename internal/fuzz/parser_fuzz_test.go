package fuzztests

import (
	"context"
	"testing"
	"time"

	"raccfmt/internal/config"
	"raccfmt/internal/format"
	"raccfmt/internal/parser"
	"raccfmt/internal/source"
)

// parseTimeout is the maximum time allowed for one input. Exceeding it
// points at an infinite loop.
const parseTimeout = 5 * time.Second

// FuzzParserNoHang checks that the parser returns for any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			fileSet := source.NewFileSet()
			file := fileSet.Get(fileSet.AddVirtual("fuzz.y", input))
			_, _ = parser.Parse(string(file.Content))
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// FuzzFormatStable checks that formatted output parses again and is a
// fixed point of the formatter.
func FuzzFormatStable(f *testing.F) {
	addCorpusSeeds(f)
	cfg := config.Default()
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fileSet := source.NewFileSet()
		file := fileSet.Get(fileSet.AddVirtual("fuzz.y", input))

		if _, err := parser.Parse(string(file.Content)); err != nil {
			return
		}
		if ok, msg := format.CheckRoundTrip(file.Content, cfg); !ok {
			t.Fatalf("%s\ninput: %q", msg, truncateForLog(input, 200))
		}
	})
}

package main

import (
	"encoding/json"
	"io"

	"raccfmt/internal/diag"
	"raccfmt/internal/driver"
	"raccfmt/internal/observ"
)

type jsonResult struct {
	Path    string `json:"path"`
	Changed bool   `json:"changed"`
	Cached  bool   `json:"cached,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

type jsonReport struct {
	Mode    string         `json:"mode"`
	Files   []jsonResult   `json:"files"`
	Summary driver.Summary `json:"summary"`
	Timings *observ.Report `json:"timings,omitempty"`
}

func renderFormatJSON(out io.Writer, results []driver.FormatResult, mode driver.Mode, timings *observ.Totals) error {
	report := jsonReport{
		Mode:    mode.String(),
		Files:   make([]jsonResult, 0, len(results)),
		Summary: driver.Summarize(results),
	}
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, Cached: res.Cached}
		if res.Err != nil {
			jr.Error = res.Err.Error()
			if code := diag.CodeOf(res.Err); code != diag.UnknownCode {
				jr.Code = code.ID()
			}
		}
		report.Files = append(report.Files, jr)
	}
	if timings != nil {
		r := timings.Report()
		report.Timings = &r
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

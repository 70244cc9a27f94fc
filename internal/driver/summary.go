package driver

// Summary counts the outcomes of a run.
type Summary struct {
	Files   int `json:"files"`
	Changed int `json:"changed"`
	Cached  int `json:"cached"`
	Failed  int `json:"failed"`
}

// Summarize folds results into counts.
func Summarize(results []FormatResult) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Failed++
		case r.Cached:
			s.Cached++
		case r.Changed:
			s.Changed++
		}
	}
	return s
}

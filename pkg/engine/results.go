package engine

import (
	"time"
)

type Processed struct {
	Duration float64 `json:"time"`
	Unit     string  `json:"unit"`
}

type WordStem struct {
	Word string `json:"word"`
	Stem string `json:"stem"`
}

// StemResults is the answer to a stem or analyze request. Stems is set for
// stem requests, Terms for analyze requests.
type StemResults struct {
	Processed Processed  `json:"processed"`
	Language  Language   `json:"language"`
	Stems     []WordStem `json:"stems,omitempty"`
	Terms     []string   `json:"terms,omitempty"`
	Error     string     `json:"error,omitempty"`
}

type LanguagesResults struct {
	Languages []Language `json:"languages"`
	Error     string     `json:"error,omitempty"`
}

// ProcessedSince reports the time elapsed since t0 in milliseconds, with
// microsecond resolution below one millisecond.
func ProcessedSince(t0 time.Time) Processed {
	var duration float64
	elapsed := time.Since(t0)
	microseconds := elapsed.Microseconds()
	milliseconds := elapsed.Milliseconds()

	if microseconds > 1000 {
		duration = float64(milliseconds)
	} else {
		duration = float64(microseconds) / 1000.0
	}
	return Processed{
		Duration: duration,
		Unit:     "milliseconds",
	}
}

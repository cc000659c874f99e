package tournament

import (
	"encoding/json"
	"os"
)

// RunConfig records the grid-search parameters a persisted report was
// produced under.
type RunConfig struct {
	AlphaRange   Range `json:"alphaRange"`
	RiskRange    Range `json:"riskRange"`
	GamesPerPair int   `json:"gamesPerPair"`
	Workers      int   `json:"workers"`
}

// Document is the full persisted shape of a tournament run, per spec §6.
type Document struct {
	Config    RunConfig `json:"config"`
	Timestamp string    `json:"timestamp"`
	Results   []Report  `json:"results"`
}

// WriteJSON persists a full tournament document to path.
func WriteJSON(path string, cfg RunConfig, timestamp string, results []Report) error {
	doc := Document{Config: cfg, Timestamp: timestamp, Results: results}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// TopN returns the first n reports (already sorted by descending win
// rate), or every report if fewer than n exist.
func TopN(reports []Report, n int) []Report {
	if n <= 0 || n > len(reports) {
		return reports
	}
	return reports[:n]
}

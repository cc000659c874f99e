package tournament_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nullwave/flotilla/internal/tournament"
)

func TestRangeValuesQuantizesInclusively(t *testing.T) {
	t.Parallel()

	r := tournament.Range{Min: 0, Max: 1, Step: 0.5}
	values := r.Values()
	want := []float64{0, 0.5, 1}

	if len(values) != len(want) {
		t.Fatalf("got %v, want %v", values, want)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, values[i], want[i])
		}
	}
}

func TestRangeValuesWithZeroStepCollapsesToMin(t *testing.T) {
	t.Parallel()

	r := tournament.Range{Min: 0.4, Max: 0.4, Step: 0}
	values := r.Values()
	if len(values) != 1 || values[0] != 0.4 {
		t.Fatalf("expected a single-point range, got %v", values)
	}
}

func TestRunRejectsASingletonGrid(t *testing.T) {
	t.Parallel()

	_, err := tournament.Run(tournament.Options{
		AlphaRange: tournament.Range{Min: 0.5, Max: 0.5, Step: 0},
		RiskRange:  tournament.Range{Min: 0, Max: 0, Step: 0},
	})
	if err == nil {
		t.Fatalf("expected an error for a grid with fewer than two configurations")
	}
}

func TestRunProducesRankedReports(t *testing.T) {
	t.Parallel()

	var progressCalls int
	reports, err := tournament.Run(tournament.Options{
		AlphaRange:   tournament.Range{Min: 0.2, Max: 0.6, Step: 0.4},
		RiskRange:    tournament.Range{Min: 0, Max: 0, Step: 0},
		GamesPerPair: 2,
		Workers:      2,
		TurnCap:      60,
		Seed:         7,
		Progress:     func(completed, total int) { progressCalls++ },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(reports) != 2 {
		t.Fatalf("expected 2 configurations in the report, got %d", len(reports))
	}
	for i := 1; i < len(reports); i++ {
		if reports[i-1].WinRate < reports[i].WinRate {
			t.Errorf("reports not sorted by descending win rate: %+v", reports)
		}
	}
	for _, r := range reports {
		if r.Games != 2 {
			t.Errorf("expected each configuration to have played 2 games, got %d for %+v", r.Games, r.Config)
		}
	}
	if progressCalls == 0 {
		t.Errorf("expected the progress callback to fire at least once")
	}
}

func TestWriteJSONRoundTrips(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.json")
	results := []tournament.Report{
		{Config: tournament.Config{Alpha: 0.4, RiskAwareness: 0.2}, Wins: 3, Games: 4, WinRate: 0.75},
	}

	cfg := tournament.RunConfig{
		AlphaRange:   tournament.Range{Min: 0, Max: 1, Step: 0.5},
		RiskRange:    tournament.Range{Min: 0, Max: 0.5, Step: 0.5},
		GamesPerPair: 20,
		Workers:      4,
	}

	if err := tournament.WriteJSON(path, cfg, "2026-07-30T00:00:00Z", results); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error reading back the report: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected a non-empty report file")
	}
}

func TestTopNClampsToAvailableReports(t *testing.T) {
	t.Parallel()

	reports := []tournament.Report{{}, {}, {}}
	if got := tournament.TopN(reports, 2); len(got) != 2 {
		t.Errorf("expected 2 reports, got %d", len(got))
	}
	if got := tournament.TopN(reports, 10); len(got) != 3 {
		t.Errorf("expected clamp to 3 reports, got %d", len(got))
	}
}

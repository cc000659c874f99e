// Command tournament runs the self-play grid-search harness over a range
// of (alpha, riskAwareness) configurations and reports the ranked results.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/nullwave/flotilla/internal/env"
	"github.com/nullwave/flotilla/internal/tournament"
)

type presetRanges struct {
	alpha, risk    tournament.Range
	games, workers int
}

var presets = map[string]presetRanges{
	"test": {
		alpha:   tournament.Range{Min: 0.1, Max: 0.7, Step: 0.6},
		risk:    tournament.Range{Min: 0, Max: 0, Step: 0},
		games:   2,
		workers: 1,
	},
	"quick": {
		alpha:   tournament.Range{Min: 0, Max: 1, Step: 0.5},
		risk:    tournament.Range{Min: 0, Max: 0.4, Step: 0.4},
		games:   6,
		workers: 2,
	},
	"default": {
		alpha:   tournament.Range{Min: 0, Max: 1, Step: 0.25},
		risk:    tournament.Range{Min: 0, Max: 0.4, Step: 0.2},
		games:   tournament.DefaultGamesPerPair,
		workers: 0, // host CPU count
	},
	"full": {
		alpha:   tournament.Range{Min: 0, Max: 1, Step: 0.1},
		risk:    tournament.Range{Min: 0, Max: 0.4, Step: 0.1},
		games:   tournament.DefaultGamesPerPair,
		workers: 0,
	},
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("tournament", flag.ContinueOnError)

	// TOURNAMENT_OUTPUT seeds the -o default. TOURNAMENT_WORKERS is applied
	// below, only when the preset pins no worker count; an explicit
	// -workers/-o flag still overrides both.
	envCfg, err := env.LoadTournamentConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tournament: %v\n", err)
		return 1
	}

	preset := fs.String("preset", "default", "grid preset: test|quick|default|full")
	alphaMin := fs.Float64("alpha-min", 0, "minimum alpha")
	alphaMax := fs.Float64("alpha-max", 1, "maximum alpha")
	alphaStep := fs.Float64("alpha-step", 0.25, "alpha step")
	riskMin := fs.Float64("risk-min", 0, "minimum riskAwareness")
	riskMax := fs.Float64("risk-max", 0.4, "maximum riskAwareness")
	riskStep := fs.Float64("risk-step", 0.2, "riskAwareness step")
	games := fs.Int("games", 0, "games per pair (0 = preset default)")
	workers := fs.Int("workers", 0, "worker count (0 = host CPU count)")
	output := fs.String("o", envCfg.TournamentOutput, "output JSON report path")
	fs.StringVar(output, "output", envCfg.TournamentOutput, "output JSON report path (alias of -o)")
	turnCap := fs.Int("turn-cap", 0, "per-match turn cap (0 = default)")
	seed := fs.Uint64("seed", 1, "base RNG seed")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	p, ok := presets[*preset]
	if !ok {
		fmt.Fprintf(os.Stderr, "tournament: unknown preset %q\n", *preset)
		return 1
	}

	opts := tournament.Options{
		AlphaRange:   p.alpha,
		RiskRange:    p.risk,
		GamesPerPair: p.games,
		Workers:      p.workers,
		TurnCap:      *turnCap,
		Seed:         *seed,
	}

	// TOURNAMENT_WORKERS only kicks in when the preset itself doesn't pin a
	// worker count (workers == 0 means "host CPU count").
	if opts.Workers == 0 && envCfg.TournamentWorkers != 0 {
		opts.Workers = envCfg.TournamentWorkers
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "alpha-min":
			opts.AlphaRange.Min = *alphaMin
		case "alpha-max":
			opts.AlphaRange.Max = *alphaMax
		case "alpha-step":
			opts.AlphaRange.Step = *alphaStep
		case "risk-min":
			opts.RiskRange.Min = *riskMin
		case "risk-max":
			opts.RiskRange.Max = *riskMax
		case "risk-step":
			opts.RiskRange.Step = *riskStep
		case "games":
			opts.GamesPerPair = *games
		case "workers":
			opts.Workers = *workers
		}
	})

	start := time.Now()
	opts.Progress = func(completed, total int) {
		if total == 0 || completed%50 != 0 {
			return
		}
		elapsed := time.Since(start)
		fmt.Fprintf(os.Stderr, "tournament: %d/%d matches (%.0fs elapsed)\n", completed, total, elapsed.Seconds())
	}

	reports, err := tournament.Run(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tournament: %v\n", err)
		return 1
	}

	top := tournament.TopN(reports, 20)
	for i, r := range top {
		fmt.Printf("%2d. alpha=%.2f risk=%.2f  winRate=%.3f  %d-%d-%d (%d games, avg %.1f turns)\n",
			i+1, r.Config.Alpha, r.Config.RiskAwareness, r.WinRate, r.Wins, r.Losses, r.Draws, r.Games, r.AvgTurns)
	}

	if *output != "" {
		cfg := tournament.RunConfig{
			AlphaRange:   opts.AlphaRange,
			RiskRange:    opts.RiskRange,
			GamesPerPair: opts.GamesPerPair,
			Workers:      opts.Workers,
		}
		if err := tournament.WriteJSON(*output, cfg, time.Now().UTC().Format(time.RFC3339), reports); err != nil {
			fmt.Fprintf(os.Stderr, "tournament: failed to write report: %v\n", err)
			return 1
		}
	}

	return 0
}

// Package tournament implements the self-play grid-search harness: it
// explores a rectangular grid over (alpha, riskAwareness), plays every pair
// of configurations round-robin across a worker pool, and aggregates the
// results into a ranked report.
package tournament

import (
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"sort"
	"sync"

	"github.com/nullwave/flotilla/internal/decider"
	"github.com/nullwave/flotilla/internal/simulate"
	"github.com/nullwave/flotilla/internal/weapon"
)

// DefaultGamesPerPair is how many games each pair of configurations plays,
// per spec §4.8.
const DefaultGamesPerPair = 20

const rangeEpsilon = 1e-9

// Config is one point in the (alpha, riskAwareness) grid. Randomness is
// always pinned to zero in tournament play, per spec §4.8.
type Config struct {
	Alpha         float64 `json:"alpha"`
	RiskAwareness float64 `json:"riskAwareness"`
}

// Difficulty converts a grid point into the decider's parameter triple.
func (c Config) Difficulty() decider.Difficulty {
	return decider.Difficulty{Alpha: c.Alpha, Randomness: 0, RiskAwareness: c.RiskAwareness}
}

// Range describes an inclusive, step-quantized scan over one scalar axis.
type Range struct {
	Min, Max, Step float64
}

// Values expands a range into its scanned points. A non-positive step
// collapses the range to its minimum alone.
func (r Range) Values() []float64 {
	if r.Step <= 0 {
		return []float64{r.Min}
	}

	var out []float64
	for v := r.Min; v <= r.Max+rangeEpsilon; v += r.Step {
		out = append(out, math.Round(v*1e6)/1e6)
	}
	return out
}

// Options configures a tournament run.
type Options struct {
	AlphaRange   Range
	RiskRange    Range
	GamesPerPair int
	Workers      int
	TurnCap      int
	Registry     weapon.Registry
	// Seed seeds every worker's RNG deterministically (worker index is
	// mixed in so workers never share a stream).
	Seed uint64
	// Progress, if set, is invoked from the result-collector goroutine
	// after every completed match.
	Progress func(completed, total int)
}

// Report is one configuration's aggregated round-robin record.
type Report struct {
	Config   Config  `json:"config"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	Draws    int     `json:"draws"`
	Games    int     `json:"games"`
	WinRate  float64 `json:"winRate"`
	AvgTurns float64 `json:"avgTurns"`
}

func grid(alphaRange, riskRange Range) []Config {
	var out []Config
	for _, a := range alphaRange.Values() {
		for _, r := range riskRange.Values() {
			out = append(out, Config{Alpha: a, RiskAwareness: r})
		}
	}
	return out
}

type pairTask struct {
	i, j     int
	firstIsI bool
}

type aggregate struct {
	wins, losses, draws, games, turns int
}

func (a *aggregate) report(c Config) Report {
	var winRate, avgTurns float64
	if a.games > 0 {
		winRate = float64(a.wins) / float64(a.games)
		avgTurns = float64(a.turns) / float64(a.games)
	}
	return Report{Config: c, Wins: a.wins, Losses: a.losses, Draws: a.draws, Games: a.games, WinRate: winRate, AvgTurns: avgTurns}
}

// Run plays the full round-robin grid search and returns reports ranked by
// descending win rate.
func Run(opts Options) ([]Report, error) {
	configs := grid(opts.AlphaRange, opts.RiskRange)
	n := len(configs)
	if n < 2 {
		return nil, fmt.Errorf("tournament: grid needs at least two configurations, got %d", n)
	}

	gamesPerPair := opts.GamesPerPair
	if gamesPerPair <= 0 {
		gamesPerPair = DefaultGamesPerPair
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	registry := opts.Registry
	if registry == nil {
		registry = weapon.DefaultRegistry()
	}
	turnCap := opts.TurnCap
	if turnCap <= 0 {
		turnCap = simulate.DefaultTurnCap
	}

	var tasks []pairTask
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for g := 0; g < gamesPerPair; g++ {
				tasks = append(tasks, pairTask{i: i, j: j, firstIsI: g < gamesPerPair/2})
			}
		}
	}

	type outcome struct {
		task   pairTask
		result simulate.Result
	}

	taskCh := make(chan pairTask)
	resultCh := make(chan outcome)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerSeed uint64) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(opts.Seed, workerSeed))
			for task := range taskCh {
				first := simulate.WinnerA
				if !task.firstIsI {
					first = simulate.WinnerB
				}

				res, err := simulate.RunMatch(rng, configs[task.i].Difficulty(), configs[task.j].Difficulty(), registry, first, turnCap)
				if err != nil {
					continue
				}
				resultCh <- outcome{task: task, result: res}
			}
		}(uint64(w) + 1)
	}

	go func() {
		for _, task := range tasks {
			taskCh <- task
		}
		close(taskCh)
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	agg := make([]*aggregate, n)
	for i := range agg {
		agg[i] = &aggregate{}
	}

	total := len(tasks)
	completed := 0
	for o := range resultCh {
		completed++

		a, b := agg[o.task.i], agg[o.task.j]
		a.games++
		b.games++
		a.turns += o.result.Turns
		b.turns += o.result.Turns

		switch o.result.Winner {
		case simulate.WinnerA:
			a.wins++
			b.losses++
		case simulate.WinnerB:
			b.wins++
			a.losses++
		default:
			a.draws++
			b.draws++
		}

		if opts.Progress != nil {
			opts.Progress(completed, total)
		}
	}

	reports := make([]Report, n)
	for i, a := range agg {
		reports[i] = a.report(configs[i])
	}

	sort.Slice(reports, func(i, j int) bool {
		if reports[i].WinRate != reports[j].WinRate {
			return reports[i].WinRate > reports[j].WinRate
		}
		return reports[i].Games > reports[j].Games
	})

	return reports, nil
}

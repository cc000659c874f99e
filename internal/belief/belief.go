// Package belief implements the Monte Carlo belief engine: deriving hard
// and soft placement constraints from a fog-of-war view, sampling
// admissible ship configurations, and reducing the sample set to a marginal
// probability grid and a Shannon entropy figure.
package belief

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/nullwave/flotilla/internal/model"
)

// Default sample counts, per spec.
const (
	DefaultLiveSamples    = 700
	DefaultRolloutSamples = 50
	attemptMultiplier     = 20
	epsilon               = 1e-9
)

// ErrSamplerExhausted is returned when no configuration consistent with the
// observed constraints could be found within the attempt budget. The
// engine degrades gracefully: callers receive an all-zero probability grid
// and should fall back to random play for the turn.
var ErrSamplerExhausted = errors.New("belief: sampler exhausted its attempt budget")

// Constraints partitions the view grid into hard and soft placement rules.
type Constraints struct {
	MustHit   []model.Coordinate
	MustAvoid map[model.Coordinate]bool
	Suspect   map[model.Coordinate]bool
}

// DeriveConstraints partitions every cell of view by its fog-of-war state.
func DeriveConstraints(view model.ViewGrid) Constraints {
	c := Constraints{MustAvoid: map[model.Coordinate]bool{}, Suspect: map[model.Coordinate]bool{}}

	for r := range model.GridSize {
		for col := range model.GridSize {
			coord := model.Coordinate{R: r, C: col}
			switch view[r][col] {
			case model.Hit, model.Destroyed:
				c.MustHit = append(c.MustHit, coord)
			case model.Miss, model.Sunk:
				c.MustAvoid[coord] = true
			case model.Suspect:
				c.Suspect[coord] = true
			}
		}
	}

	return c
}

// Placement is one candidate location for a single ship.
type Placement struct {
	Type  model.ShipType
	Cells []model.Coordinate
}

// Configuration is a full assignment of every alive ship to a placement.
type Configuration []Placement

// ProbGrid is the marginal probability that each cell hosts a ship,
// averaged over a sample set.
type ProbGrid [model.GridSize][model.GridSize]float64

// BeliefState is the product of a single decision's belief construction: the
// accepted samples, their marginal grid, and the resulting entropy.
type BeliefState struct {
	Samples  []Configuration
	Marginal ProbGrid
	Entropy  float64
}

// Build draws up to m admissible configurations consistent with view for
// the given still-alive fleet, and reduces them to a marginal probability
// grid and entropy figure. On sampler exhaustion it returns a BeliefState
// with an all-zero marginal grid and ErrSamplerExhausted.
func Build(rng *rand.Rand, view model.ViewGrid, fleet []model.ShipType, m int) (BeliefState, error) {
	constraints := DeriveConstraints(view)
	budget := attemptMultiplier * m

	samples := make([]Configuration, 0, m)
	for attempts := 0; len(samples) < m && attempts < budget; attempts++ {
		if cfg, ok := sampleOne(rng, fleet, constraints); ok {
			samples = append(samples, cfg)
		}
	}

	if len(samples) == 0 {
		return BeliefState{Marginal: ProbGrid{}}, ErrSamplerExhausted
	}

	// Oversampling (padding with replacement) is preferable to under-weighting
	// rare constraints.
	for len(samples) < m {
		samples = append(samples, samples[rng.IntN(len(samples))])
	}

	marginal := marginalOf(samples, view)
	entropy := entropyOf(marginal, view)

	return BeliefState{Samples: samples, Marginal: marginal, Entropy: entropy}, nil
}

// sampleOne draws a single configuration: ships placed longest-first,
// weighted toward cells the observer already suspects or has hit.
func sampleOne(rng *rand.Rand, fleet []model.ShipType, constraints Constraints) (Configuration, bool) {
	ordered := slices.Clone(fleet)
	slices.SortFunc(ordered, func(a, b model.ShipType) int { return b.Size() - a.Size() })

	occupied := map[model.Coordinate]bool{}
	config := make(Configuration, 0, len(ordered))

	for _, t := range ordered {
		candidates := enumeratePlacements(t, occupied, constraints.MustAvoid)
		if len(candidates) == 0 {
			return nil, false
		}

		weights := make([]int, len(candidates))
		total := 0
		for i, p := range candidates {
			weights[i] = placementWeight(p, constraints)
			total += weights[i]
		}

		chosen := candidates[weightedIndex(rng, weights, total)]
		for _, c := range chosen.Cells {
			occupied[c] = true
		}
		config = append(config, chosen)
	}

	for _, c := range constraints.MustHit {
		if !occupied[c] {
			return nil, false
		}
	}

	return config, true
}

func placementWeight(p Placement, constraints Constraints) int {
	weight := 1
	mustHit := map[model.Coordinate]bool{}
	for _, c := range constraints.MustHit {
		mustHit[c] = true
	}

	for _, c := range p.Cells {
		if mustHit[c] {
			weight += 10
		}
		if constraints.Suspect[c] {
			weight += 2
		}
	}

	return weight
}

func weightedIndex(rng *rand.Rand, weights []int, total int) int {
	if total <= 0 {
		return rng.IntN(len(weights))
	}

	x := rng.IntN(total)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if x < cumulative {
			return i
		}
	}

	return len(weights) - 1
}

func enumeratePlacements(t model.ShipType, occupied, avoid map[model.Coordinate]bool) []Placement {
	var out []Placement
	size := t.Size()

	for _, o := range []model.Orientation{model.Horizontal, model.Vertical} {
		dr, dc := o.Vector()
		for r := range model.GridSize {
			for c := range model.GridSize {
				cells := make([]model.Coordinate, size)
				ok := true
				for i := range cells {
					cell := model.Coordinate{R: r + i*dr, C: c + i*dc}
					if cell.R < 0 || cell.R >= model.GridSize || cell.C < 0 || cell.C >= model.GridSize {
						ok = false
						break
					}
					if occupied[cell] || avoid[cell] {
						ok = false
						break
					}
					cells[i] = cell
				}
				if ok {
					out = append(out, Placement{Type: t, Cells: cells})
				}
				if size == 1 {
					break // a 1-cell ship has no horizontal/vertical distinction
				}
			}
		}
		if size == 1 {
			break
		}
	}

	return out
}

func marginalOf(samples []Configuration, view model.ViewGrid) ProbGrid {
	var counts [model.GridSize][model.GridSize]int

	for _, cfg := range samples {
		var covered [model.GridSize][model.GridSize]bool
		for _, p := range cfg {
			for _, c := range p.Cells {
				covered[c.R][c.C] = true
			}
		}
		for r := range model.GridSize {
			for c := range model.GridSize {
				if covered[r][c] {
					counts[r][c]++
				}
			}
		}
	}

	var grid ProbGrid
	n := float64(len(samples))
	for r := range model.GridSize {
		for c := range model.GridSize {
			grid[r][c] = float64(counts[r][c]) / n
		}
	}

	for r := range model.GridSize {
		for c := range model.GridSize {
			switch view[r][c] {
			case model.Hit:
				grid[r][c] = 1
			case model.Miss, model.Destroyed, model.Sunk:
				grid[r][c] = 0
			}
		}
	}

	return grid
}

// H2 is the binary Shannon entropy of a probability, clamped to zero within
// epsilon of 0 or 1.
func H2(p float64) float64 {
	if p <= epsilon || p >= 1-epsilon {
		return 0
	}
	return -p*math.Log2(p) - (1-p)*math.Log2(1-p)
}

func entropyOf(grid ProbGrid, view model.ViewGrid) float64 {
	total := 0.0
	for r := range model.GridSize {
		for c := range model.GridSize {
			if view[r][c] == model.Unknown || view[r][c] == model.Suspect {
				total += H2(grid[r][c])
			}
		}
	}
	return total
}

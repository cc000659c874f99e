package simulate

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/nullwave/flotilla/internal/model"
)

// Deployment spacing constants, per spec §4.7/§6.
const (
	IdealSpacing = 5.0
	MinSpacing   = 1.5
	SpacingStep  = 0.5
	TopFallback  = 5
)

type candidate struct {
	cells       []model.Coordinate
	start       model.Coordinate
	orientation model.Orientation
}

// Deploy places one full roster onto board using the random-but-sparse
// policy of spec §4.7: ship order is shuffled, the first ship lands
// anywhere legal, and every later ship prefers placements far from what's
// already down, backing off the spacing threshold until something fits.
func Deploy(rng *rand.Rand, board *model.Board, roster []model.ShipType) error {
	types := make([]model.ShipType, len(roster))
	copy(types, roster)
	shuffle(rng, types)

	for i, t := range types {
		candidates := legalPlacements(board, t)
		if len(candidates) == 0 {
			return fmt.Errorf("simulate: no legal placement left for %s", t)
		}

		var chosen candidate
		if i == 0 {
			chosen = candidates[rng.IntN(len(candidates))]
		} else {
			chosen = pickSpaced(rng, candidates, occupiedCells(board))
		}

		ship := model.NewShip(string(t), t, chosen.start, chosen.orientation)
		if err := board.PlaceShip(ship); err != nil {
			return err
		}
	}

	return nil
}

func shuffle(rng *rand.Rand, types []model.ShipType) {
	for i := len(types) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		types[i], types[j] = types[j], types[i]
	}
}

func legalPlacements(board *model.Board, t model.ShipType) []candidate {
	occupied := occupiedCells(board)
	size := t.Size()

	var out []candidate
	for _, o := range []model.Orientation{model.Horizontal, model.Vertical} {
		dr, dc := o.Vector()
		for r := range model.GridSize {
			for c := range model.GridSize {
				cells := make([]model.Coordinate, size)
				ok := true
				for i := range cells {
					cell := model.Coordinate{R: r + i*dr, C: c + i*dc}
					if !board.InBounds(cell) || occupied[cell] {
						ok = false
						break
					}
					cells[i] = cell
				}
				if ok {
					out = append(out, candidate{cells: cells, start: model.Coordinate{R: r, C: c}, orientation: o})
				}
			}
		}
		if size == 1 {
			break
		}
	}

	return out
}

func occupiedCells(board *model.Board) map[model.Coordinate]bool {
	out := map[model.Coordinate]bool{}
	for _, s := range board.Ships() {
		for _, c := range s.Cells() {
			out[c] = true
		}
	}
	return out
}

// pickSpaced implements the distance-based candidate narrowing of spec
// §4.7: keep every placement at or beyond the current spacing threshold,
// stepping the threshold down from IdealSpacing to MinSpacing; if nothing
// ever clears MinSpacing, fall back to the TopFallback most-distant
// candidates.
func pickSpaced(rng *rand.Rand, candidates []candidate, occupied map[model.Coordinate]bool) candidate {
	for threshold := IdealSpacing; threshold >= MinSpacing-epsilon; threshold -= SpacingStep {
		var survivors []candidate
		for _, cand := range candidates {
			if minDistance(cand.cells, occupied) >= threshold {
				survivors = append(survivors, cand)
			}
		}
		if len(survivors) > 0 {
			return survivors[rng.IntN(len(survivors))]
		}
	}

	ranked := make([]candidate, len(candidates))
	copy(ranked, candidates)
	distances := make([]float64, len(ranked))
	for i, cand := range ranked {
		distances[i] = minDistance(cand.cells, occupied)
	}
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && distances[j] > distances[j-1]; j-- {
			distances[j], distances[j-1] = distances[j-1], distances[j]
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	top := ranked
	if len(top) > TopFallback {
		top = top[:TopFallback]
	}
	return top[rng.IntN(len(top))]
}

const epsilon = 1e-9

func minDistance(cells []model.Coordinate, occupied map[model.Coordinate]bool) float64 {
	if len(occupied) == 0 {
		return math.Inf(1)
	}

	min := math.Inf(1)
	for _, c := range cells {
		for o := range occupied {
			d := math.Hypot(float64(c.R-o.R), float64(c.C-o.C))
			if d < min {
				min = d
			}
		}
	}
	return min
}

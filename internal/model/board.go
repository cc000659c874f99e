package model

import "fmt"

// Ship is a single vessel: a fixed hull type, a placement, and per-segment
// health that only ever decreases during a match.
type Ship struct {
	ID          string
	Type        ShipType
	R, C        int
	Orientation Orientation
	Segments    []int // current HP per segment, length == Type.Size()
	Sunk        bool
}

// NewShip creates a ship of the given type at rest with full health.
func NewShip(id string, t ShipType, start Coordinate, o Orientation) *Ship {
	segments := make([]int, t.Size())
	for i := range segments {
		segments[i] = t.MaxHP()
	}

	return &Ship{
		ID:          id,
		Type:        t,
		R:           start.R,
		C:           start.C,
		Orientation: o,
		Segments:    segments,
	}
}

// Cells returns the coordinates the ship occupies, in segment order.
func (s *Ship) Cells() []Coordinate {
	return calculateSegments(Coordinate{R: s.R, C: s.C}, s.Type.Size(), s.Orientation)
}

// AllSegmentsDestroyed reports whether every segment's health has reached zero.
func (s *Ship) AllSegmentsDestroyed() bool {
	for _, hp := range s.Segments {
		if hp > 0 {
			return false
		}
	}
	return true
}

// CheckConsistency returns ErrInconsistentState if the sunk flag disagrees
// with segment health — a programmer error the core never swallows.
func (s *Ship) CheckConsistency() error {
	if s.Sunk != s.AllSegmentsDestroyed() {
		return fmt.Errorf("%w: ship %s sunk=%v allSegmentsDestroyed=%v", ErrInconsistentState, s.ID, s.Sunk, s.AllSegmentsDestroyed())
	}
	return nil
}

type cell struct {
	hit     bool
	ship    *Ship
	segment int
}

// Board is the single source of truth for one side: the ships it owns, the
// cells that have been struck, and the derived fog-of-war view an opponent
// would see of it. A board has exactly one external observer, so the view
// lives alongside the truth grid rather than as a separately-synchronized
// structure.
type Board struct {
	cells   [GridSize][GridSize]cell
	suspect [GridSize][GridSize]bool
	ships   map[string]*Ship
	order   []string // insertion order, for deterministic iteration
}

// NewBoard creates an empty board ready for ship placement.
func NewBoard() *Board {
	return &Board{ships: make(map[string]*Ship)}
}

// InBounds reports whether a coordinate lies on the grid.
func (b *Board) InBounds(c Coordinate) bool { return inBounds(c) }

// PlaceShip adds a ship to the board at its own recorded position.
// The ship's position and orientation must already be set on s.
func (b *Board) PlaceShip(s *Ship) error {
	segments := s.Cells()

	for _, c := range segments {
		if !b.InBounds(c) {
			return ErrShipOutOfBounds
		}
		if b.cells[c.R][c.C].ship != nil {
			return ErrShipOverlap
		}
	}

	for i, c := range segments {
		b.cells[c.R][c.C] = cell{ship: s, segment: i}
	}

	b.ships[s.ID] = s
	b.order = append(b.order, s.ID)

	return nil
}

// Ships returns every ship on the board, in placement order.
func (b *Board) Ships() []*Ship {
	out := make([]*Ship, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.ships[id])
	}
	return out
}

// Ship returns the ship with the given id, or nil.
func (b *Board) Ship(id string) *Ship { return b.ships[id] }

// AliveTypes returns the hull types of every ship not yet sunk.
func (b *Board) AliveTypes() []ShipType {
	var out []ShipType
	for _, id := range b.order {
		if s := b.ships[id]; !s.Sunk {
			out = append(out, s.Type)
		}
	}
	return out
}

// AllSunk reports whether every ship on the board is sunk.
func (b *Board) AllSunk() bool {
	for _, id := range b.order {
		if !b.ships[id].Sunk {
			return false
		}
	}
	return len(b.order) > 0
}

// --- Mutators used by the weapon subsystem ---

// IsConfirmedMiss reports whether the cell was already revealed to host no ship.
func (b *Board) IsConfirmedMiss(c Coordinate) bool {
	cc := b.cells[c.R][c.C]
	return cc.hit && cc.ship == nil
}

// IsDestroyedSegment reports whether the cell hosts a ship segment already at zero health.
func (b *Board) IsDestroyedSegment(c Coordinate) bool {
	cc := b.cells[c.R][c.C]
	return cc.ship != nil && cc.ship.Segments[cc.segment] <= 0
}

// MarkHit marks a cell as struck. It is idempotent.
func (b *Board) MarkHit(c Coordinate) { b.cells[c.R][c.C].hit = true }

// ShipAt returns the ship occupying a cell and its segment index, if any.
func (b *Board) ShipAt(c Coordinate) (s *Ship, segment int, ok bool) {
	cc := b.cells[c.R][c.C]
	if cc.ship == nil {
		return nil, 0, false
	}
	return cc.ship, cc.segment, true
}

// MarkSuspect flags a cell as suspected (sonar contact halo). It is a no-op
// once the cell is struck.
func (b *Board) MarkSuspect(c Coordinate) {
	if !b.cells[c.R][c.C].hit {
		b.suspect[c.R][c.C] = true
	}
}

// ViewState computes the fog-of-war state of a cell as the external observer
// would see it: purely a function of truth (hit/ship/segment health/sunk)
// plus the persistent suspect mark, never stored redundantly.
func (b *Board) ViewState(c Coordinate) ViewState {
	cc := b.cells[c.R][c.C]
	if cc.hit {
		switch {
		case cc.ship == nil:
			return Miss
		case cc.ship.Sunk:
			return Sunk
		case cc.ship.Segments[cc.segment] <= 0:
			return Destroyed
		default:
			return Hit
		}
	}
	if b.suspect[c.R][c.C] {
		return Suspect
	}
	return Unknown
}

// Snapshot returns the view grid an external observer would currently see.
func (b *Board) Snapshot() ViewGrid {
	var v ViewGrid
	for r := range GridSize {
		for c := range GridSize {
			v[r][c] = b.ViewState(Coordinate{R: r, C: c})
		}
	}
	return v
}

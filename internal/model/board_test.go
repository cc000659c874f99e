package model_test

import (
	"testing"

	m "github.com/nullwave/flotilla/internal/model"
)

func TestPlaceShipOutOfBounds(t *testing.T) {
	t.Parallel()

	b := m.NewBoard()
	ship := m.NewShip("s1", m.BB, m.Coordinate{R: 0, C: 8}, m.Horizontal)

	if err := b.PlaceShip(ship); err != m.ErrShipOutOfBounds {
		t.Errorf("PlaceShip() error = %v, want %v", err, m.ErrShipOutOfBounds)
	}
}

func TestPlaceShipOverlap(t *testing.T) {
	t.Parallel()

	b := m.NewBoard()
	first := m.NewShip("s1", m.DD, m.Coordinate{R: 5, C: 2}, m.Horizontal)
	if err := b.PlaceShip(first); err != nil {
		t.Fatalf("unexpected error placing first ship: %v", err)
	}

	second := m.NewShip("s2", m.SS, m.Coordinate{R: 5, C: 3}, m.Horizontal)
	if err := b.PlaceShip(second); err != m.ErrShipOverlap {
		t.Errorf("PlaceShip() error = %v, want %v", err, m.ErrShipOverlap)
	}
}

func TestViewStateDerivation(t *testing.T) {
	t.Parallel()

	b := m.NewBoard()
	dd := m.NewShip("dd", m.DD, m.Coordinate{R: 5, C: 2}, m.Horizontal)
	if err := b.PlaceShip(dd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := m.Coordinate{R: 5, C: 2}
	if got := b.ViewState(c); got != m.Unknown {
		t.Errorf("ViewState() before any shot = %v, want %v", got, m.Unknown)
	}

	b.MarkSuspect(c)
	if got := b.ViewState(c); got != m.Suspect {
		t.Errorf("ViewState() after MarkSuspect = %v, want %v", got, m.Suspect)
	}

	b.MarkHit(c)
	if got := b.ViewState(c); got != m.Hit {
		t.Errorf("ViewState() after hit (hp>0) = %v, want %v", got, m.Hit)
	}

	ship, seg, ok := b.ShipAt(c)
	if !ok {
		t.Fatalf("ShipAt() expected a ship at %v", c)
	}
	ship.Segments[seg] = 0
	if got := b.ViewState(c); got != m.Destroyed {
		t.Errorf("ViewState() after segment destroyed = %v, want %v", got, m.Destroyed)
	}

	ship.Sunk = true
	if got := b.ViewState(c); got != m.Sunk {
		t.Errorf("ViewState() after ship sunk = %v, want %v", got, m.Sunk)
	}
}

func TestIsConfirmedMiss(t *testing.T) {
	t.Parallel()

	b := m.NewBoard()
	c := m.Coordinate{R: 3, C: 3}
	if b.IsConfirmedMiss(c) {
		t.Errorf("IsConfirmedMiss() = true before any shot")
	}

	b.MarkHit(c)
	if !b.IsConfirmedMiss(c) {
		t.Errorf("IsConfirmedMiss() = false after marking a shipless cell hit")
	}
}

func TestAllSunk(t *testing.T) {
	t.Parallel()

	b := m.NewBoard()
	if b.AllSunk() {
		t.Errorf("AllSunk() = true on an empty board")
	}

	ss := m.NewShip("ss", m.SS, m.Coordinate{R: 0, C: 0}, m.Horizontal)
	if err := b.PlaceShip(ss); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.AllSunk() {
		t.Errorf("AllSunk() = true while ship afloat")
	}

	ss.Sunk = true
	if !b.AllSunk() {
		t.Errorf("AllSunk() = false once every ship is sunk")
	}
}

func TestShipConsistencyCheck(t *testing.T) {
	t.Parallel()

	s := m.NewShip("bb", m.BB, m.Coordinate{R: 0, C: 0}, m.Horizontal)
	if err := s.CheckConsistency(); err != nil {
		t.Errorf("CheckConsistency() on fresh ship = %v, want nil", err)
	}

	s.Sunk = true
	if err := s.CheckConsistency(); err == nil {
		t.Errorf("CheckConsistency() expected error when sunk flag disagrees with segment health")
	}
}

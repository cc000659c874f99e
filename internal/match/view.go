package match

import (
	"github.com/nullwave/flotilla/internal/dto"
	"github.com/nullwave/flotilla/internal/model"
)

// Info returns the lobby-facing summary of the match.
func (m *Match) Info() dto.GameInfo {
	ids := []string{}
	if m.host != nil {
		ids = append(ids, m.host.playerID)
	}
	if m.guest != nil {
		ids = append(ids, m.guest.playerID)
	}
	return dto.GameInfo{
		ID:          m.ID,
		Phase:       string(m.phase),
		PlayerIDs:   ids,
		CurrentTurn: m.turn,
		Winner:      m.winner,
	}
}

// View builds the fog-of-war view packet playerID would see: their own
// board in full, and the opponent's board through its fog-of-war grid.
func (m *Match) View(playerID string) (dto.GameView, error) {
	self, opponent, err := m.seatFor(playerID)
	if err != nil {
		return dto.GameView{}, err
	}

	return dto.GameView{
		State:  dto.GameState(m.phase),
		Turn:   m.turn,
		Winner: m.winner,
		Me:     ownerView(self),
		Enemy:  opponentView(opponent),
	}, nil
}

func ownerView(s *seat) dto.PlayerView {
	grid := make([][]dto.CellState, model.GridSize)
	for r := range model.GridSize {
		row := make([]dto.CellState, model.GridSize)
		for c := range model.GridSize {
			row[c] = ownerCellState(s.board, model.Coordinate{R: r, C: c})
		}
		grid[r] = row
	}

	return dto.PlayerView{
		ID:    s.playerID,
		Board: dto.BoardView{Grid: grid, Size: model.GridSize},
		Fleet: aliveByType(s.board),
	}
}

func opponentView(s *seat) dto.PlayerView {
	snapshot := s.board.Snapshot()

	grid := make([][]dto.CellState, model.GridSize)
	for r := range model.GridSize {
		row := make([]dto.CellState, model.GridSize)
		for c := range model.GridSize {
			row[c] = fogCellState(snapshot[r][c])
		}
		grid[r] = row
	}

	return dto.PlayerView{
		ID:    s.playerID,
		Board: dto.BoardView{Grid: grid, Size: model.GridSize},
		Fleet: aliveByType(s.board),
	}
}

func ownerCellState(board *model.Board, c model.Coordinate) dto.CellState {
	if ship, segment, ok := board.ShipAt(c); ok {
		switch {
		case ship.Sunk:
			return dto.CellSunk
		case ship.Segments[segment] <= 0:
			return dto.CellHit
		default:
			return dto.CellShip
		}
	}
	if board.IsConfirmedMiss(c) {
		return dto.CellMiss
	}
	return dto.CellEmpty
}

func fogCellState(state model.ViewState) dto.CellState {
	switch state {
	case model.Miss:
		return dto.CellMiss
	case model.Hit, model.Destroyed:
		return dto.CellHit
	case model.Sunk:
		return dto.CellSunk
	case model.Suspect:
		return dto.CellSuspect
	default:
		return dto.CellUnknown
	}
}

func aliveByType(board *model.Board) map[string]bool {
	out := make(map[string]bool, len(model.Roster()))
	for _, t := range model.Roster() {
		out[string(t)] = false
	}
	for _, s := range board.Ships() {
		out[string(s.Type)] = !s.Sunk
	}
	return out
}

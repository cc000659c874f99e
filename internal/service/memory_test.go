package service_test

import (
	"context"
	"testing"

	"github.com/nullwave/flotilla/internal/dto"
	"github.com/nullwave/flotilla/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// placeFullRoster lays out a legal, non-overlapping five-ship fleet for
// playerID, one ship per row: CV(4), BB(4), CL(3), SS(1), DD(2).
func placeFullRoster(t *testing.T, s *service.MemoryService, matchID, playerID string) {
	t.Helper()

	ships := []struct {
		typ string
		row int
	}{
		{"CV", 0},
		{"BB", 1},
		{"CL", 2},
		{"SS", 3},
		{"DD", 4},
	}

	for _, sh := range ships {
		_, err := s.PlaceShip(context.Background(), matchID, playerID, sh.typ, sh.row, 0, false)
		require.NoError(t, err)
	}
}

func TestMemoryService_LobbyFlow(t *testing.T) {
	t.Parallel()
	s := service.NewMemoryService(nil, nil)
	ctx := context.Background()

	matchID, err := s.CreateMatch(ctx, "host-1")
	require.NoError(t, err)
	assert.NotEmpty(t, matchID)

	matches, err := s.ListMatches(ctx)
	require.NoError(t, err)
	found := false
	for _, m := range matches {
		if m.ID == matchID {
			found = true
			assert.Equal(t, "host-1", m.HostName)
			assert.Equal(t, 1, m.PlayerCount)
		}
	}
	assert.True(t, found, "match id should be in the list")

	view, err := s.JoinMatch(ctx, matchID, "guest-1")
	require.NoError(t, err)
	assert.Equal(t, dto.StateSetup, view.State)
	assert.Equal(t, "guest-1", view.Me.ID)

	matches, _ = s.ListMatches(ctx)
	for _, m := range matches {
		if m.ID == matchID {
			assert.Equal(t, 2, m.PlayerCount)
		}
	}
}

func TestMemoryService_JoinErrors(t *testing.T) {
	t.Parallel()
	s := service.NewMemoryService(nil, nil)
	ctx := context.Background()

	_, err := s.JoinMatch(ctx, "non-existent", "p1")
	assert.ErrorContains(t, err, "match not found")
}

func TestMemoryService_GameplayFlow(t *testing.T) {
	t.Parallel()
	s := service.NewMemoryService(nil, nil)
	ctx := context.Background()

	matchID, err := s.CreateMatch(ctx, "p1")
	require.NoError(t, err)
	_, err = s.JoinMatch(ctx, matchID, "p2")
	require.NoError(t, err)

	placeFullRoster(t, s, matchID, "p1")
	view, err := s.GetState(ctx, matchID, "p1")
	require.NoError(t, err)
	assert.Equal(t, dto.StateSetup, view.State)

	placeFullRoster(t, s, matchID, "p2")
	view, err = s.GetState(ctx, matchID, "p1")
	require.NoError(t, err)
	assert.Equal(t, dto.StatePlaying, view.State)
}

func TestMemoryService_Attack_NotStarted(t *testing.T) {
	t.Parallel()
	s := service.NewMemoryService(nil, nil)
	ctx := context.Background()

	matchID, err := s.CreateMatch(ctx, "p1")
	require.NoError(t, err)

	_, err = s.Attack(ctx, matchID, "p1", "AP", 0, 0)
	assert.Error(t, err)
}

func TestMemoryService_SingleActiveGameLimit(t *testing.T) {
	t.Parallel()
	s := service.NewMemoryService(nil, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.CreateMatch(ctx, "alice")
		require.NoError(t, err)
	}

	_, err := s.CreateMatch(ctx, "alice")
	require.Error(t, err)
	require.Contains(t, err.Error(), "max active games limit reached")
}

func TestMemoryService_SoloMatchAutoPlaysAI(t *testing.T) {
	t.Parallel()
	s := service.NewMemoryService(nil, nil)
	ctx := context.Background()

	matchID, err := s.CreateSoloMatch(ctx, "solo-host", "easy")
	require.NoError(t, err)

	placeFullRoster(t, s, matchID, "solo-host")

	view, err := s.GetState(ctx, matchID, "solo-host")
	require.NoError(t, err)
	assert.Equal(t, dto.StatePlaying, view.State)
	assert.Equal(t, "solo-host", view.Turn)

	view, err = s.Attack(ctx, matchID, "solo-host", "AP", 0, 0)
	require.NoError(t, err)
	// After the human's shot the AI auto-plays until it's the human's turn
	// again or the match ends.
	assert.True(t, view.Turn == "solo-host" || view.State == dto.StateFinished)
}

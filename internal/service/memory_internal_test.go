package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryService_Cleanup(t *testing.T) {
	t.Parallel()

	s := NewMemoryService(nil, nil)
	ctx := context.Background()

	activeID, err := s.CreateMatch(ctx, "host")
	require.NoError(t, err)

	staleID, err := s.CreateMatch(ctx, "stale")
	require.NoError(t, err)

	s.gamesMu.Lock()
	s.games[staleID].updatedAt = time.Now().Add(-25 * time.Hour)
	s.gamesMu.Unlock()

	s.gc()

	s.gamesMu.RLock()
	_, activeExists := s.games[activeID]
	_, staleExists := s.games[staleID]
	s.gamesMu.RUnlock()

	assert.True(t, activeExists, "active game should survive gc")
	assert.False(t, staleExists, "stale game should be removed")
}

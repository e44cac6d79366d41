package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJudgments_Empty(t *testing.T) {
	s := createTestStore(t)

	got, err := s.ReadJudgments(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReplaceJudgments_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	entries := map[string]string{
		"4,6":    "4 * 6 = 24\nBINGO",
		"1,1,1":  "1 + 1 + 1 = 3\nIMPOSSIBLE",
		"2,9,10": "likely",
	}
	require.NoError(t, s.ReplaceJudgments(ctx, entries))

	got, err := s.ReadJudgments(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestReplaceJudgments_OverwritesWholeTable(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceJudgments(ctx, map[string]string{"1,2": "old", "3,4": "gone"}))
	require.NoError(t, s.ReplaceJudgments(ctx, map[string]string{"1,2": "new"}))

	got, err := s.ReadJudgments(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1,2": "new"}, got)
}

func TestReplaceJudgments_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "judgments.db")
	ctx := context.Background()

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.ReplaceJudgments(ctx, map[string]string{"4,6": "BINGO"}))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.ReadJudgments(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"4,6": "BINGO"}, got)
}

func TestReplaceJudgments_CancelledContext(t *testing.T) {
	s := createTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.ReplaceJudgments(ctx, map[string]string{"1": "x"})
	assert.Error(t, err)
}

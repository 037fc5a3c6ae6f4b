package rag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_AddLengthMismatch(t *testing.T) {
	x := NewIndex()
	err := x.Add(context.Background(), []string{"a", "b"}, [][]float32{{1}})
	assert.Error(t, err)
}

func TestIndex_SearchEmpty(t *testing.T) {
	x := NewIndex()
	got, err := x.Search(context.Background(), []float32{1, 0}, 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIndex_SearchRanksByCosine(t *testing.T) {
	x := NewIndex()
	ctx := context.Background()
	require.NoError(t, x.Add(ctx,
		[]string{"orthogonal", "aligned", "diagonal"},
		[][]float32{{0, 1}, {1, 0}, {1, 1}},
	))

	got, err := x.Search(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"aligned", "diagonal", "orthogonal"}, got)
}

func TestIndex_SearchClampsK(t *testing.T) {
	x := NewIndex()
	ctx := context.Background()
	require.NoError(t, x.Add(ctx, []string{"only"}, [][]float32{{1, 0}}))

	got, err := x.Search(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, got)
}

func TestIndex_SearchTiesKeepInsertionOrder(t *testing.T) {
	x := NewIndex()
	ctx := context.Background()
	require.NoError(t, x.Add(ctx,
		[]string{"first", "second", "third"},
		[][]float32{{1, 0}, {1, 0}, {1, 0}},
	))

	got, err := x.Search(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, got)
}

func TestIndex_ZeroVectorsAreSafe(t *testing.T) {
	x := NewIndex()
	ctx := context.Background()
	require.NoError(t, x.Add(ctx, []string{"zero"}, [][]float32{{0, 0}}))

	got, err := x.Search(ctx, []float32{0, 0}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"zero"}, got)
}

func TestIndex_Count(t *testing.T) {
	x := NewIndex()
	ctx := context.Background()

	n, err := x.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, x.Add(ctx, []string{"a", "b"}, [][]float32{{1}, {2}}))
	n, err = x.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

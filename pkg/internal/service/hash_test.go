package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDigest(t *testing.T) {
	dg, err := computeDigest(strings.NewReader("hello world"))
	require.NoError(t, err)

	assert.Equal(t, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", dg.Hash)
	assert.Len(t, dg.Quick, 16)
	assert.Equal(t, int64(11), dg.Size)
}

func TestComputeDigestDiffersByContent(t *testing.T) {
	a, err := computeDigest(strings.NewReader("content a"))
	require.NoError(t, err)

	b, err := computeDigest(strings.NewReader("content b"))
	require.NoError(t, err)

	assert.NotEqual(t, a.Hash, b.Hash)
	assert.NotEqual(t, a.Quick, b.Quick)
}

func TestComputeDigestIsDeterministic(t *testing.T) {
	a, err := computeDigest(strings.NewReader("same bytes"))
	require.NoError(t, err)

	b, err := computeDigest(strings.NewReader("same bytes"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

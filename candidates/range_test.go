package candidates

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRangesPartitionTheSpace(t *testing.T) {
	require := require.New(t)

	base, err := NewEnumerator([]byte("abcd"), 3)
	require.NoError(err)
	expected := collect(base.Fork())
	require.Len(expected, 64)

	// Uneven chunks, the last one running past the end.
	bounds := [][2]uint64{{0, 10}, {10, 1}, {11, 0}, {11, 30}, {41, 40}}
	var stitched [][]byte
	for _, bound := range bounds {
		rr := NewRange(base, bound[0], bound[1])
		require.Equal(bound[0], rr.Offset())
		require.Equal(bound[1], rr.Len())
		stitched = append(stitched, collect(rr)...)
	}
	require.Equal(expected, stitched)

	// The base enumerator was never advanced.
	require.True(base.Next())
	require.Equal([]byte("aaa"), base.Candidate())
}

func TestRangeIsLazy(t *testing.T) {
	require := require.New(t)

	base, err := NewEnumerator([]byte("ab"), 2)
	require.NoError(err)
	rr := NewRange(base, 3, 5)
	require.Equal(uint64(3), rr.skip)

	require.True(rr.Next())
	require.Equal([]byte("bb"), rr.Candidate())
	require.False(rr.Next())
	require.False(rr.Next())
}

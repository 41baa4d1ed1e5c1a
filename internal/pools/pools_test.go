package pools

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWords(t *testing.T) {
	p := Words(4)
	b := p.Get()
	require.Empty(t, *b)
	require.Equal(t, 4, cap(*b))

	*b = append(*b, 1, 2, 3)
	p.Put(b)
	require.Empty(t, *b)
	require.Equal(t, []uint64{0, 0, 0}, (*b)[:3])
}

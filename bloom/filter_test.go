package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/cannibal/bloom"
	"github.com/stretchr/testify/assert"
)

func TestSet_Add(t *testing.T) {
	t.Parallel()

	s := bloom.NewSet(1000)

	assert.False(t, s.Contains("https://example.com/page1"))
	assert.True(t, s.Add("https://example.com/page1"))
	assert.False(t, s.Add("https://example.com/page1"))
	assert.True(t, s.Contains("https://example.com/page1"))
	assert.False(t, s.Contains("https://example.com/page2"))
	assert.Equal(t, 1, s.Len())
}

func TestSet_NoFalsePositives(t *testing.T) {
	t.Parallel()

	// A tiny set saturates its filter, so the exact map must decide.
	s := bloom.NewSet(1)
	for i := range 500 {
		assert.True(t, s.Add(fmt.Sprintf("https://example.com/page%d", i)))
	}

	assert.Equal(t, 500, s.Len())
	assert.False(t, s.Contains("https://example.com/other"))
}

func TestSet_EstimatedCount(t *testing.T) {
	t.Parallel()

	s := bloom.NewSet(1000)
	assert.Equal(t, uint(0), s.EstimatedCount())

	for i := range 100 {
		s.Add(fmt.Sprintf("https://example.com/page%d", i))
	}

	assert.InDelta(t, 100, s.EstimatedCount(), 10)
}

package cannibal_test

import (
	"testing"

	"github.com/fwojciec/cannibal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank(t *testing.T) {
	t.Parallel()

	t.Run("drops keywords confined to one page", func(t *testing.T) {
		t.Parallel()

		aggs := cannibal.Aggregate(map[string][]cannibal.Keyword{
			"https://example.com/a": {{Term: "quick", Count: 1}, {Term: "fox", Count: 1}, {Term: "jumps", Count: 1}},
			"https://example.com/b": {{Term: "quick", Count: 1}, {Term: "fox", Count: 1}, {Term: "runs", Count: 1}},
		}, map[string]int{
			"https://example.com/a": 4,
			"https://example.com/b": 4,
		})

		records := cannibal.Rank(aggs)

		require.Len(t, records, 2)
		assert.Equal(t, "fox", records[0].Keyword)
		assert.Equal(t, "quick", records[1].Keyword)
		for _, r := range records {
			assert.Equal(t, 2, r.Frequency)
			assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, r.Pages)
			assert.InDelta(t, 25.0, r.Density, 1e-9)
		}
	})

	t.Run("sorts by frequency then keyword", func(t *testing.T) {
		t.Parallel()

		aggs := cannibal.Aggregate(map[string][]cannibal.Keyword{
			"a": {{Term: "zeta", Count: 5}, {Term: "alpha", Count: 1}, {Term: "beta", Count: 1}},
			"b": {{Term: "zeta", Count: 1}, {Term: "alpha", Count: 1}, {Term: "beta", Count: 1}},
		}, map[string]int{"a": 10, "b": 10})

		records := cannibal.Rank(aggs)

		keywords := make([]string, 0, len(records))
		for _, r := range records {
			keywords = append(keywords, r.Keyword)
		}
		assert.Equal(t, []string{"zeta", "alpha", "beta"}, keywords)
	})

	t.Run("returns empty slice when nothing qualifies", func(t *testing.T) {
		t.Parallel()

		records := cannibal.Rank(cannibal.Aggregate(map[string][]cannibal.Keyword{
			"a": {{Term: "only", Count: 3}},
		}, map[string]int{"a": 3}))

		require.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("density stays within bounds", func(t *testing.T) {
		t.Parallel()

		records := cannibal.Rank(cannibal.Aggregate(map[string][]cannibal.Keyword{
			"a": {{Term: "x", Count: 50}},
			"b": {{Term: "x", Count: 1}},
			"c": {{Term: "x", Count: 1}},
		}, map[string]int{"a": 10, "b": 0, "c": 1}))

		require.Len(t, records, 1)
		assert.GreaterOrEqual(t, records[0].Density, 0.0)
		assert.LessOrEqual(t, records[0].Density, 100.0)
	})
}

func TestRecord_FormatDensity(t *testing.T) {
	t.Parallel()

	r := &cannibal.Record{Density: 12.3456}

	assert.Equal(t, "12.35", r.FormatDensity())
}

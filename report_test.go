package cannibal_test

import (
	"testing"

	"github.com/fwojciec/cannibal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_SetStatus(t *testing.T) {
	t.Parallel()

	t.Run("empty corpus", func(t *testing.T) {
		t.Parallel()

		r := &cannibal.Report{Seeds: []string{"https://example.com/"}, PagesFailed: 1}
		r.SetStatus()

		assert.Equal(t, cannibal.StatusEmpty, r.Status)
		require.Error(t, r.Err())
		assert.Equal(t, cannibal.EEMPTY, cannibal.ErrorCode(r.Err()))
	})

	t.Run("no cannibalization is not an error", func(t *testing.T) {
		t.Parallel()

		r := &cannibal.Report{Seeds: []string{"https://example.com/"}, PagesCrawled: 3, Records: []*cannibal.Record{}}
		r.SetStatus()

		assert.Equal(t, cannibal.StatusNone, r.Status)
		assert.NoError(t, r.Err())
	})

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		r := &cannibal.Report{PagesCrawled: 2, Records: []*cannibal.Record{{Keyword: "fox"}}}
		r.SetStatus()

		assert.Equal(t, cannibal.StatusFound, r.Status)
	})
}

func TestReport_Validate(t *testing.T) {
	t.Parallel()

	r := &cannibal.Report{Status: cannibal.StatusNone}
	assert.Equal(t, cannibal.EINVALID, cannibal.ErrorCode(r.Validate()))

	r.Seeds = []string{"https://example.com/"}
	assert.NoError(t, r.Validate())

	r.Status = "weird"
	assert.Equal(t, cannibal.EINVALID, cannibal.ErrorCode(r.Validate()))
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()

		opts := cannibal.DefaultOptions()
		require.NoError(t, opts.Validate())
		assert.Equal(t, []int{1, 2, 3}, opts.NGrams())
	})

	tests := []struct {
		name   string
		mutate func(*cannibal.Options)
	}{
		{name: "no n-grams", mutate: func(o *cannibal.Options) { o.NGramSizes = nil }},
		{name: "n-gram too large", mutate: func(o *cannibal.Options) { o.NGramSizes = []int{4} }},
		{name: "zero top-k", mutate: func(o *cannibal.Options) { o.TopK = 0 }},
		{name: "bad scoring", mutate: func(o *cannibal.Options) { o.Scoring = "magic" }},
		{name: "zero max pages", mutate: func(o *cannibal.Options) { o.MaxPages = 0 }},
		{name: "zero concurrency", mutate: func(o *cannibal.Options) { o.Concurrency = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := cannibal.DefaultOptions()
			tt.mutate(&opts)

			assert.Equal(t, cannibal.EINVALID, cannibal.ErrorCode(opts.Validate()))
		})
	}
}

func TestParseScoringMode(t *testing.T) {
	t.Parallel()

	mode, err := cannibal.ParseScoringMode("TF-IDF")
	require.NoError(t, err)
	assert.Equal(t, cannibal.ScoreWeighted, mode)

	mode, err = cannibal.ParseScoringMode("")
	require.NoError(t, err)
	assert.Equal(t, cannibal.ScoreFrequency, mode)

	_, err = cannibal.ParseScoringMode("bm25")
	assert.Equal(t, cannibal.EINVALID, cannibal.ErrorCode(err))
}

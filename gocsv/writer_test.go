package gocsv_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/fwojciec/cannibal"
	"github.com/fwojciec/cannibal/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Write(t *testing.T) {
	t.Parallel()

	t.Run("writes header and one row per record", func(t *testing.T) {
		t.Parallel()

		report := &cannibal.Report{
			Records: []*cannibal.Record{
				{Keyword: "fox", Frequency: 2, Pages: []string{"https://example.com/a", "https://example.com/b"}, Density: 25},
				{Keyword: "quick brown", Frequency: 3, Pages: []string{"https://example.com/a", "https://example.com/c"}, Density: 3.14159},
			},
		}
		var buf bytes.Buffer

		err := gocsv.NewWriter().Write(&buf, report)

		require.NoError(t, err)
		rows, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"Keyword", "Frequency", "Pages", "Keyword Density"},
			{"fox", "2", "https://example.com/a\nhttps://example.com/b", "25.00"},
			{"quick brown", "3", "https://example.com/a\nhttps://example.com/c", "3.14"},
		}, rows)
	})

	t.Run("quotes multi-line page cells", func(t *testing.T) {
		t.Parallel()

		report := &cannibal.Report{
			Records: []*cannibal.Record{
				{Keyword: "fox", Frequency: 2, Pages: []string{"https://a.com/", "https://b.com/"}, Density: 25},
			},
		}
		var buf bytes.Buffer

		err := gocsv.NewWriter().Write(&buf, report)

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "\"https://a.com/\nhttps://b.com/\"")
	})

	t.Run("empty report writes only the header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		err := gocsv.NewWriter().Write(&buf, &cannibal.Report{Records: []*cannibal.Record{}})

		require.NoError(t, err)
		assert.Equal(t, "Keyword,Frequency,Pages,Keyword Density\n", buf.String())
	})
}

package helpers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/marquee/engine"
)

var records = []engine.Record{
	{Dimensions: map[string]string{"type": "Movie", "year_added": "2020", "country": "India", "rating": "PG", "listed_in": "Drama, Comedy"}},
	{Dimensions: map[string]string{"type": "TV Show", "year_added": "2020", "country": "India", "rating": "TV-14", "listed_in": "Drama"}},
}

var selection = engine.Selection{Years: []int{2020}, Types: []string{"Movie", "TV Show"}}

func TestWriteChartCSV(t *testing.T) {
	view := engine.NewSliceView(records)
	chart, err := engine.BuildChartByID(view, selection, engine.ChartGenres)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteChartCSV(&buf, chart))
	assert.Equal(t, "Genre,Count\nDrama,2\nComedy,1\n", buf.String())
}

func TestWriteChartCSV_Empty(t *testing.T) {
	view := engine.NewSliceView(records)
	chart, err := engine.BuildChartByID(view, engine.Selection{}, engine.ChartCountries)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteChartCSV(&buf, chart))
	assert.Equal(t, "Country,Count\n", buf.String())
}

func TestWriteTableCSV(t *testing.T) {
	view := engine.NewSliceView(records)
	chart, _ := engine.BuildChartByID(view, selection, engine.ChartTypes)

	var buf bytes.Buffer
	require.NoError(t, WriteTableCSV(&buf, engine.BuildTable(chart)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Type,Count,Share", lines[0])
	assert.Equal(t, "Movie,1,50.0%", lines[1])
	assert.Equal(t, "Total,2,", lines[3])
}

func TestWriteDashboardCSV(t *testing.T) {
	view := engine.NewSliceView(records)
	dash := engine.BuildDashboard(view, selection)

	var buf bytes.Buffer
	require.NoError(t, WriteDashboardCSV(&buf, dash))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Metric,Value\nTotal Titles,2\nMovies,1\nTV Shows,1\n"))
	for _, c := range dash.Charts {
		assert.Contains(t, out, "\n"+c.Title+"\n")
	}
	assert.Contains(t, out, "Year,Count\n2020,2\n")
}

func TestWriteJSON(t *testing.T) {
	kpis := engine.KPIs{Total: 3, Movies: 2, Shows: 1}

	var compact bytes.Buffer
	require.NoError(t, WriteJSON(&compact, kpis, false))
	assert.Equal(t, `{"total":3,"movies":2,"shows":1}`+"\n", compact.String())

	var pretty bytes.Buffer
	require.NoError(t, WriteJSON(&pretty, kpis, true))
	assert.Contains(t, pretty.String(), "\n  \"total\": 3")

	var decoded engine.KPIs
	require.NoError(t, json.Unmarshal(pretty.Bytes(), &decoded))
	assert.Equal(t, kpis, decoded)

	assert.Error(t, WriteJSON(&compact, make(chan int), false))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "42", FormatNumber(42))
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "3.14", FormatNumber(3.14159))
}

package lookup

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `item_id,code,category,excluded
500,0123456789,widgets,true
600,,gadgets,false
700,9876543210,,
,5550001111,apparel,
`

func TestParse(t *testing.T) {
	table, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	excluded := table.ExcludedItemIDs()
	assert.Contains(t, excluded, int64(500))
	assert.NotContains(t, excluded, int64(600))
	assert.NotContains(t, excluded, int64(700))

	category, ok := table.Category("0123456789")
	require.True(t, ok)
	assert.Equal(t, "widgets", category)

	category, ok = table.Category("5550001111")
	require.True(t, ok)
	assert.Equal(t, "apparel", category)

	_, ok = table.Category("9876543210")
	assert.False(t, ok)
}

func TestParse_ColumnOrderDoesNotMatter(t *testing.T) {
	table, err := Parse(strings.NewReader("excluded,item_id\ntrue,500\n"))
	require.NoError(t, err)
	assert.Contains(t, table.ExcludedItemIDs(), int64(500))
}

func TestParse_BadItemID(t *testing.T) {
	_, err := Parse(strings.NewReader("item_id,excluded\nnot-a-number,true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoad_MissingFileYieldsEmptyTable(t *testing.T) {
	table, err := Load(filepath.Join(t.TempDir(), "nope.csv"), zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, table.ExcludedItemIDs())
}

func TestLoad_EmptyPathYieldsEmptyTable(t *testing.T) {
	table, err := Load("", zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, table.ExcludedItemIDs())
}

package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoreal_ParsesRenderedPage(t *testing.T) {
	fixture := `<html><body>
<div>Lifts Open: 6 of 8</div>
<div>Terrain Open: 25 of 33</div>
<div>New Snow: 4"</div>
<div>Base: 62"</div>
<div>Season: 210"</div>
</body></html>`

	out := (&BorealAdapter{}).Parse(fixture)

	require.True(t, out.Success)
	require.NotNil(t, out.Ops.LiftsOpen)
	assert.Equal(t, 6, *out.Ops.LiftsOpen)
	require.NotNil(t, out.Ops.LiftsTotal)
	assert.Equal(t, 8, *out.Ops.LiftsTotal)
	require.NotNil(t, out.Ops.TrailsOpen)
	assert.Equal(t, 25, *out.Ops.TrailsOpen)

	require.NotNil(t, out.Snow.NewSnow24hIn)
	assert.Equal(t, 4.0, *out.Snow.NewSnow24hIn)
	require.NotNil(t, out.Snow.BaseDepthIn)
	assert.Equal(t, 62.0, *out.Snow.BaseDepthIn)
	require.NotNil(t, out.Snow.SeasonTotalIn)
	assert.Equal(t, 210.0, *out.Snow.SeasonTotalIn)

	require.NotNil(t, out.Ops.OpenFlag)
	assert.True(t, *out.Ops.OpenFlag)
}

func TestBoreal_OpenCountWithoutTotal(t *testing.T) {
	out := (&BorealAdapter{}).Parse(`<html><body><div>3 Lifts Open</div></body></html>`)

	require.True(t, out.Success)
	require.NotNil(t, out.Ops.LiftsOpen)
	assert.Equal(t, 3, *out.Ops.LiftsOpen)
	assert.Nil(t, out.Ops.LiftsTotal)
}

func TestBoreal_ClosedForSeason(t *testing.T) {
	out := (&BorealAdapter{}).Parse(`<html><body>
<div>Closed for season. Thanks for a great winter!</div>
<div>Base: 20"</div>
</body></html>`)

	require.True(t, out.Success)
	require.NotNil(t, out.Ops.OpenFlag)
	assert.False(t, *out.Ops.OpenFlag)
}

func TestBoreal_UnrenderedShellFails(t *testing.T) {
	out := (&BorealAdapter{}).Parse(`<html><body><div id="___gatsby"></div></body></html>`)
	assert.False(t, out.Success)
	assert.Contains(t, out.Err, "rendered")
}

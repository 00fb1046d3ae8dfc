package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomewood_ParsesSnowReport(t *testing.T) {
	fixture := `<html><body>
<div>Open Lifts <span>4/8</span></div>
<div>Open Runs <span>31/67</span></div>
<div>Base: 55"</div>
<div>Season Total: 240"</div>
<div>24 Hour: 3"</div>
</body></html>`

	out := (&HomewoodAdapter{}).Parse(fixture)

	require.True(t, out.Success)
	require.NotNil(t, out.Ops.LiftsOpen)
	assert.Equal(t, 4, *out.Ops.LiftsOpen)
	require.NotNil(t, out.Ops.LiftsTotal)
	assert.Equal(t, 8, *out.Ops.LiftsTotal)
	require.NotNil(t, out.Ops.TrailsOpen)
	assert.Equal(t, 31, *out.Ops.TrailsOpen)

	require.NotNil(t, out.Snow.BaseDepthIn)
	assert.Equal(t, 55.0, *out.Snow.BaseDepthIn)
	require.NotNil(t, out.Snow.SeasonTotalIn)
	assert.Equal(t, 240.0, *out.Snow.SeasonTotalIn)
	require.NotNil(t, out.Snow.NewSnow24hIn)
	assert.Equal(t, 3.0, *out.Snow.NewSnow24hIn)

	require.NotNil(t, out.Ops.OpenFlag)
	assert.True(t, *out.Ops.OpenFlag)
}

func TestHomewood_ClosedResort(t *testing.T) {
	out := (&HomewoodAdapter{}).Parse(`<html><body><div>Open Lifts 0/8</div></body></html>`)

	require.True(t, out.Success)
	require.NotNil(t, out.Ops.OpenFlag)
	assert.False(t, *out.Ops.OpenFlag)
}

func TestHomewood_EmptyPage(t *testing.T) {
	out := (&HomewoodAdapter{}).Parse("<html><body></body></html>")
	assert.True(t, out.Success)
	assert.Nil(t, out.Ops.LiftsOpen)
	assert.Nil(t, out.Ops.OpenFlag)
}

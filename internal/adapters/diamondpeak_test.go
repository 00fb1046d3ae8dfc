package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const diamondPeakFixture = `<html><body>
<div class="snow-report">
  <span>5 Inches 24 hour</span>
  <span>0 Inches overnight</span>
  <span>34 Inches storm total</span>
  <span>Base: 45"</span>
  <span>Season: 182"</span>
</div>
<table>
  <tr class="conditions__row--header">
    <td class="conditions__label">Lakeview Quad Lift</td>
    <td class="conditions__status">Open</td>
  </tr>
  <tr class="conditions__row--header">
    <td class="conditions__label">Crystal Express</td>
    <td class="conditions__status">Open</td>
  </tr>
  <tr class="conditions__row--header">
    <td class="conditions__label">Ridge Chair</td>
    <td class="conditions__status">Closed</td>
  </tr>
  <tr class="conditions__row--open">
    <td class="conditions__label">Sunnyside</td>
  </tr>
  <tr class="conditions__row--groomed">
    <td class="conditions__label">Crystal Ridge</td>
  </tr>
  <tr class="conditions__row--closed">
    <td class="conditions__label">The Great Flume</td>
  </tr>
  <tr class="conditions__row--open">
    <td class="conditions__label">Village Terrain Park</td>
  </tr>
</table>
</body></html>`

func TestDiamondPeak_CountsLiftsFromHeaderRows(t *testing.T) {
	out := (&DiamondPeakAdapter{}).Parse(diamondPeakFixture)

	require.True(t, out.Success)
	require.NotNil(t, out.Ops.LiftsOpen)
	assert.Equal(t, 2, *out.Ops.LiftsOpen)
	require.NotNil(t, out.Ops.LiftsTotal)
	assert.Equal(t, 3, *out.Ops.LiftsTotal)

	require.NotNil(t, out.Ops.OpenFlag)
	assert.True(t, *out.Ops.OpenFlag)
}

func TestDiamondPeak_CountsTrailsSkippingVillage(t *testing.T) {
	out := (&DiamondPeakAdapter{}).Parse(diamondPeakFixture)

	require.NotNil(t, out.Ops.TrailsOpen)
	assert.Equal(t, 2, *out.Ops.TrailsOpen)
	require.NotNil(t, out.Ops.TrailsTotal)
	assert.Equal(t, 3, *out.Ops.TrailsTotal)
}

func TestDiamondPeak_24HourBeatsOvernight(t *testing.T) {
	out := (&DiamondPeakAdapter{}).Parse(diamondPeakFixture)

	require.NotNil(t, out.Snow.NewSnow24hIn)
	assert.Equal(t, 5.0, *out.Snow.NewSnow24hIn, "24-hour figure must win over overnight")
}

func TestDiamondPeak_OvernightFallback(t *testing.T) {
	out := (&DiamondPeakAdapter{}).Parse(`<html><body><span>2 Inches overnight</span></body></html>`)

	require.True(t, out.Success)
	require.NotNil(t, out.Snow.NewSnow24hIn)
	assert.Equal(t, 2.0, *out.Snow.NewSnow24hIn)
}

func TestDiamondPeak_StormTotalStandsInFor48h(t *testing.T) {
	out := (&DiamondPeakAdapter{}).Parse(diamondPeakFixture)

	require.NotNil(t, out.Snow.NewSnow48hIn)
	assert.Equal(t, 34.0, *out.Snow.NewSnow48hIn)
	require.NotNil(t, out.Snow.BaseDepthIn)
	assert.Equal(t, 45.0, *out.Snow.BaseDepthIn)
	require.NotNil(t, out.Snow.SeasonTotalIn)
	assert.Equal(t, 182.0, *out.Snow.SeasonTotalIn)
}

func TestDiamondPeak_EmptyPageStillSucceeds(t *testing.T) {
	out := (&DiamondPeakAdapter{}).Parse("<html><body></body></html>")

	assert.True(t, out.Success)
	assert.Nil(t, out.Ops.LiftsOpen)
	assert.Nil(t, out.Snow.NewSnow24hIn)
}

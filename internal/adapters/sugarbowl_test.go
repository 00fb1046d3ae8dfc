package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sugarBowlFixture = `<html><body>
<div class="snowfall">
<span>0" 24 Hr</span>
<span>66" 7 Day</span>
<span>215" Year to Date</span>
<span>Summit: 47"</span>
</div>
<ul class="lifts">
<li>Mt. Judah Express</li>
<li>Open</li>
<li>Mt. Lincoln Express</li>
<li>Open</li>
<li>Jerome Hill Express</li>
<li>Scheduled</li>
<li>Mt. Disney Express</li>
<li>Scheduled</li>
<li>Nob Hill</li>
<li>Closed</li>
<li>White Pine</li>
<li>Closed</li>
</ul>
<p>12/58 Trails Open</p>
</body></html>`

func TestSugarBowl_ScheduledCountedSeparately(t *testing.T) {
	out := (&SugarBowlAdapter{}).Parse(sugarBowlFixture)

	require.True(t, out.Success)
	require.NotNil(t, out.Ops.LiftsOpen)
	assert.Equal(t, 2, *out.Ops.LiftsOpen, "scheduled lifts must not inflate the open count")
	require.NotNil(t, out.Ops.LiftsScheduled)
	assert.Equal(t, 2, *out.Ops.LiftsScheduled)
	require.NotNil(t, out.Ops.LiftsTotal)
	assert.Equal(t, 6, *out.Ops.LiftsTotal)
}

func TestSugarBowl_TrailsAndSnow(t *testing.T) {
	out := (&SugarBowlAdapter{}).Parse(sugarBowlFixture)

	require.NotNil(t, out.Ops.TrailsOpen)
	assert.Equal(t, 12, *out.Ops.TrailsOpen)
	require.NotNil(t, out.Ops.TrailsTotal)
	assert.Equal(t, 58, *out.Ops.TrailsTotal)

	// Zero inches in 24h is a real report, not missing data.
	require.NotNil(t, out.Snow.NewSnow24hIn)
	assert.Equal(t, 0.0, *out.Snow.NewSnow24hIn)

	// The 7-day figure stands in for the 48h field.
	require.NotNil(t, out.Snow.NewSnow48hIn)
	assert.Equal(t, 66.0, *out.Snow.NewSnow48hIn)

	require.NotNil(t, out.Snow.SeasonTotalIn)
	assert.Equal(t, 215.0, *out.Snow.SeasonTotalIn)
	require.NotNil(t, out.Snow.BaseDepthIn)
	assert.Equal(t, 47.0, *out.Snow.BaseDepthIn)
}

func TestSugarBowl_OpenFlagCountsScheduledLifts(t *testing.T) {
	fixture := `<html><body>
<li>Mt. Judah Express</li>
<li>Scheduled</li>
<li>Nob Hill</li>
<li>Closed</li>
</body></html>`
	out := (&SugarBowlAdapter{}).Parse(fixture)

	require.NotNil(t, out.Ops.LiftsOpen)
	assert.Equal(t, 0, *out.Ops.LiftsOpen)
	require.NotNil(t, out.Ops.LiftsScheduled)
	assert.Equal(t, 1, *out.Ops.LiftsScheduled)

	require.NotNil(t, out.Ops.OpenFlag)
	assert.True(t, *out.Ops.OpenFlag, "a scheduled lift means skiing today")
}

func TestSugarBowl_AllClosed(t *testing.T) {
	fixture := `<html><body>
<li>Mt. Judah Express</li>
<li>Closed</li>
<li>Mt. Lincoln Express</li>
<li>Closed</li>
</body></html>`
	out := (&SugarBowlAdapter{}).Parse(fixture)

	require.NotNil(t, out.Ops.LiftsOpen)
	assert.Equal(t, 0, *out.Ops.LiftsOpen)
	require.NotNil(t, out.Ops.OpenFlag)
	assert.False(t, *out.Ops.OpenFlag)
}

func TestSugarBowl_FallbackSummaryPattern(t *testing.T) {
	out := (&SugarBowlAdapter{}).Parse(`<html><body><p>9/13 Lifts Open</p></body></html>`)

	require.NotNil(t, out.Ops.LiftsOpen)
	assert.Equal(t, 9, *out.Ops.LiftsOpen)
	require.NotNil(t, out.Ops.LiftsTotal)
	assert.Equal(t, 13, *out.Ops.LiftsTotal)
	assert.Nil(t, out.Ops.LiftsScheduled)
}

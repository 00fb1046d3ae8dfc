package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const genericFixture = `<html><body>
<h1>Mountain Report</h1>
<p>Lifts: 5/7 open today.</p>
<p>Trails: 40/62</p>
<p>New snow: 6" in last 24 hours.</p>
<p>Base: 48"</p>
<p>Surface: Packed powder.</p>
</body></html>`

func TestGenericAdapter_ExtractsCommonPatterns(t *testing.T) {
	out := (&GenericAdapter{}).Parse(genericFixture)

	require.True(t, out.Success)
	require.NotNil(t, out.Ops.LiftsOpen)
	assert.Equal(t, 5, *out.Ops.LiftsOpen)
	require.NotNil(t, out.Ops.LiftsTotal)
	assert.Equal(t, 7, *out.Ops.LiftsTotal)
	require.NotNil(t, out.Ops.TrailsOpen)
	assert.Equal(t, 40, *out.Ops.TrailsOpen)
	require.NotNil(t, out.Ops.TrailsTotal)
	assert.Equal(t, 62, *out.Ops.TrailsTotal)

	require.NotNil(t, out.Snow.NewSnow24hIn)
	assert.Equal(t, 6.0, *out.Snow.NewSnow24hIn)
	require.NotNil(t, out.Snow.BaseDepthIn)
	assert.Equal(t, 48.0, *out.Snow.BaseDepthIn)
	require.NotNil(t, out.Snow.Surface)
	assert.Equal(t, "Packed powder", *out.Snow.Surface)

	require.NotNil(t, out.Ops.OpenFlag)
	assert.True(t, *out.Ops.OpenFlag)
}

func TestGenericAdapter_CountsBeforeKeyword(t *testing.T) {
	out := (&GenericAdapter{}).Parse(`<html><body>
<p>5/10 Lifts Open</p>
<p>20/50 Trails Open</p>
<p>6" in last 24 hours</p>
<p>Base: 48"</p>
</body></html>`)

	require.True(t, out.Success)
	require.NotNil(t, out.Ops.LiftsOpen)
	assert.Equal(t, 5, *out.Ops.LiftsOpen)
	require.NotNil(t, out.Ops.LiftsTotal)
	assert.Equal(t, 10, *out.Ops.LiftsTotal)
	require.NotNil(t, out.Ops.TrailsOpen)
	assert.Equal(t, 20, *out.Ops.TrailsOpen)
	require.NotNil(t, out.Ops.TrailsTotal)
	assert.Equal(t, 50, *out.Ops.TrailsTotal)
	require.NotNil(t, out.Snow.NewSnow24hIn)
	assert.Equal(t, 6.0, *out.Snow.NewSnow24hIn)
	require.NotNil(t, out.Snow.BaseDepthIn)
	assert.Equal(t, 48.0, *out.Snow.BaseDepthIn)
}

func TestGenericAdapter_Idempotent(t *testing.T) {
	a := &GenericAdapter{}
	first := a.Parse(genericFixture)
	second := a.Parse(genericFixture)
	assert.Equal(t, first, second)
}

func TestGenericAdapter_NoDataFails(t *testing.T) {
	out := (&GenericAdapter{}).Parse("<html><body><p>Welcome to our lodge.</p></body></html>")
	assert.False(t, out.Success)
	assert.Equal(t, "could not extract meaningful data", out.Err)
}

func TestGenericAdapter_EmptyInput(t *testing.T) {
	out := (&GenericAdapter{}).Parse("")
	assert.False(t, out.Success)
	assert.NotEmpty(t, out.Err)
}

func TestGenericAdapter_ExplicitClosedPhraseWins(t *testing.T) {
	out := (&GenericAdapter{}).Parse(`<html><body>
	<p>Mountain closed for the season.</p>
	<p>Lifts: 2/7</p>
	<p>24 hour: 0"</p>
	</body></html>`)

	require.True(t, out.Success)
	require.NotNil(t, out.Ops.OpenFlag)
	assert.False(t, *out.Ops.OpenFlag, "explicit closed phrase must beat nonzero lift count")
}

func TestGenericAdapter_ZeroSnowIsReported(t *testing.T) {
	out := (&GenericAdapter{}).Parse(`<html><body><p>24 hours: 0</p><p>Lifts: 0/7</p></body></html>`)

	require.True(t, out.Success)
	require.NotNil(t, out.Snow.NewSnow24hIn)
	assert.Equal(t, 0.0, *out.Snow.NewSnow24hIn)
	require.NotNil(t, out.Ops.OpenFlag)
	assert.False(t, *out.Ops.OpenFlag)
}

func TestGenericAdapter_BaseRangeAveraged(t *testing.T) {
	out := (&GenericAdapter{}).Parse(`<html><body><p>Lifts: 3/5</p><p>Base depth: 40-60</p></body></html>`)

	require.True(t, out.Success)
	require.NotNil(t, out.Snow.BaseDepthIn)
	assert.Equal(t, 50.0, *out.Snow.BaseDepthIn)
}

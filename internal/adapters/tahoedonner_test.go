package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTahoeDonner_CountsTableRows(t *testing.T) {
	fixture := `<html><body>
<table>
<tr><th>Name</th><th>Status</th></tr>
<tr><td>Snowbird Chair</td><td>Open</td></tr>
<tr><td>Eagle Rock Chair</td><td>Closed</td></tr>
<tr><td>Magic Carpet</td><td>Open</td></tr>
</table>
<table>
<tr><td>Mile Run (Blue)</td><td>Groomed</td></tr>
<tr><td>Lower Race Course (Green)</td><td>Open</td></tr>
<tr><td>Plumb Line (Black)</td><td>Closed</td></tr>
</table>
<div>Base: 38"</div>
</body></html>`

	out := (&TahoeDonnerAdapter{}).Parse(fixture)

	require.True(t, out.Success)
	require.NotNil(t, out.Ops.LiftsOpen)
	assert.Equal(t, 2, *out.Ops.LiftsOpen)
	require.NotNil(t, out.Ops.LiftsTotal)
	assert.Equal(t, 3, *out.Ops.LiftsTotal)
	require.NotNil(t, out.Ops.TrailsOpen)
	assert.Equal(t, 2, *out.Ops.TrailsOpen)
	require.NotNil(t, out.Ops.TrailsTotal)
	assert.Equal(t, 3, *out.Ops.TrailsTotal)

	require.NotNil(t, out.Snow.BaseDepthIn)
	assert.Equal(t, 38.0, *out.Snow.BaseDepthIn)
	require.NotNil(t, out.Ops.OpenFlag)
	assert.True(t, *out.Ops.OpenFlag)
}

func TestTahoeDonner_TextFallback(t *testing.T) {
	out := (&TahoeDonnerAdapter{}).Parse(`<html><body><p>3 of 5 lifts open today</p></body></html>`)

	require.True(t, out.Success)
	require.NotNil(t, out.Ops.LiftsOpen)
	assert.Equal(t, 3, *out.Ops.LiftsOpen)
	require.NotNil(t, out.Ops.LiftsTotal)
	assert.Equal(t, 5, *out.Ops.LiftsTotal)
}

func TestTahoeDonner_ClosedForSeason(t *testing.T) {
	out := (&TahoeDonnerAdapter{}).Parse(`<html><body>
<p>Tahoe Donner Downhill is closed for the season. Base: 12"</p>
</body></html>`)

	require.True(t, out.Success)
	require.NotNil(t, out.Ops.OpenFlag)
	assert.False(t, *out.Ops.OpenFlag)
}

func TestTahoeDonner_UnrenderedPageFails(t *testing.T) {
	out := (&TahoeDonnerAdapter{}).Parse(`<html><body><div id="root"></div></body></html>`)
	assert.False(t, out.Success)
	assert.NotEmpty(t, out.Err)
}

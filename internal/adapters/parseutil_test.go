package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFraction(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNum   int
		wantDen   int
		wantFound bool
	}{
		{"slash", "5/10", 5, 10, true},
		{"slash with spaces", "5 / 10", 5, 10, true},
		{"of", "5 of 10", 5, 10, true},
		{"out of", "5 out of 10", 5, 10, true},
		{"embedded", "Lifts open: 12/14 today", 12, 14, true},
		{"no fraction", "all lifts spinning", 0, 0, false},
		{"empty", "", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			num, den := ParseFraction(tt.input)
			if !tt.wantFound {
				assert.Nil(t, num)
				assert.Nil(t, den)
				return
			}
			require.NotNil(t, num)
			require.NotNil(t, den)
			assert.Equal(t, tt.wantNum, *num)
			assert.Equal(t, tt.wantDen, *den)
		})
	}
}

func TestParseInches(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		isNil bool
	}{
		{"quote mark", `6"`, 6, false},
		{"word inches", "6 inches", 6, false},
		{"word in", "6 in", 6, false},
		{"decimal", `4.5"`, 4.5, false},
		{"range averaged", `6-8"`, 7, false},
		{"en dash range", "6–8 inches", 7, false},
		{"zero is real data", `0"`, 0, false},
		{"no number", "packed powder", 0, true},
		{"empty", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseInches(tt.input)
			if tt.isNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseBoolStatus(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
		isNil bool
	}{
		{"open", "Open", true, false},
		{"yes", "Yes", true, false},
		{"operating", "Operating", true, false},
		{"closed", "Closed", false, false},
		// "not open" contains "open"; the negative must win.
		{"not open", "Not Open", false, false},
		{"not operating", "Not Operating", false, false},
		{"unknown", "scheduled 9am", false, true},
		{"empty", "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseBoolStatus(tt.input)
			if tt.isNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Lifts 5/7 Open", CleanText("  Lifts \n\t 5/7   Open "))
	assert.Equal(t, "", CleanText("  \n\t "))
}

func TestPageText_StripsScripts(t *testing.T) {
	html := `<html><head><style>.x{color:red}</style></head>
	<body><script>var liftCount = 99;</script><p>Lifts: 5/7</p></body></html>`

	text := pageText(html)
	assert.Contains(t, text, "Lifts: 5/7")
	assert.NotContains(t, text, "liftCount")
	assert.NotContains(t, text, "color:red")
}

func TestPageLines_PreservesLineStructure(t *testing.T) {
	html := "<html><body><div>Mt. Lincoln Express</div>\n<div>Open</div></body></html>"
	lines := pageLines(html)
	assert.Contains(t, lines, "Mt. Lincoln Express\nOpen\n")
}

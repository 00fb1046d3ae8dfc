package adapters

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/mweston/tahoe-conditions/internal/models"
)

// VailResortsAdapter parses Vail Resorts terrain status pages
// (Heavenly, Northstar, Kirkwood). The pages embed two JSON blobs,
// FR.TerrainStatusFeed and FR.snowReportData, which are preferred over
// text patterns; "X / Y Lifts" style text is the fallback. Lift status
// 3 ("Scheduled") is tracked as its own count.
type VailResortsAdapter struct{}

var (
	vailTerrainJSONPattern = regexp.MustCompile(`(?s)FR\.TerrainStatusFeed\s*=\s*(\{[^;]+\});`)
	vailSnowJSONPattern    = regexp.MustCompile(`(?s)FR\.snowReportData\s*=\s*(\{[^;]+\});`)
	vailTrailingComma      = regexp.MustCompile(`,\s*([}\]])`)

	vailLiftTextPattern  = regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*lifts?(?:\s*open)?`)
	vailTrailTextPattern = regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*(?:trails?|runs?)(?:\s*open)?`)

	vailSnow24Pattern  = regexp.MustCompile(`(?i)24\s*(?:hr|hour)s?[:\s]\s*(\d+(?:\.\d+)?)`)
	vailSnow48Pattern  = regexp.MustCompile(`(?i)48\s*(?:hr|hour)s?[:\s]\s*(\d+(?:\.\d+)?)`)
	vailBasePattern    = regexp.MustCompile(`(?i)base[:\s]\s*(\d+(?:\.\d+)?)\s*(?:in|")`)
	vailSeasonPattern  = regexp.MustCompile(`(?i)season[:\s]\s*(\d+(?:\.\d+)?)`)
	vailInchesInString = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*inch`)
)

// terrainFeed mirrors the FR.TerrainStatusFeed shape. Lift Status is
// numeric (0 closed, 1 open, 2 on-hold, 3 scheduled) in some
// deployments and a string in others.
type terrainFeed struct {
	Lifts         []struct {
		Status any `json:"Status"`
	} `json:"Lifts"`
	GroomingAreas []struct {
		Trails []struct {
			IsOpen bool `json:"IsOpen"`
		} `json:"Trails"`
	} `json:"GroomingAreas"`
}

func (a *VailResortsAdapter) Parse(html string) Outcome {
	var out Outcome
	var ops models.Operations
	var snow models.Snow

	text := pageText(html)

	feed := a.extractTerrainFeed(html)

	if feed != nil && len(feed.Lifts) > 0 {
		open, scheduled, total := a.countLifts(feed)
		ops.LiftsOpen = &open
		ops.LiftsScheduled = &scheduled
		ops.LiftsTotal = &total
	} else if m := vailLiftTextPattern.FindStringSubmatch(text); m != nil {
		ops.LiftsOpen, ops.LiftsTotal = atoiPair(m[1], m[2])
	}

	if feed != nil && len(feed.GroomingAreas) > 0 {
		open, total := a.countTrails(feed)
		if total > 0 {
			ops.TrailsOpen = &open
			ops.TrailsScheduled = models.Ptr(0)
			ops.TrailsTotal = &total
		}
	}
	if ops.TrailsTotal == nil {
		if m := vailTrailTextPattern.FindStringSubmatch(text); m != nil {
			ops.TrailsOpen, ops.TrailsTotal = atoiPair(m[1], m[2])
		}
	}

	if report := a.extractSnowReport(html); report != nil {
		snow = a.parseSnowReport(report)
	} else {
		snow.NewSnow24hIn = findFloat(text, vailSnow24Pattern)
		snow.NewSnow48hIn = findFloat(text, vailSnow48Pattern)
		snow.BaseDepthIn = findFloat(text, vailBasePattern)
		snow.SeasonTotalIn = findFloat(text, vailSeasonPattern)
	}

	// Scheduled lifts/trails mean skiing today: they count toward the
	// open determination but stay out of the published open counts.
	liftsActive, trailsActive := 0, 0
	if ops.LiftsOpen != nil {
		liftsActive += *ops.LiftsOpen
	}
	if ops.LiftsScheduled != nil {
		liftsActive += *ops.LiftsScheduled
	}
	if ops.TrailsOpen != nil {
		trailsActive += *ops.TrailsOpen
	}
	if ops.TrailsScheduled != nil {
		trailsActive += *ops.TrailsScheduled
	}
	switch {
	case liftsActive > 0 || trailsActive > 0:
		ops.OpenFlag = models.Ptr(true)
	case ops.LiftsOpen != nil || ops.LiftsScheduled != nil:
		ops.OpenFlag = models.Ptr(false)
	}

	out.Ops = ops
	out.Snow = snow
	out.Success = true
	return out
}

func (a *VailResortsAdapter) extractTerrainFeed(html string) *terrainFeed {
	m := vailTerrainJSONPattern.FindStringSubmatch(html)
	if m == nil {
		return nil
	}
	var feed terrainFeed
	if err := json.Unmarshal([]byte(vailTrailingComma.ReplaceAllString(m[1], "$1")), &feed); err != nil {
		return nil
	}
	return &feed
}

func (a *VailResortsAdapter) countLifts(feed *terrainFeed) (open, scheduled, total int) {
	for _, lift := range feed.Lifts {
		total++
		switch status := lift.Status.(type) {
		case float64:
			if status == 1 {
				open++
			} else if status == 3 {
				scheduled++
			}
		case string:
			switch strings.ToLower(status) {
			case "open":
				open++
			case "scheduled":
				scheduled++
			}
		}
	}
	return open, scheduled, total
}

func (a *VailResortsAdapter) countTrails(feed *terrainFeed) (open, total int) {
	for _, area := range feed.GroomingAreas {
		for _, trail := range area.Trails {
			total++
			if trail.IsOpen {
				open++
			}
		}
	}
	return open, total
}

func (a *VailResortsAdapter) extractSnowReport(html string) map[string]any {
	m := vailSnowJSONPattern.FindStringSubmatch(html)
	if m == nil {
		return nil
	}
	var report map[string]any
	if err := json.Unmarshal([]byte(vailTrailingComma.ReplaceAllString(m[1], "$1")), &report); err != nil {
		return nil
	}
	return report
}

func (a *VailResortsAdapter) parseSnowReport(report map[string]any) models.Snow {
	var snow models.Snow

	snow.NewSnow24hIn = vailInches(report["TwentyFourHourSnowfall"])
	if snow.NewSnow24hIn == nil {
		snow.NewSnow24hIn = vailInches(report["OvernightSnowfall"])
	}
	snow.NewSnow48hIn = vailInches(report["FortyEightHourSnowfall"])
	snow.BaseDepthIn = vailInches(report["BaseDepth"])
	snow.SeasonTotalIn = vailInches(report["CurrentSeason"])

	return snow
}

// vailInches extracts an inch value from the snow report's two
// encodings: {"Inches": "5", "Centimeters": "12"} or "5 inches / 12 cm".
func vailInches(v any) *float64 {
	switch t := v.(type) {
	case map[string]any:
		inches, _ := t["Inches"].(string)
		if inches == "" {
			return nil
		}
		return parseFloatPtr(inches)
	case string:
		if m := vailInchesInString.FindStringSubmatch(t); m != nil {
			return parseFloatPtr(m[1])
		}
	}
	return nil
}

package output

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mweston/tahoe-conditions/internal/models"
)

// GenerateSummary builds the rule-based rollup: counts, per-resort
// blurbs, and highlight lines.
func GenerateSummary(resorts []models.ResortConditions) models.Summary {
	summary := models.Summary{
		LastUpdatedUTC: time.Now().UTC(),
		Blurbs:         make(map[string]string, len(resorts)),
	}

	for _, resort := range resorts {
		summary.Blurbs[resort.Slug] = generateBlurb(resort)

		switch {
		case resort.Stale:
			summary.Counts.StaleResorts++
		case resort.Ops.OpenFlag != nil && *resort.Ops.OpenFlag:
			summary.Counts.OpenResorts++
		default:
			summary.Counts.ClosedResorts++
		}
	}

	summary.Highlights = computeHighlights(resorts)
	return summary
}

// availableCount adds scheduled to open for display: a scheduled lift
// is skiable capacity today even though it is not open right now.
func availableCount(open, scheduled *int) int {
	n := 0
	if open != nil {
		n += *open
	}
	if scheduled != nil {
		n += *scheduled
	}
	return n
}

func generateBlurb(resort models.ResortConditions) string {
	if resort.Stale {
		return fmt.Sprintf(
			"Latest update unavailable; showing last known conditions from %s UTC.",
			resort.FetchedAtUTC.Format("2006-01-02 15:04"),
		)
	}

	parts := []string{resort.Name + ":"}

	ops := resort.Ops
	if ops.LiftsTotal != nil {
		parts = append(parts, fmt.Sprintf("%d/%d lifts", availableCount(ops.LiftsOpen, ops.LiftsScheduled), *ops.LiftsTotal))
	}
	if ops.TrailsTotal != nil {
		parts = append(parts, fmt.Sprintf("%d/%d trails.", availableCount(ops.TrailsOpen, ops.TrailsScheduled), *ops.TrailsTotal))
	} else if ops.LiftsTotal != nil {
		parts[len(parts)-1] += "."
	}

	snow := resort.Snow
	if snow.NewSnow24hIn != nil {
		parts = append(parts, fmt.Sprintf("New snow (24h): %.0f\".", *snow.NewSnow24hIn))
	} else if snow.BaseDepthIn != nil {
		parts = append(parts, fmt.Sprintf("Base: %.0f\".", *snow.BaseDepthIn))
	}

	weather := resort.Weather
	var weatherParts []string
	if weather.ShortForecast != nil {
		weatherParts = append(weatherParts, *weather.ShortForecast)
	}
	if weather.TempF != nil {
		weatherParts = append(weatherParts, fmt.Sprintf("%.0f°F", *weather.TempF))
	}
	if weather.WindMph != nil {
		weatherParts = append(weatherParts, fmt.Sprintf("wind %.0f mph", *weather.WindMph))
	}
	if len(weatherParts) > 0 {
		parts = append(parts, "Forecast: "+strings.Join(weatherParts, ", ")+".")
	}

	return strings.Join(parts, " ")
}

func computeHighlights(resorts []models.ResortConditions) []string {
	var active []models.ResortConditions
	for _, r := range resorts {
		if !r.Stale && r.Ops.OpenFlag != nil && *r.Ops.OpenFlag {
			active = append(active, r)
		}
	}
	if len(active) == 0 {
		return []string{"All resorts are currently closed or unavailable."}
	}

	var highlights []string

	// Most open terrain, by trail ratio.
	var withTrails []models.ResortConditions
	for _, r := range active {
		if r.Ops.TrailsOpen != nil && r.Ops.TrailsTotal != nil && *r.Ops.TrailsTotal > 0 {
			withTrails = append(withTrails, r)
		}
	}
	if len(withTrails) > 0 {
		sort.SliceStable(withTrails, func(i, j int) bool {
			ri := float64(*withTrails[i].Ops.TrailsOpen) / float64(*withTrails[i].Ops.TrailsTotal)
			rj := float64(*withTrails[j].Ops.TrailsOpen) / float64(*withTrails[j].Ops.TrailsTotal)
			return ri > rj
		})
		best := withTrails[0]
		pct := float64(*best.Ops.TrailsOpen) / float64(*best.Ops.TrailsTotal) * 100
		highlights = append(highlights, fmt.Sprintf(
			"Most open terrain: %s (%d/%d trails, %.0f%%)",
			best.Name, *best.Ops.TrailsOpen, *best.Ops.TrailsTotal, pct))
	}

	// Most new snow in the last 24h.
	var mostSnow *models.ResortConditions
	for i, r := range active {
		if r.Snow.NewSnow24hIn == nil || *r.Snow.NewSnow24hIn <= 0 {
			continue
		}
		if mostSnow == nil || *r.Snow.NewSnow24hIn > *mostSnow.Snow.NewSnow24hIn {
			mostSnow = &active[i]
		}
	}
	if mostSnow != nil {
		highlights = append(highlights, fmt.Sprintf(
			"Most new snow: %s (%.0f\" in 24h)", mostSnow.Name, *mostSnow.Snow.NewSnow24hIn))
	}

	// Windiest, only when notably windy.
	var windiest *models.ResortConditions
	for i, r := range active {
		if r.Weather.WindMph == nil {
			continue
		}
		if windiest == nil || *r.Weather.WindMph > *windiest.Weather.WindMph {
			windiest = &active[i]
		}
	}
	if windiest != nil && *windiest.Weather.WindMph >= 15 {
		highlights = append(highlights, fmt.Sprintf(
			"Windiest: %s (%.0f mph)", windiest.Name, *windiest.Weather.WindMph))
	}

	// Coldest, only when at or below freezing.
	var coldest *models.ResortConditions
	for i, r := range active {
		if r.Weather.TempF == nil {
			continue
		}
		if coldest == nil || *r.Weather.TempF < *coldest.Weather.TempF {
			coldest = &active[i]
		}
	}
	if coldest != nil && *coldest.Weather.TempF <= 32 {
		highlights = append(highlights, fmt.Sprintf(
			"Coldest: %s (%.0f°F)", coldest.Name, *coldest.Weather.TempF))
	}

	return highlights
}

package adapters

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mweston/tahoe-conditions/internal/models"
)

// DiamondPeakAdapter parses Diamond Peak's conditions page, which uses
// structured CSS classes: conditions__row--header rows are lifts,
// conditions__row--open/--groomed/--closed rows are trails, and
// conditions__status carries the status text. The storm-total figure is
// published into the 48h field as a proxy; Diamond Peak does not report
// a true 48-hour number.
type DiamondPeakAdapter struct{}

var (
	dpSnow24Patterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*(?:inches?|")\s*24\s*h`),
		regexp.MustCompile(`(?i)24\s*h(?:our)?s?[:\s]\s*(\d+)`),
	}
	dpOvernightPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*(?:inches?|")\s*overnight`),
		regexp.MustCompile(`(?i)overnight[:\s]\s*(\d+)`),
	}
	dpBasePattern   = regexp.MustCompile(`(?i)base[:\s]\s*(\d+)\s*(?:inches?|")`)
	dpPeakPattern   = regexp.MustCompile(`(?i)peak[:\s]\s*(\d+)\s*(?:inches?|")`)
	dpSeasonPattern = regexp.MustCompile(`(?i)season[:\s]\s*(\d+)\s*(?:inches?|")`)
	dpStormPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)storm\s*(?:total)?[:\s]\s*(\d+)\s*(?:inches?|")`),
		regexp.MustCompile(`(?i)(\d+)\s*(?:inches?|")\s*storm\s*(?:total)?`),
	}
	dpLiftWords  = []string{"Lift", "Chair", "Powerline", "Express"}
	dpTrailClass = regexp.MustCompile(`conditions__row--(?:open|groomed|closed)`)
)

func (a *DiamondPeakAdapter) Parse(html string) Outcome {
	var out Outcome
	var ops models.Operations
	var snow models.Snow

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return failed("diamond_peak: unparseable markup: " + err.Error())
	}
	text := pageText(html)

	// Lifts live in header rows whose label names a lift.
	liftsOpen, liftsTotal := 0, 0
	doc.Find(".conditions__row--header").Each(func(_ int, row *goquery.Selection) {
		label := strings.TrimSpace(row.Find(".conditions__label").Text())
		status := strings.ToLower(strings.TrimSpace(row.Find(".conditions__status").Text()))
		if label == "" || status == "" {
			return
		}
		for _, word := range dpLiftWords {
			if strings.Contains(label, word) {
				liftsTotal++
				if status == "open" || status == "groomed" {
					liftsOpen++
				}
				break
			}
		}
	})
	if liftsTotal > 0 {
		ops.LiftsOpen = &liftsOpen
		ops.LiftsTotal = &liftsTotal
	}

	// Trails are the non-header rows carrying open/groomed/closed classes.
	trailsOpen, trailsTotal := 0, 0
	doc.Find("[class*='conditions__row--']").Each(func(_ int, row *goquery.Selection) {
		classes, _ := row.Attr("class")
		if !dpTrailClass.MatchString(classes) || strings.Contains(classes, "conditions__row--header") {
			return
		}
		// Terrain park items are listed under Village; skip them.
		if strings.Contains(row.Find(".conditions__label").Text(), "Village") {
			return
		}
		trailsTotal++
		if strings.Contains(classes, "conditions__row--open") || strings.Contains(classes, "conditions__row--groomed") {
			trailsOpen++
		}
	})
	if trailsTotal > 0 {
		ops.TrailsOpen = &trailsOpen
		ops.TrailsTotal = &trailsTotal
	}

	// The explicit 24-hour figure beats the overnight one.
	snow.NewSnow24hIn = findFloat(text, dpSnow24Patterns...)
	if snow.NewSnow24hIn == nil {
		snow.NewSnow24hIn = findFloat(text, dpOvernightPatterns...)
	}

	snow.BaseDepthIn = findFloat(text, dpBasePattern)
	if snow.BaseDepthIn == nil {
		snow.BaseDepthIn = findFloat(text, dpPeakPattern)
	}
	snow.SeasonTotalIn = findFloat(text, dpSeasonPattern)
	// Storm total stands in for 48h.
	snow.NewSnow48hIn = findFloat(text, dpStormPatterns...)

	textLower := strings.ToLower(text)
	switch {
	case ops.LiftsOpen != nil:
		ops.OpenFlag = models.Ptr(*ops.LiftsOpen > 0)
	case strings.Contains(textLower, "mountain closed") || strings.Contains(textLower, "closed for season"):
		ops.OpenFlag = models.Ptr(false)
	case strings.Contains(textLower, "open"):
		ops.OpenFlag = models.Ptr(true)
	}

	out.Ops = ops
	out.Snow = snow
	out.Success = true
	return out
}

package adapters

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mweston/tahoe-conditions/internal/models"
)

// PalisadesAdapter parses Palisades Tahoe conditions. The site embeds a
// mtnfeed React widget, so this adapter consumes rendered markup: lift
// and trail counts appear as `<strong>X/Y</strong>` blocks under Lifts/
// Trails headings, with text patterns and an embedded
// window.__INITIAL_STATE__ blob as fallbacks.
type PalisadesAdapter struct{}

var (
	palisadesLiftHTMLPattern  = regexp.MustCompile(`(?is)Lifts</h3>.*?<strong>(\d+)/(\d+)</strong>.*?Open`)
	palisadesTrailHTMLPattern = regexp.MustCompile(`(?is)Trails</h3>.*?<strong>(\d+)/(\d+)</strong>.*?Open`)
	palisadesLiftTextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*(?:of|/)\s*(\d+)\s*lifts?\s*(?:open|running)`),
		regexp.MustCompile(`(?i)lifts?\s*(?:open|running)[:\s]\s*(\d+)\s*(?:of|/)\s*(\d+)`),
	}
	palisadesTrailTextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*(?:of|/)\s*(\d+)\s*(?:trails?|runs?)\s*(?:open|groomed)`),
		regexp.MustCompile(`(?i)(?:trails?|runs?)\s*(?:open|groomed)[:\s]\s*(\d+)\s*(?:of|/)\s*(\d+)`),
	}
	// mtnfeed shows `X" - Y" New Snow` as the 24h/48h pair; the second
	// value may be a "--" placeholder.
	palisadesNewSnowPattern = regexp.MustCompile(`(?i)(\d+)"\s*-\s*(?:(\d+)|--)".*?New\s*Snow`)
	palisadesBasePattern    = regexp.MustCompile(`(?i)Base.*?(\d{2,3})"`)
	palisadesSeasonPattern  = regexp.MustCompile(`(?i)(?:Season\s*Total|YTD|Season).*?(\d{2,3})"`)
	palisadesStatePattern   = regexp.MustCompile(`(?s)__INITIAL_STATE__\s*=\s*(\{.+?\});`)
)

func (a *PalisadesAdapter) Parse(html string) Outcome {
	var out Outcome
	var ops models.Operations
	var snow models.Snow

	if m := palisadesLiftHTMLPattern.FindStringSubmatch(html); m != nil {
		ops.LiftsOpen, ops.LiftsTotal = atoiPair(m[1], m[2])
	}
	if m := palisadesTrailHTMLPattern.FindStringSubmatch(html); m != nil {
		ops.TrailsOpen, ops.TrailsTotal = atoiPair(m[1], m[2])
	}

	text := pageText(html)

	if ops.LiftsOpen == nil {
		ops.LiftsOpen, ops.LiftsTotal = findCountPair(text, palisadesLiftTextPatterns...)
	}
	if ops.TrailsOpen == nil {
		ops.TrailsOpen, ops.TrailsTotal = findCountPair(text, palisadesTrailTextPatterns...)
	}

	if m := palisadesNewSnowPattern.FindStringSubmatch(text); m != nil {
		snow.NewSnow24hIn = parseFloatPtr(m[1])
		if m[2] != "" {
			snow.NewSnow48hIn = parseFloatPtr(m[2])
		}
	}
	snow.BaseDepthIn = findFloat(text, palisadesBasePattern)
	snow.SeasonTotalIn = findFloat(text, palisadesSeasonPattern)

	a.parseInitialState(html, &ops, &snow)

	switch {
	case ops.LiftsOpen != nil:
		ops.OpenFlag = models.Ptr(*ops.LiftsOpen > 0)
	case ops.TrailsOpen != nil:
		ops.OpenFlag = models.Ptr(*ops.TrailsOpen > 0)
	}

	out.Ops = ops
	out.Snow = snow
	out.Success = ops.LiftsOpen != nil || ops.TrailsOpen != nil
	if !out.Success {
		out.Err = "could not extract lift/trail data from rendered page"
	}
	return out
}

// parseInitialState extracts the mtnfeed state blob when present. Its
// shape varies between deployments, so every lookup is optional and a
// malformed blob is ignored.
func (a *PalisadesAdapter) parseInitialState(html string, ops *models.Operations, snow *models.Snow) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return
	}

	doc.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		body := script.Text()
		if !strings.Contains(body, "__INITIAL_STATE__") {
			return true
		}
		m := palisadesStatePattern.FindStringSubmatch(body)
		if m == nil {
			return true
		}

		var state map[string]any
		if err := json.Unmarshal([]byte(m[1]), &state); err != nil {
			return false
		}

		if lifts, ok := state["lifts"].(map[string]any); ok {
			setIntFromAny(&ops.LiftsOpen, lifts["open"])
			setIntFromAny(&ops.LiftsTotal, lifts["total"])
		}
		trails, ok := state["trails"].(map[string]any)
		if !ok {
			trails, _ = state["runs"].(map[string]any)
		}
		if trails != nil {
			setIntFromAny(&ops.TrailsOpen, trails["open"])
			setIntFromAny(&ops.TrailsTotal, trails["total"])
		}
		if sd, ok := state["snow"].(map[string]any); ok {
			setFloatFromAny(&snow.NewSnow24hIn, sd["24hr"])
			setFloatFromAny(&snow.BaseDepthIn, sd["base"])
			setFloatFromAny(&snow.SeasonTotalIn, sd["season"])
		}
		return false
	})
}

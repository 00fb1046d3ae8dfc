package adapters

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mweston/tahoe-conditions/internal/models"
)

// TahoeDonnerAdapter parses Tahoe Donner's conditions page. The page
// lays out lift and trail status in HTML tables whose cells only
// populate after script execution, so this adapter consumes rendered
// markup and falls back to text patterns when the tables are empty.
type TahoeDonnerAdapter struct{}

var (
	tdLiftTextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*(?:of|/)\s*(\d+)\s*lifts?\s*(?:open|running)`),
		regexp.MustCompile(`(?i)lifts?\s*(?:open)?[:\s]\s*(\d+)\s*(?:of|/)\s*(\d+)`),
		regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*lifts?`),
	}
	tdTrailTextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*(?:of|/)\s*(\d+)\s*(?:trails?|runs?)\s*(?:open|groomed)`),
		regexp.MustCompile(`(?i)(?:trails?|runs?)\s*(?:open)?[:\s]\s*(\d+)\s*(?:of|/)\s*(\d+)`),
	}
	tdNewSnowPattern = regexp.MustCompile(`(?i)(?:24\s*(?:hr|hour)|new\s*snow|overnight|fresh)[:\s]\s*(\d+(?:\.\d+)?)\s*(?:in|")`)
	tdBasePattern    = regexp.MustCompile(`(?i)(?:base|snow\s*depth)[:\s]\s*(\d+(?:\.\d+)?)\s*(?:in|")`)
	tdSeasonPattern  = regexp.MustCompile(`(?i)(?:season|ytd)[:\s]\s*(\d+(?:\.\d+)?)\s*(?:in|")`)

	tdLiftWords  = []string{"chair", "lift", "carpet"}
	tdTrailWords = []string{"green", "blue", "black", "diamond", "run", "trail"}
)

func (a *TahoeDonnerAdapter) Parse(html string) Outcome {
	var out Outcome
	var ops models.Operations
	var snow models.Snow

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return failed("tahoe_donner: unparseable markup: " + err.Error())
	}
	text := pageText(html)

	liftsOpen, liftsTotal, trailsOpen, trailsTotal := a.countTableRows(doc)
	if liftsTotal > 0 {
		ops.LiftsOpen = &liftsOpen
		ops.LiftsTotal = &liftsTotal
	} else {
		ops.LiftsOpen, ops.LiftsTotal = findCountPair(text, tdLiftTextPatterns...)
	}
	if trailsTotal > 0 {
		ops.TrailsOpen = &trailsOpen
		ops.TrailsTotal = &trailsTotal
	} else {
		ops.TrailsOpen, ops.TrailsTotal = findCountPair(text, tdTrailTextPatterns...)
	}

	snow.NewSnow24hIn = findFloat(text, tdNewSnowPattern)
	snow.BaseDepthIn = findFloat(text, tdBasePattern)
	snow.SeasonTotalIn = findFloat(text, tdSeasonPattern)

	textLower := strings.ToLower(text)
	switch {
	case strings.Contains(textLower, "closed") && strings.Contains(textLower, "season"):
		ops.OpenFlag = models.Ptr(false)
	case ops.LiftsOpen != nil:
		ops.OpenFlag = models.Ptr(*ops.LiftsOpen > 0)
	case ops.TrailsOpen != nil:
		ops.OpenFlag = models.Ptr(*ops.TrailsOpen > 0)
	}

	out.Ops = ops
	out.Snow = snow
	out.Success = ops.LiftsOpen != nil || ops.TrailsOpen != nil || snow.BaseDepthIn != nil
	if !out.Success {
		out.Err = "could not extract conditions data from rendered page"
	}
	return out
}

// countTableRows classifies table rows as lifts or trails by the words
// they contain and tallies open counts.
func (a *TahoeDonnerAdapter) countTableRows(doc *goquery.Document) (liftsOpen, liftsTotal, trailsOpen, trailsTotal int) {
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.ToLower(strings.TrimSpace(cell.Text())))
		})
		rowText := strings.Join(cells, " ")
		if rowText == "" {
			return
		}

		if containsAny(rowText, tdLiftWords...) {
			liftsTotal++
			if strings.Contains(rowText, "open") || strings.Contains(rowText, "yes") {
				liftsOpen++
			}
			return
		}

		if containsAny(rowText, tdTrailWords...) {
			// Header rows name the columns, not a trail.
			if strings.Contains(rowText, "name") && strings.Contains(rowText, "status") {
				return
			}
			trailsTotal++
			if strings.Contains(rowText, "open") || strings.Contains(rowText, "groomed") {
				trailsOpen++
			}
		}
	})
	return
}

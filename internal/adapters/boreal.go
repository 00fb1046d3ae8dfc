package adapters

import (
	"regexp"
	"strings"

	"github.com/mweston/tahoe-conditions/internal/models"
)

// BorealAdapter parses Boreal Mountain Resort and Soda Springs. Both
// sites are Gatsby/React SPAs, so this adapter consumes rendered markup
// and matches lift/trail counts and snow data in the rendered text.
type BorealAdapter struct{}

var (
	borealLiftPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*lifts?`),
		regexp.MustCompile(`(?i)lifts?\s*(?:open)?[:\s]\s*(\d+)\s*(?:of|/)\s*(\d+)`),
		regexp.MustCompile(`(?i)(\d+)\s*lifts?\s*open`),
	}
	borealTrailPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*(?:trails?|runs?|terrain)`),
		regexp.MustCompile(`(?i)(?:trails?|runs?|terrain)\s*(?:open)?[:\s]\s*(\d+)\s*(?:of|/)\s*(\d+)`),
		regexp.MustCompile(`(?i)(\d+)\s*(?:trails?|runs?)\s*open`),
	}
	borealNewSnowPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:24\s*(?:hr|hour)|new\s*snow|overnight|last\s*24)[:\s]\s*(\d+(?:\.\d+)?)\s*(?:in|")`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:in|")?\s*(?:new|fresh)`),
	}
	boreal48hPattern = regexp.MustCompile(`(?i)(?:48\s*(?:hr|hour)|last\s*48)[:\s]\s*(\d+(?:\.\d+)?)\s*(?:in|")`)
	borealBasePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:base|mid\s*mtn|summit)[:\s]\s*(\d+(?:\.\d+)?)\s*(?:in|")`),
		regexp.MustCompile(`(?i)snow\s*(?:depth|base)[:\s]\s*(\d+(?:\.\d+)?)`),
	}
	borealSeasonPattern = regexp.MustCompile(`(?i)(?:season|ytd|year)[:\s]\s*(\d+(?:\.\d+)?)\s*(?:in|")`)
)

func (a *BorealAdapter) Parse(html string) Outcome {
	var out Outcome
	var ops models.Operations
	var snow models.Snow

	text := pageText(html)

	ops.LiftsOpen, ops.LiftsTotal = findCountPair(text, borealLiftPatterns...)
	ops.TrailsOpen, ops.TrailsTotal = findCountPair(text, borealTrailPatterns...)

	snow.NewSnow24hIn = findFloat(text, borealNewSnowPatterns...)
	snow.NewSnow48hIn = findFloat(text, boreal48hPattern)
	snow.BaseDepthIn = findFloat(text, borealBasePatterns...)
	snow.SeasonTotalIn = findFloat(text, borealSeasonPattern)

	textLower := strings.ToLower(text)
	switch {
	case strings.Contains(textLower, "closed for season") || strings.Contains(textLower, "not operating"):
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

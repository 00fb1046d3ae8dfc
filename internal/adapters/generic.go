package adapters

import (
	"regexp"
	"strings"

	"github.com/mweston/tahoe-conditions/internal/models"
)

// GenericAdapter searches for common condition patterns in any HTML.
// It works for simpler resort pages but misses data on script-heavy
// sites. Success requires recovering at least lift counts or 24h snow.
type GenericAdapter struct{}

var (
	genericLiftPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*lifts?`),
		regexp.MustCompile(`(?i)lifts?\s*[:\s]\s*(\d+)\s*/\s*(\d+)`),
		regexp.MustCompile(`(?i)(\d+)\s+of\s+(\d+)\s+lifts?`),
		regexp.MustCompile(`(?i)lifts?\s+open[:\s]\s*(\d+)\s*/\s*(\d+)`),
	}
	genericTrailPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*(?:trails?|runs?)`),
		regexp.MustCompile(`(?i)(?:trails?|runs?)\s*[:\s]\s*(\d+)\s*/\s*(\d+)`),
		regexp.MustCompile(`(?i)(\d+)\s+of\s+(\d+)\s+(?:trails?|runs?)`),
	}
	genericBasePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)base\s*(?:depth)?[:\s]+(\d+(?:\.\d+)?)\s*[-–]\s*(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)base\s*(?:depth)?[:\s]+(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:"|″)?\s*base`),
	}
	genericSeasonPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)season\s*total[:\s]+(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)ytd[:\s]+(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:"|″)?\s*(?:in|inches?)?\s*season`),
	}
	genericSurfacePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)surface[:\s]+([A-Za-z][A-Za-z\s,]+?)(?:\.|$)`),
		regexp.MustCompile(`(?i)conditions?[:\s]+([A-Za-z][A-Za-z\s,]+?)(?:\.|$)`),
	}
)

// genericNewSnowPatterns builds period-specific patterns (24 or 48).
func genericNewSnowPatterns(hours string) []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:"|″)\s*(?:in\s+)?(?:the\s+)?(?:last\s+)?` + hours + `\s*(?:hr|hour)`),
		regexp.MustCompile(`(?i)` + hours + `\s*(?:hr|hour)s?\s*[:\s]\s*(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)new\s+snow\s*\(?` + hours + `h?\)?\s*[:\s]\s*(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:in|inches?|"|″)\s*(?:in\s+)?(?:the\s+)?(?:last\s+)?` + hours + `\s*(?:hr|hour)`),
	}
}

func (a *GenericAdapter) Parse(html string) Outcome {
	var out Outcome
	var ops models.Operations
	var snow models.Snow

	text := pageText(html)

	ops.LiftsOpen, ops.LiftsTotal = findCountPair(text, genericLiftPatterns...)
	ops.TrailsOpen, ops.TrailsTotal = findCountPair(text, genericTrailPatterns...)

	snow.NewSnow24hIn = findFloat(text, genericNewSnowPatterns("24")...)
	snow.NewSnow48hIn = findFloat(text, genericNewSnowPatterns("48")...)
	snow.BaseDepthIn = findRangeAvg(text, genericBasePatterns[0])
	if snow.BaseDepthIn == nil {
		snow.BaseDepthIn = findFloat(text, genericBasePatterns[1:]...)
	}
	snow.SeasonTotalIn = findFloat(text, genericSeasonPatterns...)
	snow.Surface = a.findSurface(text)

	deriveOpenFlag(strings.ToLower(text), &ops)

	out.Ops = ops
	out.Snow = snow

	// Success means at least some usable data came back.
	if ops.LiftsOpen != nil || snow.NewSnow24hIn != nil {
		out.Success = true
	} else {
		out.Err = "could not extract meaningful data"
	}
	return out
}

func (a *GenericAdapter) findSurface(text string) *string {
	for _, pat := range genericSurfacePatterns {
		if m := pat.FindStringSubmatch(text); m != nil {
			surface := CleanText(m[1])
			if len(surface) > 0 && len(surface) < 50 {
				return &surface
			}
		}
	}
	return nil
}

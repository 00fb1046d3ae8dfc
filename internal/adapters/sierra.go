package adapters

import (
	"regexp"

	"github.com/mweston/tahoe-conditions/internal/models"
)

// SierraAtTahoeAdapter parses Sierra-at-Tahoe's server-rendered page:
// "10/14 Lifts Open", "41/50 Runs Open", summit/base depths, YTD total.
type SierraAtTahoeAdapter struct{}

var (
	sierraLiftPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*lifts?\s*open`),
		regexp.MustCompile(`(?i)lifts?\s*open[:\s]\s*(\d+)\s*/\s*(\d+)`),
	}
	sierraRunPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*runs?\s*open`),
		regexp.MustCompile(`(?i)runs?\s*open[:\s]\s*(\d+)\s*/\s*(\d+)`),
	}
	sierraSnow24Patterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)24[- ]?hour[:\s]\s*(\d+(?:\.\d+)?)(?:"|')?\s*(?:in|inches?)?`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)(?:"|')\s*(?:in\s+)?24[- ]?hour`),
		regexp.MustCompile(`(?i)last\s*24\s*hours?[:\s]\s*(\d+(?:\.\d+)?)`),
	}
	sierraBasePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)base\s*depth[:\s]\s*(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)(\d+)(?:"|')\s*\(summit\)`),
		regexp.MustCompile(`(?i)base[:\s]\s*(\d+)(?:"|')`),
	}
	sierraSeasonPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)ytd[:\s]\s*(\d+)`),
		regexp.MustCompile(`(?i)season\s*total[:\s]\s*(\d+)`),
	}
)

func (a *SierraAtTahoeAdapter) Parse(html string) Outcome {
	var out Outcome
	var ops models.Operations
	var snow models.Snow

	text := pageText(html)

	ops.LiftsOpen, ops.LiftsTotal = findCountPair(text, sierraLiftPatterns...)
	ops.TrailsOpen, ops.TrailsTotal = findCountPair(text, sierraRunPatterns...)

	snow.NewSnow24hIn = findFloat(text, sierraSnow24Patterns...)
	snow.BaseDepthIn = findFloat(text, sierraBasePatterns...)
	snow.SeasonTotalIn = findFloat(text, sierraSeasonPatterns...)

	ops.OpenFlag = models.Ptr(ops.LiftsOpen != nil && *ops.LiftsOpen > 0)

	out.Ops = ops
	out.Snow = snow
	out.Success = true
	return out
}

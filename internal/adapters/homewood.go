package adapters

import (
	"regexp"

	"github.com/mweston/tahoe-conditions/internal/models"
)

// HomewoodAdapter parses Homewood Mountain Resort's snow report page:
// "Open Lifts ... X/Y", "Open Runs ... X/Y", base/summit depths.
type HomewoodAdapter struct{}

var (
	homewoodLiftPattern   = regexp.MustCompile(`(?i)open\s+lifts[^0-9]*(\d+)\s*/\s*(\d+)`)
	homewoodTrailPattern  = regexp.MustCompile(`(?i)open\s+runs[^0-9]*(\d+)\s*/\s*(\d+)`)
	homewoodBasePattern   = regexp.MustCompile(`(?i)(?:base|summit)[:\s]\s*(\d+(?:\.\d+)?)\s*(?:in|")`)
	homewoodSeasonPattern = regexp.MustCompile(`(?i)season\s*(?:total)?[:\s]\s*(\d+(?:\.\d+)?)\s*(?:in|")`)
	homewoodSnowPattern   = regexp.MustCompile(`(?i)(?:24\s*(?:hr|hour)|overnight)[:\s]\s*(\d+(?:\.\d+)?)\s*(?:in|")`)
)

func (a *HomewoodAdapter) Parse(html string) Outcome {
	var out Outcome
	var ops models.Operations
	var snow models.Snow

	text := pageText(html)

	ops.LiftsOpen, ops.LiftsTotal = findCountPair(text, homewoodLiftPattern)
	ops.TrailsOpen, ops.TrailsTotal = findCountPair(text, homewoodTrailPattern)

	snow.BaseDepthIn = findFloat(text, homewoodBasePattern)
	snow.SeasonTotalIn = findFloat(text, homewoodSeasonPattern)
	snow.NewSnow24hIn = findFloat(text, homewoodSnowPattern)

	switch {
	case ops.LiftsOpen != nil:
		ops.OpenFlag = models.Ptr(*ops.LiftsOpen > 0)
	case ops.TrailsOpen != nil:
		ops.OpenFlag = models.Ptr(*ops.TrailsOpen > 0)
	}

	out.Ops = ops
	out.Snow = snow
	out.Success = true
	return out
}

package adapters

import (
	"regexp"
	"strings"

	"github.com/mweston/tahoe-conditions/internal/models"
)

// MtRoseAdapter parses Mt Rose Ski Tahoe's conditions page. The lift
// section lists each lift by name with a status word; snow figures come
// as ranges like `47-58"`, collapsed to their mean. Mt Rose publishes a
// terrain percentage instead of trail counts, so trails usually stay
// unknown. The storm-total figure feeds the 48h field as a proxy.
type MtRoseAdapter struct{}

// mtRoseLifts is the known lift roster.
var mtRoseLifts = []string{
	"Northwest Express",
	"Zephyr Express",
	"Lakeview Express",
	"Wizard",
	"Magic",
	"Galena",
	"Chuter",
	"Blazing Zephyr",
}

var (
	mtRoseNewSnowPattern = regexp.MustCompile(`(?i)new\s*snow[:\s]\s*(\d+)[-–]?(\d+)?(?:"|″)`)
	mtRoseBasePattern    = regexp.MustCompile(`(?i)base\s*(?:depth)?[:\s]\s*(\d+)[-–]?(\d+)?(?:"|″)`)
	mtRoseSeasonPattern  = regexp.MustCompile(`(?i)season\s*(?:total)?[:\s]\s*(\d+)[-–]?(\d+)?(?:"|″)`)
	mtRoseStormPattern   = regexp.MustCompile(`(?i)storm\s*(?:total)?[:\s]\s*(\d+)[-–]?(\d+)?(?:"|″)`)
	mtRoseTrailPattern   = regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*(?:trails?|runs?)`)
)

func (a *MtRoseAdapter) Parse(html string) Outcome {
	var out Outcome
	var ops models.Operations
	var snow models.Snow

	text := pageText(html)

	ops.LiftsOpen, ops.LiftsTotal = a.countLifts(text)
	ops.TrailsOpen, ops.TrailsTotal = findCountPair(text, mtRoseTrailPattern)

	snow.NewSnow24hIn = findRangeAvg(text, mtRoseNewSnowPattern)
	snow.BaseDepthIn = findRangeAvg(text, mtRoseBasePattern)
	snow.SeasonTotalIn = findRangeAvg(text, mtRoseSeasonPattern)
	snow.NewSnow48hIn = findRangeAvg(text, mtRoseStormPattern)

	ops.OpenFlag = models.Ptr(ops.LiftsOpen != nil && *ops.LiftsOpen > 0)

	out.Ops = ops
	out.Snow = snow
	out.Success = true
	return out
}

// countLifts walks the known roster and classifies each lift by the
// status word following its name. "Scheduled to open" counts as open:
// the lift will run today.
func (a *MtRoseAdapter) countLifts(text string) (*int, *int) {
	open, total := 0, 0

	for _, name := range mtRoseLifts {
		pat := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name) + `\s+(\w+(?:\s+\w+)*)`)
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		total++
		status := strings.ToLower(m[1])
		if strings.Contains(status, "scheduled") || strings.Contains(status, "open") {
			open++
		}
	}

	if total == 0 {
		return nil, nil
	}
	return &open, &total
}

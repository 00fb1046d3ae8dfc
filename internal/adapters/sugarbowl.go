package adapters

import (
	"regexp"
	"strings"

	"github.com/mweston/tahoe-conditions/internal/models"
)

// SugarBowlAdapter parses Sugar Bowl's conditions page. Individual lift
// entries carry Open/Scheduled/Closed statuses; scheduled lifts are
// published as their own count. Sugar Bowl reports a 7-day snowfall
// total, which is published into the 48h field as a proxy.
type SugarBowlAdapter struct{}

// sugarBowlLifts is the known lift roster.
var sugarBowlLifts = []string{
	"Mt. Judah Express", "Jerome Hill Express", "Mt. Lincoln Express",
	"Christmas Tree Express", "Mt. Disney Express", "Nob Hill",
	"White Pine", "Summit Chair", "Gondola", "Flume Carpet", "Crow's Peak",
}

var (
	sugarBowlLiftPattern  = regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*lifts?\s*open`)
	sugarBowlTrailPattern = regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*trails?\s*open`)
	sugarBowlSnow24Patterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:"|″)\s*24\s*hr`),
		regexp.MustCompile(`(?i)24\s*hr\s*(?:snowfall)?[:\s]\s*(\d+(?:\.\d+)?)`),
	}
	sugarBowlYTDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:"|″)\s*(?:year\s*to\s*date|ytd)`),
		regexp.MustCompile(`(?i)(?:year\s*to\s*date|ytd)[:\s]\s*(\d+(?:\.\d+)?)`),
	}
	sugarBowl7DayPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:"|″)\s*7\s*day`)
	sugarBowlBasePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:summit|base)[:\s]\s*(\d+(?:\.\d+)?)\s*(?:"|″)`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:"|″)\s*(?:at\s+)?(?:summit|base)`),
	}
)

func (a *SugarBowlAdapter) Parse(html string) Outcome {
	var out Outcome
	var ops models.Operations
	var snow models.Snow

	text := pageText(html)
	lines := pageLines(html)

	// Prefer per-lift statuses, which carry the scheduled count.
	open, scheduled, total := a.countLiftStatuses(lines)
	if total > 0 {
		ops.LiftsOpen = &open
		ops.LiftsScheduled = &scheduled
		ops.LiftsTotal = &total
	} else {
		ops.LiftsOpen, ops.LiftsTotal = findCountPair(text, sugarBowlLiftPattern)
	}

	ops.TrailsOpen, ops.TrailsTotal = findCountPair(text, sugarBowlTrailPattern)

	snow.NewSnow24hIn = findFloat(text, sugarBowlSnow24Patterns...)
	snow.SeasonTotalIn = findFloat(text, sugarBowlYTDPatterns...)
	// 7-day total stands in for 48h.
	snow.NewSnow48hIn = findFloat(text, sugarBowl7DayPattern)
	snow.BaseDepthIn = findFloat(text, sugarBowlBasePatterns...)

	// A scheduled lift means skiing today, so it counts toward the open
	// determination (not toward the published open count).
	liftsActive := 0
	if ops.LiftsOpen != nil {
		liftsActive += *ops.LiftsOpen
	}
	if ops.LiftsScheduled != nil {
		liftsActive += *ops.LiftsScheduled
	}
	switch {
	case strings.Contains(strings.ToLower(text), "mountain status open"):
		ops.OpenFlag = models.Ptr(true)
	case liftsActive > 0:
		ops.OpenFlag = models.Ptr(true)
	case ops.LiftsOpen != nil || ops.LiftsScheduled != nil:
		ops.OpenFlag = models.Ptr(false)
	}

	out.Ops = ops
	out.Snow = snow
	out.Success = true
	return out
}

// countLiftStatuses matches each rostered lift name against the status
// word on the following line.
func (a *SugarBowlAdapter) countLiftStatuses(lines string) (open, scheduled, total int) {
	for _, name := range sugarBowlLifts {
		pat := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name) + `[^\n]*\n[^\n]*(open|scheduled|closed)`)
		m := pat.FindStringSubmatch(lines)
		if m == nil {
			continue
		}
		total++
		switch strings.ToLower(m[1]) {
		case "open":
			open++
		case "scheduled":
			scheduled++
		}
	}
	return open, scheduled, total
}

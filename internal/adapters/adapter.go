// Package adapters extracts structured conditions facts from resort
// pages. One adapter per source kind, each tolerant of partial or
// garbled markup: a bad page degrades that resort's data, never the
// batch.
package adapters

import (
	"fmt"

	"github.com/mweston/tahoe-conditions/internal/models"
)

// Outcome is the result of one parse attempt. Err is set iff Success is
// false. NeedsRendering marks sources known to require script execution
// when none was performed.
type Outcome struct {
	Success        bool
	Ops            models.Operations
	Snow           models.Snow
	Err            string
	NeedsRendering bool
}

// failed builds an unsuccessful Outcome with a diagnostic message.
func failed(msg string) Outcome {
	return Outcome{Err: msg}
}

// Adapter parses raw markup for one source kind. Implementations must
// not panic across the Parse boundary; Resolve additionally wraps every
// adapter in a recovery guard.
type Adapter interface {
	Parse(html string) Outcome
}

// guarded converts any panic inside the wrapped adapter into a failed
// Outcome. This is the robustness boundary for the whole extraction set.
type guarded struct {
	kind  string
	inner Adapter
}

func (g guarded) Parse(html string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = failed(fmt.Sprintf("%s adapter panic: %v", g.kind, r))
		}
	}()
	out = g.inner.Parse(html)
	sanitizeCounts(&out.Ops)
	return out
}

// sanitizeCounts drops a total that contradicts its open count. A
// source reporting 9 open of 7 total is garbled; publishing the open
// count with an unknown total beats publishing an impossible pair.
func sanitizeCounts(ops *models.Operations) {
	if ops.LiftsOpen != nil && ops.LiftsTotal != nil && *ops.LiftsOpen > *ops.LiftsTotal {
		ops.LiftsTotal = nil
	}
	if ops.TrailsOpen != nil && ops.TrailsTotal != nil && *ops.TrailsOpen > *ops.TrailsTotal {
		ops.TrailsTotal = nil
	}
}

// deriveOpenFlag applies the shared open/closed policy: an explicit
// phrase wins, then open lift count, then open trail count, else
// unknown. Callers pass the already-lowercased page text.
func deriveOpenFlag(textLower string, ops *models.Operations) {
	switch {
	case containsAny(textLower, "resort closed", "mountain closed", "closed for season", "closed for the season"):
		ops.OpenFlag = models.Ptr(false)
	case containsAny(textLower, "resort open", "mountain open"):
		ops.OpenFlag = models.Ptr(true)
	case ops.LiftsOpen != nil:
		ops.OpenFlag = models.Ptr(*ops.LiftsOpen > 0)
	case ops.TrailsOpen != nil:
		ops.OpenFlag = models.Ptr(*ops.TrailsOpen > 0)
	}
}

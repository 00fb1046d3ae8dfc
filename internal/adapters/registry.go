package adapters

import "github.com/mweston/tahoe-conditions/internal/logging"

// registry maps source kinds to adapter constructors. New sources are
// onboarded by adding an adapter file and an entry here; orchestration
// never changes.
var registry = map[string]func() Adapter{
	"generic":              func() Adapter { return &GenericAdapter{} },
	"boreal":               func() Adapter { return &BorealAdapter{} },
	"diamond_peak":         func() Adapter { return &DiamondPeakAdapter{} },
	"homewood":             func() Adapter { return &HomewoodAdapter{} },
	"mt_rose":              func() Adapter { return &MtRoseAdapter{} },
	"palisades":            func() Adapter { return &PalisadesAdapter{} },
	"sierra_at_tahoe":      func() Adapter { return &SierraAtTahoeAdapter{} },
	"sugar_bowl":           func() Adapter { return &SugarBowlAdapter{} },
	"tahoe_donner":         func() Adapter { return &TahoeDonnerAdapter{} },
	"vail_resorts":         func() Adapter { return &VailResortsAdapter{} },
	"placeholder_headless": func() Adapter { return &HeadlessPlaceholderAdapter{} },
}

// renderingKinds are the sources whose pages only populate after script
// execution and must be fetched through the headless browser.
var renderingKinds = map[string]bool{
	"boreal":               true,
	"palisades":            true,
	"tahoe_donner":         true,
	"placeholder_headless": true,
}

// Resolve returns the adapter for a source kind, wrapped in the panic
// guard. Unknown kinds fall back to the generic adapter with a warning;
// Resolve never fails.
func Resolve(kind string) Adapter {
	ctor, ok := registry[kind]
	if !ok {
		logging.S().Warnw("unknown adapter kind, using generic", "kind", kind)
		return guarded{kind: "generic", inner: &GenericAdapter{}}
	}
	return guarded{kind: kind, inner: ctor()}
}

// RequiresRendering reports whether a source kind needs the headless
// browser.
func RequiresRendering(kind string) bool {
	return renderingKinds[kind]
}

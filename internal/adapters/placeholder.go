package adapters

// HeadlessPlaceholderAdapter stands in for sources that require script
// execution but have no dedicated parser yet. It always fails with
// NeedsRendering set so the orchestrator falls back to last-known-good.
type HeadlessPlaceholderAdapter struct{}

func (a *HeadlessPlaceholderAdapter) Parse(string) Outcome {
	return Outcome{
		NeedsRendering: true,
		Err:            "this source requires JavaScript rendering and has no dedicated parser",
	}
}

package conform

import (
	"github.com/roach88/hostbind/internal/store"
)

// Record converts the result into its stored form.
func (r *Result) Record() store.Run {
	run := store.Run{
		ID:       r.RunID,
		Scenario: r.Scenario,
		Passed:   r.Passed,
		Probes:   make([]store.ProbeRecord, len(r.Probes)),
	}
	for i, p := range r.Probes {
		run.Probes[i] = store.ProbeRecord{
			Name:     p.Name,
			Source:   p.Source,
			TypeName: p.TypeName,
			TypeOf:   p.TypeOf,
			Exact:    p.Exact,
			Downcast: p.Downcast,
			Passed:   p.Passed,
		}
	}
	return run
}

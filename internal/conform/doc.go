// Package conform runs conformance scenarios against the None wrapper.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: none_identity
//	description: "The singleton is the only None"
//	probes:
//	  - name: singleton
//	    source: none
//	    expect: { type_of: true, exact: true, downcast: true, type_name: NoneType }
//	  - name: empty_dict
//	    source: cue
//	    value: "{}"
//	    expect: { type_of: false, exact: false, downcast: false }
//
// Sources:
//   - none: the singleton from GetNone
//   - unit_to_object: Unit{}.ToObject
//   - unit_into_object: Unit{}.IntoObject
//   - cue: a CUE literal (null, bool, int, string, struct)
//
// Each run attaches a fresh runtime, evaluates every probe, and records one
// trace line per probe. Beyond the per-probe expectations, every run checks
// that IsTypeOf and IsExactTypeOf agree and that the None refcount is
// balanced once the attachment ends.
//
// Golden traces live in testdata/golden/{scenario.Name}.golden. To
// regenerate them, run:
//
//	go test ./internal/conform -update
package conform

// Package native holds the typed Go views over foreign runtime objects.
//
// A view type (Any, None, Dict, Str) is a struct whose only field is the
// foreign object header. A *None therefore has exactly the representation of
// a raw *ffi.Object; no wrapper is allocated and nothing is copied. The
// reinterpretation happens in one place, borrowRaw in layout.go, and the
// layout equivalence is asserted at compile time there.
//
// Views are only reachable through Borrowed[T], which carries the
// execution-context token it was derived from. Once that token detaches, any
// use of the reference panics with gil.ErrDetached.
//
// Every view type implements TypeInfo on its pointer type. The methods are
// called on a nil receiver and must not dereference it.
//
// # None
//
// GetNone returns the runtime's "no value" singleton. Its type cannot be
// subclassed by the foreign runtime, so IsTypeOf and IsExactTypeOf agree and
// both reduce to object identity with the singleton.
//
// # Conversions
//
// Unit is the host-side "no value". Both Unit.ToObject and Unit.IntoObject
// produce an owned reference to the singleton.
package native

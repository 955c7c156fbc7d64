// Package ffi is the foreign runtime that hostbind binds against.
//
// It owns object memory, type objects and reference counts. Every foreign
// object starts with an Object header, so a pointer to any concrete object is
// also a valid *Object; callers above this package only ever see *Object and
// *TypeObject.
//
// The runtime is single-writer: callers must hold the runtime lock (see
// package gil) for every call except DeferDecRef. This package does not check
// that; it is the caller's contract.
//
// Static objects created by New (None, True, False and the builtin types)
// live as long as the Runtime. Driving one of them to a zero refcount is a
// fatal runtime error and panics.
package ffi

package ffi

import (
	"fmt"
	"unsafe"
)

// Object is the header shared by every foreign object.
// Concrete object structs embed it as their first field.
type Object struct {
	refcnt int64
	typ    *TypeObject
}

// TypeFlags describes capabilities of a type object.
type TypeFlags uint64

const (
	// FlagBaseType marks a type that may be used as a base for new types.
	FlagBaseType TypeFlags = 1 << iota

	// FlagHeapType marks a type created at runtime by NewType.
	FlagHeapType

	// FlagDictSubclass marks dict and every type derived from it.
	FlagDictSubclass

	// FlagStrSubclass marks str and every type derived from it.
	FlagStrSubclass

	// FlagIntSubclass marks int and every type derived from it (bool included).
	FlagIntSubclass
)

// TypeObject is a foreign type. It is itself a foreign object whose type is
// the runtime's "type" type.
type TypeObject struct {
	Object

	Name   string
	Module string
	Base   *TypeObject
	Flags  TypeFlags
}

// AsObject returns the type's object header.
func (t *TypeObject) AsObject() *Object {
	return &t.Object
}

// QualName returns "module.name", or just the name for types that belong to
// no module.
func (t *TypeObject) QualName() string {
	if t.Module == "" {
		return t.Name
	}
	return t.Module + "." + t.Name
}

// HasFlag reports whether all bits of f are set on t.
func (t *TypeObject) HasFlag(f TypeFlags) bool {
	return t.Flags&f == f
}

func (t *TypeObject) String() string {
	return fmt.Sprintf("<class '%s'>", t.QualName())
}

type dictObject struct {
	Object
	keys  []string
	items map[string]*Object
}

type strObject struct {
	Object
	value string
}

type intObject struct {
	Object
	value int64
}

// TypeOf returns the type of ob. It never allocates and never touches the
// refcount.
func TypeOf(ob *Object) *TypeObject {
	return ob.typ
}

// Is reports object identity: a and b are the same foreign object.
func Is(a, b *Object) bool {
	return a == b
}

// IsSubtype reports whether a is b or derives from b.
func IsSubtype(a, b *TypeObject) bool {
	for t := a; t != nil; t = t.Base {
		if t == b {
			return true
		}
	}
	return false
}

// RefCount returns the current reference count of ob.
func RefCount(ob *Object) int64 {
	return ob.refcnt
}

// Address returns the address of ob for diagnostics.
func Address(ob *Object) uintptr {
	return uintptr(unsafe.Pointer(ob))
}

// The concrete object views below are valid only after the caller has
// checked the type flag; the header is at offset zero of every concrete
// struct.

func asDict(ob *Object) *dictObject {
	return (*dictObject)(unsafe.Pointer(ob))
}

func asStr(ob *Object) *strObject {
	return (*strObject)(unsafe.Pointer(ob))
}

func asInt(ob *Object) *intObject {
	return (*intObject)(unsafe.Pointer(ob))
}

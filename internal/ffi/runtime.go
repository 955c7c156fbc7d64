package ffi

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// staticRefCount is the starting refcount of objects created by New.
// It is large enough that balanced borrowing never approaches zero.
const staticRefCount = math.MaxInt32

// Runtime is one foreign runtime instance.
//
// Thread-safety model:
//   - Lock()/Unlock(): safe from any goroutine; serialize everything else
//   - DeferDecRef(): safe from any goroutine without the lock
//   - all other methods: caller must hold the lock
type Runtime struct {
	mu sync.Mutex

	logger    *slog.Logger
	traceRefs bool

	typeType   *TypeObject
	objectType *TypeObject
	noneType   *TypeObject
	intType    *TypeObject
	boolType   *TypeObject
	strType    *TypeObject
	dictType   *TypeObject

	none     *Object
	trueObj  *intObject
	falseObj *intObject

	static   map[*Object]string
	interned map[string]*Object

	deferMu  sync.Mutex
	deferred []*Object
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for lifecycle and refcount tracing.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = l
	}
}

// WithRefTrace logs every IncRef/DecRef at debug level.
func WithRefTrace(enabled bool) Option {
	return func(r *Runtime) {
		r.traceRefs = enabled
	}
}

// New creates a runtime with its builtin types and singletons.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		logger:   slog.Default(),
		static:   make(map[*Object]string),
		interned: make(map[string]*Object),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.typeType = &TypeObject{Name: "type", Module: "builtins", Flags: FlagBaseType}
	r.objectType = r.builtinType("object", nil, FlagBaseType)
	r.typeType.Base = r.objectType
	r.typeType.Object = Object{refcnt: staticRefCount, typ: r.typeType}
	r.static[r.typeType.AsObject()] = "type"

	// NoneType and bool are final: no FlagBaseType.
	r.noneType = r.builtinType("NoneType", r.objectType, 0)
	r.intType = r.builtinType("int", r.objectType, FlagBaseType|FlagIntSubclass)
	r.boolType = r.builtinType("bool", r.intType, FlagIntSubclass)
	r.strType = r.builtinType("str", r.objectType, FlagBaseType|FlagStrSubclass)
	r.dictType = r.builtinType("dict", r.objectType, FlagBaseType|FlagDictSubclass)

	r.none = &Object{refcnt: staticRefCount, typ: r.noneType}
	r.static[r.none] = "None"
	r.trueObj = &intObject{Object: Object{refcnt: staticRefCount, typ: r.boolType}, value: 1}
	r.static[&r.trueObj.Object] = "True"
	r.falseObj = &intObject{Object: Object{refcnt: staticRefCount, typ: r.boolType}, value: 0}
	r.static[&r.falseObj.Object] = "False"

	r.logger.Debug("foreign runtime initialized", "none", fmt.Sprintf("%#x", Address(r.none)))
	return r
}

func (r *Runtime) builtinType(name string, base *TypeObject, flags TypeFlags) *TypeObject {
	t := &TypeObject{
		Object: Object{refcnt: staticRefCount, typ: r.typeType},
		Name:   name,
		Module: "builtins",
		Base:   base,
		Flags:  flags,
	}
	r.static[t.AsObject()] = name
	return t
}

// Lock attaches the calling goroutine to the runtime.
func (r *Runtime) Lock() {
	r.mu.Lock()
}

// Unlock detaches the calling goroutine.
func (r *Runtime) Unlock() {
	r.mu.Unlock()
}

// Logger returns the runtime's logger.
func (r *Runtime) Logger() *slog.Logger {
	return r.logger
}

// None returns the process singleton "no value" object. The reference is
// borrowed: the refcount is not changed.
func (r *Runtime) None() *Object {
	return r.none
}

// True returns the boolean true singleton (borrowed).
func (r *Runtime) True() *Object {
	return &r.trueObj.Object
}

// False returns the boolean false singleton (borrowed).
func (r *Runtime) False() *Object {
	return &r.falseObj.Object
}

// Bool returns True or False (borrowed).
func (r *Runtime) Bool(v bool) *Object {
	if v {
		return r.True()
	}
	return r.False()
}

// Builtin type accessors.

func (r *Runtime) TypeType() *TypeObject   { return r.typeType }
func (r *Runtime) ObjectType() *TypeObject { return r.objectType }
func (r *Runtime) BoolType() *TypeObject   { return r.boolType }
func (r *Runtime) IntType() *TypeObject    { return r.intType }
func (r *Runtime) StrType() *TypeObject    { return r.strType }
func (r *Runtime) DictType() *TypeObject   { return r.dictType }

// IncRef adds a strong reference to ob.
func (r *Runtime) IncRef(ob *Object) {
	ob.refcnt++
	if r.traceRefs {
		r.logger.Debug("incref", "type", ob.typ.Name, "addr", fmt.Sprintf("%#x", Address(ob)), "refcnt", ob.refcnt)
	}
}

// DecRef drops a strong reference to ob and deallocates it at zero.
// Panics if a static object would be deallocated.
func (r *Runtime) DecRef(ob *Object) {
	ob.refcnt--
	if r.traceRefs {
		r.logger.Debug("decref", "type", ob.typ.Name, "addr", fmt.Sprintf("%#x", Address(ob)), "refcnt", ob.refcnt)
	}
	if ob.refcnt > 0 {
		return
	}
	if name, ok := r.static[ob]; ok {
		panic("ffi: deallocating " + name)
	}
	r.dealloc(ob)
}

func (r *Runtime) dealloc(ob *Object) {
	if ob.typ.HasFlag(FlagDictSubclass) {
		d := asDict(ob)
		for _, k := range d.keys {
			r.DecRef(d.items[k])
		}
		d.keys = nil
		d.items = nil
	}
	r.logger.Debug("dealloc", "type", ob.typ.Name, "addr", fmt.Sprintf("%#x", Address(ob)))
}

// DeferDecRef queues a DecRef for the next attachment. It may be called
// without holding the lock.
func (r *Runtime) DeferDecRef(ob *Object) {
	r.deferMu.Lock()
	r.deferred = append(r.deferred, ob)
	r.deferMu.Unlock()
}

// DrainDeferred applies queued DecRefs and returns how many were applied.
func (r *Runtime) DrainDeferred() int {
	r.deferMu.Lock()
	pending := r.deferred
	r.deferred = nil
	r.deferMu.Unlock()

	for _, ob := range pending {
		r.DecRef(ob)
	}
	return len(pending)
}

// NewType creates a heap type deriving from base (object when base is nil).
// Returns a TypeError if base is not usable as a base type.
func (r *Runtime) NewType(name, module string, base *TypeObject, flags TypeFlags) (*TypeObject, error) {
	if base == nil {
		base = r.objectType
	}
	if !base.HasFlag(FlagBaseType) {
		return nil, notBaseType(base)
	}
	inherited := base.Flags & (FlagDictSubclass | FlagStrSubclass | FlagIntSubclass)
	t := &TypeObject{
		Object: Object{refcnt: 1, typ: r.typeType},
		Name:   name,
		Module: module,
		Base:   base,
		Flags:  flags | inherited | FlagHeapType,
	}
	r.logger.Debug("type created", "name", t.QualName(), "base", base.Name)
	return t, nil
}

// NewInstance creates an empty instance of t (a new reference).
func (r *Runtime) NewInstance(t *TypeObject) (*Object, error) {
	switch {
	case IsSubtype(t, r.noneType), IsSubtype(t, r.boolType):
		return nil, notInstantiable(t)
	case t.HasFlag(FlagDictSubclass):
		return r.newDict(t), nil
	case t.HasFlag(FlagStrSubclass):
		return &(&strObject{Object: Object{refcnt: 1, typ: t}}).Object, nil
	case t.HasFlag(FlagIntSubclass):
		return &(&intObject{Object: Object{refcnt: 1, typ: t}}).Object, nil
	default:
		return &Object{refcnt: 1, typ: t}, nil
	}
}

// NewStr creates a str object (a new reference).
func (r *Runtime) NewStr(s string) *Object {
	o := &strObject{Object: Object{refcnt: 1, typ: r.strType}, value: s}
	return &o.Object
}

// Intern returns the interned str for an identifier (a new reference).
// Identifiers are NFKC-normalized first, so compatibility-equivalent
// spellings intern to the same object.
func (r *Runtime) Intern(s string) *Object {
	key := norm.NFKC.String(s)
	if ob, ok := r.interned[key]; ok {
		r.IncRef(ob)
		return ob
	}
	ob := r.NewStr(key)
	r.interned[key] = ob
	r.IncRef(ob)
	return ob
}

// NewInt creates an int object (a new reference).
func (r *Runtime) NewInt(n int64) *Object {
	o := &intObject{Object: Object{refcnt: 1, typ: r.intType}, value: n}
	return &o.Object
}

// StrValue returns the contents of a str object.
func (r *Runtime) StrValue(ob *Object) (string, error) {
	if !ob.typ.HasFlag(FlagStrSubclass) {
		return "", wrongType("StrValue", "str", ob)
	}
	return asStr(ob).value, nil
}

// IntValue returns the value of an int or bool object.
func (r *Runtime) IntValue(ob *Object) (int64, error) {
	if !ob.typ.HasFlag(FlagIntSubclass) {
		return 0, wrongType("IntValue", "int", ob)
	}
	return asInt(ob).value, nil
}

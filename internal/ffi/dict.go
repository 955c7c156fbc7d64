package ffi

// NewDict creates an empty dict (a new reference).
func (r *Runtime) NewDict() *Object {
	return r.newDict(r.dictType)
}

func (r *Runtime) newDict(t *TypeObject) *Object {
	d := &dictObject{
		Object: Object{refcnt: 1, typ: t},
		items:  make(map[string]*Object),
	}
	return &d.Object
}

// DictLen returns the number of items in d.
func (r *Runtime) DictLen(d *Object) (int, error) {
	if !d.typ.HasFlag(FlagDictSubclass) {
		return 0, wrongType("DictLen", "dict", d)
	}
	return len(asDict(d).keys), nil
}

// DictSetItem stores val under key. The dict takes a new reference to val
// and drops its reference to any value it replaces.
func (r *Runtime) DictSetItem(d *Object, key string, val *Object) error {
	if !d.typ.HasFlag(FlagDictSubclass) {
		return wrongType("DictSetItem", "dict", d)
	}
	do := asDict(d)
	r.IncRef(val)
	if old, ok := do.items[key]; ok {
		do.items[key] = val
		r.DecRef(old)
		return nil
	}
	do.keys = append(do.keys, key)
	do.items[key] = val
	return nil
}

// DictGetItem returns the value stored under key (borrowed).
func (r *Runtime) DictGetItem(d *Object, key string) (*Object, bool, error) {
	if !d.typ.HasFlag(FlagDictSubclass) {
		return nil, false, wrongType("DictGetItem", "dict", d)
	}
	v, ok := asDict(d).items[key]
	return v, ok, nil
}

// DictKeys returns the keys of d in insertion order.
func (r *Runtime) DictKeys(d *Object) ([]string, error) {
	if !d.typ.HasFlag(FlagDictSubclass) {
		return nil, wrongType("DictKeys", "dict", d)
	}
	keys := asDict(d).keys
	out := make([]string, len(keys))
	copy(out, keys)
	return out, nil
}

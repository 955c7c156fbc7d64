package native

import (
	"github.com/roach88/hostbind/internal/ffi"
	"github.com/roach88/hostbind/internal/gil"
)

// Dict is the view over a foreign mapping.
type Dict struct {
	any Any
}

// NewDict creates an empty dict owned by py.
func NewDict(py *gil.Token) Borrowed[Dict] {
	ob := py.Runtime().NewDict()
	py.Register(ob)
	return borrowRaw[Dict](py, ob)
}

func (*Dict) TypeName() string { return "dict" }

func (*Dict) TypeModule() (string, bool) { return "builtins", true }

func (*Dict) TypeObject(py *gil.Token) *ffi.TypeObject {
	return py.Runtime().DictType()
}

func (*Dict) IsTypeOf(obj Borrowed[Any]) bool {
	return obj.GetType().HasFlag(ffi.FlagDictSubclass)
}

func (*Dict) IsExactTypeOf(obj Borrowed[Any]) bool {
	return obj.GetType() == obj.Token().Runtime().DictType()
}

// DictLen returns the number of items in d.
func DictLen(d Borrowed[Dict]) int {
	// d is a dict by construction; the error path is unreachable.
	n, _ := d.Token().Runtime().DictLen(d.Ptr())
	return n
}

// DictSetItem stores val under key; the dict takes its own reference.
func DictSetItem(d Borrowed[Dict], key string, val Pointer) error {
	return d.Token().Runtime().DictSetItem(d.Ptr(), key, val.Ptr())
}

// DictGetItem returns the value stored under key, borrowed from d.
func DictGetItem(d Borrowed[Dict], key string) (Borrowed[Any], bool) {
	v, ok, _ := d.Token().Runtime().DictGetItem(d.Ptr(), key)
	if !ok {
		return Borrowed[Any]{}, false
	}
	return borrowRaw[Any](d.Token(), v), true
}

// DictKeys returns d's keys in insertion order.
func DictKeys(d Borrowed[Dict]) []string {
	keys, _ := d.Token().Runtime().DictKeys(d.Ptr())
	return keys
}

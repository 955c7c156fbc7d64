package native

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/hostbind/internal/ffi"
)

// Repr renders obj the way the foreign runtime would print it.
func Repr(obj Borrowed[Any]) string {
	var sb strings.Builder
	writeRepr(&sb, obj, make(map[*ffi.Object]bool))
	return sb.String()
}

// printing holds the dicts on the current path; a dict reached again
// through itself prints as {...}.
func writeRepr(sb *strings.Builder, obj Borrowed[Any], printing map[*ffi.Object]bool) {
	rt := obj.Token().Runtime()
	ob := obj.Ptr()
	t := ffi.TypeOf(ob)

	switch {
	case ffi.Is(ob, rt.None()):
		sb.WriteString("None")
	case ffi.Is(ob, rt.True()):
		sb.WriteString("True")
	case ffi.Is(ob, rt.False()):
		sb.WriteString("False")
	case t.HasFlag(ffi.FlagStrSubclass):
		s, _ := rt.StrValue(ob)
		sb.WriteString(quote(s))
	case t.HasFlag(ffi.FlagIntSubclass):
		n, _ := rt.IntValue(ob)
		sb.WriteString(strconv.FormatInt(n, 10))
	case t.HasFlag(ffi.FlagDictSubclass):
		if printing[ob] {
			sb.WriteString("{...}")
			return
		}
		printing[ob] = true
		defer delete(printing, ob)

		d := borrowRaw[Dict](obj.Token(), ob)
		sb.WriteByte('{')
		for i, k := range DictKeys(d) {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(quote(k))
			sb.WriteString(": ")
			v, _ := DictGetItem(d, k)
			writeRepr(sb, v, printing)
		}
		sb.WriteByte('}')
	default:
		fmt.Fprintf(sb, "<%s object at %#x>", t.QualName(), ffi.Address(ob))
	}
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), "'", `\'`) + "'"
}

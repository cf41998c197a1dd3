package pagination

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/DjordjeVuckovic/pagekit/pkg/apperr"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	comparerType = reflect.TypeOf((*interface{ Compare(any) int })(nil)).Elem()
)

// SortKey is an exported struct field of T, resolved by name, that results can be ordered by.
// A key may walk nested structs ("Metadata.Category"); Path holds the Go field names.
type SortKey struct {
	Property string
	Path     []string

	fields []reflect.StructField
	root   reflect.Type
}

type sortKeyCacheKey struct {
	t    reflect.Type
	name string
}

var sortKeyCache sync.Map

// ResolveSortKey finds the field of T named by property.
//
// The first letter of every path segment is upper-cased so lower-camel names coming from JSON
// payloads resolve; when that still misses, a case-insensitive match is tried.
// The returned error is an *apperr.ArgumentError carrying the property.
func ResolveSortKey[T any](property string) (SortKey, error) {
	return resolveSortKey(reflect.TypeFor[T](), property)
}

func resolveSortKey(t reflect.Type, property string) (SortKey, error) {
	ck := sortKeyCacheKey{t: t, name: property}
	if v, ok := sortKeyCache.Load(ck); ok {
		return v.(SortKey), nil
	}

	key, err := lookupSortKey(t, property)
	if err != nil {
		return SortKey{}, err
	}
	sortKeyCache.Store(ck, key)
	return key, nil
}

func lookupSortKey(t reflect.Type, property string) (SortKey, error) {
	invalid := func(reason string) error {
		return apperr.NewArgumentWrap("sortProperty", property, "invalid sort property", fmt.Errorf("%s", reason))
	}

	if strings.TrimSpace(property) == "" {
		return SortKey{}, invalid("empty property name")
	}

	root := indirectType(t)
	key := SortKey{Property: property, root: root}

	cur := root
	for _, segment := range strings.Split(property, ".") {
		if cur.Kind() != reflect.Struct {
			return SortKey{}, invalid(fmt.Sprintf("%s is not a struct", cur))
		}
		f, ok := findField(cur, strings.TrimSpace(segment))
		if !ok {
			return SortKey{}, invalid(fmt.Sprintf("%s has no field %q", cur, segment))
		}
		key.fields = append(key.fields, f)
		key.Path = append(key.Path, f.Name)
		cur = indirectType(f.Type)
	}

	if !orderable(cur) {
		return SortKey{}, invalid(fmt.Sprintf("field type %s cannot be ordered", cur))
	}
	return key, nil
}

func findField(t reflect.Type, name string) (reflect.StructField, bool) {
	if f, ok := t.FieldByName(upperFirst(name)); ok && f.IsExported() {
		return f, true
	}
	for _, f := range reflect.VisibleFields(t) {
		if f.IsExported() && !f.Anonymous && strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return reflect.StructField{}, false
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func orderable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.String, reflect.Bool:
		return true
	case reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return true
		}
	}
	return t == timeType || t.Implements(comparerType) || t.Implements(stringerType)
}

// Field returns the leaf struct field.
func (k SortKey) Field() reflect.StructField {
	return k.fields[len(k.fields)-1]
}

// Nested reports whether the key walks into a nested struct.
func (k SortKey) Nested() bool {
	return len(k.fields) > 1
}

// TagPath joins the name given by tag on every path segment with sep.
// Segments without the tag fall back to the Go field name.
func (k SortKey) TagPath(tag, sep string) string {
	names := make([]string, 0, len(k.fields))
	for _, f := range k.fields {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "" || name == "-" {
			name = f.Name
		}
		names = append(names, name)
	}
	return strings.Join(names, sep)
}

// Value reads the key from item, which must be a T or *T.
// The second result is false when a nil pointer is met along the path.
func (k SortKey) Value(item any) (reflect.Value, bool) {
	return k.walk(reflect.ValueOf(item))
}

func (k SortKey) walk(v reflect.Value) (reflect.Value, bool) {
	var ok bool
	for _, f := range k.fields {
		if v, ok = deref(v); !ok {
			return reflect.Value{}, false
		}
		var err error
		if v, err = v.FieldByIndexErr(f.Index); err != nil {
			return reflect.Value{}, false
		}
	}
	return deref(v)
}

func deref(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

// Compare orders two items by the key. Missing values (nil pointers) sort first.
func (k SortKey) Compare(a, b any) int {
	av, aok := k.Value(a)
	bv, bok := k.Value(b)
	return compareValues(av, aok, bv, bok)
}

func compareValues(a reflect.Value, aok bool, b reflect.Value, bok bool) int {
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}
	if a.Type() != b.Type() {
		return compareMixed(a, b)
	}

	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		return cmp.Compare(a.String(), b.String())
	case reflect.Bool:
		return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))
	}

	t := a.Type()
	if !a.CanInterface() || !b.CanInterface() {
		return 0
	}
	switch {
	case t == timeType:
		return a.Interface().(time.Time).Compare(b.Interface().(time.Time))
	case t.Implements(comparerType):
		return a.Interface().(interface{ Compare(any) int }).Compare(b.Interface())
	case t.Kind() == reflect.Array && t.Elem().Kind() == reflect.Uint8:
		for i := 0; i < a.Len(); i++ {
			if c := cmp.Compare(a.Index(i).Uint(), b.Index(i).Uint()); c != 0 {
				return c
			}
		}
		return 0
	case t.Implements(stringerType):
		return cmp.Compare(a.Interface().(fmt.Stringer).String(), b.Interface().(fmt.Stringer).String())
	}
	return 0
}

// compareMixed orders values of an interface-typed field whose dynamic types differ: by their
// String form when both are Stringers, then by type name.
func compareMixed(a, b reflect.Value) int {
	if a.CanInterface() && b.CanInterface() {
		as, aok := a.Interface().(fmt.Stringer)
		bs, bok := b.Interface().(fmt.Stringer)
		if aok && bok {
			if c := cmp.Compare(as.String(), bs.String()); c != 0 {
				return c
			}
		}
	}
	return cmp.Compare(a.Type().String(), b.Type().String())
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

package animation

import (
	"reflect"
	"strings"

	"github.com/go-drift/motion/pkg/errors"
	"github.com/go-drift/motion/pkg/graphics"
)

// valueKind is decided once per descriptor build; the integrator switches on
// it and never inspects value types again.
type valueKind uint8

const (
	kindRange valueKind = iota
	kindDelegated
	kindNumber
	kindString
	kindArray
)

func (k valueKind) String() string {
	switch k {
	case kindDelegated:
		return "delegated"
	case kindNumber:
		return "number"
	case kindString:
		return "string"
	case kindArray:
		return "array"
	default:
		return "range"
	}
}

// classify returns the kind of v along with its normalised form: float64 for
// numbers, []float64 for arrays, the value itself otherwise.
func classify(v any) (valueKind, any, error) {
	if a, ok := v.(Animatable); ok {
		return kindDelegated, a, nil
	}
	if _, ok := asNumber(v); ok {
		f, ok := asFinite(v)
		if !ok {
			return 0, nil, &errors.ValueError{To: v, Err: errors.ErrUnsupportedValue}
		}
		return kindNumber, f, nil
	}
	if s, ok := v.(string); ok && isOpaqueString(s) {
		return kindString, s, nil
	}
	if nums, ok := asNumbers(v); ok {
		return kindArray, nums, nil
	}
	if v == nil {
		return 0, nil, &errors.ValueError{To: v, Err: errors.ErrUnsupportedValue}
	}
	return kindRange, v, nil
}

// isOpaqueString reports strings that snap rather than interpolate: no hex
// prefix, no digits and not a color name.
func isOpaqueString(s string) bool {
	return !strings.HasPrefix(s, "#") &&
		!strings.ContainsAny(s, "0123456789") &&
		!graphics.IsColorName(s)
}

// trailing is the fingerprint of an attached property: its own target plus
// the source leaves it follows. Attaching, detaching or a rebuilt source
// container all change it.
type trailing struct {
	target any
	leaves []*Leaf
}

// shallowEqual compares change fingerprints one level deep: scalars by ==,
// slices element-wise, maps key-wise regardless of order. Leaf pointers in a
// delegated payload compare by identity.
func shallowEqual(a, b any) bool {
	switch av := a.(type) {
	case trailing:
		bv, ok := b.(trailing)
		return ok && shallowEqual(av.leaves, bv.leaves) && shallowEqual(av.target, bv.target)
	case []*Leaf:
		bv, ok := b.([]*Leaf)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case []float64:
		bv, ok := b.([]float64)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case map[string]any:
		return mapsEqual(av, b)
	case Values:
		return mapsEqual(av, b)
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.Slice && rb.Kind() == reflect.Slice {
		if ra.Type() != rb.Type() || ra.Len() != rb.Len() {
			return false
		}
		for i := range ra.Len() {
			if !comparableEqual(ra.Index(i).Interface(), rb.Index(i).Interface()) {
				return false
			}
		}
		return true
	}
	return comparableEqual(a, b)
}

func mapsEqual(a map[string]any, b any) bool {
	var bm map[string]any
	switch m := b.(type) {
	case map[string]any:
		bm = m
	case Values:
		bm = m
	default:
		return false
	}
	if len(a) != len(bm) {
		return false
	}
	for k, av := range a {
		bv, ok := bm[k]
		if !ok || !comparableEqual(av, bv) {
			return false
		}
	}
	return true
}

// comparableEqual is == that treats incomparable values as unequal instead
// of panicking.
func comparableEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

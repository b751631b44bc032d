package animation

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-drift/motion/pkg/errors"
	"github.com/go-drift/motion/pkg/graphics"
)

// Interpolation maps the [0, 1] progress held by a parent [Value] to an
// output range. It is how properties that are not plain numbers (colors,
// "10px"-style strings, sequences and maps of those) are animated: the
// integrator only ever moves the parent's number.
//
// Supported output pairs:
//   - two numbers
//   - two color strings (hex, rgb()/rgba(), named), blended in RGB
//   - two strings with the same count of embedded numbers, e.g. "0px 4px" → "8px 0px"
//   - two sequences of equal length, or two maps with the same keys, of the above
//
// Results have a stable shape at every progress: numbers are float64, strings
// are strings, sequences are []any and maps are map[string]any. At exactly 0
// and 1 each number and string is its endpoint verbatim, so a settled "#00f"
// reads back as "#00f" rather than its rgba() form.
type Interpolation struct {
	parent *Value
	from   any
	to     any
	lerp   lerpFunc
}

type lerpFunc func(t float64) any

func newInterpolation(parent *Value, from, to any) (*Interpolation, error) {
	fn, err := buildLerp(from, to)
	if err != nil {
		return nil, err
	}
	return &Interpolation{parent: parent, from: from, to: to, lerp: fn}, nil
}

// Value evaluates the interpolation at the parent's current progress.
func (i *Interpolation) Value() any {
	return i.Calc(i.parent.Float())
}

// Calc evaluates the interpolation at an arbitrary progress. Values outside
// [0, 1] extrapolate.
func (i *Interpolation) Calc(t float64) any {
	return i.lerp(t)
}

// UpdateRange re-targets the interpolation. On error the previous range is kept.
func (i *Interpolation) UpdateRange(from, to any) error {
	fn, err := buildLerp(from, to)
	if err != nil {
		return err
	}
	i.from, i.to, i.lerp = from, to, fn
	return nil
}

// Range returns the current output endpoints.
func (i *Interpolation) Range() (from, to any) {
	return i.from, i.to
}

// Parent returns the progress container driving the interpolation.
func (i *Interpolation) Parent() *Value {
	return i.parent
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b, t float64) float64 {
	return a + (b-a)*t
}

func buildLerp(from, to any) (lerpFunc, error) {
	if a, ok := asFinite(from); ok {
		b, ok := asFinite(to)
		if !ok {
			return nil, mismatch(from, to)
		}
		return func(t float64) any {
			switch t {
			case 0:
				return a
			case 1:
				return b
			}
			return LerpFloat64(a, b, t)
		}, nil
	}

	switch a := from.(type) {
	case string:
		b, ok := to.(string)
		if !ok {
			return nil, mismatch(from, to)
		}
		fn, err := lerpStrings(a, b)
		if err != nil {
			return nil, err
		}
		return func(t float64) any {
			switch t {
			case 0:
				return a
			case 1:
				return b
			}
			return fn(t)
		}, nil
	case map[string]any:
		return lerpMaps(a, to)
	case Values:
		return lerpMaps(a, to)
	}

	if seqA, ok := asSequence(from); ok {
		seqB, ok := asSequence(to)
		if !ok || len(seqA) != len(seqB) {
			return nil, mismatch(from, to)
		}
		fns := make([]lerpFunc, len(seqA))
		for k := range seqA {
			fn, err := buildLerp(seqA[k], seqB[k])
			if err != nil {
				return nil, err
			}
			fns[k] = fn
		}
		return func(t float64) any {
			out := make([]any, len(fns))
			for k, fn := range fns {
				out[k] = fn(t)
			}
			return out
		}, nil
	}

	return nil, &errors.ValueError{From: from, To: to, Err: errors.ErrUnsupportedValue}
}

func lerpMaps(a map[string]any, to any) (lerpFunc, error) {
	var b map[string]any
	switch m := to.(type) {
	case map[string]any:
		b = m
	case Values:
		b = m
	default:
		return nil, mismatch(a, to)
	}
	if len(a) != len(b) {
		return nil, mismatch(a, to)
	}
	fns := make(map[string]lerpFunc, len(a))
	for k, av := range a {
		bv, ok := b[k]
		if !ok {
			return nil, mismatch(a, to)
		}
		fn, err := buildLerp(av, bv)
		if err != nil {
			return nil, err
		}
		fns[k] = fn
	}
	return func(t float64) any {
		out := make(map[string]any, len(fns))
		for k, fn := range fns {
			out[k] = fn(t)
		}
		return out
	}, nil
}

var numberPattern = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)

func lerpStrings(a, b string) (lerpFunc, error) {
	if ca, ok := graphics.ParseColor(a); ok {
		if cb, ok := graphics.ParseColor(b); ok {
			return func(t float64) any { return ca.Lerp(cb, t).CSS() }, nil
		}
	}

	na, nb := graphics.NormalizeColors(a), graphics.NormalizeColors(b)
	numsA := numberPattern.FindAllString(na, -1)
	numsB := numberPattern.FindAllString(nb, -1)
	if len(numsA) == 0 || len(numsA) != len(numsB) {
		return nil, mismatch(a, b)
	}
	starts := make([]float64, len(numsA))
	ends := make([]float64, len(numsB))
	for k := range numsA {
		starts[k], _ = strconv.ParseFloat(numsA[k], 64)
		ends[k], _ = strconv.ParseFloat(numsB[k], 64)
	}
	// The target string provides the surrounding text.
	parts := numberPattern.Split(nb, -1)

	return func(t float64) any {
		var sb strings.Builder
		for k, part := range parts {
			sb.WriteString(part)
			if k < len(starts) {
				sb.WriteString(formatNumber(LerpFloat64(starts[k], ends[k], t)))
			}
		}
		return sb.String()
	}, nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(math.Round(f*1e4)/1e4, 'f', -1, 64)
}

func asSequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []float64:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	}
	return nil, false
}

func mismatch(from, to any) error {
	return &errors.ValueError{From: from, To: to, Err: errors.ErrRangeMismatch}
}

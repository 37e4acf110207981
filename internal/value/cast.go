package value

import (
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var widthByName = map[string]struct {
	w        Width
	unsigned bool
}{
	"i8": {W8, false}, "i16": {W16, false}, "i32": {W32, false}, "i64": {W64, false},
	"u8": {W8, true}, "u16": {W16, true}, "u32": {W32, true}, "u64": {W64, true},
}

func isNumeric(v Value) bool {
	switch v.Kind() {
	case KindBool, KindInt, KindFloat, KindFixed, KindCurrency:
		return true
	default:
		return false
	}
}

// Cast implements `expr as target` per spec.md §4.1.
func Cast(v Value, target string) (Value, error) {
	name := strings.ToLower(target)

	switch name {
	case "bool", "boolean":
		return Bool{Val: v.Truthy()}, nil
	case "string", "str":
		return String{Val: v.String()}, nil
	case "array":
		return castToArray(v)
	case "object":
		return castToObject(v)
	case "float":
		return castToFloat(v)
	case "fixed":
		return castToFixed(v)
	case "currency":
		return castToCurrency(v)
	case "range":
		return nil, &TypeError{Message: "cannot cast to Range"}
	case "int", "integer":
		return castToInt(v, W64, false)
	default:
		if spec, ok := widthByName[name]; ok {
			return castToInt(v, spec.w, spec.unsigned)
		}
		return nil, &TypeError{Message: "unknown cast target: " + target}
	}
}

// castToArray implements "Any T -> Array yields [T]" and "Range ->
// Array materializes the inclusive sequence".
func castToArray(v Value) (Value, error) {
	switch t := v.(type) {
	case Array:
		return t, nil
	case Range:
		return t.AsArray()
	default:
		return Array{Elems: []Value{v}}, nil
	}
}

// castToObject implements the symmetric Object rule: "Any T -> Array
// yields [T]... Symmetric rule for Object with synthesized integer
// key 0."
func castToObject(v Value) (Value, error) {
	if o, ok := v.(Object); ok {
		return o, nil
	}
	return Object{Entries: []ObjectEntry{{Key: NewInt(0), Val: v}}}, nil
}

// unwrapSingleton implements "Array -> T requires length=1 and
// recurses on the sole element (fails otherwise)" and its Object
// counterpart, used when casting a collection down to a scalar kind.
func unwrapSingleton(v Value) (Value, error) {
	switch t := v.(type) {
	case Array:
		if len(t.Elems) != 1 {
			return nil, &TypeError{Message: "cannot cast Array of length != 1 to a scalar"}
		}
		return t.Elems[0], nil
	case Object:
		if len(t.Entries) != 1 {
			return nil, &TypeError{Message: "cannot cast Object with != 1 entry to a scalar"}
		}
		return t.Entries[0].Val, nil
	case Range:
		arr, err := t.AsArray()
		if err != nil {
			return nil, err
		}
		return unwrapSingleton(arr)
	default:
		return v, nil
	}
}

func castToFloat(v Value) (Value, error) {
	if IsCollection(v) {
		inner, err := unwrapSingleton(v)
		if err != nil {
			return nil, err
		}
		return castToFloat(inner)
	}
	switch t := v.(type) {
	case Bool:
		return t.AsInt().asFloat(), nil
	case Int:
		return t.asFloat(), nil
	case Float:
		return t, nil
	case Fixed:
		f, _ := t.Val.Float64()
		return Float{Val: f}, nil
	case Currency:
		f, _ := t.Val.Float64()
		return Float{Val: f}, nil
	default:
		return nil, &TypeError{Message: "cannot cast " + v.Kind().String() + " to Float"}
	}
}

func (i Int) asFloat() Value {
	if i.Signed {
		return Float{Val: float64(i.Val)}
	}
	return Float{Val: float64(i.Unsigned())}
}

func castToFixed(v Value) (Value, error) {
	if IsCollection(v) {
		inner, err := unwrapSingleton(v)
		if err != nil {
			return nil, err
		}
		return castToFixed(inner)
	}
	switch t := v.(type) {
	case Bool:
		return Fixed{Val: decimal.NewFromInt(int64(boolToInt(t.Val)))}, nil
	case Int:
		if t.Signed {
			return Fixed{Val: decimal.NewFromInt(t.Val)}, nil
		}
		var bi big.Int
		bi.SetUint64(t.Unsigned())
		return Fixed{Val: decimal.NewFromBigInt(&bi, 0)}, nil
	case Float:
		return Fixed{Val: decimal.NewFromFloat(t.Val)}, nil
	case Fixed:
		return t, nil
	case Currency:
		return t.StripTag(), nil
	default:
		return nil, &TypeError{Message: "cannot cast " + v.Kind().String() + " to Fixed"}
	}
}

func castToCurrency(v Value) (Value, error) {
	if IsCollection(v) {
		inner, err := unwrapSingleton(v)
		if err != nil {
			return nil, err
		}
		return castToCurrency(inner)
	}
	if c, ok := v.(Currency); ok {
		return c, nil
	}
	fixed, err := castToFixed(v)
	if err != nil {
		return nil, err
	}
	return Currency{Val: fixed.(Fixed).Val, Tag: ""}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// castToInt implements numeric<->numeric casts (truncating toward
// zero, Float->Int truncates) with saturation at the target width's
// limits, and rejects non-numeric non-collection sources per
// spec.md §4.1.
func castToInt(v Value, w Width, unsigned bool) (Value, error) {
	if IsCollection(v) {
		inner, err := unwrapSingleton(v)
		if err != nil {
			return nil, err
		}
		return castToInt(inner, w, unsigned)
	}
	if !isNumeric(v) {
		return nil, &TypeError{Message: "cannot cast " + v.Kind().String() + " to Int"}
	}
	var raw int64
	switch t := v.(type) {
	case Bool:
		raw = int64(boolToInt(t.Val))
	case Int:
		if t.Signed {
			raw = t.Val
		} else {
			raw = int64(t.Unsigned())
		}
	case Float:
		raw = truncateFloatToInt64(t.Val)
	case Fixed:
		raw = t.Val.Truncate(0).IntPart()
	case Currency:
		raw = t.Val.Truncate(0).IntPart()
	}
	return saturate(raw, w, unsigned), nil
}

func truncateFloatToInt64(f float64) int64 {
	if math.IsNaN(f) {
		return 0
	}
	t := math.Trunc(f)
	if t >= math.MaxInt64 {
		return math.MaxInt64
	}
	if t <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(t)
}

// saturate clamps raw to the representable range of (w, unsigned)
// rather than silently wrapping, per "may truncate toward zero,
// saturate at width limits".
func saturate(raw int64, w Width, unsigned bool) Int {
	bits := w.Bits()
	if unsigned {
		var max uint64 = widthMask(w)
		var u uint64
		if raw < 0 {
			u = 0
		} else {
			u = uint64(raw)
			if u > max {
				u = max
			}
		}
		return Int{Val: int64(u), Width: w, Signed: false}
	}
	maxV := int64(1)<<(bits-1) - 1
	minV := -(int64(1) << (bits - 1))
	if bits == 64 {
		maxV = math.MaxInt64
		minV = math.MinInt64
	}
	if raw > maxV {
		raw = maxV
	}
	if raw < minV {
		raw = minV
	}
	return Int{Val: raw, Width: w, Signed: true}
}

package interp

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lavendeux/lavendish/internal/value"
)

// applyBinary dispatches a two-operand operator (spec.md §4.1/§4.2).
// Equality/ordering and arithmetic/bitwise/matching each have their own
// promotion rule, so they're kept as separate helper families rather
// than one combined switch.
func applyBinary(op string, l, r value.Value) (value.Value, error) {
	switch op {
	case "==":
		eq, err := value.Equals(l, r)
		if err != nil {
			return nil, err
		}
		return value.NewBool(eq), nil
	case "!=":
		eq, err := value.Equals(l, r)
		if err != nil {
			return nil, err
		}
		return value.NewBool(!eq), nil
	case "===":
		return value.NewBool(value.StrictEquals(l, r)), nil
	case "!==":
		return value.NewBool(!value.StrictEquals(l, r)), nil
	case "<", ">", "<=", ">=":
		c, err := value.Compare(l, r)
		if err != nil {
			return nil, err
		}
		switch op {
		case "<":
			return value.NewBool(c < 0), nil
		case ">":
			return value.NewBool(c > 0), nil
		case "<=":
			return value.NewBool(c <= 0), nil
		default:
			return value.NewBool(c >= 0), nil
		}
	case "contains", "matches", "is", "starts_with", "ends_with":
		return applyMatching(op, l, r)
	case "+", "-", "*", "/", "%", "**":
		return applyArithmetic(op, l, r)
	case "&", "|", "^", "<<", ">>", "llshift", "lrshift":
		return applyBitwise(op, l, r)
	case "&&":
		return value.NewBool(l.Truthy() && r.Truthy()), nil
	case "||":
		return value.NewBool(l.Truthy() || r.Truthy()), nil
	default:
		return nil, &value.TypeError{Message: "unknown operator " + op}
	}
}

func applyArithmetic(op string, l, r value.Value) (value.Value, error) {
	if l.Kind() == value.KindNil || r.Kind() == value.KindNil {
		return nil, &value.TypeError{Op: op, Left: l.Kind(), Right: r.Kind(), Message: "Nil does not participate in arithmetic"}
	}
	pl, pr, err := value.Promote(l, r)
	if err != nil {
		return nil, err
	}
	pl, pr = value.ReconcileCurrencyTags(pl, pr)

	switch x := pl.(type) {
	case value.Bool:
		return intArith(op, x.AsInt(), pr.(value.Bool).AsInt())
	case value.Int:
		return intArith(op, x, pr.(value.Int))
	case value.Float:
		return floatArith(op, x.Val, pr.(value.Float).Val)
	case value.Fixed:
		return fixedArith(op, x.Val, pr.(value.Fixed).Val)
	case value.Currency:
		res, err := fixedArith(op, x.Val, pr.(value.Currency).Val)
		if err != nil {
			return nil, err
		}
		return value.Currency{Val: res.(value.Fixed).Val, Tag: x.Tag}, nil
	case value.Array:
		if op != "+" {
			return nil, &value.TypeError{Op: op, Left: pl.Kind(), Right: pr.Kind()}
		}
		y := pr.(value.Array)
		out := make([]value.Value, 0, len(x.Elems)+len(y.Elems))
		out = append(out, x.Elems...)
		out = append(out, y.Elems...)
		return value.Array{Elems: out}, nil
	case value.Object:
		if op != "+" {
			return nil, &value.TypeError{Op: op, Left: pl.Kind(), Right: pr.Kind()}
		}
		y := pr.(value.Object)
		merged := value.Object{}
		for _, e := range x.Entries {
			merged.Set(e.Key, e.Val)
		}
		for _, e := range y.Entries {
			merged.Set(e.Key, e.Val)
		}
		return merged, nil
	case value.String:
		if op != "+" {
			return nil, &value.TypeError{Op: op, Left: pl.Kind(), Right: pr.Kind()}
		}
		return value.String{Val: x.Val + pr.(value.String).Val}, nil
	default:
		return nil, &value.TypeError{Op: op, Left: pl.Kind(), Right: pr.Kind()}
	}
}

func intArith(op string, a, b value.Int) (value.Value, error) {
	a, b = value.PromoteInts(a, b)
	switch op {
	case "+":
		return value.Int{Val: a.Val + b.Val, Width: a.Width, Signed: a.Signed}.Wrap(), nil
	case "-":
		return value.Int{Val: a.Val - b.Val, Width: a.Width, Signed: a.Signed}.Wrap(), nil
	case "*":
		return value.Int{Val: a.Val * b.Val, Width: a.Width, Signed: a.Signed}.Wrap(), nil
	case "/":
		if b.Val == 0 {
			return nil, &value.DivisionByZeroError{}
		}
		var q int64
		if a.Signed {
			q = a.Val / b.Val
		} else {
			q = int64(a.Unsigned() / b.Unsigned())
		}
		return value.Int{Val: q, Width: a.Width, Signed: a.Signed}.Wrap(), nil
	case "%":
		if b.Val == 0 {
			return nil, &value.DivisionByZeroError{}
		}
		var m int64
		if a.Signed {
			m = a.Val % b.Val
		} else {
			m = int64(a.Unsigned() % b.Unsigned())
		}
		return value.Int{Val: m, Width: a.Width, Signed: a.Signed}.Wrap(), nil
	case "**":
		if b.Val < 0 {
			return nil, &value.ValueError{Message: "negative exponent for integer power"}
		}
		result := int64(1)
		for n := int64(0); n < b.Val; n++ {
			result *= a.Val
		}
		return value.Int{Val: result, Width: a.Width, Signed: a.Signed}.Wrap(), nil
	default:
		return nil, &value.TypeError{Message: "unsupported int operator " + op}
	}
}

func floatArith(op string, a, b float64) (value.Value, error) {
	switch op {
	case "+":
		return value.Float{Val: a + b}, nil
	case "-":
		return value.Float{Val: a - b}, nil
	case "*":
		return value.Float{Val: a * b}, nil
	case "/":
		if b == 0 {
			return nil, &value.DivisionByZeroError{}
		}
		return value.Float{Val: a / b}, nil
	case "%":
		if b == 0 {
			return nil, &value.DivisionByZeroError{}
		}
		return value.Float{Val: math.Mod(a, b)}, nil
	case "**":
		return value.Float{Val: math.Pow(a, b)}, nil
	default:
		return nil, &value.TypeError{Message: "unsupported float operator " + op}
	}
}

func fixedArith(op string, a, b decimal.Decimal) (value.Value, error) {
	switch op {
	case "+":
		return value.Fixed{Val: a.Add(b)}, nil
	case "-":
		return value.Fixed{Val: a.Sub(b)}, nil
	case "*":
		return value.Fixed{Val: a.Mul(b)}, nil
	case "/":
		if b.IsZero() {
			return nil, &value.DivisionByZeroError{}
		}
		return value.Fixed{Val: a.Div(b)}, nil
	case "%":
		if b.IsZero() {
			return nil, &value.DivisionByZeroError{}
		}
		return value.Fixed{Val: a.Mod(b)}, nil
	case "**":
		base, _ := a.Float64()
		exp, _ := b.Float64()
		return value.Fixed{Val: decimal.NewFromFloat(math.Pow(base, exp))}, nil
	default:
		return nil, &value.TypeError{Message: "unsupported fixed operator " + op}
	}
}

func asIntOperand(v value.Value) (value.Int, bool) {
	switch t := v.(type) {
	case value.Int:
		return t, true
	case value.Bool:
		return t.AsInt(), true
	default:
		return value.Int{}, false
	}
}

func applyBitwise(op string, l, r value.Value) (value.Value, error) {
	li, ok1 := asIntOperand(l)
	ri, ok2 := asIntOperand(r)
	if !ok1 || !ok2 {
		return nil, &value.TypeError{Op: op, Left: l.Kind(), Right: r.Kind(), Message: "bitwise/shift operators require Int or Bool operands"}
	}
	switch op {
	case "&", "|", "^":
		li, ri = value.PromoteInts(li, ri)
		var raw int64
		switch op {
		case "&":
			raw = li.Val & ri.Val
		case "|":
			raw = li.Val | ri.Val
		default:
			raw = li.Val ^ ri.Val
		}
		return value.Int{Val: raw, Width: li.Width, Signed: li.Signed}.Wrap(), nil
	case "<<":
		return value.Int{Val: li.Val << uint(ri.Val), Width: li.Width, Signed: li.Signed}.Wrap(), nil
	case ">>":
		if li.Signed {
			return value.Int{Val: li.Val >> uint(ri.Val), Width: li.Width, Signed: li.Signed}.Wrap(), nil
		}
		return value.Int{Val: int64(li.Unsigned() >> uint(ri.Val)), Width: li.Width, Signed: li.Signed}.Wrap(), nil
	case "llshift":
		return value.Int{Val: int64(li.Unsigned() << uint(ri.Val)), Width: li.Width, Signed: li.Signed}.Wrap(), nil
	case "lrshift":
		return value.Int{Val: int64(li.Unsigned() >> uint(ri.Val)), Width: li.Width, Signed: li.Signed}.Wrap(), nil
	default:
		return nil, &value.TypeError{Message: "unsupported bitwise operator " + op}
	}
}

func applyMatching(op string, l, r value.Value) (value.Value, error) {
	switch op {
	case "contains":
		return matchContains(l, r)
	case "starts_with":
		return value.NewBool(strings.HasPrefix(l.String(), r.String())), nil
	case "ends_with":
		return value.NewBool(strings.HasSuffix(l.String(), r.String())), nil
	case "is":
		return value.NewBool(strings.EqualFold(l.Kind().String(), r.String())), nil
	case "matches":
		re, err := regexp.Compile(r.String())
		if err != nil {
			return nil, &value.ValueError{Message: "malformed regex: " + err.Error()}
		}
		return value.NewBool(re.MatchString(l.String())), nil
	default:
		return nil, &value.TypeError{Message: "unsupported matching operator " + op}
	}
}

func matchContains(l, r value.Value) (value.Value, error) {
	switch t := l.(type) {
	case value.Array:
		for _, e := range t.Elems {
			eq, err := value.Equals(e, r)
			if err != nil {
				return nil, err
			}
			if eq {
				return value.NewBool(true), nil
			}
		}
		return value.NewBool(false), nil
	case value.Object:
		_, ok := t.Get(r)
		return value.NewBool(ok), nil
	case value.String:
		return value.NewBool(strings.Contains(t.Val, r.String())), nil
	default:
		return nil, &value.TypeError{Message: "'contains' requires a collection or String left operand"}
	}
}

func applyUnary(op string, v value.Value) (value.Value, error) {
	switch op {
	case "!":
		return value.NewBool(!v.Truthy()), nil
	case "-":
		switch t := v.(type) {
		case value.Int:
			return value.Int{Val: -t.Val, Width: t.Width, Signed: true}.Wrap(), nil
		case value.Float:
			return value.Float{Val: -t.Val}, nil
		case value.Fixed:
			return value.Fixed{Val: t.Val.Neg()}, nil
		case value.Currency:
			return value.Currency{Val: t.Val.Neg(), Tag: t.Tag}, nil
		case value.Bool:
			return value.Int{Val: -t.AsInt().Val, Width: value.W8, Signed: true}.Wrap(), nil
		default:
			return nil, &value.TypeError{Message: "unary '-' requires a numeric operand"}
		}
	case "~":
		i, ok := asIntOperand(v)
		if !ok {
			return nil, &value.TypeError{Message: "unary '~' requires an Int or Bool operand"}
		}
		return value.Int{Val: ^i.Val, Width: i.Width, Signed: i.Signed}.Wrap(), nil
	default:
		return nil, &value.TypeError{Message: "unsupported unary operator " + op}
	}
}

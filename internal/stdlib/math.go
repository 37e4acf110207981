package stdlib

import (
	"math"
	"math/rand"

	"github.com/lavendeux/lavendish/internal/extension"
	"github.com/lavendeux/lavendish/internal/value"
)

// registerMathBuiltins registers elementary math, rounding, and
// number-theory helpers over Lavendish's numeric Kinds.
func registerMathBuiltins(reg *extension.Registry) error {
	funcs := map[string]struct {
		fn   extension.NativeFunc
		args []string
		ret  string
	}{
		"abs":      {builtinAbs, []string{"numeric"}, ""},
		"ceil":     {builtinCeil, []string{"numeric"}, "int"},
		"floor":    {builtinFloor, []string{"numeric"}, "int"},
		"round":    {builtinRound, []string{"numeric"}, "int"},
		"round_to": {builtinRoundTo, []string{"numeric", "int"}, "float"},
		"trunc":    {builtinTrunc, []string{"numeric"}, "int"},
		"sqrt":     {builtinSqrt, []string{"numeric"}, "float"},
		"pow":      {builtinPow, []string{"numeric", "numeric"}, "float"},
		"sign":     {builtinSign, []string{"numeric"}, "int"},
		"min":      {builtinMin, []string{"array"}, ""},
		"max":      {builtinMax, []string{"array"}, ""},
		"sum":      {builtinSum, []string{"array"}, ""},
		"avg":      {builtinAvg, []string{"array"}, "float"},
		"gcd":      {builtinGcd, []string{"int", "int"}, "int"},
		"lcm":      {builtinLcm, []string{"int", "int"}, "int"},
		"factorial": {builtinFactorial, []string{"int"}, "int"},
		"is_prime":  {builtinIsPrime, []string{"int"}, "bool"},
		"random":    {builtinRandom, nil, "float"},
		"randint":   {builtinRandInt, []string{"int", "int"}, "int"},
	}
	for name, f := range funcs {
		if err := reg.RegisterFunction(name, f.fn, f.args, f.ret, ""); err != nil {
			return err
		}
	}
	return nil
}

func builtinAbs(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("abs", 1, len(args))
	}
	switch t := args[0].(type) {
	case value.Int:
		if t.Signed && t.Val < 0 {
			return value.Int{Val: -t.Val, Width: t.Width, Signed: true}.Wrap(), nil
		}
		return t, nil
	case value.Float:
		return value.Float{Val: math.Abs(t.Val)}, nil
	default:
		f, err := asFloat("abs", args[0])
		if err != nil {
			return nil, err
		}
		return value.Float{Val: math.Abs(f)}, nil
	}
}

func builtinCeil(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("ceil", 1, len(args))
	}
	f, err := asFloat("ceil", args[0])
	if err != nil {
		return nil, err
	}
	return value.NewInt(int64(math.Ceil(f))), nil
}

func builtinFloor(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("floor", 1, len(args))
	}
	f, err := asFloat("floor", args[0])
	if err != nil {
		return nil, err
	}
	return value.NewInt(int64(math.Floor(f))), nil
}

func builtinRound(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("round", 1, len(args))
	}
	f, err := asFloat("round", args[0])
	if err != nil {
		return nil, err
	}
	return value.NewInt(int64(math.Round(f))), nil
}

// builtinRoundTo rounds to `places` decimal places. A separate function
// from round rather than an optional second argument: the registry
// dispatches native functions at a single fixed arity per registration
// (internal/interp/call.go's callNative checks len(args) against the
// registered ArgKinds before the function ever runs), so there is no
// variadic path available here.
func builtinRoundTo(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityError("round_to", 2, len(args))
	}
	f, err := asFloat("round_to", args[0])
	if err != nil {
		return nil, err
	}
	places, err := asInt("round_to", args[1])
	if err != nil {
		return nil, err
	}
	scale := math.Pow(10, float64(places))
	return value.NewFloat(math.Round(f*scale) / scale), nil
}

func builtinTrunc(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("trunc", 1, len(args))
	}
	f, err := asFloat("trunc", args[0])
	if err != nil {
		return nil, err
	}
	return value.NewInt(int64(math.Trunc(f))), nil
}

func builtinSqrt(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("sqrt", 1, len(args))
	}
	f, err := asFloat("sqrt", args[0])
	if err != nil {
		return nil, err
	}
	if f < 0 {
		return nil, &value.ValueError{Message: "sqrt of a negative number"}
	}
	return value.NewFloat(math.Sqrt(f)), nil
}

func builtinPow(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityError("pow", 2, len(args))
	}
	base, err := asFloat("pow", args[0])
	if err != nil {
		return nil, err
	}
	exp, err := asFloat("pow", args[1])
	if err != nil {
		return nil, err
	}
	return value.NewFloat(math.Pow(base, exp)), nil
}

func builtinSign(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("sign", 1, len(args))
	}
	f, err := asFloat("sign", args[0])
	if err != nil {
		return nil, err
	}
	switch {
	case f > 0:
		return value.NewInt(1), nil
	case f < 0:
		return value.NewInt(-1), nil
	default:
		return value.NewInt(0), nil
	}
}

func builtinMin(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("min", 1, len(args))
	}
	arr, err := asArray("min", args[0])
	if err != nil {
		return nil, err
	}
	if len(arr.Elems) == 0 {
		return nil, &value.ValueError{Message: "min requires at least one element"}
	}
	return reduceByCompare(arr.Elems, -1)
}

func builtinMax(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("max", 1, len(args))
	}
	arr, err := asArray("max", args[0])
	if err != nil {
		return nil, err
	}
	if len(arr.Elems) == 0 {
		return nil, &value.ValueError{Message: "max requires at least one element"}
	}
	return reduceByCompare(arr.Elems, 1)
}

func reduceByCompare(vals []value.Value, want int) (value.Value, error) {
	best := vals[0]
	for _, v := range vals[1:] {
		c, err := value.Compare(v, best)
		if err != nil {
			return nil, err
		}
		if (want < 0 && c < 0) || (want > 0 && c > 0) {
			best = v
		}
	}
	return best, nil
}

func builtinSum(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("sum", 1, len(args))
	}
	arr, err := asArray("sum", args[0])
	if err != nil {
		return nil, err
	}
	total := 0.0
	for _, e := range arr.Elems {
		f, err := asFloat("sum", e)
		if err != nil {
			return nil, err
		}
		total += f
	}
	return value.NewFloat(total), nil
}

func builtinAvg(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("avg", 1, len(args))
	}
	arr, err := asArray("avg", args[0])
	if err != nil {
		return nil, err
	}
	if len(arr.Elems) == 0 {
		return nil, &value.ValueError{Message: "avg of an empty array"}
	}
	sum, err := builtinSum(args)
	if err != nil {
		return nil, err
	}
	return value.NewFloat(sum.(value.Float).Val / float64(len(arr.Elems))), nil
}

func builtinGcd(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityError("gcd", 2, len(args))
	}
	a, err := asInt("gcd", args[0])
	if err != nil {
		return nil, err
	}
	b, err := asInt("gcd", args[1])
	if err != nil {
		return nil, err
	}
	return value.NewInt(gcd64(a, b)), nil
}

func gcd64(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func builtinLcm(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityError("lcm", 2, len(args))
	}
	a, err := asInt("lcm", args[0])
	if err != nil {
		return nil, err
	}
	b, err := asInt("lcm", args[1])
	if err != nil {
		return nil, err
	}
	g := gcd64(a, b)
	if g == 0 {
		return value.NewInt(0), nil
	}
	return value.NewInt(a / g * b), nil
}

func builtinFactorial(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("factorial", 1, len(args))
	}
	n, err := asInt("factorial", args[0])
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &value.ValueError{Message: "factorial of a negative number"}
	}
	result := int64(1)
	for i := int64(2); i <= n; i++ {
		result *= i
	}
	return value.NewInt(result), nil
}

func builtinIsPrime(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("is_prime", 1, len(args))
	}
	n, err := asInt("is_prime", args[0])
	if err != nil {
		return nil, err
	}
	if n < 2 {
		return value.NewBool(false), nil
	}
	for i := int64(2); i*i <= n; i++ {
		if n%i == 0 {
			return value.NewBool(false), nil
		}
	}
	return value.NewBool(true), nil
}

func builtinRandom(args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return nil, arityError("random", 0, len(args))
	}
	return value.NewFloat(rand.Float64()), nil
}

func builtinRandInt(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityError("randint", 2, len(args))
	}
	lo, err := asInt("randint", args[0])
	if err != nil {
		return nil, err
	}
	hi, err := asInt("randint", args[1])
	if err != nil {
		return nil, err
	}
	if hi < lo {
		return nil, &value.ValueError{Message: "randint: upper bound below lower bound"}
	}
	return value.NewInt(lo + rand.Int63n(hi-lo+1)), nil
}

package extension

import (
	"fmt"
	"reflect"

	"github.com/lavendeux/lavendish/internal/value"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// WrapFunc adapts an arbitrary Go function into a NativeFunc, the
// mechanism behind pkg/lavendish.Engine.RegisterFunction(name string,
// fn any) (spec.md §6).
//
// fn must be a func accepting zero or more parameters and returning
// either nothing, a single value, a single error, or (value, error).
// Each Go parameter type is converted to/from value.Value using the
// same rules Cast applies at the script boundary: bool, any integer
// width, any float width, string, slices (-> Array), and
// map[string]T (-> Object).
func WrapFunc(fn any) (NativeFunc, error) {
	rv := reflect.ValueOf(fn)
	rt := rv.Type()
	if rt.Kind() != reflect.Func {
		return nil, fmt.Errorf("RegisterFunction: %v is not a function", rt)
	}
	if rt.IsVariadic() {
		return nil, fmt.Errorf("RegisterFunction: variadic functions are not supported")
	}
	if err := validateReturns(rt); err != nil {
		return nil, err
	}

	return func(args []value.Value) (value.Value, error) {
		if len(args) != rt.NumIn() {
			return nil, &value.TypeError{Message: fmt.Sprintf(
				"registered function expects %d argument(s), got %d", rt.NumIn(), len(args))}
		}
		in := make([]reflect.Value, rt.NumIn())
		for i := range in {
			goArg, err := valueToGo(args[i], rt.In(i))
			if err != nil {
				return nil, err
			}
			in[i] = goArg
		}
		out := rv.Call(in)
		return splitReturns(rt, out)
	}, nil
}

func validateReturns(rt reflect.Type) error {
	switch rt.NumOut() {
	case 0, 1:
		return nil
	case 2:
		if !rt.Out(1).Implements(errorType) {
			return fmt.Errorf("RegisterFunction: second return value must be error")
		}
		return nil
	default:
		return fmt.Errorf("RegisterFunction: at most two return values are supported")
	}
}

func splitReturns(rt reflect.Type, out []reflect.Value) (value.Value, error) {
	switch rt.NumOut() {
	case 0:
		return value.NilValue, nil
	case 1:
		if rt.Out(0).Implements(errorType) {
			if out[0].IsNil() {
				return value.NilValue, nil
			}
			return nil, out[0].Interface().(error)
		}
		return goToValue(out[0])
	default:
		var callErr error
		if !out[1].IsNil() {
			callErr = out[1].Interface().(error)
		}
		if callErr != nil {
			return nil, callErr
		}
		return goToValue(out[0])
	}
}

// valueToGo converts a Lavendish Value into the reflect.Value a
// registered Go function's parameter expects.
func valueToGo(v value.Value, want reflect.Type) (reflect.Value, error) {
	switch want.Kind() {
	case reflect.Bool:
		return reflect.ValueOf(v.Truthy()).Convert(want), nil
	case reflect.String:
		s, ok := v.(value.String)
		if !ok {
			cast, err := value.Cast(v, "string")
			if err != nil {
				return reflect.Value{}, err
			}
			s = cast.(value.String)
		}
		return reflect.ValueOf(s.Val).Convert(want), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		cast, err := value.Cast(v, "int")
		if err != nil {
			return reflect.Value{}, err
		}
		i := cast.(value.Int)
		n := i.Val
		if !i.Signed {
			n = int64(i.Unsigned())
		}
		return reflect.ValueOf(n).Convert(want), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		cast, err := value.Cast(v, "int")
		if err != nil {
			return reflect.Value{}, err
		}
		i := cast.(value.Int)
		return reflect.ValueOf(i.Unsigned()).Convert(want), nil
	case reflect.Float32, reflect.Float64:
		cast, err := value.Cast(v, "float")
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(cast.(value.Float).Val).Convert(want), nil
	case reflect.Slice:
		arr, ok := v.(value.Array)
		if !ok {
			return reflect.Value{}, &value.TypeError{Message: "expected an Array argument, got " + v.Kind().String()}
		}
		out := reflect.MakeSlice(want, len(arr.Elems), len(arr.Elems))
		for i, e := range arr.Elems {
			elem, err := valueToGo(e, want.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(elem)
		}
		return out, nil
	case reflect.Map:
		obj, ok := v.(value.Object)
		if !ok {
			return reflect.Value{}, &value.TypeError{Message: "expected an Object argument, got " + v.Kind().String()}
		}
		out := reflect.MakeMapWithSize(want, len(obj.Entries))
		for _, e := range obj.Entries {
			val, err := valueToGo(e.Val, want.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.SetMapIndex(reflect.ValueOf(e.Key.String()), val)
		}
		return out, nil
	case reflect.Interface:
		return reflect.ValueOf(v), nil
	default:
		return reflect.Value{}, fmt.Errorf("RegisterFunction: unsupported parameter type %v", want)
	}
}

// goToValue converts a registered Go function's single return value
// back into a Lavendish Value.
func goToValue(rv reflect.Value) (value.Value, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return value.NewBool(rv.Bool()), nil
	case reflect.String:
		return value.NewString(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return value.NewInt(int64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return value.NewFloat(rv.Float()), nil
	case reflect.Slice, reflect.Array:
		elems := make([]value.Value, rv.Len())
		for i := range elems {
			ev, err := goToValue(rv.Index(i))
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return value.Array{Elems: elems}, nil
	case reflect.Map:
		out := value.Object{}
		for _, k := range rv.MapKeys() {
			ev, err := goToValue(rv.MapIndex(k))
			if err != nil {
				return nil, err
			}
			out.Set(value.NewString(fmt.Sprint(k.Interface())), ev)
		}
		return out, nil
	case reflect.Interface:
		if rv.IsNil() {
			return value.NilValue, nil
		}
		return goToValue(rv.Elem())
	default:
		return nil, fmt.Errorf("RegisterFunction: unsupported return type %v", rv.Type())
	}
}

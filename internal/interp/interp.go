package interp

import (
	"github.com/lavendeux/lavendish/internal/ast"
	"github.com/lavendeux/lavendish/internal/extension"
	"github.com/lavendeux/lavendish/internal/scope"
	"github.com/lavendeux/lavendish/internal/value"
)

// Limits bounds the resources a single evaluation may consume
// (spec.md §5): call recursion depth, the length a `..` range may
// materialize to, and the length any Array/Object literal or
// collection operation may grow to. Each is enforced by raising
// value.OverflowError at the boundary rather than letting the Go
// runtime exhaust memory or stack.
type Limits struct {
	MaxCallDepth     int
	MaxRangeLen      int
	MaxCollectionLen int
}

// DefaultLimits provides conservative defaults for a host embedding
// this package without configuring its own ceiling.
func DefaultLimits() Limits {
	return Limits{MaxCallDepth: 256, MaxRangeLen: 1_000_000, MaxCollectionLen: 1_000_000}
}

// Interp is one evaluation session: a global variable scope, a global
// function-definition table, the shared extension registry, and the
// resource limits in force. A host creates one Interp per script run
// (or reuses one across successive EvalProgram calls to preserve
// top-level bindings, the way a REPL would).
type Interp struct {
	Global      *scope.Scope
	globalFuncs *funcScope
	Registry    *extension.Registry
	Limits      Limits

	depth int
}

// New creates an Interp with a fresh global scope, wired to reg for
// function/decorator/state dispatch (spec.md §3.4).
func New(reg *extension.Registry) *Interp {
	return &Interp{
		Global:      scope.New(),
		globalFuncs: newFuncScope(),
		Registry:    reg,
		Limits:      DefaultLimits(),
	}
}

// frame bundles the variable scope and function-definition scope
// active at one point of evaluation; the two chains are walked in
// lockstep by enclosed().
type frame struct {
	env   *scope.Scope
	funcs *funcScope
}

func (it *Interp) rootFrame() frame {
	return frame{env: it.Global, funcs: it.globalFuncs}
}

// enclosed opens a fresh nested scope+funcScope pair, used for block
// expressions and loop iterations so bindings introduced inside don't
// leak to the surrounding frame.
func (f frame) enclosed() frame {
	return frame{env: scope.NewEnclosed(f.env), funcs: newEnclosedFuncScope(f.funcs)}
}

// EvalProgram evaluates every top-level statement in order, returning
// one Value per statement. A bare break/skip/return at top level (no
// enclosing loop or call) is a ControlFlowError.
func (it *Interp) EvalProgram(prog *ast.Program) ([]value.Value, error) {
	f := it.rootFrame()
	results := make([]value.Value, 0, len(prog.Statements))
	for _, stmt := range prog.Statements {
		step, err := it.evalStatement(f, stmt)
		if err != nil {
			return nil, err
		}
		v, err := unwrapTopLevel(step)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, nil
}

func unwrapTopLevel(s Step) (value.Value, error) {
	switch {
	case s.isValue():
		return s.val, nil
	case s.isBreak():
		return nil, &ControlFlowError{Keyword: "break"}
	case s.isSkip():
		return nil, &ControlFlowError{Keyword: "skip"}
	default:
		return nil, &ControlFlowError{Keyword: "return"}
	}
}

func (it *Interp) evalStatement(f frame, stmt ast.Statement) (Step, error) {
	switch n := stmt.(type) {
	case *ast.FunctionDef:
		return it.evalFunctionDef(f, n)
	case *ast.Assign:
		return it.evalAssign(f, n)
	case *ast.Del:
		return it.evalDel(f, n)
	case *ast.ExprStmt:
		// n.Decorator, when set, just mirrors the name already applied
		// by the *ast.Decorate node inside n.Expr (parseExprStmt caches
		// it for callers that want the decorator name without walking
		// the expression tree); evaluating n.Expr already applies it.
		return it.evalExpr(f, n.Expr)
	case *ast.ErrorNode:
		return Step{}, &SyntaxError{Message: n.Message, Pos: n.Pos()}
	default:
		return Step{}, &SyntaxError{Message: "unsupported top-level statement", Pos: stmt.Pos()}
	}
}

// evalExpr is the full expression dispatch; every *ast.* expression
// node reachable from a Block's Lines funnels through here.
func (it *Interp) evalExpr(f frame, expr ast.Expression) (Step, error) {
	switch n := expr.(type) {
	case *ast.Literal:
		v, err := evalLiteral(n)
		if err != nil {
			return Step{}, err
		}
		return valueStep(v), nil
	case *ast.Identifier:
		return it.evalIdentifier(f, n)
	case *ast.ArrayLiteral:
		return it.evalArrayLiteral(f, n)
	case *ast.ObjectLiteral:
		return it.evalObjectLiteral(f, n)
	case *ast.Block:
		return it.evalBlock(f, n)
	case *ast.If:
		return it.evalIf(f, n)
	case *ast.Ternary:
		return it.evalTernary(f, n)
	case *ast.Match:
		return it.evalMatch(f, n)
	case *ast.ForLoop:
		return it.evalFor(f, n)
	case *ast.Break:
		return it.evalBreakNode(f, n)
	case *ast.Skip:
		return skipStep(), nil
	case *ast.Return:
		return it.evalReturnNode(f, n)
	case *ast.Binary:
		return it.evalBinary(f, n)
	case *ast.Unary:
		return it.evalUnary(f, n)
	case *ast.Cast:
		return it.evalCast(f, n)
	case *ast.Range:
		return it.evalRange(f, n)
	case *ast.IndexChain:
		return it.evalIndexChainRead(f, n)
	case *ast.Call:
		return it.evalCall(f, n)
	case *ast.ObjectCall:
		return it.evalObjectCall(f, n)
	case *ast.Decorate:
		return it.evalDecorate(f, n)
	case *ast.IncDec:
		return it.evalIncDec(f, n)
	case *ast.Assign:
		return it.evalAssign(f, n)
	case *ast.Del:
		return it.evalDel(f, n)
	case *ast.ErrorNode:
		return Step{}, &SyntaxError{Message: n.Message, Pos: n.Pos()}
	default:
		if tup, ok := expr.(interface{ TupleElems() []ast.Expression }); ok {
			elems := tup.TupleElems()
			out := make([]value.Value, len(elems))
			for i, e := range elems {
				step, err := it.evalExpr(f, e)
				if err != nil {
					return Step{}, err
				}
				if step.nonLocal() {
					return step, nil
				}
				out[i] = step.val
			}
			return valueStep(value.Array{Elems: out}), nil
		}
		return Step{}, &SyntaxError{Message: "unsupported expression", Pos: expr.Pos()}
	}
}

func (it *Interp) evalIdentifier(f frame, n *ast.Identifier) (Step, error) {
	v, ok := f.env.Get(n.Value)
	if !ok {
		return Step{}, &NameError{Name: n.Value, Pos: n.Pos()}
	}
	return valueStep(v), nil
}

func (it *Interp) evalArrayLiteral(f frame, n *ast.ArrayLiteral) (Step, error) {
	out := make([]value.Value, 0, len(n.Elements))
	for _, e := range n.Elements {
		step, err := it.evalExpr(f, e)
		if err != nil {
			return Step{}, err
		}
		if step.nonLocal() {
			return step, nil
		}
		out = append(out, step.val)
	}
	if len(out) > it.Limits.MaxCollectionLen {
		return Step{}, &value.OverflowError{Message: "array literal exceeds the maximum collection length"}
	}
	return valueStep(value.Array{Elems: out}), nil
}

func (it *Interp) evalObjectLiteral(f frame, n *ast.ObjectLiteral) (Step, error) {
	obj := value.Object{}
	for _, e := range n.Entries {
		kStep, err := it.evalExpr(f, e.Key)
		if err != nil {
			return Step{}, err
		}
		if kStep.nonLocal() {
			return kStep, nil
		}
		if value.IsCollection(kStep.val) {
			return Step{}, &value.TypeError{Message: "object keys must be non-collection"}
		}
		vStep, err := it.evalExpr(f, e.Value)
		if err != nil {
			return Step{}, err
		}
		if vStep.nonLocal() {
			return vStep, nil
		}
		obj.Set(kStep.val, vStep.val)
	}
	if len(obj.Entries) > it.Limits.MaxCollectionLen {
		return Step{}, &value.OverflowError{Message: "object literal exceeds the maximum collection length"}
	}
	return valueStep(obj), nil
}

// evalBlock opens a fresh frame so bindings made inside `{ }` shadow
// rather than leak; its value is the last line's, or Nil if empty
// (spec.md §3.3).
func (it *Interp) evalBlock(f frame, n *ast.Block) (Step, error) {
	inner := f.enclosed()
	if len(n.Lines) == 0 {
		return valueStep(value.NilValue), nil
	}
	var last Step
	for _, line := range n.Lines {
		step, err := it.evalExpr(inner, line)
		if err != nil {
			return Step{}, err
		}
		if step.nonLocal() {
			return step, nil
		}
		last = step
	}
	return last, nil
}

func (it *Interp) evalIf(f frame, n *ast.If) (Step, error) {
	cond, err := it.evalExpr(f, n.Cond)
	if err != nil || cond.nonLocal() {
		return cond, err
	}
	if cond.val.Truthy() {
		return it.evalExpr(f, n.Then)
	}
	return it.evalExpr(f, n.Alt)
}

func (it *Interp) evalTernary(f frame, n *ast.Ternary) (Step, error) {
	cond, err := it.evalExpr(f, n.Cond)
	if err != nil || cond.nonLocal() {
		return cond, err
	}
	if cond.val.Truthy() {
		return it.evalExpr(f, n.Then)
	}
	return it.evalExpr(f, n.Else)
}

// evalMatch evaluates Subject once, tries every non-wildcard arm's
// candidate values by type-insensitive equality, and falls through to
// the mandatory wildcard arm if nothing matches (spec.md §4.2).
func (it *Interp) evalMatch(f frame, n *ast.Match) (Step, error) {
	subjStep, err := it.evalExpr(f, n.Subject)
	if err != nil || subjStep.nonLocal() {
		return subjStep, err
	}
	subj := subjStep.val

	var wildcard *ast.MatchArm
	for i := range n.Arms {
		arm := &n.Arms[i]
		if arm.Wildcard {
			wildcard = arm
			continue
		}
		for _, candExpr := range arm.Values {
			candStep, err := it.evalExpr(f, candExpr)
			if err != nil {
				return Step{}, err
			}
			if candStep.nonLocal() {
				return candStep, nil
			}
			if value.IsCollection(candStep.val) {
				return Step{}, &value.TypeError{Message: "match candidate values must be non-collection"}
			}
			eq, err := value.Equals(subj, candStep.val)
			if err != nil {
				return Step{}, err
			}
			if eq {
				return it.evalExpr(f, arm.Body)
			}
		}
	}
	if wildcard == nil {
		return Step{}, &SyntaxError{Message: "match requires a default arm", Pos: n.Pos()}
	}
	return it.evalExpr(f, wildcard.Body)
}

// iterableElements materializes the sequence a `for` loop walks.
// Range and Array are the forms spec.md names directly; Object
// iterates its keys and String iterates single-character runes as an
// ergonomic extension in the same spirit.
func (it *Interp) iterableElements(v value.Value) ([]value.Value, error) {
	switch t := v.(type) {
	case value.Range:
		elems, err := t.Materialize()
		if err != nil {
			return nil, err
		}
		if len(elems) > it.Limits.MaxRangeLen {
			return nil, &value.OverflowError{Message: "range exceeds the maximum iterable length"}
		}
		return elems, nil
	case value.Array:
		return t.Elems, nil
	case value.Object:
		out := make([]value.Value, len(t.Entries))
		for i, e := range t.Entries {
			out[i] = e.Key
		}
		return out, nil
	case value.String:
		runes := []rune(t.Val)
		out := make([]value.Value, len(runes))
		for i, r := range runes {
			out[i] = value.String{Val: string(r)}
		}
		return out, nil
	default:
		return nil, &value.TypeError{Message: "cannot iterate over " + v.Kind().String()}
	}
}

// evalFor implements the loop form `for [binder in] iterable [if
// guard] do body` (spec.md §4.2). `skip` elides the current
// iteration's contribution; `break v` replaces the loop's entire
// result with v rather than appending a terminal element; `return`
// propagates unchanged to the enclosing call.
func (it *Interp) evalFor(f frame, n *ast.ForLoop) (Step, error) {
	iterStep, err := it.evalExpr(f, n.Iterable)
	if err != nil || iterStep.nonLocal() {
		return iterStep, err
	}
	elems, err := it.iterableElements(iterStep.val)
	if err != nil {
		return Step{}, err
	}

	results := make([]value.Value, 0, len(elems))
	for _, elem := range elems {
		iter := f.enclosed()
		if n.Binder != nil {
			iter.env.Define(n.Binder.Value, elem)
		}
		if n.Guard != nil {
			guardStep, err := it.evalExpr(iter, n.Guard)
			if err != nil {
				return Step{}, err
			}
			if guardStep.nonLocal() {
				return guardStep, nil
			}
			if !guardStep.val.Truthy() {
				continue
			}
		}
		bodyStep, err := it.evalExpr(iter, n.Body)
		if err != nil {
			return Step{}, err
		}
		switch {
		case bodyStep.isSkip():
			continue
		case bodyStep.isBreak():
			if bodyStep.val == nil {
				return valueStep(value.NilValue), nil
			}
			return valueStep(bodyStep.val), nil
		case bodyStep.isReturn():
			return bodyStep, nil
		default:
			results = append(results, bodyStep.val)
		}
	}
	if len(results) > it.Limits.MaxCollectionLen {
		return Step{}, &value.OverflowError{Message: "for-loop result exceeds the maximum collection length"}
	}
	return valueStep(value.Array{Elems: results}), nil
}

func (it *Interp) evalBreakNode(f frame, n *ast.Break) (Step, error) {
	if n.Payload == nil {
		return breakStep(nil), nil
	}
	step, err := it.evalExpr(f, n.Payload)
	if err != nil {
		return Step{}, err
	}
	if step.nonLocal() {
		return step, nil
	}
	return breakStep(step.val), nil
}

func (it *Interp) evalReturnNode(f frame, n *ast.Return) (Step, error) {
	if n.Payload == nil {
		return returnStep(value.NilValue), nil
	}
	step, err := it.evalExpr(f, n.Payload)
	if err != nil {
		return Step{}, err
	}
	if step.nonLocal() {
		return step, nil
	}
	return returnStep(step.val), nil
}

// evalBinary evaluates `&&`/`||` with short-circuit semantics and
// defers every other operator to applyBinary once both operands are
// in hand (spec.md §4.1).
func (it *Interp) evalBinary(f frame, n *ast.Binary) (Step, error) {
	if n.Op == "&&" || n.Op == "||" {
		return it.evalShortCircuit(f, n)
	}
	lStep, err := it.evalExpr(f, n.Left)
	if err != nil || lStep.nonLocal() {
		return lStep, err
	}
	rStep, err := it.evalExpr(f, n.Right)
	if err != nil || rStep.nonLocal() {
		return rStep, err
	}
	v, err := applyBinary(n.Op, lStep.val, rStep.val)
	if err != nil {
		return Step{}, err
	}
	return valueStep(v), nil
}

func (it *Interp) evalShortCircuit(f frame, n *ast.Binary) (Step, error) {
	lStep, err := it.evalExpr(f, n.Left)
	if err != nil || lStep.nonLocal() {
		return lStep, err
	}
	if n.Op == "&&" && !lStep.val.Truthy() {
		return valueStep(value.NewBool(false)), nil
	}
	if n.Op == "||" && lStep.val.Truthy() {
		return valueStep(value.NewBool(true)), nil
	}
	rStep, err := it.evalExpr(f, n.Right)
	if err != nil || rStep.nonLocal() {
		return rStep, err
	}
	return valueStep(value.NewBool(rStep.val.Truthy())), nil
}

func (it *Interp) evalUnary(f frame, n *ast.Unary) (Step, error) {
	step, err := it.evalExpr(f, n.Operand)
	if err != nil || step.nonLocal() {
		return step, err
	}
	v, err := applyUnary(n.Op, step.val)
	if err != nil {
		return Step{}, err
	}
	return valueStep(v), nil
}

func (it *Interp) evalCast(f frame, n *ast.Cast) (Step, error) {
	step, err := it.evalExpr(f, n.Expr)
	if err != nil || step.nonLocal() {
		return step, err
	}
	v, err := value.Cast(step.val, n.Target)
	if err != nil {
		return Step{}, err
	}
	return valueStep(v), nil
}

func (it *Interp) evalRange(f frame, n *ast.Range) (Step, error) {
	startStep, err := it.evalExpr(f, n.Start)
	if err != nil || startStep.nonLocal() {
		return startStep, err
	}
	endStep, err := it.evalExpr(f, n.End)
	if err != nil || endStep.nonLocal() {
		return endStep, err
	}
	return valueStep(value.Range{Start: startStep.val, End: endStep.val}), nil
}

// readAssignable/writeAssignable back evalIncDec: both Identifier and
// IndexChain targets are assignable, nothing else is.
func (it *Interp) readAssignable(f frame, expr ast.Expression) (value.Value, error) {
	switch n := expr.(type) {
	case *ast.Identifier:
		v, ok := f.env.Get(n.Value)
		if !ok {
			return nil, &NameError{Name: n.Value, Pos: n.Pos()}
		}
		return v, nil
	case *ast.IndexChain:
		return it.readIndexChain(f, n)
	default:
		return nil, &SyntaxError{Message: "operand is not assignable", Pos: expr.Pos()}
	}
}

func (it *Interp) writeAssignable(f frame, expr ast.Expression, newVal value.Value) error {
	switch n := expr.(type) {
	case *ast.Identifier:
		f.env.Assign(n.Value, newVal)
		return nil
	case *ast.IndexChain:
		return it.indexChainWrite(f, n, newVal)
	default:
		return &SyntaxError{Message: "operand is not assignable", Pos: expr.Pos()}
	}
}

func intDelta(cur value.Value, delta int64) (value.Value, error) {
	i, ok := asIntOperand(cur)
	if !ok {
		return nil, &value.TypeError{Message: "'++'/'--' require an Int or Bool operand"}
	}
	return value.Int{Val: i.Val + delta, Width: i.Width, Signed: i.Signed}.Wrap(), nil
}

func (it *Interp) evalIncDec(f frame, n *ast.IncDec) (Step, error) {
	cur, err := it.readAssignable(f, n.Operand)
	if err != nil {
		return Step{}, err
	}
	delta := int64(1)
	if n.Op == "--" {
		delta = -1
	}
	next, err := intDelta(cur, delta)
	if err != nil {
		return Step{}, err
	}
	if err := it.writeAssignable(f, n.Operand, next); err != nil {
		return Step{}, err
	}
	if n.Prefix {
		return valueStep(next), nil
	}
	return valueStep(cur), nil
}


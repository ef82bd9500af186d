// Package eval folds JavaScript expressions to compile-time constants.
//
// The evaluator is a conservative constant folder, not an interpreter:
// every node kind it does not explicitly understand fails closed, and the
// only functions it will call are the pure builtins in allowedCalls.
// Author code is never executed.
package eval

import (
	"strconv"
	"strings"

	"github.com/boredom-js/boredom-build/internal/jsast"
)

// Scope resolves module top-level bindings by name.
type Scope interface {
	Lookup(name string) (jsast.Expr, bool)
}

// Result is the outcome of folding one node. Value is only meaningful
// when OK is true.
type Result struct {
	Value Value
	OK    bool
}

var failed = Result{}

func done(v Value) Result { return Result{Value: v, OK: true} }

// Evaluator folds nodes of a single module. Results are memoised per node
// and per binding name for the lifetime of the Evaluator, so a fresh one
// is created for every module analysis.
type Evaluator struct {
	scope     Scope
	nodes     map[jsast.E]Result
	names     map[string]Result
	resolving map[string]struct{}
	depth     int
}

func New(scope Scope) *Evaluator {
	return &Evaluator{
		scope:     scope,
		nodes:     make(map[jsast.E]Result),
		names:     make(map[string]Result),
		resolving: make(map[string]struct{}),
	}
}

// Eval folds expr. It never panics: anything unexpected is a failed fold.
func (e *Evaluator) Eval(expr jsast.Expr) (res Result) {
	if expr.Data == nil {
		return failed
	}
	if r, ok := e.nodes[expr.Data]; ok {
		return r
	}

	if e.depth == 0 {
		defer func() {
			if recover() != nil {
				e.resolving = make(map[string]struct{})
				e.depth = 0
				res = failed
			}
		}()
	}
	e.depth++
	r := e.eval(expr)
	e.depth--

	e.nodes[expr.Data] = r
	return r
}

// Resolve folds the top-level binding called name. A binding that is
// already being resolved higher up the stack is a cycle and fails.
func (e *Evaluator) Resolve(name string) Result {
	if name == "undefined" {
		return done(Undefined{})
	}
	if r, ok := e.names[name]; ok {
		return r
	}
	if e.Resolving(name) {
		return failed
	}

	decl, ok := e.scope.Lookup(name)
	if !ok {
		e.names[name] = failed
		return failed
	}

	e.resolving[name] = struct{}{}
	r := e.Eval(decl)
	delete(e.resolving, name)

	e.names[name] = r
	return r
}

// Resolving reports whether name is currently being resolved.
func (e *Evaluator) Resolving(name string) bool {
	_, ok := e.resolving[name]
	return ok
}

func (e *Evaluator) eval(expr jsast.Expr) Result {
	switch n := expr.Data.(type) {
	case *jsast.EString:
		return done(String(n.Value))

	case *jsast.ENumber:
		return done(Number(n.Value))

	case *jsast.EBoolean:
		return done(Bool(n.Value))

	case *jsast.ENull:
		return done(Null{})

	case *jsast.EUndefined:
		return done(Undefined{})

	case *jsast.ETemplate:
		return e.template(n)

	case *jsast.EArray:
		return e.array(n)

	case *jsast.EObject:
		return e.object(n)

	case *jsast.EIdentifier:
		return e.Resolve(n.Name)

	case *jsast.EUnary:
		v := e.Eval(n.Value)
		if !v.OK {
			return failed
		}
		return fromOK(unary(n.Op, v.Value))

	case *jsast.EBinary:
		l := e.Eval(n.Left)
		if !l.OK {
			return failed
		}
		r := e.Eval(n.Right)
		if !r.OK {
			return failed
		}
		return fromOK(binary(n.Op, l.Value, r.Value))

	case *jsast.ELogical:
		return e.logical(n)

	case *jsast.EConditional:
		test := e.Eval(n.Test)
		if !test.OK {
			return failed
		}
		if ToBoolean(test.Value) {
			return e.Eval(n.Yes)
		}
		return e.Eval(n.No)

	case *jsast.EDot:
		return e.member(n.Target, n.Optional, func() (string, bool) { return n.Name, true })

	case *jsast.EIndex:
		return e.member(n.Target, n.Optional, func() (string, bool) {
			k := e.Eval(n.Index)
			if !k.OK {
				return "", false
			}
			return ToString(ToPrimitive(k.Value)), true
		})

	case *jsast.ECall:
		return e.call(n)
	}

	// functions and classes as values, spreads out of place, this, await,
	// imports, assignments, JSX and everything else
	return failed
}

func fromOK(v Value, ok bool) Result {
	if !ok {
		return failed
	}
	return done(v)
}

func (e *Evaluator) template(n *jsast.ETemplate) Result {
	if len(n.Quasis) != len(n.Exprs)+1 {
		return failed
	}
	var sb strings.Builder
	for i, q := range n.Quasis {
		sb.WriteString(q)
		if i == len(n.Exprs) {
			break
		}
		r := e.Eval(n.Exprs[i])
		if !r.OK {
			return failed
		}
		sb.WriteString(ToString(r.Value))
	}
	return done(String(sb.String()))
}

func (e *Evaluator) array(n *jsast.EArray) Result {
	out := &Array{Elems: make([]Value, 0, len(n.Items))}
	for _, item := range n.Items {
		switch it := item.Data.(type) {
		case *jsast.EMissing:
			out.Elems = append(out.Elems, Undefined{})
		case *jsast.ESpread:
			elems, ok := e.spreadIterable(it.Value)
			if !ok {
				return failed
			}
			out.Elems = append(out.Elems, elems...)
		default:
			r := e.Eval(item)
			if !r.OK {
				return failed
			}
			out.Elems = append(out.Elems, r.Value)
		}
	}
	return done(out)
}

// spreadIterable folds the operand of an array or argument spread. Only
// arrays and strings are accepted.
func (e *Evaluator) spreadIterable(expr jsast.Expr) ([]Value, bool) {
	r := e.Eval(expr)
	if !r.OK {
		return nil, false
	}
	switch v := r.Value.(type) {
	case *Array:
		return v.Elems, true
	case String:
		return codePoints(string(v)), true
	}
	return nil, false
}

func (e *Evaluator) object(n *jsast.EObject) Result {
	out := NewObject()
	for _, p := range n.Properties {
		switch p.Kind {
		case jsast.PropertyInit:
			key, ok := e.propertyKey(p)
			if !ok {
				return failed
			}
			v := e.Eval(p.Value)
			if !v.OK {
				return failed
			}
			out.Set(key, v.Value)

		case jsast.PropertySpread:
			r := e.Eval(p.Value)
			if !r.OK {
				return failed
			}
			switch src := r.Value.(type) {
			case *Object:
				for _, k := range src.Keys() {
					v, _ := src.Get(k)
					out.Set(k, v)
				}
			case *Array:
				for i, v := range src.Elems {
					out.Set(strconv.Itoa(i), v)
				}
			default:
				return failed
			}

		default:
			// methods, getters and setters
			return failed
		}
	}
	return done(out)
}

func (e *Evaluator) propertyKey(p jsast.Property) (string, bool) {
	if !p.Computed {
		// a literal __proto__ key sets the prototype instead of a property
		if p.Key == "__proto__" {
			return "", false
		}
		return p.Key, true
	}
	r := e.Eval(p.KeyExpr)
	if !r.OK {
		return "", false
	}
	switch k := r.Value.(type) {
	case String:
		return string(k), true
	case Number:
		return NumberToString(float64(k)), true
	}
	return "", false
}

func (e *Evaluator) logical(n *jsast.ELogical) Result {
	l := e.Eval(n.Left)
	if !l.OK {
		return failed
	}
	switch n.Op {
	case "&&":
		if !ToBoolean(l.Value) {
			return l
		}
	case "||":
		if ToBoolean(l.Value) {
			return l
		}
	case "??":
		if !isNullish(l.Value) {
			return l
		}
	default:
		return failed
	}
	return e.Eval(n.Right)
}

func (e *Evaluator) member(target jsast.Expr, optional bool, key func() (string, bool)) Result {
	t := e.Eval(target)
	if !t.OK {
		return failed
	}
	if isNullish(t.Value) {
		if optional {
			return done(Undefined{})
		}
		return failed
	}
	k, ok := key()
	if !ok {
		return failed
	}
	return fromOK(getMember(t.Value, k))
}

func (e *Evaluator) call(n *jsast.ECall) Result {
	name, root, ok := calleeName(n.Target)
	if !ok {
		return failed
	}
	if _, shadowed := e.scope.Lookup(root); shadowed {
		return failed
	}
	fn, ok := allowedCalls[name]
	if !ok {
		return failed
	}

	args := make([]Value, 0, len(n.Args))
	for _, a := range n.Args {
		if spread, ok := a.Data.(*jsast.ESpread); ok {
			elems, ok := e.spreadIterable(spread.Value)
			if !ok {
				return failed
			}
			args = append(args, elems...)
			continue
		}
		r := e.Eval(a)
		if !r.OK {
			return failed
		}
		args = append(args, r.Value)
	}
	return fromOK(fn(args))
}

// calleeName returns the qualified name of a global callee such as
// "String" or "Object.assign", plus the root identifier.
func calleeName(target jsast.Expr) (string, string, bool) {
	switch t := target.Data.(type) {
	case *jsast.EIdentifier:
		return t.Name, t.Name, true
	case *jsast.EDot:
		root, ok := t.Target.Data.(*jsast.EIdentifier)
		if !ok || t.Optional {
			return "", "", false
		}
		return root.Name + "." + t.Name, root.Name, true
	case *jsast.EIndex:
		root, ok := t.Target.Data.(*jsast.EIdentifier)
		key, isString := t.Index.Data.(*jsast.EString)
		if !ok || !isString || t.Optional {
			return "", "", false
		}
		return root.Name + "." + key.Value, root.Name, true
	}
	return "", "", false
}

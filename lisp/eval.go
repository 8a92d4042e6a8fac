package lisp

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/luthersystems/lispy/ast"
	"github.com/luthersystems/lispy/diag"
	"github.com/luthersystems/lispy/parser/token"
)

// Eval evaluates expr in the context (scope) of env and returns the
// resulting LVal.
func (env *LEnv) Eval(expr ast.Expr) (*LVal, error) {
	switch e := expr.(type) {
	case nil:
		return nil, diag.Newf(diag.RuntimeError, "cannot evaluate a nil expression")
	case *ast.Number:
		return Number(e.Value), nil
	case *ast.String:
		return String(e.Value), nil
	case *ast.Boolean:
		return Bool(e.Value), nil
	case *ast.Identifier:
		v, ok := env.Get(e.Name)
		if !ok {
			return nil, diag.Errorf(diag.UnboundNameError, e.Source, "undefined variable: %s", e.Name)
		}
		return v, nil
	case *ast.Arithmetic:
		nums, err := env.numberArgs(e.Op.String(), e.Operands)
		if err != nil {
			return nil, err
		}
		if e.Op == ast.Minus {
			return Number(builtinSub(nums)), nil
		}
		return Number(builtinAdd(nums)), nil
	case *ast.Binary:
		nums, err := env.numberArgs(e.Op.String(), []ast.Expr{e.Left, e.Right})
		if err != nil {
			return nil, err
		}
		return Bool(builtinCompare(e.Op, nums[0], nums[1])), nil
	case *ast.If:
		return env.opIf(e)
	case *ast.Define:
		return env.opDefine(e)
	case *ast.Lambda:
		return env.opLambda(e), nil
	case *ast.FunCall:
		return env.opFunCall(e)
	case *ast.Print:
		return env.opPrint(e)
	case *ast.Input:
		return env.opInput(e)
	default:
		return nil, diag.Errorf(diag.RuntimeError, expr.Pos(), "unknown expression type %T", expr)
	}
}

// EvalProgram evaluates exprs in order and returns the value of the last one.
// Evaluation stops at the first error.  An empty program evaluates to Void.
func (env *LEnv) EvalProgram(exprs []ast.Expr) (*LVal, error) {
	ret := Void()
	for _, expr := range exprs {
		v, err := env.Eval(expr)
		if err != nil {
			return nil, err
		}
		ret = v
	}
	return ret, nil
}

// Load reads, parses and evaluates the program in r using the Runtime's
// Reader.  The name identifies r in diagnostics.
func (env *LEnv) Load(name string, r io.Reader) (*LVal, error) {
	if env.Runtime.Reader == nil {
		return nil, diag.Newf(diag.RuntimeError, "no reader configured")
	}
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return nil, err
	}
	return env.EvalProgram(exprs)
}

// LoadString parses and evaluates the program in src.
func (env *LEnv) LoadString(name, src string) (*LVal, error) {
	return env.Load(name, strings.NewReader(src))
}

// LoadFile parses and evaluates the program stored at path.
func (env *LEnv) LoadFile(path string) (*LVal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, diag.Newf(diag.IOError, "%v", errors.Wrap(err, "load"))
	}
	defer f.Close()
	return env.Load(path, f)
}

// Call invokes fun, which must be a function value, with already evaluated
// args.  The name and src identify the call in the call stack.
func (env *LEnv) Call(name string, fun *LVal, args []*LVal, src token.Span) (*LVal, error) {
	if fun.Type != LFun {
		return nil, diag.Errorf(diag.RuntimeTypeError, src, "%s is not a function: %v", name, fun.Type)
	}
	if len(args) != len(fun.Params) {
		return nil, diag.Errorf(diag.ArityError, src,
			"%s expects %d arguments, received %d", name, len(fun.Params), len(args))
	}
	stack := env.Runtime.Stack
	if err := stack.Push(name, src); err != nil {
		return nil, err
	}
	defer stack.Pop()
	env.Runtime.Logger.Debugf("call %s %v (height %d, %v scope)", name, args, stack.Height(), env.Runtime.Scope)

	callenv := env.callEnv(fun)
	for i, param := range fun.Params {
		callenv.Put(param, args[i])
	}
	v, err := callenv.Eval(fun.Body)
	if err != nil {
		return nil, attachStack(err, stack)
	}
	return v, nil
}

// callEnv returns the environment in which the body of fun is evaluated.
// Under dynamic scope it is a copy of env so bindings made during the call
// are discarded when the call returns.
func (env *LEnv) callEnv(fun *LVal) *LEnv {
	if env.Runtime.Scope == ScopeLexical && fun.Env != nil {
		return newChild(fun.Env)
	}
	return env.Copy()
}

// attachStack records the current call stack in err unless a deeper call has
// already done so.
func attachStack(err error, stack *CallStack) error {
	lerr, ok := diag.As(err)
	if ok && lerr.Stack == nil {
		lerr.Stack = stack.Copy()
	}
	return err
}

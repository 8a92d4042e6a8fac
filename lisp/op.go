package lisp

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/luthersystems/lispy/ast"
	"github.com/luthersystems/lispy/diag"
)

// PrintPrefix precedes every line written by print.
const PrintPrefix = "→ "

func (env *LEnv) opIf(e *ast.If) (*LVal, error) {
	cond, err := env.Eval(e.Cond)
	if err != nil {
		return nil, err
	}
	if cond.Type != LBool {
		return nil, diag.Errorf(diag.RuntimeTypeError, e.Cond.Pos(),
			"if condition is not a boolean: %v", cond.Type)
	}
	if cond.Bool {
		return env.Eval(e.Then)
	}
	return env.Eval(e.Else)
}

func (env *LEnv) opDefine(e *ast.Define) (*LVal, error) {
	v, err := env.Eval(e.Value)
	if err != nil {
		return nil, err
	}
	env.Put(e.Name, v)
	return Void(), nil
}

func (env *LEnv) opLambda(e *ast.Lambda) *LVal {
	params := make([]string, len(e.Params))
	copy(params, e.Params)
	if env.Runtime.Scope == ScopeLexical {
		return Lambda(params, e.Body, env)
	}
	return Lambda(params, e.Body, nil)
}

func (env *LEnv) opFunCall(e *ast.FunCall) (*LVal, error) {
	fun, ok := env.Get(e.Name)
	if !ok {
		return nil, diag.Errorf(diag.UnboundNameError, e.Source, "undefined function: %s", e.Name)
	}
	if fun.Type != LFun {
		return nil, diag.Errorf(diag.RuntimeTypeError, e.Source, "%s is not a function: %v", e.Name, fun.Type)
	}
	if len(e.Args) != len(fun.Params) {
		return nil, diag.Errorf(diag.ArityError, e.Source,
			"%s expects %d arguments, received %d", e.Name, len(fun.Params), len(e.Args))
	}
	args := make([]*LVal, len(e.Args))
	for i, x := range e.Args {
		v, err := env.Eval(x)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return env.Call(e.Name, fun, args, e.Source)
}

func (env *LEnv) opPrint(e *ast.Print) (*LVal, error) {
	v, err := env.Eval(e.Value)
	if err != nil {
		return nil, err
	}
	_, err = fmt.Fprintf(env.Runtime.Stdout, "%s%s\n", PrintPrefix, v)
	if err != nil {
		return nil, diag.Errorf(diag.IOError, e.Source, "%v", errors.Wrap(err, "print"))
	}
	return Void(), nil
}

func (env *LEnv) opInput(e *ast.Input) (*LVal, error) {
	line, err := env.Runtime.Stdin.ReadLine()
	if err == io.EOF {
		return nil, diag.Errorf(diag.IOError, e.Source, "%v: unexpected end of input", e.Kind)
	}
	if err != nil {
		return nil, diag.Errorf(diag.IOError, e.Source, "%v", errors.Wrap(err, e.Kind.String()))
	}
	if e.Kind == ast.InputString {
		return String(line), nil
	}
	x, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return nil, diag.Errorf(diag.IOError, e.Source, "Invalid number: %q", line)
	}
	return Number(x), nil
}

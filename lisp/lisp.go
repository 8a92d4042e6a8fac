package lisp

import (
	"strconv"

	"github.com/luthersystems/lispy/ast"
)

// LValType is the type of an LVal
type LValType uint

// Possible LValType values
const (
	LInvalid LValType = iota
	LNumber
	LString
	LBool
	LVoid
	LFun
)

var lvalTypeStrings = []string{
	LInvalid: "INVALID",
	LNumber:  "number",
	LString:  "string",
	LBool:    "boolean",
	LVoid:    "void",
	LFun:     "function",
}

func (t LValType) String() string {
	if int(t) >= len(lvalTypeStrings) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LVal is a lisp value
type LVal struct {
	Type LValType
	Num  int64
	Str  string
	Bool bool

	// Variables needed for function values
	Params []string
	Body   ast.Expr
	// Env is the defining environment of a function under lexical scope.  It
	// is nil under dynamic scope.
	Env *LEnv
}

// Number returns an LVal representing the number x.
func Number(x int64) *LVal {
	return &LVal{
		Type: LNumber,
		Num:  x,
	}
}

// String returns an LVal representing the string s.
func String(s string) *LVal {
	return &LVal{
		Type: LString,
		Str:  s,
	}
}

// Bool returns an LVal representing the boolean b.
func Bool(b bool) *LVal {
	return &LVal{
		Type: LBool,
		Bool: b,
	}
}

// Void returns an LVal representing the absence of a value.  Define and print
// evaluate to Void.
func Void() *LVal {
	return &LVal{
		Type: LVoid,
	}
}

// Lambda returns an anonymous function that has params as arguments and the
// given body.  The env argument is the defining environment and may be nil.
func Lambda(params []string, body ast.Expr, env *LEnv) *LVal {
	return &LVal{
		Type:   LFun,
		Params: params,
		Body:   body,
		Env:    env,
	}
}

// String renders v the way print writes it.
func (v *LVal) String() string {
	switch v.Type {
	case LNumber:
		return strconv.FormatInt(v.Num, 10)
	case LString:
		return v.Str
	case LBool:
		return strconv.FormatBool(v.Bool)
	case LVoid:
		return "_void"
	case LFun:
		return "lambda-function"
	default:
		return "<invalid>"
	}
}

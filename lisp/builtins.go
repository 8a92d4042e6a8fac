package lisp

import (
	"github.com/luthersystems/lispy/ast"
	"github.com/luthersystems/lispy/diag"
)

// numberArgs evaluates exprs from left to right and returns their values,
// which must all be numbers.  The name of the operator is used in errors.
func (env *LEnv) numberArgs(name string, exprs []ast.Expr) ([]int64, error) {
	nums := make([]int64, len(exprs))
	for i, x := range exprs {
		v, err := env.Eval(x)
		if err != nil {
			return nil, err
		}
		if v.Type != LNumber {
			return nil, diag.Errorf(diag.RuntimeTypeError, x.Pos(),
				"%s argument %d is not a number: %v", name, i+1, v.Type)
		}
		nums[i] = v.Num
	}
	return nums, nil
}

// builtinAdd returns the sum of nums.  Overflow wraps.
func builtinAdd(nums []int64) int64 {
	var sum int64
	for _, x := range nums {
		sum += x
	}
	return sum
}

// builtinSub negates a single argument and otherwise subtracts the remaining
// arguments from the first.  Overflow wraps.
func builtinSub(nums []int64) int64 {
	if len(nums) == 0 {
		return 0
	}
	if len(nums) == 1 {
		return -nums[0]
	}
	diff := nums[0]
	for _, x := range nums[1:] {
		diff -= x
	}
	return diff
}

func builtinCompare(op ast.CompareOp, a, b int64) bool {
	switch op {
	case ast.Lt:
		return a < b
	case ast.Gt:
		return a > b
	default:
		return a == b
	}
}

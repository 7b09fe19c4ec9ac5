package calculator

import (
	"math"
	"strconv"
)

// Func is a unary transformation on float64 values. Functions appear in an
// expression as name(arg) and receive their argument in radians where that
// matters.
type Func func(float64) float64

// defaultFuncs is the function table every new session starts with.
var defaultFuncs = map[string]Func{
	"cos": math.Cos,
	"sin": math.Sin,
	"tg":  math.Tan,
	"ctg": math.Tan, // sic, same as tg; kept for compatibility
}

// defaultConsts is the reserved constant table. Constants resolve like
// variables but can never be assigned.
var defaultConsts = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// FuncError is an error from a call to a name that is not in the session's
// function table.
type FuncError struct {
	// Name is the name that was called.
	Name string
}

func (err *FuncError) Error() string {
	return "unknown function: " + strconv.Quote(err.Name)
}

// ConstError is an error from an assignment whose target is a reserved
// constant.
type ConstError struct {
	// Name is the constant the assignment targeted.
	Name string
}

func (err *ConstError) Error() string {
	return "cannot assign to constant " + strconv.Quote(err.Name)
}

package calculator

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Session holds the mutable state of one calculator session: variable
// bindings, the constant table, and the function table. Bindings persist
// across evaluations until the session is discarded. It is not safe to use
// a Session concurrently.
type Session struct {
	vars   map[string]float64
	consts map[string]float64
	funcs  map[string]Func
}

// Info is the outcome of a successful evaluation.
type Info struct {
	// Name is the variable the result was bound to, or the empty string if
	// the input was a plain expression.
	Name string
	// Value is the computed value.
	Value float64
}

// SessionOption is an option used when creating a session.
type SessionOption interface {
	sessionOption(*Session)
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt map[string]float64
	funcopt struct {
		name string
		fn   Func
	}
)

func (o varopt) sessionOption(s *Session) { s.vars[o.name] = o.val }

func (o varsopt) sessionOption(s *Session) {
	for k, v := range o {
		s.vars[k] = v
	}
}

func (o funcopt) sessionOption(s *Session) {
	if o.fn == nil {
		delete(s.funcs, o.name)
		return
	}
	s.funcs[o.name] = o.fn
}

// SetVar sets the value of a variable in the session. It bypasses the
// constant check, so a constant name given here stays a constant and the
// binding is unreachable.
func SetVar(name string, val float64) SessionOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the session.
func SetVars(vars map[string]float64) SessionOption {
	return varsopt(vars)
}

// WithFunc sets a function in the session's function table. To remove a
// default function, pass nil for fn.
func WithFunc(name string, fn Func) SessionOption {
	return funcopt{name, fn}
}

// NewSession creates a session with the default constant and function
// tables and no variables bound. The given options are applied in order.
func NewSession(opts ...SessionOption) *Session {
	s := Session{
		vars:   make(map[string]float64),
		consts: defaultConsts,
		funcs:  make(map[string]Func, len(defaultFuncs)),
	}
	for k, v := range defaultFuncs {
		s.funcs[k] = v
	}
	for _, opt := range opts {
		opt.sessionOption(&s)
	}
	return &s
}

// Eval evaluates a parsed line against the session. If the line is an
// assignment, the binding happens after the right-hand side evaluates
// without error, and the result carries the bound name.
func (s *Session) Eval(e *Expr) (Info, error) {
	v, err := e.n.eval(s)
	if err != nil {
		return Info{}, err
	}
	if e.n.kind == nodeAssign {
		return Info{Name: e.n.name, Value: v}, nil
	}
	return Info{Value: v}, nil
}

// EvalString parses and evaluates a single line. This is the entry point a
// read-eval-print driver calls once per line.
func (s *Session) EvalString(src string) (Info, error) {
	e, err := Parse(strings.NewReader(src))
	if err != nil {
		return Info{}, err
	}
	return s.Eval(e)
}

// Lookup resolves an identifier, checking variables first and constants
// second. The second result reports whether the name was bound at all.
func (s *Session) Lookup(name string) (float64, bool) {
	if v, ok := s.vars[name]; ok {
		return v, true
	}
	v, ok := s.consts[name]
	return v, ok
}

// Set binds a variable. Binding a name reserved as a constant is an error;
// rebinding a variable is always allowed.
func (s *Session) Set(name string, value float64) error {
	if _, ok := s.consts[name]; ok {
		return &ConstError{Name: name}
	}
	s.vars[name] = value
	return nil
}

// apply invokes a named function from the session's function table.
func (s *Session) apply(name string, arg float64) (float64, error) {
	fn := s.funcs[name]
	if fn == nil {
		return 0, &FuncError{Name: name}
	}
	return fn(arg), nil
}

// eval computes the node's value against a session. Semantic errors abort
// the whole evaluation; there is no recovery into another reading of the
// input.
func (n *node) eval(s *Session) (float64, error) {
	switch n.kind {
	case nodeNum:
		return n.val, nil
	case nodeName:
		v, ok := s.Lookup(n.name)
		if !ok {
			return 0, &NameError{Name: n.name}
		}
		return v, nil
	case nodeCall:
		arg, err := n.left.eval(s)
		if err != nil {
			return 0, err
		}
		return s.apply(n.name, arg)
	case nodeNeg:
		v, err := n.left.eval(s)
		return -v, err
	case nodeNop:
		return n.left.eval(s)
	case nodeAdd:
		l, r, err := n.eval2(s)
		return l + r, err
	case nodeSub:
		l, r, err := n.eval2(s)
		return l - r, err
	case nodeMul:
		l, r, err := n.eval2(s)
		return l * r, err
	case nodeDiv:
		// IEEE division: x/0 is an infinity or NaN, not an error.
		l, r, err := n.eval2(s)
		return l / r, err
	case nodePow:
		l, r, err := n.eval2(s)
		if err != nil {
			return 0, err
		}
		return math.Pow(l, r), nil
	case nodeAssign:
		v, err := n.left.eval(s)
		if err != nil {
			return 0, err
		}
		if err := s.Set(n.name, v); err != nil {
			return 0, err
		}
		return v, nil
	default:
		panic("calculator: invalid AST node " + n.kind.String())
	}
}

// eval2 evaluates both operands of a binary node.
func (n *node) eval2(s *Session) (l, r float64, err error) {
	l, err = n.left.eval(s)
	if err != nil {
		return 0, 0, err
	}
	r, err = n.right.eval(s)
	if err != nil {
		return 0, 0, err
	}
	return l, r, nil
}

// Eval is a shortcut to parse and evaluate a line in a fresh session.
func Eval(src io.RuneScanner, opts ...SessionOption) (Info, error) {
	e, err := Parse(src)
	if err != nil {
		return Info{}, err
	}
	return NewSession(opts...).Eval(e)
}

// EvalString is a shortcut to parse and evaluate a string in a fresh
// session.
func EvalString(src string, opts ...SessionOption) (Info, error) {
	return Eval(strings.NewReader(src), opts...)
}

// NameError is an error from a lookup for an identifier that is bound
// neither as a variable nor as a constant.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

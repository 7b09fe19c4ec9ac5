package calculator

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// diff finds the first in-order node of n that differs from m, or nil, nil if
// the two ASTs are equal. If any node is nodeNone, it is returned.
func (n *node) diff(m *node) (*node, *node) {
	if n == nil {
		if m != nil {
			return n, m
		}
		return nil, nil
	}
	if m == nil {
		return n, m
	}
	if n.kind == nodeNone || m.kind == nodeNone {
		return n, m
	}
	if n.kind != m.kind {
		return n, m
	}
	switch n.kind {
	case nodeNum:
		if n.name != m.name || n.val != m.val {
			return n, m
		}
	case nodeName:
		if n.name != m.name {
			return n, m
		}
	case nodeCall, nodeAssign:
		if n.name != m.name {
			return n, m
		}
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
	case nodeNeg, nodeNop:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	default:
		panic(fmt.Errorf("invalid node kind: n=%+v m=%+v", n, m))
	}
	return nil, nil
}

func num(text string, v float64) *node {
	return &node{kind: nodeNum, name: text, val: v}
}

func bin(k nodeKind, l, r *node) *node {
	return &node{kind: k, left: l, right: r}
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want *node
	}{
		{"num", "1", num("1", 1)},
		{"decimal", "2.5", num("2.5", 2.5)},
		{"plus", "+11", &node{kind: nodeNop, left: num("11", 11)}},
		{"neg", "-11", &node{kind: nodeNeg, left: num("11", 11)}},
		{"neg-paren", "-(-11)", &node{kind: nodeNeg, left: &node{kind: nodeNeg, left: num("11", 11)}}},
		{"add", "2+2", bin(nodeAdd, num("2", 2), num("2", 2))},
		{"sums-fold", "1+1-1+2",
			bin(nodeAdd,
				bin(nodeSub,
					bin(nodeAdd, num("1", 1), num("1", 1)),
					num("1", 1)),
				num("2", 2))},
		{"prod-fold", "1*2/1*2",
			bin(nodeMul,
				bin(nodeDiv,
					bin(nodeMul, num("1", 1), num("2", 2)),
					num("1", 1)),
				num("2", 2))},
		{"prec-add-mul", "1+2*2",
			bin(nodeAdd, num("1", 1), bin(nodeMul, num("2", 2), num("2", 2)))},
		{"prec-mul-pow", "2*2^2",
			bin(nodeMul, num("2", 2), bin(nodePow, num("2", 2), num("2", 2)))},
		{"pow-fold", "2^3^2",
			bin(nodePow, bin(nodePow, num("2", 2), num("3", 3)), num("2", 2))},
		{"paren", "(1+2)*3",
			bin(nodeMul, bin(nodeAdd, num("1", 1), num("2", 2)), num("3", 3))},
		{"var", "x*3", bin(nodeMul, &node{kind: nodeName, name: "x"}, num("3", 3))},
		{"call", "cos(pi)", &node{kind: nodeCall, name: "cos", left: &node{kind: nodeName, name: "pi"}}},
		{"call-expr", "notFound(2*3)",
			&node{kind: nodeCall, name: "notFound", left: bin(nodeMul, num("2", 2), num("3", 3))}},
		{"assign", "a = 1", &node{kind: nodeAssign, name: "a", left: num("1", 1)}},
		{"assign-tight", "a=1+2",
			&node{kind: nodeAssign, name: "a", left: bin(nodeAdd, num("1", 1), num("2", 2))}},
		{"assign-sign", "a = -1",
			&node{kind: nodeAssign, name: "a", left: &node{kind: nodeNeg, left: num("1", 1)}}},
		{"sign-in-paren", "1*(-1)",
			bin(nodeMul, num("1", 1), &node{kind: nodeNeg, left: num("1", 1)})},
		{"spaces", " 1 + 2 ", bin(nodeAdd, num("1", 1), num("2", 2))},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := Parse(strings.NewReader(c.src))
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if d, m := e.n.diff(c.want); d != nil || m != nil {
				t.Errorf("%q parsed wrong:\n\twant %v\n\tgot  %v\n\tdiffering nodes %v and %v", c.src, c.want, e.n, m, d)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"unclosed", "1*(1+1"},
		{"unopened", "1)"},
		{"empty-paren", "()"},
		{"trailing-num", "1 2"},
		{"trailing-paren", "(1)(2)"},
		{"trailing-assign", "1 = 2"},
		{"chained-assign", "a=b=1"},
		{"op-only", "-"},
		{"double-sign", "+-1"},
		{"inner-sign", "2*-3"},
		{"dangling-op", "2+"},
		{"bad-number", "1..2"},
		{"bad-rune", "2$2"},
		{"assign-no-rhs", "a ="},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := Parse(strings.NewReader(c.src))
			if err == nil {
				t.Fatalf("%q parsed as %v; want error", c.src, e)
			}
			var ie InputError
			if !errors.As(err, &ie) {
				t.Errorf("%q error %#v is not an InputError", c.src, err)
			} else if ie.Pos() < 1 {
				t.Errorf("%q error has position %d", c.src, ie.Pos())
			}
		})
	}
}

func TestParseErrorKinds(t *testing.T) {
	var (
		brackets *BracketError
		trailing *TrailingError
		empty    *EmptyExpressionError
	)
	cases := []struct {
		name string
		src  string
		as   any
	}{
		{"unclosed", "1*(1+1", &brackets},
		{"unopened", "1)", &brackets},
		{"trailing", "1 2", &trailing},
		{"empty", "", &empty},
		{"empty-paren", "()", &empty},
		{"inner-sign", "2*-3", &empty},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(c.src))
			if err == nil {
				t.Fatalf("%q parsed; want error", c.src)
			}
			if !errors.As(err, c.as) {
				t.Errorf("%q gave %#v; want %T", c.src, err, c.as)
			}
		})
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1+2*2", "(1 + (2 * 2))"},
		{"2^3^2", "((2 ^ 3) ^ 2)"},
		{"-11", "(-11)"},
		{"cos(pi)", "cos(pi)"},
		{"a = 1", "a = 1"},
	}
	for _, c := range cases {
		e, err := Parse(strings.NewReader(c.src))
		if err != nil {
			t.Fatalf("%q failed to parse: %v", c.src, err)
		}
		if got := e.String(); got != c.want {
			t.Errorf("%q formatted as %q; want %q", c.src, got, c.want)
		}
	}
}

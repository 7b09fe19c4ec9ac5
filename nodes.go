package calculator

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// name is the literal text of a number, the identifier of a name or
	// call, or the target of an assignment.
	name string
	// val is the parsed value of a number.
	val float64

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // val
	nodeName // lookup(name)

	nodeCall // apply function name to left

	nodeNeg // evaluate left, then negate
	nodeNop // evaluate left
	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodePow // evaluate left, raise to right

	nodeAssign // evaluate left, bind to name
)

var nodeNames = [...]string{
	"None", "Num", "Name", "Call",
	"Neg", "Nop", "Add", "Sub", "Mul", "Div", "Pow",
	"Assign",
}

func (k nodeKind) String() string {
	if int(k) < len(nodeNames) {
		return nodeNames[k]
	}
	return "nodeKind(" + strconv.Itoa(int(k)) + ")"
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b)
		}
		b.WriteByte('$')
	case nodeNum, nodeName:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeNeg:
		b.WriteString("(-")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeNop:
		b.WriteString("(+")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeAdd:
		n.fmtbin(b, " + ")
	case nodeSub:
		n.fmtbin(b, " - ")
	case nodeMul:
		n.fmtbin(b, " * ")
	case nodeDiv:
		n.fmtbin(b, " / ")
	case nodePow:
		n.fmtbin(b, " ^ ")
	case nodeAssign:
		b.WriteString(n.name)
		b.WriteString(" = ")
		n.left.fmt(b)
	default:
		panic("calculator: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

func (n *node) fmtbin(b *strings.Builder, op string) {
	b.WriteByte('(')
	n.left.fmt(b)
	b.WriteString(op)
	n.right.fmt(b)
	b.WriteByte(')')
}

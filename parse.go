package calculator

import (
	"io"
	"strconv"
	"strings"
)

// Line   = [ name '=' ] Expr
// Expr   = [ '-' | '+' ] Sums
// Sums   = Prod { ('+' | '-') Prod }
// Prod   = Pow { ('*' | '/') Pow }
// Pow    = Atom { '^' Atom }
// Atom   = Value | '(' Expr ')'
// Value  = name '(' Expr ')' | num | name
//
// Every binary level folds left, including Pow: a^b^c is (a^b)^c. A unary
// sign is recognized only at Expr, so it reappears inside parentheses but
// never directly after a binary operator.

// Expr is a parsed line that can be evaluated with a session.
type Expr struct {
	// n is the root node of the line.
	n *node
	// names is the list of identifiers used in the expression.
	names []string
}

// parsectx holds general data for parsing.
type parsectx struct {
	// names is the set of identifiers that have been seen this parse.
	names map[string]bool
}

// Parse parses a single line, either an expression or an assignment of an
// expression to a variable. The entire input must be consumed; anything left
// over after a complete expression is an error.
func Parse(src io.RuneScanner) (*Expr, error) {
	scan := lex(src)
	p := parsectx{
		names: make(map[string]bool),
	}
	n, err := parseline(scan, &p)
	if err != nil {
		return nil, err
	}
	switch tok := scan.must(); tok.kind {
	case tokenEOF:
	case tokenClose:
		return nil, &BracketError{Col: tok.pos, Left: "", Right: tok.text}
	default:
		return nil, &TrailingError{Col: tok.pos, Token: tok.text}
	}
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(p.names)),
	}
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string) (*Expr, error) {
	return Parse(strings.NewReader(src))
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// parseline parses an expression with an optional leading assignment target.
// If there is no error, then parseline pushes the last token it scans,
// including EOF.
func parseline(scan *lexer, p *parsectx) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenIdent {
		eq, err := scan.next()
		if err != nil {
			return nil, err
		}
		if eq.kind == tokenAssign {
			rhs, err := parseexpr(scan, p)
			if err != nil {
				return nil, err
			}
			return &node{kind: nodeAssign, name: tok.text, left: rhs}, nil
		}
		scan.push(eq)
	}
	scan.push(tok)
	return parseexpr(scan, p)
}

// parseexpr parses a full subexpression, including an optional leading sign.
func parseexpr(scan *lexer, p *parsectx) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	sign := ""
	if tok.kind == tokenOp && (tok.text == "+" || tok.text == "-") {
		sign = tok.text
	} else {
		scan.push(tok)
	}
	n, err := parsesums(scan, p)
	if err != nil {
		return nil, err
	}
	switch sign {
	case "-":
		n = &node{kind: nodeNeg, left: n}
	case "+":
		n = &node{kind: nodeNop, left: n}
	}
	return n, nil
}

// parsesums parses a left-folded chain of additions and subtractions.
func parsesums(scan *lexer, p *parsectx) (*node, error) {
	n, err := parseprod(scan, p)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || (tok.text != "+" && tok.text != "-") {
			scan.push(tok)
			return n, nil
		}
		rhs, err := parseprod(scan, p)
		if err != nil {
			return nil, err
		}
		k := nodeAdd
		if tok.text == "-" {
			k = nodeSub
		}
		n = &node{kind: k, left: n, right: rhs}
	}
}

// parseprod parses a left-folded chain of multiplications and divisions.
func parseprod(scan *lexer, p *parsectx) (*node, error) {
	n, err := parsepow(scan, p)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || (tok.text != "*" && tok.text != "/") {
			scan.push(tok)
			return n, nil
		}
		rhs, err := parsepow(scan, p)
		if err != nil {
			return nil, err
		}
		k := nodeMul
		if tok.text == "/" {
			k = nodeDiv
		}
		n = &node{kind: k, left: n, right: rhs}
	}
}

// parsepow parses a left-folded chain of exponentiations.
func parsepow(scan *lexer, p *parsectx) (*node, error) {
	n, err := parseatom(scan, p)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || tok.text != "^" {
			scan.push(tok)
			return n, nil
		}
		rhs, err := parseatom(scan, p)
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodePow, left: n, right: rhs}
	}
}

// parseatom parses a number, an identifier, a function call, or a
// parenthesized subexpression.
func parseatom(scan *lexer, p *parsectx) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			// The lexer only emits number tokens it has validated.
			panic("calculator: invalid number: " + tok.text + " (" + err.Error() + ")")
		}
		return &node{kind: nodeNum, name: tok.text, val: v}, nil
	case tokenIdent:
		open, err := scan.next()
		if err != nil {
			return nil, err
		}
		if open.kind == tokenOpen {
			arg, err := parseexpr(scan, p)
			if err != nil {
				return nil, err
			}
			if err := expectclose(scan); err != nil {
				return nil, err
			}
			return &node{kind: nodeCall, name: tok.text, left: arg}, nil
		}
		scan.push(open)
		p.names[tok.text] = true
		return &node{kind: nodeName, name: tok.text}, nil
	case tokenOpen:
		n, err := parseexpr(scan, p)
		if err != nil {
			return nil, err
		}
		if err := expectclose(scan); err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	}
}

// expectclose consumes the pushed token left by a subexpression parse and
// checks that it closes the bracket opened before it.
func expectclose(scan *lexer) error {
	end := scan.must()
	switch end.kind {
	case tokenClose:
		return nil
	case tokenEOF:
		return &BracketError{Col: end.pos, Left: "(", Right: ""}
	default:
		return &TrailingError{Col: end.pos, Token: end.text}
	}
}

// Vars returns the identifiers used when evaluating the expression, in
// sorted order. Constants count as uses; the name of a function call does
// not, although identifiers in its argument do.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a string representation of the parsed line, with
// parentheses grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b)
	return b.String()
}

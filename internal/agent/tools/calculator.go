package tools

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	errx "github.com/kopichat-core-poc/server/internal/core/error"
)

// Calculator evaluates arithmetic expressions. Implementations either fully
// succeed with a numeric result or report a single structured error.
type Calculator interface {
	Evaluate(ctx context.Context, expr string) (float64, error)
}

// Canned calculator validation messages surfaced to the user verbatim.
const (
	MsgEmptyExpression = "Please provide an expression. Example: '5 * 6'"
	MsgInvalidChars    = "Invalid characters in expression"
	MsgDivideByZero    = "Cannot divide by zero"
)

// ExprCalculator is a recursive-descent evaluator restricted to numeric
// literals and + - * / ( ). Grammar errors and division by zero come back as
// distinct user-safe messages; no code evaluation is involved.
type ExprCalculator struct{}

func NewExprCalculator() *ExprCalculator {
	return &ExprCalculator{}
}

func (c *ExprCalculator) Evaluate(ctx context.Context, expr string) (float64, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, errx.New(nil, http.StatusBadRequest, MsgEmptyExpression)
	}
	if i := strings.IndexFunc(expr, isDisallowed); i >= 0 {
		return 0, errx.New(fmt.Errorf("disallowed character %q", expr[i]), http.StatusBadRequest, MsgInvalidChars)
	}

	p := &exprParser{input: expr}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return 0, calcError(fmt.Sprintf("unexpected %q at position %d", p.input[p.pos], p.pos))
	}
	return v, nil
}

func isDisallowed(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return false
	case r == '+' || r == '-' || r == '*' || r == '/' || r == '(' || r == ')' || r == '.':
		return false
	case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		return false
	}
	return true
}

func calcError(detail string) error {
	return errx.New(nil, http.StatusBadRequest, "Calculation error: "+detail)
}

// exprParser implements:
//
//	expr   := term (('+'|'-') term)*
//	term   := factor (('*'|'/') factor)*
//	factor := number | '(' expr ')' | ('+'|'-') factor
type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *exprParser) peek() (byte, bool) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *exprParser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peek()
		if !ok || (op != '+' && op != '-') {
			return v, nil
		}
		p.pos++
		rhs, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			v += rhs
		} else {
			v -= rhs
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	v, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peek()
		if !ok || (op != '*' && op != '/') {
			return v, nil
		}
		p.pos++
		rhs, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			v *= rhs
		} else {
			if rhs == 0 {
				return 0, errx.New(nil, http.StatusBadRequest, MsgDivideByZero)
			}
			v /= rhs
		}
	}
}

func (p *exprParser) parseFactor() (float64, error) {
	c, ok := p.peek()
	if !ok {
		return 0, calcError("unexpected end of expression")
	}

	switch {
	case c == '+' || c == '-':
		p.pos++
		v, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		if c == '-' {
			return -v, nil
		}
		return v, nil
	case c == '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if cc, ok := p.peek(); !ok || cc != ')' {
			return 0, calcError("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	case c >= '0' && c <= '9' || c == '.':
		return p.parseNumber()
	default:
		return 0, calcError(fmt.Sprintf("unexpected %q at position %d", c, p.pos))
	}
}

func (p *exprParser) parseNumber() (float64, error) {
	start := p.pos
	seenDot := false
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			p.pos++
			continue
		}
		break
	}
	lit := p.input[start:p.pos]
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, calcError(fmt.Sprintf("invalid number %q", lit))
	}
	return v, nil
}

var _ Calculator = (*ExprCalculator)(nil)

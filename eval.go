package calculator

import (
	"context"
	"log/slog"
	"math"
	"strconv"
)

// EvalOption is an option for evaluating a parsed expression.
type EvalOption interface {
	evalOption(evalctx) evalctx
}

type traceopt struct {
	log *slog.Logger
}

type evalctx struct {
	log *slog.Logger
}

// Trace logs each operation performed during evaluation to log at debug
// level, with the operator, its operands, and its result.
func Trace(log *slog.Logger) EvalOption {
	return traceopt{log}
}

func (o traceopt) evalOption(c evalctx) evalctx {
	c.log = o.log
	return c
}

// machine holds the state of one evaluation.
type machine struct {
	stack []float64
	log   *slog.Logger
}

// Eval evaluates the expression. Arithmetic follows IEEE 754, so division by
// zero gives an infinity or NaN rather than an error.
func (e *Expr) Eval(opts ...EvalOption) float64 {
	var c evalctx
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		c = opt.evalOption(c)
	}
	m := machine{
		stack: make([]float64, 0, 8),
		log:   c.log,
	}
	e.n.eval(&m)
	if len(m.stack) != 1 {
		panic("calculator: inconsistent stack: " + strconv.Itoa(len(m.stack)) + " items (bad AST?)")
	}
	return m.stack[0]
}

func (m *machine) push(v float64) {
	m.stack = append(m.stack, v)
}

// pop removes the top from the stack and returns it.
func (m *machine) pop() float64 {
	r := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (m *machine) top() *float64 {
	return &m.stack[len(m.stack)-1]
}

// trace logs an operation if tracing is enabled.
func (m *machine) trace(kind nodeKind, l, r, v float64) {
	if m.log == nil {
		return
	}
	m.log.LogAttrs(context.Background(), slog.LevelDebug, "reduce",
		slog.String("op", opstr[kind]),
		slog.Float64("lhs", l),
		slog.Float64("rhs", r),
		slog.Float64("result", v),
	)
}

// eval pushes the node's value to the machine's stack.
func (n *node) eval(m *machine) {
	switch n.kind {
	case nodeNum:
		m.push(n.val)
	case nodeNeg:
		n.left.eval(m)
		v := m.top()
		*v = -*v
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		n.left.eval(m)
		n.right.eval(m)
		r := m.pop()
		l := m.top()
		v := arith(n.kind, *l, r)
		m.trace(n.kind, *l, r, v)
		*l = v
	default:
		panic("calculator: invalid AST node " + n.kind.String())
	}
}

// arith applies a binary operator.
func arith(kind nodeKind, l, r float64) float64 {
	switch kind {
	case nodeAdd:
		return l + r
	case nodeSub:
		return l - r
	case nodeMul:
		return l * r
	case nodeDiv:
		return l / r
	case nodeMod:
		return mod(l, r)
	case nodePow:
		return math.Pow(l, r)
	default:
		panic("calculator: not an operator: " + kind.String())
	}
}

// mod is the floored remainder of x/y: the result has the sign of y.
func mod(x, y float64) float64 {
	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return r
}

// Eval is a shortcut to parse an expression and return its result.
func Eval(src string, opts ...ParseOption) (float64, error) {
	a, err := Parse(src, opts...)
	if err != nil {
		return 0, err
	}
	return a.Eval(), nil
}

package jsonpath

import "go.jsondoc.dev/jsondoc/node"

// evalBool evaluates a filter expression with item as the current (@)
// node, applying && and || with short-circuit semantics so a missing
// sub-path on one side never taints the other.
func evalBool(item *node.Node, expr Expr) bool {
	switch e := expr.(type) {
	case AndExpr:
		return evalBool(item, e.Left) && evalBool(item, e.Right)

	case OrExpr:
		return evalBool(item, e.Left) || evalBool(item, e.Right)

	case CompareExpr:
		return evalCompare(item, e)

	case PathExpr:
		_, ok := evalOperand(item, e)

		return ok

	case LiteralExpr:
		return literalTruthy(e)

	default:
		return false
	}
}

func literalTruthy(l LiteralExpr) bool {
	switch l.Kind {
	case LiteralBool:
		return l.Bool
	case LiteralNumber:
		return l.Num != 0
	case LiteralString:
		return l.Str != ""
	default:
		return false
	}
}

func evalCompare(item *node.Node, e CompareExpr) bool {
	left, leftOK := evalOperand(item, e.Left)
	right, rightOK := evalOperand(item, e.Right)

	if !leftOK || !rightOK {
		return false
	}

	return compareNodes(e.Op, left, right)
}

// evalOperand resolves one side of a comparison to a single node value.
// A [PathExpr] resolves against item and takes its first match, per the
// engine's single-element comparison semantics; a [LiteralExpr] resolves
// to itself.
func evalOperand(item *node.Node, expr Expr) (*node.Node, bool) {
	switch e := expr.(type) {
	case PathExpr:
		matches := []Result{{Value: item}}

		for _, step := range e.Steps {
			matches = applyStep(matches, step)
		}

		if len(matches) == 0 {
			return nil, false
		}

		return matches[0].Value, true

	case LiteralExpr:
		return literalNode(e), true

	default:
		return nil, false
	}
}

func literalNode(l LiteralExpr) *node.Node {
	switch l.Kind {
	case LiteralString:
		return node.NewString(l.Str)
	case LiteralNumber:
		return node.NewNumber(l.Num, "")
	case LiteralBool:
		return node.NewBool(l.Bool)
	default:
		return node.NewNull()
	}
}

// compareNodes implements the engine's typed comparison rule: numeric
// operands compare by IEEE ordering, strings compare lexicographically by
// UTF-8 bytes, and any other pairing (including a type mismatch) is
// false for every operator.
func compareNodes(op string, a, b *node.Node) bool {
	switch {
	case a.Kind().IsNumeric() && b.Kind().IsNumeric():
		return compareOrdered(op, a.Float(), b.Float())

	case a.Kind() == node.KindString && b.Kind() == node.KindString:
		return compareOrdered(op, a.String(), b.String())

	default:
		return false
	}
}

func compareOrdered[T int64 | float64 | string](op string, a, b T) bool {
	switch op {
	case "==":
		return a == b
	case "!=":
		return a != b
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	default:
		return false
	}
}

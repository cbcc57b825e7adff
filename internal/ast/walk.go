package ast

// Children returns the direct sub-expressions of id in source order.
// Closure parameter defaults come before the body.
func (e *Exprs) Children(id ExprID) []ExprID {
	expr := e.Get(id)
	if expr == nil {
		return nil
	}
	var out []ExprID
	add := func(ids ...ExprID) {
		for _, c := range ids {
			if c.IsValid() {
				out = append(out, c)
			}
		}
	}
	switch expr.Kind {
	case ExprArray, ExprTuple:
		data, _ := e.List(id)
		for _, el := range data.Elems {
			add(el.Value)
		}
	case ExprCall:
		data, _ := e.Call(id)
		add(data.Target)
		for _, el := range data.Args {
			add(el.Value)
		}
	case ExprBinary:
		data, _ := e.Binary(id)
		add(data.Left, data.Right)
	case ExprUnary:
		data, _ := e.Unary(id)
		add(data.Operand)
	case ExprParen:
		data, _ := e.Paren(id)
		add(data.Inner)
	case ExprIndex:
		data, _ := e.Index(id)
		add(data.Target, data.Index)
	case ExprDot:
		data, _ := e.Dot(id)
		add(data.Target, data.Member)
	case ExprClosure:
		data, _ := e.Closure(id)
		for _, p := range data.Params {
			add(p.Arg.Default)
		}
		add(data.Body)
	case ExprBlock:
		data, _ := e.Block(id)
		add(data.Items...)
	}
	return out
}

// Inspect walks the tree rooted at id depth-first in source order.
// Returning false from fn skips the children of that node.
func (e *Exprs) Inspect(id ExprID, fn func(ExprID, *Expr) bool) {
	stack := []ExprID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		expr := e.Get(cur)
		if expr == nil || !fn(cur, expr) {
			continue
		}
		kids := e.Children(cur)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
}

// CountBad returns the number of Bad nodes under id, id included.
func (e *Exprs) CountBad(id ExprID) int {
	n := 0
	e.Inspect(id, func(_ ExprID, x *Expr) bool {
		if x.Kind == ExprBad {
			n++
		}
		return true
	})
	return n
}

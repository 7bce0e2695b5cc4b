// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package parser

// Visitor is an interface implemented by anything needed to act on nodes walked
// during a node traversal. A Visitor's Visit method is invoked for each node
// encountered by Walk. If the result visitor w is not nil, Walk visits each of
// the children of node with the visitor w, followed by a call of
// w.VisitEnd(node).
type Visitor interface {
	Visit(node Node) (w Visitor, n Node, err error)
	VisitEnd(node Node) (Node, error)
}

// Walk traverses an AST in depth-first order. Nodes returned by the visitor
// replace the nodes visited.
func Walk(v Visitor, node Node) (Node, error) {
	return walk(v, node)
}

func walk(v Visitor, node Node) (_ Node, err error) {
	if v, node, err = v.Visit(node); err != nil {
		return node, err
	} else if v == nil {
		return node, nil
	}

	switch n := node.(type) {
	case *SelectStatement:
		for i := range n.Columns {
			if col, err := walk(v, n.Columns[i]); err != nil {
				return node, err
			} else if col != nil {
				n.Columns[i] = col.(*ResultColumn)
			} else {
				n.Columns[i] = nil
			}
		}

	case *ResultColumn:
		if err := walkExpr(v, &n.Expr); err != nil {
			return node, err
		}
		if err := walkIdent(v, &n.Alias); err != nil {
			return node, err
		}

	case *UnaryExpr:
		if err := walkExpr(v, &n.X); err != nil {
			return node, err
		}

	case *ParenExpr:
		if err := walkExpr(v, &n.X); err != nil {
			return node, err
		}

	case *CastExpr:
		if err := walkExpr(v, &n.X); err != nil {
			return node, err
		}
		if err := walkType(v, &n.Type); err != nil {
			return node, err
		}

	case *TypedLit:
		if err := walkType(v, &n.Type); err != nil {
			return node, err
		}
		if n.Value != nil {
			if value, err := walk(v, n.Value); err != nil {
				return node, err
			} else if value != nil {
				n.Value = value.(*StringLit)
			} else {
				n.Value = nil
			}
		}

	case *Type:
		if err := walkIdent(v, &n.Name); err != nil {
			return node, err
		}
		for i := range n.Args {
			if arg, err := walk(v, n.Args[i]); err != nil {
				return node, err
			} else if arg != nil {
				n.Args[i] = arg.(*IntegerLit)
			}
		}
	}

	// Revisit original node after its children have been processed.
	return v.VisitEnd(node)
}

// VisitFunc represents a function type that implements Visitor.
// Only executes on node entry.
type VisitFunc func(Node) (Node, error)

// Visit executes fn. Walk visits node children if fn returns true.
func (fn VisitFunc) Visit(node Node) (Visitor, Node, error) {
	node, err := fn(node)
	if err != nil {
		return nil, nil, err
	}
	return fn, node, nil
}

// VisitEnd is a no-op.
func (fn VisitFunc) VisitEnd(node Node) (Node, error) { return node, nil }

// VisitEndFunc represents a function type that implements Visitor.
// Only executes on node exit.
type VisitEndFunc func(Node) (Node, error)

// Visit is a no-op.
func (fn VisitEndFunc) Visit(node Node) (Visitor, Node, error) { return fn, node, nil }

// VisitEnd executes fn.
func (fn VisitEndFunc) VisitEnd(node Node) (Node, error) { return fn(node) }

// Inspect traverses an AST in depth-first order, calling fn for each node.
// Children of a node are skipped when fn returns false. The tree is not
// modified.
func Inspect(node Node, fn func(Node) bool) {
	_, _ = walk(inspector(fn), node)
}

type inspector func(Node) bool

func (fn inspector) Visit(node Node) (Visitor, Node, error) {
	if !fn(node) {
		return nil, node, nil
	}
	return fn, node, nil
}

func (fn inspector) VisitEnd(node Node) (Node, error) { return node, nil }

func walkIdent(v Visitor, x **Ident) error {
	if *x == nil {
		return nil
	}

	ident, err := walk(v, *x)
	if err != nil {
		return err
	} else if ident != nil {
		*x = ident.(*Ident)
	} else {
		*x = nil
	}
	return nil
}

func walkType(v Visitor, x **Type) error {
	if *x == nil {
		return nil
	}

	typ, err := walk(v, *x)
	if err != nil {
		return err
	} else if typ != nil {
		*x = typ.(*Type)
	} else {
		*x = nil
	}
	return nil
}

func walkExpr(v Visitor, x *Expr) error {
	if *x == nil {
		return nil
	}
	if other, err := walk(v, *x); err != nil {
		return err
	} else if other != nil {
		*x = other.(Expr)
	} else {
		*x = nil
	}
	return nil
}

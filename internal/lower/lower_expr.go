package lower

import (
	"jsir/internal/ast"
	"jsir/internal/hir"
)

// expr lowers an expression into instructions on the open block and
// returns the place holding its value.
func (l *lowerer) expr(id ast.ExprID) hir.Place {
	expr := l.tree.Expr(id)
	if expr == nil {
		return hir.Place{Ident: l.b.MakeTemporary()}
	}
	switch expr.Kind {
	case ast.ExprIdent:
		return l.identUse(id)

	case ast.ExprLit:
		return l.emit(hir.Value{
			Kind:      hir.ValPrimitive,
			Primitive: hir.PrimitiveValue{Raw: expr.Lit.Raw},
		}, expr.Span)

	case ast.ExprMember:
		return l.memberLoad(expr)

	case ast.ExprAssign:
		return l.assign(expr)

	case ast.ExprUpdate:
		return l.update(expr)

	case ast.ExprCall, ast.ExprNew:
		callee := l.expr(expr.Call.Callee)
		args := make([]hir.Place, 0, len(expr.Call.Args))
		for _, arg := range expr.Call.Args {
			args = append(args, l.expr(arg))
		}
		call := hir.CallValue{Callee: callee, Args: args}
		if expr.Kind == ast.ExprNew {
			return l.emit(hir.Value{Kind: hir.ValNew, New: call}, expr.Span)
		}
		return l.emit(hir.Value{Kind: hir.ValCall, Call: call}, expr.Span)

	case ast.ExprBinary:
		left := l.expr(expr.Binary.Left)
		right := l.expr(expr.Binary.Right)
		return l.emit(hir.Value{
			Kind:   hir.ValBinary,
			Binary: hir.BinaryValue{Op: expr.Binary.Op, Left: left, Right: right},
		}, expr.Span)

	case ast.ExprUnary:
		arg := l.expr(expr.Unary.Arg)
		return l.emit(hir.Value{
			Kind:  hir.ValUnary,
			Unary: hir.UnaryValue{Op: expr.Unary.Op, Arg: arg},
		}, expr.Span)

	case ast.ExprSeq:
		var last hir.Place
		for _, e := range expr.Seq.Exprs {
			last = l.expr(e)
		}
		if !last.Ident.ID.IsValid() {
			last = l.emit(hir.Value{Kind: hir.ValPrimitive}, expr.Span)
		}
		return last

	case ast.ExprArray:
		elements := make([]hir.Place, 0, len(expr.Array.Elements))
		for _, el := range expr.Array.Elements {
			if !el.IsValid() {
				elements = append(elements, l.emit(hir.Value{Kind: hir.ValPrimitive}, expr.Span))
				continue
			}
			elements = append(elements, l.expr(el))
		}
		return l.emit(hir.Value{
			Kind:  hir.ValArray,
			Array: hir.ArrayValue{Elements: elements},
		}, expr.Span)

	case ast.ExprObject:
		return l.object(expr)

	case ast.ExprJSXElement:
		return l.jsxElement(expr)

	case ast.ExprJSXFragment:
		children := make([]hir.Place, 0, len(expr.JSXFragment.Children))
		for _, child := range expr.JSXFragment.Children {
			children = append(children, l.expr(child))
		}
		return l.emit(hir.Value{
			Kind:        hir.ValJSXFragment,
			JSXFragment: hir.JSXFragmentValue{Children: children},
		}, expr.Span)

	case ast.ExprThis, ast.ExprSuper:
		return l.unsupported(expr.Span, "this/super expression")

	case ast.ExprCond:
		return l.unsupported(expr.Span, "conditional expression")

	case ast.ExprFunc, ast.ExprArrow:
		return l.unsupported(expr.Span, "function expression body")

	case ast.ExprSpread:
		l.expr(expr.Spread.Arg)
		return l.unsupported(expr.Span, "spread element")

	case ast.ExprTemplate:
		for _, e := range expr.Template.Exprs {
			l.expr(e)
		}
		return l.unsupported(expr.Span, "template literal")

	default:
		return l.unsupported(expr.Span, "expression")
	}
}

// identUse loads a resolved binding, or the global of that name.
func (l *lowerer) identUse(id ast.ExprID) hir.Place {
	expr := l.tree.Expr(id)
	place, ok := l.placeFor(ast.ExprRef(id), expr.Ident.Name, expr.Span, false)
	if !ok {
		return l.emit(hir.Value{
			Kind:       hir.ValLoadGlobal,
			LoadGlobal: hir.LoadGlobalValue{Name: expr.Ident.Name},
		}, expr.Span)
	}
	return l.emit(hir.Value{
		Kind:      hir.ValLoadLocal,
		LoadLocal: hir.LoadLocalValue{Place: place},
	}, expr.Span)
}

func (l *lowerer) memberLoad(expr *ast.Expr) hir.Place {
	object := l.expr(expr.Member.Object)
	if expr.Member.Computed {
		index := l.expr(expr.Member.Property)
		return l.emit(hir.Value{
			Kind:         hir.ValComputedLoad,
			ComputedLoad: hir.ComputedLoadValue{Object: object, Index: index},
		}, expr.Span)
	}
	prop := l.tree.Expr(expr.Member.Property)
	if prop == nil || prop.Kind != ast.ExprIdent {
		return l.unsupported(expr.Span, "member property")
	}
	return l.emit(hir.Value{
		Kind:         hir.ValPropertyLoad,
		PropertyLoad: hir.PropertyLoadValue{Object: object, Property: prop.Ident.Name},
	}, expr.Span)
}

func (l *lowerer) assign(expr *ast.Expr) hir.Place {
	as := &expr.Assign
	if as.Op == ast.AssignCompound {
		return l.compoundAssign(expr)
	}
	value := l.expr(as.Right)
	switch {
	case as.TargetPat.IsValid():
		l.storePattern(as.TargetPat, value)
		return value
	case as.TargetExpr.IsValid():
		return l.memberStore(as.TargetExpr, value, expr)
	default:
		return l.unsupported(expr.Span, "assignment target")
	}
}

// compoundAssign desugars `x op= v` into a load, the binary op and a
// store; the identifier was already checked to be a lone name or member
// chain upstream.
func (l *lowerer) compoundAssign(expr *ast.Expr) hir.Place {
	as := &expr.Assign
	if as.TargetPat.IsValid() {
		pat := l.tree.Pat(as.TargetPat)
		if pat == nil || pat.Kind != ast.PatIdent {
			l.expr(as.Right)
			return l.unsupported(expr.Span, "compound assignment target")
		}
		target, ok := l.placeFor(ast.PatRef(as.TargetPat), pat.Ident.Name, pat.Span, false)
		var current hir.Place
		if ok {
			current = l.emit(hir.Value{
				Kind:      hir.ValLoadLocal,
				LoadLocal: hir.LoadLocalValue{Place: target},
			}, pat.Span)
		} else {
			current = l.emit(hir.Value{
				Kind:       hir.ValLoadGlobal,
				LoadGlobal: hir.LoadGlobalValue{Name: pat.Ident.Name},
			}, pat.Span)
		}
		right := l.expr(as.Right)
		result := l.emit(hir.Value{
			Kind:   hir.ValBinary,
			Binary: hir.BinaryValue{Op: as.OpRaw, Left: current, Right: right},
		}, expr.Span)
		if ok {
			l.emit(hir.Value{
				Kind:       hir.ValStoreLocal,
				StoreLocal: hir.StoreLocalValue{Lvalue: target, Value: result},
			}, expr.Span)
		}
		return result
	}
	if as.TargetExpr.IsValid() {
		current := l.expr(as.TargetExpr)
		right := l.expr(as.Right)
		result := l.emit(hir.Value{
			Kind:   hir.ValBinary,
			Binary: hir.BinaryValue{Op: as.OpRaw, Left: current, Right: right},
		}, expr.Span)
		return l.memberStore(as.TargetExpr, result, expr)
	}
	l.expr(as.Right)
	return l.unsupported(expr.Span, "compound assignment target")
}

func (l *lowerer) memberStore(targetID ast.ExprID, value hir.Place, at *ast.Expr) hir.Place {
	target := l.tree.Expr(targetID)
	if target == nil || target.Kind != ast.ExprMember {
		return l.unsupported(at.Span, "assignment target")
	}
	object := l.expr(target.Member.Object)
	if target.Member.Computed {
		index := l.expr(target.Member.Property)
		l.emit(hir.Value{
			Kind:          hir.ValComputedStore,
			ComputedStore: hir.ComputedStoreValue{Object: object, Index: index, Value: value},
		}, at.Span)
		return value
	}
	prop := l.tree.Expr(target.Member.Property)
	if prop == nil || prop.Kind != ast.ExprIdent {
		return l.unsupported(at.Span, "member property")
	}
	l.emit(hir.Value{
		Kind:          hir.ValPropertyStore,
		PropertyStore: hir.PropertyStoreValue{Object: object, Property: prop.Ident.Name, Value: value},
	}, at.Span)
	return value
}

// update desugars ++/-- into load, binary with 1, store.
func (l *lowerer) update(expr *ast.Expr) hir.Place {
	arg := l.tree.Expr(expr.Update.Arg)
	if arg == nil || arg.Kind != ast.ExprIdent {
		return l.unsupported(expr.Span, "update target")
	}
	target, ok := l.placeFor(ast.ExprRef(expr.Update.Arg), arg.Ident.Name, arg.Span, false)
	if !ok {
		return l.unsupported(expr.Span, "update of unresolved name")
	}
	current := l.emit(hir.Value{
		Kind:      hir.ValLoadLocal,
		LoadLocal: hir.LoadLocalValue{Place: target},
	}, arg.Span)
	one := l.emit(hir.Value{Kind: hir.ValPrimitive}, expr.Span)
	result := l.emit(hir.Value{
		Kind:   hir.ValBinary,
		Binary: hir.BinaryValue{Op: expr.Update.OpRaw, Left: current, Right: one},
	}, expr.Span)
	l.emit(hir.Value{
		Kind:       hir.ValStoreLocal,
		StoreLocal: hir.StoreLocalValue{Lvalue: target, Value: result},
	}, expr.Span)
	if expr.Update.Prefix {
		return result
	}
	return current
}

func (l *lowerer) object(expr *ast.Expr) hir.Place {
	entries := make([]hir.ObjectEntry, 0, len(expr.Object.Props))
	for _, prop := range expr.Object.Props {
		if prop.IsSpread || prop.Computed {
			l.expr(prop.Value)
			l.unsupported(prop.Span, "object spread/computed key")
			continue
		}
		key := l.tree.Expr(prop.Key)
		if key == nil || (key.Kind != ast.ExprIdent && key.Kind != ast.ExprLit) {
			l.expr(prop.Value)
			continue
		}
		name := key.Ident.Name
		if key.Kind == ast.ExprLit {
			name = key.Lit.Raw
		}
		entries = append(entries, hir.ObjectEntry{Key: name, Value: l.expr(prop.Value)})
	}
	return l.emit(hir.Value{
		Kind:   hir.ValObject,
		Object: hir.ObjectValue{Entries: entries},
	}, expr.Span)
}

func (l *lowerer) jsxElement(expr *ast.Expr) hir.Place {
	el := &expr.JSXElement
	value := hir.JSXElementValue{}

	root := l.tree.Expr(el.Name.Root)
	if root != nil && root.Kind == ast.ExprJSXIdent {
		if place, ok := l.placeFor(ast.ExprRef(el.Name.Root), root.JSXIdent.Name, el.Name.Span, false); ok {
			tag := l.emit(hir.Value{
				Kind:      hir.ValLoadLocal,
				LoadLocal: hir.LoadLocalValue{Place: place},
			}, el.Name.Span)
			value.Tag = tag
		} else {
			value.TagName = el.Name.Full
		}
	} else {
		value.TagName = el.Name.Full
	}

	for _, attr := range el.Attrs {
		if !attr.Value.IsValid() {
			continue
		}
		place := l.expr(attr.Value)
		if attr.IsSpread {
			l.unsupported(attr.Span, "JSX spread attribute")
			continue
		}
		value.Attrs = append(value.Attrs, hir.JSXAttribute{Name: attr.Name, Value: place})
	}
	for _, child := range el.Children {
		value.Children = append(value.Children, l.expr(child))
	}
	return l.emit(hir.Value{Kind: hir.ValJSXElement, JSXElement: value}, expr.Span)
}

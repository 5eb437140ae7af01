package ast

import (
	"encoding/json"
	"fmt"

	"jsir/internal/source"
)

// DecodeJSON ingests a parsed program in the standard ESTree JSON form (as
// produced by acorn or babel) and rebuilds it inside a Tree. The parser
// itself is an external collaborator; this is only the interchange layer.
func DecodeJSON(file source.FileID, data []byte, strings *source.Interner) (*Tree, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode estree: %w", err)
	}
	d := &decoder{
		tree: NewTree(file, Hints{}, strings),
		file: file,
	}
	if typ := nodeType(root); typ != "Program" {
		return nil, fmt.Errorf("decode estree: expected Program root, got %q", typ)
	}
	d.tree.Span = d.span(root)
	for _, raw := range nodeList(root, "body") {
		id := d.stmt(raw)
		if d.err != nil {
			return nil, d.err
		}
		if id.IsValid() {
			d.tree.Body = append(d.tree.Body, id)
		}
	}
	return d.tree, d.err
}

type decoder struct {
	tree *Tree
	file source.FileID
	err  error
}

func (d *decoder) failf(format string, args ...any) {
	if d.err == nil {
		d.err = fmt.Errorf("decode estree: "+format, args...)
	}
}

func nodeType(n map[string]any) string {
	s, _ := n["type"].(string)
	return s
}

func nodeMap(n map[string]any, key string) map[string]any {
	m, _ := n[key].(map[string]any)
	return m
}

func nodeList(n map[string]any, key string) []map[string]any {
	raw, _ := n[key].([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		m, _ := item.(map[string]any)
		out = append(out, m) // nil entries preserved as holes
	}
	return out
}

func nodeString(n map[string]any, key string) string {
	s, _ := n[key].(string)
	return s
}

func nodeBool(n map[string]any, key string) bool {
	b, _ := n[key].(bool)
	return b
}

func (d *decoder) span(n map[string]any) source.Span {
	sp := source.Span{File: d.file}
	if start, ok := n["start"].(float64); ok {
		sp.Start = uint32(start)
		if end, ok := n["end"].(float64); ok {
			sp.End = uint32(end)
		}
		return sp
	}
	if rng, ok := n["range"].([]any); ok && len(rng) == 2 {
		if s, ok := rng[0].(float64); ok {
			sp.Start = uint32(s)
		}
		if e, ok := rng[1].(float64); ok {
			sp.End = uint32(e)
		}
	}
	return sp
}

func (d *decoder) intern(s string) source.StringID {
	return d.tree.Strings.Intern(s)
}

// isPatternType classifies ESTree node types that stand in pattern position.
func isPatternType(typ string) bool {
	switch typ {
	case "Identifier", "ArrayPattern", "ObjectPattern", "RestElement", "AssignmentPattern":
		return true
	default:
		return false
	}
}

func (d *decoder) stmt(n map[string]any) StmtID {
	if d.err != nil || n == nil {
		return NoStmtID
	}
	span := d.span(n)
	switch typ := nodeType(n); typ {
	case "BlockStatement":
		var body []StmtID
		for _, raw := range nodeList(n, "body") {
			if id := d.stmt(raw); id.IsValid() {
				body = append(body, id)
			}
		}
		return d.tree.NewStmt(Stmt{Kind: StmtBlock, Span: span, Block: BlockStmt{Body: body}})

	case "VariableDeclaration":
		return d.varDecl(n, span)

	case "FunctionDeclaration":
		fn := d.fn(n)
		return d.tree.NewStmt(Stmt{Kind: StmtFuncDecl, Span: span, FuncDecl: FuncDeclStmt{Fn: fn}})

	case "ExpressionStatement":
		return d.tree.NewStmt(Stmt{Kind: StmtExpr, Span: span, Expr: ExprStmtData{Expr: d.expr(nodeMap(n, "expression"))}})

	case "IfStatement":
		return d.tree.NewStmt(Stmt{Kind: StmtIf, Span: span, If: IfStmt{
			Test: d.expr(nodeMap(n, "test")),
			Cons: d.stmt(nodeMap(n, "consequent")),
			Alt:  d.stmt(nodeMap(n, "alternate")),
		}})

	case "ForStatement":
		st := ForStmt{
			Test:   d.expr(nodeMap(n, "test")),
			Update: d.expr(nodeMap(n, "update")),
			Body:   d.stmt(nodeMap(n, "body")),
		}
		if init := nodeMap(n, "init"); init != nil {
			if nodeType(init) == "VariableDeclaration" {
				st.InitStmt = d.stmt(init)
			} else {
				st.InitExpr = d.expr(init)
			}
		}
		return d.tree.NewStmt(Stmt{Kind: StmtFor, Span: span, For: st})

	case "ForInStatement", "ForOfStatement":
		st := ForEachStmt{
			Right: d.expr(nodeMap(n, "right")),
			Body:  d.stmt(nodeMap(n, "body")),
		}
		if left := nodeMap(n, "left"); left != nil {
			if nodeType(left) == "VariableDeclaration" {
				st.LeftStmt = d.stmt(left)
			} else {
				st.LeftPat = d.pat(left)
			}
		}
		kind := StmtForIn
		if typ == "ForOfStatement" {
			kind = StmtForOf
		}
		return d.tree.NewStmt(Stmt{Kind: kind, Span: span, ForEach: st})

	case "WhileStatement":
		return d.tree.NewStmt(Stmt{Kind: StmtWhile, Span: span, While: WhileStmt{
			Test: d.expr(nodeMap(n, "test")),
			Body: d.stmt(nodeMap(n, "body")),
		}})

	case "DoWhileStatement":
		return d.tree.NewStmt(Stmt{Kind: StmtDoWhile, Span: span, DoWhile: DoWhileStmt{
			Body: d.stmt(nodeMap(n, "body")),
			Test: d.expr(nodeMap(n, "test")),
		}})

	case "SwitchStatement":
		sw := SwitchStmt{Disc: d.expr(nodeMap(n, "discriminant"))}
		for _, raw := range nodeList(n, "cases") {
			if raw == nil {
				continue
			}
			c := SwitchCase{Span: d.span(raw), Test: d.expr(nodeMap(raw, "test"))}
			for _, s := range nodeList(raw, "consequent") {
				if id := d.stmt(s); id.IsValid() {
					c.Body = append(c.Body, id)
				}
			}
			sw.Cases = append(sw.Cases, c)
		}
		return d.tree.NewStmt(Stmt{Kind: StmtSwitch, Span: span, Switch: sw})

	case "BreakStatement", "ContinueStatement":
		br := BranchStmt{}
		if label := nodeMap(n, "label"); label != nil {
			br.Label = d.intern(nodeString(label, "name"))
			br.LabelSpan = d.span(label)
		}
		kind := StmtBreak
		if typ == "ContinueStatement" {
			kind = StmtContinue
		}
		return d.tree.NewStmt(Stmt{Kind: kind, Span: span, Branch: br})

	case "LabeledStatement":
		label := nodeMap(n, "label")
		return d.tree.NewStmt(Stmt{Kind: StmtLabeled, Span: span, Labeled: LabeledStmt{
			Label:     d.intern(nodeString(label, "name")),
			LabelSpan: d.span(label),
			Body:      d.stmt(nodeMap(n, "body")),
		}})

	case "ReturnStatement":
		return d.tree.NewStmt(Stmt{Kind: StmtReturn, Span: span, Return: ReturnStmt{
			Arg: d.expr(nodeMap(n, "argument")),
		}})

	case "TryStatement":
		st := TryStmt{
			Block:   d.stmt(nodeMap(n, "block")),
			Finally: d.stmt(nodeMap(n, "finalizer")),
		}
		if handler := nodeMap(n, "handler"); handler != nil {
			st.HasCatch = true
			if param := nodeMap(handler, "param"); param != nil {
				st.CatchParam = d.pat(param)
			}
			st.CatchBody = d.stmt(nodeMap(handler, "body"))
		}
		return d.tree.NewStmt(Stmt{Kind: StmtTry, Span: span, Try: st})

	case "ImportDeclaration":
		st := ImportStmt{}
		if src := nodeMap(n, "source"); src != nil {
			st.Source = d.intern(nodeString(src, "value"))
		}
		for _, raw := range nodeList(n, "specifiers") {
			if raw == nil {
				continue
			}
			spec := ImportSpec{Span: d.span(raw)}
			switch nodeType(raw) {
			case "ImportDefaultSpecifier":
				spec.Kind = ImportDefault
			case "ImportNamespaceSpecifier":
				spec.Kind = ImportNamespace
			default:
				spec.Kind = ImportNamed
			}
			spec.Local = d.pat(nodeMap(raw, "local"))
			st.Specs = append(st.Specs, spec)
		}
		return d.tree.NewStmt(Stmt{Kind: StmtImport, Span: span, Import: st})

	case "ThrowStatement":
		return d.tree.NewStmt(Stmt{Kind: StmtThrow, Span: span, Throw: ThrowStmt{
			Arg: d.expr(nodeMap(n, "argument")),
		}})

	case "EmptyStatement":
		return d.tree.NewStmt(Stmt{Kind: StmtEmpty, Span: span})

	default:
		d.failf("unsupported statement type %q", typ)
		return NoStmtID
	}
}

func (d *decoder) varDecl(n map[string]any, span source.Span) StmtID {
	st := VarDeclStmt{}
	switch nodeString(n, "kind") {
	case "var":
		st.DeclKind = VarVar
	case "let":
		st.DeclKind = VarLet
	default:
		st.DeclKind = VarConst
	}
	for _, raw := range nodeList(n, "declarations") {
		if raw == nil {
			continue
		}
		st.Decls = append(st.Decls, VarDeclarator{
			Pat:  d.pat(nodeMap(raw, "id")),
			Init: d.expr(nodeMap(raw, "init")),
		})
	}
	return d.tree.NewStmt(Stmt{Kind: StmtVarDecl, Span: span, VarDecl: st})
}

func (d *decoder) fn(n map[string]any) FnID {
	fn := Fn{Span: d.span(n), IsArrow: nodeType(n) == "ArrowFunctionExpression"}
	if id := nodeMap(n, "id"); id != nil {
		fn.NamePat = d.pat(id)
	}
	for _, raw := range nodeList(n, "params") {
		if raw == nil {
			continue
		}
		fn.Params = append(fn.Params, d.pat(raw))
	}
	if body := nodeMap(n, "body"); body != nil {
		if nodeType(body) == "BlockStatement" {
			fn.HasBlockBody = true
			for _, raw := range nodeList(body, "body") {
				if id := d.stmt(raw); id.IsValid() {
					fn.Body = append(fn.Body, id)
				}
			}
		} else {
			fn.ExprBody = d.expr(body)
		}
	}
	return d.tree.NewFn(fn)
}

func (d *decoder) pat(n map[string]any) PatID {
	if d.err != nil || n == nil {
		return NoPatID
	}
	span := d.span(n)
	switch typ := nodeType(n); typ {
	case "Identifier":
		return d.tree.NewPat(Pat{Kind: PatIdent, Span: span, Ident: IdentPat{Name: d.intern(nodeString(n, "name"))}})

	case "ArrayPattern":
		p := ArrayPat{}
		for _, raw := range nodeList(n, "elements") {
			if raw == nil {
				p.Elements = append(p.Elements, NoPatID)
				continue
			}
			p.Elements = append(p.Elements, d.pat(raw))
		}
		return d.tree.NewPat(Pat{Kind: PatArray, Span: span, Array: p})

	case "ObjectPattern":
		p := ObjectPat{}
		for _, raw := range nodeList(n, "properties") {
			if raw == nil {
				continue
			}
			prop := ObjectPatProp{Span: d.span(raw)}
			if nodeType(raw) == "RestElement" {
				prop.IsRest = true
				prop.Value = d.pat(nodeMap(raw, "argument"))
			} else {
				prop.Computed = nodeBool(raw, "computed")
				prop.Key = d.expr(nodeMap(raw, "key"))
				prop.Value = d.pat(nodeMap(raw, "value"))
			}
			p.Props = append(p.Props, prop)
		}
		return d.tree.NewPat(Pat{Kind: PatObject, Span: span, Object: p})

	case "RestElement":
		return d.tree.NewPat(Pat{Kind: PatRest, Span: span, Rest: RestPat{Arg: d.pat(nodeMap(n, "argument"))}})

	case "AssignmentPattern":
		return d.tree.NewPat(Pat{Kind: PatAssign, Span: span, Assign: AssignPat{
			Left:  d.pat(nodeMap(n, "left")),
			Right: d.expr(nodeMap(n, "right")),
		}})

	default:
		d.failf("unsupported pattern type %q", typ)
		return NoPatID
	}
}

func (d *decoder) expr(n map[string]any) ExprID {
	if d.err != nil || n == nil {
		return NoExprID
	}
	span := d.span(n)
	switch typ := nodeType(n); typ {
	case "Identifier":
		return d.tree.NewExpr(Expr{Kind: ExprIdent, Span: span, Ident: IdentExpr{Name: d.intern(nodeString(n, "name"))}})

	case "Literal", "NumericLiteral", "StringLiteral", "BooleanLiteral", "NullLiteral", "RegExpLiteral", "BigIntLiteral":
		return d.tree.NewExpr(Expr{Kind: ExprLit, Span: span, Lit: LitExpr{Raw: d.intern(nodeString(n, "raw"))}})

	case "ThisExpression":
		return d.tree.NewExpr(Expr{Kind: ExprThis, Span: span})

	case "Super":
		return d.tree.NewExpr(Expr{Kind: ExprSuper, Span: span})

	case "MemberExpression":
		return d.tree.NewExpr(Expr{Kind: ExprMember, Span: span, Member: MemberExpr{
			Object:   d.expr(nodeMap(n, "object")),
			Property: d.expr(nodeMap(n, "property")),
			Computed: nodeBool(n, "computed"),
		}})

	case "AssignmentExpression":
		e := AssignExpr{
			OpRaw: d.intern(nodeString(n, "operator")),
			Right: d.expr(nodeMap(n, "right")),
		}
		if nodeString(n, "operator") != "=" {
			e.Op = AssignCompound
		}
		if left := nodeMap(n, "left"); left != nil {
			if isPatternType(nodeType(left)) {
				e.TargetPat = d.pat(left)
			} else {
				e.TargetExpr = d.expr(left)
			}
		}
		return d.tree.NewExpr(Expr{Kind: ExprAssign, Span: span, Assign: e})

	case "UpdateExpression":
		return d.tree.NewExpr(Expr{Kind: ExprUpdate, Span: span, Update: UpdateExpr{
			Arg:    d.expr(nodeMap(n, "argument")),
			OpRaw:  d.intern(nodeString(n, "operator")),
			Prefix: nodeBool(n, "prefix"),
		}})

	case "CallExpression", "NewExpression":
		e := CallExpr{Callee: d.expr(nodeMap(n, "callee"))}
		for _, raw := range nodeList(n, "arguments") {
			if raw == nil {
				continue
			}
			e.Args = append(e.Args, d.expr(raw))
		}
		kind := ExprCall
		if typ == "NewExpression" {
			kind = ExprNew
		}
		return d.tree.NewExpr(Expr{Kind: kind, Span: span, Call: e})

	case "BinaryExpression", "LogicalExpression":
		return d.tree.NewExpr(Expr{Kind: ExprBinary, Span: span, Binary: BinaryExpr{
			Op:    d.intern(nodeString(n, "operator")),
			Left:  d.expr(nodeMap(n, "left")),
			Right: d.expr(nodeMap(n, "right")),
		}})

	case "UnaryExpression":
		return d.tree.NewExpr(Expr{Kind: ExprUnary, Span: span, Unary: UnaryExpr{
			Op:  d.intern(nodeString(n, "operator")),
			Arg: d.expr(nodeMap(n, "argument")),
		}})

	case "ConditionalExpression":
		return d.tree.NewExpr(Expr{Kind: ExprCond, Span: span, Cond: CondExpr{
			Test: d.expr(nodeMap(n, "test")),
			Cons: d.expr(nodeMap(n, "consequent")),
			Alt:  d.expr(nodeMap(n, "alternate")),
		}})

	case "ArrayExpression":
		e := ArrayExpr{}
		for _, raw := range nodeList(n, "elements") {
			if raw == nil {
				e.Elements = append(e.Elements, NoExprID)
				continue
			}
			e.Elements = append(e.Elements, d.expr(raw))
		}
		return d.tree.NewExpr(Expr{Kind: ExprArray, Span: span, Array: e})

	case "ObjectExpression":
		e := ObjectExpr{}
		for _, raw := range nodeList(n, "properties") {
			if raw == nil {
				continue
			}
			prop := ObjectProp{Span: d.span(raw)}
			if nodeType(raw) == "SpreadElement" {
				prop.IsSpread = true
				prop.Value = d.expr(nodeMap(raw, "argument"))
			} else {
				prop.Computed = nodeBool(raw, "computed")
				prop.Key = d.expr(nodeMap(raw, "key"))
				prop.Value = d.expr(nodeMap(raw, "value"))
			}
			e.Props = append(e.Props, prop)
		}
		return d.tree.NewExpr(Expr{Kind: ExprObject, Span: span, Object: e})

	case "FunctionExpression", "ArrowFunctionExpression":
		kind := ExprFunc
		if typ == "ArrowFunctionExpression" {
			kind = ExprArrow
		}
		return d.tree.NewExpr(Expr{Kind: kind, Span: span, Func: FuncExpr{Fn: d.fn(n)}})

	case "SequenceExpression":
		e := SeqExpr{}
		for _, raw := range nodeList(n, "expressions") {
			if raw == nil {
				continue
			}
			e.Exprs = append(e.Exprs, d.expr(raw))
		}
		return d.tree.NewExpr(Expr{Kind: ExprSeq, Span: span, Seq: e})

	case "SpreadElement":
		return d.tree.NewExpr(Expr{Kind: ExprSpread, Span: span, Spread: SpreadExpr{Arg: d.expr(nodeMap(n, "argument"))}})

	case "TemplateLiteral":
		e := TemplateExpr{}
		for _, raw := range nodeList(n, "expressions") {
			if raw == nil {
				continue
			}
			e.Exprs = append(e.Exprs, d.expr(raw))
		}
		return d.tree.NewExpr(Expr{Kind: ExprTemplate, Span: span, Template: e})

	case "JSXElement":
		return d.jsxElement(n, span)

	case "JSXFragment":
		e := JSXFragmentExpr{}
		for _, raw := range nodeList(n, "children") {
			if id := d.jsxChild(raw); id.IsValid() {
				e.Children = append(e.Children, id)
			}
		}
		return d.tree.NewExpr(Expr{Kind: ExprJSXFragment, Span: span, JSXFragment: e})

	case "JSXExpressionContainer":
		return d.expr(nodeMap(n, "expression"))

	case "JSXEmptyExpression":
		return NoExprID

	default:
		d.failf("unsupported expression type %q", typ)
		return NoExprID
	}
}

func (d *decoder) jsxChild(n map[string]any) ExprID {
	if n == nil {
		return NoExprID
	}
	switch nodeType(n) {
	case "JSXText":
		return NoExprID
	default:
		return d.expr(n)
	}
}

func (d *decoder) jsxElement(n map[string]any, span source.Span) ExprID {
	e := JSXElementExpr{}
	opening := nodeMap(n, "openingElement")
	if opening != nil {
		e.Name = d.jsxName(nodeMap(opening, "name"))
		for _, raw := range nodeList(opening, "attributes") {
			if raw == nil {
				continue
			}
			attr := JSXAttr{Span: d.span(raw)}
			if nodeType(raw) == "JSXSpreadAttribute" {
				attr.IsSpread = true
				attr.Value = d.expr(nodeMap(raw, "argument"))
			} else {
				if name := nodeMap(raw, "name"); name != nil {
					attr.Name = d.intern(nodeString(name, "name"))
				}
				if value := nodeMap(raw, "value"); value != nil {
					attr.Value = d.expr(value)
				}
			}
			e.Attrs = append(e.Attrs, attr)
		}
	}
	for _, raw := range nodeList(n, "children") {
		if id := d.jsxChild(raw); id.IsValid() {
			e.Children = append(e.Children, id)
		}
	}
	return d.tree.NewExpr(Expr{Kind: ExprJSXElement, Span: span, JSXElement: e})
}

// jsxName flattens a JSX element name, keeping the leftmost identifier as a
// node so scope analysis can attach a reference to it.
func (d *decoder) jsxName(n map[string]any) JSXName {
	name := JSXName{Span: d.span(n)}
	if n == nil {
		return name
	}
	switch nodeType(n) {
	case "JSXIdentifier":
		text := nodeString(n, "name")
		name.Kind = JSXNameIdent
		name.Full = d.intern(text)
		name.Root = d.tree.NewJSXIdent(d.span(n), text)
	case "JSXMemberExpression":
		name.Kind = JSXNameMember
		root, full := d.jsxMemberRoot(n)
		name.Root = root
		name.Full = d.intern(full)
	case "JSXNamespacedName":
		name.Kind = JSXNameNamespaced
		ns := nodeMap(n, "namespace")
		nsText := nodeString(ns, "name")
		name.Root = d.tree.NewJSXIdent(d.span(ns), nsText)
		name.Full = d.intern(nsText + ":" + nodeString(nodeMap(n, "name"), "name"))
	default:
		d.failf("unsupported JSX name type %q", nodeType(n))
	}
	return name
}

func (d *decoder) jsxMemberRoot(n map[string]any) (ExprID, string) {
	object := nodeMap(n, "object")
	property := nodeString(nodeMap(n, "property"), "name")
	switch nodeType(object) {
	case "JSXIdentifier":
		text := nodeString(object, "name")
		return d.tree.NewJSXIdent(d.span(object), text), text + "." + property
	case "JSXMemberExpression":
		root, full := d.jsxMemberRoot(object)
		return root, full + "." + property
	default:
		d.failf("unsupported JSX member object type %q", nodeType(object))
		return NoExprID, ""
	}
}

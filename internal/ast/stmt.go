package ast

import (
	"jsir/internal/source"
)

type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtBlock
	StmtVarDecl
	StmtFuncDecl
	StmtExpr
	StmtIf
	StmtFor
	StmtForIn
	StmtForOf
	StmtWhile
	StmtDoWhile
	StmtSwitch
	StmtBreak
	StmtContinue
	StmtLabeled
	StmtReturn
	StmtTry
	StmtImport
	StmtThrow
	StmtEmpty
)

// VarKind is the declaration keyword of a variable statement.
type VarKind uint8

const (
	VarVar VarKind = iota
	VarLet
	VarConst
)

func (k VarKind) String() string {
	switch k {
	case VarVar:
		return "var"
	case VarLet:
		return "let"
	default:
		return "const"
	}
}

// BlockScoped reports whether the keyword introduces block-scoped bindings.
func (k VarKind) BlockScoped() bool { return k != VarVar }

type VarDeclarator struct {
	Pat  PatID
	Init ExprID // optional
}

type VarDeclStmt struct {
	DeclKind VarKind
	Decls    []VarDeclarator
}

type BlockStmt struct {
	Body []StmtID
}

type FuncDeclStmt struct {
	Fn FnID
}

type ExprStmtData struct {
	Expr ExprID
}

type IfStmt struct {
	Test ExprID
	Cons StmtID
	Alt  StmtID // optional
}

type ForStmt struct {
	InitStmt StmtID // variable declaration, optional
	InitExpr ExprID // expression init, optional
	Test     ExprID // optional
	Update   ExprID // optional
	Body     StmtID
}

// ForEachStmt is the shared payload of for-in and for-of.
type ForEachStmt struct {
	LeftStmt StmtID // variable declaration, or
	LeftPat  PatID  // assignment pattern
	Right    ExprID
	Body     StmtID
}

type WhileStmt struct {
	Test ExprID
	Body StmtID
}

type DoWhileStmt struct {
	Body StmtID
	Test ExprID
}

type SwitchCase struct {
	Test ExprID // nil for default
	Body []StmtID
	Span source.Span
}

type SwitchStmt struct {
	Disc  ExprID
	Cases []SwitchCase
}

// BranchStmt is the shared payload of break and continue.
type BranchStmt struct {
	Label     source.StringID // NoStringID if unlabeled
	LabelSpan source.Span
}

type LabeledStmt struct {
	Label     source.StringID
	LabelSpan source.Span
	Body      StmtID
}

type ReturnStmt struct {
	Arg ExprID // optional
}

type TryStmt struct {
	Block      StmtID
	HasCatch   bool
	CatchParam PatID // optional even when HasCatch
	CatchBody  StmtID
	Finally    StmtID // optional
}

// ImportSpecKind mirrors the three ESTree import specifier forms.
type ImportSpecKind uint8

const (
	ImportNamed ImportSpecKind = iota
	ImportDefault
	ImportNamespace
)

type ImportSpec struct {
	Kind  ImportSpecKind
	Local PatID // identifier pattern carrying the bound name
	Span  source.Span
}

type ImportStmt struct {
	Specs  []ImportSpec
	Source source.StringID
}

type ThrowStmt struct {
	Arg ExprID
}

// Stmt is a kind-discriminated statement node; only the payload matching
// Kind is meaningful.
type Stmt struct {
	Kind StmtKind
	Span source.Span

	Block    BlockStmt
	VarDecl  VarDeclStmt
	FuncDecl FuncDeclStmt
	Expr     ExprStmtData
	If       IfStmt
	For      ForStmt
	ForEach  ForEachStmt
	While    WhileStmt
	DoWhile  DoWhileStmt
	Switch   SwitchStmt
	Branch   BranchStmt
	Labeled  LabeledStmt
	Return   ReturnStmt
	Try      TryStmt
	Import   ImportStmt
	Throw    ThrowStmt
}

// IsLoop reports whether the statement is one of the loop forms. Labeled
// statements wrapping a loop get a Loop-kind label because of this.
func (s *Stmt) IsLoop() bool {
	switch s.Kind {
	case StmtFor, StmtForIn, StmtForOf, StmtWhile, StmtDoWhile:
		return true
	default:
		return false
	}
}

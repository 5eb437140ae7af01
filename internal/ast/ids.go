package ast

type (
	StmtID uint32
	ExprID uint32
	PatID  uint32
	FnID   uint32
)

const (
	NoStmtID StmtID = 0
	NoExprID ExprID = 0
	NoPatID  PatID  = 0
	NoFnID   FnID   = 0
)

func (id StmtID) IsValid() bool { return id != NoStmtID }
func (id ExprID) IsValid() bool { return id != NoExprID }
func (id PatID) IsValid() bool  { return id != NoPatID }
func (id FnID) IsValid() bool   { return id != NoFnID }

// NodeClass distinguishes the arena a NodeRef points into.
type NodeClass uint8

const (
	NodeInvalid NodeClass = iota
	NodeStmt
	NodeExpr
	NodePat
	NodeFn
)

// NodeRef is a uniform handle to any syntax-tree node. The scope analysis
// publishes its results keyed by NodeRef, so later stages can look up the
// scope, declaration, reference, or label attached to a node they hold.
type NodeRef struct {
	Class NodeClass
	Index uint32
}

func (r NodeRef) IsValid() bool { return r.Class != NodeInvalid && r.Index != 0 }

func StmtRef(id StmtID) NodeRef { return NodeRef{Class: NodeStmt, Index: uint32(id)} }
func ExprRef(id ExprID) NodeRef { return NodeRef{Class: NodeExpr, Index: uint32(id)} }
func PatRef(id PatID) NodeRef   { return NodeRef{Class: NodePat, Index: uint32(id)} }
func FnRef(id FnID) NodeRef     { return NodeRef{Class: NodeFn, Index: uint32(id)} }

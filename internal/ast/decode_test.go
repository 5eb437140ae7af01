package ast

import (
	"testing"

	"jsir/internal/source"
)

// Acorn output for:
//
//	let x = 1;
//	function f(a) { return a + x; }
const fixture = `{
  "type": "Program",
  "start": 0, "end": 43,
  "body": [
    {
      "type": "VariableDeclaration",
      "start": 0, "end": 10,
      "kind": "let",
      "declarations": [
        {
          "type": "VariableDeclarator",
          "start": 4, "end": 9,
          "id": {"type": "Identifier", "start": 4, "end": 5, "name": "x"},
          "init": {"type": "Literal", "start": 8, "end": 9, "value": 1, "raw": "1"}
        }
      ]
    },
    {
      "type": "FunctionDeclaration",
      "start": 11, "end": 42,
      "id": {"type": "Identifier", "start": 20, "end": 21, "name": "f"},
      "params": [{"type": "Identifier", "start": 22, "end": 23, "name": "a"}],
      "body": {
        "type": "BlockStatement",
        "start": 25, "end": 42,
        "body": [
          {
            "type": "ReturnStatement",
            "start": 27, "end": 40,
            "argument": {
              "type": "BinaryExpression",
              "start": 34, "end": 39,
              "operator": "+",
              "left": {"type": "Identifier", "start": 34, "end": 35, "name": "a"},
              "right": {"type": "Identifier", "start": 38, "end": 39, "name": "x"}
            }
          }
        ]
      }
    }
  ]
}`

func TestDecodeJSONProgram(t *testing.T) {
	tree, err := DecodeJSON(source.FileID(1), []byte(fixture), nil)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if len(tree.Body) != 2 {
		t.Fatalf("body len = %d, want 2", len(tree.Body))
	}

	decl := tree.Stmt(tree.Body[0])
	if decl.Kind != StmtVarDecl || decl.VarDecl.DeclKind != VarLet {
		t.Fatalf("first statement = %+v", decl)
	}
	if len(decl.VarDecl.Decls) != 1 {
		t.Fatalf("declarator count = %d", len(decl.VarDecl.Decls))
	}
	pat := tree.Pat(decl.VarDecl.Decls[0].Pat)
	if pat.Kind != PatIdent || tree.Name(pat.Ident.Name) != "x" {
		t.Fatalf("declarator pattern = %+v", pat)
	}
	if pat.Span.Start != 4 || pat.Span.End != 5 {
		t.Fatalf("pattern span = %v", pat.Span)
	}

	fnStmt := tree.Stmt(tree.Body[1])
	if fnStmt.Kind != StmtFuncDecl {
		t.Fatalf("second statement kind = %v", fnStmt.Kind)
	}
	fn := tree.Fn(fnStmt.FuncDecl.Fn)
	if !fn.HasBlockBody || len(fn.Body) != 1 || len(fn.Params) != 1 {
		t.Fatalf("function shape = %+v", fn)
	}
	namePat := tree.Pat(fn.NamePat)
	if tree.Name(namePat.Ident.Name) != "f" {
		t.Fatalf("function name = %q", tree.Name(namePat.Ident.Name))
	}

	ret := tree.Stmt(fn.Body[0])
	if ret.Kind != StmtReturn {
		t.Fatalf("body statement kind = %v", ret.Kind)
	}
	bin := tree.Expr(ret.Return.Arg)
	if bin.Kind != ExprBinary || tree.Name(bin.Binary.Op) != "+" {
		t.Fatalf("return argument = %+v", bin)
	}
}

func TestDecodeJSONRejectsNonProgram(t *testing.T) {
	_, err := DecodeJSON(source.FileID(1), []byte(`{"type":"Identifier","name":"x"}`), nil)
	if err == nil {
		t.Fatalf("expected error for non-Program root")
	}
}

func TestDecodeJSONRangeFallback(t *testing.T) {
	data := `{"type":"Program","range":[0,5],"body":[
	  {"type":"ExpressionStatement","range":[0,5],
	   "expression":{"type":"Identifier","range":[0,4],"name":"spam"}}
	]}`
	tree, err := DecodeJSON(source.FileID(2), []byte(data), nil)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	expr := tree.Expr(tree.Stmt(tree.Body[0]).Expr.Expr)
	if expr.Span.End != 4 {
		t.Fatalf("span from range = %v", expr.Span)
	}
}

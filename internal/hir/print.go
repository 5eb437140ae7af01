package hir

import (
	"fmt"
	"io"
	"strings"

	"jsir/internal/source"
)

// Dump writes a human-readable representation of a unit, one block per
// paragraph in map order.
func Dump(w io.Writer, u *Unit, strs *source.Interner) error {
	if w == nil || u == nil {
		return nil
	}
	var err error
	u.Blocks.Each(func(b *BasicBlock) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, "bb%d (%s) preds=%s\n", b.ID, b.Kind, fmtBlockList(b.Preds))
		for _, instr := range b.Instrs {
			if err != nil {
				return
			}
			_, err = fmt.Fprintf(w, "  i%d %s = %s\n", instr.ID, fmtPlace(instr.Lvalue, strs), fmtValue(&instr.Value, strs))
		}
		if err == nil {
			_, err = fmt.Fprintf(w, "  t%d %s\n", b.Terminal.ID, fmtTerminal(&b.Terminal, strs))
		}
	})
	return err
}

// DumpString is Dump into a string, for tests and trace output.
func DumpString(u *Unit, strs *source.Interner) string {
	var sb strings.Builder
	_ = Dump(&sb, u, strs)
	return sb.String()
}

func fmtBlockList(ids []BlockID) string {
	if len(ids) == 0 {
		return "[]"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("bb%d", id)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func lookupName(strs *source.Interner, id source.StringID) string {
	if strs == nil || !id.IsValid() {
		return ""
	}
	s, _ := strs.Lookup(id)
	return s
}

func fmtPlace(p Place, strs *source.Interner) string {
	if name := lookupName(strs, p.Ident.Name); name != "" {
		return fmt.Sprintf("%s$%d", name, p.Ident.ID)
	}
	return fmt.Sprintf("$%d", p.Ident.ID)
}

func fmtPlaceList(places []Place, strs *source.Interner) string {
	parts := make([]string, len(places))
	for i, p := range places {
		parts[i] = fmtPlace(p, strs)
	}
	return strings.Join(parts, ", ")
}

func fmtValue(v *Value, strs *source.Interner) string {
	switch v.Kind {
	case ValPrimitive:
		return fmt.Sprintf("primitive %s", lookupName(strs, v.Primitive.Raw))
	case ValLoadLocal:
		return fmt.Sprintf("load %s", fmtPlace(v.LoadLocal.Place, strs))
	case ValLoadGlobal:
		return fmt.Sprintf("global %s", lookupName(strs, v.LoadGlobal.Name))
	case ValStoreLocal:
		return fmt.Sprintf("store %s = %s", fmtPlace(v.StoreLocal.Lvalue, strs), fmtPlace(v.StoreLocal.Value, strs))
	case ValBinary:
		return fmt.Sprintf("%s %s %s", fmtPlace(v.Binary.Left, strs), lookupName(strs, v.Binary.Op), fmtPlace(v.Binary.Right, strs))
	case ValUnary:
		return fmt.Sprintf("%s%s", lookupName(strs, v.Unary.Op), fmtPlace(v.Unary.Arg, strs))
	case ValCall:
		return fmt.Sprintf("call %s(%s)", fmtPlace(v.Call.Callee, strs), fmtPlaceList(v.Call.Args, strs))
	case ValNew:
		return fmt.Sprintf("new %s(%s)", fmtPlace(v.New.Callee, strs), fmtPlaceList(v.New.Args, strs))
	case ValPropertyLoad:
		return fmt.Sprintf("%s.%s", fmtPlace(v.PropertyLoad.Object, strs), lookupName(strs, v.PropertyLoad.Property))
	case ValPropertyStore:
		return fmt.Sprintf("%s.%s = %s", fmtPlace(v.PropertyStore.Object, strs), lookupName(strs, v.PropertyStore.Property), fmtPlace(v.PropertyStore.Value, strs))
	case ValComputedLoad:
		return fmt.Sprintf("%s[%s]", fmtPlace(v.ComputedLoad.Object, strs), fmtPlace(v.ComputedLoad.Index, strs))
	case ValComputedStore:
		return fmt.Sprintf("%s[%s] = %s", fmtPlace(v.ComputedStore.Object, strs), fmtPlace(v.ComputedStore.Index, strs), fmtPlace(v.ComputedStore.Value, strs))
	case ValArray:
		return fmt.Sprintf("array [%s]", fmtPlaceList(v.Array.Elements, strs))
	case ValObject:
		parts := make([]string, len(v.Object.Entries))
		for i, e := range v.Object.Entries {
			parts[i] = fmt.Sprintf("%s: %s", lookupName(strs, e.Key), fmtPlace(e.Value, strs))
		}
		return fmt.Sprintf("object {%s}", strings.Join(parts, ", "))
	case ValJSXElement:
		tag := lookupName(strs, v.JSXElement.TagName)
		if tag == "" {
			tag = fmtPlace(v.JSXElement.Tag, strs)
		}
		return fmt.Sprintf("jsx <%s>", tag)
	case ValJSXFragment:
		return "jsx <>"
	case ValUnsupported:
		return "unsupported"
	default:
		return "invalid"
	}
}

func fmtTerminal(t *Terminal, strs *source.Interner) string {
	switch t.Kind {
	case TermIf:
		s := fmt.Sprintf("if %s then bb%d else bb%d", fmtPlace(t.If.Test, strs), t.If.Consequent, t.If.Alternate)
		if t.If.Fallthrough.IsValid() {
			s += fmt.Sprintf(" fallthrough bb%d", t.If.Fallthrough)
		}
		return s
	case TermFor:
		s := fmt.Sprintf("for init=bb%d body=bb%d", t.For.Init, t.For.Body)
		if t.For.Update.IsValid() {
			s += fmt.Sprintf(" update=bb%d", t.For.Update)
		}
		if t.For.Fallthrough.IsValid() {
			s += fmt.Sprintf(" fallthrough bb%d", t.For.Fallthrough)
		}
		return s
	case TermDoWhile:
		s := fmt.Sprintf("do-while body=bb%d test=bb%d", t.DoWhile.Body, t.DoWhile.Test)
		if t.DoWhile.Fallthrough.IsValid() {
			s += fmt.Sprintf(" fallthrough bb%d", t.DoWhile.Fallthrough)
		}
		return s
	case TermGoto:
		kind := "break"
		if t.Goto.Kind == GotoContinue {
			kind = "continue"
		}
		return fmt.Sprintf("goto bb%d (%s)", t.Goto.Block, kind)
	case TermReturn:
		if t.Return.HasValue {
			return fmt.Sprintf("return %s", fmtPlace(t.Return.Value, strs))
		}
		return "return"
	default:
		return "invalid"
	}
}

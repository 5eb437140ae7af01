package diag

import (
	"fmt"
)

// Code is a compact, stable identifier for one diagnostic category. The
// numeric space is partitioned per phase: 3xxx scope analysis, 4xxx IR
// construction.
type Code uint16

const (
	UnknownCode Code = 0

	// Input handling.
	IOLoadFile Code = 1001
	ASTDecode  Code = 2001

	// Scope analysis.
	SemaInfo                Code = 3000
	SemaDuplicateDecl       Code = 3001
	SemaUndefinedVariable   Code = 3002
	SemaNonSyntacticBreak   Code = 3003
	SemaNonSyntacticCont    Code = 3004
	SemaContinueNotLoop     Code = 3005
	SemaInvalidAssignTarget Code = 3006
	SemaInvalidJSXName      Code = 3007
	SemaImportPlacement     Code = 3008

	// IR construction. The finalizer itself panics on internal invariant
	// violations; these codes cover user-visible lowering problems.
	HirInfo               Code = 4000
	HirUnsupportedSyntax  Code = 4001
	HirUnresolvedBinding  Code = 4002
	HirUnresolvedLoopSite Code = 4003
)

func (c Code) String() string {
	switch {
	case c >= 4000:
		return fmt.Sprintf("HIR%04d", uint16(c))
	case c >= 3000:
		return fmt.Sprintf("SEMA%04d", uint16(c))
	case c >= 2000:
		return fmt.Sprintf("AST%04d", uint16(c))
	case c >= 1000:
		return fmt.Sprintf("IO%04d", uint16(c))
	default:
		return fmt.Sprintf("DIAG%04d", uint16(c))
	}
}

package ut

import "runtime"

// DebugInfo captures assertion context.
type DebugInfo struct {
	Expr string
	File string
	Line int
}

// LastAssertion records the most recent assertion failure.
var LastAssertion DebugInfo

// DbgAssertionFailed records a failed invariant at the caller's
// location.
func DbgAssertionFailed(expr string) {
	_, file, line, _ := runtime.Caller(1)
	LastAssertion = DebugInfo{Expr: expr, File: file, Line: line}
}

// DbgReset clears debug state.
func DbgReset() {
	LastAssertion = DebugInfo{}
}

package sqlriver

import "fmt"

// Position identifies a location in the source text.
type Position struct {
	Offset int // zero-based byte offset
	Line   int // one-based line number
	Column int // one-based column number
}

// TokenizeError is returned when the input, the token count or a single
// token exceeds a resource guard. It is never recoverable. Other lexical
// faults, such as an unterminated string or quoted identifier or a byte the
// lexer does not recognise, come out of the lexer as ILLEGAL tokens, which
// the parser reports as a ParseError.
type TokenizeError struct {
	Message  string
	Position Position
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Position.Line, e.Position.Column)
}

// ParseError is raised for structural grammar violations: an unexpected
// token, a missing required clause, an unbalanced parenthesis. In strict
// mode (Options.Recover == false) it aborts the whole parse; in recovery
// mode the failing statement is returned as a RawPassthroughStmt holding its
// source text and Options.OnRecover is called, so no ParseError is returned.
// There is no OnDropStatement option.
type ParseError struct {
	Message  string
	Position Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Position.Line, e.Position.Column)
}

// MaxDepthError is raised when subquery/parenthesis nesting exceeds
// Options.MaxDepth. It is always fatal, regardless of recovery mode.
type MaxDepthError struct {
	Message  string
	Position Position
}

func (e *MaxDepthError) Error() string {
	return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Position.Line, e.Position.Column)
}

// Package sqlriver parses and pretty-prints SQL across PostgreSQL, MySQL,
// T-SQL, Oracle, SQLite, Snowflake, BigQuery, Exasol, and DB2 dialects.
//
// Format renders source SQL back out with river-style layout: clause
// keywords right-aligned to a shared column, long lists wrapped one item
// per line, and soft wrapping once a statement exceeds the configured
// line-length budget.
//
//	out, err := sqlriver.Format("select a,b from t where x=1", sqlriver.DefaultOptions())
//
// Parse exposes the AST directly for callers that want to walk or rewrite
// it themselves (see Walk, Rewrite).
package sqlriver

import (
	"github.com/freeeve/sqlriver/ast"
	"github.com/freeeve/sqlriver/dialect"
	"github.com/freeeve/sqlriver/formatter"
	"github.com/freeeve/sqlriver/parser"
	"github.com/freeeve/sqlriver/token"
	"github.com/freeeve/sqlriver/visitor"
)

func toDialectTable(d Dialect) dialect.Dialect {
	return dialect.Dialect(d)
}

func toKeywordCase(k KeywordCase) formatter.KeywordCase {
	if k == KeywordCaseLower {
		return formatter.KeywordCaseLower
	}
	return formatter.KeywordCaseUpper
}

func formatterOptions(opts Options) formatter.Options {
	return formatter.Options{
		Dialect:       toDialectTable(opts.Dialect),
		MaxLineLength: opts.MaxLineLength,
		Indent:        opts.Indent,
		KeywordCase:   toKeywordCase(opts.KeywordCase),
	}
}

func configureParser(p *parser.Parser, opts Options) {
	p.Dialect = toDialectTable(opts.Dialect)
	p.MaxDepth = opts.MaxDepth
	p.Recover = opts.Recover
	p.OnRecover = opts.OnRecover
	p.SetLimits(opts.MaxInputSize, opts.MaxTokenCount, opts.MaxTokenLength)
}

// translateErr converts the parser/lexer's internal error types into the
// package's exported TokenizeError / ParseError / MaxDepthError, preferring
// a resource-limit error from the lexer when one was recorded.
func translateErr(p *parser.Parser, err error) error {
	if lexErr := p.LexError(); lexErr != nil {
		return &TokenizeError{Message: lexErr.Error(), Position: Position{}}
	}
	switch e := err.(type) {
	case *parser.MaxDepthError:
		return &MaxDepthError{Message: e.Message, Position: Position{Offset: e.Pos.Offset, Line: e.Pos.Line, Column: e.Pos.Column}}
	case parser.ParseError:
		return &ParseError{Message: e.Message, Position: Position{Offset: e.Pos.Offset, Line: e.Pos.Line, Column: e.Pos.Column}}
	default:
		return err
	}
}

// Parse parses a single SQL statement under opts. Zero-valued fields of
// opts are filled from DefaultOptions.
func Parse(input string, opts Options) (ast.Statement, error) {
	opts = withDefaults(opts)
	if len(input) > opts.MaxInputSize {
		return nil, &TokenizeError{Message: "input exceeds maximum size"}
	}
	p := parser.Get(input)
	defer parser.Put(p)
	configureParser(p, opts)
	stmt, err := p.Parse()
	if err != nil {
		return nil, translateErr(p, err)
	}
	return stmt, nil
}

// ParseAll parses every statement in input under opts.
func ParseAll(input string, opts Options) ([]ast.Statement, error) {
	opts = withDefaults(opts)
	if len(input) > opts.MaxInputSize {
		return nil, &TokenizeError{Message: "input exceeds maximum size"}
	}
	p := parser.Get(input)
	defer parser.Put(p)
	configureParser(p, opts)
	stmts, err := p.ParseAll()
	if err != nil {
		return stmts, translateErr(p, err)
	}
	return stmts, nil
}

// Format parses source and renders it back out with river-style layout.
// Multiple statements are separated by a semicolon and a blank line.
// Comments from the source are emitted on their own lines: each one before
// the first statement that starts after it, and any that follow the last
// statement at the end (see formatter.NewWithComments); a comment is not
// kept on the line of the code it followed.
// When opts.Recover is set, statements that fail to parse are passed
// through verbatim rather than aborting the whole input.
func Format(source string, opts Options) (string, error) {
	opts = withDefaults(opts)
	if len(source) > opts.MaxInputSize {
		return "", &TokenizeError{Message: "input exceeds maximum size"}
	}
	p := parser.Get(source)
	configureParser(p, opts)
	stmts, err := p.ParseAll()
	if err != nil {
		translated := translateErr(p, err)
		parser.Put(p)
		return "", translated
	}
	// Copy out of the pooled lexer's backing array: Put recycles it into
	// the pool, and a concurrent Format call could start overwriting it
	// before this one finishes rendering.
	comments := append([]token.Item(nil), p.Comments()...)
	parser.Put(p)

	f := formatter.NewWithComments(formatterOptions(opts), source, comments)
	for i, stmt := range stmts {
		if i > 0 {
			f.FormatSeparator()
		}
		f.FormatStatement(stmt)
	}
	f.FormatTrailer(len(stmts))
	f.FinishComments()
	return f.String(), nil
}

// Repool returns AST nodes to internal pools for reuse. This is optional;
// if not called, nodes are garbage collected normally. Calling Repool
// after you're done with a statement reduces allocations when parsing many
// queries.
func Repool(stmt ast.Statement) {
	ast.ReleaseAST(stmt)
}

// String formats a single AST node back to SQL using DefaultOptions.
func String(node ast.Node) string {
	return formatter.String(node)
}

// Walk traverses the AST calling fn for each node. If fn returns false,
// children are not visited.
func Walk(node ast.Node, fn func(ast.Node) bool) {
	visitor.WalkFunc(node, fn)
}

// Rewrite traverses the AST allowing node replacement. fn is called in
// post-order (children first, then parent); return the replacement node
// or the original to keep it.
func Rewrite(node ast.Node, fn func(ast.Node) ast.Node) ast.Node {
	return visitor.Rewrite(node, fn)
}

// Statement is the interface for all SQL statements.
type Statement = ast.Statement

// Expr is the interface for all expressions.
type Expr = ast.Expr

// Node is the base interface for all AST nodes.
type Node = ast.Node

// Common type aliases for convenience.
type (
	SelectStmt         = ast.SelectStmt
	InsertStmt         = ast.InsertStmt
	UpdateStmt         = ast.UpdateStmt
	DeleteStmt         = ast.DeleteStmt
	CreateTableStmt    = ast.CreateTableStmt
	AlterTableStmt     = ast.AlterTableStmt
	DropTableStmt      = ast.DropTableStmt
	CreateIndexStmt    = ast.CreateIndexStmt
	DropIndexStmt      = ast.DropIndexStmt
	TruncateStmt       = ast.TruncateStmt
	ExplainStmt        = ast.ExplainStmt
	SetOp              = ast.SetOp
	RawPassthroughStmt = ast.RawPassthroughStmt
	ColName            = ast.ColName
	TableName          = ast.TableName
	Literal            = ast.Literal
	BinaryExpr         = ast.BinaryExpr
	UnaryExpr          = ast.UnaryExpr
	FuncExpr           = ast.FuncExpr
	CaseExpr           = ast.CaseExpr
	CastExpr           = ast.CastExpr
	Subquery           = ast.Subquery
	JoinExpr           = ast.JoinExpr
	AliasedExpr        = ast.AliasedExpr
	AliasedTableExpr   = ast.AliasedTableExpr
	StarExpr           = ast.StarExpr
	ParenExpr          = ast.ParenExpr
	InExpr             = ast.InExpr
	BetweenExpr        = ast.BetweenExpr
	LikeExpr           = ast.LikeExpr
	IsExpr             = ast.IsExpr
	ExistsExpr         = ast.ExistsExpr
	OrderByExpr        = ast.OrderByExpr
	Limit              = ast.Limit
	WithClause         = ast.WithClause
	CTE                = ast.CTE
)

// Join types
const (
	JoinInner = ast.JoinInner
	JoinLeft  = ast.JoinLeft
	JoinRight = ast.JoinRight
	JoinFull  = ast.JoinFull
	JoinCross = ast.JoinCross
)

// Literal types
const (
	LiteralNull   = ast.LiteralNull
	LiteralInt    = ast.LiteralInt
	LiteralFloat  = ast.LiteralFloat
	LiteralString = ast.LiteralString
	LiteralBool   = ast.LiteralBool
)

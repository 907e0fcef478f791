// Package dialect holds the per-dialect keyword, quoting, and operator
// tables that gate lexer, parser, and formatter behavior. The shape
// follows the reserved-word table pattern used by dialect-specific SQL
// formatters: a base ANSI table extended per dialect rather than nine
// independent tables.
package dialect

import "github.com/freeeve/sqlriver/token"

// Dialect identifies a SQL variant. It mirrors sqlriver.Dialect so the
// core packages (token, lexer, parser, formatter) don't need to import
// the root package and create an import cycle.
type Dialect int

const (
	ANSI Dialect = iota
	Postgres
	MySQL
	TSQL
	Oracle
	SQLite
	Snowflake
	BigQuery
	Exasol
	DB2
)

// Table holds the gated behavior for one dialect.
type Table struct {
	Name Dialect

	// BacktickIdent allows `ident` quoting (MySQL, BigQuery).
	BacktickIdent bool
	// BracketIdent allows [ident] quoting (T-SQL).
	BracketIdent bool
	// DollarQuoting allows $tag$...$tag$ string bodies (Postgres, Snowflake).
	DollarQuoting bool
	// AtParam allows @name / @@name parameter and variable references
	// (T-SQL, MySQL user variables).
	AtParam bool
	// ColonParam allows :name named parameters (Oracle, Exasol).
	ColonParam bool
	// BangNotEqual allows != in addition to <> (most dialects; ANSI is <> only).
	BangNotEqual bool
	// StraightJoin allows the MySQL STRAIGHT_JOIN hint.
	StraightJoin bool
	// ILike allows the Postgres-family ILIKE case-insensitive match.
	ILike bool
	// TopClause allows T-SQL SELECT TOP (n) in place of LIMIT.
	TopClause bool
	// RowNum recognizes Oracle's ROWNUM pseudo-column.
	RowNum bool
	// GoBatchSeparator recognizes a standalone GO as a T-SQL batch separator.
	GoBatchSeparator bool
	// SlashTerminator recognizes a standalone "/" as an Oracle SQL*Plus
	// statement terminator.
	SlashTerminator bool
}

var tables = map[Dialect]Table{
	ANSI: {
		Name:         ANSI,
		BangNotEqual: false,
	},
	Postgres: {
		Name:          Postgres,
		DollarQuoting: true,
		ColonParam:    false,
		BangNotEqual:  true,
		ILike:         true,
	},
	MySQL: {
		Name:          MySQL,
		BacktickIdent: true,
		AtParam:       true,
		BangNotEqual:  true,
		StraightJoin:  true,
	},
	TSQL: {
		Name:             TSQL,
		BracketIdent:     true,
		AtParam:          true,
		BangNotEqual:     true,
		TopClause:        true,
		GoBatchSeparator: true,
	},
	Oracle: {
		Name:            Oracle,
		ColonParam:      true,
		BangNotEqual:    true,
		RowNum:          true,
		SlashTerminator: true,
	},
	SQLite: {
		Name:          SQLite,
		BacktickIdent: true,
		BracketIdent:  true,
		ColonParam:    true,
		AtParam:       true,
		BangNotEqual:  true,
	},
	Snowflake: {
		Name:          Snowflake,
		DollarQuoting: true,
		BangNotEqual:  true,
		ILike:         true,
	},
	BigQuery: {
		Name:          BigQuery,
		BacktickIdent: true,
		BangNotEqual:  true,
	},
	Exasol: {
		Name:         Exasol,
		ColonParam:   true,
		BangNotEqual: true,
	},
	DB2: {
		Name:         DB2,
		BangNotEqual: true,
	},
}

// Get returns the gating table for d, falling back to ANSI for unknown
// values so callers never need a nil check.
func Get(d Dialect) Table {
	if t, ok := tables[d]; ok {
		return t
	}
	return tables[ANSI]
}

// AllowsKeyword reports whether tok is recognized as a keyword in this
// dialect rather than a plain identifier. Most of the teacher's keyword
// table is dialect-neutral; this only gates the handful of keywords that
// collide with common identifiers in dialects that don't define them.
func (t Table) AllowsKeyword(tok token.Token) bool {
	switch tok {
	case token.STRAIGHT_JOIN:
		return t.StraightJoin
	case token.ILIKE:
		return t.ILike
	case token.TOP:
		return t.TopClause
	case token.ROWNUM:
		return t.RowNum
	default:
		return true
	}
}

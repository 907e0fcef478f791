package sqlriver

// Dialect selects the SQL variant that gates lexical, grammatical, and
// layout behavior (see dialect.Dialect for the keyword/operator tables).
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

func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgres"
	case MySQL:
		return "mysql"
	case TSQL:
		return "tsql"
	case Oracle:
		return "oracle"
	case SQLite:
		return "sqlite"
	case Snowflake:
		return "snowflake"
	case BigQuery:
		return "bigquery"
	case Exasol:
		return "exasol"
	case DB2:
		return "db2"
	default:
		return "ansi"
	}
}

// KeywordCase controls how reserved words are emitted by the formatter.
type KeywordCase int

const (
	// KeywordCaseUpper uppercases all reserved keywords (the default).
	KeywordCaseUpper KeywordCase = iota
	// KeywordCaseLower lowercases all reserved keywords.
	KeywordCaseLower
	// KeywordCasePreserve is accepted but emits keywords in upper case, as
	// KeywordCaseUpper does; the source spelling of keywords is not kept.
	KeywordCasePreserve
)

const (
	// DefaultMaxLineLength is the soft wrap budget used by the river layout.
	DefaultMaxLineLength = 88
	// DefaultMaxInputSize is the largest input, in bytes, accepted before
	// tokenization aborts with a TokenizeError.
	DefaultMaxInputSize = 10 * 1024 * 1024
	// DefaultMaxTokenCount bounds the number of tokens a single input may
	// produce before tokenization aborts.
	DefaultMaxTokenCount = 1_000_000
	// DefaultMaxTokenLength bounds the length, in bytes, of any single
	// token (identifier, string, or comment body).
	DefaultMaxTokenLength = 10_000
	// DefaultMaxDepth bounds subquery/parenthesis/expression nesting.
	DefaultMaxDepth = 100
	// DefaultIndent is the whitespace unit used for block indentation
	// (CASE branches, CREATE TABLE column lists, subqueries).
	DefaultIndent = "  "
)

// Options configures tokenization, parsing, and layout. The zero value is
// not ready to use; call DefaultOptions to obtain sane defaults and
// override only the fields that matter to the caller.
type Options struct {
	Dialect Dialect

	// Layout
	MaxLineLength int
	Indent        string
	KeywordCase   KeywordCase

	// Resource guards
	MaxInputSize   int
	MaxTokenCount  int
	MaxTokenLength int
	MaxDepth       int

	// Recover, when true, degrades a statement that fails to parse into a
	// raw_passthrough node instead of aborting the whole input. OnRecover,
	// if set, is invoked synchronously with the ParseError that triggered
	// the degradation and the raw source span that was passed through.
	Recover   bool
	OnRecover func(err error, source string)
}

// DefaultOptions returns an Options value with every field set to its
// documented default (ANSI dialect, upper keyword case, 88-column budget,
// 10 MiB / 1M token / 10K token-length / depth-100 resource guards,
// recovery disabled).
func DefaultOptions() Options {
	return Options{
		Dialect:        ANSI,
		MaxLineLength:  DefaultMaxLineLength,
		Indent:         DefaultIndent,
		KeywordCase:    KeywordCaseUpper,
		MaxInputSize:   DefaultMaxInputSize,
		MaxTokenCount:  DefaultMaxTokenCount,
		MaxTokenLength: DefaultMaxTokenLength,
		MaxDepth:       DefaultMaxDepth,
	}
}

// withDefaults fills zero-valued fields of opts with DefaultOptions, so
// callers may pass a partially populated Options (e.g. only Dialect set).
func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.MaxLineLength == 0 {
		opts.MaxLineLength = def.MaxLineLength
	}
	if opts.Indent == "" {
		opts.Indent = def.Indent
	}
	if opts.MaxInputSize == 0 {
		opts.MaxInputSize = def.MaxInputSize
	}
	if opts.MaxTokenCount == 0 {
		opts.MaxTokenCount = def.MaxTokenCount
	}
	if opts.MaxTokenLength == 0 {
		opts.MaxTokenLength = def.MaxTokenLength
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = def.MaxDepth
	}
	return opts
}

// Package formatter renders AST nodes back into SQL text using a
// river-style layout: top-level clause keywords are right-aligned to a
// common column, long lists wrap one item per line with trailing commas,
// and nested blocks (CASE, CREATE TABLE) indent beneath their opener.
//
// A statement is always tried on a single line first; only once it would
// exceed the configured line-length budget does the river layout kick in.
// This keeps short, common statements compact while long ones get the
// readable multi-line treatment.
package formatter

import (
	"bytes"
	"strings"

	"github.com/freeeve/sqlriver/ast"
	"github.com/freeeve/sqlriver/dialect"
	"github.com/freeeve/sqlriver/token"
)

// KeywordCase controls how reserved words are emitted.
type KeywordCase int

const (
	KeywordCaseUpper KeywordCase = iota
	KeywordCaseLower
	KeywordCasePreserve
)

// Options controls formatting behavior.
type Options struct {
	Dialect       dialect.Dialect
	MaxLineLength int
	Indent        string
	KeywordCase   KeywordCase
}

// DefaultOptions are the default formatting options.
var DefaultOptions = Options{
	Dialect:       dialect.ANSI,
	MaxLineLength: 88,
	Indent:        "  ",
	KeywordCase:   KeywordCaseUpper,
}

func (o Options) withDefaults() Options {
	if o.MaxLineLength <= 0 {
		o.MaxLineLength = DefaultOptions.MaxLineLength
	}
	if o.Indent == "" {
		o.Indent = DefaultOptions.Indent
	}
	return o
}

// Formatter generates SQL from AST nodes.
type Formatter struct {
	buf    bytes.Buffer
	opts   Options
	col    int // column since last newline
	indent int // indentation level of the current line, for nested blocks

	// source and comments back the comment-anchoring pass driven by
	// FormatStatement/FinishComments. A plain New formatter leaves
	// comments nil and every anchoring call is then a no-op, so callers
	// that only need Format(node) for a single fragment are unaffected.
	source      string
	comments    []token.Item
	nextComment int
	lastOffset  int
}

// New creates a new formatter with the given options.
func New(opts Options) *Formatter {
	return &Formatter{opts: opts.withDefaults()}
}

// NewWithComments creates a formatter that anchors the given comment stream
// (as collected by the lexer/parser from source) to statement boundaries as
// statements are written via FormatStatement. source must be the exact text
// the comments' positions were computed against.
func NewWithComments(opts Options, source string, comments []token.Item) *Formatter {
	return &Formatter{opts: opts.withDefaults(), source: source, comments: comments}
}

// FormatSeparator writes the statement boundary between two statements.
// Call it before FormatStatement for every statement after the first.
func (f *Formatter) FormatSeparator() {
	f.write(";\n\n")
	// A nested block (CASE, CREATE TABLE's column list, ...) in the
	// previous statement may have left f.indent elevated; each statement
	// starts back at the left margin.
	f.indent = 0
}

// FormatTrailer writes the closing semicolon for a Format call that
// produced n statements (a no-op when n is 0).
func (f *Formatter) FormatTrailer(n int) {
	if n > 0 {
		f.write(";\n")
	}
}

// FormatStatement writes any comments anchored before stmt, then the
// statement itself, and records stmt's end for blank-line bookkeeping
// around the next anchored comment or statement.
func (f *Formatter) FormatStatement(stmt ast.Node) {
	if stmt != nil {
		if f.emitCommentsBefore(stmt.Pos().Offset) {
			f.newlineIndent(f.indent)
		}
	}
	f.Format(stmt)
	if stmt != nil {
		f.lastOffset = stmt.End().Offset
	}
}

// FinishComments flushes any comments left over after the last statement
// (a trailing file comment with nothing following it).
func (f *Formatter) FinishComments() {
	f.emitCommentsBefore(len(f.source) + 1)
}

// emitCommentsBefore writes every unconsumed comment that starts strictly
// before offset, reporting whether any were written. Used both between
// statements (offset = next statement's start) and, via FinishComments, at
// end of input.
func (f *Formatter) emitCommentsBefore(offset int) bool {
	wrote := false
	for f.nextComment < len(f.comments) && f.comments[f.nextComment].Pos.Offset < offset {
		f.emitComment(f.comments[f.nextComment])
		f.nextComment++
		wrote = true
	}
	return wrote
}

// emitComment writes a single anchored comment on its own line, inserting a
// blank line first if the source had one between it and whatever precedes
// it, and normalizing "--"/"#" line comments to block form.
func (f *Formatter) emitComment(c token.Item) {
	if f.buf.Len() > 0 {
		if f.blankLineBetween(f.lastOffset, c.Pos.Offset) {
			f.buf.WriteByte('\n')
		}
		f.newlineIndent(f.indent)
	}
	f.write(normalizeComment(c.Value))
	f.lastOffset = c.Pos.Offset + len(c.Value)
}

// blankLineBetween reports whether the source has at least one fully blank
// line between byte offsets a and b, i.e. two or more newlines.
func (f *Formatter) blankLineBetween(a, b int) bool {
	if f.source == "" || a < 0 || b > len(f.source) || a >= b {
		return false
	}
	return strings.Count(f.source[a:b], "\n") >= 2
}

// normalizeComment rewrites "--" and "#" line comments to block form so
// single-line and block comments round-trip through a single style.
func normalizeComment(raw string) string {
	switch {
	case strings.HasPrefix(raw, "--"):
		return "/* " + strings.TrimSpace(raw[2:]) + " */"
	case strings.HasPrefix(raw, "#"):
		return "/* " + strings.TrimSpace(raw[1:]) + " */"
	default:
		return raw
	}
}

// String formats an AST node to a SQL string using default options.
func String(node ast.Node) string {
	f := New(DefaultOptions)
	f.Format(node)
	return f.String()
}

// Format formats a node to the internal buffer.
func (f *Formatter) Format(node ast.Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *ast.SelectStmt:
		f.formatSelect(n)
	case *ast.InsertStmt:
		f.formatInsert(n)
	case *ast.UpdateStmt:
		f.formatUpdate(n)
	case *ast.DeleteStmt:
		f.formatDelete(n)
	case *ast.CreateTableStmt:
		f.formatCreateTable(n)
	case *ast.AlterTableStmt:
		f.formatAlterTable(n)
	case *ast.DropTableStmt:
		f.formatDropTable(n)
	case *ast.CreateIndexStmt:
		f.formatCreateIndex(n)
	case *ast.DropIndexStmt:
		f.formatDropIndex(n)
	case *ast.TruncateStmt:
		f.formatTruncate(n)
	case *ast.ExplainStmt:
		f.formatExplain(n)
	case *ast.SetOp:
		f.formatSetOp(n)
	case *ast.RawPassthroughStmt:
		f.write(strings.TrimSpace(n.Text))
	case *ast.MetaCommandStmt:
		f.write(strings.TrimRight(n.Text, " \t"))
	case *ast.DialectDirectiveStmt:
		f.write(strings.TrimRight(n.Text, " \t"))
	case *ast.BinaryExpr:
		f.formatBinaryExpr(n)
	case *ast.UnaryExpr:
		f.formatUnaryExpr(n)
	case *ast.ParenExpr:
		f.write("(")
		f.Format(n.Expr)
		f.write(")")
	case *ast.FuncExpr:
		f.formatFuncExpr(n)
	case *ast.CaseExpr:
		f.formatCaseExpr(n)
	case *ast.CastExpr:
		f.formatCastExpr(n)
	case *ast.ColName:
		f.formatColName(n)
	case *ast.Literal:
		f.formatLiteral(n)
	case *ast.Param:
		f.formatParam(n)
	case *ast.TableName:
		f.formatTableName(n)
	case *ast.AliasedTableExpr:
		f.formatAliasedTableExpr(n)
	case *ast.JoinExpr:
		f.formatJoinExpr(n)
	case *ast.ParenTableExpr:
		f.write("(")
		f.Format(n.Expr)
		f.write(")")
	case *ast.Subquery:
		f.formatSubquery(n)
	case *ast.AliasedExpr:
		f.Format(n.Expr)
		if n.Alias != "" {
			f.write(" ")
			f.writeKeyword("AS")
			f.write(" ")
			f.writeIdent(n.Alias)
		}
	case *ast.StarExpr:
		if n.HasQualifier {
			f.writeIdent(n.TableName)
			f.write(".")
		}
		f.write("*")
	case *ast.InExpr:
		f.formatInExpr(n)
	case *ast.BetweenExpr:
		f.formatBetweenExpr(n)
	case *ast.LikeExpr:
		f.formatLikeExpr(n)
	case *ast.IsExpr:
		f.formatIsExpr(n)
	case *ast.ExistsExpr:
		f.formatExistsExpr(n)
	case *ast.IntervalExpr:
		f.formatIntervalExpr(n)
	case *ast.ExtractExpr:
		f.formatExtractExpr(n)
	case *ast.TrimExpr:
		f.formatTrimExpr(n)
	case *ast.SubstringExpr:
		f.formatSubstringExpr(n)
	case *ast.ArrayExpr:
		f.formatArrayExpr(n)
	case *ast.SubscriptExpr:
		// Space after [ distinguishes an array subscript from a SQL Server
		// bracket identifier, which the lexer only recognizes without a
		// following space.
		f.Format(n.Expr)
		f.write("[ ")
		f.Format(n.Index)
		f.write(" ]")
	case *ast.CollateExpr:
		f.Format(n.Expr)
		f.write(" ")
		f.writeKeyword("COLLATE")
		f.write(" ")
		f.write(n.Collation)
	case *ast.ValuesStmt:
		f.formatValuesStmt(n)
	}
}

// String returns the formatted SQL accumulated so far.
func (f *Formatter) String() string {
	return f.buf.String()
}

func (f *Formatter) write(s string) {
	f.buf.WriteString(s)
	if idx := strings.LastIndexByte(s, '\n'); idx >= 0 {
		f.col = len(s) - idx - 1
	} else {
		f.col += len(s)
	}
}

func (f *Formatter) writeKeyword(kw string) {
	switch f.opts.KeywordCase {
	case KeywordCaseLower:
		f.write(strings.ToLower(kw))
	default:
		f.write(strings.ToUpper(kw))
	}
}

func (f *Formatter) quoteChars() (string, string) {
	t := dialect.Get(f.opts.Dialect)
	switch {
	case t.BacktickIdent:
		return "`", "`"
	case t.BracketIdent:
		return "[", "]"
	default:
		return `"`, `"`
	}
}

func (f *Formatter) writeIdent(id string) {
	if needsQuoting(id) {
		open, shut := f.quoteChars()
		f.write(open)
		f.write(strings.ReplaceAll(id, shut, shut+shut))
		f.write(shut)
	} else {
		f.write(id)
	}
}

// writeFuncName writes a function name. Unlike writeIdent, it doesn't quote
// keywords since many SQL functions have keyword names (ANY, ALL, COUNT, etc.)
func (f *Formatter) writeFuncName(name string) {
	if needsQuotingNonKeyword(name) {
		open, shut := f.quoteChars()
		f.write(open)
		f.write(strings.ReplaceAll(name, shut, shut+shut))
		f.write(shut)
	} else {
		f.write(name)
	}
}

// newlineIndent starts a new line indented n columns and records it as the
// active indent level for any further nested wrapping on this line.
func (f *Formatter) newlineIndent(n int) {
	f.buf.WriteByte('\n')
	if n > 0 {
		f.buf.WriteString(strings.Repeat(" ", n))
	}
	f.col = n
	f.indent = n
}

// renderFlat runs fn against a scratch formatter sharing opts and returns
// the text it produced, without touching f's own buffer.
func (f *Formatter) renderFlat(fn func(*Formatter)) string {
	sub := &Formatter{opts: f.opts}
	fn(sub)
	return sub.String()
}

// fits reports whether s can be appended at the current column without
// exceeding the line-length budget. Any embedded newline (from a nested
// node that already gave up on fitting) forces a "no".
func (f *Formatter) fits(s string) bool {
	if strings.ContainsRune(s, '\n') {
		return false
	}
	return f.col+len(s) <= f.opts.MaxLineLength
}

// riverKeyword right-pads kw so it ends at column width, followed by a
// single space, establishing the river's shared alignment column.
func (f *Formatter) riverKeyword(kw string, width int) {
	if pad := width - len(kw); pad > 0 {
		f.write(strings.Repeat(" ", pad))
	}
	f.writeKeyword(kw)
	f.write(" ")
}

func clauseWidth(clauses ...string) int {
	w := 0
	for _, c := range clauses {
		if len(c) > w {
			w = len(c)
		}
	}
	return w
}

func (f *Formatter) formatSubquery(n *ast.Subquery) {
	f.write("(")
	inner := f.renderFlat(func(sf *Formatter) { sf.Format(n.Select) })
	if f.fits(inner) {
		f.write(inner)
	} else {
		indent := f.col
		sub := &Formatter{opts: f.opts, col: indent, indent: indent}
		sub.Format(n.Select)
		f.write(sub.String())
	}
	f.write(")")
}

func (f *Formatter) formatSelect(s *ast.SelectStmt) {
	flat := f.renderFlat(func(sf *Formatter) { sf.formatSelectFlat(s) })
	if f.fits(flat) {
		f.write(flat)
		return
	}
	f.formatSelectRiver(s)
}

func (f *Formatter) formatTopClause(top *ast.TopClause) {
	f.writeKeyword("TOP")
	f.write(" (")
	f.Format(top.Count)
	f.write(")")
	if top.Percent {
		f.write(" ")
		f.writeKeyword("PERCENT")
	}
	if top.WithTies {
		f.write(" ")
		f.writeKeyword("WITH")
		f.write(" ")
		f.writeKeyword("TIES")
	}
}

func (f *Formatter) formatSelectFlat(s *ast.SelectStmt) {
	if s.With != nil {
		f.formatWithClause(s.With)
		f.write(" ")
	}
	f.writeKeyword("SELECT")
	if s.Distinct {
		f.write(" ")
		f.writeKeyword("DISTINCT")
	}
	if s.Top != nil {
		f.write(" ")
		f.formatTopClause(s.Top)
	}
	f.write(" ")
	for i, col := range s.Columns {
		if i > 0 {
			f.write(", ")
		}
		f.Format(col)
	}
	if s.From != nil {
		f.write(" ")
		f.writeKeyword("FROM")
		f.write(" ")
		f.Format(s.From)
	}
	if s.Where != nil {
		f.write(" ")
		f.writeKeyword("WHERE")
		f.write(" ")
		f.Format(s.Where)
	}
	if len(s.GroupBy) > 0 {
		f.write(" ")
		f.writeKeyword("GROUP BY")
		f.write(" ")
		for i, expr := range s.GroupBy {
			if i > 0 {
				f.write(", ")
			}
			f.Format(expr)
		}
	}
	if s.Having != nil {
		f.write(" ")
		f.writeKeyword("HAVING")
		f.write(" ")
		f.Format(s.Having)
	}
	f.writeOrderByFlat(s.OrderBy)
	f.writeLimitFlat(s.Limit)
	if s.Lock != "" {
		f.write(" ")
		f.writeKeyword("FOR")
		f.write(" ")
		f.writeKeyword(s.Lock)
	}
}

func (f *Formatter) writeOrderByFlat(obs []*ast.OrderByExpr) {
	if len(obs) == 0 {
		return
	}
	f.write(" ")
	f.writeKeyword("ORDER BY")
	f.write(" ")
	for i, ob := range obs {
		if i > 0 {
			f.write(", ")
		}
		f.Format(ob.Expr)
		if ob.Desc {
			f.write(" ")
			f.writeKeyword("DESC")
		}
		if ob.NullsFirst != nil {
			f.write(" ")
			f.writeKeyword("NULLS")
			f.write(" ")
			if *ob.NullsFirst {
				f.writeKeyword("FIRST")
			} else {
				f.writeKeyword("LAST")
			}
		}
	}
}

func (f *Formatter) writeLimitFlat(l *ast.Limit) {
	if l == nil {
		return
	}
	if l.Count != nil {
		f.write(" ")
		f.writeKeyword("LIMIT")
		f.write(" ")
		f.Format(l.Count)
	}
	if l.Offset != nil {
		f.write(" ")
		f.writeKeyword("OFFSET")
		f.write(" ")
		f.Format(l.Offset)
	}
}

func (f *Formatter) formatWithClause(w *ast.WithClause) {
	f.writeKeyword("WITH")
	if w.Recursive {
		f.write(" ")
		f.writeKeyword("RECURSIVE")
	}
	f.write(" ")
	for i, cte := range w.CTEs {
		if i > 0 {
			f.write(", ")
		}
		f.writeIdent(cte.Name)
		if len(cte.Columns) > 0 {
			f.write(" (")
			for j, col := range cte.Columns {
				if j > 0 {
					f.write(", ")
				}
				f.writeIdent(col)
			}
			f.write(")")
		}
		f.write(" ")
		f.writeKeyword("AS")
		f.write(" (")
		f.Format(cte.Query)
		f.write(")")
	}
}

// formatSelectRiver lays s out with every clause keyword right-aligned to
// a shared column and the SELECT list broken one expression per line.
func (f *Formatter) formatSelectRiver(s *ast.SelectStmt) {
	clauses := []string{"SELECT"}
	if s.From != nil {
		clauses = append(clauses, "FROM")
	}
	if s.Where != nil {
		clauses = append(clauses, "WHERE")
	}
	if len(s.GroupBy) > 0 {
		clauses = append(clauses, "GROUP BY")
	}
	if s.Having != nil {
		clauses = append(clauses, "HAVING")
	}
	if len(s.OrderBy) > 0 {
		clauses = append(clauses, "ORDER BY")
	}
	if s.Limit != nil {
		clauses = append(clauses, "LIMIT")
	}
	width := clauseWidth(clauses...)

	if s.With != nil {
		f.formatWithClause(s.With)
		f.newlineIndent(0)
	}

	f.riverKeyword("SELECT", width)
	if s.Distinct {
		f.writeKeyword("DISTINCT")
		f.write(" ")
	}
	if s.Top != nil {
		f.formatTopClause(s.Top)
		f.write(" ")
	}
	f.formatSelectColumnsRiver(s.Columns, width+1)

	if s.From != nil {
		f.newlineIndent(0)
		f.riverKeyword("FROM", width)
		f.formatFromRiver(s.From, width+1)
	}
	if s.Where != nil {
		f.newlineIndent(0)
		f.riverKeyword("WHERE", width)
		f.formatWhereRiver(s.Where, width+1)
	}
	if len(s.GroupBy) > 0 {
		f.newlineIndent(0)
		f.riverKeyword("GROUP BY", width)
		for i, expr := range s.GroupBy {
			if i > 0 {
				f.write(", ")
			}
			f.Format(expr)
		}
	}
	if s.Having != nil {
		f.newlineIndent(0)
		f.riverKeyword("HAVING", width)
		f.Format(s.Having)
	}
	if len(s.OrderBy) > 0 {
		f.newlineIndent(0)
		f.riverKeyword("ORDER BY", width)
		f.writeOrderByList(s.OrderBy)
	}
	if s.Limit != nil {
		f.newlineIndent(0)
		f.riverKeyword("LIMIT", width)
		if s.Limit.Count != nil {
			f.Format(s.Limit.Count)
		}
		if s.Limit.Offset != nil {
			f.write(" ")
			f.writeKeyword("OFFSET")
			f.write(" ")
			f.Format(s.Limit.Offset)
		}
	}
	if s.Lock != "" {
		f.newlineIndent(0)
		f.writeKeyword("FOR")
		f.write(" ")
		f.writeKeyword(s.Lock)
	}
}

func (f *Formatter) writeOrderByList(obs []*ast.OrderByExpr) {
	for i, ob := range obs {
		if i > 0 {
			f.write(", ")
		}
		f.Format(ob.Expr)
		if ob.Desc {
			f.write(" ")
			f.writeKeyword("DESC")
		}
		if ob.NullsFirst != nil {
			f.write(" ")
			f.writeKeyword("NULLS")
			f.write(" ")
			if *ob.NullsFirst {
				f.writeKeyword("FIRST")
			} else {
				f.writeKeyword("LAST")
			}
		}
	}
}

func (f *Formatter) formatSelectColumnsRiver(cols []ast.SelectExpr, indent int) {
	for i, col := range cols {
		if i > 0 {
			f.write(",")
			f.newlineIndent(indent)
		}
		flat := f.renderFlat(func(sf *Formatter) { sf.Format(col) })
		if f.fits(flat) {
			f.write(flat)
		} else {
			f.Format(col)
		}
	}
}

// formatFromRiver flattens a left-deep join chain and places each join on
// its own line under FROM.
func (f *Formatter) formatFromRiver(te ast.TableExpr, indent int) {
	var joins []*ast.JoinExpr
	base := te
	for {
		j, ok := base.(*ast.JoinExpr)
		if !ok {
			break
		}
		joins = append([]*ast.JoinExpr{j}, joins...)
		base = j.Left
	}
	f.Format(base)
	for _, j := range joins {
		f.newlineIndent(indent)
		if j.Natural {
			f.writeKeyword("NATURAL")
			f.write(" ")
		}
		f.writeKeyword(joinKeyword(j.Type))
		f.write(" ")
		f.Format(j.Right)
		if j.On != nil {
			f.write(" ")
			f.writeKeyword("ON")
			f.write(" ")
			f.Format(j.On)
		}
		if len(j.Using) > 0 {
			f.write(" ")
			f.writeKeyword("USING")
			f.write(" (")
			for i, col := range j.Using {
				if i > 0 {
					f.write(", ")
				}
				f.writeIdent(col)
			}
			f.write(")")
		}
	}
}

func joinKeyword(t ast.JoinType) string {
	switch t {
	case ast.JoinInner:
		return "JOIN"
	case ast.JoinLeft:
		return "LEFT JOIN"
	case ast.JoinRight:
		return "RIGHT JOIN"
	case ast.JoinFull:
		return "FULL JOIN"
	case ast.JoinCross:
		return "CROSS JOIN"
	default:
		return "JOIN"
	}
}

// formatWhereRiver splits a chain of top-level AND conjuncts one per line.
// OR-joined and single conditions are left on one line under WHERE.
func (f *Formatter) formatWhereRiver(e ast.Expr, indent int) {
	conds := flattenAnd(e)
	for i, c := range conds {
		if i > 0 {
			f.newlineIndent(indent)
			f.writeKeyword("AND")
			f.write(" ")
		}
		f.Format(c)
	}
}

func flattenAnd(e ast.Expr) []ast.Expr {
	if b, ok := e.(*ast.BinaryExpr); ok {
		if isAndOp(b) {
			return append(flattenAnd(b.Left), flattenAnd(b.Right)...)
		}
	}
	return []ast.Expr{e}
}

func (f *Formatter) formatSetOp(s *ast.SetOp) {
	flat := f.renderFlat(func(sf *Formatter) { sf.formatSetOpFlat(s) })
	if f.fits(flat) {
		f.write(flat)
		return
	}
	f.formatSetOpRiver(s)
}

func (f *Formatter) formatSetOpFlat(s *ast.SetOp) {
	if s.With != nil {
		f.formatWithClause(s.With)
		f.write(" ")
	}
	f.Format(s.Left)
	f.write(" ")
	f.writeSetOpKeyword(s)
	f.write(" ")
	f.Format(s.Right)
	f.writeOrderByFlat(s.OrderBy)
	f.writeLimitFlat(s.Limit)
}

func (f *Formatter) formatSetOpRiver(s *ast.SetOp) {
	if s.With != nil {
		f.formatWithClause(s.With)
		f.newlineIndent(0)
	}
	f.Format(s.Left)
	f.newlineIndent(0)
	f.writeSetOpKeyword(s)
	f.newlineIndent(0)
	f.Format(s.Right)
	if len(s.OrderBy) > 0 {
		f.newlineIndent(0)
		width := clauseWidth("ORDER BY", "LIMIT")
		f.riverKeyword("ORDER BY", width)
		f.writeOrderByList(s.OrderBy)
		if s.Limit != nil {
			f.newlineIndent(0)
			f.riverKeyword("LIMIT", width)
			f.Format(s.Limit.Count)
		}
	} else if s.Limit != nil {
		f.newlineIndent(0)
		f.writeKeyword("LIMIT")
		f.write(" ")
		f.Format(s.Limit.Count)
	}
}

func (f *Formatter) writeSetOpKeyword(s *ast.SetOp) {
	switch s.Type {
	case ast.Union:
		f.writeKeyword("UNION")
	case ast.Intersect:
		f.writeKeyword("INTERSECT")
	case ast.Except:
		f.writeKeyword("EXCEPT")
	}
	if s.All {
		f.write(" ")
		f.writeKeyword("ALL")
	}
}

func (f *Formatter) formatInsert(s *ast.InsertStmt) {
	flat := f.renderFlat(func(sf *Formatter) { sf.formatInsertFlat(s) })
	if f.fits(flat) {
		f.write(flat)
		return
	}
	f.formatInsertRiver(s)
}

func (f *Formatter) formatInsertFlat(s *ast.InsertStmt) {
	if s.With != nil {
		f.formatWithClause(s.With)
		f.write(" ")
	}
	f.writeInsertHead(s)
	if s.Select != nil {
		f.write(" ")
		f.Format(s.Select)
	} else if len(s.Values) > 0 {
		f.write(" ")
		f.writeValuesRows(s.Values)
	}
	f.writeInsertTail(s)
}

func (f *Formatter) formatInsertRiver(s *ast.InsertStmt) {
	if s.With != nil {
		f.formatWithClause(s.With)
		f.newlineIndent(0)
	}
	f.writeInsertHead(s)
	if s.Select != nil {
		f.newlineIndent(0)
		f.Format(s.Select)
	} else if len(s.Values) > 0 {
		f.newlineIndent(0)
		f.writeKeyword("VALUES")
		f.write(" ")
		indent := f.col
		for i, row := range s.Values {
			if i > 0 {
				f.write(",")
				f.newlineIndent(indent)
			}
			f.write("(")
			for j, val := range row {
				if j > 0 {
					f.write(", ")
				}
				f.Format(val)
			}
			f.write(")")
		}
	}
	if len(s.OnDuplicateUpdate) > 0 || s.OnConflict != nil || len(s.Returning) > 0 {
		f.newlineIndent(0)
		f.writeInsertTail(s)
	}
}

func (f *Formatter) writeInsertHead(s *ast.InsertStmt) {
	if s.Replace {
		f.writeKeyword("REPLACE")
	} else {
		f.writeKeyword("INSERT")
	}
	if s.Ignore {
		f.write(" ")
		f.writeKeyword("IGNORE")
	}
	f.write(" ")
	f.writeKeyword("INTO")
	f.write(" ")
	f.Format(s.Table)
	if len(s.Columns) > 0 {
		f.write(" (")
		for i, col := range s.Columns {
			if i > 0 {
				f.write(", ")
			}
			f.writeIdent(col.Name())
		}
		f.write(")")
	}
}

func (f *Formatter) writeValuesRows(rows [][]ast.Expr) {
	f.writeKeyword("VALUES")
	f.write(" ")
	for i, row := range rows {
		if i > 0 {
			f.write(", ")
		}
		f.write("(")
		for j, val := range row {
			if j > 0 {
				f.write(", ")
			}
			f.Format(val)
		}
		f.write(")")
	}
}

func (f *Formatter) writeInsertTail(s *ast.InsertStmt) {
	if len(s.OnDuplicateUpdate) > 0 {
		f.write(" ")
		f.writeKeyword("ON DUPLICATE KEY UPDATE")
		f.write(" ")
		for i, ue := range s.OnDuplicateUpdate {
			if i > 0 {
				f.write(", ")
			}
			f.writeIdent(ue.Column.Name())
			f.write(" = ")
			f.Format(ue.Expr)
		}
	}
	if s.OnConflict != nil {
		f.write(" ")
		f.writeKeyword("ON CONFLICT")
		if len(s.OnConflict.Columns) > 0 {
			f.write(" (")
			for i, col := range s.OnConflict.Columns {
				if i > 0 {
					f.write(", ")
				}
				f.writeIdent(col)
			}
			f.write(")")
		}
		f.write(" ")
		f.writeKeyword("DO")
		f.write(" ")
		if s.OnConflict.DoNothing {
			f.writeKeyword("NOTHING")
		} else {
			f.writeKeyword("UPDATE SET")
			f.write(" ")
			for i, ue := range s.OnConflict.Updates {
				if i > 0 {
					f.write(", ")
				}
				f.writeIdent(ue.Column.Name())
				f.write(" = ")
				f.Format(ue.Expr)
			}
		}
	}
	if len(s.Returning) > 0 {
		f.write(" ")
		f.writeKeyword("RETURNING")
		f.write(" ")
		for i, col := range s.Returning {
			if i > 0 {
				f.write(", ")
			}
			f.Format(col)
		}
	}
}

func (f *Formatter) formatUpdate(s *ast.UpdateStmt) {
	flat := f.renderFlat(func(sf *Formatter) { sf.formatUpdateFlat(s) })
	if f.fits(flat) {
		f.write(flat)
		return
	}
	f.formatUpdateRiver(s)
}

func (f *Formatter) formatUpdateFlat(s *ast.UpdateStmt) {
	if s.With != nil {
		f.formatWithClause(s.With)
		f.write(" ")
	}
	f.writeKeyword("UPDATE")
	f.write(" ")
	f.Format(s.Table)
	f.write(" ")
	f.writeKeyword("SET")
	f.write(" ")
	f.writeSetExprs(s.Set)
	if s.From != nil {
		f.write(" ")
		f.writeKeyword("FROM")
		f.write(" ")
		f.Format(s.From)
	}
	if s.Where != nil {
		f.write(" ")
		f.writeKeyword("WHERE")
		f.write(" ")
		f.Format(s.Where)
	}
	f.writeOrderByFlat(s.OrderBy)
	if s.Limit != nil && s.Limit.Count != nil {
		f.write(" ")
		f.writeKeyword("LIMIT")
		f.write(" ")
		f.Format(s.Limit.Count)
	}
	f.writeReturningFlat(s.Returning)
}

func (f *Formatter) formatUpdateRiver(s *ast.UpdateStmt) {
	clauses := []string{"UPDATE", "SET"}
	if s.From != nil {
		clauses = append(clauses, "FROM")
	}
	if s.Where != nil {
		clauses = append(clauses, "WHERE")
	}
	width := clauseWidth(clauses...)

	if s.With != nil {
		f.formatWithClause(s.With)
		f.newlineIndent(0)
	}
	f.riverKeyword("UPDATE", width)
	f.Format(s.Table)
	f.newlineIndent(0)
	f.riverKeyword("SET", width)
	f.writeSetExprsRiver(s.Set, width+1)
	if s.From != nil {
		f.newlineIndent(0)
		f.riverKeyword("FROM", width)
		f.Format(s.From)
	}
	if s.Where != nil {
		f.newlineIndent(0)
		f.riverKeyword("WHERE", width)
		f.formatWhereRiver(s.Where, width+1)
	}
	if len(s.OrderBy) > 0 {
		f.newlineIndent(0)
		f.writeKeyword("ORDER BY")
		f.write(" ")
		f.writeOrderByList(s.OrderBy)
	}
	if s.Limit != nil && s.Limit.Count != nil {
		f.newlineIndent(0)
		f.writeKeyword("LIMIT")
		f.write(" ")
		f.Format(s.Limit.Count)
	}
	if len(s.Returning) > 0 {
		f.newlineIndent(0)
		f.writeReturningFlat(s.Returning)
	}
}

func (f *Formatter) writeSetExprs(set []*ast.UpdateExpr) {
	for i, ue := range set {
		if i > 0 {
			f.write(", ")
		}
		f.formatColName(ue.Column)
		f.write(" = ")
		f.Format(ue.Expr)
	}
}

func (f *Formatter) writeSetExprsRiver(set []*ast.UpdateExpr, indent int) {
	for i, ue := range set {
		if i > 0 {
			f.write(",")
			f.newlineIndent(indent)
		}
		f.formatColName(ue.Column)
		f.write(" = ")
		f.Format(ue.Expr)
	}
}

func (f *Formatter) writeReturningFlat(cols []ast.SelectExpr) {
	if len(cols) == 0 {
		return
	}
	f.write(" ")
	f.writeKeyword("RETURNING")
	f.write(" ")
	for i, col := range cols {
		if i > 0 {
			f.write(", ")
		}
		f.Format(col)
	}
}

func (f *Formatter) formatDelete(s *ast.DeleteStmt) {
	flat := f.renderFlat(func(sf *Formatter) { sf.formatDeleteFlat(s) })
	if f.fits(flat) {
		f.write(flat)
		return
	}
	f.formatDeleteRiver(s)
}

func (f *Formatter) formatDeleteFlat(s *ast.DeleteStmt) {
	if s.With != nil {
		f.formatWithClause(s.With)
		f.write(" ")
	}
	f.writeKeyword("DELETE FROM")
	f.write(" ")
	f.Format(s.Table)
	if s.Using != nil {
		f.write(" ")
		f.writeKeyword("USING")
		f.write(" ")
		f.Format(s.Using)
	}
	if s.Where != nil {
		f.write(" ")
		f.writeKeyword("WHERE")
		f.write(" ")
		f.Format(s.Where)
	}
	f.writeOrderByFlat(s.OrderBy)
	if s.Limit != nil && s.Limit.Count != nil {
		f.write(" ")
		f.writeKeyword("LIMIT")
		f.write(" ")
		f.Format(s.Limit.Count)
	}
	f.writeReturningFlat(s.Returning)
}

func (f *Formatter) formatDeleteRiver(s *ast.DeleteStmt) {
	clauses := []string{"DELETE FROM"}
	if s.Using != nil {
		clauses = append(clauses, "USING")
	}
	if s.Where != nil {
		clauses = append(clauses, "WHERE")
	}
	width := clauseWidth(clauses...)

	if s.With != nil {
		f.formatWithClause(s.With)
		f.newlineIndent(0)
	}
	f.riverKeyword("DELETE FROM", width)
	f.Format(s.Table)
	if s.Using != nil {
		f.newlineIndent(0)
		f.riverKeyword("USING", width)
		f.Format(s.Using)
	}
	if s.Where != nil {
		f.newlineIndent(0)
		f.riverKeyword("WHERE", width)
		f.formatWhereRiver(s.Where, width+1)
	}
	if len(s.OrderBy) > 0 {
		f.newlineIndent(0)
		f.writeKeyword("ORDER BY")
		f.write(" ")
		f.writeOrderByList(s.OrderBy)
	}
	if s.Limit != nil && s.Limit.Count != nil {
		f.newlineIndent(0)
		f.writeKeyword("LIMIT")
		f.write(" ")
		f.Format(s.Limit.Count)
	}
	if len(s.Returning) > 0 {
		f.newlineIndent(0)
		f.writeReturningFlat(s.Returning)
	}
}

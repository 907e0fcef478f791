package sqlriver

import (
	"strings"
	"testing"

	"github.com/freeeve/sqlriver/ast"
)

func mustParse(t *testing.T, sql string) ast.Statement {
	t.Helper()
	stmt, err := Parse(sql, DefaultOptions())
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return stmt
}

func TestParseAndFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "simple select", input: "SELECT * FROM users"},
		{name: "select with where", input: "SELECT id, name FROM users WHERE status = 'active'"},
		{name: "select with join", input: "SELECT a.id, b.name FROM a JOIN b ON a.id = b.a_id"},
		{name: "select with multiple joins", input: "SELECT * FROM a LEFT JOIN b ON a.id = b.a_id RIGHT JOIN c ON b.id = c.b_id"},
		{name: "select with subquery", input: "SELECT * FROM users WHERE id IN (SELECT user_id FROM orders)"},
		{name: "insert", input: "INSERT INTO users (id, name) VALUES (1, 'test')"},
		{name: "update", input: "UPDATE users SET name = 'new' WHERE id = 1"},
		{name: "delete", input: "DELETE FROM users WHERE id = 1"},
		{name: "union", input: "SELECT id FROM a UNION SELECT id FROM b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := mustParse(t, tt.input)
			formatted := String(stmt)
			if formatted == "" {
				t.Fatal("formatted output is empty")
			}

			stmt2 := mustParse(t, formatted)
			formatted2 := String(stmt2)
			if formatted != formatted2 {
				t.Errorf("round-trip mismatch:\nfirst:  %s\nsecond: %s", formatted, formatted2)
			}
		})
	}
}

func TestFormatRiverWrapsLongSelect(t *testing.T) {
	sql := "SELECT users.id, users.first_name, users.last_name, users.email_address, orders.total_amount " +
		"FROM users JOIN orders ON users.id = orders.user_id WHERE users.status = 'active' AND orders.total_amount > 100"

	out, err := Format(sql, DefaultOptions())
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	if out == "" {
		t.Fatal("empty output")
	}
	// The statement overruns the default 88-column budget, so the river
	// layout should have broken it across multiple lines.
	lineCount := 1
	for _, c := range out {
		if c == '\n' {
			lineCount++
		}
	}
	if lineCount < 3 {
		t.Errorf("expected multi-line river layout, got %d line(s): %s", lineCount, out)
	}
}

func TestFormatKeepsShortSelectSingleLine(t *testing.T) {
	out, err := Format("SELECT id FROM t", DefaultOptions())
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	want := "SELECT id FROM t;\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestSetOpBuildsBothBranches(t *testing.T) {
	stmt := mustParse(t, "SELECT id FROM a UNION ALL SELECT id FROM b")
	setOp, ok := stmt.(*SetOp)
	if !ok {
		t.Fatalf("expected *SetOp, got %T", stmt)
	}
	if setOp.Left == nil || setOp.Right == nil {
		t.Fatal("expected both Left and Right branches populated")
	}
	if !setOp.All {
		t.Error("expected All to be true for UNION ALL")
	}
}

func TestRecoverModePassesThroughFailingStatement(t *testing.T) {
	var recovered []string
	opts := DefaultOptions()
	opts.Recover = true
	opts.OnRecover = func(err error, source string) {
		recovered = append(recovered, source)
	}

	stmts, err := ParseAll("SELECT 1; SELECT FROM FROM FROM; SELECT 2", opts)
	if err != nil {
		t.Fatalf("ParseAll error: %v", err)
	}
	if len(stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(stmts))
	}
	if _, ok := stmts[1].(*RawPassthroughStmt); !ok {
		t.Fatalf("expected middle statement to be *RawPassthroughStmt, got %T", stmts[1])
	}
	if len(recovered) != 1 {
		t.Fatalf("expected OnRecover to fire once, got %d", len(recovered))
	}
}

func TestMaxDepthErrorIsFatalEvenUnderRecover(t *testing.T) {
	opts := DefaultOptions()
	opts.Recover = true
	opts.MaxDepth = 2

	_, err := Parse("SELECT (SELECT (SELECT (SELECT 1)))", opts)
	if err == nil {
		t.Fatal("expected MaxDepthError")
	}
	if _, ok := err.(*MaxDepthError); !ok {
		t.Fatalf("expected *MaxDepthError, got %T: %v", err, err)
	}
}

func TestWalk(t *testing.T) {
	stmt := mustParse(t, "SELECT a.id, b.name FROM users a JOIN orders b ON a.id = b.user_id WHERE a.status = 'active'")

	var columns []string
	Walk(stmt, func(node Node) bool {
		if col, ok := node.(*ColName); ok {
			columns = append(columns, col.Name())
		}
		return true
	})

	expected := []string{"id", "name", "id", "user_id", "status"}
	if len(columns) != len(expected) {
		t.Errorf("expected %d columns, got %d: %v", len(expected), len(columns), columns)
	}
}

func TestRewrite(t *testing.T) {
	stmt := mustParse(t, "SELECT id, name FROM users WHERE status = 'active'")

	rewritten := Rewrite(stmt, func(node Node) Node {
		if col, ok := node.(*ColName); ok && len(col.Parts) == 1 {
			return &ColName{Parts: []string{"u", col.Name()}}
		}
		return node
	})

	formatted := String(rewritten)
	if formatted == "" {
		t.Fatal("rewritten output is empty")
	}
}

func TestDDL(t *testing.T) {
	queries := []string{
		`CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(255) NOT NULL)`,
		`CREATE TABLE IF NOT EXISTS items (id INT, price DECIMAL(10,2))`,
		`ALTER TABLE users ADD COLUMN email VARCHAR(255)`,
		`ALTER TABLE users DROP COLUMN IF EXISTS temp`,
		`DROP TABLE IF EXISTS old_users CASCADE`,
		`CREATE UNIQUE INDEX idx_email ON users (email)`,
		`DROP INDEX idx_old ON users`,
		`TRUNCATE TABLE logs`,
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			stmt := mustParse(t, q)
			formatted := String(stmt)
			if formatted == "" {
				t.Error("empty formatted output")
			}
		})
	}
}

func TestCreateTableColumnAlignment(t *testing.T) {
	sql := `CREATE TABLE orders (id INT PRIMARY KEY, customer_email VARCHAR(255) NOT NULL, total_amount DECIMAL(12,2) NOT NULL, placed_at TIMESTAMP NOT NULL)`

	out, err := Format(sql, DefaultOptions())
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	if out == "" {
		t.Fatal("empty output")
	}
	stmt2 := mustParse(t, out)
	if _, ok := stmt2.(*CreateTableStmt); !ok {
		t.Fatalf("expected *CreateTableStmt after re-parse, got %T", stmt2)
	}
}

func TestMultiDialect(t *testing.T) {
	queries := []struct {
		name  string
		query string
	}{
		{"mysql replace", "REPLACE INTO users (id, name) VALUES (1, 'test')"},
		{"mysql on duplicate", "INSERT INTO users (id, name) VALUES (1, 'test') ON DUPLICATE KEY UPDATE name = 'new'"},
		{"mysql limit offset", "SELECT * FROM users LIMIT 10, 20"},
		{"pg cast", "SELECT a::int FROM t"},
		{"pg returning", "INSERT INTO users (name) VALUES ('test') RETURNING id"},
		{"pg on conflict", "INSERT INTO users (id, name) VALUES (1, 'test') ON CONFLICT (id) DO NOTHING"},
		{"pg array", "SELECT ARRAY[1, 2, 3]"},
		{"cte", "WITH t AS (SELECT 1) SELECT * FROM t"},
		{"window", "SELECT SUM(x) OVER (PARTITION BY y) FROM t"},
		{"exists", "SELECT * FROM t WHERE EXISTS (SELECT 1 FROM u)"},
	}

	for _, tc := range queries {
		t.Run(tc.name, func(t *testing.T) {
			stmt := mustParse(t, tc.query)
			formatted := String(stmt)
			if formatted == "" {
				t.Error("empty formatted output")
			}
		})
	}
}

func TestMultiLevelIdentifiers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCols int
	}{
		{name: "simple column", input: "SELECT a FROM t", wantCols: 1},
		{name: "two-level column", input: "SELECT t.a FROM t", wantCols: 1},
		{name: "three-level column", input: "SELECT schema.table.column FROM schema.table", wantCols: 1},
		{name: "four-level column", input: "SELECT catalog.schema.table.column FROM catalog.schema.table", wantCols: 1},
		{name: "mixed levels", input: "SELECT a, t.b, s.t.c, cat.s.t.d FROM t", wantCols: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := mustParse(t, tt.input)

			sel, ok := stmt.(*SelectStmt)
			if !ok {
				t.Fatalf("expected SelectStmt, got %T", stmt)
			}
			if len(sel.Columns) != tt.wantCols {
				t.Errorf("expected %d columns, got %d", tt.wantCols, len(sel.Columns))
			}

			formatted := String(stmt)
			stmt2 := mustParse(t, formatted)
			formatted2 := String(stmt2)
			if formatted != formatted2 {
				t.Errorf("round-trip mismatch:\nfirst:  %s\nsecond: %s", formatted, formatted2)
			}
		})
	}
}

func extractTables(stmt Statement) []string {
	var tables []string
	seen := make(map[string]bool)
	Walk(stmt, func(node Node) bool {
		if _, ok := node.(*ColName); ok {
			return false
		}
		if tn, ok := node.(*TableName); ok {
			name := tn.Name()
			if !seen[name] {
				tables = append(tables, name)
				seen[name] = true
			}
		}
		return true
	})
	return tables
}

func TestExtractTables(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM users u JOIN orders o ON u.id = o.user_id WHERE EXISTS (SELECT 1 FROM items)")

	tables := extractTables(stmt)
	if len(tables) != 3 {
		t.Errorf("expected 3 tables, got %d: %v", len(tables), tables)
	}
}

func TestMultiLevelIdentifierParts(t *testing.T) {
	stmt := mustParse(t, "SELECT catalog.schema.table.column FROM db")

	sel := stmt.(*SelectStmt)
	ae := sel.Columns[0].(*AliasedExpr)
	col := ae.Expr.(*ColName)

	if len(col.Parts) != 4 {
		t.Fatalf("expected 4 parts, got %d: %v", len(col.Parts), col.Parts)
	}
	if col.Name() != "column" {
		t.Errorf("Name() = %q, want %q", col.Name(), "column")
	}
	if col.Table() != "table" {
		t.Errorf("Table() = %q, want %q", col.Table(), "table")
	}
	if col.Schema() != "schema" {
		t.Errorf("Schema() = %q, want %q", col.Schema(), "schema")
	}
	if col.Catalog() != "catalog" {
		t.Errorf("Catalog() = %q, want %q", col.Catalog(), "catalog")
	}
}

func TestMultiLevelTableName(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM catalog.schema.table")

	sel := stmt.(*SelectStmt)
	var tn *TableName
	switch from := sel.From.(type) {
	case *TableName:
		tn = from
	case *AliasedTableExpr:
		tn = from.Expr.(*TableName)
	default:
		t.Fatalf("unexpected From type: %T", sel.From)
	}

	if len(tn.Parts) != 3 {
		t.Fatalf("expected 3 parts, got %d: %v", len(tn.Parts), tn.Parts)
	}
	if tn.Name() != "table" {
		t.Errorf("Name() = %q, want %q", tn.Name(), "table")
	}
	if tn.Schema() != "schema" {
		t.Errorf("Schema() = %q, want %q", tn.Schema(), "schema")
	}
	if tn.Catalog() != "catalog" {
		t.Errorf("Catalog() = %q, want %q", tn.Catalog(), "catalog")
	}
}

func TestFormatAnchorsLeadingComment(t *testing.T) {
	sql := "-- fetch active users\nSELECT * FROM users"

	out, err := Format(sql, DefaultOptions())
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	want := "/* fetch active users */\nSELECT * FROM users;\n"
	if out != want {
		t.Errorf("Format() = %q, want %q", out, want)
	}
}

func TestFormatAnchorsTrailingComment(t *testing.T) {
	sql := "SELECT * FROM users -- done"

	out, err := Format(sql, DefaultOptions())
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	if !strings.Contains(out, "/* done */") {
		t.Errorf("Format() = %q, want it to contain the normalized trailing comment", out)
	}
}

func TestFormatPreservesBlankLineBetweenComments(t *testing.T) {
	sql := "-- block one\n\n-- block two\nSELECT 1"

	out, err := Format(sql, DefaultOptions())
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	want := "/* block one */\n\n/* block two */\nSELECT 1;\n"
	if out != want {
		t.Errorf("Format() = %q, want %q", out, want)
	}
}

func TestFormatAnchorsCommentsAcrossStatements(t *testing.T) {
	sql := "SELECT 1; -- between\nSELECT 2"

	out, err := Format(sql, DefaultOptions())
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	if !strings.Contains(out, "/* between */") {
		t.Errorf("Format() = %q, want it to contain the inter-statement comment", out)
	}
	if strings.Index(out, "SELECT 1") > strings.Index(out, "/* between */") ||
		strings.Index(out, "/* between */") > strings.Index(out, "SELECT 2") {
		t.Errorf("Format() = %q, want the comment anchored between the two statements", out)
	}
}

func TestFormatTopClauseTSQL(t *testing.T) {
	opts := DefaultOptions()
	opts.Dialect = TSQL

	out, err := Format("SELECT TOP 10 id FROM users", opts)
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	if !strings.Contains(out, "TOP (10)") {
		t.Errorf("Format() = %q, want it to contain TOP (10)", out)
	}

	stmt2, err := Parse(out, opts)
	if err != nil {
		t.Fatalf("re-parse error: %v", err)
	}
	sel, ok := stmt2.(*SelectStmt)
	if !ok {
		t.Fatalf("expected *SelectStmt, got %T", stmt2)
	}
	if sel.Top == nil {
		t.Fatal("expected TOP clause to round-trip")
	}
}

func TestFormatMetaCommandAndDirectivePassThrough(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"psql meta command", "\\d users"},
		{"tsql batch separator", "SELECT 1\nGO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Format(tt.input, DefaultOptions())
			if err != nil {
				t.Fatalf("Format error: %v", err)
			}
			if out == "" {
				t.Fatal("empty output")
			}
		})
	}
}

func BenchmarkParseFormat(b *testing.B) {
	query := `SELECT u.id, u.name, COUNT(o.id) as order_count
FROM users u
LEFT JOIN orders o ON u.id = o.user_id
WHERE u.status = 'active'
  AND u.created_at BETWEEN '2024-01-01' AND '2024-12-31'
GROUP BY u.id, u.name
HAVING COUNT(o.id) > 5
ORDER BY order_count DESC
LIMIT 100`

	opts := DefaultOptions()
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		stmt, _ := Parse(query, opts)
		_ = String(stmt)
	}
}

func BenchmarkWalk(b *testing.B) {
	opts := DefaultOptions()
	stmt, _ := Parse(`SELECT u.id, u.name, COUNT(o.id) as order_count
FROM users u
LEFT JOIN orders o ON u.id = o.user_id
WHERE u.status = 'active'
GROUP BY u.id, u.name
ORDER BY order_count DESC`, opts)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		Walk(stmt, func(node ast.Node) bool {
			return true
		})
	}
}

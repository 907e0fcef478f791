package formatter

import (
	"strings"

	"github.com/freeeve/sqlriver/ast"
)

func (f *Formatter) formatCreateTable(s *ast.CreateTableStmt) {
	flat := f.renderFlat(func(sf *Formatter) { sf.formatCreateTableFlat(s) })
	if f.fits(flat) {
		f.write(flat)
		return
	}
	f.formatCreateTableRiver(s)
}

func (f *Formatter) writeCreateTableHead(s *ast.CreateTableStmt) {
	f.writeKeyword("CREATE")
	if s.Temporary {
		f.write(" ")
		f.writeKeyword("TEMPORARY")
	}
	f.write(" ")
	f.writeKeyword("TABLE")
	if s.IfNotExists {
		f.write(" ")
		f.writeKeyword("IF NOT EXISTS")
	}
	f.write(" ")
	f.Format(s.Table)
}

func (f *Formatter) formatCreateTableFlat(s *ast.CreateTableStmt) {
	f.writeCreateTableHead(s)
	if s.As != nil {
		f.write(" ")
		f.writeKeyword("AS")
		f.write(" ")
		f.Format(s.As)
		return
	}
	f.write(" (")
	for i, col := range s.Columns {
		if i > 0 {
			f.write(", ")
		}
		f.formatColumnDef(col)
	}
	for i, cons := range s.Constraints {
		if len(s.Columns) > 0 || i > 0 {
			f.write(", ")
		}
		f.formatTableConstraint(cons)
	}
	f.write(")")
	f.writeTableOptions(s.Options)
}

// formatCreateTableRiver lists one column (or constraint) per line, with
// column names padded to a shared width so the data types line up.
func (f *Formatter) formatCreateTableRiver(s *ast.CreateTableStmt) {
	f.writeCreateTableHead(s)
	if s.As != nil {
		f.newlineIndent(0)
		f.writeKeyword("AS")
		f.write(" ")
		f.Format(s.As)
		return
	}
	f.write(" (")
	indent := len(f.opts.Indent)

	nameWidth := 0
	for _, col := range s.Columns {
		if n := quotedLen(col.Name); n > nameWidth {
			nameWidth = n
		}
	}

	total := len(s.Columns) + len(s.Constraints)
	n := 0
	for _, col := range s.Columns {
		f.newlineIndent(indent)
		f.writeColumnDefAligned(col, nameWidth)
		n++
		if n < total {
			f.write(",")
		}
	}
	for _, cons := range s.Constraints {
		f.newlineIndent(indent)
		f.formatTableConstraint(cons)
		n++
		if n < total {
			f.write(",")
		}
	}
	f.newlineIndent(0)
	f.write(")")
	f.writeTableOptions(s.Options)
}

func quotedLen(id string) int {
	if needsQuoting(id) {
		return len(id) + 2
	}
	return len(id)
}

func (f *Formatter) writeColumnDefAligned(col *ast.ColumnDef, nameWidth int) {
	before := f.col
	f.writeIdent(col.Name)
	if pad := nameWidth - (f.col - before); pad > 0 {
		f.write(strings.Repeat(" ", pad))
	}
	f.write(" ")
	f.formatDataType(col.Type)
	for _, cons := range col.Constraints {
		f.write(" ")
		f.formatColumnConstraint(cons)
	}
}

func (f *Formatter) writeTableOptions(opts []*ast.TableOption) {
	for _, opt := range opts {
		f.write(" ")
		f.write(opt.Name)
		f.write("=")
		f.write(opt.Value)
	}
}

func (f *Formatter) formatColumnDef(col *ast.ColumnDef) {
	f.writeIdent(col.Name)
	f.write(" ")
	f.formatDataType(col.Type)
	for _, cons := range col.Constraints {
		f.write(" ")
		f.formatColumnConstraint(cons)
	}
}

func (f *Formatter) formatDataType(dt *ast.DataType) {
	if dt == nil {
		return
	}
	if needsQuoting(dt.Name) {
		f.writeIdent(dt.Name)
	} else {
		f.writeKeyword(dt.Name)
	}
	if dt.Length != nil {
		f.write("(")
		f.write(itoa(*dt.Length))
		if dt.Scale != nil {
			f.write(", ")
			f.write(itoa(*dt.Scale))
		}
		f.write(")")
	}
	if dt.Unsigned {
		f.write(" ")
		f.writeKeyword("UNSIGNED")
	}
	if dt.Array {
		f.write("[]")
	}
}

func (f *Formatter) formatColumnConstraint(cons *ast.ColumnConstraint) {
	switch cons.Type {
	case ast.ConstraintNotNull:
		f.writeKeyword("NOT NULL")
	case ast.ConstraintPrimaryKey:
		f.writeKeyword("PRIMARY KEY")
	case ast.ConstraintUnique:
		f.writeKeyword("UNIQUE")
	case ast.ConstraintDefault:
		f.writeKeyword("DEFAULT")
		f.write(" ")
		f.Format(cons.Default)
	case ast.ConstraintCheck:
		f.writeKeyword("CHECK")
		f.write(" (")
		f.Format(cons.Check)
		f.write(")")
	case ast.ConstraintForeignKey:
		f.writeKeyword("REFERENCES")
		f.write(" ")
		f.Format(cons.References.Table)
		if len(cons.References.Columns) > 0 {
			f.write(" (")
			for i, col := range cons.References.Columns {
				if i > 0 {
					f.write(", ")
				}
				f.writeIdent(col)
			}
			f.write(")")
		}
	}
}

func (f *Formatter) formatTableConstraint(cons *ast.TableConstraint) {
	if cons.Name != "" {
		f.writeKeyword("CONSTRAINT")
		f.write(" ")
		f.writeIdent(cons.Name)
		f.write(" ")
	}
	switch cons.Type {
	case ast.ConstraintPrimaryKey:
		f.writeKeyword("PRIMARY KEY")
		f.write(" (")
		for i, col := range cons.Columns {
			if i > 0 {
				f.write(", ")
			}
			f.writeIdent(col)
		}
		f.write(")")
	case ast.ConstraintUnique:
		f.writeKeyword("UNIQUE")
		f.write(" (")
		for i, col := range cons.Columns {
			if i > 0 {
				f.write(", ")
			}
			f.writeIdent(col)
		}
		f.write(")")
	case ast.ConstraintForeignKey:
		f.writeKeyword("FOREIGN KEY")
		f.write(" (")
		for i, col := range cons.Columns {
			if i > 0 {
				f.write(", ")
			}
			f.writeIdent(col)
		}
		f.write(") ")
		f.writeKeyword("REFERENCES")
		f.write(" ")
		f.Format(cons.References.Table)
		if len(cons.References.Columns) > 0 {
			f.write(" (")
			for i, col := range cons.References.Columns {
				if i > 0 {
					f.write(", ")
				}
				f.writeIdent(col)
			}
			f.write(")")
		}
	case ast.ConstraintCheck:
		f.writeKeyword("CHECK")
		f.write(" (")
		f.Format(cons.Check)
		f.write(")")
	}
}

func (f *Formatter) formatAlterTable(s *ast.AlterTableStmt) {
	f.writeKeyword("ALTER TABLE")
	f.write(" ")
	f.Format(s.Table)

	flat := f.renderFlat(func(sf *Formatter) { sf.writeAlterActions(s.Actions, false) })
	if f.fits(flat) {
		f.write(flat)
		return
	}
	f.writeAlterActions(s.Actions, true)
}

func (f *Formatter) writeAlterActions(actions []ast.AlterTableAction, river bool) {
	for i, action := range actions {
		if i > 0 {
			f.write(",")
		}
		if river {
			f.newlineIndent(len(f.opts.Indent))
		} else {
			f.write(" ")
		}
		f.writeAlterAction(action)
	}
}

func (f *Formatter) writeAlterAction(action ast.AlterTableAction) {
	switch a := action.(type) {
	case *ast.AddColumn:
		f.writeKeyword("ADD COLUMN")
		f.write(" ")
		f.formatColumnDef(a.Column)
	case *ast.DropColumn:
		f.writeKeyword("DROP COLUMN")
		if a.IfExists {
			f.write(" ")
			f.writeKeyword("IF EXISTS")
		}
		f.write(" ")
		f.writeIdent(a.Name)
		if a.Cascade {
			f.write(" ")
			f.writeKeyword("CASCADE")
		}
	case *ast.RenameColumn:
		f.writeKeyword("RENAME COLUMN")
		f.write(" ")
		f.writeIdent(a.OldName)
		f.write(" ")
		f.writeKeyword("TO")
		f.write(" ")
		f.writeIdent(a.NewName)
	case *ast.RenameTable:
		f.writeKeyword("RENAME TO")
		f.write(" ")
		f.Format(a.NewName)
	case *ast.ModifyColumn:
		f.writeKeyword("MODIFY COLUMN")
		f.write(" ")
		if a.NewDef != nil {
			f.formatColumnDef(a.NewDef)
		} else {
			f.writeIdent(a.Name)
			if a.SetNotNull {
				f.write(" ")
				f.writeKeyword("SET NOT NULL")
			}
			if a.SetDefault != nil {
				f.write(" ")
				f.writeKeyword("SET DEFAULT")
				f.write(" ")
				f.Format(a.SetDefault)
			}
			if a.DropNotNull {
				f.write(" ")
				f.writeKeyword("DROP NOT NULL")
			}
			if a.DropDefault {
				f.write(" ")
				f.writeKeyword("DROP DEFAULT")
			}
		}
	case *ast.AddConstraint:
		f.writeKeyword("ADD")
		f.write(" ")
		f.formatTableConstraint(a.Constraint)
	case *ast.DropConstraint:
		f.writeKeyword("DROP CONSTRAINT")
		if a.IfExists {
			f.write(" ")
			f.writeKeyword("IF EXISTS")
		}
		f.write(" ")
		f.writeIdent(a.Name)
		if a.Cascade {
			f.write(" ")
			f.writeKeyword("CASCADE")
		}
	}
}

func (f *Formatter) formatDropTable(s *ast.DropTableStmt) {
	f.writeKeyword("DROP TABLE")
	if s.IfExists {
		f.write(" ")
		f.writeKeyword("IF EXISTS")
	}
	f.write(" ")
	for i, t := range s.Tables {
		if i > 0 {
			f.write(", ")
		}
		f.Format(t)
	}
	if s.Cascade {
		f.write(" ")
		f.writeKeyword("CASCADE")
	}
}

func (f *Formatter) formatCreateIndex(s *ast.CreateIndexStmt) {
	f.writeKeyword("CREATE")
	if s.Unique {
		f.write(" ")
		f.writeKeyword("UNIQUE")
	}
	f.write(" ")
	f.writeKeyword("INDEX")
	if s.Concurrent {
		f.write(" ")
		f.writeKeyword("CONCURRENTLY")
	}
	if s.IfNotExists {
		f.write(" ")
		f.writeKeyword("IF NOT EXISTS")
	}
	if s.Name != "" {
		f.write(" ")
		f.writeIdent(s.Name)
	}
	f.write(" ")
	f.writeKeyword("ON")
	f.write(" ")
	f.Format(s.Table)
	if s.Using != "" {
		f.write(" ")
		f.writeKeyword("USING")
		f.write(" ")
		f.write(s.Using)
	}
	f.write(" (")
	for i, col := range s.Columns {
		if i > 0 {
			f.write(", ")
		}
		if col.Expr != nil {
			f.Format(col.Expr)
		} else {
			f.writeIdent(col.Column)
		}
		if col.Desc {
			f.write(" ")
			f.writeKeyword("DESC")
		}
	}
	f.write(")")
	if s.Where != nil {
		f.write(" ")
		f.writeKeyword("WHERE")
		f.write(" ")
		f.Format(s.Where)
	}
}

func (f *Formatter) formatDropIndex(s *ast.DropIndexStmt) {
	f.writeKeyword("DROP INDEX")
	if s.Concurrent {
		f.write(" ")
		f.writeKeyword("CONCURRENTLY")
	}
	if s.IfExists {
		f.write(" ")
		f.writeKeyword("IF EXISTS")
	}
	f.write(" ")
	f.writeIdent(s.Name)
	if s.Table != nil {
		f.write(" ")
		f.writeKeyword("ON")
		f.write(" ")
		f.Format(s.Table)
	}
	if s.Cascade {
		f.write(" ")
		f.writeKeyword("CASCADE")
	}
}

func (f *Formatter) formatTruncate(s *ast.TruncateStmt) {
	f.writeKeyword("TRUNCATE TABLE")
	f.write(" ")
	for i, t := range s.Tables {
		if i > 0 {
			f.write(", ")
		}
		f.Format(t)
	}
	if s.Cascade {
		f.write(" ")
		f.writeKeyword("CASCADE")
	}
}

func (f *Formatter) formatExplain(s *ast.ExplainStmt) {
	f.writeKeyword("EXPLAIN")
	if s.Analyze {
		f.write(" ")
		f.writeKeyword("ANALYZE")
	}
	if s.Verbose {
		f.write(" ")
		f.writeKeyword("VERBOSE")
	}
	if s.Format != "" {
		f.write(" ")
		f.writeKeyword("FORMAT")
		f.write(" ")
		f.write(s.Format)
	}
	f.write(" ")
	f.Format(s.Stmt)
}

package jsast

// Module is the lowered top level of one ES module. Only statements that
// sit directly in the program body are kept; nested blocks never reach it.
type Module struct {
	Source []byte
	Stmts  []Stmt
}

// Stmt is the tagged union of top-level statements.
type Stmt interface{ isStmt() }

func (*SVar) isStmt()           {}
func (*SFunction) isStmt()      {}
func (*SClass) isStmt()         {}
func (*SExport) isStmt()        {}
func (*SExportClause) isStmt()  {}
func (*SExportDefault) isStmt() {}
func (*SOther) isStmt()         {}

// Declarator is one `name = init` pair. Name is empty for destructuring
// patterns, which never produce bindings.
type Declarator struct {
	Name    string
	Init    Expr
	HasInit bool
}

// SVar is a const, let or var declaration.
type SVar struct {
	Kind  string
	Decls []Declarator
}

// SFunction is a named function declaration. Value spans the whole
// declaration so its source text can be captured verbatim.
type SFunction struct {
	Name  string
	Value Expr
}

type SClass struct {
	Name  string
	Value Expr
}

// SExport wraps `export <declaration>`.
type SExport struct {
	Decl Stmt
}

type ExportSpecifier struct {
	Local    string
	Exported string
}

// SExportClause is `export { a, b as c }`, optionally re-exporting from
// another module when From is set.
type SExportClause struct {
	Specifiers []ExportSpecifier
	From       string
	HasFrom    bool
}

type SExportDefault struct{}

// SOther is any statement the collector ignores (imports, expression
// statements, control flow...).
type SOther struct {
	Kind string
}

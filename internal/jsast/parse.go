package jsast

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// SyntaxError describes the first error tree-sitter recovered from.
type SyntaxError struct {
	Line    int
	Column  int
	Near    string
	Missing bool
}

func (e *SyntaxError) Error() string {
	if e.Missing {
		return fmt.Sprintf("syntax error at %d:%d: missing %s", e.Line, e.Column, e.Near)
	}
	return fmt.Sprintf("syntax error at %d:%d near %q", e.Line, e.Column, e.Near)
}

// Parse parses src as an ES module and lowers its top level. Each call
// uses its own tree-sitter parser, so Parse is safe for concurrent use.
func Parse(ctx context.Context, src []byte) (*Module, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(root, src)
	}

	l := &lowerer{src: src}
	mod := &Module{Source: src}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		mod.Stmts = append(mod.Stmts, l.statement(child))
	}
	return mod, nil
}

func syntaxError(root *sitter.Node, src []byte) error {
	n := firstErrorNode(root)
	p := n.StartPoint()
	out := &SyntaxError{
		Line:    int(p.Row) + 1,
		Column:  int(p.Column) + 1,
		Missing: n.IsMissing(),
	}
	if out.Missing {
		out.Near = n.Type()
		return out
	}
	near := n.Content(src)
	if i := strings.IndexAny(near, "\r\n"); i >= 0 {
		near = near[:i]
	}
	if len(near) > 40 {
		near = near[:40]
	}
	out.Near = near
	return out
}

func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.IsMissing() || c.Type() == "ERROR" {
			return c
		}
		if c.HasError() {
			return firstErrorNode(c)
		}
	}
	return n
}

type lowerer struct {
	src []byte
}

func (l *lowerer) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(l.src)
}

func (l *lowerer) span(n *sitter.Node) Span {
	return Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

func firstNamed(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() != "comment" {
			return c
		}
	}
	return nil
}

func hasChildOfType(n *sitter.Node, typ string) bool {
	return childOfType(n, typ) != nil
}

func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.Type() == typ {
			return c
		}
	}
	return nil
}

func (l *lowerer) statement(n *sitter.Node) Stmt {
	switch n.Type() {
	case "lexical_declaration", "variable_declaration":
		return l.variables(n)

	case "function_declaration", "generator_function_declaration":
		name := l.text(n.ChildByFieldName("name"))
		return &SFunction{
			Name:  name,
			Value: Expr{Data: &EFunction{Name: name, Declaration: true}, Span: l.span(n)},
		}

	case "class_declaration":
		name := l.text(n.ChildByFieldName("name"))
		return &SClass{
			Name:  name,
			Value: Expr{Data: &EClass{Name: name, Declaration: true}, Span: l.span(n)},
		}

	case "export_statement":
		return l.export(n)
	}
	return &SOther{Kind: n.Type()}
}

func (l *lowerer) variables(n *sitter.Node) Stmt {
	out := &SVar{Kind: "var"}
	if n.ChildCount() > 0 {
		out.Kind = n.Child(0).Type()
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() != "variable_declarator" {
			continue
		}
		var d Declarator
		if name := c.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
			d.Name = l.text(name)
		}
		if value := c.ChildByFieldName("value"); value != nil {
			d.Init = l.expr(value)
			d.HasInit = true
		}
		out.Decls = append(out.Decls, d)
	}
	return out
}

func (l *lowerer) export(n *sitter.Node) Stmt {
	if hasChildOfType(n, "default") {
		return &SExportDefault{}
	}

	if decl := n.ChildByFieldName("declaration"); decl != nil {
		return &SExport{Decl: l.statement(decl)}
	}

	clause := childOfType(n, "export_clause")
	if clause == nil {
		// export * from "..."
		return &SOther{Kind: "export_all"}
	}

	out := &SExportClause{}
	if source := n.ChildByFieldName("source"); source != nil {
		out.From, _ = decodeStringLiteral(l.text(source))
		out.HasFrom = true
	}
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		spec := clause.NamedChild(i)
		if spec.Type() != "export_specifier" {
			continue
		}
		local := l.exportName(spec.ChildByFieldName("name"))
		exported := local
		if alias := spec.ChildByFieldName("alias"); alias != nil {
			exported = l.exportName(alias)
		}
		if local == "" || exported == "" {
			continue
		}
		out.Specifiers = append(out.Specifiers, ExportSpecifier{Local: local, Exported: exported})
	}
	return out
}

func (l *lowerer) exportName(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	if n.Type() == "string" {
		s, _ := decodeStringLiteral(l.text(n))
		return s
	}
	return l.text(n)
}

func (l *lowerer) unsupported(n *sitter.Node) Expr {
	return Expr{Data: &EUnsupported{Kind: n.Type()}, Span: l.span(n)}
}

func (l *lowerer) expr(n *sitter.Node) Expr {
	if n == nil {
		return Expr{Data: &EUnsupported{Kind: "missing"}}
	}
	span := l.span(n)
	wrap := func(e E) Expr { return Expr{Data: e, Span: span} }

	switch n.Type() {
	case "parenthesized_expression":
		if inner := firstNamed(n); inner != nil {
			return l.expr(inner)
		}

	case "string":
		if s, ok := decodeStringLiteral(l.text(n)); ok {
			return wrap(&EString{Value: s})
		}

	case "number":
		if f, ok := parseNumber(l.text(n)); ok {
			return wrap(&ENumber{Value: f})
		}

	case "true":
		return wrap(&EBoolean{Value: true})

	case "false":
		return wrap(&EBoolean{Value: false})

	case "null":
		return wrap(&ENull{})

	case "undefined":
		return wrap(&EUndefined{})

	case "identifier":
		name := l.text(n)
		if name == "undefined" {
			return wrap(&EUndefined{})
		}
		return wrap(&EIdentifier{Name: name})

	case "template_string":
		return l.template(n)

	case "array":
		return l.array(n)

	case "object":
		return l.object(n)

	case "unary_expression":
		return wrap(&EUnary{
			Op:    l.text(n.ChildByFieldName("operator")),
			Value: l.expr(n.ChildByFieldName("argument")),
		})

	case "binary_expression":
		op := l.text(n.ChildByFieldName("operator"))
		left := l.expr(n.ChildByFieldName("left"))
		right := l.expr(n.ChildByFieldName("right"))
		switch op {
		case "&&", "||", "??":
			return wrap(&ELogical{Op: op, Left: left, Right: right})
		}
		return wrap(&EBinary{Op: op, Left: left, Right: right})

	case "ternary_expression":
		return wrap(&EConditional{
			Test: l.expr(n.ChildByFieldName("condition")),
			Yes:  l.expr(n.ChildByFieldName("consequence")),
			No:   l.expr(n.ChildByFieldName("alternative")),
		})

	case "member_expression":
		prop := n.ChildByFieldName("property")
		if prop == nil || prop.Type() == "private_property_identifier" {
			break
		}
		return wrap(&EDot{
			Target:   l.expr(n.ChildByFieldName("object")),
			Name:     l.text(prop),
			Optional: n.ChildByFieldName("optional_chain") != nil,
		})

	case "subscript_expression":
		return wrap(&EIndex{
			Target:   l.expr(n.ChildByFieldName("object")),
			Index:    l.expr(n.ChildByFieldName("index")),
			Optional: n.ChildByFieldName("optional_chain") != nil,
		})

	case "call_expression":
		args := n.ChildByFieldName("arguments")
		if args == nil || args.Type() != "arguments" || n.ChildByFieldName("optional_chain") != nil {
			// tagged templates and optional calls
			break
		}
		call := &ECall{Target: l.expr(n.ChildByFieldName("function"))}
		for i := 0; i < int(args.NamedChildCount()); i++ {
			a := args.NamedChild(i)
			if a.Type() == "comment" {
				continue
			}
			call.Args = append(call.Args, l.element(a))
		}
		return wrap(call)

	case "function", "function_expression", "generator_function":
		return wrap(&EFunction{Name: l.text(n.ChildByFieldName("name"))})

	case "arrow_function":
		return wrap(&EArrow{})

	case "class":
		return wrap(&EClass{Name: l.text(n.ChildByFieldName("name"))})
	}

	return l.unsupported(n)
}

// element lowers an array item or call argument, where spread is allowed.
func (l *lowerer) element(n *sitter.Node) Expr {
	if n.Type() == "spread_element" {
		return Expr{Data: &ESpread{Value: l.expr(firstNamed(n))}, Span: l.span(n)}
	}
	return l.expr(n)
}

func (l *lowerer) template(n *sitter.Node) Expr {
	start, end := int(n.StartByte())+1, int(n.EndByte())-1
	if end < start {
		return l.unsupported(n)
	}

	t := &ETemplate{}
	pos := start
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() != "template_substitution" {
			continue
		}
		quasi, ok := cookTemplate(string(l.src[pos:c.StartByte()]))
		inner := firstNamed(c)
		if !ok || inner == nil {
			return l.unsupported(n)
		}
		t.Quasis = append(t.Quasis, quasi)
		t.Exprs = append(t.Exprs, l.expr(inner))
		pos = int(c.EndByte())
	}
	quasi, ok := cookTemplate(string(l.src[pos:end]))
	if !ok {
		return l.unsupported(n)
	}
	t.Quasis = append(t.Quasis, quasi)
	return Expr{Data: t, Span: l.span(n)}
}

func (l *lowerer) array(n *sitter.Node) Expr {
	arr := &EArray{}
	expectItem := true
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "[", "]", "comment":
			continue
		case ",":
			if expectItem {
				arr.Items = append(arr.Items, Expr{Data: &EMissing{}, Span: l.span(c)})
			}
			expectItem = true
		default:
			arr.Items = append(arr.Items, l.element(c))
			expectItem = false
		}
	}
	return Expr{Data: arr, Span: l.span(n)}
}

func (l *lowerer) object(n *sitter.Node) Expr {
	obj := &EObject{}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "comment":
			continue

		case "pair":
			prop, ok := l.propertyKey(c.ChildByFieldName("key"))
			if !ok {
				return l.unsupported(n)
			}
			prop.Kind = PropertyInit
			prop.Value = l.expr(c.ChildByFieldName("value"))
			obj.Properties = append(obj.Properties, prop)

		case "shorthand_property_identifier":
			name := l.text(c)
			obj.Properties = append(obj.Properties, Property{
				Kind:  PropertyInit,
				Key:   name,
				Value: Expr{Data: &EIdentifier{Name: name}, Span: l.span(c)},
			})

		case "spread_element":
			obj.Properties = append(obj.Properties, Property{
				Kind:  PropertySpread,
				Value: l.expr(firstNamed(c)),
			})

		case "method_definition":
			kind := PropertyMethod
			if hasChildOfType(c, "get") {
				kind = PropertyGetter
			} else if hasChildOfType(c, "set") {
				kind = PropertySetter
			}
			obj.Properties = append(obj.Properties, Property{Kind: kind})

		default:
			return l.unsupported(n)
		}
	}
	return Expr{Data: obj, Span: l.span(n)}
}

// propertyKey fills in the key half of a property. Numeric keys are
// routed through KeyExpr so the evaluator applies JS number formatting.
func (l *lowerer) propertyKey(key *sitter.Node) (Property, bool) {
	if key == nil {
		return Property{}, false
	}
	switch key.Type() {
	case "property_identifier", "identifier":
		return Property{Key: l.text(key)}, true
	case "string":
		s, ok := decodeStringLiteral(l.text(key))
		return Property{Key: s}, ok
	case "number":
		return Property{Computed: true, KeyExpr: l.expr(key)}, true
	case "computed_property_name":
		inner := firstNamed(key)
		if inner == nil {
			return Property{}, false
		}
		return Property{Computed: true, KeyExpr: l.expr(inner)}, true
	}
	return Property{}, false
}

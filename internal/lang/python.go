package lang

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

var pythonPrint = regexp.MustCompile(`\bprint\s*\(`)

// Python implements Language with the tree-sitter Python grammar.
// Complexity follows the usual McCabe counting: one per block plus one per
// branch, loop, handler, boolean operator and comprehension clause.
type Python struct{}

// NewPython returns the Python language.
func NewPython() *Python {
	return &Python{}
}

// Name returns "python".
func (p *Python) Name() string { return "python" }

// Extensions returns the Python source extension.
func (p *Python) Extensions() []string { return []string{".py"} }

// PrintCall matches print(...) calls.
func (p *Python) PrintCall() *regexp.Regexp { return pythonPrint }

// Blocks returns functions, classes and methods with their complexity:
// every function first, then each class followed by its methods.
// A function nested inside another function is not a block and does not
// add to the enclosing function's score.
func (p *Python) Blocks(ctx context.Context, src []byte) ([]Block, error) {
	tree, root, err := p.parse(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var funcs, classes []Block
	p.collectBlocks(root, src, &funcs, &classes)
	return append(funcs, classes...), nil
}

// MissingDocstrings counts function and class definitions at any depth
// whose body does not open with a non-empty string literal.
func (p *Python) MissingDocstrings(ctx context.Context, src []byte) (int, error) {
	tree, root, err := p.parse(ctx, src)
	if err != nil {
		return 0, err
	}
	defer tree.Close()

	missing := 0
	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "function_definition", "class_definition":
			if !hasDocstring(n.ChildByFieldName("body"), src) {
				missing++
			}
		}
	})
	return missing, nil
}

func (p *Python) parse(ctx context.Context, src []byte) (*sitter.Tree, *sitter.Node, error) {
	// Parsers are not safe for concurrent use, so each call gets its own.
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	root := tree.RootNode()
	if root == nil || root.HasError() || !strictModule(root) {
		tree.Close()
		return nil, nil, ErrUnparseable
	}
	return tree, root, nil
}

// strictModule applies the rules the grammar is lenient about: top-level
// statements start in column zero, and Python 2 print/exec statements are
// rejected.
func strictModule(root *sitter.Node) bool {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		if stmt.Type() == "comment" {
			continue
		}
		if stmt.StartPoint().Column > 0 {
			return false
		}
	}
	ok := true
	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "print_statement", "exec_statement":
			ok = false
		}
	})
	return ok
}

func (p *Python) collectBlocks(n *sitter.Node, src []byte, funcs, classes *[]Block) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "function_definition":
			*funcs = append(*funcs, p.functionBlock(child, src, KindFunction, ""))
		case "class_definition":
			p.classBlocks(child, src, classes)
		default:
			p.collectBlocks(child, src, funcs, classes)
		}
	}
}

func (p *Python) functionBlock(n *sitter.Node, src []byte, kind, owner string) Block {
	name := nodeName(n, src)
	if owner != "" {
		name = owner + "." + name
	}
	return Block{
		Name:       name,
		Kind:       kind,
		Line:       int(n.StartPoint().Row) + 1,
		Complexity: 1 + decisions(n.ChildByFieldName("body")),
	}
}

// classBlocks appends the class block followed by its methods. A class
// scores one plus its own body plus all method scores, divided by the
// method count and plus one when there is more than one method.
func (p *Python) classBlocks(n *sitter.Node, src []byte, out *[]Block) {
	name := nodeName(n, src)
	cls := Block{Name: name, Kind: KindClass, Line: int(n.StartPoint().Row) + 1}
	pos := len(*out)
	*out = append(*out, cls)

	var methods []Block
	body := n.ChildByFieldName("body")
	total := 1 + decisions(body)
	walkMembers(body, func(member *sitter.Node) {
		switch member.Type() {
		case "function_definition":
			m := p.functionBlock(member, src, KindMethod, name)
			methods = append(methods, m)
			total += m.Complexity
		case "class_definition":
			p.classBlocks(member, src, out)
		}
	})

	cls.Complexity = total
	if len(methods) > 1 {
		cls.Complexity = total/len(methods) + 1
	}
	(*out)[pos] = cls
	*out = append(*out, methods...)
}

// walkMembers visits definitions reachable from a class body without
// entering another definition.
func walkMembers(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "function_definition", "class_definition":
			visit(child)
		default:
			walkMembers(child, visit)
		}
	}
}

// decisions counts decision points under n, stopping at nested
// definitions.
func decisions(n *sitter.Node) int {
	if n == nil {
		return 0
	}
	total := 0
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "function_definition", "class_definition":
			continue
		}
		total += weight(child, n.Type()) + decisions(child)
	}
	return total
}

func weight(n *sitter.Node, parent string) int {
	switch n.Type() {
	case "if_statement", "elif_clause",
		"for_statement", "while_statement",
		"except_clause", "except_group_clause",
		"with_statement", "assert_statement",
		"boolean_operator", "conditional_expression",
		"for_in_clause", "if_clause", "case_clause":
		return 1
	case "else_clause":
		switch parent {
		case "for_statement", "while_statement", "try_statement":
			return 1
		}
	}
	return 0
}

func nodeName(n *sitter.Node, src []byte) string {
	if id := n.ChildByFieldName("name"); id != nil {
		return id.Content(src)
	}
	return "<anonymous>"
}

func hasDocstring(body *sitter.Node, src []byte) bool {
	if body == nil {
		return false
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		if stmt.Type() == "comment" {
			continue
		}
		if stmt.Type() != "expression_statement" || stmt.NamedChildCount() == 0 {
			return false
		}
		lit := stmt.NamedChild(0)
		switch lit.Type() {
		case "string", "concatenated_string":
			return docText(lit, src) != ""
		}
		return false
	}
	return false
}

// docText returns the trimmed text of a plain string literal, or "" for
// byte strings, f-strings and empty literals.
func docText(lit *sitter.Node, src []byte) string {
	var found bool
	walk(lit, func(n *sitter.Node) {
		if n.Type() == "interpolation" {
			found = true
		}
	})
	if found {
		return ""
	}

	raw := lit.Content(src)
	prefix := strings.ToLower(raw[:len(raw)-len(strings.TrimLeft(raw, "rRuUbBfF"))])
	if strings.ContainsAny(prefix, "bf") {
		return ""
	}
	raw = raw[len(prefix):]
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(raw, q) && strings.HasSuffix(raw, q) && len(raw) >= 2*len(q) {
			raw = raw[len(q) : len(raw)-len(q)]
			break
		}
	}
	return strings.TrimSpace(raw)
}

func walk(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		walk(n.NamedChild(i), visit)
	}
}

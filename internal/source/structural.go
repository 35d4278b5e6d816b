//go:build cgo

package source

import (
	"context"
	"fmt"
	"strings"

	"aidetect/internal/profile"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// StructuralAvailable reports whether the tree-sitter pass is compiled in.
// Returns true when CGO is enabled.
func StructuralAvailable() bool {
	return true
}

// parseStructural runs the tree-sitter pass and extracts the lightweight
// structural view. A syntax error anywhere in the file is treated as a parse
// failure so the caller falls back to the lexical view.
func parseStructural(ctx context.Context, text string, p *profile.Profile) (*Structure, error) {
	tsLang, err := grammarFor(p.ID)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	parser.SetLanguage(tsLang)
	tree, err := parser.ParseCtx(ctx, nil, []byte(text))
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("source contains syntax errors")
	}

	src := []byte(text)
	st := &Structure{}

	commentLines := collectCommentLines(root, src)

	for _, fn := range findNodes(root, functionNodeTypes(p.ID)) {
		f := Function{
			Name:      functionName(fn, src, p.ID),
			StartLine: int(fn.StartPoint().Row) + 1,
			EndLine:   int(fn.EndPoint().Row) + 1,
		}
		f.Docstring, f.HasDocstring = docstringFor(fn, src, p.ID, commentLines)
		st.Functions = append(st.Functions, f)

		if f.Name != "" && f.Name != "<anonymous>" {
			st.Identifiers = append(st.Identifiers, Identifier{
				Name: f.Name,
				Role: RoleFunction,
				Line: f.StartLine,
			})
		}

		if params := fn.ChildByFieldName("parameters"); params != nil {
			for _, id := range identifierNodes(params) {
				st.Identifiers = append(st.Identifiers, Identifier{
					Name: nodeText(id, src),
					Role: RoleParameter,
					Line: int(id.StartPoint().Row) + 1,
				})
			}
		}
	}

	for _, decl := range findNodes(root, variableDeclTypes(p.ID)) {
		target := declarationTarget(decl, p.ID)
		if target == nil {
			continue
		}
		for _, id := range identifierNodes(target) {
			st.Identifiers = append(st.Identifiers, Identifier{
				Name: nodeText(id, src),
				Role: RoleVariable,
				Line: int(id.StartPoint().Row) + 1,
			})
		}
	}

	decisionTypes := decisionNodeTypes(p.ID)
	for _, dn := range findNodes(root, decisionTypes) {
		if dn.Type() == "binary_expression" || dn.Type() == "boolean_operator" {
			if isBooleanOperator(dn, src, p.ID) {
				st.BoolOps++
			}
		} else {
			st.Decisions++
		}
	}

	st.MaxNesting = maxNesting(root, nestingNodeTypes(p.ID), 0)

	return st, nil
}

func grammarFor(id string) (*sitter.Language, error) {
	switch id {
	case "go":
		return golang.GetLanguage(), nil
	case "javascript":
		return javascript.GetLanguage(), nil
	case "typescript":
		return typescript.GetLanguage(), nil
	case "tsx":
		return tsx.GetLanguage(), nil
	case "python":
		return python.GetLanguage(), nil
	case "rust":
		return rust.GetLanguage(), nil
	case "java":
		return java.GetLanguage(), nil
	case "kotlin":
		return kotlin.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("no grammar for language: %s", id)
	}
}

func functionNodeTypes(id string) []string {
	switch id {
	case "go":
		return []string{"function_declaration", "method_declaration", "func_literal"}
	case "javascript", "typescript", "tsx":
		return []string{"function_declaration", "function_expression", "arrow_function", "method_definition", "generator_function_declaration"}
	case "python":
		return []string{"function_definition"}
	case "rust":
		return []string{"function_item", "closure_expression"}
	case "java":
		return []string{"method_declaration", "constructor_declaration", "lambda_expression"}
	case "kotlin":
		return []string{"function_declaration", "anonymous_function"}
	default:
		return nil
	}
}

func decisionNodeTypes(id string) []string {
	switch id {
	case "go":
		return []string{
			"if_statement", "for_statement", "expression_case", "type_case",
			"communication_case", "binary_expression",
		}
	case "javascript", "typescript", "tsx":
		return []string{
			"if_statement", "for_statement", "for_in_statement",
			"while_statement", "do_statement", "switch_case", "catch_clause",
			"ternary_expression", "binary_expression",
		}
	case "python":
		return []string{
			"if_statement", "elif_clause", "for_statement", "while_statement",
			"except_clause", "boolean_operator", "conditional_expression",
			"list_comprehension", "dictionary_comprehension",
			"set_comprehension", "generator_expression",
		}
	case "rust":
		return []string{
			"if_expression", "match_arm", "while_expression",
			"loop_expression", "for_expression", "binary_expression",
		}
	case "java":
		return []string{
			"if_statement", "for_statement", "enhanced_for_statement",
			"while_statement", "do_statement", "switch_block_statement_group",
			"catch_clause", "ternary_expression", "binary_expression",
		}
	case "kotlin":
		return []string{
			"if_expression", "when_entry", "for_statement", "while_statement",
			"do_while_statement", "catch_block", "binary_expression",
		}
	default:
		return nil
	}
}

func nestingNodeTypes(id string) []string {
	switch id {
	case "go":
		return []string{
			"if_statement", "for_statement", "select_statement",
			"type_switch_statement", "expression_switch_statement", "func_literal",
		}
	case "javascript", "typescript", "tsx":
		return []string{
			"if_statement", "for_statement", "for_in_statement",
			"while_statement", "do_statement", "switch_statement",
			"try_statement", "arrow_function", "function_expression",
		}
	case "python":
		return []string{
			"if_statement", "for_statement", "while_statement",
			"try_statement", "with_statement",
		}
	case "rust":
		return []string{
			"if_expression", "match_expression", "while_expression",
			"loop_expression", "for_expression", "closure_expression",
		}
	case "java":
		return []string{
			"if_statement", "for_statement", "enhanced_for_statement",
			"while_statement", "do_statement", "switch_expression",
			"try_statement", "lambda_expression",
		}
	case "kotlin":
		return []string{
			"if_expression", "when_expression", "for_statement",
			"while_statement", "do_while_statement", "try_expression",
		}
	default:
		return nil
	}
}

func variableDeclTypes(id string) []string {
	switch id {
	case "go":
		return []string{"short_var_declaration", "var_spec"}
	case "javascript", "typescript", "tsx":
		return []string{"variable_declarator"}
	case "python":
		return []string{"assignment"}
	case "rust":
		return []string{"let_declaration"}
	case "java":
		return []string{"variable_declarator"}
	case "kotlin":
		return []string{"variable_declaration"}
	default:
		return nil
	}
}

// declarationTarget picks the child of a declaration node that holds the
// declared name(s).
func declarationTarget(node *sitter.Node, id string) *sitter.Node {
	switch id {
	case "go":
		if left := node.ChildByFieldName("left"); left != nil {
			return left
		}
		return node.ChildByFieldName("name")
	case "python":
		return node.ChildByFieldName("left")
	case "javascript", "typescript", "tsx", "java":
		return node.ChildByFieldName("name")
	case "rust":
		return node.ChildByFieldName("pattern")
	case "kotlin":
		return node
	default:
		return nil
	}
}

func functionName(node *sitter.Node, src []byte, id string) string {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		// Kotlin names functions with a bare simple_identifier child; Go
		// and others sometimes expose the name only as an identifier child.
		for i := uint32(0); i < node.ChildCount(); i++ {
			child := node.Child(int(i))
			if child == nil {
				continue
			}
			if child.Type() == "identifier" || child.Type() == "simple_identifier" {
				nameNode = child
				break
			}
		}
	}
	if nameNode != nil {
		return nodeText(nameNode, src)
	}

	switch node.Type() {
	case "arrow_function", "func_literal", "lambda_expression",
		"closure_expression", "anonymous_function", "function_expression":
		return "<anonymous>"
	}
	return "<unknown>"
}

// docstringFor finds a function's documentation. Python keeps it as the
// first statement of the body; the other wired languages use a comment
// ending on the line directly above the declaration.
func docstringFor(fn *sitter.Node, src []byte, id string, commentLines map[int]string) (string, bool) {
	if id == "python" {
		body := fn.ChildByFieldName("body")
		if body == nil || body.NamedChildCount() == 0 {
			return "", false
		}
		first := body.NamedChild(0)
		if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
			return "", false
		}
		if s := first.NamedChild(0); s.Type() == "string" {
			return strings.Trim(nodeText(s, src), "\"' \n\t"), true
		}
		return "", false
	}

	if text, ok := commentLines[int(fn.StartPoint().Row)]; ok {
		return text, true
	}
	return "", false
}

// collectCommentLines maps the line after each comment to its text, so a
// declaration can look up the comment that ends directly above it.
func collectCommentLines(root *sitter.Node, src []byte) map[int]string {
	out := make(map[int]string)
	for _, c := range findNodes(root, []string{"comment", "line_comment", "block_comment"}) {
		endRow := int(c.EndPoint().Row)
		text := strings.TrimSpace(strings.TrimLeft(nodeText(c, src), "/*! "))
		if prev, ok := out[endRow+1]; ok {
			out[endRow+1] = prev + " " + text
		} else {
			out[endRow+1] = text
		}
	}
	return out
}

func identifierNodes(node *sitter.Node) []*sitter.Node {
	return findNodes(node, []string{"identifier", "simple_identifier", "pattern_list"})
}

func isBooleanOperator(node *sitter.Node, src []byte, id string) bool {
	for i := uint32(0); i < node.ChildCount(); i++ {
		child := node.Child(int(i))
		if child == nil {
			continue
		}
		if id == "python" {
			if child.Type() == "and" || child.Type() == "or" {
				return true
			}
			continue
		}
		content := nodeText(child, src)
		if content == "&&" || content == "||" {
			return true
		}
	}
	return false
}

func maxNesting(node *sitter.Node, nestingTypes []string, depth int) int {
	max := depth
	childDepth := depth
	if containsType(nestingTypes, node.Type()) {
		childDepth++
		if childDepth > max {
			max = childDepth
		}
	}
	for i := uint32(0); i < node.ChildCount(); i++ {
		child := node.Child(int(i))
		if child == nil {
			continue
		}
		if d := maxNesting(child, nestingTypes, childDepth); d > max {
			max = d
		}
	}
	return max
}

func findNodes(root *sitter.Node, types []string) []*sitter.Node {
	var result []*sitter.Node
	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if containsType(types, node.Type()) {
			result = append(result, node)
		}
		for i := uint32(0); i < node.ChildCount(); i++ {
			walk(node.Child(int(i)))
		}
	}
	walk(root)
	return result
}

func containsType(types []string, t string) bool {
	for _, s := range types {
		if s == t {
			return true
		}
	}
	return false
}

func nodeText(node *sitter.Node, src []byte) string {
	return string(src[node.StartByte():node.EndByte()])
}

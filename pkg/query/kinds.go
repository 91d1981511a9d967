package query

import "github.com/Hazem-khriji/Code-smell-detector/pkg/parser"

// DefKind selects which definitional nodes a query targets.
type DefKind int

const (
	KindFunction DefKind = iota
	KindClass
)

// FunctionKinds returns the AST node types for function definitions.
func FunctionKinds(lang parser.Language) []string {
	switch lang {
	case parser.LangPython:
		return []string{"function_definition"}
	case parser.LangGo:
		return []string{"function_declaration", "method_declaration"}
	case parser.LangJavaScript, parser.LangTypeScript, parser.LangTSX:
		return []string{"function_declaration", "function_expression", "arrow_function", "method_definition"}
	case parser.LangJava:
		return []string{"method_declaration", "constructor_declaration"}
	case parser.LangRuby:
		return []string{"method", "singleton_method"}
	default:
		return nil
	}
}

// ClassKinds returns the AST node types for class definitions.
func ClassKinds(lang parser.Language) []string {
	switch lang {
	case parser.LangPython:
		return []string{"class_definition"}
	case parser.LangGo:
		return []string{"type_declaration"}
	case parser.LangJavaScript, parser.LangTypeScript, parser.LangTSX:
		return []string{"class_declaration", "class"}
	case parser.LangJava:
		return []string{"class_declaration", "interface_declaration"}
	case parser.LangRuby:
		return []string{"class", "module"}
	default:
		return nil
	}
}

// identifierKinds returns node types that carry a definition's name.
func identifierKinds(lang parser.Language) []string {
	switch lang {
	case parser.LangGo:
		return []string{"identifier", "field_identifier", "type_identifier"}
	case parser.LangJavaScript, parser.LangTypeScript, parser.LangTSX:
		return []string{"identifier", "property_identifier", "type_identifier"}
	case parser.LangRuby:
		return []string{"identifier", "constant"}
	default:
		return []string{"identifier"}
	}
}

// classBodyKinds returns node types for a class's body block.
func classBodyKinds(lang parser.Language) []string {
	switch lang {
	case parser.LangPython:
		return []string{"block"}
	case parser.LangJavaScript, parser.LangTypeScript, parser.LangTSX, parser.LangJava:
		return []string{"class_body"}
	case parser.LangRuby:
		return []string{"body_statement"}
	default:
		return []string{"block", "body"}
	}
}

// ParameterListKinds returns node types for a definition's parameter list.
func ParameterListKinds(lang parser.Language) []string {
	switch lang {
	case parser.LangPython:
		return []string{"parameters"}
	case parser.LangGo:
		return []string{"parameter_list"}
	case parser.LangJavaScript, parser.LangTypeScript, parser.LangTSX:
		return []string{"formal_parameters"}
	case parser.LangJava:
		return []string{"formal_parameters"}
	case parser.LangRuby:
		return []string{"method_parameters"}
	default:
		return nil
	}
}

// ParameterKinds returns the node types counted as ordinary parameters.
// Variadic and splat markers carry other kinds, so they are excluded
// by construction.
func ParameterKinds(lang parser.Language) []string {
	switch lang {
	case parser.LangPython:
		return []string{"identifier", "typed_parameter", "default_parameter"}
	case parser.LangGo:
		return []string{"parameter_declaration"}
	case parser.LangJavaScript:
		return []string{"identifier", "assignment_pattern"}
	case parser.LangTypeScript, parser.LangTSX:
		return []string{"identifier", "assignment_pattern", "required_parameter", "optional_parameter"}
	case parser.LangJava:
		return []string{"formal_parameter"}
	case parser.LangRuby:
		return []string{"identifier", "optional_parameter", "keyword_parameter"}
	default:
		return nil
	}
}

// NestingKinds returns control-flow node types that deepen nesting:
// conditionals, loops, context managers, and exception handling.
func NestingKinds(lang parser.Language) []string {
	switch lang {
	case parser.LangPython:
		return []string{"if_statement", "for_statement", "while_statement", "with_statement", "try_statement"}
	case parser.LangGo:
		return []string{"if_statement", "for_statement", "expression_switch_statement", "type_switch_statement", "select_statement"}
	case parser.LangJavaScript, parser.LangTypeScript, parser.LangTSX:
		return []string{"if_statement", "for_statement", "for_in_statement", "while_statement", "do_statement", "with_statement", "try_statement", "switch_statement"}
	case parser.LangJava:
		return []string{"if_statement", "for_statement", "enhanced_for_statement", "while_statement", "do_statement", "try_statement", "try_with_resources_statement", "switch_expression"}
	case parser.LangRuby:
		return []string{"if", "unless", "while", "until", "for", "case", "begin"}
	default:
		return nil
	}
}

// makeSet converts a slice to a map for O(1) lookups.
func makeSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

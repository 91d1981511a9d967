// Package query provides generic tree-walking primitives over parsed
// syntax trees: definition discovery, name extraction, and identifier
// decomposition.
package query

import (
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/Hazem-khriji/Code-smell-detector/pkg/parser"
)

// UnknownName is returned when a definition carries no identifier child.
const UnknownName = "unknown"

// Definitions returns every definition node of the requested kind anywhere
// in the subtree, in pre-order (source appearance) order. Every node is
// visited exactly once; nested definitions are included.
func Definitions(root *sitter.Node, source []byte, lang parser.Language, kind DefKind) []*sitter.Node {
	var kinds []string
	switch kind {
	case KindClass:
		kinds = ClassKinds(lang)
	default:
		kinds = FunctionKinds(lang)
	}

	set := makeSet(kinds)
	var defs []*sitter.Node
	parser.Walk(root, source, func(node *sitter.Node, _ []byte) bool {
		if set[node.Type()] {
			defs = append(defs, node)
		}
		return true
	})
	return defs
}

// Name extracts a definition's name from its first identifier-kind child.
// It is a best-effort lookup: definitions without an identifier child
// (lambdas, anonymous functions) yield UnknownName, never an error.
func Name(def *sitter.Node, source []byte, lang parser.Language) string {
	if def == nil {
		return UnknownName
	}

	idKinds := makeSet(identifierKinds(lang))
	for i := range int(def.ChildCount()) {
		child := def.Child(i)
		if idKinds[child.Type()] {
			if text := parser.GetNodeText(child, source); text != "" {
				return text
			}
		}
	}
	return UnknownName
}

// Methods returns the function definitions that are direct statements in a
// class's body block, in source order. Helpers nested inside a method are
// not methods of the class.
func Methods(class *sitter.Node, source []byte, lang parser.Language) []*sitter.Node {
	if class == nil {
		return nil
	}

	bodyKinds := makeSet(classBodyKinds(lang))
	funcKinds := makeSet(FunctionKinds(lang))

	var methods []*sitter.Node
	for i := range int(class.ChildCount()) {
		child := class.Child(i)
		if !bodyKinds[child.Type()] {
			continue
		}
		for j := range int(child.ChildCount()) {
			item := child.Child(j)
			if funcKinds[item.Type()] {
				methods = append(methods, item)
			}
		}
	}
	return methods
}

// SplitIdentifier decomposes an identifier into lowercase words. Underscores
// separate words, and an uppercase letter after a lowercase one starts a new
// word, so snake_case and camelCase spellings of the same name decompose
// identically: both "get_user_name" and "getUserName" yield
// ["get", "user", "name"].
func SplitIdentifier(name string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	var prev rune
	for _, r := range name {
		switch {
		case r == '_':
			flush()
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
		prev = r
	}
	flush()

	return words
}

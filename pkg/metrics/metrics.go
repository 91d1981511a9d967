// Package metrics computes structural metrics over definition nodes:
// line span, parameter count, and maximum control-nesting depth.
// All calculators are pure functions over an already-parsed tree.
package metrics

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/Hazem-khriji/Code-smell-detector/pkg/parser"
	"github.com/Hazem-khriji/Code-smell-detector/pkg/query"
)

// NestingOptions controls how MaxNestingDepth treats nested scopes.
type NestingOptions struct {
	// ResetNestedDefinitions excludes the bodies of function and class
	// definitions nested inside the measured definition: their control
	// structures no longer count toward the enclosing function's depth.
	// Off by default, matching the behavior where depth accumulates
	// across any nested scope.
	ResetNestedDefinitions bool
}

// LineSpan returns the inclusive number of source lines a node covers.
// Purely positional: blank lines and comments inside the span count.
// Always >= 1.
func LineSpan(node *sitter.Node) int {
	if node == nil {
		return 0
	}
	return int(node.EndPoint().Row) - int(node.StartPoint().Row) + 1
}

// ParameterCount counts the ordinary parameters of a definition node.
// It scans the node's direct children for the parameter-list child and
// counts only the parameter kinds for the language; variadic and receiver
// markers carry other kinds and are excluded. A definition without a
// parameter list yields 0, never an error.
func ParameterCount(def *sitter.Node, lang parser.Language) int {
	if def == nil {
		return 0
	}

	listKinds := makeSet(query.ParameterListKinds(lang))
	paramKinds := makeSet(query.ParameterKinds(lang))

	for i := range int(def.ChildCount()) {
		child := def.Child(i)
		if !listKinds[child.Type()] {
			continue
		}
		count := 0
		for j := range int(child.ChildCount()) {
			if paramKinds[child.Child(j).Type()] {
				count++
			}
		}
		return count
	}
	return 0
}

// MaxNestingDepth returns the maximum control-structure nesting depth
// reached anywhere in the subtree, starting at depth 0 at the definition
// node itself. Control kinds (if/for/while/with/try and their per-language
// analogues) deepen only their own subtree; siblings are unaffected.
func MaxNestingDepth(def *sitter.Node, lang parser.Language, opts NestingOptions) int {
	if def == nil {
		return 0
	}

	nesting := makeSet(query.NestingKinds(lang))
	var boundary map[string]bool
	if opts.ResetNestedDefinitions {
		boundary = makeSet(append(query.FunctionKinds(lang), query.ClassKinds(lang)...))
	}

	return maxDepth(def, nesting, boundary, 0)
}

func maxDepth(node *sitter.Node, nesting, boundary map[string]bool, depth int) int {
	max := depth

	for i := range int(node.ChildCount()) {
		child := node.Child(i)
		childType := child.Type()

		if boundary != nil && boundary[childType] {
			continue
		}

		childDepth := depth
		if nesting[childType] {
			childDepth = depth + 1
		}
		if d := maxDepth(child, nesting, boundary, childDepth); d > max {
			max = d
		}
	}

	return max
}

func makeSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

package dom

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// HTMLTree is a Tree over raw *html.Node values. Nodes are compared by
// identity, so membership checks are map lookups.
type HTMLTree struct{}

// Query compiles selector and collects every matching descendant of root.
func (HTMLTree) Query(root *html.Node, selector string) ([]*html.Node, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	var nodes []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		nodes = append(nodes, sel.MatchAll(c)...)
	}
	return nodes, nil
}

// Parent returns n.Parent.
func (HTMLTree) Parent(n *html.Node) (*html.Node, bool) {
	return n.Parent, n.Parent != nil
}

// Contains indexes set by pointer.
func (HTMLTree) Contains(set []*html.Node) func(*html.Node) bool {
	index := make(map[*html.Node]struct{}, len(set))
	for _, n := range set {
		index[n] = struct{}{}
	}
	return func(n *html.Node) bool {
		_, ok := index[n]
		return ok
	}
}

// Nodes returns all descendants of root matching selector.
func Nodes(root *html.Node, selector string) ([]*html.Node, error) {
	return HTMLTree{}.Query(root, selector)
}

// FirstLevelNodes is FirstLevel over an HTMLTree.
func FirstLevelNodes(root *html.Node, selector string) ([]*html.Node, error) {
	return FirstLevel[*html.Node](HTMLTree{}, root, selector)
}

func compile(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	return sel, nil
}

package dom

import (
	"sort"

	"github.com/CTAG07/glintutil/pkg/equal"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// defaultMaxDepth bounds structural comparisons of distinct wrappers, which
// otherwise walk the sibling and parent links of the wrapped nodes.
const defaultMaxDepth = 32

// SelectionTree is a Tree over single-element *goquery.Selection values.
// Wrappers are created on every query and parent lookup, so two wrappers
// of the same element are distinct values; they are matched with
// equal.IsEqual, which only looks at the exported Nodes of a selection.
type SelectionTree struct {
	opts []equal.Option
}

// NewSelectionTree returns a SelectionTree. Without options, comparisons
// are bounded to a fixed depth.
func NewSelectionTree(opts ...equal.Option) *SelectionTree {
	if len(opts) == 0 {
		opts = []equal.Option{equal.WithMaxDepth(defaultMaxDepth)}
	}
	return &SelectionTree{opts: opts}
}

// Query returns one wrapper per matching descendant of any element of root,
// without duplicates and in document order.
func (t *SelectionTree) Query(root *goquery.Selection, selector string) ([]*goquery.Selection, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	found := root.FindMatcher(sel)
	order := make([]int, found.Length())
	for i := range order {
		order[i] = i
	}
	// goquery concatenates the matches of each root element.
	if root.Length() > 1 {
		order = documentOrder(found.Nodes)
	}
	items := make([]*goquery.Selection, 0, len(order))
	for _, i := range order {
		items = append(items, found.Eq(i))
	}
	return items, nil
}

// documentOrder returns the indexes of nodes sorted by their position in a
// pre-order walk of the document holding them.
func documentOrder(nodes []*html.Node) []int {
	order := make([]int, len(nodes))
	if len(nodes) == 0 {
		return order
	}
	pos := make(map[*html.Node]int, len(nodes))
	for i, n := range nodes {
		order[i] = i
		pos[n] = -1
	}

	top := nodes[0]
	for top.Parent != nil {
		top = top.Parent
	}
	next := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if _, ok := pos[n]; ok {
			pos[n] = next
			next++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(top)

	sort.SliceStable(order, func(a, b int) bool {
		return pos[nodes[order[a]]] < pos[nodes[order[b]]]
	})
	return order
}

// Parent wraps the parent element of s.
func (t *SelectionTree) Parent(s *goquery.Selection) (*goquery.Selection, bool) {
	p := s.Parent()
	return p, p.Length() > 0
}

// Contains scans set with a structural comparison.
func (t *SelectionTree) Contains(set []*goquery.Selection) func(*goquery.Selection) bool {
	return func(s *goquery.Selection) bool {
		for _, m := range set {
			if equal.IsEqual(m, s, t.opts...) {
				return true
			}
		}
		return false
	}
}

// FirstLevelElements is FirstLevel over a SelectionTree. root may hold
// several elements, nested or not: the matches below all of them form one
// set in document order, and a match is dropped when any of its ancestors
// is in that set. With more than one root element the ancestor walk goes up
// to the top of the document, since no single element bounds it.
func FirstLevelElements(root *goquery.Selection, selector string) (*goquery.Selection, error) {
	items, err := FirstLevel[*goquery.Selection](NewSelectionTree(), root, selector)
	if err != nil {
		return nil, err
	}
	nodes := make([]*html.Node, 0, len(items))
	for _, item := range items {
		nodes = append(nodes, item.Get(0))
	}
	return root.FindNodes(nodes...), nil
}

package dom

// Tree is the capability a host document library provides to FirstLevel.
type Tree[N any] interface {
	// Query returns the elements below root matching selector, in document
	// order. Whether root can match itself is up to the query engine;
	// FirstLevel passes such matches through. HTMLTree and SelectionTree
	// only return descendants.
	Query(root N, selector string) ([]N, error)

	// Parent returns the parent of n, or false when n has none.
	Parent(n N) (N, bool)

	// Contains returns a membership predicate for set.
	Contains(set []N) func(N) bool
}

// FirstLevel returns the descendants of root matching selector that have no
// matching ancestor between themselves and root. The result keeps the
// query's order. Errors from the query are returned unchanged.
func FirstLevel[N any](t Tree[N], root N, selector string) ([]N, error) {
	matches, err := t.Query(root, selector)
	if err != nil {
		return nil, err
	}
	result := make([]N, 0, len(matches))
	if len(matches) == 0 {
		return result, nil
	}

	matched := t.Contains(matches)
	isRoot := t.Contains([]N{root})

next:
	for _, n := range matches {
		for p, ok := t.Parent(n); ok && !isRoot(p); p, ok = t.Parent(p) {
			if matched(p) {
				continue next
			}
		}
		result = append(result, n)
	}
	return result, nil
}

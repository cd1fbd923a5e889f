package blocks

import (
	"fmt"

	"github.com/CTAG07/glintutil/pkg/objutil"
)

// Each calls call for every item in key order, passing the argument stored
// under the same key in args (the zero value when missing). fn, when
// non-nil, receives each item with its result. Each stops at the first
// error and returns items.
func Each[T, A, R any](items map[string]T, call func(T, A) (R, error), args map[string]A, fn func(T, R)) (map[string]T, error) {
	_, err := Collect(items, call, args, fn)
	return items, err
}

// Collect is Each returning the results keyed like items.
func Collect[T, A, R any](items map[string]T, call func(T, A) (R, error), args map[string]A, fn func(T, R)) (map[string]R, error) {
	results := make(map[string]R, len(items))
	for _, key := range objutil.Keys(items) {
		item := items[key]
		result, err := call(item, args[key])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		if fn != nil {
			fn(item, result)
		}
		results[key] = result
	}
	return results, nil
}

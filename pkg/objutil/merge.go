package objutil

import "sort"

// Merge copies every key of b into a, overwriting existing values, and
// returns a. A nil a is replaced by a new map.
func Merge(a, b map[string]any) map[string]any {
	if a == nil {
		a = make(map[string]any, len(b))
	}
	for k, v := range b {
		a[k] = v
	}
	return a
}

// Defaults copies the keys of b that are missing or nil in a, and returns
// a. Existing values of a are never overwritten.
func Defaults(a, b map[string]any) map[string]any {
	if a == nil {
		a = make(map[string]any, len(b))
	}
	for k, v := range b {
		if cur, ok := a[k]; !ok || cur == nil {
			a[k] = v
		}
	}
	return a
}

// Values returns the values of m ordered by key.
func Values[V any](m map[string]V) []V {
	keys := Keys(m)
	values := make([]V, 0, len(keys))
	for _, k := range keys {
		values = append(values, m[k])
	}
	return values
}

// Keys returns the keys of m in ascending order.
func Keys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Xor reports whether exactly one of a and b is true.
func Xor(a, b bool) bool {
	return a != b
}

// Xnor reports whether a and b are both true or both false.
func Xnor(a, b bool) bool {
	return !Xor(a, b)
}

package equal

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrCycle is returned when a pair of references is reached again while
	// it is still being compared.
	ErrCycle = errors.New("equal: cyclic value")

	// ErrDepthExceeded is returned when the comparison descends further than
	// the bound configured with WithMaxDepth.
	ErrDepthExceeded = errors.New("equal: maximum depth exceeded")
)

// Option configures a comparison.
type Option func(*comparer)

// WithMaxDepth bounds the recursion depth of a comparison. A value <= 0
// means no bound, which is the default.
func WithMaxDepth(depth int) Option {
	return func(c *comparer) {
		c.maxDepth = depth
	}
}

// visit identifies a pair of references on the current comparison path.
type visit struct {
	x, y uintptr
	typ  reflect.Type
}

type comparer struct {
	maxDepth int
	path     map[visit]struct{}
}

// IsEqual reports whether x and y are structurally equal. It never fails:
// any condition that stops the comparison (a cycle, the depth bound) is
// reported as false.
func IsEqual(x, y any, opts ...Option) bool {
	ok, err := Compare(x, y, opts...)
	return ok && err == nil
}

// Compare reports whether x and y are structurally equal. A non-nil error
// means the comparison was abandoned, in which case the boolean is false.
func Compare(x, y any, opts ...Option) (bool, error) {
	if x == nil || y == nil {
		return x == nil && y == nil, nil
	}
	c := &comparer{path: make(map[visit]struct{})}
	for _, opt := range opts {
		opt(c)
	}
	return c.equal(reflect.ValueOf(x), reflect.ValueOf(y), 0)
}

func (c *comparer) equal(x, y reflect.Value, depth int) (bool, error) {
	if !x.IsValid() || !y.IsValid() {
		return x.IsValid() == y.IsValid(), nil
	}
	if x.Type() != y.Type() {
		return false, nil
	}
	if c.maxDepth > 0 && depth > c.maxDepth {
		return false, fmt.Errorf("%w (%d) at %s", ErrDepthExceeded, c.maxDepth, x.Type())
	}

	switch x.Kind() {
	case reflect.Bool:
		return x.Bool() == y.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return x.Int() == y.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return x.Uint() == y.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return x.Float() == y.Float(), nil
	case reflect.Complex64, reflect.Complex128:
		return x.Complex() == y.Complex(), nil
	case reflect.String:
		return x.String() == y.String(), nil
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return x.Pointer() == y.Pointer(), nil

	case reflect.Pointer:
		if x.Pointer() == y.Pointer() {
			return true, nil
		}
		if x.IsNil() || y.IsNil() {
			return false, nil
		}
		return c.guarded(x, y, func() (bool, error) {
			return c.equal(x.Elem(), y.Elem(), depth+1)
		})

	case reflect.Interface:
		if x.IsNil() || y.IsNil() {
			return x.IsNil() && y.IsNil(), nil
		}
		return c.equal(x.Elem(), y.Elem(), depth+1)

	case reflect.Map:
		if x.Len() != y.Len() {
			return false, nil
		}
		if x.Len() == 0 || x.Pointer() == y.Pointer() {
			return true, nil
		}
		return c.guarded(x, y, func() (bool, error) {
			iter := x.MapRange()
			for iter.Next() {
				yv := y.MapIndex(iter.Key())
				if !yv.IsValid() {
					return false, nil
				}
				if ok, err := c.equal(iter.Value(), yv, depth+1); !ok || err != nil {
					return false, err
				}
			}
			return true, nil
		})

	case reflect.Slice:
		if x.Len() != y.Len() {
			return false, nil
		}
		if x.Len() == 0 || x.Pointer() == y.Pointer() {
			return true, nil
		}
		return c.guarded(x, y, func() (bool, error) {
			return c.elements(x, y, depth)
		})

	case reflect.Array:
		return c.elements(x, y, depth)

	case reflect.Struct:
		return c.fields(x, y, depth)
	}

	return false, nil
}

// guarded runs fn with the (x, y) reference pair marked as in progress.
func (c *comparer) guarded(x, y reflect.Value, fn func() (bool, error)) (bool, error) {
	v := visit{x: x.Pointer(), y: y.Pointer(), typ: x.Type()}
	if _, ok := c.path[v]; ok {
		return false, fmt.Errorf("%w at %s", ErrCycle, x.Type())
	}
	c.path[v] = struct{}{}
	defer delete(c.path, v)
	return fn()
}

func (c *comparer) elements(x, y reflect.Value, depth int) (bool, error) {
	for i := 0; i < x.Len(); i++ {
		if ok, err := c.equal(x.Index(i), y.Index(i), depth+1); !ok || err != nil {
			return false, err
		}
	}
	return true, nil
}

// fields compares exported fields: scalars first, then values, then
// references, so a cheap mismatch ends the comparison before any link is
// followed.
func (c *comparer) fields(x, y reflect.Value, depth int) (bool, error) {
	t := x.Type()
	var values, refs []int
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		switch k := f.Type.Kind(); {
		case k == reflect.Pointer || k == reflect.Interface:
			refs = append(refs, i)
			continue
		case !isScalar(k):
			values = append(values, i)
			continue
		}
		if ok, err := c.equal(x.Field(i), y.Field(i), depth+1); !ok || err != nil {
			return false, err
		}
	}
	for _, i := range append(values, refs...) {
		if ok, err := c.equal(x.Field(i), y.Field(i), depth+1); !ok || err != nil {
			return false, err
		}
	}
	return true, nil
}

func isScalar(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

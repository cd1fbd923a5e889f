package templating

import (
	"html/template"
	"reflect"

	"github.com/CTAG07/glintutil/pkg/equal"
	"github.com/CTAG07/glintutil/pkg/objutil"
)

func (tm *TemplateManager) makeFuncMap() template.FuncMap {
	return template.FuncMap{
		// Data
		"isEqual":  isEqual,
		"merge":    objutil.Merge,
		"defaults": objutil.Defaults,
		"decode":   objutil.Decode,
		"pageID":   objutil.ID,
		"isSet":    isSet,
		"safeHTML": safeHTML,

		// Logic & Control
		"repeat": tm.repeat,
		"list":   list,
		"and":    and,
		"or":     or,
		"not":    not,
		"xor":    objutil.Xor,

		// Arithmetic
		"add": add,
		"sub": sub,
		"inc": inc,
		"dec": dec,
	}
}

// isEqual reports whether a and b are structurally equal.
func isEqual(a, b any) bool {
	return equal.IsEqual(a, b)
}

// isSet returns true if a value is not its zero value.
func isSet(val any) bool {
	v := reflect.ValueOf(val)
	if !v.IsValid() {
		return false
	}
	return !v.IsZero()
}

// safeHTML marks already rendered markup, such as nested block output, as
// trusted.
func safeHTML(s string) template.HTML {
	return template.HTML(s)
}

// repeat returns the integers 0 to count-1, bounded by MaxRepeat.
func (tm *TemplateManager) repeat(count int) []int {
	count = min(count, tm.config.MaxRepeat)
	if count < 0 {
		return []int{}
	}
	s := make([]int, count)
	for i := range s {
		s[i] = i
	}
	return s
}

// list returns a slice containing all the arguments passed to it.
func list(args ...any) []any {
	return args
}

// and returns true only if all arguments are true.
func and(args ...bool) bool {
	for _, arg := range args {
		if !arg {
			return false
		}
	}
	return true
}

// or returns true if any argument is true.
func or(args ...bool) bool {
	for _, arg := range args {
		if arg {
			return true
		}
	}
	return false
}

func not(arg bool) bool {
	return !arg
}

func add(a, b int) int {
	return a + b
}

func sub(a, b int) int {
	return a - b
}

func inc(i int) int {
	return i + 1
}

func dec(i int) int {
	return i - 1
}

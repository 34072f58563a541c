package gostack

import "sort"

// scope is one frame of name bindings.
type scope map[string]Value

// scopeChain holds frames innermost last. The first frame is the base scope
// holding the builtins, and is never popped.
type scopeChain []scope

func (sc scopeChain) lookup(name string) (Value, bool) {
	for i := len(sc) - 1; i >= 0; i-- {
		if v, defined := sc[i][name]; defined {
			return v, true
		}
	}
	return nil, false
}

// define binds name in the innermost frame; frames are allocated lazily
// since most block invocations never def anything.
func (sc scopeChain) define(name string, v Value) {
	i := len(sc) - 1
	if sc[i] == nil {
		sc[i] = make(scope)
	}
	sc[i][name] = v
}

func (sc *scopeChain) push(s scope) { *sc = append(*sc, s) }

func (sc *scopeChain) pop() {
	if i := len(*sc) - 1; i > 0 {
		(*sc)[i] = nil
		*sc = (*sc)[:i]
	}
}

func (s scope) names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package cgen

// registry is a keyed map that remembers first-registration order.
// Setting an existing key overwrites its value in place.
type registry[V any] struct {
	order   []string
	entries map[string]V
}

func newRegistry[V any]() *registry[V] {
	return &registry[V]{entries: make(map[string]V)}
}

func (r *registry[V]) set(key string, v V) {
	if _, ok := r.entries[key]; !ok {
		r.order = append(r.order, key)
	}
	r.entries[key] = v
}

func (r *registry[V]) len() int {
	return len(r.order)
}

// values returns the entries in first-registration order.
func (r *registry[V]) values() []V {
	out := make([]V, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.entries[k])
	}
	return out
}

// declaration is a scope-local declaration hoisted to the top of its body.
type declaration struct {
	Scope   ScopeID
	Purpose string
	Text    string
}

func declarationKey(scope ScopeID, purpose string) string {
	return purpose + "@" + string(scope)
}

func headerKey(module string) string {
	return "include_" + module
}

package keymap

// Resolver maps key strings to actions. Search-context keys are resolved
// separately so that typing never triggers global shortcuts.
type Resolver struct {
	bindings map[string]Action   // key -> action, outside search
	search   map[string]Action   // key -> action, while search has focus
	byAction map[Action][]string // action -> keys (for help)
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		search:   make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		target := r.bindings
		if b.Context == ContextSearch {
			target = r.search
		}
		for _, key := range b.Keys {
			target[key] = b.Action
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
	}
	for action, keys := range r.byAction {
		r.byAction[action] = dedupe(keys)
	}
	return r
}

// Default returns a resolver over All.
func Default() *Resolver {
	return NewResolver(All)
}

// Resolve returns the action for a key, or "" if unbound. While the search
// input has focus only search bindings apply.
func (r *Resolver) Resolve(key string, searchFocused bool) Action {
	if searchFocused {
		return r.search[key]
	}
	return r.bindings[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}

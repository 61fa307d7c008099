package anim

// KeyTable maps parameter names of independently authored graphs onto shared
// canonical keys. It is built once when the graphs are loaded.
type KeyTable struct {
	toCanon map[string]map[string]string // graph -> name -> canonical
	toName  map[string]map[string]string // graph -> canonical -> name
	kinds   map[string]map[string]Kind   // graph -> canonical -> kind
}

// NewKeyTable indexes the parameters of every graph.
func NewKeyTable(graphs ...*Graph) *KeyTable {
	t := &KeyTable{
		toCanon: make(map[string]map[string]string, len(graphs)),
		toName:  make(map[string]map[string]string, len(graphs)),
		kinds:   make(map[string]map[string]Kind, len(graphs)),
	}
	for _, g := range graphs {
		if g == nil {
			continue
		}
		canon := make(map[string]string, len(g.Params))
		names := make(map[string]string, len(g.Params))
		kinds := make(map[string]Kind, len(g.Params))
		for _, p := range g.Params {
			canon[p.Name] = p.Key()
			names[p.Key()] = p.Name
			kinds[p.Key()] = p.Kind
		}
		t.toCanon[g.ID] = canon
		t.toName[g.ID] = names
		t.kinds[g.ID] = kinds
	}
	return t
}

// Canonical returns the canonical key of a graph parameter.
func (t *KeyTable) Canonical(graphID, name string) (string, bool) {
	if t == nil {
		return name, true
	}
	m, ok := t.toCanon[graphID]
	if !ok {
		return "", false
	}
	c, ok := m[name]
	return c, ok
}

// Name returns the parameter name that carries canonical in a graph.
func (t *KeyTable) Name(graphID, canonical string) (string, bool) {
	if t == nil {
		return canonical, true
	}
	m, ok := t.toName[graphID]
	if !ok {
		return "", false
	}
	n, ok := m[canonical]
	return n, ok
}

// Shared lists canonical keys present with the same kind in both graphs.
func (t *KeyTable) Shared(a, b string) []string {
	if t == nil {
		return nil
	}
	ka, kb := t.kinds[a], t.kinds[b]
	var out []string
	for key, kind := range ka {
		if other, ok := kb[key]; ok && other == kind {
			out = append(out, key)
		}
	}
	return out
}

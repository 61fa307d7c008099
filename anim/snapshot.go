package anim

// ParameterSink is the write side of an animator.
type ParameterSink interface {
	// Params enumerates the parameters of the active graph.
	Params() []Param
	GraphID() string
	Bool(name string) bool
	SetBool(name string, v bool)
	Int(name string) int
	SetInt(name string, v int)
	Float(name string) float64
	SetFloat(name string, v float64)
	SetTrigger(name string)
	ResetTrigger(name string)
	SetLayerWeight(layer int, weight float64)
}

type cached struct {
	kind  Kind
	value Value
}

// Snapshot is the parameter cache captured right before a graph swap, keyed
// by canonical key. Triggers are not captured.
type Snapshot struct {
	values map[string]cached
}

// Capture records every bool, int and float parameter of the sink's graph.
func Capture(sink ParameterSink, table *KeyTable) Snapshot {
	snap := Snapshot{values: map[string]cached{}}
	if sink == nil {
		return snap
	}
	graphID := sink.GraphID()
	for _, p := range sink.Params() {
		key, ok := table.Canonical(graphID, p.Name)
		if !ok {
			key = p.Key()
		}
		switch p.Kind {
		case KindBool:
			snap.values[key] = cached{kind: KindBool, value: Value{Bool: sink.Bool(p.Name)}}
		case KindInt:
			snap.values[key] = cached{kind: KindInt, value: Value{Int: sink.Int(p.Name)}}
		case KindFloat:
			snap.values[key] = cached{kind: KindFloat, value: Value{Float: sink.Float(p.Name)}}
		}
	}
	return snap
}

// Len reports how many values were captured.
func (s Snapshot) Len() int {
	return len(s.values)
}

// Restore writes captured values into every parameter of the sink's current
// graph that shares a canonical key and kind. Parameters without a captured
// value keep the graph default. It returns the number of restored values.
func (s Snapshot) Restore(sink ParameterSink, table *KeyTable) int {
	if sink == nil {
		return 0
	}
	graphID := sink.GraphID()
	restored := 0
	for _, p := range sink.Params() {
		key, ok := table.Canonical(graphID, p.Name)
		if !ok {
			key = p.Key()
		}
		c, ok := s.values[key]
		if !ok || c.kind != p.Kind {
			continue
		}
		switch p.Kind {
		case KindBool:
			sink.SetBool(p.Name, c.value.Bool)
		case KindInt:
			sink.SetInt(p.Name, c.value.Int)
		case KindFloat:
			sink.SetFloat(p.Name, c.value.Float)
		default:
			continue
		}
		restored++
	}
	return restored
}

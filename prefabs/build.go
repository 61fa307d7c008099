package prefabs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/actorkit/actor"
	"github.com/milk9111/actorkit/anim"
	"github.com/milk9111/actorkit/physics"
)

var ErrBadCondition = errors.New("prefabs: bad condition")

func LoadGraph(filename string) (*anim.Graph, error) {
	spec, err := LoadSpec[GraphSpec](filename)
	if err != nil {
		return nil, err
	}
	g, err := spec.Build()
	if err != nil {
		return nil, fmt.Errorf("prefabs: build %s: %w", filename, err)
	}
	return g, nil
}

// LoadGraphs loads and compiles the normal and combat graphs of the actor.
func (s *ActorSpec) LoadGraphs() (normal, combat *anim.Graph, err error) {
	normal, err = LoadGraph(s.Graphs.Normal)
	if err != nil {
		return nil, nil, err
	}
	combat, err = LoadGraph(s.Graphs.Combat)
	if err != nil {
		return nil, nil, err
	}
	return normal, combat, nil
}

// CharacterConfig sizes the physics proxy.
func (s *ActorSpec) CharacterConfig() physics.CharacterConfig {
	return physics.CharacterConfig{
		Radius:     s.Character.Radius,
		Skin:       s.Character.Skin,
		SlopeLimit: s.Character.SlopeLimit,
	}
}

func (s *ActorSpec) SpawnPosition() mgl64.Vec3 {
	return mgl64.Vec3(s.Character.Spawn)
}

// Build converts and compiles the graph.
func (s GraphSpec) Build() (*anim.Graph, error) {
	g := &anim.Graph{ID: s.ID, Entry: s.Entry, Layers: s.Layers}

	for _, ps := range s.Params {
		kind, ok := anim.ParseKind(ps.Type)
		if !ok {
			return nil, fmt.Errorf("param %s: unknown type %q", ps.Name, ps.Type)
		}
		def, err := decodeDefault(kind, &ps)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", ps.Name, err)
		}
		g.Params = append(g.Params, anim.Param{Name: ps.Name, Kind: kind, Canonical: ps.Canonical, Default: def})
	}

	for _, ns := range s.Nodes {
		node := anim.Node{Name: ns.Name, Duration: ns.Duration, Loop: ns.Loop}
		for _, ev := range ns.Events {
			node.Events = append(node.Events, anim.TimelineEvent{At: ev.At, Token: ev.Token})
		}
		g.Nodes = append(g.Nodes, node)
	}

	for _, ts := range s.Transitions {
		t := anim.Transition{From: ts.From, To: ts.To, ExitTime: ts.ExitTime}
		for _, cs := range ts.When {
			c, err := cs.Parse()
			if err != nil {
				return nil, err
			}
			t.Conditions = append(t.Conditions, c)
		}
		g.Transitions = append(g.Transitions, t)
	}

	if err := g.Compile(); err != nil {
		return nil, err
	}
	return g, nil
}

func decodeDefault(kind anim.Kind, ps *ParamSpec) (anim.Value, error) {
	if ps.Default.Kind == 0 {
		return anim.Value{}, nil
	}
	var v anim.Value
	var err error
	switch kind {
	case anim.KindBool:
		err = ps.Default.Decode(&v.Bool)
	case anim.KindInt:
		err = ps.Default.Decode(&v.Int)
	case anim.KindFloat:
		err = ps.Default.Decode(&v.Float)
	case anim.KindTrigger:
		return anim.Value{}, fmt.Errorf("triggers have no default")
	}
	return v, err
}

var conditionOps = map[string]anim.Op{
	"==": anim.OpEquals,
	"!=": anim.OpNotEqual,
	">":  anim.OpGreater,
	"<":  anim.OpLess,
}

// Parse reads "param", "!param" or "param op value".
func (c ConditionSpec) Parse() (anim.Condition, error) {
	fields := strings.Fields(string(c))
	switch len(fields) {
	case 1:
		if name, ok := strings.CutPrefix(fields[0], "!"); ok {
			return anim.Condition{Param: name, Op: anim.OpIfNot}, nil
		}
		return anim.Condition{Param: fields[0], Op: anim.OpIf}, nil
	case 3:
		op, ok := conditionOps[fields[1]]
		if !ok {
			return anim.Condition{}, fmt.Errorf("%w: unknown operator in %q", ErrBadCondition, string(c))
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return anim.Condition{}, fmt.Errorf("%w: %q: %w", ErrBadCondition, string(c), err)
		}
		return anim.Condition{Param: fields[0], Op: op, Value: v}, nil
	}
	return anim.Condition{}, fmt.Errorf("%w: %q", ErrBadCondition, string(c))
}

func LoadEquipmentSpec(filename string) (*EquipmentSpec, error) {
	if filename == "" {
		filename = "equipment.yaml"
	}
	spec, err := LoadSpec[EquipmentSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// EquipmentSlots returns the configured slots, falling back to the defaults
// for kinds the file leaves out.
func (s *EquipmentSpec) EquipmentSlots() (map[actor.EquipmentKind]actor.EquipmentSlots, error) {
	slots := actor.DefaultEquipmentSlots()
	for name, slot := range s.Slots {
		kind, ok := actor.ParseEquipmentKind(name)
		if !ok {
			return nil, fmt.Errorf("prefabs: unknown equipment kind %q", name)
		}
		slots[kind] = actor.EquipmentSlots{Held: slot.Held, Stowed: slot.Stowed}
	}
	return slots, nil
}

// PhysicsSegments converts the level geometry.
func (s *LevelSpec) PhysicsSegments() []physics.Segment {
	out := make([]physics.Segment, 0, len(s.Segments))
	for _, seg := range s.Segments {
		out = append(out, physics.Segment{
			A:      mgl64.Vec2(seg.From),
			B:      mgl64.Vec2(seg.To),
			Radius: seg.Radius,
		})
	}
	return out
}

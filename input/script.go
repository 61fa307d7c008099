package input

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
)

// scriptDispatch is appended to every input script. Scripts define
// update(input, state, t) and call input.move/jump/sprint/attack/defend; any
// signal not set during a tick reads as released.
const scriptDispatch = `
update(__input, __state, __time)
`

// ScriptSource drives an aggregator from a tengo script, for headless runs
// and tests.
type ScriptSource struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	now      float64
	pending  Snapshot
}

// NewScriptSource compiles src. name is only used in error messages.
func NewScriptSource(name string, src []byte) (*ScriptSource, error) {
	script := tengo.NewScript(append(append([]byte(nil), src...), scriptDispatch...))
	_ = script.Add("__input", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__time", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input: compile %s: %w", name, err)
	}
	return &ScriptSource{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// Now is the script clock, advanced by every Poll.
func (s *ScriptSource) Now() float64 {
	return s.now
}

func (s *ScriptSource) Poll(dt float64, into *Aggregator) error {
	if dt > 0 {
		s.now += dt
	}
	s.pending = Snapshot{}
	if err := s.compiled.Set("__input", s.api()); err != nil {
		return fmt.Errorf("input: %s: %w", s.name, err)
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return fmt.Errorf("input: %s: %w", s.name, err)
	}
	if err := s.compiled.Set("__time", s.now); err != nil {
		return fmt.Errorf("input: %s: %w", s.name, err)
	}
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("input: run %s: %w", s.name, err)
	}
	if into != nil {
		into.Apply(s.pending)
	}
	return nil
}

func (s *ScriptSource) api() *tengo.ImmutableMap {
	flag := func(name string, dst *bool) *tengo.UserFunction {
		return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			v := true
			if len(args) > 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			if len(args) == 1 {
				b, ok := tengo.ToBool(args[0])
				if !ok {
					return nil, tengo.ErrInvalidArgumentType{Name: "pressed", Expected: "bool", Found: args[0].TypeName()}
				}
				v = b
			}
			*dst = v
			return tengo.UndefinedValue, nil
		}}
	}

	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"move": &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 2 {
				return nil, tengo.ErrWrongNumArguments
			}
			x, ok := tengo.ToFloat64(args[0])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "x", Expected: "float", Found: args[0].TypeName()}
			}
			z, ok := tengo.ToFloat64(args[1])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "z", Expected: "float", Found: args[1].TypeName()}
			}
			s.pending.Move = clampMove(mgl64.Vec3{x, 0, z})
			return tengo.UndefinedValue, nil
		}},
		"jump":   flag("jump", &s.pending.Jump),
		"sprint": flag("sprint", &s.pending.Sprint),
		"attack": flag("attack", &s.pending.Attack),
		"defend": flag("defend", &s.pending.Defend),
	}}
}

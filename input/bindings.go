package input

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/ini.v1"
)

// Bindings maps actions to keyboard keys and mouse buttons.
type Bindings struct {
	Left     ebiten.Key
	Right    ebiten.Key
	Forward  ebiten.Key
	Back     ebiten.Key
	Sprint   ebiten.Key
	Jump     ebiten.Key
	Attack   ebiten.Key
	Defend   ebiten.Key
	YawLeft  ebiten.Key
	YawRight ebiten.Key

	AttackMouse ebiten.MouseButton
	DefendMouse ebiten.MouseButton
	MouseEnable bool

	StickDeadzone float64
}

// DefaultBindings is WASD with Shift to sprint, Space to jump, J or the left
// mouse button to attack and K or the right mouse button to toggle combat.
func DefaultBindings() Bindings {
	return Bindings{
		Left:          ebiten.KeyA,
		Right:         ebiten.KeyD,
		Forward:       ebiten.KeyW,
		Back:          ebiten.KeyS,
		Sprint:        ebiten.KeyShiftLeft,
		Jump:          ebiten.KeySpace,
		Attack:        ebiten.KeyJ,
		Defend:        ebiten.KeyK,
		YawLeft:       ebiten.KeyQ,
		YawRight:      ebiten.KeyE,
		AttackMouse:   ebiten.MouseButtonLeft,
		DefendMouse:   ebiten.MouseButtonRight,
		MouseEnable:   true,
		StickDeadzone: 0.2,
	}
}

// LoadBindings parses an INI document with [keyboard], [mouse] and [gamepad]
// sections. Missing entries keep their defaults.
func LoadBindings(data []byte) (Bindings, error) {
	b := DefaultBindings()
	cfg, err := ini.Load(data)
	if err != nil {
		return b, fmt.Errorf("input: parse bindings: %w", err)
	}

	keys := cfg.Section("keyboard")
	for name, dst := range map[string]*ebiten.Key{
		"left":      &b.Left,
		"right":     &b.Right,
		"forward":   &b.Forward,
		"back":      &b.Back,
		"sprint":    &b.Sprint,
		"jump":      &b.Jump,
		"attack":    &b.Attack,
		"defend":    &b.Defend,
		"yaw_left":  &b.YawLeft,
		"yaw_right": &b.YawRight,
	} {
		if !keys.HasKey(name) {
			continue
		}
		if err := dst.UnmarshalText([]byte(keys.Key(name).String())); err != nil {
			return b, fmt.Errorf("input: keyboard.%s: %w", name, err)
		}
	}

	mouse := cfg.Section("mouse")
	b.MouseEnable = mouse.Key("enable").MustBool(b.MouseEnable)
	for name, dst := range map[string]*ebiten.MouseButton{
		"attack": &b.AttackMouse,
		"defend": &b.DefendMouse,
	} {
		if !mouse.HasKey(name) {
			continue
		}
		btn, ok := parseMouseButton(mouse.Key(name).String())
		if !ok {
			return b, fmt.Errorf("input: mouse.%s: unknown button %q", name, mouse.Key(name).String())
		}
		*dst = btn
	}

	b.StickDeadzone = cfg.Section("gamepad").Key("deadzone").MustFloat64(b.StickDeadzone)
	return b, nil
}

func parseMouseButton(name string) (ebiten.MouseButton, bool) {
	switch name {
	case "left":
		return ebiten.MouseButtonLeft, true
	case "right":
		return ebiten.MouseButtonRight, true
	case "middle":
		return ebiten.MouseButtonMiddle, true
	}
	return 0, false
}

package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/actorkit/actor"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := decodeSpec(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// decodeSpec unmarshals filename over the values already in out.
func decodeSpec(filename string, out any) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

// ActorSpec is actor.yaml: tuning, body size and the files the actor's
// graphs, equipment and input script live in.
type ActorSpec struct {
	Name      string        `yaml:"name"`
	Settings  SettingsSpec  `yaml:"settings"`
	Character CharacterSpec `yaml:"character"`
	Graphs    GraphsSpec    `yaml:"graphs"`
	Equipment string        `yaml:"equipment"`
	Bindings  string        `yaml:"bindings"`
	Script    string        `yaml:"script"`
}

func LoadActorSpec(filename string) (*ActorSpec, error) {
	if filename == "" {
		filename = "actor.yaml"
	}
	spec := ActorSpec{Settings: NewSettingsSpec(actor.DefaultSettings())}
	if err := decodeSpec(filename, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// SettingsSpec mirrors actor.Settings. Keys left out keep their defaults.
type SettingsSpec struct {
	MoveSpeed          float64 `yaml:"move_speed"`
	RunSpeedMultiplier float64 `yaml:"run_speed_multiplier"`
	RotationSmoothTime float64 `yaml:"rotation_smooth_time"`
	MovementThreshold  float64 `yaml:"movement_threshold"`
	Gravity            float64 `yaml:"gravity"`
	JumpPower          float64 `yaml:"jump_power"`
	MaxJumpHeight      float64 `yaml:"max_jump_height"`
	MaxJumpTime        float64 `yaml:"max_jump_time"`
	JumpCooldown       float64 `yaml:"jump_cooldown"`
	GroundedGravity    float64 `yaml:"grounded_gravity"`
	ComboWindow        float64 `yaml:"combo_window"`
	MaxHealth          float64 `yaml:"max_health"`
	MaxStamina         float64 `yaml:"max_stamina"`
}

func NewSettingsSpec(s actor.Settings) SettingsSpec {
	return SettingsSpec{
		MoveSpeed:          s.MoveSpeed,
		RunSpeedMultiplier: s.RunSpeedMultiplier,
		RotationSmoothTime: s.RotationSmoothTime,
		MovementThreshold:  s.MovementThreshold,
		Gravity:            s.Gravity,
		JumpPower:          s.JumpPower,
		MaxJumpHeight:      s.MaxJumpHeight,
		MaxJumpTime:        s.MaxJumpTime,
		JumpCooldown:       s.JumpCooldown,
		GroundedGravity:    s.GroundedGravity,
		ComboWindow:        s.ComboWindow,
		MaxHealth:          s.MaxHealth,
		MaxStamina:         s.MaxStamina,
	}
}

func (s *SettingsSpec) UnmarshalYAML(value *yaml.Node) error {
	type plain SettingsSpec
	out := plain(NewSettingsSpec(actor.DefaultSettings()))
	if err := value.Decode(&out); err != nil {
		return err
	}
	*s = SettingsSpec(out)
	return nil
}

// Settings converts the spec to the runtime record.
func (s SettingsSpec) Settings() actor.Settings {
	return actor.Settings{
		MoveSpeed:          s.MoveSpeed,
		RunSpeedMultiplier: s.RunSpeedMultiplier,
		RotationSmoothTime: s.RotationSmoothTime,
		MovementThreshold:  s.MovementThreshold,
		Gravity:            s.Gravity,
		JumpPower:          s.JumpPower,
		MaxJumpHeight:      s.MaxJumpHeight,
		MaxJumpTime:        s.MaxJumpTime,
		JumpCooldown:       s.JumpCooldown,
		GroundedGravity:    s.GroundedGravity,
		ComboWindow:        s.ComboWindow,
		MaxHealth:          s.MaxHealth,
		MaxStamina:         s.MaxStamina,
	}
}

type CharacterSpec struct {
	Radius     float64    `yaml:"radius"`
	Skin       float64    `yaml:"skin"`
	SlopeLimit float64    `yaml:"slope_limit"`
	Spawn      [3]float64 `yaml:"spawn"`
	Yaw        float64    `yaml:"yaw"`
}

type GraphsSpec struct {
	Normal string `yaml:"normal"`
	Combat string `yaml:"combat"`
}

// GraphSpec is one animation graph file.
type GraphSpec struct {
	ID          string           `yaml:"id"`
	Entry       string           `yaml:"entry"`
	Layers      int              `yaml:"layers"`
	Params      []ParamSpec      `yaml:"params"`
	Nodes       []NodeSpec       `yaml:"nodes"`
	Transitions []TransitionSpec `yaml:"transitions"`
}

type ParamSpec struct {
	Name      string    `yaml:"name"`
	Type      string    `yaml:"type"`
	Canonical string    `yaml:"canonical"`
	Default   yaml.Node `yaml:"default"`
}

type NodeSpec struct {
	Name     string      `yaml:"name"`
	Duration float64     `yaml:"duration"`
	Loop     bool        `yaml:"loop"`
	Events   []EventSpec `yaml:"events"`
}

type EventSpec struct {
	At    float64 `yaml:"at"`
	Token string  `yaml:"token"`
}

type TransitionSpec struct {
	From     string          `yaml:"from"`
	To       string          `yaml:"to"`
	ExitTime bool            `yaml:"exit_time"`
	When     []ConditionSpec `yaml:"when"`
}

// ConditionSpec is written as "param op value", e.g. "comboIndex == 2",
// "jump" or "!walking".
type ConditionSpec string

// EquipmentSpec is equipment.yaml.
type EquipmentSpec struct {
	Slots  map[string]SlotSpec `yaml:"slots"`
	Points []string            `yaml:"points"`
	Props  map[string]PropSpec `yaml:"props"`
}

type SlotSpec struct {
	Held   string `yaml:"held"`
	Stowed string `yaml:"stowed"`
}

type PropSpec struct {
	Point   string    `yaml:"point"`
	Visible bool      `yaml:"visible"`
	Color   YAMLColor `yaml:"color"`
}

// LevelSpec is the static collision geometry of a level.
type LevelSpec struct {
	Name       string        `yaml:"name"`
	Gravity    float64       `yaml:"gravity"`
	Background YAMLColor     `yaml:"background"`
	Segments   []SegmentSpec `yaml:"segments"`
}

type SegmentSpec struct {
	From   [2]float64 `yaml:"from"`
	To     [2]float64 `yaml:"to"`
	Radius float64    `yaml:"radius"`
}

func LoadLevelSpec(filename string) (*LevelSpec, error) {
	if filename == "" {
		filename = "level.yaml"
	}
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

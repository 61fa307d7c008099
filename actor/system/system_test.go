package system

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/actorkit/actor"
	"github.com/milk9111/actorkit/anim"
	"github.com/milk9111/actorkit/input"
	"github.com/milk9111/actorkit/reactive"
)

// fakeView treats y = 0 as the floor unless pinned to the ground.
type fakeView struct {
	pos      mgl64.Vec3
	yaw      float64
	grounded bool
	pinned   bool
}

func (v *fakeView) Position() mgl64.Vec3     { return v.pos }
func (v *fakeView) SetPosition(p mgl64.Vec3) { v.pos = p }
func (v *fakeView) Yaw() float64             { return v.yaw }
func (v *fakeView) SetYaw(deg float64)       { v.yaw = deg }
func (v *fakeView) Grounded() bool           { return v.grounded }

func (v *fakeView) Move(delta mgl64.Vec3) {
	v.pos = v.pos.Add(delta)
	if v.pinned {
		v.pos[1] = 0
		v.grounded = true
		return
	}
	v.grounded = v.pos.Y() <= 0
	if v.grounded {
		v.pos[1] = 0
	}
}

type fakeProps struct {
	visible  map[string]bool
	attached map[string]string
}

func newFakeProps() *fakeProps {
	return &fakeProps{
		visible: map[string]bool{
			"SwordHand": false, "SwordBack": true,
			"ShieldHand": false, "ShieldBack": true,
		},
		attached: map[string]string{},
	}
}

func (p *fakeProps) SetVisible(id string, visible bool) bool {
	if _, ok := p.visible[id]; !ok {
		return false
	}
	p.visible[id] = visible
	return true
}

func (p *fakeProps) Attach(id, point string) bool {
	if _, ok := p.visible[id]; !ok || point == "" {
		return false
	}
	p.attached[id] = point
	return true
}

type tokenStream struct {
	*reactive.Subject[string]
}

func (s tokenStream) OnEvent(fn func(token string)) *reactive.Subscription {
	return s.Subscribe(fn)
}

func testNormalGraph(t *testing.T) *anim.Graph {
	t.Helper()
	g := &anim.Graph{
		ID:     "normal",
		Entry:  "Normal.Idle",
		Layers: 2,
		Params: []anim.Param{
			{Name: "walking", Kind: anim.KindBool},
			{Name: "running", Kind: anim.KindBool},
			{Name: "jump", Kind: anim.KindBool},
			{Name: "inCombat", Kind: anim.KindBool},
			{Name: "comboIndex", Kind: anim.KindInt},
			{Name: "speed", Kind: anim.KindFloat, Default: anim.Value{Float: 1}},
			{Name: "attack", Kind: anim.KindTrigger},
			{Name: "saveSword", Kind: anim.KindTrigger},
		},
		Nodes: []anim.Node{
			{Name: "Normal.Idle", Duration: 1, Loop: true},
			{Name: "Normal.Jump", Duration: 0.5},
			{Name: "Normal.SaveSword", Duration: 0.5, Events: []anim.TimelineEvent{
				{At: 0.25, Token: "Equipment.DeactiveSword"},
			}},
		},
		Transitions: []anim.Transition{
			{From: anim.AnyState, To: "Normal.SaveSword", Conditions: []anim.Condition{{Param: "saveSword", Op: anim.OpIf}}},
			{From: "Normal.SaveSword", To: "Normal.Idle", ExitTime: true},
			{From: "Normal.Idle", To: "Normal.Jump", Conditions: []anim.Condition{{Param: "jump", Op: anim.OpIf}}},
			{From: "Normal.Jump", To: "Normal.Idle", ExitTime: true},
		},
	}
	if err := g.Compile(); err != nil {
		t.Fatalf("compile normal graph: %v", err)
	}
	return g
}

func testCombatGraph(t *testing.T) *anim.Graph {
	t.Helper()
	g := &anim.Graph{
		ID:    "combat",
		Entry: "SwordAndShield.GetSword",
		Params: []anim.Param{
			{Name: "walk", Kind: anim.KindBool, Canonical: "walking"},
			{Name: "running", Kind: anim.KindBool},
			{Name: "jump", Kind: anim.KindBool},
			{Name: "inCombat", Kind: anim.KindBool},
			{Name: "comboIndex", Kind: anim.KindInt},
			{Name: "guard", Kind: anim.KindFloat, Default: anim.Value{Float: 0.25}},
			{Name: "attack", Kind: anim.KindTrigger},
		},
		Nodes: []anim.Node{
			{Name: "SwordAndShield.GetSword", Duration: 0.5, Events: []anim.TimelineEvent{
				{At: 0.1, Token: "SwordHand.RightHand"},
				{At: 0.25, Token: "Equipment.ActiveSword"},
			}},
			{Name: "SwordAndShield.Idle", Duration: 1, Loop: true},
			{Name: "SwordAndShield.Attack", Duration: 0.4},
		},
		Transitions: []anim.Transition{
			{From: anim.AnyState, To: "SwordAndShield.Attack", Conditions: []anim.Condition{{Param: "attack", Op: anim.OpIf}}},
			{From: "SwordAndShield.GetSword", To: "SwordAndShield.Idle", ExitTime: true},
			{From: "SwordAndShield.Attack", To: "SwordAndShield.Idle", ExitTime: true},
		},
	}
	if err := g.Compile(); err != nil {
		t.Fatalf("compile combat graph: %v", err)
	}
	return g
}

type harness struct {
	clock     *actor.Clock
	store     *actor.Store
	in        *input.Aggregator
	view      *fakeView
	settings  actor.Settings
	animator  *anim.Animator
	equipment *actor.EquipmentState
	props     *fakeProps

	movement *Movement
	combat   *Combat
	bridge   *AnimationBridge
	equip    *Equipment
	events   *AnimationEvents
}

func newHarness(t *testing.T, view *fakeView) *harness {
	t.Helper()
	return newCameraHarness(t, view, &actor.FixedCamera{})
}

// newCameraHarness wires the subsystems to cam, which may be nil.
func newCameraHarness(t *testing.T, view *fakeView, cam actor.Camera) *harness {
	t.Helper()
	h := &harness{
		clock:     &actor.Clock{},
		store:     actor.NewStore(),
		in:        input.NewAggregator(),
		view:      view,
		settings:  actor.DefaultSettings(),
		equipment: actor.NewEquipmentState(),
		props:     newFakeProps(),
	}
	normal, combat := testNormalGraph(t), testCombatGraph(t)
	h.animator = anim.NewAnimator(nil)

	d := Deps{
		Store:     h.store,
		Input:     h.in,
		View:      h.view,
		Camera:    cam,
		Settings:  &h.settings,
		Clock:     h.clock,
		Animator:  h.animator,
		Events:    h.animator,
		Normal:    normal,
		Combat:    combat,
		Equipment: h.equipment,
		Props:     h.props,
	}
	h.movement = NewMovement(d)
	h.combat = NewCombat(d)
	h.bridge = NewAnimationBridge(d, BridgeHooks{
		JumpStarted: h.movement.JumpAnimationStarted,
		JumpEnded:   h.movement.JumpAnimationEnded,
		AttackEnded: h.combat.FinishAttack,
	}, DefaultBridgeNodes())
	h.equip = NewEquipment(d)
	h.events = NewAnimationEvents(d, h.equip.Reparent)

	for _, c := range h.controllers() {
		if err := c.Initialize(); err != nil {
			t.Fatalf("initialize %s: %v", c.Name(), err)
		}
	}
	t.Cleanup(h.release)
	return h
}

func (h *harness) controllers() []actor.Controller {
	return []actor.Controller{h.movement, h.combat, h.bridge, h.equip, h.events}
}

func (h *harness) release() {
	cs := h.controllers()
	for i := len(cs) - 1; i >= 0; i-- {
		cs[i].Release()
	}
}

func press(c *reactive.Cell[bool]) {
	c.Set(true)
	c.Set(false)
}

func (h *harness) toggleCombat(t *testing.T, want bool) {
	t.Helper()
	press(h.in.Defend)
	if got := h.store.CombatMode.Value(); got != want {
		t.Fatalf("expected combat mode %v, got %v", want, got)
	}
}

func TestInitializeFailuresLeaveControllersInert(t *testing.T) {
	store := actor.NewStore()
	settings := actor.DefaultSettings()
	bad := actor.DefaultSettings()
	bad.ComboWindow = 0
	clock := &actor.Clock{}

	cases := []struct {
		name string
		c    actor.Controller
		want error
	}{
		{"movement_without_settings", NewMovement(Deps{Store: store, View: &fakeView{}, Clock: clock}), actor.ErrMissingSettings},
		{"movement_without_view", NewMovement(Deps{Store: store, Settings: &settings, Clock: clock}), actor.ErrMissingView},
		{"combat_without_store", NewCombat(Deps{Settings: &settings, Clock: clock}), actor.ErrMissingStore},
		{"combat_invalid_settings", NewCombat(Deps{Store: store, Settings: &bad, Clock: clock}), actor.ErrInvalidSettings},
		{"bridge_without_animator", NewAnimationBridge(Deps{Store: store}, BridgeHooks{}, DefaultBridgeNodes()), actor.ErrMissingAnimator},
		{"bridge_without_graphs", NewAnimationBridge(Deps{Store: store, Animator: anim.NewAnimator(nil)}, BridgeHooks{}, DefaultBridgeNodes()), actor.ErrMissingGraph},
		{"equipment_without_props", NewEquipment(Deps{Equipment: actor.NewEquipmentState()}), ErrMissingProps},
		{"events_without_source", NewAnimationEvents(Deps{Equipment: actor.NewEquipmentState()}, nil), actor.ErrMissingAnimator},
		{"events_without_equipment", NewAnimationEvents(Deps{Events: tokenStream{reactive.NewSubject[string]()}}, nil), ErrMissingEquipment},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.c.Initialize()
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
			if c.c.IsActive() {
				t.Fatalf("expected %s to stay inactive", c.c.Name())
			}
			c.c.Update(0.016)
			c.c.Release()
		})
	}

	if got := store.MovementState.Value(); got != actor.MovementIdle {
		t.Fatalf("expected inert controllers to leave the store alone, got %v", got)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	h := newHarness(t, &fakeView{grounded: true})
	h.release()
	h.release()
	for _, c := range h.controllers() {
		if c.IsActive() {
			t.Fatalf("expected %s inactive after release", c.Name())
		}
	}
}

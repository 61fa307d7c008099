package system

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/milk9111/actorkit/actor"
	"github.com/milk9111/actorkit/anim"
	"github.com/milk9111/actorkit/reactive"
)

// Canonical parameter keys the bridge drives.
const (
	ParamWalking    = "walking"
	ParamRunning    = "running"
	ParamJump       = "jump"
	ParamAttack     = "attack"
	ParamComboIndex = "comboIndex"
	ParamInCombat   = "inCombat"
	ParamSaveSword  = "saveSword"
)

// BridgeNodes names the graph nodes whose enter/exit callbacks the bridge
// reacts to.
type BridgeNodes struct {
	Jump   []string
	Attack []string
	Equip  []string
}

func DefaultBridgeNodes() BridgeNodes {
	return BridgeNodes{
		Jump:   []string{"Normal.Jump", "SwordAndShield.Jump"},
		Attack: []string{"SwordAndShield.Attack"},
		Equip:  []string{"SwordAndShield.GetSword"},
	}
}

// BridgeHooks route timeline callbacks back to the subsystems that own the
// affected state.
type BridgeHooks struct {
	JumpStarted func()
	JumpEnded   func()
	AttackEnded func()
}

// AnimationBridge mirrors store changes into animation parameters and swaps
// the active graph when combat mode toggles.
type AnimationBridge struct {
	deps   Deps
	log    *slog.Logger
	active bool
	subs   reactive.Bag
	// timeline holds the enter/exit subscriptions of the current graph.
	timeline reactive.Bag

	hooks BridgeHooks
	nodes BridgeNodes
	keys  *anim.KeyTable
	swaps int
}

func NewAnimationBridge(d Deps, hooks BridgeHooks, nodes BridgeNodes) *AnimationBridge {
	return &AnimationBridge{
		deps:  d,
		log:   componentLogger(d.Logger, "animation"),
		hooks: hooks,
		nodes: nodes,
	}
}

func (b *AnimationBridge) Name() string   { return "animation" }
func (b *AnimationBridge) IsActive() bool { return b.active }

func (b *AnimationBridge) Initialize() error {
	if b.active {
		return nil
	}
	d := b.deps
	switch {
	case d.Store == nil:
		return b.fail(actor.ErrMissingStore)
	case d.Animator == nil:
		return b.fail(actor.ErrMissingAnimator)
	case d.Normal == nil || d.Combat == nil:
		return b.fail(actor.ErrMissingGraph)
	}
	b.keys = d.Keys
	if b.keys == nil {
		b.keys = anim.NewKeyTable(d.Normal, d.Combat)
	}

	d.Animator.SetGraph(b.graphFor(d.Store.CombatMode.Value()))
	b.subscribeTimeline()
	b.active = true

	b.subs.Add(d.Store.MovementState.SubscribeNow(b.onMovementState))
	b.subs.Add(d.Store.CombatMode.Subscribe(b.swap))
	b.subs.Add(d.Store.CombatState.SubscribeNow(b.onCombatState))
	b.subs.Add(d.Store.ComboState.Subscribe(b.onComboState))
	return nil
}

func (b *AnimationBridge) fail(err error) error {
	err = fmt.Errorf("system: animation bridge: %w", err)
	b.log.Error("initialize failed", "err", err)
	return err
}

func (b *AnimationBridge) graphFor(inCombat bool) *anim.Graph {
	if inCombat {
		return b.deps.Combat
	}
	return b.deps.Normal
}

// Swaps counts graph swaps since Initialize.
func (b *AnimationBridge) Swaps() int { return b.swaps }

// swap replaces the active graph and carries every shared parameter over.
func (b *AnimationBridge) swap(inCombat bool) {
	if !b.active {
		return
	}
	a := b.deps.Animator
	target := b.graphFor(inCombat)
	if a.Graph() == target {
		return
	}

	snap := anim.Capture(a, b.keys)
	a.SetGraph(target)
	restored := snap.Restore(a, b.keys)
	b.subscribeTimeline()
	b.swaps++
	b.log.Debug("graph swapped", "graph", target.ID, "captured", snap.Len(), "restored", restored)

	if !inCombat {
		b.setTrigger(ParamSaveSword)
	}
}

func (b *AnimationBridge) subscribeTimeline() {
	b.timeline.Clear()
	b.timeline.Add(b.deps.Animator.OnStateEnter(b.onStateEnter))
	b.timeline.Add(b.deps.Animator.OnStateExit(b.onStateExit))
}

func (b *AnimationBridge) onStateEnter(node string) {
	if !b.active {
		return
	}
	if slices.Contains(b.nodes.Jump, node) && b.hooks.JumpStarted != nil {
		b.hooks.JumpStarted()
	}
}

func (b *AnimationBridge) onStateExit(node string) {
	if !b.active {
		return
	}
	switch {
	case slices.Contains(b.nodes.Jump, node):
		if b.hooks.JumpEnded != nil {
			b.hooks.JumpEnded()
		}
	case slices.Contains(b.nodes.Attack, node):
		if b.hooks.AttackEnded != nil {
			b.hooks.AttackEnded()
		}
	case slices.Contains(b.nodes.Equip, node):
		b.setBool(ParamInCombat, b.deps.Store.CombatMode.Value())
	}
}

func (b *AnimationBridge) onMovementState(s actor.MovementState) {
	b.setBool(ParamWalking, false)
	b.setBool(ParamRunning, false)
	b.setBool(ParamJump, false)
	switch s {
	case actor.MovementWalking:
		b.setBool(ParamWalking, true)
	case actor.MovementRunning:
		b.setBool(ParamRunning, true)
	case actor.MovementJumping:
		b.setBool(ParamJump, true)
	}
}

func (b *AnimationBridge) onCombatState(s actor.CombatState) {
	switch s {
	case actor.CombatNone:
		b.setBool(ParamInCombat, false)
	case actor.CombatNormal:
		b.setBool(ParamInCombat, true)
	}
}

func (b *AnimationBridge) onComboState(s actor.ComboState) {
	if s == actor.ComboNone {
		return
	}
	b.setTrigger(ParamAttack)
	b.setInt(ParamComboIndex, int(s))
}

// param resolves a canonical key to the active graph's parameter name.
func (b *AnimationBridge) param(key string) (string, bool) {
	if !b.active {
		return "", false
	}
	return b.keys.Name(b.deps.Animator.GraphID(), key)
}

func (b *AnimationBridge) setBool(key string, v bool) {
	if name, ok := b.param(key); ok {
		b.deps.Animator.SetBool(name, v)
	}
}

func (b *AnimationBridge) setInt(key string, v int) {
	if name, ok := b.param(key); ok {
		b.deps.Animator.SetInt(name, v)
	}
}

func (b *AnimationBridge) setTrigger(key string) {
	if name, ok := b.param(key); ok {
		b.deps.Animator.SetTrigger(name)
	}
}

func (b *AnimationBridge) Update(dt float64) {}

func (b *AnimationBridge) Release() {
	if !b.active {
		return
	}
	b.active = false
	b.subs.Dispose()
	b.timeline.Dispose()
}

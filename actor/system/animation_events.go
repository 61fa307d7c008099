package system

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/milk9111/actorkit/actor"
	"github.com/milk9111/actorkit/reactive"
)

// AnimationEvents routes timeline tokens. "Equipment.<Action><Kind>" tokens
// update the equipment state; any other "id.point" token re-parents a prop.
type AnimationEvents struct {
	deps     Deps
	log      *slog.Logger
	active   bool
	subs     reactive.Bag
	reparent func(id, point string)
}

func NewAnimationEvents(d Deps, reparent func(id, point string)) *AnimationEvents {
	return &AnimationEvents{deps: d, log: componentLogger(d.Logger, "animation-events"), reparent: reparent}
}

func (r *AnimationEvents) Name() string   { return "animation-events" }
func (r *AnimationEvents) IsActive() bool { return r.active }

func (r *AnimationEvents) Initialize() error {
	if r.active {
		return nil
	}
	var err error
	switch {
	case r.deps.Events == nil:
		err = actor.ErrMissingAnimator
	case r.deps.Equipment == nil:
		err = ErrMissingEquipment
	}
	if err != nil {
		err = fmt.Errorf("system: animation events: %w", err)
		r.log.Error("initialize failed", "err", err)
		return err
	}
	r.active = true
	r.subs.Add(r.deps.Events.OnEvent(r.onToken))
	return nil
}

func (r *AnimationEvents) onToken(token string) {
	if !r.active {
		return
	}
	if change, ok := actor.ParseEquipmentToken(token); ok {
		r.deps.Equipment.SetMany(change)
		return
	}
	id, point, ok := strings.Cut(token, ".")
	if !ok || id == "" || point == "" || id == actor.EquipmentTokenPrefix {
		r.log.Debug("token ignored", "token", token)
		return
	}
	if r.reparent != nil {
		r.reparent(id, point)
	}
}

func (r *AnimationEvents) Update(dt float64) {}

func (r *AnimationEvents) Release() {
	if !r.active {
		return
	}
	r.active = false
	r.subs.Dispose()
}

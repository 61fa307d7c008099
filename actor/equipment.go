package actor

import (
	"strings"

	"github.com/milk9111/actorkit/reactive"
)

// EquipmentKind identifies an equipment piece.
type EquipmentKind int

const (
	EquipmentSword EquipmentKind = iota
	EquipmentShield
)

// EquipmentKinds lists every kind in declaration order.
var EquipmentKinds = []EquipmentKind{EquipmentSword, EquipmentShield}

func (k EquipmentKind) String() string {
	switch k {
	case EquipmentSword:
		return "Sword"
	case EquipmentShield:
		return "Shield"
	default:
		return "Unknown"
	}
}

// EquipmentAction is the last presentation request for a kind.
type EquipmentAction int

const (
	EquipmentActionNone EquipmentAction = iota
	EquipmentActive
	EquipmentDeactive
)

func (a EquipmentAction) String() string {
	switch a {
	case EquipmentActive:
		return "Active"
	case EquipmentDeactive:
		return "Deactive"
	default:
		return "None"
	}
}

// EquipmentChange is one entry of a published change batch.
type EquipmentChange struct {
	Kind   EquipmentKind
	Action EquipmentAction
}

// ParseEquipmentCommand parses the value half of an "Equipment.<value>" token.
// Both "ActiveSword" and "SwordActive" orders are accepted.
func ParseEquipmentCommand(value string) (EquipmentChange, bool) {
	for _, action := range []EquipmentAction{EquipmentActive, EquipmentDeactive} {
		for _, kind := range EquipmentKinds {
			if value == action.String()+kind.String() || value == kind.String()+action.String() {
				return EquipmentChange{Kind: kind, Action: action}, true
			}
		}
	}
	return EquipmentChange{}, false
}

// EquipmentTokenPrefix is the key half of equipment timeline tokens.
const EquipmentTokenPrefix = "Equipment"

// ParseEquipmentToken parses a full "Equipment.<Action><Kind>" token.
func ParseEquipmentToken(token string) (EquipmentChange, bool) {
	key, value, ok := strings.Cut(token, ".")
	if !ok || key != EquipmentTokenPrefix {
		return EquipmentChange{}, false
	}
	return ParseEquipmentCommand(value)
}

// EquipmentState stores the last action per kind and publishes change batches.
type EquipmentState struct {
	states  map[EquipmentKind]*reactive.Cell[EquipmentAction]
	changes *reactive.Subject[[]EquipmentChange]
}

func NewEquipmentState() *EquipmentState {
	states := make(map[EquipmentKind]*reactive.Cell[EquipmentAction], len(EquipmentKinds))
	for _, k := range EquipmentKinds {
		states[k] = reactive.NewCell(EquipmentActionNone)
	}
	return &EquipmentState{
		states:  states,
		changes: reactive.NewSubject[[]EquipmentChange](),
	}
}

// Set records one change and publishes it as a single-entry batch.
func (e *EquipmentState) Set(kind EquipmentKind, action EquipmentAction) {
	e.SetMany(EquipmentChange{Kind: kind, Action: action})
}

// SetMany records several changes and publishes them together. Unknown kinds
// are skipped; nothing is published if no change applies.
func (e *EquipmentState) SetMany(changes ...EquipmentChange) {
	applied := make([]EquipmentChange, 0, len(changes))
	for _, c := range changes {
		cell, ok := e.states[c.Kind]
		if !ok {
			continue
		}
		cell.Force(c.Action)
		applied = append(applied, c)
	}
	if len(applied) > 0 {
		e.changes.Publish(applied)
	}
}

// Get returns the last action for kind.
func (e *EquipmentState) Get(kind EquipmentKind) EquipmentAction {
	if cell, ok := e.states[kind]; ok {
		return cell.Value()
	}
	return EquipmentActionNone
}

// OnChanged subscribes to change batches.
func (e *EquipmentState) OnChanged(fn func([]EquipmentChange)) *reactive.Subscription {
	return e.changes.Subscribe(fn)
}

func (e *EquipmentState) Dispose() {
	for _, cell := range e.states {
		cell.Dispose()
	}
	e.changes.Dispose()
}

// EquipmentSlots names the held and stowed prop ids of one kind.
type EquipmentSlots struct {
	Held   string
	Stowed string
}

// DefaultEquipmentSlots is the sword-and-shield layout.
func DefaultEquipmentSlots() map[EquipmentKind]EquipmentSlots {
	return map[EquipmentKind]EquipmentSlots{
		EquipmentSword:  {Held: "SwordHand", Stowed: "SwordBack"},
		EquipmentShield: {Held: "ShieldHand", Stowed: "ShieldBack"},
	}
}

// ParseEquipmentKind maps "Sword" or "Shield" (any case) to its kind.
func ParseEquipmentKind(name string) (EquipmentKind, bool) {
	for _, k := range EquipmentKinds {
		if strings.EqualFold(k.String(), name) {
			return k, true
		}
	}
	return EquipmentSword, false
}

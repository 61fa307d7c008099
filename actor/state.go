package actor

// MovementState is the derived locomotion state of an actor.
type MovementState int

const (
	MovementIdle MovementState = iota
	MovementWalking
	MovementRunning
	MovementJumping
	MovementFalling
	MovementLanding
)

func (s MovementState) String() string {
	switch s {
	case MovementIdle:
		return "idle"
	case MovementWalking:
		return "walking"
	case MovementRunning:
		return "running"
	case MovementJumping:
		return "jumping"
	case MovementFalling:
		return "falling"
	case MovementLanding:
		return "landing"
	default:
		return "unknown"
	}
}

// CombatState is the actor's combat posture. CombatNone means out of combat,
// CombatNormal is the combat-ready idle.
type CombatState int

const (
	CombatNone CombatState = iota
	CombatNormal
	CombatDefending
	CombatAttacking
)

func (s CombatState) String() string {
	switch s {
	case CombatNone:
		return "none"
	case CombatNormal:
		return "normal"
	case CombatDefending:
		return "defending"
	case CombatAttacking:
		return "attacking"
	default:
		return "unknown"
	}
}

// ComboState is the position in the attack chain. The numeric value is what
// the animation graph receives as its combo index.
type ComboState int

const (
	ComboNone ComboState = iota
	Combo1
	Combo2
	Combo3
	ComboFinisher
)

func (s ComboState) String() string {
	switch s {
	case ComboNone:
		return "none"
	case Combo1:
		return "combo1"
	case Combo2:
		return "combo2"
	case Combo3:
		return "combo3"
	case ComboFinisher:
		return "finisher"
	default:
		return "unknown"
	}
}

// ParseComboState maps a String() name back to its value.
func ParseComboState(name string) (ComboState, bool) {
	for s := ComboNone; s <= ComboFinisher; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return ComboNone, false
}

// Next returns the following chain step, holding at the finisher.
func (s ComboState) Next() ComboState {
	if s >= ComboFinisher {
		return ComboFinisher
	}
	return s + 1
}

// DefaultCombatState is the resting combat state for a combat-mode flag.
func DefaultCombatState(inCombat bool) CombatState {
	if inCombat {
		return CombatNormal
	}
	return CombatNone
}

package actor

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/actorkit/reactive"
)

// Store is the single source of truth for an actor's gameplay state.
//
// Each cell has exactly one writer: movement owns MovementState, Position,
// Grounded and Movement; combat owns CombatState, ComboState and CombatMode.
// Any subsystem may read or subscribe.
type Store struct {
	MovementState *reactive.Cell[MovementState]
	CombatState   *reactive.Cell[CombatState]
	ComboState    *reactive.Cell[ComboState]
	CombatMode    *reactive.Cell[bool]
	Position      *reactive.Cell[mgl64.Vec3]
	Grounded      *reactive.Cell[bool]
	Movement      *reactive.Cell[mgl64.Vec3]

	disposed bool
}

// NewStore creates a store in the idle, out-of-combat state.
func NewStore() *Store {
	return &Store{
		MovementState: reactive.NewCell(MovementIdle),
		CombatState:   reactive.NewCell(CombatNone),
		ComboState:    reactive.NewCell(ComboNone),
		CombatMode:    reactive.NewCell(false),
		Position:      reactive.NewCell(mgl64.Vec3{}),
		Grounded:      reactive.NewCell(false),
		Movement:      reactive.NewCell(mgl64.Vec3{}),
	}
}

// Dispose releases every cell and its subscribers.
func (s *Store) Dispose() {
	if s == nil || s.disposed {
		return
	}
	s.MovementState.Dispose()
	s.CombatState.Dispose()
	s.ComboState.Dispose()
	s.CombatMode.Dispose()
	s.Position.Dispose()
	s.Grounded.Dispose()
	s.Movement.Dispose()
	s.disposed = true
}

// Disposed reports whether the store has been released.
func (s *Store) Disposed() bool {
	return s == nil || s.disposed
}

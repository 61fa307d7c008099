package actor

import (
	"math"

	"github.com/milk9111/actorkit/reactive"
)

// Status tracks health and stamina, each clamped to [0, max].
type Status struct {
	Health     *reactive.Cell[float64]
	Stamina    *reactive.Cell[float64]
	Invincible *reactive.Cell[bool]

	maxHealth  float64
	maxStamina float64
}

// NewStatus starts both pools full.
func NewStatus(maxHealth, maxStamina float64) *Status {
	if maxHealth <= 0 {
		maxHealth = 100
	}
	if maxStamina <= 0 {
		maxStamina = 100
	}
	return &Status{
		Health:     reactive.NewCell(maxHealth),
		Stamina:    reactive.NewCell(maxStamina),
		Invincible: reactive.NewCell(false),
		maxHealth:  maxHealth,
		maxStamina: maxStamina,
	}
}

// TakeDamage lowers health unless the actor is invincible.
func (s *Status) TakeDamage(amount float64) {
	if s.Invincible.Value() || amount <= 0 {
		return
	}
	s.Health.Set(math.Max(0, s.Health.Value()-amount))
}

func (s *Status) Heal(amount float64) {
	if amount <= 0 {
		return
	}
	s.Health.Set(math.Min(s.maxHealth, s.Health.Value()+amount))
}

func (s *Status) UseStamina(amount float64) {
	if amount <= 0 {
		return
	}
	s.Stamina.Set(math.Max(0, s.Stamina.Value()-amount))
}

func (s *Status) RestoreStamina(amount float64) {
	if amount <= 0 {
		return
	}
	s.Stamina.Set(math.Min(s.maxStamina, s.Stamina.Value()+amount))
}

// SetMax changes the pool sizes, clamping current values into the new range.
// Non-positive sizes keep the current one.
func (s *Status) SetMax(maxHealth, maxStamina float64) {
	if maxHealth > 0 {
		s.maxHealth = maxHealth
		s.Health.Set(math.Min(s.maxHealth, s.Health.Value()))
	}
	if maxStamina > 0 {
		s.maxStamina = maxStamina
		s.Stamina.Set(math.Min(s.maxStamina, s.Stamina.Value()))
	}
}

func (s *Status) MaxHealth() float64  { return s.maxHealth }
func (s *Status) MaxStamina() float64 { return s.maxStamina }

func (s *Status) SetInvincible(v bool) {
	s.Invincible.Set(v)
}

// Dead reports whether health has reached zero.
func (s *Status) Dead() bool {
	return s.Health.Value() <= 0
}

func (s *Status) Dispose() {
	s.Health.Dispose()
	s.Stamina.Dispose()
	s.Invincible.Dispose()
}

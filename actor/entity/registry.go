package entity

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
)

// Registry keeps spawned actors by id and ticks them in spawn order.
type Registry struct {
	base     *slog.Logger
	log      *slog.Logger
	entities map[uuid.UUID]*Entity
	order    []uuid.UUID
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		base:     logger,
		log:      logger.With("component", "registry"),
		entities: map[uuid.UUID]*Entity{},
	}
}

// Spawn builds an actor and registers it under a fresh id.
func (r *Registry) Spawn(d Deps) (uuid.UUID, *Entity, error) {
	if d.Logger == nil {
		d.Logger = r.base
	}
	id := uuid.New()
	d.Logger = d.Logger.With("id", id.String())
	e, err := New(d)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("entity: spawn: %w", err)
	}
	r.entities[id] = e
	r.order = append(r.order, id)
	r.log.Info("spawned", "id", id, "kind", d.Kind, "err", e.Err())
	return id, e, nil
}

func (r *Registry) Get(id uuid.UUID) (*Entity, bool) {
	e, ok := r.entities[id]
	return e, ok
}

func (r *Registry) Len() int { return len(r.order) }

// IDs returns the live ids in spawn order.
func (r *Registry) IDs() []uuid.UUID {
	return slices.Clone(r.order)
}

func (r *Registry) Update(dt float64) {
	for _, id := range r.order {
		r.entities[id].Update(dt)
	}
}

func (r *Registry) FixedUpdate(dt float64) {
	for _, id := range r.order {
		r.entities[id].FixedUpdate(dt)
	}
}

// Release tears one actor down and forgets it.
func (r *Registry) Release(id uuid.UUID) bool {
	e, ok := r.entities[id]
	if !ok {
		return false
	}
	e.Release()
	delete(r.entities, id)
	r.order = slices.DeleteFunc(r.order, func(v uuid.UUID) bool { return v == id })
	r.log.Info("released", "id", id)
	return true
}

// ReleaseAll releases every actor, newest first.
func (r *Registry) ReleaseAll() {
	for i := len(r.order) - 1; i >= 0; i-- {
		r.entities[r.order[i]].Release()
	}
	clear(r.entities)
	r.order = nil
}

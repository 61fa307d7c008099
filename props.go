package main

import (
	"image/color"
	"slices"
	"sort"

	"github.com/milk9111/actorkit/prefabs"
	"golang.org/x/image/colornames"
)

type prop struct {
	point   string
	visible bool
	color   color.Color
}

// PropSet is the demo's stand-in for the equipment meshes: named coloured
// boxes attached to points on the character.
type PropSet struct {
	props  map[string]*prop
	points []string
}

func NewPropSet(spec *prefabs.EquipmentSpec) *PropSet {
	s := &PropSet{props: map[string]*prop{}}
	if spec == nil {
		return s
	}
	s.points = slices.Clone(spec.Points)
	for id, p := range spec.Props {
		c := p.Color.Color
		if c == nil {
			c = colornames.Silver
		}
		s.props[id] = &prop{point: p.Point, visible: p.Visible, color: c}
	}
	return s
}

func (s *PropSet) SetVisible(id string, visible bool) bool {
	p, ok := s.props[id]
	if !ok {
		return false
	}
	p.visible = visible
	return true
}

func (s *PropSet) Attach(id, point string) bool {
	p, ok := s.props[id]
	if !ok || !slices.Contains(s.points, point) {
		return false
	}
	p.point = point
	return true
}

// Visible lists the shown props by id.
func (s *PropSet) Visible() []string {
	var ids []string
	for id, p := range s.props {
		if p.visible {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Point returns where id is attached.
func (s *PropSet) Point(id string) (string, bool) {
	p, ok := s.props[id]
	if !ok {
		return "", false
	}
	return p.point, true
}

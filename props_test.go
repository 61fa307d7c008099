package main

import (
	"slices"
	"testing"

	"github.com/milk9111/actorkit/prefabs"
)

func TestPropSet(t *testing.T) {
	spec, err := prefabs.LoadEquipmentSpec("")
	if err != nil {
		t.Fatalf("load equipment: %v", err)
	}
	s := NewPropSet(spec)

	if got := s.Visible(); !slices.Equal(got, []string{"ShieldBack", "SwordBack"}) {
		t.Fatalf("expected stowed props visible, got %v", got)
	}
	if !s.SetVisible("SwordHand", true) || s.SetVisible("Axe", true) {
		t.Fatalf("expected only known props to change")
	}
	if !s.Attach("SwordHand", "LeftHand") {
		t.Fatalf("expected attach to a known point")
	}
	if s.Attach("SwordHand", "Tail") {
		t.Fatalf("expected attach to an unknown point to fail")
	}
	if got, _ := s.Point("SwordHand"); got != "LeftHand" {
		t.Fatalf("expected SwordHand on LeftHand, got %q", got)
	}
}

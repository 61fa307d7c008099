// Package anim holds animation graph definitions, the parameter mapping table
// used to carry values across a graph swap, and an in-memory animator runtime.
package anim

import (
	"errors"
	"fmt"
)

// Kind is the type of an animation parameter.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindTrigger
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindTrigger:
		return "trigger"
	default:
		return "unknown"
	}
}

// ParseKind maps a String() name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k := KindBool; k <= KindTrigger; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return KindBool, false
}

// Value is a parameter value; only the field matching the kind is meaningful.
type Value struct {
	Bool  bool
	Int   int
	Float float64
}

// Param declares a parameter of a graph. Canonical is the graph-independent
// identity; it defaults to Name.
type Param struct {
	Name      string
	Kind      Kind
	Canonical string
	Default   Value
}

// Key returns the canonical identity.
func (p Param) Key() string {
	if p.Canonical != "" {
		return p.Canonical
	}
	return p.Name
}

// TimelineEvent fires Token when a node's local time crosses At seconds.
type TimelineEvent struct {
	At    float64
	Token string
}

// Node is one state of a graph. Duration 0 means the node never finishes on
// its own.
type Node struct {
	Name     string
	Duration float64
	Loop     bool
	Events   []TimelineEvent
}

// Op is a condition operator.
type Op int

const (
	OpIf Op = iota
	OpIfNot
	OpEquals
	OpNotEqual
	OpGreater
	OpLess
)

// Condition guards a transition on a parameter value.
type Condition struct {
	Param string
	Op    Op
	Value float64
}

// AnyState as a transition source matches every node.
const AnyState = "*"

// Transition moves the animator from one node to another. With ExitTime set
// the source node must have finished first.
type Transition struct {
	From       string
	To         string
	Conditions []Condition
	ExitTime   bool
}

// Graph is an authored animation graph.
type Graph struct {
	ID          string
	Entry       string
	Layers      int
	Params      []Param
	Nodes       []Node
	Transitions []Transition

	params map[string]int
	nodes  map[string]int
}

var (
	ErrEmptyGraph      = errors.New("anim: graph has no nodes")
	ErrUnknownNode     = errors.New("anim: unknown node")
	ErrUnknownParam    = errors.New("anim: unknown parameter")
	ErrDuplicateParam  = errors.New("anim: duplicate parameter")
	ErrDuplicateNode   = errors.New("anim: duplicate node")
	ErrDuplicateCanon  = errors.New("anim: duplicate canonical key")
	ErrGraphIDRequired = errors.New("anim: graph id is required")
)

// Compile validates the graph and builds its lookup indexes.
func (g *Graph) Compile() error {
	if g.ID == "" {
		return ErrGraphIDRequired
	}
	if len(g.Nodes) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyGraph, g.ID)
	}
	g.params = make(map[string]int, len(g.Params))
	canon := make(map[string]bool, len(g.Params))
	for i, p := range g.Params {
		if _, ok := g.params[p.Name]; ok {
			return fmt.Errorf("%w: %s.%s", ErrDuplicateParam, g.ID, p.Name)
		}
		if canon[p.Key()] {
			return fmt.Errorf("%w: %s.%s", ErrDuplicateCanon, g.ID, p.Key())
		}
		g.params[p.Name] = i
		canon[p.Key()] = true
	}
	g.nodes = make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		if _, ok := g.nodes[n.Name]; ok {
			return fmt.Errorf("%w: %s.%s", ErrDuplicateNode, g.ID, n.Name)
		}
		g.nodes[n.Name] = i
	}
	if g.Entry == "" {
		g.Entry = g.Nodes[0].Name
	}
	if _, ok := g.nodes[g.Entry]; !ok {
		return fmt.Errorf("%w: entry %s in %s", ErrUnknownNode, g.Entry, g.ID)
	}
	for _, t := range g.Transitions {
		if t.From != AnyState {
			if _, ok := g.nodes[t.From]; !ok {
				return fmt.Errorf("%w: %s in %s", ErrUnknownNode, t.From, g.ID)
			}
		}
		if _, ok := g.nodes[t.To]; !ok {
			return fmt.Errorf("%w: %s in %s", ErrUnknownNode, t.To, g.ID)
		}
		for _, c := range t.Conditions {
			if _, ok := g.params[c.Param]; !ok {
				return fmt.Errorf("%w: %s in %s", ErrUnknownParam, c.Param, g.ID)
			}
		}
	}
	if g.Layers < 1 {
		g.Layers = 1
	}
	return nil
}

// Param looks up a parameter by name.
func (g *Graph) Param(name string) (Param, bool) {
	if g == nil {
		return Param{}, false
	}
	if g.params == nil {
		for _, p := range g.Params {
			if p.Name == name {
				return p, true
			}
		}
		return Param{}, false
	}
	i, ok := g.params[name]
	if !ok {
		return Param{}, false
	}
	return g.Params[i], true
}

// Node looks up a node by name.
func (g *Graph) Node(name string) (Node, bool) {
	if g == nil {
		return Node{}, false
	}
	if g.nodes == nil {
		for _, n := range g.Nodes {
			if n.Name == name {
				return n, true
			}
		}
		return Node{}, false
	}
	i, ok := g.nodes[name]
	if !ok {
		return Node{}, false
	}
	return g.Nodes[i], true
}

package boss

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// Phase is a health-driven behavior profile. Phases only ever increase.
type Phase int

const (
	Phase1 Phase = iota + 1
	Phase2
	Phase3
)

func (p Phase) String() string {
	switch p {
	case Phase1:
		return "phase1"
	case Phase2:
		return "phase2"
	case Phase3:
		return "phase3"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// CombatState is the discrete phase-1 state. The values double as the
// combat FSM's state names.
type CombatState string

const (
	StateIdle   CombatState = "idle"
	StateChase  CombatState = "chase"
	StateAttack CombatState = "attack"
	StateHurt   CombatState = "hurt"
	StateDead   CombatState = "dead"
)

// Vec3 is a world position. X/Z span the ground plane, Y is height.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Ground projects v onto the ground plane (X→X, Z→Y).
func (v Vec3) Ground() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

// WithGround replaces the ground-plane coordinates of v, keeping its height.
func (v Vec3) WithGround(g cp.Vector) Vec3 {
	v.X = g.X
	v.Z = g.Y
	return v
}

func (v Vec3) Distance(o Vec3) float64 {
	return math.Sqrt((v.X-o.X)*(v.X-o.X) + (v.Y-o.Y)*(v.Y-o.Y) + (v.Z-o.Z)*(v.Z-o.Z))
}

type Health struct {
	Current int
	Max     int
}

// Ratio is Current/Max clamped to [0, 1].
func (h Health) Ratio() float64 {
	if h.Max <= 0 {
		return 0
	}
	r := float64(h.Current) / float64(h.Max)
	return math.Max(0, math.Min(1, r))
}

// Actor is the boss entity state the controller mutates each tick.
type Actor struct {
	Health   Health
	Phase    Phase
	State    CombatState
	Position Vec3
	// Facing is a unit vector on the ground plane.
	Facing        cp.Vector
	Stunned       bool
	StunRemaining float64
}

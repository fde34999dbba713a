package boss

import (
	"math"

	"github.com/jakecoffman/cp"
)

type MoveMode int

const (
	MoveApproach MoveMode = iota
	MoveRetreat
)

// MovementPolicy turns a mode and speed into a ground-plane step, clamps the
// result to the arena and sidesteps blocking geometry.
type MovementPolicy struct {
	arena       Arena
	probe       ObstacleProbe
	probeLength float64
	avoid       cp.Vector
}

func NewMovementPolicy(cfg Config, probe ObstacleProbe) *MovementPolicy {
	return &MovementPolicy{
		arena:       cfg.Arena,
		probe:       probe,
		probeLength: cfg.ProbeLength,
		avoid:       cp.ForAngle(cfg.AvoidAngleDeg * math.Pi / 180),
	}
}

// horizontalDirection is the normalized ground-plane direction from -> to.
func horizontalDirection(from, to Vec3) (cp.Vector, bool) {
	d := to.Ground().Sub(from.Ground())
	if d.Length() < 1e-9 {
		return cp.Vector{}, false
	}
	return d.Normalize(), true
}

// Face turns the actor toward target without tilting.
func (m *MovementPolicy) Face(a *Actor, target Vec3) {
	if dir, ok := horizontalDirection(a.Position, target); ok {
		a.Facing = dir
	}
}

// Step moves the actor toward (or away from) target at speed for dt seconds.
// When the forward probe hits something the facing is rotated by the avoid
// angle first and the step follows the new facing.
func (m *MovementPolicy) Step(a *Actor, target Vec3, mode MoveMode, speed, dt float64) {
	dir, ok := horizontalDirection(a.Position, target)
	if !ok {
		if mode == MoveApproach {
			return
		}
		dir = a.Facing.Neg()
	}
	if mode == MoveRetreat && ok {
		dir = dir.Neg()
	}
	if dir.Length() < 1e-9 {
		return
	}

	heading := dir
	if m.blocked(a.Position, dir) {
		heading = dir.Rotate(m.avoid)
	}
	a.Facing = heading
	m.Displace(a, heading.Mult(speed*dt))
}

// Displace moves the actor by delta on the ground plane and clamps it to the
// arena. Facing is untouched.
func (m *MovementPolicy) Displace(a *Actor, delta cp.Vector) {
	a.Position = m.arena.Clamp(a.Position.WithGround(a.Position.Ground().Add(delta)))
}

func (m *MovementPolicy) blocked(pos Vec3, dir cp.Vector) bool {
	if m.probe == nil || m.probeLength <= 0 {
		return false
	}
	return m.probe.Blocked(pos.Ground(), dir, m.probeLength)
}

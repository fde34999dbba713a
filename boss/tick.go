package boss

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"
)

// Tick advances the boss by dt seconds. In-flight sequences advance first and
// keep running without a target; timers and behavior only run while the
// target exists. A stunned boss takes no new action in any phase. Phase 3 is
// checked before phase 2 before phase 1, and only one of them runs.
func (c *Controller) Tick(dt float64) {
	if c == nil || c.destroyed || c.actor.State == StateDead || dt < 0 {
		return
	}

	c.lastTarget, c.hasTarget = c.targetPosition()

	c.melee.Advance(dt)
	c.ultimate.Advance(dt)
	c.advanceHitReaction(dt)

	if !c.hasTarget {
		if !c.warnedTarget {
			c.log.Warn("boss: no target, skipping behavior")
			c.warnedTarget = true
		}
		return
	}
	c.warnedTarget = false

	c.timers.Tick(dt)

	if c.actor.Stunned {
		return
	}

	distance := c.actor.Position.Distance(c.lastTarget)
	switch {
	case c.actor.Phase >= Phase3:
		c.tickPhase3(distance, dt)
	case c.actor.Phase == Phase2:
		c.tickPhase2(distance, dt)
	default:
		c.tickPhase1(distance, dt)
	}
}

func (c *Controller) targetPosition() (Vec3, bool) {
	if c.target == nil {
		return Vec3{}, false
	}
	return c.target.Position()
}

func (c *Controller) tickPhase1(distance, dt float64) {
	switch c.fsm.current() {
	case StateIdle:
		if distance < c.cfg.DetectionRadius {
			c.fsm.fire(eventDetect)
		}
	case StateChase:
		c.movement.Step(&c.actor, c.lastTarget, MoveApproach, c.cfg.MoveSpeed, dt)
		if distance <= c.cfg.AttackRange {
			c.fsm.fire(eventEngage)
		}
	case StateAttack:
		c.movement.Face(&c.actor, c.lastTarget)
		c.attemptMelee()
		if distance > c.cfg.AttackRange {
			c.fsm.fire(eventDisengage)
		}
	case StateHurt:
		if !c.actor.Stunned {
			c.fsm.fire(eventRecover)
		}
	}
}

func (c *Controller) tickPhase2(distance, dt float64) {
	if distance < c.cfg.DesiredRange {
		c.movement.Step(&c.actor, c.lastTarget, MoveRetreat, c.cfg.MoveSpeed*c.cfg.RetreatSpeedScale, dt)
	} else {
		c.movement.Face(&c.actor, c.lastTarget)
	}

	if c.timers.Ready(TimerRanged) {
		c.spawn(SpawnProjectile, c.aimAtTarget())
		c.timers.Reset(TimerRanged, c.cfg.RangedCooldown*c.cfg.Phase2RangedScale)
		c.log.Debug("boss: phase2 projectile fired")
	}
}

func (c *Controller) tickPhase3(distance, dt float64) {
	c.movement.Face(&c.actor, c.lastTarget)

	if !c.ultimate.InFlight() && c.timers.Ready(TimerUltimate) {
		variant := c.chooser.Choose(distance, c.actor.Health)
		c.ultimate.Start(variant)
		c.timers.Reset(TimerUltimate, c.cfg.UltimateCooldown)
		c.log.WithField("variant", c.ultimate.Variant()).Info("boss: ultimate triggered")
		return
	}
	if c.ultimate.InFlight() {
		return
	}

	if c.timers.Ready(TimerRanged) {
		aim := c.aimAtTarget()
		half := c.cfg.RapidFireSpreadDeg * math.Pi / 360
		c.spawn(SpawnProjectile, aim.Rotate(cp.ForAngle(-half)))
		c.spawn(SpawnProjectile, aim.Rotate(cp.ForAngle(half)))
		c.timers.Reset(TimerRanged, c.cfg.RangedCooldown*c.cfg.Phase3RangedScale)
		c.log.Debug("boss: phase3 rapid fire")
	}

	if distance < c.cfg.AttackRange+c.cfg.MeleeBuffer {
		c.attemptMelee()
	}

	if distance > c.cfg.ChaseThreshold {
		c.movement.Step(&c.actor, c.lastTarget, MoveApproach, c.cfg.MoveSpeed*c.cfg.AggressiveSpeedScale, dt)
	}
}

// attemptMelee starts a swing when none is in flight and the cooldown is
// ready. The cooldown restarts at trigger time.
func (c *Controller) attemptMelee() bool {
	if c.melee.InFlight() || !c.timers.Ready(TimerMelee) {
		return false
	}
	if !c.melee.Start() {
		return false
	}
	c.timers.Reset(TimerMelee, c.cfg.MeleeCooldown)
	c.log.Debug("boss: melee swing")
	return true
}

// aimAtTarget is the ground direction to the target, or the facing when the
// target sits directly above or below.
func (c *Controller) aimAtTarget() cp.Vector {
	if c.hasTarget {
		if dir, ok := horizontalDirection(c.actor.Position, c.lastTarget); ok {
			return dir
		}
	}
	return c.actor.Facing
}

func (c *Controller) spawn(kind SpawnKind, heading cp.Vector) {
	if c.spawner == nil {
		c.log.WithField("kind", kind).Warn("boss: no spawner bound, skipping spawn")
		return
	}
	origin := c.actor.Position
	pose := Pose{
		Position: Vec3{
			X: origin.X + heading.X*c.cfg.SpawnOffset,
			Y: origin.Y + c.cfg.SpawnHeight,
			Z: origin.Z + heading.Y*c.cfg.SpawnOffset,
		},
		Heading: heading,
	}
	if err := c.spawner.Spawn(kind, pose); err != nil {
		c.log.WithError(err).WithField("kind", kind).Warn("boss: spawn failed")
		return
	}
	c.log.WithFields(logrus.Fields{"kind": kind, "x": pose.Position.X, "z": pose.Position.Z}).Debug("boss: spawned")
}

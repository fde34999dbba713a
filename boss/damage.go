package boss

import "github.com/sirupsen/logrus"

// ApplyDamage is the only way boss health goes down. Observers see the new
// health first, then the phase is re-evaluated, then death is checked. A
// lethal hit skips the hit reaction. Calls on a dead boss, or with a
// non-positive amount, do nothing.
func (c *Controller) ApplyDamage(amount int) {
	if c == nil || c.destroyed || c.actor.State == StateDead || amount <= 0 {
		return
	}

	c.actor.Health.Current -= amount
	c.log.WithFields(logrus.Fields{"amount": amount, "hp": c.actor.Health.Current}).Info("boss: damaged")

	for _, fn := range c.healthObservers {
		fn(c.actor.Health.Current, c.actor.Health.Max)
	}

	c.promote()

	if c.actor.Health.Current <= 0 {
		c.die()
		return
	}
	c.beginHitReaction()
}

func (c *Controller) promote() {
	next := c.phases.Evaluate(c.actor.Health.Current, c.actor.Phase)
	if next == c.actor.Phase {
		return
	}
	prev := c.actor.Phase
	c.actor.Phase = next
	c.log.WithFields(logrus.Fields{"from": prev, "to": next}).Info("boss: phase promoted")
	for _, fn := range c.phaseObservers {
		fn(prev, next)
	}
}

func (c *Controller) die() {
	c.cancelSequences()
	c.actor.Stunned = false
	c.actor.StunRemaining = 0
	c.fsm.fire(eventDie)
	c.actor.State = StateDead
	c.log.Info("boss: died")

	if !c.levelNotified {
		c.levelNotified = true
		if c.levelFlow != nil {
			c.levelFlow.GoToNextLevel()
		} else {
			c.log.Warn("boss: no level flow bound, death not forwarded")
		}
	}
	c.destroyed = true
}

func (c *Controller) beginHitReaction() {
	c.actor.Stunned = true
	c.actor.StunRemaining = c.cfg.StunDuration
	c.fsm.fire(eventHurt)
}

// advanceHitReaction pushes the boss away from the target for the rest of the
// stun, then clears it and lets the phase-1 machine resume the chase.
func (c *Controller) advanceHitReaction(dt float64) {
	if !c.actor.Stunned {
		return
	}
	step := dt
	if step > c.actor.StunRemaining {
		step = c.actor.StunRemaining
	}
	if step > 0 && c.cfg.KnockbackForce > 0 {
		away := c.actor.Facing.Neg()
		if c.hasTarget {
			if dir, ok := horizontalDirection(c.lastTarget, c.actor.Position); ok {
				away = dir
			}
		}
		c.movement.Displace(&c.actor, away.Mult(c.cfg.KnockbackForce*step))
	}

	c.actor.StunRemaining -= dt
	if c.actor.StunRemaining > timeEpsilon {
		return
	}
	c.actor.StunRemaining = 0
	c.actor.Stunned = false
	c.fsm.fire(eventRecover)
}

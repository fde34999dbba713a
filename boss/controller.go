package boss

import (
	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"
)

// Controller drives one boss: it owns the actor state, timers and attack
// sequences and is advanced once per simulation tick. All methods are meant
// to be called from the simulation goroutine.
type Controller struct {
	cfg    Config
	actor  Actor
	timers *TimerBank
	phases PhasePolicy

	movement *MovementPolicy
	fsm      *combatFSM
	lease    *hitboxLease
	melee    *MeleeSequencer
	ultimate *UltimateSequence
	chooser  VariantChooser

	target    Target
	spawner   Spawner
	levelFlow LevelFlow
	probe     ObstacleProbe

	lastTarget Vec3
	hasTarget  bool

	healthObservers []func(current, max int)
	phaseObservers  []func(from, to Phase)
	stateObservers  []func(from, to CombatState)

	customChooser bool
	levelNotified bool
	destroyed     bool
	warnedTarget  bool

	log *logrus.Entry
}

type Option func(*Controller)

func WithTarget(t Target) Option { return func(c *Controller) { c.target = t } }

func WithHitbox(h Hitbox) Option { return func(c *Controller) { c.lease.hitbox = h } }

func WithWeapon(wp Weapon) Option { return func(c *Controller) { c.lease.weapon = wp } }

func WithSpawner(s Spawner) Option { return func(c *Controller) { c.spawner = s } }

func WithLevelFlow(l LevelFlow) Option { return func(c *Controller) { c.levelFlow = l } }

func WithObstacleProbe(p ObstacleProbe) Option { return func(c *Controller) { c.probe = p } }

func WithPosition(p Vec3) Option { return func(c *Controller) { c.actor.Position = p } }

func WithLogger(l *logrus.Entry) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithVariantChooser overrides the chooser built from Config.UltimateVariant.
func WithVariantChooser(v VariantChooser) Option {
	return func(c *Controller) {
		if v != nil {
			c.chooser = v
			c.customChooser = true
		}
	}
}

// New builds a controller at full health in phase 1, idle, facing +Z.
func New(cfg Config, opts ...Option) *Controller {
	c := &Controller{
		cfg: cfg,
		actor: Actor{
			Health: Health{Current: cfg.MaxHealth, Max: cfg.MaxHealth},
			Phase:  Phase1,
			State:  StateIdle,
			Facing: cp.Vector{X: 0, Y: 1},
		},
		timers: NewTimerBank(cfg),
		phases: NewPhasePolicy(cfg),
		lease:  &hitboxLease{},
		log:    logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.log = c.log.WithField("boss", cfg.Name)
	c.lease.log = c.log
	c.movement = NewMovementPolicy(c.cfg, c.probe)
	c.fsm = newCombatFSM(c.onStateEnter)
	c.melee = newMeleeSequencer(&c.cfg, c.lease)
	c.ultimate = newUltimateSequence(&c.cfg, c.lease, ultimateHooks{
		face: func() {
			if c.hasTarget {
				c.movement.Face(&c.actor, c.lastTarget)
			}
		},
		spawn: func(kind SpawnKind) { c.spawn(kind, c.actor.Facing) },
	})
	if c.chooser == nil {
		c.chooser = newVariantChooser(c.cfg, c.log)
	}
	c.actor.Position = c.cfg.Arena.Clamp(c.actor.Position)
	return c
}

// SetConfig swaps the tuning of a live boss. Health, phase, state, timers and
// in-flight sequences are kept; the phase is re-evaluated against the new
// thresholds but never lowered, and the position is clamped to the new arena.
func (c *Controller) SetConfig(cfg Config) {
	if c == nil {
		return
	}
	c.cfg = cfg
	c.phases = NewPhasePolicy(cfg)
	c.movement = NewMovementPolicy(c.cfg, c.probe)
	if !c.customChooser {
		c.chooser = newVariantChooser(c.cfg, c.log)
	}
	c.actor.Position = c.cfg.Arena.Clamp(c.actor.Position)
	c.promote()
	c.log.Info("boss: config reloaded")
}

func (c *Controller) SetTarget(t Target) {
	if c == nil {
		return
	}
	c.target = t
}

// OnHealthChanged registers fn to run after every damage application, before
// the phase check.
func (c *Controller) OnHealthChanged(fn func(current, max int)) {
	if c == nil || fn == nil {
		return
	}
	c.healthObservers = append(c.healthObservers, fn)
}

func (c *Controller) OnPhaseChanged(fn func(from, to Phase)) {
	if c == nil || fn == nil {
		return
	}
	c.phaseObservers = append(c.phaseObservers, fn)
}

// OnStateChanged registers fn for combat state transitions. fn must not call
// back into the controller.
func (c *Controller) OnStateChanged(fn func(from, to CombatState)) {
	if c == nil || fn == nil {
		return
	}
	c.stateObservers = append(c.stateObservers, fn)
}

func (c *Controller) Config() Config { return c.cfg }

func (c *Controller) Actor() Actor { return c.actor }

func (c *Controller) Phase() Phase { return c.actor.Phase }

func (c *Controller) State() CombatState { return c.actor.State }

func (c *Controller) Health() Health { return c.actor.Health }

func (c *Controller) Position() Vec3 { return c.actor.Position }

func (c *Controller) Facing() cp.Vector { return c.actor.Facing }

func (c *Controller) Stunned() bool { return c.actor.Stunned }

func (c *Controller) Dead() bool { return c.actor.State == StateDead }

// Destroyed reports whether the boss should be removed from the world.
func (c *Controller) Destroyed() bool { return c.destroyed }

func (c *Controller) Timers() *TimerBank { return c.timers }

func (c *Controller) MeleeStage() MeleeStage { return c.melee.Stage() }

func (c *Controller) UltimateStage() UltimateStage { return c.ultimate.Stage() }

func (c *Controller) MeleeInFlight() bool { return c.melee.InFlight() }

func (c *Controller) UltimateInFlight() bool { return c.ultimate.InFlight() }

// Destroy removes a live boss without a death (level unload, despawn). Any
// in-flight sequence is cancelled and the hitbox is forced off.
func (c *Controller) Destroy() {
	if c == nil || c.destroyed {
		return
	}
	c.cancelSequences()
	c.destroyed = true
	c.log.Debug("boss: destroyed")
}

func (c *Controller) cancelSequences() {
	c.melee.Cancel()
	c.ultimate.Cancel()
	c.lease.releaseAll()
}

func (c *Controller) onStateEnter(from, to CombatState) {
	c.actor.State = to
	c.log.WithFields(logrus.Fields{"from": from, "to": to}).Debug("boss: state change")
	for _, fn := range c.stateObservers {
		fn(from, to)
	}
}

// Snapshot is a read-only view of the controller for logs and diagnostics.
type Snapshot struct {
	Phase            Phase
	State            CombatState
	Health           Health
	Position         Vec3
	Stunned          bool
	MeleeStage       MeleeStage
	UltimateStage    UltimateStage
	UltimateVariant  Variant
	MeleeCooldown    float64
	RangedCooldown   float64
	UltimateCooldown float64
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Phase:            c.actor.Phase,
		State:            c.actor.State,
		Health:           c.actor.Health,
		Position:         c.actor.Position,
		Stunned:          c.actor.Stunned,
		MeleeStage:       c.melee.Stage(),
		UltimateStage:    c.ultimate.Stage(),
		UltimateVariant:  c.ultimate.Variant(),
		MeleeCooldown:    c.timers.Remaining(TimerMelee),
		RangedCooldown:   c.timers.Remaining(TimerRanged),
		UltimateCooldown: c.timers.Remaining(TimerUltimate),
	}
}

func (s Snapshot) Fields() logrus.Fields {
	return logrus.Fields{
		"phase":    s.Phase,
		"state":    s.State,
		"hp":       s.Health.Current,
		"x":        s.Position.X,
		"z":        s.Position.Z,
		"stunned":  s.Stunned,
		"melee":    s.MeleeStage,
		"ultimate": s.UltimateStage,
	}
}

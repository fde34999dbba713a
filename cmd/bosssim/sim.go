package main

import (
	"context"
	"fmt"
	"maps"
	"math"
	"time"

	"github.com/milk9111/bossarena/boss"
	"github.com/milk9111/bossarena/ecs"
	"github.com/milk9111/bossarena/ecs/component"
	"github.com/milk9111/bossarena/ecs/entity"
	"github.com/milk9111/bossarena/ecs/system"
	"github.com/milk9111/bossarena/prefabs"
	"github.com/sirupsen/logrus"
)

type simOptions struct {
	BossFile  string
	ArenaFile string
	HitDamage int
	HitEvery  float64
	Orbit     float64
	Log       *logrus.Entry
}

type runOptions struct {
	DT       float64
	Duration float64
	Realtime bool
	Watcher  *prefabs.Watcher
}

// sim is a headless arena: one boss, one orbiting target that lands a hit on
// a fixed cadence, and the obstacles from the arena spec.
type sim struct {
	opts simOptions
	log  *logrus.Entry

	w     *ecs.World
	sched *ecs.Scheduler

	bossEntity ecs.Entity
	ctl        *boss.Controller
	target     ecs.Entity
	// spawns is shared with the boss's spawner; reload rewrites it in place.
	spawns map[boss.SpawnKind]entity.SpawnDescriptor

	orbitRadius float64
	orbitAngle  float64
	hitTimer    float64
	elapsed     float64

	shots    map[string]int
	defeated bool
}

func newSim(opts simOptions) (*sim, error) {
	spec, err := prefabs.LoadBossSpec(opts.BossFile)
	if err != nil {
		return nil, err
	}
	cfg, err := spec.Config()
	if err != nil {
		return nil, err
	}
	spawns, err := spawnTable(spec)
	if err != nil {
		return nil, err
	}

	arena, err := prefabs.LoadArenaSpec(opts.ArenaFile)
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	obstacles := ecs.NewObstacleWorld()
	for i, o := range arena.Obstacles {
		if _, err := entity.NewObstacle(w, o.X, o.Z, o.HalfWidth, o.HalfDepth); err != nil {
			return nil, fmt.Errorf("bosssim: obstacle %d: %w", i, err)
		}
	}

	target, err := entity.NewTarget(w, arena.Target.Vec3())
	if err != nil {
		return nil, err
	}
	bossEntity, ctl, err := entity.NewBoss(w, entity.BossOptions{
		Config:    cfg,
		Position:  arena.Boss.Vec3(),
		Spawns:    spawns,
		Obstacles: obstacles,
		Logger:    opts.Log,
		HealthBar: true,
	})
	if err != nil {
		return nil, err
	}

	start := arena.Target.Vec3()
	s := &sim{
		opts:        opts,
		log:         opts.Log.WithField("arena", arena.Name),
		w:           w,
		bossEntity:  bossEntity,
		ctl:         ctl,
		target:      target,
		spawns:      spawns,
		orbitRadius: math.Hypot(start.X, start.Z),
		orbitAngle:  math.Atan2(start.Z, start.X),
		hitTimer:    opts.HitEvery,
		shots:       make(map[string]int),
	}
	s.sched = ecs.NewScheduler(
		system.NewObstacleSystem(obstacles),
		system.NewBossSystem(opts.Log),
		system.NewProjectileSystem(),
		system.NewTTLSystem(),
		system.NewBossHealthBarSystem(),
	)
	return s, nil
}

func (s *sim) run(ctx context.Context, opts runOptions) simResult {
	var ticker *time.Ticker
	var tick <-chan time.Time
	if opts.Realtime {
		ticker = time.NewTicker(time.Duration(opts.DT * float64(time.Second)))
		defer ticker.Stop()
		tick = ticker.C
	}
	var changes <-chan prefabs.Change
	var watchErrs <-chan error
	if opts.Watcher != nil {
		changes = opts.Watcher.Events
		watchErrs = opts.Watcher.Errors
	}

	for s.elapsed < opts.Duration && !s.defeated {
		if opts.Realtime {
			select {
			case <-ctx.Done():
				return s.result()
			case change, ok := <-changes:
				if ok {
					s.reload(change)
				}
				continue
			case err, ok := <-watchErrs:
				if ok {
					s.log.WithError(err).Warn("bosssim: watcher error")
				}
				continue
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return s.result()
		}
		s.step(opts.DT)
	}
	return s.result()
}

func (s *sim) step(dt float64) {
	s.moveTarget(dt)
	s.playerAttack(dt)
	s.sched.Step(s.w, dt)
	s.elapsed += dt

	for _, evt := range s.w.Events().Drain() {
		s.handleEvent(evt)
	}
	for _, req := range system.DrainLevelChangeRequests(s.w) {
		s.log.WithFields(logrus.Fields{"reason": req.Reason, "source": req.Source}).Info("level: advance requested")
		s.defeated = true
	}
}

func (s *sim) moveTarget(dt float64) {
	if s.opts.Orbit == 0 || s.orbitRadius == 0 {
		return
	}
	tr, ok := ecs.Get(s.w, s.target, component.TransformComponent.Kind())
	if !ok {
		return
	}
	s.orbitAngle += s.opts.Orbit * dt
	tr.X = s.orbitRadius * math.Cos(s.orbitAngle)
	tr.Z = s.orbitRadius * math.Sin(s.orbitAngle)
}

func (s *sim) playerAttack(dt float64) {
	if s.opts.HitEvery <= 0 || s.opts.HitDamage <= 0 || !ecs.IsAlive(s.w, s.bossEntity) {
		return
	}
	s.hitTimer -= dt
	if s.hitTimer > 0 {
		return
	}
	s.hitTimer += s.opts.HitEvery

	amount := s.opts.HitDamage
	if req, ok := ecs.Get(s.w, s.bossEntity, component.DamageRequestComponent.Kind()); ok {
		amount += req.Amount
	}
	_ = ecs.Add(s.w, s.bossEntity, component.DamageRequestComponent.Kind(), &component.DamageRequest{
		Amount:       amount,
		SourceEntity: uint64(s.target),
	})
}

func (s *sim) handleEvent(evt ecs.Event) {
	log := s.log.WithField("t", fmt.Sprintf("%.2f", s.elapsed))
	switch evt.Type {
	case ecs.EventBossPhaseChanged:
		if change, ok := evt.Data.(system.PhaseChange); ok {
			log.WithFields(logrus.Fields{"from": change.From, "to": change.To}).Info("boss: phase")
			log.WithFields(s.ctl.Snapshot().Fields()).Debug("boss: snapshot")
		}
	case ecs.EventBossStateChanged:
		if change, ok := evt.Data.(system.StateChange); ok {
			log.WithFields(logrus.Fields{"from": change.From, "to": change.To}).Debug("boss: state")
		}
	case ecs.EventBossDied:
		log.Info("boss: defeated")
	case ecs.EventEntityExpired:
		if kind, ok := evt.Data.(string); ok && kind != "" {
			s.shots[kind]++
		}
	}
}

// reload re-reads the boss spec after an edit and swaps in its tuning and
// spawn table. Runtime state is kept; bad edits are logged and ignored.
func (s *sim) reload(change prefabs.Change) {
	log := s.log.WithField("path", change.Path)
	spec, err := prefabs.LoadBossSpec(s.opts.BossFile)
	if err != nil {
		log.WithError(err).Warn("bosssim: reload failed")
		return
	}
	cfg, err := spec.Config()
	if err != nil {
		log.WithError(err).Warn("bosssim: reload failed")
		return
	}
	spawns, err := spawnTable(spec)
	if err != nil {
		log.WithError(err).Warn("bosssim: reload failed")
		return
	}
	s.ctl.SetConfig(cfg)
	clear(s.spawns)
	maps.Copy(s.spawns, spawns)
	log.Info("bosssim: boss spec reloaded")
}

func spawnTable(spec *prefabs.BossSpec) (map[boss.SpawnKind]entity.SpawnDescriptor, error) {
	table, err := spec.SpawnTable()
	if err != nil {
		return nil, err
	}
	spawns := make(map[boss.SpawnKind]entity.SpawnDescriptor, len(table))
	for kind, s := range table {
		spawns[kind] = entity.SpawnDescriptor(s)
	}
	return spawns, nil
}

type simResult struct {
	Defeated bool
	Elapsed  float64
	Health   boss.Health
	Phase    boss.Phase
	Shots    map[string]int
}

func (s *sim) result() simResult {
	return simResult{
		Defeated: s.defeated,
		Elapsed:  s.elapsed,
		Health:   s.ctl.Health(),
		Phase:    s.ctl.Phase(),
		Shots:    s.shots,
	}
}

func (r simResult) Fields() logrus.Fields {
	return logrus.Fields{
		"defeated":   r.Defeated,
		"elapsed":    fmt.Sprintf("%.2fs", r.Elapsed),
		"hp":         r.Health.Current,
		"phase":      r.Phase,
		"projectile": r.Shots[string(boss.SpawnProjectile)],
		"shockwave":  r.Shots[string(boss.SpawnShockwave)],
		"laser":      r.Shots[string(boss.SpawnLaser)],
	}
}

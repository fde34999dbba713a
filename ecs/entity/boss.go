package entity

import (
	"fmt"

	"github.com/milk9111/bossarena/boss"
	"github.com/milk9111/bossarena/ecs"
	"github.com/milk9111/bossarena/ecs/component"
	"github.com/sirupsen/logrus"
)

const defaultHitboxRadius = 1.5

// BossOptions configures NewBoss. Zero values pick sensible defaults.
type BossOptions struct {
	Config   boss.Config
	Position boss.Vec3
	// Spawns is read on every spawn, so edits made between ticks apply to
	// the next shot. Nil uses DefaultSpawnTable.
	Spawns       map[boss.SpawnKind]SpawnDescriptor
	Obstacles    *ecs.ObstacleWorld
	Logger       *logrus.Entry
	HitboxRadius float64
	// Chooser overrides the ultimate variant chooser built from Config.
	Chooser boss.VariantChooser
	// HealthBar adds a BossHealthBar entity fed by the controller.
	HealthBar bool
}

// NewBoss creates the boss entity and its controller, wired to the world:
// the first TargetTag entity is its target, its Hitbox component is its
// hitbox, spawns become projectile entities and death files a
// LevelChangeRequest.
func NewBoss(w *ecs.World, opts BossOptions) (ecs.Entity, *boss.Controller, error) {
	if w == nil {
		return 0, nil, fmt.Errorf("boss: nil world")
	}
	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	radius := opts.HitboxRadius
	if radius <= 0 {
		radius = defaultHitboxRadius
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.HitboxComponent.Kind(), &component.Hitbox{Radius: radius}); err != nil {
		return 0, nil, fmt.Errorf("boss: add hitbox: %w", err)
	}

	binding := hitboxBinding{w: w, e: e}
	ctlOpts := []boss.Option{
		boss.WithTarget(worldTarget{w: w}),
		boss.WithHitbox(binding),
		boss.WithWeapon(binding),
		boss.WithSpawner(NewWorldSpawner(w, e, opts.Spawns)),
		boss.WithLevelFlow(levelFlowBinding{w: w, source: e}),
		boss.WithPosition(opts.Position),
		boss.WithLogger(log.WithField("entity", e)),
	}
	if opts.Obstacles != nil {
		ctlOpts = append(ctlOpts, boss.WithObstacleProbe(obstacleProbe{world: opts.Obstacles}))
	}
	if opts.Chooser != nil {
		ctlOpts = append(ctlOpts, boss.WithVariantChooser(opts.Chooser))
	}
	ctl := boss.New(opts.Config, ctlOpts...)

	pos, facing := ctl.Position(), ctl.Facing()
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X: pos.X, Y: pos.Y, Z: pos.Z, FacingX: facing.X, FacingZ: facing.Y,
	}); err != nil {
		return 0, nil, fmt.Errorf("boss: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.BossComponent.Kind(), &component.Boss{
		Controller: ctl,
		Phase:      ctl.Phase(),
		State:      ctl.State(),
	}); err != nil {
		return 0, nil, fmt.Errorf("boss: add boss: %w", err)
	}

	if opts.HealthBar {
		if _, err := NewBossHealthBar(w, e, ctl); err != nil {
			return 0, nil, err
		}
	}
	return e, ctl, nil
}

// NewBossHealthBar creates the health bar entity for bossEntity and keeps it
// current through the controller's observers.
func NewBossHealthBar(w *ecs.World, bossEntity ecs.Entity, ctl *boss.Controller) (ecs.Entity, error) {
	hp := ctl.Health()
	bar := &component.BossHealthBar{
		Boss:    uint64(bossEntity),
		Current: hp.Current,
		Max:     hp.Max,
		Ratio:   hp.Ratio(),
		Phase:   int(ctl.Phase()),
		Visible: true,
	}
	barEntity := ecs.CreateEntity(w)
	if err := ecs.Add(w, barEntity, component.BossHealthBarComponent.Kind(), bar); err != nil {
		return 0, fmt.Errorf("boss health bar: add bar component: %w", err)
	}

	ctl.OnHealthChanged(func(current, max int) {
		bar.Current = current
		bar.Max = max
		bar.Ratio = boss.Health{Current: current, Max: max}.Ratio()
	})
	ctl.OnPhaseChanged(func(_, to boss.Phase) {
		bar.Phase = int(to)
	})
	return barEntity, nil
}

// NewTarget creates the entity bosses chase.
func NewTarget(w *ecs.World, pos boss.Vec3) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TargetTagComponent.Kind(), &component.TargetTag{}); err != nil {
		return 0, fmt.Errorf("target: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y, Z: pos.Z, FacingZ: 1}); err != nil {
		return 0, fmt.Errorf("target: add transform: %w", err)
	}
	return e, nil
}

// NewObstacle creates a static box centered on (x, z). The ObstacleSystem
// registers it with the obstacle world.
func NewObstacle(w *ecs.World, x, z, halfWidth, halfDepth float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Z: z}); err != nil {
		return 0, fmt.Errorf("obstacle: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.ObstacleComponent.Kind(), &component.Obstacle{HalfWidth: halfWidth, HalfDepth: halfDepth}); err != nil {
		return 0, fmt.Errorf("obstacle: add obstacle: %w", err)
	}
	return e, nil
}

package system

import (
	"io"
	"testing"

	"github.com/milk9111/bossarena/boss"
	"github.com/milk9111/bossarena/ecs"
	"github.com/milk9111/bossarena/ecs/component"
	"github.com/milk9111/bossarena/ecs/entity"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newArena(t *testing.T, cfg boss.Config, target boss.Vec3) (*ecs.World, *ecs.Scheduler, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	obstacles := ecs.NewObstacleWorld()
	if _, err := entity.NewTarget(w, target); err != nil {
		t.Fatalf("target: %v", err)
	}
	e, _, err := entity.NewBoss(w, entity.BossOptions{
		Config:    cfg,
		Obstacles: obstacles,
		Logger:    quietLogger(),
		HealthBar: true,
	})
	if err != nil {
		t.Fatalf("boss: %v", err)
	}
	s := ecs.NewScheduler(
		NewObstacleSystem(obstacles),
		NewBossSystem(quietLogger()),
		NewProjectileSystem(),
		NewTTLSystem(),
		NewBossHealthBarSystem(),
	)
	return w, s, e
}

func countEvents(events []ecs.Event, typ string) int {
	n := 0
	for _, evt := range events {
		if evt.Type == typ {
			n++
		}
	}
	return n
}

func TestBossSystemLifecycle(t *testing.T) {
	cfg := boss.DefaultConfig()
	cfg.StunDuration = 0
	w, s, bossEntity := newArena(t, cfg, boss.Vec3{Z: 5})

	s.Step(w, 0.1)
	b, ok := ecs.Get(w, bossEntity, component.BossComponent.Kind())
	if !ok || b.State != boss.StateChase {
		t.Fatalf("expected the boss to start chasing")
	}
	events := w.Events().Drain()
	if countEvents(events, ecs.EventBossStateChanged) != 1 {
		t.Fatalf("expected one state event, got %v", events)
	}

	if err := ecs.Add(w, bossEntity, component.DamageRequestComponent.Kind(), &component.DamageRequest{Amount: 60}); err != nil {
		t.Fatalf("add damage: %v", err)
	}
	s.Step(w, 0.1)
	if ecs.Has(w, bossEntity, component.DamageRequestComponent.Kind()) {
		t.Fatalf("damage request must be consumed")
	}
	if b.Phase != boss.Phase2 {
		t.Fatalf("expected phase 2, got %v", b.Phase)
	}
	events = w.Events().Drain()
	if countEvents(events, ecs.EventBossPhaseChanged) != 1 {
		t.Fatalf("expected one phase event, got %v", events)
	}

	tr, _ := ecs.Get(w, bossEntity, component.TransformComponent.Kind())
	if tr.Z >= 0 {
		t.Fatalf("expected the transform to follow the retreat, got %+v", tr)
	}

	shot, ok := ecs.First(w, component.ProjectileComponent.Kind())
	if !ok {
		t.Fatalf("expected a projectile in the world")
	}
	shotTransform, _ := ecs.Get(w, shot, component.TransformComponent.Kind())
	if shotTransform.Z <= tr.Z+cfg.SpawnOffset {
		t.Fatalf("projectile should have moved toward the target, got %+v", shotTransform)
	}

	barEntity, _ := ecs.First(w, component.BossHealthBarComponent.Kind())
	bar, _ := ecs.Get(w, barEntity, component.BossHealthBarComponent.Kind())
	if bar.Current != 40 || bar.Phase != 2 || !bar.Visible {
		t.Fatalf("unexpected bar %+v", bar)
	}

	expired := 0
	for i := 0; i < 30; i++ {
		s.Step(w, 0.1)
		expired += countEvents(w.Events().Drain(), ecs.EventEntityExpired)
	}
	if expired == 0 || ecs.IsAlive(w, shot) {
		t.Fatalf("expected the first projectile to expire")
	}

	if err := ecs.Add(w, bossEntity, component.DamageRequestComponent.Kind(), &component.DamageRequest{Amount: 100}); err != nil {
		t.Fatalf("add damage: %v", err)
	}
	s.Step(w, 0.1)
	if ecs.IsAlive(w, bossEntity) {
		t.Fatalf("dead boss must be removed from the world")
	}
	if countEvents(w.Events().Drain(), ecs.EventBossDied) != 1 {
		t.Fatalf("expected one death event")
	}
	if bar.Visible {
		t.Fatalf("health bar must hide once the boss is gone")
	}
	if _, ok := ecs.First(w, component.LevelChangeRequestComponent.Kind()); !ok {
		t.Fatalf("expected a level change request")
	}

	s.Step(w, 0.1)
	if countEvents(w.Events().Drain(), ecs.EventBossDied) != 0 {
		t.Fatalf("death must be reported once")
	}
}

func TestTTLSystem(t *testing.T) {
	w := ecs.NewWorld()
	short := ecs.CreateEntity(w)
	long := ecs.CreateEntity(w)
	_ = ecs.Add(w, short, component.TTLComponent.Kind(), &component.TTL{Seconds: 0.15})
	_ = ecs.Add(w, long, component.TTLComponent.Kind(), &component.TTL{Seconds: 1})

	s := ecs.NewScheduler(NewTTLSystem())
	s.Step(w, 0.1)
	if !ecs.IsAlive(w, short) {
		t.Fatalf("entity expired early")
	}
	s.Step(w, 0.1)
	if ecs.IsAlive(w, short) || !ecs.IsAlive(w, long) {
		t.Fatalf("expected only the short-lived entity gone")
	}
	events := w.Events().Drain()
	if len(events) != 1 || events[0].Entity != short {
		t.Fatalf("unexpected events %v", events)
	}
}

func TestProjectileSystem(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{})
	_ = ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{Speed: 25, HeadingX: 1})

	ecs.NewScheduler(NewProjectileSystem()).Step(w, 0.2)
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 5 || tr.Z != 0 {
		t.Fatalf("expected the laser 5 units along +X, got %+v", tr)
	}
}

func TestObstacleSystemTracksEntities(t *testing.T) {
	w := ecs.NewWorld()
	obstacles := ecs.NewObstacleWorld()
	s := ecs.NewScheduler(NewObstacleSystem(obstacles))

	e, err := entity.NewObstacle(w, 2, 0, 0.5, 0.5)
	if err != nil {
		t.Fatalf("obstacle: %v", err)
	}
	s.Step(w, 0.1)
	s.Step(w, 0.1)
	if obstacles.Len() != 1 {
		t.Fatalf("expected one registered box, got %d", obstacles.Len())
	}

	ecs.DestroyEntity(w, e)
	s.Step(w, 0.1)
	if obstacles.Len() != 0 {
		t.Fatalf("expected the box removed with its entity, got %d", obstacles.Len())
	}
}

func TestDrainLevelChangeRequests(t *testing.T) {
	w := ecs.NewWorld()
	for i := 0; i < 2; i++ {
		e := ecs.CreateEntity(w)
		_ = ecs.Add(w, e, component.LevelChangeRequestComponent.Kind(), &component.LevelChangeRequest{Reason: "boss_defeated"})
	}
	if got := DrainLevelChangeRequests(w); len(got) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(got))
	}
	if got := DrainLevelChangeRequests(w); len(got) != 0 {
		t.Fatalf("requests must be consumed, got %d", len(got))
	}
}

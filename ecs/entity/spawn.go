package entity

import (
	"fmt"

	"github.com/milk9111/bossarena/boss"
	"github.com/milk9111/bossarena/ecs"
	"github.com/milk9111/bossarena/ecs/component"
)

// SpawnDescriptor is what the world needs to build one spawned entity.
type SpawnDescriptor struct {
	Speed    float64
	Lifetime float64
	Damage   int
}

// fallbackLifetime bounds spawned entities whose kind has no default.
const fallbackLifetime = 3.0

// DefaultSpawnTable describes the three entities a boss can spawn.
func DefaultSpawnTable() map[boss.SpawnKind]SpawnDescriptor {
	return map[boss.SpawnKind]SpawnDescriptor{
		boss.SpawnProjectile: {Speed: 10, Lifetime: 3, Damage: 5},
		boss.SpawnShockwave:  {Speed: 12, Lifetime: 1.2, Damage: 15},
		boss.SpawnLaser:      {Speed: 25, Lifetime: 2, Damage: 20},
	}
}

// WorldSpawner turns boss spawn requests into projectile entities. The
// spawned entities outlive the boss.
type WorldSpawner struct {
	w     *ecs.World
	owner ecs.Entity
	table map[boss.SpawnKind]SpawnDescriptor
}

func NewWorldSpawner(w *ecs.World, owner ecs.Entity, table map[boss.SpawnKind]SpawnDescriptor) *WorldSpawner {
	if table == nil {
		table = DefaultSpawnTable()
	}
	return &WorldSpawner{w: w, owner: owner, table: table}
}

func (s *WorldSpawner) Spawn(kind boss.SpawnKind, pose boss.Pose) error {
	if s == nil || s.w == nil {
		return fmt.Errorf("spawn %s: no world", kind)
	}
	desc, ok := s.table[kind]
	if !ok {
		return fmt.Errorf("spawn: %w: %q", boss.ErrUnknownSpawnKind, kind)
	}
	_, err := NewProjectile(s.w, kind, desc, pose, s.owner)
	return err
}

// NewProjectile builds a moving, self-expiring entity at pose.
func NewProjectile(w *ecs.World, kind boss.SpawnKind, desc SpawnDescriptor, pose boss.Pose, owner ecs.Entity) (ecs.Entity, error) {
	heading := pose.Heading
	if heading.Length() > 0 {
		heading = heading.Normalize()
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:       pose.Position.X,
		Y:       pose.Position.Y,
		Z:       pose.Position.Z,
		FacingX: heading.X,
		FacingZ: heading.Y,
	}); err != nil {
		return 0, fmt.Errorf("%s: add transform: %w", kind, err)
	}
	if err := ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{
		Kind:     string(kind),
		Speed:    desc.Speed,
		HeadingX: heading.X,
		HeadingZ: heading.Y,
		Damage:   desc.Damage,
		Owner:    uint64(owner),
	}); err != nil {
		return 0, fmt.Errorf("%s: add projectile: %w", kind, err)
	}
	lifetime := desc.Lifetime
	if lifetime <= 0 {
		lifetime = DefaultSpawnTable()[kind].Lifetime
	}
	if lifetime <= 0 {
		lifetime = fallbackLifetime
	}
	if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: lifetime}); err != nil {
		return 0, fmt.Errorf("%s: add ttl: %w", kind, err)
	}
	return e, nil
}

package boss

import "github.com/jakecoffman/cp"

// Target is the entity the boss fights. ok is false once it is gone.
type Target interface {
	Position() (pos Vec3, ok bool)
}

// Hitbox is the boss's damage volume. Collision and damage delivery live on
// the other side of this interface.
type Hitbox interface {
	SetDamage(amount int)
	EnableHitbox()
	DisableHitbox()
}

// Weapon is the optional sword visual shown while the hitbox is live.
type Weapon interface {
	SetWeaponVisible(visible bool)
}

// Pose is where and which way a spawned entity starts.
type Pose struct {
	Position Vec3
	Heading  cp.Vector
}

// Spawner creates projectiles, shockwaves and lasers in the world. Spawned
// entities belong to the world, not the boss.
type Spawner interface {
	Spawn(kind SpawnKind, pose Pose) error
}

// LevelFlow is told once when the boss dies.
type LevelFlow interface {
	GoToNextLevel()
}

// ObstacleProbe reports blocking geometry along a ground-plane ray.
type ObstacleProbe interface {
	Blocked(origin, dir cp.Vector, length float64) bool
}

type TargetFunc func() (Vec3, bool)

func (f TargetFunc) Position() (Vec3, bool) { return f() }

type LevelFlowFunc func()

func (f LevelFlowFunc) GoToNextLevel() { f() }

package component

// Projectile moves its entity along a ground-plane heading every tick.
type Projectile struct {
	Kind     string
	Speed    float64
	HeadingX float64
	HeadingZ float64
	Damage   int
	Owner    uint64
}

var ProjectileComponent = NewComponent[Projectile]()

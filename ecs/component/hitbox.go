package component

// Hitbox is the boss's offensive volume around its transform. It only deals
// damage while Enabled.
type Hitbox struct {
	Radius      float64
	Damage      int
	Enabled     bool
	Activations int
	WeaponShown bool
}

var HitboxComponent = NewComponent[Hitbox]()

package boss

type UltimateStage int

const (
	UltimateIdle UltimateStage = iota
	UltimateTelegraph
	UltimateExecute
	UltimateRecovery
)

func (s UltimateStage) String() string {
	switch s {
	case UltimateTelegraph:
		return "telegraph"
	case UltimateExecute:
		return "execute"
	case UltimateRecovery:
		return "recovery"
	default:
		return "idle"
	}
}

type ultimateHooks struct {
	face  func()
	spawn func(kind SpawnKind)
}

// UltimateSequence is the phase-3 special: a telegraph, then either a heavy
// swing that ends in a shockwave or a laser, then a recovery pause.
type UltimateSequence struct {
	cfg   *Config
	lease *hitboxLease
	hooks ultimateHooks

	stage       UltimateStage
	variant     Variant
	elapsed     float64
	swingActive bool
}

func newUltimateSequence(cfg *Config, lease *hitboxLease, hooks ultimateHooks) *UltimateSequence {
	return &UltimateSequence{cfg: cfg, lease: lease, hooks: hooks}
}

func (u *UltimateSequence) Stage() UltimateStage { return u.stage }

func (u *UltimateSequence) Variant() Variant { return u.variant }

func (u *UltimateSequence) InFlight() bool { return u.stage != UltimateIdle }

// Start begins the telegraph for variant (melee or ranged). It reports false
// if an ultimate is already in flight.
func (u *UltimateSequence) Start(variant Variant) bool {
	if u.InFlight() {
		return false
	}
	if variant != VariantMelee {
		variant = VariantRanged
	}
	u.variant = variant
	u.stage = UltimateTelegraph
	u.elapsed = 0
	u.swingActive = false
	return true
}

func (u *UltimateSequence) Advance(dt float64) {
	if !u.InFlight() {
		return
	}
	u.elapsed += dt
	for u.InFlight() {
		switch u.stage {
		case UltimateTelegraph:
			if u.hooks.face != nil {
				u.hooks.face()
			}
			if !reached(u.elapsed, u.cfg.TelegraphTime) {
				return
			}
			u.elapsed -= u.cfg.TelegraphTime
			u.stage = UltimateExecute
		case UltimateExecute:
			if !u.execute() {
				return
			}
		case UltimateRecovery:
			if !reached(u.elapsed, u.cfg.UltimateRecoveryTime) {
				return
			}
			u.stage = UltimateIdle
			u.elapsed = 0
		}
	}
}

// execute reports whether the sequence moved on to recovery.
func (u *UltimateSequence) execute() bool {
	if u.variant == VariantRanged {
		u.spawn(SpawnLaser)
		u.toRecovery()
		return true
	}

	if !u.swingActive {
		// Wait for a swing still holding the hitbox to finish.
		if !u.lease.acquire(ownerUltimate, u.cfg.HeavyDamage) {
			u.elapsed = 0
			return false
		}
		u.swingActive = true
	}
	if !reached(u.elapsed, u.cfg.HeavyActiveTime) {
		return false
	}
	u.elapsed -= u.cfg.HeavyActiveTime
	u.lease.release(ownerUltimate)
	u.swingActive = false
	u.spawn(SpawnShockwave)
	u.toRecovery()
	return true
}

func (u *UltimateSequence) toRecovery() {
	u.stage = UltimateRecovery
	if u.elapsed < 0 {
		u.elapsed = 0
	}
}

func (u *UltimateSequence) spawn(kind SpawnKind) {
	if u.hooks.spawn != nil {
		u.hooks.spawn(kind)
	}
}

// Cancel aborts the ultimate and releases the hitbox if the heavy swing was
// live.
func (u *UltimateSequence) Cancel() {
	u.lease.release(ownerUltimate)
	u.stage = UltimateIdle
	u.elapsed = 0
	u.swingActive = false
}

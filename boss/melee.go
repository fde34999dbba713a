package boss

type MeleeStage int

const (
	MeleeIdle MeleeStage = iota
	MeleeWindUp
	MeleeActive
	MeleeRecovery
)

func (s MeleeStage) String() string {
	switch s {
	case MeleeWindUp:
		return "windup"
	case MeleeActive:
		return "active"
	case MeleeRecovery:
		return "recovery"
	default:
		return "idle"
	}
}

// MeleeSequencer runs one sword swing across ticks:
// wind-up, hitbox active window, recovery. Only one swing is in flight at a
// time and the hitbox is always released when the swing ends or is cancelled.
type MeleeSequencer struct {
	cfg   *Config
	lease *hitboxLease

	stage   MeleeStage
	elapsed float64
}

func newMeleeSequencer(cfg *Config, lease *hitboxLease) *MeleeSequencer {
	return &MeleeSequencer{cfg: cfg, lease: lease}
}

func (s *MeleeSequencer) Stage() MeleeStage { return s.stage }

func (s *MeleeSequencer) InFlight() bool { return s.stage != MeleeIdle }

// Start begins a swing. It reports false if one is already in flight.
func (s *MeleeSequencer) Start() bool {
	if s.InFlight() {
		return false
	}
	s.stage = MeleeWindUp
	s.elapsed = 0
	return true
}

// Advance moves the swing forward by dt, crossing as many stage boundaries as
// dt covers.
func (s *MeleeSequencer) Advance(dt float64) {
	if !s.InFlight() {
		return
	}
	s.elapsed += dt
	for s.InFlight() {
		switch s.stage {
		case MeleeWindUp:
			if !reached(s.elapsed, s.cfg.WindUpTime) {
				return
			}
			s.elapsed -= s.cfg.WindUpTime
			if s.lease.acquire(ownerMelee, s.cfg.MeleeDamage) {
				s.stage = MeleeActive
			} else {
				// Another sequence owns the hitbox; the swing whiffs.
				s.lease.log.WithField("holder", s.lease.heldBy()).Debug("boss: melee swing skipped, hitbox busy")
				s.stage = MeleeRecovery
			}
		case MeleeActive:
			if !reached(s.elapsed, s.cfg.ActiveTime) {
				return
			}
			s.elapsed -= s.cfg.ActiveTime
			s.lease.release(ownerMelee)
			s.stage = MeleeRecovery
		case MeleeRecovery:
			if !reached(s.elapsed, s.cfg.RecoveryTime) {
				return
			}
			s.stage = MeleeIdle
			s.elapsed = 0
		}
	}
}

// Cancel aborts the swing and releases the hitbox if it was live.
func (s *MeleeSequencer) Cancel() {
	s.lease.release(ownerMelee)
	s.stage = MeleeIdle
	s.elapsed = 0
}

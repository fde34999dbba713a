package boss

import "github.com/sirupsen/logrus"

type hitboxOwner int

const (
	ownerNone hitboxOwner = iota
	ownerMelee
	ownerUltimate
)

func (o hitboxOwner) String() string {
	switch o {
	case ownerMelee:
		return "melee"
	case ownerUltimate:
		return "ultimate"
	default:
		return "none"
	}
}

// hitboxLease gives one sequence at a time ownership of the hitbox. Every
// successful acquire is paired with exactly one DisableHitbox on release.
type hitboxLease struct {
	hitbox Hitbox
	weapon Weapon
	owner  hitboxOwner
	log    *logrus.Entry

	warnedMissing bool
}

func (l *hitboxLease) acquire(owner hitboxOwner, damage int) bool {
	if l.owner != ownerNone {
		return false
	}
	l.owner = owner
	if l.hitbox == nil {
		if !l.warnedMissing {
			l.log.WithField("owner", owner).Warn("boss: no hitbox bound, attack window has no effect")
			l.warnedMissing = true
		}
	} else {
		l.hitbox.SetDamage(damage)
		l.hitbox.EnableHitbox()
	}
	if l.weapon != nil {
		l.weapon.SetWeaponVisible(true)
	}
	return true
}

func (l *hitboxLease) release(owner hitboxOwner) {
	if l.owner == ownerNone || l.owner != owner {
		return
	}
	l.owner = ownerNone
	if l.hitbox != nil {
		l.hitbox.DisableHitbox()
	}
	if l.weapon != nil {
		l.weapon.SetWeaponVisible(false)
	}
}

func (l *hitboxLease) releaseAll() {
	l.release(l.owner)
}

func (l *hitboxLease) heldBy() hitboxOwner {
	return l.owner
}

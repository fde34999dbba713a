package boss

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"
)

type fakeHitbox struct {
	enables  int
	disables int
	damage   int
	enabled  bool
}

func (h *fakeHitbox) SetDamage(amount int) { h.damage = amount }

func (h *fakeHitbox) EnableHitbox() {
	h.enables++
	h.enabled = true
}

func (h *fakeHitbox) DisableHitbox() {
	h.disables++
	h.enabled = false
}

type fakeWeapon struct {
	visible bool
	toggles int
}

func (w *fakeWeapon) SetWeaponVisible(v bool) {
	w.visible = v
	w.toggles++
}

type spawnCall struct {
	kind SpawnKind
	pose Pose
}

type fakeSpawner struct {
	calls []spawnCall
	fail  bool
}

func (s *fakeSpawner) Spawn(kind SpawnKind, pose Pose) error {
	if s.fail {
		return errors.New("no prefab")
	}
	s.calls = append(s.calls, spawnCall{kind: kind, pose: pose})
	return nil
}

func (s *fakeSpawner) count(kind SpawnKind) int {
	n := 0
	for _, c := range s.calls {
		if c.kind == kind {
			n++
		}
	}
	return n
}

type fakeLevel struct {
	calls int
}

func (l *fakeLevel) GoToNextLevel() { l.calls++ }

type fixedTarget struct {
	pos     Vec3
	missing bool
}

func (t *fixedTarget) Position() (Vec3, bool) { return t.pos, !t.missing }

type rig struct {
	c       *Controller
	hitbox  *fakeHitbox
	weapon  *fakeWeapon
	spawner *fakeSpawner
	level   *fakeLevel
	target  *fixedTarget
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newRig(cfg Config, targetPos Vec3, opts ...Option) *rig {
	r := &rig{
		hitbox:  &fakeHitbox{},
		weapon:  &fakeWeapon{},
		spawner: &fakeSpawner{},
		level:   &fakeLevel{},
		target:  &fixedTarget{pos: targetPos},
	}
	base := []Option{
		WithTarget(r.target),
		WithHitbox(r.hitbox),
		WithWeapon(r.weapon),
		WithSpawner(r.spawner),
		WithLevelFlow(r.level),
		WithLogger(quietLogger()),
	}
	r.c = New(cfg, append(base, opts...)...)
	return r
}

func (r *rig) tickN(n int, dt float64) {
	for i := 0; i < n; i++ {
		r.c.Tick(dt)
	}
}

func near(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-6
}

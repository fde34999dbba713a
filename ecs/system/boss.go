package system

import (
	"github.com/milk9111/bossarena/boss"
	"github.com/milk9111/bossarena/ecs"
	"github.com/milk9111/bossarena/ecs/component"
	"github.com/sirupsen/logrus"
)

// PhaseChange is the payload of EventBossPhaseChanged.
type PhaseChange struct {
	From boss.Phase
	To   boss.Phase
}

// StateChange is the payload of EventBossStateChanged.
type StateChange struct {
	From boss.CombatState
	To   boss.CombatState
}

// BossSystem applies pending damage, ticks every boss controller, mirrors the
// result into the entity's components and removes bosses once destroyed.
type BossSystem struct {
	log *logrus.Entry
}

func NewBossSystem(log *logrus.Entry) *BossSystem {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &BossSystem{log: log.WithField("system", "boss")}
}

func (s *BossSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach(w, component.BossComponent.Kind(), func(e ecs.Entity, b *component.Boss) {
		ctl := b.Controller
		if ctl == nil {
			return
		}

		if req, ok := ecs.Get(w, e, component.DamageRequestComponent.Kind()); ok && req != nil {
			ctl.ApplyDamage(req.Amount)
			ecs.Remove(w, e, component.DamageRequestComponent.Kind())
		}

		ctl.Tick(dt)
		s.sync(w, e, b, ctl)

		if ctl.Destroyed() {
			if ctl.Dead() {
				w.Events().Push(ecs.Event{Type: ecs.EventBossDied, Entity: e})
			}
			s.log.WithField("entity", e).Debug("boss: removing entity")
			ecs.DestroyEntity(w, e)
		}
	})
}

func (s *BossSystem) sync(w *ecs.World, e ecs.Entity, b *component.Boss, ctl *boss.Controller) {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok && t != nil {
		pos, facing := ctl.Position(), ctl.Facing()
		t.X, t.Y, t.Z = pos.X, pos.Y, pos.Z
		t.FacingX, t.FacingZ = facing.X, facing.Y
	}

	if phase := ctl.Phase(); phase != b.Phase {
		w.Events().Push(ecs.Event{Type: ecs.EventBossPhaseChanged, Entity: e, Data: PhaseChange{From: b.Phase, To: phase}})
		b.Phase = phase
	}
	if state := ctl.State(); state != b.State {
		w.Events().Push(ecs.Event{Type: ecs.EventBossStateChanged, Entity: e, Data: StateChange{From: b.State, To: state}})
		b.State = state
	}
}

package system

import (
	"github.com/milk9111/bossarena/ecs"
	"github.com/milk9111/bossarena/ecs/component"
)

// TTLSystem counts TTL components down by the tick length and destroys
// entities whose time ran out.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		if ttl == nil {
			return
		}

		ttl.Seconds -= dt
		if ttl.Seconds > 0 {
			return
		}

		// TTL expired: destroy the entity
		var kind string
		if p, ok := ecs.Get(w, e, component.ProjectileComponent.Kind()); ok && p != nil {
			kind = p.Kind
		}
		w.Events().Push(ecs.Event{Type: ecs.EventEntityExpired, Entity: e, Data: kind})
		ecs.DestroyEntity(w, e)
	})
}

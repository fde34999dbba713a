package system

import (
	"github.com/milk9111/bossarena/ecs"
	"github.com/milk9111/bossarena/ecs/component"
)

// BossHealthBarSystem hides health bars whose boss is gone. The values
// themselves are pushed by the boss's health observer.
type BossHealthBarSystem struct{}

func NewBossHealthBarSystem() *BossHealthBarSystem {
	return &BossHealthBarSystem{}
}

func (s *BossHealthBarSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.BossHealthBarComponent.Kind(), func(_ ecs.Entity, bar *component.BossHealthBar) {
		if bar == nil || !bar.Visible {
			return
		}
		if !ecs.IsAlive(w, ecs.Entity(bar.Boss)) {
			bar.Visible = false
		}
	})
}

package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossarena/boss"
	"github.com/milk9111/bossarena/ecs"
	"github.com/milk9111/bossarena/ecs/component"
)

// worldTarget follows the first entity tagged as the target.
type worldTarget struct {
	w *ecs.World
}

func (t worldTarget) Position() (boss.Vec3, bool) {
	e, ok := ecs.First(t.w, component.TargetTagComponent.Kind())
	if !ok {
		return boss.Vec3{}, false
	}
	tr, ok := ecs.Get(t.w, e, component.TransformComponent.Kind())
	if !ok || tr == nil {
		return boss.Vec3{}, false
	}
	return boss.Vec3{X: tr.X, Y: tr.Y, Z: tr.Z}, true
}

// hitboxBinding writes the controller's hitbox and weapon calls into the
// entity's Hitbox component.
type hitboxBinding struct {
	w *ecs.World
	e ecs.Entity
}

func (h hitboxBinding) get() *component.Hitbox {
	hb, ok := ecs.Get(h.w, h.e, component.HitboxComponent.Kind())
	if !ok {
		return nil
	}
	return hb
}

func (h hitboxBinding) SetDamage(amount int) {
	if hb := h.get(); hb != nil {
		hb.Damage = amount
	}
}

func (h hitboxBinding) EnableHitbox() {
	if hb := h.get(); hb != nil {
		hb.Enabled = true
		hb.Activations++
	}
}

func (h hitboxBinding) DisableHitbox() {
	if hb := h.get(); hb != nil {
		hb.Enabled = false
	}
}

func (h hitboxBinding) SetWeaponVisible(visible bool) {
	if hb := h.get(); hb != nil {
		hb.WeaponShown = visible
	}
}

// levelFlowBinding files a LevelChangeRequest on its own entity so the
// request survives the boss being destroyed.
type levelFlowBinding struct {
	w      *ecs.World
	source ecs.Entity
}

func (l levelFlowBinding) GoToNextLevel() {
	req := ecs.CreateEntity(l.w)
	_ = ecs.Add(l.w, req, component.LevelChangeRequestComponent.Kind(), &component.LevelChangeRequest{
		Reason: "boss_defeated",
		Source: uint64(l.source),
	})
}

// obstacleProbe adapts the obstacle world; a nil world never blocks.
type obstacleProbe struct {
	world *ecs.ObstacleWorld
}

func (p obstacleProbe) Blocked(origin, dir cp.Vector, length float64) bool {
	return p.world.Blocked(origin, dir, length)
}

package system

import (
	"github.com/milk9111/bossarena/ecs"
	"github.com/milk9111/bossarena/ecs/component"
)

// DrainLevelChangeRequests returns every pending request and destroys the
// entities carrying them. The outer loop calls it between ticks.
func DrainLevelChangeRequests(w *ecs.World) []component.LevelChangeRequest {
	if w == nil {
		return nil
	}
	var out []component.LevelChangeRequest
	ecs.ForEach(w, component.LevelChangeRequestComponent.Kind(), func(e ecs.Entity, req *component.LevelChangeRequest) {
		if req != nil {
			out = append(out, *req)
		}
		ecs.DestroyEntity(w, e)
	})
	return out
}

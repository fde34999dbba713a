package system

import (
	"github.com/milk9111/bossarena/ecs"
	"github.com/milk9111/bossarena/ecs/component"
)

// ObstacleSystem keeps the obstacle world in step with the Obstacle
// components: new obstacles get a static box, destroyed ones lose theirs.
type ObstacleSystem struct {
	world *ecs.ObstacleWorld
	known map[ecs.Entity]struct{}
}

func NewObstacleSystem(world *ecs.ObstacleWorld) *ObstacleSystem {
	return &ObstacleSystem{world: world, known: make(map[ecs.Entity]struct{})}
}

func (s *ObstacleSystem) Update(w *ecs.World) {
	if w == nil || s.world == nil {
		return
	}

	ecs.ForEach2(w, component.ObstacleComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, o *component.Obstacle, t *component.Transform) {
		if o == nil || t == nil {
			return
		}
		if _, ok := s.known[e]; ok {
			return
		}
		s.world.AddBox(e, t.X, t.Z, o.HalfWidth, o.HalfDepth)
		s.known[e] = struct{}{}
	})

	for e := range s.known {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.ObstacleComponent.Kind()) {
			continue
		}
		s.world.Remove(e)
		delete(s.known, e)
	}
}
